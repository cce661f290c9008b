package wire

// encodeValue writes a tagged value: type:i32, size:i32, payload.
func encodeValue(w *writer, v Value) {
	switch v.Tag {
	case TagNull:
		w.i32(int32(TagNull))
		w.i32(0)
	case TagInteger:
		w.i32(int32(TagInteger))
		w.i32(8)
		w.i64(v.Integer)
	case TagFloat:
		w.i32(int32(TagFloat))
		w.i32(8)
		w.f64(v.Float)
	case TagText:
		w.i32(int32(TagText))
		sizePos := len(w.buf)
		w.i32(0) // placeholder, patched below
		padded := w.text(v.Text)
		w.patchI32(sizePos, int32(padded))
	case TagForeign:
		w.i32(int32(TagForeign))
		w.i32(8)
		w.i64(v.Foreign)
	default:
		w.fail(ErrDecode)
	}
}

// decodeValue reads a tagged value. Any tag outside the five defined
// variants, or a size field that disagrees with its tag's fixed size
// (Null, Integer, Float, Foreign all have a fixed size; Text's size is
// whatever was declared, bounds-checked by the subsequent read), is a
// decode error.
func decodeValue(r *reader) Value {
	tag := Tag(r.i32())
	size := r.i32()
	if r.err != nil {
		return Value{}
	}
	switch tag {
	case TagNull:
		if size != 0 {
			r.fail(ErrDecode)
			return Value{}
		}
		return Null()
	case TagInteger:
		if size != 8 {
			r.fail(ErrDecode)
			return Value{}
		}
		return Integer(r.i64())
	case TagFloat:
		if size != 8 {
			r.fail(ErrDecode)
			return Value{}
		}
		return Float(r.f64())
	case TagForeign:
		if size != 8 {
			r.fail(ErrDecode)
			return Value{}
		}
		return Foreign(r.i64())
	case TagText:
		if size < 0 {
			r.fail(ErrDecode)
			return Value{}
		}
		return Text(r.text(int(size)))
	default:
		r.fail(ErrDecode)
		return Value{}
	}
}
