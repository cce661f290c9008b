package wire

import (
	"fmt"
	"io"
)

// Request is one decoded client request: cmd:i32 table_id:i32 body…
// Which of the command-specific fields are meaningful
// depends on Command.
type Request struct {
	Command Command
	TableID int32

	// INSERT, UPDATE
	Values []Value

	// UPDATE, DROP, GET
	RowID int64

	// UPDATE only
	Version int64

	// SCAN only
	ColumnID int32
	Operator Operator
	Operand  Value
}

// ReadRequest decodes exactly one Request from rd. A short read, an
// unrecognised command, or a malformed tagged value returns an error
// wrapping ErrDecode; the server treats that as
// BAD_REQUEST and ends the connection.
func ReadRequest(rd io.Reader) (Request, error) {
	r := newReader(rd)

	var req Request
	req.Command = Command(r.i32())
	req.TableID = r.i32()

	switch req.Command {
	case CmdInsert:
		n := r.i32()
		req.Values = readValues(r, n)
	case CmdUpdate:
		req.RowID = r.i64()
		req.Version = r.i64()
		n := r.i32()
		req.Values = readValues(r, n)
	case CmdDrop, CmdGet:
		req.RowID = r.i64()
	case CmdScan:
		req.ColumnID = r.i32()
		req.Operator = Operator(r.i32())
		req.Operand = decodeValue(r)
	case CmdExit:
		// no body
	default:
		r.fail(ErrDecode)
	}

	if r.err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrDecode, r.err)
	}
	return req, nil
}

func readValues(r *reader, n int32) []Value {
	if n < 0 {
		r.fail(ErrDecode)
		return nil
	}
	values := make([]Value, 0, n)
	for i := int32(0); i < n; i++ {
		values = append(values, decodeValue(r))
		if r.err != nil {
			return nil
		}
	}
	return values
}

// Encode serialises req back into wire form. Used by clients and by
// the round-trip property tests.
func (req Request) Encode() []byte {
	w := newWriter()
	w.i32(int32(req.Command))
	w.i32(req.TableID)

	switch req.Command {
	case CmdInsert:
		w.i32(int32(len(req.Values)))
		for _, v := range req.Values {
			encodeValue(w, v)
		}
	case CmdUpdate:
		w.i64(req.RowID)
		w.i64(req.Version)
		w.i32(int32(len(req.Values)))
		for _, v := range req.Values {
			encodeValue(w, v)
		}
	case CmdDrop, CmdGet:
		w.i64(req.RowID)
	case CmdScan:
		w.i32(req.ColumnID)
		w.i32(int32(req.Operator))
		encodeValue(w, req.Operand)
	case CmdExit:
		// no body
	}
	return w.bytes()
}
