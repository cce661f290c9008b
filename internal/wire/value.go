// Package wire implements the EasyDB binary wire protocol: framed
// fixed-capacity packets, tagged values, and the request/response
// encodings clients and the server exchange over TCP.
package wire

import "fmt"

// Tag identifies the variant held by a Value.
type Tag int32

const (
	TagNull    Tag = 0
	TagInteger Tag = 1
	TagFloat   Tag = 2
	TagText    Tag = 3
	TagForeign Tag = 4
)

func (t Tag) String() string {
	switch t {
	case TagNull:
		return "Null"
	case TagInteger:
		return "Integer"
	case TagFloat:
		return "Float"
	case TagText:
		return "Text"
	case TagForeign:
		return "Foreign"
	default:
		return fmt.Sprintf("Tag(%d)", int32(t))
	}
}

// Value is a tagged union over the five value variants the protocol
// carries: Null, Integer, Float, Text, and Foreign. Only the field
// matching Tag is meaningful; the others are zero.
type Value struct {
	Tag     Tag
	Integer int64
	Float   float64
	Text    string
	Foreign int64
}

// Null returns the Null value.
func Null() Value { return Value{Tag: TagNull} }

// Integer returns an Integer value.
func Integer(v int64) Value { return Value{Tag: TagInteger, Integer: v} }

// Float returns a Float value.
func Float(v float64) Value { return Value{Tag: TagFloat, Float: v} }

// Text returns a Text value.
func Text(v string) Value { return Value{Tag: TagText, Text: v} }

// Foreign returns a Foreign value (a row id in some reference table).
func Foreign(v int64) Value { return Value{Tag: TagForeign, Foreign: v} }

// IsNull reports whether v holds the Null variant.
func (v Value) IsNull() bool { return v.Tag == TagNull }

// Equal reports structural equality. Values of different variants are
// never equal, including Null compared to anything (Null is only equal
// to Null).
func (v Value) Equal(o Value) bool {
	if v.Tag != o.Tag {
		return false
	}
	switch v.Tag {
	case TagNull:
		return true
	case TagInteger:
		return v.Integer == o.Integer
	case TagFloat:
		return v.Float == o.Float
	case TagText:
		return v.Text == o.Text
	case TagForeign:
		return v.Foreign == o.Foreign
	default:
		return false
	}
}

// Compare orders two values of the same variant: numeric ordering for
// Integer, Float, and Foreign, lexicographic ordering for Text. It
// returns -1, 0, or 1. Compare must not be called on values of
// differing variants or on Null — callers are expected to have
// type-checked the operands first (see engine.Query).
func (v Value) Compare(o Value) int {
	switch v.Tag {
	case TagInteger:
		return compareInt64(v.Integer, o.Integer)
	case TagFloat:
		return compareFloat64(v.Float, o.Float)
	case TagText:
		switch {
		case v.Text < o.Text:
			return -1
		case v.Text > o.Text:
			return 1
		default:
			return 0
		}
	case TagForeign:
		return compareInt64(v.Foreign, o.Foreign)
	default:
		panic(fmt.Sprintf("wire: Compare called on %s value", v.Tag))
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
