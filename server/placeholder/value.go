package placeholder

import "strconv"

type valueKind uint8

const (
	kindNull valueKind = iota
	kindBool
	kindText
)

// Value is the result of resolving a placeholder. A Value is either null, a
// boolean or text. The zero Value is Null.
type Value struct {
	kind valueKind
	b    bool
	s    string
}

// Null is the Value returned when a placeholder has nothing to report, for
// example because no player is attached to the invocation. It is distinct
// from Bool(false).
var Null = Value{}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: kindBool, b: b}
}

// Text returns a textual Value.
func Text(s string) Value {
	return Value{kind: kindText, s: s}
}

// IsNull reports if v is Null.
func (v Value) IsNull() bool {
	return v.kind == kindNull
}

// AsBool returns the boolean held by v. The second return value is false if v
// does not hold a boolean.
func (v Value) AsBool() (b bool, ok bool) {
	return v.b, v.kind == kindBool
}

// AsText returns the text held by v. The second return value is false if v does
// not hold text.
func (v Value) AsText() (s string, ok bool) {
	return v.s, v.kind == kindText
}

// String renders v the way it is substituted into messages.
func (v Value) String() string {
	switch v.kind {
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindText:
		return v.s
	}
	return "null"
}
