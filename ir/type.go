package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	ObjectType
	ArrayType

	// MissingType marks the "no value at this key or index" sentinel used
	// by the changes package. It is never produced by parsing or by the
	// constructors in this package, so it cannot collide with a value that
	// occurs in a real document.
	MissingType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		ObjectType:  "Object",
		ArrayType:   "Array",
		StringType:  "String",
		NumberType:  "Number",
		BoolType:    "Bool",
		NullType:    "Null",
		MissingType: "Missing",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":    NullType,
		"Bool":    BoolType,
		"Number":  NumberType,
		"String":  StringType,
		"Array":   ArrayType,
		"Object":  ObjectType,
		"Missing": MissingType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		NumberType,
		StringType,
		BoolType,
		ObjectType,
		ArrayType,
		MissingType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ArrayType:
		return false
	default:
		return true
	}
}
