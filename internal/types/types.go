package types

import (
	"fmt"

	"named/internal/source"
)

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindError is the type of anything that failed to resolve.
	KindError
	// KindNull is the type of the `null` literal.
	KindNull
	KindVoid
	KindBool
	KindByte
	KindShort
	KindChar
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindClass
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindError:
		return "<error>"
	case KindNull:
		return "null"
	case KindVoid:
		return "void"
	case KindBool:
		return "boolean"
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindClass:
		return "class"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind Kind
	Elem TypeID          // arrays
	Name source.StringID // classes
}

// IsPrimitive reports value types: numerics, char and boolean.
func (k Kind) IsPrimitive() bool {
	return k >= KindBool && k <= KindDouble
}

// IsNumeric reports byte..double, char included.
func (k Kind) IsNumeric() bool {
	return k >= KindByte && k <= KindDouble
}

// IsReference reports kinds that accept `null`.
func (k Kind) IsReference() bool {
	return k == KindString || k == KindClass || k == KindArray
}

// MakeArray describes T[].
func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}

// MakeClass describes a nominal class type.
func MakeClass(name source.StringID) Type {
	return Type{Kind: KindClass, Name: name}
}
