package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Error  TypeID
	Null   TypeID
	Void   TypeID
	Bool   TypeID
	Byte   TypeID
	Short  TypeID
	Char   TypeID
	Int    TypeID
	Long   TypeID
	Float  TypeID
	Double TypeID
	String TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
	byName   map[string]TypeID
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 64),
	}
	in.types = append(in.types, Type{Kind: KindInvalid}) // 0 is reserved
	in.builtins = Builtins{
		Error:  in.Intern(Type{Kind: KindError}),
		Null:   in.Intern(Type{Kind: KindNull}),
		Void:   in.Intern(Type{Kind: KindVoid}),
		Bool:   in.Intern(Type{Kind: KindBool}),
		Byte:   in.Intern(Type{Kind: KindByte}),
		Short:  in.Intern(Type{Kind: KindShort}),
		Char:   in.Intern(Type{Kind: KindChar}),
		Int:    in.Intern(Type{Kind: KindInt}),
		Long:   in.Intern(Type{Kind: KindLong}),
		Float:  in.Intern(Type{Kind: KindFloat}),
		Double: in.Intern(Type{Kind: KindDouble}),
		String: in.Intern(Type{Kind: KindString}),
	}
	b := in.builtins
	in.byName = map[string]TypeID{
		"void": b.Void, "boolean": b.Bool, "byte": b.Byte, "short": b.Short,
		"char": b.Char, "int": b.Int, "long": b.Long, "float": b.Float,
		"double": b.Double, "string": b.String,
	}
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Builtin maps a primitive type name (`int`, `string`, ...) to its TypeID.
func (in *Interner) Builtin(name string) (TypeID, bool) {
	id, ok := in.byName[name]
	return id, ok
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// KindOf returns KindInvalid for unknown ids.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, _ := in.Lookup(id)
	return tt.Kind
}

// IsError reports the error type and missing types alike.
func (in *Interner) IsError(id TypeID) bool {
	k := in.KindOf(id)
	return k == KindError || k == KindInvalid
}
