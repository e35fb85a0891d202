package types

// числовой ранг для расширяющих преобразований
var widenRank = map[Kind]int{
	KindByte:   1,
	KindShort:  2,
	KindInt:    3,
	KindLong:   4,
	KindFloat:  5,
	KindDouble: 6,
}

// IsAssignable reports whether a value of type from may be stored in to.
// Erroneous types are never assignable in either direction.
func (in *Interner) IsAssignable(from, to TypeID) bool {
	if in.IsError(from) || in.IsError(to) {
		return false
	}
	if from == to {
		return true
	}
	fk, tk := in.KindOf(from), in.KindOf(to)
	if fk == KindNull {
		return tk.IsReference()
	}
	if fk == KindChar {
		// char widens to int and above, but not to byte/short
		return widenRank[tk] >= widenRank[KindInt]
	}
	fr, fok := widenRank[fk]
	tr, tok := widenRank[tk]
	if fok && tok {
		return fr <= tr
	}
	// arrays are invariant; classes are nominal
	return false
}
