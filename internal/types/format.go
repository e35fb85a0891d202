package types

import (
	"named/internal/source"
)

// Format renders a type the way it is written in source.
func (in *Interner) Format(id TypeID, strs *source.Interner) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case KindClass:
		if strs != nil {
			if name, ok := strs.Lookup(tt.Name); ok {
				return name
			}
		}
		return "class?"
	case KindArray:
		return in.Format(tt.Elem, strs) + "[]"
	default:
		return tt.Kind.String()
	}
}
