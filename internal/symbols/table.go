package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"named/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table.
type Hints struct{ Symbols uint }

// Table aggregates the symbol arena and class member indexes.
type Table struct {
	Symbols *Symbols
	Strings *source.Interner
	classes map[source.StringID]SymbolID
	order   []SymbolID
	members map[SymbolID]map[source.StringID][]SymbolID
}

// NewTable builds a fresh table. If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Symbols: NewSymbols(symCap),
		Strings: strings,
		classes: make(map[source.StringID]SymbolID),
		members: make(map[SymbolID]map[source.StringID][]SymbolID),
	}
}

// Get is a shortcut for Symbols.Get.
func (t *Table) Get(id SymbolID) *Symbol {
	return t.Symbols.Get(id)
}

// DeclareClass registers a class. The second result is false when the name is taken;
// the existing symbol is returned in that case.
func (t *Table) DeclareClass(sym *Symbol) (SymbolID, bool) {
	if prev, ok := t.classes[sym.Name]; ok {
		return prev, false
	}
	sym.Kind = SymbolClass
	id := t.Symbols.New(sym)
	t.classes[sym.Name] = id
	t.order = append(t.order, id)
	return id, true
}

// Class finds a class by name.
func (t *Table) Class(name source.StringID) (SymbolID, bool) {
	id, ok := t.classes[name]
	return id, ok
}

// Classes returns class symbols in declaration order.
func (t *Table) Classes() []SymbolID {
	return t.order
}

// AddMember declares a member of owner. Overloads share one name.
func (t *Table) AddMember(owner SymbolID, sym *Symbol) SymbolID {
	sym.Owner = owner
	id := t.Symbols.New(sym)
	byName, ok := t.members[owner]
	if !ok {
		byName = make(map[source.StringID][]SymbolID)
		t.members[owner] = byName
	}
	byName[sym.Name] = append(byName[sym.Name], id)
	return id
}

// Members returns the members of owner named name, in declaration order.
func (t *Table) Members(owner SymbolID, name source.StringID) []SymbolID {
	return t.members[owner][name]
}

// NewLocal allocates a symbol that belongs to no member index (params, locals).
func (t *Table) NewLocal(sym *Symbol) SymbolID {
	return t.Symbols.New(sym)
}

// NameOf returns the symbol name or "" for unknown symbols.
func (t *Table) NameOf(id SymbolID) string {
	sym := t.Get(id)
	if sym == nil {
		return ""
	}
	name, _ := t.Strings.Lookup(sym.Name)
	return name
}
