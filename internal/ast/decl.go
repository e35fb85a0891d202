package ast

import "named/internal/source"

type DeclKind uint8

const (
	DeclField DeclKind = iota
	DeclMethod
	DeclCtor
	// DeclExtern is a method signature without a body.
	DeclExtern
)

// Attr is `@name` or `@name(value)` written before a parameter.
type Attr struct {
	Name  source.StringID
	Span  source.Span
	Value ExprID
}

type Param struct {
	Name     source.StringID
	NameSpan source.Span
	Span     source.Span
	Type     TypeExpr
	Variadic bool
	Attrs    []Attr
}

// Decl is a class member.
type Decl struct {
	Kind     DeclKind
	Owner    ClassID
	Name     source.StringID
	NameSpan source.Span
	Span     source.Span
	Params   []ParamID
	// Result is empty for ctors and void methods; for fields it is the field type.
	Result TypeExpr
	Body   []StmtID
	// Init is the field initializer.
	Init ExprID
}

func (d *Decl) IsCallable() bool { return d.Kind != DeclField }

type ClassDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Span     source.Span
	Members  []DeclID
}

type Unit struct {
	File    source.FileID
	Span    source.Span
	Classes []ClassID
}

type Decls struct {
	Classes *Arena[ClassDecl]
	Arena   *Arena[Decl]
	Params  *Arena[Param]
}

func NewDecls(capHint uint) *Decls {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Decls{
		Classes: NewArena[ClassDecl](capHint / 4),
		Arena:   NewArena[Decl](capHint),
		Params:  NewArena[Param](capHint * 2),
	}
}

func (d *Decls) NewClass(name source.StringID, nameSpan, span source.Span) ClassID {
	return ClassID(d.Classes.Allocate(ClassDecl{Name: name, NameSpan: nameSpan, Span: span}))
}

func (d *Decls) Class(id ClassID) *ClassDecl {
	return d.Classes.Get(uint32(id))
}

// NewDecl allocates a member and appends it to the owner class.
func (d *Decls) NewDecl(decl Decl) DeclID {
	id := DeclID(d.Arena.Allocate(decl))
	if cls := d.Class(decl.Owner); cls != nil {
		cls.Members = append(cls.Members, id)
	}
	return id
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

func (d *Decls) NewParam(p Param) ParamID {
	return ParamID(d.Params.Allocate(p))
}

func (d *Decls) Param(id ParamID) *Param {
	return d.Params.Get(uint32(id))
}

// FindAttr returns the first attribute of the parameter with the given name.
func (p *Param) FindAttr(name source.StringID) (Attr, bool) {
	for _, a := range p.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// CtorName is the member name constructors are declared and looked up under.
const CtorName = "init"
