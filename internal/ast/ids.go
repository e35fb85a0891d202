package ast

type (
	// главные сущности
	UnitID  uint32
	ClassID uint32
	DeclID  uint32
	StmtID  uint32
	ExprID  uint32
	// подсущности
	ParamID   uint32
	PayloadID uint32
)

const (
	NoUnitID    UnitID    = 0
	NoClassID   ClassID   = 0
	NoDeclID    DeclID    = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoParamID   ParamID   = 0
	NoPayloadID PayloadID = 0
)

func (id UnitID) IsValid() bool    { return id != NoUnitID }
func (id ClassID) IsValid() bool   { return id != NoClassID }
func (id DeclID) IsValid() bool    { return id != NoDeclID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id ParamID) IsValid() bool   { return id != NoParamID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
