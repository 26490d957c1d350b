package ast

// ColumnConstraintKind enumerates inline column constraints.
type ColumnConstraintKind int

const (
	ColumnNotNull ColumnConstraintKind = iota
	ColumnNull
	ColumnDefault
	ColumnPrimaryKey
	ColumnUnique
	ColumnCheck
	ColumnReferences
)

// ReferenceDef is the target of a FOREIGN KEY / REFERENCES constraint.
type ReferenceDef struct {
	Table    *QualifiedName
	Columns  []*Identifier
	OnDelete string
	OnUpdate string
}

func (r *ReferenceDef) Clone() *ReferenceDef {
	if r == nil {
		return nil
	}
	return &ReferenceDef{
		Table:    cloneQNamePtr(r.Table),
		Columns:  cloneIdentSlice(r.Columns),
		OnDelete: r.OnDelete,
		OnUpdate: r.OnUpdate,
	}
}

// ColumnConstraint is one constraint attached directly to a column
// definition.
type ColumnConstraint struct {
	Comments
	Kind      ColumnConstraintKind
	Name      *Identifier
	Expr      Expr
	Reference *ReferenceDef
}

func (c *ColumnConstraint) Clone() *ColumnConstraint {
	if c == nil {
		return nil
	}
	return &ColumnConstraint{
		Comments:  c.Comments.Clone(),
		Kind:      c.Kind,
		Name:      cloneIdentPtr(c.Name),
		Expr:      cloneExpr(c.Expr),
		Reference: c.Reference.Clone(),
	}
}

func cloneColumnConstraints(in []*ColumnConstraint) []*ColumnConstraint {
	if in == nil {
		return nil
	}
	out := make([]*ColumnConstraint, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

// ColumnDef is one column entry of a CREATE TABLE statement.
type ColumnDef struct {
	Comments
	Name        *Identifier
	Type        *TypeName
	Constraints []*ColumnConstraint
}

func (c *ColumnDef) Clone() *ColumnDef {
	if c == nil {
		return nil
	}
	return &ColumnDef{
		Comments:    c.Comments.Clone(),
		Name:        cloneIdentPtr(c.Name),
		Type:        c.Type.Clone(),
		Constraints: cloneColumnConstraints(c.Constraints),
	}
}

func cloneColumnDefs(in []*ColumnDef) []*ColumnDef {
	if in == nil {
		return nil
	}
	out := make([]*ColumnDef, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

// TableConstraintKind enumerates table-level constraints.
type TableConstraintKind int

const (
	TablePrimaryKey TableConstraintKind = iota
	TableUnique
	TableCheck
	TableForeignKey
)

// TableConstraint is one table-level constraint, optionally named.
// The emitter's constraint style (postgres: `CONSTRAINT name <kind>`,
// mysql: `<kind> name`) is a rendering choice, not an AST shape
// difference (spec.md section 4.4, "Constraint style").
type TableConstraint struct {
	Comments
	Kind      TableConstraintKind
	Name      *Identifier
	Columns   []*Identifier
	Expr      Expr // for CHECK
	Reference *ReferenceDef
}

func (t *TableConstraint) Clone() *TableConstraint {
	if t == nil {
		return nil
	}
	return &TableConstraint{
		Comments:  t.Comments.Clone(),
		Kind:      t.Kind,
		Name:      cloneIdentPtr(t.Name),
		Columns:   cloneIdentSlice(t.Columns),
		Expr:      cloneExpr(t.Expr),
		Reference: t.Reference.Clone(),
	}
}

func cloneTableConstraints(in []*TableConstraint) []*TableConstraint {
	if in == nil {
		return nil
	}
	out := make([]*TableConstraint, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

// CreateTable is CREATE [TEMPORARY] TABLE [IF NOT EXISTS] name (...).
type CreateTable struct {
	Comments
	Temporary   bool
	IfNotExists bool
	Name        *QualifiedName
	Columns     []*ColumnDef
	Constraints []*TableConstraint
}

func (*CreateTable) ddlNode() {}
func (c *CreateTable) Clone() Node {
	return &CreateTable{
		Comments:    c.Comments.Clone(),
		Temporary:   c.Temporary,
		IfNotExists: c.IfNotExists,
		Name:        cloneQNamePtr(c.Name),
		Columns:     cloneColumnDefs(c.Columns),
		Constraints: cloneTableConstraints(c.Constraints),
	}
}

// IndexColumn is one column (or expression) entry of a CREATE INDEX.
type IndexColumn struct {
	Expr  Expr
	Dir   SortDir
	Nulls NullsPos
}

func (i *IndexColumn) Clone() *IndexColumn {
	if i == nil {
		return nil
	}
	return &IndexColumn{Expr: cloneExpr(i.Expr), Dir: i.Dir, Nulls: i.Nulls}
}

func cloneIndexColumns(in []*IndexColumn) []*IndexColumn {
	if in == nil {
		return nil
	}
	out := make([]*IndexColumn, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

// CreateIndex is CREATE [UNIQUE] INDEX [CONCURRENTLY] [IF NOT EXISTS]
// name ON table USING method (cols) [INCLUDE (...)] [WITH (...)]
// [TABLESPACE ...] [WHERE ...].
type CreateIndex struct {
	Comments
	Unique       bool
	Concurrently bool
	IfNotExists  bool
	Name         *Identifier
	Table        *QualifiedName
	Method       string
	Columns      []*IndexColumn
	Include      []*Identifier
	With         map[string]string
	Tablespace   string
	Where        Expr
}

func (*CreateIndex) ddlNode() {}
func (c *CreateIndex) Clone() Node {
	withCopy := map[string]string(nil)
	if c.With != nil {
		withCopy = make(map[string]string, len(c.With))
		for k, v := range c.With {
			withCopy[k] = v
		}
	}
	return &CreateIndex{
		Comments:     c.Comments.Clone(),
		Unique:       c.Unique,
		Concurrently: c.Concurrently,
		IfNotExists:  c.IfNotExists,
		Name:         cloneIdentPtr(c.Name),
		Table:        cloneQNamePtr(c.Table),
		Method:       c.Method,
		Columns:      cloneIndexColumns(c.Columns),
		Include:      cloneIdentSlice(c.Include),
		With:         withCopy,
		Tablespace:   c.Tablespace,
		Where:        cloneExpr(c.Where),
	}
}

// DropTable is DROP TABLE [IF EXISTS] name, ... [CASCADE|RESTRICT].
type DropTable struct {
	Comments
	IfExists bool
	Names    []*QualifiedName
	Cascade  bool
	Restrict bool
}

func (*DropTable) ddlNode() {}
func (d *DropTable) Clone() Node {
	names := make([]*QualifiedName, len(d.Names))
	for i, n := range d.Names {
		names[i] = cloneQNamePtr(n)
	}
	return &DropTable{Comments: d.Comments.Clone(), IfExists: d.IfExists, Names: names, Cascade: d.Cascade, Restrict: d.Restrict}
}

// DropIndex is DROP INDEX [IF EXISTS] name, ... [CASCADE|RESTRICT].
type DropIndex struct {
	Comments
	IfExists bool
	Names    []*QualifiedName
	Cascade  bool
	Restrict bool
}

func (*DropIndex) ddlNode() {}
func (d *DropIndex) Clone() Node {
	names := make([]*QualifiedName, len(d.Names))
	for i, n := range d.Names {
		names[i] = cloneQNamePtr(n)
	}
	return &DropIndex{Comments: d.Comments.Clone(), IfExists: d.IfExists, Names: names, Cascade: d.Cascade, Restrict: d.Restrict}
}

// DropSchema is DROP SCHEMA [IF EXISTS] name, ... [CASCADE|RESTRICT].
type DropSchema struct {
	Comments
	IfExists bool
	Names    []*Identifier
	Cascade  bool
	Restrict bool
}

func (*DropSchema) ddlNode() {}
func (d *DropSchema) Clone() Node {
	return &DropSchema{Comments: d.Comments.Clone(), IfExists: d.IfExists, Names: cloneIdentSlice(d.Names), Cascade: d.Cascade, Restrict: d.Restrict}
}

// CreateSchema is CREATE SCHEMA [IF NOT EXISTS] name.
type CreateSchema struct {
	Comments
	IfNotExists bool
	Name        *Identifier
}

func (*CreateSchema) ddlNode() {}
func (c *CreateSchema) Clone() Node {
	return &CreateSchema{Comments: c.Comments.Clone(), IfNotExists: c.IfNotExists, Name: cloneIdentPtr(c.Name)}
}

// AlterTableAction is one ADD/DROP/ALTER clause of an ALTER TABLE.
type AlterTableAction interface {
	Node
	alterActionNode()
}

// AddConstraint is ADD CONSTRAINT name ....
type AddConstraint struct {
	Constraint *TableConstraint
}

func (*AddConstraint) alterActionNode() {}
func (a *AddConstraint) Clone() Node    { return &AddConstraint{Constraint: a.Constraint.Clone()} }

// DropConstraint is DROP CONSTRAINT name.
type DropConstraint struct {
	Name *Identifier
}

func (*DropConstraint) alterActionNode() {}
func (d *DropConstraint) Clone() Node    { return &DropConstraint{Name: cloneIdentPtr(d.Name)} }

// DropColumn is DROP COLUMN name.
type DropColumn struct {
	Name *Identifier
}

func (*DropColumn) alterActionNode() {}
func (d *DropColumn) Clone() Node    { return &DropColumn{Name: cloneIdentPtr(d.Name)} }

// AddColumn is ADD COLUMN ....
type AddColumn struct {
	Column *ColumnDef
}

func (*AddColumn) alterActionNode() {}
func (a *AddColumn) Clone() Node    { return &AddColumn{Column: a.Column.Clone()} }

// AlterColumnDefault is ALTER COLUMN name SET|DROP DEFAULT [expr].
type AlterColumnDefault struct {
	Column  *Identifier
	Drop    bool
	Default Expr
}

func (*AlterColumnDefault) alterActionNode() {}
func (a *AlterColumnDefault) Clone() Node {
	return &AlterColumnDefault{Column: cloneIdentPtr(a.Column), Drop: a.Drop, Default: cloneExpr(a.Default)}
}

// AlterTable is ALTER TABLE [IF EXISTS] [ONLY] name <action>.
type AlterTable struct {
	Comments
	IfExists bool
	Only     bool
	Name     *QualifiedName
	Action   AlterTableAction
}

func (*AlterTable) ddlNode() {}
func (a *AlterTable) Clone() Node {
	var action AlterTableAction
	if a.Action != nil {
		action = a.Action.Clone().(AlterTableAction)
	}
	return &AlterTable{Comments: a.Comments.Clone(), IfExists: a.IfExists, Only: a.Only, Name: cloneQNamePtr(a.Name), Action: action}
}

// Explain is EXPLAIN [(options)] stmt.
type Explain struct {
	Comments
	Options []string
	Stmt    Node
}

func (*Explain) ddlNode() {}
func (e *Explain) Clone() Node {
	var stmt Node
	if e.Stmt != nil {
		stmt = e.Stmt.Clone()
	}
	return &Explain{Comments: e.Comments.Clone(), Options: cloneStrings(e.Options), Stmt: stmt}
}

// Analyze is ANALYZE [VERBOSE] [target [(cols)]].
type Analyze struct {
	Comments
	Verbose bool
	Target  *QualifiedName
	Columns []*Identifier
}

func (*Analyze) ddlNode() {}
func (a *Analyze) Clone() Node {
	return &Analyze{Comments: a.Comments.Clone(), Verbose: a.Verbose, Target: cloneQNamePtr(a.Target), Columns: cloneIdentSlice(a.Columns)}
}

// SequenceOptions holds the enumerated CREATE/ALTER SEQUENCE clauses.
type SequenceOptions struct {
	Increment   *int64
	Start       *int64
	MinValue    *int64
	MaxValue    *int64
	Cache       *int64
	Cycle       *bool
	RestartWith *int64
	OwnedBy     *QualifiedName
}

func cloneInt64Ptr(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBoolPtr(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (s SequenceOptions) Clone() SequenceOptions {
	return SequenceOptions{
		Increment:   cloneInt64Ptr(s.Increment),
		Start:       cloneInt64Ptr(s.Start),
		MinValue:    cloneInt64Ptr(s.MinValue),
		MaxValue:    cloneInt64Ptr(s.MaxValue),
		Cache:       cloneInt64Ptr(s.Cache),
		Cycle:       cloneBoolPtr(s.Cycle),
		RestartWith: cloneInt64Ptr(s.RestartWith),
		OwnedBy:     cloneQNamePtr(s.OwnedBy),
	}
}

// CreateSequence is CREATE SEQUENCE [IF NOT EXISTS] name <options>.
type CreateSequence struct {
	Comments
	IfNotExists bool
	Name        *QualifiedName
	Options     SequenceOptions
}

func (*CreateSequence) ddlNode() {}
func (c *CreateSequence) Clone() Node {
	return &CreateSequence{Comments: c.Comments.Clone(), IfNotExists: c.IfNotExists, Name: cloneQNamePtr(c.Name), Options: c.Options.Clone()}
}

// AlterSequence is ALTER SEQUENCE name <options>.
type AlterSequence struct {
	Comments
	Name    *QualifiedName
	Options SequenceOptions
}

func (*AlterSequence) ddlNode() {}
func (a *AlterSequence) Clone() Node {
	return &AlterSequence{Comments: a.Comments.Clone(), Name: cloneQNamePtr(a.Name), Options: a.Options.Clone()}
}
