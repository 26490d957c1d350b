package ast

// Literal is a numeric, string, boolean, or NULL literal. IsString
// distinguishes a quoted literal (which the emitter re-quotes) from a
// bare numeric/keyword literal (emitted verbatim).
type Literal struct {
	Comments
	Value    string
	IsString bool
}

func (*Literal) exprNode() {}
func (l *Literal) Clone() Node {
	return &Literal{Comments: l.Comments.Clone(), Value: l.Value, IsString: l.IsString}
}

// Identifier is a single, unqualified name: a column, alias, CTE name,
// or similar.
type Identifier struct {
	Comments
	Name string
}

func (*Identifier) exprNode() {}
func (i *Identifier) Clone() Node {
	return &Identifier{Comments: i.Comments.Clone(), Name: i.Name}
}

// QualifiedName is a possibly-namespaced name: a bare column reference
// (Namespaces empty), `table.column`, or `schema.table.column`.
type QualifiedName struct {
	Comments
	Namespaces []*Identifier
	Name       *Identifier
}

func (*QualifiedName) exprNode() {}
func (q *QualifiedName) Clone() Node {
	return &QualifiedName{
		Comments:   q.Comments.Clone(),
		Namespaces: cloneIdentSlice(q.Namespaces),
		Name:       cloneIdentPtr(q.Name),
	}
}

// Qualifier returns the dotted prefix before Name, e.g. "a" for "a.id"
// or "" for a bare "id".
func (q *QualifiedName) Qualifier() string {
	if len(q.Namespaces) == 0 {
		return ""
	}
	return q.Namespaces[len(q.Namespaces)-1].Name
}

// Parameter is a bind parameter: named (:name, @name), indexed ($1), or
// anonymous (?). Index is an optional explicit position: the parser
// leaves it nil, and the emitter does not write it (it numbers
// parameters in visit order). transform.ParameterCollector honors Index
// when it is set.
type Parameter struct {
	Comments
	Name  string
	Index *int
}

func (*Parameter) exprNode() {}
func (p *Parameter) Clone() Node {
	var idx *int
	if p.Index != nil {
		v := *p.Index
		idx = &v
	}
	return &Parameter{Comments: p.Comments.Clone(), Name: p.Name, Index: idx}
}

// OverClause is the OVER(...) window-function suffix.
type OverClause struct {
	PartitionBy []Expr
	OrderBy     *OrderBy
	Frame       *WindowFrame
	WindowName  *Identifier // OVER windowname, mutually exclusive with the fields above
}

func (o *OverClause) Clone() *OverClause {
	if o == nil {
		return nil
	}
	return &OverClause{
		PartitionBy: cloneExprSlice(o.PartitionBy),
		OrderBy:     cloneOrderByPtr(o.OrderBy),
		Frame:       o.Frame.Clone(),
		WindowName:  cloneIdentPtr(o.WindowName),
	}
}

// FunctionCall is a named function invocation, optionally DISTINCT,
// with an internal ORDER BY (e.g. array_agg(x ORDER BY y)), an OVER
// clause, and/or WITH ORDINALITY (set-returning table functions).
type FunctionCall struct {
	Comments
	Name            *QualifiedName
	Args            []Expr
	Distinct        bool
	InternalOrderBy *OrderBy
	Over            *OverClause
	WithOrdinality  bool
}

func (*FunctionCall) exprNode() {}
func (*FunctionCall) sourceNode() {}
func (f *FunctionCall) Clone() Node {
	return &FunctionCall{
		Comments:        f.Comments.Clone(),
		Name:            cloneQNamePtr(f.Name),
		Args:            cloneExprSlice(f.Args),
		Distinct:        f.Distinct,
		InternalOrderBy: cloneOrderByPtr(f.InternalOrderBy),
		Over:            f.Over.Clone(),
		WithOrdinality:  f.WithOrdinality,
	}
}

// Unary is a prefix operator expression: -x, +x, NOT x, ~x.
type Unary struct {
	Comments
	Op      string
	Operand Expr
}

func (*Unary) exprNode() {}
func (u *Unary) Clone() Node {
	return &Unary{Comments: u.Comments.Clone(), Op: u.Op, Operand: cloneExpr(u.Operand)}
}

// Binary is an infix operator expression.
type Binary struct {
	Comments
	Op    string
	Left  Expr
	Right Expr
}

func (*Binary) exprNode() {}
func (b *Binary) Clone() Node {
	return &Binary{Comments: b.Comments.Clone(), Op: b.Op, Left: cloneExpr(b.Left), Right: cloneExpr(b.Right)}
}

// Paren is a parenthesized sub-expression. Preserved as its own node
// (rather than folded away) because the emitter places comments
// adjacent to the parentheses (spec.md section 4.4, rule 4).
type Paren struct {
	Comments
	Inner Expr
}

func (*Paren) exprNode() {}
func (p *Paren) Clone() Node {
	return &Paren{Comments: p.Comments.Clone(), Inner: cloneExpr(p.Inner)}
}

// TypeName is a data type reference, e.g. `int`, `varchar(255)`,
// `numeric(10, 2)`.
type TypeName struct {
	Name string
	Args []Expr
}

func (t *TypeName) Clone() *TypeName {
	if t == nil {
		return nil
	}
	return &TypeName{Name: t.Name, Args: cloneExprSlice(t.Args)}
}

// Cast is CAST(Input AS Type); the emitter chooses standard
// `CAST(x AS t)` or postgres `x::t` rendering per dialect (spec.md
// section 4.4).
type Cast struct {
	Comments
	Input Expr
	Type  *TypeName
}

func (*Cast) exprNode() {}
func (c *Cast) Clone() Node {
	return &Cast{Comments: c.Comments.Clone(), Input: cloneExpr(c.Input), Type: c.Type.Clone()}
}

// CaseKeyValuePair is one WHEN ... THEN ... arm.
type CaseKeyValuePair struct {
	Comments
	When Expr
	Then Expr
}

func (*CaseKeyValuePair) exprNode() {}
func (c *CaseKeyValuePair) Clone() Node {
	return &CaseKeyValuePair{Comments: c.Comments.Clone(), When: cloneExpr(c.When), Then: cloneExpr(c.Then)}
}

// SwitchCaseArgument holds the WHEN/THEN arms and optional ELSE of a
// CASE, plus any comments that trail the final THEN/ELSE value but
// should render after the CASE's END keyword (spec.md section 4.4,
// rule 6).
type SwitchCaseArgument struct {
	Cases         []*CaseKeyValuePair
	ElseValue     Expr
	AfterComments []string
}

func (s *SwitchCaseArgument) Clone() *SwitchCaseArgument {
	if s == nil {
		return nil
	}
	cases := make([]*CaseKeyValuePair, len(s.Cases))
	for i, c := range s.Cases {
		cases[i] = c.Clone().(*CaseKeyValuePair)
	}
	return &SwitchCaseArgument{Cases: cases, ElseValue: cloneExpr(s.ElseValue), AfterComments: cloneStrings(s.AfterComments)}
}

// Case is CASE [Condition] WHEN ... THEN ... [ELSE ...] END. A nil
// Condition is a "searched" CASE; a non-nil Condition is a "simple"
// CASE comparing Condition against each WHEN value.
type Case struct {
	Comments
	Condition Expr
	Arg       *SwitchCaseArgument
}

func (*Case) exprNode() {}
func (c *Case) Clone() Node {
	return &Case{Comments: c.Comments.Clone(), Condition: cloneExpr(c.Condition), Arg: c.Arg.Clone()}
}

// Between is [NOT] BETWEEN.
type Between struct {
	Comments
	Neg   bool
	Value Expr
	Lower Expr
	Upper Expr
}

func (*Between) exprNode() {}
func (b *Between) Clone() Node {
	return &Between{Comments: b.Comments.Clone(), Neg: b.Neg, Value: cloneExpr(b.Value), Lower: cloneExpr(b.Lower), Upper: cloneExpr(b.Upper)}
}

// Tuple is a parenthesized, comma-separated list used as a single value,
// e.g. a row constructor `(a, b)` or one VALUES tuple.
type Tuple struct {
	Comments
	Elements []Expr
}

func (*Tuple) exprNode() {}
func (t *Tuple) Clone() Node {
	return &Tuple{Comments: t.Comments.Clone(), Elements: cloneExprSlice(t.Elements)}
}

// ValueList is a bare comma-separated expression list, e.g. the operand
// of IN (1, 2, 3).
type ValueList struct {
	Comments
	Elements []Expr
}

func (*ValueList) exprNode() {}
func (v *ValueList) Clone() Node {
	return &ValueList{Comments: v.Comments.Clone(), Elements: cloneExprSlice(v.Elements)}
}

// InlineQuery is a scalar subquery used as a value expression.
type InlineQuery struct {
	Comments
	Query QueryRoot
}

func (*InlineQuery) exprNode() {}
func (q *InlineQuery) Clone() Node {
	return &InlineQuery{Comments: q.Comments.Clone(), Query: cloneQueryRoot(q.Query)}
}

// Array is an ARRAY[...] literal.
type Array struct {
	Comments
	Elements []Expr
}

func (*Array) exprNode() {}
func (a *Array) Clone() Node {
	return &Array{Comments: a.Comments.Clone(), Elements: cloneExprSlice(a.Elements)}
}

// ArrayQuery is ARRAY(subquery).
type ArrayQuery struct {
	Comments
	Query QueryRoot
}

func (*ArrayQuery) exprNode() {}
func (a *ArrayQuery) Clone() Node {
	return &ArrayQuery{Comments: a.Comments.Clone(), Query: cloneQueryRoot(a.Query)}
}

// ArraySlice is arr[Lower:Upper].
type ArraySlice struct {
	Comments
	Array Expr
	Lower Expr
	Upper Expr
}

func (*ArraySlice) exprNode() {}
func (a *ArraySlice) Clone() Node {
	return &ArraySlice{Comments: a.Comments.Clone(), Array: cloneExpr(a.Array), Lower: cloneExpr(a.Lower), Upper: cloneExpr(a.Upper)}
}

// ArrayIndex is arr[Index].
type ArrayIndex struct {
	Comments
	Array Expr
	Index Expr
}

func (*ArrayIndex) exprNode() {}
func (a *ArrayIndex) Clone() Node {
	return &ArrayIndex{Comments: a.Comments.Clone(), Array: cloneExpr(a.Array), Index: cloneExpr(a.Index)}
}

// Hint is a dialect-specific optimizer/index hint token, e.g. a MySQL
// `/*+ ... */`-style or SQL Server `WITH (...)` table hint, captured
// verbatim.
type Hint struct {
	Text string
}

func (*Hint) exprNode() {}
func (h *Hint) Clone() Node { return &Hint{Text: h.Text} }

// FrameBoundKind enumerates WindowFrame bound kinds.
type FrameBoundKind int

const (
	UnboundedPreceding FrameBoundKind = iota
	UnboundedFollowing
	CurrentRow
	Preceding
	Following
)

// FrameBound is one edge of a WindowFrame.
type FrameBound struct {
	Kind   FrameBoundKind
	Offset Expr
}

func (f *FrameBound) Clone() *FrameBound {
	if f == nil {
		return nil
	}
	return &FrameBound{Kind: f.Kind, Offset: cloneExpr(f.Offset)}
}

// FrameUnits is ROWS vs RANGE vs GROUPS in a WindowFrame.
type FrameUnits int

const (
	RowsFrame FrameUnits = iota
	RangeFrame
	GroupsFrame
)

// WindowFrame is the ROWS/RANGE BETWEEN ... AND ... clause of a window
// specification.
type WindowFrame struct {
	Units FrameUnits
	Start *FrameBound
	End   *FrameBound // nil when the frame has only a starting bound
}

func (w *WindowFrame) Clone() *WindowFrame {
	if w == nil {
		return nil
	}
	return &WindowFrame{Units: w.Units, Start: w.Start.Clone(), End: w.End.Clone()}
}

// --- clone helpers shared across files ---

func cloneExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	return e.Clone().(Expr)
}

func cloneExprSlice(in []Expr) []Expr {
	if in == nil {
		return nil
	}
	out := make([]Expr, len(in))
	for i, e := range in {
		out[i] = cloneExpr(e)
	}
	return out
}

func cloneIdentPtr(i *Identifier) *Identifier {
	if i == nil {
		return nil
	}
	return i.Clone().(*Identifier)
}

func cloneIdentSlice(in []*Identifier) []*Identifier {
	if in == nil {
		return nil
	}
	out := make([]*Identifier, len(in))
	for i, id := range in {
		out[i] = cloneIdentPtr(id)
	}
	return out
}

func cloneQNamePtr(q *QualifiedName) *QualifiedName {
	if q == nil {
		return nil
	}
	return q.Clone().(*QualifiedName)
}

func cloneQueryRoot(q QueryRoot) QueryRoot {
	if q == nil {
		return nil
	}
	return q.Clone().(QueryRoot)
}

func cloneSource(s Source) Source {
	if s == nil {
		return nil
	}
	return s.Clone().(Source)
}
