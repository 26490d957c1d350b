package ast

// With is the WITH [RECURSIVE] clause collecting a query's CTEs.
type With struct {
	Recursive bool
	Tables    []*CommonTable
}

func (w *With) Clone() *With {
	if w == nil {
		return nil
	}
	tables := make([]*CommonTable, len(w.Tables))
	for i, t := range w.Tables {
		tables[i] = t.Clone()
	}
	return &With{Recursive: w.Recursive, Tables: tables}
}

// CommonTable is one named entry of a WITH clause.
type CommonTable struct {
	Comments
	Alias        *Identifier
	Materialized Materialized
	Query        QueryRoot
}

func (c *CommonTable) Clone() *CommonTable {
	if c == nil {
		return nil
	}
	return &CommonTable{
		Comments:     c.Comments.Clone(),
		Alias:        cloneIdentPtr(c.Alias),
		Materialized: c.Materialized,
		Query:        cloneQueryRoot(c.Query),
	}
}

// DistinctClause is DISTINCT or DISTINCT ON (...). A nil *DistinctClause
// on Select means no DISTINCT at all; a non-nil one with empty On means
// plain DISTINCT.
type DistinctClause struct {
	On []Expr
}

func (d *DistinctClause) Clone() *DistinctClause {
	if d == nil {
		return nil
	}
	return &DistinctClause{On: cloneExprSlice(d.On)}
}

// SelectItem is one projected expression, with its optional alias and
// any comments positioned around the AS keyword.
type SelectItem struct {
	Comments
	Expr       Expr
	Alias      *Identifier
	AsComments Comments
}

func (s *SelectItem) Clone() *SelectItem {
	if s == nil {
		return nil
	}
	return &SelectItem{
		Comments:   s.Comments.Clone(),
		Expr:       cloneExpr(s.Expr),
		Alias:      cloneIdentPtr(s.Alias),
		AsComments: s.AsComments.Clone(),
	}
}

func cloneSelectItems(in []*SelectItem) []*SelectItem {
	if in == nil {
		return nil
	}
	out := make([]*SelectItem, len(in))
	for i, it := range in {
		out[i] = it.Clone()
	}
	return out
}

// Select is the SELECT [DISTINCT] [hints] item-list clause.
type Select struct {
	Comments
	Distinct *DistinctClause
	Hints    []*Hint
	Items    []*SelectItem
}

func (s *Select) Clone() *Select {
	if s == nil {
		return nil
	}
	hints := make([]*Hint, len(s.Hints))
	for i, h := range s.Hints {
		hints[i] = h.Clone().(*Hint)
	}
	return &Select{
		Comments: s.Comments.Clone(),
		Distinct: s.Distinct.Clone(),
		Hints:    hints,
		Items:    cloneSelectItems(s.Items),
	}
}

// TableName is a FROM-clause table reference, optionally aliased.
type TableName struct {
	Comments
	Name          *QualifiedName
	Alias         *Identifier
	AliasComments Comments
}

func (*TableName) sourceNode() {}
func (t *TableName) Clone() Node {
	return &TableName{
		Comments:      t.Comments.Clone(),
		Name:          cloneQNamePtr(t.Name),
		Alias:         cloneIdentPtr(t.Alias),
		AliasComments: t.AliasComments.Clone(),
	}
}

// SubQuerySource wraps a query as a FROM-clause derived table.
type SubQuerySource struct {
	Comments
	Query         QueryRoot
	Alias         *Identifier
	AliasComments Comments
}

func (*SubQuerySource) sourceNode() {}
func (s *SubQuerySource) Clone() Node {
	return &SubQuerySource{
		Comments:      s.Comments.Clone(),
		Query:         cloneQueryRoot(s.Query),
		Alias:         cloneIdentPtr(s.Alias),
		AliasComments: s.AliasComments.Clone(),
	}
}

// ValuesTable is a VALUES(...) list used directly as a FROM source.
type ValuesTable struct {
	Comments
	Values        *Values
	Alias         *Identifier
	ColumnAliases []*Identifier
}

func (*ValuesTable) sourceNode() {}
func (v *ValuesTable) Clone() Node {
	return &ValuesTable{
		Comments:      v.Comments.Clone(),
		Values:        cloneQueryRoot(v.Values).(*Values),
		Alias:         cloneIdentPtr(v.Alias),
		ColumnAliases: cloneIdentSlice(v.ColumnAliases),
	}
}

// JoinCondition is either a JoinOn or JoinUsing.
type JoinCondition interface {
	Node
	joinConditionNode()
}

// JoinOn is `ON <expr>`.
type JoinOn struct {
	Condition Expr
}

func (*JoinOn) joinConditionNode() {}
func (j *JoinOn) Clone() Node      { return &JoinOn{Condition: cloneExpr(j.Condition)} }

// JoinUsing is `USING (col, ...)`.
type JoinUsing struct {
	Columns []*Identifier
}

func (*JoinUsing) joinConditionNode() {}
func (j *JoinUsing) Clone() Node      { return &JoinUsing{Columns: cloneIdentSlice(j.Columns)} }

// Join is one JOIN applied to a FROM source.
type Join struct {
	Kind                JoinKind
	Source              Source
	Condition           JoinCondition
	Lateral             bool
	JoinKeywordComments Comments
}

func (j *Join) Clone() *Join {
	if j == nil {
		return nil
	}
	var cond JoinCondition
	if j.Condition != nil {
		cond = j.Condition.Clone().(JoinCondition)
	}
	return &Join{
		Kind:                j.Kind,
		Source:              cloneSource(j.Source),
		Condition:           cond,
		Lateral:             j.Lateral,
		JoinKeywordComments: j.JoinKeywordComments.Clone(),
	}
}

// From is the FROM clause: its base source plus zero or more joins.
type From struct {
	Comments
	Source Source
	Joins  []*Join
}

func (f *From) Clone() *From {
	if f == nil {
		return nil
	}
	joins := make([]*Join, len(f.Joins))
	for i, j := range f.Joins {
		joins[i] = j.Clone()
	}
	return &From{Comments: f.Comments.Clone(), Source: cloneSource(f.Source), Joins: joins}
}

// Where is the WHERE clause.
type Where struct {
	Comments
	Condition Expr
}

func (w *Where) Clone() *Where {
	if w == nil {
		return nil
	}
	return &Where{Comments: w.Comments.Clone(), Condition: cloneExpr(w.Condition)}
}

// GroupBy is the GROUP BY clause.
type GroupBy struct {
	Comments
	Items []Expr
}

func (g *GroupBy) Clone() *GroupBy {
	if g == nil {
		return nil
	}
	return &GroupBy{Comments: g.Comments.Clone(), Items: cloneExprSlice(g.Items)}
}

// Having is the HAVING clause.
type Having struct {
	Comments
	Condition Expr
}

func (h *Having) Clone() *Having {
	if h == nil {
		return nil
	}
	return &Having{Comments: h.Comments.Clone(), Condition: cloneExpr(h.Condition)}
}

// OrderByItem is one ORDER BY expression with its direction and NULLS
// placement.
type OrderByItem struct {
	Value Expr
	Dir   SortDir
	Nulls NullsPos
}

func (o *OrderByItem) Clone() *OrderByItem {
	if o == nil {
		return nil
	}
	return &OrderByItem{Value: cloneExpr(o.Value), Dir: o.Dir, Nulls: o.Nulls}
}

func cloneOrderByItems(in []*OrderByItem) []*OrderByItem {
	if in == nil {
		return nil
	}
	out := make([]*OrderByItem, len(in))
	for i, it := range in {
		out[i] = it.Clone()
	}
	return out
}

// OrderBy is the ORDER BY clause (also used internally by functions
// like array_agg(x ORDER BY y)).
type OrderBy struct {
	Comments
	Items []*OrderByItem
}

func (o *OrderBy) Clone() *OrderBy {
	if o == nil {
		return nil
	}
	return &OrderBy{Comments: o.Comments.Clone(), Items: cloneOrderByItems(o.Items)}
}

func cloneOrderByPtr(o *OrderBy) *OrderBy { return o.Clone() }

// WindowDef is one named entry of a WINDOW clause.
type WindowDef struct {
	Name *Identifier
	Spec *OverClause
}

// Window is the WINDOW clause declaring named window specifications.
type Window struct {
	Comments
	Defs []*WindowDef
}

func (w *Window) Clone() *Window {
	if w == nil {
		return nil
	}
	defs := make([]*WindowDef, len(w.Defs))
	for i, d := range w.Defs {
		defs[i] = &WindowDef{Name: cloneIdentPtr(d.Name), Spec: d.Spec.Clone()}
	}
	return &Window{Comments: w.Comments.Clone(), Defs: defs}
}

// Limit is the LIMIT clause.
type Limit struct {
	Comments
	Count Expr
}

func (l *Limit) Clone() *Limit {
	if l == nil {
		return nil
	}
	return &Limit{Comments: l.Comments.Clone(), Count: cloneExpr(l.Count)}
}

// Offset is the OFFSET clause.
type Offset struct {
	Comments
	Count Expr
}

func (o *Offset) Clone() *Offset {
	if o == nil {
		return nil
	}
	return &Offset{Comments: o.Comments.Clone(), Count: cloneExpr(o.Count)}
}

// Fetch is FETCH {FIRST|NEXT} n {ROW|ROWS} {ONLY|WITH TIES}.
type Fetch struct {
	Comments
	Count    Expr
	Unit     FetchUnit
	WithTies bool
}

func (f *Fetch) Clone() *Fetch {
	if f == nil {
		return nil
	}
	return &Fetch{Comments: f.Comments.Clone(), Count: cloneExpr(f.Count), Unit: f.Unit, WithTies: f.WithTies}
}

// For is FOR UPDATE|SHARE|....
type For struct {
	Comments
	Mode LockMode
}

func (f *For) Clone() *For {
	if f == nil {
		return nil
	}
	return &For{Comments: f.Comments.Clone(), Mode: f.Mode}
}

// Returning is the RETURNING clause of INSERT/UPDATE/DELETE.
type Returning struct {
	Comments
	Items []*SelectItem
}

func (r *Returning) Clone() *Returning {
	if r == nil {
		return nil
	}
	return &Returning{Comments: r.Comments.Clone(), Items: cloneSelectItems(r.Items)}
}

// Assignment is one `column = expr` entry of a SET clause.
type Assignment struct {
	Column *Identifier
	Value  Expr
}

func (a *Assignment) Clone() *Assignment {
	if a == nil {
		return nil
	}
	return &Assignment{Column: cloneIdentPtr(a.Column), Value: cloneExpr(a.Value)}
}

func cloneAssignments(in []*Assignment) []*Assignment {
	if in == nil {
		return nil
	}
	out := make([]*Assignment, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

// Set is the SET clause of an UPDATE statement.
type Set struct {
	Comments
	Assignments []*Assignment
}

func (s *Set) Clone() *Set {
	if s == nil {
		return nil
	}
	return &Set{Comments: s.Comments.Clone(), Assignments: cloneAssignments(s.Assignments)}
}

// Using is the USING clause of a DELETE (extra join source). An UPDATE
// carries its extra sources in a From clause instead.
type Using struct {
	Comments
	Source Source
}

func (u *Using) Clone() *Using {
	if u == nil {
		return nil
	}
	return &Using{Comments: u.Comments.Clone(), Source: cloneSource(u.Source)}
}

// InsertClause holds the target table and optional explicit column
// list of an INSERT statement.
type InsertClause struct {
	Comments
	Table   *QualifiedName
	Columns []*Identifier
}

func (i *InsertClause) Clone() *InsertClause {
	if i == nil {
		return nil
	}
	return &InsertClause{Comments: i.Comments.Clone(), Table: cloneQNamePtr(i.Table), Columns: cloneIdentSlice(i.Columns)}
}

// UpdateClause holds the target table of an UPDATE statement.
type UpdateClause struct {
	Comments
	Table *TableName
}

func (u *UpdateClause) Clone() *UpdateClause {
	if u == nil {
		return nil
	}
	return &UpdateClause{Comments: u.Comments.Clone(), Table: cloneSource(u.Table).(*TableName)}
}

// DeleteClause holds the target table of a DELETE statement.
type DeleteClause struct {
	Comments
	Table *TableName
}

func (d *DeleteClause) Clone() *DeleteClause {
	if d == nil {
		return nil
	}
	return &DeleteClause{Comments: d.Comments.Clone(), Table: cloneSource(d.Table).(*TableName)}
}
