package ast

// SimpleSelect is a single (non-combined) SELECT query: the primary
// query root that the fluent mutation API in fluent.go operates on.
type SimpleSelect struct {
	HeaderComments []string
	With           *With
	Select         *Select
	From           *From
	Where          *Where
	GroupBy        *GroupBy
	Having         *Having
	Window         *Window
	OrderBy        *OrderBy
	Limit          *Limit
	Offset         *Offset
	Fetch          *Fetch
	For            *For

	// cteNames mirrors With.Tables as a set, kept in sync by every CTE
	// mutation (spec.md section 3, "CTE name cache"). Rebuilt wholesale
	// whenever the WITH clause might have been touched from outside the
	// fluent API (e.g. freshly parsed, or deserialized).
	cteNames map[string]struct{}
}

func (*SimpleSelect) queryRootNode() {}
func (*SimpleSelect) exprNode()      {} // usable as a scalar/derived-table subquery source

func (s *SimpleSelect) Clone() Node {
	c := &SimpleSelect{
		HeaderComments: cloneStrings(s.HeaderComments),
		With:           s.With.Clone(),
		Select:         s.Select.Clone(),
		From:           s.From.Clone(),
		Where:          s.Where.Clone(),
		GroupBy:        s.GroupBy.Clone(),
		Having:         s.Having.Clone(),
		Window:         s.Window.Clone(),
		OrderBy:        s.OrderBy.Clone(),
		Limit:          s.Limit.Clone(),
		Offset:         s.Offset.Clone(),
		Fetch:          s.Fetch.Clone(),
		For:            s.For.Clone(),
	}
	c.RebuildCTECache()
	return c
}

// RebuildCTECache recomputes the O(1) CTE-name membership cache from
// the current WITH clause. Callers that mutate s.With directly (rather
// than through AddCTE/RemoveCTE/ReplaceCTE) must call this afterward to
// keep the invariant in spec.md section 3 ("CTE name cache") intact.
func (s *SimpleSelect) RebuildCTECache() {
	s.cteNames = make(map[string]struct{})
	if s.With == nil {
		return
	}
	for _, t := range s.With.Tables {
		if t.Alias != nil {
			s.cteNames[t.Alias.Name] = struct{}{}
		}
	}
}

// BinarySelect is the combination of two query roots via UNION,
// UNION ALL, INTERSECT, [INTERSECT ALL], EXCEPT, or EXCEPT ALL.
type BinarySelect struct {
	Left  QueryRoot
	Op    BinaryOp
	Right QueryRoot
}

func (*BinarySelect) queryRootNode() {}
func (*BinarySelect) exprNode()      {}
func (b *BinarySelect) Clone() Node {
	return &BinarySelect{Left: cloneQueryRoot(b.Left), Op: b.Op, Right: cloneQueryRoot(b.Right)}
}

// Values is a bare VALUES (...) , (...) , ... query root.
type Values struct {
	Comments
	Rows []*Tuple
}

func (*Values) queryRootNode() {}
func (*Values) exprNode()      {}
func (v *Values) Clone() Node {
	rows := make([]*Tuple, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = r.Clone().(*Tuple)
	}
	return &Values{Comments: v.Comments.Clone(), Rows: rows}
}

// Insert is INSERT INTO ... [(cols)] SELECT|VALUES ... [RETURNING ...].
// With, when present, is the CTE clause carried over from the source
// SimpleSelect (spec.md section 4.8).
type Insert struct {
	Comments
	With      *With
	Insert    *InsertClause
	Query     QueryRoot // a SimpleSelect, BinarySelect, or Values
	Returning *Returning
}

func (*Insert) queryRootNode() {}
func (i *Insert) Clone() Node {
	return &Insert{
		Comments:  i.Comments.Clone(),
		With:      i.With.Clone(),
		Insert:    i.Insert.Clone(),
		Query:     cloneQueryRoot(i.Query),
		Returning: i.Returning.Clone(),
	}
}

// Update is UPDATE ... SET ... [FROM ...] [WHERE ...] [RETURNING ...].
type Update struct {
	Comments
	With      *With
	Update    *UpdateClause
	Set       *Set
	From      *From
	Where     *Where
	Returning *Returning
}

func (*Update) queryRootNode() {}
func (u *Update) Clone() Node {
	return &Update{
		Comments:  u.Comments.Clone(),
		With:      u.With.Clone(),
		Update:    u.Update.Clone(),
		Set:       u.Set.Clone(),
		From:      u.From.Clone(),
		Where:     u.Where.Clone(),
		Returning: u.Returning.Clone(),
	}
}

// Delete is DELETE FROM ... [USING ...] [WHERE ...] [RETURNING ...].
type Delete struct {
	Comments
	With      *With
	Delete    *DeleteClause
	Using     *Using
	Where     *Where
	Returning *Returning
}

func (*Delete) queryRootNode() {}
func (d *Delete) Clone() Node {
	return &Delete{
		Comments:  d.Comments.Clone(),
		With:      d.With.Clone(),
		Delete:    d.Delete.Clone(),
		Using:     cloneUsing(d.Using),
		Where:     d.Where.Clone(),
		Returning: d.Returning.Clone(),
	}
}

func cloneUsing(u *Using) *Using { return u.Clone() }

// MergeActionKind enumerates the THEN action of a WHEN clause.
type MergeActionKind int

const (
	MergeUpdate MergeActionKind = iota
	MergeDelete
	MergeInsert
	MergeInsertDefaultValues
	MergeDoNothing
)

// MergeWhenKind enumerates the WHEN condition of a MERGE clause.
type MergeWhenKind int

const (
	WhenMatched MergeWhenKind = iota
	WhenNotMatched
	WhenNotMatchedBySource
	WhenNotMatchedByTarget
)

// MergeWhenClause is one WHEN {MATCHED|NOT MATCHED ...} [AND cond]
// THEN {action} clause.
type MergeWhenClause struct {
	Comments
	When      MergeWhenKind
	AndCond   Expr
	Action    MergeActionKind
	Set       *Set          // for MergeUpdate
	Columns   []*Identifier // for MergeInsert
	Values    []Expr        // for MergeInsert
	ThenComments Comments
}

func (m *MergeWhenClause) Clone() *MergeWhenClause {
	if m == nil {
		return nil
	}
	return &MergeWhenClause{
		Comments:     m.Comments.Clone(),
		When:         m.When,
		AndCond:      cloneExpr(m.AndCond),
		Action:       m.Action,
		Set:          m.Set.Clone(),
		Columns:      cloneIdentSlice(m.Columns),
		Values:       cloneExprSlice(m.Values),
		ThenComments: m.ThenComments.Clone(),
	}
}

// Merge is MERGE INTO target USING source ON cond WHEN ... THEN ....
type Merge struct {
	Comments
	With         *With
	Target       *TableName
	Source       Source
	On           Expr
	Whens        []*MergeWhenClause
	ValuesComments Comments // comments positioned around the VALUES keyword of an INSERT arm
}

func (*Merge) queryRootNode() {}
func (m *Merge) Clone() Node {
	whens := make([]*MergeWhenClause, len(m.Whens))
	for i, w := range m.Whens {
		whens[i] = w.Clone()
	}
	return &Merge{
		Comments:       m.Comments.Clone(),
		With:           m.With.Clone(),
		Target:         cloneSource(m.Target).(*TableName),
		Source:         cloneSource(m.Source),
		On:             cloneExpr(m.On),
		Whens:          whens,
		ValuesComments: m.ValuesComments.Clone(),
	}
}
