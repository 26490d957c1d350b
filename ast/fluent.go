package ast

import "github.com/sqlforge/sqlforge/sqlerr"

// AppendWhere ANDs a new condition onto the WHERE clause, creating one
// if absent. A nil existing condition is replaced outright rather than
// wrapped in a vacuous AND.
func (s *SimpleSelect) AppendWhere(cond Expr) {
	if s.Where == nil {
		s.Where = &Where{Condition: cond}
		return
	}
	if s.Where.Condition == nil {
		s.Where.Condition = cond
		return
	}
	s.Where.Condition = &Binary{Op: "AND", Left: s.Where.Condition, Right: cond}
}

// AppendWhereExpr is AppendWhere with an upstream option: when upstream
// is true and the FROM source is itself a derived table, the condition
// is pushed into that subquery's own WHERE instead of this query's,
// narrowing the row set as early as possible (spec.md section 4.3).
func (s *SimpleSelect) AppendWhereExpr(cond Expr, upstream bool) {
	if upstream && s.From != nil {
		if sub, ok := s.From.Source.(*SubQuerySource); ok {
			if inner, ok := sub.Query.(*SimpleSelect); ok {
				inner.AppendWhere(cond)
				return
			}
		}
	}
	s.AppendWhere(cond)
}

// AppendHaving ANDs a new condition onto the HAVING clause, creating one
// if absent.
func (s *SimpleSelect) AppendHaving(cond Expr) {
	if s.Having == nil {
		s.Having = &Having{Condition: cond}
		return
	}
	if s.Having.Condition == nil {
		s.Having.Condition = cond
		return
	}
	s.Having.Condition = &Binary{Op: "AND", Left: s.Having.Condition, Right: cond}
}

// ColumnResolver answers, for a candidate join column name, the
// qualified expression it resolves to on each side of a join -- the
// caller's schema knowledge standing in for a catalog lookup. Returning
// ok=false means the column cannot be resolved on that side.
type ColumnResolver func(column string) (left, right *QualifiedName, ok bool)

func (s *SimpleSelect) appendJoin(kind JoinKind, src Source, columns []string, resolve ColumnResolver) error {
	if s.From == nil {
		return &sqlerr.MissingFromClause{}
	}
	var cond Expr
	var unresolved []string
	for _, col := range columns {
		left, right, ok := resolve(col)
		if !ok {
			unresolved = append(unresolved, col)
			continue
		}
		eq := Expr(&Binary{Op: "=", Left: left, Right: right})
		if cond == nil {
			cond = eq
		} else {
			cond = &Binary{Op: "AND", Left: cond, Right: eq}
		}
	}
	if len(unresolved) > 0 {
		return &sqlerr.UnresolvedJoinColumns{Columns: unresolved}
	}
	s.From.Joins = append(s.From.Joins, &Join{Kind: kind, Source: src, Condition: &JoinOn{Condition: cond}})
	return nil
}

// InnerJoin appends an INNER JOIN against src, inferring its ON
// condition by resolving each of columns through resolve.
func (s *SimpleSelect) InnerJoin(src Source, columns []string, resolve ColumnResolver) error {
	return s.appendJoin(InnerJoin, src, columns, resolve)
}

// LeftJoin appends a LEFT JOIN against src, inferring its ON condition
// by resolving each of columns through resolve.
func (s *SimpleSelect) LeftJoin(src Source, columns []string, resolve ColumnResolver) error {
	return s.appendJoin(LeftJoin, src, columns, resolve)
}

// RightJoin appends a RIGHT JOIN against src, inferring its ON condition
// by resolving each of columns through resolve.
func (s *SimpleSelect) RightJoin(src Source, columns []string, resolve ColumnResolver) error {
	return s.appendJoin(RightJoin, src, columns, resolve)
}

func combine(left QueryRoot, op BinaryOp, right QueryRoot) *BinarySelect {
	return &BinarySelect{Left: left, Op: op, Right: right}
}

// ToUnion combines s with other via UNION.
func (s *SimpleSelect) ToUnion(other QueryRoot) *BinarySelect { return combine(s, Union, other) }

// ToUnionAll combines s with other via UNION ALL.
func (s *SimpleSelect) ToUnionAll(other QueryRoot) *BinarySelect { return combine(s, UnionAll, other) }

// ToIntersect combines s with other via INTERSECT.
func (s *SimpleSelect) ToIntersect(other QueryRoot) *BinarySelect { return combine(s, Intersect, other) }

// ToExcept combines s with other via EXCEPT.
func (s *SimpleSelect) ToExcept(other QueryRoot) *BinarySelect { return combine(s, Except, other) }

// ToExceptAll combines s with other via EXCEPT ALL.
func (s *SimpleSelect) ToExceptAll(other QueryRoot) *BinarySelect { return combine(s, ExceptAll, other) }

// ToSource wraps s as an aliased derived-table FROM source.
func (s *SimpleSelect) ToSource(alias string) (*SubQuerySource, error) {
	if alias == "" {
		return nil, &sqlerr.MissingAlias{}
	}
	return &SubQuerySource{Query: cloneQueryRoot(s).(*SimpleSelect), Alias: &Identifier{Name: alias}}, nil
}

// AddCTE appends a CTE to the WITH clause (creating the clause when
// there is none), rejecting a blank alias and any alias that is already
// declared, whatever its body (spec.md section 3, "CTE name cache").
func (s *SimpleSelect) AddCTE(alias string, query QueryRoot, materialized Materialized) error {
	if len(trimSpace(alias)) == 0 {
		return &sqlerr.InvalidCTEName{Name: alias, Detail: "must not be blank"}
	}
	if s.With == nil {
		s.With = &With{}
	}
	if s.HasCTE(alias) {
		return &sqlerr.DuplicateCTE{Name: alias}
	}
	s.With.Tables = append(s.With.Tables, &CommonTable{
		Alias:        &Identifier{Name: alias},
		Materialized: materialized,
		Query:        query,
	})
	s.RebuildCTECache()
	return nil
}

// RemoveCTE drops the CTE named alias, or returns sqlerr.CTENotFound.
func (s *SimpleSelect) RemoveCTE(alias string) error {
	if !s.HasCTE(alias) {
		return &sqlerr.CTENotFound{Name: alias}
	}
	kept := s.With.Tables[:0]
	for _, t := range s.With.Tables {
		if t.Alias == nil || t.Alias.Name != alias {
			kept = append(kept, t)
		}
	}
	s.With.Tables = kept
	s.RebuildCTECache()
	return nil
}

// ReplaceCTE swaps the body of the CTE named alias, or returns
// sqlerr.CTENotFound.
func (s *SimpleSelect) ReplaceCTE(alias string, query QueryRoot) error {
	if !s.HasCTE(alias) {
		return &sqlerr.CTENotFound{Name: alias}
	}
	for _, t := range s.With.Tables {
		if t.Alias != nil && t.Alias.Name == alias {
			t.Query = query
			return nil
		}
	}
	return &sqlerr.CTENotFound{Name: alias}
}

// HasCTE is an O(1) membership check against the CTE name cache.
func (s *SimpleSelect) HasCTE(alias string) bool {
	if s.cteNames == nil {
		s.RebuildCTECache()
	}
	_, ok := s.cteNames[alias]
	return ok
}

// GetCTENames returns every CTE alias currently declared, in WITH order.
func (s *SimpleSelect) GetCTENames() []string {
	if s.With == nil {
		return nil
	}
	out := make([]string, 0, len(s.With.Tables))
	for _, t := range s.With.Tables {
		if t.Alias != nil {
			out = append(out, t.Alias.Name)
		}
	}
	return out
}

// OverrideSelectItemExpr replaces the expression of the sole select item
// whose alias or bare column name matches name. It never inserts: a
// name matching zero or more than one item is an error, by design --
// this method edits, it does not upsert (see sqlerr.AmbiguousColumn).
func (s *SimpleSelect) OverrideSelectItemExpr(name string, expr Expr) error {
	if s.Select == nil {
		return &sqlerr.AmbiguousColumn{Name: name, Count: 0}
	}
	var match *SelectItem
	count := 0
	for _, item := range s.Select.Items {
		if selectItemName(item) == name {
			match = item
			count++
		}
	}
	if count != 1 {
		return &sqlerr.AmbiguousColumn{Name: name, Count: count}
	}
	match.Expr = expr
	return nil
}

func selectItemName(item *SelectItem) string {
	if item.Alias != nil {
		return item.Alias.Name
	}
	switch e := item.Expr.(type) {
	case *Identifier:
		return e.Name
	case *QualifiedName:
		if e.Name != nil {
			return e.Name.Name
		}
	}
	return ""
}

// SetParameter binds value onto every Parameter node matching name,
// returning sqlerr.ParameterNotFound if none match.
func (s *SimpleSelect) SetParameter(name string, value Expr) error {
	found := false
	walkExprTree(s, func(e Expr) Expr {
		if p, ok := e.(*Parameter); ok && p.Name == name {
			found = true
			return value
		}
		return e
	})
	if !found {
		return &sqlerr.ParameterNotFound{Name: name}
	}
	return nil
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpaceByte(s[start]) {
		start++
	}
	for end > start && isSpaceByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// walkExprTree visits every Expr reachable from the query's clauses,
// applying replace to each leaf position it can rewrite in place.
// Limited to the positions SetParameter needs: WHERE, HAVING, and
// select-item expressions. Package transform walks the wider tree with
// its own visitors (walkParams, walkSelects).
func walkExprTree(s *SimpleSelect, replace func(Expr) Expr) {
	if s.Select != nil {
		for _, item := range s.Select.Items {
			item.Expr = replaceInExpr(item.Expr, replace)
		}
	}
	if s.Where != nil {
		s.Where.Condition = replaceInExpr(s.Where.Condition, replace)
	}
	if s.Having != nil {
		s.Having.Condition = replaceInExpr(s.Having.Condition, replace)
	}
}

func replaceInExpr(e Expr, replace func(Expr) Expr) Expr {
	if e == nil {
		return nil
	}
	e = replace(e)
	switch n := e.(type) {
	case *Binary:
		n.Left = replaceInExpr(n.Left, replace)
		n.Right = replaceInExpr(n.Right, replace)
	case *Unary:
		n.Operand = replaceInExpr(n.Operand, replace)
	case *Paren:
		n.Inner = replaceInExpr(n.Inner, replace)
	case *FunctionCall:
		for i, a := range n.Args {
			n.Args[i] = replaceInExpr(a, replace)
		}
	case *Cast:
		n.Input = replaceInExpr(n.Input, replace)
	case *Between:
		n.Value = replaceInExpr(n.Value, replace)
		n.Lower = replaceInExpr(n.Lower, replace)
		n.Upper = replaceInExpr(n.Upper, replace)
	}
	return e
}
