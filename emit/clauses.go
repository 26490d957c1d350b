package emit

import "github.com/sqlforge/sqlforge/ast"

func (e *Emitter) emitSimpleSelect(s *ast.SimpleSelect) error {
	e.emit(openContainer(SimpleSelectQuery))
	e.headerComments(s.HeaderComments)
	if s.With != nil {
		if err := e.emitWith(s.With); err != nil {
			return err
		}
		e.emit(commentNewline())
	}
	if err := e.emitSelect(s.Select); err != nil {
		return err
	}
	if s.From != nil {
		e.emit(commentNewline())
		if err := e.emitFrom(s.From); err != nil {
			return err
		}
	}
	if s.Where != nil {
		e.emit(commentNewline())
		if err := e.emitWhere(s.Where); err != nil {
			return err
		}
	}
	if s.GroupBy != nil {
		e.emit(commentNewline())
		e.emitGroupBy(s.GroupBy)
	}
	if s.Having != nil {
		e.emit(commentNewline())
		if err := e.emitHaving(s.Having); err != nil {
			return err
		}
	}
	if s.Window != nil {
		e.emit(commentNewline())
		if err := e.emitWindow(s.Window); err != nil {
			return err
		}
	}
	if s.OrderBy != nil {
		e.emit(commentNewline())
		e.emit(kw("ORDER"))
		e.emit(space())
		e.emit(kw("BY"))
		e.emit(space())
		e.emitOrderByItems(s.OrderBy.Items)
	}
	if s.Limit != nil {
		e.emit(commentNewline())
		e.emit(kw("LIMIT"))
		e.emit(space())
		if err := e.emitExpr(s.Limit.Count); err != nil {
			return err
		}
	}
	if s.Offset != nil {
		e.emit(commentNewline())
		e.emit(kw("OFFSET"))
		e.emit(space())
		if err := e.emitExpr(s.Offset.Count); err != nil {
			return err
		}
	}
	if s.Fetch != nil {
		e.emit(commentNewline())
		e.emitFetch(s.Fetch)
	}
	if s.For != nil {
		e.emit(commentNewline())
		e.emitFor(s.For)
	}
	e.emit(closeContainer(SimpleSelectQuery))
	return nil
}

func (e *Emitter) emitBinarySelect(b *ast.BinarySelect) error {
	if err := e.emitQueryRoot(b.Left); err != nil {
		return err
	}
	e.emit(commentNewline())
	e.emit(kw(b.Op.String()))
	e.emit(commentNewline())
	return e.emitQueryRoot(b.Right)
}

func (e *Emitter) emitWith(w *ast.With) error {
	e.emit(openContainer(WithClause))
	e.emit(kw("WITH"))
	if w.Recursive {
		e.emit(space())
		e.emit(kw("RECURSIVE"))
	}
	e.emit(space())
	for i, ct := range w.Tables {
		if i > 0 {
			e.emit(argSplitter())
		}
		e.emit(openContainer(CommonTableClause))
		e.emitComments(ct.Before, true)
		e.emitIdentifier(ct.Alias)
		e.emit(space())
		switch ct.Materialized {
		case ast.Materialized:
			e.emit(kw("MATERIALIZED"))
			e.emit(space())
		case ast.NotMaterialized:
			e.emit(kw("NOT"))
			e.emit(space())
			e.emit(kw("MATERIALIZED"))
			e.emit(space())
		}
		e.emit(kw("AS"))
		e.emit(space())
		e.emit(paren("("))
		if err := e.emitQueryRoot(ct.Query); err != nil {
			return err
		}
		e.emit(paren(")"))
		e.emitComments(ct.After, false)
		e.emit(closeContainer(CommonTableClause))
	}
	e.emit(closeContainer(WithClause))
	return nil
}

func (e *Emitter) emitSelect(s *ast.Select) error {
	e.emit(openContainer(SelectClause))
	e.emitComments(s.Before, true)
	e.emit(kw("SELECT"))
	for _, h := range s.Hints {
		e.emit(space())
		e.emit(Token{Kind: CommentTok, Text: h.Text})
	}
	if s.Distinct != nil {
		e.emit(space())
		e.emit(kw("DISTINCT"))
		if len(s.Distinct.On) > 0 {
			e.emit(space())
			e.emit(openContainer(DistinctOn))
			e.emit(kw("ON"))
			e.emit(paren("("))
			for i, on := range s.Distinct.On {
				if i > 0 {
					e.emit(argSplitter())
				}
				if err := e.emitExpr(on); err != nil {
					return err
				}
			}
			e.emit(paren(")"))
			e.emit(closeContainer(DistinctOn))
		}
	}
	e.emit(space())
	for i, item := range s.Items {
		if i > 0 {
			e.emit(argSplitter())
		}
		if err := e.emitSelectItem(item); err != nil {
			return err
		}
	}
	e.emitComments(s.After, false)
	e.emit(closeContainer(SelectClause))
	return nil
}

func (e *Emitter) emitSelectItem(item *ast.SelectItem) error {
	e.emitComments(item.Before, true)
	if err := e.emitExpr(item.Expr); err != nil {
		return err
	}
	if item.Alias != nil {
		e.emit(space())
		e.emitComments(item.AsComments.Before, true)
		e.emit(kw("AS"))
		e.emitComments(item.AsComments.After, false)
		e.emit(space())
		e.emitIdentifier(item.Alias)
	}
	e.emitComments(item.After, false)
	return nil
}

func (e *Emitter) emitFrom(f *ast.From) error {
	e.emit(openContainer(FromClause))
	e.emitComments(f.Before, true)
	e.emit(kw("FROM"))
	e.emit(space())
	e.pushJoinContext(f)
	defer e.popJoinContext()
	if err := e.emitSource(f.Source); err != nil {
		return err
	}
	for _, j := range f.Joins {
		e.emit(commentNewline())
		if err := e.emitJoin(j); err != nil {
			return err
		}
	}
	e.emitComments(f.After, false)
	e.emit(closeContainer(FromClause))
	return nil
}

func (e *Emitter) emitJoin(j *ast.Join) error {
	e.emit(openContainer(JoinClause))
	if j.Lateral {
		e.emit(kw("LATERAL"))
		e.emit(space())
	}
	e.emitComments(j.JoinKeywordComments.Before, true)
	e.emit(kw(j.Kind.String()))
	e.emitComments(j.JoinKeywordComments.After, false)
	e.emit(space())
	if err := e.emitSource(j.Source); err != nil {
		return err
	}
	switch cond := j.Condition.(type) {
	case *ast.JoinOn:
		e.emit(space())
		e.emit(kw("ON"))
		e.emit(space())
		normalized := e.normalizeJoinOn(cond.Condition)
		if err := e.emitExpr(normalized); err != nil {
			return err
		}
	case *ast.JoinUsing:
		e.emit(space())
		e.emit(kw("USING"))
		e.emit(paren("("))
		for i, c := range cond.Columns {
			if i > 0 {
				e.emit(argSplitter())
			}
			e.emitIdentifier(c)
		}
		e.emit(paren(")"))
	}
	e.emit(closeContainer(JoinClause))
	return nil
}

func (e *Emitter) emitSource(s ast.Source) error {
	switch v := s.(type) {
	case *ast.TableName:
		e.emitComments(v.Before, true)
		e.emitQualifiedName(v.Name)
		e.emitSourceAlias(v.Alias, v.AliasComments)
		e.emitComments(v.After, false)
	case *ast.SubQuerySource:
		e.emitComments(v.Before, true)
		e.emit(paren("("))
		if err := e.emitQueryRoot(v.Query); err != nil {
			return err
		}
		e.emit(paren(")"))
		e.emitSourceAlias(v.Alias, v.AliasComments)
		e.emitComments(v.After, false)
	case *ast.ValuesTable:
		e.emitComments(v.Before, true)
		e.emit(paren("("))
		if err := e.emitValues(v.Values); err != nil {
			return err
		}
		e.emit(paren(")"))
		e.emitSourceAlias(v.Alias, ast.Comments{})
		if len(v.ColumnAliases) > 0 {
			e.emit(paren("("))
			for i, c := range v.ColumnAliases {
				if i > 0 {
					e.emit(argSplitter())
				}
				e.emitIdentifier(c)
			}
			e.emit(paren(")"))
		}
	case *ast.FunctionCall:
		return e.emitFunctionCall(v)
	}
	return nil
}

func (e *Emitter) emitSourceAlias(alias *ast.Identifier, comments ast.Comments) {
	if alias == nil {
		return
	}
	e.emit(space())
	e.emit(openContainer(SourceAliasExpression))
	e.emitComments(comments.Before, true)
	if !comments.IsEmpty() {
		e.emit(kw("AS"))
		e.emit(space())
	}
	e.emitIdentifier(alias)
	e.emitComments(comments.After, false)
	e.emit(closeContainer(SourceAliasExpression))
}

func (e *Emitter) emitWhere(w *ast.Where) error {
	e.emit(openContainer(WhereClause))
	e.emitComments(w.Before, true)
	e.emit(kw("WHERE"))
	e.emit(space())
	if err := e.emitExpr(w.Condition); err != nil {
		return err
	}
	e.emitComments(w.After, false)
	e.emit(closeContainer(WhereClause))
	return nil
}

func (e *Emitter) emitGroupBy(g *ast.GroupBy) {
	e.emit(openContainer(GroupByClause))
	e.emit(kw("GROUP"))
	e.emit(space())
	e.emit(kw("BY"))
	e.emit(space())
	for i, item := range g.Items {
		if i > 0 {
			e.emit(argSplitter())
		}
		e.emitExpr(item)
	}
	e.emit(closeContainer(GroupByClause))
}

func (e *Emitter) emitHaving(h *ast.Having) error {
	e.emit(openContainer(HavingClause))
	e.emit(kw("HAVING"))
	e.emit(space())
	if err := e.emitExpr(h.Condition); err != nil {
		return err
	}
	e.emit(closeContainer(HavingClause))
	return nil
}

func (e *Emitter) emitWindow(w *ast.Window) error {
	e.emit(openContainer(WindowClause))
	e.emit(kw("WINDOW"))
	e.emit(space())
	for i, d := range w.Defs {
		if i > 0 {
			e.emit(argSplitter())
		}
		e.emitIdentifier(d.Name)
		e.emit(space())
		e.emit(kw("AS"))
		e.emit(space())
		if err := e.emitOverClause(d.Spec); err != nil {
			return err
		}
	}
	e.emit(closeContainer(WindowClause))
	return nil
}

func (e *Emitter) emitFetch(f *ast.Fetch) {
	e.emit(openContainer(FetchClause))
	e.emit(kw("FETCH"))
	e.emit(space())
	e.emit(kw("FIRST"))
	e.emit(space())
	e.emitExpr(f.Count)
	e.emit(space())
	if f.Unit == ast.FetchRows {
		e.emit(kw("ROWS"))
	} else {
		e.emit(kw("ROW"))
	}
	e.emit(space())
	if f.WithTies {
		e.emit(kw("WITH"))
		e.emit(space())
		e.emit(kw("TIES"))
	} else {
		e.emit(kw("ONLY"))
	}
	e.emit(closeContainer(FetchClause))
}

func (e *Emitter) emitFor(f *ast.For) {
	e.emit(openContainer(ForClause))
	e.emit(kw("FOR"))
	e.emit(space())
	switch f.Mode {
	case ast.ForUpdate:
		e.emit(kw("UPDATE"))
	case ast.ForShare:
		e.emit(kw("SHARE"))
	case ast.ForNoKeyUpdate:
		e.emit(kw("NO"))
		e.emit(space())
		e.emit(kw("KEY"))
		e.emit(space())
		e.emit(kw("UPDATE"))
	case ast.ForKeyShare:
		e.emit(kw("KEY"))
		e.emit(space())
		e.emit(kw("SHARE"))
	}
	e.emit(closeContainer(ForClause))
}

func (e *Emitter) emitValues(v *ast.Values) error {
	e.emit(openContainer(ValuesClause))
	e.emit(kw("VALUES"))
	e.emit(space())
	for i, row := range v.Rows {
		if i > 0 {
			e.emit(argSplitter())
		}
		if err := e.emitTuple(row); err != nil {
			return err
		}
	}
	e.emit(closeContainer(ValuesClause))
	return nil
}
