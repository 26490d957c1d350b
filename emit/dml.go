package emit

import "github.com/sqlforge/sqlforge/ast"

func (e *Emitter) emitReturning(r *ast.Returning) error {
	if r == nil {
		return nil
	}
	e.emit(space())
	e.emit(kw("RETURNING"))
	e.emit(space())
	for i, item := range r.Items {
		if i > 0 {
			e.emit(argSplitter())
		}
		if err := e.emitSelectItem(item); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) emitInsert(in *ast.Insert) error {
	e.emit(openContainer(InsertStatement))
	e.emitComments(in.Before, true)
	if in.With != nil {
		if err := e.emitWith(in.With); err != nil {
			return err
		}
		e.emit(commentNewline())
	}
	e.emit(kw("INSERT"))
	e.emit(space())
	e.emit(kw("INTO"))
	e.emit(space())
	e.emitQualifiedName(in.Insert.Table)
	if len(in.Insert.Columns) > 0 {
		e.emitParenIdents(in.Insert.Columns)
	}
	e.emit(commentNewline())
	switch q := in.Query.(type) {
	case *ast.Values:
		if err := e.emitValues(q); err != nil {
			return err
		}
	default:
		if err := e.emitQueryRoot(in.Query); err != nil {
			return err
		}
	}
	if err := e.emitReturning(in.Returning); err != nil {
		return err
	}
	e.emitComments(in.After, false)
	e.emit(closeContainer(InsertStatement))
	return nil
}

func (e *Emitter) emitUpdate(u *ast.Update) error {
	e.emit(openContainer(UpdateStatement))
	e.emitComments(u.Before, true)
	if u.With != nil {
		if err := e.emitWith(u.With); err != nil {
			return err
		}
		e.emit(commentNewline())
	}
	e.emit(kw("UPDATE"))
	e.emit(space())
	if err := e.emitSource(u.Update.Table); err != nil {
		return err
	}
	e.emit(commentNewline())
	e.emit(kw("SET"))
	e.emit(space())
	for i, a := range u.Set.Assignments {
		if i > 0 {
			e.emit(argSplitter())
		}
		e.emitIdentifier(a.Column)
		e.emit(space())
		e.emit(op("="))
		e.emit(space())
		if err := e.emitExpr(a.Value); err != nil {
			return err
		}
	}
	if u.From != nil {
		e.emit(commentNewline())
		if err := e.emitFrom(u.From); err != nil {
			return err
		}
	}
	if u.Where != nil {
		e.emit(commentNewline())
		if err := e.emitWhere(u.Where); err != nil {
			return err
		}
	}
	if err := e.emitReturning(u.Returning); err != nil {
		return err
	}
	e.emitComments(u.After, false)
	e.emit(closeContainer(UpdateStatement))
	return nil
}

func (e *Emitter) emitDelete(d *ast.Delete) error {
	e.emit(openContainer(DeleteStatement))
	e.emitComments(d.Before, true)
	if d.With != nil {
		if err := e.emitWith(d.With); err != nil {
			return err
		}
		e.emit(commentNewline())
	}
	e.emit(kw("DELETE"))
	e.emit(space())
	e.emit(kw("FROM"))
	e.emit(space())
	if err := e.emitSource(d.Delete.Table); err != nil {
		return err
	}
	if d.Using != nil {
		e.emit(commentNewline())
		e.emit(kw("USING"))
		e.emit(space())
		if err := e.emitSource(d.Using.Source); err != nil {
			return err
		}
	}
	if d.Where != nil {
		e.emit(commentNewline())
		if err := e.emitWhere(d.Where); err != nil {
			return err
		}
	}
	if err := e.emitReturning(d.Returning); err != nil {
		return err
	}
	e.emitComments(d.After, false)
	e.emit(closeContainer(DeleteStatement))
	return nil
}

func (e *Emitter) emitMergeWhen(w *ast.MergeWhenClause) error {
	e.emit(openContainer(MergeWhenClauseContainer))
	e.emit(kw("WHEN"))
	e.emit(space())
	switch w.When {
	case ast.WhenMatched:
		e.emit(kw("MATCHED"))
	case ast.WhenNotMatched:
		e.emit(kw("NOT"))
		e.emit(space())
		e.emit(kw("MATCHED"))
	case ast.WhenNotMatchedBySource:
		e.emit(kw("NOT"))
		e.emit(space())
		e.emit(kw("MATCHED"))
		e.emit(space())
		e.emit(kw("BY"))
		e.emit(space())
		e.emit(kw("SOURCE"))
	case ast.WhenNotMatchedByTarget:
		e.emit(kw("NOT"))
		e.emit(space())
		e.emit(kw("MATCHED"))
		e.emit(space())
		e.emit(kw("BY"))
		e.emit(space())
		e.emit(kw("TARGET"))
	}
	if w.AndCond != nil {
		e.emit(space())
		e.emit(kw("AND"))
		e.emit(space())
		if err := e.emitExpr(w.AndCond); err != nil {
			return err
		}
	}
	e.emit(space())
	e.emitComments(w.ThenComments.Before, true)
	e.emit(kw("THEN"))
	e.emitComments(w.ThenComments.After, false)
	e.emit(space())
	switch w.Action {
	case ast.MergeUpdate:
		e.emit(kw("UPDATE"))
		e.emit(space())
		e.emit(kw("SET"))
		e.emit(space())
		for i, a := range w.Set.Assignments {
			if i > 0 {
				e.emit(argSplitter())
			}
			e.emitIdentifier(a.Column)
			e.emit(space())
			e.emit(op("="))
			e.emit(space())
			if err := e.emitExpr(a.Value); err != nil {
				return err
			}
		}
	case ast.MergeDelete:
		e.emit(kw("DELETE"))
	case ast.MergeInsert:
		e.emit(kw("INSERT"))
		if len(w.Columns) > 0 {
			e.emitParenIdents(w.Columns)
		}
		e.emit(space())
		e.emit(kw("VALUES"))
		e.emit(space())
		e.emit(paren("("))
		for i, v := range w.Values {
			if i > 0 {
				e.emit(argSplitter())
			}
			if err := e.emitExpr(v); err != nil {
				return err
			}
		}
		e.emit(paren(")"))
	case ast.MergeInsertDefaultValues:
		e.emit(kw("INSERT"))
		e.emit(space())
		e.emit(kw("DEFAULT"))
		e.emit(space())
		e.emit(kw("VALUES"))
	case ast.MergeDoNothing:
		e.emit(kw("DO"))
		e.emit(space())
		e.emit(kw("NOTHING"))
	}
	e.emit(closeContainer(MergeWhenClauseContainer))
	return nil
}

func (e *Emitter) emitMerge(m *ast.Merge) error {
	e.emit(openContainer(MergeStatement))
	e.emitComments(m.Before, true)
	if m.With != nil {
		if err := e.emitWith(m.With); err != nil {
			return err
		}
		e.emit(commentNewline())
	}
	e.emit(kw("MERGE"))
	e.emit(space())
	e.emit(kw("INTO"))
	e.emit(space())
	if err := e.emitSource(m.Target); err != nil {
		return err
	}
	e.emit(commentNewline())
	e.emit(kw("USING"))
	e.emit(space())
	if err := e.emitSource(m.Source); err != nil {
		return err
	}
	e.emit(space())
	e.emit(kw("ON"))
	e.emit(space())
	if err := e.emitExpr(m.On); err != nil {
		return err
	}
	for _, w := range m.Whens {
		e.emit(commentNewline())
		if err := e.emitMergeWhen(w); err != nil {
			return err
		}
	}
	e.emitComments(m.After, false)
	e.emit(closeContainer(MergeStatement))
	return nil
}
