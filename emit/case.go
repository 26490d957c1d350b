package emit

import "github.com/sqlforge/sqlforge/ast"

// hoistableComments reports the leading comments belonging to a CASE's
// hoist target -- its Condition, or (when searched) the first WHEN key
// -- traversing transparent wrappers per spec.md section 4.4 rule 5.
func hoistableComments(expr ast.Expr) []string {
	switch v := expr.(type) {
	case *ast.QualifiedName:
		return v.Before
	case *ast.Identifier:
		return v.Before
	case *ast.Literal:
		return v.Before
	case *ast.Paren:
		inner := hoistableComments(v.Inner)
		return append(append([]string{}, v.Before...), inner...)
	case *ast.Unary:
		return append(append([]string{}, v.Before...), hoistableComments(v.Operand)...)
	}
	return nil
}

func dedupSignature(list []string) string {
	out := ""
	for i, s := range list {
		if i > 0 {
			out += "|"
		}
		out += s
	}
	return out
}

func (e *Emitter) emitCase(c *ast.Case) error {
	var hoisted []string
	if c.Condition != nil {
		hoisted = hoistableComments(c.Condition)
	} else if len(c.Arg.Cases) > 0 {
		hoisted = hoistableComments(c.Arg.Cases[0].When)
	}
	seen := map[string]bool{}
	var toRender []string
	for _, h := range hoisted {
		sig := dedupSignature([]string{h})
		if !seen[sig] {
			seen[sig] = true
			toRender = append(toRender, h)
		}
	}
	ownBefore := c.Before
	for _, b := range ownBefore {
		sig := dedupSignature([]string{b})
		if !seen[sig] {
			seen[sig] = true
			toRender = append(toRender, b)
		}
	}

	e.emit(openContainer(CaseExpression))
	e.emitComments(toRender, true)
	e.emit(kw("CASE"))
	if c.Condition != nil {
		e.emit(space())
		if err := e.emitExpr(c.Condition); err != nil {
			return err
		}
	}
	if err := e.emitSwitchCaseArgument(c.Arg); err != nil {
		return err
	}
	e.emitComments(c.After, false)
	e.emit(closeContainer(CaseExpression))
	return nil
}

func (e *Emitter) emitSwitchCaseArgument(arg *ast.SwitchCaseArgument) error {
	e.emit(openContainer(SwitchCaseArgument))
	for _, kv := range arg.Cases {
		e.emit(space())
		e.emit(openContainer(CaseKeyValuePair))
		e.emit(kw("WHEN"))
		e.emit(space())
		if err := e.emitExpr(kv.When); err != nil {
			return err
		}
		e.emit(space())
		e.emit(kw("THEN"))
		e.emit(space())
		if err := e.emitExpr(kv.Then); err != nil {
			return err
		}
		e.emit(closeContainer(CaseKeyValuePair))
	}
	if arg.ElseValue != nil {
		e.emit(space())
		e.emit(kw("ELSE"))
		e.emit(space())
		if err := e.emitExpr(arg.ElseValue); err != nil {
			return err
		}
	}
	e.emit(space())
	e.emit(kw("END"))
	// rule 6: SwitchCaseArgument's after-comments render after END on a
	// new line.
	for _, c := range arg.AfterComments {
		e.emit(commentNewline())
		e.emitBlockComment(c)
	}
	e.emit(closeContainer(SwitchCaseArgument))
	return nil
}

func (e *Emitter) emitFunctionCall(f *ast.FunctionCall) error {
	e.emit(openContainer(FunctionCallClause))
	e.emitComments(f.Before, true)
	e.emitQualifiedName(f.Name)
	e.emit(paren("("))
	if f.Distinct {
		e.emit(kw("DISTINCT"))
		e.emit(space())
	}
	for i, a := range f.Args {
		if i > 0 {
			e.emit(argSplitter())
		}
		if err := e.emitExpr(a); err != nil {
			return err
		}
	}
	if f.InternalOrderBy != nil {
		e.emit(space())
		e.emit(kw("ORDER"))
		e.emit(space())
		e.emit(kw("BY"))
		e.emit(space())
		e.emitOrderByItems(f.InternalOrderBy.Items)
	}
	e.emit(paren(")"))
	// rule 10: the closing paren carries the node's After comments; its
	// Before comments were rendered ahead of the name above. No other
	// handler renders a FunctionCall's comments, and they are left on
	// the node.
	e.emitComments(f.After, false)
	if f.WithOrdinality {
		e.emit(space())
		e.emit(kw("WITH"))
		e.emit(space())
		e.emit(kw("ORDINALITY"))
	}
	if f.Over != nil {
		e.emit(space())
		if err := e.emitOverClause(f.Over); err != nil {
			return err
		}
	}
	e.emit(closeContainer(FunctionCallClause))
	return nil
}

func (e *Emitter) emitOverClause(o *ast.OverClause) error {
	e.emit(kw("OVER"))
	if o.WindowName != nil {
		e.emit(space())
		e.emitIdentifier(o.WindowName)
		return nil
	}
	e.emit(paren("("))
	if len(o.PartitionBy) > 0 {
		e.emit(kw("PARTITION"))
		e.emit(space())
		e.emit(kw("BY"))
		e.emit(space())
		for i, p := range o.PartitionBy {
			if i > 0 {
				e.emit(argSplitter())
			}
			if err := e.emitExpr(p); err != nil {
				return err
			}
		}
	}
	if o.OrderBy != nil {
		if len(o.PartitionBy) > 0 {
			e.emit(space())
		}
		e.emit(kw("ORDER"))
		e.emit(space())
		e.emit(kw("BY"))
		e.emit(space())
		e.emitOrderByItems(o.OrderBy.Items)
	}
	if o.Frame != nil {
		e.emit(space())
		e.emitWindowFrame(o.Frame)
	}
	e.emit(paren(")"))
	return nil
}

func (e *Emitter) emitWindowFrame(f *ast.WindowFrame) {
	switch f.Units {
	case ast.RangeFrame:
		e.emit(kw("RANGE"))
	case ast.GroupsFrame:
		e.emit(kw("GROUPS"))
	default:
		e.emit(kw("ROWS"))
	}
	e.emit(space())
	if f.End != nil {
		e.emit(kw("BETWEEN"))
		e.emit(space())
		e.emitFrameBound(f.Start)
		e.emit(space())
		e.emit(kw("AND"))
		e.emit(space())
		e.emitFrameBound(f.End)
		return
	}
	e.emitFrameBound(f.Start)
}

func (e *Emitter) emitFrameBound(b *ast.FrameBound) {
	switch b.Kind {
	case ast.UnboundedPreceding:
		e.emit(kw("UNBOUNDED"))
		e.emit(space())
		e.emit(kw("PRECEDING"))
	case ast.UnboundedFollowing:
		e.emit(kw("UNBOUNDED"))
		e.emit(space())
		e.emit(kw("FOLLOWING"))
	case ast.CurrentRow:
		e.emit(kw("CURRENT"))
		e.emit(space())
		e.emit(kw("ROW"))
	case ast.Preceding:
		e.emitExpr(b.Offset)
		e.emit(space())
		e.emit(kw("PRECEDING"))
	case ast.Following:
		e.emitExpr(b.Offset)
		e.emit(space())
		e.emit(kw("FOLLOWING"))
	}
}

func (e *Emitter) emitOrderByItems(items []*ast.OrderByItem) {
	for i, it := range items {
		if i > 0 {
			e.emit(argSplitter())
		}
		e.emitExpr(it.Value)
		switch it.Dir {
		case ast.Ascending:
			e.emit(space())
			e.emit(kw("ASC"))
		case ast.Descending:
			e.emit(space())
			e.emit(kw("DESC"))
		}
		switch it.Nulls {
		case ast.NullsFirst:
			e.emit(space())
			e.emit(kw("NULLS"))
			e.emit(space())
			e.emit(kw("FIRST"))
		case ast.NullsLast:
			e.emit(space())
			e.emit(kw("NULLS"))
			e.emit(space())
			e.emit(kw("LAST"))
		}
	}
}
