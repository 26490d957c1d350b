package emit

import "github.com/sqlforge/sqlforge/ast"

// pushJoinContext records the declaration order of every table source
// and aliased derived table in a FROM clause (spec.md section 4.4,
// "JOIN-ON operand normalization"). Earliest declaration wins when the
// same name is registered twice within one FROM clause; callers must pop with
// popJoinContext on every exit path, including early returns, via
// defer.
func (e *Emitter) pushJoinContext(f *ast.From) map[string]int {
	ctx := map[string]int{}
	idx := 0
	register := func(s ast.Source) {
		for _, key := range sourceKeys(s) {
			if _, ok := ctx[key]; !ok {
				ctx[key] = idx
			}
		}
		idx++
	}
	register(f.Source)
	for _, j := range f.Joins {
		register(j.Source)
	}
	e.joinConditionContexts = append(e.joinConditionContexts, ctx)
	return ctx
}

func (e *Emitter) popJoinContext() {
	n := len(e.joinConditionContexts)
	if n == 0 {
		return
	}
	e.joinConditionContexts = e.joinConditionContexts[:n-1]
}

func (e *Emitter) currentJoinContext() map[string]int {
	n := len(e.joinConditionContexts)
	if n == 0 {
		return nil
	}
	return e.joinConditionContexts[n-1]
}

// sourceKeys returns the alias (if any), the bare table name, and the
// schema-qualified table name a column reference could use to address
// this source; for a derived table, its alias.
func sourceKeys(s ast.Source) []string {
	if sq, ok := s.(*ast.SubQuerySource); ok && sq.Alias != nil {
		return []string{sq.Alias.Name}
	}
	t, ok := s.(*ast.TableName)
	if !ok {
		return nil
	}
	var keys []string
	if t.Alias != nil {
		keys = append(keys, t.Alias.Name)
	}
	if t.Name == nil || t.Name.Name == nil {
		return keys
	}
	keys = append(keys, t.Name.Name.Name)
	if q := t.Name.Qualifier(); q != "" {
		keys = append(keys, q+"."+t.Name.Name.Name)
	}
	return keys
}

// normalizeJoinOn rewrites every binary `=` comparison in cond whose
// operands are both column references qualified by a source registered
// in the innermost join context so that the earlier-declared qualifier
// sits on the left (spec.md section 4.4). It recurses through
// parentheses and AND/OR trees; any other shape passes through
// unchanged. A no-op unless the active dialect asks for this
// normalization.
func (e *Emitter) normalizeJoinOn(cond ast.Expr) ast.Expr {
	if !e.cfg.JoinConditionOrderByDeclaration {
		return cond
	}
	ctx := e.currentJoinContext()
	if ctx == nil {
		return cond
	}
	return normalizeExpr(cond, ctx)
}

func normalizeExpr(expr ast.Expr, ctx map[string]int) ast.Expr {
	switch v := expr.(type) {
	case *ast.Paren:
		out := v.Clone().(*ast.Paren)
		out.Inner = normalizeExpr(v.Inner, ctx)
		return out
	case *ast.Binary:
		switch v.Op {
		case "AND", "OR", "and", "or":
			out := v.Clone().(*ast.Binary)
			out.Left = normalizeExpr(v.Left, ctx)
			out.Right = normalizeExpr(v.Right, ctx)
			return out
		case "=":
			leftQ, leftOK := qualifiedRefIndex(v.Left, ctx)
			rightQ, rightOK := qualifiedRefIndex(v.Right, ctx)
			if leftOK && rightOK && rightQ < leftQ {
				out := v.Clone().(*ast.Binary)
				out.Left, out.Right = v.Right, v.Left
				return out
			}
			return v
		}
	}
	return expr
}

func qualifiedRefIndex(expr ast.Expr, ctx map[string]int) (int, bool) {
	q, ok := expr.(*ast.QualifiedName)
	if !ok {
		return 0, false
	}
	qualifier := q.Qualifier()
	if qualifier == "" {
		return 0, false
	}
	idx, ok := ctx[qualifier]
	return idx, ok
}
