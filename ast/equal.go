package ast

// Equal reports whether two query roots are structurally identical,
// ignoring every Comments field (spec.md section 3: "whitespace and
// comment differences must not count as distinct" when two CTE bodies
// are compared for merge-deduplication). It does not ignore aliases,
// operators, or literal values -- only the positioned-comment overlay.
func Equal(a, b QueryRoot) bool {
	return equalQueryRoot(a, b)
}

func equalQueryRoot(a, b QueryRoot) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *SimpleSelect:
		y, ok := b.(*SimpleSelect)
		return ok && equalSimpleSelect(x, y)
	case *BinarySelect:
		y, ok := b.(*BinarySelect)
		return ok && x.Op == y.Op && equalQueryRoot(x.Left, y.Left) && equalQueryRoot(x.Right, y.Right)
	case *Values:
		y, ok := b.(*Values)
		if !ok || len(x.Rows) != len(y.Rows) {
			return false
		}
		for i := range x.Rows {
			if !equalExpr(x.Rows[i], y.Rows[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalSimpleSelect(a, b *SimpleSelect) bool {
	return equalWith(a.With, b.With) &&
		equalSelect(a.Select, b.Select) &&
		equalFrom(a.From, b.From) &&
		equalExprPtr(condOf(a.Where), condOf(b.Where)) &&
		equalExprSlice(groupItemsOf(a.GroupBy), groupItemsOf(b.GroupBy)) &&
		equalExprPtr(havingCondOf(a.Having), havingCondOf(b.Having)) &&
		equalOrderBy(a.OrderBy, b.OrderBy) &&
		equalExprPtr(limitCountOf(a.Limit), limitCountOf(b.Limit)) &&
		equalExprPtr(offsetCountOf(a.Offset), offsetCountOf(b.Offset))
}

func condOf(w *Where) Expr {
	if w == nil {
		return nil
	}
	return w.Condition
}

func havingCondOf(h *Having) Expr {
	if h == nil {
		return nil
	}
	return h.Condition
}

func groupItemsOf(g *GroupBy) []Expr {
	if g == nil {
		return nil
	}
	return g.Items
}

func limitCountOf(l *Limit) Expr {
	if l == nil {
		return nil
	}
	return l.Count
}

func offsetCountOf(o *Offset) Expr {
	if o == nil {
		return nil
	}
	return o.Count
}

func equalWith(a, b *With) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Recursive != b.Recursive || len(a.Tables) != len(b.Tables) {
		return false
	}
	for i := range a.Tables {
		ta, tb := a.Tables[i], b.Tables[i]
		if nameOf(ta.Alias) != nameOf(tb.Alias) || ta.Materialized != tb.Materialized {
			return false
		}
		if !equalQueryRoot(ta.Query, tb.Query) {
			return false
		}
	}
	return true
}

func nameOf(i *Identifier) string {
	if i == nil {
		return ""
	}
	return i.Name
}

func equalSelect(a, b *Select) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if nameOf(a.Items[i].Alias) != nameOf(b.Items[i].Alias) {
			return false
		}
		if !equalExpr(a.Items[i].Expr, b.Items[i].Expr) {
			return false
		}
	}
	return true
}

func equalFrom(a, b *From) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !equalSource(a.Source, b.Source) || len(a.Joins) != len(b.Joins) {
		return false
	}
	for i := range a.Joins {
		ja, jb := a.Joins[i], b.Joins[i]
		if ja.Kind != jb.Kind || !equalSource(ja.Source, jb.Source) {
			return false
		}
		if !equalJoinCondition(ja.Condition, jb.Condition) {
			return false
		}
	}
	return true
}

func equalJoinCondition(a, b JoinCondition) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *JoinOn:
		y, ok := b.(*JoinOn)
		return ok && equalExpr(x.Condition, y.Condition)
	case *JoinUsing:
		y, ok := b.(*JoinUsing)
		if !ok || len(x.Columns) != len(y.Columns) {
			return false
		}
		for i := range x.Columns {
			if nameOf(x.Columns[i]) != nameOf(y.Columns[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalSource(a, b Source) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *TableName:
		y, ok := b.(*TableName)
		return ok && equalQName(x.Name, y.Name) && nameOf(x.Alias) == nameOf(y.Alias)
	case *SubQuerySource:
		y, ok := b.(*SubQuerySource)
		return ok && nameOf(x.Alias) == nameOf(y.Alias) && equalQueryRoot(x.Query, y.Query)
	case *ValuesTable:
		y, ok := b.(*ValuesTable)
		return ok && nameOf(x.Alias) == nameOf(y.Alias) && equalQueryRoot(x.Values, y.Values)
	case *FunctionCall:
		y, ok := b.(*FunctionCall)
		return ok && equalExpr(x, y)
	default:
		return false
	}
}

func equalQName(a, b *QualifiedName) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a.Namespaces) != len(b.Namespaces) {
		return false
	}
	for i := range a.Namespaces {
		if nameOf(a.Namespaces[i]) != nameOf(b.Namespaces[i]) {
			return false
		}
	}
	return nameOf(a.Name) == nameOf(b.Name)
}

func equalOrderBy(a, b *OrderBy) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if a.Items[i].Dir != b.Items[i].Dir || a.Items[i].Nulls != b.Items[i].Nulls {
			return false
		}
		if !equalExpr(a.Items[i].Value, b.Items[i].Value) {
			return false
		}
	}
	return true
}

func equalExprPtr(a, b Expr) bool { return equalExpr(a, b) }

func equalExprSlice(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalExpr(a[i], b[i]) {
			return false
		}
	}
	return true
}

// equalExpr compares value expressions structurally, skipping every
// embedded Comments field.
func equalExpr(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.Value == y.Value && x.IsString == y.IsString
	case *Identifier:
		y, ok := b.(*Identifier)
		return ok && x.Name == y.Name
	case *QualifiedName:
		y, ok := b.(*QualifiedName)
		return ok && equalQName(x, y)
	case *Parameter:
		y, ok := b.(*Parameter)
		return ok && x.Name == y.Name
	case *FunctionCall:
		y, ok := b.(*FunctionCall)
		if !ok || !equalQName(x.Name, y.Name) || x.Distinct != y.Distinct || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !equalExpr(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Op == y.Op && equalExpr(x.Operand, y.Operand)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && equalExpr(x.Left, y.Left) && equalExpr(x.Right, y.Right)
	case *Paren:
		y, ok := b.(*Paren)
		return ok && equalExpr(x.Inner, y.Inner)
	case *Cast:
		y, ok := b.(*Cast)
		return ok && x.Type.Name == y.Type.Name && equalExpr(x.Input, y.Input)
	case *Between:
		y, ok := b.(*Between)
		return ok && x.Neg == y.Neg && equalExpr(x.Value, y.Value) && equalExpr(x.Lower, y.Lower) && equalExpr(x.Upper, y.Upper)
	case *Tuple:
		y, ok := b.(*Tuple)
		return ok && equalExprSlice(x.Elements, y.Elements)
	case *ValueList:
		y, ok := b.(*ValueList)
		return ok && equalExprSlice(x.Elements, y.Elements)
	case *InlineQuery:
		y, ok := b.(*InlineQuery)
		return ok && equalQueryRoot(x.Query, y.Query)
	case *SimpleSelect:
		y, ok := b.(*SimpleSelect)
		return ok && equalSimpleSelect(x, y)
	case *Array:
		y, ok := b.(*Array)
		return ok && equalExprSlice(x.Elements, y.Elements)
	default:
		return false
	}
}
