package transform

import (
	"sort"

	"github.com/sqlforge/sqlforge/ast"
	"github.com/sqlforge/sqlforge/sqlerr"
)

// CollectedParameter is one parameter occurrence with its resolved
// final index (spec.md section 4.9): assigned by a deterministic,
// outer-then-inner, left-to-right traversal (spec.md section 5),
// independent of whatever dialect the tree is eventually emitted under.
type CollectedParameter struct {
	Node  *ast.Parameter
	Name  string
	Index int // 1-based traversal position
}

// NamedGroup is one distinct parameter name under named-style
// collection, carrying every occurrence bound to it.
type NamedGroup struct {
	Name  string
	Nodes []*ast.Parameter
}

// ParameterCollector walks a query tree and reports its bind
// parameters under each of the three dialect.ParameterStyle emission
// rules (spec.md section 4.9).
type ParameterCollector struct{}

// Collect returns the parameters walkParams reaches in root, in
// traversal order, indexed consecutively from 1. Parameters inside
// RETURNING lists, UPDATE ... FROM and DELETE ... USING sources, a
// MERGE's USING source, and window or aggregate ORDER BY lists are not
// visited.
func (ParameterCollector) Collect(root ast.Node) []CollectedParameter {
	var out []CollectedParameter
	idx := 0
	walkParams(root, func(p *ast.Parameter) {
		idx++
		out = append(out, CollectedParameter{Node: p, Name: p.Name, Index: idx})
	})
	return out
}

// Named groups parameters by name, first-occurrence order, for
// dialect.Named emission. A name bound to occurrences whose explicit
// Index fields (when set) disagree is reported as
// sqlerr.DuplicateParameter -- the AST carries no separate bound-value
// slot for a Parameter (see DESIGN.md), so an explicit-index conflict
// is the one machine-checkable stand-in for "the same name used with
// two different values" spec.md's wording describes.
func (ParameterCollector) Named(root ast.Node) ([]NamedGroup, error) {
	var order []string
	byName := map[string][]*ast.Parameter{}
	walkParams(root, func(p *ast.Parameter) {
		if _, ok := byName[p.Name]; !ok {
			order = append(order, p.Name)
		}
		byName[p.Name] = append(byName[p.Name], p)
	})
	out := make([]NamedGroup, 0, len(order))
	for _, name := range order {
		nodes := byName[name]
		if err := checkConsistentIndex(name, nodes); err != nil {
			return nil, err
		}
		out = append(out, NamedGroup{Name: name, Nodes: nodes})
	}
	return out, nil
}

func checkConsistentIndex(name string, nodes []*ast.Parameter) error {
	var want *int
	for _, n := range nodes {
		if n.Index == nil {
			continue
		}
		if want == nil {
			want = n.Index
			continue
		}
		if *want != *n.Index {
			return &sqlerr.DuplicateParameter{Name: name}
		}
	}
	return nil
}

// Indexed returns every parameter sorted by its explicit Index when
// set, else by traversal order, for dialect.Indexed emission.
func (ParameterCollector) Indexed(root ast.Node) []CollectedParameter {
	collected := ParameterCollector{}.Collect(root)
	sort.SliceStable(collected, func(i, j int) bool {
		return effectiveIndex(collected[i]) < effectiveIndex(collected[j])
	})
	return collected
}

// Anonymous returns every parameter in traversal order for
// dialect.Anonymous emission; names and explicit indices are ignored.
func (ParameterCollector) Anonymous(root ast.Node) []CollectedParameter {
	return ParameterCollector{}.Collect(root)
}

func effectiveIndex(c CollectedParameter) int {
	if c.Node.Index != nil {
		return *c.Node.Index
	}
	return c.Index
}

func walkParams(n ast.Node, visit func(*ast.Parameter)) {
	switch v := n.(type) {
	case nil:
	case *ast.Parameter:
		visit(v)
	case *ast.SimpleSelect:
		if v.With != nil {
			for _, t := range v.With.Tables {
				walkParams(t.Query, visit)
			}
		}
		if v.Select != nil {
			for _, item := range v.Select.Items {
				walkParams(item.Expr, visit)
			}
			if v.Select.Distinct != nil {
				for _, e := range v.Select.Distinct.On {
					walkParams(e, visit)
				}
			}
		}
		if v.From != nil {
			walkSourceParams(v.From.Source, visit)
			for _, j := range v.From.Joins {
				walkSourceParams(j.Source, visit)
				if on, ok := j.Condition.(*ast.JoinOn); ok {
					walkParams(on.Condition, visit)
				}
			}
		}
		if v.Where != nil {
			walkParams(v.Where.Condition, visit)
		}
		if v.GroupBy != nil {
			for _, e := range v.GroupBy.Items {
				walkParams(e, visit)
			}
		}
		if v.Having != nil {
			walkParams(v.Having.Condition, visit)
		}
		if v.OrderBy != nil {
			for _, it := range v.OrderBy.Items {
				walkParams(it.Value, visit)
			}
		}
		if v.Limit != nil {
			walkParams(v.Limit.Count, visit)
		}
		if v.Offset != nil {
			walkParams(v.Offset.Count, visit)
		}
		if v.Fetch != nil {
			walkParams(v.Fetch.Count, visit)
		}
	case *ast.BinarySelect:
		walkParams(v.Left, visit)
		walkParams(v.Right, visit)
	case *ast.Values:
		for _, row := range v.Rows {
			for _, e := range row.Elements {
				walkParams(e, visit)
			}
		}
	case *ast.Insert:
		if v.With != nil {
			for _, t := range v.With.Tables {
				walkParams(t.Query, visit)
			}
		}
		walkParams(v.Query, visit)
	case *ast.Update:
		if v.With != nil {
			for _, t := range v.With.Tables {
				walkParams(t.Query, visit)
			}
		}
		if v.Set != nil {
			for _, a := range v.Set.Assignments {
				walkParams(a.Value, visit)
			}
		}
		if v.Where != nil {
			walkParams(v.Where.Condition, visit)
		}
	case *ast.Delete:
		if v.With != nil {
			for _, t := range v.With.Tables {
				walkParams(t.Query, visit)
			}
		}
		if v.Where != nil {
			walkParams(v.Where.Condition, visit)
		}
	case *ast.Merge:
		if v.With != nil {
			for _, t := range v.With.Tables {
				walkParams(t.Query, visit)
			}
		}
		walkParams(v.On, visit)
		for _, w := range v.Whens {
			walkParams(w.AndCond, visit)
			if w.Set != nil {
				for _, a := range w.Set.Assignments {
					walkParams(a.Value, visit)
				}
			}
			for _, val := range w.Values {
				walkParams(val, visit)
			}
		}
	case *ast.Binary:
		walkParams(v.Left, visit)
		walkParams(v.Right, visit)
	case *ast.Unary:
		walkParams(v.Operand, visit)
	case *ast.Paren:
		walkParams(v.Inner, visit)
	case *ast.FunctionCall:
		for _, a := range v.Args {
			walkParams(a, visit)
		}
		if v.Over != nil {
			for _, e := range v.Over.PartitionBy {
				walkParams(e, visit)
			}
		}
	case *ast.Cast:
		walkParams(v.Input, visit)
	case *ast.Case:
		walkParams(v.Condition, visit)
		if v.Arg != nil {
			for _, c := range v.Arg.Cases {
				walkParams(c.When, visit)
				walkParams(c.Then, visit)
			}
			walkParams(v.Arg.ElseValue, visit)
		}
	case *ast.Between:
		walkParams(v.Value, visit)
		walkParams(v.Lower, visit)
		walkParams(v.Upper, visit)
	case *ast.Tuple:
		for _, e := range v.Elements {
			walkParams(e, visit)
		}
	case *ast.ValueList:
		for _, e := range v.Elements {
			walkParams(e, visit)
		}
	case *ast.InlineQuery:
		walkParams(v.Query, visit)
	case *ast.ArrayQuery:
		walkParams(v.Query, visit)
	case *ast.Array:
		for _, e := range v.Elements {
			walkParams(e, visit)
		}
	case *ast.ArraySlice:
		walkParams(v.Array, visit)
		walkParams(v.Lower, visit)
		walkParams(v.Upper, visit)
	case *ast.ArrayIndex:
		walkParams(v.Array, visit)
		walkParams(v.Index, visit)
	}
}

func walkSourceParams(s ast.Source, visit func(*ast.Parameter)) {
	switch v := s.(type) {
	case *ast.SubQuerySource:
		walkParams(v.Query, visit)
	case *ast.FunctionCall:
		walkParams(v, visit)
	}
}
