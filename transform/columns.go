package transform

import (
	"github.com/sqlforge/sqlforge/ast"
	"github.com/sqlforge/sqlforge/sqlerr"
)

// SelectableColumnCollector resolves the set of column names a SELECT
// exposes to an outer query: each item's explicit alias, or else the
// bare identifier/qualified column name it projects. Items that project
// neither (an unaliased function call or literal) contribute no name.
type SelectableColumnCollector struct{}

// Collect returns s's selectable column names in item order.
func (SelectableColumnCollector) Collect(s *ast.SimpleSelect) []string {
	if s == nil || s.Select == nil {
		return nil
	}
	out := make([]string, 0, len(s.Select.Items))
	for _, item := range s.Select.Items {
		if name := selectableColumnName(item); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func selectableColumnName(item *ast.SelectItem) string {
	if item.Alias != nil {
		return item.Alias.Name
	}
	switch e := item.Expr.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.QualifiedName:
		if e.Name != nil {
			return e.Name.Name
		}
	}
	return ""
}

// UpstreamSelectQueryFinder locates the upstream SELECT(s) (glossary:
// "any SELECT reachable from a root query through subqueries, CTEs, or
// binary branches") whose output schema includes a given column name.
type UpstreamSelectQueryFinder struct{}

// Find returns the single upstream SELECT exposing name, or
// sqlerr.AmbiguousColumn if zero or more than one do.
func (f UpstreamSelectQueryFinder) Find(root ast.QueryRoot, name string) (*ast.SimpleSelect, error) {
	matches := f.FindAll(root, name)
	if len(matches) != 1 {
		return nil, &sqlerr.AmbiguousColumn{Name: name, Count: len(matches)}
	}
	return matches[0], nil
}

// FindAll returns every upstream SELECT exposing name, with no
// uniqueness requirement -- callers comparing UNION branches that
// legitimately share a column name want every match, not just one.
func (UpstreamSelectQueryFinder) FindAll(root ast.QueryRoot, name string) []*ast.SimpleSelect {
	var matches []*ast.SimpleSelect
	collector := SelectableColumnCollector{}
	walkSelects(root, func(s *ast.SimpleSelect) {
		for _, col := range collector.Collect(s) {
			if col == name {
				matches = append(matches, s)
				return
			}
		}
	})
	return matches
}

func walkSelects(n ast.Node, visit func(*ast.SimpleSelect)) {
	switch v := n.(type) {
	case *ast.SimpleSelect:
		visit(v)
		if v.With != nil {
			for _, t := range v.With.Tables {
				walkSelects(t.Query, visit)
			}
		}
		if v.From != nil {
			walkSourceSelects(v.From.Source, visit)
			for _, j := range v.From.Joins {
				walkSourceSelects(j.Source, visit)
			}
		}
	case *ast.BinarySelect:
		walkSelects(v.Left, visit)
		walkSelects(v.Right, visit)
	}
}

func walkSourceSelects(s ast.Source, visit func(*ast.SimpleSelect)) {
	if v, ok := s.(*ast.SubQuerySource); ok {
		walkSelects(v.Query, visit)
	}
}
