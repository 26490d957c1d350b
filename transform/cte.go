// Package transform implements the query-rewriting transformers spec.md
// section 4.6-4.9 describes on top of the closed ast.Node taxonomy:
// CTE collection/normalization/injection, selectable-column resolution,
// upstream-SELECT finding, QueryBuilder DML conversions, and parameter
// collection. Every exported operation here is a pure function of its
// input tree (spec.md section 5): nothing is mutated in place, and a
// failed transform leaves its input tree untouched and returns a typed
// sqlerr error.
package transform

import (
	"github.com/sqlforge/sqlforge/ast"
	"github.com/sqlforge/sqlforge/sqlerr"
)

// CTEEntry is one WITH-clause entry discovered by CTECollector, tagged
// with the subquery nesting depth it was found at: 0 for a CTE declared
// directly on the root query, incrementing by one for each subquery
// boundary (derived table, scalar subquery, array subquery, or a CTE's
// own body) crossed to reach it.
type CTEEntry struct {
	Alias *ast.Identifier
	Table *ast.CommonTable
	Depth int
}

// CTECollector walks a query root and gathers every CommonTable
// reachable from it, at every nesting depth.
type CTECollector struct{}

// Collect returns every CTE entry reachable from root, in declaration
// order, depth-tagged.
func (CTECollector) Collect(root ast.QueryRoot) []CTEEntry {
	var out []CTEEntry
	collectCTEs(root, 0, &out)
	return out
}

func collectCTEs(root ast.Node, depth int, out *[]CTEEntry) {
	switch n := root.(type) {
	case *ast.SimpleSelect:
		if n.With != nil {
			for _, t := range n.With.Tables {
				*out = append(*out, CTEEntry{Alias: t.Alias, Table: t, Depth: depth})
				collectCTEs(t.Query, depth+1, out)
			}
		}
		if n.Select != nil {
			for _, item := range n.Select.Items {
				collectExprCTEs(item.Expr, depth+1, out)
			}
		}
		if n.From != nil {
			collectSourceCTEs(n.From.Source, depth+1, out)
			for _, j := range n.From.Joins {
				collectSourceCTEs(j.Source, depth+1, out)
			}
		}
		if n.Where != nil {
			collectExprCTEs(n.Where.Condition, depth+1, out)
		}
	case *ast.BinarySelect:
		collectCTEs(n.Left, depth, out)
		collectCTEs(n.Right, depth, out)
	}
}

func collectSourceCTEs(s ast.Source, depth int, out *[]CTEEntry) {
	if v, ok := s.(*ast.SubQuerySource); ok {
		collectCTEs(v.Query, depth, out)
	}
}

func collectExprCTEs(e ast.Expr, depth int, out *[]CTEEntry) {
	switch v := e.(type) {
	case *ast.InlineQuery:
		collectCTEs(v.Query, depth, out)
	case *ast.ArrayQuery:
		collectCTEs(v.Query, depth, out)
	case *ast.Paren:
		collectExprCTEs(v.Inner, depth, out)
	case *ast.Binary:
		collectExprCTEs(v.Left, depth, out)
		collectExprCTEs(v.Right, depth, out)
	case *ast.Unary:
		collectExprCTEs(v.Operand, depth, out)
	}
}

// CTEDisabler strips every WITH clause from a query tree, at every
// nesting depth, returning a new tree and leaving root untouched.
type CTEDisabler struct{}

// Disable returns a clone of root with every WITH clause removed.
func (CTEDisabler) Disable(root ast.QueryRoot) ast.QueryRoot {
	clone := root.Clone().(ast.QueryRoot)
	disableCTEs(clone)
	return clone
}

func disableCTEs(root ast.Node) {
	switch n := root.(type) {
	case *ast.SimpleSelect:
		if n.With != nil {
			for _, t := range n.With.Tables {
				disableCTEs(t.Query)
			}
		}
		n.With = nil
		n.RebuildCTECache()
		if n.Select != nil {
			for _, item := range n.Select.Items {
				disableExprCTEs(item.Expr)
			}
		}
		if n.From != nil {
			disableSourceCTEs(n.From.Source)
			for _, j := range n.From.Joins {
				disableSourceCTEs(j.Source)
			}
		}
		if n.Where != nil {
			disableExprCTEs(n.Where.Condition)
		}
	case *ast.BinarySelect:
		disableCTEs(n.Left)
		disableCTEs(n.Right)
	}
}

func disableSourceCTEs(s ast.Source) {
	if v, ok := s.(*ast.SubQuerySource); ok {
		disableCTEs(v.Query)
	}
}

func disableExprCTEs(e ast.Expr) {
	switch v := e.(type) {
	case *ast.InlineQuery:
		disableCTEs(v.Query)
	case *ast.ArrayQuery:
		disableCTEs(v.Query)
	case *ast.Paren:
		disableExprCTEs(v.Inner)
	case *ast.Binary:
		disableExprCTEs(v.Left)
		disableExprCTEs(v.Right)
	case *ast.Unary:
		disableExprCTEs(v.Operand)
	}
}

// CTEInjector reassembles a single root-level WITH clause from a set of
// previously collected entries.
type CTEInjector struct{}

// Inject merges entries into one WITH clause on a clone of root,
// deduplicating same-named entries whose bodies are structurally equal
// modulo comments and raising sqlerr.DuplicateCTE when they differ,
// ordering the survivors topologically by reference with a stable
// antichain tie-break, and setting the RECURSIVE flag when any survivor
// references its own alias. root must be a *ast.SimpleSelect -- any
// other query root has nowhere to carry a WITH clause and is returned
// unchanged.
func (CTEInjector) Inject(root ast.QueryRoot, entries []CTEEntry) (ast.QueryRoot, error) {
	target, ok := root.(*ast.SimpleSelect)
	if !ok {
		return root, nil
	}
	merged, err := dedupeCTEs(entries)
	if err != nil {
		return nil, err
	}
	ordered := topoSortCTEs(merged)
	clone := target.Clone().(*ast.SimpleSelect)
	if len(ordered) == 0 {
		return clone, nil
	}
	recursive := false
	for _, t := range ordered {
		if t.Alias == nil {
			continue
		}
		for _, dep := range referencedAliases(t.Query) {
			if dep == t.Alias.Name {
				recursive = true
			}
		}
	}
	clone.With = &ast.With{Recursive: recursive, Tables: ordered}
	clone.RebuildCTECache()
	return clone, nil
}

func dedupeCTEs(entries []CTEEntry) ([]*ast.CommonTable, error) {
	var order []string
	byName := map[string]*ast.CommonTable{}
	for _, e := range entries {
		if e.Alias == nil || e.Table == nil {
			continue
		}
		name := e.Alias.Name
		if existing, ok := byName[name]; ok {
			if !EqualModuloComments(existing.Query, e.Table.Query) {
				return nil, &sqlerr.DuplicateCTE{Name: name}
			}
			continue
		}
		byName[name] = e.Table
		order = append(order, name)
	}
	out := make([]*ast.CommonTable, len(order))
	for i, name := range order {
		out[i] = byName[name]
	}
	return out, nil
}

// topoSortCTEs orders tables so that every CTE appears after the CTEs
// it references (excluding self-reference, which is a RECURSIVE marker
// rather than an ordering dependency), using the same visiting/visited
// DFS idiom as vippsas-sqlcode/sqlparser/sqldocument/topological_sort.go.
// Visiting tables in declaration order and appending each one post-order
// gives independent CTEs (an antichain) their original relative order.
func topoSortCTEs(tables []*ast.CommonTable) []*ast.CommonTable {
	byName := make(map[string]int, len(tables))
	for i, t := range tables {
		if t.Alias != nil {
			byName[t.Alias.Name] = i
		}
	}
	visiting := make([]bool, len(tables))
	visited := make([]bool, len(tables))
	out := make([]*ast.CommonTable, 0, len(tables))

	var visit func(i int)
	visit = func(i int) {
		if visited[i] || visiting[i] {
			return
		}
		visiting[i] = true
		if tables[i].Alias != nil {
			for _, dep := range referencedAliases(tables[i].Query) {
				if dep == tables[i].Alias.Name {
					continue
				}
				if j, ok := byName[dep]; ok {
					visit(j)
				}
			}
		}
		visiting[i] = false
		visited[i] = true
		out = append(out, tables[i])
	}
	for i := range tables {
		visit(i)
	}
	return out
}

// referencedAliases returns every bare (unqualified) table name q's
// FROM/JOIN sources reference, the candidate set of CTE aliases it
// might depend on.
func referencedAliases(q ast.QueryRoot) []string {
	var out []string
	var walkQuery func(n ast.Node)
	var walkSource func(s ast.Source)
	walkSource = func(s ast.Source) {
		switch v := s.(type) {
		case *ast.TableName:
			if v.Name != nil && len(v.Name.Namespaces) == 0 && v.Name.Name != nil {
				out = append(out, v.Name.Name.Name)
			}
		case *ast.SubQuerySource:
			walkQuery(v.Query)
		}
	}
	walkQuery = func(n ast.Node) {
		switch v := n.(type) {
		case *ast.SimpleSelect:
			if v.From != nil {
				walkSource(v.From.Source)
				for _, j := range v.From.Joins {
					walkSource(j.Source)
				}
			}
		case *ast.BinarySelect:
			walkQuery(v.Left)
			walkQuery(v.Right)
		}
	}
	walkQuery(q)
	return out
}
