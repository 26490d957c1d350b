package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/ast"
	"github.com/sqlforge/sqlforge/sqlerr"
	"github.com/sqlforge/sqlforge/transform"
)

func TestSelectableColumnCollector_PrefersAlias(t *testing.T) {
	s := &ast.SimpleSelect{Select: &ast.Select{Items: []*ast.SelectItem{
		{Expr: &ast.Identifier{Name: "id"}},
		{Expr: &ast.QualifiedName{Namespaces: []*ast.Identifier{{Name: "o"}}, Name: &ast.Identifier{Name: "total"}}, Alias: &ast.Identifier{Name: "order_total"}},
	}}}

	cols := (transform.SelectableColumnCollector{}).Collect(s)
	assert.Equal(t, []string{"id", "order_total"}, cols)
}

func TestUpstreamSelectQueryFinder_FindsThroughSubquery(t *testing.T) {
	inner := &ast.SimpleSelect{Select: &ast.Select{Items: []*ast.SelectItem{
		{Expr: &ast.Identifier{Name: "customer_id"}, Alias: &ast.Identifier{Name: "cid"}},
	}}}
	outer := &ast.SimpleSelect{
		Select: &ast.Select{Items: []*ast.SelectItem{{Expr: &ast.Identifier{Name: "*"}}}},
		From:   &ast.From{Source: &ast.SubQuerySource{Query: inner, Alias: &ast.Identifier{Name: "derived"}}},
	}

	found, err := (transform.UpstreamSelectQueryFinder{}).Find(outer, "cid")
	require.NoError(t, err)
	assert.Same(t, inner, found)
}

func TestUpstreamSelectQueryFinder_AmbiguousWhenMultiple(t *testing.T) {
	left := &ast.SimpleSelect{Select: &ast.Select{Items: []*ast.SelectItem{{Expr: &ast.Identifier{Name: "id"}}}}}
	right := &ast.SimpleSelect{Select: &ast.Select{Items: []*ast.SelectItem{{Expr: &ast.Identifier{Name: "id"}}}}}
	union := &ast.BinarySelect{Left: left, Op: ast.Union, Right: right}

	_, err := (transform.UpstreamSelectQueryFinder{}).Find(union, "id")
	require.Error(t, err)
	var amb *sqlerr.AmbiguousColumn
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, 2, amb.Count)
}
