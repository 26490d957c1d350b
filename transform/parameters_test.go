package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/ast"
	"github.com/sqlforge/sqlforge/sqlerr"
	"github.com/sqlforge/sqlforge/transform"
)

func selectWithParams(params ...*ast.Parameter) *ast.SimpleSelect {
	items := make([]*ast.SelectItem, len(params))
	for i, p := range params {
		items[i] = &ast.SelectItem{Expr: p}
	}
	return &ast.SimpleSelect{Select: &ast.Select{Items: items}}
}

func TestParameterCollector_Collect_AssignsTraversalOrder(t *testing.T) {
	p1 := &ast.Parameter{Name: "id"}
	p2 := &ast.Parameter{Name: "status"}
	root := selectWithParams(p1, p2)

	collected := (transform.ParameterCollector{}).Collect(root)
	require.Len(t, collected, 2)
	assert.Equal(t, 1, collected[0].Index)
	assert.Equal(t, "id", collected[0].Name)
	assert.Equal(t, 2, collected[1].Index)
	assert.Equal(t, "status", collected[1].Name)
}

func TestParameterCollector_Named_GroupsByName(t *testing.T) {
	p1 := &ast.Parameter{Name: "id"}
	p2 := &ast.Parameter{Name: "id"}
	root := selectWithParams(p1, p2)

	groups, err := (transform.ParameterCollector{}).Named(root)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "id", groups[0].Name)
	assert.Len(t, groups[0].Nodes, 2)
}

func TestParameterCollector_Named_ConflictingExplicitIndexErrors(t *testing.T) {
	one, two := 1, 2
	p1 := &ast.Parameter{Name: "id", Index: &one}
	p2 := &ast.Parameter{Name: "id", Index: &two}
	root := selectWithParams(p1, p2)

	_, err := (transform.ParameterCollector{}).Named(root)
	require.Error(t, err)
	var dup *sqlerr.DuplicateParameter
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "id", dup.Name)
}

func TestParameterCollector_Indexed_SortsByExplicitIndex(t *testing.T) {
	three, one := 3, 1
	p1 := &ast.Parameter{Name: "c", Index: &three}
	p2 := &ast.Parameter{Name: "a", Index: &one}
	root := selectWithParams(p1, p2)

	indexed := (transform.ParameterCollector{}).Indexed(root)
	require.Len(t, indexed, 2)
	assert.Equal(t, "a", indexed[0].Name)
	assert.Equal(t, "c", indexed[1].Name)
}

func TestParameterCollector_Anonymous_IgnoresNames(t *testing.T) {
	p1 := &ast.Parameter{Name: ""}
	p2 := &ast.Parameter{Name: ""}
	root := selectWithParams(p1, p2)

	anon := (transform.ParameterCollector{}).Anonymous(root)
	require.Len(t, anon, 2)
	assert.Same(t, p1, anon[0].Node)
	assert.Same(t, p2, anon[1].Node)
}
