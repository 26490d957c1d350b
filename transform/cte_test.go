package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/ast"
	"github.com/sqlforge/sqlforge/sqlerr"
	"github.com/sqlforge/sqlforge/transform"
)

func selectStar(table string) *ast.SimpleSelect {
	return &ast.SimpleSelect{
		Select: &ast.Select{Items: []*ast.SelectItem{{Expr: &ast.Identifier{Name: "*"}}}},
		From:   &ast.From{Source: &ast.TableName{Name: &ast.QualifiedName{Name: &ast.Identifier{Name: table}}}},
	}
}

func selectFromCTE(alias string) *ast.SimpleSelect {
	return &ast.SimpleSelect{
		Select: &ast.Select{Items: []*ast.SelectItem{{Expr: &ast.Identifier{Name: "*"}}}},
		From:   &ast.From{Source: &ast.TableName{Name: &ast.QualifiedName{Name: &ast.Identifier{Name: alias}}}},
	}
}

func TestCTECollector_CollectsNestedDepths(t *testing.T) {
	inner := selectStar("raw_events")
	root := &ast.SimpleSelect{
		With: &ast.With{Tables: []*ast.CommonTable{
			{Alias: &ast.Identifier{Name: "base"}, Query: inner},
		}},
		Select: &ast.Select{Items: []*ast.SelectItem{{Expr: &ast.Identifier{Name: "*"}}}},
		From:   &ast.From{Source: &ast.TableName{Name: &ast.QualifiedName{Name: &ast.Identifier{Name: "base"}}}},
	}

	entries := (transform.CTECollector{}).Collect(root)
	require.Len(t, entries, 1)
	assert.Equal(t, "base", entries[0].Alias.Name)
	assert.Equal(t, 0, entries[0].Depth)
}

func TestCTEDisabler_StripsWithoutMutatingInput(t *testing.T) {
	root := &ast.SimpleSelect{
		With: &ast.With{Tables: []*ast.CommonTable{
			{Alias: &ast.Identifier{Name: "base"}, Query: selectStar("raw_events")},
		}},
		Select: &ast.Select{Items: []*ast.SelectItem{{Expr: &ast.Identifier{Name: "*"}}}},
	}

	out := (transform.CTEDisabler{}).Disable(root)
	stripped := out.(*ast.SimpleSelect)
	assert.Nil(t, stripped.With)
	require.NotNil(t, root.With, "input must be left untouched")
	assert.Len(t, root.With.Tables, 1)
}

func TestCTEInjector_OrdersByReferenceAndFlagsRecursive(t *testing.T) {
	// "b" references "a"; declared out of dependency order to exercise
	// the topological sort. "a" additionally references itself, which
	// must set Recursive without being treated as an ordering edge.
	aQuery := selectFromCTE("a")
	bQuery := selectFromCTE("a")
	entries := []transform.CTEEntry{
		{Alias: &ast.Identifier{Name: "b"}, Table: &ast.CommonTable{Alias: &ast.Identifier{Name: "b"}, Query: bQuery}},
		{Alias: &ast.Identifier{Name: "a"}, Table: &ast.CommonTable{Alias: &ast.Identifier{Name: "a"}, Query: aQuery}},
	}

	root := &ast.SimpleSelect{Select: &ast.Select{Items: []*ast.SelectItem{{Expr: &ast.Identifier{Name: "*"}}}}}
	injected, err := (transform.CTEInjector{}).Inject(root, entries)
	require.NoError(t, err)

	out := injected.(*ast.SimpleSelect)
	require.NotNil(t, out.With)
	require.Len(t, out.With.Tables, 2)
	assert.Equal(t, "a", out.With.Tables[0].Alias.Name, "a must precede b, which depends on it")
	assert.Equal(t, "b", out.With.Tables[1].Alias.Name)
	assert.True(t, out.With.Recursive)
}

func TestCTEInjector_DuplicateNameDifferentBodyErrors(t *testing.T) {
	entries := []transform.CTEEntry{
		{Alias: &ast.Identifier{Name: "x"}, Table: &ast.CommonTable{Alias: &ast.Identifier{Name: "x"}, Query: selectStar("orders")}},
		{Alias: &ast.Identifier{Name: "x"}, Table: &ast.CommonTable{Alias: &ast.Identifier{Name: "x"}, Query: selectStar("customers")}},
	}

	root := &ast.SimpleSelect{Select: &ast.Select{Items: []*ast.SelectItem{{Expr: &ast.Identifier{Name: "*"}}}}}
	_, err := (transform.CTEInjector{}).Inject(root, entries)
	require.Error(t, err)
	var dup *sqlerr.DuplicateCTE
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "x", dup.Name)
}

func TestCTEInjector_DuplicateNameSameBodyIsDeduped(t *testing.T) {
	entries := []transform.CTEEntry{
		{Alias: &ast.Identifier{Name: "x"}, Table: &ast.CommonTable{Alias: &ast.Identifier{Name: "x"}, Query: selectStar("orders")}},
		{Alias: &ast.Identifier{Name: "x"}, Table: &ast.CommonTable{Alias: &ast.Identifier{Name: "x"}, Query: selectStar("orders")}},
	}

	root := &ast.SimpleSelect{Select: &ast.Select{Items: []*ast.SelectItem{{Expr: &ast.Identifier{Name: "*"}}}}}
	injected, err := (transform.CTEInjector{}).Inject(root, entries)
	require.NoError(t, err)
	out := injected.(*ast.SimpleSelect)
	require.Len(t, out.With.Tables, 1)
}

func TestEqualModuloComments_IgnoresComments(t *testing.T) {
	a := selectStar("orders")
	a.Select.Before = []string{"-- a comment"}
	b := selectStar("orders")
	assert.True(t, transform.EqualModuloComments(a, b))

	c := selectStar("customers")
	assert.False(t, transform.EqualModuloComments(a, c))
}
