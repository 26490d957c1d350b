package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/ast"
	"github.com/sqlforge/sqlforge/transform"
)

func selectWithColumns(cols ...string) *ast.SimpleSelect {
	items := make([]*ast.SelectItem, len(cols))
	for i, c := range cols {
		items[i] = &ast.SelectItem{Expr: &ast.Identifier{Name: c}}
	}
	return &ast.SimpleSelect{
		Select: &ast.Select{Items: items},
		From:   &ast.From{Source: &ast.TableName{Name: &ast.QualifiedName{Name: &ast.Identifier{Name: "staging"}}}},
		Where:  &ast.Where{Condition: &ast.Binary{Op: "=", Left: &ast.Identifier{Name: "active"}, Right: &ast.Literal{Value: "true"}}},
	}
}

func TestQueryBuilder_ToInsert(t *testing.T) {
	src := selectWithColumns("id", "name")
	src.With = &ast.With{Tables: []*ast.CommonTable{{Alias: &ast.Identifier{Name: "base"}, Query: selectWithColumns("id")}}}

	target := &ast.QualifiedName{Name: &ast.Identifier{Name: "users"}}
	insert := (transform.QueryBuilder{}).ToInsert(src, target, nil, nil)

	require.NotNil(t, insert.With, "source WITH must carry over onto the Insert")
	assert.Equal(t, "users", insert.Insert.Table.Name.Name)
	inner, ok := insert.Query.(*ast.SimpleSelect)
	require.True(t, ok)
	assert.Nil(t, inner.With, "the inner SELECT no longer carries its own WITH")
	assert.Len(t, inner.Select.Items, 2)
}

func TestQueryBuilder_ToUpdate(t *testing.T) {
	src := selectWithColumns("name", "email")
	target := &ast.TableName{Name: &ast.QualifiedName{Name: &ast.Identifier{Name: "users"}}}

	update := (transform.QueryBuilder{}).ToUpdate(src, target, nil)

	require.Len(t, update.Set.Assignments, 2)
	assert.Equal(t, "name", update.Set.Assignments[0].Column.Name)
	assert.Equal(t, "email", update.Set.Assignments[1].Column.Name)
	assert.NotNil(t, update.From, "source FROM carries over")
	assert.NotNil(t, update.Where, "source WHERE carries over")
}

func TestQueryBuilder_ToDelete(t *testing.T) {
	src := selectWithColumns("id")
	target := &ast.TableName{Name: &ast.QualifiedName{Name: &ast.Identifier{Name: "users"}}}

	del := (transform.QueryBuilder{}).ToDelete(src, target, nil)

	assert.Equal(t, "users", del.Delete.Table.Name.Name.Name)
	require.NotNil(t, del.Using)
	assert.NotNil(t, del.Where)
}

func TestQueryBuilder_ToMerge(t *testing.T) {
	src := selectWithColumns("id", "name")
	target := &ast.TableName{Name: &ast.QualifiedName{Name: &ast.Identifier{Name: "users"}}}
	onCond := &ast.Binary{Op: "=", Left: &ast.Identifier{Name: "u.id"}, Right: &ast.Identifier{Name: "s.id"}}
	whens := []*ast.MergeWhenClause{
		{When: ast.WhenMatched, Action: ast.MergeUpdate, Set: &ast.Set{}},
		{When: ast.WhenNotMatched, Action: ast.MergeInsert},
	}

	merge := (transform.QueryBuilder{}).ToMerge(src, target, "s", onCond, whens)

	assert.Equal(t, "users", merge.Target.Name.Name.Name)
	source, ok := merge.Source.(*ast.SubQuerySource)
	require.True(t, ok)
	assert.Equal(t, "s", source.Alias.Name)
	require.Len(t, merge.Whens, 2)
	assert.Equal(t, ast.MergeUpdate, merge.Whens[0].Action)
	assert.Equal(t, ast.MergeInsert, merge.Whens[1].Action)
}
