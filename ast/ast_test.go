package ast

import (
	"testing"

	"github.com/sqlforge/sqlforge/sqlerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func col(name string) *QualifiedName {
	return &QualifiedName{Name: &Identifier{Name: name}}
}

func qualifiedCol(qualifier, name string) *QualifiedName {
	return &QualifiedName{Namespaces: []*Identifier{{Name: qualifier}}, Name: &Identifier{Name: name}}
}

func baseSelect() *SimpleSelect {
	return &SimpleSelect{
		Select: &Select{Items: []*SelectItem{{Expr: col("id")}}},
		From:   &From{Source: &TableName{Name: col("accounts")}},
	}
}

func TestClone_NoAliasingBetweenTrees(t *testing.T) {
	orig := baseSelect()
	orig.AppendWhere(&Binary{Op: "=", Left: col("id"), Right: &Literal{Value: "1"}})

	clone := orig.Clone().(*SimpleSelect)
	clone.Where.Condition.(*Binary).Op = "<>"
	clone.Select.Items[0].Expr.(*QualifiedName).Name.Name = "mutated"

	assert.Equal(t, "=", orig.Where.Condition.(*Binary).Op)
	assert.Equal(t, "id", orig.Select.Items[0].Expr.(*QualifiedName).Name.Name)
}

func TestAppendWhere_CreatesThenAnds(t *testing.T) {
	s := baseSelect()
	s.AppendWhere(col("active"))
	require.NotNil(t, s.Where)
	assert.Equal(t, col("active"), s.Where.Condition)

	s.AppendWhere(col("verified"))
	bin, ok := s.Where.Condition.(*Binary)
	require.True(t, ok)
	assert.Equal(t, "AND", bin.Op)
}

func TestAppendWhereExpr_Upstream_PushesIntoDerivedTable(t *testing.T) {
	inner := baseSelect()
	sub := &SubQuerySource{Query: inner, Alias: &Identifier{Name: "a"}}
	outer := &SimpleSelect{
		Select: &Select{Items: []*SelectItem{{Expr: col("id")}}},
		From:   &From{Source: sub},
	}

	outer.AppendWhereExpr(col("flag"), true)

	assert.Nil(t, outer.Where)
	require.NotNil(t, inner.Where)
	assert.Equal(t, col("flag"), inner.Where.Condition)
}

func TestCTELifecycle(t *testing.T) {
	s := baseSelect()
	cte := baseSelect()

	require.NoError(t, s.AddCTE("recent", cte, MaterializedUnspecified))
	assert.True(t, s.HasCTE("recent"))
	assert.ElementsMatch(t, []string{"recent"}, s.GetCTENames())

	err := s.AddCTE("recent", cte, MaterializedUnspecified)
	var dup *sqlerr.DuplicateCTE
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "recent", dup.Name)

	require.NoError(t, s.ReplaceCTE("recent", baseSelect()))
	require.NoError(t, s.RemoveCTE("recent"))
	assert.False(t, s.HasCTE("recent"))

	err = s.RemoveCTE("missing")
	var notFound *sqlerr.CTENotFound
	require.ErrorAs(t, err, &notFound)
}

func TestAddCTE_RejectsBlankAlias(t *testing.T) {
	s := baseSelect()
	err := s.AddCTE("  ", baseSelect(), MaterializedUnspecified)
	var invalid *sqlerr.InvalidCTEName
	require.ErrorAs(t, err, &invalid)
}

func TestOverrideSelectItemExpr_RequiresExactlyOneMatch(t *testing.T) {
	s := &SimpleSelect{
		Select: &Select{Items: []*SelectItem{
			{Expr: col("id")},
			{Expr: col("name"), Alias: &Identifier{Name: "label"}},
		}},
	}

	require.NoError(t, s.OverrideSelectItemExpr("label", &Literal{Value: "'x'", IsString: true}))
	lit, ok := s.Select.Items[1].Expr.(*Literal)
	require.True(t, ok)
	assert.Equal(t, "'x'", lit.Value)

	err := s.OverrideSelectItemExpr("missing", col("y"))
	var ambiguous *sqlerr.AmbiguousColumn
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, 0, ambiguous.Count)
}

func TestSetParameter_ReplacesEveryOccurrence(t *testing.T) {
	s := &SimpleSelect{
		Select: &Select{Items: []*SelectItem{{Expr: &Parameter{Name: "id"}}}},
		From:   &From{Source: &TableName{Name: col("accounts")}},
		Where:  &Where{Condition: &Binary{Op: "=", Left: col("id"), Right: &Parameter{Name: "id"}}},
	}

	require.NoError(t, s.SetParameter("id", &Literal{Value: "42"}))
	assert.Equal(t, "42", s.Select.Items[0].Expr.(*Literal).Value)
	assert.Equal(t, "42", s.Where.Condition.(*Binary).Right.(*Literal).Value)

	err := s.SetParameter("unused", &Literal{Value: "0"})
	var notFound *sqlerr.ParameterNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestInnerJoin_UnresolvedColumnsError(t *testing.T) {
	s := baseSelect()
	resolver := func(column string) (*QualifiedName, *QualifiedName, bool) {
		return nil, nil, false
	}
	err := s.InnerJoin(&TableName{Name: col("orders")}, []string{"account_id"}, resolver)
	var unresolved *sqlerr.UnresolvedJoinColumns
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, []string{"account_id"}, unresolved.Columns)
}

func TestInnerJoin_BuildsOnCondition(t *testing.T) {
	s := baseSelect()
	resolver := func(column string) (*QualifiedName, *QualifiedName, bool) {
		return qualifiedCol("accounts", column), qualifiedCol("orders", column), true
	}
	require.NoError(t, s.InnerJoin(&TableName{Name: col("orders")}, []string{"id"}, resolver))
	require.Len(t, s.From.Joins, 1)
	assert.Equal(t, InnerJoin, s.From.Joins[0].Kind)
	on, ok := s.From.Joins[0].Condition.(*JoinOn)
	require.True(t, ok)
	bin, ok := on.Condition.(*Binary)
	require.True(t, ok)
	assert.Equal(t, "=", bin.Op)
}

func TestToSource_RejectsEmptyAlias(t *testing.T) {
	s := baseSelect()
	_, err := s.ToSource("")
	var missing *sqlerr.MissingAlias
	require.ErrorAs(t, err, &missing)
}

func TestToUnionAll_BuildsBinarySelect(t *testing.T) {
	left := baseSelect()
	right := baseSelect()
	combined := left.ToUnionAll(right)
	assert.Equal(t, UnionAll, combined.Op)
	assert.Same(t, left, combined.Left)
	assert.Same(t, right, combined.Right)
}

func TestEqual_IgnoresComments(t *testing.T) {
	a := baseSelect()
	a.Select.Comments = Comments{Before: []string{"-- note"}}
	a.Select.Items[0].Comments = Comments{After: []string{"-- trailing"}}

	b := baseSelect()

	assert.True(t, Equal(a, b))
}

func TestEqual_DetectsDifference(t *testing.T) {
	a := baseSelect()
	b := baseSelect()
	b.Select.Items[0].Expr = col("different")

	assert.False(t, Equal(a, b))
}

func TestRebuildCTECache_AfterDirectMutation(t *testing.T) {
	s := baseSelect()
	s.With = &With{Tables: []*CommonTable{{Alias: &Identifier{Name: "x"}, Query: baseSelect()}}}
	s.RebuildCTECache()
	assert.True(t, s.HasCTE("x"))
}
