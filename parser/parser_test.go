package parser

import (
	"testing"

	"github.com/sqlforge/sqlforge/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, sql string) ast.Node {
	t.Helper()
	node, err := Parse(sql)
	require.NoError(t, err)
	return node
}

func TestParse_SimpleSelect(t *testing.T) {
	node := mustParse(t, "SELECT id, name FROM accounts WHERE active = true")
	s, ok := node.(*ast.SimpleSelect)
	require.True(t, ok)
	require.Len(t, s.Select.Items, 2)
	assert.Equal(t, "id", s.Select.Items[0].Expr.(*ast.QualifiedName).Name.Name)
	require.NotNil(t, s.Where)
	bin, ok := s.Where.Condition.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "=", bin.Op)
}

func TestParse_OperatorPrecedence(t *testing.T) {
	// AND binds tighter than OR; multiplication tighter than addition.
	node := mustParse(t, "SELECT 1 WHERE a = 1 OR b = 2 AND c = 3")
	s := node.(*ast.SimpleSelect)
	top, ok := s.Where.Condition.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "OR", top.Op)
	right, ok := top.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "AND", right.Op)

	node2 := mustParse(t, "SELECT 1 + 2 * 3")
	s2 := node2.(*ast.SimpleSelect)
	top2, ok := s2.Select.Items[0].Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", top2.Op)
	_, ok = top2.Right.(*ast.Binary)
	assert.True(t, ok, "multiplication should nest under addition as the right operand")
}

func TestParse_WindowFunctionOver(t *testing.T) {
	node := mustParse(t, "SELECT row_number() OVER (PARTITION BY dept ORDER BY salary DESC) FROM employees")
	s := node.(*ast.SimpleSelect)
	fc, ok := s.Select.Items[0].Expr.(*ast.FunctionCall)
	require.True(t, ok)
	require.NotNil(t, fc.Over)
	require.Len(t, fc.Over.PartitionBy, 1)
	require.NotNil(t, fc.Over.OrderBy)
	assert.Equal(t, ast.Descending, fc.Over.OrderBy.Items[0].Dir)
}

func TestParse_CTEWithJoinAndSetOp(t *testing.T) {
	node := mustParse(t, `
		WITH active_accounts AS (
			SELECT id FROM accounts WHERE active = true
		)
		SELECT a.id, o.total
		FROM active_accounts a
		JOIN orders o ON a.id = o.account_id
		UNION ALL
		SELECT id, 0 FROM archived_accounts
	`)
	bs, ok := node.(*ast.BinarySelect)
	require.True(t, ok)
	assert.Equal(t, ast.UnionAll, bs.Op)
	left, ok := bs.Left.(*ast.SimpleSelect)
	require.True(t, ok)
	require.NotNil(t, left.With)
	assert.True(t, left.HasCTE("active_accounts"))
	require.Len(t, left.From.Joins, 1)
	assert.Equal(t, ast.InnerJoin, left.From.Joins[0].Kind)
}

func TestParse_CommentAttachment(t *testing.T) {
	node := mustParse(t, "SELECT\n  -- picks the identifying key\n  id\nFROM accounts")
	s := node.(*ast.SimpleSelect)
	item := s.Select.Items[0]
	require.Len(t, item.Before, 1)
	assert.Contains(t, item.Before[0], "picks the identifying key")
}

func TestParse_NamedAndAnonymousParameters(t *testing.T) {
	node := mustParse(t, "SELECT * FROM accounts WHERE id = :account_id")
	s := node.(*ast.SimpleSelect)
	bin := s.Where.Condition.(*ast.Binary)
	param, ok := bin.Right.(*ast.Parameter)
	require.True(t, ok)
	assert.Equal(t, ":account_id", param.Name)
}

func TestParse_CastStandardSyntax(t *testing.T) {
	node := mustParse(t, "SELECT CAST(total AS numeric(10,2)) FROM orders")
	s := node.(*ast.SimpleSelect)
	cast, ok := s.Select.Items[0].Expr.(*ast.Cast)
	require.True(t, ok)
	assert.Equal(t, "numeric", cast.Type.Name)
	require.Len(t, cast.Type.Args, 2)
}

func TestParse_InsertSelectReturning(t *testing.T) {
	node := mustParse(t, "INSERT INTO archived_accounts (id) SELECT id FROM accounts WHERE active = false RETURNING id")
	ins, ok := node.(*ast.Insert)
	require.True(t, ok)
	assert.Equal(t, "archived_accounts", ins.Insert.Table.Name.Name)
	require.NotNil(t, ins.Returning)
	assert.Len(t, ins.Returning.Items, 1)
}

func TestParse_UpdateSetFromWhere(t *testing.T) {
	node := mustParse(t, "UPDATE accounts SET active = false FROM closures c WHERE accounts.id = c.account_id")
	u, ok := node.(*ast.Update)
	require.True(t, ok)
	require.Len(t, u.Set.Assignments, 1)
	assert.Equal(t, "active", u.Set.Assignments[0].Column.Name)
	require.NotNil(t, u.From)
}

func TestParse_DeleteUsingWhere(t *testing.T) {
	node := mustParse(t, "DELETE FROM accounts USING closures WHERE accounts.id = closures.account_id")
	d, ok := node.(*ast.Delete)
	require.True(t, ok)
	require.NotNil(t, d.Using)
	require.NotNil(t, d.Where)
}

func TestParse_MergeWhenClauses(t *testing.T) {
	node := mustParse(t, `
		MERGE INTO accounts t
		USING staged s
		ON t.id = s.id
		WHEN MATCHED THEN UPDATE SET active = s.active
		WHEN NOT MATCHED THEN INSERT (id, active) VALUES (s.id, s.active)
	`)
	m, ok := node.(*ast.Merge)
	require.True(t, ok)
	require.Len(t, m.Whens, 2)
	assert.Equal(t, ast.WhenMatched, m.Whens[0].When)
	assert.Equal(t, ast.MergeUpdate, m.Whens[0].Action)
	assert.Equal(t, ast.WhenNotMatched, m.Whens[1].When)
	assert.Equal(t, ast.MergeInsert, m.Whens[1].Action)
}

func TestParseExpr_CaseExpression(t *testing.T) {
	e, err := ParseExpr("CASE WHEN active THEN 'y' ELSE 'n' END")
	require.NoError(t, err)
	c, ok := e.(*ast.Case)
	require.True(t, ok)
	require.Len(t, c.Arg.Cases, 1)
	require.NotNil(t, c.Arg.ElseValue)
}
