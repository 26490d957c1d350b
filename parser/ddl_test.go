package parser

import (
	"testing"

	"github.com/sqlforge/sqlforge/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CreateTableWithConstraints(t *testing.T) {
	node := mustParse(t, `
		CREATE TABLE IF NOT EXISTS accounts (
			id bigint PRIMARY KEY,
			email text NOT NULL UNIQUE,
			org_id bigint REFERENCES organizations (id) ON DELETE CASCADE,
			CHECK (id > 0)
		)
	`)
	ct, ok := node.(*ast.CreateTable)
	require.True(t, ok)
	assert.True(t, ct.IfNotExists)
	require.Len(t, ct.Columns, 3)
	assert.Equal(t, "id", ct.Columns[0].Name.Name)
	require.Len(t, ct.Columns[0].Constraints, 1)
	assert.Equal(t, ast.ColumnPrimaryKey, ct.Columns[0].Constraints[0].Kind)

	email := ct.Columns[1]
	require.Len(t, email.Constraints, 2)
	assert.Equal(t, ast.ColumnNotNull, email.Constraints[0].Kind)
	assert.Equal(t, ast.ColumnUnique, email.Constraints[1].Kind)

	org := ct.Columns[2]
	require.Len(t, org.Constraints, 1)
	require.NotNil(t, org.Constraints[0].Reference)
	assert.Equal(t, "organizations", org.Constraints[0].Reference.Table.Name.Name)
	assert.Equal(t, "CASCADE", org.Constraints[0].Reference.OnDelete)

	require.Len(t, ct.Constraints, 1)
	assert.Equal(t, ast.TableCheck, ct.Constraints[0].Kind)
}

func TestParse_CreateIndexWithOptions(t *testing.T) {
	node := mustParse(t, `
		CREATE UNIQUE INDEX CONCURRENTLY IF NOT EXISTS idx_accounts_email
		ON accounts USING btree (email DESC NULLS LAST)
		WHERE active = true
	`)
	ci, ok := node.(*ast.CreateIndex)
	require.True(t, ok)
	assert.True(t, ci.Unique)
	assert.True(t, ci.Concurrently)
	assert.True(t, ci.IfNotExists)
	assert.Equal(t, "btree", ci.Method)
	require.Len(t, ci.Columns, 1)
	assert.Equal(t, ast.Descending, ci.Columns[0].Dir)
	assert.Equal(t, ast.NullsLast, ci.Columns[0].Nulls)
	require.NotNil(t, ci.Where)
}

func TestParse_AlterTableActions(t *testing.T) {
	add := mustParse(t, "ALTER TABLE accounts ADD COLUMN archived_at timestamp")
	at, ok := add.(*ast.AlterTable)
	require.True(t, ok)
	col, ok := at.Action.(*ast.AddColumn)
	require.True(t, ok)
	assert.Equal(t, "archived_at", col.Column.Name.Name)

	dropCol := mustParse(t, "ALTER TABLE accounts DROP COLUMN archived_at")
	at2 := dropCol.(*ast.AlterTable)
	dc, ok := at2.Action.(*ast.DropColumn)
	require.True(t, ok)
	assert.Equal(t, "archived_at", dc.Name.Name)

	setDefault := mustParse(t, "ALTER TABLE accounts ALTER COLUMN active SET DEFAULT true")
	at3 := setDefault.(*ast.AlterTable)
	ad, ok := at3.Action.(*ast.AlterColumnDefault)
	require.True(t, ok)
	assert.False(t, ad.Drop)
	require.NotNil(t, ad.Default)
}

func TestParse_DropTableCascade(t *testing.T) {
	node := mustParse(t, "DROP TABLE IF EXISTS accounts, archived_accounts CASCADE")
	dt, ok := node.(*ast.DropTable)
	require.True(t, ok)
	assert.True(t, dt.IfExists)
	assert.True(t, dt.Cascade)
	require.Len(t, dt.Names, 2)
}

func TestParse_CreateSequenceOptions(t *testing.T) {
	node := mustParse(t, "CREATE SEQUENCE accounts_id_seq INCREMENT BY 1 START WITH 1000 CACHE 20 CYCLE")
	cs, ok := node.(*ast.CreateSequence)
	require.True(t, ok)
	require.NotNil(t, cs.Options.Increment)
	assert.Equal(t, int64(1), *cs.Options.Increment)
	require.NotNil(t, cs.Options.Start)
	assert.Equal(t, int64(1000), *cs.Options.Start)
	require.NotNil(t, cs.Options.Cycle)
	assert.True(t, *cs.Options.Cycle)
}

func TestParse_ExplainWrapsStatement(t *testing.T) {
	node := mustParse(t, "EXPLAIN (ANALYZE, VERBOSE) SELECT id FROM accounts")
	ex, ok := node.(*ast.Explain)
	require.True(t, ok)
	assert.Equal(t, []string{"ANALYZE", "VERBOSE"}, ex.Options)
	_, ok = ex.Stmt.(*ast.SimpleSelect)
	assert.True(t, ok)
}

func TestParse_AnalyzeTargetColumns(t *testing.T) {
	node := mustParse(t, "ANALYZE VERBOSE accounts (id, email)")
	a, ok := node.(*ast.Analyze)
	require.True(t, ok)
	assert.True(t, a.Verbose)
	require.NotNil(t, a.Target)
	assert.Equal(t, "accounts", a.Target.Name.Name)
	require.Len(t, a.Columns, 2)
}
