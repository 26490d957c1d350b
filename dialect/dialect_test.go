package dialect

import (
	"testing"

	"github.com/sqlforge/sqlforge/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreset_Postgres_MatchesSpecBundle(t *testing.T) {
	cfg, ok := Preset(Postgres)
	require.True(t, ok)
	assert.Equal(t, token.DoubleQuoteEscape, cfg.IdentifierEscape)
	assert.Equal(t, "$", cfg.ParameterSymbol.Prefix)
	assert.Equal(t, Indexed, cfg.ParameterStyle)
	assert.Equal(t, CastPostgres, cfg.CastStyle)
	assert.Equal(t, ConstraintPostgres, cfg.ConstraintStyle)
}

func TestPreset_UnknownNameNotOK(t *testing.T) {
	_, ok := Preset(Name("not-a-real-dialect"))
	assert.False(t, ok)
}

func TestPreset_AllRequiredDialectsPresent(t *testing.T) {
	required := []Name{
		MySQL, Postgres, SQLServer, SQLite, Oracle, ClickHouse, Firebird, DB2,
		Snowflake, CloudSpanner, DuckDB, CockroachDB, Athena, BigQuery, Hive,
		MariaDB, Redshift, FlinkSQL, MongoDB,
	}
	for _, name := range required {
		_, ok := Preset(name)
		assert.Truef(t, ok, "missing preset for %q", name)
	}
	assert.Len(t, Names(), len(required))
}

func TestDefault_IsStandardAnonymous(t *testing.T) {
	cfg := Default()
	assert.Equal(t, Anonymous, cfg.ParameterStyle)
	assert.Equal(t, CastStandard, cfg.CastStyle)
	assert.False(t, cfg.JoinConditionOrderByDeclaration)
}
