// Package dialect holds the enumerated, read-only style configuration
// that parameterizes the emitter and line printer: identifier escaping,
// parameter symbol/style, CAST rendering, constraint placement, and
// JOIN-ON operand normalization (spec.md section 6). This table is
// configuration, not engineering -- spec.md section 1 explicitly keeps
// dialect presets out of the core's scope, so this package is a flat
// data table with no per-dialect code paths.
package dialect

import "github.com/sqlforge/sqlforge/token"

// ParameterStyle selects how bind parameters render.
type ParameterStyle int

const (
	Anonymous ParameterStyle = iota
	Indexed
	Named
)

// CastStyle selects CAST(x AS t) vs x::t rendering.
type CastStyle int

const (
	CastStandard CastStyle = iota
	CastPostgres
)

// ConstraintStyle selects named-constraint placement in DDL output.
type ConstraintStyle int

const (
	ConstraintPostgres ConstraintStyle = iota
	ConstraintMySQL
)

// ParameterSymbol is the prefix/suffix pair a ParameterDecorator wraps
// a parameter's name or index in, e.g. {":", ""} or {"${", "}"}.
type ParameterSymbol struct {
	Prefix string
	Suffix string
}

// Config is the full set of enumerated style options (spec.md section
// 6, "Configuration (enumerated options)"). The zero value is not the
// default: its IdentifierEscape and ParameterSymbol are empty. Default
// returns the documented defaults.
type Config struct {
	IdentifierEscape                token.EscapeDelim
	ParameterSymbol                  ParameterSymbol
	ParameterStyle                   ParameterStyle
	CastStyle                        CastStyle
	ConstraintStyle                  ConstraintStyle
	JoinConditionOrderByDeclaration  bool
}

// Default returns the spec's documented defaults: double-quote escaping,
// anonymous `?` parameters, standard CAST, postgres constraint style,
// and JOIN-ON normalization off.
func Default() Config {
	return Config{
		IdentifierEscape: token.DoubleQuoteEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "?"},
		ParameterStyle:   Anonymous,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintPostgres,
	}
}

// Name is a preset identifier. Presets are provided for every dialect
// spec.md section 6 requires at minimum.
type Name string

const (
	MySQL       Name = "mysql"
	Postgres    Name = "postgres"
	SQLServer   Name = "sqlserver"
	SQLite      Name = "sqlite"
	Oracle      Name = "oracle"
	ClickHouse  Name = "clickhouse"
	Firebird    Name = "firebird"
	DB2         Name = "db2"
	Snowflake   Name = "snowflake"
	CloudSpanner Name = "cloudspanner"
	DuckDB      Name = "duckdb"
	CockroachDB Name = "cockroachdb"
	Athena      Name = "athena"
	BigQuery    Name = "bigquery"
	Hive        Name = "hive"
	MariaDB     Name = "mariadb"
	Redshift    Name = "redshift"
	FlinkSQL    Name = "flinksql"
	MongoDB     Name = "mongodb"
)

// presets is the read-only table backing Preset. Built once at package
// init and never mutated afterward (spec.md section 5, "Module-level
// state": "the dialect preset table is read-only ... no other global
// state is permitted").
var presets = map[Name]Config{
	Postgres: {
		IdentifierEscape: token.DoubleQuoteEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "$"},
		ParameterStyle:   Indexed,
		CastStyle:        CastPostgres,
		ConstraintStyle:  ConstraintPostgres,
	},
	CockroachDB: {
		IdentifierEscape: token.DoubleQuoteEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "$"},
		ParameterStyle:   Indexed,
		CastStyle:        CastPostgres,
		ConstraintStyle:  ConstraintPostgres,
	},
	CloudSpanner: {
		IdentifierEscape: token.BacktickEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "@"},
		ParameterStyle:   Named,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintPostgres,
	},
	Redshift: {
		IdentifierEscape: token.DoubleQuoteEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "$"},
		ParameterStyle:   Indexed,
		CastStyle:        CastPostgres,
		ConstraintStyle:  ConstraintPostgres,
	},
	MySQL: {
		IdentifierEscape: token.BacktickEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "?"},
		ParameterStyle:   Anonymous,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintMySQL,
	},
	MariaDB: {
		IdentifierEscape: token.BacktickEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "?"},
		ParameterStyle:   Anonymous,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintMySQL,
	},
	Hive: {
		IdentifierEscape: token.BacktickEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "?"},
		ParameterStyle:   Anonymous,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintMySQL,
	},
	SQLite: {
		IdentifierEscape: token.DoubleQuoteEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "?"},
		ParameterStyle:   Anonymous,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintPostgres,
	},
	DuckDB: {
		IdentifierEscape: token.DoubleQuoteEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "?"},
		ParameterStyle:   Anonymous,
		CastStyle:        CastPostgres,
		ConstraintStyle:  ConstraintPostgres,
	},
	SQLServer: {
		IdentifierEscape: token.BracketEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "@"},
		ParameterStyle:   Named,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintPostgres,
	},
	Oracle: {
		IdentifierEscape: token.DoubleQuoteEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: ":"},
		ParameterStyle:   Named,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintPostgres,
	},
	DB2: {
		IdentifierEscape: token.DoubleQuoteEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "?"},
		ParameterStyle:   Anonymous,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintPostgres,
	},
	Firebird: {
		IdentifierEscape: token.DoubleQuoteEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "?"},
		ParameterStyle:   Anonymous,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintPostgres,
	},
	Snowflake: {
		IdentifierEscape: token.DoubleQuoteEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "?"},
		ParameterStyle:   Anonymous,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintPostgres,
	},
	BigQuery: {
		IdentifierEscape: token.BacktickEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "@"},
		ParameterStyle:   Named,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintPostgres,
	},
	Athena: {
		IdentifierEscape: token.DoubleQuoteEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "?"},
		ParameterStyle:   Anonymous,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintPostgres,
	},
	ClickHouse: {
		IdentifierEscape: token.BacktickEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "{", Suffix: ":T}"},
		ParameterStyle:   Named,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintPostgres,
	},
	FlinkSQL: {
		IdentifierEscape: token.BacktickEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: "?"},
		ParameterStyle:   Anonymous,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintPostgres,
	},
	MongoDB: {
		IdentifierEscape: token.DoubleQuoteEscape,
		ParameterSymbol:  ParameterSymbol{Prefix: ":"},
		ParameterStyle:   Named,
		CastStyle:        CastStandard,
		ConstraintStyle:  ConstraintPostgres,
	},
}

// Preset looks up a named dialect's style bundle. ok is false for any
// name outside the closed set above.
func Preset(name Name) (Config, bool) {
	c, ok := presets[name]
	return c, ok
}

// Names returns every preset name known to the table, in no particular
// order, for callers that need to enumerate or validate a preset name.
func Names() []Name {
	out := make([]Name, 0, len(presets))
	for n := range presets {
		out = append(out, n)
	}
	return out
}
