// Package token defines the lexical vocabulary shared by the lexer,
// parser, and emitter: token/lexeme kinds, source positions, and the
// dialect-configurable identifier-escape and parameter-style constants
// that the lexer and emitter both need to agree on.
package token

import "strings"

// Kind identifies the lexical category of a lexeme. Unlike a parser
// for a single dialect, this toolkit's lexer does not mint one Kind
// per keyword: keywords are recognized by normalized text (see
// IsKeyword) so that the same Kind set serves every target dialect.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	IDENT        // bare or escaped identifier
	KEYWORD      // a reserved word, recognized by normalized text
	NUMBER       // integer or float literal
	STRING       // 'single quoted', escape is ''
	DOLLARSTRING // $tag$ ... $tag$, preserved verbatim including the tags
	PARAMETER    // :name, @name, $name, $1, ?

	OPERATOR // =, <>, <, >, <=, >=, +, -, *, /, %, ||, ::, etc.

	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	COMMA
	DOT
	SEMICOLON

	LINECOMMENT  // -- ...
	BLOCKCOMMENT // /* ... */
)

func (k Kind) String() string {
	switch k {
	case ILLEGAL:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case IDENT:
		return "IDENT"
	case KEYWORD:
		return "KEYWORD"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case DOLLARSTRING:
		return "DOLLARSTRING"
	case PARAMETER:
		return "PARAMETER"
	case OPERATOR:
		return "OPERATOR"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case LBRACKET:
		return "LBRACKET"
	case RBRACKET:
		return "RBRACKET"
	case COMMA:
		return "COMMA"
	case DOT:
		return "DOT"
	case SEMICOLON:
		return "SEMICOLON"
	case LINECOMMENT:
		return "LINECOMMENT"
	case BLOCKCOMMENT:
		return "BLOCKCOMMENT"
	default:
		return "UNKNOWN"
	}
}

// Position is a point in the original source text.
type Position struct {
	Line   int
	Column int
	Offset int
}

// EscapeDelim is a pair of identifier-quoting delimiters, e.g. {`"`, `"`},
// {"`", "`"} or {"[", "]"}.
type EscapeDelim struct {
	Start string
	End   string
}

var (
	DoubleQuoteEscape = EscapeDelim{`"`, `"`}
	BacktickEscape    = EscapeDelim{"`", "`"}
	BracketEscape     = EscapeDelim{"[", "]"}
)

// ParameterStyle enumerates the anonymous, indexed and named parameter
// styles. The emitter does not use it; it takes its style from
// dialect.ParameterStyle. Lexing itself is style-agnostic: the lexer
// records whatever prefix character introduced the parameter in the
// source text.
type ParameterStyle int

const (
	ParamAnonymous ParameterStyle = iota
	ParamIndexed
	ParamNamed
)

// keywords is the recognized reserved-word set across the SQL surface
// this toolkit targets (spec.md section 6). Membership is checked
// case-insensitively; the lexer stores the source's original casing in
// the lexeme text and never folds it.
var keywords = buildKeywordSet([]string{
	"SELECT", "FROM", "WHERE", "GROUP", "BY", "HAVING", "ORDER", "ASC", "DESC",
	"NULLS", "FIRST", "LAST", "LIMIT", "OFFSET", "FETCH", "NEXT", "ROW", "ROWS",
	"ONLY", "WITH", "TIES", "FOR", "UPDATE", "SHARE", "NOWAIT", "SKIP",
	"UNION", "ALL", "INTERSECT", "EXCEPT", "VALUES", "DISTINCT", "ON",
	"INSERT", "INTO", "RETURNING", "DELETE", "USING", "MERGE", "WHEN",
	"MATCHED", "NOT", "THEN", "DO", "NOTHING", "SOURCE", "TARGET",
	"SET", "DEFAULT",
	"CREATE", "TEMPORARY", "TEMP", "TABLE", "IF", "EXISTS", "INDEX", "UNIQUE",
	"CONCURRENTLY", "INCLUDE", "TABLESPACE", "DROP", "CASCADE", "RESTRICT",
	"ALTER", "ADD", "CONSTRAINT", "COLUMN", "EXPLAIN", "ANALYZE", "VERBOSE",
	"SEQUENCE", "INCREMENT", "START", "MINVALUE", "MAXVALUE", "CACHE",
	"CYCLE", "RESTART", "OWNED", "SCHEMA",
	"AND", "OR", "IS", "NULL", "TRUE", "FALSE", "BETWEEN", "IN", "LIKE",
	"ILIKE", "AS", "CAST", "CASE", "ELSE", "END", "OVER", "PARTITION",
	"WINDOW", "LATERAL", "RECURSIVE", "MATERIALIZED",
	"PRIMARY", "KEY", "FOREIGN", "REFERENCES", "CHECK", "ORDINALITY",
	"ARRAY", "JOIN", "INNER", "LEFT", "RIGHT", "FULL", "OUTER", "CROSS",
	"NATURAL", "RANGE", "UNBOUNDED", "PRECEDING", "FOLLOWING", "CURRENT",
	"EXTRACT", "INTERVAL", "COLLATE", "ESCAPE", "DESCRIBE",
	"RENAME", "TO", "OF", "NO", "ACTION", "DEFERRABLE",
})

func buildKeywordSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// IsKeyword reports whether text, compared case-insensitively, is a
// recognized reserved word.
func IsKeyword(text string) bool {
	_, ok := keywords[strings.ToUpper(text)]
	return ok
}

// Token is one lexical unit as seen by the parser: a Kind, its exact
// source text, and the position of its first rune.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// Normalized returns Text upper-cased, for keyword/operator comparisons.
// Identifier and literal text must never be passed through this -- it
// exists only for dispatch, never for display.
func (t Token) Normalized() string {
	return strings.ToUpper(t.Text)
}
