package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/token"
)

func kinds(t *testing.T, lexemes []Lexeme) []token.Kind {
	t.Helper()
	var out []token.Kind
	for _, lx := range lexemes {
		out = append(out, lx.Kind)
	}
	return out
}

func TestTokenize_SimpleSelect(t *testing.T) {
	lexemes, err := New(`SELECT id FROM users`).Tokenize()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.KEYWORD, token.IDENT, token.KEYWORD, token.IDENT, token.EOF,
	}, kinds(t, lexemes))
}

func TestTokenize_StringEscape(t *testing.T) {
	lexemes, err := New(`'it''s fine'`).Tokenize()
	require.NoError(t, err)
	require.Len(t, lexemes, 2)
	assert.Equal(t, `'it''s fine'`, lexemes[0].Text)
}

func TestTokenize_UnterminatedStringIsFatal(t *testing.T) {
	_, err := New(`'abc`).Tokenize()
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
}

func TestTokenize_QuotedIdentifierDelimiters(t *testing.T) {
	for _, sql := range []string{`"id"`, "`id`", `[id]`} {
		lexemes, err := New(sql).Tokenize()
		require.NoError(t, err, sql)
		require.Equal(t, token.IDENT, lexemes[0].Kind, sql)
		assert.Equal(t, sql, lexemes[0].Text)
	}
}

func TestTokenize_DollarQuotedStringPreservedVerbatim(t *testing.T) {
	lexemes, err := New(`$tag$it's a string$tag$`).Tokenize()
	require.NoError(t, err)
	require.Equal(t, token.DOLLARSTRING, lexemes[0].Kind)
	assert.Equal(t, `$tag$it's a string$tag$`, lexemes[0].Text)
}

func TestTokenize_IndexedAndNamedParameters(t *testing.T) {
	lexemes, err := New(`$1 :name @var ?`).Tokenize()
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.Equal(t, token.PARAMETER, lexemes[i].Kind)
	}
	assert.Equal(t, "$1", lexemes[0].Text)
	assert.Equal(t, ":name", lexemes[1].Text)
	assert.Equal(t, "@var", lexemes[2].Text)
	assert.Equal(t, "?", lexemes[3].Text)
}

func TestTokenize_InlineCommentAttachesToPrecedingLexeme(t *testing.T) {
	lexemes, err := New("id -- trailing\nfrom").Tokenize()
	require.NoError(t, err)
	require.Equal(t, []string{"-- trailing"}, lexemes[0].InlineComments)
	assert.Empty(t, lexemes[1].InlineComments)
}

func TestTokenize_LeadingCommentIsNotInline(t *testing.T) {
	lexemes, err := New("id\n-- leading\nfrom").Tokenize()
	require.NoError(t, err)
	assert.Empty(t, lexemes[0].InlineComments)
}

func TestTokenize_UnterminatedBlockCommentIsFatal(t *testing.T) {
	_, err := New("/* never closed").Tokenize()
	require.Error(t, err)
}

func TestTokenize_MultiCharOperators(t *testing.T) {
	lexemes, err := New(`a <> b`).Tokenize()
	require.NoError(t, err)
	require.Equal(t, token.OPERATOR, lexemes[1].Kind)
	assert.Equal(t, "<>", lexemes[1].Text)
}

func TestTokenize_PositionsAreMonotonic(t *testing.T) {
	lexemes, err := New("SELECT a, b FROM t").Tokenize()
	require.NoError(t, err)
	last := -1
	for _, lx := range lexemes {
		require.GreaterOrEqual(t, lx.Start, last)
		if lx.Kind != token.EOF {
			require.Less(t, lx.Start, lx.End, "invariant: start < end for %q", lx.Text)
		}
		last = lx.Start
	}
}
