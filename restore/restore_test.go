package restore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/lexer"
	"github.com/sqlforge/sqlforge/restore"
	"github.com/sqlforge/sqlforge/token"
)

func TestRestore_RoundTripsUntouchedSource(t *testing.T) {
	source := "select id, name -- trailing note\nfrom users where active = true\n"

	lexemes, err := lexer.New(source).Tokenize()
	require.NoError(t, err)

	assert.Equal(t, source, restore.Restore(source, lexemes))
}

func TestRestore_FallsBackToTextForSynthesizedLexeme(t *testing.T) {
	source := "select id from users"
	synthesized := lexer.Lexeme{Kind: token.IDENT, Text: "renamed_table", Start: -1, End: -1}

	got := restore.Restore(source, []lexer.Lexeme{synthesized})
	assert.Equal(t, "renamed_table", got)
}

func TestSpan_ReportsExactness(t *testing.T) {
	source := "select 1"
	lexemes, err := lexer.New(source).Tokenize()
	require.NoError(t, err)
	require.NotEmpty(t, lexemes)

	text, exact := restore.Span(source, lexemes[0])
	assert.True(t, exact)
	assert.Equal(t, source[lexemes[0].Start:lexemes[0].End], text)

	_, exact = restore.Span(source, lexer.Lexeme{Start: 999, End: 1000})
	assert.False(t, exact)
}
