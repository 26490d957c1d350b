package printer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/emit"
	"github.com/sqlforge/sqlforge/printer"
)

func TestPrint_CommaSpacing(t *testing.T) {
	tokens := []emit.Token{
		{Kind: emit.KeywordTok, Text: "SELECT"},
		{Kind: emit.SpaceTok},
		{Kind: emit.ValueTok, Text: "a"},
		{Kind: emit.ArgSplitterTok, Text: ","},
		{Kind: emit.ValueTok, Text: "b"},
	}
	got := printer.Print(tokens, printer.Multiline)
	require.Equal(t, "SELECT a, b", got)
}

func TestPrint_MultilineIndentsInsideParens(t *testing.T) {
	tokens := []emit.Token{
		{Kind: emit.KeywordTok, Text: "SELECT"},
		{Kind: emit.SpaceTok},
		{Kind: emit.ParenTok, Text: "("},
		{Kind: emit.CommentNewlineTok},
		{Kind: emit.ValueTok, Text: "1"},
		{Kind: emit.ParenTok, Text: ")"},
	}
	got := printer.Print(tokens, printer.Multiline)
	require.Equal(t, "SELECT (\n  1)", got)
}

func TestPrint_OnelinerCollapsesBreaks(t *testing.T) {
	tokens := []emit.Token{
		{Kind: emit.KeywordTok, Text: "SELECT"},
		{Kind: emit.SpaceTok},
		{Kind: emit.ValueTok, Text: "1"},
		{Kind: emit.CommentNewlineTok},
		{Kind: emit.KeywordTok, Text: "FROM"},
		{Kind: emit.SpaceTok},
		{Kind: emit.ValueTok, Text: "t"},
	}
	got := printer.Print(tokens, printer.Oneliner)
	require.Equal(t, "SELECT 1 FROM t", got)
}
