// Package restore reconstructs source text from a Lexeme sequence
// (spec.md section 4.10, "format restorer"). Untouched regions -- a run
// of Lexemes produced by lexing source and never replaced afterward --
// reproduce byte-exact: each lexeme's slice of source runs from its own
// Start up to the next lexeme's Start, which captures the lexeme's text
// together with whatever whitespace and comments trailed it, in their
// original relative order. That order is the reason this package does
// not reconstruct trivia from FollowingWhitespace/InlineComments
// directly: the lexer's readTrailing collapses whitespace runs and
// inline comments into two separate fields without recording which
// interleaved which (a comment between two runs of whitespace loses
// that position), so rebuilding from those fields alone can only
// approximate. That approximation is used as a fallback, for Lexemes
// whose Start does not point into the given source -- synthesized or
// rewritten after the fact by a transform.
package restore

import (
	"strings"

	"github.com/sqlforge/sqlforge/lexer"
)

// Restore renders lexemes back to text. For each lexeme whose Start
// offset is valid in source, the span up to the next lexeme's Start (or
// to the end of source, for the last lexeme) is copied verbatim --
// byte-exact reconstruction of that lexeme's text plus its trailing
// trivia. A lexeme without a valid Start falls back to its own Text,
// FollowingWhitespace, and InlineComments, which is only approximate.
func Restore(source string, lexemes []lexer.Lexeme) string {
	var b strings.Builder
	for i, lx := range lexemes {
		span, ok := sourceSpan(source, lexemes, i)
		if ok {
			b.WriteString(span)
			continue
		}
		b.WriteString(lx.Text)
		b.WriteString(lx.FollowingWhitespace)
		for _, c := range lx.InlineComments {
			b.WriteString(c)
		}
	}
	return b.String()
}

func sourceSpan(source string, lexemes []lexer.Lexeme, i int) (string, bool) {
	lx := lexemes[i]
	if lx.Start < 0 || lx.Start > len(source) {
		return "", false
	}
	end := len(source)
	if i+1 < len(lexemes) {
		next := lexemes[i+1].Start
		if next < lx.Start || next > len(source) {
			return "", false
		}
		end = next
	}
	return source[lx.Start:end], true
}

// Span reports whether lx's byte range can be trusted against source:
// callers that need to know whether a given stretch of output is
// byte-exact or approximated can check this before relying on it.
func Span(source string, lx lexer.Lexeme) (text string, exact bool) {
	if lx.Start >= 0 && lx.End >= lx.Start && lx.End <= len(source) {
		return source[lx.Start:lx.End], true
	}
	return lx.Text, false
}
