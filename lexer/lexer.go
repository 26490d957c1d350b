// Package lexer implements a dialect-configurable lexical scanner for
// the SQL surface this toolkit targets. It produces a flat sequence of
// Lexemes -- each carrying its own trailing whitespace and any inline
// comments -- rather than a bare token stream, so the parser can attach
// positioned comments without re-scanning the source.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sqlforge/sqlforge/token"
)

// Lexeme is one atomic unit produced by the Lexer: a kind, its exact
// text, its byte range in the source, any whitespace immediately
// following it, and any comments that trail it on the same line.
type Lexeme struct {
	Kind                token.Kind
	Text                string
	Start, End          int // byte offsets; invariant Start < End
	Pos                 token.Position
	FollowingWhitespace string
	InlineComments      []string
}

// Error is a fatal lexical failure: an unterminated string, dollar-quote,
// or block comment. It carries the offending position per spec section 7.
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Config selects the dialect-specific lexical choices the lexer needs:
// which identifier-escape delimiter pairs are recognized. Multiple
// delimiter pairs may be accepted at once (e.g. both double-quote and
// bracket) since the lexer observes source text written for varying
// dialects; the emitter, not the lexer, commits to one delimiter per
// the active preset.
type Config struct {
	IdentifierEscapes []token.EscapeDelim
}

// DefaultConfig accepts all three standard identifier-escape forms.
func DefaultConfig() Config {
	return Config{IdentifierEscapes: []token.EscapeDelim{
		token.DoubleQuoteEscape, token.BacktickEscape, token.BracketEscape,
	}}
}

// Lexer scans SQL source text into Lexemes.
type Lexer struct {
	cfg Config

	input        string
	position     int
	readPosition int
	ch           rune
	line         int
	column       int
}

// New creates a Lexer over input using DefaultConfig.
func New(input string) *Lexer {
	return NewWithConfig(input, DefaultConfig())
}

// NewWithConfig creates a Lexer over input with an explicit Config.
func NewWithConfig(input string, cfg Config) *Lexer {
	l := &Lexer{cfg: cfg, input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += size
	}
	l.column++
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekAt(offset int) rune {
	pos := l.readPosition
	for i := 0; i < offset; i++ {
		if pos >= len(l.input) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.position}
}

// Tokenize scans the entire input and returns every Lexeme, or a fatal
// Error from an unterminated literal or comment.
func (l *Lexer) Tokenize() ([]Lexeme, error) {
	var out []Lexeme
	for {
		lx, err := l.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, lx)
		if lx.Kind == token.EOF {
			return out, nil
		}
	}
}

// Next scans and returns the next Lexeme, including the whitespace and
// inline comments that trail it.
func (l *Lexer) Next() (Lexeme, error) {
	start := l.position
	startPos := l.pos()

	if l.ch == 0 {
		return Lexeme{Kind: token.EOF, Start: start, End: start, Pos: startPos}, nil
	}

	var kind token.Kind
	var endPos int

	switch {
	case isIdentStart(l.ch):
		kind, endPos = l.readIdentOrKeyword()
	case isEscapeStart(l.ch, l.cfg):
		var err error
		endPos, err = l.readQuotedIdent()
		if err != nil {
			return Lexeme{}, err
		}
		kind = token.IDENT
	case l.ch == '\'':
		var err error
		endPos, err = l.readString()
		if err != nil {
			return Lexeme{}, err
		}
		kind = token.STRING
	case l.ch == '$' && isDollarQuoteStart(l):
		var err error
		endPos, err = l.readDollarString()
		if err != nil {
			return Lexeme{}, err
		}
		kind = token.DOLLARSTRING
	case unicode.IsDigit(l.ch):
		endPos = l.readNumber()
		kind = token.NUMBER
	case (l.ch == ':' && l.peekChar() != ':') || l.ch == '@' || l.ch == '?' || (l.ch == '$' && isParamStart(l)):
		endPos = l.readParameter()
		kind = token.PARAMETER
	case l.ch == '-' && l.peekChar() == '-':
		comment := l.readLineComment()
		return l.finishWithInline(token.LINECOMMENT, comment, start, startPos)
	case l.ch == '/' && l.peekChar() == '*':
		comment, err := l.readBlockComment()
		if err != nil {
			return Lexeme{}, err
		}
		return l.finishWithInline(token.BLOCKCOMMENT, comment, start, startPos)
	case l.ch == '(':
		kind, endPos = token.LPAREN, l.advance()
	case l.ch == ')':
		kind, endPos = token.RPAREN, l.advance()
	case l.ch == '[':
		kind, endPos = token.LBRACKET, l.advance()
	case l.ch == ']':
		kind, endPos = token.RBRACKET, l.advance()
	case l.ch == ',':
		kind, endPos = token.COMMA, l.advance()
	case l.ch == ';':
		kind, endPos = token.SEMICOLON, l.advance()
	case l.ch == '.' && !unicode.IsDigit(l.peekChar()):
		kind, endPos = token.DOT, l.advance()
	default:
		kind, endPos = token.OPERATOR, l.readOperator()
	}

	text := l.input[start:endPos]
	if kind == token.IDENT && token.IsKeyword(text) {
		kind = token.KEYWORD
	}

	lx := Lexeme{Kind: kind, Text: text, Start: start, End: endPos, Pos: startPos}
	ws, comments, err := l.readTrailing()
	if err != nil {
		return Lexeme{}, err
	}
	lx.FollowingWhitespace = ws
	lx.InlineComments = comments
	return lx, nil
}

func (l *Lexer) finishWithInline(kind token.Kind, text string, start int, startPos token.Position) (Lexeme, error) {
	lx := Lexeme{Kind: kind, Text: text, Start: start, End: l.position, Pos: startPos}
	ws, comments, err := l.readTrailing()
	if err != nil {
		return Lexeme{}, err
	}
	lx.FollowingWhitespace = ws
	lx.InlineComments = comments
	return lx, nil
}

// advance consumes exactly one rune and returns the new position.
func (l *Lexer) advance() int {
	l.readChar()
	return l.position
}

// readTrailing consumes whitespace and any comments up to (but not
// including) the next significant lexeme. Comments found before a
// newline are "inline"; once a newline has been seen, further leading
// comments belong to the *next* lexeme and are left unconsumed.
func (l *Lexer) readTrailing() (string, []string, error) {
	var ws strings.Builder
	var comments []string
	sawNewline := false
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			if l.ch == '\n' {
				sawNewline = true
			}
			ws.WriteRune(l.ch)
			l.readChar()
		case l.ch == '-' && l.peekChar() == '-' && !sawNewline:
			comments = append(comments, l.readLineComment())
		case l.ch == '/' && l.peekChar() == '*' && !sawNewline:
			c, err := l.readBlockComment()
			if err != nil {
				return "", nil, err
			}
			comments = append(comments, c)
		default:
			return ws.String(), comments, nil
		}
	}
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

func (l *Lexer) readIdentOrKeyword() (token.Kind, int) {
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return token.IDENT, l.position
}

func isEscapeStart(ch rune, cfg Config) bool {
	for _, d := range cfg.IdentifierEscapes {
		if string(ch) == d.Start {
			return true
		}
	}
	return false
}

func (l *Lexer) readQuotedIdent() (int, error) {
	startPos := l.pos()
	var delim token.EscapeDelim
	for _, d := range l.cfg.IdentifierEscapes {
		if string(l.ch) == d.Start {
			delim = d
			break
		}
	}
	l.readChar() // consume start delimiter
	for {
		if l.ch == 0 {
			return 0, &Error{Pos: startPos, Message: "unterminated quoted identifier"}
		}
		if string(l.ch) == delim.End {
			l.readChar()
			return l.position, nil
		}
		l.readChar()
	}
}

func (l *Lexer) readString() (int, error) {
	startPos := l.pos()
	l.readChar() // consume opening '
	for {
		if l.ch == 0 {
			return 0, &Error{Pos: startPos, Message: "unterminated string literal"}
		}
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			return l.position, nil
		}
		l.readChar()
	}
}

// isDollarQuoteStart reports whether the '$' at the current position
// begins a $tag$...$tag$ dollar-quoted string, distinguishing it from a
// $name / $1 parameter by requiring a second, matching '$tag$' opener.
func isDollarQuoteStart(l *Lexer) bool {
	i := 0
	for {
		r := l.peekAt(i)
		if r == '$' {
			return true
		}
		if !isIdentPart(r) {
			return false
		}
		i++
		if i > 64 {
			return false
		}
	}
}

func (l *Lexer) readDollarString() (int, error) {
	startPos := l.pos()
	tagStart := l.position
	l.readChar() // consume opening $
	for l.ch != '$' {
		l.readChar()
	}
	l.readChar() // consume closing $ of the opening tag
	tag := l.input[tagStart:l.position]

	for {
		if l.ch == 0 {
			return 0, &Error{Pos: startPos, Message: "unterminated dollar-quoted string"}
		}
		if l.ch == '$' && strings.HasPrefix(l.input[l.position:], tag) {
			for range tag {
				l.readChar()
			}
			return l.position, nil
		}
		l.readChar()
	}
}

func (l *Lexer) readNumber() int {
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	return l.position
}

func isParamStart(l *Lexer) bool {
	return unicode.IsDigit(l.peekChar()) || isIdentStart(l.peekChar())
}

func (l *Lexer) readParameter() int {
	l.readChar() // consume prefix char
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.position
}

func (l *Lexer) readLineComment() string {
	start := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readBlockComment() (string, error) {
	startPos := l.pos()
	start := l.position
	l.readChar()
	l.readChar() // consume /*
	depth := 1
	for depth > 0 {
		if l.ch == 0 {
			return "", &Error{Pos: startPos, Message: "unterminated block comment"}
		}
		if l.ch == '/' && l.peekChar() == '*' {
			depth++
			l.readChar()
			l.readChar()
			continue
		}
		if l.ch == '*' && l.peekChar() == '/' {
			depth--
			l.readChar()
			l.readChar()
			continue
		}
		l.readChar()
	}
	return l.input[start:l.position], nil
}

var operatorRunes = "=<>!+-*/%|&^~:"

func (l *Lexer) readOperator() int {
	start := l.position
	if !strings.ContainsRune(operatorRunes, l.ch) {
		// Unrecognized rune: consume it as an illegal single-char token
		// rather than looping forever.
		l.readChar()
		return l.position
	}
	l.readChar()
	for strings.ContainsRune(operatorRunes, l.ch) {
		combined := l.input[start:l.position+1]
		if !isKnownMultiCharOperator(combined) {
			break
		}
		l.readChar()
	}
	return l.position
}

var multiCharOperators = map[string]bool{
	"<>": true, "!=": true, "<=": true, ">=": true, "||": true, "::": true,
	"<<": true, ">>": true,
}

func isKnownMultiCharOperator(s string) bool {
	return multiCharOperators[s]
}
