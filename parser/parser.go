// Package parser builds the ast.Node tree from lexer output: a
// recursive-descent driver for clauses and statements, and a
// precedence-climbing (Pratt) driver for value expressions, in the
// prefixParseFns/infixParseFns/precedences idiom ha1tch-tsqlparser's
// parser uses.
package parser

import (
	"fmt"
	"strings"

	"github.com/sqlforge/sqlforge/ast"
	"github.com/sqlforge/sqlforge/lexer"
	"github.com/sqlforge/sqlforge/sqlerr"
	"github.com/sqlforge/sqlforge/token"
)

// item is one significant (non-comment) lexeme plus any standalone
// comments that appeared immediately before it -- the "before" half of
// the positioned-comment overlay. Inline ("after") comments are already
// attached on the lexeme itself by the lexer.
type item struct {
	lex     lexer.Lexeme
	leading []string
}

func preprocess(lexemes []lexer.Lexeme) []item {
	var items []item
	var pending []string
	for _, lx := range lexemes {
		switch lx.Kind {
		case token.LINECOMMENT, token.BLOCKCOMMENT:
			pending = append(pending, lx.Text)
			continue
		}
		items = append(items, item{lex: lx, leading: pending})
		pending = nil
	}
	return items
}

// Parser drives recursive-descent parsing over a preprocessed item
// stream.
type Parser struct {
	items []item
	pos   int
}

// New returns a Parser over already-tokenized input.
func New(lexemes []lexer.Lexeme) *Parser {
	return &Parser{items: preprocess(lexemes)}
}

// Parse lexes and parses input in one step.
func Parse(input string) (ast.Node, error) {
	lexemes, err := lexer.New(input).Tokenize()
	if err != nil {
		le := err.(*lexer.Error)
		return nil, &sqlerr.ParseError{Line: le.Pos.Line, Column: le.Pos.Column, Message: le.Message}
	}
	return New(lexemes).ParseStatement()
}

// ParseExpr lexes and parses input as a single value expression, for
// callers (e.g. OverrideSelectItemExpr-style rewrites) that only need
// to build one expression fragment.
func ParseExpr(input string) (ast.Expr, error) {
	lexemes, err := lexer.New(input).Tokenize()
	if err != nil {
		le := err.(*lexer.Error)
		return nil, &sqlerr.ParseError{Line: le.Pos.Line, Column: le.Pos.Column, Message: le.Message}
	}
	p := New(lexemes)
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) cur() item {
	if p.pos >= len(p.items) {
		return item{lex: lexer.Lexeme{Kind: token.EOF}}
	}
	return p.items[p.pos]
}

func (p *Parser) peekAt(n int) item {
	i := p.pos + n
	if i >= len(p.items) {
		return item{lex: lexer.Lexeme{Kind: token.EOF}}
	}
	return p.items[i]
}

func (p *Parser) advance() item {
	it := p.cur()
	if p.pos < len(p.items) {
		p.pos++
	}
	return it
}

func (p *Parser) atEOF() bool { return p.cur().lex.Kind == token.EOF }

func (p *Parser) errorf(format string, args ...interface{}) error {
	pos := p.cur().lex.Pos
	return &sqlerr.ParseError{Line: pos.Line, Column: pos.Column, Message: fmt.Sprintf(format, args...)}
}

// isKeyword reports whether the current item is the keyword kw
// (case-insensitive).
func (p *Parser) isKeyword(kw string) bool {
	it := p.cur()
	return it.lex.Kind == token.KEYWORD && strings.EqualFold(it.lex.Text, kw)
}

func (p *Parser) isKeywordAt(n int, kw string) bool {
	it := p.peekAt(n)
	return it.lex.Kind == token.KEYWORD && strings.EqualFold(it.lex.Text, kw)
}

func (p *Parser) isOperator(op string) bool {
	it := p.cur()
	return it.lex.Kind == token.OPERATOR && it.lex.Text == op
}

func (p *Parser) expectKeyword(kw string) (item, error) {
	if !p.isKeyword(kw) {
		return item{}, p.errorf("expected keyword %q, found %q", kw, p.cur().lex.Text)
	}
	return p.advance(), nil
}

func (p *Parser) expectKind(k token.Kind, desc string) (item, error) {
	if p.cur().lex.Kind != k {
		return item{}, p.errorf("expected %s, found %q", desc, p.cur().lex.Text)
	}
	return p.advance(), nil
}

func (p *Parser) tryKeyword(kw string) bool {
	if p.isKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

// ParseStatement parses exactly one top-level statement: a query root
// or a DDL statement.
func (p *Parser) ParseStatement() (ast.Node, error) {
	switch {
	case p.isKeyword("WITH"):
		return p.parseQueryRootWithLeadingWith()
	case p.isKeyword("SELECT"):
		return p.parseSimpleSelectTail(nil)
	case p.isKeyword("VALUES"):
		return p.parseValues()
	case p.isKeyword("INSERT"):
		return p.parseInsert(nil)
	case p.isKeyword("UPDATE"):
		return p.parseUpdate(nil)
	case p.isKeyword("DELETE"):
		return p.parseDelete(nil)
	case p.isKeyword("MERGE"):
		return p.parseMerge(nil)
	case p.isKeyword("CREATE"):
		return p.parseCreate()
	case p.isKeyword("DROP"):
		return p.parseDrop()
	case p.isKeyword("ALTER"):
		return p.parseAlter()
	case p.isKeyword("EXPLAIN"):
		return p.parseExplain()
	case p.isKeyword("ANALYZE"):
		return p.parseAnalyze()
	default:
		return nil, p.errorf("unexpected token %q at start of statement", p.cur().lex.Text)
	}
}

func (p *Parser) parseQueryRootWithLeadingWith() (ast.Node, error) {
	with, err := p.parseWith()
	if err != nil {
		return nil, err
	}
	switch {
	case p.isKeyword("SELECT"):
		return p.parseSimpleSelectTail(with)
	case p.isKeyword("INSERT"):
		return p.parseInsert(with)
	case p.isKeyword("UPDATE"):
		return p.parseUpdate(with)
	case p.isKeyword("DELETE"):
		return p.parseDelete(with)
	case p.isKeyword("MERGE"):
		return p.parseMerge(with)
	default:
		return nil, p.errorf("expected SELECT/INSERT/UPDATE/DELETE/MERGE after WITH, found %q", p.cur().lex.Text)
	}
}

func (p *Parser) parseWith() (*ast.With, error) {
	if _, err := p.expectKeyword("WITH"); err != nil {
		return nil, err
	}
	w := &ast.With{}
	if p.tryKeyword("RECURSIVE") {
		w.Recursive = true
	}
	for {
		ct, err := p.parseCommonTable()
		if err != nil {
			return nil, err
		}
		w.Tables = append(w.Tables, ct)
		if p.cur().lex.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	return w, nil
}

func (p *Parser) parseCommonTable() (*ast.CommonTable, error) {
	before := p.cur().leading
	nameItem, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	ct := &ast.CommonTable{Alias: &ast.Identifier{Name: nameItem.lex.Text}}
	ct.Before = before
	if p.tryKeyword("NOT") {
		if _, err := p.expectKeyword("MATERIALIZED"); err != nil {
			return nil, err
		}
		ct.Materialized = ast.NotMaterialized
	} else if p.tryKeyword("MATERIALIZED") {
		ct.Materialized = ast.Materialized
	}
	if _, err := p.expectKeyword("AS"); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.LPAREN, "("); err != nil {
		return nil, err
	}
	query, err := p.parseQueryRootInParens()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	ct.Query = query
	return ct, nil
}

// parseQueryRootInParens parses a full query root used inside
// parentheses: a SimpleSelect, VALUES list, or a chain of set
// operations over either.
func (p *Parser) parseQueryRootInParens() (ast.QueryRoot, error) {
	var left ast.QueryRoot
	var err error
	switch {
	case p.isKeyword("WITH"):
		node, err2 := p.parseQueryRootWithLeadingWith()
		if err2 != nil {
			return nil, err2
		}
		left = node.(ast.QueryRoot)
	case p.isKeyword("SELECT"):
		left, err = p.parseSimpleSelect()
	case p.isKeyword("VALUES"):
		node, err2 := p.parseValues()
		if err2 != nil {
			return nil, err2
		}
		left = node.(ast.QueryRoot)
	default:
		return nil, p.errorf("expected SELECT, VALUES, or WITH, found %q", p.cur().lex.Text)
	}
	if err != nil {
		return nil, err
	}
	return p.parseSetOpTail(left)
}

func (p *Parser) parseSetOpTail(left ast.QueryRoot) (ast.QueryRoot, error) {
	for {
		var op ast.BinaryOp
		switch {
		case p.isKeyword("UNION"):
			p.advance()
			if p.tryKeyword("ALL") {
				op = ast.UnionAll
			} else {
				op = ast.Union
			}
		case p.isKeyword("INTERSECT"):
			p.advance()
			if p.tryKeyword("ALL") {
				op = ast.IntersectAll
			} else {
				op = ast.Intersect
			}
		case p.isKeyword("EXCEPT"):
			p.advance()
			if p.tryKeyword("ALL") {
				op = ast.ExceptAll
			} else {
				op = ast.Except
			}
		default:
			return left, nil
		}
		var right ast.QueryRoot
		var err error
		if p.isKeyword("SELECT") {
			right, err = p.parseSimpleSelect()
		} else if p.isKeyword("VALUES") {
			node, err2 := p.parseValues()
			if err2 != nil {
				return nil, err2
			}
			right = node.(ast.QueryRoot)
		} else if p.cur().lex.Kind == token.LPAREN {
			p.advance()
			right, err = p.parseQueryRootInParens()
			if err == nil {
				_, err = p.expectKind(token.RPAREN, ")")
			}
		} else {
			return nil, p.errorf("expected SELECT/VALUES after set operator, found %q", p.cur().lex.Text)
		}
		if err != nil {
			return nil, err
		}
		left = &ast.BinarySelect{Left: left, Op: op, Right: right}
	}
}

// parseSimpleSelectTail parses "SELECT ..." at top level and then folds
// in any trailing set operations, returning a QueryRoot node.
func (p *Parser) parseSimpleSelectTail(with *ast.With) (ast.Node, error) {
	s, err := p.parseSimpleSelect()
	if err != nil {
		return nil, err
	}
	s.With = with
	s.RebuildCTECache()
	root, err := p.parseSetOpTail(ast.QueryRoot(s))
	if err != nil {
		return nil, err
	}
	return root, nil
}

func (p *Parser) expectIdent() (item, error) {
	it := p.cur()
	if it.lex.Kind != token.IDENT {
		return item{}, p.errorf("expected identifier, found %q", it.lex.Text)
	}
	return p.advance(), nil
}

func (p *Parser) parseIdentifier() (*ast.Identifier, error) {
	it, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	return &ast.Identifier{Comments: ast.Comments{Before: it.leading, After: it.lex.InlineComments}, Name: it.lex.Text}, nil
}

// parseQualifiedName parses a dotted identifier chain: a, a.b, a.b.c.
func (p *Parser) parseQualifiedName() (*ast.QualifiedName, error) {
	before := p.cur().leading
	first, err := p.identOrStar()
	if err != nil {
		return nil, err
	}
	parts := []*ast.Identifier{first}
	for p.cur().lex.Kind == token.DOT {
		p.advance()
		next, err := p.identOrStar()
		if err != nil {
			return nil, err
		}
		parts = append(parts, next)
	}
	q := &ast.QualifiedName{Namespaces: parts[:len(parts)-1], Name: parts[len(parts)-1]}
	q.Before = before
	return q, nil
}

func (p *Parser) identOrStar() (*ast.Identifier, error) {
	it := p.cur()
	if it.lex.Kind == token.OPERATOR && it.lex.Text == "*" {
		p.advance()
		return &ast.Identifier{Name: "*"}, nil
	}
	return p.parseIdentifier()
}
