package parser

import (
	"strconv"
	"strings"

	"github.com/sqlforge/sqlforge/ast"
	"github.com/sqlforge/sqlforge/token"
)

// Binding powers for precedence climbing, lowest to highest.
const (
	precLowest = iota
	precOr
	precAnd
	precNot
	precComparison // = <> < > <= >= LIKE IN IS BETWEEN
	precConcat     // ||
	precAdd        // + -
	precMul        // * / %
	precCast       // ::
	precUnary
)

func binaryPrecedence(op string) int {
	switch strings.ToUpper(op) {
	case "OR":
		return precOr
	case "AND":
		return precAnd
	case "=", "<>", "!=", "<", ">", "<=", ">=", "LIKE", "NOT LIKE", "IN", "IS", "BETWEEN":
		return precComparison
	case "||":
		return precConcat
	case "+", "-":
		return precAdd
	case "*", "/", "%":
		return precMul
	case "::":
		return precCast
	default:
		return precLowest
	}
}

// parseExpr parses one value expression via precedence climbing: a
// prefix (nud) production followed by zero or more infix (led)
// productions whose precedence exceeds minPrec.
func (p *Parser) parseExpr(minPrec int) (ast.Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		op, prec, ok := p.peekInfixOp()
		if !ok || prec <= minPrec {
			return left, nil
		}
		left, err = p.parseInfix(left, op, prec)
		if err != nil {
			return nil, err
		}
	}
}

// peekInfixOp reports the current token's infix operator text and
// precedence, if any.
func (p *Parser) peekInfixOp() (string, int, bool) {
	it := p.cur()
	switch it.lex.Kind {
	case token.OPERATOR:
		return it.lex.Text, binaryPrecedence(it.lex.Text), true
	case token.KEYWORD:
		up := strings.ToUpper(it.lex.Text)
		switch up {
		case "AND", "OR", "LIKE", "IN", "IS", "BETWEEN":
			return up, binaryPrecedence(up), true
		case "NOT":
			if p.isKeywordAt(1, "LIKE") || p.isKeywordAt(1, "IN") || p.isKeywordAt(1, "BETWEEN") {
				return "NOT " + strings.ToUpper(p.peekAt(1).lex.Text), precComparison, true
			}
		}
	}
	return "", 0, false
}

func (p *Parser) parseInfix(left ast.Expr, op string, prec int) (ast.Expr, error) {
	switch op {
	case "IS":
		return p.parseIs(left)
	case "BETWEEN":
		p.advance()
		return p.parseBetween(left, false)
	case "NOT BETWEEN":
		p.advance()
		p.advance()
		return p.parseBetween(left, true)
	case "IN":
		p.advance()
		return p.parseIn(left, false)
	case "NOT IN":
		p.advance()
		p.advance()
		return p.parseIn(left, true)
	case "LIKE":
		p.advance()
		right, err := p.parseExpr(prec)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: "LIKE", Left: left, Right: right}, nil
	case "NOT LIKE":
		p.advance()
		p.advance()
		right, err := p.parseExpr(prec)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: "NOT LIKE", Left: left, Right: right}, nil
	case "::":
		p.advance()
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		return &ast.Cast{Input: left, Type: typ}, nil
	default:
		p.advance()
		right, err := p.parseExpr(prec)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: strings.ToUpper(op), Left: left, Right: right}, nil
	}
}

func (p *Parser) parseIs(left ast.Expr) (ast.Expr, error) {
	p.advance() // IS
	neg := p.tryKeyword("NOT")
	var right ast.Expr
	switch {
	case p.tryKeyword("NULL"):
		right = &ast.Literal{Value: "NULL"}
	case p.tryKeyword("TRUE"):
		right = &ast.Literal{Value: "TRUE"}
	case p.tryKeyword("FALSE"):
		right = &ast.Literal{Value: "FALSE"}
	default:
		return nil, p.errorf("expected NULL/TRUE/FALSE after IS, found %q", p.cur().lex.Text)
	}
	op := "IS"
	if neg {
		op = "IS NOT"
	}
	return &ast.Binary{Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseBetween(value ast.Expr, neg bool) (ast.Expr, error) {
	lower, err := p.parseExpr(precAnd)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("AND"); err != nil {
		return nil, err
	}
	upper, err := p.parseExpr(precComparison)
	if err != nil {
		return nil, err
	}
	return &ast.Between{Neg: neg, Value: value, Lower: lower, Upper: upper}, nil
}

func (p *Parser) parseIn(value ast.Expr, neg bool) (ast.Expr, error) {
	if _, err := p.expectKind(token.LPAREN, "("); err != nil {
		return nil, err
	}
	var list ast.Expr
	if p.isKeyword("SELECT") || p.isKeyword("WITH") || p.isKeyword("VALUES") {
		q, err := p.parseQueryRootInParens()
		if err != nil {
			return nil, err
		}
		list = &ast.InlineQuery{Query: q}
	} else {
		elems, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		list = &ast.ValueList{Elements: elems}
	}
	if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	op := "IN"
	if neg {
		op = "NOT IN"
	}
	return &ast.Binary{Op: op, Left: value, Right: list}, nil
}

func (p *Parser) parseExprList() ([]ast.Expr, error) {
	var out []ast.Expr
	for {
		e, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		if p.cur().lex.Kind == token.COMMA {
			p.advance()
			continue
		}
		return out, nil
	}
}

// parsePrefix is the Pratt "nud" production: literals, identifiers,
// unary operators, parens, CASE, CAST, function calls, subqueries,
// arrays.
func (p *Parser) parsePrefix() (ast.Expr, error) {
	it := p.cur()
	comments := ast.Comments{Before: it.leading}

	switch it.lex.Kind {
	case token.NUMBER:
		p.advance()
		return &ast.Literal{Comments: comments, Value: it.lex.Text, IsString: false}, nil
	case token.STRING:
		p.advance()
		return &ast.Literal{Comments: comments, Value: unquoteString(it.lex.Text), IsString: true}, nil
	case token.DOLLARSTRING:
		p.advance()
		return &ast.Literal{Comments: comments, Value: it.lex.Text, IsString: true}, nil
	case token.PARAMETER:
		p.advance()
		return &ast.Parameter{Comments: comments, Name: it.lex.Text}, nil
	case token.LPAREN:
		return p.parseParenExpr()
	}

	if it.lex.Kind == token.KEYWORD {
		switch strings.ToUpper(it.lex.Text) {
		case "NOT":
			p.advance()
			operand, err := p.parseExpr(precNot)
			if err != nil {
				return nil, err
			}
			return &ast.Unary{Comments: comments, Op: "NOT", Operand: operand}, nil
		case "NULL":
			p.advance()
			return &ast.Literal{Comments: comments, Value: "NULL"}, nil
		case "TRUE", "FALSE":
			p.advance()
			return &ast.Literal{Comments: comments, Value: strings.ToUpper(it.lex.Text)}, nil
		case "CASE":
			return p.parseCase()
		case "CAST":
			return p.parseCast()
		case "EXISTS":
			p.advance()
			if _, err := p.expectKind(token.LPAREN, "("); err != nil {
				return nil, err
			}
			q, err := p.parseQueryRootInParens()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
				return nil, err
			}
			return &ast.Unary{Comments: comments, Op: "EXISTS", Operand: &ast.InlineQuery{Query: q}}, nil
		case "ARRAY":
			return p.parseArray()
		}
	}

	if it.lex.Kind == token.OPERATOR && (it.lex.Text == "-" || it.lex.Text == "+" || it.lex.Text == "~") {
		p.advance()
		operand, err := p.parseExpr(precUnary)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Comments: comments, Op: it.lex.Text, Operand: operand}, nil
	}

	if it.lex.Kind == token.IDENT || (it.lex.Kind == token.OPERATOR && it.lex.Text == "*") {
		return p.parseIdentOrCallOrColumn()
	}

	return nil, p.errorf("unexpected token %q in expression", it.lex.Text)
}

func unquoteString(raw string) string {
	if len(raw) >= 2 {
		inner := raw[1 : len(raw)-1]
		return strings.ReplaceAll(inner, "''", "'")
	}
	return raw
}

func (p *Parser) parseParenExpr() (ast.Expr, error) {
	before := p.cur().leading
	p.advance() // (
	if p.isKeyword("SELECT") || p.isKeyword("WITH") || p.isKeyword("VALUES") {
		q, err := p.parseQueryRootInParens()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		return &ast.InlineQuery{Comments: ast.Comments{Before: before}, Query: q}, nil
	}
	first, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	if p.cur().lex.Kind == token.COMMA {
		elems := []ast.Expr{first}
		for p.cur().lex.Kind == token.COMMA {
			p.advance()
			e, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		return &ast.Tuple{Comments: ast.Comments{Before: before}, Elements: elems}, nil
	}
	closing, err := p.expectKind(token.RPAREN, ")")
	if err != nil {
		return nil, err
	}
	return &ast.Paren{Comments: ast.Comments{Before: before, After: closing.lex.InlineComments}, Inner: first}, nil
}

func (p *Parser) parseCase() (ast.Expr, error) {
	before := p.cur().leading
	p.advance() // CASE
	c := &ast.Case{Comments: ast.Comments{Before: before}}
	if !p.isKeyword("WHEN") {
		cond, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		c.Condition = cond
	}
	arg := &ast.SwitchCaseArgument{}
	for p.tryKeyword("WHEN") {
		when, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("THEN"); err != nil {
			return nil, err
		}
		then, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		arg.Cases = append(arg.Cases, &ast.CaseKeyValuePair{When: when, Then: then})
	}
	if p.tryKeyword("ELSE") {
		elseVal, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		arg.ElseValue = elseVal
	}
	arg.AfterComments = p.cur().leading
	if _, err := p.expectKeyword("END"); err != nil {
		return nil, err
	}
	c.Arg = arg
	return c, nil
}

func (p *Parser) parseCast() (ast.Expr, error) {
	before := p.cur().leading
	p.advance() // CAST
	if _, err := p.expectKind(token.LPAREN, "("); err != nil {
		return nil, err
	}
	input, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("AS"); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return &ast.Cast{Comments: ast.Comments{Before: before}, Input: input, Type: typ}, nil
}

func (p *Parser) parseTypeName() (*ast.TypeName, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	t := &ast.TypeName{Name: name.lex.Text}
	if p.cur().lex.Kind == token.LPAREN {
		p.advance()
		args, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		t.Args = args
		if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (p *Parser) parseArray() (ast.Expr, error) {
	before := p.cur().leading
	p.advance() // ARRAY
	if p.cur().lex.Kind == token.LPAREN {
		p.advance()
		q, err := p.parseQueryRootInParens()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		return &ast.ArrayQuery{Comments: ast.Comments{Before: before}, Query: q}, nil
	}
	if _, err := p.expectKind(token.LBRACKET, "["); err != nil {
		return nil, err
	}
	var elems []ast.Expr
	if p.cur().lex.Kind != token.RBRACKET {
		var err error
		elems, err = p.parseExprList()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expectKind(token.RBRACKET, "]"); err != nil {
		return nil, err
	}
	return &ast.Array{Comments: ast.Comments{Before: before}, Elements: elems}, nil
}

// parseIdentOrCallOrColumn parses a qualified name, optionally followed
// by a function-call argument list, OVER clause, or array
// index/slice suffix.
func (p *Parser) parseIdentOrCallOrColumn() (ast.Expr, error) {
	qn, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	var base ast.Expr = qn
	if p.cur().lex.Kind == token.LPAREN {
		base, err = p.parseFunctionCallTail(qn)
		if err != nil {
			return nil, err
		}
	}
	for p.cur().lex.Kind == token.LBRACKET {
		p.advance()
		idx, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		if p.isOperator(":") {
			p.advance()
			upper, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			if _, err := p.expectKind(token.RBRACKET, "]"); err != nil {
				return nil, err
			}
			base = &ast.ArraySlice{Array: base, Lower: idx, Upper: upper}
			continue
		}
		if _, err := p.expectKind(token.RBRACKET, "]"); err != nil {
			return nil, err
		}
		base = &ast.ArrayIndex{Array: base, Index: idx}
	}
	return base, nil
}

func (p *Parser) parseFunctionCallTail(name *ast.QualifiedName) (ast.Expr, error) {
	p.advance() // (
	f := &ast.FunctionCall{Name: name}
	if p.tryKeyword("DISTINCT") {
		f.Distinct = true
	}
	if p.cur().lex.Kind != token.RPAREN {
		if it := p.cur(); it.lex.Kind == token.OPERATOR && it.lex.Text == "*" {
			p.advance()
			f.Args = []ast.Expr{&ast.Identifier{Name: "*"}}
		} else {
			args, err := p.parseExprList()
			if err != nil {
				return nil, err
			}
			f.Args = args
		}
	}
	if p.tryKeyword("ORDER") {
		if _, err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		ob, err := p.parseOrderByItems()
		if err != nil {
			return nil, err
		}
		f.InternalOrderBy = &ast.OrderBy{Items: ob}
	}
	if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	if p.tryKeyword("WITH") {
		if _, err := p.expectKeyword("ORDINALITY"); err != nil {
			return nil, err
		}
		f.WithOrdinality = true
	}
	if p.isKeyword("OVER") {
		over, err := p.parseOverClause()
		if err != nil {
			return nil, err
		}
		f.Over = over
	}
	return f, nil
}

func (p *Parser) parseOverClause() (*ast.OverClause, error) {
	p.advance() // OVER
	if p.cur().lex.Kind == token.IDENT {
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return &ast.OverClause{WindowName: name}, nil
	}
	if _, err := p.expectKind(token.LPAREN, "("); err != nil {
		return nil, err
	}
	o := &ast.OverClause{}
	if p.tryKeyword("PARTITION") {
		if _, err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		exprs, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		o.PartitionBy = exprs
	}
	if p.tryKeyword("ORDER") {
		if _, err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		items, err := p.parseOrderByItems()
		if err != nil {
			return nil, err
		}
		o.OrderBy = &ast.OrderBy{Items: items}
	}
	if p.isKeyword("ROWS") || p.isKeyword("RANGE") || p.isKeyword("GROUPS") {
		frame, err := p.parseWindowFrame()
		if err != nil {
			return nil, err
		}
		o.Frame = frame
	}
	if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return o, nil
}

func (p *Parser) parseWindowFrame() (*ast.WindowFrame, error) {
	var units ast.FrameUnits
	switch {
	case p.tryKeyword("ROWS"):
		units = ast.RowsFrame
	case p.tryKeyword("RANGE"):
		units = ast.RangeFrame
	case p.tryKeyword("GROUPS"):
		units = ast.GroupsFrame
	}
	f := &ast.WindowFrame{Units: units}
	if p.tryKeyword("BETWEEN") {
		start, err := p.parseFrameBound()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("AND"); err != nil {
			return nil, err
		}
		end, err := p.parseFrameBound()
		if err != nil {
			return nil, err
		}
		f.Start, f.End = start, end
		return f, nil
	}
	start, err := p.parseFrameBound()
	if err != nil {
		return nil, err
	}
	f.Start = start
	return f, nil
}

func (p *Parser) parseFrameBound() (*ast.FrameBound, error) {
	if p.tryKeyword("UNBOUNDED") {
		if p.tryKeyword("PRECEDING") {
			return &ast.FrameBound{Kind: ast.UnboundedPreceding}, nil
		}
		if p.tryKeyword("FOLLOWING") {
			return &ast.FrameBound{Kind: ast.UnboundedFollowing}, nil
		}
		return nil, p.errorf("expected PRECEDING/FOLLOWING after UNBOUNDED")
	}
	if p.tryKeyword("CURRENT") {
		if _, err := p.expectKeyword("ROW"); err != nil {
			return nil, err
		}
		return &ast.FrameBound{Kind: ast.CurrentRow}, nil
	}
	offset, err := p.parseExpr(precComparison)
	if err != nil {
		return nil, err
	}
	if p.tryKeyword("PRECEDING") {
		return &ast.FrameBound{Kind: ast.Preceding, Offset: offset}, nil
	}
	if _, err := p.expectKeyword("FOLLOWING"); err != nil {
		return nil, err
	}
	return &ast.FrameBound{Kind: ast.Following, Offset: offset}, nil
}

func (p *Parser) parseOrderByItems() ([]*ast.OrderByItem, error) {
	var items []*ast.OrderByItem
	for {
		v, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		it := &ast.OrderByItem{Value: v}
		if p.tryKeyword("ASC") {
			it.Dir = ast.Ascending
		} else if p.tryKeyword("DESC") {
			it.Dir = ast.Descending
		}
		if p.tryKeyword("NULLS") {
			if p.tryKeyword("FIRST") {
				it.Nulls = ast.NullsFirst
			} else if _, err := p.expectKeyword("LAST"); err != nil {
				return nil, err
			} else {
				it.Nulls = ast.NullsLast
			}
		}
		items = append(items, it)
		if p.cur().lex.Kind == token.COMMA {
			p.advance()
			continue
		}
		return items, nil
	}
}

// parseIntLiteral is used by DDL/sequence parsing for plain integers.
func (p *Parser) parseIntLiteral() (int64, error) {
	it := p.cur()
	neg := false
	if it.lex.Kind == token.OPERATOR && it.lex.Text == "-" {
		neg = true
		p.advance()
		it = p.cur()
	}
	if it.lex.Kind != token.NUMBER {
		return 0, p.errorf("expected integer, found %q", it.lex.Text)
	}
	p.advance()
	v, err := strconv.ParseInt(it.lex.Text, 10, 64)
	if err != nil {
		return 0, p.errorf("invalid integer %q", it.lex.Text)
	}
	if neg {
		v = -v
	}
	return v, nil
}
