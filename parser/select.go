package parser

import (
	"github.com/sqlforge/sqlforge/ast"
	"github.com/sqlforge/sqlforge/token"
)

func (p *Parser) parseSimpleSelect() (*ast.SimpleSelect, error) {
	s := &ast.SimpleSelect{}
	sel, err := p.parseSelectClause()
	if err != nil {
		return nil, err
	}
	s.Select = sel

	if p.isKeyword("FROM") {
		from, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		s.From = from
	}
	if p.isKeyword("WHERE") {
		before := p.cur().leading
		p.advance()
		cond, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		s.Where = &ast.Where{Comments: ast.Comments{Before: before}, Condition: cond}
	}
	if p.isKeyword("GROUP") {
		p.advance()
		if _, err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		items, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		s.GroupBy = &ast.GroupBy{Items: items}
	}
	if p.isKeyword("HAVING") {
		p.advance()
		cond, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		s.Having = &ast.Having{Condition: cond}
	}
	if p.isKeyword("WINDOW") {
		w, err := p.parseWindowClause()
		if err != nil {
			return nil, err
		}
		s.Window = w
	}
	if p.isKeyword("ORDER") {
		p.advance()
		if _, err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		items, err := p.parseOrderByItems()
		if err != nil {
			return nil, err
		}
		s.OrderBy = &ast.OrderBy{Items: items}
	}
	if p.isKeyword("LIMIT") {
		p.advance()
		count, err := p.parseExpr(precComparison)
		if err != nil {
			return nil, err
		}
		s.Limit = &ast.Limit{Count: count}
	}
	if p.isKeyword("OFFSET") {
		p.advance()
		count, err := p.parseExpr(precComparison)
		if err != nil {
			return nil, err
		}
		s.Offset = &ast.Offset{Count: count}
	}
	if p.isKeyword("FETCH") {
		fetch, err := p.parseFetchClause()
		if err != nil {
			return nil, err
		}
		s.Fetch = fetch
	}
	if p.isKeyword("FOR") {
		forClause, err := p.parseForClause()
		if err != nil {
			return nil, err
		}
		s.For = forClause
	}
	s.RebuildCTECache()
	return s, nil
}

func (p *Parser) parseSelectClause() (*ast.Select, error) {
	before := p.cur().leading
	if _, err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}
	sel := &ast.Select{Comments: ast.Comments{Before: before}}
	if p.isKeyword("DISTINCT") {
		p.advance()
		dc := &ast.DistinctClause{}
		if p.tryKeyword("ON") {
			if _, err := p.expectKind(token.LPAREN, "("); err != nil {
				return nil, err
			}
			exprs, err := p.parseExprList()
			if err != nil {
				return nil, err
			}
			dc.On = exprs
			if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
				return nil, err
			}
		}
		sel.Distinct = dc
	}
	items, err := p.parseSelectItems()
	if err != nil {
		return nil, err
	}
	sel.Items = items
	return sel, nil
}

func (p *Parser) parseSelectItems() ([]*ast.SelectItem, error) {
	var items []*ast.SelectItem
	for {
		before := p.cur().leading
		expr, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		item := &ast.SelectItem{Comments: ast.Comments{Before: before}, Expr: expr}
		asBefore := p.cur().leading
		if p.tryKeyword("AS") {
			alias, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			item.Alias = alias
			item.AsComments = ast.Comments{Before: asBefore}
		} else if p.cur().lex.Kind == token.IDENT {
			alias, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			item.Alias = alias
		}
		items = append(items, item)
		if p.cur().lex.Kind == token.COMMA {
			p.advance()
			continue
		}
		return items, nil
	}
}

func (p *Parser) parseFromClause() (*ast.From, error) {
	before := p.cur().leading
	p.advance() // FROM
	source, err := p.parseSource()
	if err != nil {
		return nil, err
	}
	from := &ast.From{Comments: ast.Comments{Before: before}, Source: source}
	for {
		join, err := p.tryParseJoin()
		if err != nil {
			return nil, err
		}
		if join == nil {
			return from, nil
		}
		from.Joins = append(from.Joins, join)
	}
}

func (p *Parser) tryParseJoin() (*ast.Join, error) {
	kind, lateral, ok, err := p.detectJoinKind()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	src, err := p.parseSource()
	if err != nil {
		return nil, err
	}
	j := &ast.Join{Kind: kind, Source: src, Lateral: lateral}
	switch {
	case p.tryKeyword("ON"):
		cond, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		j.Condition = &ast.JoinOn{Condition: cond}
	case p.tryKeyword("USING"):
		if _, err := p.expectKind(token.LPAREN, "("); err != nil {
			return nil, err
		}
		var cols []*ast.Identifier
		for {
			id, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			cols = append(cols, id)
			if p.cur().lex.Kind == token.COMMA {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		j.Condition = &ast.JoinUsing{Columns: cols}
	}
	return j, nil
}

func (p *Parser) detectJoinKind() (ast.JoinKind, bool, bool, error) {
	switch {
	case p.isKeyword("JOIN"):
		p.advance()
		return ast.InnerJoin, false, true, nil
	case p.isKeyword("INNER"):
		p.advance()
		if _, err := p.expectKeyword("JOIN"); err != nil {
			return 0, false, false, err
		}
		return ast.InnerJoin, false, true, nil
	case p.isKeyword("LEFT"):
		p.advance()
		p.tryKeyword("OUTER")
		if _, err := p.expectKeyword("JOIN"); err != nil {
			return 0, false, false, err
		}
		return ast.LeftJoin, false, true, nil
	case p.isKeyword("RIGHT"):
		p.advance()
		p.tryKeyword("OUTER")
		if _, err := p.expectKeyword("JOIN"); err != nil {
			return 0, false, false, err
		}
		return ast.RightJoin, false, true, nil
	case p.isKeyword("FULL"):
		p.advance()
		p.tryKeyword("OUTER")
		if _, err := p.expectKeyword("JOIN"); err != nil {
			return 0, false, false, err
		}
		return ast.FullJoin, false, true, nil
	case p.isKeyword("CROSS"):
		p.advance()
		if _, err := p.expectKeyword("JOIN"); err != nil {
			return 0, false, false, err
		}
		return ast.CrossJoin, false, true, nil
	case p.isKeyword("LATERAL"):
		p.advance()
		kind, _, ok, err := p.detectJoinKind()
		return kind, true, ok, err
	default:
		return 0, false, false, nil
	}
}

func (p *Parser) parseSource() (ast.Source, error) {
	before := p.cur().leading
	var src ast.Source
	switch {
	case p.cur().lex.Kind == token.LPAREN:
		p.advance()
		if p.isKeyword("SELECT") || p.isKeyword("WITH") || p.isKeyword("VALUES") {
			q, err := p.parseQueryRootInParens()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
				return nil, err
			}
			sub := &ast.SubQuerySource{Comments: ast.Comments{Before: before}, Query: q}
			if err := p.parseSourceAlias(&sub.Alias, &sub.AliasComments); err != nil {
				return nil, err
			}
			src = sub
		} else {
			inner, err := p.parseSource()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
				return nil, err
			}
			src = inner
		}
	case p.isKeyword("VALUES"):
		node, err := p.parseValues()
		if err != nil {
			return nil, err
		}
		vt := &ast.ValuesTable{Comments: ast.Comments{Before: before}, Values: node.(*ast.Values)}
		if err := p.parseSourceAlias(&vt.Alias, nil); err != nil {
			return nil, err
		}
		src = vt
	default:
		qn, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		if p.cur().lex.Kind == token.LPAREN {
			call, err := p.parseFunctionCallTail(qn)
			if err != nil {
				return nil, err
			}
			fc := call.(*ast.FunctionCall)
			fc.Before = before
			src = fc
		} else {
			tn := &ast.TableName{Comments: ast.Comments{Before: before}, Name: qn}
			if err := p.parseSourceAlias(&tn.Alias, &tn.AliasComments); err != nil {
				return nil, err
			}
			src = tn
		}
	}
	return src, nil
}

// parseSourceAlias consumes an optional [AS] alias. commentsOut may be
// nil for source kinds that don't track AS-comments separately.
func (p *Parser) parseSourceAlias(aliasOut **ast.Identifier, commentsOut *ast.Comments) error {
	asBefore := p.cur().leading
	hasAs := p.tryKeyword("AS")
	if p.cur().lex.Kind == token.IDENT && !p.isReservedFollower() {
		alias, err := p.parseIdentifier()
		if err != nil {
			return err
		}
		*aliasOut = alias
		if hasAs && commentsOut != nil {
			*commentsOut = ast.Comments{Before: asBefore}
		}
	}
	return nil
}

// isReservedFollower guards against consuming a clause keyword
// (WHERE, JOIN, ON, ...) as a bare table alias; such keywords are
// lexed as token.KEYWORD, never token.IDENT, so no ident ever
// collides with them -- this is a defensive no-op hook for dialect
// keyword sets not in the base table.
func (p *Parser) isReservedFollower() bool { return false }

func (p *Parser) parseWindowClause() (*ast.Window, error) {
	p.advance() // WINDOW
	w := &ast.Window{}
	for {
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("AS"); err != nil {
			return nil, err
		}
		over, err := p.parseOverClause()
		if err != nil {
			return nil, err
		}
		w.Defs = append(w.Defs, &ast.WindowDef{Name: name, Spec: over})
		if p.cur().lex.Kind == token.COMMA {
			p.advance()
			continue
		}
		return w, nil
	}
}

func (p *Parser) parseFetchClause() (*ast.Fetch, error) {
	p.advance() // FETCH
	if !p.tryKeyword("FIRST") {
		if _, err := p.expectKeyword("NEXT"); err != nil {
			return nil, err
		}
	}
	count, err := p.parseExpr(precComparison)
	if err != nil {
		return nil, err
	}
	f := &ast.Fetch{Count: count}
	if p.tryKeyword("ROWS") {
		f.Unit = ast.FetchRows
	} else if _, err := p.expectKeyword("ROW"); err != nil {
		return nil, err
	}
	if p.tryKeyword("ONLY") {
		// default WithTies = false
	} else if p.tryKeyword("WITH") {
		if _, err := p.expectKeyword("TIES"); err != nil {
			return nil, err
		}
		f.WithTies = true
	}
	return f, nil
}

func (p *Parser) parseForClause() (*ast.For, error) {
	p.advance() // FOR
	f := &ast.For{}
	switch {
	case p.tryKeyword("UPDATE"):
		f.Mode = ast.ForUpdate
	case p.tryKeyword("SHARE"):
		f.Mode = ast.ForShare
	case p.tryKeyword("NO"):
		if _, err := p.expectKeyword("KEY"); err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("UPDATE"); err != nil {
			return nil, err
		}
		f.Mode = ast.ForNoKeyUpdate
	case p.tryKeyword("KEY"):
		if _, err := p.expectKeyword("SHARE"); err != nil {
			return nil, err
		}
		f.Mode = ast.ForKeyShare
	default:
		return nil, p.errorf("expected UPDATE/SHARE/NO KEY UPDATE/KEY SHARE after FOR")
	}
	return f, nil
}

func (p *Parser) parseValues() (ast.Node, error) {
	before := p.cur().leading
	p.advance() // VALUES
	v := &ast.Values{Comments: ast.Comments{Before: before}}
	for {
		tuple, err := p.parseTuple()
		if err != nil {
			return nil, err
		}
		v.Rows = append(v.Rows, tuple)
		if p.cur().lex.Kind == token.COMMA {
			p.advance()
			continue
		}
		return v, nil
	}
}

func (p *Parser) parseTuple() (*ast.Tuple, error) {
	before := p.cur().leading
	if _, err := p.expectKind(token.LPAREN, "("); err != nil {
		return nil, err
	}
	elems, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return &ast.Tuple{Comments: ast.Comments{Before: before}, Elements: elems}, nil
}
