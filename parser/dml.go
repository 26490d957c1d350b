package parser

import (
	"github.com/sqlforge/sqlforge/ast"
	"github.com/sqlforge/sqlforge/token"
)

func (p *Parser) parseInsert(with *ast.With) (ast.Node, error) {
	before := p.cur().leading
	p.advance() // INSERT
	if _, err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	table, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	ic := &ast.InsertClause{Table: table}
	if p.cur().lex.Kind == token.LPAREN {
		p.advance()
		for {
			col, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			ic.Columns = append(ic.Columns, col)
			if p.cur().lex.Kind == token.COMMA {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
			return nil, err
		}
	}
	ins := &ast.Insert{Comments: ast.Comments{Before: before}, With: with, Insert: ic}
	switch {
	case p.isKeyword("SELECT") || p.isKeyword("WITH"):
		node, err := p.parseQueryRootInParens()
		if err != nil {
			return nil, err
		}
		ins.Query = node
	case p.isKeyword("VALUES"):
		node, err := p.parseValues()
		if err != nil {
			return nil, err
		}
		ins.Query = node.(ast.QueryRoot)
	case p.tryKeyword("DEFAULT"):
		if _, err := p.expectKeyword("VALUES"); err != nil {
			return nil, err
		}
		ins.Query = &ast.Values{}
	default:
		return nil, p.errorf("expected SELECT/VALUES/DEFAULT VALUES in INSERT, found %q", p.cur().lex.Text)
	}
	if p.isKeyword("RETURNING") {
		ret, err := p.parseReturning()
		if err != nil {
			return nil, err
		}
		ins.Returning = ret
	}
	return ins, nil
}

func (p *Parser) parseReturning() (*ast.Returning, error) {
	p.advance() // RETURNING
	items, err := p.parseSelectItems()
	if err != nil {
		return nil, err
	}
	return &ast.Returning{Items: items}, nil
}

func (p *Parser) parseUpdate(with *ast.With) (ast.Node, error) {
	before := p.cur().leading
	p.advance() // UPDATE
	qn, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	tn := &ast.TableName{Name: qn}
	if err := p.parseSourceAlias(&tn.Alias, &tn.AliasComments); err != nil {
		return nil, err
	}
	u := &ast.Update{Comments: ast.Comments{Before: before}, With: with, Update: &ast.UpdateClause{Table: tn}}
	if _, err := p.expectKeyword("SET"); err != nil {
		return nil, err
	}
	set, err := p.parseSetClause()
	if err != nil {
		return nil, err
	}
	u.Set = set
	if p.isKeyword("FROM") {
		from, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		u.From = from
	}
	if p.isKeyword("WHERE") {
		p.advance()
		cond, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		u.Where = &ast.Where{Condition: cond}
	}
	if p.isKeyword("RETURNING") {
		ret, err := p.parseReturning()
		if err != nil {
			return nil, err
		}
		u.Returning = ret
	}
	return u, nil
}

func (p *Parser) parseSetClause() (*ast.Set, error) {
	s := &ast.Set{}
	for {
		col, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOperator("="); err != nil {
			return nil, err
		}
		val, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		s.Assignments = append(s.Assignments, &ast.Assignment{Column: col, Value: val})
		if p.cur().lex.Kind == token.COMMA {
			p.advance()
			continue
		}
		return s, nil
	}
}

func (p *Parser) expectOperator(op string) (item, error) {
	if !p.isOperator(op) {
		return item{}, p.errorf("expected %q, found %q", op, p.cur().lex.Text)
	}
	return p.advance(), nil
}

func (p *Parser) parseDelete(with *ast.With) (ast.Node, error) {
	before := p.cur().leading
	p.advance() // DELETE
	if _, err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	qn, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	tn := &ast.TableName{Name: qn}
	if err := p.parseSourceAlias(&tn.Alias, &tn.AliasComments); err != nil {
		return nil, err
	}
	d := &ast.Delete{Comments: ast.Comments{Before: before}, With: with, Delete: &ast.DeleteClause{Table: tn}}
	if p.isKeyword("USING") {
		p.advance()
		src, err := p.parseSource()
		if err != nil {
			return nil, err
		}
		d.Using = &ast.Using{Source: src}
	}
	if p.isKeyword("WHERE") {
		p.advance()
		cond, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		d.Where = &ast.Where{Condition: cond}
	}
	if p.isKeyword("RETURNING") {
		ret, err := p.parseReturning()
		if err != nil {
			return nil, err
		}
		d.Returning = ret
	}
	return d, nil
}

func (p *Parser) parseMerge(with *ast.With) (ast.Node, error) {
	before := p.cur().leading
	p.advance() // MERGE
	if _, err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	targetName, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	target := &ast.TableName{Name: targetName}
	if err := p.parseSourceAlias(&target.Alias, &target.AliasComments); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("USING"); err != nil {
		return nil, err
	}
	source, err := p.parseSource()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("ON"); err != nil {
		return nil, err
	}
	on, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	m := &ast.Merge{Comments: ast.Comments{Before: before}, With: with, Target: target, Source: source, On: on}
	for p.isKeyword("WHEN") {
		when, err := p.parseMergeWhen()
		if err != nil {
			return nil, err
		}
		m.Whens = append(m.Whens, when)
	}
	return m, nil
}

func (p *Parser) parseMergeWhen() (*ast.MergeWhenClause, error) {
	before := p.cur().leading
	p.advance() // WHEN
	w := &ast.MergeWhenClause{Comments: ast.Comments{Before: before}}
	switch {
	case p.tryKeyword("MATCHED"):
		w.When = ast.WhenMatched
	case p.tryKeyword("NOT"):
		if _, err := p.expectKeyword("MATCHED"); err != nil {
			return nil, err
		}
		if p.tryKeyword("BY") {
			if p.tryKeyword("SOURCE") {
				w.When = ast.WhenNotMatchedBySource
			} else if _, err := p.expectKeyword("TARGET"); err != nil {
				return nil, err
			} else {
				w.When = ast.WhenNotMatchedByTarget
			}
		} else {
			w.When = ast.WhenNotMatched
		}
	default:
		return nil, p.errorf("expected MATCHED/NOT MATCHED, found %q", p.cur().lex.Text)
	}
	if p.tryKeyword("AND") {
		cond, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		w.AndCond = cond
	}
	thenBefore := p.cur().leading
	if _, err := p.expectKeyword("THEN"); err != nil {
		return nil, err
	}
	w.ThenComments = ast.Comments{Before: thenBefore}
	switch {
	case p.tryKeyword("UPDATE"):
		w.Action = ast.MergeUpdate
		if _, err := p.expectKeyword("SET"); err != nil {
			return nil, err
		}
		set, err := p.parseSetClause()
		if err != nil {
			return nil, err
		}
		w.Set = set
	case p.tryKeyword("DELETE"):
		w.Action = ast.MergeDelete
	case p.isKeyword("INSERT"):
		p.advance()
		if p.tryKeyword("DEFAULT") {
			if _, err := p.expectKeyword("VALUES"); err != nil {
				return nil, err
			}
			w.Action = ast.MergeInsertDefaultValues
			break
		}
		w.Action = ast.MergeInsert
		if p.cur().lex.Kind == token.LPAREN {
			p.advance()
			for {
				col, err := p.parseIdentifier()
				if err != nil {
					return nil, err
				}
				w.Columns = append(w.Columns, col)
				if p.cur().lex.Kind == token.COMMA {
					p.advance()
					continue
				}
				break
			}
			if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
				return nil, err
			}
		}
		if _, err := p.expectKeyword("VALUES"); err != nil {
			return nil, err
		}
		if _, err := p.expectKind(token.LPAREN, "("); err != nil {
			return nil, err
		}
		vals, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		w.Values = vals
		if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
			return nil, err
		}
	case p.tryKeyword("DO"):
		if _, err := p.expectKeyword("NOTHING"); err != nil {
			return nil, err
		}
		w.Action = ast.MergeDoNothing
	default:
		return nil, p.errorf("expected UPDATE/DELETE/INSERT/DO NOTHING after THEN, found %q", p.cur().lex.Text)
	}
	return w, nil
}
