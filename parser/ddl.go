package parser

import (
	"github.com/sqlforge/sqlforge/ast"
	"github.com/sqlforge/sqlforge/token"
)

func (p *Parser) parseCreate() (ast.Node, error) {
	before := p.cur().leading
	p.advance() // CREATE
	switch {
	case p.isKeyword("TEMPORARY") || p.isKeyword("TABLE"):
		return p.parseCreateTable(before)
	case p.isKeyword("UNIQUE"):
		return p.parseCreateIndex(before)
	case p.isKeyword("INDEX"):
		return p.parseCreateIndex(before)
	case p.isKeyword("SCHEMA"):
		return p.parseCreateSchema(before)
	case p.isKeyword("SEQUENCE"):
		return p.parseCreateSequence(before)
	default:
		return nil, p.errorf("unsupported CREATE statement: %q", p.cur().lex.Text)
	}
}

func (p *Parser) parseCreateTable(before []string) (ast.Node, error) {
	ct := &ast.CreateTable{Comments: ast.Comments{Before: before}}
	if p.tryKeyword("TEMPORARY") {
		ct.Temporary = true
	}
	if _, err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	if p.tryKeyword("IF") {
		if _, err := p.expectKeyword("NOT"); err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("EXISTS"); err != nil {
			return nil, err
		}
		ct.IfNotExists = true
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	ct.Name = name
	if _, err := p.expectKind(token.LPAREN, "("); err != nil {
		return nil, err
	}
	for {
		if p.isKeyword("PRIMARY") || p.isKeyword("UNIQUE") || p.isKeyword("CHECK") || p.isKeyword("FOREIGN") || p.isKeyword("CONSTRAINT") {
			tc, err := p.parseTableConstraint()
			if err != nil {
				return nil, err
			}
			ct.Constraints = append(ct.Constraints, tc)
		} else {
			col, err := p.parseColumnDef()
			if err != nil {
				return nil, err
			}
			ct.Columns = append(ct.Columns, col)
		}
		if p.cur().lex.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return ct, nil
}

func (p *Parser) parseColumnDef() (*ast.ColumnDef, error) {
	before := p.cur().leading
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	typ, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	col := &ast.ColumnDef{Comments: ast.Comments{Before: before}, Name: name, Type: typ}
	for {
		cc, ok, err := p.tryParseColumnConstraint()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		col.Constraints = append(col.Constraints, cc)
	}
	return col, nil
}

func (p *Parser) tryParseColumnConstraint() (*ast.ColumnConstraint, bool, error) {
	var name *ast.Identifier
	if p.tryKeyword("CONSTRAINT") {
		n, err := p.parseIdentifier()
		if err != nil {
			return nil, false, err
		}
		name = n
	}
	switch {
	case p.tryKeyword("NOT"):
		if _, err := p.expectKeyword("NULL"); err != nil {
			return nil, false, err
		}
		return &ast.ColumnConstraint{Kind: ast.ColumnNotNull, Name: name}, true, nil
	case p.tryKeyword("NULL"):
		return &ast.ColumnConstraint{Kind: ast.ColumnNull, Name: name}, true, nil
	case p.tryKeyword("DEFAULT"):
		expr, err := p.parseExpr(precComparison)
		if err != nil {
			return nil, false, err
		}
		return &ast.ColumnConstraint{Kind: ast.ColumnDefault, Name: name, Expr: expr}, true, nil
	case p.isKeyword("PRIMARY"):
		p.advance()
		if _, err := p.expectKeyword("KEY"); err != nil {
			return nil, false, err
		}
		return &ast.ColumnConstraint{Kind: ast.ColumnPrimaryKey, Name: name}, true, nil
	case p.tryKeyword("UNIQUE"):
		return &ast.ColumnConstraint{Kind: ast.ColumnUnique, Name: name}, true, nil
	case p.tryKeyword("CHECK"):
		if _, err := p.expectKind(token.LPAREN, "("); err != nil {
			return nil, false, err
		}
		expr, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, false, err
		}
		if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
			return nil, false, err
		}
		return &ast.ColumnConstraint{Kind: ast.ColumnCheck, Name: name, Expr: expr}, true, nil
	case p.tryKeyword("REFERENCES"):
		ref, err := p.parseReferenceDef()
		if err != nil {
			return nil, false, err
		}
		return &ast.ColumnConstraint{Kind: ast.ColumnReferences, Name: name, Reference: ref}, true, nil
	default:
		if name != nil {
			return nil, false, p.errorf("expected a constraint kind after CONSTRAINT name")
		}
		return nil, false, nil
	}
}

func (p *Parser) parseReferenceDef() (*ast.ReferenceDef, error) {
	table, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	r := &ast.ReferenceDef{Table: table}
	if p.cur().lex.Kind == token.LPAREN {
		p.advance()
		for {
			col, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			r.Columns = append(r.Columns, col)
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
	for {
		if p.tryKeyword("ON") {
			var action *string
			switch {
			case p.tryKeyword("DELETE"):
				action = &r.OnDelete
			case p.tryKeyword("UPDATE"):
				action = &r.OnUpdate
			default:
				return nil, p.errorf("expected DELETE/UPDATE after ON in REFERENCES clause")
			}
			*action = p.parseReferentialAction()
			continue
		}
		break
	}
	return r, nil
}

func (p *Parser) parseReferentialAction() string {
	switch {
	case p.tryKeyword("CASCADE"):
		return "CASCADE"
	case p.tryKeyword("RESTRICT"):
		return "RESTRICT"
	case p.tryKeyword("NO"):
		p.tryKeyword("ACTION")
		return "NO ACTION"
	case p.tryKeyword("SET"):
		if p.tryKeyword("NULL") {
			return "SET NULL"
		}
		p.tryKeyword("DEFAULT")
		return "SET DEFAULT"
	default:
		return ""
	}
}

func (p *Parser) parseTableConstraint() (*ast.TableConstraint, error) {
	before := p.cur().leading
	var name *ast.Identifier
	if p.tryKeyword("CONSTRAINT") {
		n, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		name = n
	}
	tc := &ast.TableConstraint{Comments: ast.Comments{Before: before}, Name: name}
	switch {
	case p.tryKeyword("PRIMARY"):
		if _, err := p.expectKeyword("KEY"); err != nil {
			return nil, err
		}
		tc.Kind = ast.TablePrimaryKey
		cols, err := p.parseParenIdentList()
		if err != nil {
			return nil, err
		}
		tc.Columns = cols
	case p.tryKeyword("UNIQUE"):
		tc.Kind = ast.TableUnique
		cols, err := p.parseParenIdentList()
		if err != nil {
			return nil, err
		}
		tc.Columns = cols
	case p.tryKeyword("CHECK"):
		tc.Kind = ast.TableCheck
		if _, err := p.expectKind(token.LPAREN, "("); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		tc.Expr = expr
		if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
			return nil, err
		}
	case p.tryKeyword("FOREIGN"):
		if _, err := p.expectKeyword("KEY"); err != nil {
			return nil, err
		}
		tc.Kind = ast.TableForeignKey
		cols, err := p.parseParenIdentList()
		if err != nil {
			return nil, err
		}
		tc.Columns = cols
		if _, err := p.expectKeyword("REFERENCES"); err != nil {
			return nil, err
		}
		ref, err := p.parseReferenceDef()
		if err != nil {
			return nil, err
		}
		tc.Reference = ref
	default:
		return nil, p.errorf("expected PRIMARY KEY/UNIQUE/CHECK/FOREIGN KEY, found %q", p.cur().lex.Text)
	}
	return tc, nil
}

func (p *Parser) parseParenIdentList() ([]*ast.Identifier, error) {
	if _, err := p.expectKind(token.LPAREN, "("); err != nil {
		return nil, err
	}
	var out []*ast.Identifier
	for {
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		out = append(out, id)
		if p.cur().lex.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Parser) parseCreateIndex(before []string) (ast.Node, error) {
	ci := &ast.CreateIndex{Comments: ast.Comments{Before: before}}
	if p.tryKeyword("UNIQUE") {
		ci.Unique = true
	}
	if _, err := p.expectKeyword("INDEX"); err != nil {
		return nil, err
	}
	if p.tryKeyword("CONCURRENTLY") {
		ci.Concurrently = true
	}
	if p.tryKeyword("IF") {
		if _, err := p.expectKeyword("NOT"); err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("EXISTS"); err != nil {
			return nil, err
		}
		ci.IfNotExists = true
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	ci.Name = name
	if _, err := p.expectKeyword("ON"); err != nil {
		return nil, err
	}
	table, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	ci.Table = table
	if p.tryKeyword("USING") {
		method, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		ci.Method = method.Name
	}
	if _, err := p.expectKind(token.LPAREN, "("); err != nil {
		return nil, err
	}
	for {
		expr, err := p.parseExpr(precComparison)
		if err != nil {
			return nil, err
		}
		ic := &ast.IndexColumn{Expr: expr}
		if p.tryKeyword("ASC") {
			ic.Dir = ast.Ascending
		} else if p.tryKeyword("DESC") {
			ic.Dir = ast.Descending
		}
		if p.tryKeyword("NULLS") {
			if p.tryKeyword("FIRST") {
				ic.Nulls = ast.NullsFirst
			} else if _, err := p.expectKeyword("LAST"); err != nil {
				return nil, err
			} else {
				ic.Nulls = ast.NullsLast
			}
		}
		ci.Columns = append(ci.Columns, ic)
		if p.cur().lex.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectKind(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	if p.tryKeyword("INCLUDE") {
		cols, err := p.parseParenIdentList()
		if err != nil {
			return nil, err
		}
		ci.Include = cols
	}
	if p.tryKeyword("WITH") {
		if _, err := p.expectKind(token.LPAREN, "("); err != nil {
			return nil, err
		}
		ci.With = map[string]string{}
		for {
			key, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectOperator("="); err != nil {
				return nil, err
			}
			val, err := p.parseExpr(precComparison)
			if err != nil {
				return nil, err
			}
			ci.With[key.Name] = exprText(val)
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
	if p.tryKeyword("TABLESPACE") {
		ts, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		ci.Tablespace = ts.Name
	}
	if p.isKeyword("WHERE") {
		p.advance()
		expr, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		ci.Where = expr
	}
	return ci, nil
}

func exprText(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Literal:
		return v.Value
	case *ast.Identifier:
		return v.Name
	default:
		return ""
	}
}

func (p *Parser) parseCreateSchema(before []string) (ast.Node, error) {
	p.advance() // SCHEMA
	cs := &ast.CreateSchema{Comments: ast.Comments{Before: before}}
	if p.tryKeyword("IF") {
		if _, err := p.expectKeyword("NOT"); err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("EXISTS"); err != nil {
			return nil, err
		}
		cs.IfNotExists = true
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	cs.Name = name
	return cs, nil
}

func (p *Parser) parseDrop() (ast.Node, error) {
	before := p.cur().leading
	p.advance() // DROP
	switch {
	case p.isKeyword("TABLE"):
		p.advance()
		return p.parseDropTail(before, func(ifExists bool, names []*ast.QualifiedName, cascade, restrict bool) ast.Node {
			return &ast.DropTable{Comments: ast.Comments{Before: before}, IfExists: ifExists, Names: names, Cascade: cascade, Restrict: restrict}
		})
	case p.isKeyword("INDEX"):
		p.advance()
		return p.parseDropTail(before, func(ifExists bool, names []*ast.QualifiedName, cascade, restrict bool) ast.Node {
			return &ast.DropIndex{Comments: ast.Comments{Before: before}, IfExists: ifExists, Names: names, Cascade: cascade, Restrict: restrict}
		})
	case p.isKeyword("SCHEMA"):
		p.advance()
		ifExists := p.tryDropIfExists()
		var names []*ast.Identifier
		for {
			n, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			names = append(names, n)
			if p.cur().lex.Kind == token.COMMA {
				p.advance()
				continue
			}
			break
		}
		cascade, restrict := p.tryDropCascadeRestrict()
		return &ast.DropSchema{Comments: ast.Comments{Before: before}, IfExists: ifExists, Names: names, Cascade: cascade, Restrict: restrict}, nil
	default:
		return nil, p.errorf("unsupported DROP statement: %q", p.cur().lex.Text)
	}
}

func (p *Parser) tryDropIfExists() bool {
	if p.tryKeyword("IF") {
		p.tryKeyword("EXISTS")
		return true
	}
	return false
}

func (p *Parser) tryDropCascadeRestrict() (cascade, restrict bool) {
	if p.tryKeyword("CASCADE") {
		return true, false
	}
	if p.tryKeyword("RESTRICT") {
		return false, true
	}
	return false, false
}

func (p *Parser) parseDropTail(before []string, build func(bool, []*ast.QualifiedName, bool, bool) ast.Node) (ast.Node, error) {
	ifExists := p.tryDropIfExists()
	var names []*ast.QualifiedName
	for {
		n, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		names = append(names, n)
		if p.cur().lex.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	cascade, restrict := p.tryDropCascadeRestrict()
	return build(ifExists, names, cascade, restrict), nil
}

func (p *Parser) parseAlter() (ast.Node, error) {
	before := p.cur().leading
	p.advance() // ALTER
	if p.isKeyword("SEQUENCE") {
		return p.parseAlterSequence(before)
	}
	if _, err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	at := &ast.AlterTable{Comments: ast.Comments{Before: before}}
	if p.tryKeyword("IF") {
		if _, err := p.expectKeyword("EXISTS"); err != nil {
			return nil, err
		}
		at.IfExists = true
	}
	if p.tryKeyword("ONLY") {
		at.Only = true
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	at.Name = name
	action, err := p.parseAlterTableAction()
	if err != nil {
		return nil, err
	}
	at.Action = action
	return at, nil
}

func (p *Parser) parseAlterTableAction() (ast.AlterTableAction, error) {
	switch {
	case p.tryKeyword("ADD"):
		if p.isKeyword("COLUMN") || p.cur().lex.Kind == token.IDENT {
			p.tryKeyword("COLUMN")
			col, err := p.parseColumnDef()
			if err != nil {
				return nil, err
			}
			return &ast.AddColumn{Column: col}, nil
		}
		tc, err := p.parseTableConstraint()
		if err != nil {
			return nil, err
		}
		return &ast.AddConstraint{Constraint: tc}, nil
	case p.tryKeyword("DROP"):
		switch {
		case p.tryKeyword("CONSTRAINT"):
			name, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			return &ast.DropConstraint{Name: name}, nil
		case p.tryKeyword("COLUMN"):
			name, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			return &ast.DropColumn{Name: name}, nil
		default:
			name, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			return &ast.DropColumn{Name: name}, nil
		}
	case p.tryKeyword("ALTER"):
		p.tryKeyword("COLUMN")
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if p.tryKeyword("SET") {
			if _, err := p.expectKeyword("DEFAULT"); err != nil {
				return nil, err
			}
			def, err := p.parseExpr(precComparison)
			if err != nil {
				return nil, err
			}
			return &ast.AlterColumnDefault{Column: name, Default: def}, nil
		}
		if _, err := p.expectKeyword("DROP"); err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("DEFAULT"); err != nil {
			return nil, err
		}
		return &ast.AlterColumnDefault{Column: name, Drop: true}, nil
	default:
		return nil, p.errorf("unsupported ALTER TABLE action: %q", p.cur().lex.Text)
	}
}

func (p *Parser) parseExplain() (ast.Node, error) {
	before := p.cur().leading
	p.advance() // EXPLAIN
	e := &ast.Explain{Comments: ast.Comments{Before: before}}
	if p.cur().lex.Kind == token.LPAREN {
		p.advance()
		for {
			opt := p.cur()
			if opt.lex.Kind != token.IDENT && opt.lex.Kind != token.KEYWORD {
				return nil, p.errorf("expected EXPLAIN option, found %q", opt.lex.Text)
			}
			p.advance()
			e.Options = append(e.Options, opt.lex.Text)
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
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	e.Stmt = stmt
	return e, nil
}

func (p *Parser) parseAnalyze() (ast.Node, error) {
	before := p.cur().leading
	p.advance() // ANALYZE
	a := &ast.Analyze{Comments: ast.Comments{Before: before}}
	if p.tryKeyword("VERBOSE") {
		a.Verbose = true
	}
	if p.cur().lex.Kind == token.IDENT {
		target, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		a.Target = target
		if p.cur().lex.Kind == token.LPAREN {
			cols, err := p.parseParenIdentList()
			if err != nil {
				return nil, err
			}
			a.Columns = cols
		}
	}
	return a, nil
}

func (p *Parser) parseCreateSequence(before []string) (ast.Node, error) {
	p.advance() // SEQUENCE
	cs := &ast.CreateSequence{Comments: ast.Comments{Before: before}}
	if p.tryKeyword("IF") {
		if _, err := p.expectKeyword("NOT"); err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("EXISTS"); err != nil {
			return nil, err
		}
		cs.IfNotExists = true
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	cs.Name = name
	opts, err := p.parseSequenceOptions()
	if err != nil {
		return nil, err
	}
	cs.Options = opts
	return cs, nil
}

func (p *Parser) parseAlterSequence(before []string) (ast.Node, error) {
	p.advance() // SEQUENCE
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	opts, err := p.parseSequenceOptions()
	if err != nil {
		return nil, err
	}
	return &ast.AlterSequence{Comments: ast.Comments{Before: before}, Name: name, Options: opts}, nil
}

func (p *Parser) parseSequenceOptions() (ast.SequenceOptions, error) {
	var opts ast.SequenceOptions
	for {
		switch {
		case p.tryKeyword("INCREMENT"):
			p.tryKeyword("BY")
			v, err := p.parseIntLiteral()
			if err != nil {
				return opts, err
			}
			opts.Increment = &v
		case p.tryKeyword("START"):
			p.tryKeyword("WITH")
			v, err := p.parseIntLiteral()
			if err != nil {
				return opts, err
			}
			opts.Start = &v
		case p.tryKeyword("MINVALUE"):
			v, err := p.parseIntLiteral()
			if err != nil {
				return opts, err
			}
			opts.MinValue = &v
		case p.tryKeyword("MAXVALUE"):
			v, err := p.parseIntLiteral()
			if err != nil {
				return opts, err
			}
			opts.MaxValue = &v
		case p.tryKeyword("CACHE"):
			v, err := p.parseIntLiteral()
			if err != nil {
				return opts, err
			}
			opts.Cache = &v
		case p.tryKeyword("CYCLE"):
			v := true
			opts.Cycle = &v
		case p.tryKeyword("NO"):
			if p.tryKeyword("CYCLE") {
				v := false
				opts.Cycle = &v
			}
		case p.tryKeyword("RESTART"):
			p.tryKeyword("WITH")
			v, err := p.parseIntLiteral()
			if err != nil {
				return opts, err
			}
			opts.RestartWith = &v
		case p.tryKeyword("OWNED"):
			if _, err := p.expectKeyword("BY"); err != nil {
				return opts, err
			}
			owner, err := p.parseQualifiedName()
			if err != nil {
				return opts, err
			}
			opts.OwnedBy = owner
		default:
			return opts, nil
		}
	}
}
