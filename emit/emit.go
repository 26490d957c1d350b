package emit

import (
	"strconv"
	"strings"

	"github.com/sqlforge/sqlforge/ast"
	"github.com/sqlforge/sqlforge/dialect"
)

// Emitter walks an ast.Node tree, producing a Token stream shaped by a
// dialect.Config. Nothing about Emitter is safe to share across
// goroutines mid-walk (spec.md section 5): each caller should own a
// fresh Emitter per emit.
type Emitter struct {
	cfg        dialect.Config
	tokens     []Token
	paramIndex int

	// joinConditionContexts is the only mutable per-walk state besides
	// the output buffer and parameter counter (spec.md section 5,
	// "Shared resources"): a stack of alias/table-name -> declaration
	// index maps, pushed on FROM-clause entry and popped on every exit
	// path, including early returns, via defer.
	joinConditionContexts []map[string]int
}

// New returns an Emitter configured by cfg.
func New(cfg dialect.Config) *Emitter {
	return &Emitter{cfg: cfg}
}

func (e *Emitter) emit(t Token) { e.tokens = append(e.tokens, t) }

// Emit walks root and returns the finished token stream.
func Emit(root ast.Node, cfg dialect.Config) ([]Token, error) {
	e := New(cfg)
	if err := e.emitNode(root); err != nil {
		return nil, err
	}
	return e.tokens, nil
}

func (e *Emitter) emitNode(n ast.Node) error {
	switch v := n.(type) {
	case *ast.SimpleSelect:
		return e.emitSimpleSelect(v)
	case *ast.BinarySelect:
		return e.emitBinarySelect(v)
	case *ast.Values:
		return e.emitValues(v)
	case *ast.Insert:
		return e.emitInsert(v)
	case *ast.Update:
		return e.emitUpdate(v)
	case *ast.Delete:
		return e.emitDelete(v)
	case *ast.Merge:
		return e.emitMerge(v)
	case *ast.CreateTable:
		return e.emitCreateTable(v)
	case *ast.CreateIndex:
		return e.emitCreateIndex(v)
	case *ast.DropTable:
		return e.emitDropTable(v)
	case *ast.DropIndex:
		return e.emitDropIndex(v)
	case *ast.DropSchema:
		return e.emitDropSchema(v)
	case *ast.CreateSchema:
		return e.emitCreateSchema(v)
	case *ast.AlterTable:
		return e.emitAlterTable(v)
	case *ast.Explain:
		return e.emitExplain(v)
	case *ast.Analyze:
		return e.emitAnalyze(v)
	case *ast.CreateSequence:
		return e.emitCreateSequence(v)
	case *ast.AlterSequence:
		return e.emitAlterSequence(v)
	case ast.Expr:
		return e.emitExpr(v)
	default:
		return nil
	}
}

func (e *Emitter) emitQueryRoot(q ast.QueryRoot) error {
	return e.emitNode(q)
}

// --- identifiers, literals, qualified names ---

func (e *Emitter) identifierText(name string) string {
	if name == "*" {
		return "*"
	}
	return e.cfg.IdentifierEscape.Start + name + e.cfg.IdentifierEscape.End
}

func (e *Emitter) emitIdentifier(id *ast.Identifier) {
	if id == nil {
		return
	}
	hasComments := !id.Comments.IsEmpty()
	if hasComments {
		e.emit(openContainer(IdentifierString))
	}
	e.emitBeforeAfter(id.Before, id.After, func() {
		e.emit(val(e.identifierText(id.Name)))
	})
	if hasComments {
		e.emit(closeContainer(IdentifierString))
	}
}

func (e *Emitter) emitQualifiedName(q *ast.QualifiedName) {
	e.emitBeforeAfter(q.Before, q.After, func() {
		for _, ns := range q.Namespaces {
			e.emit(val(e.identifierText(ns.Name)))
			e.emit(dot())
		}
		e.emit(val(e.identifierText(q.Name.Name)))
	})
}

func (e *Emitter) emitLiteral(l *ast.Literal) {
	hasComments := !l.Comments.IsEmpty()
	if hasComments {
		e.emit(openContainer(LiteralValue))
	}
	e.emitBeforeAfter(l.Before, l.After, func() {
		if l.IsString {
			e.emit(val("'" + strings.ReplaceAll(l.Value, "'", "''") + "'"))
		} else {
			e.emit(val(l.Value))
		}
	})
	if hasComments {
		e.emit(closeContainer(LiteralValue))
	}
}

// --- parameters ---

func (e *Emitter) emitParameter(p *ast.Parameter) {
	e.paramIndex++
	idx := e.paramIndex
	var text string
	switch e.cfg.ParameterStyle {
	case dialect.Named:
		name := strings.TrimLeft(p.Name, ":@$")
		text = e.cfg.ParameterSymbol.Prefix + name + e.cfg.ParameterSymbol.Suffix
	case dialect.Indexed:
		text = e.cfg.ParameterSymbol.Prefix + strconv.Itoa(idx) + e.cfg.ParameterSymbol.Suffix
	default: // dialect.Anonymous
		text = e.cfg.ParameterSymbol.Prefix + e.cfg.ParameterSymbol.Suffix
	}
	e.emitBeforeAfter(p.Before, p.After, func() {
		e.emit(Token{Kind: ParameterTok, Text: text})
	})
}

// --- value expressions ---

func (e *Emitter) emitExpr(expr ast.Expr) error {
	switch v := expr.(type) {
	case *ast.Literal:
		e.emitLiteral(v)
	case *ast.Identifier:
		e.emitIdentifier(v)
	case *ast.QualifiedName:
		e.emitQualifiedName(v)
	case *ast.Parameter:
		e.emitParameter(v)
	case *ast.FunctionCall:
		return e.emitFunctionCall(v)
	case *ast.Unary:
		return e.emitUnary(v)
	case *ast.Binary:
		return e.emitBinary(v)
	case *ast.Paren:
		return e.emitParen(v)
	case *ast.Cast:
		return e.emitCast(v)
	case *ast.Case:
		return e.emitCase(v)
	case *ast.Between:
		return e.emitBetween(v)
	case *ast.Tuple:
		return e.emitTuple(v)
	case *ast.ValueList:
		return e.emitValueList(v)
	case *ast.InlineQuery:
		return e.emitInlineQuery(v)
	case *ast.SimpleSelect:
		return e.emitSimpleSelect(v)
	case *ast.Array:
		return e.emitArray(v)
	case *ast.ArrayQuery:
		return e.emitArrayQuery(v)
	case *ast.ArraySlice:
		return e.emitArraySlice(v)
	case *ast.ArrayIndex:
		return e.emitArrayIndex(v)
	default:
		return nil
	}
	return nil
}

func (e *Emitter) emitUnary(u *ast.Unary) error {
	return e.emitBeforeAfterErr(u.Before, u.After, func() error {
		switch u.Op {
		case "NOT":
			e.emit(kw("NOT"))
			e.emit(space())
		case "EXISTS":
			e.emit(kw("EXISTS"))
			return e.emitExpr(u.Operand)
		default:
			e.emit(op(u.Op))
		}
		return e.emitExpr(u.Operand)
	})
}

func (e *Emitter) emitBinary(b *ast.Binary) error {
	return e.emitBeforeAfterErr(b.Before, b.After, func() error {
		if err := e.emitExpr(b.Left); err != nil {
			return err
		}
		e.emit(space())
		if isWordOperator(b.Op) {
			e.emit(kw(b.Op))
		} else {
			e.emit(op(b.Op))
		}
		e.emit(space())
		return e.emitExpr(b.Right)
	})
}

func isWordOperator(op string) bool {
	switch strings.ToUpper(op) {
	case "AND", "OR", "LIKE", "NOT LIKE", "IN", "NOT IN", "IS", "IS NOT":
		return true
	default:
		return false
	}
}

func (e *Emitter) emitParen(p *ast.Paren) error {
	e.emit(openContainer(ParenExpression))
	e.emit(paren("("))
	for _, c := range p.Before {
		e.emitBlockComment(c)
	}
	if err := e.emitExpr(p.Inner); err != nil {
		return err
	}
	for _, c := range p.After {
		e.emitBlockComment(c)
	}
	e.emit(paren(")"))
	e.emit(closeContainer(ParenExpression))
	return nil
}

func (e *Emitter) emitCast(c *ast.Cast) error {
	return e.emitBeforeAfterErr(c.Before, c.After, func() error {
		if e.cfg.CastStyle == dialect.CastPostgres {
			if err := e.emitExpr(c.Input); err != nil {
				return err
			}
			e.emit(op("::"))
			e.emit(val(c.Type.Name))
			e.emitTypeArgs(c.Type)
			return nil
		}
		e.emit(kw("cast"))
		e.emit(paren("("))
		if err := e.emitExpr(c.Input); err != nil {
			return err
		}
		e.emit(space())
		e.emit(kw("as"))
		e.emit(space())
		e.emit(val(c.Type.Name))
		e.emitTypeArgs(c.Type)
		e.emit(paren(")"))
		return nil
	})
}

func (e *Emitter) emitTypeArgs(t *ast.TypeName) {
	if len(t.Args) == 0 {
		return
	}
	e.emit(paren("("))
	for i, a := range t.Args {
		if i > 0 {
			e.emit(argSplitter())
		}
		e.emitExpr(a)
	}
	e.emit(paren(")"))
}

// emitBeforeAfterErr is emitBeforeAfter for bodies that can fail.
func (e *Emitter) emitBeforeAfterErr(before, after []string, body func() error) error {
	e.emitComments(before, true)
	if err := body(); err != nil {
		return err
	}
	e.emitComments(after, false)
	return nil
}

func (e *Emitter) emitBetween(b *ast.Between) error {
	if err := e.emitExpr(b.Value); err != nil {
		return err
	}
	e.emit(space())
	if b.Neg {
		e.emit(kw("NOT"))
		e.emit(space())
	}
	e.emit(kw("BETWEEN"))
	e.emit(space())
	if err := e.emitExpr(b.Lower); err != nil {
		return err
	}
	e.emit(space())
	e.emit(kw("AND"))
	e.emit(space())
	return e.emitExpr(b.Upper)
}

func (e *Emitter) emitTuple(t *ast.Tuple) error {
	e.emit(openContainer(TupleClause))
	e.emit(paren("("))
	multiline := false
	for _, el := range t.Elements {
		if hasLeadingComments(el) {
			multiline = true
			break
		}
	}
	for i, el := range t.Elements {
		if i > 0 {
			e.emit(argSplitter())
		}
		if multiline {
			e.emit(commentNewline())
		}
		if err := e.emitExpr(el); err != nil {
			return err
		}
	}
	e.emit(paren(")"))
	e.emit(closeContainer(TupleClause))
	return nil
}

func hasLeadingComments(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.Literal:
		return len(v.Before) > 0
	case *ast.Identifier:
		return len(v.Before) > 0
	case *ast.QualifiedName:
		return len(v.Before) > 0
	case *ast.Binary:
		return len(v.Before) > 0
	case *ast.Paren:
		return len(v.Before) > 0
	}
	return false
}

func (e *Emitter) emitValueList(v *ast.ValueList) error {
	for i, el := range v.Elements {
		if i > 0 {
			e.emit(argSplitter())
		}
		if err := e.emitExpr(el); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) emitInlineQuery(q *ast.InlineQuery) error {
	e.emit(paren("("))
	if err := e.emitQueryRoot(q.Query); err != nil {
		return err
	}
	e.emit(paren(")"))
	return nil
}

func (e *Emitter) emitArray(a *ast.Array) error {
	e.emit(openContainer(ArrayClause))
	e.emit(kw("ARRAY"))
	e.emit(Token{Kind: ParenTok, Text: "["})
	for i, el := range a.Elements {
		if i > 0 {
			e.emit(argSplitter())
		}
		if err := e.emitExpr(el); err != nil {
			return err
		}
	}
	e.emit(Token{Kind: ParenTok, Text: "]"})
	e.emit(closeContainer(ArrayClause))
	return nil
}

func (e *Emitter) emitArrayQuery(a *ast.ArrayQuery) error {
	e.emit(kw("ARRAY"))
	e.emit(paren("("))
	if err := e.emitQueryRoot(a.Query); err != nil {
		return err
	}
	e.emit(paren(")"))
	return nil
}

func (e *Emitter) emitArraySlice(a *ast.ArraySlice) error {
	if err := e.emitExpr(a.Array); err != nil {
		return err
	}
	e.emit(Token{Kind: ParenTok, Text: "["})
	if err := e.emitExpr(a.Lower); err != nil {
		return err
	}
	e.emit(op(":"))
	if err := e.emitExpr(a.Upper); err != nil {
		return err
	}
	e.emit(Token{Kind: ParenTok, Text: "]"})
	return nil
}

func (e *Emitter) emitArrayIndex(a *ast.ArrayIndex) error {
	if err := e.emitExpr(a.Array); err != nil {
		return err
	}
	e.emit(Token{Kind: ParenTok, Text: "["})
	if err := e.emitExpr(a.Index); err != nil {
		return err
	}
	e.emit(Token{Kind: ParenTok, Text: "]"})
	return nil
}
