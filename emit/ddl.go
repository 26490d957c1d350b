package emit

import (
	"sort"
	"strconv"

	"github.com/sqlforge/sqlforge/ast"
	"github.com/sqlforge/sqlforge/dialect"
)

func (e *Emitter) emitConstraintName(name *ast.Identifier, kind func()) {
	if name == nil {
		kind()
		return
	}
	if e.cfg.ConstraintStyle == dialect.ConstraintMySQL {
		kind()
		e.emit(space())
		e.emitIdentifier(name)
		return
	}
	e.emit(kw("CONSTRAINT"))
	e.emit(space())
	e.emitIdentifier(name)
	e.emit(space())
	kind()
}

func (e *Emitter) emitReferenceDef(r *ast.ReferenceDef) error {
	e.emit(kw("REFERENCES"))
	e.emit(space())
	e.emitQualifiedName(r.Table)
	if len(r.Columns) > 0 {
		e.emit(space())
		e.emit(paren("("))
		for i, c := range r.Columns {
			if i > 0 {
				e.emit(argSplitter())
			}
			e.emitIdentifier(c)
		}
		e.emit(paren(")"))
	}
	if r.OnDelete != "" {
		e.emit(space())
		e.emit(kw("ON"))
		e.emit(space())
		e.emit(kw("DELETE"))
		e.emit(space())
		e.emit(kw(r.OnDelete))
	}
	if r.OnUpdate != "" {
		e.emit(space())
		e.emit(kw("ON"))
		e.emit(space())
		e.emit(kw("UPDATE"))
		e.emit(space())
		e.emit(kw(r.OnUpdate))
	}
	return nil
}

func (e *Emitter) emitColumnConstraint(c *ast.ColumnConstraint) error {
	var err error
	e.emitConstraintName(c.Name, func() {
		switch c.Kind {
		case ast.ColumnNotNull:
			e.emit(kw("NOT"))
			e.emit(space())
			e.emit(kw("NULL"))
		case ast.ColumnNull:
			e.emit(kw("NULL"))
		case ast.ColumnDefault:
			e.emit(kw("DEFAULT"))
			e.emit(space())
			err = e.emitExpr(c.Expr)
		case ast.ColumnPrimaryKey:
			e.emit(kw("PRIMARY"))
			e.emit(space())
			e.emit(kw("KEY"))
		case ast.ColumnUnique:
			e.emit(kw("UNIQUE"))
		case ast.ColumnCheck:
			e.emit(kw("CHECK"))
			e.emit(space())
			e.emit(paren("("))
			err = e.emitExpr(c.Expr)
			e.emit(paren(")"))
		case ast.ColumnReferences:
			err = e.emitReferenceDef(c.Reference)
		}
	})
	return err
}

func (e *Emitter) emitColumnDef(c *ast.ColumnDef) error {
	e.emitIdentifier(c.Name)
	e.emit(space())
	e.emitTypeArgs0(c.Type)
	for _, cons := range c.Constraints {
		e.emit(space())
		if err := e.emitColumnConstraint(cons); err != nil {
			return err
		}
	}
	return nil
}

// emitTypeArgs0 renders a bare type name with its args, without the
// expression context emitTypeArgs assumes (spec.md section 4.4).
func (e *Emitter) emitTypeArgs0(t *ast.TypeName) {
	e.emit(val(t.Name))
	e.emitTypeArgs(t)
}

func (e *Emitter) emitTableConstraint(c *ast.TableConstraint) error {
	var err error
	e.emitConstraintName(c.Name, func() {
		switch c.Kind {
		case ast.TablePrimaryKey:
			e.emit(kw("PRIMARY"))
			e.emit(space())
			e.emit(kw("KEY"))
			e.emitParenIdents(c.Columns)
		case ast.TableUnique:
			e.emit(kw("UNIQUE"))
			e.emitParenIdents(c.Columns)
		case ast.TableCheck:
			e.emit(kw("CHECK"))
			e.emit(space())
			e.emit(paren("("))
			err = e.emitExpr(c.Expr)
			e.emit(paren(")"))
		case ast.TableForeignKey:
			e.emit(kw("FOREIGN"))
			e.emit(space())
			e.emit(kw("KEY"))
			e.emitParenIdents(c.Columns)
			e.emit(space())
			err = e.emitReferenceDef(c.Reference)
		}
	})
	return err
}

func (e *Emitter) emitParenIdents(cols []*ast.Identifier) {
	e.emit(space())
	e.emit(paren("("))
	for i, c := range cols {
		if i > 0 {
			e.emit(argSplitter())
		}
		e.emitIdentifier(c)
	}
	e.emit(paren(")"))
}

func (e *Emitter) emitCreateTable(c *ast.CreateTable) error {
	e.emit(openContainer(DDLStatement))
	e.emitComments(c.Before, true)
	e.emit(kw("CREATE"))
	e.emit(space())
	if c.Temporary {
		e.emit(kw("TEMPORARY"))
		e.emit(space())
	}
	e.emit(kw("TABLE"))
	e.emit(space())
	if c.IfNotExists {
		e.emit(kw("IF"))
		e.emit(space())
		e.emit(kw("NOT"))
		e.emit(space())
		e.emit(kw("EXISTS"))
		e.emit(space())
	}
	e.emitQualifiedName(c.Name)
	e.emit(space())
	e.emit(paren("("))
	n := 0
	for _, col := range c.Columns {
		if n > 0 {
			e.emit(argSplitter())
		}
		if err := e.emitColumnDef(col); err != nil {
			return err
		}
		n++
	}
	for _, cons := range c.Constraints {
		if n > 0 {
			e.emit(argSplitter())
		}
		if err := e.emitTableConstraint(cons); err != nil {
			return err
		}
		n++
	}
	e.emit(paren(")"))
	e.emitComments(c.After, false)
	e.emit(closeContainer(DDLStatement))
	return nil
}

func (e *Emitter) emitCreateIndex(c *ast.CreateIndex) error {
	e.emit(openContainer(DDLStatement))
	e.emitComments(c.Before, true)
	e.emit(kw("CREATE"))
	e.emit(space())
	if c.Unique {
		e.emit(kw("UNIQUE"))
		e.emit(space())
	}
	e.emit(kw("INDEX"))
	e.emit(space())
	if c.Concurrently {
		e.emit(kw("CONCURRENTLY"))
		e.emit(space())
	}
	if c.IfNotExists {
		e.emit(kw("IF"))
		e.emit(space())
		e.emit(kw("NOT"))
		e.emit(space())
		e.emit(kw("EXISTS"))
		e.emit(space())
	}
	e.emitIdentifier(c.Name)
	e.emit(space())
	e.emit(kw("ON"))
	e.emit(space())
	e.emitQualifiedName(c.Table)
	if c.Method != "" {
		e.emit(space())
		e.emit(kw("USING"))
		e.emit(space())
		e.emit(val(c.Method))
	}
	e.emit(space())
	e.emit(paren("("))
	for i, col := range c.Columns {
		if i > 0 {
			e.emit(argSplitter())
		}
		if err := e.emitExpr(col.Expr); err != nil {
			return err
		}
		switch col.Dir {
		case ast.Ascending:
			e.emit(space())
			e.emit(kw("ASC"))
		case ast.Descending:
			e.emit(space())
			e.emit(kw("DESC"))
		}
		switch col.Nulls {
		case ast.NullsFirst:
			e.emit(space())
			e.emit(kw("NULLS"))
			e.emit(space())
			e.emit(kw("FIRST"))
		case ast.NullsLast:
			e.emit(space())
			e.emit(kw("NULLS"))
			e.emit(space())
			e.emit(kw("LAST"))
		}
	}
	e.emit(paren(")"))
	if len(c.Include) > 0 {
		e.emit(space())
		e.emit(kw("INCLUDE"))
		e.emitParenIdents(c.Include)
	}
	if len(c.With) > 0 {
		e.emit(space())
		e.emit(kw("WITH"))
		e.emit(space())
		e.emit(paren("("))
		keys := make([]string, 0, len(c.With))
		for k := range c.With {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i > 0 {
				e.emit(argSplitter())
			}
			e.emit(val(k))
			e.emit(op("="))
			e.emit(val(c.With[k]))
		}
		e.emit(paren(")"))
	}
	if c.Tablespace != "" {
		e.emit(space())
		e.emit(kw("TABLESPACE"))
		e.emit(space())
		e.emit(val(c.Tablespace))
	}
	if c.Where != nil {
		e.emit(space())
		e.emit(kw("WHERE"))
		e.emit(space())
		if err := e.emitExpr(c.Where); err != nil {
			return err
		}
	}
	e.emitComments(c.After, false)
	e.emit(closeContainer(DDLStatement))
	return nil
}

func (e *Emitter) emitDropTail(kind string, ifExists bool, names []*ast.QualifiedName, cascade, restrict bool) {
	e.emit(kw("DROP"))
	e.emit(space())
	e.emit(kw(kind))
	e.emit(space())
	if ifExists {
		e.emit(kw("IF"))
		e.emit(space())
		e.emit(kw("EXISTS"))
		e.emit(space())
	}
	for i, n := range names {
		if i > 0 {
			e.emit(argSplitter())
		}
		e.emitQualifiedName(n)
	}
	if cascade {
		e.emit(space())
		e.emit(kw("CASCADE"))
	}
	if restrict {
		e.emit(space())
		e.emit(kw("RESTRICT"))
	}
}

func (e *Emitter) emitDropTable(d *ast.DropTable) error {
	e.emit(openContainer(DDLStatement))
	e.emitComments(d.Before, true)
	e.emitDropTail("TABLE", d.IfExists, d.Names, d.Cascade, d.Restrict)
	e.emitComments(d.After, false)
	e.emit(closeContainer(DDLStatement))
	return nil
}

func (e *Emitter) emitDropIndex(d *ast.DropIndex) error {
	e.emit(openContainer(DDLStatement))
	e.emitComments(d.Before, true)
	e.emitDropTail("INDEX", d.IfExists, d.Names, d.Cascade, d.Restrict)
	e.emitComments(d.After, false)
	e.emit(closeContainer(DDLStatement))
	return nil
}

func (e *Emitter) emitDropSchema(d *ast.DropSchema) error {
	e.emit(openContainer(DDLStatement))
	e.emitComments(d.Before, true)
	e.emit(kw("DROP"))
	e.emit(space())
	e.emit(kw("SCHEMA"))
	e.emit(space())
	if d.IfExists {
		e.emit(kw("IF"))
		e.emit(space())
		e.emit(kw("EXISTS"))
		e.emit(space())
	}
	for i, n := range d.Names {
		if i > 0 {
			e.emit(argSplitter())
		}
		e.emitIdentifier(n)
	}
	if d.Cascade {
		e.emit(space())
		e.emit(kw("CASCADE"))
	}
	if d.Restrict {
		e.emit(space())
		e.emit(kw("RESTRICT"))
	}
	e.emitComments(d.After, false)
	e.emit(closeContainer(DDLStatement))
	return nil
}

func (e *Emitter) emitCreateSchema(c *ast.CreateSchema) error {
	e.emit(openContainer(DDLStatement))
	e.emitComments(c.Before, true)
	e.emit(kw("CREATE"))
	e.emit(space())
	e.emit(kw("SCHEMA"))
	e.emit(space())
	if c.IfNotExists {
		e.emit(kw("IF"))
		e.emit(space())
		e.emit(kw("NOT"))
		e.emit(space())
		e.emit(kw("EXISTS"))
		e.emit(space())
	}
	e.emitIdentifier(c.Name)
	e.emitComments(c.After, false)
	e.emit(closeContainer(DDLStatement))
	return nil
}

func (e *Emitter) emitAlterTableAction(a ast.AlterTableAction) error {
	switch v := a.(type) {
	case *ast.AddConstraint:
		e.emit(kw("ADD"))
		e.emit(space())
		return e.emitTableConstraint(v.Constraint)
	case *ast.DropConstraint:
		e.emit(kw("DROP"))
		e.emit(space())
		e.emit(kw("CONSTRAINT"))
		e.emit(space())
		e.emitIdentifier(v.Name)
	case *ast.DropColumn:
		e.emit(kw("DROP"))
		e.emit(space())
		e.emit(kw("COLUMN"))
		e.emit(space())
		e.emitIdentifier(v.Name)
	case *ast.AddColumn:
		e.emit(kw("ADD"))
		e.emit(space())
		e.emit(kw("COLUMN"))
		e.emit(space())
		return e.emitColumnDef(v.Column)
	case *ast.AlterColumnDefault:
		e.emit(kw("ALTER"))
		e.emit(space())
		e.emit(kw("COLUMN"))
		e.emit(space())
		e.emitIdentifier(v.Column)
		e.emit(space())
		if v.Drop {
			e.emit(kw("DROP"))
			e.emit(space())
			e.emit(kw("DEFAULT"))
			return nil
		}
		e.emit(kw("SET"))
		e.emit(space())
		e.emit(kw("DEFAULT"))
		e.emit(space())
		return e.emitExpr(v.Default)
	}
	return nil
}

func (e *Emitter) emitAlterTable(a *ast.AlterTable) error {
	e.emit(openContainer(DDLStatement))
	e.emitComments(a.Before, true)
	e.emit(kw("ALTER"))
	e.emit(space())
	e.emit(kw("TABLE"))
	e.emit(space())
	if a.IfExists {
		e.emit(kw("IF"))
		e.emit(space())
		e.emit(kw("EXISTS"))
		e.emit(space())
	}
	if a.Only {
		e.emit(kw("ONLY"))
		e.emit(space())
	}
	e.emitQualifiedName(a.Name)
	e.emit(space())
	if err := e.emitAlterTableAction(a.Action); err != nil {
		return err
	}
	e.emitComments(a.After, false)
	e.emit(closeContainer(DDLStatement))
	return nil
}

func (e *Emitter) emitExplain(ex *ast.Explain) error {
	e.emit(openContainer(DDLStatement))
	e.emitComments(ex.Before, true)
	e.emit(kw("EXPLAIN"))
	if len(ex.Options) > 0 {
		e.emit(space())
		e.emit(paren("("))
		for i, o := range ex.Options {
			if i > 0 {
				e.emit(argSplitter())
			}
			e.emit(val(o))
		}
		e.emit(paren(")"))
	}
	e.emit(space())
	if err := e.emitNode(ex.Stmt); err != nil {
		return err
	}
	e.emitComments(ex.After, false)
	e.emit(closeContainer(DDLStatement))
	return nil
}

func (e *Emitter) emitAnalyze(a *ast.Analyze) error {
	e.emit(openContainer(DDLStatement))
	e.emitComments(a.Before, true)
	e.emit(kw("ANALYZE"))
	if a.Verbose {
		e.emit(space())
		e.emit(kw("VERBOSE"))
	}
	if a.Target != nil {
		e.emit(space())
		e.emitQualifiedName(a.Target)
	}
	if len(a.Columns) > 0 {
		e.emitParenIdents(a.Columns)
	}
	e.emitComments(a.After, false)
	e.emit(closeContainer(DDLStatement))
	return nil
}

func (e *Emitter) emitSequenceOptions(o ast.SequenceOptions) {
	if o.Increment != nil {
		e.emit(space())
		e.emit(kw("INCREMENT"))
		e.emit(space())
		e.emit(kw("BY"))
		e.emit(space())
		e.emit(val(strconv.FormatInt(*o.Increment, 10)))
	}
	if o.Start != nil {
		e.emit(space())
		e.emit(kw("START"))
		e.emit(space())
		e.emit(kw("WITH"))
		e.emit(space())
		e.emit(val(strconv.FormatInt(*o.Start, 10)))
	}
	if o.MinValue != nil {
		e.emit(space())
		e.emit(kw("MINVALUE"))
		e.emit(space())
		e.emit(val(strconv.FormatInt(*o.MinValue, 10)))
	}
	if o.MaxValue != nil {
		e.emit(space())
		e.emit(kw("MAXVALUE"))
		e.emit(space())
		e.emit(val(strconv.FormatInt(*o.MaxValue, 10)))
	}
	if o.Cache != nil {
		e.emit(space())
		e.emit(kw("CACHE"))
		e.emit(space())
		e.emit(val(strconv.FormatInt(*o.Cache, 10)))
	}
	if o.Cycle != nil {
		e.emit(space())
		if *o.Cycle {
			e.emit(kw("CYCLE"))
		} else {
			e.emit(kw("NO"))
			e.emit(space())
			e.emit(kw("CYCLE"))
		}
	}
	if o.RestartWith != nil {
		e.emit(space())
		e.emit(kw("RESTART"))
		e.emit(space())
		e.emit(kw("WITH"))
		e.emit(space())
		e.emit(val(strconv.FormatInt(*o.RestartWith, 10)))
	}
	if o.OwnedBy != nil {
		e.emit(space())
		e.emit(kw("OWNED"))
		e.emit(space())
		e.emit(kw("BY"))
		e.emit(space())
		e.emitQualifiedName(o.OwnedBy)
	}
}

func (e *Emitter) emitCreateSequence(c *ast.CreateSequence) error {
	e.emit(openContainer(DDLStatement))
	e.emitComments(c.Before, true)
	e.emit(kw("CREATE"))
	e.emit(space())
	e.emit(kw("SEQUENCE"))
	e.emit(space())
	if c.IfNotExists {
		e.emit(kw("IF"))
		e.emit(space())
		e.emit(kw("NOT"))
		e.emit(space())
		e.emit(kw("EXISTS"))
		e.emit(space())
	}
	e.emitQualifiedName(c.Name)
	e.emitSequenceOptions(c.Options)
	e.emitComments(c.After, false)
	e.emit(closeContainer(DDLStatement))
	return nil
}

func (e *Emitter) emitAlterSequence(a *ast.AlterSequence) error {
	e.emit(openContainer(DDLStatement))
	e.emitComments(a.Before, true)
	e.emit(kw("ALTER"))
	e.emit(space())
	e.emit(kw("SEQUENCE"))
	e.emit(space())
	e.emitQualifiedName(a.Name)
	e.emitSequenceOptions(a.Options)
	e.emitComments(a.After, false)
	e.emit(closeContainer(DDLStatement))
	return nil
}
