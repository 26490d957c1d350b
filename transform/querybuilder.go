package transform

import "github.com/sqlforge/sqlforge/ast"

// QueryBuilder converts a SimpleSelect into the DML statement it would
// drive (spec.md section 4.8): the SELECT's source clauses (WITH, FROM,
// WHERE) carry over onto the new statement, and its projected items
// become either the new row values (ToInsert, ToMerge's USING source)
// or the new SET assignments (ToUpdate), matched to target columns by
// name. ast package's fluent mutators can't host these directly -- they
// need the full ast node set to build an Insert/Update/Delete/Merge,
// and ast cannot import transform without a cycle (see DESIGN.md).
type QueryBuilder struct{}

// ToInsert converts s into INSERT INTO table [(columns)] <s, minus its
// own WITH> [RETURNING ...], carrying s's WITH clause onto the Insert.
func (QueryBuilder) ToInsert(s *ast.SimpleSelect, table *ast.QualifiedName, columns []*ast.Identifier, returning *ast.Returning) *ast.Insert {
	clone := s.Clone().(*ast.SimpleSelect)
	with := clone.With
	clone.With = nil
	clone.RebuildCTECache()
	return &ast.Insert{
		With: with,
		Insert: &ast.InsertClause{
			Table:   cloneQName(table),
			Columns: cloneIdents(columns),
		},
		Query:     clone,
		Returning: returning.Clone(),
	}
}

// ToUpdate converts s into UPDATE target SET <items matching target
// columns by name> [FROM ...] [WHERE ...], carrying s's FROM and WHERE
// over unchanged and s's WITH onto the Update.
func (QueryBuilder) ToUpdate(s *ast.SimpleSelect, target *ast.TableName, returning *ast.Returning) *ast.Update {
	clone := s.Clone().(*ast.SimpleSelect)
	set := &ast.Set{}
	if clone.Select != nil {
		for _, item := range clone.Select.Items {
			name := selectableColumnName(item)
			if name == "" {
				continue
			}
			set.Assignments = append(set.Assignments, &ast.Assignment{
				Column: &ast.Identifier{Name: name},
				Value:  item.Expr,
			})
		}
	}
	return &ast.Update{
		With:      clone.With,
		Update:    &ast.UpdateClause{Table: cloneSourceTable(target)},
		Set:       set,
		From:      clone.From,
		Where:     clone.Where,
		Returning: returning.Clone(),
	}
}

// ToDelete converts s into DELETE FROM target [USING s's FROM source]
// [WHERE ...], carrying s's WHERE and WITH over unchanged.
func (QueryBuilder) ToDelete(s *ast.SimpleSelect, target *ast.TableName, returning *ast.Returning) *ast.Delete {
	clone := s.Clone().(*ast.SimpleSelect)
	var using *ast.Using
	if clone.From != nil {
		using = &ast.Using{Comments: clone.From.Comments, Source: clone.From.Source}
	}
	return &ast.Delete{
		With:      clone.With,
		Delete:    &ast.DeleteClause{Table: cloneSourceTable(target)},
		Using:     using,
		Where:     clone.Where,
		Returning: returning.Clone(),
	}
}

// ToMerge converts s into MERGE INTO target USING (s, minus its own
// WITH) [AS sourceAlias] ON onCond <whens>, carrying s's WITH onto the
// Merge. whens supplies every WHEN {MATCHED|NOT MATCHED ...} [AND cond]
// THEN {UPDATE|DELETE|INSERT|DO NOTHING} clause -- QueryBuilder only
// assembles the statement shape, it does not invent match conditions.
func (QueryBuilder) ToMerge(s *ast.SimpleSelect, target *ast.TableName, sourceAlias string, onCond ast.Expr, whens []*ast.MergeWhenClause) *ast.Merge {
	clone := s.Clone().(*ast.SimpleSelect)
	with := clone.With
	clone.With = nil
	clone.RebuildCTECache()
	var alias *ast.Identifier
	if sourceAlias != "" {
		alias = &ast.Identifier{Name: sourceAlias}
	}
	clonedWhens := make([]*ast.MergeWhenClause, len(whens))
	for i, w := range whens {
		clonedWhens[i] = w.Clone()
	}
	return &ast.Merge{
		With:   with,
		Target: cloneSourceTable(target),
		Source: &ast.SubQuerySource{Query: clone, Alias: alias},
		On:     cloneExprPublic(onCond),
		Whens:  clonedWhens,
	}
}

func cloneQName(q *ast.QualifiedName) *ast.QualifiedName {
	if q == nil {
		return nil
	}
	return q.Clone().(*ast.QualifiedName)
}

func cloneIdents(in []*ast.Identifier) []*ast.Identifier {
	if in == nil {
		return nil
	}
	out := make([]*ast.Identifier, len(in))
	for i, id := range in {
		out[i] = id.Clone().(*ast.Identifier)
	}
	return out
}

func cloneSourceTable(t *ast.TableName) *ast.TableName {
	if t == nil {
		return nil
	}
	return t.Clone().(*ast.TableName)
}

func cloneExprPublic(e ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}
	return e.Clone().(ast.Expr)
}
