// Package ast defines the closed SQL abstract-syntax-tree node taxonomy
// (spec.md section 3): query roots, clauses, value expressions, and DDL
// statements, plus the positioned-comment overlay that travels with
// every node through the transformers in package transform.
//
// Nodes are modeled as a tagged sum via unexported marker methods, not
// dynamic dispatch: exprNode/stmtNode/sourceNode/ddlNode give the
// compiler exhaustive-match coverage when a new variant is added, the
// same expressionNode()/statementNode() idiom ha1tch/tsqlparser/ast/ast.go
// uses, generalized across four node categories instead of two.
//
// Note: the T-SQL procedural surface (cursors, BEGIN/END, TRY/CATCH,
// RAISERROR, EXEC, GO batches, scalar IF/WHILE) has no analog in this
// closed variant set and was not ported -- see DESIGN.md for the full
// list of what was left out and why.
package ast

// Node is the root of every AST variant. Clone returns a deep copy, so
// a cloned tree never aliases a comment list, namespace list, or column
// list of its source. Fluent mutators such as AppendWhere, AddCTE,
// ReplaceCTE and the ToUnion family keep the nodes passed to them as
// given, without cloning; ToSource clones the query it wraps (spec.md
// section 3, "Ownership and mutability").
type Node interface {
	Clone() Node
}

// Expr is a value expression: literals, identifiers, operators, CASE,
// CAST, function calls, subqueries, and the rest of the "Values"
// variant set in spec.md section 3.
type Expr interface {
	Node
	exprNode()
}

// QueryRoot is anything that can stand as a top-level query: a simple
// SELECT, a UNION/INTERSECT/EXCEPT of two query roots, a bare VALUES
// list, or a DML statement a SimpleSelect was converted into.
type QueryRoot interface {
	Node
	queryRootNode()
}

// Source is anything that can appear in a FROM clause or JOIN: a table
// name, a subquery, a VALUES table, or a nested join.
type Source interface {
	Node
	sourceNode()
}

// DDLStmt is a data-definition statement: CREATE/ALTER/DROP TABLE,
// INDEX, SCHEMA, SEQUENCE, EXPLAIN, ANALYZE.
type DDLStmt interface {
	Node
	ddlNode()
}

// Comments is the positioned-comment overlay (spec.md section 3,
// "Positioned comment"). Before precedes a node's first token; After
// follows its last. Either may be nil; if non-nil it is non-empty, and
// list order is preserved across transformations. Comments is never
// threaded through visitors as an extra parameter (spec.md section 9)
// -- it is always a field embedded directly in the node that owns it.
type Comments struct {
	Before []string
	After  []string
}

// IsEmpty reports whether there is nothing to render for this slot.
func (c Comments) IsEmpty() bool {
	return len(c.Before) == 0 && len(c.After) == 0
}

// Clone deep-copies the comment lists.
func (c Comments) Clone() Comments {
	return Comments{Before: cloneStrings(c.Before), After: cloneStrings(c.After)}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Materialized is the CommonTable tri-state (spec.md section 3). The
// zero value, MaterializedUnspecified, renders nothing; the other two
// render MATERIALIZED / NOT MATERIALIZED verbatim.
type Materialized int

const (
	MaterializedUnspecified Materialized = iota
	Materialized
	NotMaterialized
)

// SortDir is ORDER BY / index-column sort direction.
type SortDir int

const (
	SortUnspecified SortDir = iota
	Ascending
	Descending
)

// NullsPos is ORDER BY NULLS FIRST|LAST placement.
type NullsPos int

const (
	NullsUnspecified NullsPos = iota
	NullsFirst
	NullsLast
)

// JoinKind enumerates the supported JOIN variants.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
	CrossJoin
)

func (k JoinKind) String() string {
	switch k {
	case InnerJoin:
		return "INNER JOIN"
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case FullJoin:
		return "FULL JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	default:
		return "JOIN"
	}
}

// BinaryOp enumerates SimpleSelect combination operators.
type BinaryOp int

const (
	Union BinaryOp = iota
	UnionAll
	Intersect
	IntersectAll
	Except
	ExceptAll
)

func (op BinaryOp) String() string {
	switch op {
	case Union:
		return "UNION"
	case UnionAll:
		return "UNION ALL"
	case Intersect:
		return "INTERSECT"
	case IntersectAll:
		return "INTERSECT ALL"
	case Except:
		return "EXCEPT"
	case ExceptAll:
		return "EXCEPT ALL"
	default:
		return "UNION"
	}
}

// LockMode enumerates FOR UPDATE|SHARE|... row-locking modes.
type LockMode int

const (
	ForUpdate LockMode = iota
	ForShare
	ForNoKeyUpdate
	ForKeyShare
)

// FetchUnit is ROW|ROWS in a FETCH clause.
type FetchUnit int

const (
	FetchRow FetchUnit = iota
	FetchRows
)
