// Package sqlerr defines the closed error taxonomy raised by the
// parser, AST, transformers, and row mapper (spec.md section 7). Every
// type here implements error and carries machine-readable fields
// alongside its message, so callers never have to string-match.
package sqlerr

import "fmt"

// ParseError reports malformed token or unexpected-syntax failures
// from the lexer or parser.
type ParseError struct {
	Line, Column int
	Message      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// InvalidCTEName reports an empty or whitespace-only CTE alias.
type InvalidCTEName struct {
	Name   string
	Detail string
}

func (e *InvalidCTEName) Error() string {
	return fmt.Sprintf("invalid CTE name %q: %s", e.Name, e.Detail)
}

// DuplicateCTE reports a CTE alias collision: SimpleSelect.AddCTE raises
// it for any alias already declared, CTEInjector for a reused alias
// whose bodies differ.
type DuplicateCTE struct {
	Name string
}

func (e *DuplicateCTE) Error() string {
	return fmt.Sprintf("duplicate CTE: %q", e.Name)
}

// CTENotFound reports a RemoveCTE/lookup on a missing alias.
type CTENotFound struct {
	Name string
}

func (e *CTENotFound) Error() string {
	return fmt.Sprintf("CTE not found: %q", e.Name)
}

// MissingFromClause reports a JOIN append attempted with no FROM clause.
type MissingFromClause struct{}

func (e *MissingFromClause) Error() string {
	return "query has no FROM clause to join against"
}

// UnresolvedJoinColumns reports that the join helper could not resolve
// every requested column in the query's current selectable-column scope.
type UnresolvedJoinColumns struct {
	Columns []string
}

func (e *UnresolvedJoinColumns) Error() string {
	return fmt.Sprintf("unresolved join columns: %v", e.Columns)
}

// MissingAlias reports a ToSource call with an empty alias.
type MissingAlias struct{}

func (e *MissingAlias) Error() string {
	return "source alias must not be empty"
}

// AmbiguousColumn reports that an operation expecting exactly one
// matching expression by column name found zero or more than one.
type AmbiguousColumn struct {
	Name  string
	Count int
}

func (e *AmbiguousColumn) Error() string {
	return fmt.Sprintf("expected exactly one expression named %q, found %d", e.Name, e.Count)
}

// ParameterNotFound reports a SetParameter call for a name absent from
// the tree.
type ParameterNotFound struct {
	Name string
}

func (e *ParameterNotFound) Error() string {
	return fmt.Sprintf("parameter not found: %q", e.Name)
}

// DuplicateParameter reports two parameters sharing a name with
// different bound values, under named parameter collection.
type DuplicateParameter struct {
	Name string
}

func (e *DuplicateParameter) Error() string {
	return fmt.Sprintf("duplicate parameter with conflicting values: %q", e.Name)
}

// CircularEntityMapping reports a relation cycle detected by the row
// mapper during assembly, carrying the full traversal path.
type CircularEntityMapping struct {
	Path []string
}

func (e *CircularEntityMapping) Error() string {
	return fmt.Sprintf("circular entity mapping: %v", e.Path)
}

// MissingKeyColumn reports that a row is missing its root entity's key
// column.
type MissingKeyColumn struct {
	Column string
}

func (e *MissingKeyColumn) Error() string {
	return fmt.Sprintf("missing key column: %q", e.Column)
}

// MissingLocalKeyColumn reports that a required relation's local-key
// column is absent from a row.
type MissingLocalKeyColumn struct {
	Column   string
	Relation string
}

func (e *MissingLocalKeyColumn) Error() string {
	return fmt.Sprintf("missing local key column %q for relation %q", e.Column, e.Relation)
}

// NullLocalKey reports that a required relation's local-key column is
// present but null.
type NullLocalKey struct {
	Column   string
	Relation string
	Entity   string
}

func (e *NullLocalKey) Error() string {
	return fmt.Sprintf("null local key %q for required relation %q on entity %q", e.Column, e.Relation, e.Entity)
}
