// Package emit walks an ast.Node producing a flat stream of
// Tokens (spec.md section 4.4, "the hardest subsystem"): the printer
// package turns that stream into text. Splitting emission from printing
// keeps the positioned-comment and JOIN-normalization logic, which only
// cares about token kind and container nesting, independent of
// multiline-vs-oneliner rendering choices.
package emit

// Kind is the lexical category of one emitted Token.
type Kind int

const (
	KeywordTok Kind = iota
	ValueTok
	OperatorTok
	ParenTok
	CommaTok
	DotTok
	ArgSplitterTok
	SpaceTok
	ParameterTok
	CommentTok
	CommentNewlineTok
	ContainerTok
)

// Container is the small, explicit set of container kinds the printer
// uses to decide indentation and breakability (spec.md section 4.4).
// Containers not in the clear-on-emit set below still nest for
// indentation purposes; they just don't own a positioned-comment list.
type Container int

const (
	NoContainer Container = iota
	CaseExpression
	SwitchCaseArgument
	CaseKeyValuePair
	SelectClause
	LiteralValue
	IdentifierString
	DistinctOn
	SourceAliasExpression
	SimpleSelectQuery
	WhereClause

	FromClause
	JoinClause
	GroupByClause
	HavingClause
	WindowClause
	OrderByClause
	LimitClause
	OffsetClause
	FetchClause
	ForClause
	WithClause
	CommonTableClause
	InsertStatement
	UpdateStatement
	DeleteStatement
	MergeStatement
	MergeWhenClauseContainer
	ValuesClause
	TupleClause
	FunctionCallClause
	ParenExpression
	ArrayClause
	DDLStatement
	ColumnListClause
)

// consumesComments lists the container types that own their node's
// positioned-comment list (spec.md section 4.4 rule 3). The emitter does
// not consult this set, and it does not clear a node's comments after
// rendering them.
var consumesComments = map[Container]bool{
	CaseExpression:         true,
	SwitchCaseArgument:     true,
	CaseKeyValuePair:       true,
	SelectClause:           true,
	LiteralValue:           true,
	IdentifierString:       true,
	DistinctOn:             true,
	SourceAliasExpression:  true,
	SimpleSelectQuery:      true,
	WhereClause:            true,
}

// Token is one unit of the emitter's intermediate stream.
type Token struct {
	Kind      Kind
	Text      string
	Container Container
}

func kw(text string) Token        { return Token{Kind: KeywordTok, Text: text} }
func val(text string) Token       { return Token{Kind: ValueTok, Text: text} }
func op(text string) Token        { return Token{Kind: OperatorTok, Text: text} }
func paren(text string) Token     { return Token{Kind: ParenTok, Text: text} }
func comma() Token                { return Token{Kind: CommaTok, Text: ","} }
func dot() Token                  { return Token{Kind: DotTok, Text: "."} }
func argSplitter() Token          { return Token{Kind: ArgSplitterTok, Text: ","} }
func space() Token                { return Token{Kind: SpaceTok, Text: " "} }
func commentNewline() Token       { return Token{Kind: CommentNewlineTok} }
func openContainer(c Container) Token {
	return Token{Kind: ContainerTok, Text: "open", Container: c}
}
func closeContainer(c Container) Token {
	return Token{Kind: ContainerTok, Text: "close", Container: c}
}
