// Package ir defines the canonical, backend-agnostic statement tree every
// parsing backend is normalized into and the layout engine consumes. Each
// node owns its children exclusively; trees are built fresh per input
// statement and discarded after printing.
package ir

type (
	// Statement is the top-level node for one SQL statement.
	Statement interface {
		stmtNode()
		// Info exposes the statement-level trivia shared by all variants.
		Info() *StmtInfo
	}

	// Expr is a node in the recursive expression tree.
	Expr interface {
		exprNode()
	}

	// TableRef is a table-like source in a FROM clause or join target.
	TableRef interface {
		tableRefNode()
	}
)

// StmtInfo holds statement-level trivia. Embed it in every Statement variant.
type StmtInfo struct {
	Comments []Comment
}

// Info returns the embedded StmtInfo.
func (s *StmtInfo) Info() *StmtInfo { return s }

// Ident is an identifier together with its original quoting. Quoted
// identifiers are reproduced verbatim, quote character included; unquoted
// identifiers are never case-normalized.
type Ident struct {
	Name   string
	Quoted bool
	Quote  byte // '"' or '`' when Quoted
}

// Name creates an unquoted identifier.
func Name(s string) Ident { return Ident{Name: s} }

// ---------- Statements ----------

// SelectStmt is a SELECT statement, optionally prefixed by a WITH clause.
type SelectStmt struct {
	StmtInfo
	With     *WithClause
	Distinct bool
	Items    []SelectItem
	From     *FromClause
	Joins    []*Join
	Where    Expr
	GroupBy  []Expr
	Having   Expr
	OrderBy  []OrderItem
	Limit    Expr
	Offset   Expr
}

func (*SelectStmt) stmtNode() {}

// WithClause is an ordered CTE list. Order is preserved exactly as written.
type WithClause struct {
	CTEs []*CTE
}

// CTE is a single common table expression.
type CTE struct {
	Name  Ident
	Pos   int // declaration index, for stable ordering
	Query *SelectStmt
}

// SelectItem is one projection in a SELECT list.
type SelectItem struct {
	Expr  Expr
	Alias *Ident
}

// FromClause holds the FROM sources. Tables beyond the first are
// comma-joined, as written.
type FromClause struct {
	Tables []TableRef
}

// TableName is a (possibly qualified, possibly aliased) table reference.
type TableName struct {
	Qualifier *Ident
	Name      Ident
	Alias     *Ident
}

func (*TableName) tableRefNode() {}

// SubqueryRef is a parenthesized SELECT used as a table source.
type SubqueryRef struct {
	Query *SelectStmt
	Alias *Ident
}

func (*SubqueryRef) tableRefNode() {}

// JoinKind enumerates join flavors.
type JoinKind int

// Join kinds. JoinPlain is a bare JOIN; JoinInner was written INNER JOIN.
// The distinction is kept so keyword-preservation holds on round trips.
const (
	JoinPlain JoinKind = iota
	JoinInner
	JoinLeft
	JoinRight
	JoinFull
	JoinCross
)

// Join is one JOIN clause. On is nil for cross joins or USING joins.
type Join struct {
	Kind   JoinKind
	Outer  bool // LEFT OUTER vs LEFT, as written
	Target TableRef
	On     Expr
	Using  []Ident
}

// OrderDirection is an ORDER BY direction, preserved as written.
type OrderDirection int

// Order directions.
const (
	OrderNone OrderDirection = iota
	OrderAsc
	OrderDesc
)

// NullsOrder is a NULLS FIRST/LAST modifier.
type NullsOrder int

// Nulls orderings.
const (
	NullsNone NullsOrder = iota
	NullsFirst
	NullsLast
)

// OrderItem is one ORDER BY element.
type OrderItem struct {
	Expr      Expr
	Direction OrderDirection
	Nulls     NullsOrder
}

// InsertStmt is an INSERT with either literal rows or a source query.
type InsertStmt struct {
	StmtInfo
	Table   TableName
	Columns []Ident
	Rows    [][]Expr    // INSERT ... VALUES
	Query   *SelectStmt // INSERT ... SELECT
}

func (*InsertStmt) stmtNode() {}

// Assignment is one SET column = expr pair.
type Assignment struct {
	Column *ColumnRef
	Value  Expr
}

// UpdateStmt is an UPDATE statement.
type UpdateStmt struct {
	StmtInfo
	Table       TableName
	Assignments []Assignment
	Where       Expr
}

func (*UpdateStmt) stmtNode() {}

// DeleteStmt is a DELETE statement.
type DeleteStmt struct {
	StmtInfo
	Table TableName
	Where Expr
}

func (*DeleteStmt) stmtNode() {}

// ColumnDef is one column in a CREATE TABLE.
type ColumnDef struct {
	Name       Ident
	Type       string // rendered type text, e.g. VARCHAR(255)
	NotNull    bool
	PrimaryKey bool
	Unique     bool
	Default    Expr
}

// CreateTableStmt is a CREATE TABLE statement.
type CreateTableStmt struct {
	StmtInfo
	Name        TableName
	IfNotExists bool
	Columns     []ColumnDef
	PrimaryKey  []Ident // table-level PRIMARY KEY (...)
}

func (*CreateTableStmt) stmtNode() {}

// RawStmt preserves a statement kind with no structural printer as
// whitespace-trimmed raw text.
type RawStmt struct {
	StmtInfo
	Text string
}

func (*RawStmt) stmtNode() {}

// ---------- Expressions ----------

// LiteralKind classifies literal values.
type LiteralKind int

// Literal kinds.
const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBool
	LiteralNull
)

// Literal is a literal value. Text is the exact output spelling, delimiters
// included for strings.
type Literal struct {
	Kind LiteralKind
	Text string
}

func (*Literal) exprNode() {}

// ColumnRef is a column reference with an optional table/alias qualifier,
// never resolved against a schema.
type ColumnRef struct {
	Qualifier *Ident
	Name      Ident
}

func (*ColumnRef) exprNode() {}

// Star is * or qualifier.*.
type Star struct {
	Qualifier *Ident
}

func (*Star) exprNode() {}

// FuncCall is a function invocation, optionally windowed.
type FuncCall struct {
	Name     Ident
	Distinct bool
	Star     bool // COUNT(*)
	Args     []Expr
	Over     *WindowSpec
}

func (*FuncCall) exprNode() {}

// WindowSpec is the OVER (...) clause of a window function.
type WindowSpec struct {
	PartitionBy []Expr
	OrderBy     []OrderItem
	Frame       *WindowFrame
}

// FrameBoundKind enumerates window frame bound forms.
type FrameBoundKind int

// Frame bound kinds.
const (
	BoundUnboundedPreceding FrameBoundKind = iota
	BoundUnboundedFollowing
	BoundCurrentRow
	BoundOffsetPreceding
	BoundOffsetFollowing
)

// FrameBound is one boundary of a window frame.
type FrameBound struct {
	Kind   FrameBoundKind
	Offset Expr // for BoundOffset* kinds
}

// WindowFrame is a ROWS/RANGE frame clause.
type WindowFrame struct {
	Unit  string // "ROWS" or "RANGE"
	Start FrameBound
	End   *FrameBound // nil for single-bound frames
}

// BinaryExpr is an infix operation. Op is the canonical upper-case operator
// text ("=", "AND", "NOT LIKE", "IS", ...).
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr is a prefix operation ("-", "+", "NOT").
type UnaryExpr struct {
	Op   string
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// BetweenExpr is the three-operand BETWEEN form.
type BetweenExpr struct {
	Not  bool
	Expr Expr
	Low  Expr
	High Expr
}

func (*BetweenExpr) exprNode() {}

// When is one WHEN ... THEN ... arm of a CASE expression.
type When struct {
	Cond   Expr
	Result Expr
}

// CaseExpr is a simple or searched CASE expression.
type CaseExpr struct {
	Operand Expr // nil for searched CASE
	Whens   []When
	Else    Expr
}

func (*CaseExpr) exprNode() {}

// SubqueryExpr is a scalar or EXISTS subquery.
type SubqueryExpr struct {
	Query  *SelectStmt
	Exists bool
}

func (*SubqueryExpr) exprNode() {}

// ListExpr is a parenthesized expression list (IN lists, tuples).
type ListExpr struct {
	Items []Expr
}

func (*ListExpr) exprNode() {}

// CastExpr is CAST(expr AS type). Type is rendered type text.
type CastExpr struct {
	Expr Expr
	Type string
}

func (*CastExpr) exprNode() {}

// ExtractExpr is EXTRACT(part FROM expr).
type ExtractExpr struct {
	Part string
	Expr Expr
}

func (*ExtractExpr) exprNode() {}
