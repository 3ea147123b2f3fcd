package parser

type (
	// Expression represents any SQL expression with proper precedence
	// handling. Precedence levels (lowest to highest): CASE, OR, AND, NOT,
	// comparison (=, !=, <, >, <=, >=, LIKE, IN, BETWEEN, IS NULL),
	// addition/subtraction/concat, multiplication/division/modulo, unary,
	// primary.
	Expression struct {
		Case *CaseExpression `parser:"@@"`
		Or   *OrExpression   `parser:"| @@"`
	}

	// OrExpression handles OR operations (lowest precedence).
	OrExpression struct {
		And  *AndExpression `parser:"@@"`
		Rest []OrRest       `parser:"@@*"`
	}

	OrRest struct {
		Op  string         `parser:"@'OR'"`
		And *AndExpression `parser:"@@"`
	}

	// AndExpression handles AND operations.
	AndExpression struct {
		Not  *NotExpression `parser:"@@"`
		Rest []AndRest      `parser:"@@*"`
	}

	AndRest struct {
		Op  string         `parser:"@'AND'"`
		Not *NotExpression `parser:"@@"`
	}

	// NotExpression handles NOT operations.
	NotExpression struct {
		Not        bool                  `parser:"@'NOT'?"`
		Comparison *ComparisonExpression `parser:"@@"`
	}

	// ComparisonExpression handles comparison operations with an optional
	// IS [NOT] NULL postfix.
	ComparisonExpression struct {
		Addition *AdditionExpression `parser:"@@"`
		Rest     *ComparisonRest     `parser:"@@?"`
		IsNull   *IsNullExpr         `parser:"@@?"`
	}

	ComparisonRest struct {
		SimpleOp  *SimpleComparison  `parser:"@@"`
		InOp      *InComparison      `parser:"| @@"`
		BetweenOp *BetweenComparison `parser:"| @@"`
	}

	// SimpleComparison handles basic comparison operations.
	SimpleComparison struct {
		Op       *SimpleComparisonOp `parser:"@@"`
		Addition *AdditionExpression `parser:"@@"`
	}

	SimpleComparisonOp struct {
		Eq      bool `parser:"@'='"`
		NotEq   bool `parser:"| @'!=' | @'<>'"`
		LtEq    bool `parser:"| @'<='"`
		GtEq    bool `parser:"| @'>='"`
		Lt      bool `parser:"| @'<'"`
		Gt      bool `parser:"| @'>'"`
		NotLike bool `parser:"| @('NOT' 'LIKE')"`
		Like    bool `parser:"| @'LIKE'"`
	}

	// InComparison handles IN and NOT IN.
	InComparison struct {
		Not  bool          `parser:"@'NOT'?"`
		In   string        `parser:"'IN'"`
		Expr *InExpression `parser:"@@"`
	}

	// InExpression is the right-hand side of IN: a subquery or a list.
	InExpression struct {
		Subquery *SubqueryExpression `parser:"@@"`
		List     []Expression        `parser:"| '(' @@ (',' @@)* ')'"`
	}

	// BetweenComparison handles BETWEEN and NOT BETWEEN.
	BetweenComparison struct {
		Not     bool               `parser:"@'NOT'?"`
		Between string             `parser:"'BETWEEN'"`
		Low     AdditionExpression `parser:"@@"`
		And     string             `parser:"'AND'"`
		High    AdditionExpression `parser:"@@"`
	}

	// IsNullExpr handles IS [NOT] NULL as a postfix operator.
	IsNullExpr struct {
		Is   string `parser:"'IS'"`
		Not  bool   `parser:"@'NOT'?"`
		Null string `parser:"'NULL'"`
	}

	// AdditionExpression handles addition, subtraction and concatenation.
	AdditionExpression struct {
		Multiplication *MultiplicationExpression `parser:"@@"`
		Rest           []AdditionRest            `parser:"@@*"`
	}

	AdditionRest struct {
		Op             string                    `parser:"@('+' | '-' | '||')"`
		Multiplication *MultiplicationExpression `parser:"@@"`
	}

	// MultiplicationExpression handles multiplication, division and modulo.
	MultiplicationExpression struct {
		Unary *UnaryExpression     `parser:"@@"`
		Rest  []MultiplicationRest `parser:"@@*"`
	}

	MultiplicationRest struct {
		Op    string           `parser:"@('*' | '/' | '%')"`
		Unary *UnaryExpression `parser:"@@"`
	}

	// UnaryExpression handles unary plus and minus.
	UnaryExpression struct {
		Op      string             `parser:"@('+' | '-')?"`
		Primary *PrimaryExpression `parser:"@@"`
	}

	// PrimaryExpression represents the highest precedence expressions.
	PrimaryExpression struct {
		Literal     *Literal            `parser:"@@"`
		Interval    *IntervalExpr       `parser:"| @@"`
		Extract     *ExtractExpression  `parser:"| @@"`
		Cast        *CastExpression     `parser:"| @@"`
		Function    *FunctionCall       `parser:"| @@"`
		Subquery    *SubqueryExpression `parser:"| @@"`
		Identifier  *IdentifierExpr     `parser:"| @@"`
		Parentheses *ParenExpression    `parser:"| @@"`
		Tuple       *TupleExpression    `parser:"| @@"`
	}

	// Literal represents literal values.
	Literal struct {
		StringValue *string `parser:"@String"`
		Number      *string `parser:"| @Number"`
		Boolean     *string `parser:"| @('TRUE' | 'FALSE')"`
		Null        bool    `parser:"| @'NULL'"`
	}

	// IdentifierExpr represents column names or qualified names.
	IdentifierExpr struct {
		Qualifier *string `parser:"(@(Ident | BacktickIdent | QuotedIdent) '.')?"`
		Name      string  `parser:"@(Ident | BacktickIdent | QuotedIdent)"`
	}

	// FunctionCall represents function invocations, optionally windowed.
	FunctionCall struct {
		Name     string        `parser:"@(Ident | BacktickIdent | QuotedIdent)"`
		Open     string        `parser:"'('"`
		Distinct bool          `parser:"@'DISTINCT'?"`
		Args     []FunctionArg `parser:"(@@ (',' @@)*)? ')'"`
		Over     *OverClause   `parser:"@@?"`
	}

	// FunctionArg represents one function argument (* or an expression).
	FunctionArg struct {
		Star       bool        `parser:"@'*'"`
		Expression *Expression `parser:"| @@"`
	}

	// OverClause represents OVER (...) for window functions.
	OverClause struct {
		Over        string          `parser:"'OVER' '('"`
		PartitionBy []Expression    `parser:"('PARTITION' 'BY' @@ (',' @@)*)?"`
		OrderBy     []OrderByColumn `parser:"('ORDER' 'BY' @@ (',' @@)*)?"`
		Frame       *WindowFrame    `parser:"@@? ')'"`
	}

	// WindowFrame represents a ROWS/RANGE frame clause.
	WindowFrame struct {
		Unit    string      `parser:"@('ROWS' | 'RANGE')"`
		Between bool        `parser:"@'BETWEEN'?"`
		Start   FrameBound  `parser:"@@"`
		End     *FrameBound `parser:"('AND' @@)?"`
	}

	// FrameBound represents one window frame boundary.
	FrameBound struct {
		Unbounded bool        `parser:"( @'UNBOUNDED'"`
		Current   bool        `parser:"| @('CURRENT' 'ROW')"`
		Offset    *Expression `parser:"| @@ )"`
		Direction *string     `parser:"@('PRECEDING' | 'FOLLOWING')?"`
	}

	// ParenExpression represents parenthesized expressions.
	ParenExpression struct {
		Expression Expression `parser:"'(' @@ ')'"`
	}

	// TupleExpression represents tuple literals with two or more elements.
	TupleExpression struct {
		Elements []Expression `parser:"'(' @@ (',' @@)+ ')'"`
	}

	// SubqueryExpression represents a scalar or EXISTS subquery.
	SubqueryExpression struct {
		Exists bool            `parser:"@'EXISTS'?"`
		Query  SelectStatement `parser:"'(' @@ ')'"`
	}

	// CaseExpression represents simple and searched CASE expressions.
	CaseExpression struct {
		Case    string      `parser:"'CASE'"`
		Operand *Expression `parser:"@@?"`
		Whens   []CaseWhen  `parser:"@@+"`
		Else    *Expression `parser:"('ELSE' @@)?"`
		End     string      `parser:"'END'"`
	}

	// CaseWhen represents WHEN condition THEN result.
	CaseWhen struct {
		When   string     `parser:"'WHEN'"`
		Cond   Expression `parser:"@@"`
		Then   string     `parser:"'THEN'"`
		Result Expression `parser:"@@"`
	}

	// CastExpression represents CAST(expr AS type).
	CastExpression struct {
		Cast       string     `parser:"'CAST' '('"`
		Expression Expression `parser:"@@"`
		As         string     `parser:"'AS'"`
		Type       DataType   `parser:"@@"`
		Close      string     `parser:"')'"`
	}

	// IntervalExpr represents INTERVAL '1 day' and INTERVAL 1 unit forms.
	IntervalExpr struct {
		Interval string  `parser:"'INTERVAL'"`
		Str      *string `parser:"( @String"`
		Num      *string `parser:"| @Number"`
		Unit     *string `parser:"@Ident )"`
	}

	// ExtractExpression represents EXTRACT(part FROM expr).
	ExtractExpression struct {
		Extract string     `parser:"'EXTRACT' '('"`
		Part    string     `parser:"@Ident"`
		From    string     `parser:"'FROM'"`
		Expr    Expression `parser:"@@"`
		Close   string     `parser:"')'"`
	}
)
