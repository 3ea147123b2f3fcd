package parser

// Grammar structures for the statement-level productions. The expression
// grammar lives in expression.go.

type (
	// Statement is the grammar root: exactly one statement, semicolon
	// excluded.
	Statement struct {
		Select      *SelectStatement      `parser:"@@"`
		Insert      *InsertStatement      `parser:"| @@"`
		Update      *UpdateStatement      `parser:"| @@"`
		Delete      *DeleteStatement      `parser:"| @@"`
		CreateTable *CreateTableStatement `parser:"| @@"`
	}

	// SelectStatement represents a SELECT statement, top-level or nested.
	SelectStatement struct {
		With     *WithClause     `parser:"@@?"`
		Select   string          `parser:"'SELECT'"`
		Distinct bool            `parser:"@'DISTINCT'?"`
		Columns  []SelectColumn  `parser:"@@ (',' @@)*"`
		From     *FromClause     `parser:"@@?"`
		Where    *WhereClause    `parser:"@@?"`
		GroupBy  *GroupByClause  `parser:"@@?"`
		Having   *HavingClause   `parser:"@@?"`
		OrderBy  *OrderByClause  `parser:"@@?"`
		Limit    *LimitClause    `parser:"@@?"`
	}

	// WithClause represents WITH clause for CTEs.
	WithClause struct {
		With string                  `parser:"'WITH'"`
		CTEs []CommonTableExpression `parser:"@@ (',' @@)*"`
	}

	// CommonTableExpression represents a single CTE.
	CommonTableExpression struct {
		Name  string           `parser:"@(Ident | BacktickIdent | QuotedIdent)"`
		As    string           `parser:"'AS'"`
		Query *SelectStatement `parser:"'(' @@ ')'"`
	}

	// SelectColumn represents one item in the SELECT list.
	SelectColumn struct {
		Star          bool           `parser:"@'*'"`
		QualifiedStar *QualifiedStar `parser:"| @@"`
		Expression    *Expression    `parser:"| @@"`
		Alias         *string        `parser:"('AS' @(Ident | BacktickIdent | QuotedIdent))?"`
	}

	// QualifiedStar represents table.* in a SELECT list.
	QualifiedStar struct {
		Qualifier string `parser:"@(Ident | BacktickIdent | QuotedIdent) '.' '*'"`
	}

	// FromClause represents FROM with comma-joined tables and JOIN clauses.
	FromClause struct {
		From   string       `parser:"'FROM'"`
		Tables []TableRef   `parser:"@@ (',' @@)*"`
		Joins  []JoinClause `parser:"@@*"`
	}

	// TableRef represents a table reference: subquery or named table.
	TableRef struct {
		Subquery  *SubqueryWithAlias  `parser:"@@"`
		TableName *TableNameWithAlias `parser:"| @@"`
	}

	// TableNameWithAlias represents a possibly qualified table name with an
	// optional alias, with or without AS.
	TableNameWithAlias struct {
		Qualifier *string `parser:"(@(Ident | BacktickIdent | QuotedIdent) '.')?"`
		Table     string  `parser:"@(Ident | BacktickIdent | QuotedIdent)"`
		HasAs     bool    `parser:"(@'AS'?"`
		Alias     *string `parser:"@(Ident | BacktickIdent | QuotedIdent))?"`
	}

	// SubqueryWithAlias represents a parenthesized SELECT used as a table.
	SubqueryWithAlias struct {
		Subquery SelectStatement `parser:"'(' @@ ')'"`
		HasAs    bool            `parser:"(@'AS'?"`
		Alias    *string         `parser:"@(Ident | BacktickIdent | QuotedIdent))?"`
	}

	// JoinClause represents one JOIN.
	JoinClause struct {
		Kind      *string        `parser:"@('INNER' | 'LEFT' | 'RIGHT' | 'FULL' | 'CROSS')?"`
		Outer     bool           `parser:"@'OUTER'?"`
		Join      string         `parser:"'JOIN'"`
		Target    TableRef       `parser:"@@"`
		Condition *JoinCondition `parser:"@@?"`
	}

	// JoinCondition represents ON or USING.
	JoinCondition struct {
		On    *Expression `parser:"'ON' @@"`
		Using []string    `parser:"| 'USING' '(' @(Ident | BacktickIdent | QuotedIdent) (',' @(Ident | BacktickIdent | QuotedIdent))* ')'"`
	}

	// WhereClause represents WHERE.
	WhereClause struct {
		Where     string     `parser:"'WHERE'"`
		Condition Expression `parser:"@@"`
	}

	// GroupByClause represents GROUP BY.
	GroupByClause struct {
		GroupBy string       `parser:"'GROUP' 'BY'"`
		Columns []Expression `parser:"@@ (',' @@)*"`
	}

	// HavingClause represents HAVING.
	HavingClause struct {
		Having    string     `parser:"'HAVING'"`
		Condition Expression `parser:"@@"`
	}

	// OrderByClause represents ORDER BY.
	OrderByClause struct {
		OrderBy string          `parser:"'ORDER' 'BY'"`
		Columns []OrderByColumn `parser:"@@ (',' @@)*"`
	}

	// OrderByColumn represents a single ORDER BY element.
	OrderByColumn struct {
		Expression Expression `parser:"@@"`
		Direction  *string    `parser:"@('ASC' | 'DESC')?"`
		Nulls      *string    `parser:"('NULLS' @('FIRST' | 'LAST'))?"`
	}

	// LimitClause represents LIMIT with optional OFFSET.
	LimitClause struct {
		Limit  string        `parser:"'LIMIT'"`
		Count  Expression    `parser:"@@"`
		Offset *OffsetClause `parser:"@@?"`
	}

	// OffsetClause represents OFFSET.
	OffsetClause struct {
		Offset string     `parser:"'OFFSET'"`
		Value  Expression `parser:"@@"`
	}

	// InsertStatement represents INSERT ... VALUES and INSERT ... SELECT.
	InsertStatement struct {
		Insert    string           `parser:"'INSERT' 'INTO'"`
		Qualifier *string          `parser:"(@(Ident | BacktickIdent | QuotedIdent) '.')?"`
		Table     string           `parser:"@(Ident | BacktickIdent | QuotedIdent)"`
		Columns   []string         `parser:"('(' @(Ident | BacktickIdent | QuotedIdent) (',' @(Ident | BacktickIdent | QuotedIdent))* ')')?"`
		Rows      []ValuesRow      `parser:"('VALUES' @@ (',' @@)*"`
		Query     *SelectStatement `parser:"| @@)"`
	}

	// ValuesRow represents one parenthesized VALUES tuple.
	ValuesRow struct {
		Values []Expression `parser:"'(' @@ (',' @@)* ')'"`
	}

	// UpdateStatement represents UPDATE ... SET ... [WHERE ...].
	UpdateStatement struct {
		Update      string             `parser:"'UPDATE'"`
		Qualifier   *string            `parser:"(@(Ident | BacktickIdent | QuotedIdent) '.')?"`
		Table       string             `parser:"@(Ident | BacktickIdent | QuotedIdent)"`
		Set         string             `parser:"'SET'"`
		Assignments []UpdateAssignment `parser:"@@ (',' @@)*"`
		Where       *WhereClause       `parser:"@@?"`
	}

	// UpdateAssignment represents one column = expression pair.
	UpdateAssignment struct {
		Column IdentifierExpr `parser:"@@"`
		Eq     string         `parser:"'='"`
		Value  Expression     `parser:"@@"`
	}

	// DeleteStatement represents DELETE FROM ... [WHERE ...].
	DeleteStatement struct {
		Delete    string       `parser:"'DELETE' 'FROM'"`
		Qualifier *string      `parser:"(@(Ident | BacktickIdent | QuotedIdent) '.')?"`
		Table     string       `parser:"@(Ident | BacktickIdent | QuotedIdent)"`
		Where     *WhereClause `parser:"@@?"`
	}

	// CreateTableStatement represents CREATE TABLE with column definitions.
	CreateTableStatement struct {
		Create      string     `parser:"'CREATE' 'TABLE'"`
		IfNotExists bool       `parser:"@('IF' 'NOT' 'EXISTS')?"`
		Qualifier   *string    `parser:"(@(Ident | BacktickIdent | QuotedIdent) '.')?"`
		Name        string     `parser:"@(Ident | BacktickIdent | QuotedIdent)"`
		Defs        []TableDef `parser:"'(' @@ (',' @@)* ')'"`
	}

	// TableDef represents either a column definition or a table constraint.
	TableDef struct {
		PrimaryKey *TablePrimaryKey `parser:"@@"`
		Column     *ColumnDef       `parser:"| @@"`
	}

	// TablePrimaryKey represents a table-level PRIMARY KEY (...).
	TablePrimaryKey struct {
		Primary string   `parser:"'PRIMARY' 'KEY'"`
		Columns []string `parser:"'(' @(Ident | BacktickIdent | QuotedIdent) (',' @(Ident | BacktickIdent | QuotedIdent))* ')'"`
	}

	// ColumnDef represents one column definition.
	ColumnDef struct {
		Name    string         `parser:"@(Ident | BacktickIdent | QuotedIdent)"`
		Type    DataType       `parser:"@@"`
		Options []ColumnOption `parser:"@@*"`
	}

	// DataType represents a column type with optional numeric arguments.
	DataType struct {
		Name string   `parser:"@Ident"`
		Args []string `parser:"('(' @Number (',' @Number)* ')')?"`
	}

	// ColumnOption represents a single column constraint.
	ColumnOption struct {
		NotNull    bool           `parser:"@('NOT' 'NULL')"`
		Null       bool           `parser:"| @'NULL'"`
		PrimaryKey bool           `parser:"| @('PRIMARY' 'KEY')"`
		Unique     bool           `parser:"| @'UNIQUE'"`
		Default    *DefaultOption `parser:"| @@"`
	}

	// DefaultOption represents DEFAULT expr.
	DefaultOption struct {
		Default string     `parser:"'DEFAULT'"`
		Value   Expression `parser:"@@"`
	}
)
