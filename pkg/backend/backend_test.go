package backend_test

import (
	"testing"

	. "github.com/sqleaner/sqleaner/pkg/backend"
	"github.com/sqleaner/sqleaner/pkg/ir"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	name string
	stmt ir.Statement
	err  error
}

func (b *stubBackend) Name() string { return b.name }

func (b *stubBackend) Translate(string) (ir.Statement, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.stmt, nil
}

func TestChain_firstSuccessWins(t *testing.T) {
	first := &stubBackend{name: "first", stmt: &ir.SelectStmt{}}
	second := &stubBackend{name: "second", stmt: &ir.SelectStmt{}}

	name, stmt, err := NewChain(first, second).Resolve("SELECT 1")
	require.NoError(t, err)
	require.Equal(t, "first", name)
	require.Same(t, first.stmt, stmt)
}

func TestChain_normalizationErrorFallsThrough(t *testing.T) {
	first := &stubBackend{name: "first", err: &NormalizationError{Backend: "first", Detail: "window frames"}}
	second := &stubBackend{name: "second", stmt: &ir.SelectStmt{}}

	name, _, err := NewChain(first, second).Resolve("SELECT 1")
	require.NoError(t, err)
	require.Equal(t, "second", name)
}

func TestChain_totalFailure(t *testing.T) {
	first := &stubBackend{name: "first", err: &ParseError{Backend: "first", Message: "boom", Line: 1, Column: 2}}
	second := &stubBackend{name: "second", err: &NormalizationError{Backend: "second", Detail: "nope"}}

	_, _, err := NewChain(first, second).Resolve("garbage")
	require.Error(t, err)

	var agg *AggregateError
	require.ErrorAs(t, err, &agg)
	require.Len(t, agg.Diagnostics, 2)
	require.Equal(t, "first", agg.Diagnostics[0].Backend)
	require.Equal(t, "boom", agg.Diagnostics[0].Message)
	require.Equal(t, 1, agg.Diagnostics[0].Line)
	require.Equal(t, "second", agg.Diagnostics[1].Backend)
	require.Contains(t, agg.Diagnostics[1].Message, "cannot translate")
}

func TestDefaultChain_nativeWins(t *testing.T) {
	name, stmt, err := DefaultChain().Resolve("SELECT id FROM users")
	require.NoError(t, err)
	require.Equal(t, "native", name)

	sel, ok := stmt.(*ir.SelectStmt)
	require.True(t, ok)
	require.Len(t, sel.Items, 1)
}

func TestDefaultChain_fallsBackForImplicitColumnAlias(t *testing.T) {
	// Column aliases without AS are outside the native grammar.
	name, stmt, err := DefaultChain().Resolve("SELECT id user_id FROM users")
	require.NoError(t, err)
	require.Equal(t, "crdb", name)

	sel, ok := stmt.(*ir.SelectStmt)
	require.True(t, ok)
	require.Len(t, sel.Items, 1)
	require.NotNil(t, sel.Items[0].Alias)
	require.Equal(t, "user_id", sel.Items[0].Alias.Name)
}

func TestDefaultChain_fallsBackToVitessForMySQLLimit(t *testing.T) {
	name, stmt, err := DefaultChain().Resolve("SELECT id FROM users LIMIT 5, 10")
	require.NoError(t, err)
	require.Equal(t, "vitess", name)

	sel, ok := stmt.(*ir.SelectStmt)
	require.True(t, ok)
	require.NotNil(t, sel.Limit)
	require.NotNil(t, sel.Offset)
}

func TestDefaultChain_totalFailureOrder(t *testing.T) {
	_, _, err := DefaultChain().Resolve("this is not sql at all !?")
	require.Error(t, err)

	var agg *AggregateError
	require.ErrorAs(t, err, &agg)
	require.Len(t, agg.Diagnostics, 3)
	require.Equal(t, "native", agg.Diagnostics[0].Backend)
	require.Equal(t, "crdb", agg.Diagnostics[1].Backend)
	require.Equal(t, "vitess", agg.Diagnostics[2].Backend)
}

func TestNative_parseErrorPosition(t *testing.T) {
	_, err := Native().Translate("SELECT id\nFROM")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "native", perr.Backend)
	require.Greater(t, perr.Line, 0)
}

func TestResolve_restoresIdentifierCase(t *testing.T) {
	// The cockroachdb parser folds unquoted identifiers to lower case; the
	// original spelling comes back from the source text.
	name, stmt, err := NewChain(CRDB()).Resolve("SELECT MyCol userId FROM MyTable")
	require.NoError(t, err)
	require.Equal(t, "crdb", name)

	sel := stmt.(*ir.SelectStmt)
	col, ok := sel.Items[0].Expr.(*ir.ColumnRef)
	require.True(t, ok)
	require.Equal(t, "MyCol", col.Name.Name)
	require.Equal(t, "userId", sel.Items[0].Alias.Name)

	table, ok := sel.From.Tables[0].(*ir.TableName)
	require.True(t, ok)
	require.Equal(t, "MyTable", table.Name.Name)
}

func TestResolve_restoresKeywordShapedIdentifiers(t *testing.T) {
	// First and Last collide with reserved words, so the native grammar
	// rejects them and the case-folding crdb parser wins; the source pass
	// must still bring back the user's spelling.
	name, stmt, err := DefaultChain().Resolve("SELECT First, Last FROM users")
	require.NoError(t, err)
	require.Equal(t, "crdb", name)

	sel := stmt.(*ir.SelectStmt)
	require.Len(t, sel.Items, 2)
	require.Equal(t, "First", sel.Items[0].Expr.(*ir.ColumnRef).Name.Name)
	require.Equal(t, "Last", sel.Items[1].Expr.(*ir.ColumnRef).Name.Name)
}

func TestResolve_restoresIdentifierQuoting(t *testing.T) {
	_, stmt, err := NewChain(CRDB()).Resolve(`SELECT "User Name" FROM t`)
	require.NoError(t, err)

	sel := stmt.(*ir.SelectStmt)
	col := sel.Items[0].Expr.(*ir.ColumnRef)
	require.True(t, col.Name.Quoted)
	require.Equal(t, byte('"'), col.Name.Quote)
	require.Equal(t, "User Name", col.Name.Name)
}

func TestResolve_attachesComments(t *testing.T) {
	_, stmt, err := DefaultChain().Resolve("-- lead\nSELECT id FROM t -- trail")
	require.NoError(t, err)

	comments := stmt.Info().Comments
	require.Len(t, comments, 2)

	require.Equal(t, "-- lead", comments[0].Text)
	require.True(t, comments[0].Leading)
	require.Equal(t, ir.ClauseSelect, comments[0].Anchor.Clause)

	require.Equal(t, "-- trail", comments[1].Text)
	require.False(t, comments[1].Leading)
	require.Equal(t, ir.ClauseFrom, comments[1].Anchor.Clause)
}

func TestResolve_commentAnchorsTrackJoins(t *testing.T) {
	sql := "SELECT a.id\nFROM a\n-- second hop\nJOIN b ON a.id = b.id\nJOIN c ON b.id = c.id"
	_, stmt, err := DefaultChain().Resolve(sql)
	require.NoError(t, err)

	comments := stmt.Info().Comments
	require.Len(t, comments, 1)
	require.True(t, comments[0].Leading)
	require.Equal(t, ir.ClauseJoin, comments[0].Anchor.Clause)
	require.Equal(t, 0, comments[0].Anchor.Index)
}

func TestAggregateError_message(t *testing.T) {
	err := &AggregateError{Diagnostics: []Diagnostic{
		{Backend: "native", Message: "unexpected token"},
		{Backend: "crdb", Message: "syntax error"},
	}}

	msg := err.Error()
	require.Contains(t, msg, "crdb: syntax error")
	require.Contains(t, msg, "2 backends failed")
}
