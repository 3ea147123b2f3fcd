package token_test

import (
	"testing"

	. "github.com/sqleaner/sqleaner/pkg/token"
	"github.com/stretchr/testify/require"
)

func TestScan_tokenKinds(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected []struct {
			kind Kind
			text string
		}
	}{
		{
			name: "identifiers and operators",
			sql:  "SELECT id FROM t WHERE a != 1",
			expected: []struct {
				kind Kind
				text string
			}{
				{Ident, "SELECT"},
				{Ident, "id"},
				{Ident, "FROM"},
				{Ident, "t"},
				{Ident, "WHERE"},
				{Ident, "a"},
				{Op, "!="},
				{Number, "1"},
			},
		},
		{
			name: "quoted forms",
			sql:  `SELECT "User Name", ` + "`order`" + `, 'it''s'`,
			expected: []struct {
				kind Kind
				text string
			}{
				{Ident, "SELECT"},
				{QuotedIdent, `"User Name"`},
				{Op, ","},
				{QuotedIdent, "`order`"},
				{Op, ","},
				{String, "'it''s'"},
			},
		},
		{
			name: "numbers",
			sql:  "SELECT 1.5, .25, 2e10, 3E+2",
			expected: []struct {
				kind Kind
				text string
			}{
				{Ident, "SELECT"},
				{Number, "1.5"},
				{Op, ","},
				{Number, ".25"},
				{Op, ","},
				{Number, "2e10"},
				{Op, ","},
				{Number, "3E+2"},
			},
		},
		{
			name: "two character operators",
			sql:  "a <> b <= c >= d || e :: f",
			expected: []struct {
				kind Kind
				text string
			}{
				{Ident, "a"},
				{Op, "<>"},
				{Ident, "b"},
				{Op, "<="},
				{Ident, "c"},
				{Op, ">="},
				{Ident, "d"},
				{Op, "||"},
				{Ident, "e"},
				{Op, "::"},
				{Ident, "f"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, comments := Scan(tt.sql)
			require.Empty(t, comments)
			require.Len(t, tokens, len(tt.expected))
			for i, want := range tt.expected {
				require.Equal(t, want.kind, tokens[i].Kind, "token %d", i)
				require.Equal(t, want.text, tokens[i].Text, "token %d", i)
			}
		})
	}
}

func TestScan_comments(t *testing.T) {
	sql := "-- leading\nSELECT id -- trailing\n/* block\ncomment */ FROM t"
	tokens, comments := Scan(sql)

	require.Len(t, tokens, 4)
	require.Len(t, comments, 3)

	require.Equal(t, "-- leading", comments[0].Text)
	require.True(t, comments[0].IsLineComment())
	require.True(t, comments[0].OwnLine)

	require.Equal(t, "-- trailing", comments[1].Text)
	require.False(t, comments[1].OwnLine)

	require.Equal(t, "/* block\ncomment */", comments[2].Text)
	require.Equal(t, BlockComment, comments[2].Kind)
	require.True(t, comments[2].OwnLine)
}

func TestScan_positions(t *testing.T) {
	tokens, _ := Scan("SELECT id\nFROM t")
	require.Len(t, tokens, 4)

	require.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Span.Start)
	require.Equal(t, Position{Line: 1, Column: 8, Offset: 7}, tokens[1].Span.Start)
	require.Equal(t, Position{Line: 2, Column: 1, Offset: 10}, tokens[2].Span.Start)
	require.Equal(t, Position{Line: 2, Column: 6, Offset: 15}, tokens[3].Span.Start)
}

func TestScan_depth(t *testing.T) {
	tokens, _ := Scan("f(a, g(b))")
	byText := make(map[string]int)
	for _, tok := range tokens {
		if tok.Kind == Ident {
			byText[tok.Text] = tok.Depth
		}
	}

	require.Equal(t, 0, byText["f"])
	require.Equal(t, 1, byText["a"])
	require.Equal(t, 1, byText["g"])
	require.Equal(t, 2, byText["b"])
}

func TestScan_unterminatedString(t *testing.T) {
	tokens, _ := Scan("SELECT 'oops")
	require.Len(t, tokens, 2)
	require.Equal(t, String, tokens[1].Kind)
	require.Equal(t, "'oops", tokens[1].Text)
}

func TestToken_quoteHelpers(t *testing.T) {
	tokens, _ := Scan(`"name"`)
	require.Len(t, tokens, 1)
	require.Equal(t, byte('"'), tokens[0].Quote())
	require.Equal(t, "name", tokens[0].Unquote())

	bare, _ := Scan("name")
	require.Equal(t, byte(0), bare[0].Quote())
	require.Equal(t, "name", bare[0].Unquote())
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected []string
	}{
		{
			name:     "two statements",
			sql:      "SELECT 1; SELECT 2;",
			expected: []string{"SELECT 1", "SELECT 2"},
		},
		{
			name:     "no trailing semicolon",
			sql:      "SELECT 1; SELECT 2",
			expected: []string{"SELECT 1", "SELECT 2"},
		},
		{
			name:     "semicolon inside string",
			sql:      "SELECT 'a;b' FROM t; SELECT 2;",
			expected: []string{"SELECT 'a;b' FROM t", "SELECT 2"},
		},
		{
			name:     "semicolon inside comment",
			sql:      "SELECT 1 -- not a boundary ;\n; SELECT 2;",
			expected: []string{"SELECT 1 -- not a boundary ;", "SELECT 2"},
		},
		{
			name:     "empty segments dropped",
			sql:      ";;SELECT 1;;",
			expected: []string{"SELECT 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := SplitStatements(tt.sql)
			require.Len(t, segments, len(tt.expected))
			for i, want := range tt.expected {
				require.Equal(t, want, segments[i].Text)
			}
		})
	}
}

func TestSplitStatements_offsets(t *testing.T) {
	segments := SplitStatements("  SELECT 1;\n  SELECT 2;")
	require.Len(t, segments, 2)
	require.Equal(t, 2, segments[0].Offset)
	require.Equal(t, 14, segments[1].Offset)
}

func TestSegment_hasTokens(t *testing.T) {
	require.True(t, Segment{Text: "SELECT 1"}.HasTokens())
	require.False(t, Segment{Text: "-- just a comment"}.HasTokens())
	require.False(t, Segment{Text: "/* nothing */"}.HasTokens())
}

func TestKeywords(t *testing.T) {
	require.True(t, IsKeyword("select"))
	require.True(t, IsKeyword("FROM"))
	require.False(t, IsKeyword("max"))
	require.False(t, IsKeyword("users"))

	require.True(t, IsBuiltinFunction("max"))
	require.True(t, IsBuiltinFunction("COALESCE"))
	require.False(t, IsBuiltinFunction("select"))
}
