// Package parser implements the native SQL grammar backend: a participle
// grammar over a portable SQL subset (SELECT with CTEs, joins, subqueries and
// window functions, plus INSERT, UPDATE, DELETE and CREATE TABLE). It is the
// highest-fidelity backend in the chain because it preserves identifier
// quoting exactly as written.
package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	participlelexer "github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/sqleaner/sqleaner/pkg/token"
)

var (
	// sqlLexer tokenizes the keyword-normalized input. The Keyword rule sits
	// before Ident so reserved words can never be captured as identifiers,
	// which is what lets implicit aliases terminate at clause boundaries.
	sqlLexer = participlelexer.MustSimple([]participlelexer.SimpleRule{
		{Name: "Comment", Pattern: `--[^\r\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "String", Pattern: `'(''|\\.|[^'\\])*'`},
		{Name: "BacktickIdent", Pattern: "`([^`\\\\]|\\\\.)*`"},
		{Name: "QuotedIdent", Pattern: `"(""|\\.|[^"\\])*"`},
		{Name: "Number", Pattern: `\d+(\.\d*)?([eE][+-]?\d+)?`},
		{Name: "Keyword", Pattern: token.KeywordPattern() + `\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_$]*`},
		{Name: "NotEq", Pattern: `!=|<>`},
		{Name: "LtEq", Pattern: `<=`},
		{Name: "GtEq", Pattern: `>=`},
		{Name: "Concat", Pattern: `\|\|`},
		{Name: "Punct", Pattern: `[(),.;=+\-*/%<>\[\]!]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	sqlParser = participle.MustBuild[Statement](
		participle.Lexer(sqlLexer),
		participle.Elide("Comment", "MultilineComment", "Whitespace"),
		participle.UseLookahead(4),
	)
)

// normalizeKeywords upper-cases reserved keywords in place so the grammar's
// literal terminals match. It works on scanned tokens rather than regexes so
// string literals and quoted identifiers are never touched, and replacements
// keep every byte offset stable.
func normalizeKeywords(sql string) string {
	tokens, _ := token.Scan(sql)
	buf := []byte(sql)
	for _, t := range tokens {
		if t.Kind == token.Ident && token.IsKeyword(t.Text) {
			copy(buf[t.Span.Start.Offset:], strings.ToUpper(t.Text))
		}
	}
	return string(buf)
}

// Parse parses a single SQL statement (no trailing semicolon) and returns the
// native parse tree. The returned error wraps the participle error, which
// carries the source position of the failure.
func Parse(sql string) (*Statement, error) {
	stmt, err := sqlParser.ParseString("", normalizeKeywords(sql))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse SQL")
	}
	return stmt, nil
}
