package token

import "strings"

// reservedKeywords is the fixed set of words the formatter treats as SQL
// keywords for case normalization. Quoted identifiers are never checked
// against this set.
var reservedKeywords = []string{
	"ALL", "AND", "AS", "ASC", "BETWEEN", "BY", "CASE", "CAST", "CREATE",
	"CROSS", "CURRENT", "DEFAULT", "DELETE", "DESC", "DISTINCT", "ELSE", "END",
	"EXCEPT", "EXISTS", "EXTRACT", "FALSE", "FIRST", "FOLLOWING", "FROM",
	"FULL", "GROUP", "HAVING", "IF", "IN", "INNER", "INSERT", "INTERSECT",
	"INTERVAL", "INTO", "IS", "JOIN", "KEY", "LAST", "LEFT", "LIKE", "LIMIT",
	"NOT", "NULL", "NULLS", "OFFSET", "ON", "OR", "ORDER", "OUTER", "OVER",
	"PARTITION", "PRECEDING", "PRIMARY", "RANGE", "RIGHT", "ROW", "ROWS",
	"SELECT", "SET", "TABLE", "THEN", "TRUE", "UNBOUNDED", "UNION", "UNIQUE",
	"UPDATE", "USING", "VALUES", "WHEN", "WHERE", "WITH",
}

// builtinFunctions is the set of well-known SQL function names that are
// upper-cased on output. Function names outside this set are user-defined and
// printed verbatim.
var builtinFunctions = []string{
	"ABS", "AVG", "CEIL", "CHAR_LENGTH", "COALESCE", "CONCAT", "COUNT",
	"DATE_TRUNC", "DENSE_RANK", "FIRST_VALUE", "FLOOR", "GREATEST", "IFNULL",
	"LAG", "LAST_VALUE", "LEAD", "LEAST", "LENGTH", "LOWER", "LTRIM", "MAX",
	"MIN", "NOW", "NTILE", "NULLIF", "POWER", "RANK", "REPLACE", "ROUND",
	"ROW_NUMBER", "RTRIM", "SQRT", "SUBSTR", "SUBSTRING", "SUM", "TRIM",
	"UPPER",
}

var (
	keywordSet  = make(map[string]struct{}, len(reservedKeywords))
	functionSet = make(map[string]struct{}, len(builtinFunctions))
)

func init() {
	for _, kw := range reservedKeywords {
		keywordSet[kw] = struct{}{}
	}
	for _, fn := range builtinFunctions {
		functionSet[fn] = struct{}{}
	}
}

// IsKeyword reports whether word is a reserved keyword, case-insensitively.
func IsKeyword(word string) bool {
	_, ok := keywordSet[strings.ToUpper(word)]
	return ok
}

// IsBuiltinFunction reports whether name is a well-known SQL function,
// case-insensitively.
func IsBuiltinFunction(name string) bool {
	_, ok := functionSet[strings.ToUpper(name)]
	return ok
}

// KeywordPattern returns the alternation of all reserved keywords, longest
// first, suitable for embedding in a lexer rule.
func KeywordPattern() string {
	words := make([]string, len(reservedKeywords))
	copy(words, reservedKeywords)
	// Longest-first so e.g. INTO wins over IN at the same position.
	for i := 1; i < len(words); i++ {
		for j := i; j > 0 && len(words[j]) > len(words[j-1]); j-- {
			words[j], words[j-1] = words[j-1], words[j]
		}
	}
	return "(" + strings.Join(words, "|") + ")"
}
