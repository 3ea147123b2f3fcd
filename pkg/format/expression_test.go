package format_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatter_expressions(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected []string
	}{
		{
			name:     "arithmetic precedence needs no parens",
			sql:      "select a + b * c from t",
			expected: []string{"SELECT a + b * c", "FROM t"},
		},
		{
			name:     "required parens reappear",
			sql:      "select (a + b) * c from t",
			expected: []string{"SELECT (a + b) * c", "FROM t"},
		},
		{
			name:     "redundant parens disappear",
			sql:      "select (a) + (b * c) from t",
			expected: []string{"SELECT a + b * c", "FROM t"},
		},
		{
			name:     "concat chain",
			sql:      "select a || b || c from t",
			expected: []string{"SELECT a || b || c", "FROM t"},
		},
		{
			name:     "unary minus",
			sql:      "select -a from t",
			expected: []string{"SELECT -a", "FROM t"},
		},
		{
			name:     "not binds looser than comparison",
			sql:      "select id from t where not a = 1",
			expected: []string{"SELECT id", "FROM t", "WHERE NOT a = 1"},
		},
		{
			name:     "between",
			sql:      "select id from t where a between 1 and 10",
			expected: []string{"SELECT id", "FROM t", "WHERE a BETWEEN 1 AND 10"},
		},
		{
			name:     "in list",
			sql:      "select id from t where b in (1, 2, 3)",
			expected: []string{"SELECT id", "FROM t", "WHERE b IN (1, 2, 3)"},
		},
		{
			name:     "in subquery",
			sql:      "select id from t where id in (select id from u)",
			expected: []string{"SELECT id", "FROM t", "WHERE id IN (SELECT id FROM u)"},
		},
		{
			name:     "is null and is not null",
			sql:      "select id from t where a is null and b is not null",
			expected: []string{"SELECT id", "FROM t", "WHERE a IS NULL", "    AND b IS NOT NULL"},
		},
		{
			name:     "like and not like",
			sql:      "select id from t where a like 'x%' and b not like 'y%'",
			expected: []string{"SELECT id", "FROM t", "WHERE a LIKE 'x%'", "    AND b NOT LIKE 'y%'"},
		},
		{
			name:     "exists",
			sql:      "select id from t where exists (select 1 from u where u.id = t.id)",
			expected: []string{"SELECT id", "FROM t", "WHERE EXISTS (SELECT 1 FROM u WHERE u.id = t.id)"},
		},
		{
			name:     "searched case",
			sql:      "select case when x > 0 then 'pos' else 'neg' end from t",
			expected: []string{"SELECT CASE WHEN x > 0 THEN 'pos' ELSE 'neg' END", "FROM t"},
		},
		{
			name:     "simple case",
			sql:      "select case x when 1 then 'one' when 2 then 'two' end from t",
			expected: []string{"SELECT CASE x WHEN 1 THEN 'one' WHEN 2 THEN 'two' END", "FROM t"},
		},
		{
			name:     "cast upper cases the type",
			sql:      "select cast(x as varchar(10)) from t",
			expected: []string{"SELECT CAST(x AS VARCHAR(10))", "FROM t"},
		},
		{
			name:     "extract",
			sql:      "select extract(year from ts) from t",
			expected: []string{"SELECT EXTRACT(YEAR FROM ts)", "FROM t"},
		},
		{
			name:     "interval",
			sql:      "select ts + interval 1 day from t",
			expected: []string{"SELECT ts + INTERVAL 1 DAY", "FROM t"},
		},
		{
			name:     "builtin function upper cased",
			sql:      "select Max(a), coalesce(b, 0) from t",
			expected: []string{"SELECT", "    MAX(a)", "    , COALESCE(b, 0)", "FROM t"},
		},
		{
			name:     "user function kept as written",
			sql:      "select my_func(a) from t",
			expected: []string{"SELECT my_func(a)", "FROM t"},
		},
		{
			name:     "count distinct",
			sql:      "select count(distinct city) from t",
			expected: []string{"SELECT COUNT(DISTINCT city)", "FROM t"},
		},
		{
			name:     "window function",
			sql:      "select rank() over (partition by city order by score desc) from players",
			expected: []string{"SELECT RANK() OVER (PARTITION BY city ORDER BY score DESC)", "FROM players"},
		},
		{
			name: "window frame",
			sql:  "select sum(x) over (order by ts rows between unbounded preceding and current row) from m",
			expected: []string{
				"SELECT SUM(x) OVER (ORDER BY ts ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)",
				"FROM m",
			},
		},
		{
			name:     "not equal normalized",
			sql:      "select id from t where a <> b",
			expected: []string{"SELECT id", "FROM t", "WHERE a != b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, formatOne(t, tt.sql))
		})
	}
}
