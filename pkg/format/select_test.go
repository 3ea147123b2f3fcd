package format_test

import (
	"strings"
	"testing"

	"github.com/sqleaner/sqleaner/pkg/backend"
	. "github.com/sqleaner/sqleaner/pkg/format"
	"github.com/stretchr/testify/require"
)

// formatOne resolves one statement through the backend chain and renders it
// without the terminating semicolon.
func formatOne(t *testing.T, sql string) []string {
	t.Helper()

	_, stmt, err := backend.DefaultChain().Resolve(sql)
	require.NoError(t, err)
	return strings.Split(New(nil).Statement(stmt), "\n")
}

func TestFormatter_selectStatement(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected []string
	}{
		{
			name: "simple select",
			sql:  "select id from users",
			expected: []string{
				"SELECT id",
				"FROM users",
			},
		},
		{
			name: "select with multiple columns",
			sql:  "select id, name, email from users",
			expected: []string{
				"SELECT",
				"    id",
				"    , name",
				"    , email",
				"FROM users",
			},
		},
		{
			name: "select with alias",
			sql:  "select id as user_id from users",
			expected: []string{
				"SELECT id AS user_id",
				"FROM users",
			},
		},
		{
			name: "select distinct",
			sql:  "select distinct city from users",
			expected: []string{
				"SELECT DISTINCT city",
				"FROM users",
			},
		},
		{
			name: "select star",
			sql:  "select * from users",
			expected: []string{
				"SELECT *",
				"FROM users",
			},
		},
		{
			name: "qualified star",
			sql:  "select u.* from users as u",
			expected: []string{
				"SELECT u.*",
				"FROM users AS u",
			},
		},
		{
			name: "where simple",
			sql:  "select id from users where active = 1",
			expected: []string{
				"SELECT id",
				"FROM users",
				"WHERE active = 1",
			},
		},
		{
			name: "where chain splits per condition",
			sql:  "select id from t where a = 1 and b = 2 and c = 3",
			expected: []string{
				"SELECT id",
				"FROM t",
				"WHERE a = 1",
				"    AND b = 2",
				"    AND c = 3",
			},
		},
		{
			name: "where keeps required grouping",
			sql:  "select id from t where a = 1 and (b = 2 or c = 3)",
			expected: []string{
				"SELECT id",
				"FROM t",
				"WHERE a = 1",
				"    AND (b = 2 OR c = 3)",
			},
		},
		{
			name: "join with simple on stays inline",
			sql:  "select u.id, p.title from users as u left join posts as p on u.id = p.user_id",
			expected: []string{
				"SELECT",
				"    u.id",
				"    , p.title",
				"FROM users AS u",
				"LEFT JOIN posts AS p ON u.id = p.user_id",
			},
		},
		{
			name: "join with boolean on breaks out",
			sql:  "select a.id from a join b on a.id = b.id and a.region = b.region",
			expected: []string{
				"SELECT a.id",
				"FROM a",
				"JOIN b",
				"    ON a.id = b.id",
				"        AND a.region = b.region",
			},
		},
		{
			name: "join using",
			sql:  "select id from a join b using (id, region)",
			expected: []string{
				"SELECT id",
				"FROM a",
				"JOIN b USING (id, region)",
			},
		},
		{
			name: "left outer join keeps outer",
			sql:  "select a.id from a left outer join b on a.id = b.id",
			expected: []string{
				"SELECT a.id",
				"FROM a",
				"LEFT OUTER JOIN b ON a.id = b.id",
			},
		},
		{
			name: "cross join",
			sql:  "select a.id from a cross join b",
			expected: []string{
				"SELECT a.id",
				"FROM a",
				"CROSS JOIN b",
			},
		},
		{
			name: "comma joined tables stay inline",
			sql:  "select a.id from a, b where a.id = b.id",
			expected: []string{
				"SELECT a.id",
				"FROM a, b",
				"WHERE a.id = b.id",
			},
		},
		{
			name: "group having order limit",
			sql:  "select city, count(*) from users group by city having count(*) > 10 order by city asc limit 10 offset 5",
			expected: []string{
				"SELECT",
				"    city",
				"    , COUNT(*)",
				"FROM users",
				"GROUP BY city",
				"HAVING COUNT(*) > 10",
				"ORDER BY city ASC",
				"LIMIT 10 OFFSET 5",
			},
		},
		{
			name: "order by nulls last",
			sql:  "select id from t order by id desc nulls last",
			expected: []string{
				"SELECT id",
				"FROM t",
				"ORDER BY id DESC NULLS LAST",
			},
		},
		{
			name: "subquery in from breaks across lines",
			sql:  "select t.n from (select count(*) as n from users) as t",
			expected: []string{
				"SELECT t.n",
				"FROM (",
				"    SELECT COUNT(*) AS n",
				"    FROM users",
				") AS t",
			},
		},
		{
			name: "scalar subquery stays inline",
			sql:  "select (select max(id) from users) as top_id from t",
			expected: []string{
				"SELECT (SELECT MAX(id) FROM users) AS top_id",
				"FROM t",
			},
		},
		{
			name: "quoted identifiers kept verbatim",
			sql:  "select \"User Name\", `order` from t",
			expected: []string{
				"SELECT",
				"    \"User Name\"",
				"    , `order`",
				"FROM t",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, formatOne(t, tt.sql))
		})
	}
}

func TestFormatter_withClause(t *testing.T) {
	sql := "with cte as (select id, max(a) as a_max from t), " +
		"cte2 as (select id, max(a) as a_max from t) " +
		"select cte1.a_max, cte2.a_max " +
		"from cte as cte1 join cte2 as cte2 on cte1.id = cte2.id"

	expected := []string{
		"WITH cte AS (",
		"    SELECT",
		"        id",
		"        , MAX(a) AS a_max",
		"    FROM t",
		"),",
		"cte2 AS (",
		"    SELECT",
		"        id",
		"        , MAX(a) AS a_max",
		"    FROM t",
		")",
		"SELECT",
		"    cte1.a_max",
		"    , cte2.a_max",
		"FROM cte AS cte1",
		"JOIN cte2 AS cte2 ON cte1.id = cte2.id",
	}

	require.Equal(t, expected, formatOne(t, sql))
}

func TestFormatter_comments(t *testing.T) {
	sql := "-- top users\nselect id from users -- only ids\nwhere active = 1"

	expected := []string{
		"-- top users",
		"SELECT id",
		"FROM users -- only ids",
		"WHERE active = 1",
	}

	require.Equal(t, expected, formatOne(t, sql))
}

func TestFormatter_indentSize(t *testing.T) {
	_, stmt, err := backend.DefaultChain().Resolve("select id, name from users")
	require.NoError(t, err)

	f := New(&FormatterOptions{IndentSize: 2})
	expected := []string{
		"SELECT",
		"  id",
		"  , name",
		"FROM users",
	}
	require.Equal(t, expected, strings.Split(f.Statement(stmt), "\n"))
}
