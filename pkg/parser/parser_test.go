package parser_test

import (
	"testing"

	. "github.com/sqleaner/sqleaner/pkg/parser"
	"github.com/stretchr/testify/require"
)

func TestParse_selectShapes(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"star", "SELECT * FROM users"},
		{"qualified star", "SELECT u.* FROM users AS u"},
		{"lowercase keywords", "select id from users where active = 1"},
		{"distinct", "SELECT DISTINCT city FROM users"},
		{"implicit table alias", "SELECT u.id FROM users u"},
		{"comma join", "SELECT a.id FROM a, b WHERE a.id = b.id"},
		{"join using", "SELECT id FROM a JOIN b USING (id, region)"},
		{"left outer join", "SELECT a.id FROM a LEFT OUTER JOIN b ON a.id = b.id"},
		{"cte", "WITH recent AS (SELECT id FROM events) SELECT id FROM recent"},
		{"multiple ctes", "WITH a AS (SELECT 1), b AS (SELECT 2) SELECT * FROM a, b"},
		{"subquery in from", "SELECT t.n FROM (SELECT count(*) AS n FROM users) AS t"},
		{"scalar subquery", "SELECT (SELECT max(id) FROM users) AS top"},
		{"group by having", "SELECT city, count(*) FROM users GROUP BY city HAVING count(*) > 10"},
		{"order limit offset", "SELECT id FROM t ORDER BY id DESC NULLS LAST LIMIT 10 OFFSET 5"},
		{"window function", "SELECT rank() OVER (PARTITION BY city ORDER BY score DESC) FROM players"},
		{"window frame", "SELECT sum(x) OVER (ORDER BY ts ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) FROM m"},
		{"case expression", "SELECT CASE WHEN x > 0 THEN 'pos' ELSE 'neg' END FROM t"},
		{"cast and extract", "SELECT CAST(x AS varchar(10)), EXTRACT(year FROM ts) FROM t"},
		{"between and in", "SELECT 1 FROM t WHERE a BETWEEN 1 AND 10 AND b IN (1, 2, 3)"},
		{"exists", "SELECT 1 FROM t WHERE EXISTS (SELECT 1 FROM u WHERE u.id = t.id)"},
		{"quoted identifiers", "SELECT \"User Name\", `order` FROM `my table`"},
		{"concat and interval", "SELECT a || b, ts + INTERVAL 1 day FROM t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Parse(tt.sql)
			require.NoError(t, err)
			require.NotNil(t, stmt.Select)
		})
	}
}

func TestParse_otherStatements(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		check func(t *testing.T, stmt *Statement)
	}{
		{
			name: "insert values",
			sql:  "INSERT INTO users (id, name) VALUES (1, 'a'), (2, 'b')",
			check: func(t *testing.T, stmt *Statement) {
				require.NotNil(t, stmt.Insert)
				require.Len(t, stmt.Insert.Columns, 2)
				require.Len(t, stmt.Insert.Rows, 2)
			},
		},
		{
			name: "insert select",
			sql:  "INSERT INTO archive (id) SELECT id FROM users WHERE active = 0",
			check: func(t *testing.T, stmt *Statement) {
				require.NotNil(t, stmt.Insert)
				require.NotNil(t, stmt.Insert.Query)
			},
		},
		{
			name: "update",
			sql:  "UPDATE users SET name = 'x', active = 0 WHERE id = 1",
			check: func(t *testing.T, stmt *Statement) {
				require.NotNil(t, stmt.Update)
				require.Len(t, stmt.Update.Assignments, 2)
				require.NotNil(t, stmt.Update.Where)
			},
		},
		{
			name: "delete",
			sql:  "DELETE FROM users WHERE id = 1",
			check: func(t *testing.T, stmt *Statement) {
				require.NotNil(t, stmt.Delete)
			},
		},
		{
			name: "create table",
			sql:  "CREATE TABLE users (id int PRIMARY KEY, name varchar(255) NOT NULL, PRIMARY KEY (id))",
			check: func(t *testing.T, stmt *Statement) {
				require.NotNil(t, stmt.CreateTable)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Parse(tt.sql)
			require.NoError(t, err)
			tt.check(t, stmt)
		})
	}
}

func TestParse_selectDetails(t *testing.T) {
	stmt, err := Parse("select id, max(a) as a_max from t")
	require.NoError(t, err)

	sel := stmt.Select
	require.NotNil(t, sel)
	require.Len(t, sel.Columns, 2)
	require.Nil(t, sel.Columns[0].Alias)
	require.NotNil(t, sel.Columns[1].Alias)
	require.Equal(t, "a_max", *sel.Columns[1].Alias)
	require.NotNil(t, sel.From)
	require.Len(t, sel.From.Tables, 1)
	require.Equal(t, "t", sel.From.Tables[0].TableName.Table)
}

func TestParse_cteDetails(t *testing.T) {
	stmt, err := Parse("WITH cte AS (SELECT id FROM t) SELECT id FROM cte")
	require.NoError(t, err)

	require.NotNil(t, stmt.Select.With)
	require.Len(t, stmt.Select.With.CTEs, 1)
	require.Equal(t, "cte", stmt.Select.With.CTEs[0].Name)
	require.NotNil(t, stmt.Select.With.CTEs[0].Query)
}

func TestParse_joinDetails(t *testing.T) {
	stmt, err := Parse("SELECT 1 FROM a LEFT JOIN b ON a.id = b.id")
	require.NoError(t, err)

	joins := stmt.Select.From.Joins
	require.Len(t, joins, 1)
	require.NotNil(t, joins[0].Kind)
	require.Equal(t, "LEFT", *joins[0].Kind)
	require.NotNil(t, joins[0].Condition)
	require.NotNil(t, joins[0].Condition.On)
}

func TestParse_errors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"empty", ""},
		{"keyword soup", "SELECT FROM WHERE"},
		{"unclosed paren", "SELECT (1 + 2 FROM t"},
		{"missing from target", "SELECT id FROM"},
		{"unsupported statement", "DROP TABLE users"},
		{"trailing garbage", "SELECT 1 FROM t extra ,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.sql)
			require.Error(t, err)
		})
	}
}

func TestParse_keywordNormalizationLeavesStringsAlone(t *testing.T) {
	stmt, err := Parse("select 'select from where' as s from t")
	require.NoError(t, err)

	col := stmt.Select.Columns[0]
	require.NotNil(t, col.Expression)
	require.NotNil(t, col.Alias)
	require.Equal(t, "s", *col.Alias)
}
