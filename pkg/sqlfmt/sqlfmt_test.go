package sqlfmt_test

import (
	"testing"

	"github.com/sqleaner/sqleaner/pkg/format"
	. "github.com/sqleaner/sqleaner/pkg/sqlfmt"
	"github.com/stretchr/testify/require"
)

func TestFormat_canonicalLayout(t *testing.T) {
	input := "with cte as (select id, max(a) as a_max from t), cte2 as (select id, max(a) as a_max from t)\n" +
		"select cte1.a_max, cte2.a_max from cte as cte1 join cte2 as cte2 on cte1.id = cte2.id;"

	expected := `WITH cte AS (
    SELECT
        id
        , MAX(a) AS a_max
    FROM t
),
cte2 AS (
    SELECT
        id
        , MAX(a) AS a_max
    FROM t
)
SELECT
    cte1.a_max
    , cte2.a_max
FROM cte AS cte1
JOIN cte2 AS cte2 ON cte1.id = cte2.id
;
`

	result, err := Format(input)
	require.NoError(t, err)
	require.Equal(t, expected, result)
}

func TestFormat_idempotent(t *testing.T) {
	inputs := []string{
		"select id, name from users where active = 1 and age > 21 order by name",
		"with recent as (select id from events where ts > '2024-01-01') select count(*) from recent",
		"select u.id, p.title from users as u left join posts as p on u.id = p.user_id",
		"insert into users (id, name) values (1, 'a'), (2, 'b')",
		"update users set name = 'x', active = 0 where id = 1",
		"select \"User Name\", `order` from t where a is not null",
	}

	for _, input := range inputs {
		once, err := Format(input)
		require.NoError(t, err, "input: %s", input)

		twice, err := Format(once)
		require.NoError(t, err, "reformatting: %s", once)
		require.Equal(t, once, twice, "input: %s", input)
	}
}

func TestFormat_multipleStatements(t *testing.T) {
	result, err := Format("select 1; select 2;")
	require.NoError(t, err)
	require.Equal(t, "SELECT 1\n;\nSELECT 2\n;\n", result)
}

func TestFormat_missingTrailingSemicolon(t *testing.T) {
	result, err := Format("select id from users")
	require.NoError(t, err)
	require.Equal(t, "SELECT id\nFROM users\n;\n", result)
}

func TestFormat_commentOnlySegmentPreserved(t *testing.T) {
	result, err := Format("select 1;\n-- wrap up\n")
	require.NoError(t, err)
	require.Equal(t, "SELECT 1\n;\n-- wrap up\n", result)
}

func TestFormat_keywordCaseNormalized(t *testing.T) {
	result, err := Format("SeLeCt id FrOm users WhErE active = 1")
	require.NoError(t, err)
	require.Equal(t, "SELECT id\nFROM users\nWHERE active = 1\n;\n", result)
}

func TestFormat_identifierCasePreserved(t *testing.T) {
	result, err := Format("select UserId from Accounts")
	require.NoError(t, err)
	require.Equal(t, "SELECT UserId\nFROM Accounts\n;\n", result)
}

func TestFormat_keywordShapedIdentifiersKeepTheirCase(t *testing.T) {
	result, err := Format("select First, Last from users")
	require.NoError(t, err)
	require.Equal(t, "SELECT\n    First\n    , Last\nFROM users\n;\n", result)
}

func TestFormat_errorReportsFailedStatement(t *testing.T) {
	_, err := Format("select 1; definitely not sql !?; select 2")
	require.Error(t, err)
	require.Contains(t, err.Error(), "statement 2")
}

func TestFormat_allOrNothing(t *testing.T) {
	result, err := Format("select 1; nonsense here")
	require.Error(t, err)
	require.Empty(t, result)
}

func TestFormat_customIndent(t *testing.T) {
	f := New(&format.FormatterOptions{IndentSize: 2})
	result, err := f.Format("select id, name from users")
	require.NoError(t, err)
	require.Equal(t, "SELECT\n  id\n  , name\nFROM users\n;\n", result)
}
