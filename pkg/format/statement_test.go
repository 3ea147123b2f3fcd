package format_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatter_insertStatement(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected []string
	}{
		{
			name: "insert values",
			sql:  "insert into users (id, name) values (1, 'a'), (2, 'b')",
			expected: []string{
				"INSERT INTO users (id, name)",
				"VALUES",
				"    (1, 'a')",
				"    , (2, 'b')",
			},
		},
		{
			name: "insert without column list",
			sql:  "insert into users values (1, 'a')",
			expected: []string{
				"INSERT INTO users",
				"VALUES",
				"    (1, 'a')",
			},
		},
		{
			name: "insert select",
			sql:  "insert into archive (id) select id from users where active = 0",
			expected: []string{
				"INSERT INTO archive (id)",
				"SELECT id",
				"FROM users",
				"WHERE active = 0",
			},
		},
		{
			name: "qualified target",
			sql:  "insert into analytics.events (id) values (1)",
			expected: []string{
				"INSERT INTO analytics.events (id)",
				"VALUES",
				"    (1)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, formatOne(t, tt.sql))
		})
	}
}

func TestFormatter_updateStatement(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected []string
	}{
		{
			name: "single assignment stays on set line",
			sql:  "update users set active = 0 where id = 1",
			expected: []string{
				"UPDATE users",
				"SET active = 0",
				"WHERE id = 1",
			},
		},
		{
			name: "multiple assignments break out",
			sql:  "update users set name = 'x', active = 0 where id = 1",
			expected: []string{
				"UPDATE users",
				"SET",
				"    name = 'x'",
				"    , active = 0",
				"WHERE id = 1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, formatOne(t, tt.sql))
		})
	}
}

func TestFormatter_deleteStatement(t *testing.T) {
	expected := []string{
		"DELETE FROM users",
		"WHERE id = 1",
		"    AND active = 0",
	}
	require.Equal(t, expected, formatOne(t, "delete from users where id = 1 and active = 0"))
}

func TestFormatter_createTableStatement(t *testing.T) {
	sql := "create table if not exists users (" +
		"id int primary key, " +
		"name varchar(255) not null, " +
		"email varchar(255) unique, " +
		"created_at timestamp default now(), " +
		"primary key (id, email))"

	expected := []string{
		"CREATE TABLE IF NOT EXISTS users (",
		"    id INT PRIMARY KEY,",
		"    name VARCHAR(255) NOT NULL,",
		"    email VARCHAR(255) UNIQUE,",
		"    created_at TIMESTAMP DEFAULT NOW(),",
		"    PRIMARY KEY (id, email)",
		")",
	}

	require.Equal(t, expected, formatOne(t, sql))
}

func TestFormatter_statementComments(t *testing.T) {
	expected := []string{
		"-- clear inactive",
		"DELETE FROM users",
		"WHERE active = 0",
	}
	require.Equal(t, expected, formatOne(t, "-- clear inactive\ndelete from users where active = 0"))
}
