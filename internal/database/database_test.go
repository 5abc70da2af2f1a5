package database

import (
	"context"
	"database/sql"
	"testing"

	"summoner-tracker/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InMemoryRunsMigrations(t *testing.T) {
	db, err := New(&config.Config{DBPath: ":memory:"}, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"summoners", "matches", "champion_stats"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestNew_MigrationsAreRepeatable(t *testing.T) {
	path := t.TempDir() + "/tracker.db"

	db, err := New(&config.Config{DBPath: path}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = New(&config.Config{DBPath: path}, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	var version int64
	require.NoError(t, db.QueryRow(`SELECT MAX(version_id) FROM goose_db_version`).Scan(&version))
	assert.Equal(t, int64(1), version)
}

func TestNew_PragmasApplyToEveryConnection(t *testing.T) {
	db, err := New(&config.Config{DBPath: t.TempDir() + "/tracker.db"}, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	// hold both so the pool has to open a second connection
	first, err := db.Conn(ctx)
	require.NoError(t, err)
	defer first.Close()
	second, err := db.Conn(ctx)
	require.NoError(t, err)
	defer second.Close()

	for i, conn := range []*sql.Conn{first, second} {
		var fk, busy int
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&busy))
		assert.Equal(t, 1, fk, "connection %d", i)
		assert.Equal(t, 5000, busy, "connection %d", i)
	}
}

func TestRemoteDSN(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		token string
		want  string
	}{
		{"no token", "libsql://tracker.turso.io", "", "libsql://tracker.turso.io"},
		{"token", "libsql://tracker.turso.io", "abc", "libsql://tracker.turso.io?authToken=abc"},
		{"existing query", "https://tracker.turso.io?tls=1", "abc", "https://tracker.turso.io?authToken=abc&tls=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := remoteDSN(tt.url, tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
