package database

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"

	"summoner-tracker/internal/config"
	"summoner-tracker/internal/constants"

	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const memoryPath = ":memory:"

// sqliteDriver runs the connection pragmas on every pooled connection,
// since most of them are per-connection in SQLite.
const sqliteDriver = "sqlite3_tracker"

var pragmas = []struct {
	name  string
	value string
}{
	{"journal_mode", "WAL"},
	{"synchronous", "NORMAL"},
	{"cache_size", "-64000"},
	{"busy_timeout", "5000"},
	{"foreign_keys", "ON"},
	{"temp_store", "MEMORY"},
	{"mmap_size", "268435456"},
}

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{ConnectHook: optimizeSQLite})
}

// New opens the store. A DB_URL selects a remote libsql/Turso database,
// otherwise DB_PATH is a local SQLite file (":memory:" for a throwaway one).
func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	if cfg.DBURL != "" {
		return openRemote(cfg, logger)
	}

	logger.Info().Str("path", cfg.DBPath).Msg("connecting to database")

	db, err := sql.Open(sqliteDriver, cfg.DBPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DBPath == memoryPath {
		// every connection to :memory: is its own database
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	} else {
		db.SetMaxOpenConns(constants.DBMaxOpenConns)
		db.SetMaxIdleConns(constants.DBMaxIdleConns)
		db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
		db.SetConnMaxIdleTime(constants.DBMaxIdleTime)
	}

	// opens the first connection, which runs the pragmas
	if err := db.Ping(); err != nil {
		db.Close()
		logger.Error().Err(err).Msg("failed to optimize SQLite")
		return nil, fmt.Errorf("failed to optimize SQLite: %w", err)
	}
	if err := runMigrations(db, "sqlite3", logger); err != nil {
		db.Close()
		logger.Error().Err(err).Msg("failed to run migrations")
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("database connection established and optimized")
	return db, nil
}

func openRemote(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	logger.Info().Str("url", cfg.DBURL).Msg("connecting to remote libsql database")

	dsn, err := remoteDSN(cfg.DBURL, cfg.DBAuthToken)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("libsql", dsn)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to remote database")
		return nil, fmt.Errorf("failed to connect to remote database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logger.Warn().Err(err).Msg("failed to enable foreign keys on remote database")
	}
	if err := runMigrations(db, "turso", logger); err != nil {
		db.Close()
		logger.Error().Err(err).Msg("failed to run migrations")
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("remote database connection established")
	return db, nil
}

func runMigrations(db *sql.DB, dialect string, logger zerolog.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	logger.Info().Str("dialect", dialect).Msg("migrations completed successfully")
	return nil
}

// remoteDSN adds the auth token to the libsql URL, keeping any query
// parameters it already carries.
func remoteDSN(rawURL, authToken string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse DB_URL: %w", err)
	}
	if authToken != "" {
		q := u.Query()
		q.Set("authToken", authToken)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func optimizeSQLite(conn *sqlite3.SQLiteConn) error {
	for _, pragma := range pragmas {
		query := fmt.Sprintf("PRAGMA %s = %s", pragma.name, pragma.value)
		if _, err := conn.Exec(query, nil); err != nil {
			return fmt.Errorf("failed to set PRAGMA %s: %w", pragma.name, err)
		}
	}
	return nil
}
