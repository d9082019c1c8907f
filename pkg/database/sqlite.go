package database

import (
	"fmt"
	"net/url"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/fitstudio/studio-api/pkg/config"
)

// OpenSQLite returns a configured embedded database handle. The store is
// local and single-process, so a single connection avoids writer contention
// entirely.
func OpenSQLite(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?%s", cfg.Path, pragmas(cfg).Encode())

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// OpenMemory opens a throwaway in-memory database. Used as the startup
// fallback when the configured file cannot be opened, and by tests.
func OpenMemory() (*sqlx.DB, error) {
	return OpenSQLite(config.DatabaseConfig{Path: ":memory:", BusyTimeoutMS: 5000})
}

func pragmas(cfg config.DatabaseConfig) url.Values {
	v := url.Values{}
	v.Add("_pragma", "journal_mode(WAL)")
	v.Add("_pragma", "foreign_keys(1)")
	if cfg.BusyTimeoutMS > 0 {
		v.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeoutMS))
	}
	return v
}
