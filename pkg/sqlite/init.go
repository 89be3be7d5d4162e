// Package sqlite registers the tuned sqlite3 driver used by locbot storage.
// Import for side effects.
package sqlite

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
)

const DriverName = "sqlite3_locbot"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			// WAL keeps concurrent conversations from blocking each other;
			// the busy timeout covers checkpointing stalls.
			_, err := conn.Exec(`
				PRAGMA journal_mode = WAL;
				PRAGMA busy_timeout = 5000;
				PRAGMA foreign_keys = ON;
			`, nil)
			return err
		},
	})
}
