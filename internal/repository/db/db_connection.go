package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates the SQLite DB file, ensures tables exist, and seeds
// the room roster into people_detection.
func InitDB(path string, roster []string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite tolerates a single writer; the external detector writes this
	// file too, so keep the pool at one connection and rely on busy_timeout.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := seedRooms(db, roster); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

// Column names in people_detection stay as the deployed vision detector
// already writes them.
const schemaPeopleDetection = `
CREATE TABLE IF NOT EXISTS people_detection (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ruangan TEXT NOT NULL UNIQUE,
    peopleCount INTEGER DEFAULT -1,
    lastDetectedTimeStamp TEXT,
    lastUpdateTimeStamp TEXT
);
`

const schemaInitialIncident = `
CREATE TABLE IF NOT EXISTS initial_incident (
    id TEXT PRIMARY KEY,
    roomId TEXT NOT NULL,
    temperature REAL,
    smokeValue INTEGER,
    alertTime TIMESTAMP NOT NULL
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaPeopleDetection,
		schemaInitialIncident,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}

// seedRooms registers roster rooms so occupancy rows exist before the
// detector or any sensor ever reports.
func seedRooms(db *sql.DB, roster []string) error {
	for _, room := range roster {
		if room == "" {
			continue
		}
		if _, err := db.Exec("INSERT OR IGNORE INTO people_detection (ruangan) VALUES (?)", room); err != nil {
			return fmt.Errorf("seed room %q: %w", room, err)
		}
	}
	return nil
}
