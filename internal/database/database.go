package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

// DB wraps the SQLite connection for the scheduling service.
type DB struct {
	*sql.DB
	path   string
	logger *zerolog.Logger
}

var (
	ErrNotFound = errors.New("not found")
)

// New opens (creating if necessary) the scheduling database.
func New(path string, logger *zerolog.Logger) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode and a busy timeout keep the single-writer model responsive.
	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	instance := &DB{DB: db, path: path, logger: logger}
	if err := instance.createTables(); err != nil {
		return nil, fmt.Errorf("create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("database initialized")
	return instance, nil
}

// Path returns the on-disk database file path (used by the backup service).
func (db *DB) Path() string {
	return db.path
}

func (db *DB) createTables() error {
	queries := []string{
		// Weekly availability snapshots, one JSON document per caregiver.
		// Written whole, never diffed.
		`CREATE TABLE IF NOT EXISTS availability_snapshots (
			caregiver_id TEXT PRIMARY KEY,
			snapshot TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		// Per-caregiver settings. setup_complete is deliberately a
		// 'true'/'false' string, matching the legacy storage contract.
		`CREATE TABLE IF NOT EXISTS caregiver_settings (
			caregiver_id TEXT PRIMARY KEY,
			setup_complete TEXT NOT NULL DEFAULT 'false',
			telegram_chat_id INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL
		)`,
		// Care tasks attached to bookings. position preserves the order
		// the marketplace sent; only completed is ever mutated here.
		`CREATE TABLE IF NOT EXISTS care_tasks (
			id TEXT PRIMARY KEY,
			booking_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			tag TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			date TEXT,
			start_time TEXT,
			end_time TEXT,
			completed BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_care_tasks_booking ON care_tasks(booking_id, position)`,
		// Reminder deduplication log.
		`CREATE TABLE IF NOT EXISTS reminder_log (
			booking_id TEXT PRIMARY KEY,
			sent_at DATETIME NOT NULL
		)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}
