// Package storage persists an audit trail of rig operations issued by
// the daemon, backed by SQLite.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded rig operation.
type Entry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Op        string    `json:"op"`
	Detail    string    `json:"detail"`
	OK        bool      `json:"ok"`
	Error     string    `json:"error,omitempty"`
}

// AuditLog records rig operations and keeps at most maxEntries rows.
type AuditLog struct {
	db         *sql.DB
	dbPath     string
	maxEntries int
}

// NewAuditLog opens (creating if needed) the audit database at dbPath.
func NewAuditLog(dbPath string, maxEntries int) (*AuditLog, error) {
	if dbPath == "" {
		dbPath = "./id5100d.db"
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=10000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a := &AuditLog{db: db, dbPath: dbPath, maxEntries: maxEntries}
	if err := a.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize audit log: %w", err)
	}
	return a, nil
}

func (a *AuditLog) createTables() error {
	_, err := a.db.Exec(`
		CREATE TABLE IF NOT EXISTS operations (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp DATETIME NOT NULL,
			op        TEXT NOT NULL,
			detail    TEXT NOT NULL DEFAULT '',
			ok        BOOLEAN NOT NULL,
			error     TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_operations_timestamp ON operations(timestamp);
	`)
	return err
}

// Record appends one operation outcome and prunes old rows beyond the
// configured maximum.
func (a *AuditLog) Record(op, detail string, opErr error) error {
	errText := ""
	ok := true
	if opErr != nil {
		ok = false
		errText = opErr.Error()
	}

	_, err := a.db.Exec(
		`INSERT INTO operations (timestamp, op, detail, ok, error) VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC(), op, detail, ok, errText,
	)
	if err != nil {
		return fmt.Errorf("failed to record operation: %w", err)
	}

	if a.maxEntries > 0 {
		_, err = a.db.Exec(
			`DELETE FROM operations WHERE id NOT IN
				(SELECT id FROM operations ORDER BY id DESC LIMIT ?)`,
			a.maxEntries,
		)
		if err != nil {
			return fmt.Errorf("failed to prune audit log: %w", err)
		}
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (a *AuditLog) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := a.db.Query(
		`SELECT id, timestamp, op, detail, ok, error
		 FROM operations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Op, &e.Detail, &e.OK, &e.Error); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (a *AuditLog) Count() (int, error) {
	var n int
	err := a.db.QueryRow(`SELECT COUNT(*) FROM operations`).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (a *AuditLog) Close() error {
	return a.db.Close()
}
