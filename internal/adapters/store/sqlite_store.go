package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/core"
)

// SQLiteStore is a SQLite implementation of the RecordStore interface.
// Deduplication rides on the primary key; reads are always ordered by
// timestamp so the table semantics match the CSV store.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (and if needed creates) the table at dbPath.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS emails (
			id TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			date TEXT,
			sender_name TEXT,
			sender_address TEXT,
			subject TEXT,
			body TEXT,
			body_summary TEXT,
			has_attachments BOOLEAN,
			attachment_type TEXT,
			attachment_text TEXT,
			attachment_summary TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_emails_timestamp ON emails(timestamp)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Merge upserts records in one transaction; a failure rolls back and leaves
// the prior table intact.
func (s *SQLiteStore) Merge(ctx context.Context, records []*core.EmailRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO emails (
			id, timestamp, date, sender_name, sender_address, subject,
			body, body_summary, has_attachments, attachment_type,
			attachment_text, attachment_summary
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.Timestamp, r.RawDate, r.Sender.Name, r.Sender.Address, r.Subject,
			r.Body, r.BodySummary, r.HasAttachments, r.AttachmentType,
			r.AttachmentText, r.AttachmentSummary,
		); err != nil {
			return fmt.Errorf("failed to upsert record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit merge: %w", err)
	}

	s.logger.Info("Merged records into table", zap.Int("new", len(records)))
	return nil
}

// All returns every row in ascending timestamp order.
func (s *SQLiteStore) All(ctx context.Context) ([]*core.EmailRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, date, sender_name, sender_address, subject,
			body, body_summary, has_attachments, attachment_type,
			attachment_text, attachment_summary
		FROM emails
		ORDER BY timestamp ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query table: %w", err)
	}
	defer rows.Close()

	var records []*core.EmailRecord
	for rows.Next() {
		r := &core.EmailRecord{}
		if err := rows.Scan(
			&r.ID, &r.Timestamp, &r.RawDate, &r.Sender.Name, &r.Sender.Address, &r.Subject,
			&r.Body, &r.BodySummary, &r.HasAttachments, &r.AttachmentType,
			&r.AttachmentText, &r.AttachmentSummary,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
