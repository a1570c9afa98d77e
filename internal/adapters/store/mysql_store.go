package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/core"
)

// MySQLStore is a MySQL implementation of the RecordStore interface, for
// deployments that share the harvested table with other tools.
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore connects to MySQL and ensures the table exists.
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS emails (
			id VARCHAR(128) PRIMARY KEY,
			timestamp BIGINT NOT NULL,
			date TEXT,
			sender_name TEXT,
			sender_address TEXT,
			subject TEXT,
			body TEXT,
			body_summary TEXT,
			has_attachments BOOLEAN,
			attachment_type VARCHAR(32),
			attachment_text MEDIUMTEXT,
			attachment_summary TEXT,
			INDEX idx_emails_timestamp (timestamp)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{db: db, logger: logger}, nil
}

// Merge upserts records in one transaction.
func (s *MySQLStore) Merge(ctx context.Context, records []*core.EmailRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO emails (
			id, timestamp, date, sender_name, sender_address, subject,
			body, body_summary, has_attachments, attachment_type,
			attachment_text, attachment_summary
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			timestamp = VALUES(timestamp),
			date = VALUES(date),
			sender_name = VALUES(sender_name),
			sender_address = VALUES(sender_address),
			subject = VALUES(subject),
			body = VALUES(body),
			body_summary = VALUES(body_summary),
			has_attachments = VALUES(has_attachments),
			attachment_type = VALUES(attachment_type),
			attachment_text = VALUES(attachment_text),
			attachment_summary = VALUES(attachment_summary)
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
func (s *MySQLStore) All(ctx context.Context) ([]*core.EmailRecord, error) {
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
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
