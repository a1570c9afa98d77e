// Package store provides record store adapters for the harvested table.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/core"
)

// csvRow is the on-disk shape of one record. The header row follows the
// struct tags.
type csvRow struct {
	ID                string `csv:"id"`
	Timestamp         int64  `csv:"timestamp"`
	Date              string `csv:"date"`
	SenderName        string `csv:"sender_name"`
	SenderAddress     string `csv:"sender_address"`
	Subject           string `csv:"subject"`
	Body              string `csv:"body"`
	BodySummary       string `csv:"body_summary"`
	HasAttachments    bool   `csv:"has_attachments"`
	AttachmentType    string `csv:"attachment_type"`
	AttachmentText    string `csv:"attachment_text"`
	AttachmentSummary string `csv:"attachment_summary"`
}

// CSVStore is a CSV-file implementation of the RecordStore interface.
// Writes replace the whole table atomically via rename so a concurrent
// reader never observes a partially-written file.
type CSVStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewCSVStore creates a CSV record store. The file is created on first merge.
func NewCSVStore(path string, logger *zap.Logger) (*CSVStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create table directory: %w", err)
	}
	return &CSVStore{path: path, logger: logger}, nil
}

// Merge unions records into the table, deduplicates by ID and rewrites the
// file sorted ascending by timestamp. A failure leaves the prior file intact.
func (s *CSVStore) Merge(ctx context.Context, records []*core.EmailRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.readAll()
	if err != nil {
		return err
	}

	merged := core.MergeRecords(existing, records)
	out, err := gocsv.MarshalString(toRows(merged))
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}

	// Write to a sibling temp file and rename so readers never see a
	// partially-written table.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".table-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp table: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(out); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close table: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace table: %w", err)
	}

	s.logger.Info("Merged records into table",
		zap.String("path", s.path),
		zap.Int("new", len(records)),
		zap.Int("total", len(merged)))
	return nil
}

// All returns every row of the table in ascending timestamp order.
func (s *CSVStore) All(ctx context.Context) ([]*core.EmailRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *CSVStore) readAll() ([]*core.EmailRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read table: %w", err)
	}

	var rows []*csvRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode table: %w", err)
	}

	records := make([]*core.EmailRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, fromRow(r))
	}
	return records, nil
}

func toRows(records []*core.EmailRecord) []*csvRow {
	rows := make([]*csvRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, &csvRow{
			ID:                r.ID,
			Timestamp:         r.Timestamp,
			Date:              r.RawDate,
			SenderName:        r.Sender.Name,
			SenderAddress:     r.Sender.Address,
			Subject:           r.Subject,
			Body:              r.Body,
			BodySummary:       r.BodySummary,
			HasAttachments:    r.HasAttachments,
			AttachmentType:    r.AttachmentType,
			AttachmentText:    r.AttachmentText,
			AttachmentSummary: r.AttachmentSummary,
		})
	}
	return rows
}

func fromRow(r *csvRow) *core.EmailRecord {
	return &core.EmailRecord{
		ID:                r.ID,
		Timestamp:         r.Timestamp,
		RawDate:           r.Date,
		Sender:            core.Sender{Name: r.SenderName, Address: r.SenderAddress},
		Subject:           r.Subject,
		Body:              r.Body,
		BodySummary:       r.BodySummary,
		HasAttachments:    r.HasAttachments,
		AttachmentType:    r.AttachmentType,
		AttachmentText:    r.AttachmentText,
		AttachmentSummary: r.AttachmentSummary,
	}
}
