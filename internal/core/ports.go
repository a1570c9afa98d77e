package core

import (
	"context"
)

// Mailbox defines the interface for listing and fetching messages from a mailbox.
type Mailbox interface {
	// ListMessageIDs returns identifiers of candidate messages matching the
	// query, newest first. An empty query means "the most recent max messages".
	ListMessageIDs(ctx context.Context, query string, max int64) ([]string, error)

	// GetMessage fetches the full structured message for an identifier.
	GetMessage(ctx context.Context, id string) (*Message, error)

	// GetAttachment fetches and decodes an attachment payload.
	GetAttachment(ctx context.Context, messageID, attachmentID string) ([]byte, error)
}

// Summarizer defines the interface for condensing text.
type Summarizer interface {
	// Summarize returns a condensed version of text. Empty or whitespace-only
	// input yields SentinelNoContent without calling the external capability.
	Summarize(ctx context.Context, text string) (string, error)
}

// Extractor defines the interface for extracting text from an attachment
// stored as a transient local file. The caller owns the file's lifecycle.
type Extractor interface {
	ExtractFile(ctx context.Context, path string, kind AttachmentType) (string, error)
}

// RecordStore defines the interface for the durable, deduplicated,
// time-ordered table of harvested records.
type RecordStore interface {
	// Merge unions records into the table, deduplicates by ID and rewrites
	// the table sorted ascending by timestamp. A failed merge leaves the
	// prior table intact.
	Merge(ctx context.Context, records []*EmailRecord) error

	// All returns every row of the table in ascending timestamp order.
	All(ctx context.Context) ([]*EmailRecord, error)
}

// WatermarkStore persists the latest-processed timestamp across restarts.
type WatermarkStore interface {
	// Load returns the watermark and whether one has ever been saved.
	Load() (int64, bool, error)

	// Save records a new watermark.
	Save(ts int64) error
}
