package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// IgnoreChecker reports whether a message should be skipped before any
// extraction or summarization work is spent on it.
type IgnoreChecker interface {
	ShouldSkip(from, subject string) bool
}

// SyncEngine runs one harvesting cycle: it lists candidate messages from
// the watermark, fetches each, extracts and summarizes content, and
// assembles records in listing order.
type SyncEngine struct {
	mailbox    Mailbox
	extractor  Extractor
	summarizer Summarizer
	ignore     IgnoreChecker
	logger     *zap.Logger
	pageLimit  int64
	tempDir    string
}

// NewSyncEngine creates a sync engine. ignore may be nil when no ignore
// rules are configured. tempDir is where transient attachment copies are
// written; empty means the system temp directory.
func NewSyncEngine(
	mailbox Mailbox,
	extractor Extractor,
	summarizer Summarizer,
	ignore IgnoreChecker,
	logger *zap.Logger,
	pageLimit int64,
	tempDir string,
) *SyncEngine {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &SyncEngine{
		mailbox:    mailbox,
		extractor:  extractor,
		summarizer: summarizer,
		ignore:     ignore,
		logger:     logger,
		pageLimit:  pageLimit,
		tempDir:    tempDir,
	}
}

// RunCycle performs one harvesting cycle. When haveWatermark is true only
// messages sent strictly after watermark are requested; otherwise the most
// recent pageLimit messages are fetched (bootstrap mode). It returns the
// assembled records in listing order and the maximum timestamp among them.
// A transport failure aborts the whole cycle with zero records so the next
// cycle retries from the same watermark.
func (e *SyncEngine) RunCycle(ctx context.Context, watermark int64, haveWatermark bool) ([]*EmailRecord, int64, error) {
	query := ""
	if haveWatermark {
		query = fmt.Sprintf("after:%d", watermark)
	}

	ids, err := e.mailbox.ListMessageIDs(ctx, query, e.pageLimit)
	if err != nil {
		return nil, 0, err
	}

	var records []*EmailRecord
	var maxTimestamp int64
	for _, id := range ids {
		msg, err := e.mailbox.GetMessage(ctx, id)
		if err != nil {
			return nil, 0, err
		}

		record, err := e.buildRecord(ctx, msg)
		if err != nil {
			return nil, 0, err
		}
		if record == nil {
			continue
		}

		records = append(records, record)
		if record.Timestamp > maxTimestamp {
			maxTimestamp = record.Timestamp
		}
	}

	return records, maxTimestamp, nil
}

// buildRecord assembles a record for one message. It returns (nil, nil) for
// messages that are skipped: missing or unparseable dates and messages
// matching ignore rules. Only transport failures return an error.
func (e *SyncEngine) buildRecord(ctx context.Context, msg *Message) (*EmailRecord, error) {
	if msg.Date == "" {
		e.logger.Debug("Skipping message without date header", zap.String("id", msg.ID))
		return nil, nil
	}

	timestamp, err := ParseMessageDate(msg.Date)
	if err != nil {
		e.logger.Warn("Skipping message with unparseable date",
			zap.String("id", msg.ID),
			zap.String("date", msg.Date))
		return nil, nil
	}

	if e.ignore != nil && e.ignore.ShouldSkip(msg.From, msg.Subject) {
		e.logger.Debug("Skipping ignored message",
			zap.String("id", msg.ID),
			zap.String("from", msg.From))
		return nil, nil
	}

	record := &EmailRecord{
		ID:        msg.ID,
		Timestamp: timestamp,
		RawDate:   msg.Date,
		Sender:    ParseSender(msg.From),
		Subject:   strings.TrimSpace(msg.Subject),
		Body:      msg.Snippet,
	}

	if err := e.fillAttachmentFields(ctx, msg, record); err != nil {
		return nil, err
	}

	record.BodySummary = e.summarize(ctx, msg.ID, "body", record.Body)

	return record, nil
}

// fillAttachmentFields classifies the message's attachments and, when a
// retrievable payload exists, extracts and summarizes its content. Messages
// without filenamed parts keep all three fields at their "none" sentinels.
func (e *SyncEngine) fillAttachmentFields(ctx context.Context, msg *Message, record *EmailRecord) error {
	record.AttachmentType = SentinelNone
	record.AttachmentText = SentinelNone
	record.AttachmentSummary = SentinelNone

	part := FirstAttachmentPart(msg)
	if part == nil {
		return nil
	}

	record.HasAttachments = true
	kind := ClassifyFilename(part.Filename)
	record.AttachmentType = kind.String()

	// Structurally present but not retrievable: keep the sentinels.
	if part.AttachmentID == "" {
		return nil
	}

	payload, err := e.mailbox.GetAttachment(ctx, msg.ID, part.AttachmentID)
	if err != nil {
		return err
	}

	text, err := e.extractAttachment(ctx, part.Filename, payload, kind)
	if err != nil {
		e.logger.Warn("Attachment extraction failed",
			zap.String("id", msg.ID),
			zap.String("filename", part.Filename),
			zap.Error(err))
		record.AttachmentText = fmt.Sprintf("extraction error: %v", err)
		return nil
	}

	record.AttachmentText = text
	if text == SentinelNoText {
		record.AttachmentSummary = SentinelNoContent
		return nil
	}
	record.AttachmentSummary = e.summarize(ctx, msg.ID, "attachment", text)
	return nil
}

// extractAttachment writes the payload to a transient local copy, extracts
// text from it and removes the copy on every exit path.
func (e *SyncEngine) extractAttachment(ctx context.Context, filename string, payload []byte, kind AttachmentType) (string, error) {
	tmp, err := os.CreateTemp(e.tempDir, "attachment-*"+filepath.Ext(filename))
	if err != nil {
		return "", fmt.Errorf("failed to create transient attachment copy: %w", err)
	}
	path := tmp.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			e.logger.Warn("Failed to remove transient attachment copy",
				zap.String("path", path),
				zap.Error(err))
		}
	}()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write transient attachment copy: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close transient attachment copy: %w", err)
	}

	return e.extractor.ExtractFile(ctx, path, kind)
}

// summarize condenses text, substituting a sentinel when the external
// capability fails. Summaries are never fabricated locally.
func (e *SyncEngine) summarize(ctx context.Context, msgID, field, text string) string {
	summary, err := e.summarizer.Summarize(ctx, text)
	if err != nil {
		e.logger.Warn("Summarization failed",
			zap.String("id", msgID),
			zap.String("field", field),
			zap.Error(err))
		return SentinelNoSummary
	}
	return summary
}
