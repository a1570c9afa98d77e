package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/core"
)

func testRecord(id string, ts int64) *core.EmailRecord {
	return &core.EmailRecord{
		ID:                id,
		Timestamp:         ts,
		RawDate:           "Tue, 01 Jan 2024 10:00:00 +0000",
		Sender:            core.Sender{Name: "Jane Doe", Address: "jane@example.com"},
		Subject:           "subject " + id,
		Body:              "body",
		BodySummary:       "summary",
		AttachmentType:    core.SentinelNone,
		AttachmentText:    core.SentinelNone,
		AttachmentSummary: core.SentinelNone,
	}
}

func newTestCSVStore(t *testing.T) *CSVStore {
	t.Helper()
	s, err := NewCSVStore(filepath.Join(t.TempDir(), "emails.csv"), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestCSVStoreEmpty(t *testing.T) {
	s := newTestCSVStore(t)

	records, err := s.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCSVStoreMergeRoundTrip(t *testing.T) {
	s := newTestCSVStore(t)
	ctx := context.Background()

	in := []*core.EmailRecord{testRecord("b", 200), testRecord("a", 100)}
	require.NoError(t, s.Merge(ctx, in))

	records, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, in[1], records[0])
}

func TestCSVStoreMergeDedupes(t *testing.T) {
	s := newTestCSVStore(t)
	ctx := context.Background()

	require.NoError(t, s.Merge(ctx, []*core.EmailRecord{testRecord("a", 100)}))

	updated := testRecord("a", 100)
	updated.Subject = "updated"
	require.NoError(t, s.Merge(ctx, []*core.EmailRecord{updated, testRecord("c", 300)}))

	records, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "updated", records[0].Subject)
	assert.Equal(t, "c", records[1].ID)
}

func TestCSVStoreMergeIdempotent(t *testing.T) {
	s := newTestCSVStore(t)
	ctx := context.Background()

	batch := []*core.EmailRecord{testRecord("a", 100), testRecord("b", 200)}
	require.NoError(t, s.Merge(ctx, batch))
	require.NoError(t, s.Merge(ctx, batch))

	records, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
