package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, ts int64, subject string) *EmailRecord {
	return &EmailRecord{ID: id, Timestamp: ts, Subject: subject}
}

func TestMergeRecords(t *testing.T) {
	t.Run("union sorted ascending by timestamp", func(t *testing.T) {
		existing := []*EmailRecord{record("a", 300, ""), record("b", 100, "")}
		incoming := []*EmailRecord{record("c", 200, "")}

		merged := MergeRecords(existing, incoming)
		require.Len(t, merged, 3)
		assert.Equal(t, "b", merged[0].ID)
		assert.Equal(t, "c", merged[1].ID)
		assert.Equal(t, "a", merged[2].ID)
	})

	t.Run("duplicate IDs keep the incoming record", func(t *testing.T) {
		existing := []*EmailRecord{record("a", 100, "old")}
		incoming := []*EmailRecord{record("a", 100, "new")}

		merged := MergeRecords(existing, incoming)
		require.Len(t, merged, 1)
		assert.Equal(t, "new", merged[0].Subject)
	})

	t.Run("idempotent", func(t *testing.T) {
		existing := []*EmailRecord{record("a", 100, ""), record("b", 200, "")}
		incoming := []*EmailRecord{record("b", 200, ""), record("c", 300, "")}

		once := MergeRecords(existing, incoming)
		twice := MergeRecords(once, incoming)
		assert.Equal(t, once, twice)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Empty(t, MergeRecords(nil, nil))

		merged := MergeRecords(nil, []*EmailRecord{record("a", 100, "")})
		require.Len(t, merged, 1)
	})

	t.Run("input slices untouched", func(t *testing.T) {
		existing := []*EmailRecord{record("a", 300, ""), record("b", 100, "")}
		MergeRecords(existing, nil)
		assert.Equal(t, "a", existing[0].ID)
		assert.Equal(t, "b", existing[1].ID)
	})
}
