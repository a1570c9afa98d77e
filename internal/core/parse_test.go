package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessageDate(t *testing.T) {
	t.Run("offset-based format", func(t *testing.T) {
		ts, err := ParseMessageDate("Tue, 01 Jan 2024 10:00:00 +0000")
		require.NoError(t, err)
		assert.Equal(t, int64(1704103200), ts)
	})

	t.Run("named timezone format", func(t *testing.T) {
		ts, err := ParseMessageDate("Tue, 01 Jan 2024 10:00:00 UTC")
		require.NoError(t, err)
		assert.Equal(t, int64(1704103200), ts)
	})

	t.Run("parenthesized zone comment is stripped", func(t *testing.T) {
		ts, err := ParseMessageDate("Tue, 01 Jan 2024 10:00:00 +0000 (UTC)")
		require.NoError(t, err)
		assert.Equal(t, int64(1704103200), ts)
	})

	t.Run("single-digit day", func(t *testing.T) {
		_, err := ParseMessageDate("Mon, 1 Jan 2024 08:30:00 +0100")
		require.NoError(t, err)
	})

	t.Run("unparseable date fails", func(t *testing.T) {
		_, err := ParseMessageDate("not a date")
		assert.Error(t, err)
	})
}

func TestParseSender(t *testing.T) {
	t.Run("display name with address", func(t *testing.T) {
		sender := ParseSender("Jane Doe <jane@example.com>")
		assert.Equal(t, "Jane Doe", sender.Name)
		assert.Equal(t, "jane@example.com", sender.Address)
	})

	t.Run("bare address used for both fields", func(t *testing.T) {
		sender := ParseSender("jane@example.com")
		assert.Equal(t, "jane@example.com", sender.Name)
		assert.Equal(t, "jane@example.com", sender.Address)
	})

	t.Run("empty display name", func(t *testing.T) {
		sender := ParseSender("<jane@example.com>")
		assert.Equal(t, "", sender.Name)
		assert.Equal(t, "jane@example.com", sender.Address)
	})
}
