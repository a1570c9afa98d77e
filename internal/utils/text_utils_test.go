package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	t.Run("within limit unchanged", func(t *testing.T) {
		assert.Equal(t, "short", tp.TruncateText("short", 100))
	})

	t.Run("no limit unchanged", func(t *testing.T) {
		assert.Equal(t, "anything", tp.TruncateText("anything", 0))
	})

	t.Run("over limit truncated with marker", func(t *testing.T) {
		out := tp.TruncateText(strings.Repeat("a", 50), 10)
		assert.True(t, strings.HasPrefix(out, strings.Repeat("a", 10)))
		assert.Contains(t, out, "Content truncated")
	})

	t.Run("never splits a multi-byte rune", func(t *testing.T) {
		// "héllo" truncated mid-rune must back off to a valid boundary.
		out := tp.TruncateText("héllo", 2)
		assert.True(t, strings.HasPrefix(out, "h"))
		assert.NotContains(t, out, "\xc3")
	})
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	t.Run("valid input unchanged", func(t *testing.T) {
		assert.Equal(t, "héllo wörld", tp.SanitizeUTF8("héllo wörld"))
	})

	t.Run("invalid bytes dropped", func(t *testing.T) {
		assert.Equal(t, "ab", tp.SanitizeUTF8("a\xffb"))
	})
}

func TestProcessText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	out := tp.ProcessText("a\xffb"+strings.Repeat("c", 50), 20)
	assert.Contains(t, out, "Content truncated")
	assert.NotContains(t, out, "\xff")
}
