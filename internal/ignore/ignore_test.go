package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestShouldSkipBySender(t *testing.T) {
	c := NewChecker([]string{"noreply@", "Marketing@Example.com"}, nil, zap.NewNop())

	assert.True(t, c.ShouldSkip("NoReply@shop.example.com", "Order"))
	assert.True(t, c.ShouldSkip("marketing@example.com", "News"))
	assert.False(t, c.ShouldSkip("jane@example.com", "Hello"))
}

func TestShouldSkipBySubjectKeyword(t *testing.T) {
	c := NewChecker(nil, []string{"unsubscribe", " NEWSLETTER "}, zap.NewNop())

	assert.True(t, c.ShouldSkip("jane@example.com", "Click to Unsubscribe"))
	assert.True(t, c.ShouldSkip("jane@example.com", "Weekly newsletter #42"))
	assert.False(t, c.ShouldSkip("jane@example.com", "Meeting tomorrow"))
}

func TestShouldSkipNoRules(t *testing.T) {
	c := NewChecker(nil, nil, zap.NewNop())
	assert.False(t, c.ShouldSkip("anyone@example.com", "anything"))
}

func TestNewCheckerDropsBlankRules(t *testing.T) {
	c := NewChecker([]string{"", "  "}, []string{""}, zap.NewNop())
	assert.False(t, c.ShouldSkip("anyone@example.com", "anything"))
}
