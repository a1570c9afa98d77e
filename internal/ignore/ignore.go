// Package ignore filters out messages that should never be harvested.
package ignore

import (
	"strings"

	"go.uber.org/zap"
)

// Checker skips messages whose sender or subject matches a configured rule.
type Checker struct {
	senders  []string
	keywords []string
	logger   *zap.Logger
}

// NewChecker creates a checker from sender substrings and subject keywords.
// Matching is case-insensitive substring matching.
func NewChecker(senders, keywords []string, logger *zap.Logger) *Checker {
	normalize := func(values []string) []string {
		out := make([]string, 0, len(values))
		for _, v := range values {
			v = strings.ToLower(strings.TrimSpace(v))
			if v != "" {
				out = append(out, v)
			}
		}
		return out
	}

	c := &Checker{
		senders:  normalize(senders),
		keywords: normalize(keywords),
		logger:   logger,
	}
	if len(c.senders)+len(c.keywords) > 0 && logger != nil {
		logger.Info("Initialized ignore rules",
			zap.Strings("senders", c.senders),
			zap.Strings("subject_keywords", c.keywords))
	}
	return c
}

// ShouldSkip reports whether a message from the given sender with the given
// subject matches any ignore rule.
func (c *Checker) ShouldSkip(from, subject string) bool {
	lowerFrom := strings.ToLower(from)
	for _, sender := range c.senders {
		if strings.Contains(lowerFrom, sender) {
			if c.logger != nil {
				c.logger.Debug("Ignoring message by sender rule",
					zap.String("from", from),
					zap.String("rule", sender))
			}
			return true
		}
	}

	lowerSubject := strings.ToLower(subject)
	for _, keyword := range c.keywords {
		if strings.Contains(lowerSubject, keyword) {
			if c.logger != nil {
				c.logger.Debug("Ignoring message by subject rule",
					zap.String("subject", subject),
					zap.String("rule", keyword))
			}
			return true
		}
	}

	return false
}
