package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date headers arrive in two accepted shapes: a numeric-offset zone and a
// named zone, optionally followed by a parenthesized zone comment like
// "(UTC)" which is stripped before parsing.
var dateLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
}

var (
	zoneCommentPattern = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	senderPattern      = regexp.MustCompile(`^(.*)<(.*)>`)
)

// ParseMessageDate converts a Date header value to epoch seconds. Messages
// whose dates fail both layouts are skipped by the sync engine.
func ParseMessageDate(raw string) (int64, error) {
	cleaned := strings.TrimSpace(zoneCommentPattern.ReplaceAllString(raw, ""))
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, fmt.Errorf("unparseable date %q", raw)
}

// ParseSender splits a From header of the form "Name <address>". When no
// angle-bracket address is present the raw value is used for both fields.
func ParseSender(raw string) Sender {
	if m := senderPattern.FindStringSubmatch(raw); m != nil {
		return Sender{
			Name:    strings.TrimSpace(m[1]),
			Address: strings.TrimSpace(m[2]),
		}
	}
	return Sender{Name: raw, Address: raw}
}
