package core

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned by extractors for attachment categories
// they cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported format")

// AuthError is a fatal failure to establish a mailbox session. It aborts
// startup rather than a single cycle.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("mailbox authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// TransportError is a network-level failure while listing or fetching
// messages. It aborts the current cycle; the next cycle retries from the
// same watermark.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mailbox %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SummarizationError is a failure of the external summarization capability
// for a single field. The sync engine decides whether to substitute a
// sentinel or abort the record.
type SummarizationError struct {
	Provider string
	Err      error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("%s summarization failed: %v", e.Provider, e.Err)
}

func (e *SummarizationError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsTransportError reports whether err is a transport-level failure.
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
