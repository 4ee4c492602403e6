// Package apperr defines the error taxonomy shared by the highscores and
// pricing clients. Callers classify failures with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports an invalid local parameter. It is always raised
	// before any network call and never retried.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidCategory reports an unknown highscores category.
	ErrInvalidCategory = fmt.Errorf("%w: invalid highscores category", ErrConfiguration)
	// ErrInvalidWindow reports an unsupported averaging window for the price feed.
	ErrInvalidWindow = fmt.Errorf("%w: invalid price window", ErrConfiguration)

	// ErrNotFound reports a subject missing upstream or a failed local lookup.
	ErrNotFound = errors.New("not found")
	// ErrPlayerNotFound reports a player absent from every highscores board probed.
	ErrPlayerNotFound = fmt.Errorf("player %w", ErrNotFound)

	// ErrUpstream reports repeated or non-retryable failures from an upstream service.
	ErrUpstream = errors.New("upstream error")
	// ErrMalformedResponse reports a body that is not valid UTF-8 JSON.
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError carries the last HTTP status observed for a failed fetch.
type StatusError struct {
	Kind     error
	Status   int
	Subject  string
	URL      string
	Attempts int
}

func (e *StatusError) Error() string {
	subject := e.Subject
	if subject == "" {
		subject = e.URL
	}
	return fmt.Sprintf("%v: %s (status %d after %d attempt(s))", e.Kind, subject, e.Status, e.Attempts)
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}

// Status extracts the HTTP status from err, if it carries one.
func Status(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status, true
	}
	return 0, false
}
