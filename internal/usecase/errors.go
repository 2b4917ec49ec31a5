package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrSourceUnavailable means every candidate location of a stat feed
	// failed. Wrapped by SourceUnavailableError, which carries the
	// per-candidate failure list.
	ErrSourceUnavailable = errors.New("stat source unavailable")

	// ErrNoDataFound means the source answered but holds nothing for any
	// probed period.
	ErrNoDataFound = errors.New("no data found for any probed period")
)

// Attempt records one failed candidate fetch.
type Attempt struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// SourceUnavailableError reports total source failure with every candidate
// that was tried, in order.
type SourceUnavailableError struct {
	Source   string
	Attempts []Attempt
}

func (e *SourceUnavailableError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s (%s)", a.URL, a.Reason))
	}
	return fmt.Sprintf("%s: all %d candidates failed: %s", e.Source, len(e.Attempts), strings.Join(parts, "; "))
}

func (e *SourceUnavailableError) Unwrap() error {
	return ErrSourceUnavailable
}
