package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound      = errors.New("resource not found")
	ErrEntryNotFound = fmt.Errorf("%w: entry", ErrNotFound)
	ErrCacheMiss     = fmt.Errorf("%w: cached analysis", ErrNotFound)

	// Detectors never return this; narration uses it to refuse an empty corpus.
	ErrInsufficientData = errors.New("insufficient data for analysis")

	ErrUnknownGranularity = errors.New("unknown period granularity")
	ErrUnknownCategory    = errors.New("unknown lexicon category")
	ErrInvalidPeriodKey   = errors.New("invalid period key")
)

// NewInsufficientDataError describes which detector lacked samples.
func NewInsufficientDataError(analysis string, have, need int) error {
	return fmt.Errorf("%w: %s needs %d periods, have %d", ErrInsufficientData, analysis, need, have)
}

// IsNotFoundError reports whether err is a not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInsufficientData reports whether err is an insufficient-data condition
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}
