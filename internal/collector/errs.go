package collector

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefinedRatio is returned when a utilization ratio has a zero denominator.
	ErrUndefinedRatio = errors.New("collector: undefined ratio")

	// ErrNoStat indicates that a <pid>/stat line had no ")" closing the comm field.
	ErrNoStat = errors.New("collector: malformed or empty stat")

	// ErrShortStat indicates that a <pid>/stat line had fewer fields than expected.
	ErrShortStat = errors.New("collector: short stat")
)

// ParseError reports a positional field that could not be extracted from a file.
type ParseError struct {
	Path  string
	Field int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s field %d: %v", e.Path, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
