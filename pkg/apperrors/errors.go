package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySongFile        = errors.New("song file contains no records")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrNoTransaction        = errors.New("no transaction in context")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ParseError reports a source file whose content does not have the expected JSON shape.
// Line is 1-based; zero means the error is not tied to a line.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse %s line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
