package bmff

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedEOF is returned when a box or field runs past the end of its parent.
	ErrUnexpectedEOF = errors.New("unexpected EOF")
	// ErrInvalidData is returned for structurally impossible values.
	ErrInvalidData = errors.New("invalid data")
	// ErrMissingData is returned when a mandatory box is absent.
	ErrMissingData = errors.New("missing data")
)

// ParseError records where in the buffer decoding failed.
type ParseError struct {
	Offset int
	Box    BoxType
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%v: no %s box", e.Err, e.Box)
	}
	return fmt.Sprintf("%v: %s box at offset %d", e.Err, e.Box, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
