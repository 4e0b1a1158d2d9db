package panel

import (
	"errors"
	"fmt"
)

// Sentinel errors for tiling operations.
var (
	// ErrNoPanelsFound is returned when discovery matched no panel files.
	ErrNoPanelsFound = errors.New("no panels found")

	// ErrDuplicateLabel is returned by strict discovery when two files map
	// to the same panel letter.
	ErrDuplicateLabel = errors.New("duplicate panel label")

	// ErrInvalidFigureBase is returned when the figure id is empty.
	ErrInvalidFigureBase = errors.New("invalid figure base")
)

// DecodeError reports a panel file that could not be decoded.
type DecodeError struct {
	Label string
	Path  string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("panel %s (%s): %v", e.Label, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
