package sim

import (
	"errors"
	"fmt"
)

var (
	ErrFrames           = errors.New("sim: frame count must be positive")
	ErrFrameRate        = errors.New("sim: frame rate must be positive")
	ErrUnknownField     = errors.New("sim: unknown field")
	ErrUnknownComponent = errors.New("sim: unknown component")
)

// SeekError reports a seek or recording that stopped short of its target.
type SeekError struct {
	Machine int
	Frame   int
	Wrapped error
}

func (e *SeekError) Error() string {
	return fmt.Sprintf("sim: machine %d stopped at frame %d: %v", e.Machine, e.Frame, e.Wrapped)
}

func (e *SeekError) Unwrap() error { return e.Wrapped }
