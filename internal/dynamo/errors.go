package dynamo

import "errors"

// Wiring errors. Sources panic with these because a bad graph is a
// programming mistake made while a factory assembles a machine.
var (
	// ErrDuplicateSink indicates a sink was registered twice on the same source.
	ErrDuplicateSink = errors.New("dynamo: sink already registered on this source")

	// ErrMultipleSources indicates a sink was given a second upstream source.
	ErrMultipleSources = errors.New("dynamo: sink already has an upstream source")

	// ErrNilSink indicates a nil sink was passed to AddSink.
	ErrNilSink = errors.New("dynamo: nil sink")
)

// WiringError wraps a wiring error with the offending sink position.
type WiringError struct {
	Index   int
	Wrapped error
}

func (e *WiringError) Error() string {
	return e.Wrapped.Error()
}

func (e *WiringError) Unwrap() error {
	return e.Wrapped
}
