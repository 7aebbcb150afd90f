package dynamo

import "errors"

// Domain errors for sandbox operations.
var (
	// ErrInvalidComposite indicates builder parameters that would produce a
	// degenerate rope or ring (zero segments, zero count, non-positive sizes).
	ErrInvalidComposite = errors.New("dynamo: invalid composite parameters")

	// ErrUnknownParam indicates a tunable name that does not exist.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrInvalidState indicates a body whose position or velocity became NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidConfig indicates world or run settings outside their valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrUnknownCommand indicates a console line whose verb is not recognised.
	ErrUnknownCommand = errors.New("dynamo: unknown command")

	// ErrInvalidArgs indicates a console command with missing or malformed arguments.
	ErrInvalidArgs = errors.New("dynamo: invalid arguments")
)

// SimulationError wraps an error with the frame it was detected on.
type SimulationError struct {
	Step    int
	Time    float64
	Body    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
