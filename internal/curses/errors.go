package curses

import "errors"

// Window lifecycle errors. The phrases match the diagnostics the command
// layer reports to the host.
var (
	// ErrInvalidName indicates an empty window name.
	ErrInvalidName = errors.New("window name invalid")

	// ErrAlreadyDefined indicates a create against a name that is in use.
	ErrAlreadyDefined = errors.New("window already defined")

	// ErrUndefined indicates an operation on a name that does not exist.
	ErrUndefined = errors.New("window undefined")

	// ErrPermanent indicates an attempt to destroy the root window.
	ErrPermanent = errors.New("window can't be deleted")

	// ErrNoSession indicates a command issued before the session started.
	ErrNoSession = errors.New("session not started")

	// ErrNoColor indicates a color request on a terminal without color
	// support.
	ErrNoColor = errors.New("color not supported")
)
