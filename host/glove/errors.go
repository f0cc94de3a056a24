package glove

import "errors"

var (
	// ErrNotInitialized is returned when the controller is used before Initialize or after Close
	ErrNotInitialized = errors.New("glove controller not initialized")

	// ErrAlreadyInitialized is returned by Initialize on a controller that is already running
	ErrAlreadyInitialized = errors.New("glove controller already initialized")

	ErrInvalidHand     = errors.New("invalid hand")
	ErrInvalidLocation = errors.New("invalid finger location")
)
