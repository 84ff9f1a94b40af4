package kafka

import "errors"

// Errors returned while decoding or dispatching a command envelope.
// Callers can use errors.Is.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidPayload = errors.New("invalid command payload")
	ErrMissingPayload = errors.New("command requires a payload")
)
