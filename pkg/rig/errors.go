package rig

import "errors"

// Normalized backend errors. Transport errors from the transaction
// layer are propagated unwrapped; these cover everything the backend
// itself decides.
var (
	// ErrInvalidArgument means the caller asked for something outside
	// the supported set. No transaction has been issued.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotSupported means the device has no such operation.
	ErrNotSupported = errors.New("not supported")

	// ErrProtocol means the device answered with something the backend
	// could not make sense of.
	ErrProtocol = errors.New("protocol error")
)
