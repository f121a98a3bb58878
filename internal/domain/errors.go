package domain

import "errors"

var (
	// ErrRoomNotFound means the code does not name a known room.
	ErrRoomNotFound = errors.New("room not found")

	// ErrCodeSpaceExhausted means code generation hit its retry budget
	// without finding a free code. With a 36^6 space this is effectively
	// a signal that the registry is absurdly full.
	ErrCodeSpaceExhausted = errors.New("room code space exhausted")
)
