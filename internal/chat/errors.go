package chat

import "errors"

var (
	// ErrNotFound indicates the requested chat or message does not exist.
	ErrNotFound = errors.New("chat not found")

	// ErrDuplicateID indicates an insert collided with an existing identifier.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrUnsupportedPartType indicates a part or row carries a type the
	// mapper does not recognize. Persisting such a message would silently
	// lose data, so this is always a hard failure.
	ErrUnsupportedPartType = errors.New("unsupported part type")

	// ErrMissingField indicates a part is missing a field its type requires.
	ErrMissingField = errors.New("missing required part field")

	// ErrDataIntegrity indicates a stored row violates the type-gated
	// constraints on read. The write path makes this unreachable, so it is
	// treated as fatal rather than retried.
	ErrDataIntegrity = errors.New("part row violates type constraints")

	// ErrInvalidRole indicates a message role outside user/assistant/system.
	ErrInvalidRole = errors.New("invalid message role")
)
