package domain

import "errors"

// Error taxonomy. All of these are recovered at the handler layer with a
// user-facing reply; only store I/O errors are allowed to propagate.
var (
	// ErrInvalidArgument indicates a missing or empty required argument
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAuthenticationFailed indicates an unknown credential digest. It is
	// surfaced as a generic "incorrect password" without detail.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrUnauthorized indicates the caller's role or leaderboard binding is
	// insufficient for the action
	ErrUnauthorized = errors.New("unauthorized")

	// ErrWrongContext indicates a command issued in a private chat when a
	// group context is required, or vice versa
	ErrWrongContext = errors.New("wrong chat context")

	// ErrAlreadyExists indicates a leaderboard is already bound to the chat
	ErrAlreadyExists = errors.New("leaderboard already exists")

	// ErrDuplicateGroup indicates a group with the same name already exists
	// in the leaderboard
	ErrDuplicateGroup = errors.New("duplicate group")

	// ErrNotFound indicates the referenced leaderboard or group no longer
	// exists (for example a stale button)
	ErrNotFound = errors.New("not found")
)
