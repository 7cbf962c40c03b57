package task

import "errors"

// Error kinds reported by the store and the persistence backends.
// Match with errors.Is; returned errors wrap these with detail.
var (
	ErrInvalidDate            = errors.New("invalid date")
	ErrInvalidCompletion      = errors.New("invalid completion value")
	ErrOutOfRange             = errors.New("task number out of range")
	ErrTitleRequired          = errors.New("title required")
	ErrPersistenceUnavailable = errors.New("task file unavailable")
	ErrCorruptState           = errors.New("task file is corrupt")
)
