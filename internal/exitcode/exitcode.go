// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid date, out of range).
	UserError = 1

	// DataError indicates the task file exists but could not be parsed.
	DataError = 2

	// StorageError indicates the task file could not be read or written.
	StorageError = 3

	// Interrupted indicates the run was cancelled by a signal; changes were not saved.
	Interrupted = 130
)
