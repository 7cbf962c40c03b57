// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/task"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or changes tasks.
	// Commands like help, version and path return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths).
	// store is nil if NeedsStore() returns false; the caller saves it
	// afterwards if it changed.
	// args contains positional arguments after flag parsing.
	// in supplies answers to prompts.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, in io.Reader, out, errOut io.Writer) int
}

// ExitCode maps an error to the exit code reported for it.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, task.ErrCorruptState):
		return exitcode.DataError
	case errors.Is(err, task.ErrPersistenceUnavailable):
		return exitcode.StorageError
	default:
		return exitcode.UserError
	}
}

// fail prints err and returns its exit code.
func fail(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return ExitCode(err)
}

// failFields prints each error joined by task.Store.Edit on its own line.
func failFields(errOut io.Writer, err error) int {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return fail(errOut, err)
	}
	for _, e := range joined.Unwrap() {
		fmt.Fprintf(errOut, "error: %v\n", e)
	}
	return exitcode.UserError
}
