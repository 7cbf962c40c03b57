// Package cli parses the command line and runs commands against the task file.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasktrack/internal/backend/jsonfile"
	"tasktrack/internal/commands"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/logging"
	"tasktrack/internal/task"
)

// RepositoryFactory creates the task repository from config.
// Used to inject the backend during dispatch.
type RepositoryFactory func(cfg *config.Config) (task.Repository, error)

// FileRepository is the default factory: a JSON file at cfg.TasksPath().
func FileRepository(cfg *config.Config) (task.Repository, error) {
	return jsonfile.New(cfg.TasksPath(), cfg.Log()), nil
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  RepositoryFactory
}

// NewDispatcher creates a new dispatcher with the given registry and repository factory.
// A nil factory uses FileRepository.
func NewDispatcher(registry *commands.Registry, factory RepositoryFactory) *Dispatcher {
	if factory == nil {
		factory = FileRepository
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, in, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], in, out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, in, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, in io.Reader, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var dataFile string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&dataFile, "file", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	cfg.Logger = logging.New(errOut, debug)
	log := cfg.Log().WithField("command", cmd.Name())

	if !cmd.NeedsStore() {
		return cmd.Run(ctx, cfg, nil, positionalArgs, in, out, errOut)
	}

	repo, err := d.factory(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return commands.ExitCode(err)
	}

	tasks, err := repo.Load()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return commands.ExitCode(err)
	}
	store := task.NewStore(tasks)
	log.WithField("count", store.Len()).Debug("store loaded")

	code := cmd.Run(ctx, cfg, store, positionalArgs, in, out, errOut)

	// Edits are not rolled back on error, so save whenever something changed.
	if !store.Dirty() {
		return code
	}
	if ctx.Err() != nil {
		fmt.Fprintln(errOut, "error: interrupted, changes not saved")
		return exitcode.Interrupted
	}
	if err := repo.Save(store.List()); err != nil {
		fmt.Fprintf(errOut, "error: save failed: %v\n", err)
		return exitcode.StorageError
	}
	store.MarkSaved()
	log.WithField("path", repo.Path()).Debug("store saved")
	return code
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()

	// Check for missing flag value
	if strings.HasPrefix(errStr, "flag needs an argument:") {
		return "flag needs an argument: " + strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
	}

	// Check for unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	}

	return errStr
}
