package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/task"
)

func init() {
	Register(&PathCmd{})
}

// PathCmd prints where tasks are stored.
type PathCmd struct{}

func (c *PathCmd) Name() string      { return "path" }
func (c *PathCmd) Aliases() []string { return nil }
func (c *PathCmd) Synopsis() string  { return "Print the task file path" }
func (c *PathCmd) Usage() string     { return "tasktrack path" }
func (c *PathCmd) NeedsStore() bool  { return false }

func (c *PathCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PathCmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, in io.Reader, out, errOut io.Writer) int {
	fmt.Fprintln(out, cfg.TasksPath())
	return exitcode.Success
}
