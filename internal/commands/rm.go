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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
// It asks for confirmation on stdin unless --yes is given.
type RmCmd struct {
	yes bool
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "tasktrack rm [--yes] <n>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, in io.Reader, out, errOut io.Writer) int {
	num, err := ParseTaskNumber(args)
	if err != nil {
		return fail(errOut, err)
	}

	t, err := store.Get(num)
	if err != nil {
		return fail(errOut, err)
	}

	if !c.yes {
		p, stop := newPrompter(ctx, in, out)
		defer stop()
		if !p.confirm(ctx, fmt.Sprintf("Delete task %d %q? (yes/no): ", num, t.Title)) {
			if !cfg.Quiet {
				fmt.Fprintln(out, "cancelled")
			}
			return exitcode.Success
		}
	}

	if _, err := store.Remove(num); err != nil {
		return fail(errOut, err)
	}
	cfg.Log().WithField("id", t.ID).Debug("task removed")

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
