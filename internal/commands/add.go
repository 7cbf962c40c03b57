package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	due         string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "tasktrack add [--desc <text>] --due <yyyy-mm-dd> <title...>"
}
func (c *AddCmd) NeedsStore() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, in io.Reader, out, errOut io.Writer) int {
	// Join args to form title
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	if strings.TrimSpace(c.due) == "" {
		fmt.Fprintln(errOut, "error: deadline required (--due yyyy-mm-dd)")
		return exitcode.UserError
	}
	deadline, err := task.ParseDeadline(c.due)
	if err != nil {
		return fail(errOut, err)
	}

	t, err := store.Add(title, c.description, deadline)
	if err != nil {
		return fail(errOut, err)
	}
	cfg.Log().WithField("id", t.ID).Debug("task added")

	if !cfg.Quiet {
		fmt.Fprintf(out, "added task %d\n", store.Len())
	}
	return exitcode.Success
}
