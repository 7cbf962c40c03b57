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
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
// Only the fields given as flags are changed; blank values change nothing.
type EditCmd struct {
	changes task.Changes
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change fields of a task" }
func (c *EditCmd) Usage() string {
	return "tasktrack edit [--title <t>] [--desc <d>] [--due <yyyy-mm-dd>] [--done yes|no] <n>"
}
func (c *EditCmd) NeedsStore() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.changes = task.Changes{}
	fs.Var(optionalString{&c.changes.Title}, "title", "")
	fs.Var(optionalString{&c.changes.Description}, "desc", "")
	fs.Var(optionalString{&c.changes.Description}, "d", "")
	fs.Var(optionalString{&c.changes.Deadline}, "due", "")
	fs.Var(optionalString{&c.changes.Completed}, "done", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, in io.Reader, out, errOut io.Writer) int {
	num, err := ParseTaskNumber(args)
	if err != nil {
		return fail(errOut, err)
	}

	ch := c.changes
	if ch.Title == nil && ch.Description == nil && ch.Deadline == nil && ch.Completed == nil {
		fmt.Fprintln(errOut, "error: nothing to change (use --title, --desc, --due or --done)")
		return exitcode.UserError
	}

	t, err := store.Edit(num, ch)
	if err != nil {
		// Fields that parsed are already applied.
		return failFields(errOut, err)
	}
	cfg.Log().WithField("id", t.ID).Debug("task edited")

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// optionalString is a flag.Value that records whether the flag was given.
type optionalString struct {
	dst **string
}

func (v optionalString) String() string {
	if v.dst == nil || *v.dst == nil {
		return ""
	}
	return **v.dst
}

func (v optionalString) Set(s string) error {
	*v.dst = &s
	return nil
}
