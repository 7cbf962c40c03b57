package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/output"
	"tasktrack/internal/task"
)

func init() {
	Register(&MenuCmd{})
}

// MenuCmd runs the interactive numbered menu.
// Changes are saved when the menu exits through "Save & exit" or end of input.
type MenuCmd struct{}

func (c *MenuCmd) Name() string      { return "menu" }
func (c *MenuCmd) Aliases() []string { return []string{"shell"} }
func (c *MenuCmd) Synopsis() string  { return "Interactive menu" }
func (c *MenuCmd) Usage() string     { return "tasktrack menu" }
func (c *MenuCmd) NeedsStore() bool  { return true }

func (c *MenuCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MenuCmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, in io.Reader, out, errOut io.Writer) int {
	p, stop := newPrompter(ctx, in, out)
	defer stop()
	m := &menu{
		store: store,
		p:     p,
		out:   out,
		cfg:   cfg,
	}
	m.run(ctx)
	return exitcode.Success
}

const mainMenu = `1. Show all tasks
2. Add task
3. Edit task
4. Delete task
5. Save & exit
`

const editMenu = `1. Title
2. Description
3. Deadline
4. Status
5. Done editing
`

type menu struct {
	store *task.Store
	p     *prompter
	out   io.Writer
	cfg   *config.Config
}

func (m *menu) run(ctx context.Context) {
	for {
		fmt.Fprintln(m.out, output.Separator)
		fmt.Fprint(m.out, mainMenu)
		choice, ok := m.p.ask(ctx, "> ")
		if !ok {
			return
		}
		fmt.Fprintln(m.out, output.Separator)

		switch strings.TrimSpace(choice) {
		case "1":
			m.view()
		case "2":
			m.add(ctx)
		case "3":
			m.edit(ctx)
		case "4":
			m.remove(ctx)
		case "5":
			return
		default:
			fmt.Fprintf(m.out, "Unknown option: %s\n", strings.TrimSpace(choice))
		}
	}
}

func (m *menu) view() {
	tasks := m.store.List()
	if len(tasks) == 0 {
		fmt.Fprintln(m.out, "No tasks to show.")
		return
	}
	fmt.Fprintln(m.out, "Task list:")
	for i, t := range tasks {
		output.FormatTaskDetail(m.out, i+1, t)
		fmt.Fprintln(m.out)
	}
}

func (m *menu) add(ctx context.Context) {
	title, ok := m.p.ask(ctx, "Title: ")
	for ok && strings.TrimSpace(title) == "" {
		title, ok = m.p.ask(ctx, "Title is required, try again: ")
	}
	if !ok {
		return
	}

	description, ok := m.p.ask(ctx, "Description: ")
	if !ok {
		return
	}

	input, ok := m.p.ask(ctx, "Deadline (yyyy-mm-dd): ")
	if !ok {
		return
	}
	deadline, err := task.ParseDeadline(input)
	for err != nil {
		input, ok = m.p.ask(ctx, "Wrong date format, try again (yyyy-mm-dd): ")
		if !ok {
			return
		}
		deadline, err = task.ParseDeadline(input)
	}

	t, err := m.store.Add(title, description, deadline)
	if err != nil {
		fmt.Fprintf(m.out, "Task not added: %v\n", err)
		return
	}
	m.cfg.Log().WithField("id", t.ID).Debug("task added")
	fmt.Fprintln(m.out, "Task added.")
}

// pick lists the tasks and asks for a number. ok is false when nothing
// valid was chosen.
func (m *menu) pick(ctx context.Context, verb string) (int, task.Task, bool) {
	if m.store.Len() == 0 {
		fmt.Fprintln(m.out, "No tasks to show.")
		return 0, task.Task{}, false
	}
	m.view()
	answer, ok := m.p.ask(ctx, fmt.Sprintf("Task # to %s: ", verb))
	if !ok {
		return 0, task.Task{}, false
	}
	num, err := ParseTaskNumber(strings.Fields(answer))
	if err != nil {
		fmt.Fprintln(m.out, "Invalid task number.")
		return 0, task.Task{}, false
	}
	t, err := m.store.Get(num)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid task number.")
		return 0, task.Task{}, false
	}
	return num, t, true
}

func (m *menu) edit(ctx context.Context) {
	num, _, ok := m.pick(ctx, "edit")
	if !ok {
		return
	}

	for {
		fmt.Fprintln(m.out, output.Separator)
		fmt.Fprint(m.out, editMenu)
		choice, ok := m.p.ask(ctx, "> ")
		if !ok {
			return
		}
		fmt.Fprintln(m.out, output.Separator)

		var ch task.Changes
		var field string
		switch strings.TrimSpace(choice) {
		case "1":
			field = "Title"
			ch.Title, ok = m.askField(ctx, "New title (blank keeps current): ")
		case "2":
			field = "Description"
			ch.Description, ok = m.askField(ctx, "New description (blank keeps current): ")
		case "3":
			field = "Deadline"
			ch.Deadline, ok = m.askField(ctx, "New deadline (yyyy-mm-dd, blank keeps current): ")
		case "4":
			field = "Status"
			ch.Completed, ok = m.askField(ctx, "Completed? (yes/no, blank keeps current): ")
		case "5":
			return
		default:
			fmt.Fprintf(m.out, "Unknown option: %s\n", strings.TrimSpace(choice))
			continue
		}
		if !ok {
			return
		}

		t, err := m.store.Edit(num, ch)
		if err != nil {
			fmt.Fprintf(m.out, "%v. %s not changed.\n", err, field)
			continue
		}
		m.cfg.Log().WithField("id", t.ID).Debugf("%s edited", strings.ToLower(field))
	}
}

func (m *menu) askField(ctx context.Context, label string) (*string, bool) {
	answer, ok := m.p.ask(ctx, label)
	if !ok {
		return nil, false
	}
	return &answer, true
}

func (m *menu) remove(ctx context.Context) {
	num, t, ok := m.pick(ctx, "delete")
	if !ok {
		return
	}
	if !m.p.confirm(ctx, fmt.Sprintf("Delete %q? (yes/no): ", t.Title)) {
		fmt.Fprintln(m.out, "Deletion cancelled.")
		return
	}
	if _, err := m.store.Remove(num); err != nil {
		fmt.Fprintf(m.out, "Task not deleted: %v\n", err)
		return
	}
	m.cfg.Log().WithField("id", t.ID).Debug("task removed")
	fmt.Fprintln(m.out, "Task deleted.")
}
