package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasktrack/internal/cli"
	"tasktrack/internal/commands"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/task"
	"tasktrack/internal/testutil"
)

// testFactory creates a repository factory that returns the given FakeRepository.
func testFactory(repo *testutil.FakeRepository) cli.RepositoryFactory {
	return func(cfg *config.Config) (task.Repository, error) {
		return repo, nil
	}
}

// run dispatches cmd with an isolated --config directory followed by args.
func run(t *testing.T, repo *testutil.FakeRepository, stdin, cmd string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(repo))

	var outBuf, errBuf bytes.Buffer
	full := append([]string{cmd, "--config", t.TempDir()}, args...)
	code = dispatcher.Run(context.Background(), full, strings.NewReader(stdin), &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	repo := testutil.NewFakeRepository()
	_, stderr, code := run(t, repo, "", "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if repo.Loads() != 0 {
		t.Error("expected no load for unknown command")
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeRepository()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, strings.NewReader(""), &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, testutil.NewFakeRepository(), "", "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeRepository()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"add", "--due"}, strings.NewReader(""), &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -due\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpDoesNotLoad(t *testing.T) {
	repo := testutil.NewFakeRepository()
	repo.LoadErr = task.ErrCorruptState

	stdout, stderr, code := run(t, repo, "", "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
	if repo.Loads() != 0 {
		t.Errorf("expected no loads, got %d", repo.Loads())
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, _, code := run(t, testutil.NewFakeRepository(), "", "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "tasktrack 0.1.0\n" {
		t.Errorf("expected 'tasktrack 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	repo := testutil.NewFakeRepository(testutil.Task("Buy milk", "", "2024-01-01", false))
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(repo))

	var stdout, stderr bytes.Buffer
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	code := dispatcher.Run(context.Background(), nil, strings.NewReader(""), &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	if stdout.String() != "   1  [ ] Buy milk  (due 2024-01-01)\n" {
		t.Errorf("unexpected stdout %q", stdout.String())
	}
	if repo.Saves() != 0 {
		t.Error("expected listing not to save")
	}
}

func TestDispatcher_SavesAfterChange(t *testing.T) {
	repo := testutil.NewFakeRepository()

	_, stderr, code := run(t, repo, "", "add", "--due", "2024-01-01", "Buy", "milk")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if repo.Saves() != 1 {
		t.Errorf("expected 1 save, got %d", repo.Saves())
	}
	saved := repo.Tasks()
	if len(saved) != 1 || saved[0].Title != "Buy milk" || saved[0].Completed {
		t.Errorf("unexpected saved tasks %+v", saved)
	}
}

func TestDispatcher_SavesPartialEdit(t *testing.T) {
	repo := testutil.NewFakeRepository(testutil.Task("Write report", "", "2024-02-15", false))

	_, _, code := run(t, repo, "", "edit", "--title", "Write final report", "--due", "soon", "1")
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if repo.Saves() != 1 {
		t.Fatalf("expected the applied title to be saved, got %d saves", repo.Saves())
	}
	if got := repo.Tasks()[0]; got.Title != "Write final report" || got.Deadline.String() != "2024-02-15" {
		t.Errorf("unexpected saved task %+v", got)
	}
}

func TestDispatcher_NoSaveWhenUnchanged(t *testing.T) {
	repo := testutil.NewFakeRepository(testutil.Task("Write report", "", "2024-02-15", false))

	_, _, code := run(t, repo, "no\n", "rm", "1")
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if repo.Saves() != 0 {
		t.Errorf("expected no save, got %d", repo.Saves())
	}
}

func TestDispatcher_LoadErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"corrupt", fmt.Errorf("%w: tasks.json: unexpected EOF", task.ErrCorruptState), exitcode.DataError},
		{"unavailable", fmt.Errorf("%w: permission denied", task.ErrPersistenceUnavailable), exitcode.StorageError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewFakeRepository()
			repo.LoadErr = tt.err

			stdout, stderr, code := run(t, repo, "", "list")
			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if stdout != "" {
				t.Errorf("expected no stdout, got %q", stdout)
			}
			if stderr != "error: "+tt.err.Error()+"\n" {
				t.Errorf("unexpected stderr %q", stderr)
			}
			if repo.Saves() != 0 {
				t.Error("expected no save after failed load")
			}
		})
	}
}

func TestDispatcher_SaveError(t *testing.T) {
	repo := testutil.NewFakeRepository(testutil.Task("Write report", "", "2024-02-15", false))
	repo.SaveErr = fmt.Errorf("%w: disk full", task.ErrPersistenceUnavailable)

	_, stderr, code := run(t, repo, "", "done", "1")
	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	want := "error: save failed: task file unavailable: disk full\n"
	if stderr != want {
		t.Errorf("expected %q, got %q", want, stderr)
	}
}

func TestDispatcher_InterruptedSkipsSave(t *testing.T) {
	repo := testutil.NewFakeRepository()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(repo))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	args := []string{"add", "--config", t.TempDir(), "--due", "2024-01-01", "Buy milk"}
	code := dispatcher.Run(ctx, args, strings.NewReader(""), &stdout, &stderr)

	if code != exitcode.Interrupted {
		t.Errorf("expected exit code %d, got %d", exitcode.Interrupted, code)
	}
	if repo.Saves() != 0 {
		t.Errorf("expected no save, got %d", repo.Saves())
	}
}

func TestDispatcher_DebugLogging(t *testing.T) {
	repo := testutil.NewFakeRepository()
	_, stderr, code := run(t, repo, "", "add", "--debug", "--due", "2024-01-01", "x")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	for _, want := range []string{"store loaded", "task added", "store saved", "command=add"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected debug output to contain %q, got %q", want, stderr)
		}
	}
}

// End to end against a real file in a temporary config directory.
func TestDispatcher_FileRepository(t *testing.T) {
	dir := t.TempDir()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)
	ctx := context.Background()

	steps := []struct {
		args  []string
		stdin string
	}{
		{[]string{"add", "--config", dir, "--desc", "2%", "--due", "2024-01-01", "Buy milk"}, ""},
		{[]string{"add", "--config", dir, "--due", "2024-02-15", "Write report"}, ""},
		{[]string{"edit", "--config", dir, "--done", "yes", "1"}, ""},
		{[]string{"rm", "--config", dir, "1"}, "yes\n"},
	}
	for _, step := range steps {
		var stdout, stderr bytes.Buffer
		if code := dispatcher.Run(ctx, step.args, strings.NewReader(step.stdin), &stdout, &stderr); code != exitcode.Success {
			t.Fatalf("%v: exit code %d, stderr %q", step.args, code, stderr.String())
		}
	}

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(ctx, []string{"list", "--config", dir}, strings.NewReader(""), &stdout, &stderr)
	if code != exitcode.Success {
		t.Fatalf("list: exit code %d, stderr %q", code, stderr.String())
	}
	if stdout.String() != "   1  [ ] Write report  (due 2024-02-15)\n" {
		t.Errorf("unexpected list output %q", stdout.String())
	}

	if _, err := os.Stat(filepath.Join(dir, "tasks.json")); err != nil {
		t.Errorf("expected tasks.json in config dir: %v", err)
	}
}

func TestDispatcher_FileFlagAndCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config", t.TempDir(), "--file", path}, strings.NewReader(""), &stdout, &stderr)

	if code != exitcode.DataError {
		t.Errorf("expected exit code %d, got %d", exitcode.DataError, code)
	}
	if !strings.HasPrefix(stderr.String(), "error: task file is corrupt: "+path) {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{not json" {
		t.Error("corrupt file must not be overwritten")
	}
}

func TestDispatcher_PathCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"path", "--config", t.TempDir(), "--file", "/tmp/x.json"}, strings.NewReader(""), &stdout, &stderr)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout.String() != "/tmp/x.json\n" {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(cfg *config.Config) (task.Repository, error) {
		return nil, errors.New("no backend")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config", t.TempDir()}, strings.NewReader(""), &stdout, &stderr)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr.String() != "error: no backend\n" {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}
