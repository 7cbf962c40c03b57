// Package jsonfile implements task.Repository on a single JSON file.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"tasktrack/internal/logging"
	"tasktrack/internal/task"
)

const (
	// DirPerm is the mode used when creating the data directory.
	DirPerm = 0o700

	// FilePerm is the mode of the written task file.
	FilePerm = 0o600
)

// record is the on-disk shape of a task. Field names are stable.
type record struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	Completed   bool   `json:"completed"`

	// LegacyCompleted is how older files named the completion flag.
	LegacyCompleted *bool `json:"IsCompleted,omitempty"`
}

var _ task.Repository = (*Repository)(nil)

// Repository stores tasks as an indented JSON array.
// Saves are write-then-rename. Two processes saving the same file
// overwrite each other; the last save wins.
type Repository struct {
	path string
	log  logrus.FieldLogger
}

// New creates a repository for the file at path.
// A nil logger discards log output.
func New(path string, log logrus.FieldLogger) *Repository {
	if log == nil {
		log = logging.Discard()
	}
	return &Repository{
		path: path,
		log:  log.WithField("file", path),
	}
}

// Path returns the task file path.
func (r *Repository) Path() string {
	return r.path
}

// Load reads all tasks. A missing file yields an empty list.
func (r *Repository) Load() ([]task.Task, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.log.Debug("task file not found, starting empty")
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("%w: %w", task.ErrPersistenceUnavailable, err)
	}

	tasks, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", task.ErrCorruptState, r.path, err)
	}
	r.log.WithField("count", len(tasks)).Debug("loaded tasks")
	return tasks, nil
}

// Save writes tasks, replacing the previous file contents.
func (r *Repository) Save(tasks []task.Task) error {
	data, err := encode(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := writeFileAtomic(r.path, data, FilePerm); err != nil {
		return fmt.Errorf("%w: %w", task.ErrPersistenceUnavailable, err)
	}
	r.log.WithField("count", len(tasks)).Debug("saved tasks")
	return nil
}

func encode(tasks []task.Task) ([]byte, error) {
	recs := make([]record, len(tasks))
	for i, t := range tasks {
		recs[i] = record{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Deadline:    t.Deadline.String(),
			Completed:   t.Completed,
		}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func decode(data []byte) ([]task.Task, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var recs []record
	if err := dec.Decode(&recs); err != nil {
		return nil, err
	}
	if recs == nil {
		return nil, errors.New("expected a list of tasks")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing content after task list")
	}

	tasks := make([]task.Task, 0, len(recs))
	for i, rec := range recs {
		deadline, err := task.ParseDeadline(rec.Deadline)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		t := task.Task{
			ID:          rec.ID,
			Title:       rec.Title,
			Description: rec.Description,
			Deadline:    deadline,
			Completed:   rec.Completed,
		}
		if rec.LegacyCompleted != nil {
			t.Completed = *rec.LegacyCompleted
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// writeFileAtomic writes data to a temp file next to path, syncs it and
// renames it over path, so a crash leaves either the old or the new file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
