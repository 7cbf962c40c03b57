package task

import (
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

// Changes describes a partial edit of a task.
// A nil or blank field leaves the current value as it is.
// Deadline and Completed hold raw user input and are parsed on apply.
type Changes struct {
	Title       *string
	Description *string
	Deadline    *string
	Completed   *string
}

// Field returns a pointer to s for building Changes.
func Field(s string) *string {
	return &s
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// Store is the ordered in-memory task list.
// Positions are 1-based and shift when a task is removed.
// A Store is not safe for concurrent use.
type Store struct {
	tasks []Task
	dirty bool
}

// NewStore creates a store holding a copy of tasks.
func NewStore(tasks []Task) *Store {
	s := &Store{tasks: make([]Task, len(tasks))}
	copy(s.tasks, tasks)
	return s
}

// List returns a copy of the tasks in order. Never nil.
func (s *Store) List() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Dirty reports whether the store changed since it was created or last saved.
func (s *Store) Dirty() bool {
	return s.dirty
}

// MarkSaved clears the dirty flag.
func (s *Store) MarkSaved() {
	s.dirty = false
}

// Get returns the task at the 1-based index.
func (s *Store) Get(index int) (Task, error) {
	if err := s.checkIndex(index); err != nil {
		return Task{}, err
	}
	return s.tasks[index-1], nil
}

// Add appends a new incomplete task and returns it.
func (s *Store) Add(title, description string, deadline civil.Date) (Task, error) {
	t := New(title, description, deadline)
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	s.tasks = append(s.tasks, t)
	s.dirty = true
	return t, nil
}

// Edit applies ch to the task at the 1-based index and returns the result.
//
// An index outside [1, Len] fails with ErrOutOfRange and changes nothing.
// Otherwise fields are applied one at a time: a field that fails to parse
// is skipped and reported, the others still take effect. Field errors are
// returned joined.
func (s *Store) Edit(index int, ch Changes) (Task, error) {
	if err := s.checkIndex(index); err != nil {
		return Task{}, err
	}
	t := &s.tasks[index-1]
	before := *t

	var errs []error
	if !blank(ch.Title) {
		t.Title = *ch.Title
	}
	if !blank(ch.Description) {
		t.Description = *ch.Description
	}
	if !blank(ch.Deadline) {
		if d, err := ParseDeadline(*ch.Deadline); err != nil {
			errs = append(errs, err)
		} else {
			t.Deadline = d
		}
	}
	if !blank(ch.Completed) {
		if done, err := ParseCompletion(*ch.Completed); err != nil {
			errs = append(errs, err)
		} else {
			t.Completed = done
		}
	}

	if *t != before {
		s.dirty = true
	}
	return *t, errors.Join(errs...)
}

// Remove deletes the task at the 1-based index and returns it.
// Later tasks move up one position.
func (s *Store) Remove(index int) (Task, error) {
	if err := s.checkIndex(index); err != nil {
		return Task{}, err
	}
	removed := s.tasks[index-1]
	s.tasks = append(s.tasks[:index-1], s.tasks[index:]...)
	s.dirty = true
	return removed, nil
}

func (s *Store) checkIndex(index int) error {
	if index < 1 || index > len(s.tasks) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	return nil
}
