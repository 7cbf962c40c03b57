// Package testutil provides testing utilities.
package testutil

import (
	"sync"

	"cloud.google.com/go/civil"

	"tasktrack/internal/task"
)

// FakePath is the path reported by FakeRepository.
const FakePath = "fake://tasks.json"

var _ task.Repository = (*FakeRepository)(nil)

// FakeRepository is an in-memory implementation of task.Repository for testing.
type FakeRepository struct {
	mu    sync.Mutex
	tasks []task.Task
	loads int
	saves int

	// Error injection for testing
	LoadErr error
	SaveErr error
}

// NewFakeRepository creates a FakeRepository holding tasks.
func NewFakeRepository(tasks ...task.Task) *FakeRepository {
	f := &FakeRepository{}
	f.tasks = append([]task.Task{}, tasks...)
	return f
}

// Load implements task.Repository.
func (f *FakeRepository) Load() ([]task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	return append([]task.Task{}, f.tasks...), nil
}

// Save implements task.Repository.
func (f *FakeRepository) Save(tasks []task.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.saves++
	f.tasks = append([]task.Task{}, tasks...)
	return nil
}

// Path implements task.Repository.
func (f *FakeRepository) Path() string {
	return FakePath
}

// Tasks returns the currently saved tasks.
func (f *FakeRepository) Tasks() []task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]task.Task{}, f.tasks...)
}

// Loads returns how many times Load was called.
func (f *FakeRepository) Loads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

// Saves returns how many successful saves happened.
func (f *FakeRepository) Saves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

// Task builds a task fixture. due must be YYYY-MM-DD.
func Task(title, description, due string, completed bool) task.Task {
	d, err := civil.ParseDate(due)
	if err != nil {
		panic("testutil: bad date " + due)
	}
	return task.Task{
		Title:       title,
		Description: description,
		Deadline:    d,
		Completed:   completed,
	}
}
