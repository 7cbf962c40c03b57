package task

// Repository loads and saves the full task list.
// Implementations live under internal/backend.
type Repository interface {
	// Load returns the persisted tasks in order.
	// A missing file is an empty list, not an error.
	Load() ([]Task, error)

	// Save replaces the persisted tasks with tasks.
	Save(tasks []Task) error

	// Path describes where tasks are persisted.
	Path() string
}
