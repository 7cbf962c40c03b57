// Package task holds the task data model and the in-memory task store.
package task

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Task represents a single to-do item.
type Task struct {
	ID          string // surrogate key; empty for tasks saved without one
	Title       string `validate:"required"`
	Description string
	Deadline    civil.Date `validate:"required"`
	Completed   bool
}

// New creates an incomplete task with a fresh ID.
func New(title, description string, deadline civil.Date) Task {
	return Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Deadline:    deadline,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func taskValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Dates validate as their canonical string. A date that does not
		// parse back from that string (invalid, or outside years 0-9999)
		// becomes "".
		validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
			d, ok := v.Interface().(civil.Date)
			if !ok || !d.IsValid() {
				return ""
			}
			if back, err := civil.ParseDate(d.String()); err != nil || back != d {
				return ""
			}
			return d.String()
		}, civil.Date{})
	})
	return validate
}

// Validate checks that the task has a non-blank title and a valid deadline.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	err := taskValidator().Struct(t)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Deadline" {
				return fmt.Errorf("%w: %q", ErrInvalidDate, t.Deadline.String())
			}
		}
	}
	return err
}
