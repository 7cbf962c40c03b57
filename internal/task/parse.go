package task

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayout is the canonical deadline format.
const DateLayout = "2006-01-02"

// Additional layouts accepted on input. The timestamp form is what older
// task files stored for a date-only deadline.
var extraDateLayouts = []string{
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDeadline parses a user-supplied deadline.
func ParseDeadline(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, fmt.Errorf("%w: empty (want YYYY-MM-DD)", ErrInvalidDate)
	}
	if d, err := civil.ParseDate(s); err == nil {
		return d, nil
	}
	for _, layout := range extraDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.DateOf(t), nil
		}
	}
	return civil.Date{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, s)
}

// ParseCompletion parses a yes/no style completion answer.
func ParseCompletion(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true":
		return true, nil
	case "no", "n", "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q (want yes or no)", ErrInvalidCompletion, strings.TrimSpace(s))
}
