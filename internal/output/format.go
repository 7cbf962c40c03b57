// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasktrack/internal/task"
)

const (
	// Separator is the rule printed around menus.
	Separator = "--------------------"

	// DoneMark and OpenMark show completion in compact listings.
	DoneMark = "[x]"
	OpenMark = "[ ]"
)

// FormatTask formats a compact task line.
// Format: "{N:>4}  [x] {TITLE}  (due YYYY-MM-DD)\n", followed by the
// description on its own indented line when present.
func FormatTask(w io.Writer, num int, t task.Task) {
	mark := OpenMark
	if t.Completed {
		mark = DoneMark
	}
	fmt.Fprintf(w, "%4d  %s %s  (due %s)\n", num, mark, normalizeTitle(t.Title), t.Deadline)
	if desc := normalizeText(t.Description); desc != "" {
		fmt.Fprintf(w, "          %s\n", desc)
	}
}

// FormatTaskDetail formats one task as a block of labelled fields.
func FormatTaskDetail(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%d. Title: %s\n", num, normalizeTitle(t.Title))
	fmt.Fprintf(w, "   Description: %s\n", normalizeText(t.Description))
	fmt.Fprintf(w, "   Deadline: %s\n", t.Deadline)
	fmt.Fprintf(w, "   Status: %s\n", Status(t.Completed))
}

// Status returns the display text for a completion flag.
func Status(completed bool) string {
	if completed {
		return "Done"
	}
	return "Not done"
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = normalizeText(title)
	if title == "" {
		return "(untitled)"
	}
	return title
}

// normalizeText flattens newlines and trims surrounding space.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
