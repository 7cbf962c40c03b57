package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// prompter reads answers line by line.
// Reads happen on a separate goroutine so a cancelled context ends a
// prompt that is still waiting for input. The returned stop func ends
// the reader once no more answers are wanted.
type prompter struct {
	lines <-chan string
	out   io.Writer
}

func newPrompter(ctx context.Context, in io.Reader, out io.Writer) (*prompter, context.CancelFunc) {
	ctx, stop := context.WithCancel(ctx)
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return &prompter{lines: lines, out: out}, stop
}

// ask prints label and returns the next line of input.
// ok is false at end of input or when ctx is done.
func (p *prompter) ask(ctx context.Context, label string) (string, bool) {
	fmt.Fprint(p.out, label)
	select {
	case line, ok := <-p.lines:
		if !ok {
			fmt.Fprintln(p.out)
		}
		return line, ok
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", false
	}
}

// confirm asks a yes/no question; anything but yes counts as no.
func (p *prompter) confirm(ctx context.Context, label string) bool {
	answer, ok := p.ask(ctx, label)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true
	}
	return false
}
