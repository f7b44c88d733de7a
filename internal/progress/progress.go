// Package progress reports how many passwords have been scored.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

const defaultEvery = 256

// Reporter receives monotonic progress for one corpus.
type Reporter interface {
	Start(label string, total int)
	Advance(n int)
	Done()
}

// Nop discards progress.
type Nop struct{}

// Start implements Reporter.
func (Nop) Start(string, int) {}

// Advance implements Reporter.
func (Nop) Advance(int) {}

// Done implements Reporter.
func (Nop) Done() {}

// Counter redraws a single "scored so far" line.
type Counter struct {
	w     io.Writer
	every int
	label string
	total int
	done  int
	drawn int
}

// NewCounter writes progress to w every `every` passwords.
func NewCounter(w io.Writer, every int) *Counter {
	if every <= 0 {
		every = defaultEvery
	}
	return &Counter{w: w, every: every}
}

// ForStderr returns a Counter on stderr, or Nop when stderr is not a terminal.
func ForStderr(enabled bool) Reporter {
	if !enabled || !term.IsTerminal(int(os.Stderr.Fd())) {
		return Nop{}
	}
	return NewCounter(os.Stderr, defaultEvery)
}

// Start implements Reporter.
func (c *Counter) Start(label string, total int) {
	c.label = label
	c.total = total
	c.done = 0
	c.drawn = 0
	c.draw()
}

// Advance implements Reporter.
func (c *Counter) Advance(n int) {
	if n <= 0 {
		return
	}
	c.done += n
	if c.done-c.drawn >= c.every {
		c.draw()
	}
}

// Done implements Reporter.
func (c *Counter) Done() {
	c.draw()
	if _, err := fmt.Fprintln(c.w); err != nil {
		// Best-effort progress output.
		_ = err
	}
}

// Count returns the number of passwords scored since Start.
func (c *Counter) Count() int {
	return c.done
}

func (c *Counter) draw() {
	c.drawn = c.done
	line := fmt.Sprintf("\rScoring %s: %s/%s", c.label, humanize.Comma(int64(c.done)), humanize.Comma(int64(c.total)))
	if _, err := io.WriteString(c.w, line); err != nil {
		// Best-effort progress output.
		_ = err
	}
}
