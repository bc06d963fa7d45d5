// Package collector reads validated field values from an interactive line source.
package collector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/smileynet/contactcsv/internal/contact"
	"github.com/smileynet/contactcsv/internal/tui"
)

// ErrInputClosed indicates the input source ended before a value was read.
var ErrInputClosed = errors.New("collector: input closed")

// Feedback messages written before re-prompting.
const (
	EmptyMessage   = "⚠️  Input cannot be empty."
	InvalidMessage = "❌ Invalid format. Please try again."
)

type lineResult struct {
	line string
	err  error
}

// Collector prompts on out and reads answers line by line from in.
type Collector struct {
	in     *bufio.Reader
	out    io.Writer
	styles tui.Styles

	once      sync.Once
	closeOnce sync.Once
	lines     chan lineResult
	done      chan struct{}
	stopped   chan struct{}
}

// Option configures a Collector.
type Option func(*Collector)

// WithStyles sets the styles for prompts and feedback.
func WithStyles(s tui.Styles) Option {
	return func(c *Collector) {
		c.styles = s
	}
}

// New creates a Collector reading from in and writing prompts to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Collector {
	c := &Collector{
		in:      bufio.NewReader(in),
		out:     out,
		styles:  tui.PlainStyles(),
		lines:   make(chan lineResult),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ask prompts with label until the answer is non-blank and accepted by v.
// A nil v accepts any non-blank answer. Blankness is judged on the trimmed
// answer but the answer is returned as typed, minus its line terminator.
func (c *Collector) Ask(ctx context.Context, label string, v contact.Validator) (string, error) {
	for {
		line, err := c.prompt(ctx, label)
		if err != nil {
			return "", err
		}

		if strings.TrimSpace(line) == "" {
			c.println(c.styles.Warning.Render(EmptyMessage))
			continue
		}

		if v != nil && !v(line) {
			c.println(c.styles.Error.Render(InvalidMessage))
			continue
		}

		return line, nil
	}
}

// Confirm prompts once with label and reports whether the answer is "y",
// ignoring case and surrounding whitespace.
func (c *Collector) Confirm(ctx context.Context, label string) (bool, error) {
	line, err := c.prompt(ctx, label)
	if err != nil {
		return false, err
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y", nil
}

// Close stops the background reader once its pending read returns. Later
// prompts report ErrInputClosed. Close is safe to call more than once.
func (c *Collector) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Println writes a line to the prompt output.
func (c *Collector) Println(s string) {
	c.println(s)
}

func (c *Collector) prompt(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, _ = fmt.Fprint(c.out, c.styles.Prompt.Render(label))
	return c.readLine(ctx)
}

// readLine waits for the next line or for ctx to end, whichever comes first.
func (c *Collector) readLine(ctx context.Context) (string, error) {
	c.once.Do(func() { go c.readLoop() })

	select {
	case <-c.done:
		return "", ErrInputClosed
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-c.lines:
		if !ok {
			return "", ErrInputClosed
		}
		return r.line, r.err
	}
}

// readLoop feeds lines from the reader until it ends or Close is called. It
// runs in its own goroutine so a blocked read never holds up cancellation; it
// exits at the latest when the read in flight at Close time returns.
func (c *Collector) readLoop() {
	defer close(c.stopped)
	defer close(c.lines)
	for {
		line, err := c.in.ReadString('\n')
		if line != "" && !c.send(lineResult{line: trimEOL(line)}) {
			return
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.send(lineResult{err: fmt.Errorf("collector: reading input: %w", err)})
			}
			return
		}
	}
}

// send hands r to a waiting prompt, reporting false once the collector is closed.
func (c *Collector) send(r lineResult) bool {
	select {
	case c.lines <- r:
		return true
	case <-c.done:
		return false
	}
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

func (c *Collector) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}
