// Package tui renders console presentation: styles, the banner, and
// save progress as either a Bubble Tea spinner or plain text lines.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// DisplayEvent is an event sent to a Display via the update channel.
// Implemented by SaveStartMsg, SaveDoneMsg, and SaveErrorMsg.
type DisplayEvent interface {
	isDisplayEvent()
}

func (SaveStartMsg) isDisplayEvent() {}
func (SaveDoneMsg) isDisplayEvent()  {}
func (SaveErrorMsg) isDisplayEvent() {}

// Verify at compile time that message types implement DisplayEvent.
var (
	_ DisplayEvent = SaveStartMsg{}
	_ DisplayEvent = SaveDoneMsg{}
	_ DisplayEvent = SaveErrorMsg{}
)

// Display renders save progress.
type Display interface {
	Run(ctx context.Context, events <-chan DisplayEvent) error
}

// DisplayOptions configures display creation.
type DisplayOptions struct {
	Writer     io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force plain text even if TTY.
	Styles     *Styles   // Nil selects DefaultStyles on a TTY, PlainStyles otherwise.
}

// NewDisplay returns a TUI display when the writer is a TTY, or a plain text
// display otherwise. ForcePlain overrides TTY detection.
func NewDisplay(opts DisplayOptions) Display {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	tty := IsTTY(opts.Writer)
	styles := ResolveStyles(opts.Styles, tty)

	if opts.ForcePlain || !tty {
		return &PlainDisplay{w: opts.Writer, styles: styles}
	}
	return &TUIDisplay{w: opts.Writer, styles: styles}
}

// ResolveStyles returns s when set, otherwise styles suited to the output.
func ResolveStyles(s *Styles, tty bool) Styles {
	if s != nil {
		return *s
	}
	if tty {
		return DefaultStyles()
	}
	return PlainStyles()
}

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Bridge manages the channel between a save producer and a Display consumer.
type Bridge struct {
	ch chan DisplayEvent
}

// NewBridge creates a Bridge with a buffered event channel.
func NewBridge() *Bridge {
	return &Bridge{ch: make(chan DisplayEvent, 16)}
}

// Events returns the read-only channel for Display.Run() to consume.
func (b *Bridge) Events() <-chan DisplayEvent {
	return b.ch
}

// Start announces that saving name has begun.
func (b *Bridge) Start(name string) {
	b.ch <- SaveStartMsg{Name: name}
}

// Done signals a successful save and closes the channel.
func (b *Bridge) Done(name string) {
	b.ch <- SaveDoneMsg{Name: name}
	close(b.ch)
}

// Error signals a failed save and closes the channel.
func (b *Bridge) Error(name string, err error) {
	b.ch <- SaveErrorMsg{Name: name, Err: err}
	close(b.ch)
}

// PlainDisplay renders save progress as text lines.
type PlainDisplay struct {
	w      io.Writer
	styles Styles
}

// Run loops over events, printing one line per event.
// Returns the save error if the save failed, or context error if cancelled.
func (d *PlainDisplay) Run(ctx context.Context, events <-chan DisplayEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch msg := ev.(type) {
			case SaveStartMsg:
				_, _ = fmt.Fprintln(d.w, d.styles.Dim.Render(SavingLabel))
			case SaveDoneMsg:
				_, _ = fmt.Fprintln(d.w, SuccessLine(d.styles, msg.Name))
				return nil
			case SaveErrorMsg:
				_, _ = fmt.Fprintln(d.w, FailureLine(d.styles, msg.Err))
				return msg.Err
			}
		}
	}
}

// TUIDisplay renders save progress with a Bubble Tea spinner.
// Falls back to PlainDisplay if the TUI program fails to start.
type TUIDisplay struct {
	w      io.Writer
	styles Styles
}

// Run starts the Bubble Tea program and feeds events from the channel.
// The program reads no input so stdin stays with the prompts.
func (d *TUIDisplay) Run(ctx context.Context, events <-chan DisplayEvent) error {
	model := NewModel(WithModelStyles(d.styles))
	p := tea.NewProgram(model,
		tea.WithOutput(d.w),
		tea.WithInput(nil),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)

	// Forward events through an intermediate channel so we can stop
	// the goroutine cleanly on TUI failure before falling back.
	fwd := make(chan DisplayEvent, 16)
	stop := make(chan struct{})

	go func() {
		defer close(fwd)
		for ev := range events {
			select {
			case fwd <- ev:
			case <-stop:
				return
			}
		}
	}()

	go func() {
		for ev := range fwd {
			p.Send(ev)
		}
	}()

	final, err := p.Run()
	if err != nil {
		close(stop)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		plain := &PlainDisplay{w: d.w, styles: d.styles}
		return plain.Run(ctx, events)
	}

	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
