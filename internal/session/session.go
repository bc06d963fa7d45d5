// Package session runs the interactive loop that collects and stores contacts.
package session

import (
	"context"
	"time"

	"github.com/smileynet/contactcsv/internal/contact"
)

// Prompt labels, in the order they are asked each iteration.
const (
	NameLabel     = "👤 Contact Name: "
	NumberLabel   = "📱 Contact Number: "
	EmailLabel    = "📧 Contact Email: "
	ContinueLabel = "🔄 Add another? [y/n]: "
	Farewell      = "Goodbye! See you next time. 👋"
)

// State is a position in the session state machine.
type State int

const (
	Collecting State = iota
	Done
)

// Prompter obtains validated answers from the user.
type Prompter interface {
	Ask(ctx context.Context, label string, v contact.Validator) (string, error)
	Confirm(ctx context.Context, label string) (bool, error)
	Println(s string)
}

// Saver appends a record to durable storage.
type Saver interface {
	Append(ctx context.Context, rec contact.Record) error
}

// Reporter runs a save while showing its progress and outcome.
type Reporter interface {
	Save(ctx context.Context, name string, save func(context.Context) error) error
}

// Session drives Collecting until the user declines to continue.
type Session struct {
	prompter Prompter
	saver    Saver
	reporter Reporter
	now      func() time.Time
	farewell func(string) string
	state    State
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithFarewellStyle sets how the farewell line is rendered.
func WithFarewellStyle(render func(string) string) Option {
	return func(s *Session) {
		s.farewell = render
	}
}

// New creates a Session in the Collecting state.
func New(p Prompter, sv Saver, r Reporter, opts ...Option) *Session {
	s := &Session{
		prompter: p,
		saver:    sv,
		reporter: r,
		now:      time.Now,
		farewell: func(s string) string { return s },
		state:    Collecting,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Run collects records until the user answers anything but "y" to continue.
// A failed save is reported and the loop goes on. Prompt errors, including
// interrupts, end the run without saving the in-flight record.
func (s *Session) Run(ctx context.Context) error {
	for s.state == Collecting {
		rec, err := s.collect(ctx)
		if err != nil {
			return err
		}

		// Failures are already shown by the reporter.
		_ = s.reporter.Save(ctx, rec.Name, func(ctx context.Context) error {
			return s.saver.Append(ctx, rec)
		})
		if err := ctx.Err(); err != nil {
			return err
		}

		s.prompter.Println("")
		again, err := s.prompter.Confirm(ctx, ContinueLabel)
		if err != nil {
			return err
		}
		if !again {
			s.state = Done
		}
	}

	s.prompter.Println("\n" + s.farewell(Farewell))
	return nil
}

func (s *Session) collect(ctx context.Context) (contact.Record, error) {
	name, err := s.prompter.Ask(ctx, NameLabel, nil)
	if err != nil {
		return contact.Record{}, err
	}
	number, err := s.prompter.Ask(ctx, NumberLabel, contact.ValidPhone)
	if err != nil {
		return contact.Record{}, err
	}
	email, err := s.prompter.Ask(ctx, EmailLabel, contact.ValidEmail)
	if err != nil {
		return contact.Record{}, err
	}
	return contact.New(name, number, email, s.now()), nil
}
