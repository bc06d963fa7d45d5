package tui

import (
	"context"
)

// Progress shows a save indicator while a save function runs.
type Progress struct {
	opts DisplayOptions
}

// NewProgress creates a Progress that builds a fresh Display per save.
func NewProgress(opts DisplayOptions) *Progress {
	return &Progress{opts: opts}
}

// Save runs save for the contact called name, rendering progress until it
// returns. The display has released the terminal by the time Save returns.
func (p *Progress) Save(ctx context.Context, name string, save func(context.Context) error) error {
	return track(ctx, NewDisplay(p.opts), name, save)
}

func track(ctx context.Context, display Display, name string, save func(context.Context) error) error {
	bridge := NewBridge()

	displayDone := make(chan error, 1)
	go func() {
		displayDone <- display.Run(ctx, bridge.Events())
	}()

	bridge.Start(name)
	err := save(ctx)
	if err != nil {
		bridge.Error(name, err)
	} else {
		bridge.Done(name)
	}

	// Wait for display to finish (so it releases the terminal).
	<-displayDone
	return err
}
