// Package uichannel provides the one-way event channels from the native
// shell into the rendered UI. Delivery is fire-and-forget: an Emit either
// hands the event over or reports why it could not, and nothing is retried.
package uichannel

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrNotAttached is returned when no UI is listening yet.
var ErrNotAttached = errors.New("ui channel not attached")

// Channel is anything that accepts a named event with a string payload.
type Channel interface {
	Emit(event, payload string) error
}

// EmitFunc adapts a function to the Channel interface.
type EmitFunc func(event, payload string) error

// Emit implements Channel.
func (f EmitFunc) Emit(event, payload string) error {
	return f(event, payload)
}

// Deferred is a channel whose target becomes known after it is handed out,
// e.g. a window that is created after the router was wired.
type Deferred struct {
	target atomic.Pointer[EmitFunc]
}

// NewDeferred returns a detached channel.
func NewDeferred() *Deferred {
	return &Deferred{}
}

// Attach routes subsequent events to fn.
func (d *Deferred) Attach(fn EmitFunc) {
	if fn == nil {
		d.target.Store(nil)
		return
	}
	d.target.Store(&fn)
}

// Detach drops the target; later events fail with ErrNotAttached.
func (d *Deferred) Detach() {
	d.target.Store(nil)
}

// Attached reports whether a target is set.
func (d *Deferred) Attached() bool {
	return d.target.Load() != nil
}

// Emit implements Channel.
func (d *Deferred) Emit(event, payload string) error {
	fn := d.target.Load()
	if fn == nil {
		return ErrNotAttached
	}
	return (*fn)(event, payload)
}

// Fanout emits every event to several channels.
type Fanout struct {
	channels []Channel
}

// NewFanout builds a fan-out over the non-nil channels.
func NewFanout(channels ...Channel) *Fanout {
	f := &Fanout{}
	for _, ch := range channels {
		if ch != nil {
			f.channels = append(f.channels, ch)
		}
	}
	return f
}

// Emit implements Channel. It succeeds when at least one channel accepted
// the event; otherwise all failures are returned together.
func (f *Fanout) Emit(event, payload string) error {
	if len(f.channels) == 0 {
		return ErrNotAttached
	}
	var errs []error
	accepted := false
	for i, ch := range f.channels {
		if err := ch.Emit(event, payload); err != nil {
			errs = append(errs, fmt.Errorf("channel %d: %w", i, err))
			continue
		}
		accepted = true
	}
	if accepted {
		return nil
	}
	return errors.Join(errs...)
}
