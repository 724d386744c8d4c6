package testutil

import "sync"

// Emitted is one event accepted by a RecordingChannel.
type Emitted struct {
	Event   string
	Payload string
}

// RecordingChannel is a shared UI channel double. It records every event it
// accepts and can be told to refuse them with Err.
type RecordingChannel struct {
	mu     sync.Mutex
	events []Emitted
	Err    error
}

// Emit records the event unless Err is set.
func (c *RecordingChannel) Emit(event, payload string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.events = append(c.events, Emitted{Event: event, Payload: payload})
	return nil
}

// Events returns a copy of the recorded events.
func (c *RecordingChannel) Events() []Emitted {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Emitted(nil), c.events...)
}

// Payloads returns the recorded payloads in order.
func (c *RecordingChannel) Payloads() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e.Payload)
	}
	return out
}
