// Package platform adapts OS activation delivery to the deeplink.Source
// contract for the desktop and mobile platform families.
package platform

import (
	"errors"
	"slices"
	"sync"

	"github.com/hyperscape/shell/internal/deeplink"
)

var (
	// ErrAlreadySubscribed is returned when a second observer subscribes.
	ErrAlreadySubscribed = errors.New("platform link source already has a subscriber")

	// ErrNilObserver is returned when Subscribe is called with nil.
	ErrNilObserver = errors.New("platform link source: nil observer")

	// ErrLaunchQueryUnsupported is returned by sources without a launch URL query.
	ErrLaunchQueryUnsupported = errors.New("launch URL query is not available on this platform")
)

// stream is the live delivery path shared by the adapters. Batches that
// arrive before anyone subscribed are kept and replayed, in order, to the
// first subscriber.
type stream struct {
	// deliverMu serializes calls into the observer.
	deliverMu sync.Mutex

	mu       sync.Mutex
	observer deeplink.Observer
	pending  [][]string
}

func (s *stream) subscribe(o deeplink.Observer) error {
	if o == nil {
		return ErrNilObserver
	}

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	if s.observer != nil {
		s.mu.Unlock()
		return ErrAlreadySubscribed
	}
	s.observer = o
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, batch := range pending {
		o.OnActivation(batch)
	}
	return nil
}

func (s *stream) deliver(urls []string) {
	if len(urls) == 0 {
		return
	}
	batch := slices.Clone(urls)

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	o := s.observer
	if o == nil {
		s.pending = append(s.pending, batch)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	o.OnActivation(batch)
}

// buffered reports how many batches wait for a subscriber.
func (s *stream) buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
