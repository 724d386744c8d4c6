package deeplink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// EventName is the UI channel event every routed URL is published under.
const EventName = "deep-link"

// State is the registration state of a Router.
type State int

const (
	// StateUnregistered is the initial state: no subscription is active.
	StateUnregistered State = iota
	// StateLive means the router is subscribed to its source. It is terminal.
	StateLive
)

func (s State) String() string {
	switch s {
	case StateUnregistered:
		return "unregistered"
	case StateLive:
		return "live"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type origin string

const (
	originLaunch origin = "launch"
	originLive   origin = "live"
)

// Option configures a Router.
type Option func(*Router)

// WithEventName overrides the UI channel event name. An empty name keeps
// the default.
func WithEventName(name string) Option {
	return func(r *Router) {
		if name != "" {
			r.event = name
		}
	}
}

// Router forwards activation URLs from a Source to a Channel.
type Router struct {
	logger  *slog.Logger
	channel Channel
	event   string

	mu      sync.Mutex
	state   State
	priming bool
	// backlog holds live batches that arrive while Initialize is routing
	// the launch URLs.
	backlog [][]string
	source  Source
}

// NewRouter creates an unregistered router publishing to channel.
func NewRouter(logger *slog.Logger, channel Channel, opts ...Option) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{
		logger:  logger.With("component", "deeplink"),
		channel: channel,
		event:   EventName,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize subscribes the router to source and, when the source supports
// it, routes the launch URLs before any live activation. It must be called
// once; later calls return ErrAlreadyInitialized. A failed subscription
// returns an error wrapping ErrRegistration and leaves the router
// unregistered.
func (r *Router) Initialize(ctx context.Context, source Source) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRegistration, err)
	}
	if source == nil {
		return fmt.Errorf("%w: no platform source", ErrRegistration)
	}

	r.mu.Lock()
	if r.state == StateLive || r.priming {
		r.mu.Unlock()
		return ErrAlreadyInitialized
	}
	r.priming = true
	r.mu.Unlock()

	caps := source.Capabilities()
	logger := r.logger.With("family", string(caps.Family))
	logger.Debug("Subscribing to platform link source.", "launch_query", caps.LaunchURLQuery)

	if err := source.Subscribe(r); err != nil {
		r.mu.Lock()
		r.priming = false
		r.backlog = nil
		r.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrRegistration, err)
	}

	var launchURLs []string
	if caps.LaunchURLQuery {
		urls, err := source.LaunchURLs()
		if err != nil {
			logger.Warn("Launch URL query failed, continuing without it.", "error", err)
		} else {
			launchURLs = urls
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.source = source
	r.route(launchURLs, originLaunch)
	for _, batch := range r.backlog {
		r.route(batch, originLive)
	}
	r.backlog = nil
	r.priming = false
	r.state = StateLive

	logger.Info("🔗 Deep link router live.", "launch_urls", len(launchURLs))
	return nil
}

// OnActivation implements Observer. Each URL becomes one event on the UI
// channel, in input order. An empty batch is a no-op.
func (r *Router) OnActivation(urls []string) {
	if len(urls) == 0 {
		r.logger.Debug("Ignoring empty activation batch.")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.priming {
		r.backlog = append(r.backlog, slices.Clone(urls))
		return
	}
	r.route(urls, originLive)
}

// State reports whether the router has been initialized.
func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// route publishes urls in order. Callers hold r.mu.
func (r *Router) route(urls []string, from origin) {
	for _, u := range urls {
		if from == originLaunch {
			r.logger.Info("Deep link on launch", "url", u)
		} else {
			r.logger.Info("Deep link received", "url", u)
		}
		if err := r.emit(u); err != nil {
			r.logger.Warn("Deep link dropped, UI channel rejected it.", "url", u, "error", err)
		}
	}
}

func (r *Router) emit(url string) (err error) {
	if r.channel == nil {
		return errors.New("no UI channel")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("UI channel panicked: %v", rec)
		}
	}()
	return r.channel.Emit(r.event, url)
}
