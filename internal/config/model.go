package config

import (
	"errors"
	"fmt"
	"strings"
)

// Model is the unified, format-agnostic representation of the shell
// configuration.
type Model struct {
	App      App
	Window   Window
	DeepLink DeepLink
	Bridge   Bridge
	Log      Log
}

// App identifies the application.
type App struct {
	Name       string
	Identifier string
}

// Window describes the main window hosting the web UI.
type Window struct {
	Title  string
	Width  int
	Height int
}

// DeepLink configures the URL schemes the shell is registered for and the
// UI event they are routed to.
type DeepLink struct {
	Schemes []string
	Event   string
}

// Bridge configures the local HTTP bridge (health, socket.io, commands).
// An empty Listen address disables it.
type Bridge struct {
	Listen string
}

// Log configures the process-wide logger.
type Log struct {
	Level  string
	Format string
}

// Defaults returns the configuration used when no file overrides it.
func Defaults() *Model {
	return &Model{
		App: App{
			Name:       "Hyperscape",
			Identifier: "ai.hyperscape.app",
		},
		Window: Window{
			Title:  "Hyperscape",
			Width:  1280,
			Height: 800,
		},
		DeepLink: DeepLink{
			Schemes: []string{"hyperscape"},
			Event:   "deep-link",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate reports every problem with the model at once.
func (m *Model) Validate() error {
	var errs []error
	if m.App.Identifier == "" {
		errs = append(errs, errors.New("app.identifier must not be empty"))
	}
	if m.Window.Width <= 0 || m.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", m.Window.Width, m.Window.Height))
	}
	if len(m.DeepLink.Schemes) == 0 {
		errs = append(errs, errors.New("deep_link.schemes must list at least one scheme"))
	}
	for _, s := range m.DeepLink.Schemes {
		if s == "" || strings.ContainsAny(s, ":/ ") {
			errs = append(errs, fmt.Errorf("invalid deep link scheme %q", s))
		}
	}
	if m.DeepLink.Event == "" {
		errs = append(errs, errors.New("deep_link.event must not be empty"))
	}
	switch m.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q", m.Log.Level))
	}
	switch m.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q", m.Log.Format))
	}
	return errors.Join(errs...)
}
