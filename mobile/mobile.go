// Package mobile is the host API bound into the iOS and Android apps with
// gomobile. The native side starts the shell once, forwards every URL the
// OS opens the app with, and receives routed links through an EventSink.
//
// Exported signatures stick to the types gomobile can bind.
package mobile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hyperscape/shell/internal/app"
	"github.com/hyperscape/shell/internal/hcl"
	"github.com/hyperscape/shell/internal/platform"
	"github.com/hyperscape/shell/internal/uichannel"
	"github.com/hyperscape/shell/modules/opener"
)

// EventSink is implemented by the native host.
type EventSink interface {
	// Emit hands an event to the webview.
	Emit(event, payload string) error
	// OpenExternal opens url outside the app.
	OpenExternal(url string) error
}

var errNoSink = errors.New("no event sink")

var (
	mu       sync.Mutex
	src      *platform.Mobile
	running  *session
	starting bool

	// logOutput receives the shell's log; on device stderr ends up in the
	// system log.
	logOutput io.Writer = os.Stderr

	// links carries OpenURL batches to the router in call order, off the
	// caller's thread, so a sink may open URLs from inside Emit.
	links = newQueue()
)

type session struct {
	app     *app.App
	channel *uichannel.Deferred
}

// source returns the link source of the current or next session. Links
// opened before Start are buffered there. Callers hold mu.
func source() *platform.Mobile {
	if src == nil {
		src = platform.NewMobile()
	}
	return src
}

// Start loads configPath (empty for defaults), sets up the shell and
// starts the bridge when one is configured.
func Start(configPath string, sink EventSink) (err error) {
	mu.Lock()
	if running != nil || starting {
		mu.Unlock()
		return errors.New("shell already started")
	}
	starting = true
	s := source()
	mu.Unlock()

	var (
		a          *app.App
		channel    *uichannel.Deferred
		subscribed bool
	)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked | %v", r)
		}

		mu.Lock()
		defer mu.Unlock()
		starting = false
		switch {
		case err == nil:
			running = &session{app: a, channel: channel}
		case subscribed && src == s:
			// The failed session may own the source; start the next one fresh.
			src = nil
		}
	}()

	var paths []string
	if configPath != "" {
		paths = []string{configPath}
	}

	channel = uichannel.NewDeferred()
	if sink != nil {
		channel.Attach(sink.Emit)
	}
	openExternal := opener.Func(func(_ context.Context, url string) error {
		if sink == nil {
			return errNoSink
		}
		return sink.OpenExternal(url)
	})

	ctx := context.Background()
	a = app.NewApp(logOutput, &app.Config{ConfigPaths: paths}, hcl.NewLoader(), app.WithOpener(openExternal))
	if err := a.StartBridge(ctx); err != nil {
		return err
	}
	subscribed = true
	if err := a.Setup(ctx, s, channel); err != nil {
		_ = a.Close(ctx)
		return fmt.Errorf("application setup failed: %w", err)
	}
	return nil
}

// OpenURL delivers a single URL the app was opened with.
func OpenURL(url string) {
	OpenURLs(url)
}

// OpenURLs delivers one activation batch. urls holds one URL per line.
// Delivery is asynchronous; batches reach the UI in call order.
func OpenURLs(urls string) {
	var batch []string
	for _, line := range strings.Split(urls, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			batch = append(batch, line)
		}
	}
	if len(batch) == 0 {
		return
	}

	mu.Lock()
	s := source()
	mu.Unlock()
	links.push(s, batch)
}

// Invoke runs a shell command with JSON arguments and returns its JSON
// result.
func Invoke(name, argsJSON string) (string, error) {
	mu.Lock()
	s := running
	mu.Unlock()
	if s == nil {
		return "", errors.New("shell not started")
	}
	return invokeJSON(s.app, name, argsJSON)
}

// Stop shuts the shell down. A later Start begins a new session.
func Stop() error {
	mu.Lock()
	defer mu.Unlock()

	if running == nil {
		return nil
	}
	running.channel.Detach()
	err := running.app.Close(context.Background())
	running = nil
	src = nil
	return err
}
