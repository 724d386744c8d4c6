package opener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/hyperscape/shell/internal/ctxlog"
	"github.com/hyperscape/shell/internal/registry"
)

// ErrInvalidURL is returned when the 'url' argument is missing or unusable.
var ErrInvalidURL = errors.New("open_external: invalid url")

// Opener opens a URL outside the application, normally in the system browser.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// Func adapts a function to the Opener interface.
type Func func(ctx context.Context, url string) error

// Open implements Opener.
func (f Func) Open(ctx context.Context, url string) error {
	return f(ctx, url)
}

// System opens URLs with the desktop's default handler.
type System struct{}

// Open implements Opener. The handler process is started and left running
// on its own.
func (System) Open(_ context.Context, rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}

// Module registers the 'open_external' command.
type Module struct {
	Opener Opener
}

// OpenExternal is the handler of the 'open_external' command.
func (m *Module) OpenExternal(ctx context.Context, args map[string]any) (any, error) {
	raw, _ := args["url"].(string)
	if raw == "" {
		return nil, fmt.Errorf("%w: missing 'url' argument", ErrInvalidURL)
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	ctxlog.FromContext(ctx).Info("Opening external URL", "url", raw)
	opener := m.Opener
	if opener == nil {
		opener = System{}
	}
	if err := opener.Open(ctx, raw); err != nil {
		return nil, fmt.Errorf("open_external: %w", err)
	}
	return nil, nil
}

// Register registers the command with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCommand("open_external", &registry.RegisteredCommand{
		Description: "Opens a URL in the system browser.",
		Fn:          m.OpenExternal,
	})
}
