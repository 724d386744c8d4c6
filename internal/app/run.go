package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"time"

	"github.com/hyperscape/shell/internal/platform"
)

// Run runs the shell without a native window: the UI connects over the
// bridge, and links are routed once the first UI client is connected. It
// blocks until ctx is cancelled. When another instance already
// owns the bridge address, the launch arguments are forwarded to it and Run
// returns nil.
func (a *App) Run(ctx context.Context) error {
	a.logger.Debug("App.Run method started.")

	if err := a.StartBridge(ctx); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			a.logger.Info("Another instance owns the bridge, forwarding activation.", "address", a.model.Bridge.Listen)
			return ForwardActivation(ctx, a.model.Bridge.Listen, a.config.LaunchArgs)
		}
		return err
	}

	src := platform.NewDesktop(a.config.LaunchArgs, a.model.DeepLink.Schemes)
	// Activations forwarded before a UI connects wait in the source.
	a.setActivator(src)

	if a.socket != nil {
		a.logger.Info("Waiting for a UI client before routing deep links.")
		select {
		case <-a.socket.FirstClient():
		case <-ctx.Done():
			a.logger.Info("🏁 Shutting down.")
			return a.Close(context.Background())
		}
	}

	if err := a.Setup(ctx, src, nil); err != nil {
		_ = a.Close(context.Background())
		return fmt.Errorf("application setup failed: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("🏁 Shutting down.")
	return a.Close(context.Background())
}

// ForwardActivation hands args to the instance whose bridge listens on addr.
func ForwardActivation(ctx context.Context, addr string, args []string) error {
	body, err := json.Marshal(ActivationRequest{Args: args})
	if err != nil {
		return fmt.Errorf("failed to encode activation: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("http://%s/activate", addr), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build activation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to forward activation to %s: %w", addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("running instance rejected activation: %s", resp.Status)
	}
	return nil
}
