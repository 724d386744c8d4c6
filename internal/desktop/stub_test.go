//go:build !desktop

package desktop

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/hyperscape/shell/internal/app"
	"github.com/hyperscape/shell/internal/deeplink"
	"github.com/stretchr/testify/require"
)

func TestHost_HeadlessFallback(t *testing.T) {
	t.Parallel()

	h := NewHost()
	require.NotNil(t, h.Opener())

	a := app.NewApp(io.Discard, &app.Config{LaunchArgs: []string{"hyperscape://x"}}, defaultsLoader{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx, a) }()

	require.Eventually(t, func() bool {
		r := a.DeepLink().Router()
		return r != nil && r.State() == deeplink.StateLive
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
