package opener

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperscape/shell/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenExternal(t *testing.T) {
	t.Parallel()

	var opened []string
	m := &Module{Opener: Func(func(_ context.Context, url string) error {
		opened = append(opened, url)
		return nil
	})}
	reg := registry.New()
	m.Register(reg)

	res, err := reg.Invoke(context.Background(), "open_external", map[string]any{"url": "https://hyperscape.ai/login"})
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, []string{"https://hyperscape.ai/login"}, opened)
}

func TestOpenExternal_InvalidArguments(t *testing.T) {
	t.Parallel()

	m := &Module{Opener: Func(func(context.Context, string) error {
		t.Fatal("opener must not be called")
		return nil
	})}

	for name, args := range map[string]map[string]any{
		"missing":    {},
		"not string": {"url": 42},
		"no scheme":  {"url": "hyperscape.ai"},
		"unparsable": {"url": "http://[::1"},
	} {
		_, err := m.OpenExternal(context.Background(), args)
		require.ErrorIs(t, err, ErrInvalidURL, name)
	}
}

func TestOpenExternal_OpenerFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("no browser")
	m := &Module{Opener: Func(func(context.Context, string) error { return boom })}

	_, err := m.OpenExternal(context.Background(), map[string]any{"url": "https://x.y"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "open_external")
}
