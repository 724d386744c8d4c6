package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hyperscape/shell/internal/config"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_NoFilesGivesDefaults(t *testing.T) {
	t.Parallel()

	model, err := NewLoaderWithEnv(nil).Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	if diff := cmp.Diff(config.Defaults(), model); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FullFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "shell.hcl", `
app {
  name       = "Hyperscape Dev"
  identifier = "ai.hyperscape.dev"
}

window {
  title  = upper("hyperscape")
  width  = 1024
  height = 768
}

deep_link {
  schemes = ["hyperscape", "hyperscape-dev"]
  event   = "deep-link"
}

bridge {
  listen = format("127.0.0.1:%s", env_or("SHELL_PORT", "7425"))
}

log {
  level  = env.SHELL_LOG_LEVEL
  format = "json"
}
`)

	loader := NewLoaderWithEnv([]string{"SHELL_LOG_LEVEL=debug", "SHELL_PORT="})
	model, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	want := &config.Model{
		App:      config.App{Name: "Hyperscape Dev", Identifier: "ai.hyperscape.dev"},
		Window:   config.Window{Title: "HYPERSCAPE", Width: 1024, Height: 768},
		DeepLink: config.DeepLink{Schemes: []string{"hyperscape", "hyperscape-dev"}, Event: "deep-link"},
		Bridge:   config.Bridge{Listen: "127.0.0.1:7425"},
		Log:      config.Log{Level: "debug", Format: "json"},
	}
	if diff := cmp.Diff(want, model); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, model.Validate())
}

func TestLoad_LaterFilesOverrideEarlier(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "conf/10-base.hcl", `
window {
  width  = 800
  height = 600
}
bridge {
  listen = "127.0.0.1:9000"
}
`)
	writeFile(t, dir, "conf/20-local.hcl", `
window {
  width = 1920
}
`)

	model, err := NewLoaderWithEnv(nil).Load(context.Background(), filepath.Join(dir, "conf"))
	require.NoError(t, err)

	require.Equal(t, 1920, model.Window.Width)
	require.Equal(t, 600, model.Window.Height)
	require.Equal(t, "127.0.0.1:9000", model.Bridge.Listen)
	require.Equal(t, config.Defaults().DeepLink, model.DeepLink)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "syntax error",
			content: "window {\n  width = 10\n",
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "unknown block",
			content: "updater {\n  endpoint = \"x\"\n}\n",
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "wrong type",
			content: "window {\n  width = \"wide\"\n}\n",
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "missing env variable",
			content: "log {\n  level = env.NOT_SET_ANYWHERE\n}\n",
			wantErr: "failed to decode HCL file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), "shell.hcl", tc.content)
			_, err := NewLoaderWithEnv(nil).Load(context.Background(), path)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
