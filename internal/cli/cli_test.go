package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hyperscape/shell/internal/app"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		args       []string
		want       *app.Config
		wantExit   bool
		wantErrMsg string
	}{
		{
			name: "no arguments",
			args: nil,
			want: &app.Config{},
		},
		{
			name: "launch url",
			args: []string{"hyperscape://world/1"},
			want: &app.Config{LaunchArgs: []string{"hyperscape://world/1"}},
		},
		{
			name: "flags and launch url",
			args: []string{"-c", "base.hcl", "--config", "local.hcl", "--log-level", "DEBUG", "--log-format", "json", "--bridge-listen", "127.0.0.1:7425", "hyperscape://a"},
			want: &app.Config{
				ConfigPaths:  []string{"base.hcl", "local.hcl"},
				LogLevel:     "debug",
				LogFormat:    "json",
				BridgeListen: "127.0.0.1:7425",
				LaunchArgs:   []string{"hyperscape://a"},
			},
		},
		{
			name:     "help",
			args:     []string{"-h"},
			wantExit: true,
		},
		{
			name:       "unknown flag",
			args:       []string{"--nope"},
			wantErrMsg: "flag provided but not defined",
		},
		{
			name:       "bad log format",
			args:       []string{"--log-format", "xml"},
			wantErrMsg: "invalid log-format",
		},
		{
			name:       "bad log level",
			args:       []string{"--log-level", "chatty"},
			wantErrMsg: "invalid log-level",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := &bytes.Buffer{}
			got, exit, err := Parse(tc.args, out)

			if tc.wantErrMsg != "" {
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr))
				require.Equal(t, 2, exitErr.Code)
				require.Contains(t, exitErr.Message, tc.wantErrMsg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantExit, exit)
			if tc.wantExit {
				require.Contains(t, out.String(), "Usage:")
				return
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
