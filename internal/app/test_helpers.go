package app

import (
	"os"
	"testing"

	"github.com/hyperscape/shell/internal/config"
	"github.com/hyperscape/shell/internal/testutil"
)

// SetupAppTest creates a new app instance for tests, logging at debug level
// into a buffer. Set SHELL_TEST_LOGS=true to print the captured log.
func SetupAppTest(t *testing.T, appConfig *Config, loader config.Loader, opts ...Option) (*App, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	appConfig.LogLevel = "debug"
	testApp := NewApp(logBuffer, appConfig, loader, opts...)

	t.Cleanup(func() {
		if os.Getenv("SHELL_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
