package mobile

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hyperscape/shell/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The package keeps one session per process, so these tests run serially.

type recordingSink struct {
	mu     sync.Mutex
	events []string
	opened []string
}

func (s *recordingSink) Emit(event, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event+" "+payload)
	return nil
}

func (s *recordingSink) OpenExternal(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = append(s.opened, url)
	return nil
}

func (s *recordingSink) snapshot() ([]string, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...), append([]string(nil), s.opened...)
}

func captureLogs(t *testing.T) *testutil.SafeBuffer {
	t.Helper()
	buf := &testutil.SafeBuffer{}
	prev := logOutput
	logOutput = buf
	t.Cleanup(func() {
		logOutput = prev
		require.NoError(t, Stop())
	})
	return buf
}

func TestStart_RoutesBufferedAndLiveURLs(t *testing.T) {
	captureLogs(t)

	OpenURL("hyperscape://before-start")

	sink := &recordingSink{}
	require.NoError(t, Start("", sink))

	OpenURLs("hyperscape://a\n\n  hyperscape://b  \n")
	OpenURLs("")
	links.wait()

	events, _ := sink.snapshot()
	assert.Equal(t, []string{
		"deep-link hyperscape://before-start",
		"deep-link hyperscape://a",
		"deep-link hyperscape://b",
	}, events)
}

// chainingSink opens a follow-up link from inside Emit, as a native host
// reacting to a routed link may do.
type chainingSink struct {
	recordingSink
	next map[string]string
}

func (s *chainingSink) Emit(event, payload string) error {
	if err := s.recordingSink.Emit(event, payload); err != nil {
		return err
	}
	if follow, ok := s.next[payload]; ok {
		OpenURL(follow)
	}
	return nil
}

func TestStart_SinkMayOpenURLsFromEmit(t *testing.T) {
	captureLogs(t)

	OpenURL("hyperscape://buffered")
	links.wait()

	sink := &chainingSink{next: map[string]string{
		"hyperscape://buffered": "hyperscape://from-start",
		"hyperscape://live":     "hyperscape://from-live",
	}}

	done := make(chan error, 1)
	go func() { done <- Start("", sink) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start blocked while the sink opened a URL")
	}

	OpenURL("hyperscape://live")
	require.Eventually(t, func() bool {
		events, _ := sink.snapshot()
		return len(events) == 4
	}, 5*time.Second, 10*time.Millisecond)
	links.wait()

	events, _ := sink.snapshot()
	assert.Equal(t, []string{
		"deep-link hyperscape://buffered",
		"deep-link hyperscape://from-start",
		"deep-link hyperscape://live",
		"deep-link hyperscape://from-live",
	}, events)
}

func TestStart_Twice(t *testing.T) {
	captureLogs(t)

	require.NoError(t, Start("", &recordingSink{}))
	assert.ErrorContains(t, Start("", &recordingSink{}), "already started")
}

func TestStart_RestartAfterStop(t *testing.T) {
	captureLogs(t)

	first := &recordingSink{}
	require.NoError(t, Start("", first))
	require.NoError(t, Stop())

	second := &recordingSink{}
	require.NoError(t, Start("", second))
	OpenURL("hyperscape://again")
	links.wait()

	events, _ := second.snapshot()
	assert.Equal(t, []string{"deep-link hyperscape://again"}, events)
	firstEvents, _ := first.snapshot()
	assert.Empty(t, firstEvents)
}

func TestStart_BadConfigIsRecovered(t *testing.T) {
	captureLogs(t)

	path := filepath.Join(t.TempDir(), "shell.hcl")
	require.NoError(t, os.WriteFile(path, []byte("deep_link {\n"), 0o600))

	err := Start(path, &recordingSink{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application startup panicked")
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestStart_CustomEventFromConfig(t *testing.T) {
	captureLogs(t)

	path := filepath.Join(t.TempDir(), "shell.hcl")
	require.NoError(t, os.WriteFile(path, []byte("deep_link {\n  event = \"link-opened\"\n}\n"), 0o600))

	sink := &recordingSink{}
	require.NoError(t, Start(path, sink))
	OpenURL("hyperscape://custom")
	links.wait()

	events, _ := sink.snapshot()
	assert.Equal(t, []string{"link-opened hyperscape://custom"}, events)
}

func TestInvoke(t *testing.T) {
	captureLogs(t)

	_, err := Invoke("get_platform_info", "")
	assert.ErrorContains(t, err, "not started")

	sink := &recordingSink{}
	require.NoError(t, Start("", sink))

	out, err := Invoke("get_platform_info", "")
	require.NoError(t, err)
	assert.Contains(t, out, `"os"`)

	out, err = Invoke("open_external", `{"url":"https://hyperscape.ai"}`)
	require.NoError(t, err)
	assert.Equal(t, "null", out)
	_, opened := sink.snapshot()
	assert.Equal(t, []string{"https://hyperscape.ai"}, opened)

	_, err = Invoke("open_external", `{`)
	assert.ErrorContains(t, err, "invalid JSON arguments")
}
