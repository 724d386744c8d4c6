package desktop

import (
	"context"
	"log/slog"

	"github.com/hyperscape/shell/internal/app"
)

// webGPUProbe runs in the webview once the DOM is ready and reports back
// through the bound Bridge.
const webGPUProbe = `(async () => {
  const report = window.go && window.go.desktop && window.go.desktop.Bridge && window.go.desktop.Bridge.ReportWebGPU;
  if (!report) return;
  if (!navigator.gpu) { report(false, ""); return; }
  try {
    const adapter = await navigator.gpu.requestAdapter();
    report(!!adapter, adapter && adapter.info ? (adapter.info.vendor + " " + adapter.info.architecture).trim() : "");
  } catch (e) {
    report(false, String(e));
  }
})();`

// Bridge is bound into the webview as window.go.desktop.Bridge.
type Bridge struct {
	app    *app.App
	logger *slog.Logger
}

func newBridge(a *app.App) *Bridge {
	return &Bridge{app: a, logger: a.Logger()}
}

// Invoke runs a registered shell command for the UI.
func (b *Bridge) Invoke(name string, args map[string]any) (any, error) {
	return b.app.Invoke(context.Background(), name, args)
}

// ReportWebGPU records the result of the WebGPU probe.
func (b *Bridge) ReportWebGPU(available bool, adapter string) {
	if !available {
		b.logger.Warn("WebGPU is not available in the webview.", "detail", adapter)
		return
	}
	b.logger.Info("WebGPU available.", "adapter", adapter)
}
