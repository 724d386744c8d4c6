package platform_info

import (
	"context"
	"runtime"

	"github.com/hyperscape/shell/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Info describes the platform the shell runs on.
type Info struct {
	OS     string `json:"os"`
	Arch   string `json:"arch"`
	Family string `json:"family"`
}

// Current returns the platform of the running process.
func Current() Info {
	return Info{
		OS:     runtime.GOOS,
		Arch:   runtime.GOARCH,
		Family: family(runtime.GOOS),
	}
}

func family(goos string) string {
	switch goos {
	case "windows":
		return "windows"
	case "js", "wasip1":
		return ""
	default:
		return "unix"
	}
}

// GetPlatformInfo is the handler of the 'get_platform_info' command.
func GetPlatformInfo(ctx context.Context, args map[string]any) (any, error) {
	return Current(), nil
}

// Register registers the command with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCommand("get_platform_info", &registry.RegisteredCommand{
		Description: "Reports the operating system, architecture and OS family.",
		Fn:          GetPlatformInfo,
	})
}
