package mobile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hyperscape/shell/internal/app"
)

func invokeJSON(a *app.App, name, argsJSON string) (string, error) {
	args := map[string]any{}
	if argsJSON != "" {
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return "", fmt.Errorf("invalid JSON arguments: %w", err)
		}
	}

	result, err := a.Invoke(context.Background(), name, args)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode result of '%s': %w", name, err)
	}
	return string(out), nil
}
