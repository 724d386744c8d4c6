package hcl

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hyperscape/shell/internal/config"
	"github.com/hyperscape/shell/internal/ctxlog"
	"github.com/hyperscape/shell/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a loader that evaluates files against the process
// environment.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// NewLoaderWithEnv creates a loader that sees only the given environment,
// in "KEY=value" form.
func NewLoaderWithEnv(environ []string) *Loader {
	env := slices.Clone(environ)
	return &Loader{environ: func() []string { return env }}
}

// Load parses every .hcl file found under paths, in order, and layers each
// one over the previous result, starting from config.Defaults().
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := config.Defaults()

	var files []string
	for _, p := range paths {
		found, err := fsutil.FindFilesByExtension(p, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", p, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered HCL files.", "files", files)

	parser := hclparse.NewParser()
	evalCtx := newEvalContext(l.environ())

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		apply(model, &root)
		logger.Debug("Applied configuration file.", "file", file)
	}

	logger.Debug("HCL loading complete.", "files", len(files), "schemes", model.DeepLink.Schemes)
	return model, nil
}

// apply copies every value set in root onto model.
func apply(model *config.Model, root *fileRoot) {
	if b := root.App; b != nil {
		set(&model.App.Name, b.Name)
		set(&model.App.Identifier, b.Identifier)
	}
	if b := root.Window; b != nil {
		set(&model.Window.Title, b.Title)
		set(&model.Window.Width, b.Width)
		set(&model.Window.Height, b.Height)
	}
	if b := root.DeepLink; b != nil {
		if b.Schemes != nil {
			model.DeepLink.Schemes = slices.Clone(*b.Schemes)
		}
		set(&model.DeepLink.Event, b.Event)
	}
	if b := root.Bridge; b != nil {
		set(&model.Bridge.Listen, b.Listen)
	}
	if b := root.Log; b != nil {
		set(&model.Log.Level, b.Level)
		set(&model.Log.Format, b.Format)
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
