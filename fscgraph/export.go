package fscgraph

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	DefaultFormat    = "pdf"
	DefaultDotBinary = "dot"
)

// Exporter writes controller graphs to disk and optionally hands them to the
// graphviz binary.
type Exporter struct {
	render    bool
	format    string
	dotBinary string
	logger    *zap.Logger
}

type ExportOption func(*Exporter)

// WithRender runs the graphviz binary after writing the DOT source.
func WithRender(render bool) ExportOption {
	return func(e *Exporter) { e.render = render }
}

// WithFormat sets the graphviz output format (pdf, svg, png, ...).
func WithFormat(format string) ExportOption {
	return func(e *Exporter) {
		if format != "" {
			e.format = format
		}
	}
}

func WithDotBinary(path string) ExportOption {
	return func(e *Exporter) {
		if path != "" {
			e.dotBinary = path
		}
	}
}

func WithLogger(l *zap.Logger) ExportOption {
	return func(e *Exporter) { e.logger = l }
}

func NewExporter(opts ...ExportOption) *Exporter {
	e := &Exporter{
		format:    DefaultFormat,
		dotBinary: DefaultDotBinary,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes the DOT source of g to route and, when rendering is enabled,
// produces route.<format> next to it. It returns the paths it wrote.
func (e *Exporter) Export(ctx context.Context, g *Graph, route string) ([]string, error) {
	if dir := filepath.Dir(route); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create export directory: %w", err)
		}
	}
	if err := os.WriteFile(route, []byte(g.GenerateGraphviz()), 0o644); err != nil {
		return nil, fmt.Errorf("write graph source: %w", err)
	}
	written := []string{route}
	e.logger.Info("controller graph written",
		zap.String("route", route),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)))

	if !e.render {
		return written, nil
	}
	out := route + "." + e.format
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.dotBinary, "-T"+e.format, "-o", out, route)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return written, fmt.Errorf("render %s with %s: %w: %s", route, e.dotBinary, err, strings.TrimSpace(stderr.String()))
	}
	e.logger.Info("controller graph rendered", zap.String("output", out), zap.String("format", e.format))
	return append(written, out), nil
}
