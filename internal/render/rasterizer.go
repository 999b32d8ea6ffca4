// Package render turns mind maps into PNG images.
package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xxxsen/examprep/internal/model"
)

var ErrUnavailable = errors.New("rasterizer unavailable")

// Rasterizer renders diagram markup to PNG bytes. Any error means the image
// is unavailable and the caller should fall back to the markup.
type Rasterizer interface {
	Rasterize(ctx context.Context, markup string) ([]byte, error)
}

type Config struct {
	Type           string  `json:"type"`
	ExecPath       string  `json:"exec_path"`
	ScriptURL      string  `json:"script_url"`
	SettleMs       int     `json:"settle_ms"`
	TimeoutSeconds int     `json:"timeout_seconds"`
	ViewportWidth  int64   `json:"viewport_width"`
	ViewportHeight int64   `json:"viewport_height"`
	Scale          float64 `json:"scale"`
	MaxConcurrency int64   `json:"max_concurrency"`
}

// New builds the diagram rasterizer named by cfg.Type.
func New(cfg Config) (Rasterizer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "", "chrome":
		return NewChromeRasterizer(cfg), nil
	case "none", "disabled":
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unsupported rasterizer type: %s", cfg.Type)
	}
}

// Disabled reports every diagram as unavailable.
type Disabled struct{}

func (Disabled) Rasterize(ctx context.Context, markup string) ([]byte, error) {
	return nil, ErrUnavailable
}

// MindMapRenderer dispatches on the mind map variant.
type MindMapRenderer struct {
	Diagram Rasterizer
	Tree    *TreeRenderer
}

func (r *MindMapRenderer) Render(ctx context.Context, mm model.MindMap) ([]byte, error) {
	switch mm.Kind {
	case model.MindMapTree:
		if r.Tree == nil || mm.Tree == nil {
			return nil, ErrUnavailable
		}
		return r.Tree.Render(ctx, *mm.Tree)
	default:
		if r.Diagram == nil || strings.TrimSpace(mm.Markup) == "" {
			return nil, ErrUnavailable
		}
		return r.Diagram.Rasterize(ctx, mm.Markup)
	}
}
