package render

import (
	"bytes"
	"context"
	"image/png"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/examprep/internal/model"
)

func sampleTree() model.MindMapNode {
	return model.MindMapNode{
		Topic: "Operating Systems",
		Subtopics: []model.MindMapNode{
			{Topic: "Processes", Subtopics: []model.MindMapNode{{Topic: "Scheduling"}, {Topic: "IPC"}}},
			{Topic: "Memory"},
		},
	}
}

func TestTreeRendererProducesPNG(t *testing.T) {
	data, err := NewTreeRenderer(1).Render(context.Background(), sampleTree())
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Greater(t, img.Bounds().Dx(), 100)
	require.Greater(t, img.Bounds().Dy(), 100)
}

func TestTreeRendererScale(t *testing.T) {
	small, err := NewTreeRenderer(1).Render(context.Background(), sampleTree())
	require.NoError(t, err)
	large, err := NewTreeRenderer(2).Render(context.Background(), sampleTree())
	require.NoError(t, err)
	a, err := png.Decode(bytes.NewReader(small))
	require.NoError(t, err)
	b, err := png.Decode(bytes.NewReader(large))
	require.NoError(t, err)
	require.Greater(t, b.Bounds().Dy(), a.Bounds().Dy())
}

func TestTreeRendererEmptyRoot(t *testing.T) {
	_, err := NewTreeRenderer(1).Render(context.Background(), model.MindMapNode{})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestFlattenTreeLimits(t *testing.T) {
	rows := flattenTree(sampleTree())
	require.Len(t, rows, 5)
	require.Equal(t, -1, rows[0].parent)
	require.Equal(t, 1, rows[2].parent)
	require.Equal(t, 2, rows[2].depth)
}

func TestDisabledRasterizer(t *testing.T) {
	_, err := Disabled{}.Rasterize(context.Background(), "mindmap")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestNewRasterizer(t *testing.T) {
	r, err := New(Config{Type: "none"})
	require.NoError(t, err)
	require.IsType(t, Disabled{}, r)
	r, err = New(Config{})
	require.NoError(t, err)
	require.IsType(t, &ChromeRasterizer{}, r)
	_, err = New(Config{Type: "gpu"})
	require.Error(t, err)
}

func TestChromeRasterizerMissingBrowser(t *testing.T) {
	r := NewChromeRasterizer(Config{
		ExecPath:       filepath.Join(t.TempDir(), "no-such-browser"),
		TimeoutSeconds: 5,
	})
	start := time.Now()
	_, err := r.Rasterize(context.Background(), "mindmap\n  root((x))")
	require.ErrorIs(t, err, ErrUnavailable)
	require.Less(t, time.Since(start), 10*time.Second)
}

func TestChromeDocumentURLEscapesMarkup(t *testing.T) {
	r := NewChromeRasterizer(Config{})
	u := r.documentURL("mindmap\n  root((<b>x</b>))")
	require.True(t, strings.HasPrefix(u, "data:text/html;base64,"))
}

func TestMindMapRendererDispatch(t *testing.T) {
	mr := &MindMapRenderer{Diagram: Disabled{}, Tree: NewTreeRenderer(1)}
	_, err := mr.Render(context.Background(), model.DiagramMindMap("mindmap\n  root((x))"))
	require.ErrorIs(t, err, ErrUnavailable)
	data, err := mr.Render(context.Background(), model.TreeMindMap(sampleTree()))
	require.NoError(t, err)
	require.NotEmpty(t, data)
}
