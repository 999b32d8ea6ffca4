package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/xxxsen/examprep/internal/model"
	"github.com/xxxsen/examprep/internal/pkg/fonts"
)

const (
	treeMaxDepth = 8
	treeMaxNodes = 400
)

var depthColors = [][3]float64{
	{0.20, 0.36, 0.71},
	{0.16, 0.55, 0.47},
	{0.85, 0.55, 0.15},
	{0.55, 0.35, 0.65},
}

// TreeRenderer draws the nested tree variant as an indented outline with
// connectors. It needs no external process.
type TreeRenderer struct {
	Scale    float64
	FontSize float64
}

func NewTreeRenderer(scale float64) *TreeRenderer {
	if scale <= 0 {
		scale = defaultScale
	}
	return &TreeRenderer{Scale: scale, FontSize: 14}
}

type treeRow struct {
	text   string
	depth  int
	parent int
}

func flattenTree(node model.MindMapNode) []treeRow {
	rows := make([]treeRow, 0, 16)
	var walk func(n model.MindMapNode, depth, parent int)
	walk = func(n model.MindMapNode, depth, parent int) {
		if len(rows) >= treeMaxNodes || depth > treeMaxDepth {
			return
		}
		idx := len(rows)
		rows = append(rows, treeRow{text: n.Topic, depth: depth, parent: parent})
		for _, child := range n.Subtopics {
			walk(child, depth+1, idx)
		}
	}
	walk(node, 0, -1)
	return rows
}

func (r *TreeRenderer) Render(ctx context.Context, root model.MindMapNode) ([]byte, error) {
	if root.Topic == "" {
		return nil, ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.Scale
	regular, err := fonts.Face(fonts.Regular, r.FontSize*s)
	if err != nil {
		return nil, err
	}
	bold, err := fonts.Face(fonts.Bold, (r.FontSize+4)*s)
	if err != nil {
		return nil, err
	}

	rows := flattenTree(root)
	pad, indent, rowH, boxPad := 24*s, 36*s, 34*s, 8*s

	measure := gg.NewContext(1, 1)
	width := 0.0
	widths := make([]float64, len(rows))
	for i, row := range rows {
		if row.depth == 0 {
			measure.SetFontFace(bold)
		} else {
			measure.SetFontFace(regular)
		}
		w, _ := measure.MeasureString(row.text)
		widths[i] = w + 2*boxPad
		if right := pad + float64(row.depth)*indent + widths[i]; right > width {
			width = right
		}
	}
	width += pad
	height := 2*pad + float64(len(rows))*rowH

	dc := gg.NewContext(int(width), int(height))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	boxH := rowH - 8*s
	x := func(i int) float64 { return pad + float64(rows[i].depth)*indent }
	y := func(i int) float64 { return pad + float64(i)*rowH }

	dc.SetLineWidth(1.5 * s)
	dc.SetRGB(0.6, 0.6, 0.6)
	for i, row := range rows {
		if row.parent < 0 {
			continue
		}
		px := x(row.parent) + indent/2
		midY := y(i) + boxH/2
		dc.DrawLine(px, y(row.parent)+boxH, px, midY)
		dc.DrawLine(px, midY, x(i), midY)
		dc.Stroke()
	}

	for i, row := range rows {
		c := depthColors[row.depth%len(depthColors)]
		dc.SetRGB(c[0], c[1], c[2])
		dc.DrawRoundedRectangle(x(i), y(i), widths[i], boxH, 6*s)
		dc.Fill()
		if row.depth == 0 {
			dc.SetFontFace(bold)
		} else {
			dc.SetFontFace(regular)
		}
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(row.text, x(i)+boxPad, y(i)+boxH/2, 0, 0.35)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
