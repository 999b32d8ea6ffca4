package document

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/examprep/internal/filestore"
	"github.com/xxxsen/examprep/internal/model"
	"github.com/xxxsen/examprep/internal/pkg/fonts"
)

const (
	PDFMime = "application/pdf"

	fontFamily = "go"
	monoFamily = "gomono"

	pageMargin   = 20.0
	imageMaxW    = 180.0
	imageMaxH    = 220.0
	bodySize     = 11.0
	bodyLineH    = 6.0
	codeSize     = 9.5
	codeLineH    = 5.0
	listIndent   = 7.0
	pxToMM       = 25.4 / 192 // 96 dpi captured at 2x
	mindMapTitle = "Mind Map"
)

var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12}

// ImageRenderer turns a mind map into PNG bytes; an error means unavailable.
type ImageRenderer interface {
	Render(ctx context.Context, mm model.MindMap) ([]byte, error)
}

// Input is everything needed to assemble one notes document.
type Input struct {
	SubjectCode string
	SubjectName string
	Scope       model.ExamScope
	Notes       string
	MindMap     model.MindMap
}

type Document struct {
	Filename string
	MIME     string
	Data     []byte
}

// Assembler builds paginated PDF notes. Rendered images are staged in store
// and always removed once the document is serialized.
type Assembler struct {
	renderer ImageRenderer
	store    filestore.Store
}

func NewAssembler(renderer ImageRenderer, store filestore.Store) *Assembler {
	return &Assembler{renderer: renderer, store: store}
}

// FileName follows {code}_{name}_{ScopeLabel}_Notes.{ext}.
func FileName(code, name string, scope model.ExamScope, ext string) string {
	return fmt.Sprintf("%s_%s_%s_Notes.%s", code, strings.ReplaceAll(name, " ", "_"), scope.Label(), ext)
}

type mindMapSection struct {
	image []byte
	label string
	lines []string
}

func (a *Assembler) mindMapSection(ctx context.Context, mm model.MindMap) *mindMapSection {
	if mm.IsZero() {
		return nil
	}
	sec := &mindMapSection{}
	if a.renderer != nil {
		img, err := a.renderer.Render(ctx, mm)
		if err == nil && len(img) > 0 {
			sec.image = img
		} else if err != nil {
			logutil.GetLogger(ctx).Warn("mind map image unavailable, using source", zap.Error(err))
		}
	}
	sec.label, sec.lines = fallbackSource(mm)
	return sec
}

func fallbackSource(mm model.MindMap) (string, []string) {
	if mm.Kind == model.MindMapTree && mm.Tree != nil {
		return "Mind map outline:", Outline(*mm.Tree)
	}
	return "Mind map diagram source:", strings.Split(strings.ReplaceAll(mm.Markup, "\r\n", "\n"), "\n")
}

// Outline renders a tree as indented "- topic" lines.
func Outline(root model.MindMapNode) []string {
	lines := make([]string, 0, 16)
	var walk func(n model.MindMapNode, depth int)
	walk = func(n model.MindMapNode, depth int) {
		lines = append(lines, strings.Repeat("  ", depth)+"- "+n.Topic)
		for _, c := range n.Subtopics {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return lines
}

func (a *Assembler) Build(ctx context.Context, in Input) (*Document, error) {
	blocks := Parse(in.Notes)
	section := a.mindMapSection(ctx, in.MindMap)

	var staged []string
	defer a.release(ctx, &staged)

	w := newPDFWriter()
	w.title(in.SubjectName, in.Scope.Title())
	for _, b := range blocks {
		w.block(b)
	}
	if section != nil {
		w.pdf.AddPage()
		w.block(Heading(1, mindMapTitle))
		placed := false
		if len(section.image) > 0 {
			key, info, err := a.stage(ctx, w.pdf, section.image, &staged)
			if err != nil {
				logutil.GetLogger(ctx).Warn("stage mind map image failed", zap.Error(err))
			} else {
				w.image(key, info)
				placed = true
			}
		}
		if !placed {
			w.block(Paragraph("<i>" + escapeText(section.label) + "</i>"))
			w.block(Code(section.lines))
		}
	}

	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return &Document{
		Filename: FileName(in.SubjectCode, in.SubjectName, in.Scope, "pdf"),
		MIME:     PDFMime,
		Data:     buf.Bytes(),
	}, nil
}

// stage stores the image, reads it back and registers it with the pdf. The
// decode check runs first because pdf errors are sticky.
func (a *Assembler) stage(ctx context.Context, pdf *fpdf.Fpdf, img []byte, staged *[]string) (string, image.Config, error) {
	key := filestore.NewKey("png")
	data := img
	if a.store != nil {
		if err := a.store.Save(ctx, key, bytes.NewReader(img), int64(len(img))); err != nil {
			return "", image.Config{}, fmt.Errorf("save staged image: %w", err)
		}
		*staged = append(*staged, key)
		rc, err := a.store.Open(ctx, key)
		if err != nil {
			return "", image.Config{}, fmt.Errorf("open staged image: %w", err)
		}
		data, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", image.Config{}, fmt.Errorf("read staged image: %w", err)
		}
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", image.Config{}, fmt.Errorf("decode staged image: %w", err)
	}
	if format != "png" || cfg.Width == 0 || cfg.Height == 0 {
		return "", image.Config{}, fmt.Errorf("unsupported staged image %s %dx%d", format, cfg.Width, cfg.Height)
	}
	pdf.RegisterImageOptionsReader(key, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(data))
	if err := pdf.Error(); err != nil {
		return "", image.Config{}, err
	}
	return key, cfg, nil
}

func (a *Assembler) release(ctx context.Context, staged *[]string) {
	if a.store == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, key := range *staged {
		if err := a.store.Delete(ctx, key); err != nil {
			logutil.GetLogger(ctx).Error("release staged image failed", zap.String("key", key), zap.Error(err))
		}
	}
}

type pdfWriter struct {
	pdf *fpdf.Fpdf
}

func newPDFWriter() *pdfWriter {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(fontFamily, "", fonts.TTF(fonts.Regular))
	pdf.AddUTF8FontFromBytes(fontFamily, "B", fonts.TTF(fonts.Bold))
	pdf.AddUTF8FontFromBytes(fontFamily, "I", fonts.TTF(fonts.Italic))
	pdf.AddUTF8FontFromBytes(fontFamily, "BI", fonts.TTF(fonts.BoldItalic))
	pdf.AddUTF8FontFromBytes(monoFamily, "", fonts.TTF(fonts.Mono))
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	return &pdfWriter{pdf: pdf}
}

func (w *pdfWriter) title(name, scopeTitle string) {
	w.pdf.SetFont(fontFamily, "B", 22)
	w.pdf.MultiCell(0, 10, name, "", "C", false)
	w.pdf.SetFont(fontFamily, "", 13)
	w.pdf.SetTextColor(90, 90, 90)
	w.pdf.MultiCell(0, 7, scopeTitle+" - Study Notes", "", "C", false)
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.Ln(3)
	pageW, _ := w.pdf.GetPageSize()
	y := w.pdf.GetY()
	w.pdf.SetDrawColor(160, 160, 160)
	w.pdf.SetLineWidth(0.4)
	w.pdf.Line(pageMargin, y, pageW-pageMargin, y)
	w.pdf.Ln(6)
}

func (w *pdfWriter) block(b Block) {
	switch b.Kind {
	case KindHeading:
		size := headingSizes[b.Level]
		if size == 0 {
			size = bodySize
		}
		w.pdf.Ln(2)
		w.inline(b.Text, size, size*0.55, true)
		w.pdf.Ln(size*0.55 + 1)
	case KindCode:
		w.code(b.Lines)
	case KindBullet:
		w.listItem("•", b.Text)
	case KindNumbered:
		w.listItem(fmt.Sprintf("%d.", b.Ordinal), b.Text)
	case KindParagraph:
		w.inline(b.Text, bodySize, bodyLineH, false)
		w.pdf.Ln(bodyLineH)
	case KindSpacer:
		w.pdf.Ln(bodyLineH / 2)
	}
}

func (w *pdfWriter) inline(markup string, size, lineH float64, bold bool) {
	for _, s := range Spans(markup) {
		family, style := fontFamily, ""
		if s.Code {
			family = monoFamily
		} else {
			if s.Bold || bold {
				style += "B"
			}
			if s.Italic {
				style += "I"
			}
		}
		w.pdf.SetFont(family, style, size)
		w.pdf.Write(lineH, s.Text)
	}
}

func (w *pdfWriter) listItem(marker, markup string) {
	left := pageMargin
	w.pdf.SetFont(fontFamily, "", bodySize)
	w.pdf.SetX(left + 1)
	w.pdf.Write(bodyLineH, marker)
	w.pdf.SetLeftMargin(left + listIndent)
	w.pdf.SetX(left + listIndent)
	w.inline(markup, bodySize, bodyLineH, false)
	w.pdf.Ln(bodyLineH)
	w.pdf.SetLeftMargin(left)
}

func (w *pdfWriter) code(lines []string) {
	text := strings.ReplaceAll(strings.Join(lines, "\n"), "\t", "    ")
	w.pdf.SetFont(monoFamily, "", codeSize)
	w.pdf.SetFillColor(244, 244, 244)
	w.pdf.MultiCell(0, codeLineH, text, "", "L", true)
	w.pdf.Ln(2)
}

// image places a registered image centered and scaled into the max box.
func (w *pdfWriter) image(key string, cfg image.Config) {
	width := float64(cfg.Width) * pxToMM
	height := float64(cfg.Height) * pxToMM
	scale := 1.0
	if r := imageMaxW / width; r < scale {
		scale = r
	}
	if r := imageMaxH / height; r < scale {
		scale = r
	}
	width, height = width*scale, height*scale
	pageW, _ := w.pdf.GetPageSize()
	x := (pageW - width) / 2
	w.pdf.ImageOptions(key, x, w.pdf.GetY()+2, width, height, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}
