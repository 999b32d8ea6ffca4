package document

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xxxsen/examprep/internal/filestore"
	"github.com/xxxsen/examprep/internal/model"
	"github.com/xxxsen/examprep/internal/render"
)

func TestParseHeadingAndBold(t *testing.T) {
	blocks := Parse("# Title\n\nSome **bold** text")
	require.Equal(t, []Block{
		Heading(1, "Title"),
		Spacer(),
		Paragraph("Some <b>bold</b> text"),
	}, blocks)
}

func TestParseBlocks(t *testing.T) {
	md := "## Loops\r\n- item *one*\n* item two\n3. third\n```go\nfor i := 0; i < n; i++ {}\n```\n#### Deep"
	blocks := Parse(md)
	require.Equal(t, []Block{
		Heading(2, "Loops"),
		Bullet("item <i>one</i>"),
		Bullet("item two"),
		Numbered(3, "third"),
		Code([]string{"for i := 0; i < n; i++ {}"}),
		Heading(4, "Deep"),
	}, blocks)
}

func TestParseEdgeCases(t *testing.T) {
	require.Empty(t, Parse(""))
	require.Empty(t, Parse("\n\n"))

	blocks := Parse("text\n```\nunterminated")
	require.Len(t, blocks, 2)
	require.Equal(t, KindCode, blocks[1].Kind)
	require.Equal(t, []string{"unterminated"}, blocks[1].Lines)

	blocks = Parse("intro\n---\n***\n___\n-- not a rule")
	require.Equal(t, []Block{
		Paragraph("intro"),
		Spacer(),
		Spacer(),
		Spacer(),
		Paragraph("-- not a rule"),
	}, blocks)

	blocks = Parse("##### five hashes")
	require.Equal(t, KindParagraph, blocks[0].Kind)
}

func TestInline(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a < b & c", "a &lt; b &amp; c"},
		{"***both***", "<b><i>both</i></b>"},
		{"use `x**2**` here", "use <code>x**2**</code> here"},
		{"`<tag>`", "<code>&lt;tag&gt;</code>"},
		{"**a *b** c*", "**a *b** c*"},
		{"2 * 3 * 4", "2 * 3 * 4"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, Inline(tt.in))
		})
	}
}

func TestSpans(t *testing.T) {
	spans := Spans("a <b>b <i>c</i></b> <code>&lt;d&gt;</code>")
	require.Equal(t, []Span{
		{Text: "a "},
		{Text: "b ", Bold: true},
		{Text: "c", Bold: true, Italic: true},
		{Text: " "},
		{Text: "<d>", Code: true},
	}, spans)
	require.Equal(t, "a b c <d>", PlainText("a <b>b <i>c</i></b> <code>&lt;d&gt;</code>"))
}

func TestFileName(t *testing.T) {
	require.Equal(t, "CS101_Intro_to_Programming_Internal1_Notes.pdf",
		FileName("CS101", "Intro to Programming", model.ScopeInternal1, "pdf"))
}

func testPNG(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		img.Set(x, x%30, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type staticRenderer struct {
	data []byte
	err  error
}

func (r staticRenderer) Render(ctx context.Context, mm model.MindMap) ([]byte, error) {
	return r.data, r.err
}

func testInput() Input {
	return Input{
		SubjectCode: "CS101",
		SubjectName: "Intro to Programming",
		Scope:       model.ScopeSemester,
		Notes:       "# Loops\n\nA **for** loop.\n\n- `break` exits\n1. first\n```\nx := 1\n```",
		MindMap:     model.DiagramMindMap("mindmap\n  root((CS101))\n    Loops"),
	}
}

func TestMindMapFallbackWhenRasterizerDisabled(t *testing.T) {
	a := NewAssembler(&render.MindMapRenderer{Diagram: render.Disabled{}}, nil)
	in := testInput()
	sec := a.mindMapSection(context.Background(), in.MindMap)
	require.NotNil(t, sec)
	require.Empty(t, sec.image)
	require.Contains(t, sec.label, "diagram")
	require.Contains(t, strings.Join(sec.lines, "\n"), "root((CS101))")

	doc, err := a.Build(context.Background(), in)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))
	require.Equal(t, PDFMime, doc.MIME)
	require.Equal(t, "CS101_Intro_to_Programming_Semester_Notes.pdf", doc.Filename)
}

func TestTreeFallbackIsOutline(t *testing.T) {
	a := NewAssembler(staticRenderer{err: errors.New("no renderer")}, nil)
	mm := model.TreeMindMap(model.MindMapNode{Topic: "CS", Subtopics: []model.MindMapNode{{Topic: "Loops"}}})
	sec := a.mindMapSection(context.Background(), mm)
	require.Equal(t, []string{"- CS", "  - Loops"}, sec.lines)
}

func TestBuildStagesAndReleasesImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "staging")
	store, err := filestore.New(filestore.Config{Type: "local", Data: map[string]interface{}{"dir": dir}})
	require.NoError(t, err)

	a := NewAssembler(staticRenderer{data: testPNG(t)}, store)
	doc, err := a.Build(context.Background(), testInput())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestBuildWithoutMindMap(t *testing.T) {
	a := NewAssembler(nil, nil)
	in := testInput()
	in.MindMap = model.MindMap{}
	require.Nil(t, a.mindMapSection(context.Background(), in.MindMap))
	doc, err := a.Build(context.Background(), in)
	require.NoError(t, err)
	require.NotEmpty(t, doc.Data)
}

func TestBuildHTML(t *testing.T) {
	doc, err := BuildHTML(testInput(), HTMLOptions{})
	require.NoError(t, err)
	page := string(doc.Data)
	require.Equal(t, HTMLMime, doc.MIME)
	require.True(t, strings.HasSuffix(doc.Filename, ".html"))
	require.Contains(t, page, "<strong>for</strong>")
	require.Contains(t, page, `<pre class="mermaid">`)
	require.Contains(t, page, "root((CS101))")
	require.Contains(t, page, defaultMermaidScript)

	in := testInput()
	in.MindMap = model.TreeMindMap(model.MindMapNode{Topic: "CS <core>"})
	doc, err = BuildHTML(in, HTMLOptions{})
	require.NoError(t, err)
	require.Contains(t, string(doc.Data), "<li>CS &lt;core&gt;</li>")
}

func TestBuildMarkdown(t *testing.T) {
	doc := BuildMarkdown(testInput())
	text := string(doc.Data)
	require.True(t, strings.HasPrefix(text, "# Intro to Programming\n"))
	require.Contains(t, text, "## Mind Map")
	require.Contains(t, text, "```mermaid\nmindmap\n  root((CS101))\n    Loops\n```")
}

func TestBuildFlashcardsXLSX(t *testing.T) {
	doc, err := BuildFlashcardsXLSX("CS101", "Intro to CS", []model.Flashcard{
		{Question: "What is a loop?", Answer: "Repeated execution"},
		{Question: "What is a variable?", Answer: "A named value"},
	})
	require.NoError(t, err)
	require.Equal(t, "CS101_Intro_to_CS_Flashcards.xlsx", doc.Filename)
	require.Equal(t, XLSXMime, doc.MIME)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(flashcardSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"#", "Question", "Answer"}, rows[0])
	require.Equal(t, []string{"2", "What is a variable?", "A named value"}, rows[2])
}
