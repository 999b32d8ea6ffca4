package document

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	rendererhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/xxxsen/examprep/internal/model"
)

const (
	HTMLMime     = "text/html; charset=utf-8"
	MarkdownMime = "text/markdown; charset=utf-8"

	defaultMermaidScript = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"
)

var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(rendererhtml.WithXHTML()),
)

const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%[1]s</title>
<style>
body { font-family: sans-serif; max-width: 860px; margin: 2em auto; line-height: 1.55; color: #222; }
pre { background: #f4f4f4; padding: 0.8em; overflow-x: auto; }
code { font-family: monospace; }
.subtitle { color: #666; }
</style>
</head>
<body>
<h1>%[2]s</h1>
<p class="subtitle">%[3]s - Study Notes</p>
<hr>
%[4]s
%[5]s
</body>
</html>
`

// HTMLOptions controls the standalone html export.
type HTMLOptions struct {
	MermaidScript string
}

// BuildHTML renders notes with goldmark into a standalone page. Diagram
// mind maps are drawn client-side, tree maps become nested lists.
func BuildHTML(in Input, opts HTMLOptions) (*Document, error) {
	var body bytes.Buffer
	if err := converter.Convert([]byte(in.Notes), &body); err != nil {
		return nil, fmt.Errorf("convert notes: %w", err)
	}
	title := html.EscapeString(in.SubjectName)
	page := fmt.Sprintf(htmlShell, title, title, html.EscapeString(in.Scope.Title()), body.String(), mindMapHTML(in.MindMap, opts))
	return &Document{
		Filename: FileName(in.SubjectCode, in.SubjectName, in.Scope, "html"),
		MIME:     HTMLMime,
		Data:     []byte(page),
	}, nil
}

func mindMapHTML(mm model.MindMap, opts HTMLOptions) string {
	if mm.IsZero() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<h2>" + mindMapTitle + "</h2>\n")
	if mm.Kind == model.MindMapTree && mm.Tree != nil {
		sb.WriteString("<ul>\n")
		writeTreeHTML(&sb, *mm.Tree)
		sb.WriteString("</ul>\n")
		return sb.String()
	}
	script := opts.MermaidScript
	if script == "" {
		script = defaultMermaidScript
	}
	sb.WriteString(`<pre class="mermaid">` + html.EscapeString(mm.Markup) + "</pre>\n")
	sb.WriteString(`<script src="` + html.EscapeString(script) + `"></script>` + "\n")
	sb.WriteString("<script>mermaid.initialize({ startOnLoad: true });</script>\n")
	return sb.String()
}

func writeTreeHTML(sb *strings.Builder, n model.MindMapNode) {
	sb.WriteString("<li>" + html.EscapeString(n.Topic))
	if len(n.Subtopics) > 0 {
		sb.WriteString("\n<ul>\n")
		for _, c := range n.Subtopics {
			writeTreeHTML(sb, c)
		}
		sb.WriteString("</ul>\n")
	}
	sb.WriteString("</li>\n")
}

// BuildMarkdown returns the notes as-is with the mind map appended.
func BuildMarkdown(in Input) *Document {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n_%s - Study Notes_\n\n", in.SubjectName, in.Scope.Title())
	sb.WriteString(strings.TrimSpace(in.Notes))
	sb.WriteString("\n")
	if !in.MindMap.IsZero() {
		sb.WriteString("\n## " + mindMapTitle + "\n\n")
		if in.MindMap.Kind == model.MindMapTree && in.MindMap.Tree != nil {
			sb.WriteString(strings.Join(Outline(*in.MindMap.Tree), "\n"))
			sb.WriteString("\n")
		} else {
			sb.WriteString("```mermaid\n" + strings.TrimSpace(in.MindMap.Markup) + "\n```\n")
		}
	}
	return &Document{
		Filename: FileName(in.SubjectCode, in.SubjectName, in.Scope, "md"),
		MIME:     MarkdownMime,
		Data:     []byte(sb.String()),
	}
}
