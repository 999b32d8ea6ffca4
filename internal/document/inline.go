package document

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const placeholderMark = "\x00"

var (
	codeSpanRe    = regexp.MustCompile("`([^`]+)`")
	boldTripleRe  = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	boldDoubleRe  = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe      = regexp.MustCompile(`\*([^*\s](?:[^*]*[^*\s])?)\*`)
	placeholderRe = regexp.MustCompile(`\x00(\d+)\x00`)
	inlineTags    = map[string]bool{"b": true, "i": true, "code": true}
	textEscaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// Inline resolves code spans, then bold, then italic emphasis over the
// escaped line. When the result is not well formed the escaped line is
// returned without emphasis.
func Inline(line string) string {
	out, err := resolveInline(line)
	if err != nil {
		return escapeText(line)
	}
	return out
}

func escapeText(s string) string {
	return textEscaper.Replace(strings.ReplaceAll(s, placeholderMark, ""))
}

func resolveInline(line string) (string, error) {
	text := escapeText(line)
	var spans []string
	text = codeSpanRe.ReplaceAllStringFunc(text, func(m string) string {
		spans = append(spans, m[1:len(m)-1])
		return placeholderMark + strconv.Itoa(len(spans)-1) + placeholderMark
	})
	text = boldTripleRe.ReplaceAllString(text, "<b><i>$1</i></b>")
	text = boldDoubleRe.ReplaceAllString(text, "<b>$1</b>")
	text = italicRe.ReplaceAllString(text, "<i>$1</i>")
	text = placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		idx, _ := strconv.Atoi(strings.Trim(m, placeholderMark))
		return "<code>" + spans[idx] + "</code>"
	})
	if err := checkMarkup(text); err != nil {
		return "", err
	}
	return text, nil
}

// Span is a run of plain text sharing one style.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
}

// Spans splits inline markup into styled runs with entities decoded.
func Spans(markup string) []Span {
	spans := make([]Span, 0, 4)
	var bold, italic, code int
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return spans
		case html.TextToken:
			if t := string(z.Text()); t != "" {
				spans = append(spans, Span{Text: t, Bold: bold > 0, Italic: italic > 0, Code: code > 0})
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "b":
				bold++
			case "i":
				italic++
			case "code":
				code++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "b":
				bold--
			case "i":
				italic--
			case "code":
				code--
			}
		}
	}
}

// PlainText drops all inline markup.
func PlainText(markup string) string {
	var sb strings.Builder
	for _, s := range Spans(markup) {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func checkMarkup(markup string) error {
	var stack []string
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return err
			}
			if len(stack) > 0 {
				return fmt.Errorf("unclosed <%s>", stack[len(stack)-1])
			}
			return nil
		case html.StartTagToken:
			name, _ := z.TagName()
			if !inlineTags[string(name)] {
				return fmt.Errorf("unexpected <%s>", name)
			}
			stack = append(stack, string(name))
		case html.EndTagToken:
			name, _ := z.TagName()
			if len(stack) == 0 || stack[len(stack)-1] != string(name) {
				return fmt.Errorf("misnested </%s>", name)
			}
			stack = stack[:len(stack)-1]
		case html.SelfClosingTagToken:
			return fmt.Errorf("unexpected self-closing tag")
		}
	}
}
