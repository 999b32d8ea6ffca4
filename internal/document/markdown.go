package document

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	headingRe  = regexp.MustCompile(`^(#{1,4})\s+(.*)$`)
	bulletRe   = regexp.MustCompile(`^[-*]\s+(.*)$`)
	numberedRe = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)
	ruleRe     = regexp.MustCompile(`^(-{3,}|\*{3,}|_{3,})$`)
)

// Parse converts the supported markdown subset into blocks in source order.
// It is line oriented and never fails; an unclosed fence runs to the end.
func Parse(markdown string) []Block {
	text := strings.TrimRight(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n")
	if text == "" {
		return []Block{}
	}
	blocks := make([]Block, 0, 32)
	var code []string
	inCode := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inCode {
				blocks = append(blocks, Code(code))
				code = nil
			}
			inCode = !inCode
			continue
		}
		if inCode {
			code = append(code, line)
			continue
		}
		blocks = append(blocks, classify(trimmed))
	}
	if inCode && len(code) > 0 {
		blocks = append(blocks, Code(code))
	}
	return blocks
}

func classify(line string) Block {
	// thematic breaks render as vertical space
	if line == "" || ruleRe.MatchString(line) {
		return Spacer()
	}
	if m := headingRe.FindStringSubmatch(line); m != nil {
		return Heading(len(m[1]), Inline(strings.TrimSpace(m[2])))
	}
	if m := bulletRe.FindStringSubmatch(line); m != nil {
		return Bullet(Inline(m[1]))
	}
	if m := numberedRe.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[1])
		return Numbered(n, Inline(m[2]))
	}
	return Paragraph(Inline(line))
}
