package document

type BlockKind string

const (
	KindHeading   BlockKind = "heading"
	KindCode      BlockKind = "code"
	KindBullet    BlockKind = "bullet"
	KindNumbered  BlockKind = "numbered"
	KindParagraph BlockKind = "paragraph"
	KindSpacer    BlockKind = "spacer"
)

// Block is one typed unit of converted notes. Text holds inline markup
// using <b>, <i> and <code> over escaped text; Lines holds verbatim code.
type Block struct {
	Kind    BlockKind
	Level   int
	Ordinal int
	Text    string
	Lines   []string
}

func Heading(level int, text string) Block {
	return Block{Kind: KindHeading, Level: level, Text: text}
}

func Code(lines []string) Block {
	return Block{Kind: KindCode, Lines: lines}
}

func Bullet(text string) Block {
	return Block{Kind: KindBullet, Text: text}
}

func Numbered(ordinal int, text string) Block {
	return Block{Kind: KindNumbered, Ordinal: ordinal, Text: text}
}

func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

func Spacer() Block {
	return Block{Kind: KindSpacer}
}
