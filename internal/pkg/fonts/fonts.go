// Package fonts exposes the bundled Go font family.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

type Style int

const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
	Mono
)

func TTF(s Style) []byte {
	switch s {
	case Bold:
		return gobold.TTF
	case Italic:
		return goitalic.TTF
	case BoldItalic:
		return gobolditalic.TTF
	case Mono:
		return gomono.TTF
	default:
		return goregular.TTF
	}
}

var (
	parsedMu sync.Mutex
	parsed   = map[Style]*truetype.Font{}
)

// Face returns a face of the given style and point size.
func Face(s Style, size float64) (font.Face, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	f, ok := parsed[s]
	if !ok {
		var err error
		f, err = truetype.Parse(TTF(s))
		if err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
		parsed[s] = f
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}
