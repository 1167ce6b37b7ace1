package frame

import (
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Font sizes in points.
const (
	BoardFontSize = 22
	SideFontSize  = 16
	SmallFontSize = 13
	BigFontSize   = 36
	WordFontSize  = 20
)

// Fonts bundles the faces every frame is drawn with.
type Fonts struct {
	Board text.Face
	Side  text.Face
	Small text.Face
	Big   text.Face
	Word  text.Face
	Name  string
}

// LoadFonts loads faces from the TrueType file at path. When path is empty
// or cannot be loaded, the bundled Go fonts are used instead and fallback is
// true.
func LoadFonts(path string) (fonts *Fonts, fallback bool) {
	if path != "" {
		if src, err := text.NewFontSourceFromFile(path); err == nil {
			return facesFrom(src, src), false
		}
	}
	return DefaultFonts(), true
}

// DefaultFonts returns faces built from the bundled Go fonts. The faces are
// built once and shared.
var DefaultFonts = sync.OnceValue(func() *Fonts {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		panic("bundled regular font: " + err.Error())
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		panic("bundled bold font: " + err.Error())
	}
	return facesFrom(regular, bold)
})

func facesFrom(regular, bold *text.FontSource) *Fonts {
	return &Fonts{
		Board: bold.Face(BoardFontSize),
		Side:  regular.Face(SideFontSize),
		Small: regular.Face(SmallFontSize),
		Big:   bold.Face(BigFontSize),
		Word:  regular.Face(WordFontSize),
		Name:  regular.Name(),
	}
}
