package frame

import "image/color"

// Palette colors, shared by the board, the side panel and the static panels.
var (
	Background   = color.RGBA{254, 254, 254, 255}
	EmptyFill    = color.RGBA{232, 232, 232, 255}
	EmptyBorder  = color.RGBA{189, 189, 189, 255}
	LetterFill   = color.RGBA{255, 255, 255, 255}
	LetterBorder = color.RGBA{158, 158, 158, 255}
	PathColor    = color.RGBA{33, 150, 243, 255}
	NewColor     = color.RGBA{76, 175, 80, 255}
	ValidColor   = NewColor
	ErrorColor   = color.RGBA{244, 67, 54, 255}
	Attention    = color.RGBA{255, 193, 7, 255}
	Muted        = color.RGBA{140, 140, 140, 255}
	Dark         = color.RGBA{40, 40, 40, 255}
	Connector    = color.RGBA{100, 100, 100, 255}
	White        = color.RGBA{255, 255, 255, 255}
	RejectTint   = color.RGBA{255, 242, 240, 255}
	VerboseText  = color.RGBA{120, 80, 80, 255}
)

// Colors lists every palette entry, for encoders that need a fixed palette.
func Colors() []color.RGBA {
	return []color.RGBA{
		Background, EmptyFill, EmptyBorder, LetterFill, LetterBorder,
		PathColor, Darken(PathColor, 30), NewColor, Darken(NewColor, 30),
		ErrorColor, Darken(ErrorColor, 30), Attention, Darken(Attention, 30),
		Muted, Dark, Connector, White, RejectTint, VerboseText,
	}
}

// Darken subtracts amount from each channel, clamping at zero.
func Darken(c color.RGBA, amount uint8) color.RGBA {
	sub := func(v uint8) uint8 {
		if v < amount {
			return 0
		}
		return v - amount
	}
	return color.RGBA{sub(c.R), sub(c.G), sub(c.B), c.A}
}

// isBright reports whether letters on fill need white text.
func isBright(fill color.RGBA) bool {
	switch fill {
	case ErrorColor, PathColor, NewColor, Attention:
		return true
	}
	return false
}
