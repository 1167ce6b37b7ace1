package frame

import (
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"baldarules/internal/game"
)

// Mark is a vector glyph drawn in front of a status line.
type Mark int

const (
	MarkNone Mark = iota
	MarkCheck
	MarkCross
)

// Panel is the side panel content of one frame.
type Panel struct {
	Words        game.WordList
	Current      string // word being traced; empty hides the line
	CurrentColor color.RGBA
	Status       string // may span several lines
	StatusColor  color.RGBA
	Mark         Mark
}

// EntryColor returns the color a word list entry is drawn in.
func EntryColor(s game.Status) color.RGBA {
	if s == game.StatusDuplicate {
		return ErrorColor
	}
	return ValidColor
}

func drawPanel(dc *gg.Context, f *Fonts, x0, y0 float64, p Panel) error {
	y := y0
	DrawText(dc, f.Side, "Words:", x0, y, Muted)
	y += 24
	if p.Words.Len() == 0 {
		DrawText(dc, f.Small, "(none)", x0+4, y, Muted)
		y += 22
	}
	for _, e := range p.Words.Entries() {
		DrawText(dc, f.Side, e.Word, x0+4, y, EntryColor(e.Status))
		y += 22
	}

	y += 16
	if p.Current != "" {
		DrawText(dc, f.Side, "Current:", x0, y, Muted)
		y += 24
		DrawText(dc, f.Word, p.Current, x0+4, y, p.CurrentColor)
		y += 28
	}

	if p.Status == "" {
		return nil
	}
	y += 8
	for i, line := range strings.Split(p.Status, "\n") {
		x := x0
		if i == 0 && p.Mark != MarkNone {
			size := f.Word.Metrics().CapHeight
			if size <= 0 {
				size = WordFontSize * 0.7
			}
			if err := DrawMark(dc, p.Mark, x, y+f.Word.Metrics().Ascent-size, size, p.StatusColor); err != nil {
				return err
			}
			x += size + 8
		}
		DrawText(dc, f.Word, line, x, y, p.StatusColor)
		y += 24
	}
	return nil
}

// DrawText draws s with its top edge at y.
func DrawText(dc *gg.Context, face text.Face, s string, x, y float64, col color.Color) {
	dc.SetFont(face)
	dc.SetColor(col)
	dc.DrawString(s, x, y+face.Metrics().Ascent)
}

// DrawMark draws m inside the size x size box at (x, y).
func DrawMark(dc *gg.Context, m Mark, x, y, size float64, col color.Color) error {
	dc.SetColor(col)
	dc.SetLineWidth(max(2, size/6))
	dc.SetLineCap(gg.LineCapRound)
	defer dc.SetLineCap(gg.LineCapButt)
	switch m {
	case MarkCheck:
		dc.MoveTo(x, y+size*0.55)
		dc.LineTo(x+size*0.38, y+size)
		dc.LineTo(x+size, y)
	case MarkCross:
		dc.DrawLine(x, y, x+size, y+size)
		dc.DrawLine(x+size, y, x, y+size)
	default:
		return nil
	}
	return dc.Stroke()
}
