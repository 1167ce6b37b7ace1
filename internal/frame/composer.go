// Package frame rasterizes board states into animation frames.
//
// A frame is the board on the left and a side panel on the right. Cell colors
// come from the ordered CellRules list; the side panel shows the accepted
// words, the word being traced and an optional status block.
package frame

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gg"

	"baldarules/internal/board"
)

// DrawFunc draws on top of a composed frame.
type DrawFunc func(dc *gg.Context, l Layout, f *Fonts) error

// Options selects the overlays for one frame. The zero value draws the bare
// board with an empty side panel.
type Options struct {
	Highlights map[board.Coord]color.RGBA
	Path       []board.Coord
	NewCell    *board.Coord
	Panel      Panel
	Extra      DrawFunc
}

// Composer turns board views plus overlays into frames.
type Composer struct {
	layout Layout
	fonts  *Fonts
}

// NewComposer returns a Composer drawing with l and fonts. A nil fonts uses
// the bundled defaults.
func NewComposer(l Layout, fonts *Fonts) *Composer {
	if fonts == nil {
		fonts = DefaultFonts()
	}
	return &Composer{layout: l, fonts: fonts}
}

// Layout returns the composer's geometry.
func (c *Composer) Layout() Layout { return c.layout }

// Fonts returns the composer's faces.
func (c *Composer) Fonts() *Fonts { return c.fonts }

// Compose renders v with the overlays in o. The same inputs always produce
// the same pixels.
func (c *Composer) Compose(v board.View, o Options, durationMS int) (Frame, error) {
	w, h := c.layout.Size(v.Rows(), v.Cols())
	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.FromColor(Background))

	if err := c.drawBoard(dc, v, &o); err != nil {
		return Frame{}, fmt.Errorf("draw board: %w", err)
	}
	if err := c.drawConnectors(dc, o.Path); err != nil {
		return Frame{}, fmt.Errorf("draw connectors: %w", err)
	}
	if err := drawPanel(dc, c.fonts, c.layout.SideX(v.Cols()), float64(c.layout.Pad), o.Panel); err != nil {
		return Frame{}, fmt.Errorf("draw side panel: %w", err)
	}
	if o.Extra != nil {
		if err := o.Extra(dc, c.layout, c.fonts); err != nil {
			return Frame{}, fmt.Errorf("draw extra: %w", err)
		}
	}
	return NewFrame(Snapshot(dc), durationMS), nil
}

func (c *Composer) drawBoard(dc *gg.Context, v board.View, o *Options) error {
	cell := float64(c.layout.Cell)
	bw := c.layout.BorderSize
	dc.SetFont(c.fonts.Board)
	for r := range v.Rows() {
		for col := range v.Cols() {
			at := board.At(r, col)
			style := ResolveCell(v, at, o)
			x, y := c.layout.CellOrigin(r, col)

			dc.SetColor(style.Fill)
			dc.DrawRectangle(x, y, cell, cell)
			if err := dc.Fill(); err != nil {
				return err
			}
			dc.SetColor(style.Border)
			dc.SetLineWidth(bw)
			dc.DrawRectangle(x+bw/2, y+bw/2, cell-bw, cell-bw)
			if err := dc.Stroke(); err != nil {
				return err
			}

			if v.IsEmpty(at) {
				continue
			}
			letter := string(v.Letter(at))
			m := c.fonts.Board.Metrics()
			capHeight := m.CapHeight
			if capHeight <= 0 {
				capHeight = m.Ascent * 0.7
			}
			tw, _ := dc.MeasureString(letter)
			dc.SetColor(style.Text)
			dc.DrawString(letter, x+(cell-tw)/2, y+(cell+capHeight)/2)
		}
	}
	return nil
}

// drawConnectors joins consecutive path cells with a line trimmed so it stays
// inside the cells it links.
func (c *Composer) drawConnectors(dc *gg.Context, path []board.Coord) error {
	if len(path) < 2 {
		return nil
	}
	inset := float64(c.layout.Cell/2 - c.layout.Trim)
	dc.SetColor(Connector)
	dc.SetLineWidth(2)
	for i := range len(path) - 1 {
		x1, y1 := c.layout.CellCenter(path[i].Row, path[i].Col)
		x2, y2 := c.layout.CellCenter(path[i+1].Row, path[i+1].Col)
		dx, dy := x2-x1, y2-y1
		mag := max(abs(dx), abs(dy))
		if mag == 0 {
			continue
		}
		ux, uy := dx/mag, dy/mag
		dc.DrawLine(x1+ux*inset, y1+uy*inset, x2-ux*inset, y2-uy*inset)
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot copies the context's pixels into a new RGBA image.
func Snapshot(dc *gg.Context) *image.RGBA {
	img := dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
