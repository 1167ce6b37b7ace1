package frame

import (
	"image/color"
	"testing"

	"github.com/gogpu/gg"

	"baldarules/internal/board"
	"baldarules/internal/game"
)

func agent() board.Board {
	return board.MustParse(".....", ".....", "AGENT", ".....", ".....")
}

func near(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) bool {
		diff := int(x) - int(y)
		return diff <= tol && diff >= -tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B)
}

func TestResolveCellPrecedence(t *testing.T) {
	b := agent()
	newCell := board.At(2, 1)
	o := &Options{
		Highlights: map[board.Coord]color.RGBA{board.At(2, 0): ErrorColor},
		Path:       []board.Coord{board.At(2, 0), board.At(2, 1), board.At(2, 2)},
		NewCell:    &newCell,
	}
	cases := []struct {
		at   board.Coord
		rule string
		fill color.RGBA
		text color.RGBA
	}{
		{board.At(2, 0), RuleHighlight, ErrorColor, White},
		{board.At(2, 1), RuleNewLetter, NewColor, White},
		{board.At(2, 2), RulePath, PathColor, White},
		{board.At(0, 0), RuleEmpty, EmptyFill, Dark},
		{board.At(2, 4), RuleLetter, LetterFill, Dark},
	}
	for _, c := range cases {
		got := ResolveCell(b, c.at, o)
		if got.Rule != c.rule || got.Fill != c.fill || got.Text != c.text {
			t.Errorf("ResolveCell(%v) = %+v, want rule %s fill %v text %v", c.at, got, c.rule, c.fill, c.text)
		}
	}
}

func TestResolveCellHighlightBeatsEverything(t *testing.T) {
	b := agent()
	cell := board.At(2, 2)
	o := &Options{
		Highlights: map[board.Coord]color.RGBA{cell: Attention},
		Path:       []board.Coord{cell},
		NewCell:    &cell,
	}
	got := ResolveCell(b, cell, o)
	if got.Rule != RuleHighlight || got.Fill != Attention || got.Border != Darken(Attention, 30) {
		t.Errorf("got %+v, want attention highlight", got)
	}
	if ResolveCell(b, board.At(0, 0), nil).Rule != RuleEmpty {
		t.Error("nil options should resolve empty cells to the empty rule")
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	c := NewComposer(DefaultLayout(), nil)
	cell := board.At(1, 0)
	b, err := agent().Place(cell, 'R')
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	o := Options{
		Path:    []board.Coord{board.At(1, 0), board.At(2, 0), board.At(2, 1)},
		NewCell: &cell,
		Panel:   Panel{Words: game.NewWordList("DENT"), Current: "RAG", CurrentColor: PathColor},
	}
	f1, err := c.Compose(b, o, 350)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	f2, err := c.Compose(b, o, 350)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !f1.SamePixels(f2) {
		t.Error("composing the same inputs twice gave different pixels")
	}
	if f1.Image() == f2.Image() {
		t.Error("frames share a buffer")
	}
	w, h := DefaultLayout().Size(5, 5)
	if f1.Bounds().Dx() != w || f1.Bounds().Dy() != h {
		t.Errorf("frame size = %v, want %dx%d", f1.Bounds(), w, h)
	}
	if f1.DurationMS != 350 {
		t.Errorf("duration = %d, want 350", f1.DurationMS)
	}
}

func TestComposeCellFills(t *testing.T) {
	l := DefaultLayout()
	c := NewComposer(l, nil)
	o := Options{
		Highlights: map[board.Coord]color.RGBA{board.At(0, 0): ErrorColor},
		Path:       []board.Coord{board.At(2, 0), board.At(2, 1)},
	}
	f, err := c.Compose(agent(), o, 100)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	img := f.Image()
	probe := func(row, col int) color.RGBA {
		x, y := l.CellOrigin(row, col)
		return img.RGBAAt(int(x)+8, int(y)+8)
	}
	if got := probe(0, 0); !near(got, ErrorColor, 2) {
		t.Errorf("highlighted cell = %v, want %v", got, ErrorColor)
	}
	if got := probe(2, 0); !near(got, PathColor, 2) {
		t.Errorf("path cell = %v, want %v", got, PathColor)
	}
	if got := probe(4, 4); !near(got, EmptyFill, 2) {
		t.Errorf("empty cell = %v, want %v", got, EmptyFill)
	}
	if got := probe(2, 4); !near(got, LetterFill, 2) {
		t.Errorf("letter cell = %v, want %v", got, LetterFill)
	}

	// Connector between (2,0) and (2,1) crosses the shared border.
	_, cy := l.CellCenter(2, 0)
	edge := l.Pad + l.Cell - 1
	if got := img.RGBAAt(edge, int(cy)-1); !near(got, Connector, 3) {
		t.Errorf("connector pixel = %v, want %v", got, Connector)
	}
}

func TestComposeNoConnectorForSingleCell(t *testing.T) {
	l := DefaultLayout()
	c := NewComposer(l, nil)
	single, err := c.Compose(agent(), Options{Path: []board.Coord{board.At(2, 0)}}, 100)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	_, cy := l.CellCenter(2, 0)
	if got := single.Image().RGBAAt(l.Pad+l.Cell-1, int(cy)-1); near(got, Connector, 3) {
		t.Error("single path cell should not draw a connector")
	}
}

func TestPanelRecolorsDuplicate(t *testing.T) {
	c := NewComposer(DefaultLayout(), nil)
	words := game.NewWordList("RAGE", "DENT")
	flagged, _ := words.Annotate("RAGE", game.StatusDuplicate)

	plain, err := c.Compose(agent(), Options{Panel: Panel{Words: words}}, 100)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	marked, err := c.Compose(agent(), Options{Panel: Panel{Words: flagged}}, 100)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if plain.SamePixels(marked) {
		t.Error("duplicate-flagged entry rendered the same as a normal entry")
	}
	if EntryColor(game.StatusDuplicate) != ErrorColor || EntryColor(game.StatusNormal) != ValidColor {
		t.Error("unexpected entry colors")
	}
}

func TestComposeRunsExtra(t *testing.T) {
	c := NewComposer(DefaultLayout(), nil)
	called := false
	_, err := c.Compose(agent(), Options{Extra: func(dc *gg.Context, l Layout, f *Fonts) error {
		called = true
		return DrawMark(dc, MarkCross, 10, 10, 20, ErrorColor)
	}}, 100)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !called {
		t.Error("extra draw callback not called")
	}
}

func TestRepeatAndTotal(t *testing.T) {
	f := NewFrame(nil, 0)
	held := Repeat(f, 20, 150)
	if len(held) != 20 {
		t.Fatalf("Repeat len = %d, want 20", len(held))
	}
	if got := TotalMS(held); got != 3000 {
		t.Errorf("TotalMS = %d, want 3000", got)
	}
}

func TestLoadFontsFallsBack(t *testing.T) {
	f, fallback := LoadFonts("/nonexistent/font.ttf")
	if !fallback || f == nil || f.Board == nil {
		t.Fatalf("LoadFonts fallback = %v, fonts = %v", fallback, f)
	}
	if _, fallback := LoadFonts(""); !fallback {
		t.Error("empty path should use bundled fonts")
	}
}

func TestDarken(t *testing.T) {
	got := Darken(color.RGBA{20, 100, 255, 255}, 30)
	want := color.RGBA{0, 70, 225, 255}
	if got != want {
		t.Errorf("Darken = %v, want %v", got, want)
	}
}
