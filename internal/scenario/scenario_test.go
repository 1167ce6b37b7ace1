package scenario

import (
	"errors"
	"image/color"
	"slices"
	"testing"

	"baldarules/internal/animate"
	"baldarules/internal/board"
	"baldarules/internal/frame"
	"baldarules/internal/game"
)

func newAssembler() *Assembler {
	c := frame.NewComposer(frame.DefaultLayout(), nil)
	return New(animate.New(c, animate.DefaultTiming()))
}

func assemble(t *testing.T, name string) Result {
	t.Helper()
	r, err := Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	res, err := newAssembler().Assemble(r)
	if err != nil {
		t.Fatalf("Assemble(%q): %v", name, err)
	}
	return res
}

func TestPrefixTurnsAreLegal(t *testing.T) {
	b := InitialBoard()
	used := game.NewWordList()
	for _, turn := range []game.Turn{TurnRage, TurnDent} {
		if v := game.Validate(b, turn, used); len(v) != 0 {
			t.Fatalf("turn %s: violations %v", turn.Word, v)
		}
		var err error
		if b, err = turn.Apply(b); err != nil {
			t.Fatalf("apply %s: %v", turn.Word, err)
		}
		used = used.Append(turn.Word)
	}
}

func TestRulesTable(t *testing.T) {
	rs := Rules()
	if len(rs) != 6 {
		t.Fatalf("got %d rules, want 6", len(rs))
	}
	files := map[string]bool{}
	for _, r := range rs {
		if files[r.File] {
			t.Errorf("duplicate file %s", r.File)
		}
		files[r.File] = true
	}
	if !slices.Equal(Names(), []string{
		RuleLetterPlacement, RulePathIncludesLetter, RuleNoDiagonal,
		RuleNoCellReuse, RuleNoRepeatedWords, RuleFormatFailure,
	}) {
		t.Errorf("Names() = %v", Names())
	}
	if _, err := Lookup("no_such_rule"); !errors.Is(err, ErrUnknownRule) {
		t.Errorf("Lookup unknown: err = %v, want ErrUnknownRule", err)
	}
}

func TestBoardScenarios(t *testing.T) {
	for _, r := range Rules() {
		if r.Static {
			continue
		}
		t.Run(r.Name, func(t *testing.T) {
			res := assemble(t, r.Name)

			if len(res.Turns) != 3 || res.Turns[0].Word != "RAGE" || res.Turns[1].Word != "DENT" {
				t.Fatalf("turns = %+v", res.Turns)
			}
			if got := res.Prefix.Words.Words(); !slices.Equal(got, []string{"RAGE", "DENT"}) {
				t.Errorf("prefix words = %v", got)
			}
			if got, want := res.Prefix.Board.Filled(), res.Initial.Filled()+2; got != want {
				t.Errorf("prefix board has %d letters, want %d", got, want)
			}
			if res.Prefix.Board.Row(1) != "R...." || res.Prefix.Board.Row(3) != "..D.." {
				t.Errorf("prefix board =\n%s", res.Prefix.Board)
			}
			if !res.Prefix.Board.Equal(res.Final.Board) {
				t.Error("rejected turn changed the board")
			}
			if !res.Prefix.Words.Equal(res.Final.Words) {
				t.Error("rejected turn changed the word list")
			}

			v := game.Validate(res.Prefix.Board, r.Turn, res.Prefix.Words)
			if !slices.Contains(v, r.Violation) {
				t.Errorf("Validate = %v, want it to contain %s", v, r.Violation)
			}

			if len(res.Frames) == 0 {
				t.Fatal("no frames")
			}
			size := res.Frames[0].Bounds()
			for i, f := range res.Frames {
				if f.Bounds() != size {
					t.Fatalf("frame %d bounds %v, want %v", i, f.Bounds(), size)
				}
				if f.DurationMS <= 0 {
					t.Fatalf("frame %d has duration %d", i, f.DurationMS)
				}
			}

			hold := animate.DefaultTiming().RejectHold
			last := res.Frames[len(res.Frames)-1]
			for _, f := range res.Frames[len(res.Frames)-hold:] {
				if !f.SamePixels(last) {
					t.Fatal("terminal frames are not identical")
				}
			}
		})
	}
}

func TestScenariosShareAPrefix(t *testing.T) {
	a := newAssembler()
	prefix, _, err := a.Prefix()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{RuleLetterPlacement, RuleNoRepeatedWords} {
		res := assemble(t, name)
		for i := range prefix {
			if !res.Frames[i].SamePixels(prefix[i]) {
				t.Fatalf("%s: frame %d differs from the shared prefix", name, i)
			}
		}
	}
}

func TestOccupiedSkipsPlacement(t *testing.T) {
	res := assemble(t, RuleLetterPlacement)
	a := newAssembler()
	prefix, _, err := a.Prefix()
	if err != nil {
		t.Fatal(err)
	}
	tail := res.Frames[len(prefix):]
	if want := 1 + animate.DefaultTiming().RejectHold; len(tail) != want {
		t.Fatalf("got %d rejected-turn frames, want %d", len(tail), want)
	}
	if tail[0].DurationMS != leadMS {
		t.Errorf("target frame duration = %d, want %d", tail[0].DurationMS, leadMS)
	}
	if len(res.Rejection.Highlights) != 1 || res.Rejection.Highlights[board.At(2, 2)] != frame.ErrorColor {
		t.Errorf("highlights = %v", res.Rejection.Highlights)
	}
}

func TestDiagonalOverlay(t *testing.T) {
	res := assemble(t, RuleNoDiagonal)
	hl := res.Rejection.Highlights
	if len(hl) != 2 || hl[board.At(3, 1)] != frame.ErrorColor || hl[board.At(2, 2)] != frame.ErrorColor {
		t.Errorf("highlights = %v", hl)
	}
	if res.Rejection.Extra == nil {
		t.Fatal("no diagonal strike")
	}

	l := frame.DefaultLayout()
	x1, y1 := l.CellCenter(3, 1)
	x2, y2 := l.CellCenter(2, 2)
	last := res.Frames[len(res.Frames)-1].Image()
	got := last.RGBAAt(int((x1+x2)/2), int((y1+y2)/2))
	if !near(got, frame.ErrorColor, 12) {
		t.Errorf("strike midpoint = %v, want ~%v", got, frame.ErrorColor)
	}
}

func TestReuseOverlay(t *testing.T) {
	res := assemble(t, RuleNoCellReuse)
	hl := res.Rejection.Highlights
	want := map[board.Coord]color.RGBA{
		board.At(3, 1): frame.PathColor,
		board.At(2, 1): frame.ErrorColor,
		board.At(2, 2): frame.PathColor,
	}
	if len(hl) != len(want) {
		t.Fatalf("highlights = %v", hl)
	}
	for c, col := range want {
		if hl[c] != col {
			t.Errorf("highlight %s = %v, want %v", c, hl[c], col)
		}
	}
	if res.Rejection.Current != "OGEG?" {
		t.Errorf("current = %q", res.Rejection.Current)
	}
}

func TestDuplicateAnnotation(t *testing.T) {
	res := assemble(t, RuleNoRepeatedWords)
	entries := res.ShownWords.Entries()
	if len(entries) != 2 {
		t.Fatalf("shown entries = %v", entries)
	}
	if entries[0].Word != "RAGE" || entries[0].Status != game.StatusDuplicate {
		t.Errorf("entry 0 = %+v, want RAGE duplicate", entries[0])
	}
	if entries[1].Status != game.StatusNormal {
		t.Errorf("entry 1 = %+v, want normal", entries[1])
	}
	if got := res.Final.Words.Entries(); got[0].Status != game.StatusNormal {
		t.Error("annotation leaked into the carried word list")
	}
}

func TestFormatFailure(t *testing.T) {
	res := assemble(t, RuleFormatFailure)
	timing := animate.DefaultTiming()
	if want := 2 + timing.RejectHold; len(res.Frames) != want {
		t.Fatalf("got %d frames, want %d", len(res.Frames), want)
	}
	for i, f := range res.Frames {
		if f.Bounds().Dx() != FormatPanelWidth || f.Bounds().Dy() != FormatPanelHeight {
			t.Fatalf("frame %d bounds %v", i, f.Bounds())
		}
	}
	if res.Frames[0].DurationMS != formatPanelMS || res.Frames[1].DurationMS != formatPanelMS {
		t.Error("intro panels should hold for three seconds")
	}
	if len(res.Turns) != 0 {
		t.Errorf("static scenario has turns %v", res.Turns)
	}
	if got := res.Frames[2].Image().RGBAAt(4, FormatPanelHeight-4); got != frame.RejectTint {
		t.Errorf("rejected background = %v, want %v", got, frame.RejectTint)
	}
}

func TestFormatPanelText(t *testing.T) {
	if _, err := game.ParseMove(game.FormatMove(TurnRage)); err != nil {
		t.Errorf("well-formed move did not parse: %v", err)
	}
	if _, err := game.ParseMove(VerboseMove(TurnRage)); !errors.Is(err, game.ErrMalformedMove) {
		t.Errorf("verbose move: err = %v, want ErrMalformedMove", err)
	}
}

func near(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) bool {
		v := int(x) - int(y)
		return v <= tol && v >= -tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B)
}
