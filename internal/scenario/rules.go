package scenario

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/samber/lo"

	"baldarules/internal/animate"
	"baldarules/internal/board"
	"baldarules/internal/frame"
	"baldarules/internal/game"
)

// Lead-in durations of the rejected turn.
const (
	leadMS = 600

	revealPathMS      = 300
	revealDiagonalMS  = 400
	revealReuseMS     = 400
	revealDuplicateMS = 350
)

var rules = []Rule{
	{
		Name:      RuleLetterPlacement,
		File:      "gif1_letter_placement.gif",
		Title:     "Letters go on empty cells only",
		Violation: game.ViolationOccupied,
		Turn:      game.Turn{Cell: board.At(2, 2), Letter: 'S'},
		build:     buildOccupied,
	},
	{
		Name:      RulePathIncludesLetter,
		File:      "gif2_path_must_include_letter.gif",
		Title:     "The word must use the new letter",
		Violation: game.ViolationLetterNotPath,
		Turn: game.Turn{
			Cell: board.At(4, 3), Letter: 'T', Word: "TENT",
			Path: game.Path{board.At(2, 2), board.At(2, 3), board.At(2, 4)},
		},
		build: buildNotInPath,
	},
	{
		Name:      RuleNoDiagonal,
		File:      "gif3_no_diagonal.gif",
		Title:     "Paths move up, down, left or right",
		Violation: game.ViolationNonOrthogonal,
		Turn: game.Turn{
			Cell: board.At(3, 1), Letter: 'K', Word: "KE",
			Path: game.Path{board.At(3, 1), board.At(2, 2)},
		},
		build: buildDiagonal,
	},
	{
		Name:      RuleNoCellReuse,
		File:      "gif4_no_cell_reuse.gif",
		Title:     "Each cell is used once per word",
		Violation: game.ViolationCellReused,
		Turn: game.Turn{
			Cell: board.At(3, 1), Letter: 'O', Word: "OGEG",
			Path: game.Path{board.At(3, 1), board.At(2, 1), board.At(2, 2), board.At(2, 1)},
		},
		build: buildReuse,
	},
	{
		Name:      RuleNoRepeatedWords,
		File:      "gif5_no_repeated_words.gif",
		Title:     "A word can be claimed only once",
		Violation: game.ViolationDuplicateWord,
		Turn: game.Turn{
			Cell: board.At(3, 1), Letter: 'E', Word: "RAGE",
			Path: game.Path{board.At(1, 0), board.At(2, 0), board.At(2, 1), board.At(3, 1)},
		},
		build: buildDuplicate,
	},
	{
		Name:      RuleFormatFailure,
		File:      "gif6_format_failure.gif",
		Title:     "Moves must follow the exact format",
		Violation: game.ViolationMalformedMove,
		Static:    true,
	},
}

// The target cell is already taken, so the letter never lands.
func buildOccupied(a *animate.Animator, st animate.State, t game.Turn) ([]frame.Frame, animate.Rejection, error) {
	target, err := a.Target(st, t.Cell, fmt.Sprintf("Placing on %s...", t.Cell), leadMS)
	if err != nil {
		return nil, animate.Rejection{}, err
	}
	rej := animate.Rejection{
		Status:     "Cell occupied!",
		Highlights: map[board.Coord]color.RGBA{t.Cell: frame.ErrorColor},
	}
	hold, err := a.Invalid(st.Board, st.Words, t, rej)
	if err != nil {
		return nil, rej, err
	}
	return append([]frame.Frame{target}, hold...), rej, nil
}

// The word is spelled on existing letters while the new one sits apart.
func buildNotInPath(a *animate.Animator, st animate.State, t game.Turn) ([]frame.Frame, animate.Rejection, error) {
	highlights := lo.SliceToMap(t.Path, func(c board.Coord) (board.Coord, color.RGBA) {
		return c, frame.ErrorColor
	})
	highlights[t.Cell] = frame.Attention
	rej := animate.Rejection{
		Status:     "New letter not\nin path!",
		Highlights: highlights,
	}
	frames, err := placeRevealHold(a, st, t, t.Path, t.Word, revealPathMS, rej)
	return frames, rej, err
}

// The path steps diagonally on its first move; the offending step is struck
// through.
func buildDiagonal(a *animate.Animator, st animate.State, t game.Turn) ([]frame.Frame, animate.Rejection, error) {
	bad := t.Path.FirstBadStep()
	if bad < 1 {
		return nil, animate.Rejection{}, fmt.Errorf("path %v has no diagonal step", t.Path)
	}
	from, to := t.Path[bad-1], t.Path[bad]
	rej := animate.Rejection{
		Status:  "Diagonal move!",
		Current: t.Word + "...",
		Highlights: map[board.Coord]color.RGBA{
			from: frame.ErrorColor,
			to:   frame.ErrorColor,
		},
		Extra: strike(from, to),
	}
	shown := t.Path.Prefix(bad)
	frames, err := placeRevealHold(a, st, t, shown, revealedWord(t.Word, len(shown)), revealDiagonalMS, rej)
	return frames, rej, err
}

// The path walks back onto a cell it already visited.
func buildReuse(a *animate.Animator, st animate.State, t game.Turn) ([]frame.Frame, animate.Rejection, error) {
	repeat := t.Path.FirstRepeat()
	if repeat < 0 {
		return nil, animate.Rejection{}, fmt.Errorf("path %v revisits no cell", t.Path)
	}
	shown := t.Path.Prefix(repeat)
	highlights := lo.SliceToMap(shown, func(c board.Coord) (board.Coord, color.RGBA) {
		return c, frame.PathColor
	})
	highlights[t.Path[repeat]] = frame.ErrorColor
	rej := animate.Rejection{
		Status:     "Cell already\nvisited!",
		Current:    t.Word + "?",
		Highlights: highlights,
	}
	frames, err := placeRevealHold(a, st, t, shown, revealedWord(t.Word, len(shown)), revealReuseMS, rej)
	return frames, rej, err
}

// A different path spells a word that is already in the list.
func buildDuplicate(a *animate.Animator, st animate.State, t game.Turn) ([]frame.Frame, animate.Rejection, error) {
	rej := animate.Rejection{
		Status: "Already used!",
		Highlights: lo.SliceToMap(t.Path, func(c board.Coord) (board.Coord, color.RGBA) {
			return c, frame.ErrorColor
		}),
		ShowWords: func(words game.WordList) game.WordList {
			marked, _ := words.Annotate(t.Word, game.StatusDuplicate)
			return marked
		},
	}
	frames, err := placeRevealHold(a, st, t, t.Path, t.Word, revealDuplicateMS, rej)
	return frames, rej, err
}

// placeRevealHold places t's letter, reveals path spelling word, and holds
// the rejection.
func placeRevealHold(a *animate.Animator, st animate.State, t game.Turn, path game.Path, word string, revealMS int, rej animate.Rejection) ([]frame.Frame, error) {
	placed, b, err := a.Place(st, t, leadMS)
	if err != nil {
		return nil, err
	}
	reveal, err := a.Reveal(b, st.Words, t.Cell, path, word, revealMS)
	if err != nil {
		return nil, err
	}
	hold, err := a.Invalid(b, st.Words, t, rej)
	if err != nil {
		return nil, err
	}
	frames := append([]frame.Frame{placed}, reveal...)
	return append(frames, hold...), nil
}

func revealedWord(word string, n int) string {
	r := []rune(word)
	return string(r[:min(n, len(r))])
}

// strike draws a thick error line between two cell centers with a cross at
// its midpoint.
func strike(from, to board.Coord) frame.DrawFunc {
	return func(dc *gg.Context, l frame.Layout, _ *frame.Fonts) error {
		x1, y1 := l.CellCenter(from.Row, from.Col)
		x2, y2 := l.CellCenter(to.Row, to.Col)
		dc.SetColor(frame.ErrorColor)
		dc.SetLineWidth(3)
		dc.DrawLine(x1, y1, x2, y2)
		if err := dc.Stroke(); err != nil {
			return err
		}
		size := frame.BigFontSize * 0.6
		mx, my := (x1+x2)/2, (y1+y2)/2
		return frame.DrawMark(dc, frame.MarkCross, mx-size/2, my-size/2, size, frame.ErrorColor)
	}
}
