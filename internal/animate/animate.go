// Package animate expands scripted turns into frame sequences.
//
// Every turn moves through the same states in order: the target cell is
// highlighted, the letter is placed, the path is revealed one cell per
// frame, and a terminal frame is held. Accepted turns then append their word
// to the list; rejected turns leave board and list exactly as they were.
package animate

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/samber/lo"

	"baldarules/internal/board"
	"baldarules/internal/frame"
	"baldarules/internal/game"
)

// Timing holds display durations in milliseconds and hold lengths in frames.
type Timing struct {
	TargetMS   int
	PlacedMS   int
	RevealMS   int
	HoldMS     int
	SettleMS   int
	AcceptHold int
	RejectHold int
}

// DefaultTiming is the pacing used for the published animations.
func DefaultTiming() Timing {
	return Timing{
		TargetMS:   500,
		PlacedMS:   500,
		RevealMS:   350,
		HoldMS:     150,
		SettleMS:   600,
		AcceptHold: 6,
		RejectHold: 20,
	}
}

// State is what carries over from one turn to the next.
type State struct {
	Board board.Board
	Words game.WordList
}

// Rejection describes the frozen last frame of a rejected turn.
type Rejection struct {
	Status string

	// Current is the attempted word shown in the panel. Empty means the
	// turn's word.
	Current string

	// Highlights overrides the cells drawn in error color. Nil marks every
	// path cell plus the new letter's cell.
	Highlights map[board.Coord]color.RGBA

	// ShowWords rewrites the word list displayed in the frozen frame, for
	// example to flag a duplicate. It never changes the carried State.
	ShowWords func(game.WordList) game.WordList

	Extra frame.DrawFunc
}

// Animator renders turns through a Composer.
type Animator struct {
	composer *frame.Composer
	timing   Timing
}

// New returns an Animator drawing with c and pacing with t.
func New(c *frame.Composer, t Timing) *Animator {
	return &Animator{composer: c, timing: t}
}

// Timing returns the animator's pacing.
func (a *Animator) Timing() Timing { return a.timing }

// Composer returns the composer frames are drawn with.
func (a *Animator) Composer() *frame.Composer { return a.composer }

// Target renders the attention frame for cell. A non-empty note is shown as
// a muted status line.
func (a *Animator) Target(st State, cell board.Coord, note string, ms int) (frame.Frame, error) {
	return a.composer.Compose(st.Board, frame.Options{
		Highlights: map[board.Coord]color.RGBA{cell: frame.Attention},
		Panel:      frame.Panel{Words: st.Words, Status: note, StatusColor: frame.Muted},
	}, ms)
}

// Place writes the turn's letter and renders it in the success color. The
// returned board is a new value; st.Board is unchanged.
func (a *Animator) Place(st State, t game.Turn, ms int) (frame.Frame, board.Board, error) {
	placed, err := t.Apply(st.Board)
	if err != nil {
		return frame.Frame{}, st.Board, err
	}
	f, err := a.composer.Compose(placed, frame.Options{
		NewCell: &t.Cell,
		Panel:   frame.Panel{Words: st.Words},
	}, ms)
	return f, placed, err
}

// Reveal renders one frame per prefix of path, growing the traced word by
// one letter each frame. When word is longer than path, the leading letters
// not covered by the path are shown from the first frame on.
func (a *Animator) Reveal(b board.Board, words game.WordList, newCell board.Coord, path game.Path, word string, ms int) ([]frame.Frame, error) {
	out := make([]frame.Frame, 0, len(path))
	for i := 1; i <= len(path); i++ {
		f, err := a.composer.Compose(b, frame.Options{
			Path:    path.Prefix(i),
			NewCell: &newCell,
			Panel: frame.Panel{
				Words:        words,
				Current:      RevealedWord(word, len(path), i),
				CurrentColor: frame.PathColor,
			},
		}, ms)
		if err != nil {
			return nil, fmt.Errorf("reveal step %d/%d: %w", i, len(path), err)
		}
		out = append(out, f)
	}
	return out, nil
}

// RevealedWord returns the part of word shown after step of pathLen cells.
func RevealedWord(word string, pathLen, step int) string {
	runes := []rune(word)
	n := len(runes) - pathLen + step
	n = max(0, min(n, len(runes)))
	return string(runes[:n])
}

// Valid renders the accepted outcome held on screen, then one settle frame
// with the word appended and every overlay cleared. The settle frame's state
// is returned for the next turn.
func (a *Animator) Valid(b board.Board, words game.WordList, t game.Turn) ([]frame.Frame, State, error) {
	ok, err := a.composer.Compose(b, frame.Options{
		Path:    t.Path,
		NewCell: &t.Cell,
		Panel: frame.Panel{
			Words:        words,
			Current:      t.Word,
			CurrentColor: frame.ValidColor,
			Status:       "Valid",
			StatusColor:  frame.ValidColor,
			Mark:         frame.MarkCheck,
		},
	}, a.timing.HoldMS)
	if err != nil {
		return nil, State{}, err
	}
	next := State{Board: b, Words: words.Append(t.Word)}
	settle, err := a.composer.Compose(next.Board, frame.Options{Panel: frame.Panel{Words: next.Words}}, a.timing.SettleMS)
	if err != nil {
		return nil, State{}, err
	}
	frames := frame.Repeat(ok, a.timing.AcceptHold, a.timing.HoldMS)
	return append(frames, settle), next, nil
}

// Invalid renders the rejected outcome held on screen. It has no effect on
// the board or the word list.
func (a *Animator) Invalid(b board.View, words game.WordList, t game.Turn, r Rejection) ([]frame.Frame, error) {
	highlights := r.Highlights
	if highlights == nil {
		cells := append(game.Path{t.Cell}, t.Path...)
		highlights = lo.SliceToMap(cells, func(c board.Coord) (board.Coord, color.RGBA) {
			return c, frame.ErrorColor
		})
	}
	current := r.Current
	if current == "" {
		current = t.Word
	}
	shown := words
	if r.ShowWords != nil {
		shown = r.ShowWords(words)
	}
	status := r.Status
	if status == "" {
		status = "INVALID"
	}
	f, err := a.composer.Compose(b, frame.Options{
		Highlights: highlights,
		Panel: frame.Panel{
			Words:        shown,
			Current:      current,
			CurrentColor: frame.ErrorColor,
			Status:       status,
			StatusColor:  frame.ErrorColor,
			Mark:         frame.MarkCross,
		},
		Extra: r.Extra,
	}, a.timing.HoldMS)
	if err != nil {
		return nil, err
	}
	return frame.Repeat(f, a.timing.RejectHold, a.timing.HoldMS), nil
}

// Accept runs every state of an accepted turn.
func (a *Animator) Accept(st State, t game.Turn) ([]frame.Frame, State, error) {
	target, err := a.Target(st, t.Cell, "", a.timing.TargetMS)
	if err != nil {
		return nil, st, fmt.Errorf("turn %s: target: %w", t.Word, err)
	}
	placed, b, err := a.Place(st, t, a.timing.PlacedMS)
	if err != nil {
		return nil, st, fmt.Errorf("turn %s: place: %w", t.Word, err)
	}
	reveal, err := a.Reveal(b, st.Words, t.Cell, t.Path, t.Word, a.timing.RevealMS)
	if err != nil {
		return nil, st, fmt.Errorf("turn %s: %w", t.Word, err)
	}
	outcome, next, err := a.Valid(b, st.Words, t)
	if err != nil {
		return nil, st, fmt.Errorf("turn %s: outcome: %w", t.Word, err)
	}

	frames := append([]frame.Frame{target, placed}, reveal...)
	return append(frames, outcome...), next, nil
}

// Reject runs every state of a rejected turn and returns st unchanged. A
// turn aimed at an occupied cell never gets past the target state.
func (a *Animator) Reject(st State, t game.Turn, r Rejection) ([]frame.Frame, State, error) {
	target, err := a.Target(st, t.Cell, "", a.timing.TargetMS)
	if err != nil {
		return nil, st, fmt.Errorf("turn %s: target: %w", t.Word, err)
	}
	frames := []frame.Frame{target}

	shownBoard := st.Board
	placed, b, err := a.Place(st, t, a.timing.PlacedMS)
	var occupied *board.OccupiedCellError
	switch {
	case errors.As(err, &occupied):
	case err != nil:
		return nil, st, fmt.Errorf("turn %s: place: %w", t.Word, err)
	default:
		reveal, err := a.Reveal(b, st.Words, t.Cell, t.Path, t.Word, a.timing.RevealMS)
		if err != nil {
			return nil, st, fmt.Errorf("turn %s: %w", t.Word, err)
		}
		frames = append(append(frames, placed), reveal...)
		shownBoard = b
	}

	outcome, err := a.Invalid(shownBoard, st.Words, t, r)
	if err != nil {
		return nil, st, fmt.Errorf("turn %s: outcome: %w", t.Word, err)
	}
	return append(frames, outcome...), st, nil
}
