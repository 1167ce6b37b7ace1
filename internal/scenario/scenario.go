// Package scenario assembles one documentation animation per game rule.
//
// Every board scenario plays the same two accepted turns (RAGE, then DENT
// crossing it) and ends on a third turn that breaks exactly one rule, frozen
// on screen. The format-failure scenario has no board and is drawn as three
// static panels instead.
package scenario

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"baldarules/internal/animate"
	"baldarules/internal/board"
	"baldarules/internal/frame"
	"baldarules/internal/game"
)

// ErrUnknownRule is returned when a rule name matches no scenario.
var ErrUnknownRule = errors.New("unknown rule")

// Rule names.
const (
	RuleLetterPlacement    = "letter_placement"
	RulePathIncludesLetter = "path_must_include_letter"
	RuleNoDiagonal         = "no_diagonal"
	RuleNoCellReuse        = "no_cell_reuse"
	RuleNoRepeatedWords    = "no_repeated_words"
	RuleFormatFailure      = "format_failure"
)

// Scripted accepted turns shared by every board scenario.
var (
	TurnRage = game.Turn{
		Cell: board.At(1, 0), Letter: 'R', Word: "RAGE",
		Path: game.Path{board.At(1, 0), board.At(2, 0), board.At(2, 1), board.At(2, 2)},
	}
	TurnDent = game.Turn{
		Cell: board.At(3, 2), Letter: 'D', Word: "DENT",
		Path: game.Path{board.At(3, 2), board.At(2, 2), board.At(2, 3), board.At(2, 4)},
	}
)

// InitialBoard is the 5x5 starting position with AGENT across the middle row.
func InitialBoard() board.Board {
	return board.MustParse(
		".....",
		".....",
		"AGENT",
		".....",
		".....",
	)
}

// buildFunc renders the rejected third turn on top of the accepted prefix.
type buildFunc func(a *animate.Animator, st animate.State, t game.Turn) ([]frame.Frame, animate.Rejection, error)

// Rule is one illustrated rule: the turn that breaks it and how its
// rejection is shown.
type Rule struct {
	Name      string
	File      string
	Title     string
	Violation game.Violation
	Turn      game.Turn
	Static    bool
	build     buildFunc
}

// Result is one fully assembled animation.
type Result struct {
	Rule   Rule
	Frames []frame.Frame

	// Turns holds the accepted prefix followed by the rejected turn. It is
	// empty for static scenarios.
	Turns []game.Turn

	Initial board.Board
	Prefix  animate.State // after the accepted turns
	Final   animate.State // after the rejected turn

	// Rejection is the overlay of the frozen last frame and ShownWords the
	// word list drawn in it.
	Rejection  animate.Rejection
	ShownWords game.WordList
}

// TotalMS returns the animation's running time.
func (r Result) TotalMS() int {
	return frame.TotalMS(r.Frames)
}

// Assembler builds scenarios with one Animator.
type Assembler struct {
	animator *animate.Animator
	initial  board.Board
	prefix   []game.Turn
}

// New returns an Assembler using a.
func New(a *animate.Animator) *Assembler {
	return &Assembler{
		animator: a,
		initial:  InitialBoard(),
		prefix:   []game.Turn{TurnRage, TurnDent},
	}
}

// Rules returns the six illustrated rules in publication order.
func Rules() []Rule {
	return slices.Clone(rules)
}

// Lookup finds a rule by name.
func Lookup(name string) (Rule, error) {
	r, ok := lo.Find(rules, func(r Rule) bool { return r.Name == name })
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return r, nil
}

// Names returns the rule names in publication order.
func Names() []string {
	return lo.Map(rules, func(r Rule, _ int) string { return r.Name })
}

// Assemble renders the full animation for r. Each call starts from the
// initial board; nothing is shared between calls except immutable values.
func (s *Assembler) Assemble(r Rule) (Result, error) {
	if r.Static {
		frames, err := FormatPanels(s.animator.Composer().Fonts(), TurnRage, s.animator.Timing())
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", r.Name, err)
		}
		return Result{Rule: r, Frames: frames}, nil
	}
	if r.build == nil {
		return Result{}, fmt.Errorf("%w: %q has no script", ErrUnknownRule, r.Name)
	}

	frames, st, err := s.Prefix()
	if err != nil {
		return Result{}, fmt.Errorf("%s: prefix: %w", r.Name, err)
	}
	tail, rej, err := r.build(s.animator, st, r.Turn)
	if err != nil {
		return Result{}, fmt.Errorf("%s: rejected turn: %w", r.Name, err)
	}

	shown := st.Words
	if rej.ShowWords != nil {
		shown = rej.ShowWords(st.Words)
	}
	return Result{
		Rule:       r,
		Frames:     append(frames, tail...),
		Turns:      append(slices.Clone(s.prefix), r.Turn),
		Initial:    s.initial,
		Prefix:     st,
		Final:      st,
		Rejection:  rej,
		ShownWords: shown,
	}, nil
}

// Prefix plays the accepted turns from the initial board.
func (s *Assembler) Prefix() ([]frame.Frame, animate.State, error) {
	st := animate.State{Board: s.initial}
	var frames []frame.Frame
	for _, t := range s.prefix {
		f, next, err := s.animator.Accept(st, t)
		if err != nil {
			return nil, st, err
		}
		frames = append(frames, f...)
		st = next
	}
	return frames, st, nil
}
