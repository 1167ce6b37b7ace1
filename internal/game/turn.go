// Package game holds the rule-level vocabulary of the word-building game:
// turns, paths, the list of claimed words, and the rules a turn can break.
package game

import (
	"github.com/samber/lo"

	"baldarules/internal/board"
)

// Path is the ordered run of cells a claimed word is traced through.
type Path []board.Coord

// Contains reports whether c is one of the path's cells.
func (p Path) Contains(c board.Coord) bool {
	return lo.Contains(p, c)
}

// Prefix returns the first n cells, clamped to the path length.
func (p Path) Prefix(n int) Path {
	n = max(0, min(n, len(p)))
	return p[:n:n]
}

// FirstRepeat returns the index of the first cell that already appeared
// earlier in the path, or -1.
func (p Path) FirstRepeat() int {
	seen := make(map[board.Coord]struct{}, len(p))
	for i, c := range p {
		if _, ok := seen[c]; ok {
			return i
		}
		seen[c] = struct{}{}
	}
	return -1
}

// FirstBadStep returns the index i of the first step p[i-1] -> p[i] that is
// not a single orthogonal move, or -1.
func (p Path) FirstBadStep() int {
	for i := 1; i < len(p); i++ {
		if !p[i-1].Adjacent(p[i]) {
			return i
		}
	}
	return -1
}

// Spell reads the letters along the path. Empty cells read as '?'.
func (p Path) Spell(v board.View) string {
	return string(lo.Map(p, func(c board.Coord, _ int) rune {
		if v.IsEmpty(c) {
			return '?'
		}
		return v.Letter(c)
	}))
}

// Turn is one scripted move: a letter written into Cell and the Word it
// claims, traced along Path.
type Turn struct {
	Cell   board.Coord `json:"cell"`
	Letter rune        `json:"letter"`
	Word   string      `json:"word"`
	Path   Path        `json:"path"`
}

// Apply places the turn's letter on b.
func (t Turn) Apply(b board.Board) (board.Board, error) {
	return b.Place(t.Cell, t.Letter)
}
