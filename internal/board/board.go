// Package board models the letter grid the rules are illustrated on.
//
// A Board is a value: Place never modifies its receiver, it returns a new
// Board with one more letter. Branching continuations can therefore start
// from the same Board without copying it first.
package board

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Empty is the rune stored for a cell without a letter.
const Empty rune = 0

// ErrOutOfRange is returned when a coordinate falls outside the grid.
var ErrOutOfRange = errors.New("coordinate out of range")

// ErrRaggedRows is returned by Parse when rows have different widths.
var ErrRaggedRows = errors.New("rows have different lengths")

// Coord addresses one cell as (row, column).
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// At is shorthand for Coord{Row: row, Col: col}.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String formats the coordinate as "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Adjacent reports whether o is one step up, down, left or right of c.
func (c Coord) Adjacent(o Coord) bool {
	dr, dc := abs(c.Row-o.Row), abs(c.Col-o.Col)
	return dr+dc == 1
}

// OccupiedCellError reports a placement onto a cell that already has a letter.
type OccupiedCellError struct {
	Coord  Coord
	Letter rune
}

func (e *OccupiedCellError) Error() string {
	return fmt.Sprintf("cell %s already holds %q", e.Coord, e.Letter)
}

// View is the read-only surface the renderer works against.
type View interface {
	Rows() int
	Cols() int
	Letter(c Coord) rune
	IsEmpty(c Coord) bool
}

// Board is an immutable grid of single uppercase letters.
type Board struct {
	rows, cols int
	cells      []rune
}

var _ View = Board{}

// New returns an empty rows x cols board.
func New(rows, cols int) Board {
	if rows < 0 || cols < 0 {
		rows, cols = 0, 0
	}
	return Board{rows: rows, cols: cols, cells: make([]rune, rows*cols)}
}

// Parse builds a board from text rows where '.' marks an empty cell.
func Parse(rows ...string) (Board, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	width := len([]rune(rows[0]))
	b := New(len(rows), width)
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != width {
			return Board{}, fmt.Errorf("row %d: %w", r, ErrRaggedRows)
		}
		for c, ch := range runes {
			if ch == '.' {
				continue
			}
			b.cells[r*width+c] = unicode.ToUpper(ch)
		}
	}
	return b, nil
}

// MustParse is Parse for fixed in-code boards.
func MustParse(rows ...string) Board {
	b, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Board) Rows() int { return b.rows }
func (b Board) Cols() int { return b.cols }

// InRange reports whether c addresses a cell of b.
func (b Board) InRange(c Coord) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

// Letter returns the letter at c, or Empty for empty and out-of-range cells.
func (b Board) Letter(c Coord) rune {
	if !b.InRange(c) {
		return Empty
	}
	return b.cells[c.Row*b.cols+c.Col]
}

// IsEmpty reports whether c holds no letter.
func (b Board) IsEmpty(c Coord) bool {
	return b.Letter(c) == Empty
}

// Place returns a copy of b with letter written at c.
func (b Board) Place(c Coord, letter rune) (Board, error) {
	if !b.InRange(c) {
		return Board{}, fmt.Errorf("place %s on %dx%d board: %w", c, b.rows, b.cols, ErrOutOfRange)
	}
	if prev := b.Letter(c); prev != Empty {
		return Board{}, &OccupiedCellError{Coord: c, Letter: prev}
	}
	next := b.clone()
	next.cells[c.Row*b.cols+c.Col] = unicode.ToUpper(letter)
	return next, nil
}

// Snapshot returns a read-only view of b.
func (b Board) Snapshot() View {
	return b.clone()
}

// Filled counts the cells holding a letter.
func (b Board) Filled() int {
	n := 0
	for _, ch := range b.cells {
		if ch != Empty {
			n++
		}
	}
	return n
}

// Diff lists the coordinates whose contents differ between b and o, in
// row-major order. Boards of different shapes differ everywhere.
func (b Board) Diff(o Board) []Coord {
	var out []Coord
	if b.rows != o.rows || b.cols != o.cols {
		for r := range max(b.rows, o.rows) {
			for c := range max(b.cols, o.cols) {
				out = append(out, At(r, c))
			}
		}
		return out
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			out = append(out, At(i/b.cols, i%b.cols))
		}
	}
	return out
}

// Equal reports whether both boards have the same shape and letters.
func (b Board) Equal(o Board) bool {
	return b.rows == o.rows && b.cols == o.cols && len(b.Diff(o)) == 0
}

// Row returns row r as text with '.' for empty cells.
func (b Board) Row(r int) string {
	if r < 0 || r >= b.rows {
		return ""
	}
	var sb strings.Builder
	for c := range b.cols {
		ch := b.cells[r*b.cols+c]
		if ch == Empty {
			ch = '.'
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

// String renders the board one row per line.
func (b Board) String() string {
	lines := make([]string, b.rows)
	for r := range b.rows {
		lines[r] = b.Row(r)
	}
	return strings.Join(lines, "\n")
}

func (b Board) clone() Board {
	cells := make([]rune, len(b.cells))
	copy(cells, b.cells)
	return Board{rows: b.rows, cols: b.cols, cells: cells}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
