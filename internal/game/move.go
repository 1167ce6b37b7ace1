package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"baldarules/internal/board"
)

// ErrMalformedMove is returned when move text does not follow the
// three-line machine format exactly.
var ErrMalformedMove = errors.New("malformed move")

// FormatMove renders t in the machine format:
//
//	<row> <col> <letter>
//	<WORD>
//	<r,c> <r,c> ...
func FormatMove(t Turn) string {
	cells := lo.Map(t.Path, func(c board.Coord, _ int) string {
		return fmt.Sprintf("%d,%d", c.Row, c.Col)
	})
	return fmt.Sprintf("%d %d %c\n%s\n%s", t.Cell.Row, t.Cell.Col, t.Letter, t.Word, strings.Join(cells, " "))
}

// ParseMove parses machine-format move text. Anything besides the three
// lines, such as prose or markdown fences, is rejected.
func ParseMove(text string) (Turn, error) {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		return Turn{}, fmt.Errorf("%w: want 3 lines, got %d", ErrMalformedMove, len(lines))
	}

	head := strings.Fields(lines[0])
	if len(head) != 3 {
		return Turn{}, fmt.Errorf("%w: line 1: want \"row col letter\", got %q", ErrMalformedMove, lines[0])
	}
	row, errRow := strconv.Atoi(head[0])
	col, errCol := strconv.Atoi(head[1])
	if errRow != nil || errCol != nil {
		return Turn{}, fmt.Errorf("%w: line 1: bad coordinate %q", ErrMalformedMove, lines[0])
	}
	letter := []rune(head[2])
	if len(letter) != 1 || !unicode.IsLetter(letter[0]) {
		return Turn{}, fmt.Errorf("%w: line 1: bad letter %q", ErrMalformedMove, head[2])
	}

	word := strings.TrimSpace(lines[1])
	if word == "" || strings.IndexFunc(word, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
		return Turn{}, fmt.Errorf("%w: line 2: bad word %q", ErrMalformedMove, lines[1])
	}

	fields := strings.Fields(lines[2])
	if len(fields) == 0 {
		return Turn{}, fmt.Errorf("%w: line 3: empty path", ErrMalformedMove)
	}
	path := make(Path, 0, len(fields))
	for _, f := range fields {
		r, c, ok := strings.Cut(f, ",")
		ri, errR := strconv.Atoi(r)
		ci, errC := strconv.Atoi(c)
		if !ok || errR != nil || errC != nil {
			return Turn{}, fmt.Errorf("%w: line 3: bad cell %q", ErrMalformedMove, f)
		}
		path = append(path, board.At(ri, ci))
	}

	return Turn{
		Cell:   board.At(row, col),
		Letter: unicode.ToUpper(letter[0]),
		Word:   strings.ToUpper(word),
		Path:   path,
	}, nil
}
