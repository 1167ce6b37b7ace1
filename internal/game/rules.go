package game

import (
	"errors"

	"baldarules/internal/board"
)

// Violation names one game rule a turn can break.
type Violation string

const (
	ViolationOutOfRange    Violation = "out_of_range"
	ViolationOccupied      Violation = "occupied_cell"
	ViolationEmptyPath     Violation = "empty_path"
	ViolationLetterNotPath Violation = "letter_not_in_path"
	ViolationNonOrthogonal Violation = "non_orthogonal_step"
	ViolationCellReused    Violation = "cell_reused"
	ViolationWordMismatch  Violation = "word_mismatch"
	ViolationDuplicateWord Violation = "duplicate_word"
	ViolationMalformedMove Violation = "malformed_output"
)

// Validate lists every rule t breaks when played on b after the words in
// used were accepted. A legal turn yields nil. Violations are reported in a
// fixed order so results can be compared directly.
func Validate(b board.Board, t Turn, used WordList) []Violation {
	var out []Violation

	inRange := b.InRange(t.Cell)
	for _, c := range t.Path {
		inRange = inRange && b.InRange(c)
	}
	if !inRange {
		out = append(out, ViolationOutOfRange)
	}

	played := b
	if next, err := t.Apply(b); err != nil {
		var occupied *board.OccupiedCellError
		if errors.As(err, &occupied) {
			out = append(out, ViolationOccupied)
		}
	} else {
		played = next
	}

	if len(t.Path) == 0 {
		out = append(out, ViolationEmptyPath)
	} else {
		if !t.Path.Contains(t.Cell) {
			out = append(out, ViolationLetterNotPath)
		}
		if t.Path.FirstBadStep() >= 0 {
			out = append(out, ViolationNonOrthogonal)
		}
		if t.Path.FirstRepeat() >= 0 {
			out = append(out, ViolationCellReused)
		}
		if t.Path.Spell(played) != t.Word {
			out = append(out, ViolationWordMismatch)
		}
	}

	if used.Contains(t.Word) {
		out = append(out, ViolationDuplicateWord)
	}
	return out
}
