package game

import (
	"slices"

	"github.com/samber/lo"
)

// Status tags a word list entry for side-panel rendering.
type Status string

const (
	StatusNormal    Status = "normal"
	StatusDuplicate Status = "duplicate"
)

// Entry is one accepted word and how it should be shown.
type Entry struct {
	Word   string `json:"word"`
	Status Status `json:"status"`
}

// WordList is the append-only list of accepted words. Every method returns a
// new list; a WordList value never changes after it is built.
type WordList struct {
	entries []Entry
}

// NewWordList builds a list of normal entries.
func NewWordList(words ...string) WordList {
	return WordList{entries: lo.Map(words, func(w string, _ int) Entry {
		return Entry{Word: w, Status: StatusNormal}
	})}
}

// Append returns l with word added as a normal entry.
func (l WordList) Append(word string) WordList {
	entries := make([]Entry, len(l.entries), len(l.entries)+1)
	copy(entries, l.entries)
	return WordList{entries: append(entries, Entry{Word: word, Status: StatusNormal})}
}

// Annotate returns l with every entry for word retagged as status. The
// second result is false when the word is not in the list, in which case the
// returned list equals l.
func (l WordList) Annotate(word string, status Status) (WordList, bool) {
	if !l.Contains(word) {
		return l, false
	}
	return WordList{entries: lo.Map(l.entries, func(e Entry, _ int) Entry {
		if e.Word == word {
			e.Status = status
		}
		return e
	})}, true
}

// Contains reports whether word has been accepted.
func (l WordList) Contains(word string) bool {
	return lo.ContainsBy(l.entries, func(e Entry) bool { return e.Word == word })
}

// Len returns the number of entries.
func (l WordList) Len() int { return len(l.entries) }

// Entries returns a copy of the entries in acceptance order.
func (l WordList) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Words returns the accepted words in order.
func (l WordList) Words() []string {
	return lo.Map(l.entries, func(e Entry, _ int) string { return e.Word })
}

// Equal reports whether both lists hold the same entries in the same order.
func (l WordList) Equal(o WordList) bool {
	return slices.Equal(l.entries, o.entries)
}
