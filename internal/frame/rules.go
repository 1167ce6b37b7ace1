package frame

import (
	"image/color"

	"baldarules/internal/board"
)

// CellStyle is the resolved look of one board cell.
type CellStyle struct {
	Fill   color.RGBA
	Border color.RGBA
	Text   color.RGBA
	Rule   string // name of the rule that produced the style
}

// CellRule decides a cell's fill when it applies. Rules are tried in order
// and the first match wins.
type CellRule struct {
	Name  string
	Match func(v board.View, c board.Coord, o *Options) (fill, border color.RGBA, ok bool)
}

// Rule names, in precedence order.
const (
	RuleHighlight = "highlight"
	RuleNewLetter = "new_letter"
	RulePath      = "path"
	RuleEmpty     = "empty"
	RuleLetter    = "letter"
)

// CellRules is the precedence list used by every composed frame.
var CellRules = []CellRule{
	{Name: RuleHighlight, Match: func(_ board.View, c board.Coord, o *Options) (color.RGBA, color.RGBA, bool) {
		fill, ok := o.Highlights[c]
		return fill, Darken(fill, 30), ok
	}},
	{Name: RuleNewLetter, Match: func(_ board.View, c board.Coord, o *Options) (color.RGBA, color.RGBA, bool) {
		ok := o.NewCell != nil && *o.NewCell == c
		return NewColor, Darken(NewColor, 30), ok
	}},
	{Name: RulePath, Match: func(_ board.View, c board.Coord, o *Options) (color.RGBA, color.RGBA, bool) {
		for _, p := range o.Path {
			if p == c {
				return PathColor, Darken(PathColor, 30), true
			}
		}
		return color.RGBA{}, color.RGBA{}, false
	}},
	{Name: RuleEmpty, Match: func(v board.View, c board.Coord, _ *Options) (color.RGBA, color.RGBA, bool) {
		return EmptyFill, EmptyBorder, v.IsEmpty(c)
	}},
	{Name: RuleLetter, Match: func(_ board.View, _ board.Coord, _ *Options) (color.RGBA, color.RGBA, bool) {
		return LetterFill, LetterBorder, true
	}},
}

// ResolveCell walks CellRules top-down and returns the style of the first
// rule that matches c.
func ResolveCell(v board.View, c board.Coord, o *Options) CellStyle {
	if o == nil {
		o = &Options{}
	}
	for _, r := range CellRules {
		fill, border, ok := r.Match(v, c, o)
		if !ok {
			continue
		}
		text := Dark
		if isBright(fill) {
			text = White
		}
		return CellStyle{Fill: fill, Border: border, Text: text, Rule: r.Name}
	}
	return CellStyle{Fill: LetterFill, Border: LetterBorder, Text: Dark, Rule: RuleLetter}
}
