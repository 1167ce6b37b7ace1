package scenario

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/gogpu/gg"

	"baldarules/internal/animate"
	"baldarules/internal/frame"
	"baldarules/internal/game"
)

// Format panel geometry.
const (
	FormatPanelWidth  = 520
	FormatPanelHeight = 360

	formatPanelMS = 3000
)

// VerboseMove wraps a well-formed move in the prose and markdown fencing a
// chatty model tends to add. The result does not parse.
func VerboseMove(t game.Turn) string {
	lines := []string{
		fmt.Sprintf("I'll place %q at row %d, col %d", string(t.Letter), t.Cell.Row, t.Cell.Col),
		fmt.Sprintf("forming the word %s.", t.Word),
		"",
		"```",
		game.FormatMove(t),
		"```",
	}
	return strings.Join(lines, "\n")
}

// FormatPanels draws the three static panels of the format-failure
// scenario: the expected move text, a verbose reply, and its rejection.
func FormatPanels(fonts *frame.Fonts, t game.Turn, timing animate.Timing) ([]frame.Frame, error) {
	good := strings.Split(game.FormatMove(t), "\n")
	verbose := strings.Split(VerboseMove(t), "\n")
	w := float64(FormatPanelWidth)

	correct, err := drawFormatPanel(frame.Background, func(dc *gg.Context) error {
		if err := drawFormatBox(dc, fonts, formatBox{
			y: 20, h: 110, title: "Correct format", mark: frame.MarkCheck,
			titleColor: frame.ValidColor, lineColor: frame.Dark, border: frame.ValidColor,
			lines: good,
		}); err != nil {
			return err
		}
		notes := []string{
			"Line 1: row col letter",
			"Line 2: the word",
			"Line 3: path as row,col pairs",
		}
		for i, n := range notes {
			frame.DrawText(dc, fonts.Small, n, 20, 160+float64(i)*20, frame.Muted)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("correct panel: %w", err)
	}

	output, err := drawFormatPanel(frame.Background, func(dc *gg.Context) error {
		if err := drawFormatBox(dc, fonts, formatBox{
			y: 20, h: 200, title: "Model output",
			titleColor: frame.Dark, lineColor: frame.VerboseText, border: frame.Muted,
			lines: verbose,
		}); err != nil {
			return err
		}
		frame.DrawText(dc, fonts.Small, "Extra text + markdown wrapping", 20, 240, frame.Muted)
		frame.DrawText(dc, fonts.Small, "→ parser cannot extract the move", 20, 260, frame.ErrorColor)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("output panel: %w", err)
	}

	rejected, err := drawFormatPanel(frame.RejectTint, func(dc *gg.Context) error {
		if err := drawFormatBox(dc, fonts, formatBox{
			y: 20, h: 200, title: "REJECTED", mark: frame.MarkCross,
			titleColor: frame.ErrorColor, lineColor: frame.ErrorColor, border: frame.ErrorColor,
			lines: verbose,
		}); err != nil {
			return err
		}
		dc.SetColor(frame.ErrorColor)
		dc.SetLineWidth(4)
		dc.DrawLine(30, 30, w-30, 210)
		dc.DrawLine(w-30, 30, 30, 210)
		if err := dc.Stroke(); err != nil {
			return err
		}
		frame.DrawText(dc, fonts.Side, "Parse failure → move skipped", 20, 240, frame.ErrorColor)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rejected panel: %w", err)
	}

	frames := []frame.Frame{
		frame.NewFrame(correct, formatPanelMS),
		frame.NewFrame(output, formatPanelMS),
	}
	return append(frames, frame.Repeat(frame.NewFrame(rejected, timing.HoldMS), timing.RejectHold, timing.HoldMS)...), nil
}

type formatBox struct {
	y, h       float64
	title      string
	mark       frame.Mark
	titleColor color.RGBA
	lineColor  color.RGBA
	border     color.RGBA
	lines      []string
}

func drawFormatBox(dc *gg.Context, fonts *frame.Fonts, b formatBox) error {
	x, w := 20.0, float64(FormatPanelWidth)-40
	dc.SetColor(frame.White)
	dc.DrawRectangle(x, b.y, w, b.h)
	if err := dc.Fill(); err != nil {
		return err
	}
	dc.SetColor(b.border)
	dc.SetLineWidth(2)
	dc.DrawRectangle(x+1, b.y+1, w-2, b.h-2)
	if err := dc.Stroke(); err != nil {
		return err
	}

	tx := x + 8
	if b.mark != frame.MarkNone {
		if err := frame.DrawMark(dc, b.mark, tx, b.y+8, 14, b.titleColor); err != nil {
			return err
		}
		tx += 22
	}
	frame.DrawText(dc, fonts.Side, b.title, tx, b.y+6, b.titleColor)
	for i, line := range b.lines {
		frame.DrawText(dc, fonts.Small, line, x+16, b.y+32+float64(i)*18, b.lineColor)
	}
	return nil
}

func drawFormatPanel(bg color.RGBA, draw func(dc *gg.Context) error) (*image.RGBA, error) {
	dc := gg.NewContext(FormatPanelWidth, FormatPanelHeight)
	defer dc.Close()
	dc.ClearWithColor(gg.FromColor(bg))
	if err := draw(dc); err != nil {
		return nil, err
	}
	return frame.Snapshot(dc), nil
}
