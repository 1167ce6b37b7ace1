package frame

import (
	"bytes"
	"image"

	"github.com/samber/lo"
)

// Frame is one rendered raster and how long it stays on screen. The pixel
// buffer is never written after composition, so frames may share it.
type Frame struct {
	img        *image.RGBA
	DurationMS int
}

// NewFrame wraps an already rendered image.
func NewFrame(img *image.RGBA, durationMS int) Frame {
	return Frame{img: img, DurationMS: durationMS}
}

// Image returns the frame's pixels. Callers must not modify them.
func (f Frame) Image() *image.RGBA { return f.img }

// Bounds returns the raster size, or the empty rectangle for a zero Frame.
func (f Frame) Bounds() image.Rectangle {
	if f.img == nil {
		return image.Rectangle{}
	}
	return f.img.Bounds()
}

// WithDuration returns the same raster shown for durationMS.
func (f Frame) WithDuration(durationMS int) Frame {
	return Frame{img: f.img, DurationMS: durationMS}
}

// SamePixels reports whether both frames hold identical rasters.
func (f Frame) SamePixels(o Frame) bool {
	if f.img == nil || o.img == nil {
		return f.img == o.img
	}
	return f.img.Rect == o.img.Rect && bytes.Equal(f.img.Pix, o.img.Pix)
}

// Repeat returns n copies of f, each shown for durationMS. Repetition is how
// a state is held on screen.
func Repeat(f Frame, n, durationMS int) []Frame {
	return lo.Times(n, func(_ int) Frame { return f.WithDuration(durationMS) })
}

// TotalMS sums the display durations of frames.
func TotalMS(frames []Frame) int {
	return lo.SumBy(frames, func(f Frame) int { return f.DurationMS })
}
