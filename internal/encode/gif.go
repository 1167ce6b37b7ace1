// Package encode writes frame sequences as looping GIF files.
package encode

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/lo"

	"baldarules/internal/frame"
)

var (
	// ErrNoFrames is returned when asked to encode an empty sequence.
	ErrNoFrames = errors.New("no frames to encode")
	// ErrFrameSize is returned when frames in one sequence differ in size.
	ErrFrameSize = errors.New("frame sizes differ")
)

// Palette returns the shared 256-color palette: every drawing color first so
// they map exactly, then the web-safe cube, then a gray ramp for
// anti-aliased text edges.
func Palette() color.Palette {
	cols := frame.Colors()
	for _, c := range palette.WebSafe {
		cols = append(cols, color.RGBAModel.Convert(c).(color.RGBA))
	}
	for i := range 20 {
		v := uint8(i * 255 / 19)
		cols = append(cols, color.RGBA{v, v, v, 0xff})
	}
	cols = lo.Uniq(cols)
	if len(cols) > 256 {
		cols = cols[:256]
	}
	return lo.Map(cols, func(c color.RGBA, _ int) color.Color { return c })
}

// DelayCS converts a display duration in milliseconds to GIF centiseconds.
func DelayCS(ms int) int {
	return max(1, (ms+5)/10)
}

// Encoder quantizes frames against one palette. Frames sharing a backing
// image are converted once, so use one Encoder per animation.
type Encoder struct {
	palette color.Palette

	mu    sync.Mutex
	cache map[*image.RGBA]*image.Paletted
}

// NewEncoder returns an Encoder using Palette().
func NewEncoder() *Encoder {
	return &Encoder{
		palette: Palette(),
		cache:   make(map[*image.RGBA]*image.Paletted),
	}
}

// Encode writes frames as an infinitely looping GIF.
func (e *Encoder) Encode(w io.Writer, frames []frame.Frame) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	bounds := frames[0].Bounds()
	anim := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
		Config: image.Config{
			ColorModel: e.palette,
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
		},
	}
	for i, f := range frames {
		if f.Bounds() != bounds {
			return fmt.Errorf("%w: frame %d is %v, first is %v", ErrFrameSize, i, f.Bounds(), bounds)
		}
		anim.Image = append(anim.Image, e.paletted(f.Image()))
		anim.Delay = append(anim.Delay, DelayCS(f.DurationMS))
	}
	return gif.EncodeAll(w, anim)
}

// WriteFile encodes frames to path and returns the file size. The file is
// written beside its destination and renamed into place.
func (e *Encoder) WriteFile(path string, frames []frame.Frame) (int64, error) {
	if len(frames) == 0 {
		return 0, ErrNoFrames
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*.gif")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	if err := e.Encode(tmp, frames); err != nil {
		tmp.Close()
		return 0, err
	}
	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (e *Encoder) paletted(img *image.RGBA) *image.Paletted {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.cache[img]; ok {
		return p
	}
	p := image.NewPaletted(img.Bounds(), e.palette)
	draw.Draw(p, p.Bounds(), img, img.Bounds().Min, draw.Src)
	e.cache[img] = p
	return p
}
