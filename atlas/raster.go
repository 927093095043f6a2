package atlas

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/tmpatlas/tmp"
)

// Rasterizer measures and renders glyphs from one parsed font at one
// point size at a time. Rendering is done at 72 DPI with full hinting, so
// one point equals one pixel and measured boxes line up with rendered
// coverage.
//
// A Rasterizer is not safe for concurrent use; the underlying face caches
// rasterization state.
type Rasterizer struct {
	font *opentype.Font
	face font.Face

	pointSize int
	ascent    int
	descent   int
}

// NewRasterizer parses TrueType/OpenType font data.
func NewRasterizer(ttf []byte) (*Rasterizer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("atlas: parse font: %w", err)
	}
	return &Rasterizer{font: f}, nil
}

// SetPointSize switches the active face to the given point size. Calling
// it with the current size is a no-op.
func (r *Rasterizer) SetPointSize(pointSize int) error {
	if r.face != nil && r.pointSize == pointSize {
		return nil
	}
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    float64(pointSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("atlas: face at %dpt: %w", pointSize, err)
	}
	if r.face != nil {
		_ = r.face.Close()
	}
	metrics := face.Metrics()
	r.face = face
	r.pointSize = pointSize
	r.ascent = metrics.Ascent.Ceil()
	r.descent = metrics.Descent.Ceil()
	return nil
}

// PointSize returns the active point size.
func (r *Rasterizer) PointSize() int { return r.pointSize }

// Ascent returns the face ascent in pixels at the active size.
func (r *Rasterizer) Ascent() int { return r.ascent }

// Descent returns the face descent in pixels at the active size, as a
// positive distance below the baseline.
func (r *Rasterizer) Descent() int { return r.descent }

// Measure returns the pixel box and typographic metrics of one codepoint
// at the active size. Vertical bearing is reported from the baseline to
// the glyph top, the convention glyph consumers expect. Whitespace and
// other ink-free codepoints measure as a zero-size box with their advance
// intact.
func (r *Rasterizer) Measure(c rune) (width, height int, metrics tmp.GlyphMetrics) {
	bounds, advance, ok := r.face.GlyphBounds(c)
	if !ok {
		return 0, 0, tmp.GlyphMetrics{}
	}

	minX := bounds.Min.X.Floor()
	minY := bounds.Min.Y.Floor()
	maxX := bounds.Max.X.Ceil()
	maxY := bounds.Max.Y.Ceil()

	width = max(0, maxX-minX)
	height = max(0, maxY-minY)
	metrics = tmp.GlyphMetrics{
		Width:              float64(width),
		Height:             float64(height),
		HorizontalBearingX: float64(minX),
		HorizontalBearingY: float64(-minY),
		HorizontalAdvance:  float64(advance) / 64,
	}
	return width, height, metrics
}

// Mask renders one codepoint at the active size into an alpha mask whose
// origin is the glyph box's top-left corner. Returns nil for codepoints
// that measure empty.
func (r *Rasterizer) Mask(c rune) *image.Alpha {
	bounds, _, ok := r.face.GlyphBounds(c)
	if !ok {
		return nil
	}

	minX := bounds.Min.X.Floor()
	minY := bounds.Min.Y.Floor()
	w := bounds.Max.X.Ceil() - minX
	h := bounds.Max.Y.Ceil() - minY
	if w <= 0 || h <= 0 {
		return nil
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	drawer := &font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
	}
	drawer.DrawString(string(c))
	return mask
}

// Close releases the active face.
func (r *Rasterizer) Close() error {
	if r.face == nil {
		return nil
	}
	err := r.face.Close()
	r.face = nil
	return err
}
