package atlas

import (
	tmpatlas "github.com/gogpu/tmpatlas"
	"github.com/gogpu/tmpatlas/tmp"
)

// glyphSlot is one charset entry measured at a candidate point size.
// Zero-size slots (whitespace, codepoints the font cannot shape) still
// occupy a 1x1 rect so every character keeps an addressable glyph.
type glyphSlot struct {
	unicode rune
	index   int
	width   int
	height  int
	metrics tmp.GlyphMetrics
}

// layout is a fully packed candidate: every charset rect has a placement
// inside the atlas at this point size.
type layout struct {
	pointSize  int
	ascent     int
	descent    int
	slots      []glyphSlot
	placements map[int]Placement
	usedRects  []Placement
}

// layoutSearcher measures and packs layouts at candidate point sizes,
// memoizing every attempt. Negative results are cached too: the point-size
// search probes overlapping candidates and an overflow stays an overflow.
type layoutSearcher struct {
	rast    *Rasterizer
	runes   []rune
	padding int
	atlasW  int
	atlasH  int
	cache   map[int]*layout
}

func newLayoutSearcher(rast *Rasterizer, runes []rune, padding, atlasW, atlasH int) *layoutSearcher {
	return &layoutSearcher{
		rast:    rast,
		runes:   runes,
		padding: padding,
		atlasW:  atlasW,
		atlasH:  atlasH,
		cache:   make(map[int]*layout),
	}
}

// build measures every charset glyph at pointSize and shelf-packs the
// padded rects. Returns nil when the layout does not fit.
func (s *layoutSearcher) build(pointSize int) *layout {
	if l, ok := s.cache[pointSize]; ok {
		return l
	}

	if err := s.rast.SetPointSize(pointSize); err != nil {
		tmpatlas.Logger().Debug("face construction failed", "pointSize", pointSize, "error", err)
		s.cache[pointSize] = nil
		return nil
	}

	slots := make([]glyphSlot, 0, len(s.runes))
	rects := make([]PackRect, 0, len(s.runes))
	for i, r := range s.runes {
		w, h, metrics := s.rast.Measure(r)
		slot := glyphSlot{unicode: r, index: i, width: w, height: h, metrics: metrics}
		slots = append(slots, slot)

		rect := PackRect{ID: i, Width: 1, Height: 1}
		if w > 0 && h > 0 {
			rect.Width = w + 2*s.padding
			rect.Height = h + 2*s.padding
		}
		rects = append(rects, rect)
	}

	placements, used, err := PackShelf(rects, s.atlasW, s.atlasH)
	if err != nil {
		s.cache[pointSize] = nil
		return nil
	}

	l := &layout{
		pointSize:  pointSize,
		ascent:     s.rast.Ascent(),
		descent:    s.rast.Descent(),
		slots:      slots,
		placements: placements,
		usedRects:  used,
	}
	s.cache[pointSize] = l
	return l
}

// search selects the layout to compose. A requested size of zero or less
// runs a binary search over [8,512] for the largest fitting size. A fixed
// request walks a shrinking ladder below the requested size, accepting the
// first fit, so a slightly oversized request degrades gracefully instead
// of failing outright.
func (s *layoutSearcher) search(requested int) *layout {
	if requested <= 0 {
		return s.searchAuto()
	}
	return s.searchFixed(requested)
}

// pointSizeSteps are the decrements tried below a fixed requested size.
var pointSizeSteps = [...]int{4, 8, 12, 16, 24, 32, 48, 64, 96, 128}

func (s *layoutSearcher) searchFixed(requested int) *layout {
	candidates := []int{requested}
	for _, step := range pointSizeSteps {
		c := requested - step
		if c >= 8 && !containsInt(candidates, c) {
			candidates = append(candidates, c)
		}
	}
	if !containsInt(candidates, 8) {
		candidates = append(candidates, 8)
	}

	for _, c := range candidates {
		l := s.build(c)
		fit := "overflow"
		if l != nil {
			fit = "fit"
		}
		tmpatlas.Logger().Debug("fixed point-size candidate", "pointSize", c, "result", fit)
		if l != nil {
			return l
		}
	}
	return nil
}

func (s *layoutSearcher) searchAuto() *layout {
	low, high := 8, 512
	var best *layout
	tmpatlas.Logger().Debug("auto point-size search", "low", low, "high", high)
	for low <= high {
		mid := (low + high) / 2
		if l := s.build(mid); l != nil {
			tmpatlas.Logger().Debug("auto point-size candidate", "pointSize", mid, "result", "fit")
			best = l
			low = mid + 1
		} else {
			tmpatlas.Logger().Debug("auto point-size candidate", "pointSize", mid, "result", "overflow")
			high = mid - 1
		}
	}
	return best
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
