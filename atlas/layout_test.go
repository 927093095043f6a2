package atlas

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func newTestSearcher(t *testing.T, charset string, padding, w, h int) *layoutSearcher {
	t.Helper()
	rast, err := NewRasterizer(goregular.TTF)
	if err != nil {
		t.Fatalf("NewRasterizer failed: %v", err)
	}
	t.Cleanup(func() { _ = rast.Close() })
	return newLayoutSearcher(rast, []rune(charset), padding, w, h)
}

func TestBuildLayoutFits(t *testing.T) {
	s := newTestSearcher(t, "ABC", 2, 256, 256)
	l := s.build(32)
	if l == nil {
		t.Fatal("3 glyphs at 32pt should fit a 256x256 atlas")
	}
	if l.pointSize != 32 {
		t.Errorf("pointSize = %d, want 32", l.pointSize)
	}
	if len(l.slots) != 3 {
		t.Errorf("slots = %d, want 3", len(l.slots))
	}
	if len(l.placements) != 3 {
		t.Errorf("placements = %d, want 3", len(l.placements))
	}
	if l.ascent <= 0 || l.descent <= 0 {
		t.Errorf("ascent/descent = %d/%d, want positive", l.ascent, l.descent)
	}
}

func TestBuildLayoutOverflow(t *testing.T) {
	s := newTestSearcher(t, "ABCDEFGHIJKLMNOP", 16, 64, 64)
	if l := s.build(64); l != nil {
		t.Fatal("16 padded glyphs at 64pt cannot fit a 64x64 atlas")
	}
	// The negative result is memoized too.
	if _, ok := s.cache[64]; !ok {
		t.Error("overflow result not cached")
	}
}

func TestBuildLayoutCaches(t *testing.T) {
	s := newTestSearcher(t, "AB", 2, 256, 256)
	first := s.build(24)
	second := s.build(24)
	if first == nil || first != second {
		t.Error("repeated build did not return the cached layout")
	}
}

func TestSearchFixedDegradesGracefully(t *testing.T) {
	// 96pt overflows a 128x128 atlas with this charset but a ladder
	// candidate below it fits.
	s := newTestSearcher(t, "ABCDEFGH", 2, 128, 128)
	l := s.search(96)
	if l == nil {
		t.Fatal("expected some ladder candidate to fit")
	}
	if l.pointSize >= 96 {
		if s.build(96) == nil {
			t.Errorf("selected %dpt although 96pt overflows", l.pointSize)
		}
	}
	if l.pointSize < 8 {
		t.Errorf("selected %dpt, below the minimum", l.pointSize)
	}
}

func TestSearchFixedPrefersRequested(t *testing.T) {
	s := newTestSearcher(t, "AB", 2, 512, 512)
	l := s.search(64)
	if l == nil {
		t.Fatal("2 glyphs at 64pt should fit a 512x512 atlas")
	}
	if l.pointSize != 64 {
		t.Errorf("pointSize = %d, want the requested 64", l.pointSize)
	}
}

// The binary search must find the same maximum a linear scan finds.
func TestSearchAutoMatchesLinearScan(t *testing.T) {
	if testing.Short() {
		t.Skip("linear scan over the full point-size range")
	}

	auto := newTestSearcher(t, "ABCdef", 2, 128, 128)
	selected := auto.search(0)
	if selected == nil {
		t.Fatal("auto search found no layout")
	}

	linear := newTestSearcher(t, "ABCdef", 2, 128, 128)
	best := 0
	for ps := 8; ps <= 512; ps++ {
		if linear.build(ps) != nil {
			best = ps
		}
	}
	if selected.pointSize != best {
		t.Errorf("auto selected %dpt, linear scan max is %dpt", selected.pointSize, best)
	}
}

func TestSearchAutoNoFit(t *testing.T) {
	// Even 8pt cannot pack this many padded glyphs into 64x64.
	s := newTestSearcher(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", 16, 64, 64)
	if l := s.search(0); l != nil {
		t.Fatalf("expected no fit, got %dpt", l.pointSize)
	}
}

func TestZeroSizeSlotsGetUnitRects(t *testing.T) {
	s := newTestSearcher(t, " A", 4, 256, 256)
	l := s.build(32)
	if l == nil {
		t.Fatal("layout should fit")
	}
	p, ok := l.placements[0] // the space
	if !ok {
		t.Fatal("space has no placement")
	}
	if p.Width != 1 || p.Height != 1 {
		t.Errorf("space rect = %dx%d, want 1x1", p.Width, p.Height)
	}
}
