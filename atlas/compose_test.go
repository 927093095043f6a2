package atlas

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/tmpatlas/tmp"
)

func composeTestConfig() Config {
	return Config{
		PointSize:   32,
		Padding:     4,
		AtlasWidth:  512,
		AtlasHeight: 512,
		Mode:        RenderModeSDF,
	}
}

func TestComposeEmptyCharset(t *testing.T) {
	_, err := Compose(goregular.TTF, "Go", nil, composeTestConfig())
	if !errors.Is(err, ErrEmptyCharset) {
		t.Fatalf("got %v, want ErrEmptyCharset", err)
	}
}

func TestComposeInvalidFont(t *testing.T) {
	_, err := Compose([]byte("nope"), "X", []rune("A"), composeTestConfig())
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestComposeNoFit(t *testing.T) {
	charset := []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")
	cfg := Config{
		PointSize:   0,
		Padding:     20,
		AtlasWidth:  64,
		AtlasHeight: 64,
		Mode:        RenderModeSDF,
	}
	_, err := Compose(goregular.TTF, "Go", charset, cfg)
	if !errors.Is(err, ErrNoFit) {
		t.Fatalf("got %v, want ErrNoFit", err)
	}
}

func TestComposeTables(t *testing.T) {
	charset := []rune("Hxyz 09")
	pkg, err := Compose(goregular.TTF, "Go", charset, composeTestConfig())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	rec := &pkg.Record

	if len(rec.GlyphTable) != len(charset) {
		t.Fatalf("glyph table has %d entries, want %d", len(rec.GlyphTable), len(charset))
	}
	if len(rec.CharacterTable) != len(rec.GlyphTable) {
		t.Fatalf("character table has %d entries, glyph table %d", len(rec.CharacterTable), len(rec.GlyphTable))
	}

	// Dense sequential indices, tables sorted.
	for i, g := range rec.GlyphTable {
		if int(g.Index) != i {
			t.Errorf("glyph %d has index %d", i, g.Index)
		}
		if g.Scale != 1.0 {
			t.Errorf("glyph %d scale = %g", i, g.Scale)
		}
	}
	for i := 1; i < len(rec.CharacterTable); i++ {
		if rec.CharacterTable[i].Unicode < rec.CharacterTable[i-1].Unicode {
			t.Fatal("character table not sorted by unicode")
		}
	}

	// Every character resolves to a glyph.
	byIndex := make(map[tmp.Int]tmp.Glyph)
	for _, g := range rec.GlyphTable {
		byIndex[g.Index] = g
	}
	for _, c := range rec.CharacterTable {
		if _, ok := byIndex[c.GlyphIndex]; !ok {
			t.Errorf("character U+%04X references missing glyph %d", int(c.Unicode), c.GlyphIndex)
		}
		if c.ElementType != 1 {
			t.Errorf("character U+%04X element type = %d", int(c.Unicode), c.ElementType)
		}
	}

	if rec.AtlasRenderMode != tmp.RenderModeSDF {
		t.Errorf("render mode = %d, want %d", rec.AtlasRenderMode, tmp.RenderModeSDF)
	}
	if rec.AtlasWidth != 512 || rec.AtlasHeight != 512 {
		t.Errorf("atlas dims = %dx%d", rec.AtlasWidth, rec.AtlasHeight)
	}
	if rec.AtlasPadding != 4 {
		t.Errorf("padding = %d, want 4", rec.AtlasPadding)
	}
	if len(rec.UsedGlyphRects) != len(charset) {
		t.Errorf("used rects = %d, want %d", len(rec.UsedGlyphRects), len(charset))
	}
	if len(rec.AtlasTextures) != 1 || rec.AtlasTextures[0] != (tmp.PPtr{}) {
		t.Errorf("atlas textures = %v", rec.AtlasTextures)
	}
}

// Glyph rects are bottom-left origin: converting back to top-down
// coordinates must land on atlas ink for visible glyphs.
func TestComposeGlyphRectsAddressInk(t *testing.T) {
	pkg, err := Compose(goregular.TTF, "Go", []rune("AHMW"), composeTestConfig())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	atlasH := int(pkg.Record.AtlasHeight)

	for _, g := range pkg.Record.GlyphTable {
		w, h := int(g.Rect.Width), int(g.Rect.Height)
		if w <= 1 || h <= 1 {
			continue
		}
		yTop := atlasH - int(g.Rect.Y) - h
		ink := false
		for y := yTop; y < yTop+h && !ink; y++ {
			for x := int(g.Rect.X); x < int(g.Rect.X)+w; x++ {
				if pkg.Atlas.NRGBAAt(x, y).A > 127 {
					ink = true
					break
				}
			}
		}
		if !ink {
			t.Errorf("glyph %d rect %+v has no ink above threshold", g.Index, g.Rect)
		}
	}
}

// A charset mixing control, whitespace, and visible codepoints at a
// concrete fixed size.
func TestComposeMixedCharset(t *testing.T) {
	charset := []rune{9, 32, 65, 66, 67, 95}
	cfg := Config{
		PointSize:   48,
		Padding:     5,
		AtlasWidth:  256,
		AtlasHeight: 256,
		Mode:        RenderModeSDF,
	}
	pkg, err := Compose(goregular.TTF, "Go", charset, cfg)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	rec := &pkg.Record

	if rec.AtlasWidth != 256 || rec.AtlasHeight != 256 {
		t.Errorf("atlas dims = %dx%d, want 256x256", rec.AtlasWidth, rec.AtlasHeight)
	}
	if len(rec.GlyphTable) != 6 || len(rec.CharacterTable) != 6 {
		t.Fatalf("tables = %d/%d, want 6/6", len(rec.GlyphTable), len(rec.CharacterTable))
	}
	seen := make(map[tmp.Int]bool)
	for _, c := range rec.CharacterTable {
		if seen[c.GlyphIndex] {
			t.Errorf("glyph index %d referenced twice", c.GlyphIndex)
		}
		seen[c.GlyphIndex] = true
	}
	bearing := false
	for _, g := range rec.GlyphTable {
		if g.Metrics.HorizontalBearingY > 0 {
			bearing = true
			break
		}
	}
	if !bearing {
		t.Error("no glyph with positive vertical bearing")
	}
	ink := false
	for i := 3; i < len(pkg.Atlas.Pix); i += 4 {
		if pkg.Atlas.Pix[i] != 0 {
			ink = true
			break
		}
	}
	if !ink {
		t.Error("atlas alpha channel is empty")
	}
}

func TestComposeDeterministic(t *testing.T) {
	charset := []rune("Deter01")
	first, err := Compose(goregular.TTF, "Go", charset, composeTestConfig())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	second, err := Compose(goregular.TTF, "Go", charset, composeTestConfig())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	a, err := json.Marshal(&first.Record)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(&second.Record)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("records differ between identical runs")
	}
	if !bytes.Equal(first.Atlas.Pix, second.Atlas.Pix) {
		t.Error("atlas pixels differ between identical runs")
	}
}

func TestComposeFaceInfo(t *testing.T) {
	pkg, err := Compose(goregular.TTF, "Go", []rune("Hx"), composeTestConfig())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	face := pkg.Record.FaceInfo
	if face == nil {
		t.Fatal("no face info")
	}
	if face.PointSize != 32 {
		t.Errorf("point size = %d, want 32", face.PointSize)
	}
	if face.AscentLine <= 0 {
		t.Errorf("ascent = %g, want positive", face.AscentLine)
	}
	if face.DescentLine >= 0 {
		t.Errorf("descent line = %g, want negative", face.DescentLine)
	}
	if face.LineHeight != face.AscentLine-face.DescentLine {
		t.Errorf("line height %g != ascent %g - descent %g", face.LineHeight, face.AscentLine, face.DescentLine)
	}
	// Cap and mean line come from 'H' and 'x'; for a latin face the cap
	// must clear the mean.
	if face.CapLine <= face.MeanLine {
		t.Errorf("cap line %g not above mean line %g", face.CapLine, face.MeanLine)
	}
	if face.UnderlineThickness < 1 {
		t.Errorf("underline thickness = %g, want >= 1", face.UnderlineThickness)
	}
	if face.TabWidth != 16 {
		t.Errorf("tab width = %g, want 16", face.TabWidth)
	}
	if face.FamilyName == "" {
		t.Error("family name empty")
	}
}

func TestComposeRasterMode(t *testing.T) {
	cfg := composeTestConfig()
	cfg.Mode = RenderModeRaster
	pkg, err := Compose(goregular.TTF, "Go", []rune("A"), cfg)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if pkg.Record.AtlasRenderMode != tmp.RenderModeRaster {
		t.Errorf("render mode = %d, want %d", pkg.Record.AtlasRenderMode, tmp.RenderModeRaster)
	}
	if v, ok := pkg.Material.Float(tmp.PropGradientScale); !ok || v != 1.0 {
		t.Errorf("raster gradient scale = %g, want 1", v)
	}

	// Raster coverage is binary-ish at the edges; the glyph interior must
	// carry full coverage somewhere.
	full := false
	for _, px := range pkg.Atlas.Pix {
		if px == 255 {
			full = true
			break
		}
	}
	if !full {
		t.Error("raster atlas has no fully covered pixel")
	}
}

func TestComposeSDFMaterial(t *testing.T) {
	pkg, err := Compose(goregular.TTF, "Go", []rune("A"), composeTestConfig())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if v, _ := pkg.Material.Float(tmp.PropGradientScale); v != 5.0 {
		t.Errorf("gradient scale = %g, want padding+1 = 5", v)
	}
	if v, _ := pkg.Material.Float(tmp.PropTextureWidth); v != 512 {
		t.Errorf("texture width = %g, want 512", v)
	}
	if v, _ := pkg.Material.Float(tmp.PropTextureHeight); v != 512 {
		t.Errorf("texture height = %g, want 512", v)
	}
}

func TestComposeClampsConfig(t *testing.T) {
	cfg := Config{
		PointSize:   4, // below minimum, clamped to 8
		Padding:     0, // clamped to 1
		AtlasWidth:  32,
		AtlasHeight: 32, // clamped to 64
		Mode:        RenderMode("bogus"),
	}
	pkg, err := Compose(goregular.TTF, "Go", []rune("i"), cfg)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if pkg.Record.FaceInfo.PointSize != 8 {
		t.Errorf("point size = %d, want clamped 8", pkg.Record.FaceInfo.PointSize)
	}
	if pkg.Record.AtlasPadding != 1 {
		t.Errorf("padding = %d, want clamped 1", pkg.Record.AtlasPadding)
	}
	if pkg.Record.AtlasWidth != 64 || pkg.Record.AtlasHeight != 64 {
		t.Errorf("atlas dims = %dx%d, want 64x64", pkg.Record.AtlasWidth, pkg.Record.AtlasHeight)
	}
	if pkg.Record.AtlasRenderMode != tmp.RenderModeSDF {
		t.Errorf("render mode = %d, want SDF default", pkg.Record.AtlasRenderMode)
	}
}

func BenchmarkCompose(b *testing.B) {
	charset := []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")
	cfg := Config{PointSize: 24, Padding: 4, AtlasWidth: 1024, AtlasHeight: 1024, Mode: RenderModeSDF}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compose(goregular.TTF, "Go", charset, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
