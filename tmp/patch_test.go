package tmp

import (
	"math"
	"testing"
)

func sampleReplacement() *Record {
	glyphs, chars := sampleNewGlyphs()
	return &Record{
		FaceInfo: &FaceInfo{
			FamilyName:         "Repl",
			PointSize:          64,
			Scale:              1.0,
			LineHeight:         75,
			AscentLine:         60,
			DescentLine:        -15,
			UnderlineOffset:    -7.5,
			UnderlineThickness: 3.84,
			TabWidth:           32,
		},
		GlyphTable:      glyphs,
		CharacterTable:  chars,
		AtlasTextures:   []PPtr{{}},
		AtlasWidth:      128,
		AtlasHeight:     128,
		AtlasPadding:    5,
		AtlasRenderMode: RenderModeSDF,
	}
}

func sampleOldGame() *Record {
	return &Record{
		FontInfo: &FontInfo{
			Name:       "Game",
			PointSize:  32,
			Scale:      1.0,
			SubSize:    0.5,
			LineHeight: 36,
			Ascender:   28,
			Descender:  -8,
			Baseline:   0,
		},
		GlyphInfoList:    []OldGlyph{{ID: 65}},
		Atlas:            &PPtr{PathID: 555},
		CreationSettings: &CreationSettings{PointSize: 32, Padding: 3, AtlasWidth: 256, AtlasHeight: 256, CharacterSequence: "AB"},
	}
}

func TestSpliceOldScalesLineMetrics(t *testing.T) {
	out := SpliceOld(sampleReplacement(), sampleOldGame(), nil, Options{MaterialScaleByPadding: true, YFlip: YFlipNever})

	if out.FontInfo == nil {
		t.Fatal("no font info")
	}
	// Game metrics scaled by replacement/game point size = 64/32 = 2.
	if out.FontInfo.LineHeight != 72 {
		t.Errorf("line height = %g, want 72", out.FontInfo.LineHeight)
	}
	if out.FontInfo.Ascender != 56 || out.FontInfo.Descender != -16 {
		t.Errorf("ascender/descender = %g/%g", out.FontInfo.Ascender, out.FontInfo.Descender)
	}
	// Point size stays the replacement's.
	if out.FontInfo.PointSize != 64 {
		t.Errorf("point size = %g, want replacement 64", out.FontInfo.PointSize)
	}
	// Ratio fields are never scaled.
	if out.FontInfo.Scale != 1.0 || out.FontInfo.SubSize != 0.5 {
		t.Errorf("scale/subsize = %g/%g", out.FontInfo.Scale, out.FontInfo.SubSize)
	}
	if int(out.FontInfo.CharacterCount) != len(out.GlyphInfoList) {
		t.Errorf("character count = %d, glyphs = %d", out.FontInfo.CharacterCount, len(out.GlyphInfoList))
	}
}

func TestSpliceOldGameLineMetricsVerbatim(t *testing.T) {
	out := SpliceOld(sampleReplacement(), sampleOldGame(), nil, Options{UseGameLineMetrics: true, YFlip: YFlipNever})
	if out.FontInfo.LineHeight != 36 || out.FontInfo.Ascender != 28 {
		t.Errorf("line metrics = %g/%g, want game values unscaled", out.FontInfo.LineHeight, out.FontInfo.Ascender)
	}
	// Creation settings keep the game padding in this mode.
	if out.CreationSettings.Padding != 3 {
		t.Errorf("padding = %d, want game 3", out.CreationSettings.Padding)
	}
}

func TestSpliceOldGlyphListAndSettings(t *testing.T) {
	out := SpliceOld(sampleReplacement(), sampleOldGame(), nil, Options{YFlip: YFlipNever})

	if len(out.GlyphInfoList) != 2 {
		t.Fatalf("glyph list = %d entries", len(out.GlyphInfoList))
	}
	if out.Atlas == nil || out.Atlas.PathID != 555 {
		t.Errorf("atlas reference = %v, want game's", out.Atlas)
	}

	cs := out.CreationSettings
	if cs == nil {
		t.Fatal("no creation settings")
	}
	if cs.AtlasWidth != 128 || cs.AtlasHeight != 128 {
		t.Errorf("settings atlas = %dx%d, want replacement 128x128", cs.AtlasWidth, cs.AtlasHeight)
	}
	if cs.PointSize != 64 {
		t.Errorf("settings point size = %d", cs.PointSize)
	}
	if cs.Padding != 5 {
		t.Errorf("settings padding = %d, want replacement 5", cs.Padding)
	}
	if cs.CharacterSequence != "" {
		t.Errorf("character sequence = %q, want cleared", cs.CharacterSequence)
	}
}

func TestSpliceOldYFlipAlways(t *testing.T) {
	out := SpliceOld(sampleReplacement(), sampleOldGame(), nil, Options{YFlip: YFlipAlways})
	// First glyph rect Y=50 H=30 in a 128-high atlas.
	if out.GlyphInfoList[0].Y != 128-50-30 {
		t.Errorf("flipped y = %g, want %d", out.GlyphInfoList[0].Y, 128-50-30)
	}
}

func TestSpliceNewScalesLineMetrics(t *testing.T) {
	game := &Record{
		FaceInfo: &FaceInfo{
			FamilyName:  "Game",
			PointSize:   32,
			Scale:       1.0,
			LineHeight:  36,
			AscentLine:  28,
			DescentLine: -8,
		},
		GlyphTable:       []Glyph{{Index: 0}},
		AtlasTextures:    []PPtr{{PathID: 900}},
		FontInfo:         &FontInfo{Name: "Game", PointSize: 32},
		CreationSettings: &CreationSettings{PointSize: 32, CharacterSequence: "AB"},
	}
	out := SpliceNew(sampleReplacement(), game, Options{})

	if out.FaceInfo.LineHeight != 72 || out.FaceInfo.AscentLine != 56 {
		t.Errorf("scaled metrics = %g/%g", out.FaceInfo.LineHeight, out.FaceInfo.AscentLine)
	}
	if out.FaceInfo.PointSize != 64 {
		t.Errorf("point size = %d, want replacement 64", out.FaceInfo.PointSize)
	}
	if len(out.GlyphTable) != 2 || len(out.CharacterTable) != 2 {
		t.Errorf("tables = %d/%d", len(out.GlyphTable), len(out.CharacterTable))
	}
	// The runtime texture link survives.
	if out.AtlasTextures[0].PathID != 900 {
		t.Errorf("atlas texture = %v, want game reference", out.AtlasTextures[0])
	}
	// A legacy old-schema face is kept in sync when the game carries one.
	if out.FontInfo == nil || out.FontInfo.PointSize != 64 {
		t.Errorf("legacy font info = %+v", out.FontInfo)
	}
	if int(out.FontInfo.CharacterCount) != len(out.CharacterTable) {
		t.Errorf("legacy character count = %d", out.FontInfo.CharacterCount)
	}
	if out.CreationSettings.CharacterSequence != "" {
		t.Error("character sequence not cleared")
	}
}

func TestSpliceNewWithoutGame(t *testing.T) {
	out := SpliceNew(sampleReplacement(), nil, Options{})
	if out.FaceInfo.LineHeight != 75 {
		t.Errorf("line height = %g, want replacement 75", out.FaceInfo.LineHeight)
	}
	if out.FontInfo != nil {
		t.Error("legacy font info created without a game record carrying one")
	}
	if out.CreationSettings != nil {
		t.Error("creation settings created from nothing")
	}
}

func TestMetricScale(t *testing.T) {
	if got := metricScale(32, 64); got != 2 {
		t.Errorf("scale = %g, want 2", got)
	}
	if got := metricScale(0, 64); got != 1 {
		t.Errorf("zero game size scale = %g, want 1", got)
	}
	if got := metricScale(32, 0); got != 1 {
		t.Errorf("zero replacement size scale = %g, want 1", got)
	}
}

func TestMaterialOverridesGameMaterial(t *testing.T) {
	if got := MaterialOverrides(nil, sampleReplacement(), 3, Options{UseGameMaterial: true}); got != nil {
		t.Errorf("overrides = %v, want nil when keeping the game material", got)
	}
}

func TestMaterialOverridesPaddingRatio(t *testing.T) {
	mat := &Material{SavedProperties: SavedProperties{Floats: []FloatProperty{
		{Name: "_GradientScale", Value: 6},
		{Name: "_OutlineWidth", Value: 0.2},
		{Name: "_FaceColor", Value: 1}, // not spread dependent
	}}}
	// Game padding 10, replacement padding 5: ratio 2.
	got := MaterialOverrides(mat, sampleReplacement(), 10, Options{MaterialScaleByPadding: true})

	if got["_GradientScale"] != 12 {
		t.Errorf("_GradientScale = %g, want 12", got["_GradientScale"])
	}
	if math.Abs(got["_OutlineWidth"]-0.4) > 1e-12 {
		t.Errorf("_OutlineWidth = %g, want 0.4", got["_OutlineWidth"])
	}
	if got["_FaceColor"] != 1 {
		t.Errorf("_FaceColor = %g, want untouched", got["_FaceColor"])
	}
}

func TestMaterialOverridesScalingDisabled(t *testing.T) {
	mat := &Material{SavedProperties: SavedProperties{Floats: []FloatProperty{
		{Name: "_GradientScale", Value: 6},
	}}}
	got := MaterialOverrides(mat, sampleReplacement(), 10, Options{})
	if got["_GradientScale"] != 6 {
		t.Errorf("_GradientScale = %g, want unscaled 6", got["_GradientScale"])
	}
}

func TestMaterialOverridesRasterNeutralizes(t *testing.T) {
	repl := sampleReplacement()
	repl.AtlasRenderMode = RenderModeRaster
	mat := &Material{SavedProperties: SavedProperties{Floats: []FloatProperty{
		{Name: "_GradientScale", Value: 6},
		{Name: "_OutlineWidth", Value: 0.2},
	}}}
	got := MaterialOverrides(mat, repl, 10, Options{MaterialScaleByPadding: true})

	if got["_GradientScale"] != 1 {
		t.Errorf("_GradientScale = %g, want neutral 1", got["_GradientScale"])
	}
	if got["_OutlineWidth"] != 0 {
		t.Errorf("_OutlineWidth = %g, want 0", got["_OutlineWidth"])
	}
	// Every spread-dependent float is pinned, present in the source
	// material or not.
	if got["_GlowOuter"] != 0 {
		t.Errorf("_GlowOuter = %g, want 0", got["_GlowOuter"])
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if !opts.MaterialScaleByPadding {
		t.Error("padding scaling not on by default")
	}
	if opts.UseGameMaterial || opts.UseGameLineMetrics {
		t.Error("game-asset reuse on by default")
	}
	if opts.YFlip != YFlipAuto {
		t.Error("yflip default not auto")
	}
}
