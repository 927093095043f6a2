package atlas

import (
	"fmt"
	"image"
	"sort"

	tmpatlas "github.com/gogpu/tmpatlas"
	"github.com/gogpu/tmpatlas/tmp"
)

// RenderMode selects the atlas payload: distance fields or raw coverage.
type RenderMode string

const (
	RenderModeSDF    RenderMode = "sdf"
	RenderModeRaster RenderMode = "raster"
)

// wire returns the metadata record's render-mode value.
func (m RenderMode) wire() tmp.Int {
	if m == RenderModeRaster {
		return tmp.RenderModeRaster
	}
	return tmp.RenderModeSDF
}

// Config controls one synthesis run. Out-of-range values are clamped, not
// rejected: padding to [1,64], atlas dimensions to [64,8192], and a fixed
// point size to [8,512]. A PointSize of zero selects the largest fitting
// size automatically.
type Config struct {
	PointSize   int
	Padding     int
	AtlasWidth  int
	AtlasHeight int
	Mode        RenderMode
}

// DefaultConfig returns the standard synthesis configuration: automatic
// point size, padding 7, a 4096x4096 atlas, SDF payload.
func DefaultConfig() Config {
	return Config{
		PointSize:   0,
		Padding:     7,
		AtlasWidth:  4096,
		AtlasHeight: 4096,
		Mode:        RenderModeSDF,
	}
}

func (c *Config) clamp() {
	if c.PointSize > 0 {
		c.PointSize = clamp(c.PointSize, 8, 512)
	}
	c.Padding = clamp(c.Padding, 1, 64)
	c.AtlasWidth = clamp(c.AtlasWidth, 64, 8192)
	c.AtlasHeight = clamp(c.AtlasHeight, 64, 8192)
	if c.Mode != RenderModeRaster {
		c.Mode = RenderModeSDF
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Compose synthesizes a complete font-asset package from font data and a
// charset: it selects a point size (see the search rules on Config),
// measures and packs every glyph, renders coverage or SDF tiles into the
// atlas alpha channel, and assembles the metadata record with glyph,
// character, and face tables.
//
// fontName seeds the family-name fallback when the font's name table is
// unreadable. The charset must be non-empty (ErrEmptyCharset) and some
// point size must fit (ErrNoFit).
//
// Glyph rects are recorded in bottom-left-origin atlas coordinates, the
// convention the new-schema consumers sample with, while packing and
// rendering work top-down. Glyph indices are assigned sequentially in
// charset order.
func Compose(ttf []byte, fontName string, charset []rune, cfg Config) (*tmp.FontAssetPackage, error) {
	if len(charset) == 0 {
		return nil, ErrEmptyCharset
	}
	cfg.clamp()

	rast, err := NewRasterizer(ttf)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rast.Close() }()

	identity := Identify(ttf, fontName)

	searcher := newLayoutSearcher(rast, charset, cfg.Padding, cfg.AtlasWidth, cfg.AtlasHeight)
	selected := searcher.search(cfg.PointSize)
	if selected == nil {
		return nil, fmt.Errorf("%w: %d codepoints in %dx%d", ErrNoFit, len(charset), cfg.AtlasWidth, cfg.AtlasHeight)
	}
	if err := rast.SetPointSize(selected.pointSize); err != nil {
		return nil, err
	}

	alpha := image.NewAlpha(image.Rect(0, 0, cfg.AtlasWidth, cfg.AtlasHeight))
	glyphTable := make([]tmp.Glyph, 0, len(selected.slots))
	charTable := make([]tmp.Character, 0, len(selected.slots))

	for _, slot := range selected.slots {
		placement, ok := selected.placements[slot.index]
		if !ok {
			continue
		}

		glyphX := placement.X
		glyphYTop := placement.Y
		rectW, rectH := 1, 1

		if slot.width > 0 && slot.height > 0 {
			tile := renderTile(rast, slot, placement, cfg.Padding)
			if cfg.Mode == RenderModeSDF {
				tile = SDFTile(tile, placement.Width, placement.Height, cfg.Padding)
			}
			blendTileMax(alpha, tile, placement)

			offsetX := min(cfg.Padding, max(0, placement.Width-slot.width))
			offsetY := min(cfg.Padding, max(0, placement.Height-slot.height))
			glyphX = placement.X + offsetX
			glyphYTop = placement.Y + offsetY
			rectW, rectH = slot.width, slot.height
		}

		glyphTable = append(glyphTable, tmp.Glyph{
			Index:   tmp.Int(slot.index),
			Metrics: slot.metrics,
			Rect: tmp.GlyphRect{
				X:      tmp.Int(glyphX),
				Y:      tmp.Int(cfg.AtlasHeight - glyphYTop - rectH),
				Width:  tmp.Int(rectW),
				Height: tmp.Int(rectH),
			},
			Scale:               1.0,
			AtlasIndex:          0,
			ClassDefinitionType: 0,
		})
		charTable = append(charTable, tmp.Character{
			ElementType: 1,
			Unicode:     tmp.Int(slot.unicode),
			GlyphIndex:  tmp.Int(slot.index),
			Scale:       1.0,
		})
	}

	sort.SliceStable(glyphTable, func(i, j int) bool { return glyphTable[i].Index < glyphTable[j].Index })
	sort.SliceStable(charTable, func(i, j int) bool { return charTable[i].Unicode < charTable[j].Unicode })

	usedRects := make([]tmp.GlyphRect, 0, len(selected.usedRects))
	for _, p := range selected.usedRects {
		usedRects = append(usedRects, tmp.GlyphRect{
			X:      tmp.Int(p.X),
			Y:      tmp.Int(p.Y),
			Width:  tmp.Int(p.Width),
			Height: tmp.Int(p.Height),
		})
	}

	renderMode := cfg.Mode.wire()
	record := tmp.Record{
		FaceInfo:        buildFaceInfo(rast, identity, selected),
		GlyphTable:      glyphTable,
		CharacterTable:  charTable,
		AtlasTextures:   []tmp.PPtr{{}},
		AtlasWidth:      tmp.Int(cfg.AtlasWidth),
		AtlasHeight:     tmp.Int(cfg.AtlasHeight),
		AtlasPadding:    tmp.Int(cfg.Padding),
		AtlasRenderMode: renderMode,
		UsedGlyphRects:  usedRects,
		FreeGlyphRects:  []tmp.GlyphRect{},
		FontWeightTable: nil,
	}

	tmpatlas.Logger().Info("atlas composed",
		"pointSize", selected.pointSize,
		"atlas", fmt.Sprintf("%dx%d", cfg.AtlasWidth, cfg.AtlasHeight),
		"glyphs", len(glyphTable),
		"mode", string(cfg.Mode))

	return &tmp.FontAssetPackage{
		Record:   record,
		Atlas:    alphaToNRGBA(alpha),
		Material: tmp.NewMaterial(renderMode, cfg.Padding, cfg.AtlasWidth, cfg.AtlasHeight),
	}, nil
}

// renderTile renders one glyph's coverage into a placement-sized tile,
// inset by the padding offset. The glyph box is clipped to the tile when a
// hinted re-render comes out larger than the measured box.
func renderTile(rast *Rasterizer, slot glyphSlot, placement Placement, padding int) []uint8 {
	tile := make([]uint8, placement.Width*placement.Height)

	mask := rast.Mask(slot.unicode)
	if mask == nil {
		return tile
	}
	maskW := mask.Rect.Dx()
	maskH := mask.Rect.Dy()

	copyW := min(slot.width, maskW)
	copyH := min(slot.height, maskH)
	offsetX := min(padding, max(0, placement.Width-slot.width))
	offsetY := min(padding, max(0, placement.Height-slot.height))

	for y := 0; y < copyH; y++ {
		srcRow := mask.Pix[y*mask.Stride : y*mask.Stride+copyW]
		dstRow := tile[(offsetY+y)*placement.Width+offsetX:]
		copy(dstRow[:copyW], srcRow)
	}
	return tile
}

// blendTileMax writes a tile into the atlas alpha channel with per-pixel
// max, so overlapping padded rects reinforce instead of overwrite.
func blendTileMax(dst *image.Alpha, tile []uint8, placement Placement) {
	for y := 0; y < placement.Height; y++ {
		dstRow := dst.Pix[(placement.Y+y)*dst.Stride+placement.X:]
		srcRow := tile[y*placement.Width : (y+1)*placement.Width]
		for x, v := range srcRow {
			if v > dstRow[x] {
				dstRow[x] = v
			}
		}
	}
}

// buildFaceInfo derives face-level metrics from the selected layout.
// Cap and mean lines come from the measured tops of 'H' and 'x'; fonts
// missing either fall back to ascent-derived estimates.
func buildFaceInfo(rast *Rasterizer, identity FontIdentity, selected *layout) *tmp.FaceInfo {
	ascent := float64(selected.ascent)
	descentLine := float64(-selected.descent)
	pointSize := float64(selected.pointSize)

	capLine := ascent
	if _, h, m := rast.Measure('H'); h > 0 {
		capLine = m.HorizontalBearingY
	}
	meanLine := ascent * 0.5
	if _, h, m := rast.Measure('x'); h > 0 {
		meanLine = m.HorizontalBearingY
	}

	underlineThickness := pointSize * 0.06
	if underlineThickness < 1 {
		underlineThickness = 1
	}
	strikethroughOffset := ascent * 0.4
	if capLine != 0 {
		strikethroughOffset = capLine / 2.5
	}

	return &tmp.FaceInfo{
		FaceIndex:              0,
		FamilyName:             identity.FamilyName,
		StyleName:              identity.StyleName,
		PointSize:              tmp.Int(selected.pointSize),
		Scale:                  1.0,
		UnitsPerEM:             tmp.Int(identity.UnitsPerEM),
		LineHeight:             float64(selected.ascent + selected.descent),
		AscentLine:             ascent,
		CapLine:                capLine,
		MeanLine:               meanLine,
		Baseline:               0.0,
		DescentLine:            descentLine,
		SuperscriptOffset:      ascent * 0.5,
		SuperscriptSize:        0.5,
		SubscriptOffset:        descentLine * 0.5,
		SubscriptSize:          0.5,
		UnderlineOffset:        descentLine * 0.5,
		UnderlineThickness:     underlineThickness,
		StrikethroughOffset:    strikethroughOffset,
		StrikethroughThickness: underlineThickness,
		TabWidth:               pointSize * 0.5,
	}
}

// alphaToNRGBA expands an alpha mask into the persisted RGBA layout: RGB
// zero, coverage in the alpha channel.
func alphaToNRGBA(alpha *image.Alpha) *image.NRGBA {
	bounds := alpha.Rect
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		aRow := alpha.Pix[(y-bounds.Min.Y)*alpha.Stride:]
		oRow := out.Pix[(y-bounds.Min.Y)*out.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			oRow[x*4+3] = aRow[x]
		}
	}
	return out
}
