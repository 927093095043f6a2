package tmp

// FaceInfoToFontInfo maps new-schema face metrics onto the old schema.
// The old schema carries atlas geometry inline, so padding and atlas
// dimensions travel with the face. CharacterCount is left at zero; callers
// set it once the glyph list is known.
func FaceInfoToFontInfo(face *FaceInfo, atlasPadding, atlasWidth, atlasHeight Int) *FontInfo {
	if face == nil {
		face = &FaceInfo{}
	}
	return &FontInfo{
		Name:                   face.FamilyName,
		PointSize:              float64(face.PointSize),
		Scale:                  face.Scale,
		CharacterCount:         0,
		LineHeight:             face.LineHeight,
		Baseline:               face.Baseline,
		Ascender:               face.AscentLine,
		CapHeight:              face.CapLine,
		Descender:              face.DescentLine,
		CenterLine:             face.MeanLine,
		SuperscriptOffset:      face.SuperscriptOffset,
		SubscriptOffset:        face.SubscriptOffset,
		SubSize:                face.SubscriptSize,
		Underline:              face.UnderlineOffset,
		UnderlineThickness:     face.UnderlineThickness,
		Strikethrough:          face.StrikethroughOffset,
		StrikethroughThickness: face.StrikethroughThickness,
		TabWidth:               face.TabWidth,
		Padding:                float64(atlasPadding),
		AtlasWidth:             atlasWidth,
		AtlasHeight:            atlasHeight,
	}
}

// FontInfoToFaceInfo maps old-schema face metrics onto the new schema.
// Fields the old schema never recorded (units per em, superscript size)
// get the documented defaults.
func FontInfoToFaceInfo(info *FontInfo) *FaceInfo {
	if info == nil {
		info = &FontInfo{}
	}
	scale := info.Scale
	if scale == 0 {
		scale = 1.0
	}
	subSize := info.SubSize
	if subSize == 0 {
		subSize = 0.5
	}
	return &FaceInfo{
		FaceIndex:              0,
		FamilyName:             info.Name,
		StyleName:              "regular",
		PointSize:              Int(info.PointSize),
		Scale:                  scale,
		UnitsPerEM:             0,
		LineHeight:             info.LineHeight,
		AscentLine:             info.Ascender,
		CapLine:                info.CapHeight,
		MeanLine:               info.CenterLine,
		Baseline:               info.Baseline,
		DescentLine:            info.Descender,
		SuperscriptOffset:      info.SuperscriptOffset,
		SuperscriptSize:        0.5,
		SubscriptOffset:        info.SubscriptOffset,
		SubscriptSize:          subSize,
		UnderlineOffset:        info.Underline,
		UnderlineThickness:     info.UnderlineThickness,
		StrikethroughOffset:    info.Strikethrough,
		StrikethroughThickness: info.StrikethroughThickness,
		TabWidth:               info.TabWidth,
	}
}

// GlyphsToOld flattens paired glyph/character tables into the old-schema
// glyph-info list, one entry per character-table row keyed by its Unicode
// value. When flipY is set, rect Y is remapped from a bottom-left to a
// top-left atlas origin (or vice versa) as atlasHeight - y - height.
func GlyphsToOld(glyphs []Glyph, chars []Character, atlasHeight int, flipY bool) []OldGlyph {
	byIndex := make(map[Int]*Glyph, len(glyphs))
	for i := range glyphs {
		byIndex[glyphs[i].Index] = &glyphs[i]
	}

	out := make([]OldGlyph, 0, len(chars))
	for _, ch := range chars {
		g := byIndex[ch.GlyphIndex]
		if g == nil {
			g = &Glyph{}
		}
		rectY := float64(g.Rect.Y)
		rectH := float64(g.Rect.Height)
		if flipY && atlasHeight != 0 {
			rectY = float64(atlasHeight) - rectY - rectH
		}
		scale := g.Scale
		if scale == 0 {
			scale = 1.0
		}
		out = append(out, OldGlyph{
			ID:       ch.Unicode,
			X:        float64(g.Rect.X),
			Y:        rectY,
			Width:    g.Metrics.Width,
			Height:   g.Metrics.Height,
			XOffset:  g.Metrics.HorizontalBearingX,
			YOffset:  g.Metrics.HorizontalBearingY,
			XAdvance: g.Metrics.HorizontalAdvance,
			Scale:    scale,
		})
	}
	return out
}

// GlyphsToNew expands an old-schema glyph-info list into paired glyph and
// character tables. The old schema has no independent glyph identity, so
// each entry is assigned a fresh sequential glyph index with no
// de-duplication across visually identical glyphs.
func GlyphsToNew(list []OldGlyph) ([]Glyph, []Character) {
	glyphs := make([]Glyph, 0, len(list))
	chars := make([]Character, 0, len(list))
	for i, og := range list {
		scale := og.Scale
		if scale == 0 {
			scale = 1.0
		}
		glyphs = append(glyphs, Glyph{
			Index: Int(i),
			Metrics: GlyphMetrics{
				Width:              og.Width,
				Height:             og.Height,
				HorizontalBearingX: og.XOffset,
				HorizontalBearingY: og.YOffset,
				HorizontalAdvance:  og.XAdvance,
			},
			Rect: GlyphRect{
				X:      Int(og.X),
				Y:      Int(og.Y),
				Width:  Int(og.Width),
				Height: Int(og.Height),
			},
			Scale:               scale,
			AtlasIndex:          0,
			ClassDefinitionType: 0,
		})
		chars = append(chars, Character{
			ElementType: 1,
			Unicode:     og.ID,
			GlyphIndex:  Int(i),
			Scale:       1.0,
		})
	}
	return glyphs, chars
}
