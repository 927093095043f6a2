package tmp

import (
	"image"

	tmpatlas "github.com/gogpu/tmpatlas"
)

// YFlipMode controls how new→old conversion resolves the vertical rect
// origin convention.
type YFlipMode int

const (
	// YFlipAuto runs [DetectGlyphYFlip] against the replacement atlas.
	YFlipAuto YFlipMode = iota
	// YFlipNever uses rect Y as-is.
	YFlipNever
	// YFlipAlways flips rect Y as atlasHeight - y - height.
	YFlipAlways
)

// Options collects the splice behavior flags. The zero value keeps
// replacement materials and rescales line metrics; use [DefaultOptions]
// for the recommended defaults (padding-ratio material scaling on).
type Options struct {
	// UseGameMaterial keeps the target's existing material untouched
	// instead of applying the replacement's floats.
	UseGameMaterial bool

	// UseGameLineMetrics copies the target's line metrics verbatim
	// instead of rescaling them by the point-size ratio.
	UseGameLineMetrics bool

	// MaterialScaleByPadding scales spread-dependent material floats by
	// (target padding / replacement padding) so effect sizes stay
	// visually stable across differently padded atlases.
	MaterialScaleByPadding bool

	// YFlip overrides the Y-flip heuristic when the atlas coordinate
	// convention is already known.
	YFlip YFlipMode
}

// DefaultOptions returns the recommended splice options.
func DefaultOptions() Options {
	return Options{MaterialScaleByPadding: true}
}

// metricScale computes the factor applied to size-dependent line metrics
// when a replacement font's point size differs from the target's: the
// target's metrics are multiplied by replacement/target so visual line
// spacing proportion survives the swap. Non-positive sizes disable
// scaling.
func metricScale(gamePointSize, replacementPointSize float64) float64 {
	if gamePointSize > 0 && replacementPointSize > 0 {
		return replacementPointSize / gamePointSize
	}
	return 1.0
}

// SpliceOld builds the old-schema record fields for patching a target
// that uses the old generation: face metrics, the flattened glyph list,
// and updated creation settings. The replacement must already be in
// canonical new-schema form (see [Normalize]); atlas is the replacement's
// atlas image, used by the Y-flip heuristic.
//
// The returned record contains only the fields this conversion produces.
// Unrelated reference fields of the target (object, script, material
// identifiers) are the caller's responsibility to preserve.
func SpliceOld(replacement, game *Record, atlas image.Image, opts Options) *Record {
	if replacement == nil {
		replacement = &Record{}
	}

	info := FaceInfoToFontInfo(replacement.FaceInfo,
		replacement.AtlasPadding, replacement.AtlasWidth, replacement.AtlasHeight)

	var gameInfo *FontInfo
	if game != nil {
		gameInfo = game.FontInfo
	}
	if gameInfo != nil {
		scale := 1.0
		if !opts.UseGameLineMetrics {
			scale = metricScale(gameInfo.PointSize, info.PointSize)
		}
		info.LineHeight = gameInfo.LineHeight * scale
		info.Baseline = gameInfo.Baseline * scale
		info.Ascender = gameInfo.Ascender * scale
		info.CapHeight = gameInfo.CapHeight * scale
		info.Descender = gameInfo.Descender * scale
		info.CenterLine = gameInfo.CenterLine * scale
		info.SuperscriptOffset = gameInfo.SuperscriptOffset * scale
		info.SubscriptOffset = gameInfo.SubscriptOffset * scale
		info.Underline = gameInfo.Underline * scale
		info.UnderlineThickness = gameInfo.UnderlineThickness * scale
		info.Strikethrough = gameInfo.Strikethrough * scale
		info.StrikethroughThickness = gameInfo.StrikethroughThickness * scale
		info.TabWidth = gameInfo.TabWidth * scale
		info.Scale = gameInfo.Scale
		info.SubSize = gameInfo.SubSize
	}

	atlasHeight := int(replacement.AtlasHeight)
	if atlasHeight == 0 && atlas != nil {
		atlasHeight = atlas.Bounds().Dy()
	}

	flip := false
	switch opts.YFlip {
	case YFlipAlways:
		flip = true
	case YFlipAuto:
		flip = DetectGlyphYFlip(replacement.GlyphTable, replacement.CharacterTable, atlas, DefaultYFlipSampleLimit)
	}
	if flip {
		tmpatlas.Logger().Info("applying old-schema coordinate fix (Y-flip)",
			"atlasHeight", atlasHeight)
	}

	glyphList := GlyphsToOld(replacement.GlyphTable, replacement.CharacterTable, atlasHeight, flip)
	info.CharacterCount = Int(len(glyphList))

	out := &Record{
		FontInfo:      info,
		GlyphInfoList: glyphList,
	}
	if game != nil && game.Atlas != nil {
		ref := *game.Atlas
		out.Atlas = &ref
	}
	if game != nil && game.CreationSettings != nil {
		cs := *game.CreationSettings
		cs.AtlasWidth = replacement.AtlasWidth
		cs.AtlasHeight = replacement.AtlasHeight
		cs.PointSize = Int(info.PointSize)
		if !opts.UseGameLineMetrics {
			cs.Padding = Int(info.Padding)
		}
		cs.CharacterSequence = ""
		out.CreationSettings = &cs
	}
	return out
}

// SpliceNew builds the new-schema record fields for patching a target
// that uses the new generation. The replacement must already be in
// canonical new-schema form. As with [SpliceOld], only conversion-owned
// fields are returned; the first atlas-texture reference is carried over
// from the target so the runtime texture link survives the patch.
func SpliceNew(replacement, game *Record, opts Options) *Record {
	if replacement == nil {
		replacement = &Record{}
	}

	face := &FaceInfo{}
	if replacement.FaceInfo != nil {
		*face = *replacement.FaceInfo
	}

	var gameFace *FaceInfo
	if game != nil {
		gameFace = game.FaceInfo
	}
	if gameFace != nil {
		scale := 1.0
		if !opts.UseGameLineMetrics {
			scale = metricScale(float64(gameFace.PointSize), float64(face.PointSize))
		}
		face.LineHeight = gameFace.LineHeight * scale
		face.AscentLine = gameFace.AscentLine * scale
		face.CapLine = gameFace.CapLine * scale
		face.MeanLine = gameFace.MeanLine * scale
		face.Baseline = gameFace.Baseline * scale
		face.DescentLine = gameFace.DescentLine * scale
		face.SuperscriptOffset = gameFace.SuperscriptOffset * scale
		face.SubscriptOffset = gameFace.SubscriptOffset * scale
		face.UnderlineOffset = gameFace.UnderlineOffset * scale
		face.UnderlineThickness = gameFace.UnderlineThickness * scale
		face.StrikethroughOffset = gameFace.StrikethroughOffset * scale
		face.StrikethroughThickness = gameFace.StrikethroughThickness * scale
		face.TabWidth = gameFace.TabWidth * scale
		face.Scale = gameFace.Scale
		face.SuperscriptSize = gameFace.SuperscriptSize
		face.SubscriptSize = gameFace.SubscriptSize
	}

	out := &Record{
		FaceInfo:        face,
		GlyphTable:      append([]Glyph(nil), replacement.GlyphTable...),
		CharacterTable:  append([]Character(nil), replacement.CharacterTable...),
		AtlasWidth:      replacement.AtlasWidth,
		AtlasHeight:     replacement.AtlasHeight,
		AtlasPadding:    replacement.AtlasPadding,
		AtlasRenderMode: replacement.AtlasRenderMode,
		UsedGlyphRects:  append([]GlyphRect(nil), replacement.UsedGlyphRects...),
		FreeGlyphRects:  append([]GlyphRect(nil), replacement.FreeGlyphRects...),
		FontWeightTable: cloneRaw(replacement.FontWeightTable),
	}
	if out.AtlasRenderMode == 0 {
		out.AtlasRenderMode = RenderModeSDF
	}

	out.AtlasTextures = append([]PPtr(nil), replacement.AtlasTextures...)
	if len(out.AtlasTextures) == 0 {
		out.AtlasTextures = []PPtr{{}}
	}
	if game != nil && len(game.AtlasTextures) > 0 {
		out.AtlasTextures[0] = game.AtlasTextures[0]
	}

	// Keep a legacy m_fontInfo in sync when the target still carries one,
	// reducing runtime differences between the schema generations.
	if game != nil && game.FontInfo != nil {
		out.FontInfo = FaceInfoToFontInfo(face, out.AtlasPadding, out.AtlasWidth, out.AtlasHeight)
		out.FontInfo.CharacterCount = Int(len(out.CharacterTable))
	}

	if game != nil && game.CreationSettings != nil {
		cs := *game.CreationSettings
		cs.AtlasWidth = out.AtlasWidth
		cs.AtlasHeight = out.AtlasHeight
		cs.Padding = out.AtlasPadding
		cs.PointSize = face.PointSize
		cs.CharacterSequence = ""
		out.CreationSettings = &cs
	}
	return out
}

// MaterialOverrides computes the shader float values to apply alongside a
// replacement. Returns nil when the caller opted to keep the target's
// material.
//
// For SDF replacements the spread-dependent floats are scaled by the
// padding ratio when enabled. For raster replacements the SDF effect
// floats are neutralized (gradient scale 1, dilate/outline/underlay/glow
// zero) so sampling a raster atlas through an SDF-aware material does not
// produce box artifacts.
func MaterialOverrides(material *Material, replacement *Record, gamePadding float64, opts Options) map[string]float64 {
	renderMode := RenderModeSDF
	if replacement != nil && replacement.AtlasRenderMode != 0 {
		renderMode = replacement.AtlasRenderMode
	}
	isSDF := IsSDFRenderMode(renderMode)

	if opts.UseGameMaterial {
		if !isSDF {
			tmpatlas.Logger().Warn("keeping game material with a raster replacement may cause box artifacts")
		}
		return nil
	}

	overrides := make(map[string]float64)
	if material != nil {
		for _, p := range material.SavedProperties.Floats {
			overrides[p.Name] = p.Value
		}
	}

	ratio := 1.0
	var replacementPadding float64
	if replacement != nil {
		replacementPadding = float64(replacement.AtlasPadding)
	}
	if isSDF && opts.MaterialScaleByPadding && gamePadding > 0 && replacementPadding > 0 {
		ratio = gamePadding / replacementPadding
		if ratio <= 0 {
			ratio = 1.0
		}
	}
	if ratio != 1.0 {
		for _, key := range materialPaddingScaleProps {
			if v, ok := overrides[key]; ok {
				overrides[key] = v * ratio
			}
		}
		tmpatlas.Logger().Debug("applied material padding ratio",
			"gamePadding", gamePadding,
			"replacementPadding", replacementPadding,
			"ratio", ratio)
	}

	if !isSDF {
		tmpatlas.Logger().Info("raster replacement: neutralizing SDF material effect floats")
		overrides[PropGradientScale] = 1.0
		for _, key := range materialPaddingScaleProps {
			if key == PropGradientScale {
				continue
			}
			overrides[key] = 0.0
		}
	}

	return overrides
}
