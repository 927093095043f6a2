package tmp

import "encoding/json"

// Normalize converts a record of either schema generation into a
// canonical new-schema record.
//
// Normalize is pure: the input is deep-copied and never mutated. Batch
// callers that own their records can use [NormalizeInPlace] to skip the
// copy.
//
// Old-schema records are upgraded field-for-field: face metrics move from
// m_fontInfo to m_FaceInfo, the flat glyph-info list is split into paired
// glyph/character tables with fresh sequential indices, the single old
// atlas reference becomes the atlas-texture list, and atlas geometry is
// promoted from the face record. Missing optional containers default to
// empty rather than failing; a record with no glyph data in either schema
// normalizes to a well-typed empty package.
//
// Already-new records only get type canonicalization: designated integer
// fields are coerced, class definition types reset, and atlas references
// rebuilt as standalone values so later mutation cannot alias the source.
func Normalize(r *Record) *Record {
	return NormalizeInPlace(r.Clone())
}

// NormalizeInPlace is [Normalize] without the input copy. The record is
// modified and returned.
func NormalizeInPlace(r *Record) *Record {
	if r == nil {
		return &Record{}
	}

	if Detect(r) == VersionOld {
		upgradeOldSchema(r)
	}

	if r.FaceInfo == nil {
		r.FaceInfo = &FaceInfo{}
	}
	if r.GlyphTable == nil {
		r.GlyphTable = []Glyph{}
	}
	if r.CharacterTable == nil {
		r.CharacterTable = []Character{}
	}
	if r.AtlasRenderMode == 0 {
		r.AtlasRenderMode = RenderModeSDF
	}
	if r.UsedGlyphRects == nil {
		r.UsedGlyphRects = []GlyphRect{}
	}
	if r.FreeGlyphRects == nil {
		r.FreeGlyphRects = []GlyphRect{}
	}
	if r.FontWeightTable == nil {
		if len(r.FontWeights) > 0 {
			r.FontWeightTable = cloneRaw(r.FontWeights)
		} else {
			r.FontWeightTable = []json.RawMessage{}
		}
	}

	// Rebuild atlas references as standalone values, falling back to the
	// old-schema single reference when the list is empty.
	textures := make([]PPtr, 0, len(r.AtlasTextures))
	for _, tex := range r.AtlasTextures {
		textures = append(textures, PPtr{FileID: tex.FileID, PathID: tex.PathID})
	}
	if len(textures) == 0 && r.Atlas != nil {
		textures = append(textures, PPtr{FileID: r.Atlas.FileID, PathID: r.Atlas.PathID})
	}
	r.AtlasTextures = textures

	for i := range r.GlyphTable {
		r.GlyphTable[i].ClassDefinitionType = 0
	}

	return r
}

// upgradeOldSchema promotes old-schema containers to their new-schema
// counterparts in place. The old fields are kept so a consumer that still
// needs them can read them back.
func upgradeOldSchema(r *Record) {
	info := r.FontInfo
	if info == nil {
		info = &FontInfo{}
	}

	r.FaceInfo = FontInfoToFaceInfo(info)
	r.GlyphTable, r.CharacterTable = GlyphsToNew(r.GlyphInfoList)

	if len(r.AtlasTextures) == 0 {
		ref := PPtr{}
		if r.Atlas != nil {
			ref = *r.Atlas
		}
		r.AtlasTextures = []PPtr{ref}
	}
	if r.AtlasWidth == 0 {
		r.AtlasWidth = info.AtlasWidth
	}
	if r.AtlasHeight == 0 {
		r.AtlasHeight = info.AtlasHeight
	}
	if r.AtlasPadding == 0 {
		r.AtlasPadding = Int(info.Padding)
	}
}
