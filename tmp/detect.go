package tmp

import tmpatlas "github.com/gogpu/tmpatlas"

// Detect resolves which schema generation a record uses.
//
// Populated glyph data outranks key presence: records in the wild carry
// both schemas' containers with only one filled, so a non-empty new-schema
// glyph table always wins, then a non-empty old-schema glyph list. With no
// glyph data at all, the face-metric container decides; a record with
// neither defaults to new. Detection never fails.
func Detect(r *Record) Version {
	if r == nil {
		return VersionNew
	}
	if len(r.GlyphTable) > 0 {
		return VersionNew
	}
	if len(r.GlyphInfoList) > 0 {
		return VersionOld
	}
	if r.FaceInfo != nil {
		return VersionNew
	}
	if r.FontInfo != nil {
		return VersionOld
	}
	tmpatlas.Logger().Debug("schema detection ambiguous, defaulting to new",
		"hasAtlasTextures", len(r.AtlasTextures) > 0,
		"hasAtlasRef", r.Atlas != nil)
	return VersionNew
}
