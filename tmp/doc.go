// Package tmp models the two incompatible TextMesh Pro font-asset schema
// generations and converts records between them.
//
// The "new" schema stores face metrics in m_FaceInfo and splits glyph data
// into paired m_GlyphTable / m_CharacterTable lists. The "old" schema
// stores face metrics in m_fontInfo and a single flat m_glyphInfoList.
// Neither schema carries an explicit version field, so [Detect] infers the
// generation from populated data, falling back to key presence.
//
// The new schema also leaves its glyph-rect vertical origin convention
// unflagged; tools in the wild disagree. [DetectGlyphYFlip] resolves the
// ambiguity statistically by sampling the atlas image under both candidate
// interpretations.
//
// All conversions are pure: they return new records and never mutate their
// inputs unless an explicit in-place variant is used.
package tmp
