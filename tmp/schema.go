package tmp

import (
	"encoding/json"
	"image"
)

// Version identifies a TMP font-asset schema generation.
type Version int

const (
	// VersionNew is the m_FaceInfo / m_GlyphTable generation.
	VersionNew Version = iota
	// VersionOld is the m_fontInfo / m_glyphInfoList generation.
	VersionOld
)

// String returns "new" or "old".
func (v Version) String() string {
	if v == VersionOld {
		return "old"
	}
	return "new"
}

// Atlas render-mode wire values and the bit that marks a mode as
// distance-field based.
const (
	RenderModeSDF    Int = 4118
	RenderModeRaster Int = 4

	renderModeSDFBit = 0x1000
)

// IsSDFRenderMode reports whether the wire render mode describes a
// signed-distance-field atlas. Consumers use this to decide whether
// dilate/outline/underlay/glow material parameters are meaningful.
func IsSDFRenderMode(mode Int) bool {
	return mode&renderModeSDFBit != 0
}

// PPtr is a serialized object reference: a file index plus an object id.
type PPtr struct {
	FileID Int `json:"m_FileID"`
	PathID Int `json:"m_PathID"`
}

// IsExternalStub reports whether the reference points into another file
// without naming a concrete object. Such references cannot be patched and
// must be skipped by any reference-extraction step.
func (p PPtr) IsExternalStub() bool {
	return p.FileID != 0 && p.PathID == 0
}

// GlyphRect is a glyph's pixel rectangle in the atlas.
type GlyphRect struct {
	X      Int `json:"m_X"`
	Y      Int `json:"m_Y"`
	Width  Int `json:"m_Width"`
	Height Int `json:"m_Height"`
}

// GlyphMetrics are per-glyph typographic metrics in font pixel units at
// the sampled point size. Vertical bearing is measured from the face
// baseline to the glyph top.
type GlyphMetrics struct {
	Width              float64 `json:"m_Width"`
	Height             float64 `json:"m_Height"`
	HorizontalBearingX float64 `json:"m_HorizontalBearingX"`
	HorizontalBearingY float64 `json:"m_HorizontalBearingY"`
	HorizontalAdvance  float64 `json:"m_HorizontalAdvance"`
}

// Glyph is one new-schema glyph-table entry. Index is the stable join key
// referenced by [Character.GlyphIndex].
type Glyph struct {
	Index               Int          `json:"m_Index"`
	Metrics             GlyphMetrics `json:"m_Metrics"`
	Rect                GlyphRect    `json:"m_GlyphRect"`
	Scale               float64      `json:"m_Scale"`
	AtlasIndex          Int          `json:"m_AtlasIndex"`
	ClassDefinitionType Int          `json:"m_ClassDefinitionType"`
}

// Character is one new-schema character-table entry, mapping a Unicode
// scalar to a glyph-table index.
type Character struct {
	ElementType Int     `json:"m_ElementType"`
	Unicode     Int     `json:"m_Unicode"`
	GlyphIndex  Int     `json:"m_GlyphIndex"`
	Scale       float64 `json:"m_Scale"`
}

// FaceInfo holds new-schema face-level typographic metrics.
type FaceInfo struct {
	FaceIndex              Int     `json:"m_FaceIndex"`
	FamilyName             string  `json:"m_FamilyName"`
	StyleName              string  `json:"m_StyleName"`
	PointSize              Int     `json:"m_PointSize"`
	Scale                  float64 `json:"m_Scale"`
	UnitsPerEM             Int     `json:"m_UnitsPerEM"`
	LineHeight             float64 `json:"m_LineHeight"`
	AscentLine             float64 `json:"m_AscentLine"`
	CapLine                float64 `json:"m_CapLine"`
	MeanLine               float64 `json:"m_MeanLine"`
	Baseline               float64 `json:"m_Baseline"`
	DescentLine            float64 `json:"m_DescentLine"`
	SuperscriptOffset      float64 `json:"m_SuperscriptOffset"`
	SuperscriptSize        float64 `json:"m_SuperscriptSize"`
	SubscriptOffset        float64 `json:"m_SubscriptOffset"`
	SubscriptSize          float64 `json:"m_SubscriptSize"`
	UnderlineOffset        float64 `json:"m_UnderlineOffset"`
	UnderlineThickness     float64 `json:"m_UnderlineThickness"`
	StrikethroughOffset    float64 `json:"m_StrikethroughOffset"`
	StrikethroughThickness float64 `json:"m_StrikethroughThickness"`
	TabWidth               float64 `json:"m_TabWidth"`
}

// FontInfo holds old-schema face-level metrics. Unlike the new schema it
// also carries atlas geometry inline.
type FontInfo struct {
	Name                   string  `json:"Name"`
	PointSize              float64 `json:"PointSize"`
	Scale                  float64 `json:"Scale"`
	CharacterCount         Int     `json:"CharacterCount"`
	LineHeight             float64 `json:"LineHeight"`
	Baseline               float64 `json:"Baseline"`
	Ascender               float64 `json:"Ascender"`
	CapHeight              float64 `json:"CapHeight"`
	Descender              float64 `json:"Descender"`
	CenterLine             float64 `json:"CenterLine"`
	SuperscriptOffset      float64 `json:"SuperscriptOffset"`
	SubscriptOffset        float64 `json:"SubscriptOffset"`
	SubSize                float64 `json:"SubSize"`
	Underline              float64 `json:"Underline"`
	UnderlineThickness     float64 `json:"UnderlineThickness"`
	Strikethrough          float64 `json:"strikethrough"`
	StrikethroughThickness float64 `json:"strikethroughThickness"`
	TabWidth               float64 `json:"TabWidth"`
	Padding                float64 `json:"Padding"`
	AtlasWidth             Int     `json:"AtlasWidth"`
	AtlasHeight            Int     `json:"AtlasHeight"`
}

// OldGlyph is one old-schema glyph-info entry: a flat record keyed by
// Unicode value with rect and metrics merged together.
type OldGlyph struct {
	ID       Int     `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	XOffset  float64 `json:"xOffset"`
	YOffset  float64 `json:"yOffset"`
	XAdvance float64 `json:"xAdvance"`
	Scale    float64 `json:"scale"`
}

// CreationSettings mirrors the generator settings block some assets carry.
type CreationSettings struct {
	PointSize         Int    `json:"pointSize"`
	Padding           Int    `json:"padding"`
	AtlasWidth        Int    `json:"atlasWidth"`
	AtlasHeight       Int    `json:"atlasHeight"`
	CharacterSequence string `json:"characterSequence"`
}

// Record is a font-metadata record that can hold either schema generation.
// Real-world records occasionally carry both key sets with only one
// populated; [Detect] resolves which generation is authoritative.
type Record struct {
	// New-schema fields.
	FaceInfo        *FaceInfo         `json:"m_FaceInfo,omitempty"`
	GlyphTable      []Glyph           `json:"m_GlyphTable,omitempty"`
	CharacterTable  []Character       `json:"m_CharacterTable,omitempty"`
	AtlasTextures   []PPtr            `json:"m_AtlasTextures,omitempty"`
	AtlasWidth      Int               `json:"m_AtlasWidth,omitempty"`
	AtlasHeight     Int               `json:"m_AtlasHeight,omitempty"`
	AtlasPadding    Int               `json:"m_AtlasPadding,omitempty"`
	AtlasRenderMode Int               `json:"m_AtlasRenderMode,omitempty"`
	UsedGlyphRects  []GlyphRect       `json:"m_UsedGlyphRects,omitempty"`
	FreeGlyphRects  []GlyphRect       `json:"m_FreeGlyphRects,omitempty"`
	FontWeightTable []json.RawMessage `json:"m_FontWeightTable,omitempty"`

	// Old-schema fields.
	FontInfo      *FontInfo         `json:"m_fontInfo,omitempty"`
	GlyphInfoList []OldGlyph        `json:"m_glyphInfoList,omitempty"`
	Atlas         *PPtr             `json:"atlas,omitempty"`
	FontWeights   []json.RawMessage `json:"fontWeights,omitempty"`

	// Shared optional fields.
	CreationSettings *CreationSettings `json:"m_CreationSettings,omitempty"`
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	if r.FaceInfo != nil {
		fi := *r.FaceInfo
		out.FaceInfo = &fi
	}
	if r.FontInfo != nil {
		fi := *r.FontInfo
		out.FontInfo = &fi
	}
	if r.Atlas != nil {
		a := *r.Atlas
		out.Atlas = &a
	}
	if r.CreationSettings != nil {
		cs := *r.CreationSettings
		out.CreationSettings = &cs
	}
	out.GlyphTable = append([]Glyph(nil), r.GlyphTable...)
	out.CharacterTable = append([]Character(nil), r.CharacterTable...)
	out.AtlasTextures = append([]PPtr(nil), r.AtlasTextures...)
	out.UsedGlyphRects = append([]GlyphRect(nil), r.UsedGlyphRects...)
	out.FreeGlyphRects = append([]GlyphRect(nil), r.FreeGlyphRects...)
	out.GlyphInfoList = append([]OldGlyph(nil), r.GlyphInfoList...)
	out.FontWeightTable = cloneRaw(r.FontWeightTable)
	out.FontWeights = cloneRaw(r.FontWeights)
	return &out
}

func cloneRaw(in []json.RawMessage) []json.RawMessage {
	if in == nil {
		return nil
	}
	out := make([]json.RawMessage, len(in))
	for i, m := range in {
		out[i] = append(json.RawMessage(nil), m...)
	}
	return out
}

// ConcreteAtlasTarget reports whether the record describes a patchable
// font asset: it must have glyph data in its detected schema, and its
// first atlas reference (when present) must not be an external stub.
func ConcreteAtlasTarget(r *Record) bool {
	if r == nil {
		return false
	}
	var glyphCount int
	if Detect(r) == VersionNew {
		if len(r.AtlasTextures) > 0 && r.AtlasTextures[0].IsExternalStub() {
			return false
		}
		glyphCount = len(r.GlyphTable)
	} else {
		glyphCount = len(r.GlyphInfoList)
	}
	return glyphCount > 0
}

// FontAssetPackage is the durable output of one atlas synthesis run: the
// new-schema metadata record, the atlas raster (ink/SDF intensity in the
// alpha channel, RGB zero), and the shader-facing material parameters.
type FontAssetPackage struct {
	Record   Record
	Atlas    *image.NRGBA
	Material Material
}
