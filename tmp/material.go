package tmp

import (
	"encoding/json"
	"fmt"
)

// Material is the shader-facing parameter set persisted next to a font
// asset. On the wire each float is a two-element [name, value] tuple.
type Material struct {
	SavedProperties SavedProperties `json:"m_SavedProperties"`
}

// SavedProperties holds the material's float properties.
type SavedProperties struct {
	Floats []FloatProperty `json:"m_Floats"`
}

// FloatProperty is one named shader float, serialized as ["name", value].
type FloatProperty struct {
	Name  string
	Value float64
}

// MarshalJSON implements json.Marshaler.
func (p FloatProperty) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Name, p.Value})
}

// UnmarshalJSON implements json.Unmarshaler. Entries that are not
// [name, value] pairs are rejected.
func (p *FloatProperty) UnmarshalJSON(b []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(b, &tuple); err != nil {
		return err
	}
	if len(tuple) < 2 {
		return fmt.Errorf("tmp: float property needs [name, value], got %d elements", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &p.Name); err != nil {
		return err
	}
	return json.Unmarshal(tuple[1], &p.Value)
}

// Float returns the named float value.
func (m *Material) Float(name string) (float64, bool) {
	for _, p := range m.SavedProperties.Floats {
		if p.Name == name {
			return p.Value, true
		}
	}
	return 0, false
}

// SetFloat sets or appends the named float value.
func (m *Material) SetFloat(name string, value float64) {
	for i, p := range m.SavedProperties.Floats {
		if p.Name == name {
			m.SavedProperties.Floats[i].Value = value
			return
		}
	}
	m.SavedProperties.Floats = append(m.SavedProperties.Floats, FloatProperty{Name: name, Value: value})
}

// Shader float names the toolkit reads or writes.
const (
	PropGradientScale = "_GradientScale"
	PropTextureWidth  = "_TextureWidth"
	PropTextureHeight = "_TextureHeight"
)

// materialPaddingScaleProps are the float properties whose values scale
// with the SDF spread (atlas padding). When a replacement atlas was
// generated with a different padding than the target expects, these are
// multiplied by the padding ratio to keep effect sizes visually stable.
var materialPaddingScaleProps = []string{
	"_GradientScale",
	"_FaceDilate",
	"_OutlineWidth",
	"_OutlineSoftness",
	"_UnderlayDilate",
	"_UnderlaySoftness",
	"_UnderlayOffsetX",
	"_UnderlayOffsetY",
	"_GlowOffset",
	"_GlowInner",
	"_GlowOuter",
}

// NewMaterial builds the material parameters for a synthesized atlas:
// gradient scale is padding+1 for SDF atlases (the spread proxy the SDF
// shader divides by) and 1.0 for raster atlases, plus texture size mirrors.
func NewMaterial(renderMode Int, atlasPadding, atlasWidth, atlasHeight int) Material {
	gradientScale := 1.0
	if IsSDFRenderMode(renderMode) {
		gradientScale = float64(atlasPadding + 1)
	}
	return Material{
		SavedProperties: SavedProperties{
			Floats: []FloatProperty{
				{Name: PropGradientScale, Value: gradientScale},
				{Name: PropTextureWidth, Value: float64(atlasWidth)},
				{Name: PropTextureHeight, Value: float64(atlasHeight)},
			},
		},
	}
}
