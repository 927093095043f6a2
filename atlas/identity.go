package atlas

import (
	"bytes"

	"github.com/go-text/typesetting/font"

	"github.com/gogpu/tmpatlas/tmp"
)

// FontIdentity is a font's naming and design-unit information as recorded
// in the synthesized face metadata.
type FontIdentity struct {
	FamilyName string
	StyleName  string
	UnitsPerEM int
}

// Identify reads family name, style name, and units per em from the font's
// name and head tables. Identification never fails: when the tables cannot
// be read the fallback name (stripped of artifact extensions and suffixes)
// stands in for the family, with style "Regular" and 1000 units per em.
func Identify(ttf []byte, fallbackName string) FontIdentity {
	id := FontIdentity{
		FamilyName: tmp.NormalizeFontName(fallbackName),
		StyleName:  "Regular",
		UnitsPerEM: 1000,
	}

	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return id
	}

	if upem := int(face.Upem()); upem > 0 {
		id.UnitsPerEM = upem
	}
	desc := face.Describe()
	if desc.Family != "" {
		id.FamilyName = desc.Family
	}
	id.StyleName = styleName(desc.Aspect)
	return id
}

func styleName(aspect font.Aspect) string {
	italic := aspect.Style == font.StyleItalic
	bold := aspect.Weight >= font.WeightBold
	switch {
	case bold && italic:
		return "Bold Italic"
	case bold:
		return "Bold"
	case italic:
		return "Italic"
	}
	return "Regular"
}
