package tmp

import "strings"

// fontNameExtensions are stripped from the end of a font identifier, in
// order, before suffix matching.
var fontNameExtensions = []string{".ttf", ".otf", ".json", ".png"}

// fontNameSuffixes are artifact suffixes stripped from a font identifier.
// Ordered longest/most specific first so " SDF Atlas" wins over " SDF";
// only the first match is removed.
var fontNameSuffixes = []string{
	" SDF Atlas",
	" Raster Atlas",
	" Atlas",
	" SDF Material",
	" Raster Material",
	" Material",
	" SDF",
	" Raster",
}

// NormalizeFontName strips file extensions and artifact suffixes from a
// font identifier, recovering the base name used as the lookup key across
// the JSON/atlas/material artifact triple.
func NormalizeFontName(name string) string {
	for _, ext := range fontNameExtensions {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			name = name[:len(name)-len(ext)]
		}
	}
	for _, suffix := range fontNameSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = name[:len(name)-len(suffix)]
			break
		}
	}
	return name
}
