// Package assets persists and loads font-asset artifact triples.
//
// One synthesis run produces three sibling files named after the font and
// render-mode variant: "<Name> <Variant>.json" (metadata record),
// "<Name> <Variant> Atlas.png" (atlas raster), and
// "<Name> <Variant> Material.json" (material parameters), where Variant is
// "SDF" or "Raster". Loading resolves lenient name candidates so a caller
// asking for "Font SDF" still finds artifacts saved as "Font" or
// "Font Raster".
package assets
