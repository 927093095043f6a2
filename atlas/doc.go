// Package atlas synthesizes TextMesh Pro compatible font atlases from
// TrueType/OpenType font data.
//
// The pipeline is deterministic: glyphs are measured and rasterized with
// golang.org/x/image at a fixed 72 DPI, packed onto shelves in a stable
// size order, optionally converted to signed-distance-field tiles, and
// composed into a tmp.FontAssetPackage (metadata record, atlas raster,
// material). Given the same font data, charset, and configuration, the
// output is byte-for-byte identical across runs.
package atlas
