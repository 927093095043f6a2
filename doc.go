// Package tmpatlas generates TextMesh Pro compatible font assets from
// outline fonts and converts font metadata between the two incompatible
// TMP schema generations.
//
// The toolkit is split into three subpackages:
//
//   - atlas: glyph rasterization, shelf packing, point-size search,
//     signed-distance-field computation, and atlas composition.
//   - tmp: the old and new TMP font-asset schemas, version detection,
//     bidirectional conversion, and the Y-flip coordinate heuristic.
//   - assets: the persisted JSON + PNG + material artifact triple and a
//     bounded cache of loaded replacement assets.
//
// The root package only carries the shared logger configuration; see
// [SetLogger].
package tmpatlas
