package tmp

import (
	"image"
	"image/color"

	tmpatlas "github.com/gogpu/tmpatlas"
)

// DefaultYFlipSampleLimit caps how many distinct glyph rects the Y-flip
// heuristic inspects.
const DefaultYFlipSampleLimit = 256

// DetectGlyphYFlip estimates whether new-schema glyph rect Y coordinates
// must be flipped (y' = atlasHeight - y - height) to address the atlas
// correctly.
//
// The new schema does not flag its vertical origin convention and
// exporters disagree, so the heuristic samples glyph rects in
// character-table order (deduplicated by glyph index, degenerate rects
// skipped), crops the atlas alpha channel under both interpretations, and
// scores each by the number of rects with non-empty ink and the summed
// mean intensity. Flipping is chosen only when the flipped interpretation
// beats the direct one by max(2, 5% of sampled rects) non-empty rects, or
// matches it while exceeding its mean intensity by 20%. The asymmetric
// margin avoids flip/no-flip oscillation on sparse charsets.
//
// Known-imprecise by nature: very few visible glyphs or unusually sparse
// ink can defeat the sampling. Callers that learn the real convention
// should persist it and bypass the heuristic.
func DetectGlyphYFlip(glyphs []Glyph, chars []Character, atlas image.Image, sampleLimit int) bool {
	if atlas == nil || len(glyphs) == 0 || len(chars) == 0 {
		return false
	}
	if sampleLimit <= 0 {
		sampleLimit = DefaultYFlipSampleLimit
	}

	byIndex := make(map[Int]*Glyph, len(glyphs))
	for i := range glyphs {
		byIndex[glyphs[i].Index] = &glyphs[i]
	}

	// Sample in character-table order to match the runtime usage
	// distribution, one rect per glyph index.
	type rect struct{ x, y, w, h int }
	var samples []rect
	seen := make(map[Int]bool, len(chars))
	for _, ch := range chars {
		if seen[ch.GlyphIndex] {
			continue
		}
		seen[ch.GlyphIndex] = true
		g := byIndex[ch.GlyphIndex]
		if g == nil {
			continue
		}
		w := max(1, int(g.Rect.Width))
		h := max(1, int(g.Rect.Height))
		if w <= 1 || h <= 1 {
			continue
		}
		samples = append(samples, rect{x: int(g.Rect.X), y: int(g.Rect.Y), w: w, h: h})
	}
	if len(samples) == 0 {
		return false
	}
	if len(samples) > sampleLimit {
		step := max(1, len(samples)/sampleLimit)
		thinned := make([]rect, 0, sampleLimit)
		for i := 0; i < len(samples) && len(thinned) < sampleLimit; i += step {
			thinned = append(thinned, samples[i])
		}
		samples = thinned
	}

	bounds := atlas.Bounds()
	atlasW := bounds.Dx()
	atlasH := bounds.Dy()

	score := func(flipY bool) (nonZero int, meanSum float64, valid int) {
		for _, r := range samples {
			yy := r.y
			if flipY {
				yy = atlasH - r.y - r.h
			}
			x0 := clampInt(r.x, 0, atlasW-1)
			y0 := clampInt(yy, 0, atlasH-1)
			x1 := max(x0+1, min(atlasW, x0+r.w))
			y1 := max(y0+1, min(atlasH, y0+r.h))
			if x1 <= x0 || y1 <= y0 {
				continue
			}

			var sum uint64
			hasInk := false
			for py := y0; py < y1; py++ {
				for px := x0; px < x1; px++ {
					a := atlasIntensityAt(atlas, bounds.Min.X+px, bounds.Min.Y+py)
					sum += uint64(a)
					if a > 0 {
						hasInk = true
					}
				}
			}
			area := (x1 - x0) * (y1 - y0)
			meanSum += float64(sum) / float64(area)
			if hasInk {
				nonZero++
			}
			valid++
		}
		return nonZero, meanSum, valid
	}

	directNonZero, directMean, directValid := score(false)
	flippedNonZero, flippedMean, flippedValid := score(true)

	validCount := min(directValid, flippedValid)
	if validCount == 0 {
		return false
	}

	// 5% of sampled valid rects, floor of 2.
	nonZeroMargin := max(2, validCount/20)
	flip := flippedNonZero > directNonZero+nonZeroMargin ||
		(flippedNonZero >= directNonZero && flippedMean > directMean*1.2)
	if flip && validCount < 8 {
		tmpatlas.Logger().Warn("Y-flip chosen from a small sample",
			"samples", validCount,
			"directNonZero", directNonZero,
			"flippedNonZero", flippedNonZero)
	}
	return flip
}

// atlasIntensityAt reads ink intensity at a pixel: the alpha channel when
// the image has one, grayscale luminance otherwise.
func atlasIntensityAt(img image.Image, x, y int) uint8 {
	switch im := img.(type) {
	case *image.NRGBA:
		return im.NRGBAAt(x, y).A
	case *image.RGBA:
		return im.RGBAAt(x, y).A
	case *image.Alpha:
		return im.AlphaAt(x, y).A
	case *image.Gray:
		return im.GrayAt(x, y).Y
	}
	if _, _, _, a := img.At(x, y).RGBA(); a < 0xffff {
		return uint8(a >> 8)
	}
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
