package atlas

import "math"

// SDFTile converts a coverage tile into a signed-distance tile following
// the SDF shader convention: the glyph edge maps to 0.5, inside above,
// outside below. tile is a row-major width*height alpha buffer; pixels
// with coverage above 127 count as inside. spread is the distance in
// pixels mapped onto the half range (the atlas padding in practice).
//
// The distance field is exact (Euclidean distance transform), normalized
// as 0.5 + (insideDist - outsideDist) / (2*spread), clamped to [0,1] and
// quantized by truncation. Tiles with no inside pixels return all zeros;
// fully covered tiles return all 255, both without running the transform.
func SDFTile(tile []uint8, width, height, spread int) []uint8 {
	out := make([]uint8, len(tile))
	if width <= 0 || height <= 0 {
		return out
	}

	inside := make([]bool, len(tile))
	insideCount := 0
	for i, v := range tile {
		if v > 127 {
			inside[i] = true
			insideCount++
		}
	}
	if insideCount == 0 {
		return out
	}
	if insideCount == len(tile) {
		for i := range out {
			out[i] = 255
		}
		return out
	}

	// distToInside is zero on inside pixels, distToOutside zero on outside
	// pixels; their difference is the signed distance to the edge.
	distToInside := euclideanDistance(inside, width, height, true)
	distToOutside := euclideanDistance(inside, width, height, false)

	spreadValue := float64(spread)
	if spreadValue < 1 {
		spreadValue = 1
	}
	for i := range out {
		signed := distToOutside[i] - distToInside[i]
		normalized := 0.5 + signed/(2*spreadValue)
		if normalized < 0 {
			normalized = 0
		} else if normalized > 1 {
			normalized = 1
		}
		out[i] = uint8(normalized * 255.0)
	}
	return out
}

// edtInf is a large finite stand-in for infinity; using a finite value
// keeps the lower-envelope intersections well defined on empty scanlines.
const edtInf = 1e20

// euclideanDistance computes the exact Euclidean distance from every pixel
// to the nearest pixel where inside == target, using the Felzenszwalb and
// Huttenlocher two-pass squared distance transform (columns of the point
// mask, then rows of the column result).
func euclideanDistance(inside []bool, width, height int, target bool) []float64 {
	d := make([]float64, width*height)

	n := width
	if height > n {
		n = height
	}
	f := make([]float64, n)
	scratch := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if inside[y*width+x] == target {
				f[y] = 0
			} else {
				f[y] = edtInf
			}
		}
		squaredDistance1D(f[:height], scratch[:height], v, z)
		for y := 0; y < height; y++ {
			d[y*width+x] = scratch[y]
		}
	}

	for y := 0; y < height; y++ {
		copy(f[:width], d[y*width:(y+1)*width])
		squaredDistance1D(f[:width], scratch[:width], v, z)
		for x := 0; x < width; x++ {
			d[y*width+x] = math.Sqrt(scratch[x])
		}
	}
	return d
}

// squaredDistance1D computes the 1D squared distance transform of sampled
// parabola heights f into out. v and z are caller-provided scratch of at
// least len(f) and len(f)+1.
func squaredDistance1D(f, out []float64, v []int, z []float64) {
	n := len(f)
	k := 0
	v[0] = 0
	z[0] = -edtInf
	z[1] = edtInf

	intersect := func(p, q int) float64 {
		return ((f[q] + float64(q*q)) - (f[p] + float64(p*p))) / float64(2*q-2*p)
	}

	for q := 1; q < n; q++ {
		s := intersect(v[k], q)
		for s <= z[k] {
			k--
			s = intersect(v[k], q)
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = edtInf
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		out[q] = dq*dq + f[v[k]]
	}
}
