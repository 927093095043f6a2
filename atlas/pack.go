package atlas

import "sort"

// PackRect is one rectangle submitted to the packer, identified by the
// caller's key (a glyph index for atlas synthesis).
type PackRect struct {
	ID     int
	Width  int
	Height int
}

// Placement is a packed rectangle's position and size in the atlas.
type Placement struct {
	X      int
	Y      int
	Width  int
	Height int
}

// PackShelf packs rectangles into a width-by-height area using shelf
// packing: rectangles fill the current row left to right, and a new row
// starts below the tallest rectangle of the finished one.
//
// Rectangles are packed largest-first (by area, then height, then width,
// ties keeping submission order), which keeps each shelf's height close to
// the heights of the rectangles on it. The order is total, so packing is
// deterministic for a given input.
//
// Returns ErrNoFit as soon as any rectangle cannot be placed; partial
// packings are never returned. The second result lists the placements in
// pack order, for consumers that record occupied regions.
func PackShelf(rects []PackRect, width, height int) (map[int]Placement, []Placement, error) {
	ordered := append([]PackRect(nil), rects...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		areaA, areaB := a.Width*a.Height, b.Width*b.Height
		if areaA != areaB {
			return areaA > areaB
		}
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		return a.Width > b.Width
	})

	placements := make(map[int]Placement, len(ordered))
	used := make([]Placement, 0, len(ordered))

	x, y, rowHeight := 0, 0, 0
	for _, r := range ordered {
		if r.Width > width || r.Height > height {
			return nil, nil, ErrNoFit
		}
		if x+r.Width > width {
			x = 0
			y += rowHeight
			rowHeight = 0
		}
		if y+r.Height > height {
			return nil, nil, ErrNoFit
		}
		p := Placement{X: x, Y: y, Width: r.Width, Height: r.Height}
		placements[r.ID] = p
		used = append(used, p)
		x += r.Width
		if r.Height > rowHeight {
			rowHeight = r.Height
		}
	}
	return placements, used, nil
}
