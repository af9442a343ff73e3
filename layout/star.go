package layout

import "github.com/go-gl/mathgl/mgl32"

// Triangle is three vertices in counter-clockwise order seen from the front.
type Triangle [3]mgl32.Vec3

// Normal returns the unnormalized face normal.
func (t Triangle) Normal() mgl32.Vec3 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
}

// StarOutline returns the ten corners of the tree-top star in the XY plane,
// unit sized, going around the center.
func StarOutline() []mgl32.Vec2 {
	return []mgl32.Vec2{
		{0, 1},
		{0.2, 0.2},
		{1, 0.2},
		{0.4, -0.2},
		{0.6, -1},
		{0, -0.5},
		{-0.6, -1},
		{-0.4, -0.2},
		{-1, 0.2},
		{-0.2, 0.2},
	}
}

// ExtrudeStar turns the star outline into a closed solid of the given depth,
// centered on z = 0. The outline is star-shaped around the origin, so both caps
// are triangle fans from the center.
func ExtrudeStar(depth float32) []Triangle {
	outline := StarOutline()
	if signedArea(outline) < 0 {
		for i, j := 0, len(outline)-1; i < j; i, j = i+1, j-1 {
			outline[i], outline[j] = outline[j], outline[i]
		}
	}

	front, back := depth/2, -depth/2
	n := len(outline)
	tris := make([]Triangle, 0, n*4)

	for i := 0; i < n; i++ {
		a := outline[i]
		b := outline[(i+1)%n]

		af := mgl32.Vec3{a[0], a[1], front}
		bf := mgl32.Vec3{b[0], b[1], front}
		ab := mgl32.Vec3{a[0], a[1], back}
		bb := mgl32.Vec3{b[0], b[1], back}

		tris = append(tris,
			Triangle{{0, 0, front}, af, bf},
			Triangle{{0, 0, back}, bb, ab},
			Triangle{af, ab, bb},
			Triangle{af, bb, bf},
		)
	}
	return tris
}

func signedArea(poly []mgl32.Vec2) float32 {
	var area float32
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		area += a[0]*b[1] - b[0]*a[1]
	}
	return area / 2
}
