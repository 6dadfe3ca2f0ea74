package picmix

import "math"

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// PointInQuad reports whether p lies inside the axis-aligned rectangle
// spanned by its top-left (c0), top-right (c1) and bottom-right (c2)
// corners. The fourth corner is implied. The corners are normalized first,
// so a rectangle whose width or height went negative mid-drag still hits.
// Edges are inclusive.
func PointInQuad(p, c0, c1, c2 Vec2) bool {
	minX := min(c0.X, c1.X, c2.X)
	maxX := max(c0.X, c1.X, c2.X)
	minY := min(c0.Y, c1.Y, c2.Y)
	maxY := max(c0.Y, c1.Y, c2.Y)
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// handleAt returns the index of the first corner of pts within radius of p,
// or -1. Corners are tested in handle order.
func handleAt(pts [4]Vec2, p Vec2, radius float64) int {
	for i, c := range pts {
		if Distance(p, c) < radius {
			return i
		}
	}
	return -1
}

// opposite returns the handle index diagonally across from i.
func opposite(i int) int {
	return (i + 2) % 4
}
