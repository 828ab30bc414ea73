package renderer

// Sutherland-Hodgman clipping. Each pass clips against a single half-plane
// described by a signed-distance function: dist >= 0 is inside, with ties
// counted as inside so that polygons meeting a plane corner neither drop nor
// duplicate vertices.

// clipPoly clips a closed polygon against one half-plane. Crossing edges get
// an interpolated vertex at the parametric t where the edge meets the plane.
// The result may be empty or may have one more vertex than the input.
func clipPoly[T any](poly []T, dist func(T) float32, lerp func(a, b T, t float32) T) []T {
	if len(poly) == 0 {
		return nil
	}
	out := make([]T, 0, len(poly)+1)

	prev := poly[len(poly)-1]
	dPrev := dist(prev)
	for _, cur := range poly {
		dCur := dist(cur)
		curInside := dCur >= 0
		if curInside != (dPrev >= 0) {
			t := dPrev / (dPrev - dCur)
			out = append(out, lerp(prev, cur, t))
		}
		if curInside {
			out = append(out, cur)
		}
		prev, dPrev = cur, dCur
	}
	return out
}

// clipSeg clips an open segment against one half-plane. It returns the
// surviving endpoints, which may be zero when the segment lies entirely
// outside.
func clipSeg[T any](a, b T, dist func(T) float32, lerp func(a, b T, t float32) T) []T {
	da, db := dist(a), dist(b)
	aIn, bIn := da >= 0, db >= 0
	switch {
	case aIn && bIn:
		return []T{a, b}
	case !aIn && !bIn:
		return nil
	}
	t := da / (da - db)
	m := lerp(a, b, t)
	if aIn {
		return []T{a, m}
	}
	return []T{m, b}
}

// ndcPlanes are the four side planes of the normalized view volume,
// expressed as signed distances in image-plane coordinates.
var ndcPlanes = [4]func(svtx) float32{
	func(v svtx) float32 { return v.x + 1 }, // x >= -1
	func(v svtx) float32 { return 1 - v.x }, // x <= +1
	func(v svtx) float32 { return v.y + 1 }, // y >= -1
	func(v svtx) float32 { return 1 - v.y }, // y <= +1
}
