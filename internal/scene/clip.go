package scene

// Points in projection space are (x, y, depth) with depth increasing
// away from the camera.

// clipNearPlane clips a convex polygon against the plane depth == near
// (Sutherland-Hodgman, single plane). Points exactly on the plane are
// kept. Returns nil when the polygon is entirely behind the plane.
func clipNearPlane(pts [][3]float64, near float64) [][3]float64 {
	if len(pts) == 0 {
		return nil
	}
	var out [][3]float64
	for i := range pts {
		cur := pts[i]
		next := pts[(i+1)%len(pts)]
		curIn := cur[2] >= near
		nextIn := next[2] >= near

		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			t := (near - cur[2]) / (next[2] - cur[2])
			out = append(out, [3]float64{
				cur[0] + (next[0]-cur[0])*t,
				cur[1] + (next[1]-cur[1])*t,
				near,
			})
		}
	}
	if len(out) < 3 {
		return nil
	}
	return out
}
