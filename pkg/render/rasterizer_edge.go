package render

// Edge function fill. Uses incremental updates to avoid recomputing
// barycentric coordinates per pixel. Screen coordinates are integers, so
// the edge functions are evaluated exactly in int64.

// edgeCoeffs returns A, B, C for the edge function of v0->v1:
// edge(x,y) = A*x + B*y + C. Positive = left of edge, zero = on edge.
func edgeCoeffs(x0, y0, x1, y1 int64) (A, B, C int64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// drawTriangleEdge rasterizes by testing every integer pixel of the clamped
// bounding box against the three edges. Pixels on an edge are inside.
// Triangles with zero area write nothing.
func (r *Rasterizer) drawTriangleEdge(pts [3]ScreenPoint, c Color) {
	x0, y0 := int64(pts[0].X), int64(pts[0].Y)
	x1, y1 := int64(pts[1].X), int64(pts[1].Y)
	x2, y2 := int64(pts[2].X), int64(pts[2].Y)

	// Twice the signed area; make it positive so "inside" is w >= 0 for
	// either winding.
	area2 := (x1-x0)*(y2-y0) - (y1-y0)*(x2-x0)
	if area2 == 0 {
		return
	}
	if area2 < 0 {
		pts[1], pts[2] = pts[2], pts[1]
		x1, y1, x2, y2 = x2, y2, x1, y1
		area2 = -area2
	}

	// Bounding box (clamped to screen)
	minX := max(min(x0, x1, x2), 0)
	maxX := min(max(x0, x1, x2), int64(r.fb.Width-1))
	minY := max(min(y0, y1, y2), 0)
	maxY := min(max(y0, y1, y2), int64(r.fb.Height-1))
	if minX > maxX || minY > maxY {
		return
	}

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	A0, B0, C0 := edgeCoeffs(x1, y1, x2, y2)
	A1, B1, C1 := edgeCoeffs(x2, y2, x0, y0)
	A2, B2, C2 := edgeCoeffs(x0, y0, x1, y1)

	area := float32(area2)
	z0, z1, z2 := pts[0].Z, pts[1].Z, pts[2].Z

	// Evaluate edge functions at the first pixel of the bounding box
	w0Row := A0*minX + B0*minY + C0
	w1Row := A1*minX + B1*minY + C1
	w2Row := A2*minX + B2*minY + C2

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row

		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				z := (float32(w0)*z0 + float32(w1)*z1 + float32(w2)*z2) / area
				r.plot(int(x), int(y), z, c)
			}

			// Step in X direction
			w0 += A0
			w1 += A1
			w2 += A2
		}

		// Step in Y direction
		w0Row += B0
		w1Row += B1
		w2Row += B2
	}
}
