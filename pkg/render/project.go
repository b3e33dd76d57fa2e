package render

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/flatshade/pkg/math3d"
)

// maxCoord saturates projected coordinates of vertices far outside the
// unit box so integer edge math cannot overflow.
const maxCoord = 1 << 24

// ScreenPoint is a projected vertex: integer pixel coordinates plus the
// untouched model-space depth.
type ScreenPoint struct {
	X, Y int
	Z    float32
}

// Project maps a model-space vertex onto a w×h canvas orthographically.
// Coordinates in [-1, +1] land in [0, w-1]×[0, h-1] with (-1, -1) at the
// lower-left pixel; z passes through for depth testing.
func Project(v math3d.Vec3, w, h int) ScreenPoint {
	return ScreenPoint{
		X: projectAxis(v.X, w),
		Y: projectAxis(v.Y, h),
		Z: v.Z,
	}
}

func projectAxis(c float32, size int) int {
	p := math32.Floor((c + 1) * float32(size-1) / 2)
	switch {
	case math32.IsNaN(p):
		return -maxCoord
	case p > maxCoord:
		return maxCoord
	case p < -maxCoord:
		return -maxCoord
	}
	return int(p)
}

// ProjectTriangle projects the three vertices of tri in winding order.
func ProjectTriangle(tri [3]math3d.Vec3, w, h int) [3]ScreenPoint {
	return [3]ScreenPoint{
		Project(tri[0], w, h),
		Project(tri[1], w, h),
		Project(tri[2], w, h),
	}
}
