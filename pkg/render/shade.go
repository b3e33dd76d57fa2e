package render

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/taigrr/flatshade/pkg/math3d"
)

// ErrBackFacing is returned by ShadeFace for faces turned away from the
// light.
var ErrBackFacing = errors.New("face not lit")

// DefaultLight points into the screen.
var DefaultLight = math3d.Forward()

// FaceNormal returns the unit normal of the triangle (a, b, c) as
// normalize((c-a) × (b-a)). A counter-clockwise triangle facing +z gets
// the normal (0, 0, -1). Collinear vertices return
// math3d.ErrDegenerateVector.
func FaceNormal(a, b, c math3d.Vec3) (math3d.Vec3, error) {
	return c.Sub(a).Cross(b.Sub(a)).Normalize()
}

// Intensity is the cosine between the face normal and the light direction.
func Intensity(normal, light math3d.Vec3) float32 {
	return normal.Dot(light)
}

// ShadeColor maps a positive intensity to a gray level,
// k = clamp(round(i*255), 0, 255).
func ShadeColor(i float32) Color {
	// Halves round up; negative input clamps to 0 either way.
	k := math32.Floor(i*255 + 0.5)
	switch {
	case k < 0:
		k = 0
	case k > 255:
		k = 255
	}
	return Gray(uint8(k))
}

// ShadeFace computes the flat color of tri under light. A degenerate face
// returns math3d.ErrDegenerateVector and one with non-positive intensity
// returns ErrBackFacing; both mean the face is culled.
func ShadeFace(tri [3]math3d.Vec3, light math3d.Vec3) (Color, error) {
	n, err := FaceNormal(tri[0], tri[1], tri[2])
	if err != nil {
		return Color{}, err
	}
	i := Intensity(n, light)
	if i <= 0 {
		return Color{}, ErrBackFacing
	}
	return ShadeColor(i), nil
}
