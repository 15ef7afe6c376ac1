package sprout

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// translateRotate returns the matrix that rotates by angle (radians) and then
// translates to origin. Returns [a, b, c, d, tx, ty].
func translateRotate(origin Vec2, angle float64) [6]float64 {
	sin, cos := math.Sincos(angle)
	return [6]float64{cos, sin, -sin, cos, origin.X, origin.Y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// transformPoints applies m to every point of src, writing into dst.
func transformPoints(dst, src []Vec2, m [6]float64) []Vec2 {
	dst = dst[:0]
	for _, p := range src {
		dst = append(dst, transformPoint(m, p))
	}
	return dst
}

// rectPoints appends the corners of the local rectangle (x, y, w, h).
func rectPoints(dst []Vec2, x, y, w, h float64) []Vec2 {
	return append(dst[:0], Vec2{x, y}, Vec2{x + w, y}, Vec2{x + w, y + h}, Vec2{x, y + h})
}

// ellipsePoints appends a polygon approximating an axis-aligned ellipse
// centred at the origin.
func ellipsePoints(dst []Vec2, rx, ry float64, segments int) []Vec2 {
	dst = dst[:0]
	for i := 0; i < segments; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(segments))
		dst = append(dst, Vec2{cos * rx, sin * ry})
	}
	return dst
}
