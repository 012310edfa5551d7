package xctid

import "math"

// rotationMatrix converts a rotation in degrees to the first four entries of
// a 2D transform matrix: [cos, -sin, sin, cos].
func rotationMatrix(degrees float64) []float64 {
	rad := degrees * math.Pi / 180
	return []float64{math.Cos(rad), -math.Sin(rad), math.Sin(rad), math.Cos(rad)}
}
