package xctid

import "math"

// cubicBezier evaluates a cubic-bezier(x1, y1, x2, y2) timing curve. Outside
// [0,1] the curve extends linearly along its endpoint gradient, matching the
// browser behavior the animation was lifted from.
type cubicBezier struct {
	x1, y1, x2, y2 float64
}

func newCubicBezier(curves []float64) cubicBezier {
	return cubicBezier{x1: curves[0], y1: curves[1], x2: curves[2], y2: curves[3]}
}

func (c cubicBezier) value(t float64) float64 {
	if t <= 0.0 {
		gradient := 0.0
		if c.x1 > 0.0 {
			gradient = c.y1 / c.x1
		} else if c.y1 == 0.0 && c.x2 > 0.0 {
			gradient = c.y2 / c.x2
		}
		return gradient * t
	}

	if t >= 1.0 {
		gradient := 0.0
		if c.x2 < 1.0 {
			gradient = (c.y2 - 1.0) / (c.x2 - 1.0)
		} else if c.x2 == 1.0 && c.x1 < 1.0 {
			gradient = (c.y1 - 1.0) / (c.x1 - 1.0)
		}
		return 1.0 + gradient*(t-1.0)
	}

	// Bisect on x to find the curve parameter, then evaluate y there.
	start, end, mid := 0.0, 1.0, 0.0
	for start < end {
		mid = (start + end) / 2
		xEst := bezierCalc(c.x1, c.x2, mid)
		if math.Abs(t-xEst) < 0.00001 {
			return bezierCalc(c.y1, c.y2, mid)
		}
		if xEst < t {
			start = mid
		} else {
			end = mid
		}
	}
	return bezierCalc(c.y1, c.y2, mid)
}

func bezierCalc(a, b, m float64) float64 {
	return 3.0*a*(1-m)*(1-m)*m + 3.0*b*(1-m)*m*m + m*m*m
}
