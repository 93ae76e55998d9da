// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geo implements the geometric primitives of the triangulator:
// points, lon-lat boundaries, robust orientation and in-circle predicates,
// and the stereographic projection used by polar chunks
package geo

import (
	"math"
)

// tolerances shared by the whole pipeline
const (
	FloatEq       = 1e-10 // float-equality tie band
	BoundaryShift = 1e-4  // inclusive-exclusive slack added to side maxima
)

// Point holds planar (or lon-lat) coordinates and a stable global id
type Point struct {
	X  float64 // longitude or projected x
	Y  float64 // latitude or projected y
	Id int     // global point index; -1 for virtual points
}

// Dist returns the Euclidean distance to q
func (o Point) Dist(q Point) float64 {
	return math.Sqrt((o.X-q.X)*(o.X-q.X) + (o.Y-q.Y)*(o.Y-q.Y))
}

// Orient returns the signed double area of triangle abc.
// Positive means counter-clockwise, negative clockwise, zero collinear
// (within double precision; no symbolic perturbation).
func Orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// OrientSign reduces Orient to {-1, 0, +1} with the FloatEq tie band
func OrientSign(a, b, c Point) int {
	det := Orient(a, b, c)
	if det > FloatEq {
		return 1
	}
	if det < -FloatEq {
		return -1
	}
	return 0
}

// InCircle returns a positive value when d lies strictly inside the
// circumcircle of the CCW triangle abc, via the 4x4 determinant on the
// parabolic lift (x, y, x²+y², 1)
func InCircle(a, b, c, d Point) float64 {
	adx := a.X - d.X
	ady := a.Y - d.Y
	bdx := b.X - d.X
	bdy := b.Y - d.Y
	cdx := c.X - d.X
	cdy := c.Y - d.Y

	abdet := adx*bdy - bdx*ady
	bcdet := bdx*cdy - cdx*bdy
	cadet := cdx*ady - adx*cdy
	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy

	return alift*bcdet + blift*cadet + clift*abdet
}

// SegmentsIntersect reports whether the segments pq and rs cross or touch.
// Besides a proper crossing, an endpoint of one segment lying on the other
// (within the FloatEq band) counts, a shared endpoint included.
func SegmentsIntersect(p, q, r, s Point) bool {
	d1 := OrientSign(r, s, p)
	d2 := OrientSign(r, s, q)
	d3 := OrientSign(p, q, r)
	d4 := OrientSign(p, q, s)
	if d1 != d2 && d3 != d4 && d1 != 0 && d2 != 0 && d3 != 0 && d4 != 0 {
		return true
	}
	if d1 == 0 && onSegment(r, s, p) {
		return true
	}
	if d2 == 0 && onSegment(r, s, q) {
		return true
	}
	if d3 == 0 && onSegment(p, q, r) {
		return true
	}
	if d4 == 0 && onSegment(p, q, s) {
		return true
	}
	return false
}

// onSegment assumes collinearity of p with segment ab
func onSegment(a, b, p Point) bool {
	return p.X >= math.Min(a.X, b.X)-FloatEq && p.X <= math.Max(a.X, b.X)+FloatEq &&
		p.Y >= math.Min(a.Y, b.Y)-FloatEq && p.Y <= math.Max(a.Y, b.Y)+FloatEq
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 { return deg * math.Pi / 180.0 }

// RadToDeg converts radians to degrees
func RadToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// PointInCircle reports whether (lon, lat) lies inside the disabling circle
// {center-lon, center-lat, radius} (degrees)
func PointInCircle(lon, lat float64, circle [3]float64) bool {
	dx := lon - circle[0]
	dy := lat - circle[1]
	return dx*dx+dy*dy < circle[2]*circle[2]
}
