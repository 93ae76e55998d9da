// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

func Test_orient01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("orient01. orientation predicate")

	a := Point{X: 0, Y: 0}
	b := Point{X: 1, Y: 0}
	c := Point{X: 0, Y: 1}

	if OrientSign(a, b, c) != 1 {
		tst.Errorf("ccw triangle must have positive orientation\n")
		return
	}
	if OrientSign(a, c, b) != -1 {
		tst.Errorf("cw triangle must have negative orientation\n")
		return
	}
	if OrientSign(a, b, Point{X: 2, Y: 0}) != 0 {
		tst.Errorf("collinear points must have zero orientation\n")
		return
	}

	chk.Scalar(tst, "double area", 1e-15, Orient(a, b, c), 1.0)
}

func Test_incircle01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("incircle01. in-circle predicate")

	// unit circumcircle around the origin
	a := Point{X: -1, Y: 0}
	b := Point{X: 1, Y: 0}
	c := Point{X: 0, Y: 1}

	if InCircle(a, b, c, Point{X: 0, Y: 0}) <= 0 {
		tst.Errorf("center must be strictly inside\n")
		return
	}
	if InCircle(a, b, c, Point{X: 2, Y: 2}) >= 0 {
		tst.Errorf("far point must be strictly outside\n")
		return
	}

	// co-circular point sits on the tie band
	onCircle := InCircle(a, b, c, Point{X: 0, Y: -1})
	chk.Scalar(tst, "co-circular determinant", 1e-12, onCircle, 0)
}

func Test_segments01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("segments01. segment intersection")

	p := Point{X: 0, Y: 0}
	q := Point{X: 2, Y: 2}
	r := Point{X: 0, Y: 2}
	s := Point{X: 2, Y: 0}

	if !SegmentsIntersect(p, q, r, s) {
		tst.Errorf("crossing diagonals must intersect\n")
		return
	}
	if SegmentsIntersect(p, Point{X: 1, Y: 0}, Point{X: 0, Y: 1}, Point{X: 1, Y: 1}) {
		tst.Errorf("disjoint segments must not intersect\n")
		return
	}
}

func Test_boundary01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("boundary01. boundary operations")

	b := NewBoundary(0, 360, -90, 90)
	if !b.Contains(0, -90) {
		tst.Errorf("min sides must be inclusive\n")
		return
	}
	if b.Contains(360, 0) {
		tst.Errorf("max sides must be exclusive\n")
		return
	}

	inner := NewBoundary(10, 20, -10, 10)
	if !inner.Within(b) {
		tst.Errorf("inner boundary must be within the global one\n")
		return
	}

	// symmetric expansion then clamp
	e := inner
	e.Expand(0.2)
	if e.MinLon >= inner.MinLon || e.MaxLon <= inner.MaxLon {
		tst.Errorf("expansion must grow the longitude sides\n")
		return
	}
	e.Legalize(&b, false)
	if !e.Within(b) {
		tst.Errorf("legalized boundary must lie within the outer one\n")
		return
	}

	// cyclic grids skip the longitude clamp
	c := NewBoundary(-10, 370, -10, 10)
	c.Legalize(&b, true)
	chk.Scalar(tst, "min_lon unclamped", 1e-15, c.MinLon, -10)
	chk.Scalar(tst, "max_lon unclamped", 1e-15, c.MaxLon, 370)

	cyc := NewBoundary(350, 10, -10, 10)
	if !cyc.IsCyclic() {
		tst.Errorf("wrapping boundary must be cyclic\n")
		return
	}
}

func Test_boundary02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("boundary02. point envelope")

	lons := []float64{10, 20, 15}
	lats := []float64{-5, 5, 0}
	env := Envelope(lons, lats)
	chk.Scalar(tst, "min_lon", 1e-15, env.MinLon, 10)
	chk.Scalar(tst, "max_lon", 1e-15, env.MaxLon, 20+BoundaryShift)
	chk.Scalar(tst, "min_lat", 1e-15, env.MinLat, -5)
	chk.Scalar(tst, "max_lat", 1e-15, env.MaxLat, 5+BoundaryShift)
}

func Test_project01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("project01. stereographic projection at the north pole")

	// the pole itself projects to radial distance zero
	_, plat := StereographicProject(123.0, 90.0, 0.0, 90.0)
	chk.Scalar(tst, "pole radial distance", 1e-12, plat, 90.0)

	// points on the same parallel share the projected latitude
	_, plat1 := StereographicProject(10.0, 60.0, 0.0, 90.0)
	_, plat2 := StereographicProject(200.0, 60.0, 0.0, 90.0)
	chk.Scalar(tst, "parallel invariance", 1e-12, plat1, plat2)

	// azimuths of points on a parallel stay apart by their lon difference;
	// around the north pole the azimuth (180 - lon) runs against longitude
	plon1, _ := StereographicProject(10.0, 60.0, 0.0, 90.0)
	plon2, _ := StereographicProject(50.0, 60.0, 0.0, 90.0)
	dlon := math.Mod(plon2-plon1+360.0, 360.0)
	chk.Scalar(tst, "azimuth difference", 1e-10, dlon, 320.0)

	// projected latitude decreases monotonically away from the pole
	_, phigh := StereographicProject(0.0, 80.0, 0.0, 90.0)
	_, plow := StereographicProject(0.0, 50.0, 0.0, 90.0)
	if phigh <= plow {
		tst.Errorf("projection must preserve the radial order: %g <= %g\n", phigh, plow)
		return
	}

	// radial distance grows like 2*tan(c/2): check the derivative numerically
	rad := func(lat float64) float64 {
		_, p := StereographicProject(0.0, lat, 0.0, 90.0)
		return p
	}
	lat := 70.0
	dana := 2.0 / (1.0 + math.Cos(DegToRad(90.0-lat))) // d plat / d lat = sec²(c/2) at colat c
	dnum, _ := num.DerivCentral(func(x float64, args ...interface{}) (res float64) {
		return rad(x)
	}, lat, 1e-3)
	io.Pforan("dana=%v dnum=%v\n", dana, dnum)
	chk.AnaNum(tst, "d(plat)/d(lat)", 1e-7, dana, dnum, chk.Verbose)
}

func Test_project02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("project02. rotate shift and disabling circles")

	chk.Scalar(tst, "shift below seam", 1e-15, RotateShift(100.0), 190.0)
	chk.Scalar(tst, "shift wraps", 1e-15, RotateShift(350.0), 80.0)

	circle := [3]float64{80.0, 65.6, 0.75}
	if !PointInCircle(80.1, 65.6, circle) {
		tst.Errorf("point near the center must be inside\n")
		return
	}
	if PointInCircle(82.0, 65.6, circle) {
		tst.Errorf("point two degrees away must be outside\n")
		return
	}
}
