// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/WireFisher/parallel-delaunay/geo"
	"github.com/cpmech/gosl/rnd"
	"github.com/cpmech/gosl/utl"
)

// NewLatLonGrid builds a uniform nlon x nlat grid over [0,359] x [-89,89]
// with the cyclic global boundary [0,360] x [-90,90]. No point coincides
// with a pole.
func NewLatLonGrid(nlon, nlat int) (o *Grid) {
	o = new(Grid)
	xx := utl.LinSpace(0, 359, nlon)
	yy := utl.LinSpace(-89, 89, nlat)
	for i := 0; i < nlat; i++ {
		for j := 0; j < nlon; j++ {
			o.Lons = append(o.Lons, xx[j])
			o.Lats = append(o.Lats, yy[i])
		}
	}
	o.Boundary = geo.NewBoundary(0, 360, -90, 90)
	o.Cyclic = true
	return
}

// NewLatLonGridWithPoles builds a uniform grid plus nsp south and nnp north
// coincident polar points
func NewLatLonGridWithPoles(nlon, nlat, nsp, nnp int) (o *Grid) {
	o = NewLatLonGrid(nlon, nlat)
	for i := 0; i < nsp; i++ {
		o.Lons = append(o.Lons, float64(i)) // distinct lons, same pole
		o.Lats = append(o.Lats, -90.0)
	}
	for i := 0; i < nnp; i++ {
		o.Lons = append(o.Lons, float64(i))
		o.Lats = append(o.Lats, 90.0)
	}
	if nnp > 0 {
		// the max side is exclusive: shift it so the pole points are owned
		o.Boundary.MaxLat = 90.0 + geo.BoundaryShift
	}
	return
}

// NewRandomGrid builds n randomly placed points with a fixed seed so runs
// are reproducible
func NewRandomGrid(n int, seed int) (o *Grid) {
	o = new(Grid)
	rnd.Init(seed)
	for i := 0; i < n; i++ {
		o.Lons = append(o.Lons, rnd.Float64(0, 359))
		o.Lats = append(o.Lats, rnd.Float64(-89, 89))
	}
	o.Boundary = geo.NewBoundary(0, 360, -90, 90)
	o.Cyclic = true
	o.DeleteRedundantPoints()
	return
}

// NewNonMonotonicGrid builds a grid whose longitude extent wraps the seam
// (MinLon > MaxLon), as tripolar ocean grids do
func NewNonMonotonicGrid(nlon, nlat int) (o *Grid) {
	o = new(Grid)
	xx := utl.LinSpace(280, 280+160, nlon) // crosses 360
	yy := utl.LinSpace(-60, 60, nlat)
	for i := 0; i < nlat; i++ {
		for j := 0; j < nlon; j++ {
			lon := xx[j]
			if lon >= 360.0 {
				lon -= 360.0
			}
			o.Lons = append(o.Lons, lon)
			o.Lats = append(o.Lats, yy[i])
		}
	}
	o.Boundary = geo.NewBoundary(280, 80+geo.BoundaryShift, -60, 60+geo.BoundaryShift)
	o.Cyclic = true // tripolar-style grids wrap the seam
	return
}
