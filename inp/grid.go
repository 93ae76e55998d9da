// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the grid provider and the configuration data read
// from a (.json) file
package inp

import (
	"math"

	"github.com/WireFisher/parallel-delaunay/geo"
	"github.com/cpmech/gosl/chk"
)

// methods for disabling grid points
const (
	NoDisabledPoints = iota // all points participate
	DisableByCircle         // points inside any circle are excluded
)

// Grid holds one spherical mesh: coordinate arrays, the bounding box, the
// cyclic flag, the coincident polar point counts and the optional filters
type Grid struct {
	Lons      []float64    // longitude values, [0, 360)
	Lats      []float64    // latitude values, [-90, 90]
	Mask      []bool       // optional; false excludes the point
	Boundary  geo.Boundary // bounding box; may be non-monotonic (MinLon > MaxLon)
	Cyclic    bool         // wraps the 0/360 seam
	Disabling int          // NoDisabledPoints or DisableByCircle
	Circles   [][3]float64 // disabling circles {lon, lat, radius}
}

// NumPoints returns the raw number of grid points
func (o *Grid) NumPoints() int {
	return len(o.Lons)
}

// PolarPoints counts the points coinciding with the south ('S') or north
// ('N') pole
func (o *Grid) PolarPoints(polar byte) (n int) {
	lat := -90.0
	if polar == 'N' {
		lat = 90.0
	}
	for i := 0; i < len(o.Lats); i++ {
		if math.Abs(o.Lats[i]-lat) < geo.FloatEq {
			n++
		}
	}
	return
}

// enabled reports whether point i participates in the decomposition
func (o *Grid) enabled(i int) bool {
	if o.Mask != nil && !o.Mask[i] {
		return false
	}
	if o.Disabling == DisableByCircle {
		for _, c := range o.Circles {
			if geo.PointInCircle(o.Lons[i], o.Lats[i], c) {
				return false
			}
		}
	}
	return true
}

// ActivePoints returns the coordinates and global indices of the points that
// are neither masked out nor inside a disabling circle. Global indices refer
// to the raw grid arrays so ids stay stable under filtering.
func (o *Grid) ActivePoints() (lons, lats []float64, gids []int) {
	for i := 0; i < len(o.Lons); i++ {
		if o.enabled(i) {
			lons = append(lons, o.Lons[i])
			lats = append(lats, o.Lats[i])
			gids = append(gids, i)
		}
	}
	return
}

// Check validates the grid per the input rules: finite coordinates in range
// and a sane boundary
func (o *Grid) Check() (err error) {
	if len(o.Lons) != len(o.Lats) {
		return chk.Err("coordinate arrays disagree in length: %d != %d", len(o.Lons), len(o.Lats))
	}
	if o.Mask != nil && len(o.Mask) != len(o.Lons) {
		return chk.Err("mask length %d does not match point count %d", len(o.Mask), len(o.Lons))
	}
	for i := 0; i < len(o.Lons); i++ {
		if math.IsNaN(o.Lons[i]) || math.IsNaN(o.Lats[i]) {
			return chk.Err("point %d has NaN coordinates", i)
		}
		if o.Lons[i] < 0 || o.Lons[i] >= 360.0 || o.Lats[i] < -90.0 || o.Lats[i] > 90.0 {
			return chk.Err("point %d is out of range: (%g, %g)", i, o.Lons[i], o.Lats[i])
		}
	}
	b := o.Boundary
	if math.IsNaN(b.MinLon) || math.IsNaN(b.MaxLon) || math.IsNaN(b.MinLat) || math.IsNaN(b.MaxLat) {
		return chk.Err("grid boundary is not finite: %v", b)
	}
	if b.MinLat >= b.MaxLat {
		return chk.Err("grid boundary has empty latitude extent: %v", b)
	}
	return
}

// HasRedundantPoints reports whether two enabled points coincide
func (o *Grid) HasRedundantPoints() bool {
	type key struct{ x, y float64 }
	seen := make(map[key]bool)
	for i := 0; i < len(o.Lons); i++ {
		if !o.enabled(i) {
			continue
		}
		k := key{o.Lons[i], o.Lats[i]}
		if seen[k] {
			return true
		}
		seen[k] = true
	}
	return false
}

// DeleteRedundantPoints masks out later duplicates of coinciding points
func (o *Grid) DeleteRedundantPoints() {
	type key struct{ x, y float64 }
	seen := make(map[key]bool)
	if o.Mask == nil {
		o.Mask = make([]bool, len(o.Lons))
		for i := range o.Mask {
			o.Mask[i] = true
		}
	}
	for i := 0; i < len(o.Lons); i++ {
		if !o.Mask[i] {
			continue
		}
		k := key{o.Lons[i], o.Lats[i]}
		if seen[k] {
			o.Mask[i] = false
			continue
		}
		seen[k] = true
	}
}

// Registry stores grids under integer ids; one instance per
// pipeline invocation would also do, but the registry mirrors how grids are
// identified by integer ids upstream
type Registry struct {
	grids map[int]*Grid
}

// NewRegistry returns an empty grid registry
func NewRegistry() *Registry {
	return &Registry{grids: make(map[int]*Grid)}
}

// Register stores grid g under id
func (o *Registry) Register(id int, g *Grid) {
	o.grids[id] = g
}

// Get returns the grid stored under id
func (o *Registry) Get(id int) *Grid {
	g, ok := o.grids[id]
	if !ok {
		chk.Panic("cannot find grid with id=%d", id)
	}
	return g
}
