// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// Boundary is an axis-aligned lon-lat rectangle. A boundary is cyclic when
// it wraps the longitude seam (MinLon > MaxLon).
type Boundary struct {
	MinLon float64
	MaxLon float64
	MinLat float64
	MaxLat float64
}

// NewBoundary returns a boundary from its four sides
func NewBoundary(minLon, maxLon, minLat, maxLat float64) Boundary {
	return Boundary{MinLon: minLon, MaxLon: maxLon, MinLat: minLat, MaxLat: maxLat}
}

// Equal compares all four sides exactly
func (o Boundary) Equal(b Boundary) bool {
	return o.MinLon == b.MinLon && o.MaxLon == b.MaxLon && o.MinLat == b.MinLat && o.MaxLat == b.MaxLat
}

// Within reports whether o lies inside b (sides may coincide)
func (o Boundary) Within(b Boundary) bool {
	return o.MinLat >= b.MinLat && o.MinLon >= b.MinLon && o.MaxLat <= b.MaxLat && o.MaxLon <= b.MaxLon
}

// IsCyclic reports whether this boundary wraps the longitude seam
func (o Boundary) IsCyclic() bool {
	return o.MinLon > o.MaxLon
}

// Contains reports whether (lon, lat) lies inside the boundary with
// min-inclusive max-exclusive semantics on both axes
func (o Boundary) Contains(lon, lat float64) bool {
	return lon >= o.MinLon && lon < o.MaxLon && lat >= o.MinLat && lat < o.MaxLat
}

// Overlaps reports whether two boundaries overlap with nonempty interior
func (o Boundary) Overlaps(b Boundary) bool {
	if o.MaxLat <= b.MinLat || o.MinLat >= b.MaxLat {
		return false
	}
	if o.MaxLon <= b.MinLon || o.MinLon >= b.MaxLon {
		return false
	}
	return true
}

// Shifted returns the boundary translated by dlon degrees of longitude
func (o Boundary) Shifted(dlon float64) Boundary {
	return Boundary{MinLon: o.MinLon + dlon, MaxLon: o.MaxLon + dlon, MinLat: o.MinLat, MaxLat: o.MaxLat}
}

// Expand grows every side symmetrically by ratio of the current extent
func (o *Boundary) Expand(ratio float64) {
	dlat := (o.MaxLat - o.MinLat) * ratio * 0.5
	dlon := (o.MaxLon - o.MinLon) * ratio * 0.5
	o.MinLat -= dlat
	o.MaxLat += dlat
	o.MinLon -= dlon
	o.MaxLon += dlon
}

// Legalize clamps the boundary against outer. The longitude clamp is skipped
// when the parent domain is cyclic.
func (o *Boundary) Legalize(outer *Boundary, isCyclic bool) {
	o.MinLat = math.Max(o.MinLat, outer.MinLat)
	o.MaxLat = math.Min(o.MaxLat, outer.MaxLat)
	if !isCyclic {
		o.MinLon = math.Max(o.MinLon, outer.MinLon)
		o.MaxLon = math.Min(o.MaxLon, outer.MaxLon)
	}
}

// Enlarge extends the boundary component-wise so it covers the given extents
func (o *Boundary) Enlarge(minLon, maxLon, minLat, maxLat float64) {
	o.MinLon = math.Min(o.MinLon, minLon)
	o.MaxLon = math.Max(o.MaxLon, maxLon)
	o.MinLat = math.Min(o.MinLat, minLat)
	o.MaxLat = math.Max(o.MaxLat, maxLat)
}

// Cover extends the boundary to the envelope of the given points plus the
// inclusive-exclusive slack on the max sides
func (o *Boundary) Cover(lons, lats []float64) {
	for i := 0; i < len(lons); i++ {
		o.Enlarge(lons[i], lons[i]+BoundaryShift, lats[i], lats[i]+BoundaryShift)
	}
}

// Envelope returns the exact bounding box of the given points with the
// inclusive-exclusive slack added to the max sides
func Envelope(lons, lats []float64) Boundary {
	b := Boundary{MinLon: 361.0, MaxLon: -1.0, MinLat: 91.0, MaxLat: -91.0}
	for i := 0; i < len(lons); i++ {
		if lons[i] < b.MinLon {
			b.MinLon = lons[i]
		}
		if lons[i] > b.MaxLon {
			b.MaxLon = lons[i]
		}
		if lats[i] < b.MinLat {
			b.MinLat = lats[i]
		}
		if lats[i] > b.MaxLat {
			b.MaxLat = lats[i]
		}
	}
	b.MaxLon += BoundaryShift
	b.MaxLat += BoundaryShift
	return b
}

// String prints the four sides
func (o Boundary) String() string {
	return io.Sf("(%g, %g, %g, %g)", o.MinLon, o.MaxLon, o.MinLat, o.MaxLat)
}
