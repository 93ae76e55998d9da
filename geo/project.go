// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"math"
)

// StereographicProject projects (lon, lat) onto the tangent plane at
// (clon, clat) and expresses the planar point in pseudo lon-lat degrees:
// the returned longitude is the azimuth of the point around the projection
// center, normalized to [0, 360), and the returned latitude decreases from
// 90 with the stereographic radial distance. The projection is conformal
// around the center; the inverse is never needed because the kernel keeps
// the geographic coordinates authoritative and swaps views afterwards.
func StereographicProject(lon, lat, clon, clat float64) (plon, plat float64) {
	λ := DegToRad(lon)
	φ := DegToRad(lat)
	λ0 := DegToRad(clon)
	φ0 := DegToRad(clat)

	// angular distance from the center and azimuth around it
	cosc := math.Sin(φ0)*math.Sin(φ) + math.Cos(φ0)*math.Cos(φ)*math.Cos(λ-λ0)
	if cosc > 1.0 {
		cosc = 1.0
	}
	if cosc < -1.0 {
		cosc = -1.0
	}
	c := math.Acos(cosc)
	az := math.Atan2(math.Cos(φ)*math.Sin(λ-λ0),
		math.Cos(φ0)*math.Sin(φ)-math.Sin(φ0)*math.Cos(φ)*math.Cos(λ-λ0))

	plon = RadToDeg(az)
	if plon < 0.0 {
		plon += 360.0
	}
	if plon >= 360.0 {
		plon -= 360.0
	}
	plat = 90.0 - RadToDeg(2.0*math.Tan(c*0.5))
	return
}

// RotateShift applies the +90 degree longitude offset (mod 360) that keeps a
// polar chunk away from its own projection-induced seam
func RotateShift(plon float64) float64 {
	plon += 90.0
	if plon >= 360.0 {
		plon -= 360.0
	}
	return plon
}
