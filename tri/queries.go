// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tri

import (
	"github.com/WireFisher/parallel-delaunay/geo"
	"github.com/cpmech/gosl/chk"
)

// TrianglesIntersectingSegment appends every leaf triangle any of whose
// three edges geometrically intersects the segment pq. Exceeding cap fails
// with ErrInsufficient.
func (o *Delaunay) TrianglesIntersectingSegment(p, q geo.Point, cap int) (res []Transport, err error) {
	for t := 0; t < len(o.tris); t++ {
		if !o.tris[t].Leaf {
			continue
		}
		for k := 0; k < 3; k++ {
			a := o.pts[o.tris[t].V[k]]
			b := o.pts[o.tris[t].V[(k+1)%3]]
			if geo.SegmentsIntersect(a, b, p, q) {
				if len(res) == cap {
					return nil, ErrInsufficient
				}
				res = append(res, o.transport(t))
				break
			}
		}
	}
	return
}

// TrianglesInRegion appends every leaf triangle with a vertex inside the
// box (min-inclusive, max-exclusive). The vertex rule is the canonical
// location the global assembler partitions by: near-pole triangles keep a
// usable location where the circumcenter leaves the coordinate range, and
// boundary triangles emitted from both sides collapse in the dedup.
func (o *Delaunay) TrianglesInRegion(box geo.Boundary, cap int) (res []Transport, err error) {
	for t := 0; t < len(o.tris); t++ {
		if !o.tris[t].Leaf {
			continue
		}
		for k := 0; k < 3; k++ {
			p := o.pts[o.tris[t].V[k]]
			if box.Contains(p.X, p.Y) {
				if len(res) == cap {
					return nil, ErrInsufficient
				}
				res = append(res, o.transport(t))
				break
			}
		}
	}
	return
}

// outerEdge reports whether edge e lies on the hull of the live
// triangulation
func (o *Delaunay) outerEdge(e int) bool {
	tw := o.edges[e].Twin
	return tw == nilIdx || !o.tris[o.edges[tw].Tri].Leaf
}

// AllOuterEdgesOutOfRegion returns true iff every hull edge lies strictly
// outside the rectangle [minLon,maxLon]x[minLat,maxLat]. An inverted
// interval (min >= max) is empty, so edges trivially clear it.
func (o *Delaunay) AllOuterEdgesOutOfRegion(minLon, maxLon, minLat, maxLat float64) bool {
	if minLon >= maxLon || minLat >= maxLat {
		return true
	}
	corners := [4]geo.Point{
		{X: minLon, Y: minLat},
		{X: maxLon, Y: minLat},
		{X: maxLon, Y: maxLat},
		{X: minLon, Y: maxLat},
	}
	for t := 0; t < len(o.tris); t++ {
		if !o.tris[t].Leaf {
			continue
		}
		for k := 0; k < 3; k++ {
			e := o.tris[t].E[k]
			if !o.outerEdge(e) {
				continue
			}
			a := o.pts[o.edges[e].Tail]
			b := o.pts[o.edges[e].Head]
			if pointInRect(a, minLon, maxLon, minLat, maxLat) || pointInRect(b, minLon, maxLon, minLat, maxLat) {
				return false
			}
			for j := 0; j < 4; j++ {
				if geo.SegmentsIntersect(a, b, corners[j], corners[(j+1)%4]) {
					return false
				}
			}
		}
	}
	return true
}

func pointInRect(p geo.Point, minLon, maxLon, minLat, maxLat float64) bool {
	return p.X > minLon && p.X < maxLon && p.Y > minLat && p.Y < maxLat
}

// CyclicTrianglesForRotatedGrid returns the arena indices of the leaf
// triangles straddling the seam segment (head, tail) left behind by a polar
// re-projection
func (o *Delaunay) CyclicTrianglesForRotatedGrid(head, tail geo.Point) (res []int) {
	for t := 0; t < len(o.tris); t++ {
		if !o.tris[t].Leaf {
			continue
		}
		for k := 0; k < 3; k++ {
			a := o.pts[o.tris[t].V[k]]
			b := o.pts[o.tris[t].V[(k+1)%3]]
			if geo.SegmentsIntersect(a, b, head, tail) {
				res = append(res, t)
				break
			}
		}
	}
	return
}

// CorrectCyclicTriangles rewrites the longitudes of seam-straddling
// triangles (spanning more than 180 degrees) by adding 360 to their
// vertices below 180, so the vertices become geometrically adjacent again.
// When the grid is not cyclic the straddling triangles connect points that
// are not neighbours on the sphere, so they are removed instead.
func (o *Delaunay) CorrectCyclicTriangles(list []int, isCyclic bool) {
	for _, t := range list {
		if !o.tris[t].Leaf {
			continue
		}
		if !isCyclic {
			o.dropLeaf(t)
			continue
		}
		lo, hi := 361.0, -1.0
		for k := 0; k < 3; k++ {
			x := o.pts[o.tris[t].V[k]].X
			if x < lo {
				lo = x
			}
			if x > hi {
				hi = x
			}
		}
		if hi-lo <= 180.0 {
			continue
		}
		for k := 0; k < 3; k++ {
			v := o.tris[t].V[k]
			if o.pts[v].X < 180.0 {
				o.pts[v].X += 360.0
			}
		}
		o.computeCircumcircle(t)
	}
}

// RemoveTrianglesOnOrOutOfBoundary trims the live triangulation to box:
// leaf triangles with no vertex inside the box (min-inclusive,
// max-exclusive, matching the chunk ownership rule) are removed
func (o *Delaunay) RemoveTrianglesOnOrOutOfBoundary(box geo.Boundary) {
	for t := 0; t < len(o.tris); t++ {
		if !o.tris[t].Leaf {
			continue
		}
		inside := false
		for k := 0; k < 3; k++ {
			p := o.pts[o.tris[t].V[k]]
			if box.Contains(p.X, p.Y) {
				inside = true
				break
			}
		}
		if !inside {
			o.dropLeaf(t)
		}
	}
}

// UpdateAllPointsCoord swaps the coordinate store (projected to geographic
// or back) without rebuilding the topology. Circumcircles are refreshed.
func (o *Delaunay) UpdateAllPointsCoord(lons, lats []float64) {
	chk.IntAssert(len(lons), len(o.pts)-3)
	chk.IntAssert(len(lats), len(o.pts)-3)
	for i := 0; i < len(lons); i++ {
		o.pts[3+i].X = lons[i]
		o.pts[3+i].Y = lats[i]
	}
	for t := 0; t < len(o.tris); t++ {
		if o.tris[t].Leaf {
			o.computeCircumcircle(t)
		}
	}
}
