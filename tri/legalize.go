// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tri

import (
	"github.com/WireFisher/parallel-delaunay/geo"
	"github.com/cpmech/gosl/chk"
)

// maximum sweeps of RelegalizeAllTriangles before giving up
const maxRelegalizePasses = 64

// illegal reports whether edge e must be flipped: the apex of the twin
// triangle lies strictly inside the circumcircle of e's triangle. A
// co-circular quartet (determinant within the float-equality band) is
// decided canonically: the diagonal must contain the lowest of the four
// points, so independently built triangulations agree on the same
// diagonal whatever their insertion order.
func (o *Delaunay) illegal(e int) bool {
	tw := o.edges[e].Twin
	if tw == nilIdx {
		return false
	}
	t := o.edges[e].Tri
	d := o.pts[o.edges[o.edges[tw].Next].Head]

	// cached-circle fast reject; the determinant decides anything close
	if o.tris[t].RadSq > 0 {
		dd := (d.X-o.tris[t].CircX)*(d.X-o.tris[t].CircX) + (d.Y-o.tris[t].CircY)*(d.Y-o.tris[t].CircY)
		if dd > o.tris[t].RadSq*(1.0+1e-6) {
			return false
		}
	}

	a := o.pts[o.tris[t].V[0]]
	b := o.pts[o.tris[t].V[1]]
	c := o.pts[o.tris[t].V[2]]
	det := geo.InCircle(a, b, c, d)
	if det > geo.FloatEq {
		return true
	}
	if det < -geo.FloatEq {
		return false
	}
	tail := o.pts[o.edges[e].Tail]
	head := o.pts[o.edges[e].Head]
	apex := o.pts[o.edges[o.edges[e].Next].Head]
	low := lowestOfFour(tail, head, apex, d)
	return !samePoint(low, tail) && !samePoint(low, head)
}

// lowestOfFour returns the point with the smallest (y, x) pair
func lowestOfFour(a, b, c, d geo.Point) (low geo.Point) {
	low = a
	for _, p := range []geo.Point{b, c, d} {
		if p.Y < low.Y || (p.Y == low.Y && p.X < low.X) {
			low = p
		}
	}
	return
}

func samePoint(a, b geo.Point) bool {
	return a.X == b.X && a.Y == b.Y
}

// legalize restores the Delaunay property around the newly inserted point
// pi; e is an edge opposite pi. Flipping recurses into the two outer edges
// of the former twin triangle.
func (o *Delaunay) legalize(pi, e int) {
	if !o.tris[o.edges[e].Tri].Leaf {
		return
	}
	if !o.illegal(e) {
		return
	}
	f1, f2 := o.flip(e)
	// after the flip, the edges opposite pi in the two new triangles
	o.legalize(pi, f1)
	o.legalize(pi, f2)
}

// flip replaces the two triangles sharing edge e by the two triangles
// sharing the flipped diagonal. It returns the two edges of the former twin
// triangle, now owned by the new triangles, for recursive legalization.
func (o *Delaunay) flip(e int) (f1, f2 int) {
	tw := o.edges[e].Twin
	chk.IntAssertLessThan(nilIdx, tw)
	t := o.edges[e].Tri
	u := o.edges[tw].Tri

	a := o.edges[e].Tail
	b := o.edges[e].Head
	p := o.edges[o.edges[e].Next].Head // apex of t
	d := o.edges[o.edges[tw].Next].Head // apex of u

	twBP := o.edges[o.edges[e].Next].Twin  // b->p side of t
	twPA := o.edges[o.edges[e].Prev].Twin  // p->a side of t
	twAD := o.edges[o.edges[tw].Next].Twin // a->d side of u
	twDB := o.edges[o.edges[tw].Prev].Twin // d->b side of u

	// new triangles around the flipped diagonal p-d
	n0 := o.newTriangle(a, d, p)
	n1 := o.newTriangle(d, b, p)

	o.setTwin(o.tris[n0].E[0], twAD)            // a->d
	o.setTwin(o.tris[n0].E[2], twPA)            // p->a
	o.setTwin(o.tris[n1].E[0], twDB)            // d->b
	o.setTwin(o.tris[n1].E[1], twBP)            // b->p
	o.setTwin(o.tris[n0].E[1], o.tris[n1].E[2]) // d->p / p->d

	o.tris[t].Leaf = false
	o.tris[u].Leaf = false
	o.tris[n0].Leaf = true
	o.tris[n1].Leaf = true
	o.tris[t].Children = []int{n0, n1}
	o.tris[u].Children = []int{n0, n1}

	return o.tris[n0].E[0], o.tris[n1].E[0]
}

// RelegalizeAllTriangles re-runs edge-flip legalization over the whole live
// triangulation after a geometric rewrite of the point coordinates. It
// sweeps until no flip fires; the pass cap bounds the rewrites whose
// geometry cannot settle (a polar cap is not embeddable in the plane
// around its pole).
func (o *Delaunay) RelegalizeAllTriangles() {
	for t := 0; t < len(o.tris); t++ {
		if o.tris[t].Leaf {
			o.computeCircumcircle(t)
		}
	}
	for pass := 0; pass < maxRelegalizePasses; pass++ {
		flipped := false
		for t := 0; t < len(o.tris); t++ {
			if !o.tris[t].Leaf {
				continue
			}
			for k := 0; k < 3; k++ {
				e := o.tris[t].E[k]
				if o.illegal(e) {
					o.flip(e)
					flipped = true
					break
				}
			}
		}
		if !flipped {
			return
		}
	}
}
