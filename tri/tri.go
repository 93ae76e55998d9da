// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tri implements the planar Delaunay kernel: an incremental-insertion
// triangulator with edge-flip legalization over a point cloud inside an
// axis-aligned bounding box. Triangles and directed edges live in arenas
// addressed by integer indices; the insertion history forms a DAG used for
// point location.
package tri

import (
	"errors"

	"github.com/WireFisher/parallel-delaunay/geo"
	"github.com/cpmech/gosl/chk"
)

// ErrInsufficient tells the caller that the triangulation cannot answer with
// the given buffers or bounding box; recoverable by halo or buffer growth
var ErrInsufficient = errors.New("triangulation insufficient")

// superSlack scales the super-triangle relative to the longer side of the
// bounding box
const superSlack = 20.0

// nil index for absent twins and triangles
const nilIdx = -1

// Edge is a directed edge in the arena. Twin is the opposite-direction edge
// in the neighbouring triangle or nilIdx; Next/Prev walk the ring of the
// owning triangle.
type Edge struct {
	Head int // point index at the arrow
	Tail int // point index at the base
	Twin int
	Next int
	Prev int
	Tri  int // owning triangle
}

// Triangle is an arena slot. Non-leaf triangles stay in the history DAG with
// their children recorded for point location.
type Triangle struct {
	V        [3]int // CCW vertices (point indices)
	E        [3]int // E[k] goes V[k] -> V[(k+1)%3]
	Leaf     bool
	Children []int
	CircX    float64
	CircY    float64
	RadSq    float64
}

// Transport is the wire form of a triangle: three vertices carrying
// coordinates and global ids
type Transport struct {
	V [3]geo.Point
}

// Delaunay owns the point cloud and the triangle/edge arenas. The first
// three points are the virtual super-triangle vertices.
type Delaunay struct {
	pts   []geo.Point
	tris  []Triangle
	edges []Edge
	box   geo.Boundary
}

// NewDelaunay triangulates the given points (inserted in input order) inside
// box. The ids array gives the stable global id of each point. It fails with
// ErrInsufficient when a point escapes the super-triangle.
func NewDelaunay(lons, lats []float64, ids []int, box geo.Boundary) (o *Delaunay, err error) {
	chk.IntAssert(len(lons), len(lats))
	chk.IntAssert(len(lons), len(ids))

	o = new(Delaunay)
	o.box = box

	// super-triangle scaled by the longer box side (not the diagonal): its
	// apex and base corners sit superSlack sides from the box centre, its
	// base only one side below the centre
	dx := box.MaxLon - box.MinLon
	dy := box.MaxLat - box.MinLat
	diag := dx
	if dy > diag {
		diag = dy
	}
	if diag <= 0 {
		return nil, chk.Err("cannot triangulate inside a degenerate box %v", box)
	}
	midx := (box.MinLon + box.MaxLon) * 0.5
	midy := (box.MinLat + box.MaxLat) * 0.5
	o.pts = make([]geo.Point, 3, 3+len(lons))
	o.pts[0] = geo.Point{X: midx - superSlack*diag, Y: midy - diag, Id: -1}
	o.pts[1] = geo.Point{X: midx + superSlack*diag, Y: midy - diag, Id: -1}
	o.pts[2] = geo.Point{X: midx, Y: midy + superSlack*diag, Id: -1}

	root := o.newTriangle(0, 1, 2)
	o.tris[root].Leaf = true

	for i := 0; i < len(lons); i++ {
		o.pts = append(o.pts, geo.Point{X: lons[i], Y: lats[i], Id: ids[i]})
		err = o.insert(len(o.pts) - 1)
		if err != nil {
			return nil, err
		}
	}

	o.removeVirtualTriangles()
	return
}

// NumPoints returns the number of real (non-virtual) points
func (o *Delaunay) NumPoints() int {
	return len(o.pts) - 3
}

// newTriangle allocates a triangle with fresh edges; twins are left unset
func (o *Delaunay) newTriangle(a, b, c int) (t int) {
	t = len(o.tris)
	e0 := len(o.edges)
	o.edges = append(o.edges,
		Edge{Tail: a, Head: b, Twin: nilIdx, Next: e0 + 1, Prev: e0 + 2, Tri: t},
		Edge{Tail: b, Head: c, Twin: nilIdx, Next: e0 + 2, Prev: e0, Tri: t},
		Edge{Tail: c, Head: a, Twin: nilIdx, Next: e0, Prev: e0 + 1, Tri: t},
	)
	o.tris = append(o.tris, Triangle{V: [3]int{a, b, c}, E: [3]int{e0, e0 + 1, e0 + 2}})
	o.computeCircumcircle(t)
	return
}

// setTwin pairs a child edge with the neighbour edge formerly paired to the
// parent's copy of the same segment
func (o *Delaunay) setTwin(e, twin int) {
	o.edges[e].Twin = twin
	if twin != nilIdx {
		o.edges[twin].Twin = e
	}
}

// computeCircumcircle caches the circumcenter and squared radius
func (o *Delaunay) computeCircumcircle(t int) {
	a := o.pts[o.tris[t].V[0]]
	b := o.pts[o.tris[t].V[1]]
	c := o.pts[o.tris[t].V[2]]
	ab := a.X*a.X + a.Y*a.Y
	cd := b.X*b.X + b.Y*b.Y
	ef := c.X*c.X + c.Y*c.Y
	den := a.X*(c.Y-b.Y) + b.X*(a.Y-c.Y) + c.X*(b.Y-a.Y)
	if den == 0 {
		// degenerate (collinear) triangle: no finite circle; a zero radius
		// makes illegal() skip the cached-circle reject
		o.tris[t].CircX = a.X
		o.tris[t].CircY = a.Y
		o.tris[t].RadSq = 0
		return
	}
	cx := (ab*(c.Y-b.Y) + cd*(a.Y-c.Y) + ef*(b.Y-a.Y)) / den / 2.0
	cy := -(ab*(c.X-b.X) + cd*(a.X-c.X) + ef*(b.X-a.X)) / den / 2.0
	o.tris[t].CircX = cx
	o.tris[t].CircY = cy
	o.tris[t].RadSq = (a.X-cx)*(a.X-cx) + (a.Y-cy)*(a.Y-cy)
}

// positionToTriangle returns 0 when p is strictly inside triangle t, k+1 when
// p lies on edge k, and -1 when outside
func (o *Delaunay) positionToTriangle(p geo.Point, t int) int {
	onEdge := 0
	for k := 0; k < 3; k++ {
		a := o.pts[o.tris[t].V[k]]
		b := o.pts[o.tris[t].V[(k+1)%3]]
		s := geo.OrientSign(a, b, p)
		if s < 0 {
			return -1
		}
		if s == 0 {
			onEdge = k + 1
		}
	}
	return onEdge
}

// locate descends the history DAG from the root looking for the leaf
// triangle containing p
func (o *Delaunay) locate(p geo.Point) (t, pos int, err error) {
	t = 0
	pos = o.positionToTriangle(p, t)
	if pos < 0 {
		return nilIdx, 0, ErrInsufficient
	}
	for !o.tris[t].Leaf {
		next := nilIdx
		for _, c := range o.tris[t].Children {
			pos = o.positionToTriangle(p, c)
			if pos >= 0 {
				next = c
				break
			}
		}
		if next == nilIdx {
			return nilIdx, 0, ErrInsufficient
		}
		t = next
	}
	return
}

// insert adds point index pi to the triangulation and legalizes around it
func (o *Delaunay) insert(pi int) (err error) {
	p := o.pts[pi]
	t, pos, err := o.locate(p)
	if err != nil {
		return
	}
	if pos == 0 {
		o.splitInterior(t, pi)
	} else {
		o.splitOnEdge(t, pos-1, pi)
	}
	return
}

// splitInterior replaces t by three children sharing the new vertex
func (o *Delaunay) splitInterior(t, pi int) {
	v := o.tris[t].V
	e := o.tris[t].E

	c0 := o.newTriangle(v[0], v[1], pi)
	c1 := o.newTriangle(v[1], v[2], pi)
	c2 := o.newTriangle(v[2], v[0], pi)

	// outer sides inherit the parent's twins
	o.setTwin(o.tris[c0].E[0], o.edges[e[0]].Twin)
	o.setTwin(o.tris[c1].E[0], o.edges[e[1]].Twin)
	o.setTwin(o.tris[c2].E[0], o.edges[e[2]].Twin)

	// interior sides pair with each other
	o.setTwin(o.tris[c0].E[1], o.tris[c1].E[2]) // v1->p / p->v1
	o.setTwin(o.tris[c1].E[1], o.tris[c2].E[2]) // v2->p / p->v2
	o.setTwin(o.tris[c2].E[1], o.tris[c0].E[2]) // v0->p / p->v0

	o.tris[t].Leaf = false
	o.tris[c0].Leaf = true
	o.tris[c1].Leaf = true
	o.tris[c2].Leaf = true
	o.tris[t].Children = []int{c0, c1, c2}

	// legalize the sides opposite the new vertex
	o.legalize(pi, o.tris[c0].E[0])
	o.legalize(pi, o.tris[c1].E[0])
	o.legalize(pi, o.tris[c2].E[0])
}

// splitOnEdge handles a point landing exactly on edge k of triangle t: the
// two incident triangles are split into four (two when the edge is on the
// hull)
func (o *Delaunay) splitOnEdge(t, k, pi int) {
	e := o.tris[t].E[k]
	tw := o.edges[e].Twin

	a := o.edges[e].Tail
	b := o.edges[e].Head
	c := o.edges[o.tris[t].E[(k+2)%3]].Tail // apex of t (vertex opposite edge k)

	// split t into (a, pi, c) and (pi, b, c)
	twAC := o.edges[o.tris[t].E[(k+2)%3]].Twin // c->a side
	twBC := o.edges[o.tris[t].E[(k+1)%3]].Twin // b->c side

	c0 := o.newTriangle(a, pi, c)
	c1 := o.newTriangle(pi, b, c)
	o.setTwin(o.tris[c0].E[2], twAC)           // c->a
	o.setTwin(o.tris[c1].E[1], twBC)           // b->c
	o.setTwin(o.tris[c0].E[1], o.tris[c1].E[2]) // pi->c / c->pi

	o.tris[t].Leaf = false
	o.tris[c0].Leaf = true
	o.tris[c1].Leaf = true
	o.tris[t].Children = []int{c0, c1}

	if tw == nilIdx {
		o.edges[o.tris[c0].E[0]].Twin = nilIdx
		o.edges[o.tris[c1].E[0]].Twin = nilIdx
		o.legalize(pi, o.tris[c0].E[2])
		o.legalize(pi, o.tris[c1].E[1])
		return
	}

	// split the twin triangle u into (b, pi, d) and (pi, a, d)
	u := o.edges[tw].Tri
	ku := -1
	for j := 0; j < 3; j++ {
		if o.tris[u].E[j] == tw {
			ku = j
			break
		}
	}
	chk.IntAssertLessThan(-1, ku)
	d := o.edges[o.tris[u].E[(ku+2)%3]].Tail
	twBD := o.edges[o.tris[u].E[(ku+2)%3]].Twin // d->b side
	twAD := o.edges[o.tris[u].E[(ku+1)%3]].Twin // a->d side

	u0 := o.newTriangle(b, pi, d)
	u1 := o.newTriangle(pi, a, d)
	o.setTwin(o.tris[u0].E[2], twBD)            // d->b
	o.setTwin(o.tris[u1].E[1], twAD)            // a->d
	o.setTwin(o.tris[u0].E[1], o.tris[u1].E[2]) // pi->d / d->pi

	// pair the halves of the split edge across the old seam
	o.setTwin(o.tris[c0].E[0], o.tris[u1].E[0]) // a->pi / pi->a
	o.setTwin(o.tris[c1].E[0], o.tris[u0].E[0]) // pi->b / b->pi

	o.tris[u].Leaf = false
	o.tris[u0].Leaf = true
	o.tris[u1].Leaf = true
	o.tris[u].Children = []int{u0, u1}

	o.legalize(pi, o.tris[c0].E[2])
	o.legalize(pi, o.tris[c1].E[1])
	o.legalize(pi, o.tris[u0].E[2])
	o.legalize(pi, o.tris[u1].E[1])
}

// removeVirtualTriangles deletes every leaf triangle touching a virtual
// super-triangle vertex
func (o *Delaunay) removeVirtualTriangles() {
	for t := 0; t < len(o.tris); t++ {
		if !o.tris[t].Leaf {
			continue
		}
		for k := 0; k < 3; k++ {
			if o.tris[t].V[k] < 3 {
				o.dropLeaf(t)
				break
			}
		}
	}
}

// dropLeaf removes a leaf triangle from the live triangulation, unhooking
// the twins that point into it
func (o *Delaunay) dropLeaf(t int) {
	o.tris[t].Leaf = false
	for k := 0; k < 3; k++ {
		tw := o.edges[o.tris[t].E[k]].Twin
		if tw != nilIdx {
			o.edges[tw].Twin = nilIdx
			o.edges[o.tris[t].E[k]].Twin = nilIdx
		}
	}
}

// LeafTriangles returns the arena indices of the live triangles in
// deterministic (arena) order
func (o *Delaunay) LeafTriangles() (res []int) {
	for t := 0; t < len(o.tris); t++ {
		if o.tris[t].Leaf {
			res = append(res, t)
		}
	}
	return
}

// Vertex returns the point behind vertex k of triangle t
func (o *Delaunay) Vertex(t, k int) geo.Point {
	return o.pts[o.tris[t].V[k]]
}

// transport builds the wire form of triangle t
func (o *Delaunay) transport(t int) (tt Transport) {
	for k := 0; k < 3; k++ {
		tt.V[k] = o.pts[o.tris[t].V[k]]
	}
	return
}
