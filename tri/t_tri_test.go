// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tri

import (
	"testing"

	"github.com/WireFisher/parallel-delaunay/geo"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"
	"github.com/cpmech/gosl/utl"
)

// buildGrid triangulates an n x n uniform grid inside box
func buildGrid(tst *testing.T, n int, box geo.Boundary) *Delaunay {
	lons := make([]float64, 0, n*n)
	lats := make([]float64, 0, n*n)
	xx := utl.LinSpace(box.MinLon+1, box.MaxLon-1, n)
	yy := utl.LinSpace(box.MinLat+1, box.MaxLat-1, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			lons = append(lons, xx[j])
			lats = append(lats, yy[i])
		}
	}
	d, err := NewDelaunay(lons, lats, utl.IntRange(n*n), box)
	if err != nil {
		tst.Errorf("triangulation failed: %v\n", err)
		return nil
	}
	return d
}

// checkDelaunay asserts that no live circumcircle strictly contains another
// point (property T1)
func checkDelaunay(tst *testing.T, o *Delaunay) {
	for _, t := range o.LeafTriangles() {
		a := o.pts[o.tris[t].V[0]]
		b := o.pts[o.tris[t].V[1]]
		c := o.pts[o.tris[t].V[2]]
		for i := 3; i < len(o.pts); i++ {
			if i == o.tris[t].V[0] || i == o.tris[t].V[1] || i == o.tris[t].V[2] {
				continue
			}
			if geo.InCircle(a, b, c, o.pts[i]) > 1e-8 {
				tst.Errorf("point %d lies inside circumcircle of triangle %d\n", i, t)
				return
			}
		}
	}
}

// checkTopology asserts twin symmetry and the Euler relation (property T2)
func checkTopology(tst *testing.T, o *Delaunay) {
	leaves := o.LeafTriangles()
	type ekey struct{ lo, hi int }
	undirected := make(map[ekey]int)
	for _, t := range leaves {
		for k := 0; k < 3; k++ {
			e := o.tris[t].E[k]
			tw := o.edges[e].Twin
			if tw != nilIdx {
				if o.edges[tw].Twin != e {
					tst.Errorf("twin of twin must be the edge itself\n")
					return
				}
				if o.edges[tw].Head != o.edges[e].Tail || o.edges[tw].Tail != o.edges[e].Head {
					tst.Errorf("paired twins must have opposite head/tail\n")
					return
				}
			}
			lo, hi := o.edges[e].Tail, o.edges[e].Head
			if lo > hi {
				lo, hi = hi, lo
			}
			undirected[ekey{lo, hi}]++
		}
	}
	for _, cnt := range undirected {
		if cnt > 2 {
			tst.Errorf("an undirected edge may be shared by at most two triangles\n")
			return
		}
	}
	verts := make(map[int]bool)
	for _, t := range leaves {
		for k := 0; k < 3; k++ {
			verts[o.tris[t].V[k]] = true
		}
	}
	V := len(verts)
	E := len(undirected)
	F := len(leaves) + 1 // plus the outer face
	if V-E+F != 2 {
		tst.Errorf("Euler relation violated: V=%d E=%d F=%d\n", V, E, F)
		return
	}
}

func Test_tri01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tri01. four points, two triangles")

	box := geo.NewBoundary(0, 10, 0, 10)
	lons := []float64{1, 9, 9, 1}
	lats := []float64{1, 1, 9, 9}
	d, err := NewDelaunay(lons, lats, utl.IntRange(4), box)
	if err != nil {
		tst.Errorf("triangulation failed: %v\n", err)
		return
	}

	leaves := d.LeafTriangles()
	chk.IntAssert(len(leaves), 2)
	checkDelaunay(tst, d)
	checkTopology(tst, d)
}

func Test_tri02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tri02. uniform grid with collinear points")

	box := geo.NewBoundary(0, 40, 0, 40)
	d := buildGrid(tst, 8, box)
	if d == nil {
		return
	}

	// n x n grid triangulates into 2(n-1)² triangles
	leaves := d.LeafTriangles()
	io.Pforan("num leaf triangles = %v\n", len(leaves))
	chk.IntAssert(len(leaves), 2*7*7)
	checkDelaunay(tst, d)
	checkTopology(tst, d)
}

func Test_tri03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tri03. random cloud")

	rnd.Init(1234)
	n := 200
	box := geo.NewBoundary(0, 100, 0, 100)
	lons := make([]float64, n)
	lats := make([]float64, n)
	for i := 0; i < n; i++ {
		lons[i] = rnd.Float64(5, 95)
		lats[i] = rnd.Float64(5, 95)
	}
	d, err := NewDelaunay(lons, lats, utl.IntRange(n), box)
	if err != nil {
		tst.Errorf("triangulation failed: %v\n", err)
		return
	}
	checkDelaunay(tst, d)
	checkTopology(tst, d)
}

func Test_tri04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tri04. determinism for equal input order")

	box := geo.NewBoundary(0, 40, 0, 40)
	d1 := buildGrid(tst, 6, box)
	d2 := buildGrid(tst, 6, box)
	if d1 == nil || d2 == nil {
		return
	}
	l1 := d1.LeafTriangles()
	l2 := d2.LeafTriangles()
	chk.Ints(tst, "leaf indices", l1, l2)
	for i := range l1 {
		for k := 0; k < 3; k++ {
			chk.IntAssert(d1.tris[l1[i]].V[k], d2.tris[l2[i]].V[k])
		}
	}
}

func Test_triquery01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("triquery01. segment and region queries")

	box := geo.NewBoundary(0, 40, 0, 40)
	d := buildGrid(tst, 8, box)
	if d == nil {
		return
	}

	// a vertical segment through the middle of the grid must cross triangles
	head := geo.Point{X: 20, Y: 0}
	tail := geo.Point{X: 20, Y: 40}
	ts, err := d.TrianglesIntersectingSegment(head, tail, 1000)
	if err != nil {
		tst.Errorf("segment query failed: %v\n", err)
		return
	}
	if len(ts) == 0 {
		tst.Errorf("segment through the cloud must intersect triangles\n")
		return
	}

	// an over-tight cap must fail as insufficient
	_, err = d.TrianglesIntersectingSegment(head, tail, 1)
	if err != ErrInsufficient {
		tst.Errorf("cap overflow must report ErrInsufficient\n")
		return
	}

	// region split: the two halves cover every triangle; triangles with
	// vertices on both sides appear twice and dedup to the full set
	leftHalf := geo.NewBoundary(-50, 20, -50, 90)
	rightHalf := geo.NewBoundary(20, 90, -50, 90)
	lt, err := d.TrianglesInRegion(leftHalf, 10000)
	if err != nil {
		tst.Errorf("region query failed: %v\n", err)
		return
	}
	rt, err := d.TrianglesInRegion(rightHalf, 10000)
	if err != nil {
		tst.Errorf("region query failed: %v\n", err)
		return
	}
	union := make(map[[3]int]bool)
	for _, t := range append(lt, rt...) {
		union[t.CanonicalIds()] = true
	}
	chk.IntAssert(len(union), len(d.LeafTriangles()))
}

func Test_triquery02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("triquery02. outer-edge check")

	box := geo.NewBoundary(0, 40, 0, 40)
	d := buildGrid(tst, 8, box)
	if d == nil {
		return
	}

	// hull edges lie on the envelope of the points: a rectangle strictly
	// inside the cloud is clear of them
	if !d.AllOuterEdgesOutOfRegion(10, 30, 10, 30) {
		tst.Errorf("interior rectangle must be clear of hull edges\n")
		return
	}

	// a rectangle covering the hull is not
	if d.AllOuterEdgesOutOfRegion(-5, 45, -5, 45) {
		tst.Errorf("covering rectangle must see hull edges\n")
		return
	}

	// inverted (empty) intervals pass trivially
	if !d.AllOuterEdgesOutOfRegion(40, 0, 10, 30) {
		tst.Errorf("empty rectangle must pass the check\n")
		return
	}
}

func Test_triupdate01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("triupdate01. coordinate swap and relegalization")

	box := geo.NewBoundary(0, 40, 0, 40)
	n := 6
	d := buildGrid(tst, n, box)
	if d == nil {
		return
	}
	before := len(d.LeafTriangles())

	// swap to a mildly distorted copy of the coordinates and relegalize:
	// topology count stays, Delaunay property is restored
	lons := make([]float64, n*n)
	lats := make([]float64, n*n)
	for i := 0; i < n*n; i++ {
		lons[i] = d.pts[3+i].X * 1.5
		lats[i] = d.pts[3+i].Y
	}
	d.UpdateAllPointsCoord(lons, lats)
	d.RelegalizeAllTriangles()
	chk.IntAssert(len(d.LeafTriangles()), before)
	checkDelaunay(tst, d)
	checkTopology(tst, d)
}

func Test_tritrim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tritrim01. boundary trim")

	box := geo.NewBoundary(0, 40, 0, 40)
	d := buildGrid(tst, 8, box)
	if d == nil {
		return
	}

	// trimming to a half keeps only triangles with a vertex strictly inside
	d.RemoveTrianglesOnOrOutOfBoundary(geo.NewBoundary(0, 20, 0, 40))
	for _, t := range d.LeafTriangles() {
		inside := false
		for k := 0; k < 3; k++ {
			if d.Vertex(t, k).X < 20 {
				inside = true
			}
		}
		if !inside {
			tst.Errorf("triangle %d survived the trim without interior vertex\n", t)
			return
		}
	}
}
