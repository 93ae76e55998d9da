// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pat

import (
	"testing"

	"github.com/WireFisher/parallel-delaunay/geo"
	"github.com/WireFisher/parallel-delaunay/tri"
	"github.com/cpmech/gosl/chk"
)

func chunkWithBox(minLon, maxLon, minLat, maxLat float64, unit int) *Chunk {
	c := newChunk(nil, nil, nil, nil, geo.NewBoundary(minLon, maxLon, minLat, maxLat), Common)
	c.Units = []int{unit}
	return c
}

func Test_commonboundary01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("commonboundary01. shared sides")

	// vertical contact with latitude overlap
	a := chunkWithBox(0, 90, -30, 30, 0)
	b := chunkWithBox(90, 180, 0, 60, 1)
	head, tail, head2, tail2 := computeCommonBoundary(a, b)
	if head == nil {
		tst.Errorf("touching boxes must share a segment\n")
		return
	}
	chk.Scalar(tst, "segment lon", 1e-14, head.X, 90)
	chk.Scalar(tst, "segment bottom", 1e-14, head.Y, 0)
	chk.Scalar(tst, "segment top", 1e-14, tail.Y, 30)
	if head2 != nil || tail2 != nil {
		tst.Errorf("no seam counterpart expected\n")
		return
	}

	// horizontal contact
	c := chunkWithBox(0, 90, 30, 60, 2)
	head, tail, _, _ = computeCommonBoundary(a, c)
	if head == nil {
		tst.Errorf("stacked boxes must share a segment\n")
		return
	}
	chk.Scalar(tst, "segment lat", 1e-14, head.Y, 30)

	// disjoint boxes share nothing
	d := chunkWithBox(200, 250, -30, 30, 3)
	head, tail, head2, tail2 = computeCommonBoundary(a, d)
	if head != nil || tail != nil || head2 != nil || tail2 != nil {
		tst.Errorf("disjoint boxes must not share a segment\n")
		return
	}
}

func Test_commonboundary02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("commonboundary02. cyclic-seam counterpart")

	a := chunkWithBox(0, 180, -30, 30, 0)
	b := chunkWithBox(180, 360, -10, 50, 1)
	head, _, head2, tail2 := computeCommonBoundary(a, b)
	if head == nil {
		tst.Errorf("side contact at 180 expected\n")
		return
	}
	if head2 == nil {
		tst.Errorf("seam counterpart at 0/360 expected\n")
		return
	}
	chk.Scalar(tst, "seam lon", 1e-14, head2.X, 0)
	chk.Scalar(tst, "seam bottom", 1e-14, head2.Y, -10)
	chk.Scalar(tst, "seam top", 1e-14, tail2.Y, 30)
}

func Test_consistency01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("consistency01. canonical triangle comparison")

	mk := func(a, b, c int) tri.Transport {
		var t tri.Transport
		t.V[0] = geo.Point{Id: a}
		t.V[1] = geo.Point{Id: b}
		t.V[2] = geo.Point{Id: c}
		return t
	}

	local := []tri.Transport{mk(1, 2, 3), mk(4, 5, 6)}
	remote := []tri.Transport{mk(6, 4, 5), mk(3, 1, 2)} // same set, rotated
	if !checkTrianglesConsistency(local, remote) {
		tst.Errorf("equal sets must compare equal\n")
		return
	}

	other := []tri.Transport{mk(1, 2, 3), mk(4, 5, 7)}
	if checkTrianglesConsistency(local, other) {
		tst.Errorf("different sets must compare unequal\n")
		return
	}
}

func Test_tags01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tags01. iteration and seam traffic separation")

	seen := make(map[int]bool)
	for iter := 0; iter < 16; iter++ {
		for _, tag := range []int{tagNormal(iter), tagExtra(iter)} {
			if seen[tag] {
				tst.Errorf("tag collision at iteration %d\n", iter)
				return
			}
			seen[tag] = true
		}
	}
}
