// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pat

import (
	"testing"

	"github.com/WireFisher/parallel-delaunay/inp"
	"github.com/WireFisher/parallel-delaunay/prc"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// runFull runs the whole pipeline in one process over nunits processing
// units and returns the canonical global triangle id triples
func runFull(tst *testing.T, grid *inp.Grid, nunits, minchunk int, name string) [][3]int {
	cfg := &inp.Config{MinPointsPerChunk: minchunk, DirOut: "/tmp/patcc/" + name}
	cfg.SetDefaults()
	res := prc.NewResource(&prc.LocalProvider{NumUnits: nunits}, prc.NewQueueMessenger(), &prc.SerialReducer{})
	m, err := NewMain(cfg, grid, res, false)
	if err != nil {
		tst.Errorf("initialisation failed: %v\n", err)
		return nil
	}
	err = m.Run()
	if err != nil {
		tst.Errorf("run failed: %v\n", err)
		return nil
	}
	if len(m.Global) == 0 {
		tst.Errorf("global triangulation is empty\n")
		return nil
	}
	triples := make([][3]int, len(m.Global))
	for i, t := range m.Global {
		triples[i] = t.CanonicalIds()
	}
	return triples
}

func sameTriples(a, b [][3]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func Test_full01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("full01. uniform grid: unit counts agree after canonicalization")

	ref := runFull(tst, inp.NewLatLonGridWithPoles(40, 40, 2, 2), 1, 100, "full01a")
	if ref == nil {
		return
	}
	got := runFull(tst, inp.NewLatLonGridWithPoles(40, 40, 2, 2), 4, 100, "full01b")
	if got == nil {
		return
	}
	io.Pforan("triangles: %v (1 unit) vs %v (4 units)\n", len(ref), len(got))
	if !sameTriples(ref, got) {
		tst.Errorf("global triangle sets differ between 1 and 4 units\n")
		return
	}

	// same unit count twice: byte-identical output
	again := runFull(tst, inp.NewLatLonGridWithPoles(40, 40, 2, 2), 4, 100, "full01c")
	if again == nil {
		return
	}
	if !sameTriples(got, again) {
		tst.Errorf("reruns with equal unit count must be identical\n")
		return
	}
}

func Test_full02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("full02. two coincident polar points: no polar chunks")

	grid := inp.NewLatLonGridWithPoles(30, 30, 2, 2)
	cfg := &inp.Config{MinPointsPerChunk: 80, DirOut: "/tmp/patcc/full02"}
	cfg.SetDefaults()
	res := prc.NewResource(&prc.LocalProvider{NumUnits: 4}, prc.NewQueueMessenger(), &prc.SerialReducer{})
	m, err := NewMain(cfg, grid, res, false)
	if err != nil {
		tst.Errorf("initialisation failed: %v\n", err)
		return
	}
	err = m.Run()
	if err != nil {
		tst.Errorf("run failed: %v\n", err)
		return
	}
	for _, leaf := range m.Dec.LocalLeaves {
		chk.IntAssert(leaf.NodeType, Common)
	}
	if len(m.Global) == 0 {
		tst.Errorf("global triangulation is empty\n")
		return
	}
}

func Test_full03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("full03. zero polar points: carved caps stitch with the bands")

	grid := inp.NewLatLonGrid(30, 30)
	cfg := &inp.Config{MinPointsPerChunk: 60, DirOut: "/tmp/patcc/full03"}
	cfg.SetDefaults()
	res := prc.NewResource(&prc.LocalProvider{NumUnits: 4}, prc.NewQueueMessenger(), &prc.SerialReducer{})
	m, err := NewMain(cfg, grid, res, false)
	if err != nil {
		tst.Errorf("initialisation failed: %v\n", err)
		return
	}
	err = m.Run()
	if err != nil {
		tst.Errorf("run failed: %v\n", err)
		return
	}

	numPolar := 0
	for _, leaf := range m.Dec.LocalLeaves {
		if leaf.NodeType != Common {
			numPolar++
			if leaf.Tri == nil {
				tst.Errorf("polar chunk must have a triangulation\n")
				return
			}
		}
	}
	chk.IntAssert(numPolar, 2)
	if len(m.Global) == 0 {
		tst.Errorf("global triangulation is empty\n")
		return
	}
}

func Test_full04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("full04. disabled-point circles stay out of the output")

	grid := inp.NewLatLonGridWithPoles(40, 40, 2, 2)
	grid.Disabling = inp.DisableByCircle
	grid.Circles = [][3]float64{{80, 65.6, 12}, {260, 65.6, 12}}

	disabled := make(map[int]bool)
	for i := 0; i < grid.NumPoints(); i++ {
		for _, c := range grid.Circles {
			dx := grid.Lons[i] - c[0]
			dy := grid.Lats[i] - c[1]
			if dx*dx+dy*dy < c[2]*c[2] {
				disabled[i] = true
			}
		}
	}
	io.Pforan("disabled points: %v\n", len(disabled))
	if len(disabled) == 0 {
		tst.Errorf("test circles must disable at least one point\n")
		return
	}

	triples := runFull(tst, grid, 4, 100, "full04")
	if triples == nil {
		return
	}
	for _, tr := range triples {
		for _, id := range tr {
			if disabled[id] {
				tst.Errorf("triangle references disabled point %d\n", id)
				return
			}
		}
	}
}

func Test_full05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("full05. non-monotonic grid equals its single-unit reference")

	ref := runFull(tst, inp.NewNonMonotonicGrid(24, 24), 1, 60, "full05a")
	if ref == nil {
		return
	}
	got := runFull(tst, inp.NewNonMonotonicGrid(24, 24), 4, 60, "full05b")
	if got == nil {
		return
	}
	if !sameTriples(ref, got) {
		tst.Errorf("non-monotonic grid must triangulate independently of unit count\n")
		return
	}
}
