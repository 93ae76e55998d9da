// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_grid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid01. uniform grid and polar counting")

	g := NewLatLonGridWithPoles(30, 30, 2, 2)
	if err := g.Check(); err != nil {
		tst.Errorf("grid must be valid: %v\n", err)
		return
	}
	chk.IntAssert(g.NumPoints(), 30*30+4)
	chk.IntAssert(g.PolarPoints('S'), 2)
	chk.IntAssert(g.PolarPoints('N'), 2)

	g2 := NewLatLonGrid(30, 30)
	chk.IntAssert(g2.PolarPoints('S'), 0)
	chk.IntAssert(g2.PolarPoints('N'), 0)
}

func Test_grid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid02. masks and disabling circles")

	g := NewLatLonGrid(30, 30)
	n := g.NumPoints()

	// mask out the first row
	g.Mask = make([]bool, n)
	for i := range g.Mask {
		g.Mask[i] = i >= 30
	}
	_, _, gids := g.ActivePoints()
	chk.IntAssert(len(gids), n-30)
	chk.IntAssert(gids[0], 30) // global ids stay stable under filtering

	// two disabling circles; points inside are absent
	g = NewLatLonGrid(300, 300)
	g.Disabling = DisableByCircle
	g.Circles = [][3]float64{{80, 65.6, 0.75}, {260, 65.6, 0.75}}
	lons, lats, _ := g.ActivePoints()
	for i := range lons {
		for _, c := range g.Circles {
			dx := lons[i] - c[0]
			dy := lats[i] - c[1]
			if dx*dx+dy*dy < c[2]*c[2] {
				tst.Errorf("point inside a disabling circle survived filtering\n")
				return
			}
		}
	}
	io.Pforan("active points: %v of %v\n", len(lons), g.NumPoints())
	if len(lons) >= g.NumPoints() {
		tst.Errorf("circles must remove at least one point\n")
		return
	}
}

func Test_grid03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid03. duplicate detection and removal")

	g := NewLatLonGrid(10, 10)
	g.Lons = append(g.Lons, g.Lons[0])
	g.Lats = append(g.Lats, g.Lats[0])
	if !g.HasRedundantPoints() {
		tst.Errorf("duplicate must be detected\n")
		return
	}
	g.DeleteRedundantPoints()
	if g.HasRedundantPoints() {
		tst.Errorf("duplicates must be gone after removal\n")
		return
	}
	_, _, gids := g.ActivePoints()
	chk.IntAssert(len(gids), 100)
}

func Test_config01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config01. defaults and file round-trip")

	cfg, err := ReadConfig("")
	if err != nil {
		tst.Errorf("default config must load: %v\n", err)
		return
	}
	chk.IntAssert(cfg.MinPointsPerChunk, 100)
	chk.Scalar(tst, "ratio", 1e-15, cfg.ExpandingRatio, 0.2)
	chk.Scalar(tst, "ratiostep", 1e-15, cfg.RatioStep, 0.1)
	chk.Scalar(tst, "spolar", 1e-15, cfg.SPolarMaxLat, -45)
	chk.Scalar(tst, "npolar", 1e-15, cfg.NPolarMinLat, 45)
	chk.IntAssert(cfg.MaxIter, 10)
	chk.Scalar(tst, "tolerr", 1e-15, cfg.TolerableError, 1e-4)

	io.WriteFileSD("/tmp/patcc", "cfg.json", `{"minchunk": 50, "verbose": true}`)
	cfg, err = ReadConfig("/tmp/patcc/cfg.json")
	if err != nil {
		tst.Errorf("config file must load: %v\n", err)
		return
	}
	chk.IntAssert(cfg.MinPointsPerChunk, 50)
	if !cfg.Verbose {
		tst.Errorf("verbose flag must be read\n")
		return
	}
	chk.IntAssert(cfg.MaxIter, 10) // unset knobs fall back to defaults
}

func Test_grid04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid04. non-monotonic boundary")

	g := NewNonMonotonicGrid(20, 20)
	if !g.Boundary.IsCyclic() {
		tst.Errorf("non-monotonic grid boundary must wrap the seam\n")
		return
	}
	if err := g.Check(); err != nil {
		tst.Errorf("grid must be valid: %v\n", err)
		return
	}
}
