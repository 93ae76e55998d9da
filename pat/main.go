// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pat

import (
	"time"

	"github.com/WireFisher/parallel-delaunay/inp"
	"github.com/WireFisher/parallel-delaunay/out"
	"github.com/WireFisher/parallel-delaunay/prc"
	"github.com/WireFisher/parallel-delaunay/tri"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Main holds all data for one global triangulation run
type Main struct {
	Cfg     *inp.Config
	Grid    *inp.Grid
	Res     *prc.Resource
	Dec     *Decomposition
	Verbose bool
	ShowMsg bool

	// results (gather process only)
	Global []tri.Transport
}

// NewMain validates the input and allocates the decomposition
func NewMain(cfg *inp.Config, grid *inp.Grid, res *prc.Resource, verbose bool) (o *Main, err error) {
	o = new(Main)
	o.Cfg = cfg
	o.Grid = grid
	o.Res = res
	o.Verbose = verbose
	o.ShowMsg = verbose && res.LocalProc == 0
	o.Dec, err = NewDecomposition(cfg, grid, res)
	if err != nil {
		return nil, err
	}
	if o.ShowMsg {
		io.Pf("> Grid loaded: %d points, boundary %v, cyclic %v\n", grid.NumPoints(), grid.Boundary, grid.Cyclic)
	}
	return
}

// Run builds the decomposition, iterates the triangulations to consistency
// and merges the global triangle set on the gather process
func (o *Main) Run() (err error) {
	cputime := time.Now()

	err = o.Dec.Generate()
	if err != nil {
		return chk.Err("grid decomposition failed:\n%v", err)
	}
	if o.ShowMsg {
		io.Pf("> Decomposition done: %d local leaf chunks\n", len(o.Dec.LocalLeaves))
	}

	err = o.Dec.GenerateLocalTriangulations()
	if err != nil {
		return
	}
	if o.ShowMsg {
		io.Pf("> Local triangulations consistent\n")
	}

	local, err := o.Dec.KernelTriangles()
	if err != nil {
		return
	}

	all, isRoot := out.Gather(o.Res, local)
	if isRoot {
		o.Global = out.MergeTriangles(all)
		out.SaveTriangles(o.Cfg.DirOut, o.Global)
		sum := out.Summary{
			NumUnits:     o.Res.NumTotalUnits(),
			NumProcs:     o.Res.NumProcs,
			NumPoints:    o.Grid.NumPoints(),
			NumTriangles: len(o.Global),
		}
		sum.Save(o.Cfg.DirOut)
	}

	if o.ShowMsg {
		io.PfGreen("> Success\n")
		io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
	}
	return
}

// PlotLocalTriangles draws every local leaf triangulation for debugging
func (o *Main) PlotLocalTriangles(prefix string) {
	for _, leaf := range o.Dec.LocalLeaves {
		if leaf.Tri != nil {
			leaf.Tri.Plot(o.Cfg.DirOut, io.Sf("%s_%d", prefix, leaf.Units[0]))
		}
	}
}
