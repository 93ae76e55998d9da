// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/WireFisher/parallel-delaunay/inp"
	"github.com/WireFisher/parallel-delaunay/pat"
	"github.com/WireFisher/parallel-delaunay/prc"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

func main() {

	// input data
	verbose := true

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// message
	if mpi.Rank() == 0 {
		io.PfWhite("\nPatCC -- Parallel Triangulation of Spherical Grids\n\n")
		io.Pf("Copyright 2019 The PatCC Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
	}

	// options: [config.json] [nlon] [nlat] [verbose]
	flag.Parse()
	var cfgpath string
	if len(flag.Args()) > 0 {
		cfgpath = flag.Arg(0)
	}
	nlon, nlat := 300, 300
	if len(flag.Args()) > 1 {
		nlon = io.Atoi(flag.Arg(1))
	}
	if len(flag.Args()) > 2 {
		nlat = io.Atoi(flag.Arg(2))
	}
	if len(flag.Args()) > 3 {
		verbose = io.Atob(flag.Arg(3))
	}

	// configuration
	cfg, err := inp.ReadConfig(cfgpath)
	if err != nil {
		chk.Panic("cannot read configuration:\n%v", err)
	}
	cfg.Verbose = cfg.Verbose || verbose

	// grid and processing resource
	grids := inp.NewRegistry()
	grids.Register(1, inp.NewLatLonGrid(nlon, nlat))
	grid := grids.Get(1)
	res := prc.NewResource(&prc.MpiProvider{NumThreads: 1},
		prc.NewMpiMessenger(), &prc.MpiReducer{})

	// run
	m, err := pat.NewMain(cfg, grid, res, verbose)
	if err != nil {
		chk.Panic("initialisation failed:\n%v", err)
	}
	err = m.Run()
	if err != nil {
		chk.Panic("run failed:\n%v", err)
	}
}
