// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pat

import (
	"github.com/WireFisher/parallel-delaunay/tri"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// GenerateLocalTriangulations runs the halo-grow / triangulate / compare
// loop until every leaf agrees with all its neighbours, collectively over
// all processes. Iterations: exchange boundary triangles and compare, grow
// the halos of the leaves that are not yet settled, re-triangulate them.
func (o *Decomposition) GenerateLocalTriangulations() (err error) {
	if len(o.LocalLeaves) == 0 {
		io.Pfgrey("[proc %d] no local leaf chunks\n", o.Res.LocalProc)
	}

	bufLen := o.Root.NumKernel * 3
	ratio := o.Cfg.ExpandingRatio
	done := make([]bool, len(o.LocalLeaves))

	for iter := 0; ; iter++ {
		if iter > o.Cfg.MaxIter {
			return chk.Err("neighbour triangulations still disagree after %d halo expansions (unit %d)",
				o.Cfg.MaxIter, o.firstUnsettledUnit(done))
		}

		// exchange boundary triangles: all sends first so intra-process
		// neighbour pairs cannot deadlock, then receives and comparisons
		sent := make([][]sentBatch, len(o.LocalLeaves))
		for i, leaf := range o.LocalLeaves {
			if done[i] || leaf.Tri == nil {
				continue
			}
			sent[i], err = o.sendBoundaryTriangles(leaf, iter, bufLen)
			if err != nil {
				return chk.Err("boundary exchange failed for unit %d:\n%v", leaf.Units[0], err)
			}
		}
		o.Res.Wait()
		for i, leaf := range o.LocalLeaves {
			if done[i] || leaf.Tri == nil {
				continue
			}
			passed := o.recvAndCompare(leaf, iter, sent[i])
			if passed && o.leafLocallyConsistent(leaf) &&
				leaf.checkAllOuterEdgesOutOfKernel(&o.Root.KernelBoundary, o.IsCyclic) {
				done[i] = true
				if o.Cfg.Verbose {
					io.Pf("[%d] unit %d consistent\n", iter, leaf.Units[0])
				}
			}
		}

		// grow the halos of the unsettled leaves; a halo pinned against the
		// grid boundary with neighbours still disagreeing is fatal
		expandFail := 0
		for i, leaf := range o.LocalLeaves {
			if done[i] {
				continue
			}
			if e := o.expandChunkBoundary(leaf, ratio); e != nil {
				io.PfRed("%v\n", e)
				expandFail = 1
			}
		}
		if o.Res.AllReduceMaxInt(expandFail) > 0 {
			return chk.Err("halo exhausted: expansion hit the grid boundary with inconsistent neighbours left")
		}

		// re-triangulate the unsettled leaves
		for i, leaf := range o.LocalLeaves {
			if done[i] {
				continue
			}
			err = leaf.generateLocalTriangulation(o.IsCyclic)
			if err == tri.ErrInsufficient {
				// a too-thin halo: keep expanding
				leaf.Tri = nil
				err = nil
				continue
			}
			if err != nil {
				return chk.Err("triangulation failed for unit %d:\n%v", leaf.Units[0], err)
			}
		}

		ratio += o.Cfg.RatioStep

		notDone := 0
		for i := range o.LocalLeaves {
			if !done[i] {
				notDone = 1
			}
		}
		if o.Res.AllReduceMaxInt(notDone) == 0 {
			return
		}
	}
}

// firstUnsettledUnit names an offending unit for error messages
func (o *Decomposition) firstUnsettledUnit(done []bool) int {
	for i, leaf := range o.LocalLeaves {
		if !done[i] {
			return leaf.Units[0]
		}
	}
	return -1
}

// KernelTriangles collects, over the local leaves, the triangles whose
// canonical location lies inside the leaf's kernel boundary; their disjoint
// union over all leaves is the deterministic global set
func (o *Decomposition) KernelTriangles() (res []tri.Transport, err error) {
	bufLen := o.Root.NumKernel * 3
	for _, leaf := range o.LocalLeaves {
		if leaf.Tri == nil {
			return nil, chk.Err("leaf of unit %d has no triangulation", leaf.Units[0])
		}
		ts, e := leaf.Tri.TrianglesInRegion(leaf.KernelBoundary, bufLen)
		if e != nil {
			return nil, e
		}
		res = append(res, ts...)
	}
	return
}
