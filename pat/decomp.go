// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pat

import (
	"github.com/WireFisher/parallel-delaunay/geo"
	"github.com/WireFisher/parallel-delaunay/inp"
	"github.com/WireFisher/parallel-delaunay/prc"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// midline is a split line along one axis
type midline struct {
	axis  int
	value float64
}

// Decomposition builds and owns the search tree splitting the sphere into
// per-unit chunks proportional to their workloads
type Decomposition struct {

	// input
	Grid *inp.Grid
	Cfg  *inp.Config
	Res  *prc.Resource

	// tree
	Root        *Chunk
	LocalLeaves []*Chunk

	// workload bookkeeping
	Workloads  []float64
	ActiveFlag []bool

	// auxiliary
	IsCyclic bool
	ShowMsg  bool
	current  *Chunk
}

// NewDecomposition validates the grid and builds the tree root from its
// active points
func NewDecomposition(cfg *inp.Config, grid *inp.Grid, res *prc.Resource) (o *Decomposition, err error) {
	err = grid.Check()
	if err != nil {
		return nil, chk.Err("invalid input grid:\n%v", err)
	}
	if grid.HasRedundantPoints() {
		return nil, chk.Err("input grid has duplicate points")
	}

	o = new(Decomposition)
	o.Grid = grid
	o.Cfg = cfg
	o.Res = res
	o.IsCyclic = grid.Cyclic
	o.ShowMsg = cfg.Verbose && res.LocalProc == 0

	lons, lats, gids := grid.ActivePoints()
	if len(lons) == 0 {
		return nil, chk.Err("input grid has no active points")
	}
	o.Root = newChunk(nil, lons, lats, gids, grid.Boundary, Common)
	return
}

// initWorkload deactivates the units that would fall under the kernel-size
// floor and hands every active unit the average workload
func (o *Decomposition) initWorkload() (err error) {
	chk.IntAssertLessThan(0, o.Cfg.MinPointsPerChunk)
	npoints := o.Root.NumKernel
	maxUnits := npoints / o.Cfg.MinPointsPerChunk
	if maxUnits < 1 {
		maxUnits = 1
	}
	numActive := imin(o.Res.NumTotalUnits(), maxUnits)
	if numActive < 1 {
		return chk.Err("cannot activate any processing unit: %d points, floor %d", npoints, o.Cfg.MinPointsPerChunk)
	}
	if o.ShowMsg {
		io.Pf("> %d of %d processing units active\n", numActive, o.Res.NumTotalUnits())
	}

	average := float64(npoints) / float64(numActive)
	o.Workloads = make([]float64, o.Res.NumTotalUnits())
	o.ActiveFlag = make([]bool, o.Res.NumTotalUnits())
	active := make([]int, 0, numActive)
	for i := 0; i < o.Res.NumTotalUnits(); i++ {
		if i < numActive {
			o.Workloads[i] = average
			o.ActiveFlag[i] = true
			active = append(active, i)
		}
	}
	o.Root.Units = active
	return
}

// updateWorkloads rescales the workloads of ids to the actual point count of
// their subtree, deactivating units that fall under the floor and
// spreading their share over the survivors
func (o *Decomposition) updateWorkloads(totalWorkload int, ids []int) []int {
	if len(ids) == 1 {
		o.Workloads[ids[0]] = float64(totalWorkload)
		return ids
	}
	oldTotal := 0.0
	for _, id := range ids {
		oldTotal += o.Workloads[id]
	}
	for _, id := range ids {
		o.Workloads[id] = o.Workloads[id] * float64(totalWorkload) / oldTotal
	}
	unassigned := 0.0
	kept := ids[:0]
	for _, id := range ids {
		if o.Workloads[id] < float64(o.Cfg.MinPointsPerChunk) {
			unassigned += o.Workloads[id]
			o.Workloads[id] = 0
			o.ActiveFlag[id] = false
			continue
		}
		kept = append(kept, id)
	}
	if len(kept) == 0 {
		// a subtree must keep at least one unit
		o.Workloads[ids[0]] = float64(totalWorkload)
		o.ActiveFlag[ids[0]] = true
		return ids[:1]
	}
	if unassigned > 0 {
		for _, id := range kept {
			o.Workloads[id] += unassigned / float64(len(kept))
		}
	}
	return kept
}

// allocChunk builds a child node and settles its units' workloads
func (o *Decomposition) allocChunk(parent *Chunk, lons, lats []float64, gids []int, boundary geo.Boundary, units []int, nodeType int) *Chunk {
	c := newChunk(parent, lons, lats, gids, boundary, nodeType)
	c.Units = o.updateWorkloads(c.NumKernel, units)
	return c
}

// splitLocalPoints distributes a node's kernel points to the two sides of
// the midline; side 0 is below (or left of) the line. The coordinate
// buffers come back as a [4][n] matrix holding lon0, lat0, lon1, lat1.
func (o *Decomposition) splitLocalPoints(node *Chunk, ml midline) (coords [][]float64, idxs [2][]int, counts [2]int) {
	n := node.NumKernel
	coords = la.MatAlloc(4, n)
	idxs[0] = make([]int, n)
	idxs[1] = make([]int, n)

	if ml.axis == Lon && ml.value < 0 {
		ml.value += 360.0
	}
	if ml.axis == Lon && ml.value >= 360.0 {
		ml.value -= 360.0
	}

	coord := func(axis, i int) float64 {
		if axis == Lon {
			return node.Lons[i]
		}
		return node.Lats[i]
	}
	put := func(side, i int) {
		coords[2*side+Lon][counts[side]] = node.Lons[i]
		coords[2*side+Lat][counts[side]] = node.Lats[i]
		idxs[side][counts[side]] = node.Gids[i]
		counts[side]++
	}

	if node.NonMonotonic && ml.axis == Lon {
		if ml.value > node.KernelBoundary.MinLon {
			for i := 0; i < n; i++ {
				if coord(Lon, i) < ml.value && coord(Lon, i) >= node.KernelBoundary.MinLon {
					put(0, i)
				} else {
					put(1, i)
				}
			}
		} else {
			for i := 0; i < n; i++ {
				if coord(Lon, i) >= ml.value && coord(Lon, i) < node.KernelBoundary.MaxLon {
					put(1, i)
				} else {
					put(0, i)
				}
			}
		}
		return
	}

	for i := 0; i < n; i++ {
		if coord(ml.axis, i) < ml.value {
			put(0, i)
		} else {
			put(1, i)
		}
	}
	return
}

// decomposeByUnitsNumber splits a node in two, placing the midline so each
// side's point count matches its units' workload share. The polar modes
// force a latitude split and hand exactly one unit to the cap side.
func (o *Decomposition) decomposeByUnitsNumber(node *Chunk, mode int) (coords [][]float64, idxs [2][]int, counts [2]int, childBoundary [2]geo.Boundary, childUnits [2][]int, err error) {
	chk.IntAssertLessThan(1, len(node.Units))

	low := [2]float64{node.KernelBoundary.MinLon, node.KernelBoundary.MinLat}
	high := [2]float64{node.KernelBoundary.MaxLon, node.KernelBoundary.MaxLat}
	if node.NonMonotonic {
		low[Lon] -= 360.0
	}
	length := [2]float64{high[Lon] - low[Lon], high[Lat] - low[Lat]}
	if length[Lon] < 0 {
		length[Lon] += 360.0
	}

	var ml midline
	if mode == SPolar || mode == NPolar || length[Lat] > length[Lon] {
		ml.axis = Lat
	} else {
		ml.axis = Lon
	}

	// split the unit list: halve for common nodes, peel one unit for caps
	switch mode {
	case Common:
		half := len(node.Units) / 2
		childUnits[0] = append(childUnits[0], node.Units[:half]...)
		childUnits[1] = append(childUnits[1], node.Units[half:]...)
	case SPolar:
		childUnits[0] = append(childUnits[0], node.Units[0])
		childUnits[1] = append(childUnits[1], node.Units[1:]...)
	case NPolar:
		childUnits[0] = append(childUnits[0], node.Units[:len(node.Units)-1]...)
		childUnits[1] = append(childUnits[1], node.Units[len(node.Units)-1])
	default:
		chk.Panic("unknown decompose mode %d", mode)
	}

	var w [2]float64
	for side := 0; side < 2; side++ {
		for _, id := range childUnits[side] {
			w[side] += o.Workloads[id]
		}
	}

	ml.value = low[ml.axis] + length[ml.axis]*w[0]/(w[0]+w[1])
	coords, idxs, counts = o.splitLocalPoints(node, ml)
	if counts[0] == 0 || counts[1] == 0 {
		err = chk.Err("workload split produced an empty side at %s=%g", axisName(ml.axis), ml.value)
		return
	}

	for iter := 1; abs(float64(counts[0])/float64(counts[1])-w[0]/w[1]) > o.Cfg.TolerableError; iter++ {
		if iter > o.Cfg.MaxIter {
			break
		}
		if float64(counts[0]) < w[0] {
			ml.value += (high[ml.axis] - ml.value) * (float64(counts[1]) - w[1]) / float64(counts[1])
		} else {
			ml.value -= (ml.value - low[ml.axis]) * (float64(counts[0]) - w[0]) / float64(counts[0])
		}
		if ml.value <= low[ml.axis] || ml.value >= high[ml.axis] {
			break
		}
		coords, idxs, counts = o.splitLocalPoints(node, ml)
		if counts[0] == 0 || counts[1] == 0 {
			err = chk.Err("workload split produced an empty side at %s=%g", axisName(ml.axis), ml.value)
			return
		}
	}

	if ml.axis == Lon && ml.value < 0 {
		ml.value += 360.0
	}
	childBoundary[0] = node.KernelBoundary
	childBoundary[1] = node.KernelBoundary
	if ml.axis == Lon {
		childBoundary[0].MaxLon = ml.value
		childBoundary[1].MinLon = ml.value
	} else {
		childBoundary[0].MaxLat = ml.value
		childBoundary[1].MinLat = ml.value
	}
	return
}

// decomposeByFixedLongitude splits a node at the given longitude and
// distributes its units so each side's workload matches its point count
func (o *Decomposition) decomposeByFixedLongitude(node *Chunk, fixedLon float64) (coords [][]float64, idxs [2][]int, counts [2]int, childBoundary [2]geo.Boundary, childUnits [2][]int) {
	chk.IntAssertLessThan(0, len(node.Units))
	if fixedLon < 0 || fixedLon >= 360 {
		chk.Panic("fixed longitude %g out of range", fixedLon)
	}
	coords, idxs, counts = o.splitLocalPoints(node, midline{axis: Lon, value: fixedLon})
	childUnits = splitUnitsByPointsNumber(o.Workloads, counts[0], node.Units)
	childBoundary[0] = node.KernelBoundary
	childBoundary[1] = node.KernelBoundary
	childBoundary[0].MaxLon = fixedLon
	childBoundary[1].MinLon = fixedLon
	if node.NonMonotonic && fixedLon == 0.0 {
		// splitting a wrapping extent at the seam leaves two monotonic
		// halves: the low half ends at 360, not 0
		childBoundary[0].MaxLon = 360.0
	}
	return
}

// splitUnitsByPointsNumber cuts the ordered unit list where the cumulative
// workload best matches the left side's point count
func splitUnitsByPointsNumber(workloads []float64, leftNumPoints int, units []int) (childUnits [2][]int) {
	var splitIdx int
	var leftWorkloads float64
	for splitIdx = 0; splitIdx < len(units); splitIdx++ {
		leftWorkloads += workloads[units[splitIdx]]
		if leftWorkloads > float64(leftNumPoints) {
			break
		}
	}
	if splitIdx == len(units) {
		splitIdx--
	}
	prev := leftWorkloads - workloads[units[splitIdx]]
	if abs(prev-float64(leftNumPoints)) < abs(leftWorkloads-float64(leftNumPoints)) {
		splitIdx--
	}
	// both sides must keep at least one unit
	if splitIdx > len(units)-2 {
		splitIdx = len(units) - 2
	}
	if splitIdx < 0 {
		splitIdx = 0
	}
	childUnits[0] = append(childUnits[0], units[:splitIdx+1]...)
	childUnits[1] = append(childUnits[1], units[splitIdx+1:]...)
	return
}

// haveLocalUnits reports whether any of the ids lives on this process
func (o *Decomposition) haveLocalUnits(ids []int) bool {
	for _, id := range ids {
		if o.Res.IsLocal(id) {
			return true
		}
	}
	return false
}

// buildChildren splits a multi-unit node in common mode, allocating its
// left and right children (slots 0 and 2)
func (o *Decomposition) buildChildren(node *Chunk) (err error) {
	coords, idxs, counts, childBoundary, childUnits, err := o.decomposeByUnitsNumber(node, Common)
	if err != nil {
		return
	}
	node.Children[0] = o.allocChunk(node, coords[0][:counts[0]], coords[1][:counts[0]], idxs[0][:counts[0]], childBoundary[0], childUnits[0], Common)
	node.Children[2] = o.allocChunk(node, coords[2][:counts[1]], coords[3][:counts[1]], idxs[1][:counts[1]], childBoundary[1], childUnits[1], Common)
	return
}

// decomposeCommonNodeRecursively splits a node until every local leaf holds
// a single processing unit. Subtrees without local units stay unbuilt until
// a halo search needs them.
func (o *Decomposition) decomposeCommonNodeRecursively(node *Chunk) (err error) {
	chk.IntAssertLessThan(0, len(node.Units))
	if node.isLeaf() {
		if o.haveLocalUnits(node.Units) {
			o.LocalLeaves = append(o.LocalLeaves, node)
		}
		return
	}
	err = o.buildChildren(node)
	if err != nil {
		return
	}
	if o.haveLocalUnits(node.Children[0].Units) {
		err = o.decomposeCommonNodeRecursively(node.Children[0])
		if err != nil {
			return
		}
	}
	if o.haveLocalUnits(node.Children[2].Units) {
		err = o.decomposeCommonNodeRecursively(node.Children[2])
	}
	return
}

// assignPolars carves the polar caps off the root when the grid touches a
// pole with fewer than two coincident polar points. A cap that would fall
// under the kernel-size floor is not carved: the latitude band above keeps
// it.
func (o *Decomposition) assignPolars(south, north bool) (err error) {
	if !south && !north {
		return
	}

	if south {
		coords, idxs, counts, childBoundary, childUnits, e := o.splitPolar(o.Root, SPolar, o.Cfg.SPolarMaxLat)
		if e != nil {
			return e
		}
		if coords != nil {
			o.Root.Children[0] = o.allocChunk(o.Root, coords[0][:counts[0]], coords[1][:counts[0]], idxs[0][:counts[0]], childBoundary[0], childUnits[0], SPolar)
			o.Root.Children[1] = o.allocChunk(o.Root, coords[2][:counts[1]], coords[3][:counts[1]], idxs[1][:counts[1]], childBoundary[1], childUnits[1], Common)
			o.current = o.Root.Children[1]
			if o.haveLocalUnits(o.Root.Children[0].Units) {
				o.LocalLeaves = append(o.LocalLeaves, o.Root.Children[0])
			}
		}
	}

	if north {
		node := o.current
		coords, idxs, counts, childBoundary, childUnits, e := o.splitPolar(node, NPolar, o.Cfg.NPolarMinLat)
		if e != nil {
			return e
		}
		if coords != nil {
			mid := o.allocChunk(o.Root, coords[0][:counts[0]], coords[1][:counts[0]], idxs[0][:counts[0]], childBoundary[0], childUnits[0], Common)
			polar := o.allocChunk(o.Root, coords[2][:counts[1]], coords[3][:counts[1]], idxs[1][:counts[1]], childBoundary[1], childUnits[1], NPolar)
			o.Root.Children[1] = mid
			o.Root.Children[2] = polar
			o.current = mid
			if o.haveLocalUnits(polar.Units) {
				o.LocalLeaves = append(o.LocalLeaves, polar)
			}
		}
	}
	return
}

// splitPolar prepares a polar carve of node. It returns nil buffers when
// the cap would fall under the kernel-size floor (the carve is skipped and
// the cap stays with its latitude band).
func (o *Decomposition) splitPolar(node *Chunk, mode int, capLat float64) (coords [][]float64, idxs [2][]int, counts [2]int, childBoundary [2]geo.Boundary, childUnits [2][]int, err error) {
	capSide := 0
	if mode == NPolar {
		capSide = 1
	}

	if len(node.Units) > 1 {
		coords, idxs, counts, childBoundary, childUnits, err = o.decomposeByUnitsNumber(node, mode)
		if err != nil {
			return
		}
		capReaches := childBoundary[0].MaxLat > capLat
		if mode == NPolar {
			capReaches = childBoundary[1].MinLat < capLat
		}
		if !capReaches {
			return
		}
	}

	// clamp the cap at the polar threshold
	coords, idxs, counts = o.splitLocalPoints(node, midline{axis: Lat, value: capLat})
	if counts[capSide] < o.Cfg.MinPointsPerChunk {
		if o.ShowMsg {
			io.Pfgrey("> polar cap at lat=%g too small (%d points): absorbed by its latitude band\n", capLat, counts[capSide])
		}
		coords = nil
		return
	}
	childBoundary[0] = node.KernelBoundary
	childBoundary[1] = node.KernelBoundary
	childBoundary[0].MaxLat = capLat
	childBoundary[1].MinLat = capLat

	if mode == SPolar {
		childUnits[0] = []int{node.Units[0]}
		childUnits[1] = append([]int{}, node.Units...)
		if len(node.Units) > 1 {
			childUnits[1] = childUnits[1][1:]
			childUnits[1] = append([]int{node.Units[0]}, childUnits[1]...)
		}
		o.Workloads[node.Units[0]] -= float64(counts[0])
	} else {
		last := node.Units[len(node.Units)-1]
		childUnits[1] = []int{last}
		childUnits[0] = append([]int{}, node.Units...)
		o.Workloads[last] -= float64(counts[1])
	}
	return
}

// assignFixedLonForSingleUnit splits a single-unit node once at the given
// longitude, handing both halves to the same unit, so no leaf keeps a
// cyclic kernel boundary
func (o *Decomposition) assignFixedLonForSingleUnit(fixedLon float64) {
	node := o.current
	chk.IntAssert(len(node.Units), 1)
	coords, idxs, counts := o.splitLocalPoints(node, midline{axis: Lon, value: fixedLon})
	childBoundary := node.KernelBoundary
	childBoundary2 := node.KernelBoundary
	childBoundary.MaxLon = fixedLon
	childBoundary2.MinLon = fixedLon
	if node.NonMonotonic && fixedLon == 0.0 {
		childBoundary.MaxLon = 360.0
	}

	node.Children[0] = newChunk(node, coords[0][:counts[0]], coords[1][:counts[0]], idxs[0][:counts[0]], childBoundary, Common)
	node.Children[2] = newChunk(node, coords[2][:counts[1]], coords[3][:counts[1]], idxs[1][:counts[1]], childBoundary2, Common)
	node.Children[0].Units = append([]int{}, node.Units...)
	node.Children[2].Units = append([]int{}, node.Units...)

	if o.haveLocalUnits(node.Units) {
		o.LocalLeaves = append(o.LocalLeaves, node.Children[0], node.Children[2])
	}
}

// decomposeWithFixedLongitude splits the current node once at the given
// longitude; used for non-monotonic grids before ordinary recursion
func (o *Decomposition) decomposeWithFixedLongitude(fixedLon float64) {
	node := o.current
	coords, idxs, counts, childBoundary, childUnits := o.decomposeByFixedLongitude(node, fixedLon)
	node.Children[0] = o.allocChunk(node, coords[0][:counts[0]], coords[1][:counts[0]], idxs[0][:counts[0]], childBoundary[0], childUnits[0], Common)
	node.Children[2] = o.allocChunk(node, coords[2][:counts[1]], coords[3][:counts[1]], idxs[1][:counts[1]], childBoundary[1], childUnits[1], Common)
}

// Generate builds the decomposition tree: workload init, polar caps, the
// cyclic and non-monotonic special cases, then ordinary recursion
func (o *Decomposition) Generate() (err error) {
	err = o.initWorkload()
	if err != nil {
		return
	}
	o.current = o.Root

	south := abs(o.Grid.Boundary.MinLat-(-90.0)) < geo.FloatEq && o.Grid.PolarPoints('S') < 2
	north := abs(o.Grid.Boundary.MaxLat-90.0) < geo.FloatEq && o.Grid.PolarPoints('N') < 2
	err = o.assignPolars(south, north)
	if err != nil {
		return
	}

	// after the polar caps, a non-monotonic longitude extent splits once at
	// the seam before the single-unit split and the ordinary recursion, so
	// every subtree sees a monotonic boundary
	if o.Grid.Boundary.IsCyclic() {
		if len(o.current.Units) == 1 {
			o.assignFixedLonForSingleUnit(0.0)
			return
		}
		o.decomposeWithFixedLongitude(0.0)
		if o.haveLocalUnits(o.current.Children[0].Units) {
			err = o.decomposeCommonNodeRecursively(o.current.Children[0])
			if err != nil {
				return
			}
		}
		if o.haveLocalUnits(o.current.Children[2].Units) {
			err = o.decomposeCommonNodeRecursively(o.current.Children[2])
		}
		return
	}

	if o.IsCyclic && len(o.current.Units) == 1 {
		o.assignFixedLonForSingleUnit(180.0)
		return
	}

	return o.decomposeCommonNodeRecursively(o.current)
}

// overlapsWithTranslates tests region against a kernel boundary and its
// ±360 longitude translates
func overlapsWithTranslates(region, kernel geo.Boundary) bool {
	return region.Overlaps(kernel) ||
		region.Shifted(+360.0).Overlaps(kernel) ||
		region.Shifted(-360.0).Overlaps(kernel)
}

// searchLeafNodesOverlappingRegion walks the tree collecting the leaves
// whose kernel overlaps the region, expanding unbuilt subtrees on demand
func (o *Decomposition) searchLeafNodesOverlappingRegion(node *Chunk, region geo.Boundary, found *[]*Chunk) (err error) {
	chk.IntAssertLessThan(0, len(node.Units))
	if node.isLeaf() {
		if overlapsWithTranslates(region, node.KernelBoundary) {
			*found = append(*found, node)
		}
		return
	}
	if node.Children[0] == nil && node.Children[1] == nil && node.Children[2] == nil {
		err = o.buildChildren(node)
		if err != nil {
			return
		}
	}
	for i := 0; i < 3; i++ {
		c := node.Children[i]
		if c == nil {
			continue
		}
		if overlapsWithTranslates(region, c.KernelBoundary) {
			err = o.searchLeafNodesOverlappingRegion(c, region, found)
			if err != nil {
				return
			}
		}
	}
	return
}

// searchPointsInHalo collects the kernel points of all leaves inside the
// halo annulus, together with the leaves found
func (o *Decomposition) searchPointsInHalo(inner, outer *geo.Boundary) (lons, lats []float64, gids []int, found []*Chunk, err error) {
	if inner.Equal(*outer) {
		return
	}
	err = o.searchLeafNodesOverlappingRegion(o.Root, *outer, &found)
	if err != nil {
		return
	}
	for _, leaf := range found {
		leaf.searchPointsInHalo(inner, outer, &lons, &lats, &gids)
	}
	return
}

// expandChunkBoundary grows a chunk's halo by ratio, clamps it against the
// grid, and pulls the kernel points of the new annulus into the chunk. It
// fails when the boundary cannot grow any further.
func (o *Decomposition) expandChunkBoundary(chunk *Chunk, ratio float64) (err error) {
	oldBoundary := chunk.ExpandedBoundary
	newBoundary := chunk.ExpandedBoundary
	switch chunk.NodeType {
	case Common:
		newBoundary.Expand(ratio)
	case SPolar:
		newBoundary.MaxLat += (newBoundary.MaxLat - newBoundary.MinLat) * ratio * 2.0
	case NPolar:
		newBoundary.MinLat -= (newBoundary.MaxLat - newBoundary.MinLat) * ratio * 2.0
	}
	newBoundary.Legalize(&o.Root.KernelBoundary, o.IsCyclic)

	// a halo wider than a full wrap would collect points twice through the
	// longitude translates
	if newBoundary.MaxLon-newBoundary.MinLon > 360.0 {
		mid := (newBoundary.MinLon + newBoundary.MaxLon) * 0.5
		newBoundary.MinLon = mid - 180.0
		newBoundary.MaxLon = mid + 180.0
	}

	if newBoundary.Equal(oldBoundary) {
		return chk.Err("halo exhausted: chunk of unit %d cannot expand beyond %v", chunk.Units[0], oldBoundary)
	}

	lons, lats, gids, found, err := o.searchPointsInHalo(&oldBoundary, &newBoundary)
	if err != nil {
		return
	}
	chunk.ExpandedBoundary = newBoundary
	chunk.addExpandedPoints(lons, lats, gids)
	chunk.addNeighbors(found)
	return
}

// printTreeRecursively dumps the tree topology for debugging
func (o *Decomposition) printTreeRecursively(node *Chunk, depth int) {
	pad := ""
	for i := 0; i < depth; i++ {
		pad += "  "
	}
	io.Pfgrey("%s%v units=%v n=%d\n", pad, node.KernelBoundary, node.Units, node.NumKernel)
	for i := 0; i < 3; i++ {
		if node.Children[i] != nil {
			o.printTreeRecursively(node.Children[i], depth+1)
		}
	}
}

// PrintTree dumps the whole search tree
func (o *Decomposition) PrintTree() {
	o.printTreeRecursively(o.Root, 0)
}

// small helpers

func imin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func axisName(axis int) string {
	if axis == Lon {
		return "lon"
	}
	return "lat"
}
