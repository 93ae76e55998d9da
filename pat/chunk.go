// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pat implements the distributed spherical decomposition: the
// search tree of chunks, the workload decomposer, the halo expansion and
// the neighbour consistency protocol, orchestrated by Main
package pat

import (
	"github.com/WireFisher/parallel-delaunay/geo"
	"github.com/WireFisher/parallel-delaunay/tri"
	"github.com/cpmech/gosl/chk"
)

// chunk node types
const (
	Common = iota // ordinary lon-lat rectangle
	SPolar        // south polar cap, triangulated in projection
	NPolar        // north polar cap, triangulated in projection
)

// axis selectors for midlines and coordinate pairs
const (
	Lon = 0
	Lat = 1
)

// neighbor pairs a chunk with the consistency-achieved flag
type neighbor struct {
	chunk *Chunk
	ok    bool
}

// Chunk is a node of the decomposition search tree. Leaves own a kernel
// region of the sphere, the kernel points inside it, the halo points
// gathered from neighbours, and a local triangulation.
type Chunk struct {

	// tree
	Parent   *Chunk
	Children [3]*Chunk // left, center, right; center only after a polar carve

	// regions
	KernelBoundary   geo.Boundary
	ExpandedBoundary geo.Boundary  // kernel plus halo, clamped to the grid
	RealBoundary     *geo.Boundary // exact envelope of the present points
	RotatedBoundary  *geo.Boundary // envelope of the projected shadow

	// identity
	NodeType     int
	Center       [2]float64 // projection center: rectangle center or pole
	NonMonotonic bool       // kernel longitude extent wraps the seam
	Units        []int      // processing-unit ids assigned to this node

	// points: kernel first, then halo
	Lons        []float64
	Lats        []float64
	Gids        []int
	NumKernel   int
	NumExpanded int

	// projected shadow of the points (polar chunks)
	ProjLons   []float64
	ProjLats   []float64
	NumRotated int

	// local triangulation and neighbourhood
	Tri       *tri.Delaunay
	neighbors []*neighbor
}

// newChunk builds a tree node owning copies of the given kernel points
func newChunk(parent *Chunk, lons, lats []float64, gids []int, boundary geo.Boundary, nodeType int) (o *Chunk) {
	chk.IntAssert(len(lons), len(lats))
	chk.IntAssert(len(lons), len(gids))
	o = new(Chunk)
	o.Parent = parent
	o.KernelBoundary = boundary
	o.ExpandedBoundary = boundary
	o.NodeType = nodeType
	o.Lons = append(o.Lons, lons...)
	o.Lats = append(o.Lats, lats...)
	o.Gids = append(o.Gids, gids...)
	o.NumKernel = len(lons)
	switch nodeType {
	case Common:
		o.Center[Lon] = (boundary.MinLon + boundary.MaxLon) * 0.5
		o.Center[Lat] = (boundary.MinLat + boundary.MaxLat) * 0.5
	case SPolar:
		o.Center[Lon] = 0.0
		o.Center[Lat] = -90.0
	case NPolar:
		o.Center[Lon] = 0.0
		o.Center[Lat] = 90.0
	}
	o.NonMonotonic = boundary.MinLon > boundary.MaxLon
	return
}

// numPoints returns kernel plus halo point count
func (o *Chunk) numPoints() int {
	return o.NumKernel + o.NumExpanded
}

// isLeaf reports whether this node is owned by a single processing unit
func (o *Chunk) isLeaf() bool {
	return len(o.Units) == 1
}

// addExpandedPoints appends halo points and grows the expanded boundary by
// their envelope. Polar chunks only move their equator-side latitude.
func (o *Chunk) addExpandedPoints(lons, lats []float64, gids []int) {
	if len(lons) == 0 {
		return
	}
	o.Lons = append(o.Lons, lons...)
	o.Lats = append(o.Lats, lats...)
	o.Gids = append(o.Gids, gids...)
	o.NumExpanded += len(lons)

	env := geo.Envelope(lons, lats)
	switch o.NodeType {
	case Common:
		o.ExpandedBoundary.Enlarge(env.MinLon, env.MaxLon, env.MinLat, env.MaxLat)
	case SPolar:
		o.ExpandedBoundary.MaxLat = env.MaxLat
	case NPolar:
		o.ExpandedBoundary.MinLat = env.MinLat
	}
}

// addNeighbors registers newly discovered neighbour chunks, skipping chunks
// of this chunk's own processing unit (itself, and the other half of a
// single-unit split) and chunks already known
func (o *Chunk) addNeighbors(ns []*Chunk) {
	for _, n := range ns {
		if n.Units[0] == o.Units[0] {
			continue
		}
		known := false
		for _, ex := range o.neighbors {
			if ex.chunk == n {
				known = true
				break
			}
		}
		if !known {
			o.neighbors = append(o.neighbors, &neighbor{chunk: n})
		}
	}
}

// calcRealBoundary refreshes the exact envelope of the present points
func (o *Chunk) calcRealBoundary() {
	env := geo.Envelope(o.Lons[:o.numPoints()], o.Lats[:o.numPoints()])
	o.RealBoundary = &env
}

// generateRotatedGrid lazily maintains the projected-coordinate shadow,
// extending it when new halo points arrived since the last call
func (o *Chunk) generateRotatedGrid() {
	n := o.numPoints()
	for i := o.NumRotated; i < n; i++ {
		plon, plat := geo.StereographicProject(o.Lons[i], o.Lats[i], o.Center[Lon], o.Center[Lat])
		o.ProjLons = append(o.ProjLons, geo.RotateShift(plon))
		o.ProjLats = append(o.ProjLats, plat)
	}
	o.NumRotated = n

	env := geo.Envelope(o.ProjLons, o.ProjLats)
	o.RotatedBoundary = &env
}

// generateLocalTriangulation builds the local triangulation: common chunks
// triangulate on raw coordinates and trim to the real box; polar chunks
// triangulate the projected shadow, swap back to geographic coordinates,
// repair the seam triangles and relegalize
func (o *Chunk) generateLocalTriangulation(isCyclic bool) (err error) {
	n := o.numPoints()
	o.calcRealBoundary()

	if o.NodeType == Common {
		o.Tri, err = tri.NewDelaunay(o.Lons[:n], o.Lats[:n], o.Gids[:n], *o.RealBoundary)
		if err != nil {
			return
		}
		o.Tri.RemoveTrianglesOnOrOutOfBoundary(*o.RealBoundary)
		return
	}

	// polar chunk: triangulate in projection
	o.generateRotatedGrid()
	o.Tri, err = tri.NewDelaunay(o.ProjLons[:n], o.ProjLats[:n], o.Gids[:n], *o.RotatedBoundary)
	if err != nil {
		return
	}

	// the seam of the projection: the meridian opposite the chunk's central
	// longitude, lifted like the points
	lon := (o.RealBoundary.MaxLon + o.RealBoundary.MinLon + 360.0) * 0.5
	if lon > 360.0 {
		lon -= 360.0
	}
	var headLon, headLat, tailLon, tailLat float64
	if o.NodeType == NPolar {
		headLon, headLat = geo.StereographicProject(lon, o.RealBoundary.MaxLat-0.1, o.Center[Lon], o.Center[Lat])
		tailLon, tailLat = geo.StereographicProject(lon, o.RealBoundary.MinLat, o.Center[Lon], o.Center[Lat])
	} else {
		headLon, headLat = geo.StereographicProject(lon, o.RealBoundary.MinLat+0.1, o.Center[Lon], o.Center[Lat])
		tailLon, tailLat = geo.StereographicProject(lon, o.RealBoundary.MaxLat, o.Center[Lon], o.Center[Lat])
	}
	head := geo.Point{X: geo.RotateShift(headLon), Y: headLat}
	tail := geo.Point{X: geo.RotateShift(tailLon), Y: tailLat}

	cyclic := o.Tri.CyclicTrianglesForRotatedGrid(head, tail)
	o.Tri.UpdateAllPointsCoord(o.Lons[:n], o.Lats[:n])
	o.Tri.CorrectCyclicTriangles(cyclic, isCyclic)
	o.Tri.RelegalizeAllTriangles()
	return
}

// searchPointsInHalo appends the kernel points of this chunk lying inside
// the halo annulus outer minus inner, checking the three longitude
// translates for the cyclic case. Translated matches are reported with the
// shifted longitude so they are geometrically adjacent to the requester.
func (o *Chunk) searchPointsInHalo(inner, outer *geo.Boundary, lons, lats *[]float64, gids *[]int) {
	if o.KernelBoundary.Within(*inner) {
		return
	}
	lInner := inner.Shifted(-360.0)
	lOuter := outer.Shifted(-360.0)
	rInner := inner.Shifted(+360.0)
	rOuter := outer.Shifted(+360.0)

	for j := 0; j < o.NumKernel; j++ {
		x := o.Lons[j]
		y := o.Lats[j]
		switch {
		case coordInHalo(x, y, inner, outer):
			*lons = append(*lons, x)
			*lats = append(*lats, y)
			*gids = append(*gids, o.Gids[j])
		case coordInHalo(x, y, &lInner, &lOuter):
			*lons = append(*lons, x+360.0)
			*lats = append(*lats, y)
			*gids = append(*gids, o.Gids[j])
		case coordInHalo(x, y, &rInner, &rOuter):
			*lons = append(*lons, x-360.0)
			*lats = append(*lats, y)
			*gids = append(*gids, o.Gids[j])
		}
	}
}

// coordInHalo tests membership in the annulus outer minus inner
func coordInHalo(x, y float64, inner, outer *geo.Boundary) bool {
	return !inner.Contains(x, y) && outer.Contains(x, y)
}

// checkAllOuterEdgesOutOfKernel shrinks every kernel side coinciding with
// the global grid box (no neighbour on that side) and asks the kernel
// whether the hull of the triangulation is clear of the remaining
// rectangle. A false answer means the halo is still too thin.
func (o *Chunk) checkAllOuterEdgesOutOfKernel(gridBoundary *geo.Boundary, isCyclic bool) bool {
	if o.Tri == nil {
		return false
	}
	midLat := (o.KernelBoundary.MaxLat + o.KernelBoundary.MinLat) * 0.5
	midLon := (o.KernelBoundary.MaxLon + o.KernelBoundary.MinLon) * 0.5

	maxLat := o.KernelBoundary.MaxLat
	if abs(maxLat-gridBoundary.MaxLat) < geo.FloatEq {
		maxLat = midLat
	}
	minLat := o.KernelBoundary.MinLat
	if abs(minLat-gridBoundary.MinLat) < geo.FloatEq {
		minLat = midLat
	}
	var minLon, maxLon float64
	if isCyclic {
		// wrapping grids always have a longitude neighbour: nothing shrinks
		minLon = o.KernelBoundary.MinLon
		maxLon = o.KernelBoundary.MaxLon
	} else {
		maxLon = o.KernelBoundary.MaxLon
		if abs(maxLon-gridBoundary.MaxLon) < geo.FloatEq {
			maxLon = midLon
		}
		minLon = o.KernelBoundary.MinLon
		if abs(minLon-gridBoundary.MinLon) < geo.FloatEq {
			minLon = midLon
		}
	}
	return o.Tri.AllOuterEdgesOutOfRegion(minLon, maxLon, minLat, maxLat)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
