// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pat

import (
	"github.com/WireFisher/parallel-delaunay/geo"
	"github.com/WireFisher/parallel-delaunay/tri"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// message tags: (0x100 | iteration) << 1 | extra-bit keeps each iteration's
// traffic apart and separates the cyclic-seam counterpart
const commTagMask = 0x0100

func tagNormal(iter int) int {
	chk.IntAssertLessThan(iter, commTagMask)
	return (commTagMask | iter) << 1
}

func tagExtra(iter int) int {
	chk.IntAssertLessThan(iter, commTagMask)
	return (commTagMask|iter)<<1 | 1
}

// computeCommonBoundary finds where two kernel boxes touch: one axis-aligned
// segment on a shared side, and one cyclic-seam counterpart when the
// touching longitudes differ by 360. Missing segments come back nil.
func computeCommonBoundary(a, b *Chunk) (head, tail, head2, tail2 *geo.Point) {
	ka := &a.KernelBoundary
	kb := &b.KernelBoundary

	latOverlap := max64(ka.MinLat, kb.MinLat) < min64(ka.MaxLat, kb.MaxLat)
	lonOverlap := max64(ka.MinLon, kb.MinLon) < min64(ka.MaxLon, kb.MaxLon)

	switch {
	case abs(ka.MinLat-kb.MaxLat) < geo.FloatEq && lonOverlap:
		head = &geo.Point{X: max64(ka.MinLon, kb.MinLon), Y: kb.MaxLat}
		tail = &geo.Point{X: min64(ka.MaxLon, kb.MaxLon), Y: kb.MaxLat}
	case abs(ka.MaxLat-kb.MinLat) < geo.FloatEq && lonOverlap:
		head = &geo.Point{X: max64(ka.MinLon, kb.MinLon), Y: ka.MaxLat}
		tail = &geo.Point{X: min64(ka.MaxLon, kb.MaxLon), Y: ka.MaxLat}
	case abs(ka.MinLon-kb.MaxLon) < geo.FloatEq && latOverlap:
		head = &geo.Point{X: kb.MaxLon, Y: max64(ka.MinLat, kb.MinLat)}
		tail = &geo.Point{X: kb.MaxLon, Y: min64(ka.MaxLat, kb.MaxLat)}
	case abs(ka.MaxLon-kb.MinLon) < geo.FloatEq && latOverlap:
		head = &geo.Point{X: ka.MaxLon, Y: max64(ka.MinLat, kb.MinLat)}
		tail = &geo.Point{X: ka.MaxLon, Y: min64(ka.MaxLat, kb.MaxLat)}
	}

	// cyclic-seam counterpart: the same pair may also touch across 0/360
	switch {
	case abs(abs(ka.MinLon-kb.MaxLon)-360.0) < geo.FloatEq && latOverlap:
		head2 = &geo.Point{X: ka.MinLon, Y: max64(ka.MinLat, kb.MinLat)}
		tail2 = &geo.Point{X: ka.MinLon, Y: min64(ka.MaxLat, kb.MaxLat)}
	case abs(abs(ka.MaxLon-kb.MinLon)-360.0) < geo.FloatEq && latOverlap:
		head2 = &geo.Point{X: ka.MaxLon, Y: max64(ka.MinLat, kb.MinLat)}
		tail2 = &geo.Point{X: ka.MaxLon, Y: min64(ka.MaxLat, kb.MaxLat)}
	}
	return
}

// checkTrianglesConsistency compares two equally sized triangle lists as
// multisets of canonical id triples
func checkTrianglesConsistency(local, remote []tri.Transport) bool {
	if len(local) == 0 {
		return true
	}
	seen := make(map[[3]int]bool, len(local))
	for _, t := range local {
		k := t.CanonicalIds()
		if seen[k] {
			chk.Panic("local boundary triangle list has redundant triangle %v", k)
		}
		seen[k] = true
	}
	for _, t := range remote {
		if !seen[t.CanonicalIds()] {
			return false
		}
	}
	return true
}

// sentBatch keeps what a leaf pushed to one neighbour during the send phase
type sentBatch struct {
	normal     []tri.Transport
	extra      []tri.Transport
	hasNormal  bool
	hasExtra   bool
	neighborIx int
}

// sendBoundaryTriangles runs the send phase of one consistency iteration
// for one leaf: for every still-inconsistent neighbour, ship the triangles
// crossing the shared boundary (and the cyclic counterpart)
func (o *Decomposition) sendBoundaryTriangles(leaf *Chunk, iter, bufLen int) (sent []sentBatch, err error) {
	for i, nb := range leaf.neighbors {
		if nb.ok {
			continue
		}
		head, tail, head2, tail2 := computeCommonBoundary(leaf, nb.chunk)
		batch := sentBatch{neighborIx: i}
		if head != nil {
			ts, e := leaf.Tri.TrianglesIntersectingSegment(*head, *tail, bufLen)
			if e != nil {
				return nil, e
			}
			batch.normal = ts
			batch.hasNormal = true
			o.Res.Send(leaf.Units[0], nb.chunk.Units[0], tagNormal(iter), tri.EncodeTransports(ts))
		}
		if head2 != nil {
			ts, e := leaf.Tri.TrianglesIntersectingSegment(*head2, *tail2, bufLen)
			if e != nil {
				return nil, e
			}
			batch.extra = ts
			batch.hasExtra = true
			o.Res.Send(leaf.Units[0], nb.chunk.Units[0], tagExtra(iter), tri.EncodeTransports(ts))
		}
		if batch.hasNormal || batch.hasExtra {
			sent = append(sent, batch)
		} else {
			// boxes no longer touch: nothing to agree on
			nb.ok = true
		}
	}
	return
}

// recvAndCompare runs the receive phase: pull the peer lists and compare
// them with what was sent. Agreeing neighbours are marked consistent.
func (o *Decomposition) recvAndCompare(leaf *Chunk, iter int, sent []sentBatch) (allPassed bool) {
	allPassed = true
	for _, batch := range sent {
		nb := leaf.neighbors[batch.neighborIx]
		passed := true
		if batch.hasNormal {
			remote := tri.DecodeTransports(o.Res.Recv(nb.chunk.Units[0], leaf.Units[0], tagNormal(iter)))
			if len(remote) != len(batch.normal) || !checkTrianglesConsistency(batch.normal, remote) {
				if o.Cfg.Verbose {
					io.Pfgrey("[%d] consistency %d vs %d: %d local, %d remote triangles\n",
						iter, leaf.Units[0], nb.chunk.Units[0], len(batch.normal), len(remote))
				}
				passed = false
			}
		}
		if batch.hasExtra {
			remote := tri.DecodeTransports(o.Res.Recv(nb.chunk.Units[0], leaf.Units[0], tagExtra(iter)))
			if len(remote) != len(batch.extra) || !checkTrianglesConsistency(batch.extra, remote) {
				if o.Cfg.Verbose {
					io.Pfgrey("[%d] seam consistency %d vs %d: %d local, %d remote triangles\n",
						iter, leaf.Units[0], nb.chunk.Units[0], len(batch.extra), len(remote))
				}
				passed = false
			}
		}
		if passed {
			nb.ok = true
		} else {
			allPassed = false
		}
	}
	return
}

// leafLocallyConsistent reports whether a leaf has no neighbour left to
// agree with; a leaf without neighbours counts as consistent once its halo
// covers the whole grid
func (o *Decomposition) leafLocallyConsistent(leaf *Chunk) bool {
	if len(leaf.neighbors) == 0 {
		return o.haloCoversGrid(leaf)
	}
	for _, nb := range leaf.neighbors {
		if !nb.ok {
			return false
		}
	}
	return true
}

// haloCoversGrid reports whether a leaf's expanded boundary holds every
// grid point; for cyclic grids a full longitude wrap counts as covered
func (o *Decomposition) haloCoversGrid(leaf *Chunk) bool {
	root := &o.Root.KernelBoundary
	exp := &leaf.ExpandedBoundary
	if exp.MinLat > root.MinLat || exp.MaxLat < root.MaxLat {
		return false
	}
	if o.IsCyclic {
		return exp.MaxLon-exp.MinLon >= 360.0-geo.FloatEq
	}
	return exp.MinLon <= root.MinLon && exp.MaxLon >= root.MaxLon
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
