// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the global assembler: gathering the per-chunk
// kernel triangles, canonicalizing and deduplicating them, and writing the
// deterministic global triangle file
package out

import (
	"bytes"

	"github.com/WireFisher/parallel-delaunay/tri"
	"github.com/cpmech/gosl/io"
)

// Canonicalize reorders each triangle's vertices so the ids ascend
func Canonicalize(ts []tri.Transport) {
	for i := range ts {
		v := &ts[i].V
		if v[0].Id > v[1].Id {
			v[0], v[1] = v[1], v[0]
		}
		if v[1].Id > v[2].Id {
			v[1], v[2] = v[2], v[1]
		}
		if v[0].Id > v[1].Id {
			v[0], v[1] = v[1], v[0]
		}
	}
}

// mergeSortStable sorts ts in place, stably, by the given strict order
func mergeSortStable(ts []tri.Transport, less func(a, b tri.Transport) bool) {
	if len(ts) < 2 {
		return
	}
	aux := make([]tri.Transport, len(ts))
	var rec func(lo, hi int)
	rec = func(lo, hi int) {
		if hi-lo < 2 {
			return
		}
		mid := (lo + hi) / 2
		rec(lo, mid)
		rec(mid, hi)
		copy(aux[lo:hi], ts[lo:hi])
		i, j := lo, mid
		for k := lo; k < hi; k++ {
			switch {
			case i == mid:
				ts[k] = aux[j]
				j++
			case j == hi:
				ts[k] = aux[i]
				i++
			case less(aux[j], aux[i]): // strictly smaller right wins; ties keep left
				ts[k] = aux[j]
				j++
			default:
				ts[k] = aux[i]
				i++
			}
		}
	}
	rec(0, len(ts))
}

// SortTriangles orders the canonicalized list by (id0, id1, id2) via three
// stable passes, least significant key first
func SortTriangles(ts []tri.Transport) {
	for key := 2; key >= 0; key-- {
		k := key
		mergeSortStable(ts, func(a, b tri.Transport) bool {
			return a.V[k].Id < b.V[k].Id
		})
	}
}

// Dedup removes adjacent duplicates from a sorted list
func Dedup(ts []tri.Transport) []tri.Transport {
	if len(ts) == 0 {
		return ts
	}
	i := 0
	for j := 1; j < len(ts); j++ {
		if ts[i].V[0].Id == ts[j].V[0].Id &&
			ts[i].V[1].Id == ts[j].V[1].Id &&
			ts[i].V[2].Id == ts[j].V[2].Id {
			continue
		}
		i++
		ts[i] = ts[j]
	}
	return ts[:i+1]
}

// MergeTriangles canonicalizes, sorts and deduplicates the gathered list,
// yielding the deterministic global triangulation
func MergeTriangles(ts []tri.Transport) []tri.Transport {
	Canonicalize(ts)
	SortTriangles(ts)
	return Dedup(ts)
}

// SaveTriangles writes the global triangle file: one line per triangle with
// the three ascending vertex ids
func SaveTriangles(dirout string, ts []tri.Transport) {
	var buf bytes.Buffer
	for _, t := range ts {
		io.Ff(&buf, "%d, %d, %d\n", t.V[0].Id, t.V[1].Id, t.V[2].Id)
	}
	io.WriteFileD(dirout, "global_triangles", &buf)
}
