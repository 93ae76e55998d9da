// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/WireFisher/parallel-delaunay/prc"
	"github.com/WireFisher/parallel-delaunay/tri"
)

// mergeTag segregates gather traffic from the consistency iterations
const mergeTag = 0x0200

// Gather concentrates the kernel-clipped triangles of all processes on the
// gather process (process 0). Only the gather process receives a non-nil
// list and isRoot true.
func Gather(res *prc.Resource, local []tri.Transport) (all []tri.Transport, isRoot bool) {
	res.Barrier()

	firstUnit := func(proc int) int {
		for _, u := range res.Units {
			if u.ProcId == proc {
				return u.Id
			}
		}
		return -1
	}

	if res.LocalProc != 0 {
		res.Send(firstUnit(res.LocalProc), firstUnit(0), mergeTag, tri.EncodeTransports(local))
		res.Wait()
		return nil, false
	}

	all = append(all, local...)
	for p := 1; p < res.NumProcs; p++ {
		all = append(all, tri.DecodeTransports(res.Recv(firstUnit(p), firstUnit(0), mergeTag))...)
	}
	return all, true
}
