// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tri

import (
	"github.com/WireFisher/parallel-delaunay/geo"
	"github.com/cpmech/gosl/chk"
)

// EncodeTransports packs triangles as nine float64 each: (x, y, id) per
// vertex. Ids survive the float64 round-trip exactly.
func EncodeTransports(ts []Transport) (buf []float64) {
	buf = make([]float64, 0, 9*len(ts))
	for _, t := range ts {
		for k := 0; k < 3; k++ {
			buf = append(buf, t.V[k].X, t.V[k].Y, float64(t.V[k].Id))
		}
	}
	return
}

// DecodeTransports unpacks a payload produced by EncodeTransports
func DecodeTransports(buf []float64) (ts []Transport) {
	chk.IntAssert(len(buf)%9, 0)
	for i := 0; i < len(buf); i += 9 {
		var t Transport
		for k := 0; k < 3; k++ {
			t.V[k] = geo.Point{X: buf[i+3*k], Y: buf[i+3*k+1], Id: int(buf[i+3*k+2])}
		}
		ts = append(ts, t)
	}
	return
}

// CanonicalIds returns the triangle's vertex ids sorted ascending
func (t Transport) CanonicalIds() (k [3]int) {
	k[0], k[1], k[2] = t.V[0].Id, t.V[1].Id, t.V[2].Id
	if k[0] > k[1] {
		k[0], k[1] = k[1], k[0]
	}
	if k[1] > k[2] {
		k[1], k[2] = k[2], k[1]
	}
	if k[0] > k[1] {
		k[0], k[1] = k[1], k[0]
	}
	return
}
