// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/WireFisher/parallel-delaunay/tri"
	"github.com/cpmech/gosl/plt"
)

// PlotTriangles draws a gathered triangle list into dirout/fnkey.png
func PlotTriangles(dirout, fnkey string, ts []tri.Transport) {
	plt.SetForPng(0.75, 500, 150)
	for _, t := range ts {
		x := []float64{t.V[0].X, t.V[1].X, t.V[2].X, t.V[0].X}
		y := []float64{t.V[0].Y, t.V[1].Y, t.V[2].Y, t.V[0].Y}
		plt.Plot(x, y, "'b-', lw=0.5")
	}
	plt.Gll("longitude", "latitude", "")
	plt.SaveD(dirout, fnkey+".png")
}
