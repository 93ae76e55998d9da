// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tri

import (
	"github.com/cpmech/gosl/plt"
)

// Plot draws the live triangulation into dirout/fnkey.png for debugging
func (o *Delaunay) Plot(dirout, fnkey string) {
	plt.SetForPng(0.75, 500, 150)
	for t := 0; t < len(o.tris); t++ {
		if !o.tris[t].Leaf {
			continue
		}
		x := make([]float64, 4)
		y := make([]float64, 4)
		for k := 0; k < 3; k++ {
			p := o.pts[o.tris[t].V[k]]
			x[k] = p.X
			y[k] = p.Y
		}
		x[3] = x[0]
		y[3] = y[0]
		plt.Plot(x, y, "'b-', lw=0.5")
	}
	plt.Gll("longitude", "latitude", "")
	plt.SaveD(dirout, fnkey+".png")
}
