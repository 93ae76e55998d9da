// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Summary records the shape of one run next to the triangle file
type Summary struct {
	NumUnits     int `json:"nunits"`
	NumProcs     int `json:"nprocs"`
	NumPoints    int `json:"npoints"`
	NumTriangles int `json:"ntriangles"`
}

// Save writes the summary as JSON into dirout
func (o Summary) Save(dirout string) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		chk.Panic("cannot encode summary:\n%v", err)
	}
	io.WriteFileSD(dirout, "summary.json", string(b))
}
