// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Config holds the tuning knobs of the decomposition and the consistency
// loop. Zero values are replaced by the defaults below.
type Config struct {

	// decomposition
	MinPointsPerChunk int     `json:"minchunk"`  // floor on kernel size; smaller units are deactivated
	SPolarMaxLat      float64 `json:"spolarlat"` // latitude below which the south cap is carved
	NPolarMinLat      float64 `json:"npolarlat"` // latitude above which the north cap is carved
	MaxIter           int     `json:"maxiter"`   // cap on workload-bisection and halo-grow loops
	TolerableError    float64 `json:"tolerr"`    // workload-split convergence tolerance

	// halo expansion
	ExpandingRatio float64 `json:"ratio"`     // first halo growth step
	RatioStep      float64 `json:"ratiostep"` // growth-step increment per iteration

	// output
	DirOut  string `json:"dirout"`  // directory for output; e.g. log
	Verbose bool   `json:"verbose"` // show messages
}

// SetDefaults fills unset knobs with the standard values
func (o *Config) SetDefaults() {
	if o.MinPointsPerChunk == 0 {
		o.MinPointsPerChunk = 100
	}
	if o.SPolarMaxLat == 0 {
		o.SPolarMaxLat = -45.0
	}
	if o.NPolarMinLat == 0 {
		o.NPolarMinLat = 45.0
	}
	if o.MaxIter == 0 {
		o.MaxIter = 10
	}
	if o.TolerableError == 0 {
		o.TolerableError = 1e-4
	}
	if o.ExpandingRatio == 0 {
		o.ExpandingRatio = 0.2
	}
	if o.RatioStep == 0 {
		o.RatioStep = 0.1
	}
	if o.DirOut == "" {
		o.DirOut = "log"
	}
}

// ReadConfig reads a configuration file; a missing path yields the defaults
func ReadConfig(path string) (o *Config, err error) {
	o = new(Config)
	if path != "" {
		b, e := io.ReadFile(path)
		if e != nil {
			return nil, chk.Err("cannot read configuration file %q:\n%v", path, e)
		}
		e = json.Unmarshal(b, o)
		if e != nil {
			return nil, chk.Err("cannot parse configuration file %q:\n%v", path, e)
		}
	}
	o.SetDefaults()
	return
}
