// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import "github.com/cpmech/gosl/chk"

// HeatNone switches conductive heat flux off
type HeatNone struct {
	Submodel
}

// add model to database
func init() {
	heatAllocators["none"] = func() HeatModel {
		o := new(HeatNone)
		o.Name = "none"
		return o
	}
}

// CoeffsToLocal derives working parameters
func (o *HeatNone) CoeffsToLocal() error { return nil }

// MixCoeffs mixes the coefficients of two same-type models
func (o *HeatNone) MixCoeffs(i, j Model) error { return nil }

// CalculateHeat computes the heat flux into particle i
func (o *HeatNone) CalculateHeat(s *State) float64 { return 0 }

// HeatArea implements area-scaled heat conduction across the contact
//  dq = ks * area * (Tj - Ti)
type HeatArea struct {
	Submodel
	ks float64 // conductivity
}

// add model to database
func init() {
	heatAllocators["area"] = func() HeatModel {
		o := new(HeatArea)
		o.Name = "area"
		o.ArgNames = []string{"ks"}
		return o
	}
}

// CoeffsToLocal derives working parameters from coefficients
func (o *HeatArea) CoeffsToLocal() (err error) {
	o.ks = o.Coeffs[0]
	if o.ks < 0 {
		return chk.Err("%s: invalid model parameters: {ks=%g} must be non-negative", o.Name, o.ks)
	}
	return
}

// MixCoeffs mixes the coefficients of two same-type models
func (o *HeatArea) MixCoeffs(i, j Model) (err error) {
	if err = o.mixGeom(i, j); err != nil {
		return
	}
	return o.CoeffsToLocal()
}

// CalculateHeat computes the heat flux into particle i
func (o *HeatArea) CalculateHeat(s *State) float64 {
	return o.ks * s.Area * (s.Tj - s.Ti)
}
