// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Damping models dissipate energy along the contact normal. They declare
// no coefficients of their own: the raw damping coefficient is read from
// the normal submodel, so the damping submodel must be derived after the
// normal one.

// dampingBase collects the data shared by all damping models
type dampingBase struct {
	Submodel
	damp float64 // working damping coefficient
}

// Damp returns the working damping coefficient
func (o *dampingBase) Damp() float64 { return o.damp }

// normalDamp fetches the raw damping coefficient from the normal submodel
func (o *dampingBase) normalDamp() (float64, error) {
	if o.gm == nil || o.gm.Normal == nil {
		return 0, chk.Err("%s: damping model requires a normal model", o.Name)
	}
	return o.gm.Normal.Damp(), nil
}

// MixCoeffs re-derives the working parameters; damping models have no
// coefficients of their own to mix
func (o *dampingBase) MixCoeffs(i, j Model) error {
	return nil
}

// DampingNone switches normal damping off
type DampingNone struct {
	dampingBase
}

// add model to database
func init() {
	dampingAllocators["none"] = func() DampingModel {
		o := new(DampingNone)
		o.Name = "none"
		return o
	}
}

// CoeffsToLocal derives working parameters
func (o *DampingNone) CoeffsToLocal() error {
	o.damp = 0
	return nil
}

// CalculateForces returns the normal damping force
func (o *DampingNone) CalculateForces(s *State) float64 {
	return 0
}

// DampingVelocity implements constant-coefficient velocity damping
//  Fdamp = -damp * vnnr
type DampingVelocity struct {
	dampingBase
}

// add model to database
func init() {
	dampingAllocators["velocity"] = func() DampingModel {
		o := new(DampingVelocity)
		o.Name = "velocity"
		return o
	}
}

// CoeffsToLocal derives working parameters
func (o *DampingVelocity) CoeffsToLocal() (err error) {
	o.damp, err = o.normalDamp()
	return
}

// CalculateForces returns the normal damping force
func (o *DampingVelocity) CalculateForces(s *State) float64 {
	return -o.damp * s.Vnnr
}

// DampingMassVelocity scales velocity damping with the effective mass
//  Fdamp = -damp * meff * vnnr
type DampingMassVelocity struct {
	dampingBase
}

// add model to database
func init() {
	dampingAllocators["mass_velocity"] = func() DampingModel {
		o := new(DampingMassVelocity)
		o.Name = "mass_velocity"
		return o
	}
}

// CoeffsToLocal derives working parameters
func (o *DampingMassVelocity) CoeffsToLocal() (err error) {
	o.damp, err = o.normalDamp()
	return
}

// CalculateForces returns the normal damping force
func (o *DampingMassVelocity) CalculateForces(s *State) float64 {
	return -o.damp * s.Meff * s.Vnnr
}

// DampingViscoelastic scales damping with effective mass and contact area
//  Fdamp = -damp * meff * area * vnnr
type DampingViscoelastic struct {
	dampingBase
}

// add model to database
func init() {
	dampingAllocators["viscoelastic"] = func() DampingModel {
		o := new(DampingViscoelastic)
		o.Name = "viscoelastic"
		return o
	}
}

// CoeffsToLocal derives working parameters
func (o *DampingViscoelastic) CoeffsToLocal() (err error) {
	o.damp, err = o.normalDamp()
	return
}

// CalculateForces returns the normal damping force
func (o *DampingViscoelastic) CalculateForces(s *State) float64 {
	return -o.damp * s.Meff * s.Area * s.Vnnr
}

// DampingTsuji converts a restitution coefficient into a damping ratio
// following Tsuji, Tanaka and Ishida, Powder Tech. 1992, v71, p239
//  Fdamp = -damp * sqrt(meff * knfac) * vnnr
type DampingTsuji struct {
	dampingBase
}

// add model to database
func init() {
	dampingAllocators["tsuji"] = func() DampingModel {
		o := new(DampingTsuji)
		o.Name = "tsuji"
		return o
	}
}

// CoeffsToLocal derives the damping ratio from the restitution
// coefficient carried by the normal model
func (o *DampingTsuji) CoeffsToLocal() (err error) {
	cor, err := o.normalDamp()
	if err != nil {
		return
	}
	if cor < 0 || cor > 1 {
		return chk.Err("%s: invalid model parameters: restitution coefficient %g must be within [0,1]", o.Name, cor)
	}
	o.damp = 1.2728 - 4.2783*cor + 11.087*math.Pow(cor, 2) - 22.348*math.Pow(cor, 3) +
		27.467*math.Pow(cor, 4) - 18.022*math.Pow(cor, 5) + 4.8218*math.Pow(cor, 6)
	return
}

// CalculateForces returns the normal damping force
func (o *DampingTsuji) CalculateForces(s *State) float64 {
	return -o.damp * math.Sqrt(s.Meff*s.Knfac) * s.Vnnr
}
