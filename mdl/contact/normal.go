// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// normalBase collects the data shared by all normal models
type normalBase struct {
	Submodel
	k        float64 // normal stiffness
	damp     float64 // raw damping coefficient, consumed by the damping submodel
	emod     float64 // Young's modulus (material-property models)
	poiss    float64 // Poisson's ratio (material-property models)
	matprops bool    // Emod/Poiss are meaningful
}

// Area returns the contact area for overlap-based models
func (o *normalBase) Area(s *State) float64 {
	return math.Sqrt(s.DR)
}

// Fncrit returns the critical normal force bounding friction
func (o *normalBase) Fncrit(s *State) float64 {
	return math.Abs(s.Fntot)
}

// Damp returns the raw damping coefficient
func (o *normalBase) Damp() float64 { return o.damp }

// HasMaterialProperties reports whether Emod/Poiss are meaningful
func (o *normalBase) HasMaterialProperties() bool { return o.matprops }

// Emod returns the Young's modulus
func (o *normalBase) Emod() float64 { return o.emod }

// Poiss returns the Poisson's ratio
func (o *normalBase) Poiss() float64 { return o.poiss }

// NormalHooke implements a linear (Hookean) normal force model
//  Fne = kn * delta
type NormalHooke struct {
	normalBase
}

// add model to database
func init() {
	normalAllocators["hooke"] = func() NormalModel {
		o := new(NormalHooke)
		o.Name = "hooke"
		o.ArgNames = []string{"kn", "damp"}
		return o
	}
}

// CoeffsToLocal derives working parameters from coefficients
func (o *NormalHooke) CoeffsToLocal() (err error) {
	o.k = o.Coeffs[0]
	o.damp = o.Coeffs[1]
	if o.k < 0 || o.damp < 0 {
		return chk.Err("%s: invalid model parameters: {kn=%g, damp=%g} must be non-negative", o.Name, o.k, o.damp)
	}
	return
}

// MixCoeffs mixes the coefficients of two same-type models
func (o *NormalHooke) MixCoeffs(i, j Model) (err error) {
	if err = o.mixGeom(i, j); err != nil {
		return
	}
	return o.CoeffsToLocal()
}

// CalculateForces returns the elastic normal force
func (o *NormalHooke) CalculateForces(s *State) float64 {
	s.Knfac = o.k
	return o.k * s.Delta
}

// NormalHertz implements the Hertzian normal force model
//  Fne = kn * area * delta
type NormalHertz struct {
	normalBase
}

// add model to database
func init() {
	normalAllocators["hertz"] = func() NormalModel {
		o := new(NormalHertz)
		o.Name = "hertz"
		o.ArgNames = []string{"kn", "damp"}
		return o
	}
}

// CoeffsToLocal derives working parameters from coefficients
func (o *NormalHertz) CoeffsToLocal() (err error) {
	o.k = o.Coeffs[0]
	o.damp = o.Coeffs[1]
	if o.k < 0 || o.damp < 0 {
		return chk.Err("%s: invalid model parameters: {kn=%g, damp=%g} must be non-negative", o.Name, o.k, o.damp)
	}
	return
}

// MixCoeffs mixes the coefficients of two same-type models
func (o *NormalHertz) MixCoeffs(i, j Model) (err error) {
	if err = o.mixGeom(i, j); err != nil {
		return
	}
	return o.CoeffsToLocal()
}

// CalculateForces returns the elastic normal force
func (o *NormalHertz) CalculateForces(s *State) float64 {
	s.Knfac = o.k * s.Area
	return s.Knfac * s.Delta
}

// NormalHertzMaterial implements the Hertzian model parameterised by
// material properties:
//  kn = 4/3 * E*    with  E* = MixStiffnessE(E, E, nu, nu)
type NormalHertzMaterial struct {
	normalBase
}

// add model to database
func init() {
	normalAllocators["hertz/material"] = func() NormalModel {
		o := new(NormalHertzMaterial)
		o.Name = "hertz/material"
		o.ArgNames = []string{"E", "damp", "nu"}
		o.matprops = true
		return o
	}
}

// CoeffsToLocal derives working parameters from coefficients
func (o *NormalHertzMaterial) CoeffsToLocal() (err error) {
	o.emod = o.Coeffs[0]
	o.damp = o.Coeffs[1]
	o.poiss = o.Coeffs[2]
	if o.emod < 0 || o.damp < 0 || o.poiss < 0 {
		return chk.Err("%s: invalid model parameters: {E=%g, damp=%g, nu=%g} must be non-negative", o.Name, o.emod, o.damp, o.poiss)
	}
	o.k = 4.0 / 3.0 * MixStiffnessE(o.emod, o.emod, o.poiss, o.poiss)
	return
}

// MixCoeffs mixes the coefficients of two same-type models. The modulus
// is combined with the elastic contact rule so that the mixed stiffness
// equals 4/3 * MixStiffnessE(Ei, Ej, nui, nuj); the remaining
// coefficients use the geometric mean.
func (o *NormalHertzMaterial) MixCoeffs(i, j Model) (err error) {
	if i.ModelName() != o.Name || j.ModelName() != o.Name {
		return chk.Err("%s: cannot mix with models %q and %q", o.Name, i.ModelName(), j.ModelName())
	}
	ic, jc := i.GetCoeffs(), j.GetCoeffs()
	o.Coeffs = make([]float64, len(o.ArgNames))
	nu := MixGeom(ic[2], jc[2])
	o.Coeffs[0] = 2.0 * (1.0 - nu*nu) * MixStiffnessE(ic[0], jc[0], ic[2], jc[2])
	o.Coeffs[1] = MixGeom(ic[1], jc[1])
	o.Coeffs[2] = nu
	return o.CoeffsToLocal()
}

// CalculateForces returns the elastic normal force
func (o *NormalHertzMaterial) CalculateForces(s *State) float64 {
	s.Knfac = o.k * s.Area
	return s.Knfac * s.Delta
}

// NormalDMT implements the Hertzian material model with DMT cohesion
//  Fne = kn * area * delta - 4*pi*cohesion*Reff
type NormalDMT struct {
	NormalHertzMaterial
	cohesion float64
}

// add model to database
func init() {
	normalAllocators["dmt"] = func() NormalModel {
		o := new(NormalDMT)
		o.Name = "dmt"
		o.ArgNames = []string{"E", "damp", "nu", "cohesion"}
		o.matprops = true
		return o
	}
}

// CoeffsToLocal derives working parameters from coefficients
func (o *NormalDMT) CoeffsToLocal() (err error) {
	if err = o.NormalHertzMaterial.CoeffsToLocal(); err != nil {
		return
	}
	o.cohesion = o.Coeffs[3]
	if o.cohesion < 0 {
		return chk.Err("%s: invalid model parameters: {cohesion=%g} must be non-negative", o.Name, o.cohesion)
	}
	return
}

// MixCoeffs mixes the coefficients of two same-type models
func (o *NormalDMT) MixCoeffs(i, j Model) (err error) {
	if i.ModelName() != o.Name || j.ModelName() != o.Name {
		return chk.Err("%s: cannot mix with models %q and %q", o.Name, i.ModelName(), j.ModelName())
	}
	ic, jc := i.GetCoeffs(), j.GetCoeffs()
	o.Coeffs = make([]float64, len(o.ArgNames))
	nu := MixGeom(ic[2], jc[2])
	o.Coeffs[0] = 2.0 * (1.0 - nu*nu) * MixStiffnessE(ic[0], jc[0], ic[2], jc[2])
	o.Coeffs[1] = MixGeom(ic[1], jc[1])
	o.Coeffs[2] = nu
	o.Coeffs[3] = MixGeom(ic[3], jc[3])
	return o.CoeffsToLocal()
}

// CalculateForces returns the elastic normal force including the
// DMT adhesive term
func (o *NormalDMT) CalculateForces(s *State) float64 {
	s.Knfac = o.k * s.Area
	return s.Knfac*s.Delta - 4.0*math.Pi*o.cohesion*s.Reff
}

// Fncrit includes the pulloff force so that friction does not vanish at
// the adhesion-balanced point
func (o *NormalDMT) Fncrit(s *State) float64 {
	pulloff := 4.0 * math.Pi * o.cohesion * s.Reff
	return math.Abs(s.Fntot + 2.0*pulloff)
}
