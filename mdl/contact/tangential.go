// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// DeriveFromMaterial, given as the tangential stiffness 'kt', requests
// that the stiffness be derived from the normal model's elastic modulus
// and Poisson's ratio via the shear-modulus mixing rule
const DeriveFromMaterial = -1.0

// tangentialBase collects the data shared by all tangential models
type tangentialBase struct {
	Submodel
	k    float64 // tangential stiffness
	xt   float64 // damping coupling with the damping submodel
	mu   float64 // friction coefficient
	damp float64 // tangential damping = xt * damping.Damp()
}

// Stiffness returns the working tangential stiffness
func (o *tangentialBase) Stiffness() float64 { return o.k }

// DampCoeff returns the working tangential damping
func (o *tangentialBase) DampCoeff() float64 { return o.damp }

// Mu returns the friction coefficient
func (o *tangentialBase) Mu() float64 { return o.mu }

// dampingDamp fetches the damping submodel's working coefficient
func (o *tangentialBase) dampingDamp() (float64, error) {
	if o.gm == nil || o.gm.Damping == nil {
		return 0, chk.Err("%s: tangential model requires a damping model", o.Name)
	}
	return o.gm.Damping.Damp(), nil
}

// TangentialLinearNoHistory implements a linear, history-free friction
// model: the damping force along the tangential velocity, capped by the
// Coulomb limit
type TangentialLinearNoHistory struct {
	tangentialBase
}

// add model to database
func init() {
	tangentialAllocators["linear_nohistory"] = func() TangentialModel {
		o := new(TangentialLinearNoHistory)
		o.Name = "linear_nohistory"
		o.ArgNames = []string{"xt", "mu"}
		return o
	}
}

// CoeffsToLocal derives working parameters from coefficients
func (o *TangentialLinearNoHistory) CoeffsToLocal() (err error) {
	o.k = 0 // no tangential stiffness with no history
	o.xt = o.Coeffs[0]
	o.mu = o.Coeffs[1]
	if o.xt < 0 || o.mu < 0 {
		return chk.Err("%s: invalid model parameters: {xt=%g, mu=%g} must be non-negative", o.Name, o.xt, o.mu)
	}
	o.damp, err = o.dampingDamp()
	o.damp *= o.xt
	return
}

// MixCoeffs mixes the coefficients of two same-type models
func (o *TangentialLinearNoHistory) MixCoeffs(i, j Model) (err error) {
	if err = o.mixGeom(i, j); err != nil {
		return
	}
	return o.CoeffsToLocal()
}

// CalculateForces computes the tangential force
func (o *TangentialLinearNoHistory) CalculateForces(s *State) {
	Fscrit := o.mu * s.Fncrit
	fsmag := o.damp * s.Vrel
	var Ft float64
	if s.Vrel != 0 {
		Ft = utl.Min(Fscrit, fsmag) / s.Vrel
	}
	scale3to(-Ft, s.Vtr, s.Fs)
}

// TangentialLinearHistory implements a linear friction model with an
// elastic tangential spring. The history slots store the accumulated
// spring force; its component along the contact normal is projected out
// as the contact frame rotates.
// See e.g. eq. 17 of Luding, Gran. Matter 2008, v10, p235.
type TangentialLinearHistory struct {
	tangentialBase
}

// add model to database
func init() {
	tangentialAllocators["linear_history"] = func() TangentialModel {
		o := new(TangentialLinearHistory)
		o.Name = "linear_history"
		o.ArgNames = []string{"kt", "xt", "mu"}
		o.SizeHist = 3
		return o
	}
}

// CoeffsToLocal derives working parameters from coefficients
func (o *TangentialLinearHistory) CoeffsToLocal() (err error) {
	o.k = o.Coeffs[0]
	o.xt = o.Coeffs[1]
	o.mu = o.Coeffs[2]
	if o.k < 0 || o.xt < 0 || o.mu < 0 {
		return chk.Err("%s: invalid model parameters: {kt=%g, xt=%g, mu=%g} must be non-negative", o.Name, o.k, o.xt, o.mu)
	}
	o.damp, err = o.dampingDamp()
	o.damp *= o.xt
	return
}

// MixCoeffs mixes the coefficients of two same-type models
func (o *TangentialLinearHistory) MixCoeffs(i, j Model) (err error) {
	if err = o.mixGeom(i, j); err != nil {
		return
	}
	return o.CoeffsToLocal()
}

// CalculateForces computes the tangential force and updates the history
func (o *TangentialLinearHistory) CalculateForces(s *State) {
	history := s.History[o.HistIdx:]
	Fscrit := s.Fncrit * o.mu
	var temp [3]float64

	if s.HistoryUpdate {

		// rotate displacements into the current frame
		rsht := dot3(history, s.Nx)
		if math.Abs(rsht)*o.k > EPSILON*Fscrit {
			shrmag := len3(history)
			// project out the normal component
			scale3to(rsht, s.Nx, temp[:])
			sub3(history, temp[:], history)
			// also rescale to preserve magnitude
			prjmag := len3(history)
			if prjmag > 0 {
				scale3(shrmag/prjmag, history)
			} else {
				scale3(0, history)
			}
		}

		// update history: tangential force rate
		// see e.g. eq. 18 of Thornton et al, Pow. Tech. 2013, v223, p30
		scale3to(o.k*s.Dt, s.Vtr, temp[:])
		sub3(history, temp[:], history)
	}

	// tangential force = history + tangential velocity damping
	scale3to(-o.damp, s.Vtr, s.Fs)
	add3(history, s.Fs, s.Fs)

	// rescale frictional displacements and forces if needed
	magfs := len3(s.Fs)
	if magfs > Fscrit {
		shrmag := len3(history)
		if shrmag != 0 {
			scale3to(Fscrit/magfs, s.Fs, history)
			scale3to(o.damp, s.Vtr, temp[:])
			add3(history, temp[:], history)
			scale3(Fscrit/magfs, s.Fs)
		} else {
			zero3(s.Fs)
		}
	}
}

// TangentialMindlin implements the Mindlin friction model whose
// stiffness scales with the contact area. Four variants share this
// implementation:
//  mindlin                -- displacement formulation
//  mindlin/force          -- force formulation
//  mindlin_rescale        -- displacement formulation, history rescaled on unloading
//  mindlin_rescale/force  -- force formulation, history rescaled on unloading
// The rescale variants keep the contact area of the last history update
// in a fourth history slot; when the area shrinks the stored
// displacements shrink proportionally, capturing unloading hysteresis.
type TangentialMindlin struct {
	tangentialBase
	mindlinForce   bool // history stores force instead of displacement
	mindlinRescale bool // rescale history when the contact area shrinks
	ktAuto         bool // stiffness derived from the normal model's material properties
}

// add models to database
func init() {
	alloc := func(name string, force, rescale bool) func() TangentialModel {
		return func() TangentialModel {
			o := new(TangentialMindlin)
			o.Name = name
			o.ArgNames = []string{"kt", "xt", "mu"}
			o.mindlinForce = force
			o.mindlinRescale = rescale
			o.SizeHist = 3
			if rescale {
				o.SizeHist = 4
				o.TransferFac = []float64{-1, -1, -1, +1}
			}
			return o
		}
	}
	tangentialAllocators["mindlin"] = alloc("mindlin", false, false)
	tangentialAllocators["mindlin/force"] = alloc("mindlin/force", true, false)
	tangentialAllocators["mindlin_rescale"] = alloc("mindlin_rescale", false, true)
	tangentialAllocators["mindlin_rescale/force"] = alloc("mindlin_rescale/force", true, true)
}

// CoeffsToLocal derives working parameters from coefficients
func (o *TangentialMindlin) CoeffsToLocal() (err error) {
	o.ktAuto = o.Coeffs[0] == DeriveFromMaterial
	if o.ktAuto {
		if o.gm == nil || o.gm.Normal == nil || !o.gm.Normal.HasMaterialProperties() {
			return chk.Err("%s: must either specify tangential stiffness or material properties for the normal model", o.Name)
		}
		nm := o.gm.Normal
		o.k = 8.0 * MixStiffnessG(nm.Emod(), nm.Emod(), nm.Poiss(), nm.Poiss())
	} else {
		o.k = o.Coeffs[0]
	}
	o.xt = o.Coeffs[1]
	o.mu = o.Coeffs[2]
	if o.k < 0 || o.xt < 0 || o.mu < 0 {
		return chk.Err("%s: invalid model parameters: {kt=%g, xt=%g, mu=%g} must be non-negative", o.Name, o.k, o.xt, o.mu)
	}
	o.damp, err = o.dampingDamp()
	o.damp *= o.xt
	return
}

// MixCoeffs mixes the coefficients of two same-type models. The
// derive-from-material request propagates: the mixed stiffness is
// derived whenever either side derives its own.
func (o *TangentialMindlin) MixCoeffs(i, j Model) (err error) {
	if i.ModelName() != o.Name || j.ModelName() != o.Name {
		return chk.Err("%s: cannot mix with models %q and %q", o.Name, i.ModelName(), j.ModelName())
	}
	ic, jc := i.GetCoeffs(), j.GetCoeffs()
	o.Coeffs = make([]float64, len(o.ArgNames))
	if ic[0] == DeriveFromMaterial || jc[0] == DeriveFromMaterial {
		o.Coeffs[0] = DeriveFromMaterial
	} else {
		o.Coeffs[0] = MixGeom(ic[0], jc[0])
	}
	o.Coeffs[1] = MixGeom(ic[1], jc[1])
	o.Coeffs[2] = MixGeom(ic[2], jc[2])
	return o.CoeffsToLocal()
}

// CalculateForces computes the tangential force and updates the history
func (o *TangentialMindlin) CalculateForces(s *State) {
	history := s.History[o.HistIdx:]
	Fscrit := s.Fncrit * o.mu
	kScaled := o.k * s.Area
	var temp [3]float64

	if o.mindlinRescale {
		// on unloading, rescale the shear displacements
		if s.Area < history[3] {
			scale3(s.Area/history[3], history)
		}
	}

	if s.HistoryUpdate {

		// rotate displacements into the current frame
		// see e.g. eq. 17 of Luding, Gran. Matter 2008, v10, p235
		rsht := dot3(history, s.Nx)
		var frameUpdate bool
		if o.mindlinForce {
			frameUpdate = math.Abs(rsht) > EPSILON*Fscrit
		} else {
			frameUpdate = math.Abs(rsht)*kScaled > EPSILON*Fscrit
		}
		if frameUpdate {
			shrmag := len3(history)
			// project out the normal component
			scale3to(rsht, s.Nx, temp[:])
			sub3(history, temp[:], history)
			// also rescale to preserve magnitude
			prjmag := len3(history)
			if prjmag > 0 {
				scale3(shrmag/prjmag, history)
			} else {
				scale3(0, history)
			}
		}

		// update history
		if o.mindlinForce {
			// tangential force rate
			// see e.g. eq. 18 of Thornton et al, Pow. Tech. 2013, v223, p30
			scale3to(-kScaled*s.Dt, s.Vtr, temp[:])
		} else {
			scale3to(s.Dt, s.Vtr, temp[:])
		}
		add3(history, temp[:], history)

		if o.mindlinRescale {
			history[3] = s.Area
		}
	}

	// tangential force = history + tangential velocity damping
	scale3to(-o.damp, s.Vtr, s.Fs)
	if o.mindlinForce {
		add3(history, s.Fs, s.Fs)
	} else {
		scale3to(-kScaled, history, temp[:])
		add3(s.Fs, temp[:], s.Fs)
	}

	// rescale frictional displacements and forces if needed
	magfs := len3(s.Fs)
	if magfs > Fscrit {
		shrmag := len3(history)
		if shrmag != 0 {
			scale3to(Fscrit/magfs, s.Fs, history)
			scale3to(o.damp, s.Vtr, temp[:])
			add3(history, temp[:], history)
			if !o.mindlinForce {
				scale3(-1.0/kScaled, history)
			}
			scale3(Fscrit/magfs, s.Fs)
		} else {
			zero3(s.Fs)
		}
	}
}
