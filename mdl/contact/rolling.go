// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// RollingNone switches rolling resistance off
type RollingNone struct {
	Submodel
}

// add model to database
func init() {
	rollingAllocators["none"] = func() RollingModel {
		o := new(RollingNone)
		o.Name = "none"
		return o
	}
}

// CoeffsToLocal derives working parameters
func (o *RollingNone) CoeffsToLocal() error { return nil }

// MixCoeffs mixes the coefficients of two same-type models
func (o *RollingNone) MixCoeffs(i, j Model) error { return nil }

// CalculateForces computes the rolling resistance force
func (o *RollingNone) CalculateForces(s *State) {
	zero3(s.Fr)
}

// RollingSDS implements a spring-dashpot-slider rolling resistance
// model: an elastic rolling spring accumulated from the rolling
// velocity, damped and capped by a Coulomb-like limit. The history
// slots store the accumulated rolling displacement.
type RollingSDS struct {
	Submodel
	kr     float64 // rolling stiffness
	gammar float64 // rolling damping
	mur    float64 // rolling friction coefficient
}

// add model to database
func init() {
	rollingAllocators["sds"] = func() RollingModel {
		o := new(RollingSDS)
		o.Name = "sds"
		o.ArgNames = []string{"kr", "gammar", "mur"}
		o.SizeHist = 3
		return o
	}
}

// CoeffsToLocal derives working parameters from coefficients
func (o *RollingSDS) CoeffsToLocal() (err error) {
	o.kr = o.Coeffs[0]
	o.gammar = o.Coeffs[1]
	o.mur = o.Coeffs[2]
	if o.kr < 0 || o.gammar < 0 || o.mur < 0 {
		return chk.Err("%s: invalid model parameters: {kr=%g, gammar=%g, mur=%g} must be non-negative", o.Name, o.kr, o.gammar, o.mur)
	}
	return
}

// MixCoeffs mixes the coefficients of two same-type models
func (o *RollingSDS) MixCoeffs(i, j Model) (err error) {
	if err = o.mixGeom(i, j); err != nil {
		return
	}
	return o.CoeffsToLocal()
}

// CalculateForces computes the rolling resistance force and updates
// the history
func (o *RollingSDS) CalculateForces(s *State) {
	history := s.History[o.HistIdx:]
	Frcrit := o.mur * s.Fncrit
	var temp [3]float64

	if s.HistoryUpdate {

		// rotate displacements into the current frame
		rolldotn := dot3(history, s.Nx)
		if math.Abs(rolldotn)*o.kr > EPSILON*Frcrit {
			rollmag := len3(history)
			// project out the normal component
			scale3to(rolldotn, s.Nx, temp[:])
			sub3(history, temp[:], history)
			// also rescale to preserve magnitude
			prjmag := len3(history)
			if prjmag > 0 {
				scale3(rollmag/prjmag, history)
			} else {
				scale3(0, history)
			}
		}

		// update history
		scale3to(s.Dt, s.Vrl, temp[:])
		add3(history, temp[:], history)
	}

	// rolling force = elastic spring + rolling velocity damping
	scale3to(-o.gammar, s.Vrl, s.Fr)
	scale3to(o.kr, history, temp[:])
	sub3(s.Fr, temp[:], s.Fr)

	// rescale rolling displacements and forces if needed
	magfr := len3(s.Fr)
	if magfr > Frcrit {
		rollmag := len3(history)
		if rollmag != 0 {
			scale3to(Frcrit/magfr, s.Fr, history)
			scale3to(o.gammar, s.Vrl, temp[:])
			add3(history, temp[:], history)
			scale3(-1.0/o.kr, history)
			scale3(Frcrit/magfr, s.Fr)
		} else {
			zero3(s.Fr)
		}
	}
}
