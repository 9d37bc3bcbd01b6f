// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// TwistingNone switches twisting resistance off
type TwistingNone struct {
	Submodel
}

// add model to database
func init() {
	twistingAllocators["none"] = func() TwistingModel {
		o := new(TwistingNone)
		o.Name = "none"
		return o
	}
}

// CoeffsToLocal derives working parameters
func (o *TwistingNone) CoeffsToLocal() error { return nil }

// MixCoeffs mixes the coefficients of two same-type models
func (o *TwistingNone) MixCoeffs(i, j Model) error { return nil }

// CalculateForces computes the twisting torque
func (o *TwistingNone) CalculateForces(s *State) {
	s.Magtortwist = 0
}

// TwistingSDS implements a spring-dashpot-slider torsional model. The
// single history slot stores the accumulated twist angle.
type TwistingSDS struct {
	Submodel
	kt     float64 // twisting stiffness
	gammat float64 // twisting damping
	mut    float64 // twisting friction coefficient
}

// add model to database
func init() {
	twistingAllocators["sds"] = func() TwistingModel {
		o := new(TwistingSDS)
		o.Name = "sds"
		o.ArgNames = []string{"kt", "gammat", "mut"}
		o.SizeHist = 1
		return o
	}
}

// CoeffsToLocal derives working parameters from coefficients
func (o *TwistingSDS) CoeffsToLocal() (err error) {
	o.kt = o.Coeffs[0]
	o.gammat = o.Coeffs[1]
	o.mut = o.Coeffs[2]
	if o.kt < 0 || o.gammat < 0 || o.mut < 0 {
		return chk.Err("%s: invalid model parameters: {kt=%g, gammat=%g, mut=%g} must be non-negative", o.Name, o.kt, o.gammat, o.mut)
	}
	return
}

// MixCoeffs mixes the coefficients of two same-type models
func (o *TwistingSDS) MixCoeffs(i, j Model) (err error) {
	if err = o.mixGeom(i, j); err != nil {
		return
	}
	return o.CoeffsToLocal()
}

// CalculateForces computes the twisting torque and updates the history
func (o *TwistingSDS) CalculateForces(s *State) {
	twistTorque(s, o.HistIdx, o.kt, o.gammat, o.mut)
}

// TwistingMarshall implements the twisting model of Marshall,
// J. Comp. Phys. 2009, v228, p1541: stiffness, damping and friction are
// derived each step from the tangential model's working parameters and
// the current contact area.
type TwistingMarshall struct {
	Submodel
}

// add model to database
func init() {
	twistingAllocators["marshall"] = func() TwistingModel {
		o := new(TwistingMarshall)
		o.Name = "marshall"
		o.SizeHist = 1
		return o
	}
}

// CoeffsToLocal checks that the tangential sibling is available
func (o *TwistingMarshall) CoeffsToLocal() error {
	if o.gm == nil || o.gm.Tangential == nil {
		return chk.Err("%s: twisting model requires a tangential model", o.Name)
	}
	return nil
}

// MixCoeffs mixes the coefficients of two same-type models
func (o *TwistingMarshall) MixCoeffs(i, j Model) error { return nil }

// CalculateForces computes the twisting torque and updates the history
func (o *TwistingMarshall) CalculateForces(s *State) {
	tan := o.gm.Tangential
	aa := s.Area * s.Area
	kt := 0.5 * tan.Stiffness() * aa
	gammat := 0.5 * tan.DampCoeff() * aa
	mut := 2.0 / 3.0 * s.Area * tan.Mu()
	twistTorque(s, o.HistIdx, kt, gammat, mut)
}

// twistTorque computes the clipped torsional torque shared by the
// twisting models
func twistTorque(s *State, histIdx int, kt, gammat, mut float64) {
	history := s.History[histIdx:]

	if s.HistoryUpdate {
		history[0] += s.Magtwist * s.Dt
	}

	// twisting torque = elastic spring + twist rate damping
	s.Magtortwist = -kt*history[0] - gammat*s.Magtwist

	// clip at the torsional friction limit
	Mtcrit := mut * s.Fncrit
	if math.Abs(s.Magtortwist) > Mtcrit {
		signtwist := 1.0
		if s.Magtwist < 0 {
			signtwist = -1.0
		}
		if kt != 0 {
			history[0] = (Mtcrit*signtwist - gammat*s.Magtwist) / kt
		}
		s.Magtortwist = -Mtcrit * signtwist
	}
}
