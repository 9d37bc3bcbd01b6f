// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import "github.com/cpmech/gosl/chk"

// Driver runs a prescribed kinematic path through a granular model and
// records the outcome of every step. Particle j stays fixed at the
// origin; particle i translates with a constant velocity and spin. The
// driver owns the contact history buffer, so multi-step behaviour
// (frame rotation, unloading, Coulomb sliding) can be exercised without
// a neighbour list or integrator.
type Driver struct {

	// input
	Gm *GranularModel // model to be driven

	// results
	Res []*State // copy of the state after each touching step

	// internal
	s       *State
	history []float64
}

// Init prepares the driver for a pair with given radii and masses
func (o *Driver) Init(gm *GranularModel, radi, radj, massi, massj float64) (err error) {
	if gm == nil {
		return chk.Err("driver requires a granular model")
	}
	if !gm.finalized {
		if err = gm.Finalize(); err != nil {
			return
		}
	}
	o.Gm = gm
	o.s = NewState()
	o.s.Radi = radi
	o.s.Radj = radj
	o.s.Meff = massi * massj / (massi + massj)
	o.history = make([]float64, gm.SizeHistory)
	o.Res = nil
	return
}

// History returns the driver's contact history buffer
func (o *Driver) History() []float64 { return o.history }

// Run advances the contact through nsteps of size dt, starting with
// particle i at xi0 and moving it with constant velocity vi and spin
// wi. Steps without geometric contact are skipped.
func (o *Driver) Run(xi0, vi, wi []float64, dt float64, nsteps int) (err error) {
	if o.s == nil {
		return chk.Err("driver must be initialised first")
	}
	s := o.s
	copy(s.Xi, xi0)
	copy(s.Vi, vi)
	copy(s.Wi, wi)
	zero3(s.Xj)
	zero3(s.Vj)
	zero3(s.Wj)
	s.Dt = dt
	s.HistoryUpdate = true
	s.History = o.history
	for n := 0; n < nsteps; n++ {
		if n > 0 {
			for k := 0; k < 3; k++ {
				s.Xi[k] += vi[k] * dt
			}
		}
		if !o.Gm.PrepareContact(s) {
			continue
		}
		o.Gm.CalculateForces(s)
		o.Res = append(o.Res, s.GetCopy())
	}
	return
}
