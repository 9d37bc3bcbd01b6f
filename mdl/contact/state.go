// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import "math"

// State holds the kinematic snapshot of one contact pair at one timestep,
// plus the force/torque accumulators written by the submodels. A State is
// prepared fresh before each evaluation and never persisted; the only
// persistent data is the History buffer it points into.
type State struct {

	// input: particles
	Xi, Xj []float64 // positions [3]
	Vi, Vj []float64 // velocities [3]
	Wi, Wj []float64 // angular velocities [3]
	Radi   float64   // radius of particle i
	Radj   float64   // radius of particle j
	Meff   float64   // effective mass mi*mj/(mi+mj)
	Ti, Tj float64   // temperatures (heat models only)

	// input: step
	Dt            float64   // timestep size
	HistoryUpdate bool      // whether submodels may mutate History this step
	History       []float64 // shared per-contact history buffer

	// geometry (set by Touch/prepare)
	Dx     []float64 // xi - xj [3]
	Nx     []float64 // unit contact normal, from j to i [3]
	R      float64   // centre distance
	Rsq    float64   // squared centre distance
	Radsum float64   // radi + radj
	Delta  float64   // overlap radsum - r
	Reff   float64   // effective radius radi*radj/radsum
	DR     float64   // delta * Reff
	Area   float64   // contact area (set by the normal model)

	// relative velocities (set by prepare)
	Vr       []float64 // vi - vj [3]
	Vnnr     float64   // normal component of vr
	Vn       []float64 // normal velocity [3]
	Vt       []float64 // tangential velocity [3]
	Wr       []float64 // angular velocity at contact point [3]
	Vtr      []float64 // relative tangential velocity [3]
	Vrel     float64   // |vtr|
	Relrot   []float64 // wi - wj [3]
	Vrl      []float64 // rolling velocity [3]
	Magtwist float64   // relative twisting rate about the normal

	// outputs
	Fne         float64   // elastic normal force
	Fdamp       float64   // normal damping force
	Fntot       float64   // total normal force (possibly damping-limited)
	Fncrit      float64   // critical normal force bounding friction
	Knfac       float64   // normal stiffness factor (read by tsuji damping)
	Fs          []float64 // tangential force [3]
	Fr          []float64 // rolling resistance force [3]
	Magtortwist float64   // twisting torque magnitude
	Dq          float64   // heat flux into particle i
	Forces      []float64 // total force on particle i [3]
	TorquesI    []float64 // torque on particle i [3]
	TorquesJ    []float64 // torque on particle j [3]
}

// NewState allocates a contact state
func NewState() *State {
	var s State
	s.Xi = make([]float64, 3)
	s.Xj = make([]float64, 3)
	s.Vi = make([]float64, 3)
	s.Vj = make([]float64, 3)
	s.Wi = make([]float64, 3)
	s.Wj = make([]float64, 3)
	s.Dx = make([]float64, 3)
	s.Nx = make([]float64, 3)
	s.Vr = make([]float64, 3)
	s.Vn = make([]float64, 3)
	s.Vt = make([]float64, 3)
	s.Wr = make([]float64, 3)
	s.Vtr = make([]float64, 3)
	s.Relrot = make([]float64, 3)
	s.Vrl = make([]float64, 3)
	s.Fs = make([]float64, 3)
	s.Fr = make([]float64, 3)
	s.Forces = make([]float64, 3)
	s.TorquesI = make([]float64, 3)
	s.TorquesJ = make([]float64, 3)
	return &s
}

// Touch computes the centre distance and returns whether the particles
// geometrically overlap
func (o *State) Touch() bool {
	sub3(o.Xi, o.Xj, o.Dx)
	o.Rsq = dot3(o.Dx, o.Dx)
	o.Radsum = o.Radi + o.Radj
	return o.Rsq < o.Radsum*o.Radsum
}

// prepare computes the contact geometry and relative velocities.
// Touch must have been called first.
func (o *State) prepare() {

	// geometry
	o.R = math.Sqrt(o.Rsq)
	rinv := 1.0 / o.R
	scale3to(rinv, o.Dx, o.Nx)
	o.Delta = o.Radsum - o.R
	o.Reff = o.Radi * o.Radj / o.Radsum
	o.DR = o.Delta * o.Reff

	// relative translational velocity
	sub3(o.Vi, o.Vj, o.Vr)
	o.Vnnr = dot3(o.Vr, o.Nx)
	scale3to(o.Vnnr, o.Nx, o.Vn)
	sub3(o.Vr, o.Vn, o.Vt)

	// relative tangential velocity at the contact point
	for k := 0; k < 3; k++ {
		o.Wr[k] = (o.Radi*o.Wi[k] + o.Radj*o.Wj[k]) * rinv
	}
	var wxd [3]float64
	cross3(o.Wr, o.Dx, wxd[:])
	sub3(o.Vt, wxd[:], o.Vtr)
	o.Vrel = len3(o.Vtr)

	// rolling and twisting rates
	sub3(o.Wi, o.Wj, o.Relrot)
	cross3(o.Relrot, o.Nx, o.Vrl)
	scale3(o.Reff, o.Vrl)
	o.Magtwist = dot3(o.Relrot, o.Nx)
}

// Set copies another state into this one
//  Note: both states must have been allocated with NewState; the History
//  slice is aliased, not copied
func (o *State) Set(other *State) {
	copy(o.Xi, other.Xi)
	copy(o.Xj, other.Xj)
	copy(o.Vi, other.Vi)
	copy(o.Vj, other.Vj)
	copy(o.Wi, other.Wi)
	copy(o.Wj, other.Wj)
	o.Radi, o.Radj, o.Meff = other.Radi, other.Radj, other.Meff
	o.Ti, o.Tj = other.Ti, other.Tj
	o.Dt = other.Dt
	o.HistoryUpdate = other.HistoryUpdate
	o.History = other.History
	copy(o.Dx, other.Dx)
	copy(o.Nx, other.Nx)
	o.R, o.Rsq, o.Radsum = other.R, other.Rsq, other.Radsum
	o.Delta, o.Reff, o.DR, o.Area = other.Delta, other.Reff, other.DR, other.Area
	copy(o.Vr, other.Vr)
	o.Vnnr = other.Vnnr
	copy(o.Vn, other.Vn)
	copy(o.Vt, other.Vt)
	copy(o.Wr, other.Wr)
	copy(o.Vtr, other.Vtr)
	o.Vrel = other.Vrel
	copy(o.Relrot, other.Relrot)
	copy(o.Vrl, other.Vrl)
	o.Magtwist = other.Magtwist
	o.Fne, o.Fdamp, o.Fntot, o.Fncrit, o.Knfac = other.Fne, other.Fdamp, other.Fntot, other.Fncrit, other.Knfac
	copy(o.Fs, other.Fs)
	copy(o.Fr, other.Fr)
	o.Magtortwist, o.Dq = other.Magtortwist, other.Dq
	copy(o.Forces, other.Forces)
	copy(o.TorquesI, other.TorquesI)
	copy(o.TorquesJ, other.TorquesJ)
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState()
	other.Set(o)
	return other
}
