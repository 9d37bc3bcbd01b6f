// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_tangential01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tangential01. linear_nohistory closed form")

	// hooke gives Fntot = kn*delta = 10 with vnnr = 0
	gm := NewGranularModel()
	gm.SetNormal("hooke", prms("kn", 1e4, "damp", 2.0))
	gm.SetDamping("velocity", nil)
	gm.SetTangential("linear_nohistory", prms("xt", 0.5, "mu", 0.3))
	if err := gm.Finalize(); err != nil {
		tst.Errorf("finalise failed: %v\n", err)
		return
	}
	chk.Float64(tst, "size history", 1e-15, float64(gm.SizeHistory), 0)

	// viscous branch: damp*vrel = 0.5*2.0*2 = 2 < Fscrit = 3
	s := touchstate(gm, 1e-3, []float64{0, 2, 0})
	gm.CalculateForces(s)
	chk.Float64(tst, "fncrit", 1e-12, s.Fncrit, 10.0)
	chk.Array(tst, "fs viscous", 1e-12, s.Fs, []float64{0, -2.0, 0})

	// Coulomb branch: damp*vrel = 8 > Fscrit = 3
	s = touchstate(gm, 1e-3, []float64{0, 8, 0})
	gm.CalculateForces(s)
	chk.Float64(tst, "|fs| capped", 1e-12, len3(s.Fs), 3.0)
	chk.Array(tst, "fs direction", 1e-12, s.Fs, []float64{0, -3.0, 0})

	// rest state: no sliding, no force
	s = touchstate(gm, 1e-3, nil)
	gm.CalculateForces(s)
	chk.Array(tst, "fs at rest", 1e-15, s.Fs, []float64{0, 0, 0})
}

func Test_tangential02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tangential02. linear_history single step and clipping")

	k, xt, mu := 1e3, 0.5, 10.0
	gm, err := simplemodel("linear_history", prms("kt", k, "xt", xt, "mu", mu))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "size history", 1e-15, float64(gm.SizeHistory), 3)

	// first step from pristine history: fs = -(damp + k*dt)*vtr
	damp := xt * 2.0 // velocity damping carries the hooke damp coefficient
	s := touchstate(gm, 1e-2, []float64{0, 1, 0})
	gm.CalculateForces(s)
	chk.Array(tst, "fs first step", 1e-12, s.Fs, []float64{0, -(damp + k*s.Dt), 0})
	chk.Array(tst, "history", 1e-12, s.History, []float64{0, -k * s.Dt, 0})

	// Coulomb clipping leaves a consistent history: re-evaluating without
	// an update reproduces the capped force exactly
	gm2, err := simplemodel("linear_history", prms("kt", k, "xt", xt, "mu", 0.01))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	s = touchstate(gm2, 1e-2, []float64{0, 50, 0})
	gm2.CalculateForces(s)
	Fscrit := 0.01 * s.Fncrit
	chk.Float64(tst, "|fs| capped", 1e-12, len3(s.Fs), Fscrit)

	s.HistoryUpdate = false
	gm2.CalculateForces(s)
	chk.Float64(tst, "|fs| fixed point", 1e-12, len3(s.Fs), Fscrit)
}

func Test_tangential03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tangential03. history projection preserves magnitude")

	gm, err := simplemodel("linear_history", prms("kt", 1e3, "xt", 0.0, "mu", 10.0))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// still contact with stale history carrying a normal component
	s := touchstate(gm, 1e-2, []float64{0, 0, 0})
	s.History[0] = 1.0 // along nx
	s.History[1] = 2.0
	gm.CalculateForces(s)

	// with xt=0 and vtr=0 the force equals the projected history
	chk.Float64(tst, "fs.nx", 1e-12, dot3(s.Fs, s.Nx), 0)
	chk.Float64(tst, "|fs| preserved", 1e-12, len3(s.Fs), math.Sqrt(5.0))
	chk.Array(tst, "history", 1e-12, s.History, []float64{0, math.Sqrt(5.0), 0})
}

func Test_tangential04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tangential04. mindlin displacement and force forms")

	k, xt, mu := 2e3, 0.5, 10.0
	damp := xt * 2.0

	// displacement form: history stores displacement
	gm, err := simplemodel("mindlin", prms("kt", k, "xt", xt, "mu", mu))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	s := touchstate(gm, 1e-2, []float64{0, 1, 0})
	gm.CalculateForces(s)
	kScaled := k * s.Area
	chk.Array(tst, "fs mindlin", 1e-12, s.Fs, []float64{0, -(damp + kScaled*s.Dt), 0})
	chk.Array(tst, "history displ", 1e-12, s.History, []float64{0, s.Dt, 0})

	// force form: history stores force; the single-step force is the same
	gmf, err := simplemodel("mindlin/force", prms("kt", k, "xt", xt, "mu", mu))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	sf := touchstate(gmf, 1e-2, []float64{0, 1, 0})
	gmf.CalculateForces(sf)
	chk.Array(tst, "fs mindlin/force", 1e-12, sf.Fs, s.Fs)
	chk.Array(tst, "history force", 1e-12, sf.History, []float64{0, -kScaled * sf.Dt, 0})
}

func Test_tangential05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tangential05. mindlin stiffness from material properties")

	E, nu := 1e6, 0.3
	gm := NewGranularModel()
	gm.SetNormal("hertz/material", prms("E", E, "damp", 0.7, "nu", nu))
	gm.SetDamping("velocity", nil)
	gm.SetTangential("mindlin", prms("kt", DeriveFromMaterial, "xt", 1.0, "mu", 0.5))
	if err := gm.Finalize(); err != nil {
		tst.Errorf("finalise failed: %v\n", err)
		return
	}
	chk.Float64(tst, "auto kt", 1e-9, gm.Tangential.Stiffness(), 8.0*MixStiffnessG(E, E, nu, nu))

	// without material properties the derivation must fail
	gm = NewGranularModel()
	gm.SetNormal("hooke", prms("kn", 1e4, "damp", 0.7))
	gm.SetDamping("velocity", nil)
	gm.SetTangential("mindlin", prms("kt", DeriveFromMaterial, "xt", 1.0, "mu", 0.5))
	if err := gm.Finalize(); err == nil {
		tst.Errorf("deriving kt without material properties must fail\n")
		return
	}

	// negative friction coefficient is invalid
	gm = NewGranularModel()
	gm.SetNormal("hooke", prms("kn", 1e4, "damp", 0.7))
	gm.SetTangential("mindlin", prms("kt", 1e3, "xt", 1.0, "mu", -0.5))
	if err := gm.Finalize(); err == nil {
		tst.Errorf("negative friction coefficient must fail\n")
		return
	}
}

func Test_tangential06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tangential06. mindlin_rescale shrinks history on unloading")

	k := 2e3
	gm, err := simplemodel("mindlin_rescale", prms("kt", k, "xt", 0.0, "mu", 10.0))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "size history", 1e-15, float64(gm.SizeHistory), 4)

	// loading step records the contact area in the fourth slot
	s := touchstate(gm, 1e-2, []float64{0, 1, 0})
	gm.CalculateForces(s)
	area1 := s.Area
	chk.Float64(tst, "stored area", 1e-14, s.History[3], area1)
	h1 := s.History[1]

	// unloading: a smaller overlap shrinks the stored displacements
	s2 := touchstate(gm, 0.5e-2, nil)
	s2.History = s.History
	s2.HistoryUpdate = false
	gm.CalculateForces(s2)
	chk.Float64(tst, "rescaled history", 1e-13, s2.History[1], h1*s2.Area/area1)
	chk.Float64(tst, "area slot unchanged", 1e-14, s2.History[3], area1)
}

func Test_tangential07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tangential07. sentinel stiffness propagates through mixing")

	E, nu := 1e6, 0.3
	build := func(kt float64) *GranularModel {
		gm := NewGranularModel()
		gm.SetNormal("hertz/material", prms("E", E, "damp", 0.7, "nu", nu))
		gm.SetDamping("velocity", nil)
		gm.SetTangential("mindlin", prms("kt", kt, "xt", 1.0, "mu", 0.5))
		if err := gm.Finalize(); err != nil {
			tst.Errorf("finalise failed: %v\n", err)
			return nil
		}
		return gm
	}
	a := build(DeriveFromMaterial)
	b := build(5e4)
	if a == nil || b == nil {
		return
	}

	mixed, err := MixModels(a, b)
	if err != nil {
		tst.Errorf("mixing failed: %v\n", err)
		return
	}
	chk.Float64(tst, "mixed kt coeff", 1e-15, mixed.Tangential.GetCoeffs()[0], DeriveFromMaterial)
	chk.Float64(tst, "mixed kt", 1e-9, mixed.Tangential.Stiffness(),
		8.0*MixStiffnessG(E, E, nu, nu))
}

func Test_tangential08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tangential08. Coulomb cap holds while sliding")

	mu := 0.3
	gm, err := simplemodel("mindlin", prms("kt", 2e3, "xt", 1.0, "mu", mu))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// drive a sliding contact across the fixed particle
	var drv Driver
	if err := drv.Init(gm, 1.0, 1.0, 1.0, 1.0); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	err = drv.Run([]float64{1.95, -0.5, 0}, []float64{0, 1.0, 0.2}, []float64{0.1, 0, 0}, 1e-3, 1000)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if len(drv.Res) < 100 {
		tst.Errorf("driver should have recorded a long sliding contact; got %d steps\n", len(drv.Res))
		return
	}
	for n, r := range drv.Res {
		fscrit := mu * r.Fncrit
		if len3(r.Fs) > fscrit*(1.0+1e-12) {
			tst.Errorf("step %d violates the Coulomb cap: |fs|=%g > %g\n", n, len3(r.Fs), fscrit)
			return
		}
		if dot := dot3(r.Fs, r.Nx); math.Abs(dot) > 1e-6 {
			tst.Errorf("step %d: tangential force has a normal component %g\n", n, dot)
			return
		}
	}
	io.Pf("sliding steps recorded = %d\n", len(drv.Res))
}
