// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// fullmodel builds a model exercising every submodel category
func fullmodel(tst *testing.T, tname string) *GranularModel {
	gm := NewGranularModel()
	gm.SetNormal("hertz/material", prms("E", 1e6, "damp", 0.7, "nu", 0.3))
	gm.SetDamping("viscoelastic", nil)
	gm.SetTangential(tname, prms("kt", 2e3, "xt", 1.0, "mu", 0.5))
	gm.SetRolling("sds", prms("kr", 500.0, "gammar", 0.1, "mur", 0.2))
	gm.SetTwisting("sds", prms("kt", 200.0, "gammat", 0.05, "mut", 0.3))
	gm.SetHeat("area", prms("ks", 10.0))
	if err := gm.Finalize(); err != nil {
		tst.Errorf("finalise failed: %v\n", err)
		return nil
	}
	return gm
}

func Test_granular01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("granular01. history layout")

	gm := fullmodel(tst, "mindlin")
	if gm == nil {
		return
	}

	// mindlin(3) + rolling sds(3) + twisting sds(1)
	chk.Ints(tst, "sizes", []int{
		gm.Normal.SizeHistory(), gm.Damping.SizeHistory(), gm.Tangential.SizeHistory(),
		gm.Rolling.SizeHistory(), gm.Twisting.SizeHistory(), gm.Heat.SizeHistory(),
	}, []int{0, 0, 3, 3, 1, 0})
	chk.Ints(tst, "offsets", []int{
		gm.Tangential.HistoryIndex(), gm.Rolling.HistoryIndex(), gm.Twisting.HistoryIndex(),
	}, []int{0, 3, 6})
	if gm.SizeHistory != 7 {
		tst.Errorf("total history size must be 7; got %d\n", gm.SizeHistory)
		return
	}

	// the rescale variant claims one extra slot
	gm = fullmodel(tst, "mindlin_rescale")
	if gm == nil {
		return
	}
	if gm.SizeHistory != 8 {
		tst.Errorf("total history size with rescale must be 8; got %d\n", gm.SizeHistory)
		return
	}
	io.Pf("layouts ok\n")
}

func Test_granular02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("granular02. history transfer")

	// identity transfer for non-rescale variants
	gm := fullmodel(tst, "mindlin")
	if gm == nil {
		return
	}
	src := []float64{1, 2, 3, 4, 5, 6, 7}
	dst := make([]float64, 7)
	gm.TransferHistory(src, dst)
	chk.Array(tst, "identity", 1e-15, dst, src)

	// the rescale variant flips its displacement slots but not the area
	gm = fullmodel(tst, "mindlin_rescale")
	if gm == nil {
		return
	}
	src = []float64{1, 2, 3, 4, 5, 6, 7, 8}
	dst = make([]float64, 8)
	gm.TransferHistory(src, dst)
	chk.Array(tst, "rescale", 1e-15, dst, []float64{-1, -2, -3, 4, 5, 6, 7, 8})

	// transferring back restores the original buffer
	back := make([]float64, 8)
	gm.TransferHistory(dst, back)
	chk.Array(tst, "round trip", 1e-15, back, src)
}

func Test_granular03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("granular03. pack and unpack coefficients")

	gm := fullmodel(tst, "mindlin")
	if gm == nil {
		return
	}
	vals := gm.PackCoeffs()

	// hertz/material(3) + viscoelastic(0) + mindlin(3) + sds(3) + sds(3) + area(1)
	if len(vals) != 13 {
		tst.Errorf("packed length must be 13; got %d\n", len(vals))
		return
	}

	other := fullmodel(tst, "mindlin")
	if other == nil {
		return
	}
	vals[0] = 2e6 // new Young's modulus
	if err := other.UnpackCoeffs(vals); err != nil {
		tst.Errorf("unpack failed: %v\n", err)
		return
	}
	chk.Array(tst, "round trip", 1e-15, other.PackCoeffs(), vals)
	chk.Float64(tst, "rederived emod", 1e-15, other.Normal.Emod(), 2e6)

	// wrong lengths are rejected
	if err := other.UnpackCoeffs(vals[:5]); err == nil {
		tst.Errorf("short coefficient vector must be an error\n")
		return
	}
	if err := other.UnpackCoeffs(append(vals, 1.0)); err == nil {
		tst.Errorf("long coefficient vector must be an error\n")
		return
	}
}

func Test_granular04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("granular04. force and torque composition")

	gm, err := simplemodel("linear_history", prms("kt", 1e3, "xt", 0.5, "mu", 10.0))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	s := touchstate(gm, 1e-2, []float64{0, 1, 0})
	gm.CalculateForces(s)

	// total force = normal + tangential
	var expected [3]float64
	scale3to(s.Fntot, s.Nx, expected[:])
	add3(expected[:], s.Fs, expected[:])
	chk.Array(tst, "forces", 1e-13, s.Forces, expected[:])

	// equal radii: tangential reaction torques are equal on both sides
	chk.Array(tst, "torque symmetry", 1e-13, s.TorquesI, s.TorquesJ)

	// fs = (0,fy,0), nx = (1,0,0): torque = -dist*(nx x fs) is along -z*fy
	dist := s.Radi - 0.5*s.Delta
	chk.Array(tst, "torque i", 1e-13, s.TorquesI, []float64{0, 0, -dist * s.Fs[1]})
}

func Test_granular05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("granular05. mixing requires matching variants")

	a, err := simplemodel("linear_history", prms("kt", 1e3, "xt", 0.5, "mu", 0.3))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	b, err := simplemodel("mindlin", prms("kt", 1e3, "xt", 0.5, "mu", 0.3))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if _, err = MixModels(a, b); err == nil {
		tst.Errorf("mixing different tangential variants must fail\n")
		return
	}

	c := fullmodel(tst, "linear_history")
	if c == nil {
		return
	}
	if _, err = MixModels(a, c); err == nil {
		tst.Errorf("mixing different normal variants must fail\n")
		return
	}

	// geometric-mean mixing of plain coefficients
	d, err := simplemodel("linear_history", prms("kt", 4e3, "xt", 0.5, "mu", 0.3))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	mixed, err := MixModels(a, d)
	if err != nil {
		tst.Errorf("mixing failed: %v\n", err)
		return
	}
	chk.Float64(tst, "mixed kt", 1e-12, mixed.Tangential.GetCoeffs()[0], 2e3)
	chk.Float64(tst, "mixed stiffness", 1e-12, mixed.Tangential.Stiffness(), 2e3)
}
