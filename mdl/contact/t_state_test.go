// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_state01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state01. contact detection")

	s := NewState()
	s.Radi, s.Radj = 1.0, 2.0

	// separated
	s.Xi[0] = 3.5
	if s.Touch() {
		tst.Errorf("particles at distance 3.5 with radsum 3 must not touch\n")
		return
	}

	// grazing: r == radsum is not a contact
	s.Xi[0] = 3.0
	if s.Touch() {
		tst.Errorf("particles at exactly radsum distance must not touch\n")
		return
	}

	// overlapping
	s.Xi[0] = 2.9
	if !s.Touch() {
		tst.Errorf("particles at distance 2.9 with radsum 3 must touch\n")
		return
	}
	s.prepare()
	chk.Float64(tst, "r", 1e-15, s.R, 2.9)
	chk.Float64(tst, "delta", 1e-15, s.Delta, 0.1)
	chk.Float64(tst, "reff", 1e-15, s.Reff, 2.0/3.0)
	chk.Array(tst, "nx", 1e-15, s.Nx, []float64{1, 0, 0})
}

func Test_state02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state02. relative velocities")

	s := NewState()
	s.Radi, s.Radj = 1.0, 1.0
	s.Xi[0] = 1.9 // delta = 0.1, nx = (1,0,0)
	s.Vi[0] = -1.0
	s.Vi[1] = 0.5
	s.Wi[2] = 2.0
	s.Wj[2] = -2.0
	if !s.Touch() {
		tst.Errorf("particles must touch\n")
		return
	}
	s.prepare()

	// normal and tangential split of the translational velocity
	chk.Float64(tst, "vnnr", 1e-15, s.Vnnr, -1.0)
	chk.Array(tst, "vn", 1e-15, s.Vn, []float64{-1, 0, 0})
	chk.Array(tst, "vt", 1e-15, s.Vt, []float64{0, 0.5, 0})

	// surface velocity from spin: wr = (radi*wi + radj*wj)/r = 0 here,
	// so vtr equals vt
	chk.Array(tst, "wr", 1e-15, s.Wr, []float64{0, 0, 0})
	chk.Array(tst, "vtr", 1e-15, s.Vtr, []float64{0, 0.5, 0})
	chk.Float64(tst, "vrel", 1e-15, s.Vrel, 0.5)

	// equal and opposite spins give pure rolling and no twist
	chk.Array(tst, "vrl", 1e-15, s.Vrl, []float64{0, 0.5 * 4.0, 0}) // reff*(relrot x nx)
	chk.Float64(tst, "magtwist", 1e-15, s.Magtwist, 0)
}

func Test_state03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state03. spin about the normal gives pure twist")

	s := NewState()
	s.Radi, s.Radj = 1.0, 1.0
	s.Xi[0] = 1.8
	s.Wi[0] = 3.0
	if !s.Touch() {
		tst.Errorf("particles must touch\n")
		return
	}
	s.prepare()
	chk.Float64(tst, "magtwist", 1e-15, s.Magtwist, 3.0)
	chk.Array(tst, "vrl", 1e-15, s.Vrl, []float64{0, 0, 0})

	// spinning in place still drags the surface: wr x dx
	vtrmag := len3(s.Vtr)
	chk.Float64(tst, "|vtr|", 1e-15, vtrmag, 0)

	// copy must be independent of the original (except History)
	cp := s.GetCopy()
	cp.Xi[0] = 123
	if s.Xi[0] == 123 {
		tst.Errorf("GetCopy must not alias the position vectors\n")
		return
	}
	chk.Float64(tst, "copy magtwist", 1e-15, cp.Magtwist, 3.0)
}

func Test_state04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state04. oblique geometry")

	s := NewState()
	s.Radi, s.Radj = 1.0, 1.0
	d := 1.9 / math.Sqrt2
	s.Xi[0], s.Xi[1] = d, d
	if !s.Touch() {
		tst.Errorf("particles must touch\n")
		return
	}
	s.prepare()
	chk.Float64(tst, "r", 1e-14, s.R, 1.9)
	chk.Float64(tst, "delta", 1e-14, s.Delta, 0.1)
	chk.Array(tst, "nx", 1e-15, s.Nx, []float64{1.0 / math.Sqrt2, 1.0 / math.Sqrt2, 0})
}
