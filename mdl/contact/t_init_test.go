// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// prms builds a parameter set from name/value pairs
func prms(nv ...interface{}) dbf.Params {
	var res dbf.Params
	for i := 0; i < len(nv); i += 2 {
		var v float64
		switch x := nv[i+1].(type) {
		case int:
			v = float64(x)
		case float64:
			v = x
		}
		res = append(res, &dbf.P{N: nv[i].(string), V: v})
	}
	return res
}

// simplemodel builds a finalised hooke + velocity + given tangential model
func simplemodel(tname string, tprms dbf.Params) (*GranularModel, error) {
	gm := NewGranularModel()
	if err := gm.SetNormal("hooke", prms("kn", 1e4, "damp", 2.0)); err != nil {
		return nil, err
	}
	if err := gm.SetDamping("velocity", nil); err != nil {
		return nil, err
	}
	if err := gm.SetTangential(tname, tprms); err != nil {
		return nil, err
	}
	if err := gm.Finalize(); err != nil {
		return nil, err
	}
	return gm, nil
}

// touchstate prepares a contact state with overlap along x and the given
// relative velocity of particle i
func touchstate(gm *GranularModel, delta float64, vi []float64) *State {
	s := NewState()
	s.Radi, s.Radj = 1.0, 1.0
	s.Meff = 0.5
	s.Xi[0] = 2.0 - delta
	copy(s.Vi, vi)
	s.Dt = 1e-4
	s.HistoryUpdate = true
	s.History = make([]float64, gm.SizeHistory)
	gm.PrepareContact(s)
	return s
}
