// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pair implements the pair-level consumer of granular contact
// models: a per-type-pair model table with a shared history layout,
// batch evaluation of contact lists (data-parallel across contacts)
// and the exchange of per-contact history between owners
package pair

import (
	"sync"

	"github.com/cpmech/gran/inp"
	"github.com/cpmech/gran/mdl/contact"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Particles holds per-particle data
type Particles struct {
	X    [][]float64 // positions [np][3]
	V    [][]float64 // velocities [np][3]
	W    [][]float64 // angular velocities [np][3]
	Rad  []float64   // radii [np]
	Mass []float64   // masses [np]
	T    []float64   // temperatures [np]
	Type []int       // material type indices [np]
}

// NewParticles allocates particle data
func NewParticles(np int) *Particles {
	return &Particles{
		X:    utl.Alloc(np, 3),
		V:    utl.Alloc(np, 3),
		W:    utl.Alloc(np, 3),
		Rad:  make([]float64, np),
		Mass: make([]float64, np),
		T:    make([]float64, np),
		Type: make([]int, np),
	}
}

// Contact is one persistent pair interaction. The history buffer is
// owned exclusively by the contact and partitioned among the submodels
// of its type pair.
type Contact struct {
	I, J     int       // particle indices
	History  []float64 // persistent per-contact state
	Touching bool      // particles overlapped at the last evaluation
}

// Results holds per-particle accumulators filled by Compute
type Results struct {
	F  [][]float64 // forces [np][3]
	Tq [][]float64 // torques [np][3]
	Q  []float64   // heat fluxes [np]
}

// NewResults allocates result accumulators
func NewResults(np int) *Results {
	return &Results{
		F:  utl.Alloc(np, 3),
		Tq: utl.Alloc(np, 3),
		Q:  make([]float64, np),
	}
}

// add accumulates other into this set of results
func (o *Results) add(other *Results) {
	for i := range o.Q {
		for k := 0; k < 3; k++ {
			o.F[i][k] += other.F[i][k]
			o.Tq[i][k] += other.Tq[i][k]
		}
		o.Q[i] += other.Q[i]
	}
}

// Granular holds one granular model per particle type pair. Cross-type
// models are derived from the same-type ones by coefficient mixing.
type Granular struct {

	// configuration
	Nproc int // number of concurrent workers in Compute; <=1 means serial

	// derived
	Ntypes      int
	Models      [][]*contact.GranularModel // [ntypes][ntypes], symmetric
	SizeHistory int                        // history slots per contact, equal for all pairs
}

// Init builds the type-pair model table. typemats maps each type index
// to a material name in the database; all materials must declare the
// same submodel variants so that contacts share one history layout.
func (o *Granular) Init(mdb *inp.MatDb, typemats []string) (err error) {
	o.Ntypes = len(typemats)
	if o.Ntypes < 1 {
		return chk.Err("at least one particle type is required")
	}
	o.Models = make([][]*contact.GranularModel, o.Ntypes)
	for i := 0; i < o.Ntypes; i++ {
		o.Models[i] = make([]*contact.GranularModel, o.Ntypes)
	}

	// same-type models
	for i, name := range typemats {
		mat := mdb.Get(name)
		if mat == nil {
			return chk.Err("materials database failed on getting %q (granular) material", name)
		}
		o.Models[i][i] = mat.Model
	}

	// cross-type models
	for i := 0; i < o.Ntypes; i++ {
		for j := i + 1; j < o.Ntypes; j++ {
			gm, err := contact.MixModels(o.Models[i][i], o.Models[j][j])
			if err != nil {
				return chk.Err("cannot mix materials %q and %q:\n%v", typemats[i], typemats[j], err)
			}
			o.Models[i][j] = gm
			o.Models[j][i] = gm
		}
	}

	// history layout must agree across pairs
	o.SizeHistory = o.Models[0][0].SizeHistory
	for i := 0; i < o.Ntypes; i++ {
		for j := 0; j < o.Ntypes; j++ {
			if o.Models[i][j].SizeHistory != o.SizeHistory {
				return chk.Err("history layout mismatch: pair (%d,%d) needs %d slots, expected %d",
					i, j, o.Models[i][j].SizeHistory, o.SizeHistory)
			}
		}
	}
	return
}

// Model returns the granular model of a type pair
func (o *Granular) Model(itype, jtype int) *contact.GranularModel {
	return o.Models[itype][jtype]
}

// NewContact creates a contact with a zeroed history buffer
func (o *Granular) NewContact(i, j int) *Contact {
	return &Contact{I: i, J: j, History: make([]float64, o.SizeHistory)}
}

// TransferHistory fills dst with one contact's history as seen by the
// receiving owner, applying the per-submodel transfer tables of the
// type pair
func (o *Granular) TransferHistory(itype, jtype int, src, dst []float64) {
	o.Models[itype][jtype].TransferHistory(src, dst)
}

// Compute evaluates all contacts and returns the per-particle force,
// torque and heat-flux accumulators. Contacts are split among Nproc
// workers; each worker owns a contact state and a partial result set,
// merged after the join. The history buffers are mutated only when
// historyUpdate is set; a contact whose particles no longer overlap has
// its history zeroed.
func (o *Granular) Compute(prt *Particles, contacts []*Contact, dt float64, historyUpdate bool) (res *Results, err error) {
	np := len(prt.Rad)
	res = NewResults(np)

	// serial run
	nproc := o.Nproc
	if nproc <= 1 || len(contacts) < 2*nproc {
		err = o.computeChunk(prt, contacts, dt, historyUpdate, res)
		return
	}

	// parallel run: one chunk of contacts per worker
	partials := make([]*Results, nproc)
	errs := make([]error, nproc)
	csize := (len(contacts) + nproc - 1) / nproc
	var wg sync.WaitGroup
	for w := 0; w < nproc; w++ {
		lo := w * csize
		hi := (w + 1) * csize
		if hi > len(contacts) {
			hi = len(contacts)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			partials[w] = NewResults(np)
			errs[w] = o.computeChunk(prt, contacts[lo:hi], dt, historyUpdate, partials[w])
		}(w, lo, hi)
	}
	wg.Wait()
	for w := 0; w < nproc; w++ {
		if errs[w] != nil {
			return nil, errs[w]
		}
		if partials[w] != nil {
			res.add(partials[w])
		}
	}
	return
}

// computeChunk evaluates a slice of contacts into res
func (o *Granular) computeChunk(prt *Particles, contacts []*Contact, dt float64, historyUpdate bool, res *Results) error {
	s := contact.NewState()
	for _, c := range contacts {
		itype, jtype := prt.Type[c.I], prt.Type[c.J]
		if itype < 0 || itype >= o.Ntypes || jtype < 0 || jtype >= o.Ntypes {
			return chk.Err("contact (%d,%d) references an undefined particle type", c.I, c.J)
		}
		gm := o.Models[itype][jtype]

		// kinematic snapshot
		copy(s.Xi, prt.X[c.I])
		copy(s.Xj, prt.X[c.J])
		copy(s.Vi, prt.V[c.I])
		copy(s.Vj, prt.V[c.J])
		copy(s.Wi, prt.W[c.I])
		copy(s.Wj, prt.W[c.J])
		s.Radi, s.Radj = prt.Rad[c.I], prt.Rad[c.J]
		s.Meff = prt.Mass[c.I] * prt.Mass[c.J] / (prt.Mass[c.I] + prt.Mass[c.J])
		s.Ti, s.Tj = prt.T[c.I], prt.T[c.J]
		s.Dt = dt
		s.HistoryUpdate = historyUpdate
		s.History = c.History

		// out of range: drop elastic memory
		if !gm.PrepareContact(s) {
			c.Touching = false
			for k := range c.History {
				c.History[k] = 0
			}
			continue
		}
		c.Touching = true

		// evaluate and accumulate
		gm.CalculateForces(s)
		for k := 0; k < 3; k++ {
			res.F[c.I][k] += s.Forces[k]
			res.F[c.J][k] -= s.Forces[k]
			res.Tq[c.I][k] += s.TorquesI[k]
			res.Tq[c.J][k] += s.TorquesJ[k]
		}
		res.Q[c.I] += s.Dq
		res.Q[c.J] -= s.Dq
	}
	return nil
}
