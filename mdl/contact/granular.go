// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// GranularModel combines one submodel per category into the composite
// contact model for a particle type pair. It owns the layout of the
// shared per-contact history buffer and evaluates the submodels in a
// fixed order: normal, damping, tangential, rolling, twisting, heat.
type GranularModel struct {

	// submodels
	Normal     NormalModel
	Damping    DampingModel
	Tangential TangentialModel
	Rolling    RollingModel
	Twisting   TwistingModel
	Heat       HeatModel

	// options
	LimitDamping bool // zero the total normal force when damping would make it attractive

	// derived
	SizeHistory int // total history slots per contact
	finalized   bool
}

// NewGranularModel returns an empty granular model; submodels are
// attached with the Set methods and the model becomes usable after
// Finalize
func NewGranularModel() *GranularModel {
	return new(GranularModel)
}

// SetNormal allocates and attaches the normal submodel
func (o *GranularModel) SetNormal(name string, prms dbf.Params) (err error) {
	o.Normal, err = NewNormal(name)
	if err != nil {
		return
	}
	o.Normal.Bind(o)
	return o.Normal.Init(prms)
}

// SetDamping allocates and attaches the damping submodel
func (o *GranularModel) SetDamping(name string, prms dbf.Params) (err error) {
	o.Damping, err = NewDamping(name)
	if err != nil {
		return
	}
	o.Damping.Bind(o)
	return o.Damping.Init(prms)
}

// SetTangential allocates and attaches the tangential submodel
func (o *GranularModel) SetTangential(name string, prms dbf.Params) (err error) {
	o.Tangential, err = NewTangential(name)
	if err != nil {
		return
	}
	o.Tangential.Bind(o)
	return o.Tangential.Init(prms)
}

// SetRolling allocates and attaches the rolling submodel
func (o *GranularModel) SetRolling(name string, prms dbf.Params) (err error) {
	o.Rolling, err = NewRolling(name)
	if err != nil {
		return
	}
	o.Rolling.Bind(o)
	return o.Rolling.Init(prms)
}

// SetTwisting allocates and attaches the twisting submodel
func (o *GranularModel) SetTwisting(name string, prms dbf.Params) (err error) {
	o.Twisting, err = NewTwisting(name)
	if err != nil {
		return
	}
	o.Twisting.Bind(o)
	return o.Twisting.Init(prms)
}

// SetHeat allocates and attaches the heat submodel
func (o *GranularModel) SetHeat(name string, prms dbf.Params) (err error) {
	o.Heat, err = NewHeat(name)
	if err != nil {
		return
	}
	o.Heat.Bind(o)
	return o.Heat.Init(prms)
}

// Finalize completes the model setup: optional categories default to
// "none", working parameters are derived in category order (normal
// before damping before the friction-limited categories) and the
// history buffer layout is assigned with non-overlapping slot ranges.
// Any invalid coefficient aborts here; a contact model cannot run with
// invalid physics.
func (o *GranularModel) Finalize() (err error) {

	// mandatory and default submodels
	if o.Normal == nil {
		return chk.Err("granular model requires a normal contact model")
	}
	if o.Tangential == nil {
		return chk.Err("granular model requires a tangential contact model")
	}
	if o.Damping == nil {
		if err = o.SetDamping("none", nil); err != nil {
			return
		}
	}
	if o.Rolling == nil {
		if err = o.SetRolling("none", nil); err != nil {
			return
		}
	}
	if o.Twisting == nil {
		if err = o.SetTwisting("none", nil); err != nil {
			return
		}
	}
	if o.Heat == nil {
		if err = o.SetHeat("none", nil); err != nil {
			return
		}
	}

	// derive working parameters in category order
	for _, m := range o.Models() {
		if err = m.CoeffsToLocal(); err != nil {
			return
		}
	}

	// history buffer layout
	o.SizeHistory = 0
	for _, m := range o.Models() {
		m.SetHistoryIndex(o.SizeHistory)
		o.SizeHistory += m.SizeHistory()
	}

	o.finalized = true
	return
}

// Models returns the attached submodels in evaluation order
func (o *GranularModel) Models() []Model {
	all := []Model{}
	if o.Normal != nil {
		all = append(all, o.Normal)
	}
	if o.Damping != nil {
		all = append(all, o.Damping)
	}
	if o.Tangential != nil {
		all = append(all, o.Tangential)
	}
	if o.Rolling != nil {
		all = append(all, o.Rolling)
	}
	if o.Twisting != nil {
		all = append(all, o.Twisting)
	}
	if o.Heat != nil {
		all = append(all, o.Heat)
	}
	return all
}

// PrepareContact checks for geometric contact and, if touching, derives
// the kinematic quantities the submodels read. Returns false when the
// particles do not interact this step.
func (o *GranularModel) PrepareContact(s *State) bool {
	if !s.Touch() {
		return false
	}
	s.prepare()
	s.Area = o.Normal.Area(s)
	return true
}

// CalculateForces evaluates all submodels for one prepared contact and
// composes the total force on particle i and the torques on both
// particles. The history slice of s is mutated only when
// s.HistoryUpdate is set. Distinct contacts may be evaluated
// concurrently; a single State must not be shared.
func (o *GranularModel) CalculateForces(s *State) {

	// normal force and critical force
	s.Fne = o.Normal.CalculateForces(s)
	s.Fdamp = o.Damping.CalculateForces(s)
	s.Fntot = s.Fne + s.Fdamp
	if o.LimitDamping && s.Fntot < 0 {
		s.Fntot = 0
	}
	s.Fncrit = o.Normal.Fncrit(s)

	// friction-limited categories
	o.Tangential.CalculateForces(s)
	o.Rolling.CalculateForces(s)
	o.Twisting.CalculateForces(s)
	s.Dq = o.Heat.CalculateHeat(s)

	// total force on particle i
	scale3to(s.Fntot, s.Nx, s.Forces)
	add3(s.Forces, s.Fs, s.Forces)

	// torques from the tangential force
	var tor, torroll, tortwist [3]float64
	cross3(s.Nx, s.Fs, tor[:])
	distI := s.Radi - 0.5*s.Delta
	distJ := s.Radj - 0.5*s.Delta
	scale3to(-distI, tor[:], s.TorquesI)
	scale3to(-distJ, tor[:], s.TorquesJ)

	// torques from rolling resistance
	cross3(s.Nx, s.Fr, torroll[:])
	scale3(s.Reff, torroll[:])
	add3(s.TorquesI, torroll[:], s.TorquesI)
	sub3(s.TorquesJ, torroll[:], s.TorquesJ)

	// torques from twisting resistance
	scale3to(s.Magtortwist, s.Nx, tortwist[:])
	add3(s.TorquesI, tortwist[:], s.TorquesI)
	sub3(s.TorquesJ, tortwist[:], s.TorquesJ)
}

// TransferHistory copies one contact's history into the buffer of the
// receiving owner, applying each submodel's transfer-factor table.
// A nil table means an identity copy.
func (o *GranularModel) TransferHistory(src, dst []float64) {
	for _, m := range o.Models() {
		idx, n := m.HistoryIndex(), m.SizeHistory()
		fac := m.TransferFactors()
		for k := 0; k < n; k++ {
			if fac == nil {
				dst[idx+k] = src[idx+k]
			} else {
				dst[idx+k] = fac[k] * src[idx+k]
			}
		}
	}
}

// PackCoeffs serialises the raw coefficients of all submodels as an
// ordered sequence of doubles; the layout is stable for a given set of
// submodel variants
func (o *GranularModel) PackCoeffs() []float64 {
	var vals []float64
	for _, m := range o.Models() {
		vals = append(vals, m.GetCoeffs()...)
	}
	return vals
}

// UnpackCoeffs restores the submodels' raw coefficients from a packed
// sequence and re-derives all working parameters
func (o *GranularModel) UnpackCoeffs(vals []float64) (err error) {
	pos := 0
	for _, m := range o.Models() {
		n := m.NumCoeffs()
		if pos+n > len(vals) {
			return chk.Err("packed coefficients are too short: need %d, got %d", pos+n, len(vals))
		}
		if err = m.SetCoeffs(vals[pos : pos+n]); err != nil {
			return
		}
		pos += n
	}
	if pos != len(vals) {
		return chk.Err("packed coefficients are too long: need %d, got %d", pos, len(vals))
	}
	for _, m := range o.Models() {
		if err = m.CoeffsToLocal(); err != nil {
			return
		}
	}
	return
}

// MixModels derives the granular model of a cross-type pair from the
// two same-type models. The submodel variants must match category-wise;
// each coefficient is combined by its variant's mixing rule (geometric
// mean unless the variant overrides it). Mixing is symmetric.
func MixModels(a, b *GranularModel) (mixed *GranularModel, err error) {

	check := func(category string, ma, mb Model) error {
		if (ma == nil) != (mb == nil) {
			return chk.Err("cannot mix %s models: only one side defines one", category)
		}
		if ma != nil && ma.ModelName() != mb.ModelName() {
			return chk.Err("cannot mix %s models %q and %q", category, ma.ModelName(), mb.ModelName())
		}
		return nil
	}
	if err = check("normal", a.Normal, b.Normal); err != nil {
		return nil, err
	}
	if err = check("damping", a.Damping, b.Damping); err != nil {
		return nil, err
	}
	if err = check("tangential", a.Tangential, b.Tangential); err != nil {
		return nil, err
	}
	if err = check("rolling", a.Rolling, b.Rolling); err != nil {
		return nil, err
	}
	if err = check("twisting", a.Twisting, b.Twisting); err != nil {
		return nil, err
	}
	if err = check("heat", a.Heat, b.Heat); err != nil {
		return nil, err
	}

	mixed = NewGranularModel()
	mixed.LimitDamping = a.LimitDamping || b.LimitDamping

	// allocate and mix in category order so that working-parameter
	// derivation can read the already-mixed siblings
	if mixed.Normal, err = NewNormal(a.Normal.ModelName()); err != nil {
		return nil, err
	}
	mixed.Normal.Bind(mixed)
	if err = mixed.Normal.MixCoeffs(a.Normal, b.Normal); err != nil {
		return nil, err
	}

	if a.Damping != nil {
		if mixed.Damping, err = NewDamping(a.Damping.ModelName()); err != nil {
			return nil, err
		}
		mixed.Damping.Bind(mixed)
		if err = mixed.Damping.MixCoeffs(a.Damping, b.Damping); err != nil {
			return nil, err
		}
		// tangential mixing reads the damping coupling
		if err = mixed.Damping.CoeffsToLocal(); err != nil {
			return nil, err
		}
	}

	if mixed.Tangential, err = NewTangential(a.Tangential.ModelName()); err != nil {
		return nil, err
	}
	mixed.Tangential.Bind(mixed)
	if err = mixed.Tangential.MixCoeffs(a.Tangential, b.Tangential); err != nil {
		return nil, err
	}

	if a.Rolling != nil {
		if mixed.Rolling, err = NewRolling(a.Rolling.ModelName()); err != nil {
			return nil, err
		}
		mixed.Rolling.Bind(mixed)
		if err = mixed.Rolling.MixCoeffs(a.Rolling, b.Rolling); err != nil {
			return nil, err
		}
	}

	if a.Twisting != nil {
		if mixed.Twisting, err = NewTwisting(a.Twisting.ModelName()); err != nil {
			return nil, err
		}
		mixed.Twisting.Bind(mixed)
		if err = mixed.Twisting.MixCoeffs(a.Twisting, b.Twisting); err != nil {
			return nil, err
		}
	}

	if a.Heat != nil {
		if mixed.Heat, err = NewHeat(a.Heat.ModelName()); err != nil {
			return nil, err
		}
		mixed.Heat.Bind(mixed)
		if err = mixed.Heat.MixCoeffs(a.Heat, b.Heat); err != nil {
			return nil, err
		}
	}

	err = mixed.Finalize()
	if err != nil {
		return nil, err
	}
	return
}
