// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package contact implements granular contact submodels: normal, damping,
// tangential, rolling, twisting, and heat. One submodel per category is
// combined into a GranularModel which computes forces/torques/heat flux
// for a single particle pair given the contact kinematics.
//
// Submodels hold a raw coefficient vector (user input or the output of
// mixing two per-type models) plus working parameters derived from it.
// History-dependent submodels additionally own a slice of the per-contact
// history buffer, partitioned by the GranularModel.
package contact

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// EPSILON bounds the tolerated drift of history along the contact normal
// before the history vector is re-projected onto the tangent plane
const EPSILON = 1e-10

// Model defines the contract common to all contact submodels
type Model interface {
	ModelName() string                // registered name
	NumCoeffs() int                   // number of raw coefficients
	GetCoeffs() []float64             // raw coefficient vector
	SetCoeffs(vals []float64) error   // sets raw coefficients (no derivation)
	Init(prms dbf.Params) error       // parses named parameters into coefficients
	CoeffsToLocal() error             // derives working parameters from coefficients
	MixCoeffs(i, j Model) error       // derives coefficients from two same-variant models
	SizeHistory() int                 // number of history slots per contact
	HistoryIndex() int                // first slot within the shared history buffer
	SetHistoryIndex(idx int)          // sets first slot
	TransferFactors() []float64       // per-slot ownership-transfer factors; nil = identity
	Bind(gm *GranularModel)           // connects submodel to its owner
}

// NormalModel computes the elastic normal force and supplies material data
// and the critical force read by the friction-limited categories
type NormalModel interface {
	Model
	Area(s *State) float64            // contact area from overlap geometry
	CalculateForces(s *State) float64 // elastic normal force magnitude
	Fncrit(s *State) float64          // critical normal force given s.Fntot
	Damp() float64                    // raw damping coefficient read by the damping submodel
	HasMaterialProperties() bool      // whether Emod/Poiss are meaningful
	Emod() float64                    // elastic (Young's) modulus
	Poiss() float64                   // Poisson's ratio
}

// DampingModel computes the normal damping force
type DampingModel interface {
	Model
	Damp() float64                    // setup-time coefficient read by tangential/rolling couplings
	CalculateForces(s *State) float64 // normal damping force (negative when dissipative)
}

// TangentialModel computes the tangential (friction) force
type TangentialModel interface {
	Model
	CalculateForces(s *State)
	Stiffness() float64 // working tangential stiffness
	DampCoeff() float64 // working tangential damping
	Mu() float64        // friction coefficient
}

// RollingModel computes the rolling resistance force
type RollingModel interface {
	Model
	CalculateForces(s *State)
}

// TwistingModel computes the twisting (torsional) torque
type TwistingModel interface {
	Model
	CalculateForces(s *State)
}

// HeatModel computes the conductive heat flux across the contact
type HeatModel interface {
	Model
	CalculateHeat(s *State) float64
}

// Submodel is the base of all contact submodels. Variants embed it and
// implement CoeffsToLocal, MixCoeffs and their category's compute method.
type Submodel struct {
	Name        string    // registered model name
	ArgNames    []string  // canonical coefficient names, fixes the coefficient order
	Coeffs      []float64 // raw coefficients [len(ArgNames)]
	SizeHist    int       // number of history slots per contact
	HistIdx     int       // first slot within the shared history buffer
	TransferFac []float64 // per-slot transfer factors; nil = identity copy
	gm          *GranularModel
}

// ModelName returns the registered name
func (o *Submodel) ModelName() string { return o.Name }

// NumCoeffs returns the number of raw coefficients
func (o *Submodel) NumCoeffs() int { return len(o.ArgNames) }

// GetCoeffs returns the raw coefficient vector
func (o *Submodel) GetCoeffs() []float64 { return o.Coeffs }

// SetCoeffs copies vals into the raw coefficient vector
func (o *Submodel) SetCoeffs(vals []float64) error {
	if len(vals) != len(o.ArgNames) {
		return chk.Err("%s: need %d coefficients, got %d", o.Name, len(o.ArgNames), len(vals))
	}
	if o.Coeffs == nil {
		o.Coeffs = make([]float64, len(o.ArgNames))
	}
	copy(o.Coeffs, vals)
	return nil
}

// Init parses named parameters into the coefficient vector. All
// coefficients declared by the variant must be given; unknown names are
// fatal. Derivation of working parameters is deferred to CoeffsToLocal,
// which the GranularModel invokes in category order.
func (o *Submodel) Init(prms dbf.Params) (err error) {
	o.Coeffs = make([]float64, len(o.ArgNames))
	seen := make([]bool, len(o.ArgNames))
	for _, p := range prms {
		idx := -1
		for i, name := range o.ArgNames {
			if p.N == name {
				idx = i
			}
		}
		if idx < 0 {
			return chk.Err("%s: parameter named %q is incorrect", o.Name, p.N)
		}
		o.Coeffs[idx] = p.V
		seen[idx] = true
	}
	for i, ok := range seen {
		if !ok {
			return chk.Err("%s: parameter %q is missing", o.Name, o.ArgNames[i])
		}
	}
	return
}

// SizeHistory returns the number of history slots per contact
func (o *Submodel) SizeHistory() int { return o.SizeHist }

// HistoryIndex returns the first slot within the shared history buffer
func (o *Submodel) HistoryIndex() int { return o.HistIdx }

// SetHistoryIndex sets the first slot within the shared history buffer
func (o *Submodel) SetHistoryIndex(idx int) { o.HistIdx = idx }

// TransferFactors returns the per-slot ownership-transfer factors.
// nil means identity copy.
func (o *Submodel) TransferFactors() []float64 { return o.TransferFac }

// Bind connects this submodel to its owning GranularModel
func (o *Submodel) Bind(gm *GranularModel) { o.gm = gm }

// mixGeom fills the coefficient vector with the element-wise geometric
// mean of two same-variant models' coefficients
func (o *Submodel) mixGeom(i, j Model) error {
	if i.ModelName() != o.Name || j.ModelName() != o.Name {
		return chk.Err("%s: cannot mix with models %q and %q", o.Name, i.ModelName(), j.ModelName())
	}
	o.Coeffs = make([]float64, len(o.ArgNames))
	ic, jc := i.GetCoeffs(), j.GetCoeffs()
	for k := range o.Coeffs {
		o.Coeffs[k] = MixGeom(ic[k], jc[k])
	}
	return nil
}

// allocators; modelname => allocator, one database per category
var (
	normalAllocators     = map[string]func() NormalModel{}
	dampingAllocators    = map[string]func() DampingModel{}
	tangentialAllocators = map[string]func() TangentialModel{}
	rollingAllocators    = map[string]func() RollingModel{}
	twistingAllocators   = map[string]func() TwistingModel{}
	heatAllocators       = map[string]func() HeatModel{}
)

// NewNormal returns a new normal contact model
func NewNormal(name string) (NormalModel, error) {
	allocator, ok := normalAllocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'normal' database", name)
	}
	return allocator(), nil
}

// NewDamping returns a new damping contact model
func NewDamping(name string) (DampingModel, error) {
	allocator, ok := dampingAllocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'damping' database", name)
	}
	return allocator(), nil
}

// NewTangential returns a new tangential contact model
func NewTangential(name string) (TangentialModel, error) {
	allocator, ok := tangentialAllocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'tangential' database", name)
	}
	return allocator(), nil
}

// NewRolling returns a new rolling contact model
func NewRolling(name string) (RollingModel, error) {
	allocator, ok := rollingAllocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'rolling' database", name)
	}
	return allocator(), nil
}

// NewTwisting returns a new twisting contact model
func NewTwisting(name string) (TwistingModel, error) {
	allocator, ok := twistingAllocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'twisting' database", name)
	}
	return allocator(), nil
}

// NewHeat returns a new heat conduction contact model
func NewHeat(name string) (HeatModel, error) {
	allocator, ok := heatAllocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'heat' database", name)
	}
	return allocator(), nil
}
