// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from (.mat) files: a
// database of granular materials, each declaring one contact submodel
// per category with its parameters
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gran/mdl/contact"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// MdlSpec selects one submodel and its parameters
type MdlSpec struct {
	Model string     `json:"model"` // name of model; e.g. "hertz/material", "mindlin"
	Prms  dbf.Params `json:"prms"`  // model parameters
}

// Material holds material data
type Material struct {

	// input
	Name         string   `json:"name"`          // name of material
	Type         string   `json:"type"`          // type of material; must be "granular"
	Normal       *MdlSpec `json:"normal"`        // normal contact model
	Damping      *MdlSpec `json:"damping"`       // damping contact model
	Tangential   *MdlSpec `json:"tangential"`    // tangential contact model
	Rolling      *MdlSpec `json:"rolling"`       // rolling contact model
	Twisting     *MdlSpec `json:"twisting"`      // twisting contact model
	Heat         *MdlSpec `json:"heat"`          // heat conduction contact model
	LimitDamping bool     `json:"limit_damping"` // zero attractive damped normal forces

	// derived
	Model *contact.GranularModel // pointer to actual granular model
}

// MatsData holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {

	// input
	Materials MatsData `json:"materials"` // all materials

	// derived
	Granular map[string]*Material // subset with materials/models: granular
}

// ReadMat reads all materials data from a .mat JSON file and
// initialises the granular models
func ReadMat(dir, fn string) (mdb *MatDb, err error) {

	// new database
	mdb = new(MatDb)

	// read file
	b, err := os.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, err
	}

	// decode
	err = json.Unmarshal(b, mdb)
	if err != nil {
		return
	}

	// subsets
	mdb.Granular = make(map[string]*Material)
	for _, m := range mdb.Materials {
		switch m.Type {
		case "granular":
			mdb.Granular[m.Name] = m
		default:
			return nil, chk.Err("material type %q is incorrect; it must be \"granular\"", m.Type)
		}
	}

	// alloc/init granular models
	for _, m := range mdb.Granular {
		m.Model, err = GetAndInitGranularModel(m)
		if err != nil {
			return nil, chk.Err("cannot initialise granular model of material %q:\n%v", m.Name, err)
		}
	}
	return
}

// Get returns a material or nil
func (o *MatDb) Get(name string) *Material {
	return o.Granular[name]
}

// MixedModel derives the cross-type granular model for two materials
func (o *MatDb) MixedModel(aname, bname string) (gm *contact.GranularModel, err error) {
	ma, mb := o.Get(aname), o.Get(bname)
	if ma == nil || mb == nil {
		return nil, chk.Err("materials database failed on getting %q and %q", aname, bname)
	}
	return contact.MixModels(ma.Model, mb.Model)
}

// GetAndInitGranularModel allocates, initialises and finalises the
// granular model of one material
func GetAndInitGranularModel(m *Material) (gm *contact.GranularModel, err error) {
	gm = contact.NewGranularModel()
	gm.LimitDamping = m.LimitDamping
	if m.Normal == nil {
		return nil, chk.Err("material %q must define a normal contact model", m.Name)
	}
	if m.Tangential == nil {
		return nil, chk.Err("material %q must define a tangential contact model", m.Name)
	}
	if err = gm.SetNormal(m.Normal.Model, m.Normal.Prms); err != nil {
		return nil, err
	}
	if m.Damping != nil {
		if err = gm.SetDamping(m.Damping.Model, m.Damping.Prms); err != nil {
			return nil, err
		}
	}
	if err = gm.SetTangential(m.Tangential.Model, m.Tangential.Prms); err != nil {
		return nil, err
	}
	if m.Rolling != nil {
		if err = gm.SetRolling(m.Rolling.Model, m.Rolling.Prms); err != nil {
			return nil, err
		}
	}
	if m.Twisting != nil {
		if err = gm.SetTwisting(m.Twisting.Model, m.Twisting.Prms); err != nil {
			return nil, err
		}
	}
	if m.Heat != nil {
		if err = gm.SetHeat(m.Heat.Model, m.Heat.Prms); err != nil {
			return nil, err
		}
	}
	err = gm.Finalize()
	if err != nil {
		return nil, err
	}
	return
}
