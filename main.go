// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"
	"path/filepath"

	"github.com/cpmech/gran/inp"
	"github.com/cpmech/gran/pair"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/gcfg.v1"
)

// ImpactScenario holds the data of one oblique two-particle impact
type ImpactScenario struct {
	MatFile  string   // materials database filename, relative to the config file
	Material []string // material name of each particle; one entry means both
	Radius   float64  // particle radius
	Mass     float64  // particle mass
	Speed    float64  // approach speed of particle i
	Angle    float64  // impact angle in degrees; 0 means head-on
	Dt       float64  // time step size
	Nsteps   int      // number of steps
	Nproc    int      // number of concurrent workers
}

// ImpactConfig wraps the scenario for the config reader
type ImpactConfig struct {
	Impact ImpactScenario
}

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "data/impact", ".cfg", true)
	verbose := io.ArgToBool(1, true)

	// message
	if verbose {
		io.PfWhite("\nGran -- granular contact models\n")
		io.Pf("Copyright 2017 The Gran Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
		))
	}

	// scenario
	var cfg ImpactConfig
	err := gcfg.ReadFileInto(&cfg, fnamepath)
	if err != nil {
		chk.Panic("cannot read scenario file %q:\n%v", fnamepath, err)
	}
	sc := &cfg.Impact
	if len(sc.Material) == 0 {
		chk.Panic("scenario must name at least one material")
	}
	if len(sc.Material) == 1 {
		sc.Material = append(sc.Material, sc.Material[0])
	}

	// materials database
	dir := filepath.Dir(fnamepath)
	mdb, err := inp.ReadMat(dir, sc.MatFile)
	if err != nil {
		chk.Panic("cannot read materials database:\n%v", err)
	}

	// model table
	var gran pair.Granular
	gran.Nproc = sc.Nproc
	err = gran.Init(mdb, sc.Material[:2])
	if err != nil {
		chk.Panic("cannot initialise granular models:\n%v", err)
	}
	if verbose {
		io.Pf("history slots per contact = %v\n", gran.SizeHistory)
	}

	// particles: j sits at the origin, i approaches at the given angle
	prt := pair.NewParticles(2)
	sin, cos := math.Sincos(sc.Angle * math.Pi / 180.0)
	prt.X[0][0] = -2.0 * sc.Radius * 0.999 // slight initial overlap along x
	prt.V[0][0] = sc.Speed * cos
	prt.V[0][1] = sc.Speed * sin
	prt.Rad[0], prt.Rad[1] = sc.Radius, sc.Radius
	prt.Mass[0], prt.Mass[1] = sc.Mass, sc.Mass
	prt.Type[0], prt.Type[1] = 0, 1

	// run
	contacts := []*pair.Contact{gran.NewContact(0, 1)}
	var fmax, fsmax float64
	ntouch := 0
	for n := 0; n < sc.Nsteps; n++ {
		res, err := gran.Compute(prt, contacts, sc.Dt, true)
		if err != nil {
			chk.Panic("step %d failed:\n%v", n, err)
		}
		if contacts[0].Touching {
			ntouch++
			fn := math.Abs(res.F[0][0])
			fs := math.Abs(res.F[0][1])
			if fn > fmax {
				fmax = fn
			}
			if fs > fsmax {
				fsmax = fs
			}
		}
		for k := 0; k < 3; k++ {
			prt.V[0][k] += res.F[0][k] / sc.Mass * sc.Dt
			prt.X[0][k] += prt.V[0][k] * sc.Dt
			prt.W[0][k] += res.Tq[0][k] / (0.4 * sc.Mass * sc.Radius * sc.Radius) * sc.Dt
		}
		if ntouch > 0 && !contacts[0].Touching {
			break
		}
	}

	// results
	if verbose {
		io.Pf("\n%v\n", io.ArgsTable("IMPACT RESULTS",
			"steps in contact", "ntouch", ntouch,
			"peak normal force", "fmax", io.Sf("%g", fmax),
			"peak tangential force", "fsmax", io.Sf("%g", fsmax),
			"rebound speed x", "vx", io.Sf("%g", prt.V[0][0]),
			"rebound speed y", "vy", io.Sf("%g", prt.V[0][1]),
			"spin z", "wz", io.Sf("%g", prt.W[0][2]),
		))
	}
}
