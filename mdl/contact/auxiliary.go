// Copyright 2017 The Gran Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import "math"

// MixGeom mixes two coefficients with the geometric mean
func MixGeom(a, b float64) float64 {
	return math.Sqrt(a * b)
}

// MixStiffnessE mixes Young's moduli of two materials
func MixStiffnessE(E1, E2, nu1, nu2 float64) float64 {
	factor1 := (1.0 - nu1*nu1) / E1
	factor2 := (1.0 - nu2*nu2) / E2
	return 1.0 / (factor1 + factor2)
}

// MixStiffnessG mixes shear moduli of two materials
func MixStiffnessG(E1, E2, nu1, nu2 float64) float64 {
	factor1 := 2.0 * (2.0 - nu1) * (1.0 + nu1) / E1
	factor2 := 2.0 * (2.0 - nu2) * (1.0 + nu2) / E2
	return 1.0 / (factor1 + factor2)
}

// MixStiffnessEwall mixes the Young's modulus of a particle against a rigid wall
func MixStiffnessEwall(E, nu float64) float64 {
	return E / (2.0 * (1.0 - nu))
}

// MixStiffnessGwall mixes the shear modulus of a particle against a rigid wall
func MixStiffnessGwall(E, nu float64) float64 {
	return E / (32.0 * (2.0 - nu) * (1.0 + nu))
}

// 3-vector kernels. History slices may be longer than 3; only the first
// three components are touched.

func dot3(u, v []float64) float64 {
	return u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
}

func len3(u []float64) float64 {
	return math.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
}

func scale3(a float64, u []float64) {
	u[0] *= a
	u[1] *= a
	u[2] *= a
}

func scale3to(a float64, u, res []float64) {
	res[0] = a * u[0]
	res[1] = a * u[1]
	res[2] = a * u[2]
}

func add3(u, v, res []float64) {
	res[0] = u[0] + v[0]
	res[1] = u[1] + v[1]
	res[2] = u[2] + v[2]
}

func sub3(u, v, res []float64) {
	res[0] = u[0] - v[0]
	res[1] = u[1] - v[1]
	res[2] = u[2] - v[2]
}

func cross3(u, v, res []float64) {
	res[0] = u[1]*v[2] - u[2]*v[1]
	res[1] = u[2]*v[0] - u[0]*v[2]
	res[2] = u[0]*v[1] - u[1]*v[0]
}

func zero3(u []float64) {
	u[0], u[1], u[2] = 0, 0, 0
}
