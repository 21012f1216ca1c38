// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package qpio loads quadratic programs from YAML documents.
//
// A document describes one problem in the natural matrix layout:
//
//	hessian:
//	  - [1, 0]
//	  - [0, 1]
//	gradient: [0, 0]
//	constraints:
//	  - { row: [1, 1], equal: 1 }
//	  - { row: [1, 0], upper: 2 }
//	bounds:
//	  - { lower: -1, upper: 1 }
//	  - {}
//	parameters:
//	  hessian_type: lower_triangular
//	  max_iterations: -1
//	  tolerance: 1e-12
//
// Absent constraint sides are unbounded, "equal" declares an equality,
// and every section except the hessian is optional.
package qpio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bssrdf/qpmad/qp"
)

type document struct {
	Hessian     [][]float64  `yaml:"hessian"`
	Gradient    []float64    `yaml:"gradient"`
	Constraints []constraint `yaml:"constraints"`
	Bounds      []bound      `yaml:"bounds"`
	Parameters  *parameters  `yaml:"parameters"`
}

type constraint struct {
	Row   []float64 `yaml:"row"`
	Lower *float64  `yaml:"lower"`
	Upper *float64  `yaml:"upper"`
	Equal *float64  `yaml:"equal"`
}

type bound struct {
	Lower *float64 `yaml:"lower"`
	Upper *float64 `yaml:"upper"`
}

type parameters struct {
	HessianType   string   `yaml:"hessian_type"`
	MaxIterations *int     `yaml:"max_iterations"`
	Tolerance     *float64 `yaml:"tolerance"`
}

// Load decodes one problem document.
// The returned parameters start from qp.DefaultParameters with the
// declared fields overridden.
func Load(r io.Reader) (*qp.Problem, qp.Parameters, error) {

	param := qp.DefaultParameters()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, param, fmt.Errorf("problem document: %w", err)
	}

	n := len(doc.Hessian)
	if n == 0 {
		return nil, param, errors.New("problem document: hessian is required")
	}
	hessian := make([]float64, 0, n*n)
	for i, row := range doc.Hessian {
		if len(row) != n {
			return nil, param, fmt.Errorf("problem document: hessian row %d is not of length %d", i, n)
		}
		hessian = append(hessian, row...)
	}

	if doc.Gradient != nil && len(doc.Gradient) != n {
		return nil, param, errors.New("problem document: gradient length mismatch")
	}

	m := len(doc.Constraints)
	var a, alb, aub []float64
	if m > 0 {
		a = make([]float64, 0, m*n)
		alb = make([]float64, m)
		aub = make([]float64, m)
		for i, c := range doc.Constraints {
			if len(c.Row) != n {
				return nil, param, fmt.Errorf("problem document: constraint row %d is not of length %d", i, n)
			}
			a = append(a, c.Row...)
			lower, upper := math.Inf(-1), math.Inf(1)
			switch {
			case c.Equal != nil && (c.Lower != nil || c.Upper != nil):
				return nil, param, fmt.Errorf("problem document: constraint %d mixes equal with lower/upper", i)
			case c.Equal != nil:
				lower, upper = *c.Equal, *c.Equal
			default:
				if c.Lower != nil {
					lower = *c.Lower
				}
				if c.Upper != nil {
					upper = *c.Upper
				}
			}
			alb[i], aub[i] = lower, upper
		}
	}

	var bounds []qp.Bound
	if doc.Bounds != nil {
		if len(doc.Bounds) != n {
			return nil, param, errors.New("problem document: bounds length mismatch")
		}
		bounds = make([]qp.Bound, n)
		for i, b := range doc.Bounds {
			bounds[i] = qp.Bound{Lower: math.NaN(), Upper: math.NaN()}
			if b.Lower != nil {
				bounds[i].Lower = *b.Lower
			}
			if b.Upper != nil {
				bounds[i].Upper = *b.Upper
			}
		}
	}

	if doc.Parameters != nil {
		switch doc.Parameters.HessianType {
		case "", "lower_triangular":
			param.HessianType = qp.HessianLowerTriangular
		case "cholesky_factor":
			param.HessianType = qp.HessianCholeskyFactor
		default:
			return nil, param, fmt.Errorf("problem document: unknown hessian_type %q", doc.Parameters.HessianType)
		}
		if doc.Parameters.MaxIterations != nil {
			param.MaxIterations = *doc.Parameters.MaxIterations
		}
		if doc.Parameters.Tolerance != nil {
			param.Tolerance = *doc.Parameters.Tolerance
		}
	}

	problem := &qp.Problem{
		N:        n,
		Hessian:  hessian,
		Gradient: doc.Gradient,
		M:        m,
		A:        a,
		Lower:    alb,
		Upper:    aub,
		Bounds:   bounds,
	}
	return problem, param, nil
}

// LoadFile decodes the problem document stored at path.
func LoadFile(path string) (*qp.Problem, qp.Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, qp.DefaultParameters(), err
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}
