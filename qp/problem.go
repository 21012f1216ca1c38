// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import (
	"errors"
	"fmt"
	"math"
	"os"
)

// Bound represents a two-sided box constraint on one variable.
// A NaN or infinite side means the variable is unbounded on that side.
type Bound struct {
	Lower, Upper float64
}

// Problem specifies a strictly convex quadratic program
//
//	𝚖𝚒𝚗 ½𝐱ᵀ𝐇𝐱 + 𝐡ᵀ𝐱 subject to 𝐀𝚕𝚋 ≤ 𝐀𝐱 ≤ 𝐀𝚞𝚋
//
// with optional per-variable box bounds. A constraint with equal lower
// and upper bounds is an equality. The box bounds are materialized as
// an additional block of identity rows appended to the general block,
// so constraint index m+i refers to variable i.
type Problem struct {
	N        int       // The problem dimension
	Hessian  []float64 // n×n row-major; content per Parameters.HessianType
	Gradient []float64 // 𝐡, may be nil for a zero gradient
	M        int       // The number of general constraints
	A        []float64 // m×n row-major general constraint matrix
	Lower    []float64 // 𝐀𝚕𝚋, componentwise lower bounds on 𝐀𝐱
	Upper    []float64 // 𝐀𝚞𝚋, componentwise upper bounds on 𝐀𝐱
	Bounds   []Bound   // Optional simple bounds 𝒍ᵢ ≤ 𝐱ᵢ ≤ 𝒖ᵢ
}

// Result contains the final state of one Solve call.
type Result struct {
	Status ReturnStatus
	// The primal solution. Trustworthy only when Status is StatusOK.
	Primal []float64
	// Original indices of the active constraints in activation order,
	// equalities first. Index m+i refers to the bound of variable i.
	Active []int
	// Lagrange multipliers of the active constraints, aligned with
	// Active. Entries of equality constraints are left at zero.
	Dual    []float64
	NumIter int
}

// New validates the problem and creates a solver for it.
// A nil logger disables tracing.
func (p *Problem) New(logger *Logger) (*Solver, error) {

	if logger == nil {
		logger = &Logger{Level: LogNoop}
	}
	if logger.Msg == nil {
		logger.Msg = os.Stdout
	}

	n, m := p.N, p.M

	var err error
	switch {
	case n <= 0:
		err = errors.New("problem dimension must greater than 0")
	case len(p.Hessian) != n*n:
		err = errors.New("hessian size must equal to n×n")
	case p.Gradient != nil && len(p.Gradient) != n:
		err = errors.New("gradient size must equal to n")
	case m < 0:
		err = errors.New("constraint number must not less than 0")
	case len(p.A) != m*n:
		err = errors.New("constraint matrix size must equal to m×n")
	case len(p.Lower) != m || len(p.Upper) != m:
		err = errors.New("constraint bound size must equal to m")
	case p.Bounds != nil && len(p.Bounds) != n:
		err = errors.New("bound size must equal to n")
	}
	if err != nil {
		return nil, err
	}

	mt := m
	if p.Bounds != nil {
		mt += n
	}

	s := &Solver{
		n: n, m: m, mt: mt,
		hessian:  p.Hessian,
		gradient: p.Gradient,
		log:      logger,
	}

	if mt > 0 {
		s.a = make([]float64, mt*n)
		s.alb = make([]float64, mt)
		s.aub = make([]float64, mt)
		copy(s.a, p.A)
		for i := 0; i < m; i++ {
			if s.alb[i], s.aub[i], err = normalizeBounds(p.Lower[i], p.Upper[i]); err != nil {
				return nil, fmt.Errorf("general constraint %d: %w", i, err)
			}
		}
		for i, b := range p.Bounds {
			s.a[(m+i)*n+i] = one
			if s.alb[m+i], s.aub[m+i], err = normalizeBounds(b.Lower, b.Upper); err != nil {
				return nil, fmt.Errorf("bound %d: %w", i, err)
			}
		}
	}

	return s, nil
}

// normalizeBounds maps absent sides to ∓∞ and rejects the
// wrong-signed infinities that would poison the equality test.
func normalizeBounds(lower, upper float64) (float64, float64, error) {
	if math.IsNaN(lower) {
		lower = math.Inf(-1)
	}
	if math.IsNaN(upper) {
		upper = math.Inf(1)
	}
	if math.IsInf(lower, 1) || math.IsInf(upper, -1) {
		return lower, upper, errors.New("infinite bound has wrong sign")
	}
	return lower, upper, nil
}
