// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import (
	"errors"
	"fmt"
	"math"
)

// Solver minimizes a strictly convex quadratic objective over two-sided
// linear constraints with the dual active-set method of Goldfarb and
// Idnani.
//
// The iteration starts from the unconstrained minimizer 𝐱 = -𝐇⁻¹𝐡,
// which is dual feasible, and walks towards primal feasibility. Each
// outer iteration picks the most violated constraint and moves along
//   - a primal direction 𝐩 in the null space of the active normals,
//     chosen so that moving along it reduces the violation,
//   - a dual direction 𝐳 describing the induced change of the
//     multipliers of the active inequalities.
//
// The step length is the smaller of
//   - the full step τ₁ = -𝑣/𝐜𝐩 that makes the candidate feasible,
//   - the partial step τ₂ = 𝚖𝚒𝚗 { -𝛍ᵢ/𝐳ᵢ : 𝐳ᵢ < 0 } at which the
//     multiplier of an active inequality would turn negative.
//
// A full step activates the candidate; a partial step deactivates the
// blocking constraint and the candidate stays chosen. When the active
// set is full or the candidate normal is linearly dependent on the
// active ones, only the dual variables can move; if no blocking
// constraint exists in that situation the problem is infeasible.
//
// Equality constraints are forced into the active set before the main
// loop in their input order and are never deactivated.
//
// A Solver is not safe for concurrent use; distinct Solver values are
// independent.
//
// D. Goldfarb, A. Idnani, 'A numerically stable dual method for solving
// strictly convex quadratic programs', Mathematical Programming 27, 1983.
type Solver struct {
	n  int // number of variables
	m  int // number of general constraints
	mt int // general constraints plus materialized simple bounds

	hessian  []float64 // n×n row-major, factored in place by Solve
	gradient []float64 // n, may be nil
	a        []float64 // mt×n row-major combined constraint block
	alb, aub []float64 // mt

	log *Logger

	// The heap state below is allocated on first need within a Solve
	// call and reused by subsequent calls after a guard reset.
	machineryInitialized bool
	activeSet            activeSet
	factorization        factorizationData
	dual                 []float64
	primalStep           []float64
	dualStep             []float64
	ctrStatus            []ConstraintStatus
	iter                 int
}

func (s *Solver) ctrRow(i int) []float64 {
	return s.a[i*s.n : (i+1)*s.n]
}

func (s *Solver) initializeMachineryLazy() {
	if !s.machineryInitialized {
		s.activeSet.initialize(s.n)
		s.factorization.initialize(s.hessian, s.n)
		if len(s.primalStep) != s.n {
			s.primalStep = make([]float64, s.n)
		}
		s.machineryInitialized = true
	}
}

// Solve runs the active-set iteration and returns the final state.
//
// The Hessian held by the problem is factored in place on the first
// call; a repeated Solve on the same Solver must therefore pass
// HessianCholeskyFactor. Infeasibility and the iteration cap are
// reported through Result.Status, malformed input through the error.
func (s *Solver) Solve(param Parameters) (*Result, error) {

	if !(param.Tolerance > zero) {
		return nil, errors.New("tolerance must greater than 0")
	}
	tol := param.Tolerance

	switch param.HessianType {
	case HessianLowerTriangular:
		if err := choleskyFactor(s.hessian, s.n); err != nil {
			return nil, err
		}
	case HessianCholeskyFactor:
	default:
		return nil, errors.New("malformed solver parameters")
	}

	s.machineryInitialized = false
	s.activeSet.initialize(s.n)
	s.iter = 0

	// unconstrained optimum
	primal := make([]float64, s.n)
	if s.gradient != nil {
		choleskySolve(primal, s.hessian, s.gradient, s.n)
	}

	if s.mt == 0 {
		return s.result(StatusOK, primal), nil
	}

	if len(s.ctrStatus) != s.mt {
		s.ctrStatus = make([]ConstraintStatus, s.mt)
	}

	// check consistency of the constraints and activate equalities
	numEqualities := 0
	for i := 0; i < s.mt; i++ {
		if s.alb[i]-tol > s.aub[i] {
			s.ctrStatus[i] = ConstraintInconsistent
			return nil, fmt.Errorf("inconsistent bounds of constraint %d", i)
		}
		if math.Abs(s.alb[i]-s.aub[i]) > tol {
			s.ctrStatus[i] = ConstraintInactive
			continue
		}

		s.ctrStatus[i] = ConstraintEquality
		numEqualities++

		ctr := s.ctrRow(i)
		violation := s.alb[i] - ddot(s.n, ctr, primal)

		s.initializeMachineryLazy()

		// once n constraints are activated every further
		// constraint is linearly dependent on the active ones
		if s.activeSet.hasEmptySpace() {
			s.factorization.computeEqualityPrimalStep(s.primalStep, ctr, s.activeSet.size)

			// a zero step direction means the normal lies in the
			// span of the previously activated constraints
			if rho := ddot(s.n, ctr, s.primalStep); rho < -tol {
				daxpy(s.n, violation/rho, s.primalStep, primal)
				if !s.factorization.update(s.activeSet.size, tol) {
					return nil, errors.New("failed to add an equality constraint")
				}
				s.activeSet.addEquality(i)
				continue
			}
		}

		// linearly dependent: acceptable only when already satisfied
		if math.Abs(violation) > tol {
			return s.result(StatusInfeasibleEquality, primal), nil
		}
	}

	if numEqualities == s.mt {
		return s.result(StatusOK, primal), nil
	}

	if len(s.dual) != s.n {
		s.dual = make([]float64, s.n)
		s.dualStep = make([]float64, s.n)
	} else {
		dzero(s.dual)
	}

	chosen := s.chooseConstraint(primal, tol)
	status := StatusMaxIterations

	for iter := 0; iter < param.MaxIterations || param.MaxIterations < 0; iter++ {
		s.iter = iter + 1
		s.traceIteration(primal, &chosen)

		if math.Abs(chosen.violation) < tol {
			status = StatusOK
			break
		}

		s.initializeMachineryLazy()

		ctr := s.ctrRow(chosen.index)
		if s.activeSet.hasEmptySpace() {
			s.factorization.computeInequalitySteps(s.primalStep, s.dualStep, ctr, chosen.ctype, &s.activeSet)
		} else {
			// the primal vector cannot change until something drops
			s.factorization.computeInequalityDualStep(s.dualStep, ctr, chosen.ctype, &s.activeSet)
		}

		// length of the step at which an active inequality would
		// turn dual infeasible, with the blocking position
		blocking := s.n
		dualStepLength := math.Inf(1)
		for i := s.activeSet.numEqualities; i < s.activeSet.size; i++ {
			if s.dualStep[i] < -tol {
				if l := -s.dual[i] / s.dualStep[i]; l < dualStepLength {
					dualStepLength = l
					blocking = i
				}
			}
		}

		if s.activeSet.hasEmptySpace() {
			// a zero primal direction means the candidate normal is
			// linearly dependent on the active ones
			if ctrDotPrimal := ddot(s.n, ctr, s.primalStep); math.Abs(ctrDotPrimal) > tol {
				stepLength := -chosen.violation / ctrDotPrimal
				if stepLength < zero || dualStepLength < zero {
					return nil, errors.New("non-negative step lengths expected")
				}
				partial := dualStepLength <= stepLength
				if partial {
					stepLength = dualStepLength
				}
				s.traceStep(stepLength, dualStepLength, partial)

				ne, q := s.activeSet.numEqualities, s.activeSet.size
				daxpy(s.n, stepLength, s.primalStep, primal)
				daxpy(q-ne, stepLength, s.dualStep[ne:], s.dual[ne:])
				chosen.dual += stepLength
				chosen.violation += stepLength * ctrDotPrimal

				if !s.factorization.update(q, tol) {
					return nil, errors.New("failed to add an inequality constraint")
				}

				// a violation close to zero means a full step was made
				if partial && math.Abs(chosen.violation) > tol {
					s.deactivate(blocking, tol)
					// the candidate stays chosen
				} else {
					s.ctrStatus[chosen.index] = chosen.ctype
					s.dual[q] = chosen.dual
					s.activeSet.addInequality(chosen.index)
					chosen = s.chooseConstraint(primal, tol)
				}
				continue
			}
		}

		if blocking == s.n {
			// nothing to deactivate and the primal vector cannot
			// move: no feasible point exists
			status = StatusInfeasibleInequality
			break
		}

		s.traceStep(dualStepLength, dualStepLength, true)
		ne, q := s.activeSet.numEqualities, s.activeSet.size
		daxpy(q-ne, dualStepLength, s.dualStep[ne:], s.dual[ne:])
		chosen.dual += dualStepLength
		s.deactivate(blocking, tol)
	}

	return s.result(status, primal), nil
}

// deactivate drops the active inequality at the given position.
func (s *Solver) deactivate(blocking int, tol float64) {
	s.traceDeactivate(blocking)
	s.ctrStatus[s.activeSet.getIndex(blocking)] = ConstraintInactive
	dropElement(s.dual, blocking, s.activeSet.size)
	s.factorization.downdate(blocking, s.activeSet.size, tol)
	s.activeSet.removeInequality(blocking)
}

func (s *Solver) result(status ReturnStatus, primal []float64) *Result {
	q := s.activeSet.size
	res := &Result{
		Status:  status,
		Primal:  primal,
		Active:  make([]int, q),
		Dual:    make([]float64, q),
		NumIter: s.iter,
	}
	copy(res.Active, s.activeSet.indices[:q])
	if s.dual != nil {
		ne := s.activeSet.numEqualities
		copy(res.Dual[ne:], s.dual[ne:q])
	}
	s.traceResult(res)
	return res
}
