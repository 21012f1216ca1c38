// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import (
	"fmt"
	"io"
)

// LogLevel controls the frequency and type of logger output
type LogLevel int

const (
	// LogNoop no output is generated (level < 0)
	LogNoop LogLevel = -1
	// LogIter print the chosen constraint of every iteration
	LogIter LogLevel = 1
	// LogStep print also step lengths and active-set changes
	LogStep LogLevel = 2
	// LogCheck print also the objective value and recheck the
	// Lagrange multipliers at the final iterate
	LogCheck LogLevel = 3
)

// Logger handles diagnostic output for the solver.
// The checks behind LogCheck only report, they never alter the
// iteration.
type Logger struct {
	Level LogLevel
	Msg   io.Writer // Writer to output log messages.
}

func (l *Logger) enable(level LogLevel) bool {
	return l.Level >= level
}

func (l *Logger) log(format string, a ...any) {
	if len(a) > 0 {
		_, _ = fmt.Fprintf(l.Msg, format, a...)
	} else {
		_, _ = fmt.Fprint(l.Msg, format)
	}
}

func (s *Solver) traceIteration(primal []float64, chosen *chosenConstraint) {
	if !s.log.enable(LogIter) {
		return
	}
	s.log.log(">>>>>>>>> %d <<<<<<<<<\n", s.iter-1)
	s.log.log("||| Chosen ctr index = %d\n", chosen.index)
	s.log.log("||| Chosen ctr dual = %v\n", chosen.dual)
	s.log.log("||| Chosen ctr violation = %v\n", chosen.violation)
	if s.log.enable(LogCheck) {
		s.log.log("||| Objective = %v\n", s.objective(primal))
	}
}

func (s *Solver) traceStep(stepLength, dualStepLength float64, partial bool) {
	if !s.log.enable(LogStep) {
		return
	}
	kind := "FULL"
	if partial {
		kind = "PARTIAL"
	}
	s.log.log("||| %s STEP length = %v (dual %v)\n", kind, stepLength, dualStepLength)
}

func (s *Solver) traceDeactivate(blocking int) {
	if !s.log.enable(LogStep) {
		return
	}
	s.log.log("||| Deactivate ctr index = %d\n", s.activeSet.getIndex(blocking))
}

func (s *Solver) traceResult(res *Result) {
	if !s.log.enable(LogCheck) {
		return
	}
	s.log.log("||| Status = %v after %d iterations\n", res.Status, res.NumIter)
	for p, i := range res.Active {
		s.log.log("||| Active ctr %d status = %d dual = %v\n", i, s.ctrStatus[i], res.Dual[p])
		if s.ctrStatus[i] != ConstraintEquality && res.Dual[p] < zero {
			s.log.log("||| WARNING: negative multiplier\n")
		}
	}
	if res.Status == StatusOK && s.activeSet.numEqualities == 0 {
		s.log.log("||| Stationarity residual = %v\n", s.stationarityResidual(res))
	}
}

// objective evaluates ½𝐱ᵀ𝐇𝐱 + 𝐡ᵀ𝐱 through the Cholesky factor:
// 𝐱ᵀ𝐇𝐱 = ‖𝐋ᵀ𝐱‖₂².
func (s *Solver) objective(primal []float64) float64 {
	n := s.n
	obj := zero
	for i := 0; i < n; i++ {
		t := zero
		for j := i; j < n; j++ {
			t += s.hessian[j*n+i] * primal[j]
		}
		obj += t * t
	}
	obj /= 2
	if s.gradient != nil {
		obj += ddot(n, s.gradient, primal)
	}
	return obj
}

// stationarityResidual recomputes ‖𝐇𝐱 + 𝐡 + ∑ ±𝛍ᵢ𝐚ᵢ‖₂ from scratch,
// with the sign of each active row given by its bound type.
func (s *Solver) stationarityResidual(res *Result) float64 {
	n := s.n
	r := make([]float64, n)
	// 𝐇𝐱 = 𝐋(𝐋ᵀ𝐱)
	t := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			t[i] += s.hessian[j*n+i] * res.Primal[j]
		}
	}
	for i := 0; i < n; i++ {
		r[i] = ddot(i+1, s.hessian[i*n:], t)
	}
	if s.gradient != nil {
		daxpy(n, one, s.gradient, r)
	}
	for p, i := range res.Active {
		mu := res.Dual[p]
		if s.ctrStatus[i] == ConstraintActiveLower {
			mu = -mu
		}
		daxpy(n, mu, s.ctrRow(i), r)
	}
	return dnrm2(n, r)
}
