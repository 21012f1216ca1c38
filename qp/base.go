// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

const (
	zero = 0.0
	one  = 1.0
	eps  = float64(7)/3 - float64(4)/3 - 1.
)

// ReturnStatus reports the outcome of a Solve call.
type ReturnStatus int

const (
	// StatusOK problem solved successfully.
	StatusOK ReturnStatus = iota
	// StatusInfeasibleEquality equality constraints are mutually inconsistent.
	StatusInfeasibleEquality
	// StatusInfeasibleInequality inequality constraints admit no feasible point.
	StatusInfeasibleInequality
	// StatusMaxIterations iteration limit reached before convergence.
	StatusMaxIterations
)

func (s ReturnStatus) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusInfeasibleEquality:
		return "infeasible equality constraints"
	case StatusInfeasibleInequality:
		return "infeasible inequality constraints"
	case StatusMaxIterations:
		return "maximal number of iterations"
	}
	return "unknown status"
}

// ConstraintStatus tracks the state of one constraint across the iteration.
type ConstraintStatus int

const (
	// ConstraintInactive constraint is satisfied and not imposed.
	ConstraintInactive ConstraintStatus = iota
	// ConstraintEquality constraint has equal bounds and is permanently imposed.
	ConstraintEquality
	// ConstraintActiveLower lower bound is imposed with equality.
	ConstraintActiveLower
	// ConstraintActiveUpper upper bound is imposed with equality.
	ConstraintActiveUpper
	// ConstraintViolated constraint is known to be violated at the current iterate.
	ConstraintViolated
	// ConstraintInconsistent lower bound exceeds upper bound on input.
	ConstraintInconsistent
)

// HessianType describes the content of Problem.Hessian on input.
type HessianType int

const (
	// HessianLowerTriangular the lower triangle holds the symmetric Hessian 𝐇,
	// a Cholesky factorization is performed in place.
	HessianLowerTriangular HessianType = iota
	// HessianCholeskyFactor the lower triangle already holds 𝐋 with 𝐇 = 𝐋𝐋ᵀ.
	HessianCholeskyFactor
)

// Parameters control a single Solve call.
type Parameters struct {
	// Content of the Hessian on input.
	HessianType HessianType
	// The iteration stops once the number of iterations reaches limit.
	// A negative limit disables the check.
	MaxIterations int
	// Threshold below which reals are treated as zero.
	Tolerance float64
}

// DefaultParameters returns the parameters used by Solve
// when the caller has no special requirements.
func DefaultParameters() Parameters {
	return Parameters{
		HessianType:   HessianLowerTriangular,
		MaxIterations: -1,
		Tolerance:     1e-12,
	}
}
