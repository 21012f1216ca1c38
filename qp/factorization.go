// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import "math"

// factorizationData maintains the pair (𝐉, 𝐑) at the core of the dual
// active-set iteration.
//
// Given the Cholesky factorization 𝐇 = 𝐋𝐋ᵀ, the matrix 𝐉 starts as 𝐋⁻ᵀ
// so that 𝐉ᵀ𝐇𝐉 = 𝐈. Every activation reflects the constraint normal
// into the factorization basis:
//
//	𝐝 = 𝐉ᵀ𝐜ᵀ
//
// and a chain of plane rotations restores 𝐑 to upper-triangular form,
// with the mirror column rotations applied to 𝐉 on the right so the
// identity 𝐉ᵀ𝐇𝐉 = 𝐈 is preserved. With q constraints active:
//   - the first q columns of 𝐉 span the reflected active normals,
//   - the trailing n-q columns of 𝐉 span their null space,
//   - the leading q×q block of 𝐑 is upper triangular,
//   - column q of 𝐑 is scratch for the next candidate.
//
// Both matrices are dense n×n in column-major order.
//
// D. Goldfarb, A. Idnani, 'A numerically stable dual method for solving
// strictly convex quadratic programs', Mathematical Programming 27, 1983.
type factorizationData struct {
	j          []float64 // n×n column-major, 𝐉 = 𝐋⁻ᵀ𝐐
	r          []float64 // n×n column-major, leading block upper triangular
	primalSize int
}

// initialize resets the factorization from the row-major Cholesky
// factor: 𝐉 := 𝐋⁻ᵀ, 𝐑 := 0.
func (f *factorizationData) initialize(chol []float64, primalSize int) {
	f.primalSize = primalSize
	if len(f.j) != primalSize*primalSize {
		f.j = make([]float64, primalSize*primalSize)
		f.r = make([]float64, primalSize*primalSize)
	} else {
		dzero(f.j)
		dzero(f.r)
	}
	triangularInversion(f.j, chol, primalSize)
}

// update absorbs the candidate normal held in column rCol of 𝐑 by
// chasing its trailing entries to zero with plane rotations from the
// bottom row up, mirroring each rotation onto the columns of 𝐉.
// It reports false when the new diagonal entry is below tolerance,
// which means the candidate is linearly dependent on the active set.
func (f *factorizationData) update(rCol int, tolerance float64) bool {
	n := f.primalSize
	col := f.r[rCol*n : rCol*n+n]
	var givens givensReflection
	for i := n - 1; i > rCol; i-- {
		givens.computeAndApply(&col[i-1], &col[i])
		givens.applyColumnWise(f.j, n, 0, n, i-1, i)
	}
	return math.Abs(col[rCol]) >= tolerance
}

// downdate removes column rColIndex from the active range of 𝐑. Each
// column to its right slides one position left, the subdiagonal bulge
// this creates is annihilated by a rotation of adjacent rows, and the
// mirror column rotations keep 𝐉 consistent.
func (f *factorizationData) downdate(rColIndex, rCols int, _ float64) {
	n := f.primalSize
	var givens givensReflection
	for i := rColIndex + 1; i < rCols; i++ {
		ci := f.r[i*n : i*n+n]
		givens.computeAndApply(&ci[i-1], &ci[i])
		givens.applyColumnWise(f.j, n, 0, n, i-1, i)
		givens.applyRowWise(f.r, n, i+1, rCols, i-1, i)
		copy(f.r[(i-1)*n:(i-1)*n+i], ci[:i])
	}
}

// reflectConstraint writes 𝐝 = ±𝐉ᵀ𝐜ᵀ into the scratch column q of 𝐑.
// The sign is flipped for a lower-bound activation so that the same
// update machinery serves both bound types.
func (f *factorizationData) reflectConstraint(ctr []float64, negate bool, q int) {
	n := f.primalSize
	d := f.r[q*n : q*n+n]
	for k := range d {
		v := ddot(n, f.j[k*n:], ctr)
		if negate {
			v = -v
		}
		d[k] = v
	}
}

// nullSpaceStep writes the primal direction 𝐩 = -𝐉₂𝐝₂ where 𝐉₂ holds
// the trailing n-q columns of 𝐉 and 𝐝₂ the trailing entries of the
// scratch column.
func (f *factorizationData) nullSpaceStep(step []float64, q int) {
	n := f.primalSize
	d := f.r[q*n : q*n+n]
	dzero(step[:n])
	for k := q; k < n; k++ {
		daxpy(n, -d[k], f.j[k*n:], step)
	}
}

// triangularSolve back-substitutes x[lo:hi] in place against the
// upper-triangular block 𝐑[lo:hi, lo:hi].
func (f *factorizationData) triangularSolve(x []float64, lo, hi int) {
	n := f.primalSize
	for i := hi - 1; i >= lo; i-- {
		s := x[i]
		for j := i + 1; j < hi; j++ {
			s -= f.r[i+j*n] * x[j]
		}
		x[i] = s / f.r[i+i*n]
	}
}

// computeEqualityPrimalStep produces the primal direction for an
// equality activation.
func (f *factorizationData) computeEqualityPrimalStep(step, ctr []float64, activeSetSize int) {
	f.reflectConstraint(ctr, false, activeSetSize)
	f.nullSpaceStep(step, activeSetSize)
}

// computeInequalitySteps produces both step directions for an
// inequality activation: the primal direction in the null space of the
// active normals and the induced change 𝐳 = -𝐑⁻¹𝐝 of the multipliers
// of the active inequalities.
func (f *factorizationData) computeInequalitySteps(primalStep, dualStep, ctr []float64, ctrType ConstraintStatus, as *activeSet) {
	q, ne := as.size, as.numEqualities
	f.reflectConstraint(ctr, ctrType == ConstraintActiveLower, q)
	f.nullSpaceStep(primalStep, q)
	d := f.r[q*f.primalSize:]
	copy(dualStep[ne:q], d[ne:q])
	f.triangularSolve(dualStep, ne, q)
	for i := ne; i < q; i++ {
		dualStep[i] = -dualStep[i]
	}
}

// computeInequalityDualStep produces the dual direction alone. It is
// reached only with a full active set, where the primal vector cannot
// move and column q of 𝐑 does not exist, so the reflected normal is
// formed directly in the dual vector.
func (f *factorizationData) computeInequalityDualStep(dualStep, ctr []float64, ctrType ConstraintStatus, as *activeSet) {
	n := f.primalSize
	q, ne := as.size, as.numEqualities
	negate := ctrType != ConstraintActiveLower
	for k := ne; k < q; k++ {
		v := ddot(n, f.j[k*n:], ctr)
		if negate {
			v = -v
		}
		dualStep[k] = v
	}
	f.triangularSolve(dualStep, ne, q)
}
