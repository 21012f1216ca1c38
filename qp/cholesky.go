// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import (
	"errors"
	"math"
)

// choleskyFactor computes 𝐇 = 𝐋𝐋ᵀ in place for the symmetric positive
// definite matrix stored row-major in h, reading and writing only the
// lower triangle. The strict upper triangle is left untouched.
func choleskyFactor(h []float64, n int) error {
	if n*n > len(h) {
		panic("bound check error")
	}
	for k := 0; k < n; k++ {
		hk := h[k*n : k*n+k+1]
		akk := hk[k] - ddot(k, hk, hk)
		if akk <= zero {
			return errors.New("hessian is not positive definite")
		}
		akk = math.Sqrt(akk)
		hk[k] = akk
		for i := k + 1; i < n; i++ {
			hi := h[i*n : i*n+k+1]
			hi[k] = (hi[k] - ddot(k, hi, hk)) / akk
		}
	}
	return nil
}

// choleskySolve solves 𝐋𝐋ᵀ𝐱 = -𝐠 by forward and back substitution
// against the row-major lower-triangular factor l.
func choleskySolve(x, l, g []float64, n int) {
	if n > len(x) || n > len(g) || n*n > len(l) {
		panic("bound check error")
	}
	for i := 0; i < n; i++ {
		li := l[i*n : i*n+i+1]
		x[i] = (-g[i] - ddot(i, li, x)) / li[i]
	}
	for i := n - 1; i >= 0; i-- {
		s := x[i]
		for j := i + 1; j < n; j++ {
			s -= l[j*n+i] * x[j]
		}
		x[i] = s / l[i*n+i]
	}
}

// triangularInversion writes 𝐋⁻ᵀ into the column-major matrix j given
// the row-major lower-triangular factor l. The result is upper
// triangular: column k of j holds row k of 𝐋⁻¹ in its leading k+1
// entries. Entries below the diagonal of j must be zero on entry.
func triangularInversion(j, l []float64, n int) {
	if n*n > len(j) || n*n > len(l) {
		panic("bound check error")
	}
	for i := 0; i < n; i++ {
		j[i+i*n] = one / l[i*n+i]
		for r := i + 1; r < n; r++ {
			lr := l[r*n : r*n+r+1]
			t := zero
			for k := i; k < r; k++ {
				t += lr[k] * j[i+k*n]
			}
			j[i+r*n] = -t / lr[r]
		}
	}
}
