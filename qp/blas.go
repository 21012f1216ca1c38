// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import "math"

// ddot computes the dot product of two contiguous vectors.
func ddot(n int, x, y []float64) (dot float64) {
	if n <= 0 {
		return zero
	}
	if n > len(x) || n > len(y) {
		panic("bound check error")
	}
	for i, v := range x[:n] {
		dot += v * y[i]
	}
	return dot
}

// daxpy performs constant times a vector plus a vector operation.
func daxpy(n int, da float64, x, y []float64) {
	if n <= 0 || da == zero {
		return
	}
	if n > len(x) || n > len(y) {
		panic("bound check error")
	}
	y = y[:n]
	for i, v := range x[:n] {
		y[i] += da * v
	}
}

// dnrm2 computes the Euclidean norm of a contiguous vector.
func dnrm2(n int, x []float64) float64 {
	if n <= 0 {
		return zero
	}
	if n > len(x) {
		panic("bound check error")
	}
	scale, ssq := zero, one
	for _, v := range x[:n] {
		if absv := math.Abs(v); absv > zero {
			if scale < absv {
				sv := scale / absv
				ssq = 1 + ssq*sv*sv
				scale = absv
			} else {
				sv := absv / scale
				ssq += sv * sv
			}
		}
	}
	return scale * math.Sqrt(ssq)
}

// dzero fills vector x with zero.
func dzero(x []float64) {
	for i := range x {
		x[i] = zero
	}
}

// dropElement shifts v[i+1:size] one position left, leaving v[size-1] stale.
func dropElement(v []float64, i, size int) {
	if i < 0 || i >= size || size > len(v) {
		panic("bound check error")
	}
	copy(v[i:size-1], v[i+1:size])
}
