// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import (
	"math"
	"reflect"

	"gonum.org/v1/gonum/mat"
)

func almostEqual[T float64 | []float64](a, b T, tol float64) bool {
	equalWithinAbs := func(a, b float64) bool {
		return a == b || math.Abs(a-b) <= tol
	}
	switch reflect.TypeOf(a).Kind() {
	case reflect.Float64:
		return equalWithinAbs(any(a).(float64), any(b).(float64))
	case reflect.Slice:
		a, b := any(a).([]float64), any(b).([]float64)
		if len(a) != len(b) {
			return false
		}
		for i, a := range a {
			if !equalWithinAbs(a, b[i]) {
				return false
			}
		}
		return true
	default:
		panic("unknown type")
	}
}

// generate a deterministic pseudo-random value with noise added.
type randGen struct {
	i, j int
	aj   float64
}

// generate next random value with noise added.
// anoise determines the level of "noise" to be added to the data.
func (g *randGen) next(anoise float64) float64 {

	const (
		mi = 891
		mj = 457
	)

	if anoise < zero {
		g.i = 5
		g.j = 7
		g.aj = zero
		return zero
	}

	if anoise > zero {
		g.j = g.j * mj
		g.j = g.j - 997*(g.j/997)
		g.aj = float64(g.j - 498)
	}

	g.i = g.i * mi
	g.i = g.i - 1000*(g.i/1000)
	return float64(g.i-500) + g.aj*anoise
}

// randomSPD builds a full symmetric positive definite n×n matrix
// 𝐇 = 𝐁ᵀ𝐁 + n𝐈 from the deterministic generator.
func randomSPD(g *randGen, n int) []float64 {
	b := make([]float64, n*n)
	for i := range b {
		b[i] = g.next(0.0001) / 500
	}
	h := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			t := zero
			for k := 0; k < n; k++ {
				t += b[k*n+i] * b[k*n+j]
			}
			if i == j {
				t += float64(n)
			}
			h[i*n+j], h[j*n+i] = t, t
		}
	}
	return h
}

func randomVector(g *randGen, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = g.next(0.0001) / 250
	}
	return v
}

// identityError measures 𝚖𝚊𝚡|𝐉ᵀ𝐇𝐉 - 𝐈| against the full symmetric
// matrix h. The column-major factorization buffer is the row-major
// transpose, so the product is formed as (𝐉ᵀ)𝐇(𝐉ᵀ)ᵀ.
func identityError(f *factorizationData, h []float64, n int) float64 {
	jt := mat.NewDense(n, n, f.j)
	hm := mat.NewDense(n, n, h)
	var p, q mat.Dense
	p.Mul(jt, hm)
	q.Mul(&p, jt.T())
	maxErr := zero
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := zero
			if i == j {
				want = one
			}
			if e := math.Abs(q.At(i, j) - want); e > maxErr {
				maxErr = e
			}
		}
	}
	return maxErr
}

// triangularError measures the largest entry below the diagonal in the
// leading cols columns of the column-major matrix r.
func triangularError(r []float64, n, cols int) float64 {
	maxErr := zero
	for c := 0; c < cols; c++ {
		for i := c + 1; i < n; i++ {
			if e := math.Abs(r[i+c*n]); e > maxErr {
				maxErr = e
			}
		}
	}
	return maxErr
}
