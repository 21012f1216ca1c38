// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import "math"

// givensReflection holds a 2×2 plane rotation
//
//	G ⎡x₁⎤ ≡ ⎡ c -s⎤⎡x₁⎤ = ⎡(x₁²+x₂²)¹ᐟ²⎤ ≡ ⎡r⎤
//	  ⎣x₂⎦   ⎣ s  c⎦⎣x₂⎦   ⎣     ０     ⎦   ⎣0⎦
//
// which is computed once per pair and then applied over
// row or column ranges of a dense column-major matrix.
type givensReflection struct {
	cos, sin float64
}

// computeAndApply chooses (c, s) so that rotating (a, b) zeroes b,
// stores the rotated pair back through the pointers and retains
// (c, s) for subsequent applications.
// When b is already zero the rotation is the identity.
func (g *givensReflection) computeAndApply(a, b *float64) {
	if *b == zero {
		g.cos, g.sin = one, zero
		return
	}
	r := math.Hypot(*a, *b)
	g.cos, g.sin = *a/r, -*b/r
	*a, *b = r, zero
}

// applyColumnWise rotates the row pairs (m[r,colA], m[r,colB]) for
// r ∈ [rowStart, rowEnd) where m is column-major with ld rows.
func (g *givensReflection) applyColumnWise(m []float64, ld, rowStart, rowEnd, colA, colB int) {
	if g.cos == one && g.sin == zero {
		return
	}
	if rowEnd > ld || colA*ld+rowEnd > len(m) || colB*ld+rowEnd > len(m) {
		panic("bound check error")
	}
	ca := m[colA*ld : colA*ld+rowEnd]
	cb := m[colB*ld : colB*ld+rowEnd]
	for r := rowStart; r < rowEnd; r++ {
		x, y := ca[r], cb[r]
		ca[r] = g.cos*x - g.sin*y
		cb[r] = g.sin*x + g.cos*y
	}
}

// applyRowWise rotates the column pairs (m[rowA,c], m[rowB,c]) for
// c ∈ [colStart, colEnd) where m is column-major with ld rows.
func (g *givensReflection) applyRowWise(m []float64, ld, colStart, colEnd, rowA, rowB int) {
	if g.cos == one && g.sin == zero {
		return
	}
	if colEnd > 0 && (colEnd-1)*ld+max(rowA, rowB) >= len(m) {
		panic("bound check error")
	}
	for c := colStart; c < colEnd; c++ {
		x, y := m[rowA+c*ld], m[rowB+c*ld]
		m[rowA+c*ld] = g.cos*x - g.sin*y
		m[rowB+c*ld] = g.sin*x + g.cos*y
	}
}
