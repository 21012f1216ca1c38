// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

// activeSet records which constraint indices are currently imposed with
// equality and in what order. Equalities occupy positions [0, numEqualities),
// inequalities [numEqualities, size), with size ≤ the primal dimension.
type activeSet struct {
	size            int
	numEqualities   int
	numInequalities int
	indices         []int
}

func (as *activeSet) initialize(primalSize int) {
	as.size = 0
	as.numEqualities = 0
	as.numInequalities = 0
	if len(as.indices) != primalSize {
		as.indices = make([]int, primalSize)
	}
}

// hasEmptySpace reports whether another constraint can be activated.
func (as *activeSet) hasEmptySpace() bool {
	return as.size < len(as.indices)
}

func (as *activeSet) addEquality(index int) {
	if !as.hasEmptySpace() || as.numInequalities > 0 {
		panic("bound check error")
	}
	as.indices[as.size] = index
	as.size++
	as.numEqualities++
}

func (as *activeSet) addInequality(index int) {
	if !as.hasEmptySpace() {
		panic("bound check error")
	}
	as.indices[as.size] = index
	as.size++
	as.numInequalities++
}

// removeInequality drops the constraint at position pos, shifting the
// tail left so the insertion order of the remaining inequalities is
// preserved. Equalities are never removed.
func (as *activeSet) removeInequality(pos int) {
	if pos < as.numEqualities || pos >= as.size {
		panic("bound check error")
	}
	copy(as.indices[pos:as.size-1], as.indices[pos+1:as.size])
	as.size--
	as.numInequalities--
}

// getIndex returns the original constraint index at position pos.
func (as *activeSet) getIndex(pos int) int {
	if pos < 0 || pos >= as.size {
		panic("bound check error")
	}
	return as.indices[pos]
}
