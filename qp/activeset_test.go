// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import "testing"

func TestActiveSet(t *testing.T) {

	var as activeSet
	as.initialize(4)

	if !as.hasEmptySpace() {
		t.Fatal("fresh set must have space")
	}

	as.addEquality(7)
	as.addEquality(3)
	as.addInequality(5)
	as.addInequality(9)

	switch {
	case as.size != 4 || as.numEqualities != 2 || as.numInequalities != 2:
		t.Fatal("size bookkeeping broken")
	case as.hasEmptySpace():
		t.Fatal("full set must have no space")
	case as.getIndex(0) != 7 || as.getIndex(2) != 5:
		t.Fatal("insertion order broken")
	}

	// dropping the first inequality preserves the order of the rest
	as.removeInequality(2)
	switch {
	case as.size != 3 || as.numInequalities != 1:
		t.Fatal("removal bookkeeping broken")
	case as.getIndex(2) != 9:
		t.Fatal("tail not shifted")
	case !as.hasEmptySpace():
		t.Fatal("removal must free space")
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("removing an equality must panic")
			}
		}()
		as.removeInequality(1)
	}()
}
