// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import "math"

// chosenConstraint is the candidate produced by the per-iteration scan:
// the not-yet-active constraint with the largest absolute violation.
type chosenConstraint struct {
	violation float64
	dual      float64
	index     int
	ctype     ConstraintStatus
}

// chooseConstraint scans every constraint that is currently inactive or
// violated, retests it against the current iterate and keeps the one
// with the largest absolute violation, ties broken by the lower index.
// A zero violation in the result means every constraint is satisfied.
func (s *Solver) chooseConstraint(primal []float64, tolerance float64) (chosen chosenConstraint) {
	for i := 0; i < s.mt; i++ {
		status := s.ctrStatus[i]
		if status != ConstraintInactive && status != ConstraintViolated {
			continue
		}
		v := ddot(s.n, s.ctrRow(i), primal)
		if s.alb[i]-tolerance > v {
			s.ctrStatus[i] = ConstraintViolated
			if v -= s.alb[i]; math.Abs(v) > math.Abs(chosen.violation) {
				chosen.ctype = ConstraintActiveLower
				chosen.violation = v
				chosen.index = i
			}
		} else if s.aub[i]+tolerance < v {
			s.ctrStatus[i] = ConstraintViolated
			if v -= s.aub[i]; math.Abs(v) > math.Abs(chosen.violation) {
				chosen.ctype = ConstraintActiveUpper
				chosen.violation = v
				chosen.index = i
			}
		} else {
			s.ctrStatus[i] = ConstraintInactive
		}
	}
	return chosen
}
