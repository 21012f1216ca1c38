// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestTracing(t *testing.T) {

	p := &Problem{
		N:       1,
		Hessian: []float64{1},
		M:       1,
		A:       []float64{1},
		Lower:   []float64{1},
		Upper:   []float64{math.Inf(1)},
	}

	var buf bytes.Buffer
	s, err := p.New(&Logger{Level: LogCheck, Msg: &buf})
	if err != nil {
		t.Fatal(err)
	}

	res, err := s.Solve(DefaultParameters())
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	switch {
	case res.Status != StatusOK:
		t.Fatal("tracing must not change the outcome")
	case !almostEqual(res.Primal, []float64{1}, 1e-12):
		t.Fatal("tracing must not change the solution")
	case !strings.Contains(out, "Chosen ctr index"):
		t.Fatal("iteration trace missing")
	case !strings.Contains(out, "Status = OK"):
		t.Fatal("final trace missing")
	case strings.Contains(out, "WARNING"):
		t.Fatal("multiplier recheck must pass")
	}

	// a silent solver writes nothing
	buf.Reset()
	s, err = p.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	param := DefaultParameters()
	param.HessianType = HessianCholeskyFactor
	if _, err = s.Solve(param); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatal("no-op logger must stay silent")
	}
}
