package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

type TTestResult struct {
	T      float64
	DF     float64
	PValue float64
}

// TTest runs a two-sided two-sample t-test for independent samples.
// With equalVar the pooled variance (Student) is used, otherwise Welch's
// approximation.
func TTest(a, b []float64, equalVar bool) (TTestResult, error) {
	n1, n2 := float64(len(a)), float64(len(b))
	if len(a) < 2 || len(b) < 2 {
		return TTestResult{}, fmt.Errorf("%w: %d and %d observations", ErrInsufficientSample, len(a), len(b))
	}

	m1, v1 := stat.MeanVariance(a, nil)
	m2, v2 := stat.MeanVariance(b, nil)

	var se, df float64
	if equalVar {
		df = n1 + n2 - 2
		pooled := ((n1-1)*v1 + (n2-1)*v2) / df
		se = math.Sqrt(pooled * (1/n1 + 1/n2))
	} else {
		q1, q2 := v1/n1, v2/n2
		se = math.Sqrt(q1 + q2)
		df = (q1 + q2) * (q1 + q2) / (q1*q1/(n1-1) + q2*q2/(n2-1))
	}

	if se == 0 || math.IsNaN(se) || math.IsInf(se, 0) {
		return TTestResult{}, fmt.Errorf("%w: standard error is %g", ErrZeroVariance, se)
	}

	t := (m1 - m2) / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	return TTestResult{
		T:      t,
		DF:     df,
		PValue: 2 * dist.CDF(-math.Abs(t)),
	}, nil
}
