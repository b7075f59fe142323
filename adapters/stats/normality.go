package stats

import (
	"math"
	"sort"

	"statease/domain/analysis"
	"statease/internal/errors"
)

// ShapiroWilk runs the W test of normality on a single numeric variable,
// following Royston's AS R94 approximation. The supported sample range of
// 3 to 5000 observations is enforced upstream by the checker.
func ShapiroWilk(sel *analysis.ResolvedSelection) (analysis.TestResult, error) {
	w, p, err := shapiroWilkW(sel.Samples[0])
	if err != nil {
		return nil, err
	}
	return analysis.ShapiroWilkResult{Statistic: w, PValue: p, N: sel.N}, nil
}

func shapiroWilkW(xs []float64) (w, p float64, err error) {
	n := len(xs)
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if sorted[0] == sorted[n-1] {
		return 0, 0, errors.NumericalError("all values are identical; W statistic is undefined")
	}

	// Expected order statistics of the standard normal via Blom scores.
	m := make([]float64, n)
	sumM2 := 0.0
	for i := 0; i < n; i++ {
		m[i] = NormalQuantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		sumM2 += m[i] * m[i]
	}

	a := make([]float64, n)
	rsn := 1 / math.Sqrt(float64(n))
	if n == 3 {
		a[0] = -math.Sqrt(0.5)
		a[2] = math.Sqrt(0.5)
	} else {
		// Polynomial corrections to the two extreme weights.
		an := poly(rsn, 0, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056) + m[n-1]/math.Sqrt(sumM2)
		if n <= 5 {
			phi := (sumM2 - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
			sphi := math.Sqrt(phi)
			a[n-1] = an
			a[0] = -an
			for i := 1; i < n-1; i++ {
				a[i] = m[i] / sphi
			}
		} else {
			an1 := poly(rsn, 0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633) + m[n-2]/math.Sqrt(sumM2)
			phi := (sumM2 - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
			sphi := math.Sqrt(phi)
			a[n-1], a[n-2] = an, an1
			a[0], a[1] = -an, -an1
			for i := 2; i < n-2; i++ {
				a[i] = m[i] / sphi
			}
		}
	}

	xm := mean(sorted)
	num, den := 0.0, 0.0
	for i := 0; i < n; i++ {
		num += a[i] * sorted[i]
		d := sorted[i] - xm
		den += d * d
	}
	w = num * num / den
	if w > 1 {
		w = 1
	}

	return w, shapiroWilkPValue(w, n), nil
}

// shapiroWilkPValue maps W to a p-value through Royston's normalizing
// transforms; n=3 has an exact expression.
func shapiroWilkPValue(w float64, n int) float64 {
	if n == 3 {
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return clamp01(p)
	}

	lw := math.Log(1 - w)
	var z float64
	if n <= 11 {
		fn := float64(n)
		gamma := -2.273 + 0.459*fn
		mu := poly(fn, 0.5440, -0.39978, 0.025054, -0.0006714)
		sigma := math.Exp(poly(fn, 1.3822, -0.77857, 0.062767, -0.0020322))
		if gamma-lw <= 0 {
			return 0
		}
		z = (-math.Log(gamma-lw) - mu) / sigma
	} else {
		ln := math.Log(float64(n))
		mu := poly(ln, -1.5861, -0.31082, -0.083751, 0.0038915)
		sigma := math.Exp(poly(ln, -0.4803, -0.082676, 0.0030302))
		z = (lw - mu) / sigma
	}
	return clamp01(1 - NormalCDF(z))
}

// poly evaluates c0 + c1*x + c2*x^2 + ...
func poly(x float64, coeffs ...float64) float64 {
	sum := 0.0
	xp := 1.0
	for _, c := range coeffs {
		sum += c * xp
		xp *= x
	}
	return sum
}
