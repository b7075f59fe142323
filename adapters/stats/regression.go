package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"statease/domain/analysis"
	"statease/internal/errors"
)

// LinearRegression fits ordinary least squares with an intercept via QR
// factorization. The first variable is the response, the rest are
// predictors. A rank-deficient design matrix is a numerical failure, not a
// degraded fit.
func LinearRegression(sel *analysis.ResolvedSelection) (analysis.TestResult, error) {
	y := sel.Samples[0]
	predictors := sel.Samples[1:]
	n := len(y)
	p := len(predictors)

	x := mat.NewDense(n, p+1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j, pred := range predictors {
			x.Set(i, j+1, pred[i])
		}
	}

	var qr mat.QR
	qr.Factorize(x)
	if err := checkFullRank(&qr, p+1); err != nil {
		return nil, err
	}

	yVec := mat.NewVecDense(n, append([]float64(nil), y...))
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, yVec); err != nil {
		return nil, errors.NumericalError("least squares solve failed: %v", err)
	}

	// R^2 from the residual and total sums of squares.
	meanY := mean(y)
	ssTotal, ssResidual := 0.0, 0.0
	for i := 0; i < n; i++ {
		fitted := beta.AtVec(0)
		for j := 0; j < p; j++ {
			fitted += beta.AtVec(j+1) * predictors[j][i]
		}
		r := y[i] - fitted
		ssResidual += r * r
		d := y[i] - meanY
		ssTotal += d * d
	}
	if ssTotal == 0 {
		return nil, errors.NumericalError("response variable has zero variance")
	}
	r2 := 1 - ssResidual/ssTotal

	dfModel := p
	dfResidual := n - p - 1
	var f, pValue float64
	if ssResidual == 0 {
		// Perfect fit: the residual-based F test degenerates.
		f = math.Inf(1)
		pValue = 0
	} else {
		f = (r2 / float64(dfModel)) / ((1 - r2) / float64(dfResidual))
		pValue = FTestPValue(f, float64(dfModel), float64(dfResidual))
	}

	coeffs := make([]analysis.Coefficient, p+1)
	coeffs[0] = analysis.Coefficient{Name: "intercept", Estimate: beta.AtVec(0)}
	for j := 0; j < p; j++ {
		coeffs[j+1] = analysis.Coefficient{Name: sel.Variables[j+1], Estimate: beta.AtVec(j + 1)}
	}

	return analysis.RegressionResult{
		Coefficients: coeffs,
		RSquared:     r2,
		FStatistic:   f,
		PValue:       pValue,
		DFModel:      dfModel,
		DFResidual:   dfResidual,
		N:            n,
	}, nil
}

// checkFullRank inspects the diagonal of R for a numerically zero pivot,
// which signals perfectly collinear predictors.
func checkFullRank(qr *mat.QR, cols int) error {
	var r mat.Dense
	qr.RTo(&r)
	maxPivot := 0.0
	for i := 0; i < cols; i++ {
		if v := math.Abs(r.At(i, i)); v > maxPivot {
			maxPivot = v
		}
	}
	const relTol = 1e-10
	for i := 0; i < cols; i++ {
		if math.Abs(r.At(i, i)) <= relTol*maxPivot {
			return errors.NumericalError("design matrix is rank deficient; predictors are perfectly collinear")
		}
	}
	return nil
}
