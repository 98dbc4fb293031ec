// Package distributions wraps gonum's distributions for the p-values the
// detectors report.
package distributions

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// TTestPValue is the two-tailed p-value of a t statistic.
func TTestPValue(tStatistic float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 || math.IsNaN(tStatistic) {
		return 1.0
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(degreesOfFreedom)}
	return clampProbability(2 * (1 - tDist.CDF(math.Abs(tStatistic))))
}

// CorrelationPValue tests a Pearson correlation against zero.
func CorrelationPValue(correlation float64, sampleSize int) float64 {
	if sampleSize < 3 || math.IsNaN(correlation) {
		return 1.0
	}
	if math.Abs(correlation) >= 1 {
		return 0
	}
	df := float64(sampleSize - 2)
	tStatistic := correlation * math.Sqrt(df/(1-correlation*correlation))
	return TTestPValue(tStatistic, sampleSize-2)
}

// ChiSquarePValue is the upper-tail probability of the chi-square distribution.
func ChiSquarePValue(chiSquare float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 || chiSquare <= 0 || math.IsNaN(chiSquare) {
		return 1.0
	}
	chiDist := distuv.ChiSquared{K: float64(degreesOfFreedom)}
	return clampProbability(1 - chiDist.CDF(chiSquare))
}

// ChiSquare2x2 runs Pearson's chi-square test of independence on
//
//	| a b |
//	| c d |
//
// and returns the statistic with its df=1 p-value. Any empty margin yields
// (0, 1).
func ChiSquare2x2(a, b, c, d float64) (float64, float64) {
	n := a + b + c + d
	row1, row2 := a+b, c+d
	col1, col2 := a+c, b+d
	if n <= 0 || row1 <= 0 || row2 <= 0 || col1 <= 0 || col2 <= 0 {
		return 0, 1.0
	}

	observed := [4]float64{a, b, c, d}
	expected := [4]float64{row1 * col1 / n, row1 * col2 / n, row2 * col1 / n, row2 * col2 / n}

	chiSq := 0.0
	for i := range observed {
		diff := observed[i] - expected[i]
		chiSq += diff * diff / expected[i]
	}
	return chiSq, ChiSquarePValue(chiSq, 1)
}

// NormalCDF computes cumulative distribution function for standard normal
func NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// TwoProportionZTest compares x1/n1 against x2/n2 with the pooled standard
// error. z is positive when the first proportion is larger; the p-value is
// two-tailed. Empty samples or a pooled proportion of 0 or 1 yield (0, 1).
func TwoProportionZTest(x1, n1, x2, n2 float64) (float64, float64) {
	if n1 <= 0 || n2 <= 0 {
		return 0, 1.0
	}
	pooled := (x1 + x2) / (n1 + n2)
	se := math.Sqrt(pooled * (1 - pooled) * (1/n1 + 1/n2))
	if se == 0 || math.IsNaN(se) {
		return 0, 1.0
	}
	z := (x1/n1 - x2/n2) / se
	return z, clampProbability(2 * (1 - NormalCDF(math.Abs(z))))
}

func clampProbability(p float64) float64 {
	if math.IsNaN(p) || p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
