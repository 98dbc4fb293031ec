package distributions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChiSquarePValue_KnownValue(t *testing.T) {
	// 3.841 is the 0.05 critical value at df=1.
	assert.InDelta(t, 0.05, ChiSquarePValue(3.841, 1), 1e-3)
	assert.Equal(t, 1.0, ChiSquarePValue(0, 1))
	assert.Equal(t, 1.0, ChiSquarePValue(5, 0))
}

func TestChiSquare2x2(t *testing.T) {
	stat, p := ChiSquare2x2(10, 10, 10, 10)
	assert.InDelta(t, 0, stat, 1e-12)
	assert.Equal(t, 1.0, p)

	stat, p = ChiSquare2x2(90, 10, 10, 90)
	assert.Greater(t, stat, 100.0)
	assert.Less(t, p, 0.001)

	stat, p = ChiSquare2x2(0, 0, 5, 5)
	assert.Equal(t, 0.0, stat)
	assert.Equal(t, 1.0, p)
}

func TestCorrelationPValue(t *testing.T) {
	assert.Equal(t, 1.0, CorrelationPValue(0.9, 2))
	assert.Equal(t, 0.0, CorrelationPValue(1, 10))
	assert.InDelta(t, 1.0, CorrelationPValue(0, 30), 1e-9)
	assert.Less(t, CorrelationPValue(0.8, 30), 0.001)
}

func TestTTestPValue_Symmetric(t *testing.T) {
	assert.InDelta(t, TTestPValue(2.1, 12), TTestPValue(-2.1, 12), 1e-12)
	assert.Equal(t, 1.0, TTestPValue(1, 0))
}

func TestNormalCDF(t *testing.T) {
	assert.InDelta(t, 0.5, NormalCDF(0), 1e-12)
}

func TestTwoProportionZTest_MatchesChiSquare(t *testing.T) {
	z, p := TwoProportionZTest(50, 1000, 20, 1000)
	chiSq, chiP := ChiSquare2x2(50, 950, 20, 980)

	assert.Greater(t, z, 0.0)
	assert.InDelta(t, chiSq, z*z, 1e-9)
	assert.InDelta(t, chiP, p, 1e-9)

	z, _ = TwoProportionZTest(20, 1000, 50, 1000)
	assert.Less(t, z, 0.0)
}

func TestTwoProportionZTest_Degenerate(t *testing.T) {
	z, p := TwoProportionZTest(0, 0, 5, 100)
	assert.Equal(t, 0.0, z)
	assert.Equal(t, 1.0, p)

	z, p = TwoProportionZTest(0, 100, 0, 100)
	assert.Equal(t, 0.0, z)
	assert.Equal(t, 1.0, p)
}
