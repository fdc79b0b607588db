package reducer_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/mat"

	"filewords/internal/domain"
	"filewords/internal/reducer"
)

const tol = 1e-9

// PCASuite exercises the reducer on a small fixed incidence matrix.
type PCASuite struct {
	suite.Suite
	x *mat.Dense
}

func (s *PCASuite) SetupTest() {
	// 5 files × 4 tags
	s.x = mat.NewDense(5, 4, []float64{
		1, 1, 0, 0,
		0, 1, 1, 0,
		1, 0, 0, 1,
		1, 1, 1, 0,
		0, 0, 1, 1,
	})
}

// TestShapes checks the dimensions of every output for each valid k.
func (s *PCASuite) TestShapes() {
	for k := 1; k <= 4; k++ {
		red, err := reducer.New().Fit(s.x, k)
		require.NoError(s.T(), err)
		r, c := red.Reduced.Dims()
		require.Equal(s.T(), 5, r)
		require.Equal(s.T(), k, c)
		r, c = red.Loadings.Dims()
		require.Equal(s.T(), k, r, "loadings rows for k=%d", k)
		require.Equal(s.T(), 4, c, "loadings cols for k=%d", k)
		r, c = red.Reconstructed.Dims()
		require.Equal(s.T(), 5, r)
		require.Equal(s.T(), 4, c)
		require.Len(s.T(), red.Mean, 4)
		require.Equal(s.T(), k, red.Components)
	}
}

// TestFullRankReconstruction: k = numTags reproduces X.
func (s *PCASuite) TestFullRankReconstruction() {
	red, err := reducer.New().Fit(s.x, 4)
	require.NoError(s.T(), err)
	require.True(s.T(), mat.EqualApprox(s.x, red.Reconstructed, 1e-9), "reconstruction differs:\n%v", mat.Formatted(red.Reconstructed))
}

// TestLoadingsOrthonormal: component directions are unit length and mutually orthogonal.
func (s *PCASuite) TestLoadingsOrthonormal() {
	red, err := reducer.New().Fit(s.x, 3)
	require.NoError(s.T(), err)
	var gram mat.Dense
	gram.Mul(red.Loadings, red.Loadings.T())
	require.True(s.T(), mat.EqualApprox(&gram, identity(3), 1e-9))
}

// TestSignConvention: each component's largest-magnitude loading is positive.
func (s *PCASuite) TestSignConvention() {
	red, err := reducer.New().Fit(s.x, 3)
	require.NoError(s.T(), err)
	for i := 0; i < 3; i++ {
		row := mat.Row(nil, i, red.Loadings)
		best := 0
		for j := range row {
			if math.Abs(row[j]) > math.Abs(row[best]) {
				best = j
			}
		}
		assert.Greater(s.T(), row[best], 0.0, "component %d", i)
	}
}

// TestDeterministic: fitting twice yields identical output.
func (s *PCASuite) TestDeterministic() {
	a, err := reducer.New().Fit(s.x, 2)
	require.NoError(s.T(), err)
	b, err := reducer.New().Fit(s.x, 2)
	require.NoError(s.T(), err)
	require.True(s.T(), mat.Equal(a.Reduced, b.Reduced))
	require.True(s.T(), mat.Equal(a.Loadings, b.Loadings))
}

// TestInputUntouched: Fit must not center the caller's matrix.
func (s *PCASuite) TestInputUntouched() {
	before := mat.DenseCopyOf(s.x)
	_, err := reducer.New().Fit(s.x, 2)
	require.NoError(s.T(), err)
	require.True(s.T(), mat.Equal(before, s.x))
}

// TestExplainedVariance: ratios are sorted and sum to one at full rank.
func (s *PCASuite) TestExplainedVariance() {
	red, err := reducer.New().Fit(s.x, 4)
	require.NoError(s.T(), err)
	sum := 0.0
	for i, r := range red.ExplainedVarianceRatio {
		sum += r
		if i > 0 {
			assert.LessOrEqual(s.T(), r, red.ExplainedVarianceRatio[i-1]+tol)
		}
	}
	assert.InDelta(s.T(), 1.0, sum, 1e-9)
}

// TestProjectionMatchesCentering: reduced rows equal centered rows times loadingsᵀ.
func (s *PCASuite) TestProjectionMatchesCentering() {
	red, err := reducer.New().Fit(s.x, 2)
	require.NoError(s.T(), err)
	for r := 0; r < 5; r++ {
		for i := 0; i < 2; i++ {
			want := 0.0
			for c := 0; c < 4; c++ {
				want += (s.x.At(r, c) - red.Mean[c]) * red.Loadings.At(i, c)
			}
			assert.InDelta(s.T(), want, red.Reduced.At(r, i), tol)
		}
	}
}

func TestPCASuite(t *testing.T) {
	suite.Run(t, new(PCASuite))
}

func TestFit_InvalidComponentCount(t *testing.T) {
	x := mat.NewDense(2, 3, []float64{
		1, 1, 0,
		0, 1, 1,
	})
	for _, k := range []int{0, -1, 3, 4} {
		_, err := reducer.New().Fit(x, k)
		require.Error(t, err, "k=%d", k)
		assert.True(t, errors.Is(err, domain.ErrInvalidComponentCount), "k=%d: %v", k, err)
	}
}

func TestFit_TwoFileScenario(t *testing.T) {
	x := mat.NewDense(2, 3, []float64{
		1, 1, 0,
		0, 1, 1,
	})
	red, err := reducer.New().Fit(x, 2)
	require.NoError(t, err)
	r, c := red.Reduced.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	// the shared tag has no variance, so it carries no weight on the first component
	assert.InDelta(t, 0, red.Loadings.At(0, 1), tol)
	// the two files sit symmetrically around the mean
	assert.InDelta(t, -red.Reduced.At(0, 0), red.Reduced.At(1, 0), tol)
}

func TestMaxComponents(t *testing.T) {
	assert.Equal(t, 2, reducer.MaxComponents(2, 3))
	assert.Equal(t, 3, reducer.MaxComponents(7, 3))
	assert.NoError(t, reducer.ValidateComponents(3, 7, 3))
	assert.Error(t, reducer.ValidateComponents(1, 0, 3))
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
