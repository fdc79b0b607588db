// Package reducer fits principal component analysis on tag incidence matrices.
//
// The incidence matrix X (files × tags) is centered by subtracting each column
// mean, then factorized with a thin singular value decomposition:
//
//	Xc = U · Σ · Vᵀ
//
// The first k columns of V are the principal directions in tag space. They are
// exposed transposed as the loading matrix (k × tags), so row i holds every
// tag's contribution to component i. Projecting Xc onto those directions gives
// the reduced representation (files × k), and multiplying back by the loadings
// and re-adding the means gives a lossy reconstruction of X.
//
// SVD leaves the sign of each singular vector free. Fit flips every component
// so its largest-magnitude loading is positive, which makes the output
// independent of the LAPACK implementation and keeps label selection stable.
package reducer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"filewords/internal/domain"
)

// PCA is a deterministic principal component analysis reducer.
type PCA struct{}

// New returns a PCA reducer.
func New() *PCA { return &PCA{} }

// MaxComponents is the largest k accepted for a rows × cols matrix.
func MaxComponents(rows, cols int) int {
	return min(rows, cols)
}

// ValidateComponents rejects k outside [1, min(rows, cols)].
func ValidateComponents(k, rows, cols int) error {
	limit := MaxComponents(rows, cols)
	if k < 1 || k > limit {
		return fmt.Errorf("requested %d components, allowed range is [1, %d] for a %d×%d matrix: %w",
			k, limit, rows, cols, domain.ErrInvalidComponentCount)
	}
	return nil
}

// Fit computes k principal components of x and returns the projection,
// reconstruction and loadings. x is not modified.
func (p *PCA) Fit(x mat.Matrix, k int) (*domain.Reduction, error) {
	rows, cols := x.Dims()
	if err := ValidateComponents(k, rows, cols); err != nil {
		return nil, err
	}

	centered := mat.DenseCopyOf(x)
	means := centerColumns(centered)

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return nil, domain.ErrFactorization
	}
	var v mat.Dense
	svd.VTo(&v)

	components := mat.NewDense(cols, k, nil)
	components.Copy(v.Slice(0, cols, 0, k))
	flipSigns(components)

	reduced := mat.NewDense(rows, k, nil)
	reduced.Mul(centered, components)

	loadings := mat.DenseCopyOf(components.T())

	reconstructed := mat.NewDense(rows, cols, nil)
	reconstructed.Mul(reduced, loadings)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			reconstructed.Set(r, c, reconstructed.At(r, c)+means[c])
		}
	}

	variance, ratio := explainedVariance(svd.Values(nil), rows, k)
	return &domain.Reduction{
		Reduced:                reduced,
		Reconstructed:          reconstructed,
		Loadings:               loadings,
		Mean:                   means,
		ExplainedVariance:      variance,
		ExplainedVarianceRatio: ratio,
		Components:             k,
	}, nil
}

// centerColumns subtracts each column mean in place and returns the means.
func centerColumns(m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	means := make([]float64, cols)
	for c := 0; c < cols; c++ {
		means[c] = stat.Mean(mat.Col(nil, c, m), nil)
		for r := 0; r < rows; r++ {
			m.Set(r, c, m.At(r, c)-means[c])
		}
	}
	return means
}

// flipSigns negates every column whose largest-magnitude entry is negative.
// Ties keep the first index.
func flipSigns(components *mat.Dense) {
	rows, cols := components.Dims()
	for c := 0; c < cols; c++ {
		best := 0
		for r := 1; r < rows; r++ {
			if math.Abs(components.At(r, c)) > math.Abs(components.At(best, c)) {
				best = r
			}
		}
		if components.At(best, c) >= 0 {
			continue
		}
		for r := 0; r < rows; r++ {
			components.Set(r, c, -components.At(r, c))
		}
	}
}

func explainedVariance(singular []float64, rows, k int) ([]float64, []float64) {
	total := 0.0
	for _, s := range singular {
		total += s * s
	}
	dof := float64(rows - 1)
	variance := make([]float64, k)
	ratio := make([]float64, k)
	for i := 0; i < k && i < len(singular); i++ {
		sq := singular[i] * singular[i]
		if dof > 0 {
			variance[i] = sq / dof
		}
		if total > 0 {
			ratio[i] = sq / total
		}
	}
	return variance, ratio
}
