package labeler

import (
	"math"
	"sort"
)

// RankDescending returns the indices of values ordered by value, largest first.
// Equal values keep ascending index order.
func RankDescending(values []float64) []int {
	return rankBy(values, func(v float64) float64 { return v })
}

// RankByMagnitude returns the indices of values ordered by |value|, largest first.
// Equal magnitudes keep ascending index order.
func RankByMagnitude(values []float64) []int {
	return rankBy(values, math.Abs)
}

func rankBy(values []float64, key func(float64) float64) []int {
	idxs := make([]int, len(values))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool {
		return key(values[idxs[a]]) > key(values[idxs[b]])
	})
	return idxs
}
