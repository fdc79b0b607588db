package report

import (
	"sort"

	"filewords/internal/domain"
)

// DefaultTopTags is used when a non-positive topN is requested.
const DefaultTopTags = 10

// TagCount is how many files carry a tag.
type TagCount struct {
	Tag   string
	Count int
}

// TagFrequencies ranks corpus tags by the number of files carrying them.
// Equal counts keep first-seen order.
func TagFrequencies(sets []domain.TagSet, topN int) []TagCount {
	if topN <= 0 {
		topN = DefaultTopTags
	}
	index := map[string]int{}
	var counts []TagCount
	for _, set := range sets {
		for _, tag := range set.Tags() {
			i, ok := index[tag]
			if !ok {
				i = len(counts)
				index[tag] = i
				counts = append(counts, TagCount{Tag: tag})
			}
			counts[i].Count++
		}
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if topN > len(counts) {
		topN = len(counts)
	}
	return counts[:topN]
}
