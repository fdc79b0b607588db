package tagmatrix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filewords/internal/domain"
	"filewords/internal/tagmatrix"
	"filewords/internal/tags"
)

func corpus(captions ...string) ([]string, []domain.TagSet) {
	files := make([]string, len(captions))
	sets := make([]domain.TagSet, len(captions))
	for i, c := range captions {
		files[i] = string(rune('a'+i)) + ".jpg"
		sets[i] = tags.Extract(c)
	}
	return files, sets
}

func TestBuild_Scenario(t *testing.T) {
	files, sets := corpus("cat, dog", "dog, bird")
	m, err := tagmatrix.Build(files, sets, tagmatrix.OrderFirstSeen)
	require.NoError(t, err)

	assert.Equal(t, []string{"cat", "dog", "bird"}, m.Vocabulary.Tags())
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, m.Files)
	r, c := m.Incidence.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	assert.Equal(t, []float64{1, 1, 0}, m.Incidence.RawRowView(0))
	assert.Equal(t, []float64{0, 1, 1}, m.Incidence.RawRowView(1))
}

func TestBuild_SortedOrder(t *testing.T) {
	files, sets := corpus("zebra, apple", "mango")
	m, err := tagmatrix.Build(files, sets, tagmatrix.OrderSorted)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "mango", "zebra"}, m.Vocabulary.Tags())
	assert.Equal(t, []float64{1, 0, 1}, m.Incidence.RawRowView(0))
}

func TestBuild_RoundTrip(t *testing.T) {
	files, sets := corpus(
		"sky, sea, boat",
		"",
		"boat, harbor",
		"sky, cloud, sea, sun",
		"sun",
	)
	for _, order := range []tagmatrix.Order{tagmatrix.OrderFirstSeen, tagmatrix.OrderSorted} {
		t.Run(string(order), func(t *testing.T) {
			m, err := tagmatrix.Build(files, sets, order)
			require.NoError(t, err)
			for r, set := range sets {
				for _, tag := range set.Tags() {
					_, ok := m.Vocabulary.Index(tag)
					assert.True(t, ok, "tag %q missing from vocabulary", tag)
				}
				got := m.Row(r)
				assert.ElementsMatch(t, set.Tags(), got.Tags(), "row %d", r)
			}
		})
	}
}

func TestBuild_EmptyCaptionKeepsRow(t *testing.T) {
	files, sets := corpus("cat", "")
	m, err := tagmatrix.Build(files, sets, tagmatrix.OrderFirstSeen)
	require.NoError(t, err)
	require.False(t, m.IsEmpty())
	assert.Equal(t, []float64{0}, m.Incidence.RawRowView(1))
}

func TestBuild_EmptyCorpus(t *testing.T) {
	cases := []struct {
		name     string
		captions []string
	}{
		{"NoFiles", nil},
		{"NoTags", []string{"", " , "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			files, sets := corpus(tc.captions...)
			m, err := tagmatrix.Build(files, sets, tagmatrix.OrderFirstSeen)
			require.NoError(t, err)
			assert.True(t, m.IsEmpty())
			assert.Equal(t, 0, m.Row(0).Len()+m.Vocabulary.Len())
		})
	}
}

func TestBuild_ShapeMismatch(t *testing.T) {
	_, err := tagmatrix.Build([]string{"a.jpg"}, nil, tagmatrix.OrderFirstSeen)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrShapeMismatch))
}

func TestParseOrder(t *testing.T) {
	o, err := tagmatrix.ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, tagmatrix.OrderFirstSeen, o)
	o, err = tagmatrix.ParseOrder("sorted")
	require.NoError(t, err)
	assert.Equal(t, tagmatrix.OrderSorted, o)
	_, err = tagmatrix.ParseOrder("random")
	assert.Error(t, err)
}
