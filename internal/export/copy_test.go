package export_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filewords/internal/domain"
	"filewords/internal/export"
)

func TestFileName(t *testing.T) {
	cases := []struct {
		name  string
		index int
		total int
		a     domain.LabelAssignment
		sep   string
		want  string
	}{
		{"TwoFiles", 1, 2, domain.LabelAssignment{File: "a.jpg", Labels: []string{"cat", "dog"}}, "-", "01-cat-dog.jpg"},
		{"HundredFiles", 7, 100, domain.LabelAssignment{File: "x.png", Labels: []string{"sky"}}, "-", "0007-sky.png"},
		{"NoLabels", 3, 9, domain.LabelAssignment{File: "z.webp"}, "-", "03.webp"},
		{"CustomSep", 1, 1, domain.LabelAssignment{File: "a.jpg", Labels: []string{"a", "b"}}, "_", "01_a_b.jpg"},
		{"SlashInLabel", 1, 1, domain.LabelAssignment{File: "a.jpg", Labels: []string{"ac/dc"}}, "-", "01-ac_dc.jpg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, export.FileName(tc.index, tc.total, tc.a, tc.sep))
		})
	}
}

func TestCopyFiles(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "renamed")
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.jpg"), []byte("AAA"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "b.jpg"), []byte("BBB"), 0o644))

	written, err := export.CopyFiles(in, out, []domain.LabelAssignment{
		{File: "a.jpg", Labels: []string{"cat"}},
		{File: "b.jpg", Labels: []string{"dog", "bird"}},
	}, "")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(out, "01-cat.jpg"),
		filepath.Join(out, "02-dog-bird.jpg"),
	}, written)

	data, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.Equal(t, "BBB", string(data))
}

func TestCopyFiles_MissingSource(t *testing.T) {
	_, err := export.CopyFiles(t.TempDir(), t.TempDir(), []domain.LabelAssignment{{File: "gone.jpg"}}, "-")
	assert.Error(t, err)
}

func TestFromTagSets(t *testing.T) {
	got := export.FromTagSets([]string{"a.jpg"}, []domain.TagSet{domain.NewTagSet("cat", "dog")})
	assert.Equal(t, []domain.LabelAssignment{{File: "a.jpg", Labels: []string{"cat", "dog"}}}, got)
}
