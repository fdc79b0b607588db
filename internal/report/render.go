// Package report prints pipeline results for people.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"filewords/internal/domain"
)

const (
	StylePlain  = "plain"
	StylePretty = "pretty"
)

// Options controls rendering.
type Options struct {
	Style   string
	TopTags int
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	summaryStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	fileStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Render writes one line per file, in file order, followed by a summary.
func Render(w io.Writer, res *domain.Result, opts Options) error {
	if opts.Style == StylePretty {
		return renderPretty(w, res, opts)
	}
	return renderPlain(w, res, opts)
}

func renderPlain(w io.Writer, res *domain.Result, opts Options) error {
	var b strings.Builder
	for _, a := range res.Assignments {
		fmt.Fprintf(&b, "%s: %s\n", a.File, strings.Join(a.Labels, ", "))
	}
	if len(res.Representatives) > 0 {
		fmt.Fprintf(&b, "components: %s\n", strings.Join(componentNames(res.Representatives), " "))
	}
	fmt.Fprintf(&b, "files: %d, tags: %d\n", len(res.Files), res.Vocabulary.Len())
	_, err := io.WriteString(w, b.String())
	return err
}

func renderPretty(w io.Writer, res *domain.Result, opts Options) error {
	var lines []string
	lines = append(lines, titleStyle.Render("filewords"))
	lines = append(lines, summaryStyle.Render(summary(res, opts.TopTags)))
	for _, a := range res.Assignments {
		labels := mutedStyle.Render("(none)")
		if len(a.Labels) > 0 {
			labels = labelStyle.Render(strings.Join(a.Labels, ", "))
		}
		lines = append(lines, fileStyle.Render(a.File)+"  "+labels)
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func summary(res *domain.Result, topN int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "files: %d  tags: %d", len(res.Files), res.Vocabulary.Len())
	if res.Reduction != nil {
		fmt.Fprintf(&b, "  components: %d", res.Reduction.Components)
	}
	if res.Empty {
		b.WriteString("\nempty corpus, nothing to reduce")
	}
	if len(res.Representatives) > 0 {
		fmt.Fprintf(&b, "\nrepresentatives: %s", strings.Join(componentNames(res.Representatives), " "))
	}
	top := TagFrequencies(res.TagSets, topN)
	if len(top) > 0 {
		parts := make([]string, len(top))
		for i, tc := range top {
			parts[i] = fmt.Sprintf("%s(%d)", tc.Tag, tc.Count)
		}
		fmt.Fprintf(&b, "\ntop tags: %s", strings.Join(parts, " "))
	}
	return b.String()
}

func componentNames(reps []string) []string {
	out := make([]string, len(reps))
	for i, r := range reps {
		if r == "" {
			r = "-"
		}
		out[i] = fmt.Sprintf("%d=%s", i, r)
	}
	return out
}
