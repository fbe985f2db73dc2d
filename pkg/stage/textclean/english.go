package textclean

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/revclean/revclean/pkg/lang"
	"github.com/revclean/revclean/pkg/pipeline"
	"github.com/revclean/revclean/pkg/table"
)

var sentenceSplit = regexp.MustCompile(`[.!?,]`)

// minSentenceLen is the shortest trimmed candidate worth classifying.
const minSentenceLen = 5

// FilterEnglish keeps only the sentences of text the classifier labels
// English, rejoined with ". ". A sentence the classifier cannot label
// is dropped — classifier failure is an expected per-sentence outcome,
// not a pipeline error.
func FilterEnglish(text string, cls lang.Classifier) string {
	var kept []string
	for _, s := range sentenceSplit.Split(text, -1) {
		s = strings.TrimSpace(s)
		if len(s) < minSentenceLen {
			continue
		}
		code, err := cls.Classify(s)
		if err != nil {
			continue
		}
		if code == lang.English {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, ". ")
}

// RetentionStats aggregates per-record cleaned/original length ratios.
// Diagnostic only.
type RetentionStats struct {
	Min float64
	Avg float64
	Max float64
}

func (s RetentionStats) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.Float64("retention_min", s.Min),
		slog.Float64("retention_avg", s.Avg),
		slog.Float64("retention_max", s.Max),
	}
}

// EnglishFilter writes the English-only rendition of Column into a new
// Out column. Null input stays null (non-string passthrough).
type EnglishFilter struct {
	Column     string
	Out        string
	Classifier lang.Classifier
}

func (t *EnglishFilter) Name() string { return "english_filter" }

func (t *EnglishFilter) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	col, ok := f.String(t.Column)
	if !ok {
		return nil, nil, &pipeline.TypeContractError{Stage: t.Name(), Column: t.Column, Want: "string column"}
	}
	out := table.NewStringColumn(t.Out, f.Rows())
	var (
		sum float64
		n   int
		min = math.Inf(1)
		max = math.Inf(-1)
	)
	for i := 0; i < col.Len(); i++ {
		v, present := col.Get(i)
		if !present {
			continue
		}
		en := FilterEnglish(v, t.Classifier)
		out.Set(i, en)

		ratio := 0.0
		if v != "" {
			ratio = round2(float64(len(en)) / float64(len(v)))
		}
		sum += ratio
		n++
		if ratio < min {
			min = ratio
		}
		if ratio > max {
			max = ratio
		}
	}
	if err := f.AddColumn(out); err != nil {
		return nil, nil, err
	}
	stats := RetentionStats{}
	if n > 0 {
		stats = RetentionStats{Min: min, Avg: round2(sum / float64(n)), Max: max}
	}
	return f, stats, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
