// Package label derives the categorical sentiment label from the
// numeric rating and reports the resulting distribution.
package label

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/revclean/revclean/pkg/pipeline"
	"github.com/revclean/revclean/pkg/table"
)

const (
	Negative = "negative"
	Neutral  = "neutral"
	Positive = "positive"
)

// Bucket maps a rating to its sentiment label by half-open buckets:
// [1,3) negative, [3,4) neutral, [4,5] positive. The upper bound of the
// last bucket is inclusive. Ratings outside [1,5] have no label.
func Bucket(rating float64) (string, bool) {
	switch {
	case rating >= 1 && rating < 3:
		return Negative, true
	case rating >= 3 && rating < 4:
		return Neutral, true
	case rating >= 4 && rating <= 5:
		return Positive, true
	default:
		return "", false
	}
}

// Sentiment appends a sentiment column derived from the rating column.
// Non-numeric, null and out-of-range ratings get a null sentiment —
// that is data, not an error.
type Sentiment struct {
	RatingColumn string
	OutColumn    string
}

func (t *Sentiment) Name() string { return "sentiment" }

func (t *Sentiment) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	col, ok := f.Column(t.RatingColumn)
	if !ok {
		return nil, nil, &pipeline.TypeContractError{Stage: t.Name(), Column: t.RatingColumn, Want: "present column"}
	}
	name := t.OutColumn
	if name == "" {
		name = "sentiment"
	}
	out := table.NewStringColumn(name, f.Rows())
	for i := 0; i < f.Rows(); i++ {
		rating, present := ratingAt(col, i)
		if !present {
			continue
		}
		if s, ok := Bucket(rating); ok {
			out.Set(i, s)
		}
	}
	if err := f.AddColumn(out); err != nil {
		return nil, nil, err
	}
	return f, nil, nil
}

// ratingAt coerces a cell to a float; a string cell that does not parse
// reads as null.
func ratingAt(col table.Column, row int) (float64, bool) {
	switch c := col.(type) {
	case *table.FloatColumn:
		return c.Get(row)
	case *table.StringColumn:
		v, present := c.Get(row)
		if !present {
			return 0, false
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return x, true
	default:
		return 0, false
	}
}

// LabelCount is one row of the label distribution; null sentiment is
// its own category.
type LabelCount struct {
	Label string
	Count int
	Pct   float64
}

// DistStats is the full label distribution. Diagnostic only.
type DistStats struct {
	Labels []LabelCount
}

func (s DistStats) Attrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, len(s.Labels))
	for _, l := range s.Labels {
		attrs = append(attrs, slog.Group(l.Label,
			slog.Int("count", l.Count),
			slog.Float64("pct", l.Pct),
		))
	}
	return attrs
}

// Distribution reports per-label counts and percentages. An empty
// frame yields an empty distribution.
type Distribution struct {
	Column string
}

func (t *Distribution) Name() string { return "label_distribution" }

func (t *Distribution) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	if f.Rows() == 0 {
		return f, DistStats{}, nil
	}
	name := t.Column
	if name == "" {
		name = "sentiment"
	}
	col, ok := f.String(name)
	if !ok {
		return nil, nil, &pipeline.TypeContractError{Stage: t.Name(), Column: name, Want: "string column"}
	}
	counts := map[string]int{}
	for i := 0; i < col.Len(); i++ {
		v, present := col.Get(i)
		if !present {
			v = "null"
		}
		counts[v]++
	}
	stats := DistStats{Labels: make([]LabelCount, 0, len(counts))}
	for l, n := range counts {
		stats.Labels = append(stats.Labels, LabelCount{
			Label: l,
			Count: n,
			Pct:   round2(float64(n) / float64(f.Rows()) * 100),
		})
	}
	sort.Slice(stats.Labels, func(i, j int) bool {
		if stats.Labels[i].Count != stats.Labels[j].Count {
			return stats.Labels[i].Count > stats.Labels[j].Count
		}
		return stats.Labels[i].Label < stats.Labels[j].Label
	})
	return f, stats, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
