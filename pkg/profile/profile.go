// Package profile computes per-column summaries of a Frame: null
// counts and rates, and min/max/mean for numeric columns. The quality
// gate uses the null rates; the CLI can log the full profile.
package profile

import (
	"log/slog"
	"math"

	"github.com/revclean/revclean/pkg/table"
)

type ColumnStats struct {
	Name    string
	Kind    table.Kind
	Count   int // non-null cells
	Nulls   int
	NullPct float64
	// numeric columns only
	Min  float64
	Max  float64
	Mean float64
}

// Collect profiles every column of f. On an empty frame all counts and
// percentages are zero.
func Collect(f *table.Frame) []ColumnStats {
	out := make([]ColumnStats, 0, f.Cols())
	for _, cs := range f.Schema().Columns {
		col, _ := f.Column(cs.Name)
		stats := ColumnStats{Name: cs.Name, Kind: cs.Kind, Min: math.Inf(1), Max: math.Inf(-1)}
		switch c := col.(type) {
		case *table.FloatColumn:
			var sum float64
			for i := 0; i < c.Len(); i++ {
				v, present := c.Get(i)
				if !present {
					stats.Nulls++
					continue
				}
				stats.Count++
				sum += v
				if v < stats.Min {
					stats.Min = v
				}
				if v > stats.Max {
					stats.Max = v
				}
			}
			if stats.Count > 0 {
				stats.Mean = sum / float64(stats.Count)
			}
		case *table.StringColumn:
			for i := 0; i < c.Len(); i++ {
				if c.IsNull(i) {
					stats.Nulls++
				} else {
					stats.Count++
				}
			}
		}
		if f.Rows() > 0 {
			stats.NullPct = float64(stats.Nulls) / float64(f.Rows()) * 100
		}
		out = append(out, stats)
	}
	return out
}

// Attrs renders one column's profile as slog attributes.
func (s ColumnStats) Attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("column", s.Name),
		slog.String("kind", s.Kind.String()),
		slog.Int("count", s.Count),
		slog.Int("nulls", s.Nulls),
		slog.Float64("null_pct", math.Round(s.NullPct*100)/100),
	}
	if s.Kind == table.KindFloat && s.Count > 0 {
		attrs = append(attrs,
			slog.Float64("min", s.Min),
			slog.Float64("max", s.Max),
			slog.Float64("mean", s.Mean),
		)
	}
	return attrs
}
