// Package quality holds the data-quality gates: null-rate threshold
// enforcement and the guarded null-row drop. Both are fatal on breach;
// the run aborts with no output written.
package quality

import (
	"context"
	"log/slog"
	"math"

	"github.com/revclean/revclean/pkg/pipeline"
	"github.com/revclean/revclean/pkg/profile"
	"github.com/revclean/revclean/pkg/table"
)

// NullThresholds fails the run when any column's null percentage
// exceeds MaxColumnNullPct, or when the fraction of rows containing at
// least one null — the row-incidence rate, not an average null density —
// exceeds MaxRowNullPct. An empty frame passes trivially.
type NullThresholds struct {
	MaxColumnNullPct float64
	MaxRowNullPct    float64
}

type NullStats struct {
	RowIncidencePct float64
	ColumnsChecked  int
}

func (s NullStats) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.Float64("rows_with_nulls_pct", s.RowIncidencePct),
		slog.Int("columns_checked", s.ColumnsChecked),
	}
}

func (t *NullThresholds) Name() string { return "null_thresholds" }

func (t *NullThresholds) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	if f.Rows() == 0 {
		return f, NullStats{ColumnsChecked: f.Cols()}, nil
	}

	var breaches []pipeline.ColumnBreach
	for _, cs := range profile.Collect(f) {
		if cs.NullPct > t.MaxColumnNullPct {
			breaches = append(breaches, pipeline.ColumnBreach{Column: cs.Name, NullPct: round2(cs.NullPct)})
		}
	}

	rowsWithNulls := 0
	for i := 0; i < f.Rows(); i++ {
		if f.NullsInRow(i) > 0 {
			rowsWithNulls++
		}
	}
	incidence := round2(float64(rowsWithNulls) / float64(f.Rows()) * 100)

	if len(breaches) > 0 || incidence > t.MaxRowNullPct {
		return nil, nil, &pipeline.DataQualityError{
			Columns:          breaches,
			MaxColumnNullPct: t.MaxColumnNullPct,
			RowIncidencePct:  incidence,
			MaxRowNullPct:    t.MaxRowNullPct,
		}
	}
	return f, NullStats{RowIncidencePct: incidence, ColumnsChecked: f.Cols()}, nil
}

// GuardedNullDrop removes every row containing a null, behind two
// guards: rows sparser than MaxRowNullPct block the drop outright
// (integrity failure, before anything is removed), and a drop that
// would lose more than MaxTotalLossPct of rows is not committed.
type GuardedNullDrop struct {
	MaxRowNullPct   float64
	MaxTotalLossPct float64
}

type DropStats struct {
	Before  int
	After   int
	LossPct float64
}

func (s DropStats) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("rows_before", s.Before),
		slog.Int("rows_after", s.After),
		slog.Float64("loss_pct", s.LossPct),
	}
}

func (t *GuardedNullDrop) Name() string { return "guarded_null_drop" }

func (t *GuardedNullDrop) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	if f.Rows() == 0 {
		return f, DropStats{}, nil
	}
	cols := float64(f.Cols())

	violating := 0
	var sample []float64
	for i := 0; i < f.Rows(); i++ {
		pct := float64(f.NullsInRow(i)) / cols * 100
		if pct > t.MaxRowNullPct {
			violating++
			if len(sample) < 5 {
				sample = append(sample, round2(pct))
			}
		}
	}
	if violating > 0 {
		return nil, nil, &pipeline.DataIntegrityError{
			Rows:           violating,
			MaxRowNullPct:  t.MaxRowNullPct,
			SampleNullPcts: sample,
		}
	}

	out := f.Filter(func(row int) bool { return f.NullsInRow(row) == 0 })
	lossPct := round2(float64(f.Rows()-out.Rows()) / float64(f.Rows()) * 100)
	if lossPct > t.MaxTotalLossPct {
		return nil, nil, &pipeline.DataLossGuardError{
			LossPct:    lossPct,
			MaxLossPct: t.MaxTotalLossPct,
			Before:     f.Rows(),
			After:      out.Rows(),
		}
	}
	return out, DropStats{Before: f.Rows(), After: out.Rows(), LossPct: lossPct}, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
