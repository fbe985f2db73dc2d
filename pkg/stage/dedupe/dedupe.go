// Package dedupe reports and removes duplicate records under a
// composite key.
package dedupe

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/revclean/revclean/pkg/pipeline"
	"github.com/revclean/revclean/pkg/table"
)

// rowKey encodes the key-column tuple for one row. Null fields carry a
// dedicated marker so ("a", null) groups with ("a", null) but never
// with ("a", "").
func rowKey(f *table.Frame, row int, keys []table.Column) string {
	var b strings.Builder
	for _, c := range keys {
		b.WriteByte(0)
		if c.IsNull(row) {
			b.WriteString("\x00null")
			continue
		}
		switch col := c.(type) {
		case *table.StringColumn:
			v, _ := col.Get(row)
			b.WriteString(v)
		case *table.FloatColumn:
			v, _ := col.Get(row)
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return b.String()
}

func keyColumns(stage string, f *table.Frame, names []string) ([]table.Column, error) {
	cols := make([]table.Column, len(names))
	for i, n := range names {
		c, ok := f.Column(n)
		if !ok {
			return nil, &pipeline.TypeContractError{Stage: stage, Column: n, Want: "present column"}
		}
		cols[i] = c
	}
	return cols, nil
}

// Stats counts records sharing a key tuple with at least one other
// record — all members of every duplicate group, not just the extras.
type Stats struct {
	Total      int
	Duplicates int
	Pct        float64
}

func (s Stats) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("records", s.Total),
		slog.Int("duplicate_records", s.Duplicates),
		slog.Float64("duplicate_pct", s.Pct),
	}
}

// Report computes duplicate statistics over the key columns.
// Diagnostic only, never blocks.
type Report struct {
	Keys []string
}

func (t *Report) Name() string { return "duplicate_report" }

func (t *Report) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	if f.Rows() == 0 {
		return f, Stats{}, nil
	}
	cols, err := keyColumns(t.Name(), f, t.Keys)
	if err != nil {
		return nil, nil, err
	}
	counts := make(map[string]int, f.Rows())
	for i := 0; i < f.Rows(); i++ {
		counts[rowKey(f, i, cols)]++
	}
	dups := 0
	for _, n := range counts {
		if n > 1 {
			dups += n
		}
	}
	return f, Stats{
		Total:      f.Rows(),
		Duplicates: dups,
		Pct:        round2(float64(dups) / float64(f.Rows()) * 100),
	}, nil
}

// Drop removes all but the first occurrence (by row order) per distinct
// key tuple.
type Drop struct {
	Keys []string
}

func (t *Drop) Name() string { return "duplicate_drop" }

func (t *Drop) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	if f.Rows() == 0 {
		return f, nil, nil
	}
	cols, err := keyColumns(t.Name(), f, t.Keys)
	if err != nil {
		return nil, nil, err
	}
	seen := make(map[string]struct{}, f.Rows())
	out := f.Filter(func(row int) bool {
		k := rowKey(f, row, cols)
		if _, dup := seen[k]; dup {
			return false
		}
		seen[k] = struct{}{}
		return true
	})
	return out, nil, nil
}

// LinkUniqueness reports how many non-null values of one column are
// shared with another row. Diagnostic only; a missing column is a no-op
// (the source dataset does not always carry product links).
type LinkUniqueness struct {
	Column string
}

func (t *LinkUniqueness) Name() string { return "link_uniqueness" }

func (t *LinkUniqueness) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	col, ok := f.String(t.Column)
	if !ok || f.Rows() == 0 {
		return f, Stats{}, nil
	}
	counts := make(map[string]int)
	total := 0
	for i := 0; i < col.Len(); i++ {
		if v, present := col.Get(i); present {
			counts[v]++
			total++
		}
	}
	dups := 0
	for _, n := range counts {
		if n > 1 {
			dups += n
		}
	}
	stats := Stats{Total: total, Duplicates: dups}
	if total > 0 {
		stats.Pct = round2(float64(dups) / float64(total) * 100)
	}
	return f, stats, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
