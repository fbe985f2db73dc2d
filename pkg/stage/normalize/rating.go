// Package normalize coerces raw scalar fields (rating, currency,
// percentage) into typed numeric columns.
package normalize

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/revclean/revclean/pkg/pipeline"
	"github.com/revclean/revclean/pkg/table"
)

// RatingFilter drops rows whose raw rating equals a known invalid
// sentinel. It runs before numeric coercion so sentinels never reach
// the parser.
type RatingFilter struct {
	Column    string
	Sentinels []string
}

type FilterStats struct {
	Removed int
}

func (s FilterStats) Attrs() []slog.Attr {
	return []slog.Attr{slog.Int("rows_removed", s.Removed)}
}

func (t *RatingFilter) Name() string { return "rating_filter" }

func (t *RatingFilter) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	col, ok := f.String(t.Column)
	if !ok {
		return nil, nil, &pipeline.TypeContractError{Stage: t.Name(), Column: t.Column, Want: "string column"}
	}
	bad := make(map[string]struct{}, len(t.Sentinels))
	for _, s := range t.Sentinels {
		bad[s] = struct{}{}
	}
	out := f.Filter(func(row int) bool {
		v, present := col.Get(row)
		if !present {
			return true
		}
		_, sentinel := bad[v]
		return !sentinel
	})
	return out, FilterStats{Removed: f.Rows() - out.Rows()}, nil
}

// RatingCoerce replaces a string rating column with a float column of
// the same name. An uncoercible value is fatal; sentinel rows must have
// been filtered already.
type RatingCoerce struct {
	Column string
}

func (t *RatingCoerce) Name() string { return "rating_coerce" }

func (t *RatingCoerce) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	col, ok := f.String(t.Column)
	if !ok {
		return nil, nil, &pipeline.TypeContractError{Stage: t.Name(), Column: t.Column, Want: "string column"}
	}
	out := table.NewFloatColumn(t.Column, f.Rows())
	for i := 0; i < col.Len(); i++ {
		v, present := col.Get(i)
		if !present {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, nil, &pipeline.ParseError{Column: t.Column, Value: v, Err: err}
		}
		out.Set(i, x)
	}
	if err := f.ReplaceColumn(out); err != nil {
		return nil, nil, err
	}
	return f, nil, nil
}
