package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/revclean/revclean/pkg/table"
)

// Diag is a structured, non-blocking stage report. Stages return counts
// and percentages instead of logging so the caller owns the sink.
type Diag interface {
	Attrs() []slog.Attr
}

// Stage is one transformation over a Frame. A nil Diag means the stage
// has nothing to report.
type Stage interface {
	Name() string
	Apply(ctx context.Context, f *table.Frame) (*table.Frame, Diag, error)
}

// Runner executes stages in order, logging each stage's diagnostics.
// The first error halts the run; nothing downstream executes.
type Runner struct {
	log *slog.Logger
}

func NewRunner(log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{log: log}
}

func (r *Runner) Run(ctx context.Context, f *table.Frame, stages ...Stage) (*table.Frame, error) {
	cur := f
	for _, s := range stages {
		start := time.Now()
		out, diag, err := s.Apply(ctx, cur)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", s.Name(), err)
		}
		attrs := []slog.Attr{
			slog.Int("rows_in", cur.Rows()),
			slog.Int("rows_out", out.Rows()),
			slog.Duration("elapsed", time.Since(start)),
		}
		if diag != nil {
			attrs = append(attrs, diag.Attrs()...)
		}
		r.log.LogAttrs(ctx, slog.LevelInfo, "stage "+s.Name(), attrs...)
		cur = out
	}
	return cur, nil
}
