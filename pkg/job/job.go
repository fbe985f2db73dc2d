// Package job wires the cleaning stages into the single-run pipeline:
// load, normalize, sanitize text, gate quality, dedupe, label, project
// and write. One invocation is one unit of work for the scheduler that
// triggers it; any fatal stage error aborts the run with no output.
package job

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/revclean/revclean/pkg/io/csvio"
	"github.com/revclean/revclean/pkg/io/jsonlio"
	"github.com/revclean/revclean/pkg/io/parquetio"
	"github.com/revclean/revclean/pkg/lang"
	"github.com/revclean/revclean/pkg/pipeline"
	"github.com/revclean/revclean/pkg/stage/dedupe"
	"github.com/revclean/revclean/pkg/stage/label"
	"github.com/revclean/revclean/pkg/stage/normalize"
	"github.com/revclean/revclean/pkg/stage/quality"
	"github.com/revclean/revclean/pkg/stage/textclean"
	"github.com/revclean/revclean/pkg/table"
)

// Options carries the run's collaborators. Zero values fall back to
// the whatlanggo classifier and the default slog logger.
type Options struct {
	Classifier lang.Classifier
	Logger     *slog.Logger
}

// Run executes one cleaning run end to end. Re-running with the same
// input and configuration produces byte-identical output.
func Run(ctx context.Context, cfg Config, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	cls := opts.Classifier
	if cls == nil {
		cls = lang.NewWhatlang()
	}

	frame, loadStats, err := csvio.Load(cfg.InputPath, csvio.ReaderOptions{Delimiter: delimiter(cfg)})
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.InputPath, err)
	}
	log.LogAttrs(ctx, slog.LevelInfo, "loaded input", loadStats.Attrs()...)

	out, err := pipeline.NewRunner(log).Run(ctx, frame, Stages(cfg, cls)...)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(cfg.OutputDir, cfg.OutputName())
	switch cfg.OutputFormat {
	case "", "csv":
		err = csvio.WriteAll(path, out, csvio.WriterOptions{Delimiter: delimiter(cfg)})
	case "jsonl":
		err = jsonlio.WriteAll(path, out)
	case "parquet":
		err = parquetio.WriteAll(path, out)
	default:
		return fmt.Errorf("unsupported output format %q", cfg.OutputFormat)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Info("wrote output", "path", path, "rows", out.Rows())
	return nil
}

// Stages builds the fixed stage order. Exposed so callers (and the
// benchmark harness) can run the same sequence over an in-memory frame.
func Stages(cfg Config, cls lang.Classifier) []pipeline.Stage {
	stages := []pipeline.Stage{
		&dedupe.LinkUniqueness{Column: cfg.LinkColumn},
		&normalize.RatingFilter{Column: cfg.RatingColumn, Sentinels: cfg.RatingSentinels},
		&normalize.RatingCoerce{Column: cfg.RatingColumn},
		&textclean.LinkStrip{Column: cfg.ReviewColumn},
		&textclean.EnglishFilter{Column: cfg.ReviewColumn, Out: cfg.EnglishColumn(), Classifier: cls},
		&textclean.StandardizeColumns{Columns: cfg.TextColumns},
		&dedupe.Report{Keys: cfg.DedupeKeys},
		&dedupe.Drop{Keys: cfg.DedupeKeys},
		&normalize.CurrencyClean{Columns: cfg.CurrencyColumns},
		&normalize.PercentageClean{Columns: cfg.PercentageColumns},
	}
	if cfg.QualityGate {
		stages = append(stages, &quality.NullThresholds{
			MaxColumnNullPct: cfg.MaxColumnNullPct,
			MaxRowNullPct:    cfg.MaxRowNullPct,
		})
	}
	stages = append(stages,
		&quality.GuardedNullDrop{
			MaxRowNullPct:   cfg.DropMaxRowNullPct,
			MaxTotalLossPct: cfg.MaxTotalLossPct,
		},
		&label.Sentiment{RatingColumn: cfg.RatingColumn},
		&label.Distribution{},
		&selectColumns{Columns: []string{cfg.IDColumn, cfg.CleanTextColumn(), "sentiment"}},
	)
	return stages
}

func delimiter(cfg Config) rune {
	if cfg.Delimiter == "" {
		return ','
	}
	return rune(cfg.Delimiter[0])
}

// selectColumns is the final projection onto the training columns.
type selectColumns struct {
	Columns []string
}

func (t *selectColumns) Name() string { return "project" }

func (t *selectColumns) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	for _, name := range t.Columns {
		if !f.Has(name) {
			return nil, nil, &pipeline.TypeContractError{Stage: t.Name(), Column: name, Want: "present column"}
		}
	}
	out, err := f.Project(t.Columns...)
	if err != nil {
		return nil, nil, err
	}
	return out, nil, nil
}
