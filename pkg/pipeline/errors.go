package pipeline

import (
	"fmt"
	"strings"
)

// ParseError reports a scalar field that could not be coerced to its
// target numeric type. There is no row-level skip-and-continue for this
// class; the run aborts.
type ParseError struct {
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q in column %s: %v", e.Value, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ColumnBreach is one column exceeding its allowed null percentage.
type ColumnBreach struct {
	Column  string
	NullPct float64
}

// DataQualityError reports breached null-rate thresholds. It enumerates
// every breaching column and the row-incidence figure.
type DataQualityError struct {
	Columns          []ColumnBreach
	MaxColumnNullPct float64
	RowIncidencePct  float64
	MaxRowNullPct    float64
}

func (e *DataQualityError) Error() string {
	var parts []string
	if len(e.Columns) > 0 {
		cols := make([]string, len(e.Columns))
		for i, b := range e.Columns {
			cols[i] = fmt.Sprintf("%s (%.2f%%)", b.Column, b.NullPct)
		}
		parts = append(parts, fmt.Sprintf("columns exceeding %g%% nulls: %s", e.MaxColumnNullPct, strings.Join(cols, ", ")))
	}
	if e.RowIncidencePct > e.MaxRowNullPct {
		parts = append(parts, fmt.Sprintf("rows with nulls %.2f%% exceed allowed %g%%", e.RowIncidencePct, e.MaxRowNullPct))
	}
	return "data quality check failed: " + strings.Join(parts, "; ")
}

// DataIntegrityError reports rows too sparse to survive a null drop.
// It fires before any row is removed.
type DataIntegrityError struct {
	Rows           int
	MaxRowNullPct  float64
	SampleNullPcts []float64 // first few offenders, for diagnosis
}

func (e *DataIntegrityError) Error() string {
	sample := make([]string, len(e.SampleNullPcts))
	for i, p := range e.SampleNullPcts {
		sample[i] = fmt.Sprintf("%.2f%%", p)
	}
	return fmt.Sprintf("null drop blocked: %d rows exceed allowed null ratio of %g%% (sample: %s)",
		e.Rows, e.MaxRowNullPct, strings.Join(sample, ", "))
}

// DataLossGuardError reports a drop that would remove too large a
// fraction of the dataset. The drop is never committed.
type DataLossGuardError struct {
	LossPct    float64
	MaxLossPct float64
	Before     int
	After      int
}

func (e *DataLossGuardError) Error() string {
	return fmt.Sprintf("null drop would lose %.2f%% of rows (%d -> %d), allowed %g%%",
		e.LossPct, e.Before, e.After, e.MaxLossPct)
}

// TypeContractError signals a caller/wiring bug: a stage received a
// malformed input shape, not a data problem.
type TypeContractError struct {
	Stage  string
	Column string
	Want   string
}

func (e *TypeContractError) Error() string {
	return fmt.Sprintf("%s: column %s does not satisfy the input contract (want %s)", e.Stage, e.Column, e.Want)
}
