// Package textclean sanitizes free-text review fields: link stripping,
// English sentence filtering and canonical lowercase standardization.
package textclean

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/revclean/revclean/pkg/pipeline"
	"github.com/revclean/revclean/pkg/table"
)

var (
	urlPattern = regexp.MustCompile(`http[s]?://\S+|www\.\S+`)
	spaceRuns  = regexp.MustCompile(`\s+`)
)

// StripLinks removes URL substrings from text and normalizes the
// surrounding whitespace, e.g. "see http://x.co now" -> "see now".
func StripLinks(text string) string {
	text = urlPattern.ReplaceAllString(text, " ")
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// LinkStats summarizes how many records contained a link. Reported,
// never enforced.
type LinkStats struct {
	Total     int
	WithLinks int
	Pct       float64
}

func (s LinkStats) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("records", s.Total),
		slog.Int("records_with_links", s.WithLinks),
		slog.Float64("pct", s.Pct),
	}
}

// LinkStrip removes URLs from one text column in place. An empty frame
// is a no-op, not an error.
type LinkStrip struct {
	Column string
}

func (t *LinkStrip) Name() string { return "link_strip" }

func (t *LinkStrip) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	if f.Rows() == 0 {
		return f, LinkStats{}, nil
	}
	col, ok := f.String(t.Column)
	if !ok {
		return nil, nil, &pipeline.TypeContractError{Stage: t.Name(), Column: t.Column, Want: "string column"}
	}
	stats := LinkStats{Total: f.Rows()}
	for i := 0; i < col.Len(); i++ {
		v, present := col.Get(i)
		if !present {
			continue
		}
		if urlPattern.MatchString(v) {
			stats.WithLinks++
		}
		col.Set(i, StripLinks(v))
	}
	stats.Pct = round2(float64(stats.WithLinks) / float64(stats.Total) * 100)
	return f, stats, nil
}
