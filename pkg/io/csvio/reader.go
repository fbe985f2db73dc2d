// Package csvio loads and writes delimited tabular files. Raw review
// data is all-text, so the reader builds an all-string frame from the
// header instead of inferring column types: sentinels like "|" in the
// rating column must survive the load as strings.
package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	iox "github.com/revclean/revclean/pkg/io/ioutils"
	"github.com/revclean/revclean/pkg/table"
)

type ReaderOptions struct {
	Delimiter rune // 0 = sniff, default ','
	Strict    bool // if true, error on short/long records
}

// LoadStats summarizes repairs made while reading. Diagnostic only.
type LoadStats struct {
	Rows         int
	ShortRecords int
	LongRecords  int
}

func (s LoadStats) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("rows", s.Rows),
		slog.Int("short_records", s.ShortRecords),
		slog.Int("long_records", s.LongRecords),
	}
}

// Load reads the whole file into an all-string Frame. Empty cells
// become nulls. Short records pad with nulls and long records drop the
// extras unless Strict is set.
func Load(path string, opt ReaderOptions) (*table.Frame, LoadStats, error) {
	var stats LoadStats
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, stats, err
	}
	defer func() { _ = rc.Close() }()

	r := csv.NewReader(rc)
	if opt.Delimiter != 0 {
		r.Comma = opt.Delimiter
	} else if d, lazy, err := sniffDelimiterAndQuotes(path); err == nil && d != 0 {
		r.Comma = d
		r.LazyQuotes = lazy
	}
	r.ReuseRecord = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, stats, fmt.Errorf("%s: empty file, expected a header row", path)
	}
	if err != nil {
		return nil, stats, err
	}
	names := make([]string, len(header))
	for i := range header {
		names[i] = strings.ToValidUTF8(strings.TrimSpace(header[i]), "?")
	}
	if len(names) > 0 {
		names[0] = strings.TrimPrefix(names[0], "\ufeff")
	}

	f := table.NewStrings(names)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, err
		}
		if len(rec) > len(names) {
			stats.LongRecords++
			if opt.Strict {
				return nil, stats, fmt.Errorf("csv long record at row %d: need %d fields, got %d", f.Rows()+1, len(names), len(rec))
			}
		}
		f.AppendNullRow()
		row := f.Rows() - 1
		for i, name := range names {
			if i >= len(rec) {
				stats.ShortRecords++
				if opt.Strict {
					return nil, stats, fmt.Errorf("csv short record at row %d: need %d fields, got %d", row+1, len(names), len(rec))
				}
				break
			}
			val := strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
			if val == "" {
				continue
			}
			_ = f.SetCell(row, name, val)
		}
	}
	stats.Rows = f.Rows()
	return f, stats, nil
}

func sniffDelimiterAndQuotes(path string) (rune, bool, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = rc.Close() }()
	br := bufio.NewReader(rc)
	sample, _ := br.Peek(4096)
	if len(sample) == 0 {
		return ',', false, nil
	}
	candidates := []byte{',', '\t', ';', '|'}
	best := byte(',')
	bestCount := -1
	for _, c := range candidates {
		cnt := 0
		for _, b := range sample {
			if b == c {
				cnt++
			}
		}
		if cnt > bestCount {
			bestCount = cnt
			best = c
		}
	}
	quoteCount := 0
	for _, b := range sample {
		if b == '"' {
			quoteCount++
		}
	}
	lazy := quoteCount%2 != 0
	return rune(best), lazy, nil
}
