package normalize

import (
	"context"
	"regexp"
	"strconv"

	"github.com/revclean/revclean/pkg/pipeline"
	"github.com/revclean/revclean/pkg/table"
)

var (
	currencyJunk   = regexp.MustCompile(`[^0-9.,\-]`)
	percentageJunk = regexp.MustCompile(`[^0-9.\-]`)
)

// ParseCurrency strips currency symbols and thousands separators and
// parses the residue as a float, e.g. "₹1,099" -> 1099.
func ParseCurrency(v string) (float64, error) {
	s := currencyJunk.ReplaceAllString(v, "")
	s = stripCommas(s)
	return strconv.ParseFloat(s, 64)
}

// ParsePercentage strips everything but digits, dot and minus and
// parses the residue as a float, e.g. "64%" -> 64.
func ParsePercentage(v string) (float64, error) {
	s := percentageJunk.ReplaceAllString(v, "")
	return strconv.ParseFloat(s, 64)
}

func stripCommas(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ',' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// CurrencyClean parses each listed currency column into a float
// `<col>_clean` column and drops the raw column. Listed columns are
// optional inputs: a missing one is skipped, a present one of the wrong
// kind is a contract violation.
type CurrencyClean struct {
	Columns []string
}

func (t *CurrencyClean) Name() string { return "currency_clean" }

func (t *CurrencyClean) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	return cleanNumeric(t.Name(), f, t.Columns, ParseCurrency)
}

// PercentageClean is CurrencyClean for percentage-as-string columns.
type PercentageClean struct {
	Columns []string
}

func (t *PercentageClean) Name() string { return "percentage_clean" }

func (t *PercentageClean) Apply(ctx context.Context, f *table.Frame) (*table.Frame, pipeline.Diag, error) {
	return cleanNumeric(t.Name(), f, t.Columns, ParsePercentage)
}

func cleanNumeric(stage string, f *table.Frame, columns []string, parse func(string) (float64, error)) (*table.Frame, pipeline.Diag, error) {
	for _, name := range columns {
		if !f.Has(name) {
			continue
		}
		col, ok := f.String(name)
		if !ok {
			return nil, nil, &pipeline.TypeContractError{Stage: stage, Column: name, Want: "string column"}
		}
		out := table.NewFloatColumn(name+"_clean", f.Rows())
		for i := 0; i < col.Len(); i++ {
			v, present := col.Get(i)
			if !present {
				continue
			}
			x, err := parse(v)
			if err != nil {
				return nil, nil, &pipeline.ParseError{Column: name, Value: v, Err: err}
			}
			out.Set(i, x)
		}
		if err := f.AddColumn(out); err != nil {
			return nil, nil, err
		}
		f.DropColumn(name)
	}
	return f, nil, nil
}
