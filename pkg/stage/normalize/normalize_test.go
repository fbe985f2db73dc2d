package normalize

import (
	"context"
	"errors"
	"testing"

	"github.com/revclean/revclean/pkg/pipeline"
	"github.com/revclean/revclean/pkg/table"
)

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		fail bool
	}{
		{"₹1,099", 1099, false},
		{"$2,345.50", 2345.5, false},
		{"-12.5", -12.5, false},
		{"1099", 1099, false},
		{"free", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := ParseCurrency(c.in)
		if c.fail {
			if err == nil {
				t.Errorf("ParseCurrency(%q): expected error, got %v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCurrency(%q): %v", c.in, err)
		} else if got != c.want {
			t.Errorf("ParseCurrency(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParsePercentage(t *testing.T) {
	if got, err := ParsePercentage("64%"); err != nil || got != 64 {
		t.Fatalf("got %v, %v", got, err)
	}
	if _, err := ParsePercentage("n/a%"); err == nil {
		t.Fatal("expected error")
	}
}

func ratingFrame(t *testing.T, vals []any) *table.Frame {
	t.Helper()
	f := table.NewStrings([]string{"rating"})
	for i, v := range vals {
		f.AppendNullRow()
		if err := f.SetCell(i, "rating", v); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func TestRatingFilterAndCoerce(t *testing.T) {
	f := ratingFrame(t, []any{"4.0", "|", "3.5", nil})

	filter := &RatingFilter{Column: "rating", Sentinels: []string{"|"}}
	out, diag, err := filter.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", out.Rows())
	}
	if diag.(FilterStats).Removed != 1 {
		t.Fatalf("expected 1 removed, got %+v", diag)
	}

	coerce := &RatingCoerce{Column: "rating"}
	out, _, err = coerce.Apply(context.Background(), out)
	if err != nil {
		t.Fatal(err)
	}
	col, ok := out.Float("rating")
	if !ok {
		t.Fatal("rating is not a float column after coercion")
	}
	if v, _ := col.Get(0); v != 4.0 {
		t.Fatalf("got %v", v)
	}
	if !col.IsNull(2) {
		t.Fatal("null rating should stay null")
	}
}

func TestRatingCoerceFailsFast(t *testing.T) {
	f := ratingFrame(t, []any{"4.0", "abc"})
	_, _, err := (&RatingCoerce{Column: "rating"}).Apply(context.Background(), f)
	var pe *pipeline.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Value != "abc" {
		t.Fatalf("got %+v", pe)
	}
}

func TestCurrencyCleanReplacesColumns(t *testing.T) {
	f := table.NewStrings([]string{"actual_price", "other"})
	f.AppendNullRow()
	_ = f.SetCell(0, "actual_price", "₹1,099")
	_ = f.SetCell(0, "other", "keep")

	st := &CurrencyClean{Columns: []string{"actual_price", "not_there"}}
	out, _, err := st.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if out.Has("actual_price") {
		t.Fatal("raw column not dropped")
	}
	col, ok := out.Float("actual_price_clean")
	if !ok {
		t.Fatal("clean column missing or wrong kind")
	}
	if v, _ := col.Get(0); v != 1099 {
		t.Fatalf("got %v", v)
	}
}

func TestCurrencyCleanParseErrorIsFatal(t *testing.T) {
	f := table.NewStrings([]string{"actual_price"})
	f.AppendNullRow()
	_ = f.SetCell(0, "actual_price", "call us")
	_, _, err := (&CurrencyClean{Columns: []string{"actual_price"}}).Apply(context.Background(), f)
	var pe *pipeline.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestRatingFilterContract(t *testing.T) {
	f := table.NewStrings([]string{"other"})
	_, _, err := (&RatingFilter{Column: "rating"}).Apply(context.Background(), f)
	var tc *pipeline.TypeContractError
	if !errors.As(err, &tc) {
		t.Fatalf("expected TypeContractError, got %v", err)
	}
}
