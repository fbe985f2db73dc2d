package dedupe

import (
	"context"
	"errors"
	"testing"

	"github.com/revclean/revclean/pkg/pipeline"
	"github.com/revclean/revclean/pkg/table"
)

func keyFrame(t *testing.T, ids, users []any) *table.Frame {
	t.Helper()
	f := table.NewStrings([]string{"product_id", "user_id"})
	for i := range ids {
		f.AppendNullRow()
		if ids[i] != nil {
			if err := f.SetCell(i, "product_id", ids[i]); err != nil {
				t.Fatal(err)
			}
		}
		if users[i] != nil {
			if err := f.SetCell(i, "user_id", users[i]); err != nil {
				t.Fatal(err)
			}
		}
	}
	return f
}

func TestReportCountsWholeGroups(t *testing.T) {
	f := keyFrame(t,
		[]any{"p1", "p2", "p2", "p3"},
		[]any{"u1", "u2", "u2", "u3"},
	)
	_, diag, err := (&Report{Keys: []string{"product_id", "user_id"}}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	stats := diag.(Stats)
	if stats.Total != 4 || stats.Duplicates != 2 || stats.Pct != 50.0 {
		t.Fatalf("got %+v", stats)
	}
}

func TestDropKeepsFirst(t *testing.T) {
	f := keyFrame(t,
		[]any{"p1", "p2", "p2", "p1"},
		[]any{"u1", "u2", "u2", "u9"},
	)
	out, _, err := (&Drop{Keys: []string{"product_id", "user_id"}}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", out.Rows())
	}
	users, _ := out.String("user_id")
	want := []string{"u1", "u2", "u9"}
	for i, w := range want {
		if v, _ := users.Get(i); v != w {
			t.Fatalf("row %d: got %q, want %q", i, v, w)
		}
	}
}

func TestNullKeysGroupTogether(t *testing.T) {
	f := keyFrame(t,
		[]any{"p1", "p1", "p1"},
		[]any{nil, nil, ""},
	)
	_, diag, err := (&Report{Keys: []string{"product_id", "user_id"}}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	// the two null keys duplicate each other; empty string is distinct
	if stats := diag.(Stats); stats.Duplicates != 2 {
		t.Fatalf("got %+v", stats)
	}
}

func TestMissingKeyColumn(t *testing.T) {
	f := keyFrame(t, []any{"p1"}, []any{"u1"})
	_, _, err := (&Drop{Keys: []string{"nope"}}).Apply(context.Background(), f)
	var tc *pipeline.TypeContractError
	if !errors.As(err, &tc) {
		t.Fatalf("expected TypeContractError, got %v", err)
	}
}

func TestLinkUniqueness(t *testing.T) {
	f := table.NewStrings([]string{"product_link"})
	for i, v := range []any{"l1", "l1", "l2", nil} {
		f.AppendNullRow()
		if v != nil {
			_ = f.SetCell(i, "product_link", v)
		}
	}
	_, diag, err := (&LinkUniqueness{Column: "product_link"}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	stats := diag.(Stats)
	if stats.Total != 3 || stats.Duplicates != 2 || stats.Pct != 66.67 {
		t.Fatalf("got %+v", stats)
	}

	// absent column is a silent no-op
	_, diag, err = (&LinkUniqueness{Column: "absent"}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if diag.(Stats) != (Stats{}) {
		t.Fatalf("got %+v", diag)
	}
}

func TestEmptyFrame(t *testing.T) {
	f := table.NewStrings([]string{"product_id"})
	out, diag, err := (&Report{Keys: []string{"product_id"}}).Apply(context.Background(), f)
	if err != nil || out.Rows() != 0 {
		t.Fatalf("got %v, %d rows", err, out.Rows())
	}
	if diag.(Stats) != (Stats{}) {
		t.Fatalf("got %+v", diag)
	}
}
