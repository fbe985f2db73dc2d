package table

import "testing"

func newTestFrame(t *testing.T) *Frame {
	t.Helper()
	f := NewStrings([]string{"a", "b"})
	for i := 0; i < 3; i++ {
		f.AppendNullRow()
	}
	if err := f.SetCell(0, "a", "x"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCell(1, "a", "y"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCell(0, "b", "1"); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestAddReplaceDropRename(t *testing.T) {
	f := newTestFrame(t)

	c := NewFloatColumn("n", f.Rows())
	c.Set(0, 1.5)
	if err := f.AddColumn(c); err != nil {
		t.Fatal(err)
	}
	if err := f.AddColumn(NewFloatColumn("n", f.Rows())); err == nil {
		t.Fatal("expected duplicate column error")
	}

	// replace string "a" with floats, keeping position 0
	r := NewFloatColumn("a", f.Rows())
	r.Set(2, 9)
	if err := f.ReplaceColumn(r); err != nil {
		t.Fatal(err)
	}
	if f.Schema().Columns[0].Kind != KindFloat {
		t.Fatalf("replace did not keep position, schema: %+v", f.Schema())
	}

	f.DropColumn("b")
	if f.Has("b") || f.Cols() != 2 {
		t.Fatalf("drop failed, cols=%d", f.Cols())
	}
	// index must stay consistent after the shift
	if _, ok := f.Float("n"); !ok {
		t.Fatal("column n lost after drop")
	}

	if err := f.RenameColumn("n", "m"); err != nil {
		t.Fatal(err)
	}
	if f.Has("n") || !f.Has("m") {
		t.Fatal("rename failed")
	}
}

func TestFilterKeepsOrderAndNulls(t *testing.T) {
	f := newTestFrame(t)
	out := f.Filter(func(row int) bool { return row != 1 })
	if out.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", out.Rows())
	}
	if f.Rows() != 3 {
		t.Fatal("filter mutated its input")
	}
	col, _ := out.String("a")
	if v, _ := col.Get(0); v != "x" {
		t.Fatalf("row order lost, got %q", v)
	}
	b, _ := out.String("b")
	if !b.IsNull(1) {
		t.Fatal("null not carried through filter")
	}
}

func TestProject(t *testing.T) {
	f := newTestFrame(t)
	out, err := f.Project("b")
	if err != nil {
		t.Fatal(err)
	}
	if out.Cols() != 1 || out.Rows() != 3 {
		t.Fatalf("got %d cols %d rows", out.Cols(), out.Rows())
	}
	if _, err := f.Project("missing"); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestNullsInRow(t *testing.T) {
	f := newTestFrame(t)
	if got := f.NullsInRow(2); got != 2 {
		t.Fatalf("expected 2 nulls, got %d", got)
	}
	if got := f.NullsInRow(0); got != 0 {
		t.Fatalf("expected 0 nulls, got %d", got)
	}
}
