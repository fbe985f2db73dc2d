package table

import "fmt"

// Kind enumerates the logical column types the pipeline works with.
// Raw review data is all-text; float columns appear only after
// normalization stages run.
type Kind int

const (
	KindInvalid Kind = iota
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// ColumnSchema describes one column of a Frame.
type ColumnSchema struct {
	Name string
	Kind Kind
}

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

// Column is a typed, nullable column abstraction.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
}

type FloatColumn struct {
	name  string
	data  []float64
	nulls []bool
}

func NewFloatColumn(name string, n int) *FloatColumn {
	c := &FloatColumn{name: name, data: make([]float64, n), nulls: make([]bool, n)}
	for i := range c.nulls {
		c.nulls[i] = true
	}
	return c
}
func (c *FloatColumn) Name() string              { return c.name }
func (c *FloatColumn) Kind() Kind                { return KindFloat }
func (c *FloatColumn) Len() int                  { return len(c.data) }
func (c *FloatColumn) IsNull(i int) bool         { return c.nulls[i] }
func (c *FloatColumn) SetNull(i int)             { c.nulls[i] = true }
func (c *FloatColumn) Get(i int) (float64, bool) { return c.data[i], !c.nulls[i] }
func (c *FloatColumn) Set(i int, v float64)      { c.data[i] = v; c.nulls[i] = false }
func (c *FloatColumn) AppendNull()               { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *FloatColumn) Append(v float64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

func (c *FloatColumn) take(rows []int) *FloatColumn {
	out := &FloatColumn{name: c.name, data: make([]float64, len(rows)), nulls: make([]bool, len(rows))}
	for i, r := range rows {
		out.data[i] = c.data[r]
		out.nulls[i] = c.nulls[r]
	}
	return out
}

type StringColumn struct {
	name  string
	data  []string
	nulls []bool
}

func NewStringColumn(name string, n int) *StringColumn {
	c := &StringColumn{name: name, data: make([]string, n), nulls: make([]bool, n)}
	for i := range c.nulls {
		c.nulls[i] = true
	}
	return c
}
func (c *StringColumn) Name() string             { return c.name }
func (c *StringColumn) Kind() Kind               { return KindString }
func (c *StringColumn) Len() int                 { return len(c.data) }
func (c *StringColumn) IsNull(i int) bool        { return c.nulls[i] }
func (c *StringColumn) SetNull(i int)            { c.nulls[i] = true }
func (c *StringColumn) Get(i int) (string, bool) { return c.data[i], !c.nulls[i] }
func (c *StringColumn) Set(i int, v string)      { c.data[i] = v; c.nulls[i] = false }
func (c *StringColumn) AppendNull()              { c.data = append(c.data, ""); c.nulls = append(c.nulls, true) }
func (c *StringColumn) Append(v string)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

func (c *StringColumn) take(rows []int) *StringColumn {
	out := &StringColumn{name: c.name, data: make([]string, len(rows)), nulls: make([]bool, len(rows))}
	for i, r := range rows {
		out.data[i] = c.data[r]
		out.nulls[i] = c.nulls[r]
	}
	return out
}

// Frame is a columnar container for tabular data. Column-level mutation
// (add, drop, rename, set cell) is in place; row-level operations
// (Filter, Project) return a new Frame so a failed stage leaves its
// input untouched.
type Frame struct {
	cols  []Column
	index map[string]int // name -> col index
	nrows int
}

func New(s Schema) *Frame {
	f := &Frame{cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		switch cs.Kind {
		case KindFloat:
			f.cols[i] = NewFloatColumn(cs.Name, 0)
		case KindString:
			f.cols[i] = NewStringColumn(cs.Name, 0)
		default:
			panic("invalid column kind")
		}
		f.index[cs.Name] = i
	}
	return f
}

// NewStrings builds a Frame of all-string columns, the shape every raw
// dataset has at load time.
func NewStrings(names []string) *Frame {
	s := Schema{Columns: make([]ColumnSchema, len(names))}
	for i, n := range names {
		s.Columns[i] = ColumnSchema{Name: n, Kind: KindString}
	}
	return New(s)
}

func (f *Frame) Rows() int { return f.nrows }
func (f *Frame) Cols() int { return len(f.cols) }

func (f *Frame) Schema() Schema {
	s := Schema{Columns: make([]ColumnSchema, len(f.cols))}
	for i, c := range f.cols {
		s.Columns[i] = ColumnSchema{Name: c.Name(), Kind: c.Kind()}
	}
	return s
}

func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

func (f *Frame) Column(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Float returns the named column when it exists and holds floats.
func (f *Frame) Float(name string) (*FloatColumn, bool) {
	c, ok := f.Column(name)
	if !ok {
		return nil, false
	}
	fc, ok := c.(*FloatColumn)
	return fc, ok
}

// String returns the named column when it exists and holds strings.
func (f *Frame) String(name string) (*StringColumn, bool) {
	c, ok := f.Column(name)
	if !ok {
		return nil, false
	}
	sc, ok := c.(*StringColumn)
	return sc, ok
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *FloatColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		default:
			panic("unknown column type")
		}
	}
	f.nrows++
}

// SetCell sets a single cell value by column name; v may be nil, float64
// or string and must match the column kind.
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	switch col := f.cols[i].(type) {
	case *FloatColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		x, ok := v.(float64)
		if !ok {
			return fmt.Errorf("column %s expects float64", name)
		}
		col.Set(row, x)
	case *StringColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		col.Set(row, s)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}

// AddColumn appends a column; its length must match the frame's row count.
func (f *Frame) AddColumn(c Column) error {
	if _, ok := f.index[c.Name()]; ok {
		return fmt.Errorf("duplicate column: %s", c.Name())
	}
	if c.Len() != f.nrows {
		return fmt.Errorf("column %s has %d rows, frame has %d", c.Name(), c.Len(), f.nrows)
	}
	f.index[c.Name()] = len(f.cols)
	f.cols = append(f.cols, c)
	return nil
}

// ReplaceColumn swaps a column in place, keeping its position. The new
// column may carry a different kind but must keep the same name and length.
func (f *Frame) ReplaceColumn(c Column) error {
	i, ok := f.index[c.Name()]
	if !ok {
		return fmt.Errorf("unknown column: %s", c.Name())
	}
	if c.Len() != f.nrows {
		return fmt.Errorf("column %s has %d rows, frame has %d", c.Name(), c.Len(), f.nrows)
	}
	f.cols[i] = c
	return nil
}

// DropColumn removes a column by name; dropping an absent column is a no-op.
func (f *Frame) DropColumn(name string) {
	i, ok := f.index[name]
	if !ok {
		return
	}
	f.cols = append(f.cols[:i], f.cols[i+1:]...)
	delete(f.index, name)
	for n, j := range f.index {
		if j > i {
			f.index[n] = j - 1
		}
	}
}

// RenameColumn renames a column, failing on collisions.
func (f *Frame) RenameColumn(old, name string) error {
	i, ok := f.index[old]
	if !ok {
		return fmt.Errorf("unknown column: %s", old)
	}
	if _, ok := f.index[name]; ok {
		return fmt.Errorf("duplicate column: %s", name)
	}
	switch col := f.cols[i].(type) {
	case *FloatColumn:
		col.name = name
	case *StringColumn:
		col.name = name
	}
	delete(f.index, old)
	f.index[name] = i
	return nil
}

// NullsInRow counts null fields in a single row.
func (f *Frame) NullsInRow(row int) int {
	n := 0
	for _, c := range f.cols {
		if c.IsNull(row) {
			n++
		}
	}
	return n
}

// Filter returns a new Frame holding only the rows keep reports true for,
// preserving row order.
func (f *Frame) Filter(keep func(row int) bool) *Frame {
	rows := make([]int, 0, f.nrows)
	for i := 0; i < f.nrows; i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	out := &Frame{cols: make([]Column, len(f.cols)), index: make(map[string]int, len(f.index)), nrows: len(rows)}
	for i, c := range f.cols {
		switch col := c.(type) {
		case *FloatColumn:
			out.cols[i] = col.take(rows)
		case *StringColumn:
			out.cols[i] = col.take(rows)
		}
		out.index[c.Name()] = i
	}
	return out
}

// Project returns a new Frame with exactly the named columns, in order.
// Column data is shared with the source frame.
func (f *Frame) Project(names ...string) (*Frame, error) {
	out := &Frame{cols: make([]Column, len(names)), index: make(map[string]int, len(names)), nrows: f.nrows}
	for i, n := range names {
		j, ok := f.index[n]
		if !ok {
			return nil, fmt.Errorf("unknown column: %s", n)
		}
		out.cols[i] = f.cols[j]
		out.index[n] = i
	}
	return out, nil
}
