package csvio

import (
	"encoding/csv"
	"strconv"

	iox "github.com/revclean/revclean/pkg/io/ioutils"
	"github.com/revclean/revclean/pkg/table"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a Frame with a header row and no index column. Null
// cells become empty fields.
func WriteAll(path string, f *table.Frame, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}

	hdr := make([]string, len(f.Schema().Columns))
	for i, cs := range f.Schema().Columns {
		hdr[i] = cs.Name
	}
	if err := w.Write(hdr); err != nil {
		return err
	}

	for r := 0; r < f.Rows(); r++ {
		row := make([]string, len(hdr))
		for c, cs := range f.Schema().Columns {
			col, _ := f.Column(cs.Name)
			switch cc := col.(type) {
			case *table.FloatColumn:
				if v, ok := cc.Get(r); ok {
					row[c] = strconv.FormatFloat(v, 'g', -1, 64)
				}
			case *table.StringColumn:
				if v, ok := cc.Get(r); ok {
					row[c] = v
				}
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
