// Package jsonlio writes a Frame as newline-delimited JSON, one object
// per row. Null cells are omitted from the object.
package jsonlio

import (
	"bufio"
	"encoding/json"

	iox "github.com/revclean/revclean/pkg/io/ioutils"
	"github.com/revclean/revclean/pkg/table"
)

func WriteAll(path string, f *table.Frame) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)
	for r := 0; r < f.Rows(); r++ {
		m := map[string]any{}
		for _, cs := range f.Schema().Columns {
			col, _ := f.Column(cs.Name)
			switch cc := col.(type) {
			case *table.FloatColumn:
				if v, ok := cc.Get(r); ok {
					m[cs.Name] = v
				}
			case *table.StringColumn:
				if v, ok := cc.Get(r); ok {
					m[cs.Name] = v
				}
			}
		}
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return w.Flush()
}
