// Package parquetio writes a Frame as a Parquet file, for consumers
// that prefer a typed columnar training set over CSV.
package parquetio

import (
	"encoding/json"
	"fmt"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/revclean/revclean/pkg/table"
)

func parquetSchemaJSON(s table.Schema) string {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Kind {
		case table.KindFloat:
			tag += "DOUBLE"
		default:
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteAll writes a Frame to a Parquet file. Null cells are written as
// missing optional values.
func WriteAll(path string, f *table.Frame) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	schema := parquetSchemaJSON(f.Schema())
	writer, err := pw.NewJSONWriter(schema, fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() { _ = writer.WriteStop(); _ = fw.Close() }()
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, f.Cols())
		for _, cs := range f.Schema().Columns {
			col, _ := f.Column(cs.Name)
			switch cc := col.(type) {
			case *table.FloatColumn:
				if v, ok := cc.Get(r); ok {
					rec[cs.Name] = v
				}
			case *table.StringColumn:
				if v, ok := cc.Get(r); ok {
					rec[cs.Name] = v
				}
			}
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("parquet write row: %w", err)
		}
	}
	return nil
}
