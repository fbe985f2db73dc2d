// Package golearn converts the cleaned, labeled frame into golearn
// DenseInstances so the training dataset can feed model training
// without a round trip through disk.
package golearn

import (
	"fmt"

	"github.com/sjwhitworth/golearn/base"

	"github.com/revclean/revclean/pkg/table"
)

// ToDenseInstances converts a Frame into golearn DenseInstances with
// the named column as the class attribute (typically "sentiment").
func ToDenseInstances(f *table.Frame, class string) (*base.DenseInstances, error) {
	if !f.Has(class) {
		return nil, fmt.Errorf("class column %s not in frame", class)
	}
	cols := f.Schema().Columns
	attrs := make([]base.Attribute, len(cols))
	classIdx := 0
	for i, cs := range cols {
		if cs.Name == class {
			classIdx = i
		}
		switch cs.Kind {
		case table.KindFloat:
			attrs[i] = base.NewFloatAttribute(cs.Name)
		default:
			ca := new(base.CategoricalAttribute)
			ca.SetName(cs.Name)
			attrs[i] = ca
		}
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for r := 0; r < f.Rows(); r++ {
		for c, cs := range cols {
			col, _ := f.Column(cs.Name)
			switch cc := col.(type) {
			case *table.FloatColumn:
				if v, ok := cc.Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(v))
				}
			case *table.StringColumn:
				if v, ok := cc.Get(r); ok {
					inst.Set(specs[c], r, base.Attribute.GetSysValFromString(attrs[c], v))
				}
			}
		}
	}
	if err := inst.AddClassAttribute(attrs[classIdx]); err != nil {
		return nil, err
	}
	return inst, nil
}
