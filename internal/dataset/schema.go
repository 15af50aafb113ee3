package dataset

import (
	"slices"

	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
)

// Field is one named, typed column.
type Field struct {
	Name string
	Type metadata.DataType
}

// Schema is the ordered list of columns of a dataset.
type Schema struct {
	Fields []Field
}

// NewSchema builds a schema from fields.
func NewSchema(fields ...Field) Schema {
	return Schema{Fields: slices.Clone(fields)}
}

// Index returns the position of the named column or -1.
func (s Schema) Index(name string) int {
	return slices.IndexFunc(s.Fields, func(f Field) bool { return f.Name == name })
}

func (s Schema) Has(name string) bool {
	return s.Index(name) >= 0
}

// Field returns the named column.
func (s Schema) Field(name string) (Field, bool) {
	idx := s.Index(name)
	if idx < 0 {
		return Field{}, false
	}
	return s.Fields[idx], true
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func (s Schema) Equal(other Schema) bool {
	return slices.Equal(s.Fields, other.Fields)
}

func (s Schema) clone() Schema {
	return Schema{Fields: slices.Clone(s.Fields)}
}
