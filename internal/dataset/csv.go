package dataset

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
)

// CSVOptions controls how ReadCSV interprets its input.
type CSVOptions struct {
	Header      bool
	InferSchema bool
	Delimiter   rune
	Partitions  int
}

// ReadCSV loads a dataset. Without a header columns are named _c0, _c1, ...
// Without inference every column is a string; with it, empty cells become nil.
func ReadCSV(r io.Reader, opts CSVOptions) (*Dataset, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) == 0 {
		return nil, errors.New("read csv: input is empty")
	}

	var names []string
	if opts.Header {
		names = records[0]
		records = records[1:]
	} else {
		names = make([]string, len(records[0]))
		for i := range names {
			names[i] = fmt.Sprintf("_c%d", i)
		}
	}

	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{Name: name, Type: metadata.TypeString}
		if opts.InferSchema {
			column := make([]string, len(records))
			for j, rec := range records {
				column[j] = rec[i]
			}
			fields[i].Type = inferType(column)
		}
	}

	rows := make([]Row, len(records))
	for j, rec := range records {
		values := make([]any, len(fields))
		for i, raw := range rec {
			if !opts.InferSchema {
				values[i] = raw
				continue
			}
			if raw == "" {
				continue
			}
			v, err := Cast(raw, fields[i].Type)
			if err != nil {
				return nil, errors.Wrapf(err, "read csv: row %d column %q", j+1, fields[i].Name)
			}
			values[i] = v
		}
		rows[j] = Row{ID: int64(j), Values: values}
	}

	return New(NewSchema(fields...), rows, opts.Partitions), nil
}

// WriteCSV writes the header and every row in order.
func WriteCSV(w io.Writer, d *Dataset) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(d.schema.Names()); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, r := range d.Rows() {
		record := make([]string, len(r.Values))
		for i, v := range r.Values {
			record[i] = FormatValue(v)
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "write csv row %d", r.ID)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flush csv")
}
