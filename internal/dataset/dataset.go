// Package dataset is an in-memory partitioned table. Values are immutable:
// every transform returns a new Dataset and leaves its receiver untouched, so a
// pipeline can hold on to the input of a step while the step runs.
package dataset

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
)

var (
	ErrColumnNotFound = errors.New("column does not exist")
	ErrColumnExists   = errors.New("column already exists")
)

// Row is one record. ID is stable across transforms and identifies the record
// in error reports.
type Row struct {
	ID     int64
	Values []any
}

// Dataset is a schema plus rows split into partitions.
type Dataset struct {
	schema     Schema
	partitions [][]Row
}

// New splits rows into at most partitions contiguous chunks. Rows keep their
// order when read back through Rows.
func New(schema Schema, rows []Row, partitions int) *Dataset {
	if partitions < 1 {
		partitions = 1
	}
	if partitions > len(rows) && len(rows) > 0 {
		partitions = len(rows)
	}

	parts := make([][]Row, 0, partitions)
	size := (len(rows) + partitions - 1) / partitions
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		parts = append(parts, slices.Clone(rows[start:end]))
	}
	if len(parts) == 0 {
		parts = append(parts, nil)
	}
	return &Dataset{schema: schema.clone(), partitions: parts}
}

// Schema returns a copy of the schema.
func (d *Dataset) Schema() Schema {
	return d.schema.clone()
}

// Count returns the number of rows.
func (d *Dataset) Count() int {
	n := 0
	for _, p := range d.partitions {
		n += len(p)
	}
	return n
}

// Rows returns every row in partition order.
func (d *Dataset) Rows() []Row {
	out := make([]Row, 0, d.Count())
	for _, p := range d.partitions {
		out = append(out, p...)
	}
	return out
}

// Partitions returns the number of partitions.
func (d *Dataset) Partitions() int {
	return len(d.partitions)
}

// Column returns the values of one column in row order.
func (d *Dataset) Column(name string) ([]any, error) {
	idx := d.schema.Index(name)
	if idx < 0 {
		return nil, errors.Wrapf(ErrColumnNotFound, "column %q", name)
	}
	out := make([]any, 0, d.Count())
	for _, p := range d.partitions {
		for _, r := range p {
			out = append(out, r.Values[idx])
		}
	}
	return out, nil
}

// WithColumnRenamed renames a column. Rows are shared with the receiver.
func (d *Dataset) WithColumnRenamed(from, to string) (*Dataset, error) {
	idx := d.schema.Index(from)
	if idx < 0 {
		return nil, errors.Wrapf(ErrColumnNotFound, "column %q", from)
	}
	if d.schema.Has(to) {
		return nil, errors.Wrapf(ErrColumnExists, "column %q", to)
	}
	schema := d.schema.clone()
	schema.Fields[idx].Name = to
	return &Dataset{schema: schema, partitions: d.partitions}, nil
}

// WithoutColumn drops a column.
func (d *Dataset) WithoutColumn(name string) (*Dataset, error) {
	idx := d.schema.Index(name)
	if idx < 0 {
		return nil, errors.Wrapf(ErrColumnNotFound, "column %q", name)
	}
	schema := Schema{Fields: slices.Delete(d.schema.clone().Fields, idx, idx+1)}

	parts := make([][]Row, len(d.partitions))
	for i, p := range d.partitions {
		rows := make([]Row, len(p))
		for j, r := range p {
			rows[j] = Row{ID: r.ID, Values: slices.Delete(slices.Clone(r.Values), idx, idx+1)}
		}
		parts[i] = rows
	}
	return &Dataset{schema: schema, partitions: parts}, nil
}

// WithFieldType changes the declared type of a column without touching values.
func (d *Dataset) WithFieldType(name string, typ metadata.DataType) (*Dataset, error) {
	idx := d.schema.Index(name)
	if idx < 0 {
		return nil, errors.Wrapf(ErrColumnNotFound, "column %q", name)
	}
	schema := d.schema.clone()
	schema.Fields[idx].Type = typ
	return &Dataset{schema: schema, partitions: d.partitions}, nil
}

// PredicateFactory returns the predicate used for one partition. It is called
// once per partition, from the goroutine that processes it.
type PredicateFactory func(partition int) func(Row) bool

// Filter keeps the rows accepted by the predicate. Partitions are processed
// concurrently, at most parallelism at a time (no limit when parallelism < 1).
func (d *Dataset) Filter(ctx context.Context, parallelism int, predicate PredicateFactory) (*Dataset, error) {
	parts := make([][]Row, len(d.partitions))
	err := d.forEachPartition(ctx, parallelism, func(i int, rows []Row) error {
		keep := predicate(i)
		kept := make([]Row, 0, len(rows))
		for _, r := range rows {
			if keep(r) {
				kept = append(kept, r)
			}
		}
		parts[i] = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Dataset{schema: d.schema.clone(), partitions: parts}, nil
}

// ColumnFunc transforms one value. When it fails, the returned value is still
// stored and the error is handed to the partition's Reporter.
type ColumnFunc func(value any) (any, error)

// Reporter receives the failures of one partition worker. Flush is called once
// the partition is done.
type Reporter interface {
	Report(target string, record int64, message string)
	Flush()
}

// MapColumn applies fn to every value of column. newReporter is called once per
// partition and may return nil to discard failures.
func (d *Dataset) MapColumn(ctx context.Context, parallelism int, column string, fn ColumnFunc, newReporter func() Reporter) (*Dataset, error) {
	idx := d.schema.Index(column)
	if idx < 0 {
		return nil, errors.Wrapf(ErrColumnNotFound, "column %q", column)
	}

	parts := make([][]Row, len(d.partitions))
	err := d.forEachPartition(ctx, parallelism, func(i int, rows []Row) error {
		var reporter Reporter
		if newReporter != nil {
			reporter = newReporter()
		}
		out := make([]Row, len(rows))
		for j, r := range rows {
			values := slices.Clone(r.Values)
			v, err := fn(values[idx])
			if err != nil && reporter != nil {
				reporter.Report(column, r.ID, err.Error())
			}
			values[idx] = v
			out[j] = Row{ID: r.ID, Values: values}
		}
		if reporter != nil {
			reporter.Flush()
		}
		parts[i] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Dataset{schema: d.schema.clone(), partitions: parts}, nil
}

func (d *Dataset) forEachPartition(ctx context.Context, parallelism int, fn func(int, []Row) error) error {
	g, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i, rows := range d.partitions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(i, rows)
		})
	}
	return g.Wait()
}
