package config

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/dataprep/internal/dataset"
	"github.com/alexisbeaulieu97/dataprep/internal/engine"
	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
)

// Declarations converts the metadata section into facts for
// engine.Pipeline.DeclareMetadata.
func (c *Config) Declarations() ([]metadata.Metadata, error) {
	facts := make([]metadata.Metadata, 0, len(c.Metadata))
	for i, decl := range c.Metadata {
		if err := validateDeclaration(decl, i); err != nil {
			return nil, err
		}

		switch metadata.Kind(decl.Kind) {
		case metadata.KindPropertyExistence:
			exists := decl.Exists == nil || *decl.Exists
			facts = append(facts, metadata.PropertyExistence{Property: decl.Property, Exists: exists})
		case metadata.KindPropertyDatePattern:
			pattern, _ := metadata.ParseDatePattern(decl.Pattern)
			facts = append(facts, metadata.PropertyDatePattern{Property: decl.Property, Pattern: pattern})
		case metadata.KindPropertyDataType:
			typ, _ := metadata.ParseDataType(decl.Type)
			facts = append(facts, metadata.PropertyDataType{Property: decl.Property, Type: typ})
		case metadata.KindEscapeCharacters:
			facts = append(facts, metadata.NewEscapeCharacters(decl.Characters...))
		default:
			return nil, errors.Newf("metadata[%d]: unknown kind %q", i, decl.Kind)
		}
	}
	return facts, nil
}

// CSVOptions maps the input section onto dataset reader options.
func (c *Config) CSVOptions() dataset.CSVOptions {
	opts := dataset.CSVOptions{
		Header:      c.Input.HasHeader(),
		InferSchema: c.Input.InferSchema,
		Partitions:  c.Settings.Partitions,
	}
	if c.Input.Delimiter != "" {
		opts.Delimiter = []rune(c.Input.Delimiter)[0]
	}
	return opts
}

// LoadDataset reads the input CSV.
func (c *Config) LoadDataset() (*dataset.Dataset, error) {
	path := c.ResolvePath(c.Input.Path)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "open input %s", path),
			"input.path is resolved relative to the pipeline definition",
		)
	}
	defer f.Close()

	r, err := dataset.DecodingReader(f, c.Input.Encoding)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.ReadCSV(r, c.CSVOptions())
	if err != nil {
		return nil, errors.Wrapf(err, "read input %s", path)
	}
	return ds, nil
}

// WriteDataset writes ds to the output path, or to fallback when no output
// path is configured.
func (c *Config) WriteDataset(ds *dataset.Dataset, fallback io.Writer) error {
	if c.Output.Path == "" {
		return c.encodeCSV(fallback, ds)
	}

	path := c.ResolvePath(c.Output.Path)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create output %s", path)
	}
	if err := c.encodeCSV(f, ds); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "write output %s", path)
	}
	return errors.Wrapf(f.Close(), "close output %s", path)
}

func (c *Config) encodeCSV(w io.Writer, ds *dataset.Dataset) error {
	enc, err := dataset.EncodingWriter(w, c.Output.Encoding)
	if err != nil {
		return err
	}
	if err := dataset.WriteCSV(enc, ds); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// BuildPipeline creates a pipeline over ds with the declared metadata and one
// preparation per step. A nil registry means preparator.Default.
func BuildPipeline(cfg *Config, ds *dataset.Dataset, reg *preparator.Registry, opts ...engine.Option) (*engine.Pipeline, error) {
	if reg == nil {
		reg = preparator.Default
	}

	base := []engine.Option{engine.WithName(cfg.Name)}
	if cfg.Settings.Parallelism > 0 {
		base = append(base, engine.WithParallelism(cfg.Settings.Parallelism))
	}
	p := engine.New(ds, append(base, opts...)...)

	facts, err := cfg.Declarations()
	if err != nil {
		return nil, err
	}
	if err := p.DeclareMetadata(facts...); err != nil {
		return nil, err
	}

	for i, step := range cfg.Steps {
		prep, err := reg.Build(step.Type, nodeDecoder(step.Params))
		if err != nil {
			wrapped := errors.Wrapf(err, "steps[%d] (%s)", i, step.ID)
			if errors.Is(err, preparator.ErrNotRegistered) {
				wrapped = errors.WithHint(wrapped, "run `dataprep preparators` to list the available step types")
			}
			return nil, wrapped
		}
		if err := p.AddPreparation(engine.NewPreparation(step.ID, prep)); err != nil {
			return nil, errors.Wrapf(err, "steps[%d] (%s)", i, step.ID)
		}
	}

	return p, nil
}

func nodeDecoder(node yaml.Node) preparator.Decoder {
	return func(into any) error {
		if node.Kind == 0 {
			return nil
		}
		return node.Decode(into)
	}
}
