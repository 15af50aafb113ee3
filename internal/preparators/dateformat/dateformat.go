package dateformatprep

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/dataprep/internal/dataset"
	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
)

const Name = "change-date-format"

type Params struct {
	Property      string `yaml:"property" validate:"required"`
	SourcePattern string `yaml:"source_pattern" validate:"required,date_pattern"`
	TargetPattern string `yaml:"target_pattern" validate:"required,date_pattern,nefield=SourcePattern"`
}

type dateFormatPreparator struct {
	property string
	source   metadata.DatePattern
	target   metadata.DatePattern
}

func New(params Params) (preparator.Preparator, error) {
	source, err := metadata.ParseDatePattern(params.SourcePattern)
	if err != nil {
		return nil, err
	}
	target, err := metadata.ParseDatePattern(params.TargetPattern)
	if err != nil {
		return nil, err
	}
	return &dateFormatPreparator{property: params.Property, source: source, target: target}, nil
}

func init() {
	preparator.MustRegister(preparator.Descriptor{
		Name:        Name,
		Description: "rewrite the dates of a column from one pattern to another",
		Factory: func(decode preparator.Decoder) (preparator.Preparator, error) {
			var params Params
			if err := preparator.DecodeParams(decode, &params); err != nil {
				return nil, err
			}
			return New(params)
		},
	})
}

func (p *dateFormatPreparator) Name() string { return Name }

func (p *dateFormatPreparator) Parameters() map[string]string {
	return map[string]string{
		"property":       p.property,
		"source_pattern": string(p.source),
		"target_pattern": string(p.target),
	}
}

// BuildMetadataSetup requires the source pattern to have been asserted by an
// earlier step or declared on the input.
func (p *dateFormatPreparator) BuildMetadataSetup() preparator.MetadataSetup {
	return preparator.MetadataSetup{
		Prerequisites: []metadata.Metadata{
			metadata.PropertyDatePattern{Property: p.property, Pattern: p.source},
		},
		Postconditions: []metadata.Metadata{
			metadata.PropertyDatePattern{Property: p.property, Pattern: p.target},
		},
	}
}

func (p *dateFormatPreparator) ExecuteLogic(ctx context.Context, in preparator.Input) (preparator.ExecutionContext, error) {
	if !in.Dataset.Schema().Has(p.property) {
		return in.Unchanged(p.property, preparator.MessagePropertyNotFound), nil
	}

	out, err := in.Dataset.MapColumn(ctx, in.Parallelism, p.property, func(value any) (any, error) {
		if value == nil {
			return nil, nil
		}
		raw := dataset.FormatValue(value)
		parsed, err := p.source.Parse(strings.TrimSpace(raw))
		if err != nil {
			return raw, fmt.Errorf("cannot parse %q with pattern %s", raw, p.source)
		}
		return p.target.Format(parsed), nil
	}, in.Reporter())
	if err != nil {
		return preparator.ExecutionContext{}, err
	}
	out, err = out.WithFieldType(p.property, metadata.TypeString)
	if err != nil {
		return preparator.ExecutionContext{}, err
	}
	return in.Result(out), nil
}
