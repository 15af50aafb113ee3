package parsedateprep

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/dataprep/internal/dataset"
	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
)

const Name = "parse-date"

// Params names the column and the date pattern its values are expected in.
type Params struct {
	Property string `yaml:"property" validate:"required"`
	Pattern  string `yaml:"pattern" validate:"required,date_pattern"`
}

type parseDatePreparator struct {
	property string
	pattern  metadata.DatePattern
}

func New(params Params) (preparator.Preparator, error) {
	pattern, err := metadata.ParseDatePattern(params.Pattern)
	if err != nil {
		return nil, err
	}
	return &parseDatePreparator{property: params.Property, pattern: pattern}, nil
}

func init() {
	preparator.MustRegister(preparator.Descriptor{
		Name:        Name,
		Description: "validate and normalise the dates of a column against a pattern",
		Factory: func(decode preparator.Decoder) (preparator.Preparator, error) {
			var params Params
			if err := preparator.DecodeParams(decode, &params); err != nil {
				return nil, err
			}
			return New(params)
		},
	})
}

func (p *parseDatePreparator) Name() string { return Name }

func (p *parseDatePreparator) Parameters() map[string]string {
	return map[string]string{"property": p.property, "pattern": string(p.pattern)}
}

func (p *parseDatePreparator) BuildMetadataSetup() preparator.MetadataSetup {
	return preparator.MetadataSetup{
		Postconditions: []metadata.Metadata{
			metadata.PropertyDatePattern{Property: p.property, Pattern: p.pattern},
		},
	}
}

// ExecuteLogic rewrites every parseable value in the canonical form of the
// pattern. Values that do not parse are kept and reported.
func (p *parseDatePreparator) ExecuteLogic(ctx context.Context, in preparator.Input) (preparator.ExecutionContext, error) {
	if !in.Dataset.Schema().Has(p.property) {
		return in.Unchanged(p.property, preparator.MessagePropertyNotFound), nil
	}

	out, err := in.Dataset.MapColumn(ctx, in.Parallelism, p.property, func(value any) (any, error) {
		if value == nil {
			return nil, nil
		}
		raw := dataset.FormatValue(value)
		parsed, err := p.pattern.Parse(strings.TrimSpace(raw))
		if err != nil {
			return raw, fmt.Errorf("cannot parse %q with pattern %s", raw, p.pattern)
		}
		return p.pattern.Format(parsed), nil
	}, in.Reporter())
	if err != nil {
		return preparator.ExecutionContext{}, err
	}
	// Inferred schemas type compact dates such as 20180101 as integers.
	out, err = out.WithFieldType(p.property, metadata.TypeString)
	if err != nil {
		return preparator.ExecutionContext{}, err
	}
	return in.Result(out), nil
}
