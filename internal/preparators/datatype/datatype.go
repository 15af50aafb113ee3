package datatypeprep

import (
	"context"

	"github.com/alexisbeaulieu97/dataprep/internal/dataset"
	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
)

const Name = "change-data-type"

type Params struct {
	Property string `yaml:"property" validate:"required"`
	Type     string `yaml:"type" validate:"required,data_type"`
}

type dataTypePreparator struct {
	property string
	typ      metadata.DataType
}

func New(params Params) (preparator.Preparator, error) {
	typ, err := metadata.ParseDataType(params.Type)
	if err != nil {
		return nil, err
	}
	return &dataTypePreparator{property: params.Property, typ: typ}, nil
}

func init() {
	preparator.MustRegister(preparator.Descriptor{
		Name:        Name,
		Description: "cast the values of a column to another type",
		Factory: func(decode preparator.Decoder) (preparator.Preparator, error) {
			var params Params
			if err := preparator.DecodeParams(decode, &params); err != nil {
				return nil, err
			}
			return New(params)
		},
	})
}

func (p *dataTypePreparator) Name() string { return Name }

func (p *dataTypePreparator) Parameters() map[string]string {
	return map[string]string{"property": p.property, "type": string(p.typ)}
}

func (p *dataTypePreparator) BuildMetadataSetup() preparator.MetadataSetup {
	return preparator.MetadataSetup{
		Postconditions: []metadata.Metadata{
			metadata.PropertyDataType{Property: p.property, Type: p.typ},
		},
	}
}

// ExecuteLogic casts every value. A value that cannot be cast becomes null and
// is reported.
func (p *dataTypePreparator) ExecuteLogic(ctx context.Context, in preparator.Input) (preparator.ExecutionContext, error) {
	if !in.Dataset.Schema().Has(p.property) {
		return in.Unchanged(p.property, preparator.MessagePropertyNotFound), nil
	}

	cast, err := in.Dataset.MapColumn(ctx, in.Parallelism, p.property, func(value any) (any, error) {
		return dataset.Cast(value, p.typ)
	}, in.Reporter())
	if err != nil {
		return preparator.ExecutionContext{}, err
	}

	out, err := cast.WithFieldType(p.property, p.typ)
	if err != nil {
		return preparator.ExecutionContext{}, err
	}
	return in.Result(out), nil
}
