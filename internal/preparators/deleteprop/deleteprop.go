package deleteprep

import (
	"context"

	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
)

const Name = "delete-property"

type Params struct {
	Property string `yaml:"property" validate:"required"`
}

type deletePreparator struct {
	params Params
}

func New(params Params) preparator.Preparator {
	return &deletePreparator{params: params}
}

func init() {
	preparator.MustRegister(preparator.Descriptor{
		Name:        Name,
		Description: "drop a column",
		Factory: func(decode preparator.Decoder) (preparator.Preparator, error) {
			var params Params
			if err := preparator.DecodeParams(decode, &params); err != nil {
				return nil, err
			}
			return New(params), nil
		},
	})
}

func (p *deletePreparator) Name() string { return Name }

func (p *deletePreparator) Parameters() map[string]string {
	return map[string]string{"property": p.params.Property}
}

func (p *deletePreparator) BuildMetadataSetup() preparator.MetadataSetup {
	return preparator.MetadataSetup{
		Postconditions: []metadata.Metadata{metadata.PropertyAbsent(p.params.Property)},
	}
}

func (p *deletePreparator) ExecuteLogic(_ context.Context, in preparator.Input) (preparator.ExecutionContext, error) {
	if !in.Dataset.Schema().Has(p.params.Property) {
		return in.Unchanged(p.params.Property, preparator.MessagePropertyNotFound), nil
	}
	out, err := in.Dataset.WithoutColumn(p.params.Property)
	if err != nil {
		return preparator.ExecutionContext{}, err
	}
	return in.Result(out), nil
}
