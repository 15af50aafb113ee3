package renameprep

import (
	"context"

	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
)

// Name is the registered preparator name.
const Name = "rename-property"

// Params configures a rename.
type Params struct {
	Property string `yaml:"property" validate:"required"`
	NewName  string `yaml:"new_name" validate:"required,nefield=Property"`
}

type renamePreparator struct {
	params Params
}

// New creates a rename preparator.
func New(params Params) preparator.Preparator {
	return &renamePreparator{params: params}
}

func init() {
	preparator.MustRegister(preparator.Descriptor{
		Name:        Name,
		Description: "rename a column",
		Factory: func(decode preparator.Decoder) (preparator.Preparator, error) {
			var params Params
			if err := preparator.DecodeParams(decode, &params); err != nil {
				return nil, err
			}
			return New(params), nil
		},
	})
}

func (p *renamePreparator) Name() string { return Name }

func (p *renamePreparator) Parameters() map[string]string {
	return map[string]string{"property": p.params.Property, "new_name": p.params.NewName}
}

// BuildMetadataSetup requires the new name to be free. The old name is not
// required to be known: a missing column is only detected against the data.
func (p *renamePreparator) BuildMetadataSetup() preparator.MetadataSetup {
	return preparator.MetadataSetup{
		Prerequisites: []metadata.Metadata{
			metadata.PropertyAbsent(p.params.NewName),
		},
		Postconditions: []metadata.Metadata{
			metadata.PropertyAbsent(p.params.Property),
			metadata.PropertyPresent(p.params.NewName),
		},
	}
}

func (p *renamePreparator) ExecuteLogic(_ context.Context, in preparator.Input) (preparator.ExecutionContext, error) {
	schema := in.Dataset.Schema()
	if !schema.Has(p.params.Property) {
		return in.Unchanged(p.params.Property, preparator.MessagePropertyNotFound), nil
	}
	if schema.Has(p.params.NewName) {
		return in.Unchanged(p.params.NewName, preparator.MessageNameTaken), nil
	}

	out, err := in.Dataset.WithColumnRenamed(p.params.Property, p.params.NewName)
	if err != nil {
		return preparator.ExecutionContext{}, err
	}
	return in.Result(out), nil
}
