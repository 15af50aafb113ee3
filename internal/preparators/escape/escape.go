package escapeprep

import (
	"context"
	"strings"

	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
)

const Name = "remove-escape-characters"

type Params struct {
	Property   string   `yaml:"property" validate:"required"`
	Characters []string `yaml:"characters" validate:"required,min=1,dive,required"`
}

type escapePreparator struct {
	property   string
	characters metadata.EscapeCharacters
	replacer   *strings.Replacer
}

func New(params Params) preparator.Preparator {
	chars := metadata.NewEscapeCharacters(params.Characters...)
	oldnew := make([]string, 0, 2*len(chars.Characters))
	for _, c := range chars.Characters {
		oldnew = append(oldnew, c, "")
	}
	return &escapePreparator{
		property:   params.Property,
		characters: chars,
		replacer:   strings.NewReplacer(oldnew...),
	}
}

func init() {
	preparator.MustRegister(preparator.Descriptor{
		Name:        Name,
		Description: "strip known escape characters from the values of a column",
		Factory: func(decode preparator.Decoder) (preparator.Preparator, error) {
			var params Params
			if err := preparator.DecodeParams(decode, &params); err != nil {
				return nil, err
			}
			return New(params), nil
		},
	})
}

func (p *escapePreparator) Name() string { return Name }

func (p *escapePreparator) Parameters() map[string]string {
	return map[string]string{
		"property":   p.property,
		"characters": strings.Join(p.characters.Characters, ""),
	}
}

// BuildMetadataSetup requires every character to be a known escape character
// of the input.
func (p *escapePreparator) BuildMetadataSetup() preparator.MetadataSetup {
	return preparator.MetadataSetup{
		Prerequisites: []metadata.Metadata{p.characters},
	}
}

func (p *escapePreparator) ExecuteLogic(ctx context.Context, in preparator.Input) (preparator.ExecutionContext, error) {
	if !in.Dataset.Schema().Has(p.property) {
		return in.Unchanged(p.property, preparator.MessagePropertyNotFound), nil
	}

	out, err := in.Dataset.MapColumn(ctx, in.Parallelism, p.property, func(value any) (any, error) {
		if s, ok := value.(string); ok {
			return p.replacer.Replace(s), nil
		}
		return value, nil
	}, nil)
	if err != nil {
		return preparator.ExecutionContext{}, err
	}
	return in.Result(out), nil
}
