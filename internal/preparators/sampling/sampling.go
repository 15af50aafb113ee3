package samplingprep

import (
	"context"
	"math/rand/v2"
	"strconv"

	"github.com/alexisbeaulieu97/dataprep/internal/dataset"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
)

const Name = "sampling"

// Params configures a Bernoulli sample. Percentage is a fraction in (0, 1].
type Params struct {
	Percentage float64 `yaml:"percentage" validate:"gt=0,lte=1"`
	Seed       uint64  `yaml:"seed"`
}

type samplingPreparator struct {
	params Params
}

func New(params Params) preparator.Preparator {
	return &samplingPreparator{params: params}
}

func init() {
	preparator.MustRegister(preparator.Descriptor{
		Name:        Name,
		Description: "keep a random fraction of the rows",
		Factory: func(decode preparator.Decoder) (preparator.Preparator, error) {
			var params Params
			if err := preparator.DecodeParams(decode, &params); err != nil {
				return nil, err
			}
			return New(params), nil
		},
	})
}

func (p *samplingPreparator) Name() string { return Name }

func (p *samplingPreparator) Parameters() map[string]string {
	return map[string]string{
		"percentage": strconv.FormatFloat(p.params.Percentage, 'f', -1, 64),
		"seed":       strconv.FormatUint(p.params.Seed, 10),
	}
}

func (p *samplingPreparator) BuildMetadataSetup() preparator.MetadataSetup {
	return preparator.MetadataSetup{}
}

// ExecuteLogic draws one number per row from a generator seeded with the seed
// and the partition index, so a sample is reproducible for a given
// partitioning.
func (p *samplingPreparator) ExecuteLogic(ctx context.Context, in preparator.Input) (preparator.ExecutionContext, error) {
	out, err := in.Dataset.Filter(ctx, in.Parallelism, func(partition int) func(dataset.Row) bool {
		rng := rand.New(rand.NewPCG(p.params.Seed, uint64(partition)))
		return func(dataset.Row) bool {
			return rng.Float64() < p.params.Percentage
		}
	})
	if err != nil {
		return preparator.ExecutionContext{}, err
	}
	return in.Result(out), nil
}
