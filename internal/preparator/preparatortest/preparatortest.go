// Package preparatortest holds helpers for exercising preparators in tests.
package preparatortest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/dataprep/internal/dataset"
	"github.com/alexisbeaulieu97/dataprep/internal/errorlog"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
)

// Pokemon is a small slice of the pokemon fixture, split in two partitions.
const Pokemon = `id,identifier,species_id,height,weight,base_experience,order,is_default,date
1,bulbasaur,1,7,69,64,1,1,2018-01-01
2,ivysaur,2,10,130,142,2,1,2018-01-02
3,venusaur,3,20,1000,236,3,1,2018-01-03
4,charmander,4,6,85,62,5,1,2018-01-04
`

// Dataset reads csv (with header) into a dataset with the given partitions.
// Schema inference is off so every value is a string.
func Dataset(t testing.TB, csv string, partitions int) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.ReadCSV(strings.NewReader(csv), dataset.CSVOptions{Header: true, Partitions: partitions})
	require.NoError(t, err)
	return ds
}

// Build creates a registered preparator from a YAML parameter document.
func Build(t testing.TB, name, params string) preparator.Preparator {
	t.Helper()
	p, err := preparator.Default.Build(name, Decoder(params))
	require.NoError(t, err)
	return p
}

// Decoder decodes a YAML parameter document.
func Decoder(params string) preparator.Decoder {
	return func(into any) error {
		return yaml.Unmarshal([]byte(params), into)
	}
}

// Execute runs p once against ds.
func Execute(t testing.TB, p preparator.Preparator, ds *dataset.Dataset) preparator.ExecutionContext {
	t.Helper()
	res, err := p.ExecuteLogic(context.Background(), preparator.Input{
		Dataset:     ds,
		Errors:      errorlog.NewAccumulator(),
		Parallelism: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Dataset)
	return res
}

// Column returns the values of one column.
func Column(t testing.TB, ds *dataset.Dataset, name string) []any {
	t.Helper()
	values, err := ds.Column(name)
	require.NoError(t, err)
	return values
}
