package renameprep

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/dataprep/internal/errorlog"
	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator/preparatortest"
)

func TestRenameContract(t *testing.T) {
	t.Parallel()

	p := preparatortest.Build(t, Name, "property: id\nnew_name: ID\n")
	setup := p.BuildMetadataSetup()

	require.Equal(t, []metadata.Metadata{metadata.PropertyAbsent("ID")}, setup.Prerequisites)
	require.Equal(t, []metadata.Metadata{metadata.PropertyAbsent("id"), metadata.PropertyPresent("ID")}, setup.Postconditions)
	require.Equal(t, map[string]string{"property": "id", "new_name": "ID"}, p.Parameters())
}

func TestRenameExecute(t *testing.T) {
	t.Parallel()

	ds := preparatortest.Dataset(t, preparatortest.Pokemon, 2)

	tests := []struct {
		name       string
		params     Params
		wantSchema []string
		wantErrors []errorlog.RecordError
	}{
		{
			name:       "existing column",
			params:     Params{Property: "id", NewName: "ID"},
			wantSchema: []string{"ID", "identifier", "species_id", "height", "weight", "base_experience", "order", "is_default", "date"},
		},
		{
			name:       "missing column",
			params:     Params{Property: "Gaodu", NewName: "gaodu"},
			wantSchema: ds.Schema().Names(),
			wantErrors: []errorlog.RecordError{{Target: "Gaodu", Record: errorlog.StepRecord, Message: preparator.MessagePropertyNotFound}},
		},
		{
			name:       "name taken",
			params:     Params{Property: "order", NewName: "weight"},
			wantSchema: ds.Schema().Names(),
			wantErrors: []errorlog.RecordError{{Target: "weight", Record: errorlog.StepRecord, Message: preparator.MessageNameTaken}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := preparatortest.Execute(t, New(tt.params), ds)
			require.Equal(t, tt.wantSchema, res.Dataset.Schema().Names())
			if tt.wantErrors == nil {
				require.Zero(t, res.Errors.Len())
			} else {
				require.Equal(t, tt.wantErrors, res.Errors.Entries())
				require.Same(t, ds, res.Dataset)
			}
			require.Equal(t, ds.Rows(), res.Dataset.Rows())
		})
	}
}

func TestRenameRejectsInvalidParameters(t *testing.T) {
	t.Parallel()

	_, err := preparator.Default.Build(Name, preparatortest.Decoder("property: id\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "new_name")

	_, err = preparator.Default.Build(Name, preparatortest.Decoder("property: id\nnew_name: id\n"))
	require.Error(t, err)
}
