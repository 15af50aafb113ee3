package dateformatprep

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/dataprep/internal/dataset"
	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator/preparatortest"
)

func TestChangeDateFormatContract(t *testing.T) {
	t.Parallel()

	p := preparatortest.Build(t, Name, "property: date\nsource_pattern: yyyy-MM-dd\ntarget_pattern: dd.MM.yyyy\n")
	setup := p.BuildMetadataSetup()

	require.Equal(t, []metadata.Metadata{metadata.PropertyDatePattern{Property: "date", Pattern: metadata.DatePatternISO}}, setup.Prerequisites)
	require.Equal(t, []metadata.Metadata{metadata.PropertyDatePattern{Property: "date", Pattern: metadata.DatePatternDotted}}, setup.Postconditions)
	require.Equal(t, "dd.MM.yyyy", p.Parameters()["target_pattern"])
}

func TestChangeDateFormatRewritesValues(t *testing.T) {
	t.Parallel()

	ds := preparatortest.Dataset(t, preparatortest.Pokemon, 2)
	p, err := New(Params{Property: "date", SourcePattern: "yyyy-MM-dd", TargetPattern: "MM/dd/yyyy"})
	require.NoError(t, err)

	res := preparatortest.Execute(t, p, ds)
	require.Zero(t, res.Errors.Len())
	require.Equal(t, []any{"01/01/2018", "01/02/2018", "01/03/2018", "01/04/2018"}, preparatortest.Column(t, res.Dataset, "date"))
	require.Equal(t, "2018-01-01", preparatortest.Column(t, ds, "date")[0])
}

func TestChangeDateFormatKeepsBadValues(t *testing.T) {
	t.Parallel()

	ds := preparatortest.Dataset(t, "date\n2018-13-01\n2018-12-01\n", 1)
	p, err := New(Params{Property: "date", SourcePattern: "yyyy-MM-dd", TargetPattern: "yyyyMMdd"})
	require.NoError(t, err)

	res := preparatortest.Execute(t, p, ds)
	require.Equal(t, []any{"2018-13-01", "20181201"}, preparatortest.Column(t, res.Dataset, "date"))
	require.Equal(t, 1, res.Errors.Len())
	require.Equal(t, int64(0), res.Errors.Entries()[0].Record)
}

func TestChangeDateFormatRejectsSamePatterns(t *testing.T) {
	t.Parallel()

	_, err := preparator.Default.Build(Name, preparatortest.Decoder("property: date\nsource_pattern: yyyy-MM-dd\ntarget_pattern: yyyy-MM-dd\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "target_pattern")
}

func TestChangeDateFormatAcceptsInferredCompactDates(t *testing.T) {
	t.Parallel()

	ds, err := dataset.ReadCSV(strings.NewReader("id,date\n1,20180101\n2,20180102\n"), dataset.CSVOptions{
		Header:      true,
		InferSchema: true,
		Partitions:  2,
	})
	require.NoError(t, err)
	field, _ := ds.Schema().Field("date")
	require.Equal(t, metadata.TypeInteger, field.Type)

	p, err := New(Params{Property: "date", SourcePattern: "yyyyMMdd", TargetPattern: "yyyy-MM-dd"})
	require.NoError(t, err)

	res := preparatortest.Execute(t, p, ds)
	require.Zero(t, res.Errors.Len())
	require.Equal(t, []any{"2018-01-01", "2018-01-02"}, preparatortest.Column(t, res.Dataset, "date"))
	field, _ = res.Dataset.Schema().Field("date")
	require.Equal(t, metadata.TypeString, field.Type)
}

func TestChangeDateFormatTrimsWhitespace(t *testing.T) {
	t.Parallel()

	ds := preparatortest.Dataset(t, "date\n 2018-12-01 \n", 1)
	p, err := New(Params{Property: "date", SourcePattern: "yyyy-MM-dd", TargetPattern: "dd.MM.yyyy"})
	require.NoError(t, err)

	res := preparatortest.Execute(t, p, ds)
	require.Zero(t, res.Errors.Len())
	require.Equal(t, []any{"01.12.2018"}, preparatortest.Column(t, res.Dataset, "date"))
}
