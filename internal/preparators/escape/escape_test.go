package escapeprep

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator/preparatortest"
)

func TestRemoveEscapeCharactersContract(t *testing.T) {
	t.Parallel()

	p := preparatortest.Build(t, Name, "property: identifier\ncharacters: [\"\\\\\", \"'\"]\n")
	require.Equal(t, []metadata.Metadata{metadata.NewEscapeCharacters(`'`, `\`)}, p.BuildMetadataSetup().Prerequisites)
	require.Empty(t, p.BuildMetadataSetup().Postconditions)
	require.Equal(t, map[string]string{"property": "identifier", "characters": `'\`}, p.Parameters())
}

func TestRemoveEscapeCharacters(t *testing.T) {
	t.Parallel()

	ds := preparatortest.Dataset(t, "identifier\nmr\\. mime\nfarfetch'd\nplain\n", 2)
	res := preparatortest.Execute(t, New(Params{Property: "identifier", Characters: []string{`\`, `'`}}), ds)

	require.Zero(t, res.Errors.Len())
	require.Equal(t, []any{"mr. mime", "farfetchd", "plain"}, preparatortest.Column(t, res.Dataset, "identifier"))
}

func TestRemoveEscapeCharactersRequiresCharacters(t *testing.T) {
	t.Parallel()

	_, err := preparator.Default.Build(Name, preparatortest.Decoder("property: identifier\n"))
	require.Error(t, err)
	_, err = preparator.Default.Build(Name, preparatortest.Decoder("property: identifier\ncharacters: [\"\"]\n"))
	require.Error(t, err)
}
