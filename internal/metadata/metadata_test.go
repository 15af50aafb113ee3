package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPropertyExistenceSatisfied(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		requirement PropertyExistence
		current     Metadata
		want        bool
	}{
		{name: "exists with nothing known", requirement: PropertyPresent("id"), current: nil, want: false},
		{name: "exists when known present", requirement: PropertyPresent("id"), current: PropertyPresent("id"), want: true},
		{name: "exists when known absent", requirement: PropertyPresent("id"), current: PropertyAbsent("id"), want: false},
		{name: "absent with nothing known", requirement: PropertyAbsent("ID"), current: nil, want: true},
		{name: "absent when known present", requirement: PropertyAbsent("ID"), current: PropertyPresent("ID"), want: false},
		{name: "absent when known absent", requirement: PropertyAbsent("ID"), current: PropertyAbsent("ID"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.requirement.Satisfied(tt.current))
		})
	}
}

func TestPropertyDatePatternSatisfied(t *testing.T) {
	t.Parallel()

	known := PropertyDatePattern{Property: "date", Pattern: DatePatternISO}

	require.False(t, PropertyDatePattern{Property: "date", Pattern: DatePatternISO}.Satisfied(nil))
	require.True(t, PropertyDatePattern{Property: "date", Pattern: DatePatternISO}.Satisfied(known))
	require.False(t, PropertyDatePattern{Property: "date", Pattern: DatePatternDotted}.Satisfied(known))
	require.True(t, PropertyDatePattern{Property: "date"}.Satisfied(known), "empty pattern accepts any known pattern")
}

func TestPropertyDataTypeSatisfied(t *testing.T) {
	t.Parallel()

	req := PropertyDataType{Property: "height", Type: TypeInteger}
	require.False(t, req.Satisfied(nil))
	require.True(t, req.Satisfied(PropertyDataType{Property: "height", Type: TypeInteger}))
	require.False(t, req.Satisfied(PropertyDataType{Property: "height", Type: TypeDouble}))
}

func TestEscapeCharactersSatisfiedBySuperset(t *testing.T) {
	t.Parallel()

	known := NewEscapeCharacters(`\`, `"`, `\`)
	require.Equal(t, []string{`"`, `\`}, known.Characters)
	require.Equal(t, "", known.Target())

	require.True(t, NewEscapeCharacters(`\`).Satisfied(known))
	require.True(t, NewEscapeCharacters().Satisfied(known))
	require.False(t, NewEscapeCharacters(`'`).Satisfied(known))
	require.False(t, NewEscapeCharacters(`\`).Satisfied(nil))
}

func TestKeyString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "property-existence(id)", KeyOf(PropertyPresent("id")).String())
	require.Equal(t, "escape-characters", KeyOf(NewEscapeCharacters(`\`)).String())
}

func TestDatePatternRoundTrip(t *testing.T) {
	t.Parallel()

	p, err := ParseDatePattern("dd.MM.yyyy")
	require.NoError(t, err)

	parsed, err := p.Parse("24.12.2018")
	require.NoError(t, err)
	require.Equal(t, time.Date(2018, time.December, 24, 0, 0, 0, 0, time.UTC), parsed)
	require.Equal(t, "2018-12-24", DatePatternISO.Format(parsed))

	_, err = ParseDatePattern("yy/M/d")
	require.Error(t, err)
	_, err = DatePattern("nonsense").Parse("2018-01-01")
	require.Error(t, err)
	require.Len(t, DatePatterns(), 7)
}

func TestParseDataType(t *testing.T) {
	t.Parallel()

	got, err := ParseDataType("double")
	require.NoError(t, err)
	require.Equal(t, TypeDouble, got)

	_, err = ParseDataType("decimal")
	require.Error(t, err)
}
