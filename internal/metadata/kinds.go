package metadata

import (
	"fmt"
	"slices"
	"strings"
)

// PropertyExistence records whether a column is present. As a requirement,
// Exists=true is the "column exists" check and fails when nothing is known
// about the column; Exists=false is the "column absent" check and only fails
// when the column is known to exist.
type PropertyExistence struct {
	Property string
	Exists   bool
}

// PropertyPresent is shorthand for an existence fact that holds.
func PropertyPresent(property string) PropertyExistence {
	return PropertyExistence{Property: property, Exists: true}
}

// PropertyAbsent is shorthand for a non-existence fact.
func PropertyAbsent(property string) PropertyExistence {
	return PropertyExistence{Property: property, Exists: false}
}

func (m PropertyExistence) Kind() Kind     { return KindPropertyExistence }
func (m PropertyExistence) Target() string { return m.Property }

func (m PropertyExistence) Satisfied(current Metadata) bool {
	known, ok := current.(PropertyExistence)
	if !ok {
		return !m.Exists
	}
	return known.Exists == m.Exists
}

func (m PropertyExistence) String() string {
	if m.Exists {
		return fmt.Sprintf("property %q exists", m.Property)
	}
	return fmt.Sprintf("property %q does not exist", m.Property)
}

// PropertyDatePattern records the date pattern the values of a column follow.
// A requirement with an empty Pattern accepts any known pattern.
type PropertyDatePattern struct {
	Property string
	Pattern  DatePattern
}

func (m PropertyDatePattern) Kind() Kind     { return KindPropertyDatePattern }
func (m PropertyDatePattern) Target() string { return m.Property }

func (m PropertyDatePattern) Satisfied(current Metadata) bool {
	known, ok := current.(PropertyDatePattern)
	if !ok {
		return false
	}
	return m.Pattern == "" || known.Pattern == m.Pattern
}

func (m PropertyDatePattern) String() string {
	if m.Pattern == "" {
		return fmt.Sprintf("property %q has a known date pattern", m.Property)
	}
	return fmt.Sprintf("property %q has date pattern %s", m.Property, m.Pattern)
}

// PropertyDataType records the value type of a column.
type PropertyDataType struct {
	Property string
	Type     DataType
}

func (m PropertyDataType) Kind() Kind     { return KindPropertyDataType }
func (m PropertyDataType) Target() string { return m.Property }

func (m PropertyDataType) Satisfied(current Metadata) bool {
	known, ok := current.(PropertyDataType)
	return ok && known.Type == m.Type
}

func (m PropertyDataType) String() string {
	return fmt.Sprintf("property %q has type %s", m.Property, m.Type)
}

// EscapeCharacters records the escape characters used across the raw data.
// It is a dataset-wide fact.
type EscapeCharacters struct {
	Characters []string
}

// NewEscapeCharacters builds the fact with a sorted, de-duplicated set.
func NewEscapeCharacters(chars ...string) EscapeCharacters {
	set := slices.Clone(chars)
	slices.Sort(set)
	return EscapeCharacters{Characters: slices.Compact(set)}
}

func (m EscapeCharacters) Kind() Kind     { return KindEscapeCharacters }
func (m EscapeCharacters) Target() string { return "" }

func (m EscapeCharacters) Satisfied(current Metadata) bool {
	known, ok := current.(EscapeCharacters)
	if !ok {
		return false
	}
	for _, c := range m.Characters {
		if !slices.Contains(known.Characters, c) {
			return false
		}
	}
	return true
}

func (m EscapeCharacters) String() string {
	quoted := make([]string, len(m.Characters))
	for i, c := range m.Characters {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf("escape characters [%s]", strings.Join(quoted, ", "))
}
