package metadata

import (
	"fmt"
	"slices"
	"time"
)

// DatePattern names a supported date layout in the notation pipeline authors
// use in definitions.
type DatePattern string

const (
	DatePatternISO          DatePattern = "yyyy-MM-dd"
	DatePatternDotted       DatePattern = "dd.MM.yyyy"
	DatePatternUSSlash      DatePattern = "MM/dd/yyyy"
	DatePatternEUSlash      DatePattern = "dd/MM/yyyy"
	DatePatternCompact      DatePattern = "yyyyMMdd"
	DatePatternDayFirstDash DatePattern = "dd-MM-yyyy"
	DatePatternMonthFirst   DatePattern = "MM-dd-yyyy"
)

var datePatternLayouts = map[DatePattern]string{
	DatePatternISO:          "2006-01-02",
	DatePatternDotted:       "02.01.2006",
	DatePatternUSSlash:      "01/02/2006",
	DatePatternEUSlash:      "02/01/2006",
	DatePatternCompact:      "20060102",
	DatePatternDayFirstDash: "02-01-2006",
	DatePatternMonthFirst:   "01-02-2006",
}

// DatePatterns lists every supported pattern in a stable order.
func DatePatterns() []DatePattern {
	out := make([]DatePattern, 0, len(datePatternLayouts))
	for p := range datePatternLayouts {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// ParseDatePattern validates a pattern name.
func ParseDatePattern(s string) (DatePattern, error) {
	p := DatePattern(s)
	if _, ok := datePatternLayouts[p]; !ok {
		return "", fmt.Errorf("unsupported date pattern %q", s)
	}
	return p, nil
}

// Layout returns the Go time layout for the pattern.
func (p DatePattern) Layout() string {
	return datePatternLayouts[p]
}

// Parse reads value using the pattern.
func (p DatePattern) Parse(value string) (time.Time, error) {
	layout, ok := datePatternLayouts[p]
	if !ok {
		return time.Time{}, fmt.Errorf("unsupported date pattern %q", string(p))
	}
	return time.Parse(layout, value)
}

// Format renders t using the pattern.
func (p DatePattern) Format(t time.Time) string {
	return t.Format(datePatternLayouts[p])
}

// DataType is the value type of a column.
type DataType string

const (
	TypeString  DataType = "string"
	TypeInteger DataType = "integer"
	TypeDouble  DataType = "double"
	TypeBoolean DataType = "boolean"
)

// ParseDataType validates a type name.
func ParseDataType(s string) (DataType, error) {
	switch t := DataType(s); t {
	case TypeString, TypeInteger, TypeDouble, TypeBoolean:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported data type %q", s)
	}
}
