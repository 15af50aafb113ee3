package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
)

// Cast converts value to typ. nil stays nil.
func Cast(value any, typ metadata.DataType) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch typ {
	case metadata.TypeString:
		return FormatValue(value), nil
	case metadata.TypeInteger:
		switch v := value.(type) {
		case int64:
			return v, nil
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("cannot cast %v to integer: fractional value", v)
			}
			if v < math.MinInt64 || v >= math.MaxInt64 {
				return nil, fmt.Errorf("cannot cast %v to integer: out of range", v)
			}
			return int64(v), nil
		case bool:
			if v {
				return int64(1), nil
			}
			return int64(0), nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot cast %q to integer", v)
			}
			return n, nil
		}
	case metadata.TypeDouble:
		switch v := value.(type) {
		case int64:
			return float64(v), nil
		case float64:
			return v, nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("cannot cast %q to double", v)
			}
			return f, nil
		}
	case metadata.TypeBoolean:
		switch v := value.(type) {
		case bool:
			return v, nil
		case int64:
			return v != 0, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("cannot cast %q to boolean", v)
			}
			return b, nil
		}
	default:
		return nil, fmt.Errorf("unsupported data type %q", typ)
	}
	return nil, fmt.Errorf("cannot cast %v (%T) to %s", value, value, typ)
}

// FormatValue renders a value the way it is written to CSV.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// inferType returns the narrowest type every non-empty value parses as.
func inferType(values []string) metadata.DataType {
	candidates := []metadata.DataType{metadata.TypeInteger, metadata.TypeDouble, metadata.TypeBoolean}
	for _, typ := range candidates {
		ok, seen := true, false
		for _, v := range values {
			if v == "" {
				continue
			}
			seen = true
			if _, err := Cast(v, typ); err != nil {
				ok = false
				break
			}
		}
		if ok && seen {
			return typ
		}
	}
	return metadata.TypeString
}
