package preparator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	dataperrors "github.com/alexisbeaulieu97/dataprep/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("date_pattern", func(fl validator.FieldLevel) bool {
			_, err := metadata.ParseDatePattern(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("data_type", func(fl validator.FieldLevel) bool {
			_, err := metadata.ParseDataType(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// DecodeParams decodes step parameters into params and validates the
// `validate` tags of the struct.
func DecodeParams(decode Decoder, params any) error {
	if err := decode(params); err != nil {
		return dataperrors.NewValidationError("params", fmt.Sprintf("failed to decode: %v", err), err)
	}
	if err := validatorInstance().Struct(params); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return dataperrors.NewValidationError("params", err.Error(), err)
	}

	sort.SliceStable(verrs, func(i, j int) bool {
		return verrs[i].Namespace() < verrs[j].Namespace()
	})

	fe := verrs[0]
	field := yamlishFieldName(fe.Field())
	var message string
	switch fe.Tag() {
	case "required":
		message = "is required"
	case "gt", "gte", "lt", "lte":
		message = fmt.Sprintf("must be %s %s", comparison(fe.Tag()), fe.Param())
	case "date_pattern":
		message = fmt.Sprintf("unsupported date pattern %q", fe.Value())
	case "data_type":
		message = fmt.Sprintf("unsupported data type %q", fe.Value())
	case "nefield":
		message = fmt.Sprintf("must differ from %s", yamlishFieldName(fe.Param()))
	default:
		message = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return dataperrors.NewValidationError(field, message, err)
}

func comparison(tag string) string {
	switch tag {
	case "gt":
		return "greater than"
	case "gte":
		return "at least"
	case "lt":
		return "less than"
	default:
		return "at most"
	}
}

// yamlishFieldName turns NewName into new_name.
func yamlishFieldName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
