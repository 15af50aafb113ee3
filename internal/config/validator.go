package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/dataprep/internal/dataset"
	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	dataperrors "github.com/alexisbeaulieu97/dataprep/pkg/errors"
)

// ValidateConfig checks the structural rules of a definition. Whether a step
// type exists and whether its params are valid is decided by the preparator
// registry when the pipeline is built.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return dataperrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]int, len(cfg.Steps))
	for i, step := range cfg.Steps {
		if first, dup := seen[step.ID]; dup {
			return dataperrors.NewValidationError(
				fieldForStep(i, "id"),
				fmt.Sprintf("duplicate step id %q (first used by steps[%d])", step.ID, first),
				nil,
			)
		}
		seen[step.ID] = i
	}

	if _, err := dataset.LookupEncoding(cfg.Input.Encoding); err != nil {
		return dataperrors.NewValidationError("input.encoding", err.Error(), err)
	}
	if _, err := dataset.LookupEncoding(cfg.Output.Encoding); err != nil {
		return dataperrors.NewValidationError("output.encoding", err.Error(), err)
	}

	for i, decl := range cfg.Metadata {
		if err := validateDeclaration(decl, i); err != nil {
			return err
		}
	}

	return nil
}

func validateDeclaration(decl Declaration, index int) error {
	if decl.Kind != string(metadata.KindEscapeCharacters) && decl.Property == "" {
		return dataperrors.NewValidationError(fieldForDeclaration(index, "property"), "is required", nil)
	}

	switch metadata.Kind(decl.Kind) {
	case metadata.KindPropertyDatePattern:
		if _, err := metadata.ParseDatePattern(decl.Pattern); err != nil {
			return dataperrors.NewValidationError(fieldForDeclaration(index, "pattern"), err.Error(), err)
		}
	case metadata.KindPropertyDataType:
		if _, err := metadata.ParseDataType(decl.Type); err != nil {
			return dataperrors.NewValidationError(fieldForDeclaration(index, "type"), err.Error(), err)
		}
	case metadata.KindEscapeCharacters:
		if len(decl.Characters) == 0 {
			return dataperrors.NewValidationError(fieldForDeclaration(index, "characters"), "at least one character is required", nil)
		}
		for _, c := range decl.Characters {
			if c == "" {
				return dataperrors.NewValidationError(fieldForDeclaration(index, "characters"), "characters must not be empty", nil)
			}
		}
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return dataperrors.NewValidationError(field, msg, err)
	}

	return dataperrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName turns Config.Steps[0].ID into steps[0].id.
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = snakeCase(part)
	}
	return strings.Join(parts, ".")
}

func snakeCase(s string) string {
	var b strings.Builder
	upperRun := false
	for i, r := range s {
		isUpper := r >= 'A' && r <= 'Z'
		if isUpper {
			if i > 0 && !upperRun {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
		upperRun = isUpper
	}
	return b.String()
}

func fieldForStep(index int, field string) string {
	return fmt.Sprintf("steps[%d].%s", index, field)
}

func fieldForDeclaration(index int, field string) string {
	return fmt.Sprintf("metadata[%d].%s", index, field)
}
