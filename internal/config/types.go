package config

import (
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents a pipeline definition document.
type Config struct {
	Version     string        `yaml:"version" validate:"required,semver"`
	Name        string        `yaml:"name" validate:"required,min=1,max=100"`
	Description string        `yaml:"description,omitempty"`
	Settings    Settings      `yaml:"settings,omitempty"`
	Input       Input         `yaml:"input"`
	Output      Output        `yaml:"output,omitempty"`
	Provenance  Provenance    `yaml:"provenance,omitempty"`
	Metadata    []Declaration `yaml:"metadata,omitempty" validate:"omitempty,dive"`
	Steps       []Step        `yaml:"steps" validate:"required,min=1,dive"`

	dir string
}

// Settings holds global execution parameters.
type Settings struct {
	Parallelism int    `yaml:"parallelism,omitempty" validate:"omitempty,min=1,max=64"`
	Partitions  int    `yaml:"partitions,omitempty" validate:"omitempty,min=1,max=1024"`
	LogLevel    string `yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

// Input describes the CSV file the pipeline reads.
type Input struct {
	Path        string `yaml:"path" validate:"required"`
	Header      *bool  `yaml:"header,omitempty"`
	InferSchema bool   `yaml:"infer_schema,omitempty"`
	Delimiter   string `yaml:"delimiter,omitempty" validate:"omitempty,len=1"`
	Encoding    string `yaml:"encoding,omitempty"`
}

// HasHeader reports whether the first line holds column names. Defaults to true.
func (i Input) HasHeader() bool {
	return i.Header == nil || *i.Header
}

// Output describes where the prepared dataset is written. An empty path
// writes to stdout.
type Output struct {
	Path     string `yaml:"path,omitempty"`
	Encoding string `yaml:"encoding,omitempty"`
}

// Provenance configures the optional SQLite provenance store.
type Provenance struct {
	Database string `yaml:"database,omitempty"`
}

// Declaration is a metadata fact known about the raw input.
type Declaration struct {
	Kind       string   `yaml:"kind" validate:"required,oneof=property-existence property-date-pattern property-data-type escape-characters"`
	Property   string   `yaml:"property,omitempty"`
	Exists     *bool    `yaml:"exists,omitempty"`
	Pattern    string   `yaml:"pattern,omitempty"`
	Type       string   `yaml:"type,omitempty"`
	Characters []string `yaml:"characters,omitempty"`
}

// Step describes a single preparation. Params are decoded by the preparator
// named in Type.
type Step struct {
	ID     string    `yaml:"id" validate:"required,step_id"`
	Type   string    `yaml:"type" validate:"required"`
	Params yaml.Node `yaml:"params,omitempty" validate:"-"`
}

// Dir returns the directory of the definition file.
func (c *Config) Dir() string {
	return c.dir
}

// ResolvePath makes a relative path relative to the definition file.
func (c *Config) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}
