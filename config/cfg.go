package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"slices"

	validator "github.com/go-playground/validator/v10"
	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"

	"fontcolor/color"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// ColorDefinition is a palette entry. In YAML it could be either a
	// mapping or a bare color string.
	ColorDefinition struct {
		Color     string `yaml:"color" validate:"required"`
		Label     string `yaml:"label,omitempty"`
		HasBorder bool   `yaml:"has_border,omitempty"`
		// Bare is set when entry was given as a bare color string
		Bare bool `yaml:"-"`
	}

	FontColorConfig struct {
		Strict bool              `yaml:"strict"`
		Colors []ColorDefinition `yaml:"colors" validate:"dive"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		FontColor FontColorConfig `yaml:"font_color"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

// NewColorDefinition returns entry as if it was specified by a bare string.
func NewColorDefinition(c string) ColorDefinition {
	return ColorDefinition{Color: c, Bare: true}
}

var colorDefinitionKeys = []string{"color", "label", "has_border"}

func (d *ColorDefinition) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*d = NewColorDefinition(value.Value)
		return nil
	case yaml.MappingNode:
		// KnownFields is not propagated to custom unmarshalers
		for i := 0; i < len(value.Content); i += 2 {
			if key := value.Content[i].Value; !slices.Contains(colorDefinitionKeys, key) {
				return fmt.Errorf("line %d: field %s not found in color definition", value.Content[i].Line, key)
			}
		}
		type plain ColorDefinition
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		*d = ColorDefinition(p)
		return nil
	default:
		return fmt.Errorf("line %d: color definition must be a string or a mapping", value.Line)
	}
}

func (d ColorDefinition) MarshalYAML() (any, error) {
	if d.Bare {
		return d.Color, nil
	}
	type plain ColorDefinition
	return plain(d), nil
}

// validateConfig is struct level check for things tags cannot express.
func validateConfig(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	for i, c := range cfg.FontColor.Colors {
		field := fmt.Sprintf("FontColor.Colors[%d].Color", i)
		if color.Normalize(c.Color) == "" {
			sl.ReportError(c.Color, field, "Color", "required", "")
			continue
		}
		if cfg.FontColor.Strict && !color.IsValid(c.Color) {
			sl.ReportError(c.Color, field, "Color", "css_color", "")
		}
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(validateConfig)); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation. Palette from the file replaces
// default one entirely.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(*cfg); err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return buf.Bytes(), nil
}
