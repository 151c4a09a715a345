package engine

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/quantfold/pinebt/pkg/errors"
)

// Config holds the engine parameters for one backtest run.
type Config struct {
	// InitialCapital is the starting capital in account currency.
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital" validate:"gt=0" jsonschema:"title=Initial Capital,description=Starting capital for the backtest,minimum=0"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		InitialCapital: 10000,
	}
}

// ParseConfig parses and validates a YAML config document.
func ParseConfig(content string) (Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse engine config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks the config against its validation tags.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid engine config", err)
	}

	return nil
}

// GenerateSchemaJSON generates a JSON schema string for the engine config.
func (c Config) GenerateSchemaJSON() (string, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	schema := reflector.Reflect(&c)
	schema.Title = "backtest-engine-config"
	schema.Description = "Configuration schema for the backtest engine"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
