package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/aki/keybit/internal/core/keyway"
	"github.com/aki/keybit/internal/core/logger"
)

//go:embed schemas/config.schema.json
var configSchema []byte

const schemaURL = "https://keybit.invalid/schemas/config.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(configSchema))
		if err != nil {
			schemaErr = fmt.Errorf("failed to parse config schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		compiler.DefaultDraft(jsonschema.Draft2020)
		if err := compiler.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("failed to compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// ValidateYAML checks a configuration document against the JSON schema.
// An empty document is valid.
func ValidateYAML(content []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}

	// The schema validator expects JSON-decoded values
	raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config is not representable as JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// ValidateConfig checks the decoded configuration
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	d := cfg.Defaults
	if d.Spaces < 0 || d.Spaces > keyway.MaxSpaces {
		return fmt.Errorf("defaults.spaces must be between 1 and %d, got %d", keyway.MaxSpaces, d.Spaces)
	}
	if d.MACS != nil && *d.MACS < 0 {
		return fmt.Errorf("defaults.macs must not be negative, got %d", *d.MACS)
	}
	if deepest := d.MaxDepth(); deepest < 1 || deepest > 9 {
		return fmt.Errorf("defaults.depths must resolve to a depth between 1 and 9, got %d", deepest)
	}

	c := cfg.Calculator
	if c.MaxUnknowns != nil && *c.MaxUnknowns < 0 {
		return fmt.Errorf("calculator.maxUnknowns must not be negative, got %d", *c.MaxUnknowns)
	}
	if c.ResultLimit < 0 {
		return fmt.Errorf("calculator.resultLimit must be positive, got %d", c.ResultLimit)
	}

	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logger.ParseFormat(cfg.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}
