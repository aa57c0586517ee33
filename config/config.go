// Package config holds the parameters of a fixture run and loads them from
// YAML files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/vocdoni/poseidon-fixtures/fixture"
	"github.com/vocdoni/poseidon-fixtures/hash/bn254"
	"gopkg.in/yaml.v3"
)

// DefaultOutput is the fixture path used when none is configured.
const DefaultOutput = "inputs/input.json"

// DefaultInputs are the field elements hashed when none are configured.
var DefaultInputs = []string{"123456789", "987654321"}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config describes a single fixture: what to hash, with which hasher and
// where to write the result.
type Config struct {
	// Inputs are the decimal field elements, in hashing order.
	Inputs []string `yaml:"inputs"`
	// Hasher is a registered hasher name, see bn254.Names.
	Hasher string `yaml:"hasher"`
	// Arity is the number of inputs the hasher is configured for. Zero
	// means len(Inputs).
	Arity int `yaml:"arity"`
	// Output is the path of the fixture file.
	Output string `yaml:"output"`
	// Layout selects the JSON member names, "x" or "values".
	Layout string `yaml:"layout"`
}

// Default returns the configuration reproducing the historical fixture:
// Poseidon over 123456789 and 987654321 written to inputs/input.json.
func Default() *Config {
	return &Config{
		Inputs: append([]string(nil), DefaultInputs...),
		Hasher: bn254.DefaultHasher,
		Output: DefaultOutput,
		Layout: string(fixture.LayoutX),
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file
// keep their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	conf := Default()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return conf, nil
}

// HasherArity returns the arity the hasher must be built with.
func (c *Config) HasherArity() int {
	if c.Arity == 0 {
		return len(c.Inputs)
	}
	return c.Arity
}

// Validate checks the fields that do not depend on the hasher. Input values
// and arity are checked when the fixture is generated.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return fmt.Errorf("%w: no inputs", ErrInvalidConfig)
	}
	if c.Arity < 0 {
		return fmt.Errorf("%w: negative arity %d", ErrInvalidConfig, c.Arity)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: empty output path", ErrInvalidConfig)
	}
	if _, err := fixture.ParseLayout(c.Layout); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
