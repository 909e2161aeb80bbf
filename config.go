package edfsched

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of a [Domain]. It can be populated
// from YAML or JSON.
type Config struct {
	Width  int    `json:"width" yaml:"width"`
	Policy Policy `json:"policy" yaml:"policy"`
}

// DefaultConfig returns a Config describing [Int8].
func DefaultConfig() *Config {
	return &Config{
		Width:  8,
		Policy: Policies.Signed,
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Width < 1 || c.Width > MaxWidth {
		errs = append(errs, fmt.Errorf("width: %w: %d not in [1, %d]", ErrInvalidWidth, c.Width, MaxWidth))
	}
	if !c.Policy.IsValid() {
		errs = append(errs, fmt.Errorf("policy: %w: %q", ErrUnknownPolicy, c.Policy.String()))
	}
	return errors.Join(errs...)
}

// Domain builds the [Domain] described by the config. A nil config yields
// [Int8].
func (c *Config) Domain() (Domain, error) {
	if c == nil {
		return Int8, nil
	}
	return NewDomain(c.Width, c.Policy)
}

// ParseConfig decodes a YAML (or JSON) document on top of [DefaultConfig] and
// validates the result.
func ParseConfig(data []byte) (*Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadConfig reads r fully and passes it to [ParseConfig].
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}
