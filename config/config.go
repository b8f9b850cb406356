// Package config loads jkc encoder settings from YAML.
//
//	lineBuffer: 4096
//	maxNumber: 15
//	order: key          # or id
//	strict: false
//	flushTrailing: false
//	comments: false
//	compression: none   # zstd, lz4
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/signadot/jkc/compression"
	"github.com/signadot/jkc/dict"
	"github.com/signadot/jkc/encode"

	"github.com/goccy/go-yaml"
)

type Config struct {
	LineBuffer    int    `yaml:"lineBuffer,omitempty"`
	MaxNumber     int    `yaml:"maxNumber,omitempty"`
	Order         string `yaml:"order,omitempty"`
	Strict        bool   `yaml:"strict,omitempty"`
	FlushTrailing bool   `yaml:"flushTrailing,omitempty"`
	Comments      bool   `yaml:"comments,omitempty"`
	Compression   string `yaml:"compression,omitempty"`
}

func Default() *Config {
	return &Config{
		LineBuffer:  encode.DefaultLineBufferSize,
		MaxNumber:   encode.DefaultMaxNumberLen,
		Order:       dict.OrderKey.String(),
		Compression: compression.None.String(),
	}
}

// Load reads the config at path over the defaults.
func Load(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config %q: %w", path, err)
	}
	cfg, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("error in config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Unknown fields are errors.
func Parse(d []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalWithOptions(d, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.LineBuffer <= 0 {
		return fmt.Errorf("lineBuffer must be positive, got %d", c.LineBuffer)
	}
	if c.MaxNumber <= 0 {
		return fmt.Errorf("maxNumber must be positive, got %d", c.MaxNumber)
	}
	if _, err := dict.ParseOrder(c.Order); err != nil {
		return err
	}
	if _, err := compression.Parse(c.Compression); err != nil {
		return err
	}
	return nil
}

// EncodeOptions translates c into encoder options.
func (c *Config) EncodeOptions(log *slog.Logger) ([]encode.Option, error) {
	order, err := dict.ParseOrder(c.Order)
	if err != nil {
		return nil, err
	}
	return []encode.Option{
		encode.LineBufferSize(c.LineBuffer),
		encode.MaxNumberLen(c.MaxNumber),
		encode.DictOrder(order),
		encode.Strict(c.Strict),
		encode.FlushTrailing(c.FlushTrailing),
		encode.AllowComments(c.Comments),
		encode.Logger(log),
	}, nil
}

func (c *Config) Algorithm() (compression.Algorithm, error) {
	return compression.Parse(c.Compression)
}
