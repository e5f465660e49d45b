// Package config loads the escape command's settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/escape"
	"github.com/joshvictor1024/go-mandelbrot-escape/pkg/formula"
)

type Config struct {
	MaxIterations int     `yaml:"max_iterations"`
	Threshold     float64 `yaml:"threshold"`
	Formula       string  `yaml:"formula"`
	Workers       int     `yaml:"workers"`
	DB            string  `yaml:"db"`
}

func Default() Config {
	return Config{
		MaxIterations: escape.DefaultMaxIterations,
		Threshold:     escape.DefaultThreshold,
		Formula:       formula.Default,
		Workers:       1,
	}
}

// Load reads path on top of Default. Keys missing from the file keep their
// default value; unknown keys are an error. The result is not validated so
// callers can apply overrides first.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("yaml decode: %w", err)
	}
	return cfg, nil
}

func (c Config) Params() escape.Params {
	return escape.Params{MaxIterations: c.MaxIterations, Threshold: c.Threshold}
}

func (c Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers %d must be positive", c.Workers)
	}
	if _, err := formula.Parse(c.Formula); err != nil {
		return err
	}
	return nil
}

// Save writes c as YAML.
func Save(path string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
