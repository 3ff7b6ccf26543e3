package main

import (
	"bytes"
	"flag"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	arena "github.com/pavanmanishd/arena/v2"
)

// loadConfig returns the default arena config overlaid with the YAML file at
// path, if any, and then with capacity, if not empty.
func loadConfig(path, capacity string) (arena.Config, error) {
	var cfg arena.Config
	fs := flag.NewFlagSet("defaults", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.RegisterFlags(fs)

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "read config file")
		}
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, errors.Wrapf(err, "parse config file %s", path)
		}
	}

	if capacity != "" {
		if err := cfg.Capacity.UnmarshalText([]byte(capacity)); err != nil {
			return cfg, errors.Wrapf(err, "invalid capacity %q", capacity)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}
