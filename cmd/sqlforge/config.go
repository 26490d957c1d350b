package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sqlforge/sqlforge/dialect"
)

// StyleOverride lets a sqlforge.yaml file override individual fields of
// the resolved dialect.Config, the way sqlcode.yaml overrides
// per-database connection settings.
type StyleOverride struct {
	ParameterStyle string `yaml:"parameter_style"`
	CastStyle      string `yaml:"cast_style"`
}

func loadStyleOverride(path string) (StyleOverride, error) {
	var out StyleOverride
	if path == "" {
		return out, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

// resolveConfig starts from preset (or dialect.Default when empty) and
// applies any fields an override file sets.
func resolveConfig(preset string, override StyleOverride) dialect.Config {
	cfg := dialect.Default()
	if preset != "" {
		if p, ok := dialect.Preset(dialect.Name(preset)); ok {
			cfg = p
		}
	}
	switch override.ParameterStyle {
	case "anonymous":
		cfg.ParameterStyle = dialect.Anonymous
	case "indexed":
		cfg.ParameterStyle = dialect.Indexed
	case "named":
		cfg.ParameterStyle = dialect.Named
	}
	switch override.CastStyle {
	case "standard":
		cfg.CastStyle = dialect.CastStandard
	case "postgres":
		cfg.CastStyle = dialect.CastPostgres
	}
	return cfg
}
