package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from strata.yml.
type ProjectConfig struct {
	Root        string   `yaml:"root,omitempty"`
	ProjectName string   `yaml:"projectName,omitempty"`
	Extension   string   `yaml:"extension,omitempty"`
	ExcludeDirs []string `yaml:"excludeDirs,omitempty"`
	MaxFiles    int      `yaml:"maxFiles,omitempty"`
	Timeout     Duration `yaml:"timeout,omitempty"`
	OutputDir   string   `yaml:"outputDir,omitempty"`
	Verbose     bool     `yaml:"verbose,omitempty"`
}

// Duration wraps time.Duration so strata.yml can write timeouts as "90s"
// instead of raw nanosecond integers.
type Duration time.Duration

// UnmarshalYAML accepts either a duration string ("90s") or a bare integer
// number of seconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.ShortTag() == "!!int" {
		var seconds int
		if err := value.Decode(&seconds); err != nil {
			return err
		}
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}
	var raw string
	if err := value.Decode(&raw); err == nil && raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}
	var seconds int
	if err := value.Decode(&seconds); err != nil {
		return err
	}
	*d = Duration(time.Duration(seconds) * time.Second)
	return nil
}

// AsDuration returns d as a time.Duration.
func (d Duration) AsDuration() time.Duration { return time.Duration(d) }

// Load attempts to read strata.yml or strata.yaml from dir. It returns a
// zero-value config, not an error, when no config file is present — callers
// fall back to flag/env defaults in that case.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"strata.yml", "strata.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
