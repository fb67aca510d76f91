package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
	outputJSON  = "json"
)

// cliConfig is the optional YAML file passed with --config.
type cliConfig struct {
	// Output is the default format of the fields and get commands.
	Output string `yaml:"output"`
	// PageSize limits how many options fill shows per select prompt.
	PageSize int `yaml:"page_size"`
	// StrictNames fails on forms that repeat a field name.
	StrictNames bool `yaml:"strict_names"`
	// EmulateHost installs the emulated page scripts. Defaults to true.
	EmulateHost *bool `yaml:"emulate_host"`
	// LabelSelector and SurveySelector override the row scan.
	LabelSelector  string `yaml:"label_selector"`
	SurveySelector string `yaml:"survey_selector"`
	// HTTPTimeout bounds fetching a form given as a URL.
	HTTPTimeout time.Duration `yaml:"http_timeout"`
}

func defaultConfig() cliConfig {
	return cliConfig{Output: outputTable, PageSize: 10, HTTPTimeout: 30 * time.Second}
}

func (c cliConfig) emulate() bool {
	return c.EmulateHost == nil || *c.EmulateHost
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (cliConfig, error) {
	cfg := defaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := validateOutput(cfg.Output); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if cfg.PageSize < 0 {
		return cfg, fmt.Errorf("config: %s: page_size must not be negative", path)
	}
	if cfg.HTTPTimeout < 0 {
		return cfg, fmt.Errorf("config: %s: http_timeout must not be negative", path)
	}
	return cfg, nil
}

func validateOutput(format string) error {
	switch format {
	case outputTable, outputYAML, outputJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, yaml or json)", format)
	}
}
