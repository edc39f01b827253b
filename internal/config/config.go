package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// The input and output paths are fixed; only metrics export is configurable.
const (
	InputPath         = "data/climate_data.csv"
	OutputPath        = "temperature_plot.png"
	DefaultMetricsJob = "tempplot"
)

// Config holds run configuration loaded from YAML and env.
type Config struct {
	EnvName string

	InputPath  string
	OutputPath string

	MetricsTextfile string
	PushgatewayURL  string
	MetricsJob      string
}

type envConfig struct {
	EnvName        string `env:"ENV_NAME" envDefault:"dev"`
	PushgatewayURL string `env:"PUSHGATEWAY_URL"`
}

type fileConfig struct {
	Metrics struct {
		Textfile       string `yaml:"textfile"`
		PushgatewayURL string `yaml:"pushgateway_url"`
		Job            string `yaml:"job"`
	} `yaml:"metrics"`
}

// Load reads configuration from config/{ENV_NAME}.yaml (default dev) if it exists.
// A missing file means no metrics export. Unknown keys are rejected.
// PUSHGATEWAY_URL overrides metrics.pushgateway_url. Call from project root.
func Load() (*Config, error) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(ec.EnvName) == "" {
		ec.EnvName = "dev"
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	configPath := filepath.Join(cwd, "config", ec.EnvName+".yaml")

	var fc fileConfig
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{
		EnvName:         ec.EnvName,
		InputPath:       InputPath,
		OutputPath:      OutputPath,
		MetricsTextfile: strings.TrimSpace(fc.Metrics.Textfile),
		PushgatewayURL:  strings.TrimSpace(ec.PushgatewayURL),
		MetricsJob:      stringOrDefault(fc.Metrics.Job, DefaultMetricsJob),
	}
	if cfg.PushgatewayURL == "" {
		cfg.PushgatewayURL = strings.TrimSpace(fc.Metrics.PushgatewayURL)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// stringOrDefault returns the trimmed value, or defaultVal when the value is blank.
func stringOrDefault(s, defaultVal string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	return s
}

// validate performs post-load validation of configuration values.
func validate(cfg *Config) error {
	if cfg.PushgatewayURL != "" && !strings.HasPrefix(cfg.PushgatewayURL, "http://") && !strings.HasPrefix(cfg.PushgatewayURL, "https://") {
		return fmt.Errorf("metrics.pushgateway_url must be an http(s) URL, got %q", cfg.PushgatewayURL)
	}
	return nil
}
