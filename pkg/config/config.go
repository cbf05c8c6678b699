// Copyright 2025 Truthcrawl Contributors
//
// Package config loads process configuration from environment variables
// (and, optionally, a YAML file), following the teacher's
// getEnv/getEnvInt-helper, explicit-Validate() style.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"gopkg.in/yaml.v3"
)

// Config holds every setting the truthcrawl CLI and library need at
// runtime. There is no global instance; callers always pass one
// explicitly.
type Config struct {
	DataDir                   string `yaml:"data_dir"`
	NodeKeyPath               string `yaml:"node_key_path"`
	LogLevel                  string `yaml:"log_level"`
	LogFormat                 string `yaml:"log_format"`
	SampleSize                int    `yaml:"sample_size"`
	MinObservations           int    `yaml:"min_observations"`
	DisputeMinObservations    int    `yaml:"dispute_min_observations"`
	MetricsAddr               string `yaml:"metrics_addr"`
}

// Load reads configuration from environment variables, applying safe
// defaults for everything except NodeKeyPath (DataDir defaults to ".").
func Load() *Config {
	return &Config{
		DataDir:                getEnv("TRUTHCRAWL_DATA_DIR", "."),
		NodeKeyPath:            getEnv("TRUTHCRAWL_NODE_KEY_PATH", ""),
		LogLevel:               getEnv("TRUTHCRAWL_LOG_LEVEL", "info"),
		LogFormat:              getEnv("TRUTHCRAWL_LOG_FORMAT", "text"),
		SampleSize:             getEnvInt("TRUTHCRAWL_SAMPLE_SIZE", 10),
		MinObservations:        getEnvInt("TRUTHCRAWL_MIN_OBSERVATIONS", 1),
		DisputeMinObservations: getEnvInt("TRUTHCRAWL_DISPUTE_MIN_OBSERVATIONS", 3),
		MetricsAddr:            getEnv("TRUTHCRAWL_METRICS_ADDR", ""),
	}
}

// LoadFile reads a YAML config file, overlaying it onto a fresh
// environment-derived Config -- values present in the file win.
func LoadFile(path string) (*Config, error) {
	cfg := Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, errs.IoError, "read config file %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errs.Wrapf(err, errs.FormatError, "parse config file %s", path)
	}
	return cfg, nil
}

// Validate checks that a Config is usable: DataDir and NodeKeyPath must
// be set, and the numeric fields must be positive.
func (c *Config) Validate() error {
	var problems []string

	if c.DataDir == "" {
		problems = append(problems, "TRUTHCRAWL_DATA_DIR is required but not set")
	}
	if c.NodeKeyPath == "" {
		problems = append(problems, "TRUTHCRAWL_NODE_KEY_PATH is required but not set")
	}
	if c.SampleSize <= 0 {
		problems = append(problems, "TRUTHCRAWL_SAMPLE_SIZE must be positive")
	}
	if c.MinObservations <= 0 {
		problems = append(problems, "TRUTHCRAWL_MIN_OBSERVATIONS must be positive")
	}
	if c.DisputeMinObservations < 3 {
		problems = append(problems, "TRUTHCRAWL_DISPUTE_MIN_OBSERVATIONS must be at least 3")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		problems = append(problems, "TRUTHCRAWL_LOG_FORMAT must be \"text\" or \"json\"")
	}

	if len(problems) > 0 {
		return errs.Newf(errs.IllegalInput, "configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
