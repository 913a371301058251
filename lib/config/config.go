// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the hipchat client configuration file.
//
// The file is named by the --config flag or, via [Load], the
// HIPCHAT_CONFIG environment variable. There is no search path and no
// ~/.config discovery: whatever file the operator names is the whole
// configuration.
//
// Files are YAML. A file ending in .json or .jsonc is also accepted;
// comments and trailing commas are stripped with tidwall/jsonc and the
// result is decoded by the same YAML decoder, since JSON is a YAML
// subset.
//
// The access token is never stored inline. token_file points at a file
// holding only the token, and ${HOME} / ${VAR:-default} are expanded in
// that path.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the HipChat v1 REST endpoint.
const DefaultAPIURL = "https://api.hipchat.com/v1/"

// DefaultFormat is the response format requested on GET calls.
const DefaultFormat = "json"

// EnvironmentVariable names the config file for [Load].
const EnvironmentVariable = "HIPCHAT_CONFIG"

// Config is the client configuration.
type Config struct {
	// APIURL is the base URL of the REST API, including the version
	// segment. Default: https://api.hipchat.com/v1/
	APIURL string `yaml:"api_url"`

	// TokenFile is the path to a file containing the admin or
	// notification token. "-" reads the token from stdin.
	TokenFile string `yaml:"token_file"`

	// Format is the response format sent on GET requests. Only "json"
	// can be parsed. Default: json
	Format string `yaml:"format"`

	// Timeout bounds every HTTP request, as a Go duration string.
	// Default: 30s
	Timeout string `yaml:"timeout"`

	// LogLevel is one of debug, info, warn, error. Default: info
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with every optional field populated.
func Default() *Config {
	return &Config{
		APIURL:   DefaultAPIURL,
		Format:   DefaultFormat,
		Timeout:  "30s",
		LogLevel: "info",
	}
}

// Load loads the file named by HIPCHAT_CONFIG. Fails if it is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your hipchat.yaml config file, or use --config", EnvironmentVariable)
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path over the defaults, expands
// variables, and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.TokenFile = expandVars(cfg.TokenFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if c.APIURL == "" {
		errs = append(errs, fmt.Errorf("api_url is required"))
	} else if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		errs = append(errs, fmt.Errorf("api_url must be an http or https URL, got %q", c.APIURL))
	}
	if c.Format != DefaultFormat {
		errs = append(errs, fmt.Errorf("format %q is not supported (only %q)", c.Format, DefaultFormat))
	}
	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("timeout: %w", err))
		}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// TimeoutDuration returns Timeout parsed, or zero for no client-wide
// timeout. Call after Validate.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	duration, _ := time.ParseDuration(c.Timeout)
	return duration
}

// ParseLogLevel maps a log_level value to a slog level. Empty is info.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log_level %q (want debug, info, warn, or error)", level)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} from the environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}
