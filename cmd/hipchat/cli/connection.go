// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/hipchat/hipchat"
	"github.com/bureau-foundation/hipchat/lib/config"
	"github.com/bureau-foundation/hipchat/lib/secret"
)

// TokenEnvironmentVariable holds the API token when neither
// --token-file nor the config file's token_file is set.
const TokenEnvironmentVariable = "HIPCHAT_TOKEN"

// ConnectionConfig holds the shared flags for reaching the HipChat API.
// Embed it in a params struct; [BindFlags] calls AddFlags for it.
//
// Sources, highest precedence first: flags, the HIPCHAT_TOKEN
// environment variable (token only), the config file named by --config
// or HIPCHAT_CONFIG, built-in defaults.
type ConnectionConfig struct {
	ConfigPath string
	APIURL     string
	TokenFile  string
	Timeout    time.Duration
	Verbose    bool
}

// AddFlags registers --config, --api-url, --token-file, --timeout, and
// --verbose.
func (c *ConnectionConfig) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.ConfigPath, "config", "", "path to hipchat.yaml (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&c.APIURL, "api-url", "", "API base URL (overrides config api_url)")
	flagSet.StringVar(&c.TokenFile, "token-file", "", "file holding the API token, or - for stdin (overrides $"+TokenEnvironmentVariable+" and config token_file)")
	flagSet.DurationVar(&c.Timeout, "timeout", 0, "per-request timeout (overrides config timeout)")
	flagSet.BoolVarP(&c.Verbose, "verbose", "v", false, "log every request at debug level")
}

// Connection is an authenticated client plus the resources backing it.
type Connection struct {
	Client *hipchat.Client
	Logger *slog.Logger

	token *secret.Buffer
}

// Close releases the token buffer and idle HTTP connections.
func (c *Connection) Close() error {
	c.Client.CloseIdleConnections()
	return c.token.Close()
}

// Connect resolves configuration from flags, environment, and the
// config file, reads the token, and constructs a client.
func (c *ConnectionConfig) Connect() (*Connection, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	if c.APIURL != "" {
		cfg.APIURL = c.APIURL
	}
	timeout := cfg.TimeoutDuration()
	if c.Timeout > 0 {
		timeout = c.Timeout
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := NewCommandLogger(level)

	token, err := c.readToken(cfg)
	if err != nil {
		return nil, err
	}

	client, err := hipchat.NewClient(hipchat.ClientConfig{
		BaseURL: cfg.APIURL,
		Token:   token,
		Format:  cfg.Format,
		Timeout: timeout,
		Logger:  logger,
	})
	if err != nil {
		token.Close()
		return nil, err
	}

	return &Connection{Client: client, Logger: logger, token: token}, nil
}

// loadConfig loads the named config file, or returns defaults when no
// file is named anywhere.
func (c *ConnectionConfig) loadConfig() (*config.Config, error) {
	if c.ConfigPath != "" {
		return config.LoadFile(c.ConfigPath)
	}
	if os.Getenv(config.EnvironmentVariable) != "" {
		return config.Load()
	}
	return config.Default(), nil
}

func (c *ConnectionConfig) readToken(cfg *config.Config) (*secret.Buffer, error) {
	if c.TokenFile != "" {
		token, err := secret.ReadFromPath(c.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("reading --token-file: %w", err)
		}
		return token, nil
	}

	if value := os.Getenv(TokenEnvironmentVariable); value != "" {
		token, err := secret.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("storing $%s: %w", TokenEnvironmentVariable, err)
		}
		return token, nil
	}

	if cfg.TokenFile != "" {
		token, err := secret.ReadFromPath(cfg.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("reading token_file: %w", err)
		}
		return token, nil
	}

	return nil, fmt.Errorf("no API token: set --token-file, $%s, or token_file in the config file", TokenEnvironmentVariable)
}
