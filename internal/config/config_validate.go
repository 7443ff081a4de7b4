// Voteweeks - Vote Ingestion and Weekly Outlier Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/voteweeks

package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tomtom215/voteweeks/internal/validation"
)

// memoryLimitPattern matches DuckDB memory sizes such as "512MB", "4 GiB" or "80%".
var memoryLimitPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?\s*([KMGT]i?B|B|%)$`)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if verr := validation.ValidateStruct(&c.Store); verr != nil {
		return fmt.Errorf("invalid store configuration: %w", verr)
	}

	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if strings.Contains(c.Database.Path, "?") {
		return fmt.Errorf("DUCKDB_PATH must not contain '?', got %q", c.Database.Path)
	}
	if c.Database.MaxMemory != "" && !memoryLimitPattern.MatchString(c.Database.MaxMemory) {
		return fmt.Errorf("DUCKDB_MAX_MEMORY must be a size like 512MB or 4GB, got %q", c.Database.MaxMemory)
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
