// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/mailchimp"
)

// loadConfig layers the configuration: defaults, then the YAML file at path
// (if any), then a .env file in the working directory, then the environment.
// Flags are applied by the caller on top.
func loadConfig(path string) (mailchimp.Config, error) {
	cfg := mailchimp.DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// a missing .env file is not an error
	_ = godotenv.Load()

	cfg.ApplyEnv()
	return cfg, nil
}
