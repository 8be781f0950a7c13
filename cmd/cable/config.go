// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds command defaults loadable from a YAML file via the
// global --config flag; explicit flags always win.
type Config struct {

	// Balance rebalances the branch tree before reporting or export.
	Balance bool `json:"balance" yaml:"balance"`

	// GraphName is the graph name used in Graphviz output.
	GraphName string `json:"graph_name" yaml:"graph_name"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Balance:   false,
		GraphName: "celltree",
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// commandConfig resolves the effective config for a command: the
// --config file if given, defaults otherwise, with set flags overriding.
func commandConfig(cmd *cobra.Command) (*Config, error) {
	cfg := DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("balance") {
		cfg.Balance, _ = cmd.Flags().GetBool("balance")
	}
	if cmd.Flags().Changed("name") {
		cfg.GraphName, _ = cmd.Flags().GetString("name")
	}
	return cfg, nil
}
