// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cable.yaml")
	if err := os.WriteFile(path, []byte("balance: true\ngraph_name: morpho\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Balance {
		t.Errorf("balance not loaded")
	}
	if cfg.GraphName != "morpho" {
		t.Errorf("graph name %q, expected morpho", cfg.GraphName)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cable.yaml")
	if err := os.WriteFile(path, []byte("balance: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// unset keys keep their defaults
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GraphName != "celltree" {
		t.Errorf("graph name %q, expected default celltree", cfg.GraphName)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/cable.yaml"); err == nil {
		t.Errorf("expected error for missing config file")
	}
}
