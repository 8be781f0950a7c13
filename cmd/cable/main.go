// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// cable inspects compartmental neuron morphologies: it parses SWC
// files, canonicalizes them, builds the branch tree, and reports
// statistics or exports Graphviz.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emer/cable/ctree"
	"github.com/emer/cable/swc"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "cable",
		Short: "Inspect compartmental neuron morphologies",
		Long: `cable parses SWC morphology files, canonicalizes them, and builds
the branch tree used by the compartmental simulation engine.

Use 'cable info' for structural statistics and 'cable dot' for a
Graphviz rendering of the branch tree.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "YAML config file with defaults")

	rootCmd.AddCommand(
		newVersionCmd(),
		newInfoCmd(),
		newDotCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cable version %s\n", version)
		},
	}
}

// loadMorphology reads an SWC file, canonicalizes it, and builds the
// branch tree; the canonical records are returned alongside the tree.
func loadMorphology(path string) ([]*swc.Record, *ctree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	recs, err := swc.ReadRecords(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	canon, err := swc.Canonical(recs)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	parents, err := swc.ToParentIndex(canon)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	tr, err := ctree.FromParentIndex(parents)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return canon, tr, nil
}
