// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dot <morphology.swc>",
		Short: "Export the branch tree as Graphviz",
		Long: `Parse an SWC morphology file, build the branch tree, and write a
Graphviz dot rendering of it.

Example:
  cable dot --balance -o tree.dot pyramidal.swc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := commandConfig(cmd)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")

			_, tr, err := loadMorphology(args[0])
			if err != nil {
				return err
			}
			if cfg.Balance {
				tr.Balance()
			}

			dot := tr.Dot(cfg.GraphName)
			if out == "" {
				fmt.Print(dot)
				return nil
			}
			if err := os.WriteFile(out, []byte(dot), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			return nil
		},
	}

	cmd.Flags().Bool("balance", false, "Rebalance the branch tree first")
	cmd.Flags().String("name", "celltree", "Graph name in the dot output")
	cmd.Flags().StringP("out", "o", "", "Output file (default stdout)")

	return cmd
}
