// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <morphology.swc>",
		Short: "Report structural statistics of a morphology",
		Long: `Parse an SWC morphology file, canonicalize it, build the branch
tree, and report record and branch statistics.

Example:
  cable info --balance pyramidal.swc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := commandConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			recs, tr, err := loadMorphology(args[0])
			if err != nil {
				return err
			}
			if cfg.Balance {
				tr.Balance()
			}

			kinds := make(map[string]int)
			for _, rc := range recs {
				kinds[rc.Type.String()]++
			}
			maxKids := 0
			for b := 0; b < tr.NumBranches(); b++ {
				if nk := tr.NumChildren(b); nk > maxKids {
					maxKids = nk
				}
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"file":         args[0],
					"records":      len(recs),
					"kinds":        kinds,
					"branches":     tr.NumBranches(),
					"compartments": tr.NumCompartments(),
					"height":       tr.Height(),
					"max_children": maxKids,
					"balanced":     cfg.Balance,
				})
			}

			fmt.Printf("Morphology: %s\n", args[0])
			fmt.Printf("  Records:      %d\n", len(recs))
			kindNames := make([]string, 0, len(kinds))
			for kind := range kinds {
				kindNames = append(kindNames, kind)
			}
			sort.Strings(kindNames)
			for _, kind := range kindNames {
				fmt.Printf("    %-16s%d\n", kind, kinds[kind])
			}
			fmt.Printf("  Branches:     %d\n", tr.NumBranches())
			fmt.Printf("  Compartments: %d\n", tr.NumCompartments())
			fmt.Printf("  Height:       %d\n", tr.Height())
			fmt.Printf("  Max children: %d\n", maxKids)
			if cfg.Balance {
				fmt.Println("  (tree rebalanced)")
			}
			return nil
		},
	}

	cmd.Flags().Bool("balance", false, "Rebalance the branch tree first")

	return cmd
}
