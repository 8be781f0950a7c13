// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swc

import (
	"fmt"
	"sort"
)

// Canonical accepts an arbitrary record sequence into a single clean
// tree: ingestion stops at a second root (parent == -1) record,
// duplicate ids are dropped first-occurrence-wins, records are sorted
// by id if not already increasing, and ids are renumbered to be dense
// 0..N-1 with an incrementally built id-remap table applied to parent
// references as renumbering proceeds. The input records are not
// modified.
func Canonical(recs []*Record) ([]*Record, error) {
	seen := make(map[int]bool, len(recs))
	out := make([]*Record, 0, len(recs))
	numTrees := 0
	lastID := -1
	needSort := false
	for _, rc := range recs {
		if rc.Parent == -1 {
			numTrees++
			if numTrees > 1 {
				break
			}
		}
		if seen[rc.ID] {
			continue
		}
		seen[rc.ID] = true
		cp := *rc
		out = append(out, &cp)
		if !needSort && cp.ID < lastID {
			needSort = true
		}
		lastID = cp.ID
	}
	if needSort {
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	}
	idmap := make(map[int]int)
	for i, rc := range out {
		if rc.ID != i {
			if np, ok := idmap[rc.Parent]; ok {
				rc.Parent = np
			}
			idmap[rc.ID] = i
			rc.ID = i
			if err := rc.Check(); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// ToParentIndex extracts the parent-index array from a canonical
// record sequence: parent[0] is the self-referential root sentinel,
// and parent[i] < i otherwise. The result feeds ctree.FromParentIndex.
func ToParentIndex(recs []*Record) ([]int, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	if recs[0].Parent != -1 {
		return nil, fmt.Errorf("swc: first canonical record has parent %d, expected root", recs[0].Parent)
	}
	pi := make([]int, len(recs))
	for i, rc := range recs {
		if rc.ID != i {
			return nil, fmt.Errorf("swc: record ids not dense: id %d at position %d", rc.ID, i)
		}
		if i == 0 {
			pi[0] = 0
			continue
		}
		if rc.Parent < 0 || rc.Parent >= i {
			return nil, fmt.Errorf("swc: record %d has parent %d outside earlier records", i, rc.Parent)
		}
		pi[i] = rc.Parent
	}
	return pi, nil
}
