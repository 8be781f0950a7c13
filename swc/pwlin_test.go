// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swc

import (
	"testing"

	"cogentcore.org/core/math32"

	"github.com/emer/cable/ctree"
)

const placeTol = 1e-5

// straight line of 3 compartments along x, then a fork into two
// single-compartment branches.
func placeFixture(t *testing.T) (*ctree.Tree, []*Record) {
	t.Helper()
	recs := []*Record{
		{ID: 0, Type: Soma, Pos: math32.Vec3(0, 0, 0), Radius: 3, Parent: -1},
		{ID: 1, Type: Dendrite, Pos: math32.Vec3(10, 0, 0), Radius: 2, Parent: 0},
		{ID: 2, Type: Dendrite, Pos: math32.Vec3(30, 0, 0), Radius: 1, Parent: 1},
		{ID: 3, Type: Dendrite, Pos: math32.Vec3(30, 5, 0), Radius: 1, Parent: 2},
		{ID: 4, Type: Dendrite, Pos: math32.Vec3(30, -5, 0), Radius: 0.5, Parent: 2},
	}
	pi, err := ToParentIndex(recs)
	if err != nil {
		t.Fatal(err)
	}
	tr, err := ctree.FromParentIndex(pi)
	if err != nil {
		t.Fatal(err)
	}
	return tr, recs
}

func TestPlaceAt(t *testing.T) {
	tr, recs := placeFixture(t)
	pl, err := NewPlace(tr, recs)
	if err != nil {
		t.Fatal(err)
	}

	// branch 1 = compartments 1, 2, prepended with the root point:
	// polyline (0,0,0) -> (10,0,0) -> (30,0,0), length 30
	pt, r := pl.At(Loc{Branch: 1, Pos: 0})
	if pt.DistanceTo(math32.Vec3(0, 0, 0)) > placeTol || math32.Abs(r-3) > placeTol {
		t.Errorf("proximal point %v r %v", pt, r)
	}
	pt, r = pl.At(Loc{Branch: 1, Pos: 1})
	if pt.DistanceTo(math32.Vec3(30, 0, 0)) > placeTol || math32.Abs(r-1) > placeTol {
		t.Errorf("distal point %v r %v", pt, r)
	}
	// halfway along arc length = 15 um = 1/4 into second segment
	pt, r = pl.At(Loc{Branch: 1, Pos: 0.5})
	if pt.DistanceTo(math32.Vec3(15, 0, 0)) > placeTol {
		t.Errorf("midpoint %v", pt)
	}
	if math32.Abs(r-1.75) > placeTol {
		t.Errorf("midpoint radius %v, expected 1.75", r)
	}

	// child branch 2 starts at its parent's distal point
	pt, _ = pl.At(Loc{Branch: 2, Pos: 0})
	if pt.DistanceTo(math32.Vec3(30, 0, 0)) > placeTol {
		t.Errorf("child proximal point %v", pt)
	}
	pt, _ = pl.At(Loc{Branch: 2, Pos: 1})
	if pt.DistanceTo(math32.Vec3(30, 5, 0)) > placeTol {
		t.Errorf("child distal point %v", pt)
	}

	// positions are clamped
	pt, _ = pl.At(Loc{Branch: 2, Pos: 1.5})
	if pt.DistanceTo(math32.Vec3(30, 5, 0)) > placeTol {
		t.Errorf("clamped point %v", pt)
	}
}

func TestPlaceZeroLength(t *testing.T) {
	recs := []*Record{
		{ID: 0, Type: Soma, Pos: math32.Vec3(1, 2, 3), Radius: 4, Parent: -1},
	}
	tr, err := ctree.FromParentIndex([]int{0})
	if err != nil {
		t.Fatal(err)
	}
	pl, err := NewPlace(tr, recs)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []float32{0, 0.5, 1} {
		pt, r := pl.At(Loc{Branch: 0, Pos: p})
		if pt.DistanceTo(math32.Vec3(1, 2, 3)) > placeTol || math32.Abs(r-4) > placeTol {
			t.Errorf("zero-length branch at %v: %v r %v", p, pt, r)
		}
	}
}
