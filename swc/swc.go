// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package swc reads and writes neuron morphology text records in the SWC
format: one record per non-comment line, with a 1-based id, a point
type, a 3D position and radius, and a 1-based parent id (-1 for the
root). Records are held with zero-based ids internally.

Canonical turns an arbitrary record sequence into a single dense tree,
and ToParentIndex extracts the parent-index array consumed by the
ctree package.
*/
package swc

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Kind is the SWC point type enum.
type Kind int32

const (
	Undefined Kind = iota
	Soma
	Axon
	Dendrite
	ApicalDendrite
	ForkPoint
	EndPoint
	Custom
	KindN
)

var kindNames = []string{"Undefined", "Soma", "Axon", "Dendrite", "ApicalDendrite", "ForkPoint", "EndPoint", "Custom"}

func (k Kind) String() string {
	if k < 0 || k >= KindN {
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
	return kindNames[k]
}

// Record is one SWC morphology point, with zero-based ids.
type Record struct {

	// zero-based record id
	ID int

	// point type
	Type Kind

	// position in micrometers
	Pos math32.Vector3

	// radius in micrometers
	Radius float32

	// zero-based parent record id; -1 for the root
	Parent int
}

// Check enforces the structural validity constraints on a record:
// type in range, id >= 0, parent >= -1, parent strictly less than id,
// radius >= 0. The returned error carries the offending value.
func (rc *Record) Check() error {
	if rc.Type < 0 || rc.Type >= KindN {
		return fmt.Errorf("swc: unknown point type %d", int32(rc.Type))
	}
	if rc.ID < 0 {
		return fmt.Errorf("swc: negative id %d not allowed", rc.ID)
	}
	if rc.Parent < -1 {
		return fmt.Errorf("swc: parent id %d < -1 not allowed", rc.Parent)
	}
	if rc.Parent >= rc.ID {
		return fmt.Errorf("swc: parent id %d >= id %d not allowed", rc.Parent, rc.ID)
	}
	if rc.Radius < 0 {
		return fmt.Errorf("swc: negative radius %g not allowed", rc.Radius)
	}
	return nil
}

// String renders the record in SWC text form, with 1-based ids and 7
// significant digits of precision. ParseRecord round-trips it.
func (rc *Record) String() string {
	parent := rc.Parent
	if parent != -1 {
		parent++
	}
	return fmt.Sprintf("%d %d %.7g %.7g %.7g %.7g %d",
		rc.ID+1, int32(rc.Type), rc.Pos.X, rc.Pos.Y, rc.Pos.Z, rc.Radius, parent)
}
