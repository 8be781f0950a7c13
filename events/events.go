// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package events provides the basic event data types shared across the
simulation engine, a generic minimum-time-ordered event queue, and
event time binning for reproducible delivery order.

Times throughout are float32 in simulation milliseconds.
*/
package events

import "fmt"

// CellMember identifies an item (synaptic target, spike source, probe)
// on a specific cell: the cell's group-local id (GID) and the
// per-cell index of the item.
type CellMember struct {

	// group-local cell id
	GID int

	// index of the item within the cell
	Index int
}

func (cm CellMember) String() string {
	return fmt.Sprintf("%d.%d", cm.GID, cm.Index)
}

// PostsynapticEvent is one pending synaptic event: a weight to be
// delivered to a target at a given time. It is consumed exactly once
// by a cell group's event queue.
type PostsynapticEvent struct {

	// synaptic target: (cell gid, per-cell target index)
	Target CellMember

	// delivery time
	Time float32

	// synaptic weight
	Weight float32
}

func (ev PostsynapticEvent) EvTime() float32 { return ev.Time }

// SampleEvent is one pending probe sample: an index into the current
// advance interval's sampler entry list, and the scheduled time.
// Sample events are ephemeral: created when a sampler's schedule is
// expanded over an interval, destroyed (or requeued) when resolved.
type SampleEvent struct {

	// index of the sampler entry this sample resolves against
	Sampler int

	// scheduled sample time
	Time float32
}

func (ev SampleEvent) EvTime() float32 { return ev.Time }

// Spike is one detected threshold crossing, with the externally
// meaningful source identity (cell gid, per-cell source index).
type Spike struct {

	// spike source: (cell gid, per-cell source index)
	Source CellMember

	// time of the threshold crossing
	Time float32
}

func (sp Spike) EvTime() float32 { return sp.Time }

// MemberPredicate selects cell members, e.g., the probes a sampler
// should attach to.
type MemberPredicate func(cm CellMember) bool

// AllMembers matches every member.
func AllMembers(cm CellMember) bool { return true }

// OneMember returns a predicate matching exactly the given member.
func OneMember(m CellMember) MemberPredicate {
	return func(cm CellMember) bool { return cm == m }
}

// InCell returns a predicate matching all members of the given cell.
func InCell(gid int) MemberPredicate {
	return func(cm CellMember) bool { return cm.GID == gid }
}
