// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cellgroup

import "github.com/emer/cable/events"

// TargetHandle addresses one synaptic target within the lowered cell
// state; values are produced by Lowered.Initialize and are opaque to
// the group.
type TargetHandle int32

// ProbeHandle addresses one measurable quantity within the lowered
// cell state.
type ProbeHandle int32

// ProbeInfo is the lowered handle and caller tag for one probe id.
type ProbeInfo struct {

	// handle for reading the probed value from the lowered state
	Handle ProbeHandle

	// opaque tag from the probe description, passed through to samplers
	Tag int
}

// Crossing is one threshold crossing recorded by the lowered state's
// spike detector, with the group-local spike source index.
type Crossing struct {

	// local spike source index; translated to a CellMember by the group
	Index int

	// crossing time
	Time float32
}

// Lowered is the capability interface for the numerical backend (the
// "lowered cell" state, e.g. a finite-volume cable-equation
// integrator) that a Group drives. Any concrete solver can be
// substituted without altering the group logic.
//
// Cells within one lowered state may progress at individually
// different local times during an integration interval; CellTime
// exposes the per-cell reached time, while MinTime and MaxTime bound
// it across cells. The state is synchronized when all cells are at
// the same time.
type Lowered interface {

	// Initialize builds the internal matrix structure for the given
	// cells, returning the flat target handle list (all cells' targets
	// concatenated in gid order) and the probe map.
	Initialize(gids []int, rec Recipe) (targets []TargetHandle, probes map[events.CellMember]ProbeInfo, err error)

	// Reset restores the initial (t = 0) state.
	Reset()

	// StateSynchronized reports whether all cells are at the same time.
	StateSynchronized() bool

	// MinTime returns the earliest per-cell reached time.
	MinTime() float32

	// MaxTime returns the latest per-cell reached time.
	MaxTime() float32

	// CellTime returns the reached time of the cell with the given
	// group-local index.
	CellTime(i int) float32

	// AddEvent schedules delivery of a weight to a target; the event
	// takes effect during subsequent integration steps.
	AddEvent(t float32, h TargetHandle, weight float32)

	// SetupIntegration prepares stepping toward tfinal with maximum
	// step dt.
	SetupIntegration(tfinal, dt float32)

	// StepIntegration advances by one bounded internal step, delivering
	// any pending added events that fall within it.
	StepIntegration()

	// IntegrationComplete reports whether the interval set up by
	// SetupIntegration has been fully integrated.
	IntegrationComplete() bool

	// PhysicalSolution reports whether the current state is within
	// physically plausible bounds; used only for diagnostics.
	PhysicalSolution() bool

	// Probe reads the current value of a probed quantity.
	Probe(h ProbeHandle) float64

	// Spikes returns the threshold crossings accumulated since the
	// last ClearSpikes.
	Spikes() []Crossing

	// ClearSpikes clears the internal crossing buffer.
	ClearSpikes()
}

// Recipe is the cell-building collaborator: it describes per-cell
// counts the group needs to build its lookup tables.
type Recipe interface {

	// NumTargets returns the number of synaptic targets on a cell.
	NumTargets(gid int) int

	// NumSources returns the number of spike sources on a cell.
	NumSources(gid int) int

	// NumProbes returns the number of probes on a cell.
	NumProbes(gid int) int
}
