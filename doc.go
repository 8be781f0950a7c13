// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cable is the overall repository for the compartmental
(cable-equation) neuron simulation engine, implemented in the Go
language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* ctree: builds the branch tree of a single cell's morphology from a
parent-index array, and rebalances it to minimize the critical path of
the per-branch numerical solve.

* swc: morphology text records (SWC format): parsing, validation,
canonicalization into a dense parent-index sequence, and
piecewise-linear placement of points along branches.

* events: the generic min-time event queue, event time binning, and the
basic event / spike data types shared across the engine.

* sampling: probe sampling schedules and sampler registration,
including a table-backed sampler for recording into a table.Table.

* cellgroup: the discrete-event advance loop for a group of cells
sharing one lowered (numerical solver) state: event delivery, bounded
integration stepping, probe sampling, and spike harvesting.

* cmd/cable: command-line tool for inspecting morphologies.

* examples/passive: a runnable demo driving a cell group with a toy
integrate-and-fire backend.

The floating-point cable-equation solver itself is outside this
repository: cellgroup consumes any backend implementing the
cellgroup.Lowered interface.
*/
package cable
