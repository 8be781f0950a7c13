// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sampling

import (
	"cogentcore.org/core/tensor/table"

	"github.com/emer/cable/events"
)

// ConfigSampleTable configures the standard columns for recording
// sample records into a table: Probe, Tag, Time, Value.
func ConfigSampleTable(dt *table.Table) {
	dt.SetMetaData("name", "Samples")
	dt.SetMetaData("read-only", "true")
	dt.AddStringColumn("Probe")
	dt.AddFloat64Column("Tag")
	dt.AddFloat64Column("Time")
	dt.AddFloat64Column("Value")
}

// TableSampler returns a sampler callback that appends one row per
// sample record to the given table, which must have been configured
// with ConfigSampleTable. The callback is not safe for concurrent use
// across groups; give each group its own table.
func TableSampler(dt *table.Table) Func {
	return func(probe events.CellMember, tag int, n int, recs []Record) {
		for i := 0; i < n && i < len(recs); i++ {
			row := dt.Rows
			dt.SetNumRows(row + 1)
			dt.SetString("Probe", row, probe.String())
			dt.SetFloat("Tag", row, float64(tag))
			dt.SetFloat("Time", row, float64(recs[i].Time))
			dt.SetFloat("Value", row, recs[i].Value)
		}
	}
}
