// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"testing"

	"cogentcore.org/core/math32"
)

func TestBinnerNone(t *testing.T) {
	bn := NewBinner(NoBinning, 0)
	for _, tm := range []float32{0, 0.17, 3.33, 100} {
		if bt := bn.Bin(0, tm, 50); bt != tm {
			t.Errorf("NoBinning changed time %v -> %v", tm, bt)
		}
	}
}

func TestBinnerRegular(t *testing.T) {
	bn := NewBinner(RegularBinning, 0.5)
	// rounds down onto the grid
	if bt := bn.Bin(0, 1.7, 0); bt != 1.5 {
		t.Errorf("bin(1.7) = %v, expected 1.5", bt)
	}
	// never earlier than floor
	if bt := bn.Bin(1, 1.7, 2.1); bt < 2.1 {
		t.Errorf("bin moved time before floor: %v < 2.1", bt)
	}
	// result stays on the interval grid
	bt := bn.Bin(2, 3.14, 2.6)
	if r := math32.Mod(bt, 0.5); math32.Abs(r) > 1e-6 && math32.Abs(r-0.5) > 1e-6 {
		t.Errorf("binned time %v not on 0.5 grid", bt)
	}
}

func TestBinnerPerKeyMonotone(t *testing.T) {
	bn := NewBinner(RegularBinning, 1)
	b1 := bn.Bin(7, 5.9, 0)
	b2 := bn.Bin(7, 5.1, 0) // earlier raw time, same key
	if b2 < b1 {
		t.Errorf("per-key bins went backwards: %v then %v", b1, b2)
	}
	// other keys are independent
	if b3 := bn.Bin(8, 5.1, 0); b3 != 5 {
		t.Errorf("independent key binned to %v, expected 5", b3)
	}
}

func TestBinnerReset(t *testing.T) {
	bn := NewBinner(RegularBinning, 1)
	bn.Bin(3, 9.7, 0)
	bn.Reset()
	if bt := bn.Bin(3, 2.2, 0); bt != 2 {
		t.Errorf("Reset did not clear anchor state: bin(2.2) = %v", bt)
	}
}
