// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swc

import (
	"strings"
	"testing"

	"cogentcore.org/core/math32"
)

func TestRecordCheck(t *testing.T) {
	good := Record{ID: 1, Type: Soma, Radius: 1, Parent: 0}
	if err := good.Check(); err != nil {
		t.Error(err)
	}
	bad := []Record{
		{ID: 1, Type: Kind(8), Radius: 1, Parent: 0},  // type out of range
		{ID: -1, Type: Soma, Radius: 1, Parent: -1},   // negative id
		{ID: 1, Type: Soma, Radius: 1, Parent: -2},    // parent < -1
		{ID: 1, Type: Soma, Radius: 1, Parent: 1},     // parent >= id
		{ID: 1, Type: Soma, Radius: -0.5, Parent: 0},  // negative radius
	}
	for i := range bad {
		if err := bad[i].Check(); err == nil {
			t.Errorf("invalid record %v accepted: %v", i, bad[i])
		}
	}
}

func TestRecordRoundTrip(t *testing.T) {
	recs := []Record{
		{ID: 0, Type: Soma, Pos: math32.Vec3(0.3141593, -2.718282, 1.414214), Radius: 9.5, Parent: -1},
		{ID: 4, Type: Dendrite, Pos: math32.Vec3(100.25, -0.000125, 3e4), Radius: 0.25, Parent: 0},
	}
	for i := range recs {
		rc := &recs[i]
		back, err := ParseRecord(rc.String())
		if err != nil {
			t.Fatalf("re-parse of %q: %v", rc.String(), err)
		}
		if back.ID != rc.ID || back.Type != rc.Type || back.Parent != rc.Parent {
			t.Errorf("round trip changed ids: %v -> %v", rc, back)
		}
		difs := []float32{
			math32.Abs(back.Pos.X - rc.Pos.X),
			math32.Abs(back.Pos.Y - rc.Pos.Y),
			math32.Abs(back.Pos.Z - rc.Pos.Z),
			math32.Abs(back.Radius - rc.Radius),
		}
		for j, d := range difs {
			if d > 1e-6*math32.Abs(rc.Radius+rc.Pos.X+rc.Pos.Y+rc.Pos.Z) {
				t.Errorf("round trip field %v dif %v too large: %v -> %v", j, d, rc, back)
			}
		}
	}
}

func TestParserLines(t *testing.T) {
	in := `# a comment
1 1 0 0 0 2.5 -1

# another comment
2 3 10 0 0 1 1
3 3 20 0 0 1 2
`
	recs, err := ReadRecords(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("read %v records, expected 3", len(recs))
	}
	if recs[0].ID != 0 || recs[0].Parent != -1 || recs[0].Type != Soma {
		t.Errorf("bad root record: %v", recs[0])
	}
	if recs[2].ID != 2 || recs[2].Parent != 1 || recs[2].Type != Dendrite {
		t.Errorf("bad record: %v", recs[2])
	}
}

func TestParserErrors(t *testing.T) {
	in := "1 1 0 0 0 2.5 -1\n2 3 bogus 0 0 1 1\n"
	_, err := ReadRecords(strings.NewReader(in))
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Line != 2 {
		t.Errorf("error line %v, expected 2", pe.Line)
	}

	// recoverable: the caller can skip the offending record
	ps := NewParser(strings.NewReader(in + "3 3 20 0 0 1 1\n"))
	good := 0
	for i := 0; i < 3; i++ {
		rc, err := ps.Next()
		if err != nil {
			continue
		}
		_ = rc
		good++
	}
	if good != 2 {
		t.Errorf("skipping bad record recovered %v records, expected 2", good)
	}

	if _, err := ParseRecord("1 1 0 0 0 2.5"); err == nil {
		t.Errorf("short record accepted")
	}
}

func rec(id int, parent int) *Record {
	return &Record{ID: id, Type: Dendrite, Radius: 1, Parent: parent}
}

func TestCanonicalSecondTreeStops(t *testing.T) {
	recs := []*Record{
		{ID: 0, Type: Soma, Radius: 1, Parent: -1},
		rec(1, 0),
		{ID: 2, Type: Soma, Radius: 1, Parent: -1}, // second root: ingestion stops
		rec(3, 2),
	}
	out, err := Canonical(recs)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Errorf("canonical kept %v records, expected 2", len(out))
	}
}

func TestCanonicalDuplicatesAndSort(t *testing.T) {
	recs := []*Record{
		{ID: 0, Type: Soma, Radius: 1, Parent: -1},
		rec(5, 0),
		rec(3, 0),
		rec(5, 3), // duplicate id: first occurrence wins
		rec(7, 5),
	}
	out, err := Canonical(recs)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 4 {
		t.Fatalf("canonical kept %v records, expected 4", len(out))
	}
	for i, rc := range out {
		if rc.ID != i {
			t.Errorf("ids not dense: id %v at position %v", rc.ID, i)
		}
	}
	// sorted order: 0, 3, 5, 7 -> renumbered 0, 1, 2, 3 with parents
	// remapped incrementally
	wantParent := []int{-1, 0, 0, 2}
	for i, rc := range out {
		if rc.Parent != wantParent[i] {
			t.Errorf("record %v parent %v, expected %v", i, rc.Parent, wantParent[i])
		}
	}
	// input untouched
	if recs[1].ID != 5 {
		t.Errorf("canonical modified its input")
	}
}

func TestToParentIndex(t *testing.T) {
	recs := []*Record{
		{ID: 0, Type: Soma, Radius: 1, Parent: -1},
		rec(1, 0), rec(2, 1), rec(3, 2), rec(4, 0), rec(5, 4),
	}
	pi, err := ToParentIndex(recs)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 0, 1, 2, 0, 4}
	for i := range want {
		if pi[i] != want[i] {
			t.Errorf("parent index %v, expected %v", pi, want)
			break
		}
	}
	// non-canonical input rejected
	if _, err := ToParentIndex([]*Record{rec(1, 0)}); err == nil {
		t.Errorf("non-root first record accepted")
	}
}
