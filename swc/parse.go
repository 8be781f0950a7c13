// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"
)

// comment lines begin with #
const commentPrefix = "#"

// ParseError is a recoverable per-record parse failure, carrying the
// 1-based line number of the offending record.
type ParseError struct {
	Line int
	Msg  string
}

func (pe *ParseError) Error() string {
	return fmt.Sprintf("swc: line %d: %s", pe.Line, pe.Msg)
}

// Parser reads SWC records from a stream, skipping blank and comment
// lines and tracking line numbers for error reporting. The caller
// decides whether a *ParseError from Next rejects only the offending
// record (keep calling Next) or aborts the whole parse.
type Parser struct {
	scan *bufio.Scanner
	line int
}

func NewParser(r io.Reader) *Parser {
	return &Parser{scan: bufio.NewScanner(r)}
}

// Line returns the 1-based number of the last line read.
func (ps *Parser) Line() int {
	return ps.line
}

// Next returns the next record, io.EOF at end of input, or a
// *ParseError for an unreadable or invalid record.
func (ps *Parser) Next() (*Record, error) {
	for ps.scan.Scan() {
		ps.line++
		txt := strings.TrimSpace(ps.scan.Text())
		if txt == "" || strings.HasPrefix(txt, commentPrefix) {
			continue
		}
		rc, err := ParseRecord(txt)
		if err != nil {
			return nil, &ParseError{Line: ps.line, Msg: err.Error()}
		}
		return rc, nil
	}
	if err := ps.scan.Err(); err != nil {
		return nil, &ParseError{Line: ps.line, Msg: err.Error()}
	}
	return nil, io.EOF
}

// ParseRecord parses one whitespace-separated SWC record line:
// id, type, x, y, z, r, parent id -- with 1-based ids on the wire.
// Validity is checked via Record.Check before returning.
func ParseRecord(s string) (*Record, error) {
	fields := strings.Fields(s)
	if len(fields) < 7 {
		return nil, fmt.Errorf("swc: record has %d fields, need 7", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("swc: could not parse id %q", fields[0])
	}
	typ, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("swc: could not parse type %q", fields[1])
	}
	var xyzr [4]float32
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(fields[2+i], 32)
		if err != nil {
			return nil, fmt.Errorf("swc: could not parse value %q", fields[2+i])
		}
		xyzr[i] = float32(v)
	}
	parent, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, fmt.Errorf("swc: could not parse parent id %q", fields[6])
	}
	// convert to zero-based, leaving parent as-is if -1
	if parent != -1 {
		parent--
	}
	rc := &Record{
		ID:     id - 1,
		Type:   Kind(typ),
		Pos:    math32.Vec3(xyzr[0], xyzr[1], xyzr[2]),
		Radius: xyzr[3],
		Parent: parent,
	}
	if err := rc.Check(); err != nil {
		return nil, err
	}
	return rc, nil
}

// ReadRecords reads all records from the stream, aborting the whole
// parse at the first error.
func ReadRecords(r io.Reader) ([]*Record, error) {
	ps := NewParser(r)
	var recs []*Record
	for {
		rc, err := ps.Next()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rc)
	}
}
