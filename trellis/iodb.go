// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trellis

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"sort"

	"golang.org/x/xerrors"
)

// Location is the PIO site of one package ball in the device grid.
type Location struct {
	Row int    `json:"row"`
	Col int    `json:"col"`
	PIO string `json:"pio"`
}

func (loc *Location) UnmarshalJSON(data []byte) error {
	// the pio field is a bare letter in some database revisions and a
	// quoted string in others
	var raw struct {
		Row int             `json:"row"`
		Col int             `json:"col"`
		PIO json.RawMessage `json:"pio"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	loc.Row = raw.Row
	loc.Col = raw.Col
	loc.PIO = string(bytes.Trim(raw.PIO, `"`))
	return nil
}

// IODB is the ball-to-site map of one device package.
type IODB struct {
	locs   map[string]Location
	maxRow int
	maxCol int
}

// ReadIODB decodes a Project Trellis iodb.json stream and selects the
// given package.
func ReadIODB(r io.Reader, pkg string) (*IODB, error) {
	var raw struct {
		Packages map[string]map[string]Location `json:"packages"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, xerrors.Errorf("trellis: could not decode I/O database: %w", err)
	}

	locs, ok := raw.Packages[pkg]
	if !ok {
		pkgs := make([]string, 0, len(raw.Packages))
		for p := range raw.Packages {
			pkgs = append(pkgs, p)
		}
		sort.Strings(pkgs)
		return nil, xerrors.Errorf("trellis: package %s not found, try %v", pkg, pkgs)
	}

	db := &IODB{locs: locs}
	for _, loc := range locs {
		if loc.Row > db.maxRow {
			db.maxRow = loc.Row
		}
		if loc.Col > db.maxCol {
			db.maxCol = loc.Col
		}
	}
	return db, nil
}

// LoadIODB decodes the iodb.json file at the given path and selects
// the given package.
func LoadIODB(path, pkg string) (*IODB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("trellis: could not open I/O database: %w", err)
	}
	defer f.Close()
	return ReadIODB(f, pkg)
}

// pins returns the ball names in natural sort order, digit runs
// compared numerically.
func (db *IODB) pins() []string {
	names := make([]string, 0, len(db.locs))
	for name := range db.locs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return natLess(names[i], names[j])
	})
	return names
}
