// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trellis infers the pin assignment of an ECP5 bitstream from
// a Project Trellis textual configuration dump and the device I/O
// database. Each package ball maps to a PIO site in one of the edge
// tile rows or columns; the BASE_TYPE enums programmed into the tiles
// covering that site give the pin its direction and I/O modes.
package trellis

import (
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

// Stock database location for the chip fitted to the 5A-75E board.
const (
	DefaultPackage = "CABGA256"
	DefaultIODB    = "/usr/share/trellis/database/ECP5/LFE5U-25F/iodb.json"
)

// Role is the inferred direction of a pin.
type Role uint8

const (
	Unused Role = iota
	Input
	Output
	Bidi
)

func (r Role) String() string {
	switch r {
	case Unused:
		return "unused"
	case Input:
		return "input"
	case Output:
		return "output"
	case Bidi:
		return "bidi"
	}
	return "invalid"
}

// Pin is one package ball with its inferred role and the I/O modes
// programmed on it (LVCMOS33, PULLMODE_UP, ...).
type Pin struct {
	Name  string
	Role  Role
	Modes []string
}

// Infer classifies every ball of the database package against the
// given configuration, in natural sort order. Balls whose tiles carry
// no BASE_TYPE enum are reported with the Unused role.
func Infer(cfg *Config, db *IODB) ([]Pin, error) {
	pins := make([]Pin, 0, len(db.locs))
	for _, name := range db.pins() {
		loc := db.locs[name]
		var role Role
		var modes []string
		switch {
		case loc.Row == 0:
			role, modes = topPin(cfg, loc)
		case loc.Row == db.maxRow:
			role, modes = btmPin(cfg, loc)
		case loc.Col == 0:
			role, modes = leftPin(cfg, loc)
		case loc.Col == db.maxCol:
			role, modes = rightPin(cfg, loc)
		default:
			return nil, xerrors.Errorf("trellis: unhandled pin location %s", name)
		}
		pins = append(pins, Pin{Name: name, Role: role, Modes: modes})
	}
	return pins, nil
}

// Roles splits the classified pins into per-role name lists, dropping
// unused balls.
func Roles(pins []Pin) (inputs, outputs, bidis []string) {
	for _, pin := range pins {
		switch pin.Role {
		case Input:
			inputs = append(inputs, pin.Name)
		case Output:
			outputs = append(outputs, pin.Name)
		case Bidi:
			bidis = append(bidis, pin.Name)
		}
	}
	return inputs, outputs, bidis
}

type probe struct {
	drow, dcol int
	tile       string
}

// Tile names covering a PIO site, per device edge. Some sites share
// their tile with DQS or EFB functions, under a decorated name.
var (
	topProbes = []probe{
		{0, 0, "PIOT0"},
		{0, 1, "PIOT1"},
		{1, 0, "PICT0"},
		{1, 1, "PICT1"},
	}
	btmProbes = []probe{
		{0, 0, "PICB0"},
		{0, 0, "SPICB0"},
		{0, 0, "EFB0_PICB0"},
		{0, 0, "EFB2_PICB0"},
		{0, 1, "PICB1"},
		{0, 1, "EFB1_PICB1"},
		{0, 1, "EFB3_PICB1"},
	}
	leftProbes = []probe{
		{0, 0, "PICL0"},
		{0, 0, "PICL0_DQS2"},
		{1, 0, "PICL1"},
		{1, 0, "PICL1_DQS0"},
		{1, 0, "PICL1_DQS3"},
		{2, 0, "PICL2"},
		{2, 0, "PICL2_DQS1"},
		{2, 0, "MIB_CIB_LR"},
	}
	rightProbes = []probe{
		{0, 0, "PICR0"},
		{0, 0, "PICR0_DQS2"},
		{1, 0, "PICR1"},
		{1, 0, "PICR1_DQS0"},
		{1, 0, "PICR1_DQS3"},
		{2, 0, "PICR2"},
		{2, 0, "PICR2_DQS1"},
		{2, 0, "MIB_CIB_LR"},
		{2, 0, "MIB_CIB_LR_A"},
	}
)

func sidePin(cfg *Config, loc Location, probes []probe) (Role, []string) {
	key := "PIO" + loc.PIO + ".BASE_TYPE"
	types := make([]string, 0, len(probes))
	for _, p := range probes {
		types = append(types, cfg.enum(loc.Row+p.drow, loc.Col+p.dcol, p.tile, key))
	}
	return reduceBaseTypes(types)
}

func topPin(cfg *Config, loc Location) (Role, []string)   { return sidePin(cfg, loc, topProbes) }
func btmPin(cfg *Config, loc Location) (Role, []string)   { return sidePin(cfg, loc, btmProbes) }
func leftPin(cfg *Config, loc Location) (Role, []string)  { return sidePin(cfg, loc, leftProbes) }
func rightPin(cfg *Config, loc Location) (Role, []string) { return sidePin(cfg, loc, rightProbes) }

// reduceBaseTypes folds the BASE_TYPE enums of all tiles covering one
// site into a single role plus the sorted set of I/O modes. A site
// programmed as both input and output counts as bidirectional.
func reduceBaseTypes(types []string) (Role, []string) {
	var bidi, in, out bool
	set := make(map[string]struct{})
	for _, t := range types {
		if t == "" {
			continue
		}
		switch {
		case strings.HasPrefix(t, "BIDIR_"):
			bidi = true
		case strings.HasPrefix(t, "INPUT_"):
			in = true
		case strings.HasPrefix(t, "OUTPUT_"):
			out = true
		}
		if i := strings.Index(t, "_"); i >= 0 {
			set[t[i+1:]] = struct{}{}
		}
	}
	switch {
	case bidi || (in && out):
		return Bidi, sortedModes(set)
	case in:
		return Input, sortedModes(set)
	case out:
		return Output, sortedModes(set)
	}
	return Unused, nil
}

func sortedModes(set map[string]struct{}) []string {
	modes := make([]string, 0, len(set))
	for m := range set {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	return modes
}
