// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trellis

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// Config holds the tile enums of a textual bitstream dump, keyed by
// tile location and tile name.
type Config struct {
	tiles map[tileID]map[string]string
}

type tileID struct {
	row, col int
	name     string
}

var tileRE = regexp.MustCompile(`R(\d+)C(\d+):([A-Z0-9_]*)\s*$`)

// ReadConfig parses a Project Trellis .config stream, keeping the
// tile headers and the enum settings of each tile. All other records
// (arcs, words, unknown bits) are skipped.
func ReadConfig(r io.Reader) (*Config, error) {
	cfg := &Config{tiles: make(map[tileID]map[string]string)}
	var (
		cur  tileID
		open bool
		sc   = bufio.NewScanner(r)
	)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for line := 1; sc.Scan(); line++ {
		txt := sc.Text()
		switch {
		case strings.HasPrefix(txt, ".tile "):
			m := tileRE.FindStringSubmatch(txt)
			if m == nil {
				return nil, xerrors.Errorf("trellis: invalid tile header (line %d): %q", line, txt)
			}
			row, _ := strconv.Atoi(m[1])
			col, _ := strconv.Atoi(m[2])
			cur = tileID{row: row, col: col, name: m[3]}
			open = true
			if _, dup := cfg.tiles[cur]; !dup {
				cfg.tiles[cur] = map[string]string{}
			}

		case strings.HasPrefix(txt, "enum: "):
			if !open {
				return nil, xerrors.Errorf("trellis: enum outside a tile (line %d): %q", line, txt)
			}
			fields := strings.Fields(txt)
			if len(fields) != 3 {
				return nil, xerrors.Errorf("trellis: invalid enum record (line %d): %q", line, txt)
			}
			cfg.tiles[cur][fields[1]] = fields[2]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, xerrors.Errorf("trellis: could not read config: %w", err)
	}
	return cfg, nil
}

// LoadConfig parses the .config file at the given path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("trellis: could not open config: %w", err)
	}
	defer f.Close()

	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, xerrors.Errorf("trellis: could not parse %s: %w", path, err)
	}
	return cfg, nil
}

// enum returns the value programmed for key in the named tile at
// (row, col), or the empty string when the tile or key is absent.
func (cfg *Config) enum(row, col int, name, key string) string {
	return cfg.tiles[tileID{row: row, col: col, name: name}][key]
}
