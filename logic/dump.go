// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logic

import "fmt"

type dumpState uint8

const (
	dumpIdle dumpState = iota
	dumpData
	dumpWait
)

// Dumper reads a frame of n words from a buffer memory, starting at
// address 0, and emits them one at a time on an output register
// paced by a strobe that toggles once per divider period. The caller
// samples the word on the rising strobe edge; a dump of length n
// yields exactly n strobe pulses, one every divider cycles.
type Dumper struct {
	rp  *ReadPort
	div int // strobe period in clock cycles, >= 2

	state  dumpState
	addr   int
	length int
	cnt    int

	word   byte
	strobe bool
}

// NewDumper returns a dumper driving the given read port with the
// given slow-down divider (>= 2).
func NewDumper(rp *ReadPort, divider int) (*Dumper, error) {
	if divider < 2 {
		return nil, fmt.Errorf("logic: invalid dump divider %d", divider)
	}
	return &Dumper{rp: rp, div: divider}, nil
}

// Tick advances the dumper by one edge of the system clock. The read
// port must be ticked first.
func (d *Dumper) Tick(start bool, length int) {
	switch d.state {
	case dumpIdle:
		d.length = length
		d.addr = 0
		d.word = 0
		if start {
			d.state = dumpData
		}

	case dumpData:
		d.cnt = d.div - 2
		d.addr++
		d.word = d.rp.Data
		d.strobe = false
		d.state = dumpWait

	case dumpWait:
		d.strobe = true
		if d.cnt == 0 {
			if d.addr == d.length {
				d.state = dumpIdle
			} else {
				d.state = dumpData
			}
		} else {
			d.cnt--
		}
	}
	d.rp.Addr = d.addr
}

// Word reports the output word register.
func (d *Dumper) Word() byte { return d.word }

// Strobe reports the strobe line.
func (d *Dumper) Strobe() bool { return d.strobe }

// Idle reports whether a start trigger would be accepted.
func (d *Dumper) Idle() bool { return d.state == dumpIdle }
