// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logic

import "fmt"

// Memory is a fixed-depth word store with one write port and any
// number of read ports. Ports are independently addressed and each
// access incurs one clock cycle of registered latency: the data
// register of a read port reflects the memory contents at the address
// presented on the previous cycle, and a write commits on the edge
// following the cycle its inputs were driven.
//
// Addresses wrap modulo the depth. A frame descriptor exceeding the
// depth is a caller bug; wrapping only keeps it from indexing outside
// the backing store.
type Memory struct {
	depth int
	mask  byte
	data  []byte
}

// NewMemory returns a memory of the given depth and word width in
// bits (1 to 8), optionally pre-loaded with init starting at address
// 0. The initial contents are immutable only by convention: nothing
// prevents wiring a write port to a pre-loaded memory.
func NewMemory(depth, width int, init []byte) (*Memory, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("logic: invalid memory depth %d", depth)
	}
	if width < 1 || width > 8 {
		return nil, fmt.Errorf("logic: invalid memory word width %d", width)
	}
	if len(init) > depth {
		return nil, fmt.Errorf(
			"logic: initial contents (%d bytes) exceed memory depth %d",
			len(init), depth,
		)
	}
	mem := &Memory{
		depth: depth,
		mask:  byte(1<<width - 1),
		data:  make([]byte, depth),
	}
	for i, v := range init {
		mem.data[i] = v & mem.mask
	}
	return mem, nil
}

// Depth returns the number of addressable words.
func (mem *Memory) Depth() int { return mem.depth }

// At returns the word at addr. It is a debug view of the backing
// store, not a clocked port.
func (mem *Memory) At(addr int) byte {
	return mem.data[addr%mem.depth]
}

// WritePort returns a new write port on mem.
func (mem *Memory) WritePort() *WritePort {
	return &WritePort{mem: mem}
}

// ReadPort returns a new read port on mem.
func (mem *Memory) ReadPort() *ReadPort {
	return &ReadPort{mem: mem}
}

// WritePort commits Data to Addr on each Tick where En is asserted.
// Exactly one machine may drive a port.
type WritePort struct {
	mem *Memory

	Addr int
	Data byte
	En   bool
}

// Tick commits the currently driven inputs on one clock edge.
func (p *WritePort) Tick() {
	if !p.En {
		return
	}
	p.mem.data[p.Addr%p.mem.depth] = p.Data & p.mem.mask
}

// ReadPort latches the word at Addr into Data on each Tick, so Data
// always holds the contents at the previous cycle's address.
type ReadPort struct {
	mem *Memory

	Addr int
	Data byte
}

// Tick latches the addressed word on one clock edge.
func (p *ReadPort) Tick() {
	p.Data = p.mem.data[p.Addr%p.mem.depth]
}
