// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logic

import (
	"strings"
	"testing"
)

func TestNewMemory(t *testing.T) {
	for _, tc := range []struct {
		name  string
		depth int
		width int
		init  []byte
		err   string
	}{
		{name: "ok", depth: 2048, width: 8},
		{name: "ok-init", depth: 16, width: 8, init: []byte("hello")},
		{name: "ok-narrow", depth: 8, width: 4},
		{name: "bad-depth", depth: 0, width: 8, err: "logic: invalid memory depth 0"},
		{name: "bad-width", depth: 8, width: 9, err: "logic: invalid memory word width 9"},
		{name: "bad-init", depth: 4, width: 8, init: []byte("hello"),
			err: "logic: initial contents (5 bytes) exceed memory depth 4"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			mem, err := NewMemory(tc.depth, tc.width, tc.init)
			switch {
			case tc.err == "" && err != nil:
				t.Fatalf("could not create memory: %+v", err)
			case tc.err != "" && err == nil:
				t.Fatalf("expected an error")
			case tc.err != "":
				if got, want := err.Error(), tc.err; got != want {
					t.Fatalf("invalid error:\ngot= %s\nwant=%s", got, want)
				}
				return
			}
			if got, want := mem.Depth(), tc.depth; got != want {
				t.Fatalf("invalid depth: got=%d, want=%d", got, want)
			}
			for i, v := range tc.init {
				if got, want := mem.At(i), v; got != want {
					t.Fatalf("invalid init word at %d: got=0x%x, want=0x%x", i, got, want)
				}
			}
		})
	}
}

func TestMemoryWidthMask(t *testing.T) {
	mem, err := NewMemory(8, 4, []byte{0xff})
	if err != nil {
		t.Fatalf("could not create memory: %+v", err)
	}
	if got, want := mem.At(0), byte(0x0f); got != want {
		t.Fatalf("invalid masked init word: got=0x%x, want=0x%x", got, want)
	}

	wp := mem.WritePort()
	wp.Addr = 1
	wp.Data = 0xab
	wp.En = true
	wp.Tick()
	if got, want := mem.At(1), byte(0x0b); got != want {
		t.Fatalf("invalid masked word: got=0x%x, want=0x%x", got, want)
	}
}

func TestWritePort(t *testing.T) {
	mem, err := NewMemory(8, 8, nil)
	if err != nil {
		t.Fatalf("could not create memory: %+v", err)
	}

	wp := mem.WritePort()
	wp.Addr = 3
	wp.Data = 0x42
	wp.Tick() // enable deasserted
	if got, want := mem.At(3), byte(0); got != want {
		t.Fatalf("write committed without enable: got=0x%x, want=0x%x", got, want)
	}

	wp.En = true
	wp.Tick()
	if got, want := mem.At(3), byte(0x42); got != want {
		t.Fatalf("write did not commit: got=0x%x, want=0x%x", got, want)
	}

	// addresses wrap modulo depth
	wp.Addr = 8 + 1
	wp.Data = 0x7f
	wp.Tick()
	if got, want := mem.At(1), byte(0x7f); got != want {
		t.Fatalf("wrapped write did not commit: got=0x%x, want=0x%x", got, want)
	}
}

func TestReadPortLatency(t *testing.T) {
	mem, err := NewMemory(8, 8, []byte{10, 11, 12, 13})
	if err != nil {
		t.Fatalf("could not create memory: %+v", err)
	}

	rp := mem.ReadPort()
	rp.Addr = 2
	rp.Tick()
	// data register now reflects the address presented before this
	// edge, whatever the address lines show now.
	rp.Addr = 3
	if got, want := rp.Data, byte(12); got != want {
		t.Fatalf("invalid registered data: got=%d, want=%d", got, want)
	}
	rp.Tick()
	if got, want := rp.Data, byte(13); got != want {
		t.Fatalf("invalid registered data: got=%d, want=%d", got, want)
	}
}

func TestPortsIndependent(t *testing.T) {
	mem, err := NewMemory(8, 8, nil)
	if err != nil {
		t.Fatalf("could not create memory: %+v", err)
	}

	var (
		wp  = mem.WritePort()
		rp1 = mem.ReadPort()
		rp2 = mem.ReadPort()
	)
	wp.Addr, wp.Data, wp.En = 0, 0xaa, true
	rp1.Addr = 0
	rp2.Addr = 1

	wp.Tick()
	rp1.Tick()
	rp2.Tick()
	if got, want := rp1.Data, byte(0xaa); got != want {
		t.Fatalf("invalid rp1 data: got=0x%x, want=0x%x", got, want)
	}
	if got, want := rp2.Data, byte(0); got != want {
		t.Fatalf("invalid rp2 data: got=0x%x, want=0x%x", got, want)
	}
}

func TestMemoryErrorStrings(t *testing.T) {
	_, err := NewMemory(-1, 8, nil)
	if err == nil || !strings.HasPrefix(err.Error(), "logic: ") {
		t.Fatalf("invalid error: %+v", err)
	}
}
