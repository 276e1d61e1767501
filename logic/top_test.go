// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logic

import (
	"bytes"
	"testing"
)

func TestNewTop(t *testing.T) {
	top, err := NewTop(Config{})
	if err != nil {
		t.Fatalf("could not create top: %+v", err)
	}
	if got, want := top.Links(), 2; got != want {
		t.Fatalf("invalid default link count: got=%d, want=%d", got, want)
	}
	if got, want := top.UARTs(), 0; got != want {
		t.Fatalf("invalid default UART count: got=%d, want=%d", got, want)
	}
	if got, want := top.ReplayLen(), DefaultReplayLen; got != want {
		t.Fatalf("invalid default replay length: got=%d, want=%d", got, want)
	}

	for _, tc := range []struct {
		name string
		cfg  Config
		err  string
	}{
		{
			name: "bad-links",
			cfg:  Config{Links: -1},
			err:  "logic: invalid link count -1",
		},
		{
			name: "bad-replay-len",
			cfg:  Config{Payload: []byte("hi"), ReplayLen: 3},
			err:  "logic: replay length 3 exceeds payload size 2",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTop(tc.cfg)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if got, want := err.Error(), tc.err; got != want {
				t.Fatalf("invalid error:\ngot= %s\nwant=%s", got, want)
			}
		})
	}
}

func TestTopCaptureDump(t *testing.T) {
	top, err := NewTop(Config{
		Links:       1,
		Depth:       16,
		Payload:     []byte{0},
		ReplayLen:   1,
		DumpDivider: 2,
	})
	if err != nil {
		t.Fatalf("could not create top: %+v", err)
	}

	// capture a frame on link 0, link domain only
	frame := []byte("abc")
	for _, v := range frame {
		top.TickLink(LinkInput{Data: v, Valid: true})
	}
	top.TickLink(LinkInput{})
	if !top.FrameAvailable(0) {
		t.Fatalf("no frame-available pulse")
	}
	if got, want := top.FrameLength(0), len(frame); got != want {
		t.Fatalf("invalid frame length: got=%d, want=%d", got, want)
	}
	if got, want := top.CaptureMemory(0).At(1), byte('a'); got != want {
		t.Fatalf("invalid captured byte: got=0x%x, want=0x%x", got, want)
	}

	// run both domains at unrelated rates; the trigger latch carries
	// the frame into the system domain and the dump runs there.
	var (
		words []byte
		prev  = top.DumpStrobe()
	)
	for iter := 0; iter < 64; iter++ {
		for i := 0; i < 3; i++ {
			top.TickSys()
			if s := top.DumpStrobe(); s && !prev {
				words = append(words, top.DumpWord())
			}
			prev = top.DumpStrobe()
		}
		for i := 0; i < 7; i++ {
			top.TickLink(LinkInput{})
		}
	}

	// the dump walks the capture memory from address 0, so the first
	// word is the unwritten address 0 and the last frame byte is not
	// read out.
	want := append([]byte{0}, frame[:len(frame)-1]...)
	if !bytes.Equal(words, want) {
		t.Fatalf("invalid dumped words:\ngot= %v\nwant=%v", words, want)
	}
}

func TestTopPeriodicReplay(t *testing.T) {
	top, err := NewTop(Config{
		Links:      2,
		Depth:      64,
		ReplayBits: 4,
	})
	if err != nil {
		t.Fatalf("could not create top: %+v", err)
	}

	var (
		frames  [][]byte
		cur     []byte
		enabled bool
	)
	for iter := 0; iter < 256 && len(frames) < 3; iter++ {
		for i := 0; i < 3; i++ {
			top.TickSys()
		}
		for i := 0; i < 7; i++ {
			top.TickLink()
			// both transmitters replay the shared memory in lockstep
			if top.TxEnable(1) != top.TxEnable(0) || top.TxData(1) != top.TxData(0) {
				t.Fatalf("links out of lockstep")
			}
			if got, want := top.TxEnableXorErr(0), top.TxEnable(0); got != want {
				t.Fatalf("enable-xor-error=%v, enable=%v", got, want)
			}
			switch {
			case top.TxEnable(0):
				cur = append(cur, top.TxData(0))
				enabled = true
			case enabled:
				frames = append(frames, cur)
				cur, enabled = nil, false
			}
		}
	}

	if len(frames) < 2 {
		t.Fatalf("got %d replay frames, want at least 2", len(frames))
	}
	for i, frame := range frames {
		if want := []byte("Hello World!"); !bytes.Equal(frame, want) {
			t.Fatalf("invalid replay frame %d:\ngot= %q\nwant=%q", i, frame, want)
		}
	}
}

func TestTopLEDAndUART(t *testing.T) {
	top, err := NewTop(Config{
		Links:       1,
		Depth:       16,
		Payload:     []byte{0},
		ReplayLen:   1,
		DiagUARTs:   1,
		UARTDivider: 2,
	})
	if err != nil {
		t.Fatalf("could not create top: %+v", err)
	}
	if got, want := top.UARTs(), 1; got != want {
		t.Fatalf("invalid UART count: got=%d, want=%d", got, want)
	}

	// the send pulse is an edge detect on counter bit 18: the line
	// idles high until then and drops for the start bit on the very
	// cycle the bit first rises.
	const sendAt = 1 << 18
	for i := 1; i < sendAt; i++ {
		top.TickSys()
		if !top.Serial(0) {
			t.Fatalf("serial line left idle before send pulse (cycle %d)", i)
		}
	}
	top.TickSys()
	if top.Serial(0) {
		t.Fatalf("no start bit on send pulse")
	}

	// LED is bit 21 of the same counter
	if top.LED() {
		t.Fatalf("LED on before half period")
	}
	for i := sendAt; i < 1<<21; i++ {
		top.TickSys()
	}
	if !top.LED() {
		t.Fatalf("LED off after half period")
	}
}
