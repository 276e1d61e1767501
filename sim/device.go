// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim drives the cycle-accurate logic core as a whole device:
// it pumps the two clock domains at a configurable rate ratio, feeds
// byte frames into the link receivers and collects everything the
// board would emit (captured frames, dump words, serial lines).
package sim

import (
	"fmt"

	"github.com/adamgreig/cl/logic"
)

type config struct {
	links      int
	depth      int
	payload    []byte
	replayLen  int
	replayBits int
	dumpDiv    int
	uarts      int
	uartDiv    int
	sysPerLink int
}

// Option configures a simulated device.
type Option func(*config)

// WithLinkCount sets the number of PHY links.
func WithLinkCount(n int) Option {
	return func(cfg *config) { cfg.links = n }
}

// WithDepth sets the buffer memory depth, in words.
func WithDepth(n int) Option {
	return func(cfg *config) { cfg.depth = n }
}

// WithPayload sets the replay memory contents.
func WithPayload(p []byte) Option {
	return func(cfg *config) { cfg.payload = p }
}

// WithReplay sets the replayed frame length and the trigger period
// exponent (one frame every 2^bits system cycles).
func WithReplay(length, bits int) Option {
	return func(cfg *config) {
		cfg.replayLen = length
		cfg.replayBits = bits
	}
}

// WithDumpDivider sets the dump strobe period, in system cycles.
func WithDumpDivider(d int) Option {
	return func(cfg *config) { cfg.dumpDiv = d }
}

// WithUARTs enables n diagnostic UARTs.
func WithUARTs(n int) Option {
	return func(cfg *config) { cfg.uarts = n }
}

// WithUARTDivider sets the UART bit period, in system cycles.
func WithUARTDivider(d int) Option {
	return func(cfg *config) { cfg.uartDiv = d }
}

// WithSysPerLink sets how many system clock edges elapse per link
// clock edge. The two domains share no phase relationship on the
// board; this only fixes their average rate ratio.
func WithSysPerLink(n int) Option {
	return func(cfg *config) { cfg.sysPerLink = n }
}

// Device is one simulated board.
type Device struct {
	cfg config
	top *logic.Top

	sysCycles  uint64
	linkCycles uint64

	strobePrev bool
	frames     [][]byte
	words      []byte
}

// New builds a device from the given options, leaving unset knobs at
// the stock board values.
func New(opts ...Option) (*Device, error) {
	cfg := config{sysPerLink: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sysPerLink < 1 {
		return nil, fmt.Errorf("sim: invalid system/link clock ratio %d", cfg.sysPerLink)
	}

	top, err := logic.NewTop(logic.Config{
		Links:       cfg.links,
		Depth:       cfg.depth,
		Payload:     cfg.payload,
		ReplayLen:   cfg.replayLen,
		ReplayBits:  cfg.replayBits,
		DumpDivider: cfg.dumpDiv,
		DiagUARTs:   cfg.uarts,
		UARTDivider: cfg.uartDiv,
	})
	if err != nil {
		return nil, fmt.Errorf("sim: could not create device: %w", err)
	}

	return &Device{cfg: cfg, top: top}, nil
}

func (dev *Device) tickSys() {
	dev.top.TickSys()
	dev.sysCycles++
	if s := dev.top.DumpStrobe(); s && !dev.strobePrev {
		dev.words = append(dev.words, dev.top.DumpWord())
	}
	dev.strobePrev = dev.top.DumpStrobe()
}

func (dev *Device) tickLink(in ...logic.LinkInput) {
	dev.top.TickLink(in...)
	dev.linkCycles++
	for i := 0; i < dev.top.Links(); i++ {
		if !dev.top.FrameAvailable(i) {
			continue
		}
		var (
			mem   = dev.top.CaptureMemory(i)
			frame = make([]byte, dev.top.FrameLength(i))
		)
		for j := range frame {
			frame[j] = mem.At(j + 1)
		}
		dev.frames = append(dev.frames, frame)
	}
}

// Step advances the device by n link clock edges, with the system
// domain running at the configured ratio and all link buses idle.
func (dev *Device) Step(n int) {
	for i := 0; i < n; i++ {
		for j := 0; j < dev.cfg.sysPerLink; j++ {
			dev.tickSys()
		}
		dev.tickLink()
	}
}

// SendFrame drives a byte frame into the given link, one byte per
// link clock edge with the validity line high, then one idle edge to
// close the frame. Both domains keep running throughout.
func (dev *Device) SendFrame(link int, data []byte) error {
	if link < 0 || link >= dev.top.Links() {
		return fmt.Errorf("sim: invalid link %d", link)
	}
	if len(data) == 0 {
		return fmt.Errorf("sim: empty frame")
	}
	if max := dev.top.CaptureMemory(link).Depth() - 1; len(data) > max {
		return fmt.Errorf("sim: frame too long (%d bytes, max %d)", len(data), max)
	}

	in := make([]logic.LinkInput, dev.top.Links())
	for _, v := range data {
		for j := 0; j < dev.cfg.sysPerLink; j++ {
			dev.tickSys()
		}
		in[link] = logic.LinkInput{Data: v, Valid: true}
		dev.tickLink(in...)
	}
	dev.Step(1)
	return nil
}

// Frames returns the frames captured by the link receivers so far, in
// arrival order.
func (dev *Device) Frames() [][]byte {
	out := make([][]byte, len(dev.frames))
	for i, f := range dev.frames {
		out[i] = append([]byte(nil), f...)
	}
	return out
}

// DumpWords returns the words emitted on the dump port so far, one
// per strobe pulse.
func (dev *Device) DumpWords() []byte {
	return append([]byte(nil), dev.words...)
}

// Status is a snapshot of the device counters and output lines.
type Status struct {
	SysCycles  uint64 `json:"sys_cycles"`
	LinkCycles uint64 `json:"link_cycles"`
	Frames     int    `json:"frames"`
	DumpWords  int    `json:"dump_words"`
	LED        bool   `json:"led"`
}

// Status reports the device state.
func (dev *Device) Status() Status {
	return Status{
		SysCycles:  dev.sysCycles,
		LinkCycles: dev.linkCycles,
		Frames:     len(dev.frames),
		DumpWords:  len(dev.words),
		LED:        dev.top.LED(),
	}
}

// Links reports the configured link count.
func (dev *Device) Links() int { return dev.top.Links() }

// Serial reports the output line of diagnostic UART i.
func (dev *Device) Serial(i int) bool { return dev.top.Serial(i) }
