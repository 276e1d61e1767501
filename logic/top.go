// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logic

import "fmt"

// Config enumerates the board topology. The near-duplicate board
// builds differ only by these knobs, not by architecture.
type Config struct {
	Links       int    // PHY link count (capture/replay pairs)
	Depth       int    // buffer memory depth, words
	Payload     []byte // replay memory contents, loaded at address 0
	ReplayLen   int    // bytes replayed per trigger
	ReplayBits  int    // replay trigger fires every 2^ReplayBits system cycles
	DumpDivider int    // dumper strobe period, cycles
	DiagUARTs   int    // diagnostic UART count, 0 disables
	UARTDivider int    // cycles per UART bit
}

func (cfg *Config) setDefaults() {
	if cfg.Links == 0 {
		cfg.Links = 2
	}
	if cfg.Depth == 0 {
		cfg.Depth = DefaultDepth
	}
	if cfg.Payload == nil {
		cfg.Payload = DefaultPayload
	}
	if cfg.ReplayLen == 0 {
		cfg.ReplayLen = DefaultReplayLen
	}
	if cfg.ReplayBits == 0 {
		cfg.ReplayBits = 16
	}
	if cfg.DumpDivider == 0 {
		cfg.DumpDivider = 4
	}
	if cfg.UARTDivider == 0 {
		cfg.UARTDivider = DefaultUARTDivider
	}
}

// LinkInput is the per-link data bus and validity line sampled on one
// link clock edge.
type LinkInput struct {
	Data  byte
	Valid bool
}

type link struct {
	capture *Memory
	wp      *WritePort
	rx      *Receiver
	rp      *ReadPort // replay read port
	tx      *Transmitter
}

const (
	ledBit      = 21 // LED blink: bit 21 of the free-running counter
	uartSendBit = 18 // UART send pulse: edge detect on bit 18
)

// Top composes the core: one capture memory and receiver per link,
// one shared pre-loaded replay memory feeding a transmitter per link,
// and a dumper observing link 0's capture memory.
//
// Two timing domains exist. TickSys advances the internally clocked
// domain (UARTs, LED and replay counters, dumper and its read port);
// TickLink advances the domain clocked by the recovered link clock
// (receivers, transmitters and their memory ports). Signals crossing
// between the two are plain registers with no synchronizer chain,
// matching the original design; a one-deep latch on each trigger
// keeps a slower consumer domain from missing a one-cycle pulse.
type Top struct {
	cfg Config

	replay *Memory
	links  []link

	dumpRP *ReadPort
	dump   *Dumper
	uarts  []*UART

	// system-domain free-running counters
	sysCnt   uint32
	sendPrev bool

	// cross-domain trigger latches, unsynchronized
	replayReq bool
	dumpReq   bool
	dumpLen   int
}

// NewTop builds the composed design from cfg, filling zero fields
// with the stock board defaults.
func NewTop(cfg Config) (*Top, error) {
	cfg.setDefaults()
	if cfg.Links < 1 {
		return nil, fmt.Errorf("logic: invalid link count %d", cfg.Links)
	}
	if cfg.ReplayLen > len(cfg.Payload) {
		return nil, fmt.Errorf(
			"logic: replay length %d exceeds payload size %d",
			cfg.ReplayLen, len(cfg.Payload),
		)
	}

	replay, err := NewMemory(cfg.Depth, 8, cfg.Payload)
	if err != nil {
		return nil, fmt.Errorf("logic: could not create replay memory: %w", err)
	}

	top := &Top{
		cfg:    cfg,
		replay: replay,
	}

	for i := 0; i < cfg.Links; i++ {
		capture, err := NewMemory(cfg.Depth, 8, nil)
		if err != nil {
			return nil, fmt.Errorf("logic: could not create capture memory %d: %w", i, err)
		}
		wp := capture.WritePort()
		rp := replay.ReadPort()
		top.links = append(top.links, link{
			capture: capture,
			wp:      wp,
			rx:      NewReceiver(wp),
			rp:      rp,
			tx:      NewTransmitter(rp),
		})
	}

	top.dumpRP = top.links[0].capture.ReadPort()
	top.dump, err = NewDumper(top.dumpRP, cfg.DumpDivider)
	if err != nil {
		return nil, fmt.Errorf("logic: could not create dumper: %w", err)
	}

	for i := 0; i < cfg.DiagUARTs; i++ {
		u, err := NewUART(byte(i), cfg.UARTDivider, 8)
		if err != nil {
			return nil, fmt.Errorf("logic: could not create UART %d: %w", i, err)
		}
		top.uarts = append(top.uarts, u)
	}

	return top, nil
}

// TickSys advances the internally clocked domain by one edge.
func (t *Top) TickSys() {
	t.sysCnt++

	// diagnostic UARTs, pulsed on both edges of a counter bit
	bit := t.sysCnt&(1<<uartSendBit) != 0
	send := bit != t.sendPrev
	t.sendPrev = bit
	for _, u := range t.uarts {
		u.Tick(send)
	}

	// periodic replay trigger for the link-domain transmitters
	if t.sysCnt&(1<<t.cfg.ReplayBits-1) == 0 {
		t.replayReq = true
	}

	// every captured frame is dumped as soon as the trigger latch is
	// seen on this side of the crossing
	start := t.dumpReq
	t.dumpRP.Tick()
	t.dump.Tick(start, t.dumpLen)
	if start {
		t.dumpReq = false
	}
}

// TickLink advances the link-clocked domain by one edge, sampling the
// given per-link inputs. Links beyond len(in) sample an idle bus.
func (t *Top) TickLink(in ...LinkInput) {
	start := t.replayReq
	t.replayReq = false

	for i := range t.links {
		l := &t.links[i]
		var s LinkInput
		if i < len(in) {
			s = in[i]
		}
		l.wp.Tick()
		l.rp.Tick()
		l.rx.Tick(s.Data, s.Valid)
		l.tx.Tick(start, t.cfg.ReplayLen)

		if i == 0 && l.rx.FrameAvailable() {
			t.dumpReq = true
			t.dumpLen = l.rx.FrameLength()
		}
	}
}

// LED reports the blink line driven from the free-running counter.
func (t *Top) LED() bool { return t.sysCnt&(1<<ledBit) != 0 }

// Serial reports the output line of diagnostic UART i.
func (t *Top) Serial(i int) bool { return t.uarts[i].Out() }

// DumpWord reports the dumper output word register.
func (t *Top) DumpWord() byte { return t.dump.Word() }

// DumpStrobe reports the dumper strobe line.
func (t *Top) DumpStrobe() bool { return t.dump.Strobe() }

// TxData reports the output bus of link i's transmitter.
func (t *Top) TxData(i int) byte { return t.links[i].tx.Data() }

// TxEnable reports the transmit-enable line of link i.
func (t *Top) TxEnable(i int) bool { return t.links[i].tx.Enable() }

// TxEnableXorErr reports the enable-xor-error line of link i.
func (t *Top) TxEnableXorErr(i int) bool { return t.links[i].tx.EnableXorErr() }

// TxReady reports whether link i's transmitter is idle.
func (t *Top) TxReady(i int) bool { return t.links[i].tx.Ready() }

// FrameAvailable reports link i's frame-available pulse.
func (t *Top) FrameAvailable(i int) bool { return t.links[i].rx.FrameAvailable() }

// FrameLength reports link i's latched frame length.
func (t *Top) FrameLength(i int) int { return t.links[i].rx.FrameLength() }

// Links reports the configured link count.
func (t *Top) Links() int { return t.cfg.Links }

// UARTs reports the configured diagnostic UART count.
func (t *Top) UARTs() int { return len(t.uarts) }

// CaptureMemory returns link i's capture memory, for diagnostics.
func (t *Top) CaptureMemory(i int) *Memory { return t.links[i].capture }

// ReplayLen reports the configured replay frame length.
func (t *Top) ReplayLen() int { return t.cfg.ReplayLen }
