// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logic models the synchronous logic core of the ColorLight
// 5A-75E bring-up design, cycle by cycle.
//
// Each component owns its registers and exposes one Tick method per
// clock edge of its timing domain: calling Tick computes the next
// register values from the current ones and the inputs sampled on
// that edge. Memory ports are the only shared state; a port must be
// ticked before the machine that drives it so that port registers
// trail their driver by exactly one cycle, as in the synchronous
// block RAMs of the real design.
package logic // import "github.com/adamgreig/cl/logic"

// TxErrReserved is the value of the link transmitter error framing
// bit. The bit is reserved for future error injection and is always
// zero.
const TxErrReserved = 0

const (
	// DefaultDepth is the buffer memory depth of the stock design.
	DefaultDepth = 2048

	// DefaultUARTDivider is the serial clock divider matching the
	// board oscillator (115200 baud from the internal OSCG output).
	DefaultUARTDivider = 217
)

// DefaultPayload is the replay buffer contents of the stock design.
// Only the first DefaultReplayLen bytes are replayed on the link.
var DefaultPayload = []byte("Hello World! Ignore this.")

// DefaultReplayLen is the frame length replayed from DefaultPayload.
const DefaultReplayLen = 12
