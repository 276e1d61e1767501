// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logic

type rxState uint8

const (
	rxIdle rxState = iota
	rxCapture
)

// Receiver captures a byte stream framed by a validity line into a
// buffer memory, starting at address 1. On deassertion of validity it
// latches the number of bytes captured and pulses frame-available for
// exactly one cycle.
//
// The write port registers trail the counter by one cycle: the port
// must be ticked before the receiver on each edge, so the byte seen
// on the bus during a cycle commits to memory on the following edge,
// at the address implied for that earlier cycle.
type Receiver struct {
	wp *WritePort

	state rxState
	cnt   int

	avail  bool // frame-available, one-cycle pulse
	length int  // latched frame length
}

// NewReceiver returns a receiver driving the given write port.
func NewReceiver(wp *WritePort) *Receiver {
	return &Receiver{wp: wp}
}

// Tick samples the data bus and the validity line on one edge of the
// recovered link clock.
func (rx *Receiver) Tick(data byte, valid bool) {
	switch rx.state {
	case rxIdle:
		rx.avail = false
		rx.length = 0
		rx.wp.En = false
		if !valid {
			rx.cnt = 0
			return
		}
		rx.cnt = 1
		rx.state = rxCapture
		rx.wp.Addr = rx.cnt
		rx.wp.Data = data
		rx.wp.En = true

	case rxCapture:
		if valid {
			rx.cnt++
			rx.wp.Addr = rx.cnt
			rx.wp.Data = data
			rx.wp.En = true
			return
		}
		rx.length = rx.cnt
		rx.avail = true
		rx.cnt = 0
		rx.state = rxIdle
		rx.wp.En = false
	}
}

// FrameAvailable reports the one-cycle frame-available pulse.
func (rx *Receiver) FrameAvailable() bool { return rx.avail }

// FrameLength reports the latched length of the last captured frame.
// It is only meaningful on the cycle FrameAvailable is asserted.
func (rx *Receiver) FrameLength() int { return rx.length }
