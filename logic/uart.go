// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logic

import "fmt"

// UART serializes a fixed data byte over a single line: one start bit
// (low), n data bits LSB first, one stop bit (high), each held for
// divider clock cycles. The line idles high.
//
// There is no ready output: a send pulse is accepted only while the
// bit counter is zero, and silently dropped otherwise.
type UART struct {
	data byte // byte to send, fixed at construction
	n    int  // payload width in bits
	div  int  // clock cycles per bit

	reg uint32 // shift register, n+2 bits, resets to all-ones
	cnt int    // bits still in flight
	dcn int    // divider countdown for the current bit
}

// NewUART returns a transmitter for the given fixed data byte with
// divider clock cycles per bit (divider >= 1) and n data bits per
// frame (1 to 8).
func NewUART(data byte, divider, n int) (*UART, error) {
	if divider < 1 {
		return nil, fmt.Errorf("logic: invalid UART divider %d", divider)
	}
	if n < 1 || n > 8 {
		return nil, fmt.Errorf("logic: invalid UART data width %d", n)
	}
	return &UART{
		data: data,
		n:    n,
		div:  divider,
		reg:  1<<(n+2) - 1,
	}, nil
}

// Tick advances the transmitter by one clock edge of the system
// domain.
func (u *UART) Tick(send bool) {
	if u.cnt == 0 {
		// Idle.
		if send {
			u.reg = 1<<(u.n+1) | uint32(u.data)<<1 // {stop=1, data, start=0}
			u.cnt = u.n + 2
			u.dcn = u.div - 1
		}
		return
	}
	if u.dcn != 0 {
		// Hold the current bit.
		u.dcn--
		return
	}
	u.reg = u.reg>>1 | 1<<(u.n+1)
	u.cnt--
	u.dcn = u.div - 1
}

// Out reports the serial line level.
func (u *UART) Out() bool { return u.reg&1 == 1 }

// Idle reports whether the transmitter would accept a send pulse.
func (u *UART) Idle() bool { return u.cnt == 0 }
