// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logic

type txState uint8

const (
	txIdle txState = iota
	txData
)

// Transmitter replays a frame of n bytes from a buffer memory onto an
// 8-bit output bus with framing control lines. The read address runs
// from 1 while the payload occupies addresses 0..n-1: the output byte
// is the read port's data register, one cycle behind the address, so
// the n payload bytes appear in order exactly while the enable line
// is asserted.
//
// A start trigger while not ready is ignored. Lengths 0 and 1 exit
// the DATA state on its first cycle.
type Transmitter struct {
	rp *ReadPort

	state  txState
	addr   int
	length int

	enable bool
}

// NewTransmitter returns a transmitter driving the given read port.
func NewTransmitter(rp *ReadPort) *Transmitter {
	return &Transmitter{rp: rp}
}

// Tick advances the transmitter by one edge of the recovered link
// clock. The read port must be ticked first.
func (tx *Transmitter) Tick(start bool, length int) {
	switch tx.state {
	case txIdle:
		tx.length = length
		if start {
			tx.enable = true
			tx.addr = 1
			tx.state = txData
		} else {
			tx.enable = false
			tx.addr = 0
		}

	case txData:
		if tx.addr >= tx.length-1 {
			tx.state = txIdle
		}
		tx.addr++
	}
	tx.rp.Addr = tx.addr
}

// Ready reports whether a start trigger would be accepted.
func (tx *Transmitter) Ready() bool { return tx.state == txIdle }

// Enable reports the transmit-enable framing line.
func (tx *Transmitter) Enable() bool { return tx.enable }

// EnableXorErr reports the second framing line, transmit-enable XOR
// error. The error term is TxErrReserved and always zero.
func (tx *Transmitter) EnableXorErr() bool {
	return tx.enable != (TxErrReserved != 0)
}

// Data reports the byte currently driven on the output bus.
func (tx *Transmitter) Data() byte { return tx.rp.Data }
