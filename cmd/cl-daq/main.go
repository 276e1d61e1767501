// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command cl-daq exposes a simulated board as a TDAQ process: it
// pumps the two clock domains, feeds pseudo-random frames into the
// link receivers and publishes everything they capture on the
// /frames end-point.
package main // import "github.com/adamgreig/cl/cmd/cl-daq"

import (
	"context"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/go-daq/tdaq"
	"github.com/go-daq/tdaq/flags"

	"github.com/adamgreig/cl/sim"
)

func main() {
	cmd := flags.New()

	dev := board{
		seed: 1234,
	}

	srv := tdaq.New(cmd, os.Stdout)
	srv.CmdHandle("/config", dev.OnConfig)
	srv.CmdHandle("/init", dev.OnInit)
	srv.CmdHandle("/reset", dev.OnReset)
	srv.CmdHandle("/start", dev.OnStart)
	srv.CmdHandle("/stop", dev.OnStop)
	srv.CmdHandle("/quit", dev.OnQuit)

	srv.OutputHandle("/frames", dev.frames)

	srv.RunHandle(dev.run)

	err := srv.Run(context.Background())
	if err != nil {
		log.Panicf("error: %+v", err)
	}
}

type board struct {
	seed int64
	rnd  *rand.Rand

	dev  *sim.Device
	n    int
	data chan []byte
}

func (dev *board) reset() error {
	d, err := sim.New(
		sim.WithLinkCount(2),
		sim.WithSysPerLink(2),
	)
	if err != nil {
		return err
	}
	dev.dev = d
	dev.rnd = rand.New(rand.NewSource(dev.seed))
	dev.data = make(chan []byte, 1024)
	dev.n = 0
	return nil
}

func (dev *board) OnConfig(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /config command...")
	return nil
}

func (dev *board) OnInit(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /init command...")
	return dev.reset()
}

func (dev *board) OnReset(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /reset command...")
	return dev.reset()
}

func (dev *board) OnStart(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /start command...")
	return nil
}

func (dev *board) OnStop(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	n := dev.n
	ctx.Msg.Debugf("received /stop command... -> frames=%d", n)
	return nil
}

func (dev *board) OnQuit(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /quit command...")
	return nil
}

func (dev *board) frames(ctx tdaq.Context, dst *tdaq.Frame) error {
	select {
	case <-ctx.Ctx.Done():
		dst.Body = nil
		return nil
	case data := <-dev.data:
		dst.Body = data
	}
	return nil
}

func (dev *board) run(ctx tdaq.Context) error {
	for {
		select {
		case <-ctx.Ctx.Done():
			return nil
		default:
			if dev.dev == nil {
				break
			}
			frame := make([]byte, 1+dev.rnd.Intn(64))
			dev.rnd.Read(frame)
			err := dev.dev.SendFrame(dev.rnd.Intn(dev.dev.Links()), frame)
			if err != nil {
				return err
			}
			dev.dev.Step(256)

			for _, f := range dev.dev.Frames()[dev.n:] {
				dev.n++
				select {
				case dev.data <- f:
				default:
				}
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
}
