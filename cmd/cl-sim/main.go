// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// cl-sim runs the bring-up logic core in simulation. By default it
// drives a demo frame through link 0 and prints what the board emits;
// with -serve it exposes simulated devices over a TCP command socket
// instead.
//
// Example:
//
//  $> cl-sim -frame "Hello World!"
//  cl-sim: captured frame 0: "Hello World!"
//  cl-sim: dump words: 0048656c6c6f20576f726c64
//
//  $> cl-sim -serve :8080
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/adamgreig/cl/sim"
)

func main() {
	log.SetPrefix("cl-sim: ")
	log.SetFlags(0)

	var (
		serve   = flag.String("serve", "", "serve devices on this TCP address instead of a one-shot run")
		links   = flag.Int("links", 2, "PHY link count")
		depth   = flag.Int("depth", 2048, "buffer memory depth")
		dumpDiv = flag.Int("dump-div", 4, "dump strobe period, system cycles")
		ratio   = flag.Int("sys-per-link", 1, "system clock edges per link clock edge")
		payload = flag.String("payload", "", "replay memory contents (default: the stock payload)")
		frame   = flag.String("frame", "Hello World!", "demo frame to drive through link 0")
		cycles  = flag.Int("cycles", 1024, "link cycles to run after the demo frame")
	)
	flag.Parse()

	opts := []sim.Option{
		sim.WithLinkCount(*links),
		sim.WithDepth(*depth),
		sim.WithDumpDivider(*dumpDiv),
		sim.WithSysPerLink(*ratio),
	}
	if *payload != "" {
		opts = append(opts, sim.WithPayload([]byte(*payload)))
	}

	if *serve != "" {
		err := sim.Serve(context.Background(), *serve, opts...)
		if err != nil {
			log.Fatalf("could not serve: %+v", err)
		}
		return
	}

	err := run(opts, []byte(*frame), *cycles)
	if err != nil {
		log.Fatalf("could not run simulation: %+v", err)
	}
}

func run(opts []sim.Option, frame []byte, cycles int) error {
	dev, err := sim.New(opts...)
	if err != nil {
		return fmt.Errorf("could not create device: %w", err)
	}

	if len(frame) > 0 {
		err = dev.SendFrame(0, frame)
		if err != nil {
			return fmt.Errorf("could not send frame: %w", err)
		}
	}
	dev.Step(cycles)

	for i, f := range dev.Frames() {
		log.Printf("captured frame %d: %q", i, f)
	}
	log.Printf("dump words: %x", dev.DumpWords())

	st := dev.Status()
	log.Printf("ran %d link cycles, %d system cycles, led=%v",
		st.LinkCycles, st.SysCycles, st.LED)
	return nil
}
