// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// cl-pins infers the pin assignment of an ECP5 bitstream from its
// Project Trellis textual configuration dump.
//
// Usage: cl-pins [OPTIONS] FILE.config
//
// Example:
//
//  $> cl-pins build/top.config
//  A2 output LVCMOS33
//  A3 unused
//  [...]
//  Inputs:  [A10 A12]
//  Outputs: [A7 A15 E12 E13 K12 M6 M12]
//  Bidis:   [D12]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/adamgreig/cl/trellis"
)

func main() {
	log.SetPrefix("cl-pins: ")
	log.SetFlags(0)

	var (
		pkg    = flag.String("package", trellis.DefaultPackage, "device footprint")
		dbpath = flag.String("dbpath", trellis.DefaultIODB, "path to the iodb.json database")
	)

	flag.Usage = func() {
		fmt.Printf(`cl-pins infers the pin assignment of an ECP5 bitstream from its
Project Trellis textual configuration dump.

Usage: cl-pins [OPTIONS] FILE.config

`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		log.Fatalf("missing path to input .config file")
	}

	err := process(os.Stdout, flag.Arg(0), *dbpath, *pkg)
	if err != nil {
		log.Fatalf("could not infer pins: %+v", err)
	}
}

func process(w io.Writer, fname, dbpath, pkg string) error {
	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	cfg, err := trellis.LoadConfig(fname)
	if err != nil {
		return fmt.Errorf("could not load config %q: %w", fname, err)
	}
	db, err := trellis.LoadIODB(dbpath, pkg)
	if err != nil {
		return fmt.Errorf("could not load I/O database %q: %w", dbpath, err)
	}

	pins, err := trellis.Infer(cfg, db)
	if err != nil {
		return fmt.Errorf("could not classify pins: %w", err)
	}

	for _, pin := range pins {
		switch pin.Role {
		case trellis.Unused:
			fmt.Fprintf(wbuf, "%s unused\n", pin.Name)
		default:
			fmt.Fprintf(wbuf, "%s %v %s\n", pin.Name, pin.Role, strings.Join(pin.Modes, ","))
		}
	}

	inputs, outputs, bidis := trellis.Roles(pins)
	fmt.Fprintf(wbuf, "Inputs:  %v\n", inputs)
	fmt.Fprintf(wbuf, "Outputs: %v\n", outputs)
	fmt.Fprintf(wbuf, "Bidis:   %v\n", bidis)
	return nil
}
