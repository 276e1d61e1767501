// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package board describes the ColorLight 5A-75E v6.0 LED-panel
// controller: the FPGA fitted to it and the pin assignment of every
// known on-board resource, the 16 RGB panel headers, and the pins
// whose role has not been identified yet.
package board

import "fmt"

// FPGA fitted to the v6.0 board.
const (
	Device  = "LFE5U-25F"
	Package = "BG256"
	Speed   = "6"

	// all single-ended I/O on the board
	IOType = "LVCMOS33"

	// on-board oscillator, in Hz, on the default clock resource
	ClockHz = 25e6
)

// Dir is the direction of a signal as seen from the FPGA.
type Dir uint8

const (
	Input Dir = iota + 1
	Output
	Bidir
)

func (d Dir) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	case Bidir:
		return "bidir"
	}
	return fmt.Sprintf("Dir(%d)", uint8(d))
}

// Signal is one named signal of a resource and the package balls it
// maps to. A resource made of a single anonymous signal (a bare pin)
// has one Signal with an empty name.
type Signal struct {
	Name   string
	Pins   []string
	Dir    Dir
	Invert bool // active low
}

// Resource is a named, indexed group of signals.
type Resource struct {
	Name    string
	Index   int
	Signals []Signal
}

// Pins returns all package balls used by the resource.
func (r Resource) Pins() []string {
	var pins []string
	for _, sig := range r.Signals {
		pins = append(pins, sig.Pins...)
	}
	return pins
}

func pin(name string, dir Dir, balls ...string) Signal {
	return Signal{Name: name, Pins: balls, Dir: dir}
}

func pinN(name string, dir Dir, balls ...string) Signal {
	return Signal{Name: name, Pins: balls, Dir: dir, Invert: true}
}

// LEDHeaders lists the package balls of the 16 RGB panel headers
// J1-J16, in order r0, g0, b0, r1, g1, b1.
var LEDHeaders = [16][6]string{
	{"C4", "D4", "E4", "D3", "E3", "F4"},       // J1
	{"F3", "F5", "G3", "G4", "H3", "H4"},       // J2
	{"G5", "H5", "J5", "J4", "B1", "C2"},       // J3
	{"C1", "D1", "E2", "E1", "F2", "F1"},       // J4
	{"G2", "G1", "H2", "K5", "K4", "L3"},       // J5
	{"L4", "L5", "P2", "R2", "T2", "R3"},       // J6
	{"T3", "R4", "M5", "P5", "N6", "N7"},       // J7
	{"P7", "M7", "P8", "R8", "M8", "M9"},       // J8
	{"P11", "N11", "M11", "T13", "R12", "R13"}, // J9
	{"R14", "T14", "D16", "C15", "C16", "B16"}, // J10
	{"B15", "C14", "T15", "P15", "R15", "P12"}, // J11
	{"P13", "N12", "N13", "M13", "P14", "N14"}, // J12
	{"H15", "H14", "G16", "F16", "G15", "F15"}, // J13
	{"E15", "E16", "L12", "L13", "M14", "L14"}, // J14
	{"J13", "K13", "J12", "H13", "H12", "G12"}, // J15
	{"G14", "G13", "F12", "F13", "F14", "E14"}, // J16
}

// Pins with no identified function on the board. The bring-up design
// drives a diagnostic UART on each output, numbered by list position.
var (
	Inputs  = []string{"A10", "A12"}
	Outputs = []string{"A7", "A15", "E12", "E13", "K12", "M6", "M12"}
	Bidis   = []string{"D12"}
)

// Resources returns the full resource list of the board: the named
// on-board peripherals, one led_rgb resource per panel header, and one
// bare-pin resource per unknown pin, named after its ball.
func Resources() []Resource {
	res := []Resource{
		{Name: "clk25", Signals: []Signal{pin("", Input, "P6")}},
		{Name: "led", Signals: []Signal{pin("", Output, "T6")}},
		{Name: "key", Signals: []Signal{pinN("", Input, "R7")}},
		{Name: "flash", Signals: []Signal{
			pin("cs", Output, "N8"),
			pin("so", Input, "T7"),
			pin("si", Output, "T8"),
		}},
		{Name: "led_common", Signals: []Signal{
			pin("a", Output, "N5"),
			pin("b", Output, "N3"),
			pin("c", Output, "P3"),
			pin("d", Output, "P4"),
			pin("e", Output, "N4"),
			pin("clk", Output, "M3"),
			pin("lat", Output, "N1"),
			pin("oe", Output, "M4"),
		}},
		{Name: "eth_common", Signals: []Signal{
			pin("mdc", Output, "R5"),
			pin("mdio", Bidir, "T4"),
			pinN("rst", Output, "R6"),
		}},
		{Name: "phy", Index: 0, Signals: []Signal{
			pin("txc", Output, "L1"),
			pin("txd", Output, "M2", "M1", "P1", "R1"),
			pin("txctl", Output, "L2"),
			pin("rxc", Input, "J1"),
			pin("rxd", Input, "J3", "K2", "K1", "K3"),
			pin("rxctl", Input, "J2"),
		}},
		{Name: "phy", Index: 1, Signals: []Signal{
			pin("txc", Output, "J16"),
			pin("txd", Output, "K16", "J15", "J14", "K15"),
			pin("txctl", Output, "K14"),
			pin("rxc", Input, "M16"),
			pin("rxd", Input, "M15", "R16", "L15", "L16"),
			pin("rxctl", Input, "P16"),
		}},
		{Name: "sdram", Signals: []Signal{
			pinN("we", Output, "B5"),
			pinN("cas", Output, "A6"),
			pinN("ras", Output, "B6"),
			pin("ba", Output, "B7", "A8"),
			pin("a", Output,
				"A9", "B9", "B10", "C10", "D9", "C9", "E9", "D8", "E8",
				"C7", "B8",
			),
			pin("d", Bidir,
				"D5", "C5", "E5", "C6", "D6", "E6", "D7", "E7", "D10",
				"C11", "D11", "C12", "E10", "C13", "D13", "E11", "A5",
				"B4", "A4", "B3", "A3", "C3", "A2", "B2", "D14", "B14",
				"A14", "B13", "A13", "B12", "B11", "A11",
			),
			pin("clk", Output, "C8"),
		}},
	}

	for i, hdr := range LEDHeaders {
		res = append(res, Resource{
			Name:  "led_rgb",
			Index: i,
			Signals: []Signal{
				pin("r0", Output, hdr[0]),
				pin("g0", Output, hdr[1]),
				pin("b0", Output, hdr[2]),
				pin("r1", Output, hdr[3]),
				pin("g1", Output, hdr[4]),
				pin("b1", Output, hdr[5]),
			},
		})
	}
	for _, p := range Outputs {
		res = append(res, Resource{Name: p, Signals: []Signal{pin("", Output, p)}})
	}
	for _, p := range Inputs {
		res = append(res, Resource{Name: p, Signals: []Signal{pin("", Input, p)}})
	}
	for _, p := range Bidis {
		res = append(res, Resource{Name: p, Signals: []Signal{pin("", Bidir, p)}})
	}
	return res
}

// Lookup returns the resource with the given name and index.
func Lookup(name string, index int) (Resource, error) {
	for _, res := range Resources() {
		if res.Name == name && res.Index == index {
			return res, nil
		}
	}
	return Resource{}, fmt.Errorf("board: unknown resource %q[%d]", name, index)
}
