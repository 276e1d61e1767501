// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package board

import "testing"

func TestResourcePins(t *testing.T) {
	// every package ball is assigned to at most one resource
	seen := make(map[string]string)
	for _, res := range Resources() {
		for _, p := range res.Pins() {
			if prev, dup := seen[p]; dup {
				t.Errorf("pin %s assigned to both %s and %s", p, prev, res.Name)
			}
			seen[p] = res.Name
		}
	}
	// 25F in BG256: ball names are <row letter><column>
	for p := range seen {
		if p[0] < 'A' || p[0] > 'T' {
			t.Errorf("invalid ball name %q", p)
		}
	}
}

func TestLookup(t *testing.T) {
	for _, tc := range []struct {
		name  string
		index int
		sigs  int
		pins  int
	}{
		{name: "clk25", sigs: 1, pins: 1},
		{name: "phy", index: 1, sigs: 6, pins: 12},
		{name: "sdram", sigs: 7, pins: 49},
		{name: "led_rgb", index: 15, sigs: 6, pins: 6},
		{name: "A10", sigs: 1, pins: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Lookup(tc.name, tc.index)
			if err != nil {
				t.Fatalf("could not look up resource: %+v", err)
			}
			if got, want := len(res.Signals), tc.sigs; got != want {
				t.Fatalf("invalid signal count: got=%d, want=%d", got, want)
			}
			if got, want := len(res.Pins()), tc.pins; got != want {
				t.Fatalf("invalid pin count: got=%d, want=%d", got, want)
			}
		})
	}

	_, err := Lookup("phy", 2)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if got, want := err.Error(), `board: unknown resource "phy"[2]`; got != want {
		t.Fatalf("invalid error:\ngot= %s\nwant=%s", got, want)
	}
}

func TestHeaders(t *testing.T) {
	if got, want := len(LEDHeaders), 16; got != want {
		t.Fatalf("invalid header count: got=%d, want=%d", got, want)
	}
	for i := range LEDHeaders {
		res, err := Lookup("led_rgb", i)
		if err != nil {
			t.Fatalf("J%d: could not look up header: %+v", i+1, err)
		}
		for j, sig := range res.Signals {
			if sig.Dir != Output {
				t.Errorf("J%d.%s: not an output", i+1, sig.Name)
			}
			if got, want := sig.Pins[0], LEDHeaders[i][j]; got != want {
				t.Errorf("J%d.%s: got=%s, want=%s", i+1, sig.Name, got, want)
			}
		}
	}
}

func TestActiveLow(t *testing.T) {
	for _, tc := range []struct{ res, sig string }{
		{res: "key"},
		{res: "eth_common", sig: "rst"},
		{res: "sdram", sig: "we"},
		{res: "sdram", sig: "cas"},
		{res: "sdram", sig: "ras"},
	} {
		res, err := Lookup(tc.res, 0)
		if err != nil {
			t.Fatalf("%s: could not look up resource: %+v", tc.res, err)
		}
		found := false
		for _, sig := range res.Signals {
			if sig.Name == tc.sig {
				found = true
				if !sig.Invert {
					t.Errorf("%s.%s: not active low", tc.res, tc.sig)
				}
			}
		}
		if !found {
			t.Errorf("%s: no signal %q", tc.res, tc.sig)
		}
	}
}
