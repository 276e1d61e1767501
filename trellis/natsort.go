// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trellis

// natLess orders strings with embedded numbers the way a human reads
// them: "A2" before "A10", digit runs compared by value, ties broken
// by run length so leading zeroes stay stable.
func natLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		ad, bd := digits(a), digits(b)
		switch {
		case ad > 0 && bd > 0:
			av, bv := value(a[:ad]), value(b[:bd])
			if av != bv {
				return av < bv
			}
			if ad != bd {
				return ad < bd
			}
			a, b = a[ad:], b[bd:]

		default:
			if a[0] != b[0] {
				return a[0] < b[0]
			}
			a, b = a[1:], b[1:]
		}
	}
	return len(a) < len(b)
}

// digits reports the length of the leading digit run of s.
func digits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func value(s string) uint64 {
	var v uint64
	for i := 0; i < len(s); i++ {
		v = v*10 + uint64(s[i]-'0')
	}
	return v
}
