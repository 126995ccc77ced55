// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package grayscale

// DeltaFilter replaces every pixel after the first with its difference from
// the predecessor, modulo 256, in place. Working back to front keeps each
// predecessor intact until it has been used.
func DeltaFilter(pix []byte) {
	for i := len(pix) - 1; i >= 1; i-- {
		pix[i] -= pix[i-1]
	}
}

// DeltaUnfilter inverts DeltaFilter in place by accumulating a running sum,
// modulo 256. DeltaUnfilter(DeltaFilter(pix)) leaves pix unchanged for
// every input.
func DeltaUnfilter(pix []byte) {
	for i := 1; i < len(pix); i++ {
		pix[i] += pix[i-1]
	}
}
