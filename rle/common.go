// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package rle implements the bit-packed run-length encoding for 8-bit
// grayscale rasters.
//
// The encoded stream is self-describing: a settings byte records the scan
// direction and whether the pixels were delta-filtered, followed by the
// raster dimensions as minimal big-endian integers, followed by the framed
// runs. Runs are framed in groups of up to eight data bytes, each group led
// by a classifier byte whose bit i tells whether the i-th data byte is part
// of a run counter or a literal pixel value.
//
// Counter bytes encode count-2 as a minimal big-endian natural number, with
// a single zero byte reserved for count==2; a run of one is a bare value
// byte with no counter at all. This keeps every counter prefix unambiguous.
package rle

import "runtime"

const (
	// Settings byte layout.
	scanHorizontal = 0x80 // Set for row-major scan, clear for column-major
	deltaFiltered  = 0x40 // Set when the pixels were delta-filtered
	widthSizeMask  = 0x38 // Width byte count minus one, bits 3..5
	heightSizeMask = 0x07 // Height byte count minus one, bits 0..2

	// groupSize is the number of data bytes classified by one group byte.
	groupSize = 8
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "rle: " + string(e) }

var ErrCorrupt error = Error("stream is corrupted")

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
