// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore
// +build ignore

// Generates synthetic grayscale rasters for the benchmark tool. Each file
// is a raw 8-bit raster of the given width with no header. The set covers
// the regimes the codec cares about: flat regions that collapse into a few
// runs, smooth gradients that only compress well after delta filtering,
// column stripes that favor the vertical scan, and noise that defeats both
// stages and should pass through nearly verbatim.
package main

import (
	"math/rand"
	"os"
)

const (
	width  = 512
	height = 512
)

func main() {
	write("flat.gray", func(x, y int) byte {
		return 0x80
	})
	write("gradient.gray", func(x, y int) byte {
		return byte((x + y) / 4)
	})
	write("stripes.gray", func(x, y int) byte {
		return byte(x / 8 * 16)
	})
	r := rand.New(rand.NewSource(0))
	write("noise.gray", func(x, y int) byte {
		return byte(r.Int())
	})
}

func write(name string, pixel func(x, y int) byte) {
	b := make([]byte, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b = append(b, pixel(x, y))
		}
	}
	if err := os.WriteFile(name, b, 0664); err != nil {
		panic(err)
	}
}
