// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares this repository's raster codec against stock
// general-purpose compressors with respect to encode speed, decode speed,
// and compression ratio.
package bench

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/dsnet/golib/strconv"

	"github.com/dsnet/grayscale/internal/testutil"
)

const (
	TestEncodeRate = iota
	TestDecodeRate
	TestCompressRatio
)

// An Encoder compresses a raster of the given width; general-purpose codecs
// ignore the width. A Decoder recovers the raw raster bytes.
type Encoder func(pix []byte, width int) ([]byte, error)
type Decoder func(data []byte) ([]byte, error)

// A Codec bundles both directions under one registry name.
type Codec struct {
	Name   string
	Encode Encoder
	Decode Decoder
}

var (
	codecs = make(map[string]Codec)

	// Paths is the list of directories searched for test files.
	Paths []string
)

func Register(c Codec) {
	codecs[c.Name] = c
}

// Lookup returns the named codec, or false if it was never registered.
func Lookup(name string) (Codec, bool) {
	c, ok := codecs[name]
	return c, ok
}

// CodecNames lists every registered codec, with this repository's codecs
// sorted ahead of the reference ones.
func CodecNames() []string {
	var ours, refs []string
	for name := range codecs {
		if strings.HasPrefix(name, "gray") {
			ours = append(ours, name)
		} else {
			refs = append(refs, name)
		}
	}
	sort.Strings(ours)
	sort.Strings(refs)
	return append(ours, refs...)
}

type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta ratio relative to primary benchmark
}

// BenchmarkEncoder benchmarks a single encoder on the given raster and
// reports the result.
func BenchmarkEncoder(pix []byte, width int, enc Encoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			if _, err := enc(pix, width); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(pix)))
		}
	})
}

// BenchmarkDecoder benchmarks a single decoder on pre-compressed data and
// reports the result.
func BenchmarkDecoder(data []byte, rawSize int, dec Decoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			if _, err := dec(data); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(rawSize))
		}
	})
}

// BenchmarkSuite runs one test kind across all codec names, files, widths,
// and sizes. Sizes are rounded down to a multiple of the width so that every
// trial raster is rectangular.
//
// The values returned have the following structure:
//
//	results: [len(files)*len(widths)*len(sizes)][len(names)]Result
//	rows:    [len(files)*len(widths)*len(sizes)]string
func BenchmarkSuite(test int, names, files []string, widths, sizes []int, tick func()) (results [][]Result, rows []string) {
	d0 := len(files) * len(widths) * len(sizes)
	results = make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, len(names))
	}
	rows = make([]string, d0)

	var i int
	for _, f := range files {
		for _, w := range widths {
			for _, n := range sizes {
				b, err := testutil.LoadFile(getPath(f), n)
				if err == nil {
					b = b[:len(b)/w*w]
				}
				rows[i] = getName(f, w, len(b))
				for j, name := range names {
					if tick != nil {
						tick()
					}
					if err == nil && len(b) > 0 {
						results[i][j] = runTrial(test, b, w, codecs[name])
					}
					results[i][j].D = results[i][j].R / results[i][0].R
				}
				i++
			}
		}
	}
	return results, rows
}

func runTrial(test int, pix []byte, width int, c Codec) Result {
	switch test {
	case TestEncodeRate:
		r := BenchmarkEncoder(pix, width, c.Encode)
		if r.N == 0 {
			return Result{}
		}
		us := (float64(r.T.Nanoseconds()) / 1e3) / float64(r.N)
		return Result{R: float64(r.Bytes) / us}
	case TestDecodeRate:
		data, err := c.Encode(pix, width)
		if err != nil {
			return Result{}
		}
		r := BenchmarkDecoder(data, len(pix), c.Decode)
		if r.N == 0 {
			return Result{}
		}
		us := (float64(r.T.Nanoseconds()) / 1e3) / float64(r.N)
		return Result{R: float64(r.Bytes) / us}
	case TestCompressRatio:
		data, err := c.Encode(pix, width)
		if err != nil {
			return Result{}
		}
		return Result{R: float64(len(pix)) / float64(len(data))}
	default:
		panic("unknown test")
	}
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

func getName(f string, w, n int) string {
	s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
	sn := strings.Replace(s, ".00", "", -1)
	return fmt.Sprintf("%s:%d:%s", path.Base(f), w, sn)
}
