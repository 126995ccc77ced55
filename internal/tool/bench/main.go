// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build ignore
// +build ignore

// Benchmark tool to compare the raster codec against stock compressors.
// Individual implementations are referred to as codecs.
//
// Example usage:
//
//	$ go build -o benchmark main.go
//	$ ./benchmark \
//		-tests  ratio,encRate       \
//		-codecs gray-ma,zstd,xz     \
//		-files  gradient.gray       \
//		-widths 512                 \
//		-sizes  1e4,1e5,1e6
//
//	BENCHMARK: ratio
//		benchmark              gray-ma ratio  delta      zstd ratio  delta
//		gradient.gray:512:9.50K        11.63  1.00x            9.71  0.83x
//		...
package main

import (
	"flag"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/dsnet/golib/strconv"

	"github.com/dsnet/grayscale/internal/tool/bench"
)

const (
	defaultPaths  = "../../../testdata"
	defaultWidths = "256,512"
	defaultSizes  = "1e4,1e5,1e6"
)

var (
	testToEnum = map[string]int{
		"encRate": bench.TestEncodeRate,
		"decRate": bench.TestDecodeRate,
		"ratio":   bench.TestCompressRatio,
	}
	enumToTest = map[int]string{
		bench.TestEncodeRate:    "encRate",
		bench.TestDecodeRate:    "decRate",
		bench.TestCompressRatio: "ratio",
	}
)

func main() {
	f0 := flag.String("tests", "ratio,encRate,decRate", "List of different benchmark tests")
	f1 := flag.String("codecs", strings.Join(bench.CodecNames(), ","), "List of codecs to benchmark")
	f2 := flag.String("paths", defaultPaths, "List of paths to search for test files")
	f3 := flag.String("files", "", "List of input raster files to benchmark")
	f4 := flag.String("widths", defaultWidths, "List of raster widths to benchmark")
	f5 := flag.String("sizes", defaultSizes, "List of input sizes to benchmark")
	f6 := flag.String("csv", "", "Also write results to this CSV file")
	flag.Parse()

	var sep = regexp.MustCompile("[,:]")
	var tests, widths, sizes []int
	codecs := sep.Split(*f1, -1)
	paths := sep.Split(*f2, -1)
	files := sep.Split(*f3, -1)
	for _, s := range sep.Split(*f0, -1) {
		if _, ok := testToEnum[s]; !ok {
			panic("invalid test")
		}
		tests = append(tests, testToEnum[s])
	}
	for _, s := range sep.Split(*f4, -1) {
		w, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil || w < 1 {
			panic("invalid width")
		}
		widths = append(widths, int(w))
	}
	for _, s := range sep.Split(*f5, -1) {
		n, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			panic("invalid size")
		}
		sizes = append(sizes, int(n))
	}
	for _, c := range codecs {
		if _, ok := bench.Lookup(c); !ok {
			panic(fmt.Sprintf("unknown codec: %s", c))
		}
	}

	ts := time.Now()
	bench.Paths = paths
	var recs []bench.Record
	for _, t := range tests {
		fmt.Printf("BENCHMARK: %s\n", enumToTest[t])

		var cnt int
		tick := func() {
			total := len(codecs) * len(files) * len(widths) * len(sizes)
			pct := 100.0 * float64(cnt) / float64(total)
			fmt.Printf("\t[%6.2f%%] %d of %d\r", pct, cnt, total)
			cnt++
		}

		title, suffix := "MB/s", ""
		if t == bench.TestCompressRatio {
			title, suffix = "ratio", "x"
		}
		results, rows := bench.BenchmarkSuite(t, codecs, files, widths, sizes, tick)
		printResults(results, rows, codecs, title, suffix)
		recs = append(recs, bench.Records(enumToTest[t], results, rows, codecs)...)
		fmt.Println()
	}
	if *f6 != "" {
		if err := bench.WriteCSV(*f6, recs); err != nil {
			panic(err)
		}
	}
	fmt.Printf("RUNTIME: %v\n", time.Since(ts))
}

func printResults(results [][]bench.Result, rows, codecs []string, title, suffix string) {
	// Allocate result table.
	cells := make([][]string, 1+len(rows))
	for i := range cells {
		cells[i] = make([]string, 1+2*len(codecs))
	}

	// Label the first row.
	cells[0][0] = "benchmark"
	for i, c := range codecs {
		cells[0][1+2*i] = c + " " + title
		cells[0][2+2*i] = "delta"
	}

	// Insert all rows.
	for j, row := range results {
		cells[1+j][0] = rows[j]
		for i, r := range row {
			if r.R != 0 && !math.IsNaN(r.R) && !math.IsInf(r.R, 0) {
				cells[1+j][1+2*i] = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if r.D != 0 && !math.IsNaN(r.D) && !math.IsInf(r.D, 0) {
				cells[1+j][2+2*i] = fmt.Sprintf("%.2f", r.D) + "x"
			}
		}
	}

	// Compute the maximum lengths.
	maxLens := make([]int, 1+2*len(codecs))
	for _, row := range cells {
		for i, s := range row {
			if maxLens[i] < len(s) {
				maxLens[i] = len(s)
			}
		}
	}

	// Print padded versions of all cells.
	for _, row := range cells {
		fmt.Print("\t")
		for i, s := range row {
			switch {
			case i == 0: // Column 0
				row[i] = s + strings.Repeat(" ", maxLens[i]-len(s))
			case i%2 == 1: // Column 1, 3, 5, 7, ...
				row[i] = strings.Repeat(" ", 6+maxLens[i]-len(s)) + s
			case i%2 == 0: // Column 2, 4, 6, 8, ...
				row[i] = strings.Repeat(" ", 2+maxLens[i]-len(s)) + s
			}
			fmt.Print(row[i])
		}
		fmt.Println()
	}
}
