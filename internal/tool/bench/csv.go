// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"os"

	"github.com/gocarina/gocsv"
)

// A Record is one benchmark cell in exportable form.
type Record struct {
	Benchmark string  `csv:"benchmark"`
	Codec     string  `csv:"codec"`
	Test      string  `csv:"test"`
	Value     float64 `csv:"value"`
	Delta     float64 `csv:"delta"`
}

// Records flattens a suite result into CSV records.
func Records(test string, results [][]Result, rows, names []string) []Record {
	var recs []Record
	for i, row := range results {
		for j, r := range row {
			recs = append(recs, Record{
				Benchmark: rows[i],
				Codec:     names[j],
				Test:      test,
				Value:     r.R,
				Delta:     r.D,
			})
		}
	}
	return recs
}

// WriteCSV writes the records to the named file, creating it if needed and
// replacing any previous contents.
func WriteCSV(file string, recs []Record) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := gocsv.MarshalFile(&recs, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
