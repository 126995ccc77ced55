// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package rle

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dsnet/grayscale/internal/testutil"
)

func TestEncodeVectors(t *testing.T) {
	var vectors = []struct {
		desc     string
		pix      []byte
		width    int
		height   int
		delta    bool
		adaptive bool
		output   []byte
	}{{
		desc:   "constant 4x4 raster, one long run",
		pix:    bytes.Repeat([]byte{0x7f}, 16),
		width:  4,
		height: 4,
		// Run (16, 0x7f) stores count-2 = 14 as a single counter byte.
		output: testutil.MustDecodeHex("800404" + "010e7f"),
	}, {
		desc:   "delta-filtered 2x2 gradient",
		pix:    []byte{0x00, 0x01, 0x01, 0x01},
		width:  2,
		height: 2,
		delta:  true,
		// Runs (1,0x00) and (3,0x01): bare value, then counter 1, value.
		output: testutil.MustDecodeHex("c00202" + "02000101"),
	}, {
		desc:   "run of exactly two uses the reserved zero counter",
		pix:    []byte{0x09, 0x09},
		width:  2,
		height: 1,
		output: testutil.MustDecodeHex("800201" + "010009"),
	}, {
		desc:   "count 258 needs two counter bytes",
		pix:    bytes.Repeat([]byte{0x11}, 258),
		width:  258,
		height: 1,
		// 258-2 = 256 = 0x01 0x00 big-endian; width 258 itself
		// needs two size bytes, recorded in settings bits 3..5.
		output: testutil.MustDecodeHex("88010201" + "03010011"),
	}, {
		desc:   "width 256 takes two settings-prefixed size bytes",
		pix:    bytes.Repeat([]byte{0x22}, 256),
		width:  256,
		height: 1,
		output: testutil.MustDecodeHex("88010001" + "01fe22"),
	}, {
		desc:     "column stripes favor the vertical scan",
		pix:      bytes.Repeat([]byte{0, 1, 2, 3}, 4),
		width:    4,
		height:   4,
		adaptive: true,
		output:   testutil.MustDecodeHex("000404" + "55" + "0200020102020203"),
	}}

	for i, v := range vectors {
		var output []byte
		if v.adaptive {
			output = EncodeAdaptive(v.pix, v.width, v.height, v.delta)
		} else {
			output = EncodeHorizontal(v.pix, v.width, v.height, v.delta)
		}
		if !bytes.Equal(output, v.output) {
			t.Errorf("test %d (%s), output mismatch:\ngot  %x\nwant %x", i, v.desc, output, v.output)
		}

		pix, width, height, delta, err := Decode(output)
		if err != nil {
			t.Errorf("test %d (%s), unexpected Decode error: %v", i, v.desc, err)
			continue
		}
		if !bytes.Equal(pix, v.pix) {
			t.Errorf("test %d (%s), pixel mismatch:\ngot  %x\nwant %x", i, v.desc, pix, v.pix)
		}
		if width != v.width || height != v.height {
			t.Errorf("test %d (%s), size mismatch: got %dx%d, want %dx%d",
				i, v.desc, width, height, v.width, v.height)
		}
		if delta != v.delta {
			t.Errorf("test %d (%s), delta flag mismatch: got %v, want %v", i, v.desc, delta, v.delta)
		}
	}
}

type run struct {
	Count uint64
	Value byte
}

// TestRunFraming round-trips raw run lists through the group-byte framing,
// independently of any raster geometry.
func TestRunFraming(t *testing.T) {
	rand := testutil.NewRand(3)
	var vectors = [][]run{
		{{1, 0xab}},
		{{2, 0xab}},
		{{3, 0xab}},
		{{257, 0x01}, {258, 0x02}, {65537, 0x03}, {65538, 0x04}},
		{{1, 0x00}, {1, 0x01}, {1, 0x02}, {1, 0x03}, {1, 0x04}}, // All bare values
		{{9, 0x00}, {9, 0x01}, {9, 0x02}, {9, 0x03}, {9, 0x04}}, // Counters straddle groups
	}
	randRuns := make([]run, 100)
	for i := range randRuns {
		randRuns[i] = run{uint64(1 + rand.Intn(1<<20)), rand.Byte()}
	}
	vectors = append(vectors, randRuns)

	for i, runs := range vectors {
		var w writer
		for _, rn := range runs {
			w.putRun(rn.Count, rn.Value)
		}
		buf := w.finish()

		var got []run
		r := reader{buf: buf}
		for {
			count, val, ok := r.nextRun()
			if !ok {
				break
			}
			got = append(got, run{count, val})
		}
		if diff := cmp.Diff(runs, got); diff != "" {
			t.Errorf("test %d, run list mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rand := testutil.NewRand(4)
	rasters := [][]byte{
		rand.Bytes(999),
		bytes.Repeat([]byte{0xee}, 999),
		testutil.ResizeData([]byte{5, 5, 5, 9}, 999),
	}
	ramp := make([]byte, 999)
	for i := range ramp {
		ramp[i] = byte(i / 37)
	}
	rasters = append(rasters, ramp)

	for i, pix := range rasters {
		for _, width := range []int{1, 3, 9, 111, 333, 999} {
			height := len(pix) / width
			for _, adaptive := range []bool{false, true} {
				var buf []byte
				if adaptive {
					buf = EncodeAdaptive(pix, width, height, false)
				} else {
					buf = EncodeHorizontal(pix, width, height, false)
				}
				got, w, h, _, err := Decode(buf)
				if err != nil {
					t.Errorf("test %d, width %d, adaptive %v, unexpected Decode error: %v",
						i, width, adaptive, err)
					continue
				}
				if w != width || h != height {
					t.Errorf("test %d, width %d, adaptive %v, size mismatch: got %dx%d",
						i, width, adaptive, w, h)
				}
				if !bytes.Equal(got, pix) {
					t.Errorf("test %d, width %d, adaptive %v, pixel mismatch", i, width, adaptive)
				}
			}
		}
	}
}

// TestAdaptiveTie checks that a tie between the two scans keeps the
// vertical stream.
func TestAdaptiveTie(t *testing.T) {
	// A constant raster produces identical-length streams either way.
	pix := bytes.Repeat([]byte{0x33}, 64)
	buf := EncodeAdaptive(pix, 8, 8, false)
	if buf[0]&scanHorizontal != 0 {
		t.Errorf("tie did not go to the vertical scan, settings %#02x", buf[0])
	}
}

func TestDecodeCorrupt(t *testing.T) {
	var vectors = []struct {
		desc string
		buf  []byte
	}{{
		desc: "empty stream",
		buf:  []byte{},
	}, {
		desc: "settings byte without size bytes",
		buf:  testutil.MustDecodeHex("80"),
	}, {
		desc: "size bytes cut short",
		buf:  testutil.MustDecodeHex("8004"),
	}, {
		desc: "stream ends mid-group, counter without value",
		buf:  testutil.MustDecodeHex("800404" + "010e"),
	}, {
		desc: "run overflows the raster",
		buf:  testutil.MustDecodeHex("800101" + "010009"), // Count 2 into a 1x1 raster
	}, {
		desc: "stream underfills the raster",
		buf:  testutil.MustDecodeHex("800202" + "000102"), // Two pixels into a 2x2 raster
	}, {
		desc: "vertical scan ends off the final cell",
		buf:  testutil.MustDecodeHex("000202" + "010105"), // Run of 3 in a 2x2 raster
	}, {
		desc: "vertical run overflows the raster",
		buf:  testutil.MustDecodeHex("000101" + "010005"), // Run of 2 in a 1x1 raster
	}}

	for i, v := range vectors {
		if _, _, _, _, err := Decode(v.buf); err != ErrCorrupt {
			t.Errorf("test %d (%s), error mismatch: got %v, want %v", i, v.desc, err, ErrCorrupt)
		}
	}
}
