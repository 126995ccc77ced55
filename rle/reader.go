// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package rle

import "math"

// reader walks the framed run stream. The group byte and the bit cursor
// into it persist across runs since a single group classifies data bytes
// belonging to several runs.
type reader struct {
	buf    []byte
	idx    int
	bitIdx uint
	group  byte
}

func (r *reader) mustByte() byte {
	if r.idx >= len(r.buf) {
		panic(ErrCorrupt)
	}
	b := r.buf[r.idx]
	r.idx++
	return b
}

// nextRun parses the next (count, value) run. It reports ok=false when the
// stream is exhausted at a group boundary, which is the only clean way for
// the run stream to end; running out of bytes mid-group panics with
// ErrCorrupt.
func (r *reader) nextRun() (count uint64, val byte, ok bool) {
	sawCounter := false
	for r.idx < len(r.buf) {
		if r.bitIdx == 0 {
			r.group = r.buf[r.idx]
			r.idx++
		}
		for r.bitIdx < groupSize {
			if r.group>>r.bitIdx&1 != 0 {
				r.bitIdx++
				sawCounter = true
				count |= uint64(r.mustByte())
				count <<= 8
				continue
			}
			r.bitIdx++
			if sawCounter {
				count >>= 8
				count += 2
			} else {
				count = 1
			}
			val = r.mustByte()
			return count, val, true
		}
		r.bitIdx = 0
	}
	return 0, 0, false
}

// header is the decoded settings prefix of an RLE stream.
type header struct {
	horizontal bool
	delta      bool
	width      uint64
	height     uint64
}

func parseHeader(buf []byte) (hdr header, rest []byte) {
	if len(buf) == 0 {
		panic(ErrCorrupt)
	}
	settings := buf[0]
	hdr.horizontal = settings&scanHorizontal != 0
	hdr.delta = settings&deltaFiltered != 0
	wb := int(settings&widthSizeMask>>3) + 1
	hb := int(settings&heightSizeMask) + 1
	if len(buf) < 1+wb+hb {
		panic(ErrCorrupt)
	}
	for _, b := range buf[1 : 1+wb] {
		hdr.width = hdr.width<<8 | uint64(b)
	}
	for _, b := range buf[1+wb : 1+wb+hb] {
		hdr.height = hdr.height<<8 | uint64(b)
	}
	return hdr, buf[1+wb+hb:]
}

// Decode parses an RLE stream and materializes the pixel buffer in the scan
// order the settings byte declares. The delta flag is reported back so the
// caller can undo the delta filter; the decoder itself does not touch pixel
// values.
func Decode(buf []byte) (pix []byte, width, height int, delta bool, err error) {
	defer errRecover(&err)

	hdr, rest := parseHeader(buf)
	if hdr.width > math.MaxInt32 || hdr.height > math.MaxInt32 ||
		hdr.width*hdr.height > math.MaxInt32 {
		return nil, 0, 0, false, ErrCorrupt
	}
	width = int(hdr.width)
	height = int(hdr.height)
	size := width * height

	r := reader{buf: rest}
	pix = make([]byte, size)
	if hdr.horizontal {
		err = decodeHorizontal(&r, pix)
	} else {
		err = decodeVertical(&r, pix, width, height)
	}
	if err != nil {
		return nil, 0, 0, false, err
	}
	return pix, width, height, hdr.delta, nil
}

// decodeHorizontal fills pix front to back. A run that would overflow the
// raster, or a stream that ends before the raster is full, is corrupt.
func decodeHorizontal(r *reader, pix []byte) error {
	filled := 0
	for {
		count, val, ok := r.nextRun()
		if !ok {
			break
		}
		if count > uint64(len(pix)-filled) {
			return ErrCorrupt
		}
		for i := uint64(0); i < count; i++ {
			pix[filled] = val
			filled++
		}
	}
	if filled != len(pix) {
		return ErrCorrupt
	}
	return nil
}

// decodeVertical fills pix column by column and must land exactly on the
// bottom-right cell when the run stream ends.
func decodeVertical(r *reader, pix []byte, width, height int) error {
	x, y := 0, 0
	last := -1
	for {
		count, val, ok := r.nextRun()
		if !ok {
			break
		}
		for i := uint64(0); i < count; i++ {
			idx := y*width + x
			if idx >= len(pix) {
				return ErrCorrupt
			}
			pix[idx] = val
			last = idx
			y++
			if y == height {
				y = 0
				x++
			}
		}
	}
	if last != len(pix)-1 {
		return ErrCorrupt
	}
	return nil
}
