// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package rle

// writer accumulates framed runs. Data bytes gather in pend until a full
// group of eight is ready, at which point the group byte is emitted
// followed by the data bytes. A counter and its value byte may therefore
// straddle a group boundary.
type writer struct {
	buf   []byte
	group byte
	pend  [groupSize]byte
	npend int
}

// putSettings appends the settings byte and the raster dimensions.
// Width and height are stored as minimal-length big-endian integers; their
// byte counts (minus one) are folded into the settings byte.
func (w *writer) putSettings(settings byte, width, height uint64) {
	wb := beLen(width)
	hb := beLen(height)
	settings |= byte(wb-1) << 3
	settings |= byte(hb - 1)

	w.buf = append(w.buf, settings)
	w.buf = appendUintBE(w.buf, width, wb)
	w.buf = appendUintBE(w.buf, height, hb)
}

// beLen reports the minimal number of big-endian bytes for v, at least 1.
func beLen(v uint64) int {
	n := 1
	for v > 0xff {
		v >>= 8
		n++
	}
	return n
}

func appendUintBE(buf []byte, v uint64, n int) []byte {
	for i := n - 1; i >= 0; i-- {
		buf = append(buf, byte(v>>(8*uint(i))))
	}
	return buf
}

// putData schedules one data byte, classified as counter or value.
func (w *writer) putData(b byte, counter bool) {
	if counter {
		w.group |= 1 << w.npend
	}
	w.pend[w.npend] = b
	w.npend++
	if w.npend == groupSize {
		w.flushGroup()
	}
}

func (w *writer) flushGroup() {
	w.buf = append(w.buf, w.group)
	w.buf = append(w.buf, w.pend[:w.npend]...)
	w.group = 0
	w.npend = 0
}

// putRun emits one (count, value) run. A count of 1 is a bare value byte.
// A count of 2 is the reserved single zero counter byte. Larger counts
// store count-2 as minimal big-endian counter bytes. The value byte always
// follows last.
func (w *writer) putRun(count uint64, val byte) {
	if count > 1 {
		if count == 2 {
			w.putData(0, true)
		}
		c := count - 2
		var tmp [8]byte
		n := 0
		for c > 0 {
			tmp[n] = byte(c)
			c >>= 8
			n++
		}
		for i := n - 1; i >= 0; i-- {
			w.putData(tmp[i], true)
		}
	}
	w.putData(val, false)
}

// finish flushes a partial trailing group, if any, and returns the stream.
func (w *writer) finish() []byte {
	if w.npend > 0 {
		w.flushGroup()
	}
	return w.buf
}

// scanHorizontally emits runs over pix in row-major order.
func (w *writer) scanHorizontally(pix []byte) {
	count := uint64(1)
	cur := pix[0]
	for _, p := range pix[1:] {
		if p == cur {
			count++
			continue
		}
		w.putRun(count, cur)
		count = 1
		cur = p
	}
	w.putRun(count, cur)
}

// scanVertically emits runs over pix in column-major order.
func (w *writer) scanVertically(pix []byte, width, height int) {
	count := uint64(1)
	cur := pix[0]
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if x == 0 && y == 0 {
				continue
			}
			if p := pix[y*width+x]; p != cur {
				w.putRun(count, cur)
				count = 1
				cur = p
			} else {
				count++
			}
		}
	}
	w.putRun(count, cur)
}

// EncodeHorizontal encodes pix with a plain row-major scan. The delta flag
// only records in the settings byte whether the pixels were delta-filtered
// beforehand; the encoder itself treats pix as opaque bytes.
//
// The raster must be non-empty and satisfy len(pix) == width*height.
func EncodeHorizontal(pix []byte, width, height int, delta bool) []byte {
	var settings byte = scanHorizontal
	if delta {
		settings |= deltaFiltered
	}
	var w writer
	w.putSettings(settings, uint64(width), uint64(height))
	w.scanHorizontally(pix)
	return w.finish()
}

func encodeVertical(pix []byte, width, height int, delta bool) []byte {
	var settings byte
	if delta {
		settings |= deltaFiltered
	}
	var w writer
	w.putSettings(settings, uint64(width), uint64(height))
	w.scanVertically(pix, width, height)
	return w.finish()
}

// EncodeAdaptive encodes pix with both scan orders and keeps whichever
// produced the smaller stream; ties go to the vertical scan. The winner is
// self-describing through the scan bit of its settings byte.
func EncodeAdaptive(pix []byte, width, height int, delta bool) []byte {
	h := EncodeHorizontal(pix, width, height, delta)
	v := encodeVertical(pix, width, height, delta)
	if len(v) <= len(h) {
		return v
	}
	return h
}
