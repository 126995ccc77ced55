// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package grayscale implements a lossless codec for raw 8-bit grayscale
// rasters.
//
// Compression is a pipeline of up to three stages: an optional delta filter
// that replaces each pixel with its difference from the previous one, a
// bit-packed run-length encoding with a row-major or adaptively chosen
// column-major scan, and an adaptive Huffman pass that is kept only when it
// actually shrinks the run-length stream. A one-byte container header in
// front of the payload records whether the Huffman pass is in effect and
// how many padding bits its final byte carries; everything else the decoder
// needs is self-described inside the run-length stream.
//
// The codec is whole-buffer and synchronous: the raster, the compressed
// payload, and a bounded code tree are the only state, and nothing is
// shared across calls.
package grayscale

import (
	"github.com/dsnet/grayscale/huffman"
	"github.com/dsnet/grayscale/rle"
)

// Container header layout: the low three bits store the padding-bit count
// of the Huffman stream, bit 3 tells whether the payload is Huffman-encoded
// at all, and the remaining bits are reserved as zero.
const (
	hdrPadsMask   = 0x07
	hdrHuffmanBit = 0x08
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "grayscale: " + string(e) }

var (
	ErrCorrupt      error = Error("stream is corrupted")
	ErrInvalidWidth error = Error("width must be at least 1 and divide the pixel count")
)

// CompressConfig controls the optional compression stages.
// The zero value selects a plain row-major scan with no filtering.
type CompressConfig struct {
	// Delta applies the delta filter before run-length encoding.
	// Rasters with smooth gradients compress much better filtered.
	Delta bool

	// AdaptiveScan tries both the row-major and the column-major scan and
	// keeps whichever run-length stream came out smaller.
	AdaptiveScan bool
}

// Compress encodes the raster pix of the given width. The height is implied
// by len(pix)/width; a width that does not evenly divide the pixel count is
// rejected rather than silently truncated.
func Compress(pix []byte, width int, cfg *CompressConfig) ([]byte, error) {
	if cfg == nil {
		cfg = new(CompressConfig)
	}
	if width < 1 || len(pix) == 0 || len(pix)%width != 0 {
		return nil, ErrInvalidWidth
	}
	height := len(pix) / width

	src := pix
	if cfg.Delta {
		src = append([]byte(nil), pix...)
		DeltaFilter(src)
	}

	var rbuf []byte
	if cfg.AdaptiveScan {
		rbuf = rle.EncodeAdaptive(src, width, height, cfg.Delta)
	} else {
		rbuf = rle.EncodeHorizontal(src, width, height, cfg.Delta)
	}

	payload, pads, used := huffman.Encode(rbuf)
	hdr := pads & hdrPadsMask
	if used {
		hdr |= hdrHuffmanBit
	}

	out := make([]byte, 0, 1+len(payload))
	out = append(out, hdr)
	return append(out, payload...), nil
}

// Decompress reverses Compress, returning the raster and its width.
func Decompress(data []byte) (pix []byte, width int, err error) {
	if len(data) == 0 {
		return nil, 0, ErrCorrupt
	}
	hdr, payload := data[0], data[1:]

	rbuf := payload
	if hdr&hdrHuffmanBit != 0 {
		rbuf, err = huffman.Decode(payload, hdr&hdrPadsMask)
		if err != nil {
			return nil, 0, err
		}
	}

	pix, width, _, delta, err := rle.Decode(rbuf)
	if err != nil {
		return nil, 0, err
	}
	if delta {
		DeltaUnfilter(pix)
	}
	return pix, width, nil
}
