// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"compress/flate"
	"io"

	kpflate "github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/dsnet/grayscale"
)

// The "gray" variants are this repository's codec; the rest are stock
// general-purpose compressors used as reference points. The general codecs
// see the raster as a flat byte stream and ignore the width.
func init() {
	for _, v := range []struct {
		name string
		cfg  grayscale.CompressConfig
	}{
		{"gray", grayscale.CompressConfig{}},
		{"gray-m", grayscale.CompressConfig{Delta: true}},
		{"gray-a", grayscale.CompressConfig{AdaptiveScan: true}},
		{"gray-ma", grayscale.CompressConfig{Delta: true, AdaptiveScan: true}},
	} {
		cfg := v.cfg
		Register(Codec{
			Name: v.name,
			Encode: func(pix []byte, width int) ([]byte, error) {
				return grayscale.Compress(pix, width, &cfg)
			},
			Decode: func(data []byte) ([]byte, error) {
				pix, _, err := grayscale.Decompress(data)
				return pix, err
			},
		})
	}

	Register(Codec{
		Name: "std-flate",
		Encode: func(pix []byte, _ int) ([]byte, error) {
			return encodeStream(pix, func(w io.Writer) (io.WriteCloser, error) {
				return flate.NewWriter(w, flate.DefaultCompression)
			})
		},
		Decode: func(data []byte) ([]byte, error) {
			return io.ReadAll(flate.NewReader(bytes.NewReader(data)))
		},
	})

	Register(Codec{
		Name: "kp-flate",
		Encode: func(pix []byte, _ int) ([]byte, error) {
			return encodeStream(pix, func(w io.Writer) (io.WriteCloser, error) {
				return kpflate.NewWriter(w, kpflate.DefaultCompression)
			})
		},
		Decode: func(data []byte) ([]byte, error) {
			return io.ReadAll(kpflate.NewReader(bytes.NewReader(data)))
		},
	})

	Register(Codec{
		Name: "zstd",
		Encode: func(pix []byte, _ int) ([]byte, error) {
			return encodeStream(pix, func(w io.Writer) (io.WriteCloser, error) {
				return zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
			})
		},
		Decode: func(data []byte) ([]byte, error) {
			zr, err := zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderConcurrency(1))
			if err != nil {
				return nil, err
			}
			defer zr.Close()
			return io.ReadAll(zr.IOReadCloser())
		},
	})

	Register(Codec{
		Name: "xz",
		Encode: func(pix []byte, _ int) ([]byte, error) {
			return encodeStream(pix, func(w io.Writer) (io.WriteCloser, error) {
				return xz.NewWriter(w)
			})
		},
		Decode: func(data []byte) ([]byte, error) {
			xr, err := xz.NewReader(bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
			return io.ReadAll(xr)
		},
	})
}

func encodeStream(pix []byte, mk func(io.Writer) (io.WriteCloser, error)) ([]byte, error) {
	var buf bytes.Buffer
	w, err := mk(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(pix); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
