// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsnet/grayscale/internal/testutil"
)

// TestCodecs checks that every registered codec round-trips a spread of
// synthetic rasters. This is what makes the rate and ratio numbers of the
// benchmark tool trustworthy.
func TestCodecs(t *testing.T) {
	const width = 64
	rand := testutil.NewRand(9)

	gradient := make([]byte, width*width)
	for i := range gradient {
		gradient[i] = byte(i%width + i/width)
	}
	rasters := map[string][]byte{
		"flat":     bytes.Repeat([]byte{0x40}, width*width),
		"gradient": gradient,
		"noise":    rand.Bytes(width * width),
	}

	for name, pix := range rasters {
		for _, codec := range CodecNames() {
			c, ok := Lookup(codec)
			require.True(t, ok, codec)
			t.Run(fmt.Sprintf("File:%v/Codec:%v", name, codec), func(t *testing.T) {
				data, err := c.Encode(pix, width)
				require.NoError(t, err)
				got, err := c.Decode(data)
				require.NoError(t, err)
				assert.Equal(t, pix, got)
			})
		}
	}
}

func TestRecords(t *testing.T) {
	results := [][]Result{{{R: 1, D: 1}, {R: 2, D: 2}}}
	recs := Records("ratio", results, []string{"x.gray:8:1K"}, []string{"gray", "zstd"})
	require.Len(t, recs, 2)
	assert.Equal(t, "gray", recs[0].Codec)
	assert.Equal(t, "x.gray:8:1K", recs[1].Benchmark)
	assert.Equal(t, 2.0, recs[1].Value)
}
