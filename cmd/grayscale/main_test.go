// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsnet/grayscale/internal/testutil"
)

func TestRunRoundTrip(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "image.raw")
	enc := filepath.Join(dir, "image.gz8")
	out := filepath.Join(dir, "image.out")

	rand := testutil.NewRand(8)
	pix := make([]byte, 64*32)
	for i := range pix {
		pix[i] = byte(rand.Intn(4) * 60)
	}
	require.NoError(t, os.WriteFile(raw, pix, 0664))

	for _, extra := range [][]string{
		{},
		{"-m"},
		{"-a"},
		{"-m", "-a"},
	} {
		args := append([]string{"grayscale", "-c", "-w", "64", "-i", raw, "-o", enc}, extra...)
		require.NoError(t, newApp().Run(args), "compress %v", extra)

		require.NoError(t, newApp().Run([]string{"grayscale", "-d", "-i", enc, "-o", out}),
			"decompress %v", extra)

		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, pix, got, "round-trip %v", extra)
	}
}

func TestRunValidation(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "in.raw")
	out := filepath.Join(dir, "out.bin")
	require.NoError(t, os.WriteFile(raw, make([]byte, 100), 0664))

	var vectors = []struct {
		desc string
		args []string
	}{
		{"neither -c nor -d", []string{"-i", raw, "-o", out}},
		{"both -c and -d", []string{"-c", "-d", "-w", "10", "-i", raw, "-o", out}},
		{"missing input", []string{"-c", "-w", "10", "-o", out}},
		{"missing output", []string{"-c", "-w", "10", "-i", raw}},
		{"missing width", []string{"-c", "-i", raw, "-o", out}},
		{"width zero", []string{"-c", "-w", "0", "-i", raw, "-o", out}},
		{"width does not divide size", []string{"-c", "-w", "7", "-i", raw, "-o", out}},
		{"compress options on decompress", []string{"-d", "-m", "-i", raw, "-o", out}},
		{"missing input file", []string{"-c", "-w", "10", "-i", filepath.Join(dir, "nope"), "-o", out}},
	}
	for _, v := range vectors {
		args := append([]string{"grayscale"}, v.args...)
		assert.Error(t, newApp().Run(args), v.desc)
	}
}
