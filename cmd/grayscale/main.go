// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command grayscale losslessly compresses and decompresses raw 8-bit
// grayscale raster files.
//
// Example usage:
//
//	$ grayscale -c -w 640 -i image.raw -o image.gz8
//	$ grayscale -d -i image.gz8 -o image.raw
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"

	"github.com/dsnet/grayscale"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "grayscale",
		Usage:           "lossless codec for raw 8-bit grayscale rasters",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "c", Usage: "compress the input raster"},
			&cli.BoolFlag{Name: "d", Usage: "decompress the input stream"},
			&cli.StringFlag{Name: "i", Usage: "input `PATH`"},
			&cli.StringFlag{Name: "o", Usage: "output `PATH`"},
			&cli.IntFlag{Name: "w", Usage: "raster width in pixels (compression only)"},
			&cli.BoolFlag{Name: "m", Usage: "delta-filter pixels before encoding"},
			&cli.BoolFlag{Name: "a", Usage: "adaptively pick the cheaper scan order"},
		},
		Action: run,
	}
}

func run(ctx *cli.Context) error {
	compress := ctx.Bool("c")
	decompress := ctx.Bool("d")
	switch {
	case compress == decompress:
		return fmt.Errorf("exactly one of -c or -d must be given")
	case ctx.String("i") == "":
		return fmt.Errorf("input file -i is required")
	case ctx.String("o") == "":
		return fmt.Errorf("output file -o is required")
	case compress && ctx.Int("w") < 1:
		return fmt.Errorf("compression requires a width -w of at least 1")
	case decompress && (ctx.Bool("m") || ctx.Bool("a") || ctx.IsSet("w")):
		return fmt.Errorf("-w, -m, and -a only apply to compression")
	}

	input, err := readFile(ctx.String("i"))
	if err != nil {
		return err
	}

	var output []byte
	if compress {
		width := ctx.Int("w")
		if len(input) == 0 || len(input)%width != 0 {
			return fmt.Errorf("input size %d is not a multiple of width %d", len(input), width)
		}
		cfg := &grayscale.CompressConfig{Delta: ctx.Bool("m"), AdaptiveScan: ctx.Bool("a")}
		output, err = grayscale.Compress(input, width, cfg)
	} else {
		output, _, err = grayscale.Decompress(input)
	}
	if err != nil {
		return err
	}
	return writeFile(ctx.String("o"), output)
}

func readFile(path string) (buf []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierror.Append(err, f.Close()).ErrorOrNil()
	}()
	return io.ReadAll(f)
}

func writeFile(path string, buf []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierror.Append(err, f.Close()).ErrorOrNil()
	}()
	_, err = f.Write(buf)
	return err
}
