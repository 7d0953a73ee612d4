package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/willbeason/fractal-render/pkg/colors"
	"github.com/willbeason/fractal-render/pkg/fractal"
	"github.com/willbeason/fractal-render/pkg/output"
	"github.com/willbeason/fractal-render/pkg/raster"
)

const (
	Width  = 2560
	Height = 1440

	SubPixels     = 9
	MaxIterations = 1000

	// BandSize is the number of iterations one gradient band spans.
	BandSize = 48
)

var lightBlue = raster.RGB{0x7f, 0xaf, 0xff}

type options struct {
	output output.Options

	c, n       complex128
	viewWidth  float64
	burning    bool
	iterations int
	subPixels  int
}

func mainCmd() *cobra.Command {
	opts := &options{output: output.DefaultOptions()}

	var cr, ci, n float64

	cmd := &cobra.Command{
		Short: "Render the Julia set of z^n + c",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.c = complex(cr, ci)
			opts.n = complex(n, 0)
			return runCmd(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&cr, "cr", 0.7, "real part of c")
	flags.Float64Var(&ci, "ci", 0.42, "imaginary part of c")
	flags.Float64Var(&n, "n", 6.0, "exponent")
	flags.Float64Var(&opts.viewWidth, "view-width", 4.0, "extent of the real axis")
	flags.BoolVar(&opts.burning, "burning", false, "fold z into the first quadrant before each step")
	flags.IntVar(&opts.iterations, "iterations", MaxIterations, "iteration cap")
	flags.IntVar(&opts.subPixels, "subpixels", SubPixels, "supersampling level")
	opts.output.AddFlags(flags)

	return cmd
}

func runCmd(cmd *cobra.Command, _ []string, opts *options) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	kind := fractal.MandelZSpace
	if opts.burning {
		kind = fractal.BurningZSpace
	}

	table := colors.Table([]colors.Stop{
		{Color: lightBlue, Length: BandSize},
		{Color: raster.Black, Length: BandSize},
	})

	params := &fractal.Params{
		Kind: kind,
		Name: fmt.Sprintf("julia-%s", time.Now().Format("20060102150405")),
		Geometry: fractal.Geometry{
			Width:         opts.viewWidth,
			Columns:       Width,
			Rows:          Height,
			Supersample:   opts.subPixels,
			MaxIterations: opts.iterations,
		},
		Exponent:   opts.n,
		Seed:       opts.c,
		Background: raster.Black,
		Color:      colors.Smooth(table, real(opts.n)),
	}

	f, err := fractal.New(params)
	if err != nil {
		return err
	}
	f.Run()

	img, err := f.Image()
	if err != nil {
		return err
	}

	path, err := opts.output.Save(img, params.Name)
	if err != nil {
		return err
	}
	log.Printf("saved %s", path)

	return nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
