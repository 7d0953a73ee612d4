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
)

const (
	Width  = 2560
	Height = 1440

	MaxIterations = 1000

	viewWidth = 4.8

	horizontalCenter = -0.5
	verticalCenter   = 0.0
)

type options struct {
	output output.Options

	zSpace     bool
	n          float64
	iterations int
	channels   [3]int
	hits       int
	threshold  float64
	perChannel bool
	seed       int64
}

func mainCmd() *cobra.Command {
	opts := &options{output: output.DefaultOptions()}

	cmd := &cobra.Command{
		Short: "Render the escaping orbit density of z^n + c in three color channels",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCmd(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.zSpace, "zspace", false, "sample the initial z instead of c")
	flags.Float64Var(&opts.n, "n", 2.0, "exponent")
	flags.IntVar(&opts.iterations, "iterations", MaxIterations, "iteration cap")
	flags.IntVar(&opts.channels[0], "red", MaxIterations, "orbits escaping after this many steps or more are red")
	flags.IntVar(&opts.channels[1], "green", 200, "escape step limit of the green channel")
	flags.IntVar(&opts.channels[2], "blue", 50, "escape step limit of the blue channel")
	flags.IntVar(&opts.hits, "hits", 50, "canvas hits to collect per pixel")
	flags.Float64Var(&opts.threshold, "threshold", 0.1, "fraction of the brightest count that saturates")
	flags.BoolVar(&opts.perChannel, "per-channel", false, "scale each channel by its own maximum instead")
	flags.Int64Var(&opts.seed, "seed", 0, "random seed; 0 seeds from the clock")
	opts.output.AddFlags(flags)

	return cmd
}

func runCmd(cmd *cobra.Command, _ []string, opts *options) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	if opts.threshold < 0 || opts.threshold >= 1 {
		return fmt.Errorf("threshold must be in [0, 1), got %g", opts.threshold)
	}

	kind := fractal.BuddhaCSpace
	if opts.zSpace {
		kind = fractal.BuddhaZSpace
	}

	normalize := colors.ThresholdMax(opts.threshold)
	if opts.perChannel {
		normalize = colors.PerChannelMax
	}

	params := &fractal.Params{
		Kind: kind,
		Name: fmt.Sprintf("escape-%s", time.Now().Format("20060102150405")),
		Geometry: fractal.Geometry{
			Center:        complex(horizontalCenter, verticalCenter),
			Width:         viewWidth,
			Columns:       Width,
			Rows:          Height,
			MaxIterations: opts.iterations,
		},
		Exponent:     complex(opts.n, 0),
		Thresholds:   opts.channels,
		HitsPerPixel: opts.hits,
		Normalize:    normalize,
		RandSeed:     opts.seed,
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
