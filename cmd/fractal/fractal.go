package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/willbeason/fractal-render/pkg/config"
	"github.com/willbeason/fractal-render/pkg/fractal"
	"github.com/willbeason/fractal-render/pkg/output"
)

type options struct {
	output  output.Options
	workers int
	dump    bool
}

func mainCmd() *cobra.Command {
	opts := &options{output: output.DefaultOptions()}

	cmd := &cobra.Command{
		Use:   "fractal <op-file>",
		Short: "Render the fractal described by an op-file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCmd(cmd, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.workers, "workers", 0, "worker goroutines; 0 uses every CPU")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "also print the render as ASCII art")
	opts.output.AddFlags(cmd.Flags())

	return cmd
}

func runCmd(cmd *cobra.Command, args []string, opts *options) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	opFile := args[0]
	params, err := config.Load(opFile)
	if err != nil {
		return err
	}
	params.Workers = opts.workers

	f, err := fractal.New(params)
	if err != nil {
		return fmt.Errorf("%s: %w", opFile, err)
	}
	f.Run()

	if opts.dump {
		if err := f.Dump(cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	img, err := f.Image()
	if err != nil {
		return err
	}

	path, err := opts.output.Save(img, params.Name)
	if err != nil {
		return err
	}
	log.Printf("saved %s", path)

	if _, err := output.CopyOpFile(opFile, path); err != nil {
		return fmt.Errorf("copying op-file: %w", err)
	}

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
