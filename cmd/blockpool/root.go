package main

import (
	"io"
	"log/slog"
	"math"

	"github.com/QuangTung97/blockpool"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var defaultSizes = []uint{24, 12, 8, 16, 20}

type options struct {
	sizes      []uint
	jsonOut    bool
	mmap       bool
	permissive bool
	verbose    bool
	full       bool

	out    io.Writer
	errOut io.Writer
}

func newRootCmd(out io.Writer, errOut io.Writer) *cobra.Command {
	o := &options{
		out:    out,
		errOut: errOut,
	}

	cmd := &cobra.Command{
		Use:   "blockpool",
		Short: "Plan and exercise a fixed 64 KiB block pool",
		Long: `blockpool splits a fixed 64 KiB arena into one slot pool per block size
and serves allocations from those pools. The commands print the planned
layout and the occupancy of every size class.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.UintSliceVar(&o.sizes, "sizes", defaultSizes, "Block sizes of the pool")
	flags.BoolVar(&o.jsonOut, "json", false, "Output in JSON format")
	flags.BoolVar(&o.mmap, "mmap", false, "Back the arena with an anonymous memory mapping")
	flags.BoolVar(&o.permissive, "permissive", false, "Log faults instead of panicking")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&o.full, "full", false, "Print complete occupancy maps")

	cmd.AddCommand(newDemoCmd(o), newPlanCmd(o), newAllocCmd(o))
	return cmd
}

func (o *options) logger() *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(o.errOut, &slog.HandlerOptions{Level: level}))
}

func (o *options) blockSizes() ([]uint32, error) {
	sizes := make([]uint32, 0, len(o.sizes))
	for _, size := range o.sizes {
		if size > math.MaxUint32 {
			return nil, errors.Newf("block size %d is out of range", size)
		}
		sizes = append(sizes, uint32(size))
	}
	return sizes, nil
}

func (o *options) newPool() (*blockpool.Pool, error) {
	sizes, err := o.blockSizes()
	if err != nil {
		return nil, err
	}

	opts := []blockpool.Option{blockpool.WithLogger(o.logger())}
	if o.mmap {
		opts = append(opts, blockpool.WithMappedArena())
	}
	if o.permissive {
		opts = append(opts, blockpool.WithMode(blockpool.ModePermissive))
	}

	p := blockpool.New(opts...)
	if !p.Init(sizes) {
		return nil, errors.Newf("cannot initialize pool with block sizes %v", o.sizes)
	}
	return p, nil
}

func (o *options) newRenderer() *renderer {
	return newRenderer(o.out, o.full)
}
