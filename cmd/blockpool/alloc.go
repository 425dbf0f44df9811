package main

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func parseRequestSizes(args []string) ([]uint32, error) {
	sizes := make([]uint32, 0, len(args))
	for _, arg := range args {
		n, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid request size %q", arg)
		}
		sizes = append(sizes, uint32(n))
	}
	return sizes, nil
}

func newAllocCmd(o *options) *cobra.Command {
	var freeAll bool

	cmd := &cobra.Command{
		Use:   "alloc SIZE [SIZE...]",
		Short: "Allocate blocks of the given sizes and print the pool",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes, err := parseRequestSizes(args)
			if err != nil {
				return err
			}
			p, err := o.newPool()
			if err != nil {
				return err
			}

			allocs := allocateAll(p, sizes)
			steps := []step{newStep("alloc", p, allocs...)}

			if freeAll {
				frees := freeAllocated(p, allocs)
				steps = append(steps, newStep("free", p, frees...))
			}

			if o.jsonOut {
				return printJSON(o.out, steps)
			}
			o.newRenderer().steps(steps)
			return nil
		},
	}
	cmd.Flags().BoolVar(&freeAll, "free", false, "Free every successful allocation afterwards")
	return cmd
}
