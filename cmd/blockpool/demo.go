package main

import (
	"github.com/QuangTung97/blockpool"
	"github.com/spf13/cobra"
)

var demoRequests = []uint32{17, 18, 19}

func newDemoCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Allocate 17, 18 and 19 bytes, then free the second block",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := o.newPool()
			if err != nil {
				return err
			}

			steps := []step{newStep("init", p)}

			allocs := allocateAll(p, demoRequests)
			steps = append(steps, newStep("alloc", p, allocs...))

			if allocs[1].OK {
				frees := freeAllocated(p, allocs[1:2])
				steps = append(steps, newStep("free", p, frees...))
			}

			if o.jsonOut {
				return printJSON(o.out, steps)
			}
			o.newRenderer().steps(steps)
			return nil
		},
	}
}

func allocateAll(p *blockpool.Pool, sizes []uint32) []request {
	result := make([]request, 0, len(sizes))
	for _, n := range sizes {
		addr, ok := p.Allocate(n)
		result = append(result, request{Op: "alloc", Size: n, Addr: addr, OK: ok})
	}
	return result
}

func freeAllocated(p *blockpool.Pool, allocs []request) []request {
	var result []request
	for _, a := range allocs {
		if !a.OK {
			continue
		}
		p.Deallocate(a.Addr)
		result = append(result, request{Op: "free", Size: a.Size, Addr: a.Addr, OK: true})
	}
	return result
}
