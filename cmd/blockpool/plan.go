package main

import "github.com/spf13/cobra"

func newPlanCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the arena layout planned for the block sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := o.newPool()
			if err != nil {
				return err
			}

			steps := []step{newStep("plan", p)}
			if o.jsonOut {
				return printJSON(o.out, steps)
			}
			o.newRenderer().steps(steps)
			return nil
		},
	}
}
