package main

import (
	"github.com/spf13/cobra"

	"github.com/memkit/memkit/cmd/memctl/tui"
)

func init() {
	rootCmd.AddCommand(newTuiCmd())
}

func newTuiCmd() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Explore the simulation interactively in the terminal",
		Long: `Opens an interactive terminal view of the address space: a
proportional memory bar plus a block table, with keys to allocate, free,
and cycle the placement strategy.

Example:
  memctl tui --size 1000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(size)
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "Initial arena size (0 prompts on startup)")
	return cmd
}
