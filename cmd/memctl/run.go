package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/memkit/memkit/internal/script"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run an allocator command script",
		Long: `Executes a line-oriented command script against a fresh arena and
prints the memory layout after each operation. Use "-" to read from stdin.

Commands:
  init TOTAL
  alloc SIZE [first|best|worst]
  free ID...
  strategy first|best|worst
  show
  frag

Example:
  memctl run scenario.mem
  echo "init 1000" | memctl run -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args[0])
		},
	}
	return cmd
}

func runScript(path string) error {
	var in io.Reader
	if path == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = os.Stdout
	if quiet {
		out = io.Discard
	}

	printVerbose("running script: %s\n", path)
	return script.NewRunner(out).Run(in)
}
