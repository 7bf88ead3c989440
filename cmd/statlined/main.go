// Command statlined serves the statline dataset registry over Arrow
// Flight, fetching rows from a DuckDB database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "statlined",
		Short:         "statline Arrow Flight server",
		Long:          "statlined serves normalized sports-statistics queries over Arrow Flight.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCommand())
	return cmd
}
