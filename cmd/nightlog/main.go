// Command nightlog runs the batch side of the pipeline: normalize a tracker
// export, load it into the database, export it to a workbook or print the
// window comparison without a server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nightlog",
		Short:         "Normalize sleep tracker exports and compute window KPIs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newTransformCmd(),
		newLoadCmd(),
		newExportCmd(),
		newKPICmd(),
	)
	return rootCmd
}
