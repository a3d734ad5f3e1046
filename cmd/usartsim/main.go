// Command usartsim runs the console bring-up against a simulated GD32H7 and
// shows what reaches the wire.
package main

import (
	"log"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "usartsim",
		Short:         "Simulate GD32H7 console UART bring-up",
		Long:          "Bring up a console UART on a simulated GD32H7, print the bytes it transmits and inspect board tables and pin names.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newDecodeCmd(), newTableCmd(), newPortsCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("usartsim: %v", err)
	}
}
