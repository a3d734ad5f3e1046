package main

import (
	"github.com/spf13/cobra"
	"go.bug.st/serial"

	"gd32h7-usart/x/fmtx"
)

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List host serial ports usable with run --mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := serial.GetPortsList()
			if err != nil {
				return err
			}
			for _, p := range ports {
				fmtx.Fprintf(cmd.OutOrStdout(), "%s\n", p)
			}
			return nil
		},
	}
}
