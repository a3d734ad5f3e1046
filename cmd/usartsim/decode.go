package main

import (
	"io"

	"github.com/spf13/cobra"

	"gd32h7-usart/drivers/gd32h7/gpio"
	"gd32h7-usart/x/conv"
	"gd32h7-usart/x/fmtx"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode PIN...",
		Short: "Show the port base and mask for pin names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decode(cmd.OutOrStdout(), args)
			return nil
		},
	}
}

func decode(out io.Writer, pins []string) {
	for _, name := range pins {
		port, mask := gpio.Decode(name)
		note := ""
		if _, err := gpio.Parse(name); err != nil {
			note = "  (not a valid pin)"
		}
		fmtx.Fprintf(out, "%-5s port=%s mask=%s%s\n", name, conv.Addr(port), conv.Addr(mask), note)
	}
}
