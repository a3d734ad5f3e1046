package main

import (
	"io"

	"github.com/spf13/cobra"

	"gd32h7-usart/board"
	"gd32h7-usart/board/boardfile"
	"gd32h7-usart/x/conv"
	"gd32h7-usart/x/fmtx"
)

func newTableCmd() *cobra.Command {
	var all, asYAML bool
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the compiled-in UART table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := board.Enabled()
			if all {
				t = board.Known
			}
			if asYAML {
				return boardfile.Dump(cmd.OutOrStdout(), t)
			}
			printTable(cmd.OutOrStdout(), t)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "list every UART the board can wire, not just the enabled ones")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print as a board file")
	return cmd
}

func printTable(out io.Writer, t board.Table) {
	for i, u := range t {
		fmtx.Fprintf(out, "%d %-6s %s irq=%d tx=%-4s rx=%s\n", i, u.Name, conv.Addr(u.Periph), int(u.IRQ), u.TX, u.RX)
	}
}
