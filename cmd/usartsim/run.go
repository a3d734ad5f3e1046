package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.bug.st/serial"
	"tinygo.org/x/drivers"

	"gd32h7-usart/board"
	"gd32h7-usart/board/boardfile"
	"gd32h7-usart/console"
	"gd32h7-usart/drivers/gd32h7/gd32sim"
	"gd32h7-usart/x/fmtx"
	"gd32h7-usart/x/timex"
)

type runOpts struct {
	board    string
	uarts    []string
	message  string
	trace    bool
	loopback bool
	mirror   string
	settle   time.Duration
}

func newRunCmd() *cobra.Command {
	var o runOpts
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Bring up the first UART of a table and send a message",
		Long: "Bring up the first UART of the table (compiled-in, --board file or --uart descriptors) " +
			"on the simulator at 115200 8N1, send --message and print the transmitted bytes.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.board, "board", "b", "", "YAML board file")
	f.StringArrayVarP(&o.uarts, "uart", "u", nil, `descriptor "name instance tx rx [irq]" (repeatable)`)
	f.StringVarP(&o.message, "message", "m", "hello from gd32h7\r\n", "bytes to transmit")
	f.BoolVar(&o.trace, "trace", false, "print every register store")
	f.BoolVar(&o.loopback, "loopback", false, "feed TX back into RX and read it through the port")
	f.StringVar(&o.mirror, "mirror", "", "also write transmitted bytes to this host serial port")
	f.DurationVar(&o.settle, "settle", 0, "wait after sending (default with --mirror: the message's line time)")
	return cmd
}

func table(o runOpts) (board.Table, error) {
	switch {
	case o.board != "":
		return boardfile.LoadFile(o.board)
	case len(o.uarts) > 0:
		return boardfile.ParseSpecs(o.uarts)
	}
	return board.Enabled(), nil
}

func openMirror(name string) (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: console.Baud,
		DataBits: console.DataBits,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	return serial.Open(name, mode)
}

func run(out io.Writer, o runOpts) error {
	t, err := table(o)
	if err != nil {
		return err
	}

	var wire io.Writer = out
	if o.mirror != "" {
		sp, err := openMirror(o.mirror)
		if err != nil {
			return err
		}
		defer sp.Close()
		wire = io.MultiWriter(out, sp)
		if o.settle == 0 {
			o.settle = timex.TransferTime(len(o.message), console.Baud, console.FrameBits)
		}
	}

	chip := gd32sim.New(wire)
	chip.SetLoopback(o.loopback)
	port, err := console.Init(chip, t)
	if err != nil {
		return err
	}
	u := port.UART()
	fmtx.Fprintf(out, "# %s tx=%s rx=%s\n", u.Name, u.TX, u.RX)

	if o.trace {
		for _, a := range chip.Trace() {
			fmtx.Fprintf(out, "# %s\n", a.String())
		}
	}

	if _, err := port.WriteString(o.message); err != nil {
		return err
	}
	if o.loopback {
		if err := echo(out, port); err != nil {
			return err
		}
	}
	if o.settle > 0 {
		time.Sleep(o.settle)
	}
	return nil
}

// echo drains the receiver through the generic driver interface.
func echo(out io.Writer, u drivers.UART) error {
	var rx []byte
	buf := make([]byte, 16)
	for u.Buffered() > 0 {
		n, err := u.Read(buf)
		if err != nil {
			return err
		}
		rx = append(rx, buf[:n]...)
	}
	fmtx.Fprintf(out, "\n# rx %d bytes: %q\n", len(rx), rx)
	return nil
}
