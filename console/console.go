// Package console brings up the board's console UART and transmits on it by
// polling. There are no interrupts, DMA or software buffers: every byte goes
// straight to the data register once the transmitter can take it.
package console

import (
	"gd32h7-usart/board"
	"gd32h7-usart/drivers/gd32h7/gpio"
	"gd32h7-usart/drivers/gd32h7/rcu"
	"gd32h7-usart/drivers/gd32h7/usart"
	"gd32h7-usart/drivers/mmio"
	"gd32h7-usart/errcode"
	"gd32h7-usart/x/conv"
)

// Fixed frame format.
const (
	Baud     = 115200
	DataBits = 8
	Parity   = usart.ParityNone
	StopBits = usart.Stop1

	// FrameBits counts start, data and stop bits on the wire.
	FrameBits = 1 + DataBits + 1
)

// Init brings up the first UART in t. Later entries are ignored.
func Init(bus mmio.Bus, t board.Table) (*Port, error) {
	if len(t) == 0 {
		return nil, errcode.Wrap(errcode.Unconfigured, "init", "no uart enabled", nil)
	}
	return Configure(bus, t[0])
}

// Configure enables d's clock, programs 115200 8N1 with both directions on,
// enables the block and routes the TX/RX pins to it. The first failure stops
// the sequence; clocks already enabled stay on.
func Configure(bus mmio.Bus, d board.UART) (*Port, error) {
	if err := enableClock(bus, d.Periph); err != nil {
		return nil, err
	}
	if err := setupUSART(bus, d.Periph); err != nil {
		return nil, err
	}
	if err := setupPins(bus, d); err != nil {
		return nil, err
	}
	return &Port{bus: bus, d: d}, nil
}

func enableClock(bus mmio.Bus, base uint32) error {
	p, ok := rcu.USARTPeriph(base)
	if !ok {
		return errcode.Wrap(errcode.Unsupported, "clock", conv.Addr(base), nil)
	}
	if err := rcu.Enable(bus, p); err != nil {
		return errcode.Wrap(errcode.Of(err), "clock", p.String(), err)
	}
	return nil
}

func setupUSART(bus mmio.Bus, base uint32) error {
	wrap := func(err error) error {
		return errcode.Wrap(errcode.Of(err), "usart", conv.Addr(base), err)
	}
	if err := usart.Deinit(bus, base); err != nil {
		return wrap(err)
	}
	if err := usart.BaudrateSet(bus, base, Baud); err != nil {
		return wrap(err)
	}
	if err := usart.ParityConfig(bus, base, Parity); err != nil {
		return wrap(err)
	}
	if err := usart.WordLengthSet(bus, base, DataBits); err != nil {
		return wrap(err)
	}
	if err := usart.StopBitSet(bus, base, StopBits); err != nil {
		return wrap(err)
	}
	usart.ReceiveConfig(bus, base, true)
	usart.TransmitConfig(bus, base, true)
	usart.Enable(bus, base)
	return nil
}

// PinAF is the alternate function that routes uartN's pins: AF7 for
// uart1..uart3, AF8 above.
func PinAF(n int) gpio.AF {
	if n <= 3 {
		return gpio.AF7
	}
	return gpio.AF8
}

func setupPins(bus mmio.Bus, d board.UART) error {
	n, ok := d.Number()
	if !ok {
		return errcode.Wrap(errcode.InvalidParams, "gpio", "no uart number in "+d.Name, nil)
	}
	tx, err := gpio.Parse(d.TX)
	if err != nil {
		return errcode.Wrap(errcode.UnknownPin, "gpio", "tx "+d.TX, err)
	}
	rx, err := gpio.Parse(d.RX)
	if err != nil {
		return errcode.Wrap(errcode.UnknownPin, "gpio", "rx "+d.RX, err)
	}

	if err := enablePort(bus, tx.Port); err != nil {
		return err
	}
	if rx.Port != tx.Port {
		if err := enablePort(bus, rx.Port); err != nil {
			return err
		}
	}

	for _, p := range [...]gpio.Pin{tx, rx} {
		gpio.ModeSet(bus, p.Port, gpio.ModeAF, gpio.PullUp, p.Mask())
		gpio.OutputOptionsSet(bus, p.Port, gpio.PushPull, gpio.Speed60MHz, p.Mask())
	}
	af := PinAF(n)
	gpio.AFSet(bus, tx.Port, af, tx.Mask())
	gpio.AFSet(bus, rx.Port, af, rx.Mask())
	return nil
}

func enablePort(bus mmio.Bus, port uint32) error {
	p, ok := rcu.GPIOPeriph(port)
	if !ok {
		return errcode.Wrap(errcode.Unsupported, "gpio clock", conv.Addr(port), nil)
	}
	return rcu.Enable(bus, p)
}
