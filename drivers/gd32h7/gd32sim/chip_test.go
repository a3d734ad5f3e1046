package gd32sim

import (
	"bytes"
	"testing"

	"gd32h7-usart/drivers/gd32h7"
	"gd32h7-usart/drivers/gd32h7/usart"
)

func enableTx(c *Chip, base uint32) {
	usart.TransmitConfig(c, base, true)
	usart.ReceiveConfig(c, base, true)
	usart.Enable(c, base)
}

func TestResetState(t *testing.T) {
	c := New(nil)
	for _, in := range gd32h7.Instances {
		if !usart.FlagGet(c, in.Base, usart.FlagTBE) {
			t.Fatalf("%s: TBE clear after reset", in.Name)
		}
	}
}

func TestTransmitNeedsEnabledBlock(t *testing.T) {
	var sink bytes.Buffer
	c := New(&sink)
	base := gd32h7.USART1

	usart.DataTransmit(c, base, 'x') // disabled: dropped
	enableTx(c, base)
	usart.DataTransmit(c, base, 'o')
	usart.DataTransmit(c, base, 'k')

	if got := string(c.Output(base)); got != "ok" {
		t.Fatalf("Output = %q, want \"ok\"", got)
	}
	if sink.String() != "ok" {
		t.Fatalf("sink = %q, want \"ok\"", sink.String())
	}
	if len(c.Output(gd32h7.USART0)) != 0 {
		t.Fatalf("other block saw output")
	}
}

func TestInjectAndReceive(t *testing.T) {
	c := New(nil)
	base := gd32h7.UART4
	c.Inject(base, 'h', 'i')
	if !usart.FlagGet(c, base, usart.FlagRBNE) {
		t.Fatalf("RBNE not set after inject")
	}
	if b := usart.DataReceive(c, base); b != 'h' {
		t.Fatalf("first byte %q", b)
	}
	if b := usart.DataReceive(c, base); b != 'i' {
		t.Fatalf("second byte %q", b)
	}
	if usart.FlagGet(c, base, usart.FlagRBNE) {
		t.Fatalf("RBNE still set after draining")
	}
}

func TestDeinitResetsBlock(t *testing.T) {
	c := New(nil)
	base := gd32h7.USART0
	enableTx(c, base)
	c.Poke(base+usart.BAUD, 1302)
	c.Inject(base, 1, 2, 3)

	if err := usart.Deinit(c, base); err != nil {
		t.Fatalf("Deinit: %v", err)
	}
	if c.Peek(base+usart.CTL0) != 0 || c.Peek(base+usart.BAUD) != 0 {
		t.Fatalf("registers not reset")
	}
	if c.Peek(base+usart.STAT) != usart.StatReset {
		t.Fatalf("STAT = %#x after reset", c.Peek(base+usart.STAT))
	}
	// USART1 resets through APB1RST; pulsing USART0 must leave it alone.
	enableTx(c, gd32h7.USART1)
	if err := usart.Deinit(c, base); err != nil {
		t.Fatal(err)
	}
	if c.Peek(gd32h7.USART1+usart.CTL0) == 0 {
		t.Fatalf("resetting USART0 cleared USART1")
	}
}

func TestLoopback(t *testing.T) {
	c := New(nil)
	base := gd32h7.USART2
	enableTx(c, base)
	c.SetLoopback(true)
	usart.DataTransmit(c, base, 'z')
	if !usart.FlagGet(c, base, usart.FlagRBNE) || usart.DataReceive(c, base) != 'z' {
		t.Fatalf("loopback byte not received")
	}
}

func TestSetSink(t *testing.T) {
	var a, b bytes.Buffer
	c := New(&a)
	base := gd32h7.USART0
	enableTx(c, base)

	usart.DataTransmit(c, base, '1')
	c.SetSink(&b)
	usart.DataTransmit(c, base, '2')
	c.SetSink(nil)
	usart.DataTransmit(c, base, '3')

	if a.String() != "1" || b.String() != "2" {
		t.Fatalf("sinks = %q, %q", a.String(), b.String())
	}
	if got := string(c.Output(base)); got != "123" {
		t.Fatalf("Output = %q", got)
	}
}
