package rcu

import (
	"testing"

	"gd32h7-usart/drivers/gd32h7"
	"gd32h7-usart/drivers/mmio"
	"gd32h7-usart/errcode"
)

func TestEnableKnownSetIsIdempotent(t *testing.T) {
	for p := USART0; p <= GPIOH; p++ {
		s := mmio.NewSim()
		for i := 0; i < 2; i++ {
			if err := Enable(s, p); err != nil {
				t.Fatalf("Enable(%v) call %d: %v", p, i, err)
			}
		}
		if !Enabled(s, p) {
			t.Fatalf("%v clock bit not set", p)
		}
		g, _ := GateOf(p)
		if got := s.Peek(g.En); got != g.Bit {
			t.Fatalf("%v: enable register = %#x, want only %#x", p, got, g.Bit)
		}
	}
}

func TestEnableUnknownWritesNothing(t *testing.T) {
	for _, p := range []Periph{None, GPIOH + 1, 200} {
		s := mmio.NewSim()
		err := Enable(s, p)
		if errcode.Of(err) != errcode.Unsupported {
			t.Fatalf("Enable(%d) err = %v, want unsupported", p, err)
		}
		if tr := s.Trace(); len(tr) != 0 {
			t.Fatalf("Enable(%d) wrote registers: %v", p, tr)
		}
	}
}

func TestEnableLeavesOtherBits(t *testing.T) {
	s := mmio.NewSim()
	_ = Enable(s, USART1)
	_ = Enable(s, UART4)
	g1, _ := GateOf(USART1)
	if got, want := s.Peek(g1.En), uint32(1<<17|1<<20); got != want {
		t.Fatalf("APB1EN = %#x, want %#x", got, want)
	}
	if got := s.Peek(gd32h7.RCU + APB2EN); got != 0 {
		t.Fatalf("APB2EN touched: %#x", got)
	}
}

func TestResetPulses(t *testing.T) {
	s := mmio.NewSim()
	if err := Reset(s, USART0); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	tr := s.Trace()
	if len(tr) != 2 || tr[0].Val != 1<<4 || tr[1].Val != 0 {
		t.Fatalf("reset pulse trace = %v", tr)
	}
	if errcode.Of(Reset(s, None)) != errcode.Unsupported {
		t.Fatalf("Reset(None) should be unsupported")
	}
}

func TestPeriphLookup(t *testing.T) {
	for _, in := range gd32h7.Instances {
		p, ok := USARTPeriph(in.Base)
		if !ok || p.String() != in.Name {
			t.Fatalf("USARTPeriph(%#x) = %v, %v; want %s", in.Base, p, ok, in.Name)
		}
	}
	if _, ok := USARTPeriph(0x40011400); ok {
		t.Fatalf("USART5 base must be outside the known set")
	}
	if p, ok := GPIOPeriph(gd32h7.GPIOD); !ok || p != GPIOD {
		t.Fatalf("GPIOPeriph(GPIOD) = %v, %v", p, ok)
	}
	for _, bad := range []uint32{gd32h7.GPIOA + 4, gd32h7.GPIOH + gd32h7.GPIOStride, 0} {
		if _, ok := GPIOPeriph(bad); ok {
			t.Fatalf("GPIOPeriph(%#x) should fail", bad)
		}
	}
}

func TestClockFreq(t *testing.T) {
	if ClockFreq(USART0) != APB2Hz || ClockFreq(UART3) != APB1Hz || ClockFreq(GPIOA) != 0 {
		t.Fatalf("unexpected clock mapping")
	}
}

func TestGateAddresses(t *testing.T) {
	for _, c := range []struct {
		p       Periph
		en, rst uint32
		bit     uint32
	}{
		{USART0, 0x58024444, 0x58024424, 1 << 4},
		{USART1, 0x58024440, 0x58024420, 1 << 17},
		{UART4, 0x58024440, 0x58024420, 1 << 20},
		{GPIOA, 0x5802443C, 0x5802441C, 1 << 0},
		{GPIOD, 0x5802443C, 0x5802441C, 1 << 3},
	} {
		g, ok := GateOf(c.p)
		if !ok || g.En != c.en || g.Rst != c.rst || g.Bit != c.bit {
			t.Fatalf("GateOf(%v) = %#x/%#x/%#x, want %#x/%#x/%#x", c.p, g.En, g.Rst, g.Bit, c.en, c.rst, c.bit)
		}
	}
}
