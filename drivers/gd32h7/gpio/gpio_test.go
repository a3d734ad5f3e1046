package gpio

import (
	"testing"

	"gd32h7-usart/drivers/gd32h7"
	"gd32h7-usart/drivers/mmio"
	"gd32h7-usart/errcode"
)

func TestDecode(t *testing.T) {
	for _, c := range []struct {
		name       string
		port, mask uint32
	}{
		{"PA9", gd32h7.GPIOA, 1 << 9},
		{"pb0", gd32h7.GPIOB, 1 << 0},
		{"Pb0", gd32h7.GPIOB, 1 << 0},
		{"PA10", gd32h7.GPIOA, 1 << 10},
		{"PD2", gd32h7.GPIOD, 1 << 2},
		{"PH15", gd32h7.GPIOH, 1 << 15},
	} {
		port, mask := Decode(c.name)
		if port != c.port || mask != c.mask {
			t.Fatalf("Decode(%q) = (%#x, %#x), want (%#x, %#x)", c.name, port, mask, c.port, c.mask)
		}
	}
}

func TestDecodeOnlyPortLetterIsCaseInsensitive(t *testing.T) {
	// The prefix character is ignored entirely.
	p1, m1 := Decode("xA3")
	p2, m2 := Decode("PA3")
	if p1 != p2 || m1 != m2 {
		t.Fatalf("prefix changed the result: (%#x,%#x) vs (%#x,%#x)", p1, m1, p2, m2)
	}
}

func TestDecodeMalformedDoesNotPanic(t *testing.T) {
	for _, name := range []string{"", "P", "PZ", "P9x", "PA", "PAx", "PA99", "PA999999999999999999999"} {
		_, _ = Decode(name)
	}
	// Port letters past H keep the linear offset; no validation.
	if port, _ := Decode("PJ1"); port != gd32h7.GPIOA+9*gd32h7.GPIOStride {
		t.Fatalf("Decode(PJ1) port = %#x", port)
	}
	// Index without digits reads as 0.
	if _, mask := Decode("PAx"); mask != 1 {
		t.Fatalf("Decode(PAx) mask = %#x, want 1", mask)
	}
	// Index past the register width shifts out.
	if _, mask := Decode("PA40"); mask != 0 {
		t.Fatalf("Decode(PA40) mask = %#x, want 0", mask)
	}
}

func TestParse(t *testing.T) {
	p, err := Parse("pc12")
	if err != nil {
		t.Fatalf("Parse(pc12): %v", err)
	}
	if p.Port != gd32h7.GPIOC || p.Index != 12 || p.Mask() != 1<<12 {
		t.Fatalf("Parse(pc12) = %+v", p)
	}
	for _, bad := range []string{"", "PA", "A9", "PI1", "PA16", "PA-1", "PA1x", "PA09", "PA100", "QA1"} {
		if _, err := Parse(bad); errcode.Of(err) != errcode.UnknownPin {
			t.Fatalf("Parse(%q) err = %v, want unknown_pin", bad, err)
		}
	}
}

func TestModeSetAndOutputOptions(t *testing.T) {
	s := mmio.NewSim()
	port := gd32h7.GPIOA
	s.Poke(port+CTL, 0xFFFFFFFF) // analog everywhere
	mask := uint32(1<<9 | 1<<10)

	ModeSet(s, port, ModeAF, PullUp, mask)
	OutputOptionsSet(s, port, PushPull, Speed60MHz, mask)

	ctl := s.Peek(port + CTL)
	for _, i := range []uint{9, 10} {
		if got := (ctl >> (2 * i)) & 3; got != uint32(ModeAF) {
			t.Fatalf("pin %d mode = %d, want AF", i, got)
		}
		if got := (s.Peek(port+PUD) >> (2 * i)) & 3; got != uint32(PullUp) {
			t.Fatalf("pin %d pull = %d, want up", i, got)
		}
		if got := (s.Peek(port+OSPD) >> (2 * i)) & 3; got != uint32(Speed60MHz) {
			t.Fatalf("pin %d speed = %d", i, got)
		}
	}
	if got := (ctl >> 16) & 3; got != 3 {
		t.Fatalf("pin 8 disturbed: mode %d", got)
	}
	if got := s.Peek(port + OMODE); got&mask != 0 {
		t.Fatalf("OMODE = %#x, want push-pull", got)
	}
	OutputOptionsSet(s, port, OpenDrain, Speed12MHz, 1<<3)
	if got := s.Peek(port + OMODE); got != 1<<3 {
		t.Fatalf("OMODE = %#x, want 1<<3", got)
	}
}

func TestAFSetSplitsRegisters(t *testing.T) {
	s := mmio.NewSim()
	port := gd32h7.GPIOC
	AFSet(s, port, AF8, 1<<2|1<<12)
	if got := s.Peek(port + AFSEL0); got != 8<<8 {
		t.Fatalf("AFSEL0 = %#x, want %#x", got, 8<<8)
	}
	if got := s.Peek(port + AFSEL1); got != 8<<16 {
		t.Fatalf("AFSEL1 = %#x, want %#x", got, 8<<16)
	}
}
