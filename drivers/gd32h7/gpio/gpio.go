// Package gpio decodes pin names and configures GD32H7 GPIO pins.
package gpio

import (
	"gd32h7-usart/drivers/gd32h7"
	"gd32h7-usart/drivers/mmio"
	"gd32h7-usart/errcode"
	"gd32h7-usart/x/strconvx"
)

// Register offsets within a port block.
const (
	CTL    = 0x00 // 2 bits per pin: mode
	OMODE  = 0x04 // 1 bit per pin: output type
	OSPD   = 0x08 // 2 bits per pin: speed class
	PUD    = 0x0C // 2 bits per pin: pull
	ISTAT  = 0x10
	OCTL   = 0x14
	AFSEL0 = 0x20 // 4 bits per pin, pins 0..7
	AFSEL1 = 0x24 // pins 8..15
)

// Mode is a pin's CTL field: input, output, alternate function or analog.
type Mode uint32

const (
	ModeInput Mode = iota
	ModeOutput
	ModeAF
	ModeAnalog
)

// Pull is a pin's PUD field.
type Pull uint32

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// OType is a pin's output driver (OMODE bit).
type OType uint32

const (
	PushPull OType = iota
	OpenDrain
)

// Speed is a pin's OSPD slew class.
type Speed uint32

const (
	Speed12MHz Speed = iota
	Speed60MHz
	Speed85MHz
	Speed100_220MHz
)

// AF is an alternate-function index (0..15).
type AF uint32

const (
	AF7 AF = 7
	AF8 AF = 8
)

// Decode turns a pin name such as "PA9" into a port base address and a
// single-bit mask. The second character is the port letter (either case),
// the digits after it the pin index. Nothing is validated: a malformed name
// yields an out-of-range port or a zero mask, never a panic. Use Parse when
// the input is not trusted.
func Decode(name string) (port, mask uint32) {
	var letter uint32
	if len(name) > 1 {
		letter = uint32(upper(name[1]))
	}
	n := 0
	if len(name) > 2 {
		n = leadingInt(name[2:])
	}
	port = gd32h7.GPIOA + (letter-'A')*gd32h7.GPIOStride
	mask = 1 << uint(n)
	return port, mask
}

// leadingInt parses the leading run of decimal digits, 0 if there is none.
func leadingInt(s string) int {
	n, err := strconvx.Atoi(s[:digitRun(s)])
	if err != nil {
		return 0
	}
	return n
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Pin is a validated GPIO pin.
type Pin struct {
	Port  uint32
	Index uint8
}

func (p Pin) Mask() uint32 { return 1 << p.Index }

// Parse validates name as P<port><index> with port A..H and index 0..15.
// Matching is case-insensitive. Failures return errcode.UnknownPin.
func Parse(name string) (Pin, error) {
	if len(name) < 3 || len(name) > 4 || upper(name[0]) != 'P' {
		return Pin{}, errcode.UnknownPin
	}
	letter := upper(name[1])
	if letter < 'A' || letter > 'H' {
		return Pin{}, errcode.UnknownPin
	}
	digits := name[2:]
	if digitRun(digits) != len(digits) || (len(digits) == 2 && digits[0] == '0') {
		return Pin{}, errcode.UnknownPin
	}
	n, err := strconvx.Atoi(digits)
	if err != nil || n > 15 {
		return Pin{}, errcode.UnknownPin
	}
	return Pin{Port: gd32h7.GPIOA + uint32(letter-'A')*gd32h7.GPIOStride, Index: uint8(n)}, nil
}

// digitRun is the length of the leading run of decimal digits in s.
func digitRun(s string) int {
	i := 0
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
	}
	return i
}

// eachPin calls fn for every pin index set in mask.
func eachPin(mask uint32, fn func(i uint8)) {
	for i := uint8(0); i < 16; i++ {
		if mask&(1<<i) != 0 {
			fn(i)
		}
	}
}

// ModeSet sets mode and pull for every pin in mask.
func ModeSet(bus mmio.Bus, port uint32, mode Mode, pull Pull, mask uint32) {
	ctl := mmio.R(bus, port+CTL)
	pud := mmio.R(bus, port+PUD)
	eachPin(mask, func(i uint8) {
		ctl.ReplaceBits(uint32(mode), 0x3, 2*i)
		pud.ReplaceBits(uint32(pull), 0x3, 2*i)
	})
}

// OutputOptionsSet sets output type and speed class for every pin in mask.
func OutputOptionsSet(bus mmio.Bus, port uint32, otype OType, speed Speed, mask uint32) {
	omode := mmio.R(bus, port+OMODE)
	if otype == OpenDrain {
		omode.SetBits(mask & 0xFFFF)
	} else {
		omode.ClearBits(mask & 0xFFFF)
	}
	ospd := mmio.R(bus, port+OSPD)
	eachPin(mask, func(i uint8) {
		ospd.ReplaceBits(uint32(speed), 0x3, 2*i)
	})
}

// AFSet binds every pin in mask to alternate function af.
func AFSet(bus mmio.Bus, port uint32, af AF, mask uint32) {
	lo := mmio.R(bus, port+AFSEL0)
	hi := mmio.R(bus, port+AFSEL1)
	eachPin(mask, func(i uint8) {
		if i < 8 {
			lo.ReplaceBits(uint32(af), 0xF, 4*i)
		} else {
			hi.ReplaceBits(uint32(af), 0xF, 4*(i-8))
		}
	})
}
