// Package rcu gates peripheral bus clocks and resets on the GD32H7 RCU.
package rcu

import (
	"gd32h7-usart/drivers/gd32h7"
	"gd32h7-usart/drivers/mmio"
	"gd32h7-usart/errcode"
)

// Periph identifies a clock-gated peripheral. The set is closed: only the
// serial blocks and GPIO ports the console uses are known.
type Periph uint8

const (
	None Periph = iota
	USART0
	USART1
	USART2
	UART3
	UART4
	GPIOA
	GPIOB
	GPIOC
	GPIOD
	GPIOE
	GPIOF
	GPIOG
	GPIOH
)

// Register offsets from gd32h7.RCU.
const (
	AHB4RST = 0x1C
	APB1RST = 0x20
	APB2RST = 0x24
	AHB4EN  = 0x3C
	APB1EN  = 0x40
	APB2EN  = 0x44
)

// Bus clocks feeding APB1 and APB2 peripherals. Boards running a different
// clock tree overwrite these before bring-up.
var (
	APB1Hz uint32 = 150_000_000
	APB2Hz uint32 = 150_000_000
)

// Gate is where a peripheral's enable and reset bits live.
type Gate struct {
	En, Rst uint32 // absolute register addresses
	Bit     uint32 // single-bit mask, same position in both
}

type gate struct {
	en, rst uint32
	pos     uint8
	name    string
}

var gates = [...]gate{
	USART0: {APB2EN, APB2RST, 4, "USART0"},
	USART1: {APB1EN, APB1RST, 17, "USART1"},
	USART2: {APB1EN, APB1RST, 18, "USART2"},
	UART3:  {APB1EN, APB1RST, 19, "UART3"},
	UART4:  {APB1EN, APB1RST, 20, "UART4"},
	GPIOA:  {AHB4EN, AHB4RST, 0, "GPIOA"},
	GPIOB:  {AHB4EN, AHB4RST, 1, "GPIOB"},
	GPIOC:  {AHB4EN, AHB4RST, 2, "GPIOC"},
	GPIOD:  {AHB4EN, AHB4RST, 3, "GPIOD"},
	GPIOE:  {AHB4EN, AHB4RST, 4, "GPIOE"},
	GPIOF:  {AHB4EN, AHB4RST, 5, "GPIOF"},
	GPIOG:  {AHB4EN, AHB4RST, 6, "GPIOG"},
	GPIOH:  {AHB4EN, AHB4RST, 7, "GPIOH"},
}

// GateOf returns the register locations for p.
func GateOf(p Periph) (Gate, bool) {
	if p == None || int(p) >= len(gates) {
		return Gate{}, false
	}
	g := gates[p]
	return Gate{En: gd32h7.RCU + g.en, Rst: gd32h7.RCU + g.rst, Bit: 1 << g.pos}, true
}

func (p Periph) String() string {
	if p == None || int(p) >= len(gates) {
		return "periph(?)"
	}
	return gates[p].name
}

// Enable turns on the bus clock for p. Setting an already-set bit is
// harmless, so repeated calls succeed. Unknown identifiers return
// errcode.Unsupported without touching any register.
func Enable(bus mmio.Bus, p Periph) error {
	g, ok := GateOf(p)
	if !ok {
		return errcode.Unsupported
	}
	mmio.R(bus, g.En).SetBits(g.Bit)
	return nil
}

// Enabled reports whether p's clock bit is set.
func Enabled(bus mmio.Bus, p Periph) bool {
	g, ok := GateOf(p)
	return ok && mmio.R(bus, g.En).HasBits(g.Bit)
}

// Reset pulses p's reset line, returning its registers to their defaults.
func Reset(bus mmio.Bus, p Periph) error {
	g, ok := GateOf(p)
	if !ok {
		return errcode.Unsupported
	}
	r := mmio.R(bus, g.Rst)
	r.SetBits(g.Bit)
	r.ClearBits(g.Bit)
	return nil
}

// USARTPeriph maps a serial block base address to its clock identifier.
func USARTPeriph(base uint32) (Periph, bool) {
	switch base {
	case gd32h7.USART0:
		return USART0, true
	case gd32h7.USART1:
		return USART1, true
	case gd32h7.USART2:
		return USART2, true
	case gd32h7.UART3:
		return UART3, true
	case gd32h7.UART4:
		return UART4, true
	}
	return None, false
}

// GPIOPeriph maps a GPIO port base address to its clock identifier.
func GPIOPeriph(port uint32) (Periph, bool) {
	if port < gd32h7.GPIOA || port > gd32h7.GPIOH || (port-gd32h7.GPIOA)%gd32h7.GPIOStride != 0 {
		return None, false
	}
	return GPIOA + Periph((port-gd32h7.GPIOA)/gd32h7.GPIOStride), true
}

// ClockFreq is the bus clock in Hz feeding p, or 0 for non-serial blocks.
func ClockFreq(p Periph) uint32 {
	switch p {
	case USART0:
		return APB2Hz
	case USART1, USART2, UART3, UART4:
		return APB1Hz
	}
	return 0
}
