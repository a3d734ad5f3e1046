// Package usart programs GD32H7 USART/UART register blocks. Every function
// takes the block's base address; there is no driver state.
package usart

import (
	"gd32h7-usart/drivers/gd32h7/rcu"
	"gd32h7-usart/drivers/mmio"
	"gd32h7-usart/errcode"
	"gd32h7-usart/x/mathx"
)

// Register offsets.
const (
	CTL0  = 0x00
	CTL1  = 0x04
	CTL2  = 0x08
	BAUD  = 0x0C
	STAT  = 0x1C
	INTC  = 0x20
	RDATA = 0x24
	TDATA = 0x28
)

// CTL0 bits.
const (
	CTL0_UEN    = 1 << 0
	CTL0_REN    = 1 << 2
	CTL0_TEN    = 1 << 3
	CTL0_PM     = 1 << 9
	CTL0_PCEN   = 1 << 10
	CTL0_WL0    = 1 << 12
	CTL0_OVSMOD = 1 << 15
	CTL0_WL1    = 1 << 28
)

// CTL1 stop-bit field.
const (
	ctl1STBPos  = 12
	ctl1STBMask = 0x3
)

// StatReset is STAT after reset: transmitter idle and empty.
const StatReset = uint32(FlagTBE | FlagTC)

// Flag is a STAT bit.
type Flag uint32

const (
	FlagPERR  Flag = 1 << 0
	FlagFERR  Flag = 1 << 1
	FlagORERR Flag = 1 << 3
	FlagRBNE  Flag = 1 << 5
	FlagTC    Flag = 1 << 6
	FlagTBE   Flag = 1 << 7
)

// Parity selects the frame parity mode.
type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

// StopBits selects the frame stop-bit length.
type StopBits uint8

const (
	Stop1 StopBits = iota
	Stop0_5
	Stop2
	Stop1_5
)

// Deinit pulses the block's RCU reset, restoring every register to its reset
// value.
func Deinit(bus mmio.Bus, base uint32) error {
	p, ok := rcu.USARTPeriph(base)
	if !ok {
		return errcode.Unsupported
	}
	return rcu.Reset(bus, p)
}

// Divisor returns the BAUD register value for baud at 16x oversampling, fed
// by a clkHz bus clock: clk/baud rounded to nearest, clamped to the
// register's 16-bit range with the 1.0 minimum the hardware requires.
func Divisor(clkHz, baud uint32) uint32 {
	return mathx.Clamp(mathx.RoundDiv(clkHz, baud), 16, 0xFFFF)
}

// BaudrateSet programs the baud-rate divisor from the block's bus clock.
func BaudrateSet(bus mmio.Bus, base, baud uint32) error {
	p, ok := rcu.USARTPeriph(base)
	if !ok {
		return errcode.Unsupported
	}
	if baud == 0 {
		return errcode.InvalidParams
	}
	mmio.R(bus, base+CTL0).ClearBits(CTL0_OVSMOD)
	mmio.R(bus, base+BAUD).Set(Divisor(rcu.ClockFreq(p), baud))
	return nil
}

// ParityConfig sets the parity mode. The block is disabled while the frame
// format changes.
func ParityConfig(bus mmio.Bus, base uint32, parity Parity) error {
	var bits uint32
	switch parity {
	case ParityNone:
	case ParityEven:
		bits = CTL0_PCEN
	case ParityOdd:
		bits = CTL0_PCEN | CTL0_PM
	default:
		return errcode.InvalidParams
	}
	ctl0 := mmio.R(bus, base+CTL0)
	ctl0.ClearBits(CTL0_UEN)
	ctl0.Set(ctl0.Get()&^(CTL0_PCEN|CTL0_PM) | bits)
	return nil
}

// WordLengthSet sets the data bits per frame (7, 8 or 9).
func WordLengthSet(bus mmio.Bus, base uint32, bits uint8) error {
	var wl uint32
	switch bits {
	case 7:
		wl = CTL0_WL1
	case 8:
	case 9:
		wl = CTL0_WL0
	default:
		return errcode.InvalidParams
	}
	ctl0 := mmio.R(bus, base+CTL0)
	ctl0.ClearBits(CTL0_UEN)
	ctl0.Set(ctl0.Get()&^(CTL0_WL0|CTL0_WL1) | wl)
	return nil
}

// StopBitSet sets the stop-bit length.
func StopBitSet(bus mmio.Bus, base uint32, stop StopBits) error {
	if stop > Stop1_5 {
		return errcode.InvalidParams
	}
	mmio.R(bus, base+CTL0).ClearBits(CTL0_UEN)
	mmio.R(bus, base+CTL1).ReplaceBits(uint32(stop), ctl1STBMask, ctl1STBPos)
	return nil
}

// ReceiveConfig enables or disables the receiver.
func ReceiveConfig(bus mmio.Bus, base uint32, on bool) { setBit(bus, base+CTL0, CTL0_REN, on) }

// TransmitConfig enables or disables the transmitter.
func TransmitConfig(bus mmio.Bus, base uint32, on bool) { setBit(bus, base+CTL0, CTL0_TEN, on) }

func Enable(bus mmio.Bus, base uint32)  { mmio.R(bus, base+CTL0).SetBits(CTL0_UEN) }
func Disable(bus mmio.Bus, base uint32) { mmio.R(bus, base+CTL0).ClearBits(CTL0_UEN) }

// FlagGet reports whether STAT flag f is set.
func FlagGet(bus mmio.Bus, base uint32, f Flag) bool {
	return mmio.R(bus, base+STAT).HasBits(uint32(f))
}

// DataTransmit writes one data word; the hardware clears TBE until it moves
// the word to the shift register.
func DataTransmit(bus mmio.Bus, base uint32, data uint16) {
	mmio.R(bus, base+TDATA).Set(uint32(data) & 0x1FF)
}

// DataReceive reads one data word, clearing RBNE.
func DataReceive(bus mmio.Bus, base uint32) uint16 {
	return uint16(mmio.R(bus, base+RDATA).Get() & 0x1FF)
}

func setBit(bus mmio.Bus, addr, bit uint32, on bool) {
	r := mmio.R(bus, addr)
	if on {
		r.SetBits(bit)
	} else {
		r.ClearBits(bit)
	}
}
