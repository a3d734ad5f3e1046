package console

import (
	"context"
	"errors"
	"io"
	"sync"

	"tinygo.org/x/drivers"

	"gd32h7-usart/board"
	"gd32h7-usart/drivers/gd32h7/usart"
	"gd32h7-usart/drivers/mmio"
)

// Port is a configured console UART. Methods are safe for concurrent use;
// one lock covers both directions so whole writes never interleave.
type Port struct {
	mu  sync.Mutex
	bus mmio.Bus
	d   board.UART
}

var (
	_ drivers.UART    = (*Port)(nil)
	_ io.ByteWriter   = (*Port)(nil)
	_ io.ByteReader   = (*Port)(nil)
	_ io.StringWriter = (*Port)(nil)
)

// ErrRxEmpty is returned by ReadByte when no byte has arrived.
var ErrRxEmpty = errors.New("console: rx empty")

// UART returns the descriptor the port was configured from.
func (p *Port) UART() board.UART { return p.d }

// WriteByte waits for the transmit buffer to empty, then sends c. It does
// not time out: a transmitter that never drains blocks forever.
func (p *Port) WriteByte(c byte) error {
	p.mu.Lock()
	p.putc(c)
	p.mu.Unlock()
	return nil
}

// WriteByteContext is WriteByte that gives up when ctx ends.
func (p *Port) WriteByteContext(ctx context.Context, c byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for !usart.FlagGet(p.bus, p.d.Periph, usart.FlagTBE) {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	usart.DataTransmit(p.bus, p.d.Periph, uint16(c))
	return nil
}

// Write sends every byte of b.
func (p *Port) Write(b []byte) (int, error) {
	p.mu.Lock()
	for _, c := range b {
		p.putc(c)
	}
	p.mu.Unlock()
	return len(b), nil
}

// WriteString is Write for a string, without the copy.
func (p *Port) WriteString(s string) (int, error) {
	p.mu.Lock()
	for i := 0; i < len(s); i++ {
		p.putc(s[i])
	}
	p.mu.Unlock()
	return len(s), nil
}

func (p *Port) putc(c byte) {
	for !usart.FlagGet(p.bus, p.d.Periph, usart.FlagTBE) {
	}
	usart.DataTransmit(p.bus, p.d.Periph, uint16(c))
}

// Buffered is 1 when a received byte is waiting, else 0. The hardware holds
// a single byte.
func (p *Port) Buffered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if usart.FlagGet(p.bus, p.d.Periph, usart.FlagRBNE) {
		return 1
	}
	return 0
}

// ReadByte returns the waiting byte or ErrRxEmpty.
func (p *Port) ReadByte() (byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !usart.FlagGet(p.bus, p.d.Periph, usart.FlagRBNE) {
		return 0, ErrRxEmpty
	}
	return byte(usart.DataReceive(p.bus, p.d.Periph)), nil
}

// Read copies whatever has arrived into b without waiting. It returns 0, nil
// when nothing is pending.
func (p *Port) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for n < len(b) && usart.FlagGet(p.bus, p.d.Periph, usart.FlagRBNE) {
		b[n] = byte(usart.DataReceive(p.bus, p.d.Periph))
		n++
	}
	return n, nil
}
