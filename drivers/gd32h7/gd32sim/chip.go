// Package gd32sim models just enough of a GD32H7 for the console USART to be
// brought up and used on a host: reset values, RCU reset pulses, a
// transmitter that completes instantly, and injectable receive data.
package gd32sim

import (
	"io"
	"sync"

	"gd32h7-usart/drivers/gd32h7"
	"gd32h7-usart/drivers/gd32h7/rcu"
	"gd32h7-usart/drivers/gd32h7/usart"
	"gd32h7-usart/drivers/mmio"
)

// Chip is a simulated register file with USART behaviour attached.
type Chip struct {
	*mmio.Sim

	mu       sync.Mutex
	sink     io.Writer
	tx       map[uint32][]byte
	rx       map[uint32][]byte
	loopback bool
}

// New returns a chip in its reset state. Bytes that leave any enabled
// transmitter are also written to sink (may be nil).
func New(sink io.Writer) *Chip {
	c := &Chip{
		Sim:  mmio.NewSim(),
		sink: sink,
		tx:   make(map[uint32][]byte),
		rx:   make(map[uint32][]byte),
	}
	for _, in := range gd32h7.Instances {
		base := in.Base
		c.resetUSART(base)
		c.OnStore(base+usart.TDATA, func(_, v uint32) uint32 {
			c.transmit(base, byte(v))
			return v
		})
		c.OnLoad(base+usart.RDATA, func(uint32) uint32 {
			return uint32(c.receive(base))
		})
	}
	for _, rst := range []uint32{gd32h7.RCU + rcu.APB1RST, gd32h7.RCU + rcu.APB2RST} {
		addr := rst
		c.OnStore(addr, func(old, v uint32) uint32 {
			c.onReset(addr, v&^old)
			return v
		})
	}
	return c
}

// SetLoopback makes every transmitted byte also arrive at the same block's
// receiver.
func (c *Chip) SetLoopback(on bool) {
	c.mu.Lock()
	c.loopback = on
	c.mu.Unlock()
}

// SetSink replaces the writer that receives transmitted bytes.
func (c *Chip) SetSink(w io.Writer) {
	c.mu.Lock()
	c.sink = w
	c.mu.Unlock()
}

// Output returns the bytes transmitted so far by the block at base.
func (c *Chip) Output(base uint32) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.tx[base]...)
}

// Inject queues bytes on the receive side of the block at base.
func (c *Chip) Inject(base uint32, p ...byte) {
	c.mu.Lock()
	c.rx[base] = append(c.rx[base], p...)
	c.mu.Unlock()
	c.setFlag(base, usart.FlagRBNE, true)
}

// onReset restores every block whose reset bit in register addr just rose.
func (c *Chip) onReset(addr, rising uint32) {
	for _, in := range gd32h7.Instances {
		p, _ := rcu.USARTPeriph(in.Base)
		if g, ok := rcu.GateOf(p); ok && g.Rst == addr && rising&g.Bit != 0 {
			c.resetUSART(in.Base)
		}
	}
}

func (c *Chip) resetUSART(base uint32) {
	for _, off := range []uint32{usart.CTL0, usart.CTL1, usart.CTL2, usart.BAUD, usart.TDATA} {
		c.Poke(base+off, 0)
	}
	c.Poke(base+usart.STAT, usart.StatReset)
	c.mu.Lock()
	delete(c.rx, base)
	c.mu.Unlock()
}

func (c *Chip) transmit(base uint32, b byte) {
	const on = usart.CTL0_UEN | usart.CTL0_TEN
	if c.Peek(base+usart.CTL0)&on != on {
		return
	}
	c.mu.Lock()
	c.tx[base] = append(c.tx[base], b)
	sink, loop := c.sink, c.loopback
	c.mu.Unlock()
	if sink != nil {
		_, _ = sink.Write([]byte{b})
	}
	if loop && c.Peek(base+usart.CTL0)&usart.CTL0_REN != 0 {
		c.Inject(base, b)
	}
}

func (c *Chip) receive(base uint32) byte {
	c.mu.Lock()
	q := c.rx[base]
	var b byte
	if len(q) > 0 {
		b, q = q[0], q[1:]
		c.rx[base] = q
	}
	empty := len(q) == 0
	c.mu.Unlock()
	if empty {
		c.setFlag(base, usart.FlagRBNE, false)
	}
	return b
}

func (c *Chip) setFlag(base uint32, f usart.Flag, on bool) {
	stat := c.Peek(base + usart.STAT)
	if on {
		stat |= uint32(f)
	} else {
		stat &^= uint32(f)
	}
	c.Poke(base+usart.STAT, stat)
}
