// Package boardfile reads UART tables for host tools, either from a YAML
// board file or from one-line descriptors such as "uart2 USART1 PA2 PA3".
package boardfile

import (
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
	"gopkg.in/yaml.v3"

	"gd32h7-usart/board"
	"gd32h7-usart/drivers/gd32h7"
	"gd32h7-usart/drivers/gd32h7/gpio"
	"gd32h7-usart/errcode"
	"gd32h7-usart/x/strconvx"
)

// File is the on-disk layout:
//
//	uarts:
//	  - name: uart2
//	    instance: USART1
//	    tx: PA2
//	    rx: PA3
type File struct {
	UARTs []Entry `yaml:"uarts"`
}

// Entry is one table row. Instance is a block name (USART0..UART4) or a base
// address; IRQ defaults to the instance's line when zero.
type Entry struct {
	Name     string `yaml:"name"`
	Instance string `yaml:"instance"`
	IRQ      int    `yaml:"irq,omitempty"`
	TX       string `yaml:"tx"`
	RX       string `yaml:"rx"`
}

// Load decodes a board file and resolves it into a table.
func Load(r io.Reader) (board.Table, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, errcode.Wrap(errcode.Unconfigured, "boardfile", "empty file", nil)
		}
		return nil, errcode.Wrap(errcode.InvalidPayload, "boardfile", "decode", err)
	}
	return f.Table()
}

// LoadFile is Load on a path.
func LoadFile(path string) (board.Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Load(fh)
}

// Table resolves every entry, stopping at the first bad one.
func (f File) Table() (board.Table, error) {
	t := make(board.Table, 0, len(f.UARTs))
	for i, e := range f.UARTs {
		u, err := e.Resolve()
		if err != nil {
			return nil, errcode.Wrap(errcode.Of(err), "boardfile", "entry "+strconvx.Itoa(i), err)
		}
		t = append(t, u)
	}
	return t, nil
}

// Resolve checks the entry and turns it into a descriptor.
func (e Entry) Resolve() (board.UART, error) {
	in, err := instance(e.Instance)
	if err != nil {
		return board.UART{}, err
	}
	u := board.UART{Name: e.Name, Periph: in.Base, IRQ: in.IRQ, TX: e.TX, RX: e.RX}
	if e.IRQ != 0 {
		u.IRQ = gd32h7.IRQn(e.IRQ)
	}
	if _, ok := u.Number(); !ok {
		return board.UART{}, errcode.Wrap(errcode.InvalidParams, "name", e.Name, nil)
	}
	for _, pin := range []string{u.TX, u.RX} {
		if _, err := gpio.Parse(pin); err != nil {
			return board.UART{}, errcode.Wrap(errcode.UnknownPin, "pin", pin, err)
		}
	}
	return u, nil
}

func instance(s string) (gd32h7.Instance, error) {
	if in, ok := gd32h7.LookupInstance(strings.ToUpper(s)); ok {
		return in, nil
	}
	v, err := strconvx.ParseUint(s, 0, 32)
	if err != nil {
		return gd32h7.Instance{}, errcode.Wrap(errcode.InvalidPayload, "instance", s, err)
	}
	in, ok := gd32h7.InstanceAt(uint32(v))
	if !ok {
		// Unknown bases are kept so bring-up can report them as unsupported.
		return gd32h7.Instance{Name: s, Base: uint32(v)}, nil
	}
	return in, nil
}

// ParseSpec parses "name instance tx rx [irq]". Fields are split with shell
// rules, so quoting and trailing "# comments" are accepted.
func ParseSpec(line string) (board.UART, error) {
	f, err := shlex.Split(line)
	if err != nil {
		return board.UART{}, errcode.Wrap(errcode.InvalidPayload, "descriptor", line, err)
	}
	if len(f) != 4 && len(f) != 5 {
		return board.UART{}, errcode.Wrap(errcode.InvalidPayload, "descriptor", "want name instance tx rx [irq]", nil)
	}
	e := Entry{Name: f[0], Instance: f[1], TX: f[2], RX: f[3]}
	if len(f) == 5 {
		irq, err := strconvx.Atoi(f[4])
		if err != nil || irq <= 0 {
			return board.UART{}, errcode.Wrap(errcode.InvalidPayload, "irq", f[4], err)
		}
		e.IRQ = irq
	}
	return e.Resolve()
}

// ParseSpecs parses several descriptors into one table.
func ParseSpecs(lines []string) (board.Table, error) {
	t := make(board.Table, 0, len(lines))
	for _, l := range lines {
		u, err := ParseSpec(l)
		if err != nil {
			return nil, err
		}
		t = append(t, u)
	}
	return t, nil
}

// Dump writes t in the board file layout.
func Dump(w io.Writer, t board.Table) error {
	f := File{UARTs: make([]Entry, 0, len(t))}
	for _, u := range t {
		e := Entry{Name: u.Name, Instance: "0x" + strconvx.FormatUint(uint64(u.Periph), 16), IRQ: int(u.IRQ), TX: u.TX, RX: u.RX}
		if in, ok := gd32h7.InstanceAt(u.Periph); ok {
			e.Instance = in.Name
			if in.IRQ == u.IRQ {
				e.IRQ = 0
			}
		}
		f.UARTs = append(f.UARTs, e)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}
