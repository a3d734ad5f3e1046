package mmio

import (
	"sync"

	"gd32h7-usart/x/conv"
)

// Access is one recorded store.
type Access struct {
	Addr uint32
	Old  uint32
	Val  uint32
}

func (a Access) String() string {
	return "W " + conv.Addr(a.Addr) + " " + conv.Addr(a.Old) + " -> " + conv.Addr(a.Val)
}

// LoadHook may rewrite the value returned for a load.
type LoadHook func(cur uint32) uint32

// StoreHook sees the previous and requested value and returns what is kept.
type StoreHook func(old, val uint32) uint32

// Sim is a sparse register file. Unwritten addresses read as zero.
// Hooks run without the lock held, so they may call Peek and Poke.
// Every Store is appended to the trace; Loads are not (busy-waits would
// flood it).
type Sim struct {
	mu     sync.Mutex
	mem    map[uint32]uint32
	onLoad map[uint32]LoadHook
	onStor map[uint32]StoreHook
	trace  []Access
}

func NewSim() *Sim {
	return &Sim{
		mem:    make(map[uint32]uint32),
		onLoad: make(map[uint32]LoadHook),
		onStor: make(map[uint32]StoreHook),
	}
}

var _ Bus = (*Sim)(nil)

func (s *Sim) Load(addr uint32) uint32 {
	s.mu.Lock()
	v, h := s.mem[addr], s.onLoad[addr]
	s.mu.Unlock()
	if h != nil {
		v = h(v)
	}
	return v
}

func (s *Sim) Store(addr, val uint32) {
	s.mu.Lock()
	old, h := s.mem[addr], s.onStor[addr]
	s.mu.Unlock()
	if h != nil {
		val = h(old, val)
	}
	s.mu.Lock()
	s.mem[addr] = val
	s.trace = append(s.trace, Access{Addr: addr, Old: old, Val: val})
	s.mu.Unlock()
}

// Peek reads without hooks.
func (s *Sim) Peek(addr uint32) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem[addr]
}

// Poke writes without hooks or tracing (hardware-side updates).
func (s *Sim) Poke(addr, val uint32) {
	s.mu.Lock()
	s.mem[addr] = val
	s.mu.Unlock()
}

// OnLoad installs (or with nil, removes) the load hook for addr.
func (s *Sim) OnLoad(addr uint32, h LoadHook) {
	s.mu.Lock()
	if h == nil {
		delete(s.onLoad, addr)
	} else {
		s.onLoad[addr] = h
	}
	s.mu.Unlock()
}

// OnStore installs (or with nil, removes) the store hook for addr.
func (s *Sim) OnStore(addr uint32, h StoreHook) {
	s.mu.Lock()
	if h == nil {
		delete(s.onStor, addr)
	} else {
		s.onStor[addr] = h
	}
	s.mu.Unlock()
}

// Trace returns a copy of the stores recorded since the last ResetTrace.
func (s *Sim) Trace() []Access {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Access(nil), s.trace...)
}

func (s *Sim) ResetTrace() {
	s.mu.Lock()
	s.trace = s.trace[:0]
	s.mu.Unlock()
}
