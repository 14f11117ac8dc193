// Package itm writes to the stimulus ports of the Instrumentation Trace
// Macrocell. The output reaches an attached debug probe through SWO, without
// any peripheral or interrupt involved, which makes it usable from fault
// handlers.
//
// Usually the debugger enables ITM and the ports it is interested in. Output
// to a disabled port is dropped.
package itm

import (
	"unsafe"

	"github.com/clktmr/cortexm/reg"
)

const BaseAddr uintptr = 0xe000_0000

// Trace Control Register
type TCR uint32

const (
	ITMEna  TCR = 1 << 0
	TSEna   TCR = 1 << 1 // local timestamps
	SyncEna TCR = 1 << 2
	TXEna   TCR = 1 << 3 // forward DWT packets
	Busy    TCR = 1 << 23
)

const unlockKey = 0xc5acce55

type Registers struct {
	stim [256]reg.U32 // read as 1 if the port's FIFO can accept data
	_    [640]uint32
	ter  [8]reg.U32
	_    [8]uint32
	tpr  reg.U32
	_    [15]uint32
	tcr  reg.R32[TCR]
	_    [75]uint32
	lar  reg.U32
}

// Enable unlocks the ITM, enables it and the stimulus ports set in mask. It's
// only needed if the debugger doesn't configure the ITM itself.
func (r *Registers) Enable(mask uint32) {
	r.lar.Store(unlockKey)
	r.tcr.SetBits(ITMEna)
	r.ter[0].SetBits(mask)
}

// Port returns stimulus port n, with n < 256.
func (r *Registers) Port(n int) *Port {
	stim := &r.stim[n]
	return &Port{
		regs:   r,
		n:      n,
		status: stim,
		data:   (*reg.U8)(unsafe.Pointer(stim)),
	}
}

// Port is an io.Writer writing bytes to a stimulus port.
type Port struct {
	regs *Registers
	n    int

	// Both at the address of the stimulus port. Reads return the FIFO
	// status, byte writes push a one byte packet.
	status *reg.U32
	data   *reg.U8
}

func (p *Port) enabled() bool {
	r := p.regs
	return r.tcr.LoadBits(ITMEna) != 0 && r.ter[p.n/32].LoadBits(1<<(p.n%32)) != 0
}

// Write blocks until all bytes are accepted by the port's FIFO. It neither
// allocates nor depends on interrupts.
//
//go:nosplit
func (p *Port) Write(b []byte) (int, error) {
	if !p.enabled() {
		return len(b), nil
	}
	for _, c := range b {
		for p.status.Load()&1 == 0 {
			// wait
		}
		p.data.Store(c)
	}
	return len(b), nil
}
