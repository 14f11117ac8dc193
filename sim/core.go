// Package sim models the exception behaviour of an ARMv7-M core in software.
//
// It executes the few operations that fault (branches, loads, stores and
// divisions), sets the fault status registers like the hardware does and
// takes the exception: frame stacking, EXC_RETURN, escalation to HardFault and
// lockup. The vector for all faults is fault.Trap, so the whole fault path
// except the entry stubs runs unmodified on the host.
//
// The core shares the register block returned by scb.Hardware with the fault
// package. Only one Core must be in use at a time.
package sim

import (
	"runtime"

	"github.com/clktmr/cortexm/fault"
	"github.com/clktmr/cortexm/scb"
)

type State int

const (
	Running State = iota
	Halted               // stopped by the fault handler
	Lockup               // fault while HardFault couldn't be taken
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Lockup:
		return "lockup"
	}
	return "invalid"
}

type Event int

const (
	EventEntry          Event = iota // exception entry, frame stacked
	EventFrame                       // exception frame read by the handler
	EventMaskInterrupts              // PRIMASK set
	EventMaskFaults                  // FAULTMASK set
	EventInterrupt                   // interrupt handler ran
	EventLockup
)

// EXC_RETURN values without floating point state
const (
	ReturnHandler   uint32 = 0xffff_fff1
	ReturnThreadMSP uint32 = 0xffff_fff9
	ReturnThreadPSP uint32 = 0xffff_fffd
)

const frameSize = 8 * 4

type Core struct {
	R    [13]uint32
	LR   uint32
	PC   uint32
	XPSR uint32

	// Vector is called on exception entry and must not return.
	Vector func(c *Core, class fault.Class)

	msp, psp  uint32
	spsel     bool
	primask   bool
	faultmask bool
	active    []fault.Class

	regs      *scb.Registers
	ram       []byte
	protected []span

	pending []func()
	events  []Event
	state   State
}

// New returns a core just out of reset.
func New() *Core {
	c := &Core{
		regs: scb.Hardware(),
		ram:  make([]byte, SRAMSize),
	}
	c.Reset()
	return c
}

// Reset puts the core and the fault related registers into their reset
// state, running in thread mode on the main stack at the top of SRAM.
func (c *Core) Reset() {
	c.R = [13]uint32{}
	c.LR = 0xffff_ffff
	c.PC = FlashBase + 0x200
	c.XPSR = 1 << 24 // Thumb
	c.Vector = func(c *Core, class fault.Class) { fault.Trap(c, class) }

	c.msp, c.psp = SRAMBase+SRAMSize, 0
	c.spsel, c.primask, c.faultmask = false, false, false
	c.active = c.active[:0]
	c.protected = c.protected[:0]
	c.pending = c.pending[:0]
	c.events = c.events[:0]
	c.state = Running
	clear(c.ram)

	c.regs.CCR.Store(0)
	c.regs.SHCSR.Store(0)
	c.regs.CFSR.Store(0)
	c.regs.HFSR.Store(0)
	c.regs.MMFAR.Store(0)
	c.regs.BFAR.Store(0)
}

// UseProcessStack switches thread mode to the process stack at sp, like an
// RTOS starting its first task.
func (c *Core) UseProcessStack(sp uint32) {
	c.psp = sp
	c.spsel = true
}

// Run executes fn on the core and returns the state of the core afterwards.
// If fn faults, Run returns once the fault handler stopped the core.
func (c *Core) Run(fn func()) State {
	done := make(chan struct{})
	go func() {
		defer close(done)
		returned := false
		defer func() {
			if !returned && c.state == Running {
				c.state = Halted
			}
		}()
		fn()
		returned = true
	}()
	<-done
	return c.state
}

func (c *Core) State() State { return c.state }

// Entries returns the number of exceptions taken since reset.
func (c *Core) Entries() (n int) {
	for _, ev := range c.events {
		if ev == EventEntry {
			n++
		}
	}
	return
}

// Events returns the exception related events since reset, oldest first.
func (c *Core) Events() []Event {
	return append([]Event(nil), c.events...)
}

// Pending returns the number of interrupts that were requested but couldn't
// preempt.
func (c *Core) Pending() int { return len(c.pending) }

func (c *Core) PRIMASK() bool   { return c.primask }
func (c *Core) FAULTMASK() bool { return c.faultmask }

// Interrupt requests a low priority interrupt. It preempts thread mode code
// if PRIMASK and FAULTMASK are clear. Otherwise it stays pending, which is
// forever once a fault was taken.
func (c *Core) Interrupt(handler func()) {
	if c.primask || c.faultmask || len(c.active) != 0 {
		c.pending = append(c.pending, handler)
		return
	}
	c.events = append(c.events, EventInterrupt)
	handler()
}

// Branch executes BLX to addr. There is no program, so whatever is found at
// addr doesn't decode.
func (c *Core) Branch(addr uint32) {
	c.R[0] = addr
	c.LR = c.PC + 4 | 1
	c.PC = addr &^ 1
	switch {
	case !executable(c.PC) || c.isProtected(c.PC):
		c.raise(fault.MemManageFault, scb.IAccViol, 0)
	case !c.mapped(c.PC, 2):
		c.raise(fault.BusFault, scb.IBusErr, 0)
	default:
		c.raise(fault.UsageFault, scb.UndefInstr, 0)
	}
}

// Load executes LDR R0, [R0] with R0 = addr.
func (c *Core) Load(addr uint32) uint32 {
	c.R[0] = addr
	c.access(addr, 4)
	c.R[0] = c.read32(addr)
	c.PC += 2
	return c.R[0]
}

// Store executes STR R1, [R0] with R0 = addr and R1 = v.
func (c *Core) Store(addr, v uint32) {
	c.R[0], c.R[1] = addr, v
	c.access(addr, 4)
	c.write32(addr, v)
	c.PC += 2
}

// Divide executes SDIV R0, R0, R1 with R0 = a and R1 = b. Without
// divide-by-zero trapping the result of a division by zero is zero.
func (c *Core) Divide(a, b int32) int32 {
	c.R[0], c.R[1] = uint32(a), uint32(b)
	if b == 0 {
		if c.regs.CCR.LoadBits(scb.Div0Trp) != 0 {
			c.raise(fault.UsageFault, scb.DivByZero, 0)
		}
		c.R[0] = 0
	} else {
		c.R[0] = uint32(a / b)
	}
	c.PC += 4
	return int32(c.R[0])
}

func (c *Core) access(addr, n uint32) {
	switch {
	case addr%n != 0 && c.regs.CCR.LoadBits(scb.UnalignTrp) != 0:
		c.raise(fault.UsageFault, scb.Unaligned, 0)
	case c.isProtected(addr):
		c.raise(fault.MemManageFault, scb.DAccViol|scb.MMARValid, addr)
	case !c.mapped(addr, n):
		c.raise(fault.BusFault, scb.PrecisErr|scb.BFARValid, addr)
	}
}

var enable = [...]scb.SHCSR{
	fault.MemManageFault: scb.MemFaultEna,
	fault.BusFault:       scb.BusFaultEna,
	fault.UsageFault:     scb.UsgFaultEna,
}

// raise latches the status of a fault and takes the exception. All
// configurable faults have the default priority 0, so they can't preempt each
// other and are escalated if raised by a fault handler.
func (c *Core) raise(class fault.Class, status scb.CFSR, addr uint32) {
	inHardFault := len(c.active) != 0 && c.active[len(c.active)-1] == fault.HardFault
	if c.faultmask || inHardFault {
		c.lockup()
	}

	taken := class
	if class != fault.HardFault {
		if c.regs.SHCSR.LoadBits(enable[class]) == 0 || c.primask || len(c.active) != 0 {
			taken = fault.HardFault
		}
	}

	c.regs.CFSR.SetBits(status)
	if status&scb.MMARValid != 0 {
		c.regs.MMFAR.Store(addr)
	}
	if status&scb.BFARValid != 0 {
		c.regs.BFAR.Store(addr)
	}
	if taken != class {
		c.regs.HFSR.SetBits(scb.Forced)
	}
	c.enter(taken)
}

func (c *Core) enter(class fault.Class) {
	sp, excReturn := &c.msp, ReturnHandler
	if len(c.active) == 0 {
		excReturn = ReturnThreadMSP
		if c.spsel {
			sp, excReturn = &c.psp, ReturnThreadPSP
		}
	}
	*sp -= frameSize
	if !(span{SRAMBase, SRAMSize}).contains(*sp, frameSize) {
		panic("sim: stack outside SRAM")
	}
	words := [8]uint32{c.R[0], c.R[1], c.R[2], c.R[3], c.R[12], c.LR, c.PC, c.XPSR}
	for i, w := range words {
		c.write32(*sp+uint32(4*i), w)
	}

	c.active = append(c.active, class)
	c.LR = excReturn
	c.events = append(c.events, EventEntry)
	c.Vector(c, class)
	panic("sim: fault handler returned")
}

func (c *Core) lockup() {
	c.state = Lockup
	c.events = append(c.events, EventLockup)
	runtime.Goexit()
}

// The fault.Core interface, used by fault.Trap.

func (c *Core) ExcReturn() uint32 { return c.LR }
func (c *Core) MSP() uint32       { return c.msp }
func (c *Core) PSP() uint32       { return c.psp }

func (c *Core) Frame(sp uint32) *fault.Frame {
	c.events = append(c.events, EventFrame)
	return &fault.Frame{
		R0: c.read32(sp), R1: c.read32(sp + 4), R2: c.read32(sp + 8), R3: c.read32(sp + 12),
		R12: c.read32(sp + 16), LR: c.read32(sp + 20), PC: c.read32(sp + 24), PSR: c.read32(sp + 28),
	}
}

func (c *Core) MaskInterrupts() {
	c.primask = true
	c.events = append(c.events, EventMaskInterrupts)
}

func (c *Core) MaskFaults() {
	c.faultmask = true
	c.events = append(c.events, EventMaskFaults)
}
