package fault

import (
	"github.com/clktmr/cortexm/debug"
	"github.com/clktmr/cortexm/scb"
)

// Traps selects the conditions that raise a fault and the faults that are
// taken by their own handler instead of being escalated to HardFault.
type Traps uint32

const (
	TrapDivideByZero Traps = 1 << iota // UsageFault on SDIV/UDIV by zero
	TrapUnaligned                      // UsageFault on unaligned LDR/STR
	ReportMemManage
	ReportBus
	ReportUsage

	trapsLast
)

// Init configures the core with DefaultTraps. It must be called once during
// startup, before any code that could fault.
func Init() {
	Configure(scb.Hardware(), DefaultTraps)
}

// Configure enables the traps t in r. It only ever sets bits, so calling it
// again or with a subset of the traps has no effect. Traps are never
// disabled.
func Configure(r *scb.Registers, t Traps) {
	debug.Assert(t < trapsLast, "fault: unknown traps")

	var ccr scb.CCR
	if t&TrapDivideByZero != 0 {
		ccr |= scb.Div0Trp
	}
	if t&TrapUnaligned != 0 {
		ccr |= scb.UnalignTrp
	}
	if ccr != 0 {
		r.CCR.SetBits(ccr)
	}

	var shcsr scb.SHCSR
	if t&ReportMemManage != 0 {
		shcsr |= scb.MemFaultEna
	}
	if t&ReportBus != 0 {
		shcsr |= scb.BusFaultEna
	}
	if t&ReportUsage != 0 {
		shcsr |= scb.UsgFaultEna
	}
	if shcsr != 0 {
		r.SHCSR.SetBits(shcsr)
	}
}
