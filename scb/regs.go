package scb

import "github.com/clktmr/cortexm/reg"

const BaseAddr uintptr = 0xe000_ed00

// Registers is the layout of the System Control Block starting at BaseAddr.
type Registers struct {
	CPUID reg.U32
	ICSR  reg.U32
	VTOR  reg.U32
	AIRCR reg.U32
	SCR   reg.U32
	CCR   reg.R32[CCR]
	SHPR  [3]reg.U32
	SHCSR reg.R32[SHCSR]
	CFSR  reg.R32[CFSR]
	HFSR  reg.R32[HFSR]
	DFSR  reg.U32
	MMFAR reg.U32 // valid if CFSR has MMARValid
	BFAR  reg.U32 // valid if CFSR has BFARValid
	AFSR  reg.U32
}

// New returns a zeroed register block that isn't backed by hardware. It's
// useful to exercise code that configures or decodes the block.
func New() *Registers {
	return new(Registers)
}
