package scb

import (
	"math/bits"
	"strconv"
)

// Configuration and Control Register
type CCR uint32

const (
	UnalignTrp CCR = 1 << 3 // trap unaligned halfword and word accesses
	Div0Trp    CCR = 1 << 4 // trap SDIV and UDIV with a divisor of zero
)

// System Handler Control and State Register
type SHCSR uint32

const (
	MemFaultEna SHCSR = 1 << 16 // take MemManage instead of escalating it
	BusFaultEna SHCSR = 1 << 17 // take BusFault instead of escalating it
	UsgFaultEna SHCSR = 1 << 18 // take UsageFault instead of escalating it
)

// Configurable Fault Status Register. It's the concatenation of the MemManage
// (MMFSR), BusFault (BFSR) and UsageFault (UFSR) status registers. All bits
// are sticky until written with one.
type CFSR uint32

// MemManage status
const (
	IAccViol  CFSR = 1 << 0 // instruction fetch from a no-execute or protected region
	DAccViol  CFSR = 1 << 1 // data access to a protected region
	MUnstkErr CFSR = 1 << 3 // unstacking on exception return
	MStkErr   CFSR = 1 << 4 // stacking on exception entry
	MLspErr   CFSR = 1 << 5 // floating point lazy state preservation
	MMARValid CFSR = 1 << 7 // MMFAR holds the faulting address
)

// BusFault status
const (
	IBusErr     CFSR = 1 << 8  // instruction prefetch
	PrecisErr   CFSR = 1 << 9  // precise data access, stacked PC is the faulting instruction
	ImprecisErr CFSR = 1 << 10 // imprecise data access
	UnstkErr    CFSR = 1 << 11 // unstacking on exception return
	StkErr      CFSR = 1 << 12 // stacking on exception entry
	LspErr      CFSR = 1 << 13 // floating point lazy state preservation
	BFARValid   CFSR = 1 << 15 // BFAR holds the faulting address
)

// UsageFault status
const (
	UndefInstr CFSR = 1 << 16 // undefined instruction
	InvState   CFSR = 1 << 17 // invalid EPSR state, e.g. Thumb bit clear
	InvPC      CFSR = 1 << 18 // invalid EXC_RETURN on exception return
	NoCP       CFSR = 1 << 19 // coprocessor absent or disabled
	Unaligned  CFSR = 1 << 24 // unaligned access with UnalignTrp set
	DivByZero  CFSR = 1 << 25 // division by zero with Div0Trp set
)

const (
	MMFSRMask CFSR = 0x0000_00ff
	BFSRMask  CFSR = 0x0000_ff00
	UFSRMask  CFSR = 0xffff_0000
)

// HardFault Status Register
type HFSR uint32

const (
	VectTbl  HFSR = 1 << 1  // bus fault on vector table read
	Forced   HFSR = 1 << 30 // escalated from a configurable fault
	DebugEvt HFSR = 1 << 31 // debug event while halting debug is disabled
)

var cfsrNames = [32]string{
	0: "IACCVIOL", 1: "DACCVIOL", 3: "MUNSTKERR", 4: "MSTKERR", 5: "MLSPERR",
	7: "MMARVALID", 8: "IBUSERR", 9: "PRECISERR", 10: "IMPRECISERR",
	11: "UNSTKERR", 12: "STKERR", 13: "LSPERR", 15: "BFARVALID",
	16: "UNDEFINSTR", 17: "INVSTATE", 18: "INVPC", 19: "NOCP",
	24: "UNALIGNED", 25: "DIVBYZERO",
}

var hfsrNames = [32]string{1: "VECTTBL", 30: "FORCED", 31: "DEBUGEVT"}

var ccrNames = [32]string{3: "UNALIGN_TRP", 4: "DIV_0_TRP"}

var shcsrNames = [32]string{16: "MEMFAULTENA", 17: "BUSFAULTENA", 18: "USGFAULTENA"}

// Names returns the mnemonics of all bits set in f. Reserved bits are
// reported as "bit<n>".
func (f CFSR) Names() []string { return names(uint32(f), &cfsrNames) }

func (f HFSR) Names() []string { return names(uint32(f), &hfsrNames) }

func (f CCR) Names() []string { return names(uint32(f), &ccrNames) }

func (f SHCSR) Names() []string { return names(uint32(f), &shcsrNames) }

func names(v uint32, table *[32]string) []string {
	var s []string
	for v != 0 {
		i := bits.TrailingZeros32(v)
		v &^= 1 << i
		if table[i] != "" {
			s = append(s, table[i])
		} else {
			s = append(s, "bit"+strconv.Itoa(i))
		}
	}
	return s
}
