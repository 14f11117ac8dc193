package fault

import "github.com/clktmr/cortexm/scb"

type rule struct {
	mask   scb.CFSR
	reason Reason
}

// Per class decoding rules, in order of priority. The first rule whose mask
// intersects CFSR gives the reason.
var rules = [classLast][]rule{
	UsageFault: {
		{scb.DivByZero, DivideByZero},
		{scb.Unaligned, MisalignedAccess},
		{scb.UndefInstr, UndefinedInstruction},
	},
	BusFault: {
		{scb.IBusErr, InstructionBusError},
		{scb.PrecisErr | scb.ImprecisErr, DataBusError},
		{scb.StkErr | scb.UnstkErr, StackingError},
		{scb.LspErr, FloatingPointLazyStateError},
	},
	MemManageFault: {
		{scb.IAccViol, InstructionAddressViolation},
		{scb.DAccViol, DataAddressViolation},
		{scb.MStkErr | scb.MUnstkErr, StackingError},
		{scb.MLspErr, FloatingPointLazyStateError},
	},
	HardFault: nil, // HFSR doesn't tell more than the escalated CFSR bits
}

// Decode returns the reason for a fault of class c given the content of the
// configurable fault status register.
//
//go:nosplit
func Decode(c Class, cfsr scb.CFSR) Reason {
	if c >= classLast {
		return Unresolved
	}
	for _, r := range rules[c] {
		if cfsr&r.mask != 0 {
			return r.reason
		}
	}
	return Unresolved
}

// Capture reads the fault status of the core from r and returns the report
// for a fault of class c with exception frame f.
//
//go:nosplit
func Capture(r *scb.Registers, c Class, f *Frame) Report {
	cfsr := r.CFSR.Load()
	rep := Report{
		Class:  c,
		Reason: Decode(c, cfsr),
		Frame:  *f,
		HFSR:   Invalid,
		CFSR:   uint32(cfsr),
		Addr:   Invalid,
	}
	switch c {
	case HardFault:
		rep.HFSR = uint32(r.HFSR.Load())
	case BusFault:
		if cfsr&scb.BFARValid != 0 {
			rep.Addr = r.BFAR.Load()
		}
	case MemManageFault:
		if cfsr&scb.MMARValid != 0 {
			rep.Addr = r.MMFAR.Load()
		}
	}
	return rep
}
