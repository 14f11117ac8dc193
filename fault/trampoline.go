package fault

// EXC_RETURN bit selecting the process stack. It's clear if the exception
// frame was pushed to the main stack.
const excReturnPSP = 1 << 2

// SelectStack returns the stack pointer holding the exception frame, given
// the EXC_RETURN value the core loaded into LR on exception entry.
//
//go:nosplit
func SelectStack(excReturn, msp, psp uint32) uint32 {
	if excReturn&excReturnPSP != 0 {
		return psp
	}
	return msp
}

// Core is the state of a core on exception entry, as seen by the trampoline.
// On the target the entry stubs read it directly from the core. Software
// models of the core use Trap instead.
type Core interface {
	ExcReturn() uint32
	MSP() uint32
	PSP() uint32

	// Frame returns the exception frame stored at sp.
	Frame(sp uint32) *Frame

	// MaskInterrupts sets PRIMASK, MaskFaults sets FAULTMASK.
	MaskInterrupts()
	MaskFaults()
}

// Trap does for c what the entry stubs do for the real core: find the frame,
// mask interrupts and faults, in this order, then dispatch a fault of class
// class. It doesn't return.
func Trap(c Core, class Class) {
	sp := SelectStack(c.ExcReturn(), c.MSP(), c.PSP())
	f := c.Frame(sp)
	c.MaskInterrupts()
	c.MaskFaults()
	dispatch(f, class)
}
