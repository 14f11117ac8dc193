package fault

// Invalid is reported in place of a register that doesn't apply to the fault
// class, or of a fault address the hardware didn't latch.
const Invalid = 0xdeadd0d0

// Frame is the exception frame pushed by the core on exception entry, in
// stacking order. It lives on the stack of the faulting context and must not
// be modified.
type Frame struct {
	R0, R1, R2, R3 uint32
	R12            uint32
	LR             uint32 // return address of the faulting context
	PC             uint32 // faulting instruction, for precise faults
	PSR            uint32
}
