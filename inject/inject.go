// Package inject deliberately raises each kind of fault, to validate the fault
// handlers. None of the functions return if the fault handlers are installed.
package inject

// Addresses used by the injectors.
const (
	NullAddr    uint32 = 0x0000_0000 // code address outside any program
	NoExecAddr  uint32 = 0xffff_ffff // system region, never executable
	BadDataAddr uint32 = 0xcccc_cccc // external device region, nothing mapped
)
