package debug

const (
	DHCSRAddr uintptr = 0xe000_edf0 // Debug Halting Control and Status Register
	DEMCRAddr uintptr = 0xe000_edfc // Debug Exception and Monitor Control Register
)

const (
	cDebugEn = 1 << 0  // halting debug enabled by the debugger
	sHalt    = 1 << 17 // core halted

	trcEna = 1 << 24 // DWT and ITM enabled
)

// Attached reports whether a debugger enabled halting debug. Without one, a
// BKPT instruction escalates to HardFault and nobody configured the ITM.
//
//go:nosplit
func Attached() bool {
	return dhcsr.Load()&cDebugEn != 0
}

// Halted reports whether the core is halted in debug state. It's only useful
// to a debugger or a simulated core.
//
//go:nosplit
func Halted() bool {
	return dhcsr.Load()&sHalt != 0
}

// EnableTrace powers the DWT and ITM units, which a debugger usually does
// when it attaches.
func EnableTrace() {
	demcr.SetBits(trcEna)
}
