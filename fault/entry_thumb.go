//go:build thumb

package fault

import "unsafe"

// Published by the trampoline, after which the core runs with faults masked
// until it halts.
var (
	trapFrame uint32
	trapClass Class
)

// trapped is where the trampoline branches to. It runs on the main stack,
// below the exception frame if that was pushed to the main stack too.
//
//go:nosplit
func trapped() {
	dispatch((*Frame)(unsafe.Pointer(uintptr(trapFrame))), trapClass)
}

// breakpoint executes BKPT, which halts the core if a debugger is attached.
func breakpoint()

// halt executes BKPT, which stops the core in the debugger. Without one the
// BKPT escalates into a lockup. If the debugger resumes the core, it's stopped
// again.
//
//go:nosplit
func halt() {
	for {
		breakpoint()
	}
}
