//go:build !thumb

package debug

import "github.com/clktmr/cortexm/reg"

var (
	dhcsr = new(reg.U32)
	demcr = new(reg.U32)
)

// Attach simulates a debugger that enables halting debug.
func Attach() {
	dhcsr.SetBits(cDebugEn)
}

// Detach simulates unplugging the debugger.
func Detach() {
	dhcsr.ClearBits(cDebugEn | sHalt)
}
