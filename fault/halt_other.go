//go:build !thumb

package fault

import (
	"runtime"
	"sync/atomic"
)

// Number of BKPT instructions the target would have executed.
var breakpoints atomic.Int32

func breakpoint() {
	breakpoints.Add(1)
}

// halt stops the calling goroutine for good. Without a core to stop, the
// goroutine that faulted is the closest thing to it.
func halt() {
	breakpoint()
	runtime.Goexit()
}
