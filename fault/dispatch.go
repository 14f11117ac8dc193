package fault

import (
	"io"

	"github.com/clktmr/cortexm/scb"
)

var (
	regs = scb.Hardware()

	// Written once per boot by the dispatcher. Inspect it with a debugger
	// after the core halted.
	last Report

	sink lineWriter
)

// SetOutput sets the writer the dispatcher prints fault reports to. It must
// be callable with interrupts and faults masked and must not allocate. Set it
// to nil to halt silently.
func SetOutput(w io.Writer) {
	sink = lineWriter{w: w}
}

// LastReport returns the report of the fault the dispatcher handled, if any.
func LastReport() Report {
	return last
}

//go:nosplit
func dispatch(f *Frame, c Class) {
	last = Capture(regs, c, f)
	if sink.w != nil {
		// A previous report may have been cut short by a failed Write or a
		// lockup inside of it.
		sink.reset()
		last.write(&sink)
	}
	halt()
}
