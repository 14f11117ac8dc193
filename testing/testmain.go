//go:build thumb

// Package testing provides utilities for writing Cortex-M specific tests.
package testing

import (
	"embedded/rtos"
	"os"
	"syscall"
	"testing"

	"github.com/clktmr/cortexm/debug"
	"github.com/clktmr/cortexm/fault"
	"github.com/clktmr/cortexm/itm"
	"github.com/clktmr/cortexm/machine"

	"github.com/embeddedgo/fs/termfs"
)

// TestMain should be used as TestMain for on-target tests. Output of the
// tests and of faults goes to the ITM, a fault during a test halts the core
// with its report printed.
func TestMain(m *testing.M) {
	var err error

	// Without a debugger nobody set up the ITM, but SWO may still be
	// captured with a serial adapter.
	if !debug.Attached() {
		debug.EnableTrace()
		itm.Hardware().Enable(1 << machine.Port)
	}
	console := itm.Hardware().Port(machine.Port)

	fs := termfs.NewLight("termfs", nil, console)
	rtos.Mount(fs, "/dev/console")
	os.Stdout, err = os.OpenFile("/dev/console", syscall.O_WRONLY, 0)
	if err != nil {
		panic(err)
	}
	os.Stderr = os.Stdout

	fault.SetOutput(console)
	fault.Init()

	// TODO find a way to pass these from the 'go test' command
	os.Args = append(os.Args, "-test.v")
	os.Args = append(os.Args, "-test.short")

	os.Exit(m.Run())
}
