package sim_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clktmr/cortexm/fault"
	"github.com/clktmr/cortexm/inject"
	"github.com/clktmr/cortexm/scb"
	"github.com/clktmr/cortexm/sim"
)

func newCore(t *testing.T, traps fault.Traps) *sim.Core {
	t.Helper()
	c := sim.New()
	fault.Configure(scb.Hardware(), traps)
	inject.SetTarget(c)
	fault.SetOutput(nil)
	t.Cleanup(func() { fault.SetOutput(nil) })
	return c
}

func TestInjectors(t *testing.T) {
	tests := map[string]struct {
		fn     func()
		class  fault.Class
		reason fault.Reason
		addr   uint32
	}{
		// With UsageFault enabled, executing at address zero is reported as
		// the more specific undefined instruction.
		"hard":      {inject.HardFault, fault.UsageFault, fault.UndefinedInstruction, fault.Invalid},
		"memmanage": {inject.MemManageFault, fault.MemManageFault, fault.InstructionAddressViolation, fault.Invalid},
		"bus":       {inject.BusFault, fault.BusFault, fault.DataBusError, inject.BadDataAddr},
		"usage":     {func() { inject.UsageFault() }, fault.UsageFault, fault.DivideByZero, fault.Invalid},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := newCore(t, fault.DefaultTraps)

			require.Equal(t, sim.Halted, c.Run(tc.fn))
			require.Equal(t, 1, c.Entries())

			rep := fault.LastReport()
			require.Equal(t, tc.class, rep.Class)
			require.Equal(t, tc.reason, rep.Reason)
			require.Equal(t, tc.addr, rep.Addr)
			require.Equal(t, uint32(fault.Invalid), rep.HFSR)
		})
	}
}

func TestHardFaultEscalation(t *testing.T) {
	c := newCore(t, fault.TrapDivideByZero)

	require.Equal(t, sim.Halted, c.Run(inject.HardFault))
	rep := fault.LastReport()
	require.Equal(t, fault.HardFault, rep.Class)
	require.Equal(t, fault.Unresolved, rep.Reason)
	require.Equal(t, uint32(scb.Forced), rep.HFSR)
	require.Equal(t, uint32(scb.UndefInstr), rep.CFSR)
	require.Equal(t, uint32(fault.Invalid), rep.Addr)
}

func TestEscalationEachClass(t *testing.T) {
	injectors := map[string]func(){
		"memmanage": inject.MemManageFault,
		"bus":       inject.BusFault,
		"usage":     func() { inject.UsageFault() },
	}
	for name, fn := range injectors {
		t.Run(name, func(t *testing.T) {
			c := newCore(t, fault.TrapDivideByZero)
			require.Equal(t, sim.Halted, c.Run(fn))
			require.Equal(t, 1, c.Entries())

			rep := fault.LastReport()
			require.Equal(t, fault.HardFault, rep.Class)
			require.Equal(t, uint32(scb.Forced), rep.HFSR)
		})
	}
}

func TestUsageFaultReport(t *testing.T) {
	c := newCore(t, fault.DefaultTraps)
	var out bytes.Buffer
	fault.SetOutput(&out)
	c.PC = 0x0800_1234

	require.Equal(t, sim.Halted, c.Run(func() { inject.UsageFault() }))

	rep, err := fault.ParseReport(&out)
	require.NoError(t, err)
	require.Equal(t, fault.LastReport(), rep)
	require.Equal(t, "Division by zero", rep.Reason.String())
	require.Equal(t, uint32(1), rep.Frame.R0)
	require.Equal(t, uint32(0), rep.Frame.R1)
	require.Equal(t, uint32(0x0800_1234), rep.Frame.PC)
	require.Equal(t, uint32(1<<24), rep.Frame.PSR)
}

func TestDivideWithoutTrap(t *testing.T) {
	c := newCore(t, fault.ReportUsage)
	var result int
	require.Equal(t, sim.Running, c.Run(func() { result = inject.UsageFault() }))
	require.Equal(t, 0, result)
	require.Equal(t, 0, c.Entries())
}

func TestBusFaultAddress(t *testing.T) {
	c := newCore(t, fault.DefaultTraps)
	require.Equal(t, sim.Halted, c.Run(inject.BusFault))

	rep := fault.LastReport()
	require.Equal(t, uint32(inject.BadDataAddr), rep.Addr)
	require.Equal(t, uint32(inject.BadDataAddr), rep.Frame.R0)
	require.NotZero(t, rep.CFSR&uint32(scb.BFARValid))
}

func TestMemManageDataAccess(t *testing.T) {
	c := newCore(t, fault.DefaultTraps)
	c.Protect(0x2000_0000, 0x100)

	require.Equal(t, sim.Halted, c.Run(func() { c.Store(0x2000_0040, 0x1234) }))
	rep := fault.LastReport()
	require.Equal(t, fault.MemManageFault, rep.Class)
	require.Equal(t, fault.DataAddressViolation, rep.Reason)
	require.Equal(t, uint32(0x2000_0040), rep.Addr)
	require.Equal(t, uint32(0x1234), rep.Frame.R1)
}

func TestUnaligned(t *testing.T) {
	c := newCore(t, fault.TrapDivideByZero|fault.ReportUsage)
	require.Equal(t, sim.Running, c.Run(func() { c.Load(0x2000_0002) }))

	fault.Configure(scb.Hardware(), fault.TrapUnaligned)
	require.Equal(t, sim.Halted, c.Run(func() { c.Load(0x2000_0002) }))
	require.Equal(t, fault.MisalignedAccess, fault.LastReport().Reason)
}

func TestProcessStack(t *testing.T) {
	const psp = 0x2000_8000
	c := newCore(t, fault.DefaultTraps)
	c.UseProcessStack(psp)
	c.R[12] = 0xc0ffee
	c.PC = 0x0800_0400

	require.Equal(t, sim.Halted, c.Run(inject.BusFault))
	require.Equal(t, sim.ReturnThreadPSP, c.LR)
	require.Equal(t, uint32(psp-32), c.PSP())
	require.Equal(t, sim.SRAMBase+sim.SRAMSize, c.MSP())

	rep := fault.LastReport()
	require.Equal(t, uint32(0xc0ffee), rep.Frame.R12)
	require.Equal(t, uint32(0x0800_0400), rep.Frame.PC)
}

func TestMainStack(t *testing.T) {
	c := newCore(t, fault.DefaultTraps)
	c.UseProcessStack(0x2000_8000)
	c.Reset() // back to the main stack
	fault.Configure(scb.Hardware(), fault.DefaultTraps)
	c.R[3] = 0x33

	require.Equal(t, sim.Halted, c.Run(inject.MemManageFault))
	require.Equal(t, sim.ReturnThreadMSP, c.LR)
	require.Equal(t, uint32(0x33), fault.LastReport().Frame.R3)
}

func TestMaskingOrder(t *testing.T) {
	c := newCore(t, fault.DefaultTraps)
	require.Equal(t, sim.Halted, c.Run(inject.BusFault))
	require.Equal(t, []sim.Event{
		sim.EventEntry,
		sim.EventFrame,
		sim.EventMaskInterrupts,
		sim.EventMaskFaults,
	}, c.Events())
	require.True(t, c.PRIMASK())
	require.True(t, c.FAULTMASK())
}

// hookWriter calls fn on every line the dispatcher prints.
type hookWriter struct {
	bytes.Buffer
	fn func()
}

func (w *hookWriter) Write(p []byte) (int, error) {
	w.fn()
	return w.Buffer.Write(p)
}

func TestInterruptsMasked(t *testing.T) {
	c := newCore(t, fault.DefaultTraps)
	counter := 0
	tick := func() { counter++ }

	c.Interrupt(tick)
	require.Equal(t, 1, counter, "interrupt must run before the fault")

	fault.SetOutput(&hookWriter{fn: func() { c.Interrupt(tick) }})
	require.Equal(t, sim.Halted, c.Run(inject.BusFault))
	require.Equal(t, 1, counter)
	require.Equal(t, 11, c.Pending()) // one per line
	require.NotContains(t, c.Events()[1:], sim.EventInterrupt)
}

func TestSecondFaultLocksUp(t *testing.T) {
	c := newCore(t, fault.DefaultTraps)
	second := false
	fault.SetOutput(&hookWriter{fn: func() {
		if !second {
			second = true
			c.Load(inject.BadDataAddr)
		}
	}})

	require.Equal(t, sim.Lockup, c.Run(func() { inject.UsageFault() }))
	require.Equal(t, 1, c.Entries())
	require.Equal(t, fault.UsageFault, fault.LastReport().Class)
}

func TestFaultWithPRIMASKEscalates(t *testing.T) {
	c := newCore(t, fault.DefaultTraps)
	c.Vector = func(c *sim.Core, class fault.Class) {
		if class == fault.UsageFault {
			// A handler that forgot to mask faults, then faults itself.
			c.MaskInterrupts()
			c.Load(inject.BadDataAddr)
		}
		fault.Trap(c, class)
	}

	require.Equal(t, sim.Halted, c.Run(func() { inject.UsageFault() }))
	require.Equal(t, 2, c.Entries())
	require.Equal(t, sim.ReturnHandler, c.LR)

	rep := fault.LastReport()
	require.Equal(t, fault.HardFault, rep.Class)
	require.Equal(t, uint32(scb.Forced), rep.HFSR)
	require.Equal(t, uint32(scb.DivByZero|scb.PrecisErr|scb.BFARValid), rep.CFSR)
}

// restart brings up a fresh core without touching the fault sink.
func restart(t *testing.T) *sim.Core {
	t.Helper()
	c := sim.New()
	fault.Configure(scb.Hardware(), fault.DefaultTraps)
	inject.SetTarget(c)
	return c
}

// flakyWriter fails while broken is set, like a probe that isn't connected
// yet.
type flakyWriter struct {
	bytes.Buffer
	broken bool
}

func (w *flakyWriter) Write(p []byte) (int, error) {
	if w.broken {
		return 0, errors.New("no probe")
	}
	return w.Buffer.Write(p)
}

func TestOutputAfterFailedWrite(t *testing.T) {
	c := newCore(t, fault.DefaultTraps)
	w := &flakyWriter{broken: true}
	fault.SetOutput(w)
	require.Equal(t, sim.Halted, c.Run(inject.BusFault))
	require.Zero(t, w.Len())

	w.broken = false
	c = restart(t)
	require.Equal(t, sim.Halted, c.Run(inject.BusFault))

	rep, err := fault.ParseReport(w)
	require.NoError(t, err)
	require.Equal(t, fault.BusFault, rep.Class)
}

func TestOutputAfterLockupInWrite(t *testing.T) {
	c := newCore(t, fault.DefaultTraps)
	w := &hookWriter{}
	w.fn = func() { c.Load(inject.BadDataAddr) }
	fault.SetOutput(w)
	require.Equal(t, sim.Lockup, c.Run(func() { inject.UsageFault() }))

	// The sink never saw the end of the first report.
	w.fn = func() {}
	w.Reset()
	c = restart(t)
	require.Equal(t, sim.Halted, c.Run(func() { inject.UsageFault() }))

	rep, err := fault.ParseReport(&w.Buffer)
	require.NoError(t, err)
	require.Equal(t, fault.UsageFault, rep.Class)
	require.Equal(t, fault.DivideByZero, rep.Reason)
}

func TestSetOutputStartsClean(t *testing.T) {
	c := newCore(t, fault.DefaultTraps)
	fault.SetOutput(&flakyWriter{broken: true})
	require.Equal(t, sim.Halted, c.Run(inject.BusFault))

	var out bytes.Buffer
	fault.SetOutput(&out)
	c = restart(t)
	require.Equal(t, sim.Halted, c.Run(inject.BusFault))
	_, err := fault.ParseReport(&out)
	require.NoError(t, err)
}
