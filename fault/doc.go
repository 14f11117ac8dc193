// Package fault reports the synchronous exceptions of ARMv7-M cores:
// HardFault, MemManage, BusFault and UsageFault.
//
// The linker binds the four vector table entries HardFault_Handler,
// MemManage_Handler, BusFault_Handler and UsageFault_Handler to entry stubs in
// this package. A stub runs without a stack frame of its own. It finds the
// stack the hardware pushed the exception frame to, masks interrupts and
// faults and branches to the dispatcher, which decodes the fault status
// registers, prints a report to the sink set with SetOutput and halts the core
// on a breakpoint. Nothing ever returns to the faulting code.
//
// Call Init early during startup, otherwise MemManage, BusFault and UsageFault
// are escalated to HardFault and division by zero silently yields zero.
package fault
