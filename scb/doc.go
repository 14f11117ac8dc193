// Package scb describes the System Control Block of ARMv7-M cores.
//
// Only the part of the block that deals with exceptions and faults is typed:
// the configuration and control register, the system handler control and
// state register, the fault status registers and the fault address registers.
// Everything else is plain 32-bit cells.
//
// Further reading: ARMv7-M Architecture Reference Manual, B3.2 "System Control
// Space".
package scb
