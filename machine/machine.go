// Package machine is imported by the runtime and allows the target to implement
// some hooks. On Cortex-M the system writer used by print and panic goes to the
// ITM, so output is visible on any debug probe with SWO before drivers are up.
package machine
