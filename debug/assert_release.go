//go:build !debug

// Package debug holds the switches of debug builds, enabled with the debug
// build tag, and reports whether a debugger is attached to the core.
//
// In release builds assertions compile to no-ops and fault reports are only
// printed if the application installs a sink.
package debug

const Enabled = false

// Assert panics if b is false.
func Assert(b bool, message string) {}
