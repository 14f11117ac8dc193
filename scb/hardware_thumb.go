//go:build thumb

package scb

import "unsafe"

// Hardware returns the System Control Block of the running core.
func Hardware() *Registers {
	return (*Registers)(unsafe.Pointer(BaseAddr))
}
