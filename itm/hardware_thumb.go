//go:build thumb

package itm

import "unsafe"

func Hardware() *Registers {
	return (*Registers)(unsafe.Pointer(BaseAddr))
}
