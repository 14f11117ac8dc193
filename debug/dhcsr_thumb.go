//go:build thumb

package debug

import (
	"unsafe"

	"github.com/clktmr/cortexm/reg"
)

var (
	dhcsr = (*reg.U32)(unsafe.Pointer(DHCSRAddr))
	demcr = (*reg.U32)(unsafe.Pointer(DEMCRAddr))
)
