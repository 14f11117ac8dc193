//go:build thumb

package machine

import (
	_ "unsafe" // for linkname

	"github.com/clktmr/cortexm/itm"
)

// Stimulus port used by the system writer. Debuggers show port 0 as the
// console by default.
const Port = 0

// Writes to the ITM stimulus port regardless if a debugger is attached or
// not. Output is dropped while the port is disabled. Usable before package
// initialization.
//
//go:nowritebarrierrec
//go:nosplit
//go:linkname DefaultWrite runtime.defaultWrite
func DefaultWrite(fd int, p []byte) int {
	n, _ := itm.Hardware().Port(Port).Write(p)
	return n
}

type defaultWriter int

const DefaultWriter defaultWriter = 0

func (v defaultWriter) Write(p []byte) (int, error) {
	return DefaultWrite(int(v), p), nil
}
