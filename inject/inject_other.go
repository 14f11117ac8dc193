//go:build !thumb

package inject

// Executor executes the faulting operations for the injectors. There is no
// core to fault without the target hardware, see package sim.
type Executor interface {
	Branch(addr uint32)
	Load(addr uint32) uint32
	Divide(a, b int32) int32
}

var target Executor

// SetTarget sets the executor used by the injectors.
func SetTarget(e Executor) {
	target = e
}

// HardFault branches to NullAddr. With UsageFault reporting enabled the core
// reports it as an undefined instruction UsageFault instead.
func HardFault() {
	target.Branch(NullAddr)
}

// MemManageFault branches to NoExecAddr.
func MemManageFault() {
	target.Branch(NoExecAddr)
}

// BusFault loads a word from BadDataAddr.
func BusFault() {
	target.Load(BadDataAddr)
}

// UsageFault divides one by zero. Unless divide-by-zero trapping is enabled
// it returns zero.
func UsageFault() int {
	return int(target.Divide(1, 0))
}
