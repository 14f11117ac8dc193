//go:build thumb

package inject

// The injectors are written in assembly. Go would check for nil function
// values and zero divisors itself and panic before the core got the chance to
// fault.

// HardFault branches to NullAddr. With UsageFault reporting enabled the core
// reports it as an undefined instruction UsageFault instead.
func HardFault()

// MemManageFault branches to NoExecAddr.
func MemManageFault()

// BusFault loads a word from BadDataAddr.
func BusFault()

// UsageFault divides one by zero with SDIV. Unless divide-by-zero trapping is
// enabled it returns zero.
func UsageFault() int
