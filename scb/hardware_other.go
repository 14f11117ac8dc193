//go:build !thumb

package scb

var simulated Registers

// Hardware returns the register block of the simulated core. There is only
// one, like there is only one core on the target.
func Hardware() *Registers {
	return &simulated
}
