//go:build !thumb

package itm

var simulated Registers

func Hardware() *Registers {
	return &simulated
}
