// Package reg provides the register cells used to describe memory mapped
// hardware blocks.
//
// On the target the cells wrap embedded/mmio and every access is a volatile
// load or store at the cell's address. On other platforms the cells are plain
// atomics, which allows a register block to be allocated in ordinary memory
// and driven by a software model of the core.
package reg

// Bits constrains the named flag types stored in an R32.
type Bits interface{ ~uint32 }
