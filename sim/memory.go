package sim

import "encoding/binary"

const (
	FlashBase uint32 = 0x0800_0000
	FlashSize uint32 = 1 << 20
	SRAMBase  uint32 = 0x2000_0000
	SRAMSize  uint32 = 128 << 10

	ppbBase uint32 = 0xe000_0000
	ppbSize uint32 = 1 << 20
)

// The default memory map of ARMv7-M divides the address space into eight
// 512MB regions. Peripheral, device and system regions are never executable.
//
//	0 code  1 SRAM  2 peripheral  3-4 external RAM  5-6 external device  7 system
const executableRegions = 1<<0 | 1<<1 | 1<<3 | 1<<4

func executable(addr uint32) bool {
	return executableRegions&(1<<(addr>>29)) != 0
}

type span struct{ base, size uint32 }

func (s span) contains(addr, n uint32) bool {
	return addr >= s.base && addr-s.base <= s.size-n && n <= s.size
}

// mapped returns true if n bytes at addr are backed by memory or a
// register block. Flash is aliased at address zero.
func (c *Core) mapped(addr, n uint32) bool {
	for _, s := range [...]span{
		{0, FlashSize},
		{FlashBase, FlashSize},
		{SRAMBase, SRAMSize},
		{ppbBase, ppbSize},
	} {
		if s.contains(addr, n) {
			return true
		}
	}
	return false
}

// Protect removes all access to size bytes at base, like an MPU region
// without access permissions. Accesses raise MemManage.
func (c *Core) Protect(base, size uint32) {
	c.protected = append(c.protected, span{base, size})
}

func (c *Core) isProtected(addr uint32) bool {
	for _, s := range c.protected {
		if s.contains(addr, 1) {
			return true
		}
	}
	return false
}

// Only SRAM holds data, everything else reads as zero and ignores writes.
func (c *Core) read32(addr uint32) uint32 {
	if !(span{SRAMBase, SRAMSize}).contains(addr, 4) {
		return 0
	}
	return binary.LittleEndian.Uint32(c.ram[addr-SRAMBase:])
}

func (c *Core) write32(addr, v uint32) {
	if !(span{SRAMBase, SRAMSize}).contains(addr, 4) {
		return
	}
	binary.LittleEndian.PutUint32(c.ram[addr-SRAMBase:], v)
}
