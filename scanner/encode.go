package scanner

import "github.com/dotan-asm/mipsasm/parser"

// encodeR packs an R-type instruction per §6.3:
// (funct<<6) | (rd<<11) | (rt<<16) | (rs<<21) | (opcode<<26).
func encodeR(id parser.OpId, r parser.ROperands) uint32 {
	return uint32(id.Funct()<<6) |
		uint32(r.Rd<<11) |
		uint32(r.Rt<<16) |
		uint32(r.Rs<<21) |
		uint32(id.Opcode()<<26)
}

// encodeI packs an I-type instruction per §6.3:
// (immed & 0xFFFF) | (rt<<16) | (rs<<21) | (opcode<<26).
func encodeI(id parser.OpId, i parser.IOperands) uint32 {
	return (uint32(i.Immed) & 0xFFFF) |
		uint32(i.Rt<<16) |
		uint32(i.Rs<<21) |
		uint32(id.Opcode()<<26)
}

// encodeJ packs a J-type instruction per §6.3:
// (addr & 0x1FFFFFF) | (reg<<25) | (opcode<<26).
func encodeJ(id parser.OpId, j parser.JOperands) uint32 {
	reg := 0
	if j.RegFlag {
		reg = 1
	}
	return (uint32(j.Addr) & 0x1FFFFFF) |
		uint32(reg<<25) |
		uint32(id.Opcode()<<26)
}

// appendWord writes a 32-bit word as four little-endian bytes, matching
// write_instruction's byte-at-a-time shift-and-mask.
func appendWord(img []byte, word uint32) []byte {
	for i := 0; i < 4; i++ {
		img = append(img, byte(word>>(8*uint(i))))
	}
	return img
}
