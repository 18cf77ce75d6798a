package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders the chunk's instruction stream in a stable textual
// format, one instruction per line:
//
//	<offset:%04d> <mnemonic>[ <operand>...]\n
//
// The format is a contract; tools diff disassembly output byte for byte.
func (c *Chunk) Disassemble() string {
	var sb strings.Builder
	offset := 0
	for offset < len(c.Code) {
		line, size := c.disassembleInstruction(offset)
		fmt.Fprintf(&sb, "%04d %s\n", offset, line)
		offset += size
	}
	return sb.String()
}

// disassembleInstruction renders the instruction at offset and returns the
// rendered text and the instruction's byte length. Unknown opcodes render
// as UNKNOWN(0xNN) and consume a single byte so disassembly can resync.
func (c *Chunk) disassembleInstruction(offset int) (string, int) {
	op := Opcode(c.Code[offset])
	info, ok := opcodeInfoTable[op]
	if !ok {
		return GetOpcodeInfo(op).Name, 1
	}

	if len(info.OperandWidths) == 0 {
		return info.Name, 1
	}

	if offset+1+op.OperandLen() > len(c.Code) {
		return fmt.Sprintf("%s <truncated>", info.Name), len(c.Code) - offset
	}

	operands, consumed := DecodeOperands(info, c.Code[offset+1:])
	parts := make([]string, 0, 1+len(operands))
	parts = append(parts, info.Name)
	for _, operand := range operands {
		parts = append(parts, fmt.Sprintf("%d", operand))
	}
	return strings.Join(parts, " "), 1 + consumed
}

// DisassembleWithName renders a chunk with a header and its constant pool,
// for debugging output and the CLI's -disasm flag.
func (c *Chunk) DisassembleWithName(name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "== %s (version %d, %d bytes, %d constants) ==\n",
		name, c.Version, len(c.Code), len(c.Constants))
	for i, v := range c.Constants {
		fmt.Fprintf(&sb, "const %d: %s %s\n", i, v.Type(), v.Inspect())
	}
	sb.WriteString(c.Disassemble())
	return sb.String()
}
