package bytecode

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Opcode represents a bytecode instruction tag.
// Opcodes are organized into ranges by category for easy identification.
type Opcode byte

const (
	// ========================================================================
	// Stack manipulation (0x00-0x0F)
	// ========================================================================

	OpDiscard Opcode = 0x01 // Pop and drop top of stack

	// ========================================================================
	// Constants (0x10-0x1F)
	// ========================================================================

	OpConst Opcode = 0x10 // Push constant from pool: OpConst <index:u16>
	OpNull  Opcode = 0x11 // Push the canonical null
	OpTrue  Opcode = 0x12 // Push the canonical true
	OpFalse Opcode = 0x13 // Push the canonical false

	// ========================================================================
	// Arithmetic (0x50-0x5F)
	// ========================================================================

	OpAdd Opcode = 0x50 // Pop two, push sum
	OpSub Opcode = 0x51 // Pop two, push difference (left - right, right is TOS)
	OpMul Opcode = 0x52 // Pop two, push product
	OpDiv Opcode = 0x53 // Pop two, push quotient (truncating)

	// ========================================================================
	// Comparison (0x60-0x6F)
	// ========================================================================

	OpEqual       Opcode = 0x60 // Pop two, push canonical true/false
	OpNotEqual    Opcode = 0x61 // Pop two, push canonical true/false
	OpGreaterThan Opcode = 0x62 // Pop two, push true if left > right

	// ========================================================================
	// Control flow (0x80-0x8F)
	// ========================================================================

	OpJump            Opcode = 0x80 // Unconditional: OpJump <target:u16>
	OpJumpIfNotTruthy Opcode = 0x81 // Pop condition, jump when not truthy
)

// OpcodeInfo provides metadata about each opcode for encoding, decoding,
// disassembly and validation. OperandWidths lists the byte width of each
// operand in instruction-stream order; an instruction's total length is
// always 1 + the sum of its operand widths.
type OpcodeInfo struct {
	Name          string // Mnemonic used in disassembly
	StackPop      int    // How many values popped from stack
	StackPush     int    // How many values pushed to stack
	OperandWidths []int  // Width in bytes of each operand
}

// opcodeInfoTable maps opcodes to their metadata. The instruction stream
// itself carries no length information; this table is the sole decode
// authority.
var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpDiscard: {"DISCARD", 1, 0, nil},

	OpConst: {"CONST", 0, 1, []int{2}},
	OpNull:  {"NULL", 0, 1, nil},
	OpTrue:  {"TRUE", 0, 1, nil},
	OpFalse: {"FALSE", 0, 1, nil},

	OpAdd: {"ADD", 2, 1, nil},
	OpSub: {"SUB", 2, 1, nil},
	OpMul: {"MUL", 2, 1, nil},
	OpDiv: {"DIV", 2, 1, nil},

	OpEqual:       {"EQUAL", 2, 1, nil},
	OpNotEqual:    {"NOT_EQUAL", 2, 1, nil},
	OpGreaterThan: {"GREATER_THAN", 2, 1, nil},

	OpJump:            {"JUMP", 0, 0, []int{2}},
	OpJumpIfNotTruthy: {"JUMP_IF_NOT_TRUTHY", 1, 0, []int{2}},
}

// GetOpcodeInfo returns metadata for an opcode.
// Returns a zero OpcodeInfo with an UNKNOWN name if the opcode is not defined.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if info, ok := opcodeInfoTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN(0x%02X)", byte(op))}
}

// String returns the mnemonic of an opcode.
func (op Opcode) String() string {
	return GetOpcodeInfo(op).Name
}

// OperandLen returns the total number of operand bytes for this opcode.
func (op Opcode) OperandLen() int {
	total := 0
	for _, w := range GetOpcodeInfo(op).OperandWidths {
		total += w
	}
	return total
}

// InstructionLen returns the total length of an instruction (1 + operand bytes).
func (op Opcode) InstructionLen() int {
	return 1 + op.OperandLen()
}

// IsJump returns true if this opcode transfers control.
func (op Opcode) IsJump() bool {
	return op >= OpJump && op <= OpJumpIfNotTruthy
}

// AllOpcodes returns a slice of all defined opcodes.
// Useful for testing that all opcodes have metadata.
func AllOpcodes() []Opcode {
	opcodes := make([]Opcode, 0, len(opcodeInfoTable))
	for op := range opcodeInfoTable {
		opcodes = append(opcodes, op)
	}
	return opcodes
}

// OpcodeCount returns the number of defined opcodes.
func OpcodeCount() int {
	return len(opcodeInfoTable)
}

// Encode encodes an opcode and its operands into instruction bytes.
// It fails when the operand count does not match the opcode's declared
// arity or an operand does not fit its declared width; on success the
// result is exactly 1 + the sum of the operand widths, operands big-endian.
func Encode(op Opcode, operands ...int) ([]byte, error) {
	info, ok := opcodeInfoTable[op]
	if !ok {
		return nil, fmt.Errorf("bytecode: unknown opcode 0x%02X", byte(op))
	}
	if len(operands) != len(info.OperandWidths) {
		return nil, fmt.Errorf("bytecode: %s expects %d operands, got %d",
			info.Name, len(info.OperandWidths), len(operands))
	}

	ins := make([]byte, op.InstructionLen())
	ins[0] = byte(op)

	offset := 1
	for i, width := range info.OperandWidths {
		operand := operands[i]
		switch width {
		case 2:
			if operand < 0 || operand > math.MaxUint16 {
				return nil, fmt.Errorf("bytecode: operand %d of %s out of range: %d",
					i, info.Name, operand)
			}
			binary.BigEndian.PutUint16(ins[offset:], uint16(operand))
		default:
			return nil, fmt.Errorf("bytecode: %s declares unsupported operand width %d",
				info.Name, width)
		}
		offset += width
	}

	return ins, nil
}

// DecodeOperands decodes the operands of an instruction from code, which
// must point just past the opcode byte. It returns the decoded operands and
// the number of bytes consumed, and is the exact inverse of Encode for any
// opcode/operand pair within the declared widths.
func DecodeOperands(info OpcodeInfo, code []byte) ([]int, int) {
	operands := make([]int, len(info.OperandWidths))
	offset := 0
	for i, width := range info.OperandWidths {
		switch width {
		case 2:
			operands[i] = int(binary.BigEndian.Uint16(code[offset:]))
		}
		offset += width
	}
	return operands, offset
}
