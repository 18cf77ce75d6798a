package bytecode

import (
	"bytes"
	"testing"
)

func TestOpcodeMetadata(t *testing.T) {
	tests := []struct {
		op       Opcode
		name     string
		operands []int
	}{
		{OpDiscard, "DISCARD", nil},
		{OpConst, "CONST", []int{2}},
		{OpNull, "NULL", nil},
		{OpTrue, "TRUE", nil},
		{OpFalse, "FALSE", nil},
		{OpAdd, "ADD", nil},
		{OpSub, "SUB", nil},
		{OpMul, "MUL", nil},
		{OpDiv, "DIV", nil},
		{OpEqual, "EQUAL", nil},
		{OpNotEqual, "NOT_EQUAL", nil},
		{OpGreaterThan, "GREATER_THAN", nil},
		{OpJump, "JUMP", []int{2}},
		{OpJumpIfNotTruthy, "JUMP_IF_NOT_TRUTHY", []int{2}},
	}

	if len(tests) != OpcodeCount() {
		t.Errorf("test covers %d opcodes, table defines %d", len(tests), OpcodeCount())
	}

	for _, tt := range tests {
		info := GetOpcodeInfo(tt.op)
		if info.Name != tt.name {
			t.Errorf("GetOpcodeInfo(0x%02X).Name = %q, want %q", byte(tt.op), info.Name, tt.name)
		}
		if len(info.OperandWidths) != len(tt.operands) {
			t.Errorf("%s has %d operands, want %d", tt.name, len(info.OperandWidths), len(tt.operands))
		}
		for i, w := range tt.operands {
			if info.OperandWidths[i] != w {
				t.Errorf("%s operand %d width = %d, want %d", tt.name, i, info.OperandWidths[i], w)
			}
		}
	}
}

func TestUnknownOpcodeName(t *testing.T) {
	got := Opcode(0xEE).String()
	if got != "UNKNOWN(0xEE)" {
		t.Errorf("String() = %q, want %q", got, "UNKNOWN(0xEE)")
	}
}

func TestInstructionLen(t *testing.T) {
	if got := OpConst.InstructionLen(); got != 3 {
		t.Errorf("OpConst.InstructionLen() = %d, want 3", got)
	}
	if got := OpAdd.InstructionLen(); got != 1 {
		t.Errorf("OpAdd.InstructionLen() = %d, want 1", got)
	}
	if got := OpJump.InstructionLen(); got != 3 {
		t.Errorf("OpJump.InstructionLen() = %d, want 3", got)
	}
}

func TestIsJump(t *testing.T) {
	for _, op := range AllOpcodes() {
		want := op == OpJump || op == OpJumpIfNotTruthy
		if got := op.IsJump(); got != want {
			t.Errorf("%s.IsJump() = %v, want %v", op, got, want)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		op       Opcode
		operands []int
		want     []byte
	}{
		{OpConst, []int{65534}, []byte{byte(OpConst), 0xFF, 0xFE}},
		{OpConst, []int{0}, []byte{byte(OpConst), 0x00, 0x00}},
		{OpAdd, nil, []byte{byte(OpAdd)}},
		{OpJump, []int{258}, []byte{byte(OpJump), 0x01, 0x02}},
	}

	for _, tt := range tests {
		got, err := Encode(tt.op, tt.operands...)
		if err != nil {
			t.Fatalf("Encode(%s, %v): %v", tt.op, tt.operands, err)
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("Encode(%s, %v) = %v, want %v", tt.op, tt.operands, got, tt.want)
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := Encode(Opcode(0xEE)); err == nil {
		t.Error("Encode(unknown opcode): expected error, got nil")
	}
	if _, err := Encode(OpConst); err == nil {
		t.Error("Encode(CONST with no operands): expected error, got nil")
	}
	if _, err := Encode(OpAdd, 1); err == nil {
		t.Error("Encode(ADD with operand): expected error, got nil")
	}
	if _, err := Encode(OpConst, 65536); err == nil {
		t.Error("Encode(CONST, 65536): expected error, got nil")
	}
	if _, err := Encode(OpConst, -1); err == nil {
		t.Error("Encode(CONST, -1): expected error, got nil")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		op       Opcode
		operands []int
	}{
		{OpConst, []int{0}},
		{OpConst, []int{1}},
		{OpConst, []int{65535}},
		{OpJump, []int{12345}},
		{OpJumpIfNotTruthy, []int{7}},
	}

	for _, tt := range tests {
		ins, err := Encode(tt.op, tt.operands...)
		if err != nil {
			t.Fatalf("Encode(%s, %v): %v", tt.op, tt.operands, err)
		}

		info := GetOpcodeInfo(tt.op)
		operands, consumed := DecodeOperands(info, ins[1:])
		if consumed != len(ins)-1 {
			t.Errorf("%s: consumed %d bytes, want %d", tt.op, consumed, len(ins)-1)
		}
		if len(operands) != len(tt.operands) {
			t.Fatalf("%s: decoded %d operands, want %d", tt.op, len(operands), len(tt.operands))
		}
		for i, operand := range tt.operands {
			if operands[i] != operand {
				t.Errorf("%s operand %d = %d, want %d", tt.op, i, operands[i], operand)
			}
		}
	}
}
