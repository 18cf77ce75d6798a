package bytecode

import (
	"bytes"
	"testing"
)

func TestAddConstantDoesNotDeduplicate(t *testing.T) {
	c := NewChunk()
	i1 := c.AddConstant(&Integer{Value: 7})
	i2 := c.AddConstant(&Integer{Value: 7})
	if i1 == i2 {
		t.Errorf("identical literals share index %d, want distinct slots", i1)
	}
	if c.ConstantCount() != 2 {
		t.Errorf("ConstantCount() = %d, want 2", c.ConstantCount())
	}
}

func TestEmitOffsets(t *testing.T) {
	c := NewChunk()

	off, err := c.Emit(OpConst, 0)
	if err != nil {
		t.Fatalf("Emit(CONST): %v", err)
	}
	if off != 0 {
		t.Errorf("first Emit offset = %d, want 0", off)
	}

	off, err = c.Emit(OpAdd)
	if err != nil {
		t.Fatalf("Emit(ADD): %v", err)
	}
	if off != 3 {
		t.Errorf("second Emit offset = %d, want 3", off)
	}

	if c.CurrentOffset() != 4 {
		t.Errorf("CurrentOffset() = %d, want 4", c.CurrentOffset())
	}
}

func TestEmitRejectsBadOperands(t *testing.T) {
	c := NewChunk()
	if _, err := c.Emit(OpConst); err == nil {
		t.Error("Emit(CONST with no operands): expected error, got nil")
	}
	if len(c.Code) != 0 {
		t.Errorf("failed Emit appended %d bytes", len(c.Code))
	}
}

func TestEmitJumpAndPatch(t *testing.T) {
	c := NewChunk()

	placeholder := c.EmitJump(OpJumpIfNotTruthy)
	if placeholder != 1 {
		t.Errorf("EmitJump returned %d, want 1 (operand offset)", placeholder)
	}
	if !bytes.Equal(c.Code, []byte{byte(OpJumpIfNotTruthy), 0xFF, 0xFF}) {
		t.Errorf("Code after EmitJump = %v", c.Code)
	}

	c.Emit(OpNull)
	c.PatchJump(placeholder)

	if !bytes.Equal(c.Code[1:3], []byte{0x00, 0x04}) {
		t.Errorf("patched operand = %v, want [0 4]", c.Code[1:3])
	}
}

func TestPatchJumpTo(t *testing.T) {
	c := NewChunk()
	placeholder := c.EmitJump(OpJump)
	c.PatchJumpTo(placeholder, 0x0102)
	if !bytes.Equal(c.Code[1:3], []byte{0x01, 0x02}) {
		t.Errorf("patched operand = %v, want [1 2]", c.Code[1:3])
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	c := NewChunk()
	c.AddConstant(&Integer{Value: -42})
	c.AddConstant(True)
	c.AddConstant(False)
	c.AddConstant(NullValue)
	c.Emit(OpConst, 0)
	c.Emit(OpDiscard)

	data, err := c.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !bytes.Equal(data[0:4], ChunkMagic) {
		t.Errorf("serialized magic = %v, want %v", data[0:4], ChunkMagic)
	}

	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got.Version != c.Version {
		t.Errorf("Version = %d, want %d", got.Version, c.Version)
	}
	if !bytes.Equal(got.Code, c.Code) {
		t.Errorf("Code = %v, want %v", got.Code, c.Code)
	}
	if got.ConstantCount() != 4 {
		t.Fatalf("ConstantCount() = %d, want 4", got.ConstantCount())
	}

	intConst, ok := got.Constants[0].(*Integer)
	if !ok || intConst.Value != -42 {
		t.Errorf("constant 0 = %v, want Integer(-42)", got.Constants[0])
	}
	if got.Constants[1] != True {
		t.Error("constant 1 is not the canonical True instance")
	}
	if got.Constants[2] != False {
		t.Error("constant 2 is not the canonical False instance")
	}
	if got.Constants[3] != NullValue {
		t.Error("constant 3 is not the canonical NullValue instance")
	}
}

func TestDeserializeErrors(t *testing.T) {
	c := NewChunk()
	c.AddConstant(&Integer{Value: 1})
	c.Emit(OpConst, 0)
	data, err := c.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"too short", data[:3]},
		{"bad magic", append([]byte("XXXX"), data[4:]...)},
		{"truncated code", data[:8]},
		{"truncated constants", data[:len(data)-4]},
	}
	for _, tt := range tests {
		if _, err := Deserialize(tt.data); err == nil {
			t.Errorf("Deserialize(%s): expected error, got nil", tt.name)
		}
	}

	future := bytes.Clone(data)
	future[4], future[5] = 0xFF, 0xFF
	if _, err := Deserialize(future); err == nil {
		t.Error("Deserialize(future version): expected error, got nil")
	}
}
