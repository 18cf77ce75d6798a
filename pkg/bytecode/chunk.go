package bytecode

import (
	"encoding/binary"
	"fmt"
)

// ChunkVersion is the current bytecode format version.
// Increment when making incompatible changes to the format.
const ChunkVersion uint16 = 1

// ChunkMagic identifies serialized chunk artifacts: "RNBC" (RowaN ByteCode).
var ChunkMagic = []byte{'R', 'N', 'B', 'C'}

// Constant kind tags used by the binary and CBOR serialization formats.
const (
	constInteger byte = 0
	constBoolean byte = 1
	constNull    byte = 2
)

// Chunk is a compiled unit: an append-only instruction stream plus the
// constant pool it references by index. Positions within Code serve both as
// instruction-pointer values and as jump targets. The chunk is mutable only
// during compilation (jump backpatching); once handed to the VM it is
// treated as read-only.
type Chunk struct {
	Version   uint16
	Code      []byte
	Constants []Value
}

// NewChunk creates a new empty chunk with the current version.
func NewChunk() *Chunk {
	return &Chunk{
		Version:   ChunkVersion,
		Code:      make([]byte, 0, 64),
		Constants: make([]Value, 0, 8),
	}
}

// AddConstant appends a value to the constant pool and returns its index.
// The pool is append-only and duplicates are not merged; identical literals
// occupy distinct slots. (Known limitation, not a correctness requirement.)
func (c *Chunk) AddConstant(v Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// Emit encodes an instruction and appends it to the code section,
// returning the instruction's offset.
func (c *Chunk) Emit(op Opcode, operands ...int) (int, error) {
	ins, err := Encode(op, operands...)
	if err != nil {
		return 0, err
	}
	offset := len(c.Code)
	c.Code = append(c.Code, ins...)
	return offset, nil
}

// EmitJump appends a jump instruction with a placeholder operand.
// Returns the offset of the placeholder bytes for later patching.
func (c *Chunk) EmitJump(op Opcode) int {
	offset := len(c.Code)
	c.Code = append(c.Code, byte(op), 0xFF, 0xFF) // Placeholder
	return offset + 1
}

// PatchJump patches a jump placeholder to target the current end of code.
func (c *Chunk) PatchJump(placeholderOffset int) {
	c.PatchJumpTo(placeholderOffset, len(c.Code))
}

// PatchJumpTo rewrites a jump placeholder in place with an absolute stream
// offset. Valid only because the operand's byte width never changes.
func (c *Chunk) PatchJumpTo(placeholderOffset, target int) {
	binary.BigEndian.PutUint16(c.Code[placeholderOffset:], uint16(target))
}

// CurrentOffset returns the current offset in the code section.
func (c *Chunk) CurrentOffset() int {
	return len(c.Code)
}

// ConstantCount returns the number of constants in the pool.
func (c *Chunk) ConstantCount() int {
	return len(c.Constants)
}

// Serialize encodes the chunk to bytes for storage.
// Format:
//
//	[magic:4] [version:2]
//	[code_len:4] [code:...]
//	[const_count:2] [constants: kind:1 + payload...]
//
// Integer constants carry an 8-byte big-endian payload; booleans one byte;
// null none.
func (c *Chunk) Serialize() ([]byte, error) {
	buf := make([]byte, 0, 10+len(c.Code)+len(c.Constants)*9)

	buf = append(buf, ChunkMagic...)
	buf = binary.BigEndian.AppendUint16(buf, c.Version)

	buf = binary.BigEndian.AppendUint32(buf, uint32(len(c.Code)))
	buf = append(buf, c.Code...)

	buf = binary.BigEndian.AppendUint16(buf, uint16(len(c.Constants)))
	for i, v := range c.Constants {
		switch v := v.(type) {
		case *Integer:
			buf = append(buf, constInteger)
			buf = binary.BigEndian.AppendUint64(buf, uint64(v.Value))
		case *Boolean:
			buf = append(buf, constBoolean)
			if v.Value {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		case *Null:
			buf = append(buf, constNull)
		default:
			return nil, fmt.Errorf("bytecode: cannot serialize constant %d of type %T", i, v)
		}
	}

	return buf, nil
}

// Deserialize decodes a chunk from bytes produced by Serialize. Boolean and
// null constants are restored to the canonical shared instances so identity
// semantics survive a round trip.
func Deserialize(data []byte) (*Chunk, error) {
	if len(data) < 6 {
		return nil, fmt.Errorf("bytecode: artifact too short: need at least 6 bytes, got %d", len(data))
	}
	if string(data[0:4]) != string(ChunkMagic) {
		return nil, fmt.Errorf("bytecode: invalid magic: expected %q, got %q", ChunkMagic, data[0:4])
	}

	c := &Chunk{Version: binary.BigEndian.Uint16(data[4:6])}
	if c.Version > ChunkVersion {
		return nil, fmt.Errorf("bytecode: artifact version %d is newer than supported version %d",
			c.Version, ChunkVersion)
	}

	pos := 6
	if pos+4 > len(data) {
		return nil, fmt.Errorf("bytecode: unexpected end of artifact reading code length")
	}
	codeLen := int(binary.BigEndian.Uint32(data[pos:]))
	pos += 4

	if pos+codeLen > len(data) {
		return nil, fmt.Errorf("bytecode: unexpected end of artifact reading code section")
	}
	c.Code = make([]byte, codeLen)
	copy(c.Code, data[pos:pos+codeLen])
	pos += codeLen

	if pos+2 > len(data) {
		return nil, fmt.Errorf("bytecode: unexpected end of artifact reading constant count")
	}
	constCount := int(binary.BigEndian.Uint16(data[pos:]))
	pos += 2

	c.Constants = make([]Value, 0, constCount)
	for i := 0; i < constCount; i++ {
		if pos >= len(data) {
			return nil, fmt.Errorf("bytecode: unexpected end of artifact reading constant %d", i)
		}
		kind := data[pos]
		pos++

		switch kind {
		case constInteger:
			if pos+8 > len(data) {
				return nil, fmt.Errorf("bytecode: unexpected end of artifact reading constant %d payload", i)
			}
			c.Constants = append(c.Constants, &Integer{Value: int64(binary.BigEndian.Uint64(data[pos:]))})
			pos += 8
		case constBoolean:
			if pos >= len(data) {
				return nil, fmt.Errorf("bytecode: unexpected end of artifact reading constant %d payload", i)
			}
			c.Constants = append(c.Constants, BoolValue(data[pos] != 0))
			pos++
		case constNull:
			c.Constants = append(c.Constants, NullValue)
		default:
			return nil, fmt.Errorf("bytecode: unknown constant kind %d for constant %d", kind, i)
		}
	}

	return c, nil
}
