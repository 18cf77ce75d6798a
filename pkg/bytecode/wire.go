package bytecode

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode is the shared canonical encoding mode. Canonical encoding
// keeps wire bytes deterministic, so chunk hashes are stable across runs.
var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: cbor encoder init: %v", err))
	}
}

// wireChunk is the CBOR transport shape of a Chunk.
type wireChunk struct {
	Version   uint16         `cbor:"1,keyasint"`
	Code      []byte         `cbor:"2,keyasint"`
	Constants []wireConstant `cbor:"3,keyasint"`
}

// wireConstant flattens the Value interface for transport. Kind selects
// which payload field is meaningful.
type wireConstant struct {
	Kind uint8 `cbor:"1,keyasint"`
	Int  int64 `cbor:"2,keyasint,omitempty"`
	Bool bool  `cbor:"3,keyasint,omitempty"`
}

// MarshalChunk encodes a chunk to canonical CBOR.
func MarshalChunk(c *Chunk) ([]byte, error) {
	wc := wireChunk{
		Version:   c.Version,
		Code:      c.Code,
		Constants: make([]wireConstant, 0, len(c.Constants)),
	}
	for i, v := range c.Constants {
		switch v := v.(type) {
		case *Integer:
			wc.Constants = append(wc.Constants, wireConstant{Kind: constInteger, Int: v.Value})
		case *Boolean:
			wc.Constants = append(wc.Constants, wireConstant{Kind: constBoolean, Bool: v.Value})
		case *Null:
			wc.Constants = append(wc.Constants, wireConstant{Kind: constNull})
		default:
			return nil, fmt.Errorf("bytecode: marshal chunk: constant %d has type %T", i, v)
		}
	}

	data, err := cborEncMode.Marshal(wc)
	if err != nil {
		return nil, fmt.Errorf("bytecode: marshal chunk: %w", err)
	}
	return data, nil
}

// UnmarshalChunk decodes a chunk from CBOR bytes. Boolean and null
// constants come back as the canonical shared instances.
func UnmarshalChunk(data []byte) (*Chunk, error) {
	var wc wireChunk
	if err := cbor.Unmarshal(data, &wc); err != nil {
		return nil, fmt.Errorf("bytecode: unmarshal chunk: %w", err)
	}
	if wc.Version > ChunkVersion {
		return nil, fmt.Errorf("bytecode: unmarshal chunk: version %d is newer than supported version %d",
			wc.Version, ChunkVersion)
	}

	c := &Chunk{
		Version:   wc.Version,
		Code:      wc.Code,
		Constants: make([]Value, 0, len(wc.Constants)),
	}
	for i, wcon := range wc.Constants {
		switch wcon.Kind {
		case constInteger:
			c.Constants = append(c.Constants, &Integer{Value: wcon.Int})
		case constBoolean:
			c.Constants = append(c.Constants, BoolValue(wcon.Bool))
		case constNull:
			c.Constants = append(c.Constants, NullValue)
		default:
			return nil, fmt.Errorf("bytecode: unmarshal chunk: unknown constant kind %d for constant %d",
				wcon.Kind, i)
		}
	}
	return c, nil
}
