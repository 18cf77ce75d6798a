package bytecode

import (
	"fmt"
	"strconv"
)

// ValueType identifies the kind of a runtime value. The set is closed:
// adding a kind forces every operation site that switches on values to be
// revisited at compile time.
type ValueType int

const (
	TypeInteger ValueType = iota
	TypeBoolean
	TypeNull
)

// String returns a human-readable name for a ValueType.
func (t ValueType) String() string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeNull:
		return "NULL"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// Value is a Rowan runtime value.
type Value interface {
	Type() ValueType
	Inspect() string
}

// Integer is a signed 64-bit integer value.
type Integer struct {
	Value int64
}

func (i *Integer) Type() ValueType { return TypeInteger }
func (i *Integer) Inspect() string { return strconv.FormatInt(i.Value, 10) }

// Boolean is a boolean value. Only the two canonical instances True and
// False exist per process; booleans are never allocated per use and are
// compared by identity.
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ValueType { return TypeBoolean }
func (b *Boolean) Inspect() string { return strconv.FormatBool(b.Value) }

// Null is the absent value. Only the canonical NullValue instance exists
// per process.
type Null struct{}

func (n *Null) Type() ValueType { return TypeNull }
func (n *Null) Inspect() string { return "null" }

// Canonical shared instances. Immutable after initialization and therefore
// safely shared read-only across compiler and VM instances.
var (
	True      = &Boolean{Value: true}
	False     = &Boolean{Value: false}
	NullValue = &Null{}
)

// BoolValue returns the canonical Boolean for b.
func BoolValue(b bool) *Boolean {
	if b {
		return True
	}
	return False
}
