package bytecode

import (
	"encoding/binary"
	"fmt"
)

// RuntimeError reports a failure during bytecode execution: a type mismatch,
// division by zero, stack underflow, or a malformed instruction stream.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string {
	return "runtime error: " + e.Message
}

func runtimeErrorf(format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

// StackSize is the initial operand stack capacity. The stack grows by
// doubling when exceeded.
const StackSize = 2048

// VM executes compiled chunks with a fetch-decode-execute loop over an
// operand stack. A VM is reusable across Run calls but not safe for
// concurrent use.
type VM struct {
	chunk *Chunk

	stack []Value
	sp    int // Next free slot; stack[sp-1] is top

	// Trace prints each instruction and the stack before executing it.
	Trace bool
}

// NewVM creates a VM with an empty stack.
func NewVM() *VM {
	return &VM{stack: make([]Value, StackSize)}
}

// Run executes a chunk from offset 0 until the instruction stream is
// exhausted. The stack pointer is reset first, so a VM can run successive
// chunks; slot contents from earlier runs are not cleared.
func (vm *VM) Run(chunk *Chunk) error {
	vm.chunk = chunk
	vm.sp = 0

	code := chunk.Code
	for ip := 0; ip < len(code); ip++ {
		op := Opcode(code[ip])

		if vm.Trace {
			vm.trace(ip, op)
		}

		switch op {
		case OpConst:
			if ip+3 > len(code) {
				return runtimeErrorf("truncated instruction stream: %s at offset %d", op, ip)
			}
			idx := int(binary.BigEndian.Uint16(code[ip+1:]))
			ip += 2
			if idx >= len(chunk.Constants) {
				return runtimeErrorf("constant index %d out of range (pool has %d)",
					idx, len(chunk.Constants))
			}
			if err := vm.push(chunk.Constants[idx]); err != nil {
				return err
			}

		case OpTrue:
			if err := vm.push(True); err != nil {
				return err
			}

		case OpFalse:
			if err := vm.push(False); err != nil {
				return err
			}

		case OpNull:
			if err := vm.push(NullValue); err != nil {
				return err
			}

		case OpDiscard:
			if _, err := vm.pop(); err != nil {
				return err
			}

		case OpAdd, OpSub, OpMul, OpDiv:
			if err := vm.runBinaryOp(op); err != nil {
				return err
			}

		case OpEqual, OpNotEqual, OpGreaterThan:
			if err := vm.runComparison(op); err != nil {
				return err
			}

		case OpJump:
			if ip+3 > len(code) {
				return runtimeErrorf("truncated instruction stream: %s at offset %d", op, ip)
			}
			target := int(binary.BigEndian.Uint16(code[ip+1:]))
			ip = target - 1 // Loop increment lands on target

		case OpJumpIfNotTruthy:
			if ip+3 > len(code) {
				return runtimeErrorf("truncated instruction stream: %s at offset %d", op, ip)
			}
			target := int(binary.BigEndian.Uint16(code[ip+1:]))
			ip += 2
			cond, err := vm.pop()
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				ip = target - 1
			}

		default:
			return runtimeErrorf("unknown opcode 0x%02X at offset %d", byte(op), ip)
		}
	}

	return nil
}

// runBinaryOp executes an arithmetic instruction. Both operands must be
// integers; the right operand is on top of the stack.
func (vm *VM) runBinaryOp(op Opcode) error {
	right, err := vm.pop()
	if err != nil {
		return err
	}
	left, err := vm.pop()
	if err != nil {
		return err
	}

	leftInt, lok := left.(*Integer)
	rightInt, rok := right.(*Integer)
	if !lok || !rok {
		return runtimeErrorf("unsupported types for binary operation: %s %s",
			left.Type(), right.Type())
	}

	var result int64
	switch op {
	case OpAdd:
		result = leftInt.Value + rightInt.Value
	case OpSub:
		result = leftInt.Value - rightInt.Value
	case OpMul:
		result = leftInt.Value * rightInt.Value
	case OpDiv:
		if rightInt.Value == 0 {
			return runtimeErrorf("division by zero")
		}
		result = leftInt.Value / rightInt.Value
	}

	return vm.push(&Integer{Value: result})
}

// runComparison executes a comparison instruction. Integer pairs compare
// numerically; any other pair compares by identity, which is exact for
// booleans and null because they are canonical singletons.
func (vm *VM) runComparison(op Opcode) error {
	right, err := vm.pop()
	if err != nil {
		return err
	}
	left, err := vm.pop()
	if err != nil {
		return err
	}

	leftInt, lok := left.(*Integer)
	rightInt, rok := right.(*Integer)
	if lok && rok {
		switch op {
		case OpEqual:
			return vm.push(BoolValue(leftInt.Value == rightInt.Value))
		case OpNotEqual:
			return vm.push(BoolValue(leftInt.Value != rightInt.Value))
		case OpGreaterThan:
			return vm.push(BoolValue(leftInt.Value > rightInt.Value))
		}
	}

	switch op {
	case OpEqual:
		return vm.push(BoolValue(left == right))
	case OpNotEqual:
		return vm.push(BoolValue(left != right))
	default:
		return runtimeErrorf("unsupported types for binary operation: %s %s",
			left.Type(), right.Type())
	}
}

func (vm *VM) push(v Value) error {
	if vm.sp >= len(vm.stack) {
		grown := make([]Value, len(vm.stack)*2)
		copy(grown, vm.stack)
		vm.stack = grown
	}
	vm.stack[vm.sp] = v
	vm.sp++
	return nil
}

func (vm *VM) pop() (Value, error) {
	if vm.sp == 0 {
		return nil, runtimeErrorf("stack underflow")
	}
	vm.sp--
	return vm.stack[vm.sp], nil
}

// isTruthy implements Rowan truthiness: booleans are themselves, null is
// false, everything else (all integers included) is true.
func isTruthy(v Value) bool {
	switch v := v.(type) {
	case *Boolean:
		return v.Value
	case *Null:
		return false
	default:
		return true
	}
}

// LastPopped returns the value most recently popped from the stack. Pops do
// not clear slots, so after a program's final DISCARD the result still sits
// at stack[sp]. Returns nil when nothing was ever pushed.
func (vm *VM) LastPopped() Value {
	if vm.sp >= len(vm.stack) {
		return nil
	}
	return vm.stack[vm.sp]
}

// StackTop returns the current top of stack, or nil when empty.
func (vm *VM) StackTop() Value {
	if vm.sp == 0 {
		return nil
	}
	return vm.stack[vm.sp-1]
}

func (vm *VM) trace(ip int, op Opcode) {
	fmt.Printf("%04d %-18s sp=%d [", ip, op.String(), vm.sp)
	for i := 0; i < vm.sp; i++ {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(vm.stack[i].Inspect())
	}
	fmt.Println("]")
}
