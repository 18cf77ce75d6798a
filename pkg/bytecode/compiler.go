package bytecode

import (
	"fmt"

	"github.com/rowan-lang/rowan/pkg/ast"
)

// CompileError reports a problem turning an AST into bytecode: an operator
// or node the compiler does not handle, or an emission failure.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string {
	return "compile error: " + e.Message
}

func compileErrorf(format string, args ...any) *CompileError {
	return &CompileError{Message: fmt.Sprintf(format, args...)}
}

// jumpPlaceholder is the operand value written by EmitJump before the real
// target is known. Recognizable in hex dumps of half-compiled chunks.
const jumpPlaceholder = 0xFFFF

// EmittedInstruction records an instruction the compiler emitted: its opcode
// and its offset in the chunk's code section.
type EmittedInstruction struct {
	Op       Opcode
	Position int
}

// Compiler lowers an AST into a Chunk in a single pass. Forward jumps are
// emitted with a placeholder operand and patched once the target offset is
// known. The compiler tracks the last two emitted instructions so a trailing
// DISCARD can be removed when a conditional branch must leave its value on
// the stack.
type Compiler struct {
	chunk *Chunk

	lastInstruction     EmittedInstruction
	previousInstruction EmittedInstruction

	errors []error
}

// NewCompiler creates a compiler with a fresh chunk.
func NewCompiler() *Compiler {
	return &Compiler{chunk: NewChunk()}
}

// Compile lowers node into a chunk. Convenience wrapper over a one-shot
// Compiler.
func Compile(node ast.Node) (*Chunk, error) {
	return NewCompiler().Compile(node)
}

// Compile lowers node into the compiler's chunk and returns it. The first
// error encountered is returned; the chunk is not usable after a failure.
func (c *Compiler) Compile(node ast.Node) (*Chunk, error) {
	c.compile(node)
	if len(c.errors) > 0 {
		return nil, c.errors[0]
	}
	return c.chunk, nil
}

func (c *Compiler) compile(node ast.Node) {
	switch node := node.(type) {
	case *ast.Program:
		for _, s := range node.Statements {
			c.compile(s)
		}

	case *ast.BlockStatement:
		for _, s := range node.Statements {
			c.compile(s)
		}

	case *ast.ExpressionStatement:
		c.compile(node.Expr)
		c.emit(OpDiscard)

	case *ast.IntegerLiteral:
		idx := c.chunk.AddConstant(&Integer{Value: node.Value})
		c.emit(OpConst, idx)

	case *ast.BooleanLiteral:
		if node.Value {
			c.emit(OpTrue)
		} else {
			c.emit(OpFalse)
		}

	case *ast.InfixExpression:
		c.compileInfix(node)

	case *ast.IfExpression:
		c.compileIf(node)

	default:
		c.errors = append(c.errors, compileErrorf("cannot compile node of type %T", node))
	}
}

// compileInfix lowers a binary operator. There is no LESS_THAN opcode:
// "a < b" compiles its operands in reverse and reuses GREATER_THAN.
func (c *Compiler) compileInfix(node *ast.InfixExpression) {
	if node.Op == "<" {
		c.compile(node.Right)
		c.compile(node.Left)
		c.emit(OpGreaterThan)
		return
	}

	c.compile(node.Left)
	c.compile(node.Right)

	switch node.Op {
	case "+":
		c.emit(OpAdd)
	case "-":
		c.emit(OpSub)
	case "*":
		c.emit(OpMul)
	case "/":
		c.emit(OpDiv)
	case ">":
		c.emit(OpGreaterThan)
	case "==":
		c.emit(OpEqual)
	case "!=":
		c.emit(OpNotEqual)
	default:
		c.errors = append(c.errors, compileErrorf("unknown operator %q", node.Op))
	}
}

// compileIf lowers a conditional expression. Both branches must leave
// exactly one value on the stack, so the DISCARD that each branch's final
// expression statement emits is stripped, and a missing else branch becomes
// an explicit NULL push.
func (c *Compiler) compileIf(node *ast.IfExpression) {
	c.compile(node.Condition)

	jumpNotTruthy := c.chunk.EmitJump(OpJumpIfNotTruthy)

	c.compile(node.Consequence)
	if c.lastInstructionIs(OpDiscard) {
		c.removeLastInstruction()
	}

	jumpEnd := c.chunk.EmitJump(OpJump)

	c.chunk.PatchJump(jumpNotTruthy)

	if node.Alternative == nil {
		c.emit(OpNull)
	} else {
		c.compile(node.Alternative)
		if c.lastInstructionIs(OpDiscard) {
			c.removeLastInstruction()
		}
	}

	c.chunk.PatchJump(jumpEnd)
}

// emit appends an instruction and records it for last-instruction tracking.
func (c *Compiler) emit(op Opcode, operands ...int) int {
	pos, err := c.chunk.Emit(op, operands...)
	if err != nil {
		c.errors = append(c.errors, err)
		return pos
	}
	c.setLastInstruction(op, pos)
	return pos
}

func (c *Compiler) setLastInstruction(op Opcode, pos int) {
	c.previousInstruction = c.lastInstruction
	c.lastInstruction = EmittedInstruction{Op: op, Position: pos}
}

func (c *Compiler) lastInstructionIs(op Opcode) bool {
	if len(c.chunk.Code) == 0 {
		return false
	}
	return c.lastInstruction.Op == op
}

// removeLastInstruction truncates the last emitted instruction and restores
// the previous one as last. Only one level of undo is supported.
func (c *Compiler) removeLastInstruction() {
	c.chunk.Code = c.chunk.Code[:c.lastInstruction.Position]
	c.lastInstruction = c.previousInstruction
	c.previousInstruction = EmittedInstruction{}
}
