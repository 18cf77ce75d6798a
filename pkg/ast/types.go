// Package ast defines the node types for Rowan source programs as produced
// by the parser and consumed by the bytecode compiler.
package ast

import (
	"strconv"
	"strings"
)

// Node is implemented by every AST node.
type Node interface {
	String() string
}

// Statement is a node that appears at statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of a parsed source unit.
type Program struct {
	Statements []Statement
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// ExpressionStatement wraps an expression used at statement position.
// The expression's value is discarded after evaluation.
type ExpressionStatement struct {
	Expr Expression
}

func (s *ExpressionStatement) statementNode() {}
func (s *ExpressionStatement) String() string {
	if s.Expr == nil {
		return ""
	}
	return s.Expr.String()
}

// BlockStatement is a brace-delimited sequence of statements.
type BlockStatement struct {
	Statements []Statement
}

func (b *BlockStatement) statementNode() {}
func (b *BlockStatement) String() string {
	var sb strings.Builder
	for _, s := range b.Statements {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// IntegerLiteral is a base-10 integer literal.
type IntegerLiteral struct {
	Value int64
}

func (i *IntegerLiteral) expressionNode() {}
func (i *IntegerLiteral) String() string  { return strconv.FormatInt(i.Value, 10) }

// BooleanLiteral is a true/false literal.
type BooleanLiteral struct {
	Value bool
}

func (b *BooleanLiteral) expressionNode() {}
func (b *BooleanLiteral) String() string  { return strconv.FormatBool(b.Value) }

// Identifier is a bare name. The current compiler core has no variable
// bindings, so identifiers parse but are rejected at compile time; the node
// exists as the extension point for a fuller language.
type Identifier struct {
	Name string
}

func (i *Identifier) expressionNode() {}
func (i *Identifier) String() string  { return i.Name }

// InfixExpression is a binary operator application.
type InfixExpression struct {
	Op    string // "+", "-", "*", "/", "<", ">", "==", "!="
	Left  Expression
	Right Expression
}

func (e *InfixExpression) expressionNode() {}
func (e *InfixExpression) String() string {
	return "(" + e.Left.String() + " " + e.Op + " " + e.Right.String() + ")"
}

// IfExpression is a conditional expression. Alternative is nil when there
// is no else branch; the expression then evaluates to null when the
// condition is not truthy.
type IfExpression struct {
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (e *IfExpression) expressionNode() {}
func (e *IfExpression) String() string {
	s := "if (" + e.Condition.String() + ") {" + e.Consequence.String() + "}"
	if e.Alternative != nil {
		s += " else {" + e.Alternative.String() + "}"
	}
	return s
}
