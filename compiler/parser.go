package compiler

import (
	"fmt"
	"strconv"

	"github.com/rowan-lang/rowan/pkg/ast"
)

// Operator precedence levels, lowest binds loosest.
const (
	precLowest = iota
	precEquals      // == !=
	precLessGreater // < >
	precSum         // + -
	precProduct     // * /
)

var precedences = map[TokenType]int{
	TokenEq:    precEquals,
	TokenNotEq: precEquals,
	TokenLT:    precLessGreater,
	TokenGT:    precLessGreater,
	TokenPlus:  precSum,
	TokenMinus: precSum,
	TokenStar:  precProduct,
	TokenSlash: precProduct,
}

// Parser is a Pratt parser over the lexer's token stream. Errors are
// collected rather than aborting, so one parse reports as many problems
// as it can.
type Parser struct {
	lexer *Lexer

	curToken  Token
	peekToken Token

	errors []string
}

// NewParser creates a parser for the given source text.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Prime curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the parse errors collected so far.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf("%s: %s", p.curToken.Pos, fmt.Sprintf(format, args...)))
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

func (p *Parser) expectPeek(t TokenType) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}
	p.errors = append(p.errors, fmt.Sprintf("%s: expected %s, got %s",
		p.peekToken.Pos, t, p.peekToken.Type))
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return precLowest
}

// ParseProgram parses the whole input and returns the program root. Check
// Errors before using the result.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for p.curToken.Type != TokenEOF {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}
	return program
}

func (p *Parser) parseStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Expr: p.parseExpression(precLowest)}
	// Semicolons terminate expression statements but are optional before
	// EOF and closing braces.
	if p.peekToken.Type == TokenSemicolon {
		p.nextToken()
	}
	if stmt.Expr == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for p.peekToken.Type != TokenSemicolon && precedence < p.peekPrecedence() {
		p.nextToken()
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expression {
	switch p.curToken.Type {
	case TokenInteger:
		return p.parseIntegerLiteral()
	case TokenTrue:
		return &ast.BooleanLiteral{Value: true}
	case TokenFalse:
		return &ast.BooleanLiteral{Value: false}
	case TokenIdentifier:
		return &ast.Identifier{Name: p.curToken.Literal}
	case TokenLParen:
		return p.parseGrouped()
	case TokenIf:
		return p.parseIf()
	default:
		p.errorf("unexpected token %s", p.curToken.Type)
		return nil
	}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.errorf("cannot parse %q as integer", p.curToken.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Value: value}
}

func (p *Parser) parseInfix(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Op:   p.curToken.Literal,
		Left: left,
	}
	precedence := precedences[p.curToken.Type]
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseGrouped() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(precLowest)
	if !p.expectPeek(TokenRParen) {
		return nil
	}
	return expr
}

func (p *Parser) parseIf() ast.Expression {
	expr := &ast.IfExpression{}

	if !p.expectPeek(TokenLParen) {
		return nil
	}
	p.nextToken()
	expr.Condition = p.parseExpression(precLowest)
	if !p.expectPeek(TokenRParen) {
		return nil
	}

	if !p.expectPeek(TokenLBrace) {
		return nil
	}
	expr.Consequence = p.parseBlock()

	if p.peekToken.Type == TokenElse {
		p.nextToken()
		if !p.expectPeek(TokenLBrace) {
			return nil
		}
		expr.Alternative = p.parseBlock()
	}

	return expr
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	block := &ast.BlockStatement{}
	p.nextToken()
	for p.curToken.Type != TokenRBrace && p.curToken.Type != TokenEOF {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	if p.curToken.Type != TokenRBrace {
		p.errorf("unterminated block")
	}
	return block
}
