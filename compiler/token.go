// Package compiler implements the Rowan front end: a hand-written lexer and
// a Pratt parser producing the ast package's node types. Bytecode lowering
// lives in pkg/bytecode.
package compiler

import "fmt"

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenError

	TokenInteger
	TokenIdentifier

	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash

	TokenLT
	TokenGT
	TokenEq
	TokenNotEq

	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenSemicolon

	TokenIf
	TokenElse
	TokenTrue
	TokenFalse
)

var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenError:      "ERROR",
	TokenInteger:    "INTEGER",
	TokenIdentifier: "IDENTIFIER",
	TokenPlus:       "+",
	TokenMinus:      "-",
	TokenStar:       "*",
	TokenSlash:      "/",
	TokenLT:         "<",
	TokenGT:         ">",
	TokenEq:         "==",
	TokenNotEq:      "!=",
	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenLBrace:     "{",
	TokenRBrace:     "}",
	TokenSemicolon:  ";",
	TokenIf:         "if",
	TokenElse:       "else",
	TokenTrue:       "true",
	TokenFalse:      "false",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Position locates a token in the source text. Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a lexed unit of source text.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

var keywords = map[string]TokenType{
	"if":    TokenIf,
	"else":  TokenElse,
	"true":  TokenTrue,
	"false": TokenFalse,
}

// lookupIdentifier returns the keyword token type for a word, or
// TokenIdentifier when it is not a keyword.
func lookupIdentifier(word string) TokenType {
	if t, ok := keywords[word]; ok {
		return t
	}
	return TokenIdentifier
}
