package compiler

// Lexer turns Rowan source text into a token stream. It operates on bytes;
// Rowan source is ASCII outside of comments.
type Lexer struct {
	input   string
	pos     int  // Position of ch
	readPos int  // Position after ch
	ch      byte // Current byte, 0 at EOF

	line int
	col  int
}

// NewLexer creates a lexer over input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, col: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.col}
}

// NextToken scans and returns the next token. At end of input it returns
// TokenEOF forever.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := l.position()
	var tok Token

	switch l.ch {
	case 0:
		return Token{Type: TokenEOF, Pos: pos}
	case '+':
		tok = Token{Type: TokenPlus, Literal: "+", Pos: pos}
	case '-':
		tok = Token{Type: TokenMinus, Literal: "-", Pos: pos}
	case '*':
		tok = Token{Type: TokenStar, Literal: "*", Pos: pos}
	case '/':
		tok = Token{Type: TokenSlash, Literal: "/", Pos: pos}
	case '<':
		tok = Token{Type: TokenLT, Literal: "<", Pos: pos}
	case '>':
		tok = Token{Type: TokenGT, Literal: ">", Pos: pos}
	case '(':
		tok = Token{Type: TokenLParen, Literal: "(", Pos: pos}
	case ')':
		tok = Token{Type: TokenRParen, Literal: ")", Pos: pos}
	case '{':
		tok = Token{Type: TokenLBrace, Literal: "{", Pos: pos}
	case '}':
		tok = Token{Type: TokenRBrace, Literal: "}", Pos: pos}
	case ';':
		tok = Token{Type: TokenSemicolon, Literal: ";", Pos: pos}
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TokenEq, Literal: "==", Pos: pos}
		} else {
			tok = Token{Type: TokenError, Literal: "=", Pos: pos}
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TokenNotEq, Literal: "!=", Pos: pos}
		} else {
			tok = Token{Type: TokenError, Literal: "!", Pos: pos}
		}
	default:
		if isDigit(l.ch) {
			return Token{Type: TokenInteger, Literal: l.readNumber(), Pos: pos}
		}
		if isLetter(l.ch) {
			word := l.readIdentifier()
			return Token{Type: lookupIdentifier(word), Literal: word, Pos: pos}
		}
		tok = Token{Type: TokenError, Literal: string(l.ch), Pos: pos}
	}

	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}
