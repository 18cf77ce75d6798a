package compiler

import "testing"

func TestNextToken(t *testing.T) {
	input := `1 + 2 * 3;
if (5 < 10) { true } else { false };
7 == 7; 7 != 8;`

	expected := []struct {
		typ     TokenType
		literal string
	}{
		{TokenInteger, "1"},
		{TokenPlus, "+"},
		{TokenInteger, "2"},
		{TokenStar, "*"},
		{TokenInteger, "3"},
		{TokenSemicolon, ";"},
		{TokenIf, "if"},
		{TokenLParen, "("},
		{TokenInteger, "5"},
		{TokenLT, "<"},
		{TokenInteger, "10"},
		{TokenRParen, ")"},
		{TokenLBrace, "{"},
		{TokenTrue, "true"},
		{TokenRBrace, "}"},
		{TokenElse, "else"},
		{TokenLBrace, "{"},
		{TokenFalse, "false"},
		{TokenRBrace, "}"},
		{TokenSemicolon, ";"},
		{TokenInteger, "7"},
		{TokenEq, "=="},
		{TokenInteger, "7"},
		{TokenSemicolon, ";"},
		{TokenInteger, "7"},
		{TokenNotEq, "!="},
		{TokenInteger, "8"},
		{TokenSemicolon, ";"},
		{TokenEOF, ""},
	}

	l := NewLexer(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want.typ {
			t.Fatalf("token %d: Type = %s, want %s", i, tok.Type, want.typ)
		}
		if tok.Literal != want.literal {
			t.Fatalf("token %d: Literal = %q, want %q", i, tok.Literal, want.literal)
		}
	}
}

func TestLexerPositions(t *testing.T) {
	l := NewLexer("1 +\n22")

	tok := l.NextToken()
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Errorf("first token at %s, want 1:1", tok.Pos)
	}

	l.NextToken() // +
	tok = l.NextToken()
	if tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Errorf("token %q at %s, want 2:1", tok.Literal, tok.Pos)
	}
}

func TestLexerErrorTokens(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{"=", "="},
		{"!", "!"},
		{"@", "@"},
	}
	for _, tt := range tests {
		l := NewLexer(tt.input)
		tok := l.NextToken()
		if tok.Type != TokenError {
			t.Errorf("NextToken(%q).Type = %s, want ERROR", tt.input, tok.Type)
		}
		if tok.Literal != tt.literal {
			t.Errorf("NextToken(%q).Literal = %q, want %q", tt.input, tok.Literal, tt.literal)
		}
	}
}

func TestLexerEOFIsSticky(t *testing.T) {
	l := NewLexer("")
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != TokenEOF {
			t.Fatalf("call %d: Type = %s, want EOF", i, tok.Type)
		}
	}
}
