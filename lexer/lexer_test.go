// ==============================================================================================
// FILE: lexer/lexer_test.go
// ==============================================================================================
// PURPOSE: Validates that the Lexer correctly identifies all token categories and literals.
// ==============================================================================================

package lexer

import (
	"testing"

	"github.com/amoghasbhardwaj/mal-go/token"
)

func TestNextTokenDelimitersAndMacros(t *testing.T) {
	input := `(+ 1 [2] {:a 3}) '~@a ~b ` + "`c" + ` @d ^{} []`
	expected := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.LPAREN, "("},
		{token.SYMBOL, "+"},
		{token.NUMBER, "1"},
		{token.LBRACKET, "["},
		{token.NUMBER, "2"},
		{token.RBRACKET, "]"},
		{token.LBRACE, "{"},
		{token.KEYWORD, "a"},
		{token.NUMBER, "3"},
		{token.RBRACE, "}"},
		{token.RPAREN, ")"},
		{token.QUOTE, "'"},
		{token.SPLICE_UNQUOTE, "~@"},
		{token.SYMBOL, "a"},
		{token.UNQUOTE, "~"},
		{token.SYMBOL, "b"},
		{token.QUASIQUOTE, "`"},
		{token.SYMBOL, "c"},
		{token.DEREF, "@"},
		{token.SYMBOL, "d"},
		{token.META, "^"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.LBRACKET, "["},
		{token.RBRACKET, "]"},
		{token.EOF, ""},
	}
	runLexerTest(t, input, expected)
}

func TestNextTokenNegativeNumberVsSymbol(t *testing.T) {
	input := `-5 -foo - +`
	expected := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.NUMBER, "-5"},
		{token.SYMBOL, "-foo"},
		{token.SYMBOL, "-"},
		{token.SYMBOL, "+"},
		{token.EOF, ""},
	}
	runLexerTest(t, input, expected)
}

func TestNextTokenStringEscapes(t *testing.T) {
	input := `"hi\n\"there\"\\" "plain"`
	expected := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.STRING, "hi\n\"there\"\\"},
		{token.STRING, "plain"},
		{token.EOF, ""},
	}
	runLexerTest(t, input, expected)
}

func TestNextTokenUnbalancedStringIsIllegal(t *testing.T) {
	l := New(`"unterminated`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %q", tok.Type)
	}
	if tok.Literal != "unbalanced string" {
		t.Fatalf("expected %q, got %q", "unbalanced string", tok.Literal)
	}
}

func TestNextTokenCommentsAndCommasAreIgnored(t *testing.T) {
	input := "1, 2 ; trailing comment\n3"
	expected := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.NUMBER, "1"},
		{token.NUMBER, "2"},
		{token.NUMBER, "3"},
		{token.EOF, ""},
	}
	runLexerTest(t, input, expected)
}

// Reader-macro characters only start a new token class when they lead a
// token; once a symbol scan is underway they are ordinary symbol runes.
func TestNextTokenSymbolAllowsColonTildeCaretAtMidToken(t *testing.T) {
	input := `foo:bar a~b c^d e@f`
	expected := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.SYMBOL, "foo:bar"},
		{token.SYMBOL, "a~b"},
		{token.SYMBOL, "c^d"},
		{token.SYMBOL, "e@f"},
		{token.EOF, ""},
	}
	runLexerTest(t, input, expected)
}

func runLexerTest(t *testing.T, input string, expectedTokens []struct {
	expectedType    token.Type
	expectedLiteral string
},
) {
	l := New(input)
	for i, expected := range expectedTokens {
		actual := l.NextToken()
		if actual.Type != expected.expectedType {
			t.Fatalf("tests[%d] - token type mismatch. expected=%q, got=%q", i, expected.expectedType, actual.Type)
		}
		if actual.Literal != expected.expectedLiteral {
			t.Fatalf("tests[%d] - token literal mismatch. expected=%q, got=%q", i, expected.expectedLiteral, actual.Literal)
		}
	}
}
