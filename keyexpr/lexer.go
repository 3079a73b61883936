package keyexpr

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenType classifies lexer tokens.
type TokenType int

const (
	TokEOF TokenType = iota
	TokInt
	TokIdent
	TokAt    // @
	TokComma // ,
	TokDash  // -
)

func (tt TokenType) String() string {
	switch tt {
	case TokEOF:
		return "end of key"
	case TokInt:
		return "number"
	case TokIdent:
		return "name"
	case TokAt:
		return "'@'"
	case TokComma:
		return "','"
	case TokDash:
		return "'-'"
	default:
		return fmt.Sprintf("token(%d)", int(tt))
	}
}

// Token is a single lexer token.
type Token struct {
	Type TokenType
	Val  string
	Pos  int
}

// Lex tokenizes a key expression.
func Lex(input string) ([]Token, error) {
	var tokens []Token
	i := 0
	for i < len(input) {
		ch := rune(input[i])

		// Skip whitespace.
		if unicode.IsSpace(ch) {
			i++
			continue
		}

		// Numbers.
		if ch >= '0' && ch <= '9' {
			start := i
			for i < len(input) && input[i] >= '0' && input[i] <= '9' {
				i++
			}
			tokens = append(tokens, Token{TokInt, input[start:i], start})
			continue
		}

		// Wheel names, roman numerals and position letters.
		if isNameStart(input[i]) {
			start := i
			for i < len(input) && (isNameStart(input[i]) || (input[i] >= '0' && input[i] <= '9')) {
				i++
			}
			tokens = append(tokens, Token{TokIdent, input[start:i], start})
			continue
		}

		switch ch {
		case '@':
			tokens = append(tokens, Token{TokAt, "@", i})
		case ',':
			tokens = append(tokens, Token{TokComma, ",", i})
		case '-':
			tokens = append(tokens, Token{TokDash, "-", i})
		default:
			r, _ := utf8.DecodeRuneInString(input[i:])
			return nil, fmt.Errorf("unexpected character %q at position %d", r, i)
		}
		i++
	}
	tokens = append(tokens, Token{TokEOF, "", len(input)})
	return tokens, nil
}

func isNameStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}
