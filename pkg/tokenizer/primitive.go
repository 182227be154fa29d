package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// literal keywords, checked in this order
var primitiveKeywords = []string{"null", "true", "false"}

const typeSuffixes = "lLfFdD"

// Primitive recognizes numeric literals (decimal, 0x hex, optional l/L/f/F/d/D
// suffix) and the null, true and false keywords.
type Primitive struct{}

var _ TokenDescription = Primitive{}

func (Primitive) Name() string { return "Primitive" }

func (Primitive) Type() TokenType { return TokenPrimitive }

// IsStart accepts null even when an identifier character follows it, while
// true and false must end at a non-identifier character.
func (Primitive) IsStart(s Scanner, offset int) bool {
	if isNumberStart(s, offset) {
		return true
	}

	keyword, ok := matchKeyword(s, offset)
	if !ok {
		return false
	}

	end := offset + utf8.RuneCountInString(keyword)
	ch := s.LookUpChar(end)
	if isWhitespace(ch) || ch == EOF || !isIdentifierPart(ch) {
		return true
	}
	return keyword == "null" && isIdentifierPart(ch)
}

func (me Primitive) Read(s Scanner, offset int) bool {
	if isNumberStart(s, offset) {
		return me.readNumber(s, offset)
	}

	keyword, ok := matchKeyword(s, offset)
	if !ok {
		return false
	}

	n := utf8.RuneCountInString(keyword)
	for range n {
		s.ReadNextChar()
	}
	s.AddToken(me.Type(), offset, offset+n)
	return true
}

// readNumber classifies runes from offset and consumes only the accepted ones,
// leaving the first rejected rune for the next token.
func (me Primitive) readNumber(s Scanner, offset int) bool {
	i := offset
	dots := 1
	hex := false

	if startsWithAt(s, offset, "0x") {
		s.ReadNextChar()
		s.ReadNextChar()
		i += 2
		dots = 0
		hex = true
	}

	for {
		ch := s.LookUpChar(i)
		if ch == EOF {
			break
		}

		if ch == '.' {
			dots--
			if dots < 0 {
				break
			}
		} else if !isDigit(ch) && !(hex && isHexDigit(ch)) {
			if strings.ContainsRune(typeSuffixes, ch) {
				next := s.LookUpChar(i + 1)
				if next == EOF || !isIdentifierPart(next) {
					s.ReadNextChar()
					i++
				}
			}
			break
		}

		s.ReadNextChar()
		i++
	}

	s.AddToken(me.Type(), offset, i)
	return true
}

func isNumberStart(s Scanner, offset int) bool {
	ch := s.LookUpChar(offset)
	if ch == '.' {
		ch = s.LookUpChar(offset + 1)
	}
	return isDigit(ch)
}

func matchKeyword(s Scanner, offset int) (string, bool) {
	for _, keyword := range primitiveKeywords {
		if startsWithAt(s, offset, keyword) {
			return keyword, true
		}
	}
	return "", false
}

func startsWithAt(s Scanner, offset int, literal string) bool {
	i := offset
	for _, ch := range literal {
		if s.LookUpChar(i) != ch {
			return false
		}
		i++
	}
	return true
}
