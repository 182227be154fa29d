package tokenizer

import (
	"slices"
	"unicode/utf8"
)

// DefaultPrefixes open an embedded expression.
var DefaultPrefixes = []string{"#{", "${"}

// DefaultDescriptions returns the EL recognizer set in priority order. When
// no prefixes are given DefaultPrefixes is used.
func DefaultDescriptions(prefixes ...string) []TokenDescription {
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}
	prefixes = slices.Clone(prefixes)

	return []TokenDescription{
		Text{Prefixes: prefixes},
		ExprStart{Prefixes: prefixes},
		Whitespace{},
		ExprEnd{},
		String{},
		Primitive{},
		Name{},
		Symbol{Char: '.', TokenType: TokenDot},
		Symbol{Char: '(', TokenType: TokenParamStart},
		Symbol{Char: ')', TokenType: TokenParamEnd},
		Symbol{Char: '[', TokenType: TokenArgStart},
		Symbol{Char: ']', TokenType: TokenArgEnd},
		Symbol{Char: ',', TokenType: TokenComma},
		Operator{},
	}
}

// inExpression reports whether the cursor sits between an expression start
// and its closing brace.
func inExpression(s Scanner) bool {
	last, ok := s.LastToken()
	return ok && last.Type != TokenText && last.Type != TokenExprEnd
}

// readWhile consumes runes matching pred and returns the end offset.
func readWhile(s Scanner, offset int, pred func(rune) bool) int {
	end := offset
	for {
		ch := s.ReadNextChar()
		if ch == EOF {
			return end
		}
		if !pred(ch) {
			s.ReleaseChar()
			return end
		}
		end++
	}
}

func matchPrefix(s Scanner, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if p != "" && s.StartsWith(p) {
			return p, true
		}
	}
	return "", false
}

// Text is markup outside of any expression.
type Text struct {
	Prefixes []string
}

func (Text) Name() string { return "Text" }

func (Text) Type() TokenType { return TokenText }

func (me Text) IsStart(s Scanner, offset int) bool {
	if inExpression(s) || s.LookUpChar(offset) == EOF {
		return false
	}
	_, ok := matchPrefix(s, me.Prefixes)
	return !ok
}

func (me Text) Read(s Scanner, offset int) bool {
	end := offset
	for {
		if s.ReadNextChar() == EOF {
			break
		}
		end++
		if _, ok := matchPrefix(s, me.Prefixes); ok {
			break
		}
	}
	s.AddToken(me.Type(), offset, end)
	return true
}

// ExprStart opens an expression, e.g. "#{".
type ExprStart struct {
	Prefixes []string
}

func (ExprStart) Name() string { return "ExprStart" }

func (ExprStart) Type() TokenType { return TokenExprStart }

func (me ExprStart) IsStart(s Scanner, offset int) bool {
	if inExpression(s) {
		return false
	}
	_, ok := matchPrefix(s, me.Prefixes)
	return ok
}

func (me ExprStart) Read(s Scanner, offset int) bool {
	prefix, ok := matchPrefix(s, me.Prefixes)
	if !ok {
		return false
	}
	n := utf8.RuneCountInString(prefix)
	for range n {
		s.ReadNextChar()
	}
	s.AddToken(me.Type(), offset, offset+n)
	return true
}

// ExprEnd closes an expression.
type ExprEnd struct{}

func (ExprEnd) Name() string { return "ExprEnd" }

func (ExprEnd) Type() TokenType { return TokenExprEnd }

func (ExprEnd) IsStart(s Scanner, offset int) bool {
	return inExpression(s) && s.LookUpChar(offset) == '}'
}

func (me ExprEnd) Read(s Scanner, offset int) bool {
	s.ReadNextChar()
	s.AddToken(me.Type(), offset, offset+1)
	return true
}

type Whitespace struct{}

func (Whitespace) Name() string { return "Whitespace" }

func (Whitespace) Type() TokenType { return TokenWhitespace }

func (Whitespace) IsStart(s Scanner, offset int) bool {
	return inExpression(s) && isWhitespace(s.LookUpChar(offset))
}

func (me Whitespace) Read(s Scanner, offset int) bool {
	s.AddToken(me.Type(), offset, readWhile(s, offset, isWhitespace))
	return true
}

// String is a quoted literal. Backslash escapes the next rune; an
// unterminated string runs to the end of the source.
type String struct{}

func (String) Name() string { return "String" }

func (String) Type() TokenType { return TokenString }

func (String) IsStart(s Scanner, offset int) bool {
	if !inExpression(s) {
		return false
	}
	ch := s.LookUpChar(offset)
	return ch == '\'' || ch == '"'
}

func (me String) Read(s Scanner, offset int) bool {
	quote := s.ReadNextChar()
	end := offset + 1
	for {
		ch := s.ReadNextChar()
		if ch == EOF {
			break
		}
		end++
		if ch == '\\' {
			if s.ReadNextChar() != EOF {
				end++
			}
			continue
		}
		if ch == quote {
			break
		}
	}
	s.AddToken(me.Type(), offset, end)
	return true
}

// Name is an identifier: a bean, property or method name.
type Name struct{}

func (Name) Name() string { return "Name" }

func (Name) Type() TokenType { return TokenName }

func (Name) IsStart(s Scanner, offset int) bool {
	return inExpression(s) && isIdentifierStart(s.LookUpChar(offset))
}

func (me Name) Read(s Scanner, offset int) bool {
	s.ReadNextChar()
	s.AddToken(me.Type(), offset, readWhile(s, offset+1, isIdentifierPart))
	return true
}

// Symbol is a single punctuation rune such as '.' or '('.
type Symbol struct {
	Char      rune
	TokenType TokenType
}

func (me Symbol) Name() string { return me.TokenType.String() }

func (me Symbol) Type() TokenType { return me.TokenType }

func (me Symbol) IsStart(s Scanner, offset int) bool {
	return inExpression(s) && s.LookUpChar(offset) == me.Char
}

func (me Symbol) Read(s Scanner, offset int) bool {
	s.ReadNextChar()
	s.AddToken(me.Type(), offset, offset+1)
	return true
}

// longest first
var operators = []string{
	"==", "!=", "<=", ">=", "&&", "||",
	"!", "+", "-", "*", "/", "%", "<", ">", "?", ":",
}

type Operator struct{}

func (Operator) Name() string { return "Operator" }

func (Operator) Type() TokenType { return TokenOperator }

func (Operator) IsStart(s Scanner, offset int) bool {
	if !inExpression(s) {
		return false
	}
	_, ok := matchOperator(s)
	return ok
}

func (me Operator) Read(s Scanner, offset int) bool {
	op, ok := matchOperator(s)
	if !ok {
		return false
	}
	for range len(op) {
		s.ReadNextChar()
	}
	s.AddToken(me.Type(), offset, offset+len(op))
	return true
}

func matchOperator(s Scanner) (string, bool) {
	for _, op := range operators {
		if s.StartsWith(op) {
			return op, true
		}
	}
	return "", false
}
