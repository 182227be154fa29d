package tokenizer

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenUnknown TokenType = iota
	TokenText
	TokenExprStart
	TokenExprEnd
	TokenWhitespace
	TokenString
	TokenPrimitive
	TokenName
	TokenDot
	TokenParamStart
	TokenParamEnd
	TokenArgStart
	TokenArgEnd
	TokenComma
	TokenOperator
)

var tokenTypeNames = map[TokenType]string{
	TokenUnknown:    "Unknown",
	TokenText:       "Text",
	TokenExprStart:  "ExprStart",
	TokenExprEnd:    "ExprEnd",
	TokenWhitespace: "Whitespace",
	TokenString:     "String",
	TokenPrimitive:  "Primitive",
	TokenName:       "Name",
	TokenDot:        "Dot",
	TokenParamStart: "ParamStart",
	TokenParamEnd:   "ParamEnd",
	TokenArgStart:   "ArgStart",
	TokenArgEnd:     "ArgEnd",
	TokenComma:      "Comma",
	TokenOperator:   "Operator",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// MarshalText lets token types show up by name in JSON and YAML output
func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TokenType) UnmarshalText(text []byte) error {
	for typ, name := range tokenTypeNames {
		if name == string(text) {
			*t = typ
			return nil
		}
	}
	return errors.Errorf("unknown token type %q", string(text))
}

// Token is a classified slice [Start, End) of the source, in rune offsets.
type Token struct {
	Type  TokenType `json:"type"`
	Start int       `json:"start"`
	End   int       `json:"end"`
}

// Len returns the number of runes covered by the token
func (t Token) Len() int {
	return t.End - t.Start
}

// Text returns the slice of source covered by the token
func (t Token) Text(source []rune) string {
	if t.Start < 0 || t.End > len(source) || t.Start > t.End {
		return ""
	}
	return string(source[t.Start:t.End])
}

func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d]", t.Type, t.Start, t.End)
}

// Problem records an offset where no recognizer matched
type Problem struct {
	Offset  int    `json:"offset"`
	Message string `json:"message"`
}
