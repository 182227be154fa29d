package semtok

import (
	"github.com/walteh/elsense/pkg/position"
)

// TokenType is an index into Legend.TokenTypes
type TokenType uint32

const (
	TokenKeyword TokenType = iota
	TokenNumber
	TokenString
	TokenVariable
	TokenProperty
	TokenMethod
	TokenOperator
	TokenMacro
)

// TokenModifier is a bit set over Legend.TokenModifiers
type TokenModifier uint32

const (
	ModifierNone     TokenModifier = 0
	ModifierReadonly TokenModifier = 1 << 0
)

// Legend lists the names clients need to decode Encode's output
type Legend struct {
	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
}

// DefaultLegend matches the TokenType and TokenModifier constants
func DefaultLegend() Legend {
	return Legend{
		TokenTypes:     []string{"keyword", "number", "string", "variable", "property", "method", "operator", "macro"},
		TokenModifiers: []string{"readonly"},
	}
}

// Token is a single-line semantic token
type Token struct {
	Type     TokenType
	Modifier TokenModifier
	Start    position.Place
	Length   int
}

func (t TokenType) String() string {
	legend := DefaultLegend()
	if int(t) < len(legend.TokenTypes) {
		return legend.TokenTypes[t]
	}
	return "unknown"
}
