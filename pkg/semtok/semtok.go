package semtok

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/elsense/pkg/position"
	"github.com/walteh/elsense/pkg/tokenizer"
)

// GetTokensForText tokenizes text and returns its semantic tokens.
//
//	Example:
//	   tokens := GetTokensForText(ctx, "#{user.getName()}", tokenizer.Options{})
//	   // macro "#{", variable "user", method "getName", macro "}"
func GetTokensForText(ctx context.Context, text string, opts tokenizer.Options) []Token {
	return FromResult(ctx, tokenizer.Tokenize(ctx, text, opts))
}

// FromResult classifies already scanned tokens.
func FromResult(ctx context.Context, res *tokenizer.Result) []Token {
	lines := position.NewLines(res.Source)

	var out []Token
	for i, tok := range res.Tokens {
		typ, mod, ok := classify(res, i)
		if !ok {
			continue
		}
		out = append(out, split(res.Source, lines, tok, typ, mod)...)
	}

	zerolog.Ctx(ctx).Trace().Int("el_tokens", len(res.Tokens)).Int("semantic_tokens", len(out)).Msg("classified tokens")

	return out
}

func classify(res *tokenizer.Result, i int) (TokenType, TokenModifier, bool) {
	tok := res.Tokens[i]

	switch tok.Type {
	case tokenizer.TokenExprStart, tokenizer.TokenExprEnd:
		return TokenMacro, ModifierNone, true
	case tokenizer.TokenString:
		return TokenString, ModifierReadonly, true
	case tokenizer.TokenPrimitive:
		switch res.Text(tok) {
		case "null", "true", "false":
			return TokenKeyword, ModifierReadonly, true
		}
		return TokenNumber, ModifierReadonly, true
	case tokenizer.TokenOperator:
		return TokenOperator, ModifierNone, true
	case tokenizer.TokenName:
		if next, ok := neighbor(res.Tokens, i, 1); ok && next.Type == tokenizer.TokenParamStart {
			return TokenMethod, ModifierNone, true
		}
		if prev, ok := neighbor(res.Tokens, i, -1); ok && prev.Type == tokenizer.TokenDot {
			return TokenProperty, ModifierNone, true
		}
		return TokenVariable, ModifierNone, true
	}

	return 0, 0, false
}

// neighbor returns the closest non-whitespace token in direction step
func neighbor(tokens []tokenizer.Token, i, step int) (tokenizer.Token, bool) {
	for j := i + step; j >= 0 && j < len(tokens); j += step {
		if tokens[j].Type != tokenizer.TokenWhitespace {
			return tokens[j], true
		}
	}
	return tokenizer.Token{}, false
}

// split cuts tok at line breaks; the newline itself is not part of any piece
func split(source []rune, lines *position.Lines, tok tokenizer.Token, typ TokenType, mod TokenModifier) []Token {
	var out []Token

	start := tok.Start
	emit := func(end int) {
		if end <= start {
			return
		}
		place, ok := lines.Place(start)
		if !ok {
			return
		}
		out = append(out, Token{Type: typ, Modifier: mod, Start: place, Length: end - start})
	}

	end := min(tok.End, len(source))
	for i := start; i < end; i++ {
		if source[i] == '\n' {
			emit(i)
			start = i + 1
		}
	}
	emit(end)

	return out
}

// Encode produces the LSP relative encoding: for each token the line delta,
// the start delta (relative to the previous token when on the same line),
// the length, the type and the modifier bits.
func Encode(tokens []Token) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)

	prevLine, prevChar := 0, 0
	for _, tok := range tokens {
		deltaLine := tok.Start.Line - prevLine
		deltaChar := tok.Start.Character
		if deltaLine == 0 {
			deltaChar -= prevChar
		}

		data = append(data,
			uint32(deltaLine),
			uint32(deltaChar),
			uint32(tok.Length),
			uint32(tok.Type),
			uint32(tok.Modifier),
		)

		prevLine, prevChar = tok.Start.Line, tok.Start.Character
	}

	return data
}
