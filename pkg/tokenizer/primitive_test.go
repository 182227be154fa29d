package tokenizer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/elsense/pkg/tokenizer"
)

func TestPrimitiveIsStart(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "integer", input: "9", want: true},
		{name: "leading_dot_number", input: ".5", want: true},
		{name: "lone_dot", input: ".", want: false},
		{name: "dot_name", input: ".x", want: false},
		{name: "empty", input: "", want: false},
		{name: "identifier", input: "bean", want: false},
		{name: "true_at_eof", input: "true", want: true},
		{name: "true_space", input: "true ", want: true},
		{name: "true_paren", input: "true)", want: true},
		{name: "true_glued", input: "trueX", want: false},
		{name: "true_glued_digit", input: "true1", want: false},
		{name: "false_glued_underscore", input: "false_", want: false},
		{name: "false_brace", input: "false}", want: true},
		{name: "null_at_eof", input: "null", want: true},
		{name: "null_dot", input: "null.", want: true},
		{name: "null_glued", input: "nullX", want: true},
		{name: "null_glued_digit", input: "null9", want: true},
		{name: "partial_keyword", input: "nul", want: false},
		{name: "uppercase_keyword", input: "TRUE", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tkz := tokenizer.NewTokenizer(tt.input)
			assert.Equal(t, tt.want, tokenizer.Primitive{}.IsStart(tkz, 0))
		})
	}
}

func TestPrimitiveRead(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantText string
		// cursor after the read, i.e. pushed-back runes are not consumed
		wantOffset int
	}{
		{name: "integer", input: "42", wantText: "42", wantOffset: 2},
		{name: "decimal", input: "3.14", wantText: "3.14", wantOffset: 4},
		{name: "float_suffix", input: "3.14f", wantText: "3.14f", wantOffset: 5},
		{name: "long_suffix", input: "10L", wantText: "10L", wantOffset: 3},
		{name: "double_suffix_before_paren", input: "7d)", wantText: "7d", wantOffset: 2},
		{name: "leading_dot", input: ".5", wantText: ".5", wantOffset: 2},
		{name: "second_dot_stops", input: "1.2.3", wantText: "1.2", wantOffset: 3},
		{name: "suffix_followed_by_digit", input: "1d9", wantText: "1", wantOffset: 1},
		{name: "suffix_followed_by_letter", input: "5fx", wantText: "5", wantOffset: 1},
		{name: "invalid_letter", input: "12ab", wantText: "12", wantOffset: 2},
		{name: "trailing_space", input: "12 ", wantText: "12", wantOffset: 2},
		{name: "hex", input: "0x1A2B", wantText: "0x1A2B", wantOffset: 6},
		{name: "hex_then_dot", input: "0x1A2B.", wantText: "0x1A2B", wantOffset: 6},
		{name: "hex_long_suffix", input: "0xFFL", wantText: "0xFFL", wantOffset: 5},
		{name: "hex_lowercase", input: "0xdeadbeef", wantText: "0xdeadbeef", wantOffset: 10},
		{name: "hex_prefix_only", input: "0x", wantText: "0x", wantOffset: 2},
		{name: "null", input: "null", wantText: "null", wantOffset: 4},
		{name: "null_glued", input: "nullX", wantText: "null", wantOffset: 4},
		{name: "true", input: "true)", wantText: "true", wantOffset: 4},
		{name: "false", input: "false ", wantText: "false", wantOffset: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tkz := tokenizer.NewTokenizer(tt.input)
			prim := tokenizer.Primitive{}
			require.True(t, prim.IsStart(tkz, 0), "literal should start at offset 0")
			require.True(t, prim.Read(tkz, 0))

			tok, ok := tkz.LastToken()
			require.True(t, ok, "read should add exactly one token")
			assert.Equal(t, tokenizer.TokenPrimitive, tok.Type)
			assert.Equal(t, 0, tok.Start)
			assert.Equal(t, tt.wantText, tok.Text(tkz.Source()))
			assert.Equal(t, tt.wantOffset, tkz.Offset(), "cursor should sit right after the literal")
		})
	}
}

func TestPrimitiveLeavesRejectedCharForNextToken(t *testing.T) {
	tkz := tokenizer.NewTokenizer("1.2.3", tokenizer.Primitive{})
	tokens := tkz.Scan()

	require.Len(t, tokens, 2)
	assert.Equal(t, "1.2", tokens[0].Text(tkz.Source()))
	assert.Equal(t, ".3", tokens[1].Text(tkz.Source()))
	assert.Empty(t, tkz.Problems())
}

func TestPrimitiveAtOffsetAheadOfCursor(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		offset    int
		wantStart bool
		wantText  string
	}{
		{name: "keyword_after_name", input: "x true", offset: 2, wantStart: true, wantText: "true"},
		{name: "null_after_name", input: "x nullY", offset: 2, wantStart: true, wantText: "null"},
		{name: "glued_false", input: "x falseY", offset: 2, wantStart: false},
		{name: "name_after_keyword", input: "true( x", offset: 6, wantStart: false},
		{name: "hex_after_name", input: "x 0x1F)", offset: 2, wantStart: true, wantText: "0x1F"},
		{name: "decimal_after_name", input: "ab 1.5d", offset: 3, wantStart: true, wantText: "1.5d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tkz := tokenizer.NewTokenizer(tt.input)
			prim := tokenizer.Primitive{}
			require.Equal(t, 0, tkz.Offset())
			assert.Equal(t, tt.wantStart, prim.IsStart(tkz, tt.offset))
			if !tt.wantStart {
				return
			}

			require.True(t, prim.Read(tkz, tt.offset))
			tok, ok := tkz.LastToken()
			require.True(t, ok)
			assert.Equal(t, tt.offset, tok.Start)
			assert.LessOrEqual(t, tok.End, len(tkz.Source()))
			assert.Equal(t, tt.wantText, tok.Text(tkz.Source()))
		})
	}
}

func TestPrimitiveUppercaseHexPrefixIsNotHex(t *testing.T) {
	tkz := tokenizer.NewTokenizer("0X1A")
	prim := tokenizer.Primitive{}
	require.True(t, prim.Read(tkz, 0))

	tok, ok := tkz.LastToken()
	require.True(t, ok)
	assert.Equal(t, "0", tok.Text(tkz.Source()))
	assert.Equal(t, 1, tkz.Offset())
}

func TestPrimitiveHexFollowedByDotIsSeparateToken(t *testing.T) {
	tkz := tokenizer.NewTokenizer("0x1A2B.", tokenizer.Primitive{})
	tokens := tkz.Scan()

	require.Len(t, tokens, 2)
	assert.Equal(t, tokenizer.Token{Type: tokenizer.TokenPrimitive, Start: 0, End: 6}, tokens[0])
	assert.Equal(t, tokenizer.Token{Type: tokenizer.TokenUnknown, Start: 6, End: 7}, tokens[1])
}

func TestPrimitiveInsideMarkup(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		literal string
	}{
		{name: "float", input: `<h:out value="#{a + 3.14f}"/>`, literal: "3.14f"},
		{name: "hex", input: `<h:out value="#{0x1A2B}"/>`, literal: "0x1A2B"},
		{name: "argument", input: `#{bean.getList().get(0)}`, literal: "0"},
		{name: "keyword", input: `${empty x ? null : x}`, literal: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tokenizer.Tokenize(context.Background(), tt.input, tokenizer.Options{})
			require.Empty(t, res.Problems)

			var literals []string
			for _, tok := range res.Tokens {
				if tok.Type == tokenizer.TokenPrimitive {
					literals = append(literals, res.Text(tok))
				}
			}
			assert.Equal(t, []string{tt.literal}, literals)
		})
	}
}
