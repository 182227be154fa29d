// Package tokenizer scans text containing embedded EL expressions into a flat
// token stream. Recognition is driven by an ordered list of TokenDescription
// values; the first one whose IsStart reports true at the cursor reads the
// token.
package tokenizer

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// Scanner is the view of the tokenizer that recognizers work against.
type Scanner interface {
	// LookUpChar returns the rune at offset, or EOF when offset is outside the source.
	LookUpChar(offset int) rune
	// StartsWith reports whether the source at the cursor begins with literal.
	StartsWith(literal string) bool
	// ReadNextChar consumes one rune, or returns EOF without consuming.
	ReadNextChar() rune
	// ReleaseChar pushes the rune returned by the last ReadNextChar back.
	ReleaseChar()
	// AddToken appends a token covering [start, end).
	AddToken(typ TokenType, start, end int)
	// LastToken returns the most recently added token.
	LastToken() (Token, bool)
}

// TokenDescription recognizes one kind of token. Implementations hold no
// per-scan state and may be shared between tokenizers.
type TokenDescription interface {
	IsStart(s Scanner, offset int) bool
	Read(s Scanner, offset int) bool
	Type() TokenType
	Name() string
}

// Tokenizer owns the scan state for a single source text. It must not be
// used from more than one goroutine.
type Tokenizer struct {
	source       []rune
	descriptions []TokenDescription

	index int

	// one-slot pushback
	last    rune
	hasLast bool
	pending bool

	tokens   []Token
	problems []Problem
	scanned  bool
}

var _ Scanner = (*Tokenizer)(nil)

func NewTokenizer(text string, descriptions ...TokenDescription) *Tokenizer {
	return &Tokenizer{
		source:       []rune(text),
		descriptions: descriptions,
	}
}

func (me *Tokenizer) LookUpChar(offset int) rune {
	if offset < 0 || offset >= len(me.source) {
		return EOF
	}
	return me.source[offset]
}

func (me *Tokenizer) StartsWith(literal string) bool {
	i := me.index
	for _, ch := range literal {
		if me.LookUpChar(i) != ch {
			return false
		}
		i++
	}
	return true
}

func (me *Tokenizer) ReadNextChar() rune {
	if me.pending {
		me.pending = false
		me.index++
		return me.last
	}
	if me.index >= len(me.source) {
		me.hasLast = false
		return EOF
	}
	ch := me.source[me.index]
	me.index++
	me.last = ch
	me.hasLast = true
	return ch
}

// ReleaseChar is a no-op when nothing was read or the last rune is already released.
func (me *Tokenizer) ReleaseChar() {
	if !me.hasLast || me.pending {
		return
	}
	me.pending = true
	me.index--
}

func (me *Tokenizer) AddToken(typ TokenType, start, end int) {
	if end < start {
		end = start
	}
	me.tokens = append(me.tokens, Token{Type: typ, Start: start, End: end})
}

func (me *Tokenizer) LastToken() (Token, bool) {
	if len(me.tokens) == 0 {
		return Token{}, false
	}
	return me.tokens[len(me.tokens)-1], true
}

// Offset returns the cursor position
func (me *Tokenizer) Offset() int {
	return me.index
}

// Source returns the scanned text as runes; token offsets index into it.
func (me *Tokenizer) Source() []rune {
	return me.source
}

// Problems returns the offsets where no recognizer matched.
func (me *Tokenizer) Problems() []Problem {
	return slices.Clone(me.problems)
}

// Scan tokenizes the whole source and returns the token stream. Calling it
// again returns the same tokens.
func (me *Tokenizer) Scan() []Token {
	if me.scanned {
		return slices.Clone(me.tokens)
	}
	me.scanned = true

	for me.index < len(me.source) {
		start := me.index

		desc := me.match(start)
		if desc == nil {
			me.recover(start, fmt.Sprintf("unexpected character %q", me.source[start]))
			continue
		}

		count := len(me.tokens)
		ok := desc.Read(me, start)
		me.pending = false
		me.hasLast = false

		if !ok || me.index <= start || len(me.tokens) == count {
			me.tokens = me.tokens[:count]
			me.index = start
			me.recover(start, fmt.Sprintf("%s recognizer did not consume input", desc.Name()))
		}
	}

	return slices.Clone(me.tokens)
}

func (me *Tokenizer) match(offset int) TokenDescription {
	for _, desc := range me.descriptions {
		if desc.IsStart(me, offset) {
			return desc
		}
	}
	return nil
}

// recover skips a single rune, emitting it as an unknown token.
func (me *Tokenizer) recover(offset int, message string) {
	me.problems = append(me.problems, Problem{Offset: offset, Message: message})
	me.tokens = append(me.tokens, Token{Type: TokenUnknown, Start: offset, End: offset + 1})
	me.index = offset + 1
}

// Options controls Tokenize.
type Options struct {
	// Descriptions defaults to DefaultDescriptions()
	Descriptions   []TokenDescription
	SkipWhitespace bool
}

// Result is the outcome of Tokenize.
type Result struct {
	Source   []rune
	Tokens   []Token
	Problems []Problem
}

// Text returns the source text of a token in the result
func (r *Result) Text(tok Token) string {
	return tok.Text(r.Source)
}

// TextToken is a token with its source text attached
type TextToken struct {
	Token
	Text string `json:"text"`
}

// TextTokens pairs every token with its text
func (r *Result) TextTokens() []TextToken {
	out := make([]TextToken, 0, len(r.Tokens))
	for _, tok := range r.Tokens {
		out = append(out, TextToken{Token: tok, Text: r.Text(tok)})
	}
	return out
}

// Tokenize scans text with a fresh tokenizer. The context only carries the logger.
func Tokenize(ctx context.Context, text string, opts Options) *Result {
	descriptions := opts.Descriptions
	if len(descriptions) == 0 {
		descriptions = DefaultDescriptions()
	}

	tkz := NewTokenizer(text, descriptions...)
	tokens := tkz.Scan()

	if opts.SkipWhitespace {
		tokens = slices.DeleteFunc(tokens, func(t Token) bool {
			return t.Type == TokenWhitespace
		})
	}

	problems := tkz.Problems()
	for _, p := range problems {
		zerolog.Ctx(ctx).Debug().Int("offset", p.Offset).Str("problem", p.Message).Msg("tokenizer recovered")
	}

	zerolog.Ctx(ctx).Trace().Int("tokens", len(tokens)).Int("problems", len(problems)).Msg("tokenized")

	return &Result{
		Source:   tkz.Source(),
		Tokens:   tokens,
		Problems: problems,
	}
}
