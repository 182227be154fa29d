package rpc

import (
	"github.com/walteh/elsense/pkg/elmodel"
	"github.com/walteh/elsense/pkg/hover"
	"github.com/walteh/elsense/pkg/position"
	"github.com/walteh/elsense/pkg/semtok"
	"github.com/walteh/elsense/pkg/tokenizer"
)

const (
	MethodTokenize       = "el/tokenize"
	MethodSetModel       = "el/setModel"
	MethodFindExpression = "el/findExpression"
	MethodHover          = "el/hover"
	MethodSemanticTokens = "el/semanticTokens"
)

type TokenizeParams struct {
	Text string `json:"text"`
}

type TokenizeResult struct {
	Tokens   []tokenizer.TextToken `json:"tokens"`
	Problems []tokenizer.Problem   `json:"problems,omitempty"`
}

type SetModelParams struct {
	URI   string               `json:"uri"`
	Text  string               `json:"text"`
	Model *elmodel.Description `json:"model,omitempty"`
}

type SetModelResult struct {
	URI       string `json:"uri"`
	Version   int    `json:"version"`
	Tokens    int    `json:"tokens"`
	Instances int    `json:"instances"`
}

// LocateParams addresses a place in a document either by rune offset or by
// line and column. Position wins when both are set.
type LocateParams struct {
	URI      string          `json:"uri"`
	Offset   int             `json:"offset"`
	Position *position.Place `json:"position,omitempty"`
}

type InvocationResult struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

type FindExpressionResult struct {
	Found      bool               `json:"found"`
	Invocation *InvocationResult  `json:"invocation,omitempty"`
	Chain      []InvocationResult `json:"chain,omitempty"`
}

type HoverResult struct {
	Found bool            `json:"found"`
	Hover *hover.LSPHover `json:"hover,omitempty"`
}

type SemanticTokensParams struct {
	URI string `json:"uri"`
}

type SemanticTokensResult struct {
	Legend semtok.Legend `json:"legend"`
	Data   []uint32      `json:"data"`
}

func newInvocationResult(source []rune, inv *elmodel.Invocation) InvocationResult {
	res := InvocationResult{
		Name:  inv.Name(),
		Start: inv.StartPosition(),
		End:   inv.EndPosition(),
	}
	start := max(inv.StartPosition(), 0)
	end := min(inv.EndPosition()+1, len(source))
	if start < end {
		res.Text = string(source[start:end])
	}
	return res
}
