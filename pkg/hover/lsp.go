package hover

import "github.com/walteh/elsense/pkg/position"

// MarkupContent represents markup content for LSP
type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// LSPHover represents a hover response for LSP
type LSPHover struct {
	Contents MarkupContent   `json:"contents"`
	Range    *position.Range `json:"range,omitempty"`
}

// ToLSPHover converts a HoverInfo to an LSP hover response; text is the
// document the offsets refer to.
func (h *HoverInfo) ToLSPHover(text string) *LSPHover {
	if h == nil {
		return nil
	}

	value := ""
	if len(h.Content) > 0 {
		value = h.Content[0]
	}

	res := &LSPHover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: value,
		},
	}
	if rng, ok := position.RangeOf(text, h.Start, h.End); ok {
		res.Range = &rng
	}
	return res
}
