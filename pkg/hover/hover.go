// Package hover provides functionality for generating hover information.
package hover

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/elsense/pkg/elmodel"
	"gitlab.com/tozd/go/errors"
)

// HoverInfo represents the information to be displayed in a hover tooltip
type HoverInfo struct {
	// Content is the markdown content to display
	Content []string
	// Start and End are the inclusive rune offsets the hover applies to
	Start int
	End   int
}

// FormatHoverResponse formats a hover response for a located invocation
func FormatHoverResponse(ctx context.Context, source []rune, inv *elmodel.Invocation) (*HoverInfo, error) {
	if inv == nil {
		return nil, errors.New("invocation cannot be nil")
	}

	chain := inv.Chain()
	zerolog.Ctx(ctx).Debug().Str("invocation", inv.Name()).Int("chain", len(chain)).Msg("formatting hover")

	var sb strings.Builder

	sb.WriteString("### EL Invocation\n\n")

	// Visual representation of the chain, base first
	for i, step := range chain {
		if i > 0 {
			sb.WriteString("    │\n")
			if i == len(chain)-1 {
				sb.WriteString("    ▼\n")
			}
		}
		sb.WriteString(label(source, step) + "\n")
	}

	if text := slice(source, chain[0].StartPosition(), inv.EndPosition()); text != "" {
		sb.WriteString("\n### Source\n\n")
		sb.WriteString("```\n")
		sb.WriteString(text + "\n")
		sb.WriteString("```")
	}

	return &HoverInfo{
		Content: []string{strings.TrimRight(sb.String(), "\n")},
		Start:   inv.StartPosition(),
		End:     inv.EndPosition(),
	}, nil
}

// label prefers the invocation's name and falls back to its source text
func label(source []rune, inv *elmodel.Invocation) string {
	if inv.Name() != "" {
		return inv.Name()
	}
	return slice(source, inv.StartPosition(), inv.EndPosition())
}

// slice returns source[start:end+1], clamped to the source
func slice(source []rune, start, end int) string {
	start = max(start, 0)
	end = min(end+1, len(source))
	if start >= end {
		return ""
	}
	return string(source[start:end])
}
