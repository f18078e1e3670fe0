package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/aretw0/exprgen/pkg/matrix"
)

// Overlay marks tokens to highlight on the graph, e.g. findings of a
// matrix analysis. Tokens are named by their rendered text ("sin(").
type Overlay struct {
	Unreachable []string
	DeadEnds    []string
}

// GenerateMermaid produces a Mermaid flowchart of the adjacency table.
// It applies semantic styling:
// - Start / End: ((Circle))
// - Function: [[Subroutine]]
// - Bracket: {{Hexagon}}
// - Default: [Rectangle]
// Findings from the overlay are styled when provided.
func GenerateMermaid(m *matrix.Matrix, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	sb.WriteString("    START((\"start\"))\n")
	sb.WriteString("    END((\"end\"))\n")

	tokens := m.Tokens()
	for _, tok := range tokens {
		opener, closer := "[", "]"
		switch {
		case tok.Category == domain.CategoryFunction:
			opener, closer = "[[", "]]"
		case tok.Category.IsOpen() || tok.Category.IsClose():
			opener, closer = "{{", "}}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", nodeID(tok), opener, escapeLabel(tok.Render()), closer)
	}

	for _, tok := range tokens {
		if m.CanStart(tok.Index) {
			fmt.Fprintf(&sb, "    START --> %s\n", nodeID(tok))
		}
	}

	for _, tok := range tokens {
		for _, next := range tokens {
			if m.CanFollow(tok.Index, next.Index) {
				fmt.Fprintf(&sb, "    %s --> %s\n", nodeID(tok), nodeID(next))
			}
		}
		if m.CanEnd(tok.Index) {
			fmt.Fprintf(&sb, "    %s -.-> END\n", nodeID(tok))
		}
	}

	if overlay != nil {
		byText := make(map[string]domain.Token, len(tokens))
		for _, tok := range tokens {
			byText[tok.Render()] = tok
		}

		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef unreachable fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:4,color:#000;\n")
		sb.WriteString("    classDef deadend fill:#ffcdd2,stroke:#c62828,stroke-width:2px,color:#000;\n")
		for _, g := range overlay.Unreachable {
			if tok, ok := byText[g]; ok {
				fmt.Fprintf(&sb, "    class %s unreachable;\n", nodeID(tok))
			}
		}
		for _, g := range overlay.DeadEnds {
			if tok, ok := byText[g]; ok {
				fmt.Fprintf(&sb, "    class %s deadend;\n", nodeID(tok))
			}
		}
	}

	return sb.String()
}

// nodeID avoids Mermaid syntax clashes with glyphs such as "(" or "-".
func nodeID(tok domain.Token) string {
	return fmt.Sprintf("t%d", tok.Index)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
