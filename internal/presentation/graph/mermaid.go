package graph

import (
	"fmt"
	"strings"
)

// GenerateMermaid produces a Mermaid flowchart from a view.
// It applies semantic styling:
// - Initial: ((Circle))
// - Terminal: (((Double circle)))
// - Default: [Rectangle]
// Transitions are labelled with their ID. Overlay styles are applied if provided.
func GenerateMermaid(v View, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, p := range v.Phases {
		safeID := sanitizeID(string(p))

		opener, closer := "[", "]"
		switch {
		case p == v.Initial:
			opener, closer = "((", "))"
		case v.Terminal[p]:
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, p, closer))
	}

	for _, t := range v.Transitions {
		arrow := fmt.Sprintf("-- \"%s\" -->", strings.ReplaceAll(string(t.ID), "\"", "'"))
		if len(v.Patterns[t.ID]) == 0 {
			// Declared but never fired by any rule.
			arrow = fmt.Sprintf("-. \"%s\" .->", t.ID)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeID(string(t.From)), arrow, sanitizeID(string(t.To))))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, p := range overlay.Visited {
			safeID := sanitizeID(string(p))
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.Current != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeID(string(overlay.Current))))
		}
	}

	return sb.String()
}

func sanitizeID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
