package graph

import (
	"fmt"
	"strings"
)

// GenerateDOT produces a Graphviz digraph from a view, ready for `dot -Tpng`.
func GenerateDOT(name string, v View, overlay *Overlay) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %q {\n", name)
	sb.WriteString("    rankdir=LR;\n")

	visited := make(map[string]bool)
	var current string
	if overlay != nil {
		for _, p := range overlay.Visited {
			visited[string(p)] = true
		}
		current = string(overlay.Current)
	}

	for _, p := range v.Phases {
		attrs := []string{"shape=box"}
		switch {
		case p == v.Initial:
			attrs = []string{"shape=circle"}
		case v.Terminal[p]:
			attrs = []string{"shape=doublecircle"}
		}
		switch {
		case string(p) == current:
			attrs = append(attrs, "style=filled", `fillcolor="#ffeb3b"`)
		case visited[string(p)]:
			attrs = append(attrs, "style=filled", `fillcolor="#e1f5fe"`)
		}
		fmt.Fprintf(&sb, "    %q [%s];\n", p, strings.Join(attrs, ", "))
	}

	for _, t := range v.Transitions {
		style := ""
		if len(v.Patterns[t.ID]) == 0 {
			style = ", style=dashed"
		}
		fmt.Fprintf(&sb, "    %q -> %q [label=%q%s];\n", t.From, t.To, t.ID, style)
	}

	sb.WriteString("}\n")
	return sb.String()
}
