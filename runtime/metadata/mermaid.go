package metadata

import (
	"fmt"
	"sort"
	"strings"
)

// nodeStyles maps node kinds to Mermaid style declarations.
var nodeStyles = map[string]string{
	KindInterface: "fill:#e8f4ff,stroke:#3b82f6",
	KindStruct:    "fill:#f0fdf4,stroke:#16a34a",
	KindEnum:      "fill:#fefce8,stroke:#ca8a04",
	NodeExternal:  "fill:#f5f5f5,stroke:#a3a3a3,stroke-dasharray:4 2",
}

// RenderMermaid renders the graph as a top-down Mermaid flowchart. Output
// is deterministic.
func RenderMermaid(g *DependencyGraph) string {
	var b strings.Builder
	b.WriteString("graph TD\n")
	if g == nil {
		return b.String()
	}

	ids := g.SortedNodeIDs()
	for _, id := range ids {
		n := g.Nodes[id]
		fmt.Fprintf(&b, "\t%s[\"%s<br/><small>%s</small>\"]\n", sanitizeID(id), n.Name, n.Module)
	}

	edges := make([]DependencyEdge, len(g.Edges))
	copy(edges, g.Edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].Relationship < edges[j].Relationship
	})
	for _, e := range edges {
		arrow := "-->"
		if e.Relationship == RelInherits || e.Relationship == RelImplements {
			arrow = "-.->"
		}
		fmt.Fprintf(&b, "    %s %s|%s| %s\n", sanitizeID(e.From), arrow, e.Relationship, sanitizeID(e.To))
	}

	for _, id := range ids {
		if css, ok := nodeStyles[g.Nodes[id].Kind]; ok {
			fmt.Fprintf(&b, "    style %s %s\n", sanitizeID(id), css)
		}
	}

	return b.String()
}

// sanitizeID makes a qualified name usable as a Mermaid node ID.
func sanitizeID(s string) string {
	replacer := strings.NewReplacer(
		" ", "_",
		".", "_",
		":", "_",
		"*", "ptr_",
		"<", "_",
		">", "_",
		",", "_",
		"-", "_",
	)
	return replacer.Replace(s)
}
