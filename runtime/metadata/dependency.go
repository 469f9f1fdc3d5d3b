package metadata

import (
	"fmt"
	"sort"
)

// Edge relationships.
const (
	RelInherits   = "inherits"
	RelImplements = "implements"
	RelProperty   = "property"
	RelParameter  = "parameter"
)

// NodeExternal marks a referenced type that has no document in the tree.
const NodeExternal = "external"

// DependencyGraph captures the references between types.
type DependencyGraph struct {
	Nodes map[string]*DependencyNode `json:"nodes"` // All nodes indexed by ID
	Edges []DependencyEdge           `json:"edges"` // All dependency edges

	// Adjacency lists for traversal (not serialized)
	outgoingEdges map[string][]DependencyEdge
	incomingEdges map[string][]DependencyEdge
}

// DependencyNode is a type in the graph. ID is the qualified name.
type DependencyNode struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Module string `json:"module"`
	Name   string `json:"name"`
}

// DependencyEdge points from a type to a type it references. Weight counts
// how many members produce the same edge.
type DependencyEdge struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Relationship string `json:"relationship"`
	Weight       int    `json:"weight"`
}

// DependencyOptions configures dependency graph queries
type DependencyOptions struct {
	Depth   int      // Maximum traversal depth (0 = unlimited)
	Reverse bool     // Reverse traversal (find what depends on this)
	Types   []string // Filter by relationship (e.g., ["inherits", "property"])
}

type edgeKey struct {
	from, to, rel string
}

type graphBuilder struct {
	reg     *Registry
	graph   *DependencyGraph
	weights map[edgeKey]int
	order   []edgeKey
}

// BuildDependencyGraph constructs the complete type graph of a registry.
func BuildDependencyGraph(reg *Registry) *DependencyGraph {
	b := &graphBuilder{
		reg: reg,
		graph: &DependencyGraph{
			Nodes: make(map[string]*DependencyNode),
			Edges: make([]DependencyEdge, 0),
		},
		weights: make(map[edgeKey]int),
	}
	if reg == nil {
		b.graph.index()
		return b.graph
	}

	for _, t := range reg.Types() {
		b.graph.Nodes[t.QualifiedName()] = &DependencyNode{
			ID:     t.QualifiedName(),
			Kind:   t.TypeKind(),
			Module: t.ModuleName(),
			Name:   t.TypeName(),
		}
	}

	for _, t := range reg.Types() {
		from := t.QualifiedName()
		s := structOf(t)
		if s == nil {
			continue
		}
		if s.Parent != nil {
			b.addRef(from, s.Parent, RelInherits)
		}
		for _, p := range s.Properties {
			walkReferences(p, func(ref *TypeReference) { b.addRef(from, ref, RelProperty) })
		}

		cls, ok := t.(*Class)
		if !ok {
			continue
		}
		for _, iface := range cls.Interfaces {
			if target, err := reg.Type(iface); err == nil {
				b.addEdge(from, target.QualifiedName(), RelImplements)
			}
		}
		for _, fn := range cls.Functions {
			for _, p := range fn.Parameters {
				walkReferences(p, func(ref *TypeReference) { b.addRef(from, ref, RelParameter) })
			}
			walkReferences(fn.Return, func(ref *TypeReference) { b.addRef(from, ref, RelParameter) })
		}
	}

	for _, k := range b.order {
		b.graph.Edges = append(b.graph.Edges, DependencyEdge{
			From:         k.from,
			To:           k.to,
			Relationship: k.rel,
			Weight:       b.weights[k],
		})
	}
	b.graph.index()
	return b.graph
}

func (b *graphBuilder) addRef(from string, ref *TypeReference, rel string) {
	if ref == nil || ref.FieldType != FieldTypeName {
		return
	}
	to := ref.QualifiedName()
	if _, exists := b.graph.Nodes[to]; !exists {
		b.graph.Nodes[to] = &DependencyNode{
			ID:     to,
			Kind:   NodeExternal,
			Module: ref.Module,
			Name:   ref.Name,
		}
	}
	b.addEdge(from, to, rel)
}

func (b *graphBuilder) addEdge(from, to, rel string) {
	k := edgeKey{from: from, to: to, rel: rel}
	if _, seen := b.weights[k]; !seen {
		b.order = append(b.order, k)
	}
	b.weights[k]++
}

// index builds the adjacency lists.
func (g *DependencyGraph) index() {
	g.outgoingEdges = make(map[string][]DependencyEdge)
	g.incomingEdges = make(map[string][]DependencyEdge)
	for _, e := range g.Edges {
		g.outgoingEdges[e.From] = append(g.outgoingEdges[e.From], e)
		g.incomingEdges[e.To] = append(g.incomingEdges[e.To], e)
	}
}

// Graph returns the full dependency graph, built on first use.
func (r *Registry) Graph() *DependencyGraph {
	r.graphOnce.Do(func() {
		r.graph = BuildDependencyGraph(r)
	})
	return r.graph
}

// Dependencies finds the types reachable from name.
func (r *Registry) Dependencies(name string, opts DependencyOptions) (*DependencyGraph, error) {
	start, err := r.Type(name)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("deps:%s:%d:%v:%v", start.QualifiedName(), opts.Depth, opts.Reverse, opts.Types)
	if cached, ok := r.cache.Get(cacheKey); ok {
		return cached.(*DependencyGraph), nil
	}

	result := extractSubgraph(r.Graph(), start.QualifiedName(), opts)

	r.cache.Add(cacheKey, result)
	return result, nil
}

// extractSubgraph extracts a subgraph using BFS traversal
func extractSubgraph(fullGraph *DependencyGraph, startNode string, opts DependencyOptions) *DependencyGraph {
	result := &DependencyGraph{
		Nodes: make(map[string]*DependencyNode),
		Edges: make([]DependencyEdge, 0),
	}

	visited := make(map[string]bool)
	queue := []depthNode{{id: startNode, depth: 0}}

	if node, exists := fullGraph.Nodes[startNode]; exists {
		result.Nodes[startNode] = node
	}
	visited[startNode] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		var edges []DependencyEdge
		if opts.Reverse {
			edges = fullGraph.incomingEdges[current.id]
		} else {
			edges = fullGraph.outgoingEdges[current.id]
		}

		if len(opts.Types) > 0 {
			edges = filterEdgesByType(edges, opts.Types)
		}

		for _, edge := range edges {
			result.Edges = append(result.Edges, edge)

			nextNode := edge.To
			if opts.Reverse {
				nextNode = edge.From
			}

			if !visited[nextNode] {
				visited[nextNode] = true

				if node, exists := fullGraph.Nodes[nextNode]; exists {
					result.Nodes[nextNode] = node
				}

				// Check depth limit for next level before queuing
				if opts.Depth == 0 || current.depth+1 < opts.Depth {
					queue = append(queue, depthNode{id: nextNode, depth: current.depth + 1})
				}
			}
		}
	}

	result.index()
	return result
}

// depthNode tracks a node and its depth during traversal
type depthNode struct {
	id    string
	depth int
}

// filterEdgesByType filters edges by relationship type
func filterEdgesByType(edges []DependencyEdge, types []string) []DependencyEdge {
	typeSet := make(map[string]bool)
	for _, t := range types {
		typeSet[t] = true
	}

	var result []DependencyEdge
	for _, edge := range edges {
		if typeSet[edge.Relationship] {
			result = append(result, edge)
		}
	}
	return result
}

// SortedNodeIDs returns the node IDs in lexical order.
func (g *DependencyGraph) SortedNodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DetectCycles detects circular references in the graph. Each cycle ends
// with its first node, so a self reference is reported as [A A].
func DetectCycles(graph *DependencyGraph) [][]string {
	if graph.outgoingEdges == nil {
		graph.index()
	}

	var cycles [][]string
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for _, nodeID := range graph.SortedNodeIDs() {
		if !visited[nodeID] {
			findCycles(graph, nodeID, visited, recStack, nil, &cycles)
		}
	}

	return cycles
}

// findCycles performs DFS to find cycles
func findCycles(graph *DependencyGraph, nodeID string, visited, recStack map[string]bool, path []string, cycles *[][]string) {
	visited[nodeID] = true
	recStack[nodeID] = true
	path = append(path, nodeID)

	for _, edge := range graph.outgoingEdges[nodeID] {
		nextNode := edge.To

		if recStack[nextNode] {
			cycleStart := -1
			for i, n := range path {
				if n == nextNode {
					cycleStart = i
					break
				}
			}
			if cycleStart >= 0 {
				cycle := make([]string, len(path)-cycleStart)
				copy(cycle, path[cycleStart:])
				cycle = append(cycle, nextNode) // Close the cycle
				*cycles = append(*cycles, cycle)
			}
		} else if !visited[nextNode] {
			findCycles(graph, nextNode, visited, recStack, path, cycles)
		}
	}

	recStack[nodeID] = false
}
