package network

// Graph is a JSON view of a network for dashboards and tooling.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	Stats *Stats `json:"stats,omitempty"`
}

type Node struct {
	ID      int64 `json:"id"`
	Degree  int   `json:"degree"`
	Profile *User `json:"profile,omitempty"`
}

// Edge is emitted once per match with Source < Target.
type Edge struct {
	Source int64 `json:"source"`
	Target int64 `json:"target"`
}

type Stats struct {
	TotalNodes    int `json:"total_nodes"`
	TotalEdges    int `json:"total_edges"`
	IsolatedNodes int `json:"isolated_nodes"`
	MaxDegree     int `json:"max_degree"`
}

// Snapshot renders the network with nodes and edges in ascending order
func (n *Network) Snapshot() *Graph {
	graph := &Graph{
		Nodes: []Node{},
		Edges: []Edge{},
		Stats: &Stats{
			TotalNodes: len(n.nodes),
			TotalEdges: n.edges,
		},
	}

	ids := n.sortedIDs()
	for _, id := range ids {
		node := n.nodes[id]
		degree := node.degree()

		graph.Nodes = append(graph.Nodes, Node{
			ID:      id,
			Degree:  degree,
			Profile: node.profile,
		})

		if degree == 0 {
			graph.Stats.IsolatedNodes++
		}
		if degree > graph.Stats.MaxDegree {
			graph.Stats.MaxDegree = degree
		}

		matches, _ := n.MatchIDs(id)
		for _, target := range matches {
			if id < target {
				graph.Edges = append(graph.Edges, Edge{Source: id, Target: target})
			}
		}
	}

	return graph
}
