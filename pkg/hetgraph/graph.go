package hetgraph

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
)

// Edge is one stored directed pair. The graph keeps the symmetrized pair
// list as directed pairs: for every stored (U, V) the reverse (V, U) is also
// stored. Duplicate pairs from overlapping construction steps are kept.
type Edge struct {
	U int `json:"u"`
	V int `json:"v"`
}

// Graph is the single homogeneous graph assembled from the heterogeneous
// publication records. Adjacency, Degrees and TotalWeight follow the pair
// list, so duplicates contribute to all three consistently. Once built, a
// Graph is read-only.
type Graph struct {
	NumNodes  int         `json:"num_nodes"`
	Adjacency [][]int     `json:"-"`
	Degrees   []float64   `json:"degrees"`
	Pairs     []Edge      `json:"-"`
	Labels    []int       `json:"labels"`
	Features  *mat.Dense  `json:"-"`
	Index     *NodeIndex  `json:"-"`

	// TotalWeight is the undirected edge count (half the pair count).
	TotalWeight float64 `json:"total_weight"`
}

// NewGraph creates an edgeless graph with n nodes, all labels zero and an
// n-by-n identity feature matrix (each node's feature vector is the standard
// basis vector for its id).
func NewGraph(n int) *Graph {
	features := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		features.Set(i, i, 1.0)
	}

	return &Graph{
		NumNodes:  n,
		Adjacency: make([][]int, n),
		Degrees:   make([]float64, n),
		Labels:    make([]int, n),
		Features:  features,
	}
}

// AddEdge stores the symmetric pair (u, v), (v, u). Self-loops are rejected;
// duplicates are not filtered.
func (g *Graph) AddEdge(u, v int) error {
	if u < 0 || u >= g.NumNodes || v < 0 || v >= g.NumNodes {
		return fmt.Errorf("node index out of range: u=%d, v=%d, numNodes=%d", u, v, g.NumNodes)
	}
	if u == v {
		return fmt.Errorf("self-loop rejected: %d", u)
	}

	g.Pairs = append(g.Pairs, Edge{U: u, V: v}, Edge{U: v, V: u})

	g.Adjacency[u] = append(g.Adjacency[u], v)
	g.Adjacency[v] = append(g.Adjacency[v], u)
	g.Degrees[u]++
	g.Degrees[v]++
	g.TotalWeight++

	return nil
}

// Neighbors returns the adjacency list of a node.
func (g *Graph) Neighbors(node int) []int {
	if node < 0 || node >= g.NumNodes {
		return nil
	}
	return g.Adjacency[node]
}

// VolumeTotal is the sum of all node degrees (twice the edge count).
func (g *Graph) VolumeTotal() float64 {
	return 2.0 * g.TotalWeight
}

// ToGonum converts the graph into a gonum simple.UndirectedGraph, collapsing
// duplicate pairs. Node ids carry over unchanged, isolated nodes included.
func (g *Graph) ToGonum() *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()

	for i := 0; i < g.NumNodes; i++ {
		ug.AddNode(simple.Node(i))
	}

	for _, pair := range g.Pairs {
		if pair.U == pair.V {
			continue
		}
		u, v := int64(pair.U), int64(pair.V)
		if !ug.HasEdgeBetween(u, v) {
			ug.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
		}
	}

	return ug
}

// Validate checks internal consistency: adjacency mirrors the pair list and
// every stored pair has its reverse present.
func (g *Graph) Validate() error {
	if g.NumNodes < 0 {
		return fmt.Errorf("negative node count: %d", g.NumNodes)
	}

	if len(g.Pairs)%2 != 0 {
		return fmt.Errorf("odd pair count %d, symmetrization broken", len(g.Pairs))
	}

	pairCount := make(map[Edge]int, len(g.Pairs))
	for _, pair := range g.Pairs {
		if pair.U < 0 || pair.U >= g.NumNodes || pair.V < 0 || pair.V >= g.NumNodes {
			return fmt.Errorf("pair out of range: (%d, %d)", pair.U, pair.V)
		}
		pairCount[pair]++
	}

	for pair, count := range pairCount {
		if pairCount[Edge{U: pair.V, V: pair.U}] != count {
			return fmt.Errorf("missing reverse pair for (%d, %d)", pair.U, pair.V)
		}
	}

	degreeSum := 0
	for i := 0; i < g.NumNodes; i++ {
		degreeSum += len(g.Adjacency[i])
	}
	if degreeSum != len(g.Pairs) {
		return fmt.Errorf("adjacency size %d does not match pair count %d", degreeSum, len(g.Pairs))
	}

	return nil
}
