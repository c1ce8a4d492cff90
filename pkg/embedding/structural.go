package embedding

import (
	"fmt"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"

	"github.com/acadnet/hetgraph/pkg/hetgraph"
)

// Structural embeds each node as a fixed-length descriptor of its position
// in the graph: normalized degree, PageRank score, mean neighbor degree and
// local neighborhood density, padded with zeros up to the configured
// dimension.
type Structural struct {
	dimension     int
	dampingFactor float64
	tolerance     float64
}

// NewStructural creates a structural producer with the given output
// dimension (minimum 4) and standard PageRank parameters.
func NewStructural(dimension int) *Structural {
	if dimension < 4 {
		dimension = 4
	}
	return &Structural{
		dimension:     dimension,
		dampingFactor: 0.85,
		tolerance:     1e-6,
	}
}

func (*Structural) Name() string { return "structural" }

func (s *Structural) Embed(g *hetgraph.Graph) (*mat.Dense, error) {
	if g == nil {
		return nil, fmt.Errorf("graph is nil")
	}
	n := g.NumNodes
	if n == 0 {
		return nil, fmt.Errorf("graph has no nodes")
	}

	scores := s.pageRank(g)

	neighborSets := dedupedAdjacency(g)

	maxDegree := 0.0
	maxScore := 0.0
	for i := 0; i < n; i++ {
		if d := float64(len(neighborSets[i])); d > maxDegree {
			maxDegree = d
		}
		if scores[int64(i)] > maxScore {
			maxScore = scores[int64(i)]
		}
	}

	out := mat.NewDense(n, s.dimension, nil)
	for i := 0; i < n; i++ {
		degree := float64(len(neighborSets[i]))

		if maxDegree > 0 {
			out.Set(i, 0, degree/maxDegree)
		}
		if maxScore > 0 {
			out.Set(i, 1, scores[int64(i)]/maxScore)
		}
		if degree > 0 && maxDegree > 0 {
			sum := 0.0
			for neighbor := range neighborSets[i] {
				sum += float64(len(neighborSets[neighbor]))
			}
			out.Set(i, 2, sum/degree/maxDegree)
		}
		out.Set(i, 3, localDensity(i, neighborSets))
	}

	return out, nil
}

// pageRank runs gonum's PageRank over the pair list. The pairs are already
// directed-doubled, so feeding them into a directed graph reproduces the
// undirected scores.
func (s *Structural) pageRank(g *hetgraph.Graph) map[int64]float64 {
	dg := simple.NewDirectedGraph()
	for i := 0; i < g.NumNodes; i++ {
		dg.AddNode(simple.Node(i))
	}
	for _, pair := range g.Pairs {
		if pair.U == pair.V {
			continue
		}
		dg.SetEdge(simple.Edge{F: simple.Node(pair.U), T: simple.Node(pair.V)})
	}

	return network.PageRank(dg, s.dampingFactor, s.tolerance)
}

// localDensity is the fraction of possible links among a node's neighbors
// that are present (the local clustering coefficient).
func localDensity(node int, neighborSets []map[int]bool) float64 {
	neighbors := neighborSets[node]
	k := len(neighbors)
	if k < 2 {
		return 0.0
	}

	links := 0
	for u := range neighbors {
		for v := range neighbors {
			if u < v && neighborSets[u][v] {
				links++
			}
		}
	}

	return 2.0 * float64(links) / (float64(k) * float64(k-1))
}

func dedupedAdjacency(g *hetgraph.Graph) []map[int]bool {
	sets := make([]map[int]bool, g.NumNodes)
	for i := range sets {
		sets[i] = make(map[int]bool, len(g.Adjacency[i]))
	}
	for _, pair := range g.Pairs {
		if pair.U != pair.V {
			sets[pair.U][pair.V] = true
		}
	}
	return sets
}
