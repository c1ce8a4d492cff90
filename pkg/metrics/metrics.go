package metrics

import (
	"fmt"

	"github.com/acadnet/hetgraph/pkg/hetgraph"
)

// Result holds the four community-quality scores of one partition.
type Result struct {
	Modularity  float64 `json:"modularity"`
	NMI         float64 `json:"nmi"`
	Conductance float64 `json:"conductance"`
	Density     float64 `json:"density"`
}

func (r Result) String() string {
	return fmt.Sprintf("modularity=%.4f nmi=%.4f conductance=%.4f density=%.4f",
		r.Modularity, r.NMI, r.Conductance, r.Density)
}

// Evaluate scores a hard partition of the graph's nodes against the graph
// structure and the ground-truth label vector. assignment must cover every
// node with a cluster index in [0, k). The graph is read, never modified.
func Evaluate(g *hetgraph.Graph, assignment []int, k int) (Result, error) {
	if g == nil {
		return Result{}, fmt.Errorf("graph is nil")
	}
	if len(assignment) != g.NumNodes {
		return Result{}, fmt.Errorf("assignment length %d does not match node count %d",
			len(assignment), g.NumNodes)
	}
	if k <= 0 {
		return Result{}, fmt.Errorf("cluster count must be positive, got %d", k)
	}
	for node, cluster := range assignment {
		if cluster < 0 || cluster >= k {
			return Result{}, fmt.Errorf("node %d assigned to cluster %d outside [0, %d)",
				node, cluster, k)
		}
	}

	nmi, err := NormalizedMutualInfo(g.Labels, assignment)
	if err != nil {
		return Result{}, fmt.Errorf("nmi: %w", err)
	}

	return Result{
		Modularity:  Modularity(g, assignment, k),
		NMI:         nmi,
		Conductance: AverageConductance(g, assignment, k),
		Density:     AverageDensity(g, assignment, k),
	}, nil
}

// Modularity computes Newman's modularity of the partition over the
// symmetrized pair list. Empty clusters contribute zero.
func Modularity(g *hetgraph.Graph, assignment []int, k int) float64 {
	m2 := float64(len(g.Pairs))
	if m2 == 0 {
		return 0.0
	}

	internal := make([]float64, k)
	volume := make([]float64, k)

	for node, cluster := range assignment {
		volume[cluster] += g.Degrees[node]
	}
	for _, pair := range g.Pairs {
		if assignment[pair.U] == assignment[pair.V] {
			internal[assignment[pair.U]]++
		}
	}

	modularity := 0.0
	for c := 0; c < k; c++ {
		modularity += internal[c]/m2 - (volume[c]/m2)*(volume[c]/m2)
	}

	return modularity
}

// AverageConductance is the arithmetic mean of per-cluster conductance
// cut(C, V\C) / min(vol(C), vol(V\C)). Clusters that are empty or span the
// whole node set are excluded from the mean; a zero minimum volume scores the
// degenerate sentinel 1.0. Returns 0.0 when no cluster qualifies.
func AverageConductance(g *hetgraph.Graph, assignment []int, k int) float64 {
	sizes := make([]int, k)
	volume := make([]float64, k)
	cut := make([]float64, k)

	for node, cluster := range assignment {
		sizes[cluster]++
		volume[cluster] += g.Degrees[node]
	}
	for _, pair := range g.Pairs {
		if assignment[pair.U] != assignment[pair.V] {
			cut[assignment[pair.U]]++
		}
	}

	total := g.VolumeTotal()

	sum := 0.0
	counted := 0
	for c := 0; c < k; c++ {
		if sizes[c] == 0 || sizes[c] == g.NumNodes {
			continue
		}
		counted++

		minVolume := volume[c]
		if other := total - volume[c]; other < minVolume {
			minVolume = other
		}

		if minVolume == 0 {
			sum += 1.0
			continue
		}
		sum += cut[c] / minVolume
	}

	if counted == 0 {
		return 0.0
	}
	return sum / float64(counted)
}

// AverageDensity is the arithmetic mean over all k clusters of
// 2*|induced edges| / (|C|*(|C|-1)), with singleton and empty clusters
// contributing 0.0. Induced edges are counted as distinct unordered pairs,
// so duplicate stored pairs cannot push a cluster past 1.0.
func AverageDensity(g *hetgraph.Graph, assignment []int, k int) float64 {
	sizes := make([]int, k)
	for _, cluster := range assignment {
		sizes[cluster]++
	}

	induced := make([]float64, k)
	seen := make(map[hetgraph.Edge]bool, len(g.Pairs)/2)
	for _, pair := range g.Pairs {
		if pair.U >= pair.V {
			continue
		}
		if assignment[pair.U] != assignment[pair.V] || seen[pair] {
			continue
		}
		seen[pair] = true
		induced[assignment[pair.U]]++
	}

	sum := 0.0
	for c := 0; c < k; c++ {
		if sizes[c] < 2 {
			continue
		}
		possible := float64(sizes[c]) * float64(sizes[c]-1)
		sum += 2.0 * induced[c] / possible
	}

	return sum / float64(k)
}
