// Package clustering provides the hard-partition collaborator used by the
// community evaluator. The contract is deliberately small: vectors in,
// total node-to-cluster assignment out. Cluster indices carry no meaning
// beyond identity, so downstream consumers must tolerate permutation.
package clustering

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Clusterer produces a hard partition of N vectors into k clusters. The
// returned slice has one entry per row of the embedding matrix, each in
// [0, k).
type Clusterer interface {
	Partition(embeddings mat.Matrix, k int) ([]int, error)
}

// KMeans implements Lloyd's algorithm with k-means++ seeding on gonum
// matrices. Runs are deterministic for a fixed seed.
type KMeans struct {
	Seed          int64
	MaxIterations int
	Tolerance     float64
}

// NewKMeans creates a k-means clusterer with the given seed and default
// iteration limits.
func NewKMeans(seed int64) *KMeans {
	return &KMeans{
		Seed:          seed,
		MaxIterations: 100,
		Tolerance:     1e-6,
	}
}

// Partition assigns every row of embeddings to one of k clusters.
func (km *KMeans) Partition(embeddings mat.Matrix, k int) ([]int, error) {
	if embeddings == nil {
		return nil, fmt.Errorf("embeddings matrix is nil")
	}
	n, d := embeddings.Dims()
	if n == 0 {
		return nil, fmt.Errorf("embeddings matrix has no rows")
	}
	if k <= 0 {
		return nil, fmt.Errorf("cluster count must be positive, got %d", k)
	}

	// More clusters than points: every point is its own cluster.
	if k >= n {
		assignment := make([]int, n)
		for i := range assignment {
			assignment[i] = i
		}
		return assignment, nil
	}

	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = mat.Row(nil, i, embeddings)
	}

	rng := rand.New(rand.NewSource(km.Seed))
	centroids := km.seedCentroids(rows, k, rng)

	assignment := make([]int, n)
	for iter := 0; iter < km.MaxIterations; iter++ {
		for i, row := range rows {
			assignment[i] = nearestCentroid(row, centroids)
		}

		next := make([][]float64, k)
		counts := make([]int, k)
		for c := range next {
			next[c] = make([]float64, d)
		}
		for i, row := range rows {
			floats.Add(next[assignment[i]], row)
			counts[assignment[i]]++
		}

		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// Reseed a starved cluster with the point farthest
				// from its current centroid.
				copy(next[c], rows[farthestPoint(rows, centroids, assignment)])
				continue
			}
			floats.Scale(1.0/float64(counts[c]), next[c])
		}

		shift := 0.0
		for c := 0; c < k; c++ {
			shift += floats.Distance(centroids[c], next[c], 2)
		}
		centroids = next

		if shift < km.Tolerance {
			break
		}
	}

	for i, row := range rows {
		assignment[i] = nearestCentroid(row, centroids)
	}

	return assignment, nil
}

// seedCentroids picks k initial centroids with k-means++ style squared
// distance weighting.
func (km *KMeans) seedCentroids(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(rows)
	centroids := make([][]float64, 0, k)

	first := rng.Intn(n)
	centroids = append(centroids, append([]float64(nil), rows[first]...))

	distances := make([]float64, n)
	for len(centroids) < k {
		total := 0.0
		for i, row := range rows {
			nearest := math.Inf(1)
			for _, c := range centroids {
				if dist := floats.Distance(row, c, 2); dist < nearest {
					nearest = dist
				}
			}
			distances[i] = nearest * nearest
			total += distances[i]
		}

		if total == 0 {
			// All remaining points coincide with a centroid.
			centroids = append(centroids, append([]float64(nil), rows[rng.Intn(n)]...))
			continue
		}

		target := rng.Float64() * total
		chosen := n - 1
		acc := 0.0
		for i, weight := range distances {
			acc += weight
			if acc >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, append([]float64(nil), rows[chosen]...))
	}

	return centroids
}

func nearestCentroid(row []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		if dist := floats.Distance(row, centroid, 2); dist < bestDist {
			best = c
			bestDist = dist
		}
	}
	return best
}

func farthestPoint(rows [][]float64, centroids [][]float64, assignment []int) int {
	farthest := 0
	maxDist := -1.0
	for i, row := range rows {
		dist := floats.Distance(row, centroids[assignment[i]], 2)
		if dist > maxDist {
			maxDist = dist
			farthest = i
		}
	}
	return farthest
}
