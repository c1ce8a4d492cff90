package metrics

import (
	"fmt"
	"math"
)

// NormalizedMutualInfo calculates Normalized Mutual Information (NMI) between
// two labelings of the same items, normalized by the average entropy. The
// score lies in [0, 1] and is invariant under any bijective relabeling of
// either side. Two labelings that are both single-cluster agree trivially
// and score 1.0.
func NormalizedMutualInfo(labeling1, labeling2 []int) (float64, error) {
	if len(labeling1) != len(labeling2) {
		return 0, fmt.Errorf("labelings must have the same length: %d vs %d",
			len(labeling1), len(labeling2))
	}

	n := len(labeling1)
	if n == 0 {
		return 0, nil
	}

	contingency := buildContingencyTable(labeling1, labeling2)
	mi := mutualInformation(contingency, n)

	h1 := entropy(labeling1)
	h2 := entropy(labeling2)

	avgEntropy := (h1 + h2) / 2
	if avgEntropy == 0 {
		return 1.0, nil
	}

	nmi := mi / avgEntropy
	// Guard against floating drift outside the theoretical range.
	if nmi < 0 {
		nmi = 0
	}
	if nmi > 1 {
		nmi = 1
	}
	return nmi, nil
}

type labelPair struct {
	a, b int
}

// buildContingencyTable counts co-occurrences of label pairs across the two
// labelings.
func buildContingencyTable(labeling1, labeling2 []int) map[labelPair]int {
	table := make(map[labelPair]int)
	for i := range labeling1 {
		table[labelPair{labeling1[i], labeling2[i]}]++
	}
	return table
}

// mutualInformation computes MI in bits from the contingency table.
func mutualInformation(contingency map[labelPair]int, n int) float64 {
	counts1 := make(map[int]int)
	counts2 := make(map[int]int)
	for pair, count := range contingency {
		counts1[pair.a] += count
		counts2[pair.b] += count
	}

	mi := 0.0
	for pair, nij := range contingency {
		if nij == 0 {
			continue
		}
		ni := counts1[pair.a]
		nj := counts2[pair.b]
		mi += float64(nij) / float64(n) * math.Log2(float64(nij*n)/float64(ni*nj))
	}

	return mi
}

// entropy computes the Shannon entropy of a labeling in bits.
func entropy(labeling []int) float64 {
	counts := make(map[int]int)
	for _, label := range labeling {
		counts[label]++
	}

	n := float64(len(labeling))
	h := 0.0
	for _, count := range counts {
		p := float64(count) / n
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}

	return h
}
