package metrics

import (
	"math"
	"testing"
)

func TestNormalizedMutualInfo(t *testing.T) {
	t.Run("IdenticalLabelingsScoreOne", func(t *testing.T) {
		labels := []int{0, 0, 1, 1, 2, 2}

		got, err := NormalizedMutualInfo(labels, labels)
		if err != nil {
			t.Fatalf("NormalizedMutualInfo: %v", err)
		}
		if math.Abs(got-1.0) > tolerance {
			t.Errorf("NMI = %v, want 1.0", got)
		}
	})

	t.Run("PermutationInvariance", func(t *testing.T) {
		labels := []int{0, 0, 1, 1, 2, 2, 0, 1}
		clusters := []int{2, 2, 0, 0, 1, 1, 2, 0}

		base, err := NormalizedMutualInfo(labels, clusters)
		if err != nil {
			t.Fatalf("NormalizedMutualInfo: %v", err)
		}

		permutations := []map[int]int{
			{0: 1, 1: 2, 2: 0},
			{0: 2, 1: 0, 2: 1},
			{0: 0, 1: 2, 2: 1},
		}
		for _, perm := range permutations {
			permuted := make([]int, len(clusters))
			for i, c := range clusters {
				permuted[i] = perm[c]
			}

			got, err := NormalizedMutualInfo(labels, permuted)
			if err != nil {
				t.Fatalf("NormalizedMutualInfo: %v", err)
			}
			if math.Abs(got-base) > tolerance {
				t.Errorf("NMI changed under permutation %v: %v vs %v", perm, got, base)
			}
		}
	})

	t.Run("Symmetric", func(t *testing.T) {
		a := []int{0, 0, 1, 1, 1, 2}
		b := []int{1, 1, 1, 0, 0, 0}

		ab, err := NormalizedMutualInfo(a, b)
		if err != nil {
			t.Fatal(err)
		}
		ba, err := NormalizedMutualInfo(b, a)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(ab-ba) > tolerance {
			t.Errorf("NMI not symmetric: %v vs %v", ab, ba)
		}
	})

	t.Run("BoundedInUnitInterval", func(t *testing.T) {
		cases := [][2][]int{
			{{0, 1, 0, 1, 0, 1}, {0, 0, 1, 1, 2, 2}},
			{{0, 0, 0, 1, 1, 1}, {0, 1, 2, 3, 4, 5}},
			{{3, 3, 3, 7, 7, 7}, {1, 1, 1, 1, 1, 0}},
		}

		for _, c := range cases {
			got, err := NormalizedMutualInfo(c[0], c[1])
			if err != nil {
				t.Fatal(err)
			}
			if got < 0 || got > 1 {
				t.Errorf("NMI(%v, %v) = %v outside [0, 1]", c[0], c[1], got)
			}
		}
	})

	t.Run("BothSingleClusterScoreOne", func(t *testing.T) {
		got, err := NormalizedMutualInfo([]int{5, 5, 5}, []int{0, 0, 0})
		if err != nil {
			t.Fatal(err)
		}
		if got != 1.0 {
			t.Errorf("NMI = %v, want 1.0 for two trivial labelings", got)
		}
	})

	t.Run("LengthMismatchFails", func(t *testing.T) {
		if _, err := NormalizedMutualInfo([]int{0, 1}, []int{0}); err == nil {
			t.Error("expected error for mismatched lengths")
		}
	})

	t.Run("EmptyLabelings", func(t *testing.T) {
		got, err := NormalizedMutualInfo(nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got != 0.0 {
			t.Errorf("NMI = %v, want 0.0 for empty input", got)
		}
	})
}
