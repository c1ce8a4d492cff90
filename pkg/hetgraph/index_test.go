package hetgraph

import (
	"testing"

	"github.com/acadnet/hetgraph/pkg/models"
)

func TestNodeIndex(t *testing.T) {
	t.Run("BijectionCoversAllBlocks", func(t *testing.T) {
		idx := NewNodeIndex(
			[]int{10, 20, 30},
			[]int{5, 6},
			[]int{100},
		)

		if idx.NumNodes() != 6 {
			t.Fatalf("expected 6 nodes, got %d", idx.NumNodes())
		}

		seen := make(map[int]bool)
		lookups := []struct {
			entityType models.EntityType
			ids        []int
		}{
			{models.Author, []int{10, 20, 30}},
			{models.Paper, []int{5, 6}},
			{models.Conference, []int{100}},
		}

		for _, group := range lookups {
			for _, nativeID := range group.ids {
				global, ok := idx.Lookup(group.entityType, nativeID)
				if !ok {
					t.Fatalf("missing mapping for %v id %d", group.entityType, nativeID)
				}
				if global < 0 || global >= idx.NumNodes() {
					t.Errorf("global id %d outside [0, %d)", global, idx.NumNodes())
				}
				if seen[global] {
					t.Errorf("global id %d assigned twice", global)
				}
				seen[global] = true
			}
		}

		if len(seen) != idx.NumNodes() {
			t.Errorf("mapping covers %d ids, want %d", len(seen), idx.NumNodes())
		}
	})

	t.Run("BlockBoundariesAreCumulativeCounts", func(t *testing.T) {
		idx := NewNodeIndex([]int{1, 2, 3}, []int{1, 2}, []int{1})

		cases := []struct {
			entityType models.EntityType
			start, end int
		}{
			{models.Author, 0, 3},
			{models.Paper, 3, 5},
			{models.Conference, 5, 6},
		}

		for _, c := range cases {
			start, end := idx.Block(c.entityType)
			if start != c.start || end != c.end {
				t.Errorf("%v block = [%d, %d), want [%d, %d)", c.entityType, start, end, c.start, c.end)
			}
		}
	})

	t.Run("FirstSeenOrderWithinBlock", func(t *testing.T) {
		idx := NewNodeIndex([]int{7, 3, 9}, nil, nil)

		for position, nativeID := range []int{7, 3, 9} {
			global, ok := idx.Lookup(models.Author, nativeID)
			if !ok || global != position {
				t.Errorf("author %d mapped to %d, want %d", nativeID, global, position)
			}
		}
	})

	t.Run("DuplicateNativeIDKeepsFirstAssignment", func(t *testing.T) {
		idx := NewNodeIndex([]int{1, 1, 2}, nil, nil)

		if idx.NumNodes() != 2 {
			t.Fatalf("expected 2 nodes after deduplication, got %d", idx.NumNodes())
		}
		if global, _ := idx.Lookup(models.Author, 1); global != 0 {
			t.Errorf("author 1 mapped to %d, want 0", global)
		}
	})

	t.Run("ReverseInvertsLookup", func(t *testing.T) {
		idx := NewNodeIndex([]int{4}, []int{8}, []int{15})

		for node := 0; node < idx.NumNodes(); node++ {
			entityType, nativeID, err := idx.Reverse(node)
			if err != nil {
				t.Fatalf("Reverse(%d): %v", node, err)
			}
			global, ok := idx.Lookup(entityType, nativeID)
			if !ok || global != node {
				t.Errorf("round trip of node %d gave %d", node, global)
			}
		}

		if _, _, err := idx.Reverse(99); err == nil {
			t.Error("expected error for out-of-range node id")
		}
	})

	t.Run("UnknownIDNotMapped", func(t *testing.T) {
		idx := NewNodeIndex([]int{1}, nil, nil)

		if _, ok := idx.Lookup(models.Paper, 1); ok {
			t.Error("paper block should be empty")
		}
		if _, ok := idx.Lookup(models.Author, 2); ok {
			t.Error("author 2 was never enumerated")
		}
	})
}
