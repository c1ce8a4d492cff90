package hetgraph

import (
	"fmt"

	"github.com/acadnet/hetgraph/pkg/models"
)

// NodeIndex is the bijection from (entity type, native id) onto the global
// contiguous node-id space [0, N). Global ids are partitioned into three
// blocks in fixed order: authors, then papers, then conferences. The index is
// built once and never mutated afterwards.
type NodeIndex struct {
	offsets [models.NumEntityTypes]int
	counts  [models.NumEntityTypes]int
	forward [models.NumEntityTypes]map[int]int
	reverse []indexEntry
}

type indexEntry struct {
	Type     models.EntityType
	NativeID int
}

// NewNodeIndex builds the index from the three native-id enumerations, each
// in its table's first-seen order. Repeated native ids within one type keep
// their first assignment.
func NewNodeIndex(authorIDs, paperIDs, confIDs []int) *NodeIndex {
	idx := &NodeIndex{}

	blocks := [models.NumEntityTypes][]int{authorIDs, paperIDs, confIDs}

	next := 0
	for t, ids := range blocks {
		idx.offsets[t] = next
		idx.forward[t] = make(map[int]int, len(ids))

		for _, nativeID := range ids {
			if _, exists := idx.forward[t][nativeID]; exists {
				continue
			}
			idx.forward[t][nativeID] = next
			idx.reverse = append(idx.reverse, indexEntry{
				Type:     models.EntityType(t),
				NativeID: nativeID,
			})
			next++
		}

		idx.counts[t] = next - idx.offsets[t]
	}

	return idx
}

// NumNodes returns the size N of the global id space.
func (idx *NodeIndex) NumNodes() int {
	return len(idx.reverse)
}

// Lookup translates a native id of the given type into its global node id.
func (idx *NodeIndex) Lookup(t models.EntityType, nativeID int) (int, bool) {
	if int(t) < 0 || int(t) >= models.NumEntityTypes {
		return 0, false
	}
	id, ok := idx.forward[t][nativeID]
	return id, ok
}

// Block returns the half-open global id range [start, end) of one entity type.
func (idx *NodeIndex) Block(t models.EntityType) (start, end int) {
	start = idx.offsets[t]
	return start, start + idx.counts[t]
}

// Reverse maps a global node id back to its entity type and native id.
func (idx *NodeIndex) Reverse(nodeID int) (models.EntityType, int, error) {
	if nodeID < 0 || nodeID >= len(idx.reverse) {
		return 0, 0, fmt.Errorf("node id out of range: %d (num nodes %d)", nodeID, len(idx.reverse))
	}
	entry := idx.reverse[nodeID]
	return entry.Type, entry.NativeID, nil
}
