package hetgraph

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/acadnet/hetgraph/pkg/dataset"
	"github.com/acadnet/hetgraph/pkg/models"
)

// Options controls graph construction.
type Options struct {
	// JoinDerivedEdges derives author-conference edges through an explicit
	// join on paper id instead of pairing the two relation tables row by
	// row. The positional pairing is the historical behavior and stays the
	// default; the two modes produce different edge sets whenever the
	// relation tables are not co-sorted.
	JoinDerivedEdges bool

	Logger zerolog.Logger
}

// DefaultOptions returns the default construction options: positional
// derived edges and no logging.
func DefaultOptions() Options {
	return Options{Logger: zerolog.Nop()}
}

// Build assembles the homogeneous graph from a loaded dataset using the
// default options.
func Build(ds *dataset.Dataset) (*Graph, error) {
	return BuildWithOptions(ds, DefaultOptions())
}

// BuildWithOptions maps the three entity tables onto one contiguous node-id
// space, expands same-label cliques per entity type, adds the cross-type
// relationship edges plus the derived author-conference edges, and scatters
// ground-truth labels. Every added edge is stored in both directions.
// Relationship rows referring to unknown native ids are skipped, not fatal.
func BuildWithOptions(ds *dataset.Dataset, opts Options) (*Graph, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}

	idx := NewNodeIndex(authorIDs(ds), paperIDs(ds), confIDs(ds))

	g := NewGraph(idx.NumNodes())
	g.Index = idx

	b := &builder{graph: g, index: idx}

	// Intra-type structure: entities sharing a ground-truth label are fully
	// connected within their type.
	b.addLabelCliques(models.Author, ds.Authors)
	b.addLabelCliques(models.Paper, ds.PaperLabels)
	b.addLabelCliques(models.Conference, ds.ConfLabels)

	// Cross-type structure from the relationship tables.
	for _, rel := range ds.PaperAuthor {
		b.addMappedEdge(models.Author, rel.To, models.Paper, rel.From)
	}
	for _, rel := range ds.PaperConf {
		b.addMappedEdge(models.Paper, rel.From, models.Conference, rel.To)
	}

	if opts.JoinDerivedEdges {
		b.addJoinedAuthorConfEdges(ds)
	} else {
		b.addPositionalAuthorConfEdges(ds)
	}

	b.scatterLabels(models.Author, ds.Authors)
	b.scatterLabels(models.Paper, ds.PaperLabels)
	b.scatterLabels(models.Conference, ds.ConfLabels)

	if b.skipped > 0 {
		opts.Logger.Debug().
			Int("skipped_edges", b.skipped).
			Msg("dropped relationship rows with unmapped ids")
	}

	return g, nil
}

type builder struct {
	graph   *Graph
	index   *NodeIndex
	skipped int
}

// addLabelCliques connects every unordered pair of same-label entities of one
// type. Only pairs inside a label group are generated; the expansion is
// quadratic in the group size, never in the full entity table.
func (b *builder) addLabelCliques(t models.EntityType, rows []models.LabeledEntity) {
	groups := make(map[int][]int)
	seen := make(map[int]bool, len(rows))
	for _, row := range rows {
		if seen[row.ID] {
			continue
		}
		seen[row.ID] = true
		groups[row.Label] = append(groups[row.Label], row.ID)
	}

	labels := make([]int, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	for _, label := range labels {
		members := groups[label]
		if len(members) < 2 {
			continue
		}
		sort.Ints(members)

		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				b.addMappedEdge(t, members[i], t, members[j])
			}
		}
	}
}

// addMappedEdge translates both endpoints and stores the symmetric pair.
// An unmapped endpoint drops the edge.
func (b *builder) addMappedEdge(tu models.EntityType, nativeU int, tv models.EntityType, nativeV int) {
	u, ok := b.index.Lookup(tu, nativeU)
	if !ok {
		b.skipped++
		return
	}
	v, ok := b.index.Lookup(tv, nativeV)
	if !ok {
		b.skipped++
		return
	}
	if u == v {
		return
	}

	// Bounds were established by the lookups.
	_ = b.graph.AddEdge(u, v)
}

// addPositionalAuthorConfEdges pairs row i of paper_author with row i of
// paper_conf and connects that author to that conference. The pairing is by
// row position, not by paper id; see Options.JoinDerivedEdges for the
// key-based alternative.
func (b *builder) addPositionalAuthorConfEdges(ds *dataset.Dataset) {
	n := len(ds.PaperAuthor)
	if len(ds.PaperConf) < n {
		n = len(ds.PaperConf)
	}

	for i := 0; i < n; i++ {
		b.addMappedEdge(models.Author, ds.PaperAuthor[i].To, models.Conference, ds.PaperConf[i].To)
	}
}

// addJoinedAuthorConfEdges connects an author to every conference hosting a
// paper the author wrote, resolved through an explicit join on paper id.
func (b *builder) addJoinedAuthorConfEdges(ds *dataset.Dataset) {
	confsByPaper := make(map[int][]int, len(ds.PaperConf))
	for _, rel := range ds.PaperConf {
		confsByPaper[rel.From] = append(confsByPaper[rel.From], rel.To)
	}

	for _, rel := range ds.PaperAuthor {
		for _, conf := range confsByPaper[rel.From] {
			b.addMappedEdge(models.Author, rel.To, models.Conference, conf)
		}
	}
}

// scatterLabels writes ground-truth labels into the label vector. Nodes no
// label table covers keep the zero default.
func (b *builder) scatterLabels(t models.EntityType, rows []models.LabeledEntity) {
	for _, row := range rows {
		node, ok := b.index.Lookup(t, row.ID)
		if !ok {
			continue
		}
		b.graph.Labels[node] = row.Label
	}
}

func authorIDs(ds *dataset.Dataset) []int {
	ids := make([]int, len(ds.Authors))
	for i, row := range ds.Authors {
		ids[i] = row.ID
	}
	return ids
}

func paperIDs(ds *dataset.Dataset) []int {
	ids := make([]int, len(ds.Papers))
	for i, row := range ds.Papers {
		ids[i] = row.ID
	}
	return ids
}

func confIDs(ds *dataset.Dataset) []int {
	ids := make([]int, len(ds.Conferences))
	for i, row := range ds.Conferences {
		ids[i] = row.ID
	}
	return ids
}
