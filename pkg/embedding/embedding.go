// Package embedding defines the node-embedding contract consumed by the
// clustering stage and provides simple structural producers. Any component
// returning one fixed-length real vector per node satisfies the contract; a
// learned encoder can be dropped in without touching the rest of the
// pipeline.
package embedding

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/acadnet/hetgraph/pkg/hetgraph"
)

// Producer turns a graph into an N-by-d matrix with one embedding row per
// node. Producers must not modify the graph.
type Producer interface {
	Name() string
	Embed(g *hetgraph.Graph) (*mat.Dense, error)
}

// New returns the producer registered under the given name.
func New(name string, dimension int) (Producer, error) {
	switch name {
	case "onehot":
		return NewOneHot(), nil
	case "structural":
		return NewStructural(dimension), nil
	case "spectral":
		return NewSpectral(dimension), nil
	}
	return nil, fmt.Errorf("unknown embedding producer: %q", name)
}

// OneHot returns the graph's identity feature matrix unchanged: node i's
// embedding is the i-th standard basis vector. Useful as a neutral baseline
// and as the stub collaborator in tests.
type OneHot struct{}

// NewOneHot creates the identity producer.
func NewOneHot() *OneHot { return &OneHot{} }

func (*OneHot) Name() string { return "onehot" }

func (*OneHot) Embed(g *hetgraph.Graph) (*mat.Dense, error) {
	if g == nil {
		return nil, fmt.Errorf("graph is nil")
	}
	if g.Features == nil {
		return nil, fmt.Errorf("graph has no feature matrix")
	}

	out := mat.DenseCopyOf(g.Features)
	return out, nil
}
