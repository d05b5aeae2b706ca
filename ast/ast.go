// Package ast exposes the annotated-suffix-tree scoring engine behind
// a single constructor and an Index contract shared by the three
// interchangeable backends: the naive generalized suffix tree, the
// linear-time Ukkonen tree and the enhanced annotated suffix array.
// All backends produce bit-identical scores for the same input.
package ast

import (
	"errors"
	"strings"

	"east/internal/services/astprep"
	"east/internal/services/easa"
	"east/internal/services/gst"
)

// Algorithm selects the construction backend.
type Algorithm string

const (
	AlgorithmNaive  Algorithm = "ast_naive"
	AlgorithmLinear Algorithm = "ast_linear"
	AlgorithmEASA   Algorithm = "easa"
)

// TraversalOrder selects the node visiting order for Index.Traverse.
type TraversalOrder int

const (
	PreOrder TraversalOrder = iota
	PostOrder
	BreadthFirst
)

var (
	// ErrEmptyCollection is returned when the fragment collection is empty.
	ErrEmptyCollection = astprep.ErrEmptyCollection
	// ErrReservedCharacter is returned when a fragment contains a code
	// point from the reserved terminator range.
	ErrReservedCharacter = astprep.ErrReservedCharacter
	// ErrUnknownAlgorithm is returned by BuildIndex for an algorithm
	// name that matches no backend.
	ErrUnknownAlgorithm = errors.New("ast: unknown construction algorithm")
	// ErrUnsupportedTraversal is returned for traversal orders a
	// backend does not implement (breadth-first on the suffix-array
	// backend).
	ErrUnsupportedTraversal = errors.New("ast: traversal order not supported by this backend")
)

// NodeInfo describes one internal node (or lcp-interval) during a
// traversal.
type NodeInfo struct {
	// Weight is the node's leaf-count annotation.
	Weight int
}

// Visitor is the callback invoked once per internal node.
type Visitor func(NodeInfo)

// Index is a frozen annotated suffix index over a fragment collection.
// Construction is the only mutating step; a built Index is safe for
// concurrent scoring.
type Index interface {
	// Score computes the matching score of query against the index, a
	// float in [0,1] when normalized. Scoring never fails: an empty or
	// entirely unmatched query scores 0. When expander is non-nil the
	// query is expanded word-wise into synonym combinations and the
	// maximum score over the combinations is returned.
	Score(query string, normalized bool, expander SynonymExpander) float64

	// Traverse visits every internal node exactly once in the given
	// order.
	Traverse(order TraversalOrder, visit Visitor) error
}

// DetailedScorer is implemented by the tree backends; it reports the
// per-suffix contributions next to the total score. The suffix-array
// backend does not provide it.
type DetailedScorer interface {
	ScoreDetailed(query string, normalized bool) (float64, map[string]float64)
}

// BuildIndex constructs an index over fragments with the chosen
// backend. It fails on an empty collection, on fragments containing
// reserved terminator code points, and on an unknown algorithm.
func BuildIndex(fragments []string, algorithm Algorithm) (Index, error) {
	switch algorithm {
	case AlgorithmNaive:
		t, err := gst.BuildNaive(fragments)
		if err != nil {
			return nil, err
		}
		return &treeIndex{t}, nil
	case AlgorithmLinear:
		t, err := gst.BuildLinear(fragments)
		if err != nil {
			return nil, err
		}
		return &treeIndex{t}, nil
	case AlgorithmEASA:
		e, err := easa.Build(fragments)
		if err != nil {
			return nil, err
		}
		return &easaIndex{e}, nil
	default:
		return nil, ErrUnknownAlgorithm
	}
}

type treeIndex struct {
	tree *gst.Tree
}

func (ti *treeIndex) Score(query string, normalized bool, expander SynonymExpander) float64 {
	return scoreExpanded(query, expander, func(q string) float64 {
		return ti.tree.Score(q, normalized)
	})
}

func (ti *treeIndex) ScoreDetailed(query string, normalized bool) (float64, map[string]float64) {
	return ti.tree.ScoreDetailed(stripSpaces(query), normalized)
}

func (ti *treeIndex) Traverse(order TraversalOrder, visit Visitor) error {
	wrap := func(w int) { visit(NodeInfo{Weight: w}) }
	switch order {
	case PreOrder:
		ti.tree.TraversePreOrder(wrap)
	case PostOrder:
		ti.tree.TraversePostOrder(wrap)
	case BreadthFirst:
		ti.tree.TraverseBFS(wrap)
	default:
		return ErrUnsupportedTraversal
	}
	return nil
}

type easaIndex struct {
	easa *easa.EASA
}

func (ei *easaIndex) Score(query string, normalized bool, expander SynonymExpander) float64 {
	return scoreExpanded(query, expander, func(q string) float64 {
		return ei.easa.Score(q, normalized)
	})
}

func (ei *easaIndex) Traverse(order TraversalOrder, visit Visitor) error {
	wrap := func(w int) { visit(NodeInfo{Weight: w}) }
	switch order {
	case PreOrder:
		ei.easa.TraversePreOrder(wrap)
	case PostOrder:
		ei.easa.TraversePostOrder(wrap)
	default:
		return ErrUnsupportedTraversal
	}
	return nil
}

// scoreExpanded strips whitespace from the query (the index stores
// fragments without word boundaries) and, when an expander is given,
// scores every capped synonym combination and keeps the maximum.
func scoreExpanded(query string, expander SynonymExpander, score func(string) float64) float64 {
	if expander == nil {
		return score(stripSpaces(query))
	}
	best := 0.0
	for _, q := range expandQuery(query, expander, SynonymProductCap) {
		if s := score(q); s > best {
			best = s
		}
	}
	return best
}

func stripSpaces(query string) string {
	return strings.Join(strings.Fields(query), "")
}
