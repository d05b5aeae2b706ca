package gst

import (
	"errors"
	"math"
	"testing"

	"east/internal/services/astprep"
)

const eps = 1e-12

var builders = []struct {
	name  string
	build func([]string) (*Tree, error)
}{
	{"naive", BuildNaive},
	{"linear", BuildLinear},
}

var collections = [][]string{
	{"ABCD", "ABCE"},
	{"AAAA"},
	{"HELLO", "WORLD", "HELLOWORLD"},
	{"BANANA"},
	{"MINE", "MINING"},
	{"abcd efg ops", "xyzq", "test"},
	{"A"},
	{"AB", "BA", "ABAB", "BABA"},
}

func TestBuildEmptyCollection(t *testing.T) {
	for _, b := range builders {
		t.Run(b.name, func(t *testing.T) {
			if _, err := b.build(nil); !errors.Is(err, astprep.ErrEmptyCollection) {
				t.Fatalf("Expected ErrEmptyCollection, got %v", err)
			}
		})
	}
}

func TestNaiveLinearStructuralEquality(t *testing.T) {
	for _, fragments := range collections {
		naive, err := BuildNaive(fragments)
		if err != nil {
			t.Fatalf("BuildNaive(%v) failed: %v", fragments, err)
		}
		linear, err := BuildLinear(fragments)
		if err != nil {
			t.Fatalf("BuildLinear(%v) failed: %v", fragments, err)
		}
		if !naive.Equals(linear) {
			t.Errorf("Naive and linear trees differ for %v", fragments)
		}
		if !linear.Equals(naive) {
			t.Errorf("Equals is not symmetric for %v", fragments)
		}
	}
}

func TestRootWeightConservation(t *testing.T) {
	for _, b := range builders {
		t.Run(b.name, func(t *testing.T) {
			for _, fragments := range collections {
				tree, err := b.build(fragments)
				if err != nil {
					t.Fatalf("build(%v) failed: %v", fragments, err)
				}
				want := 0
				for _, f := range fragments {
					want += len([]rune(f))
				}
				if got := tree.RootWeight(); got != want {
					t.Errorf("Root weight for %v: got %d, want %d", fragments, got, want)
				}
				if got := tree.LeafCount(); got != want {
					t.Errorf("Leaf count for %v: got %d, want %d", fragments, got, want)
				}
			}
		})
	}
}

func TestNoTerminatorChildrenAtRoot(t *testing.T) {
	tree, err := BuildLinear([]string{"AB", "CD", "EF"})
	if err != nil {
		t.Fatalf("BuildLinear failed: %v", err)
	}
	for c := range tree.nodes[tree.root].children {
		if c >= astprep.TerminatorBase {
			t.Errorf("Degenerate terminator child %U left at the root", c)
		}
	}
}

func TestPath(t *testing.T) {
	tree, err := BuildNaive([]string{"ABCD", "ABCE"})
	if err != nil {
		t.Fatalf("BuildNaive failed: %v", err)
	}
	node := tree.chooseArc(tree.root, 'A')
	if node == nilNode {
		t.Fatal("No child for 'A' at the root")
	}
	if got := string(tree.Path(node)); got != "ABC" {
		t.Errorf("Path: got %q, want %q", got, "ABC")
	}
	deeper := tree.chooseArc(node, 'D')
	if deeper == nilNode {
		t.Fatal("No child for 'D' under the ABC node")
	}
	if got := string(tree.Path(deeper)); got != "ABCD"+string(astprep.TerminatorBase) {
		t.Errorf("Leaf path: got %q", got)
	}
}

func TestScoreReferenceValues(t *testing.T) {
	tests := []struct {
		fragments  []string
		query      string
		normalized bool
		want       float64
	}{
		{[]string{"ABCD", "ABCE"}, "ABC", true, 0.5416666666666666},
		{[]string{"ABCD", "ABCE"}, "ABCD", true, 0.44270833333333337},
		{[]string{"ABCD", "ABCE"}, "XYZ", true, 0},
		{[]string{"AAAA"}, "AAA", true, 0.8935185185185185},
		{[]string{"AAAA"}, "AAAB", false, 1.2916666666666665},
		{[]string{"HELLO", "WORLD", "HELLOWORLD"}, "HELLO", true, 0.5312222222222222},
		{[]string{"abcd efg ops", "xyzq", "test"}, "aqcb", true, 0.050000000000000044},
		{[]string{"abcd efg ops", "xyzq", "test"}, "efgp", true, 0.2895833333333333},
		{[]string{"abcd efg ops", "xyzq", "test"}, "efgp", false, 0.6875},
		{[]string{"MINE", "MINING"}, "MINING", true, 0.521574074074074},
		{[]string{"MINE", "MINING"}, "INI", false, 0.8555555555555555},
		{[]string{"BANANA"}, "ANA", true, 0.6296296296296297},
		{[]string{"BANANA"}, "BANANA", false, 2.6111111111111107},
	}
	for _, b := range builders {
		t.Run(b.name, func(t *testing.T) {
			for _, tt := range tests {
				tree, err := b.build(tt.fragments)
				if err != nil {
					t.Fatalf("build(%v) failed: %v", tt.fragments, err)
				}
				got := tree.Score(tt.query, tt.normalized)
				if math.Abs(got-tt.want) > eps {
					t.Errorf("Score(%v, %q, normalized=%v) = %v, want %v",
						tt.fragments, tt.query, tt.normalized, got, tt.want)
				}
			}
		})
	}
}

func TestScoreEdgeCases(t *testing.T) {
	tree, err := BuildLinear([]string{"ABCD"})
	if err != nil {
		t.Fatalf("BuildLinear failed: %v", err)
	}
	if got := tree.Score("", true); got != 0 {
		t.Errorf("Empty query: got %v, want 0", got)
	}
	if got := tree.Score("XY", true); got != 0 {
		t.Errorf("Disjoint alphabet query: got %v, want 0", got)
	}
}

func TestScoreNormalizedRange(t *testing.T) {
	queries := []string{"A", "AB", "ABC", "BANANA", "NAB", "XYZ", "BNA"}
	for _, fragments := range collections {
		tree, err := BuildLinear(fragments)
		if err != nil {
			t.Fatalf("BuildLinear(%v) failed: %v", fragments, err)
		}
		for _, q := range queries {
			got := tree.Score(q, true)
			if got < 0 || got > 1 {
				t.Errorf("Score(%v, %q) = %v out of [0,1]", fragments, q, got)
			}
		}
	}
}

func TestScoreDetailed(t *testing.T) {
	tree, err := BuildNaive([]string{"BANANA"})
	if err != nil {
		t.Fatalf("BuildNaive failed: %v", err)
	}
	total, suffixScores := tree.ScoreDetailed("ANA", true)
	if math.Abs(total-tree.Score("ANA", true)) > eps {
		t.Errorf("ScoreDetailed total %v != Score %v", total, tree.Score("ANA", true))
	}
	if len(suffixScores) != 3 {
		t.Fatalf("Expected 3 suffix entries, got %d", len(suffixScores))
	}
	sum := 0.0
	for _, suffix := range []string{"ANA", "NA", "A"} {
		contribution, ok := suffixScores[suffix]
		if !ok {
			t.Fatalf("Missing suffix %q in detailed scores", suffix)
		}
		sum += contribution
	}
	if math.Abs(sum/3-total) > eps {
		t.Errorf("Suffix contributions sum %v inconsistent with total %v", sum/3, total)
	}
}

func TestTraversalsVisitInternalNodesOnce(t *testing.T) {
	tree, err := BuildLinear([]string{"ABCD", "ABCE"})
	if err != nil {
		t.Fatalf("BuildLinear failed: %v", err)
	}

	internal := 0
	for id := range tree.nodes {
		n := nodeID(id)
		if !tree.IsLeaf(n) && tree.reachable(n) {
			internal++
		}
	}

	orders := []struct {
		name string
		walk func(Visit)
	}{
		{"pre", tree.TraversePreOrder},
		{"post", tree.TraversePostOrder},
		{"bfs", tree.TraverseBFS},
	}
	for _, order := range orders {
		visited := 0
		sum := 0
		order.walk(func(w int) {
			visited++
			sum += w
		})
		if visited != internal {
			t.Errorf("%s-order visited %d internal nodes, want %d", order.name, visited, internal)
		}
		if sum == 0 {
			t.Errorf("%s-order saw only zero weights", order.name)
		}
	}
}

// reachable reports whether a node is still attached to the root after
// the degenerate-children cleanup.
func (t *Tree) reachable(id nodeID) bool {
	for id != t.root {
		parent := t.nodes[id].parent
		if parent == nilNode {
			return false
		}
		if t.nodes[parent].children[t.firstChar(id)] != id {
			return false
		}
		id = parent
	}
	return true
}

func TestIdempotentConstruction(t *testing.T) {
	fragments := []string{"HELLO", "WORLD", "HELLOWORLD"}
	first, err := BuildLinear(fragments)
	if err != nil {
		t.Fatalf("BuildLinear failed: %v", err)
	}
	second, err := BuildLinear(fragments)
	if err != nil {
		t.Fatalf("BuildLinear failed: %v", err)
	}
	if !first.Equals(second) {
		t.Error("Two constructions over the same fragments differ structurally")
	}
}
