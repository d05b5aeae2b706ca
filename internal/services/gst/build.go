package gst

import "east/internal/services/astprep"

// BuildNaive constructs a generalized suffix tree over fragments using
// the quadratic per-suffix insertion algorithm (C3).
func BuildNaive(fragments []string) (*Tree, error) {
	strs, err := astprep.MakeUniqueEndings(fragments)
	if err != nil {
		return nil, err
	}
	t := buildNaive(strs)
	removeDegenerateRootChildren(t)
	annotateWeights(t)
	computeDepths(t)
	return t, nil
}

// BuildLinear constructs a generalized suffix tree over fragments using
// Ukkonen's linear-time algorithm extended to multiple strings (C4).
func BuildLinear(fragments []string) (*Tree, error) {
	strs, err := astprep.MakeUniqueEndings(fragments)
	if err != nil {
		return nil, err
	}
	t := buildLinear(strs)
	removeDegenerateRootChildren(t)
	annotateWeights(t)
	computeDepths(t)
	return t, nil
}

func computeDepths(t *Tree) {
	type item struct {
		id    nodeID
		depth int
	}
	stack := []item{{t.root, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t.nodes[top.id].depth = top.depth
		for _, c := range t.nodes[top.id].children {
			stack = append(stack, item{c, top.depth + 1})
		}
	}
}
