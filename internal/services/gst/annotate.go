package gst

import "east/internal/services/astprep"

// removeDegenerateRootChildren deletes root children whose arc is a
// lone terminator rune. Ukkonen inserts one such leaf per string for
// the empty suffix; the naive builder never creates them, so for it
// this is a no-op.
func removeDegenerateRootChildren(t *Tree) {
	for c, child := range t.nodes[t.root].children {
		a := t.Arc(child)
		if a.end-a.start == 1 && t.strs[a.strID][a.start] >= astprep.TerminatorBase {
			delete(t.nodes[t.root].children, c)
		}
	}
}

// annotateWeights accumulates leaf counts bottom-up: every leaf keeps
// its weight of 1 and every internal node becomes the sum of its
// children. Runs iteratively so deep trees over long fragments cannot
// blow the stack.
func annotateWeights(t *Tree) {
	type frame struct {
		id       nodeID
		expanded bool
	}
	stack := []frame{{t.root, false}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if !top.expanded && !t.IsLeaf(top.id) {
			top.expanded = true
			for _, c := range t.nodes[top.id].children {
				stack = append(stack, frame{c, false})
			}
			continue
		}
		id := top.id
		stack = stack[:len(stack)-1]
		if t.IsLeaf(id) && id != t.root {
			continue
		}
		w := 0
		for _, c := range t.nodes[id].children {
			w += t.nodes[c].weight
		}
		t.nodes[id].weight = w
	}
}
