package gst

// buildNaive inserts every suffix of every fragment (excluding the
// lone-terminator suffix) one at a time, splitting arcs as needed and
// bumping the weight of every internal node a suffix passes through on
// its way down. The root's own weight is summed from its direct
// children once every fragment has been inserted, since the root never
// sits on a suffix's path the way an internal node does.
func buildNaive(strs [][]rune) *Tree {
	t := newTree(strs)
	for strID, s := range strs {
		for suffixStart := 0; suffixStart < len(s)-1; suffixStart++ {
			t.insertNaiveSuffix(int32(strID), suffixStart, s)
		}
	}
	total := 0
	for _, child := range t.nodes[t.root].children {
		total += t.nodes[child].weight
	}
	t.nodes[t.root].weight = total
	return t
}

func (t *Tree) insertNaiveSuffix(strID int32, suffixStart int, s []rune) {
	suffix := s[suffixStart:]
	node := t.root
	for len(suffix) > 0 {
		child := t.chooseArc(node, suffix[0])
		if child == nilNode {
			break
		}
		label := t.label(child)
		match := matchStrings(suffix, label)
		if match == len(label) {
			suffix = suffix[match:]
			suffixStart += match
			node = child
			t.nodes[node].weight++
			continue
		}

		// Split the edge at the mismatch: a new internal node carries
		// the shared prefix, the old child keeps the remaining
		// (shifted) suffix of its own arc, and a fresh leaf carries
		// what's left of the suffix being inserted.
		t.removeChild(node, child)
		newNode := t.newChild(node, strID, int32(suffixStart), int32(suffixStart+match))
		old := t.nodes[child].arc
		t.nodes[child].arc = arc{old.strID, old.start + int32(match), old.end}
		t.addChildID(newNode, child)
		newLeaf := t.newChild(newNode, strID, int32(suffixStart+match), int32(len(s)))
		t.nodes[newLeaf].weight = 1
		t.nodes[newNode].weight = 1 + t.nodes[child].weight
		suffix = nil
		break
	}
	if len(suffix) > 0 {
		newLeaf := t.newChild(node, strID, int32(suffixStart), int32(len(s)))
		t.nodes[newLeaf].weight = 1
	}
}
