package gst

// buildLinear constructs the generalized suffix tree with Ukkonen's
// online algorithm extended to a string collection. Leaves carry open
// arc ends resolved through the shared vector t.e, so extending every
// leaf of string i by one character is a single t.e[i] increment
// (Gusfield's Rule 1).
func buildLinear(strs [][]rune) *Tree {
	t := newTree(strs)
	for strID := range strs {
		t.insertLinearString(int32(strID))
	}
	return t
}

// insertLinearString runs the two stages for one string: the implicit
// prefix scan over what earlier strings already put in the tree, then
// explicit phases from that point to the end of the string.
func (t *Tree) insertLinearString(strID int32) {
	startingPhase, startingNode, startingPath := t.scanExistingPrefix(strID)
	startingContinuation := int32(0)
	for phase := startingPhase; phase < int32(len(t.strs[strID])); phase++ {
		startingNode, startingPath, startingContinuation =
			t.runPhase(strID, phase, startingNode, startingPath, startingContinuation)
	}
}

// scanExistingPrefix walks the current tree along strs[strID] until the
// first mismatch. It returns the number of leading characters already
// encoded, the node to start the first explicit phase from, and the
// path to descend at its beginning (non-empty when the walk stopped
// mid-arc).
func (t *Tree) scanExistingPrefix(strID int32) (int32, nodeID, arc) {
	alreadyInTree := int32(0)
	suffix := t.strs[strID]
	startingPath := arc{0, 0, 0}
	startingNode := t.root
	child := t.chooseArcAt(startingNode, suffix)
	for child != nilNode {
		a := t.Arc(child)
		match := int32(matchStrings(suffix, t.strs[a.strID][a.start:a.end]))
		alreadyInTree += match
		if match == a.end-a.start {
			suffix = suffix[match:]
			startingNode = child
			child = t.chooseArcAt(startingNode, suffix)
		} else {
			startingPath = arc{a.strID, a.start, a.start + match}
			break
		}
	}
	t.e[strID] = alreadyInTree
	return alreadyInTree, startingNode, startingPath
}

func (t *Tree) chooseArcAt(id nodeID, suffix []rune) nodeID {
	if len(suffix) == 0 {
		return nilNode
	}
	return t.chooseArc(id, suffix[0])
}

// runPhase performs continuations [startingContinuation..phase] for the
// character strs[strID][phase], applying exactly one of the rules
// 1/2a/2b/3a/3b per continuation and bumping the open-end vector once
// at the end. It returns the restart state for the next phase.
func (t *Tree) runPhase(strID, phase int32, startingNode nodeID, startingPath arc, startingContinuation int32) (nodeID, arc, int32) {
	cur := startingNode
	suffixLinkSource := nilNode
	path := startingPath

	for continuation := startingContinuation; continuation <= phase; continuation++ {
		if continuation > startingContinuation {
			// Hop: climb at most one arc to a node carrying a suffix
			// link, remembering the climbed arc as the path to replay
			// on the other side.
			path = arc{0, 0, 0}
			if t.nodes[cur].suffixLink == nilNode {
				path = t.Arc(cur)
				cur = t.nodes[cur].parent
			}
			if cur == t.root {
				path = arc{strID, continuation, phase}
			} else {
				cur = t.nodes[cur].suffixLink
			}
		}

		// Skip/count descent: jump whole arcs comparing only first
		// characters, never individual path characters.
		g := path.end - path.start
		if g > 0 {
			cur = t.chooseArc(cur, t.strs[path.strID][path.start])
		}
		a := t.Arc(cur)
		arcLen := a.end - a.start
		for g >= arcLen {
			path.start += arcLen
			g -= arcLen
			if g > 0 {
				cur = t.chooseArc(cur, t.strs[path.strID][path.start])
			}
			a = t.Arc(cur)
			arcLen = a.end - a.start
		}

		c := t.strs[strID][phase]
		if g == 0 {
			switch {
			case t.IsLeaf(cur) && cur != t.root:
				// Rule 1: the open end grows by itself.
			case t.chooseArc(cur, c) == nilNode:
				// Rule 2a: new leaf under an existing node.
				if suffixLinkSource != nilNode {
					t.nodes[suffixLinkSource].suffixLink = cur
				}
				leaf := t.newChild(cur, strID, phase, openEnd)
				t.nodes[leaf].weight = 1
				if continuation == startingContinuation {
					startingNode = leaf
					startingPath = arc{0, 0, 0}
				}
			default:
				// Rule 3a: the character is already there, and so is
				// every shorter suffix of this phase. Show-stopper.
				if suffixLinkSource != nilNode {
					t.nodes[suffixLinkSource].suffixLink = cur
				}
				startingContinuation = continuation
				startingNode = cur
				startingPath = arc{strID, phase, phase + 1}
				t.e[strID]++
				return startingNode, startingPath, startingContinuation
			}
			suffixLinkSource = nilNode
		} else {
			raw := t.rawArc(cur)
			if t.strs[raw.strID][raw.start+g] != c {
				// Rule 2b: split the arc at the mismatch and hang a
				// fresh leaf off the new internal node.
				parent := t.nodes[cur].parent
				t.removeChild(parent, cur)
				t.nodes[cur].arc = arc{raw.strID, raw.start + g, raw.end}
				split := t.newChild(parent, raw.strID, raw.start, raw.start+g)
				leaf := t.newChild(split, strID, phase, openEnd)
				t.nodes[leaf].weight = 1
				if continuation == startingContinuation {
					startingNode = leaf
					startingPath = arc{0, 0, 0}
				}
				t.addChildID(split, cur)
				if suffixLinkSource != nilNode {
					t.nodes[suffixLinkSource].suffixLink = split
				}
				suffixLinkSource = split
				cur = split
			} else {
				// Rule 3b: show-stopper mid-arc.
				startingContinuation = continuation
				startingNode = t.nodes[cur].parent
				startingPath = arc{raw.strID, raw.start, raw.start + g + 1}
				t.e[strID]++
				return startingNode, startingPath, startingContinuation
			}
		}
	}

	t.e[strID]++
	return startingNode, startingPath, startingContinuation
}
