package easa

import "east/internal/services/astprep"

// Score matches query against the virtual annotated tree. The walk is
// the same suffix-by-suffix descent as the tree backends, with nodes
// replaced by lcp-intervals, arc labels recovered from the suffix
// array, and annotations standing in for node weights. Contributions
// accumulate in suffix-start order so the result is bit-identical to
// the tree scorers.
func (e *EASA) Score(query string, normalized bool) float64 {
	q := []rune(query)
	if len(q) == 0 {
		return 0
	}
	n := int32(len(e.sa))
	root := lcpInterval{0, 0, n - 1}

	result := 0.0
	for suffixStart := 0; suffixStart < len(q); suffixStart++ {
		suffix := q[suffixStart:]
		score := 0.0
		matched := 0
		nodesMatched := 0

		parent := root
		child, ok := e.childInterval(parent.i, parent.j, suffix[0])
		for ok {
			nodesMatched++
			arcStart := e.sa[child.i] + parent.l
			var arcEnd int32
			if child.leaf() {
				arcEnd = n
			} else {
				arcEnd = arcStart + child.l - parent.l
			}
			match := astprep.MatchLen(suffix, e.text[arcStart:arcEnd])
			score += float64(e.annotation(child)) / float64(e.annotation(parent))
			matched += match
			suffix = suffix[match:]
			if len(suffix) > 0 && match == int(arcEnd-arcStart) {
				parent = child
				child, ok = e.childInterval(parent.i, parent.j, suffix[0])
			} else {
				break
			}
		}

		if matched > 0 {
			suffixResult := score + float64(matched) - float64(nodesMatched)
			if normalized {
				suffixResult /= float64(matched)
			}
			result += suffixResult
		}
	}

	return result / float64(len(q))
}
