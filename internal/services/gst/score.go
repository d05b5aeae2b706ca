package gst

// Score matches query against the annotated tree with the suffix-walk
// algorithm of Chernyak/Mirkin: for every suffix of the query, follow
// the longest matching root path, summing the conditional probability
// weight(node)/weight(parent) at each node boundary; characters
// matched inside an arc count as probability one via the
// score+matched-nodes term. Suffix contributions accumulate in
// suffix-start order so every backend produces the same float64.
func (t *Tree) Score(query string, normalized bool) float64 {
	result, _ := t.score([]rune(query), normalized, false)
	return result
}

// ScoreDetailed additionally returns the contribution of every query
// suffix, keyed by the suffix itself.
func (t *Tree) ScoreDetailed(query string, normalized bool) (float64, map[string]float64) {
	return t.score([]rune(query), normalized, true)
}

func (t *Tree) score(query []rune, normalized bool, detailed bool) (float64, map[string]float64) {
	if len(query) == 0 {
		return 0, nil
	}
	var suffixScores map[string]float64
	if detailed {
		suffixScores = make(map[string]float64, len(query))
	}

	result := 0.0
	for suffixStart := 0; suffixStart < len(query); suffixStart++ {
		suffix := query[suffixStart:]
		score := 0.0
		suffixResult := 0.0
		matched := 0
		nodesMatched := 0

		node := t.chooseArc(t.root, suffix[0])
		for node != nilNode {
			nodesMatched++
			a := t.Arc(node)
			match := matchStrings(suffix, t.strs[a.strID][a.start:a.end])
			score += float64(t.nodes[node].weight) / float64(t.nodes[t.nodes[node].parent].weight)
			matched += match
			suffix = suffix[match:]
			if len(suffix) > 0 && match == int(a.end-a.start) {
				node = t.chooseArc(node, suffix[0])
			} else {
				break
			}
		}

		if matched > 0 {
			suffixResult = score + float64(matched) - float64(nodesMatched)
			if normalized {
				suffixResult /= float64(matched)
			}
			result += suffixResult
		}
		if detailed {
			suffixScores[string(query[suffixStart:])] = suffixResult
		}
	}

	return result / float64(len(query)), suffixScores
}
