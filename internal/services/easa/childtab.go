package easa

// childTables computes the Abouelhoda "up" and "down" arrays in one
// stack pass over the LCP array. childDown[i] points at the first
// l-index of the child interval opening at a down edge; childUp[j+1]
// plays the same role seen from the right bound.
func childTables(lcp []int32) (up, down []int32) {
	n := len(lcp)
	up = make([]int32, n)
	down = make([]int32, n)
	lastIndex := int32(-1)
	stack := []int32{0}
	for i := int32(0); i < int32(n); i++ {
		for lcp[i] < lcp[stack[len(stack)-1]] {
			lastIndex = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if lcp[i] <= lcp[stack[len(stack)-1]] && lcp[stack[len(stack)-1]] != lcp[lastIndex] {
				down[stack[len(stack)-1]] = lastIndex
			}
		}
		if lastIndex != -1 {
			up[i] = lastIndex
			lastIndex = -1
		}
		stack = append(stack, i)
	}
	return up, down
}

// childNextTable chains sibling l-indexes at the same lcp level.
func childNextTable(lcp []int32) []int32 {
	n := len(lcp)
	next := make([]int32, n)
	stack := []int32{0}
	for i := int32(0); i < int32(n); i++ {
		for lcp[i] < lcp[stack[len(stack)-1]] {
			stack = stack[:len(stack)-1]
		}
		if lcp[i] == lcp[stack[len(stack)-1]] {
			last := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			next[last] = i
		}
		stack = append(stack, i)
	}
	return next
}

// lcpValue recovers the edge depth of the interval [i..j] from the
// child tables.
func (e *EASA) lcpValue(i, j int32) int32 {
	n := int32(len(e.sa))
	if (i == 0 || i == n-1) && j == n-1 {
		return 0
	}
	if j+1 < n && i < e.childUp[j+1] && e.childUp[j+1] <= j {
		return e.lcp[e.childUp[j+1]]
	}
	return e.lcp[e.childDown[i]]
}

// childInterval returns the child of [i..j] whose arc starts with c;
// ok is false when there is none or [i..j] is a leaf. Enumerates at most one interval
// per distinct first character, O(alphabet) total.
func (e *EASA) childInterval(i, j int32, c rune) (lcpInterval, bool) {
	if i == j {
		return lcpInterval{}, false
	}
	n := int32(len(e.sa))
	l := e.lcpValue(i, j)
	var i1 int32
	if i == 0 && j == n-1 {
		i1 = 0
	} else {
		if j+1 < n && i < e.childUp[j+1] {
			i1 = e.childUp[j+1]
		} else {
			i1 = e.childDown[i]
		}
		if e.text[e.sa[i]+l] == c {
			return lcpInterval{e.lcpValue(i, i1 - 1), i, i1 - 1}, true
		}
	}
	for e.childNext[i1] != 0 {
		i2 := e.childNext[i1]
		if e.text[e.sa[i1]+l] == c {
			return lcpInterval{e.lcpValue(i1, i2 - 1), i1, i2 - 1}, true
		}
		i1 = i2
	}
	if e.text[e.sa[i1]+l] == c {
		return lcpInterval{e.lcpValue(i1, j), i1, j}, true
	}
	return lcpInterval{}, false
}

// childIntervals enumerates the immediate children of [i..j] in
// suffix-array order, tagging each with its first arc character.
func (e *EASA) childIntervals(i, j int32) []taggedInterval {
	if i == j {
		return nil
	}
	n := int32(len(e.sa))
	l := e.lcpValue(i, j)
	var out []taggedInterval
	var i1 int32
	if i == 0 && j == n-1 {
		i1 = 0
	} else {
		if j+1 < n && i < e.childUp[j+1] {
			i1 = e.childUp[j+1]
		} else {
			i1 = e.childDown[i]
		}
		out = append(out, taggedInterval{
			lcpInterval{e.lcpValue(i, i1 - 1), i, i1 - 1},
			e.text[e.sa[i]+l],
		})
	}
	for e.childNext[i1] != 0 {
		i2 := e.childNext[i1]
		out = append(out, taggedInterval{
			lcpInterval{e.lcpValue(i1, i2 - 1), i1, i2 - 1},
			e.text[e.sa[i1]+l],
		})
		i1 = i2
	}
	out = append(out, taggedInterval{
		lcpInterval{e.lcpValue(i1, j), i1, j},
		e.text[e.sa[i1]+l],
	})
	return out
}

type taggedInterval struct {
	lcpInterval
	first rune
}
