package easa

// lcpArray computes the longest-common-prefix array with Kasai's
// algorithm: walking suffixes in text order, the h value can drop by
// at most one per step, so the total character comparisons stay O(n).
// lcp[k] is the lcp of the suffixes at sa[k-1] and sa[k]; lcp[0] = 0.
func lcpArray(text []rune, sa []int32) []int32 {
	n := len(sa)
	rank := make([]int32, n)
	for i := 0; i < n; i++ {
		rank[sa[i]] = int32(i)
	}
	lcp := make([]int32, n)
	h := 0
	for i := 0; i < n; i++ {
		if rank[i] >= 1 {
			j := int(sa[rank[i]-1])
			for i+h < n && j+h < n && text[i+h] == text[j+h] {
				h++
			}
			lcp[rank[i]] = int32(h)
			if h > 0 {
				h--
			}
		}
	}
	return lcp
}
