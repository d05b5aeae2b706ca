package easa

// suffixArray computes the suffix array of text with the
// Kärkkäinen-Sanders DC3 algorithm: recursively sort the sample of
// suffixes at positions not divisible by three by their character
// triples, derive the mod-0 suffixes from it, and merge the two with a
// single pairwise comparison. O(n) overall.
func suffixArray(text []rune) []int32 {
	n := len(text)
	sa := make([]int32, n)
	if n == 0 {
		return sa
	}
	if n == 1 {
		sa[0] = 0
		return sa
	}
	// DC3 wants positive symbols and three zero sentinels of padding.
	s := make([]int32, n+3)
	maxSym := int32(0)
	for i, r := range text {
		s[i] = int32(r)
		if s[i] > maxSym {
			maxSym = s[i]
		}
	}
	dc3(s, sa, n, int(maxSym))
	return sa
}

// radixPass stable-sorts a into b by the key r[a[i]], with symbols in
// [0..k].
func radixPass(a, b, r []int32, n, k int) {
	count := make([]int32, k+2)
	for i := 0; i < n; i++ {
		count[r[a[i]]+1]++
	}
	for i := 1; i < len(count); i++ {
		count[i] += count[i-1]
	}
	for i := 0; i < n; i++ {
		b[count[r[a[i]]]] = a[i]
		count[r[a[i]]]++
	}
}

// dc3 fills sa with the suffix array of s[0..n). s must have at least
// n+3 entries with s[n] = s[n+1] = s[n+2] = 0 and all symbols in
// [1..k].
func dc3(s, sa []int32, n, k int) {
	n0 := (n + 2) / 3
	n1 := (n + 1) / 3
	n2 := n / 3
	n02 := n0 + n2

	s12 := make([]int32, n02+3)
	sa12 := make([]int32, n02+3)
	s0 := make([]int32, n0)
	sa0 := make([]int32, n0)

	// Positions i mod 3 != 0, plus a dummy mod-1 suffix when n mod 3
	// is 1 so that n0 == len of the mod-1 sample.
	j := 0
	for i := 0; i < n+(n0-n1); i++ {
		if i%3 != 0 {
			s12[j] = int32(i)
			j++
		}
	}

	// Radix sort the mod-1/2 sample by (s[i], s[i+1], s[i+2]).
	radixPass(s12, sa12, s[2:], n02, k)
	radixPass(sa12, s12, s[1:], n02, k)
	radixPass(s12, sa12, s, n02, k)

	// Name the triples; recurse if any name repeats.
	name := int32(0)
	c0, c1, c2 := int32(-1), int32(-1), int32(-1)
	for i := 0; i < n02; i++ {
		p := sa12[i]
		if s[p] != c0 || s[p+1] != c1 || s[p+2] != c2 {
			name++
			c0, c1, c2 = s[p], s[p+1], s[p+2]
		}
		if p%3 == 1 {
			s12[p/3] = name
		} else {
			s12[p/3+int32(n0)] = name
		}
	}
	if int(name) < n02 {
		dc3(s12, sa12, n02, int(name))
		for i := 0; i < n02; i++ {
			s12[sa12[i]] = int32(i) + 1
		}
	} else {
		for i := 0; i < n02; i++ {
			sa12[s12[i]-1] = int32(i)
		}
	}

	// Sort the mod-0 suffixes by (s[i], rank of the mod-1 suffix at
	// i+1), exploiting the sample order already computed.
	j = 0
	for i := 0; i < n02; i++ {
		if int(sa12[i]) < n0 {
			s0[j] = 3 * sa12[i]
			j++
		}
	}
	radixPass(s0, sa0, s, n0, k)

	// Merge the two sorted sequences.
	sampleAt := func(t int) int32 {
		if int(sa12[t]) < n0 {
			return sa12[t]*3 + 1
		}
		return (sa12[t]-int32(n0))*3 + 2
	}
	p, t := 0, n0-n1
	for idx := 0; idx < n; idx++ {
		i := sampleAt(t)
		j := sa0[p]
		var sampleSmaller bool
		if int(sa12[t]) < n0 {
			sampleSmaller = leq2(s[i], s12[sa12[t]+int32(n0)], s[j], s12[j/3])
		} else {
			sampleSmaller = leq3(s[i], s[i+1], s12[sa12[t]-int32(n0)+1], s[j], s[j+1], s12[j/3+int32(n0)])
		}
		if sampleSmaller {
			sa[idx] = i
			t++
			if t == n02 {
				for idx++; p < n0; idx, p = idx+1, p+1 {
					sa[idx] = sa0[p]
				}
			}
		} else {
			sa[idx] = j
			p++
			if p == n0 {
				for idx++; t < n02; idx, t = idx+1, t+1 {
					sa[idx] = sampleAt(t)
				}
			}
		}
	}
}

func leq2(a1, a2, b1, b2 int32) bool {
	return a1 < b1 || (a1 == b1 && a2 <= b2)
}

func leq3(a1, a2, a3, b1, b2, b3 int32) bool {
	return a1 < b1 || (a1 == b1 && leq2(a2, a3, b2, b3))
}
