// Package easa implements the Enhanced Annotated Suffix Array backend:
// the generalized suffix tree of a fragment collection simulated over
// six flat arrays (suffix array, LCP array, the Abouelhoda child
// tables and an annotation table), with linear-time construction and
// the same scoring semantics as the tree backends.
package easa

import "east/internal/services/astprep"

// EASA is an enhanced annotated suffix array over the concatenation of
// the terminated fragments. All state is frozen after Build; scoring
// only reads it, so concurrent Score calls are safe.
type EASA struct {
	text []rune
	m    int // number of fragments

	sa  []int32
	lcp []int32

	childUp   []int32
	childDown []int32
	childNext []int32

	ann []int32
}

// Build constructs the suffix array, LCP array, child tables and
// annotation table for the fragment collection.
func Build(fragments []string) (*EASA, error) {
	strs, err := astprep.MakeUniqueEndings(fragments)
	if err != nil {
		return nil, err
	}
	text := astprep.Concat(strs)

	e := &EASA{
		text: text,
		m:    len(strs),
	}
	e.sa = suffixArray(text)
	e.lcp = lcpArray(text, e.sa)
	e.childUp, e.childDown = childTables(e.lcp)
	e.childNext = childNextTable(e.lcp)
	e.ann = e.annotationTable()
	return e, nil
}

// lcpInterval is an internal node of the virtual suffix tree: the
// maximal range [i..j] of suffix-array positions sharing a common
// prefix of length l. Leaf intervals have i == j.
type lcpInterval struct {
	l, i, j int32
}

func (iv lcpInterval) leaf() bool { return iv.i == iv.j }

// index maps an lcp-interval to its canonical position: the first
// p >= i with lcp[p] == l. For the root that is position 0.
func (e *EASA) index(iv lcpInterval) int32 {
	p := iv.i
	for e.lcp[p] != iv.l {
		p++
	}
	return p
}

// annotation is the leaf count of an interval: 1 for leaves, the
// annotation table entry for internal intervals.
func (e *EASA) annotation(iv lcpInterval) int32 {
	if iv.leaf() {
		return 1
	}
	return e.ann[e.index(iv)]
}

// RootWeight is the annotation of the root interval after the
// degenerate terminator leaves have been discounted.
func (e *EASA) RootWeight() int { return int(e.ann[0]) }

// LeafCount is the number of suffixes of the concatenated text, one
// per suffix-array position.
func (e *EASA) LeafCount() int { return len(e.sa) }
