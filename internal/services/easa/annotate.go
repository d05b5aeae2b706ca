package easa

// annotationTable fills ann[index(I)] with the leaf count of every
// internal lcp-interval I in one post-order sweep: singleton
// suffix-array positions lying between child intervals count as leaves
// directly, child intervals contribute their own annotations. The m
// degenerate lone-terminator suffixes are finally discounted from the
// root entry, mirroring the removal of the terminator children in the
// tree backends.
func (e *EASA) annotationTable() []int32 {
	n := len(e.sa)
	ann := make([]int32, n)
	e.postOrder(func(f postOrderFrame) {
		iv := lcpInterval{f.l, f.i, f.j}
		at := e.index(iv)
		i := f.i
		for _, child := range f.children {
			if i < child.i {
				ann[at] += child.i - i
			}
			ann[at] += ann[e.index(child)]
			i = child.j + 1
		}
		if i <= f.j {
			ann[at] += f.j - i + 1
		}
	})
	ann[0] -= int32(e.m)
	return ann
}
