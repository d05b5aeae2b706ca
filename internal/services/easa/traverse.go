package easa

import "sort"

// Visit receives the annotation of each internal lcp-interval during a
// traversal. Breadth-first order is not supported by this backend.
type Visit func(weight int)

// postOrderFrame is an lcp-interval under construction during the
// bottom-up sweep, together with the child intervals closed so far.
type postOrderFrame struct {
	l, i, j  int32
	children []lcpInterval
}

// postOrder performs the iterative bottom-up lcp-interval traversal of
// Kasai/Abouelhoda: positions are scanned left to right, intervals are
// closed whenever the lcp value drops below the top of the stack, and
// each closed interval is either emitted as a child of the new top or
// adopted by the interval opened at the same position.
func (e *EASA) postOrder(emit func(postOrderFrame)) {
	n := int32(len(e.sa))
	var hasLast bool
	var last lcpInterval
	stack := []postOrderFrame{{0, 0, -1, nil}}
	for i := int32(1); i < n; i++ {
		lb := i - 1
		for e.lcp[i] < stack[len(stack)-1].l {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			top.j = i - 1
			emit(top)
			lb = top.i
			last = lcpInterval{top.l, top.i, top.j}
			hasLast = true
			if e.lcp[i] <= stack[len(stack)-1].l {
				stack[len(stack)-1].children = append(stack[len(stack)-1].children, last)
				hasLast = false
			}
		}
		if e.lcp[i] > stack[len(stack)-1].l {
			if hasLast {
				stack = append(stack, postOrderFrame{e.lcp[i], lb, -1, []lcpInterval{last}})
				hasLast = false
			} else {
				stack = append(stack, postOrderFrame{e.lcp[i], lb, -1, nil})
			}
		}
	}
	root := stack[len(stack)-1]
	root.j = n - 1
	emit(root)
}

// TraversePostOrder visits every internal lcp-interval bottom-up.
func (e *EASA) TraversePostOrder(visit Visit) {
	e.postOrder(func(f postOrderFrame) {
		visit(int(e.ann[e.index(lcpInterval{f.l, f.i, f.j})]))
	})
}

// TraversePreOrder visits every internal lcp-interval top-down,
// children ordered by the code point of their first arc character.
// Iterative on an explicit stack.
func (e *EASA) TraversePreOrder(visit Visit) {
	n := int32(len(e.sa))
	stack := []lcpInterval{{0, 0, n - 1}}
	for len(stack) > 0 {
		iv := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(int(e.annotation(iv)))
		children := e.childIntervals(iv.i, iv.j)
		sort.Slice(children, func(a, b int) bool { return children[a].first < children[b].first })
		for k := len(children) - 1; k >= 0; k-- {
			if !children[k].leaf() {
				stack = append(stack, children[k].lcpInterval)
			}
		}
	}
}
