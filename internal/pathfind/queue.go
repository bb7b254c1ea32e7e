package pathfind

import "github.com/vovakirdan/kiosk-idle/internal/core"

// node is one expanded grid position in a search.
type node struct {
	pos    core.Vec
	g      float64
	h      float64
	f      float64
	seq    int // insertion order, breaks f ties
	parent *node
	index  int
}

// frontier is a min-heap of nodes ordered by f, then insertion order.
type frontier []*node

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q frontier) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *frontier) Push(x any) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}
