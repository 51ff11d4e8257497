package algorithms

import "container/heap"

// RankedNode represents a protein with its score under one metric
type RankedNode struct {
	Node  string  `json:"node"`
	Score float64 `json:"score"`
}

// outranks orders by descending score, then ascending identifier.
func (a RankedNode) outranks(b RankedNode) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Node < b.Node
}

// topK keeps the k best nodes seen so far with the weakest at index 0.
type topK struct {
	k     int
	nodes []RankedNode
}

func (t *topK) Len() int           { return len(t.nodes) }
func (t *topK) Less(i, j int) bool { return t.nodes[j].outranks(t.nodes[i]) }
func (t *topK) Swap(i, j int)      { t.nodes[i], t.nodes[j] = t.nodes[j], t.nodes[i] }
func (t *topK) Push(x any)         { t.nodes = append(t.nodes, x.(RankedNode)) }

func (t *topK) Pop() any {
	last := t.nodes[len(t.nodes)-1]
	t.nodes = t.nodes[:len(t.nodes)-1]
	return last
}

func (t *topK) offer(rn RankedNode) {
	switch {
	case len(t.nodes) < t.k:
		heap.Push(t, rn)
	case rn.outranks(t.nodes[0]):
		t.nodes[0] = rn
		heap.Fix(t, 0)
	}
}

// drain empties the heap, best node first.
func (t *topK) drain() []RankedNode {
	out := make([]RankedNode, len(t.nodes))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(t).(RankedNode)
	}
	return out
}

// findTopNodes returns the n highest-scoring proteins, best first, with
// ties broken by identifier. Runs in O(m log n) for m scores.
func findTopNodes(scores Scores, n int) []RankedNode {
	if n <= 0 {
		return nil
	}
	t := &topK{k: n, nodes: make([]RankedNode, 0, min(n, len(scores)))}
	for node, score := range scores {
		t.offer(RankedNode{Node: node, Score: score})
	}
	return t.drain()
}
