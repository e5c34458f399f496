package query

import (
	"container/heap"
	"math"
	"sort"
)

// heapItem is one entry in the bounded top-k heap, keyed (score, -docid)
// per the ordering contract: weaker entries (lower score, and among
// ties, the larger docid) sit nearer the root so they are evicted first.
type heapItem struct {
	docid uint32
	score float32
}

// weaker reports whether a is evicted before b under the (score,-docid)
// key ordering.
func weaker(a, b heapItem) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	return a.docid > b.docid
}

type itemHeap []heapItem

func (h itemHeap) Len() int            { return len(h) }
func (h itemHeap) Less(i, j int) bool  { return weaker(h[i], h[j]) }
func (h itemHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// TopK is a bounded min-heap tracking the k best (score, docid) hits seen
// so far. The root is always the weakest surviving hit, so Threshold
// gives the pruning bound every WAND-family algorithm needs.
type TopK struct {
	k int
	h itemHeap
}

// NewTopK returns a TopK with capacity k. k<=0 behaves as an always-empty
// result set.
func NewTopK(k int) *TopK {
	return &TopK{k: k}
}

// Full reports whether the heap holds k entries.
func (t *TopK) Full() bool { return t.k > 0 && len(t.h) >= t.k }

// Threshold returns the current pruning bound: the score a candidate
// must exceed to be worth scoring, or -Inf while the heap isn't full yet
// (anything is still worth keeping).
func (t *TopK) Threshold() float32 {
	if !t.Full() {
		return float32(math.Inf(-1))
	}
	return t.h[0].score
}

// Push offers a (docid, score) candidate. Non-finite and negative scores
// are rejected/clamped per the failure semantics: NaN/Inf scores never
// enter the heap, and negative scores (numeric underflow) are clamped to
// 0 before comparison. Returns true if the candidate was kept.
func (t *TopK) Push(docid uint32, score float32) bool {
	if t.k <= 0 || math.IsNaN(float64(score)) || math.IsInf(float64(score), 0) {
		return false
	}
	if score < 0 {
		score = 0
	}
	item := heapItem{docid: docid, score: score}
	if len(t.h) < t.k {
		heap.Push(&t.h, item)
		return true
	}
	if !weaker(t.h[0], item) {
		return false
	}
	t.h[0] = item
	heap.Fix(&t.h, 0)
	return true
}

// Results drains the heap into a slice ordered by descending score, with
// ascending docid as the tiebreak.
func (t *TopK) Results() []Hit {
	items := make([]heapItem, len(t.h))
	copy(items, t.h)
	sort.Slice(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].docid < items[j].docid
	})
	hits := make([]Hit, len(items))
	for i, it := range items {
		hits[i] = Hit{Docid: it.docid, Score: it.score}
	}
	return hits
}
