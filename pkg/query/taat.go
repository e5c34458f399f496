package query

import "github.com/RoaringBitmap/roaring/v2"

// RankedOrTaatSimple accumulates every term's contribution into a flat,
// freshly-zeroed float32 array the size of the collection, then reads out
// the top-k. Simple, cache-friendly for small collections, but pays an
// O(numDocs) allocation on every call.
func RankedOrTaatSimple(cursors []Cursor, numDocs uint32, k int) []Hit {
	acc := make([]float32, numDocs)
	touched := make([]bool, numDocs)
	order := make([]uint32, 0, numDocs)

	for _, c := range cursors {
		for d := c.Next(); d != DocidMax; d = c.Next() {
			if !touched[d] {
				touched[d] = true
				order = append(order, d)
			}
			acc[d] += c.Score()
		}
	}

	topk := NewTopK(k)
	for _, d := range order {
		topk.Push(d, acc[d])
	}
	return topk.Results()
}

// DefaultTaatBlockBits sizes each lazily-reset accumulator block at
// 2^DefaultTaatBlockBits docids.
const DefaultTaatBlockBits = 4

// TaatAccumulator is a reusable term-at-a-time score accumulator for the
// "lazy" variant: rather than zeroing the whole array before each query,
// docids are grouped into blocks carrying an epoch counter, and a block
// is reset the first time it's touched in a new epoch. This amortizes
// the reset cost across repeated queries against the same collection.
type TaatAccumulator struct {
	acc        []float32
	blockEpoch []uint32
	blockBits  uint
	epoch      uint32
}

// NewTaatAccumulator allocates an accumulator for a collection of
// numDocs documents. blockBits<=0 uses DefaultTaatBlockBits.
func NewTaatAccumulator(numDocs uint32, blockBits uint) *TaatAccumulator {
	if blockBits == 0 {
		blockBits = DefaultTaatBlockBits
	}
	blockSize := uint32(1) << blockBits
	numBlocks := (numDocs + blockSize - 1) / blockSize
	return &TaatAccumulator{
		acc:        make([]float32, numDocs),
		blockEpoch: make([]uint32, numBlocks),
		blockBits:  blockBits,
	}
}

func (a *TaatAccumulator) resetBlock(b uint32) {
	blockSize := uint32(1) << a.blockBits
	start := b * blockSize
	end := start + blockSize
	if end > uint32(len(a.acc)) {
		end = uint32(len(a.acc))
	}
	for i := start; i < end; i++ {
		a.acc[i] = 0
	}
}

func (a *TaatAccumulator) add(d uint32, s float32) {
	b := d >> a.blockBits
	if a.blockEpoch[b] != a.epoch {
		a.resetBlock(b)
		a.blockEpoch[b] = a.epoch
	}
	a.acc[d] += s
}

// Query runs a ranked-OR term-at-a-time pass over cursors, tracking
// touched docids in a roaring bitmap (sparse relative to the full
// collection for most queries) and returning the top-k.
func (a *TaatAccumulator) Query(cursors []Cursor, k int) []Hit {
	a.epoch++
	touched := roaring.New()
	for _, c := range cursors {
		for d := c.Next(); d != DocidMax; d = c.Next() {
			a.add(d, c.Score())
			touched.Add(d)
		}
	}

	topk := NewTopK(k)
	it := touched.Iterator()
	for it.HasNext() {
		d := it.Next()
		topk.Push(d, a.acc[d])
	}
	return topk.Results()
}
