package ef

import "sort"

// Partitioning window bounds for the cost-minimizing dynamic program. PISA
// prunes the candidate split points to a practical window rather than
// considering every possible partition boundary; we do the same.
const (
	minPartitionSize = 16
	maxPartitionSize = 128

	// partitionHeaderBits approximates the fixed per-partition overhead (base
	// value, local universe, count) charged against splitting further.
	partitionHeaderBits = 3 * 64
)

// partition is one contiguous run of the original sequence, rebased to its
// own local universe so its compact EF uses a narrower low-bit width than
// encoding the whole sequence against the global universe would.
type partition struct {
	base      uint64
	lastValue uint64
	startRank uint64 // global rank of this partition's first element
	ef        *CompactEF
}

// PartitionedEF splits a sorted sequence into partitions chosen to minimize
// total encoded size, with a top-level index over partition boundaries.
type PartitionedEF struct {
	n          uint64
	universe   uint64
	partitions []partition
}

// partitionCost estimates the encoded bit cost of compact-EF-encoding n
// values drawn from a local universe of size u: l low bits per value plus
// roughly n + numBuckets high bits.
func partitionCost(n, universe uint64) uint64 {
	if n == 0 {
		return 0
	}
	l := lowWidth(n, universe)
	var numBuckets uint64
	if l == 0 {
		numBuckets = universe
	} else {
		numBuckets = (universe + (uint64(1)<<l) - 1) >> l
	}
	return n*uint64(l) + n + numBuckets
}

// choosePartitions runs a windowed DP over candidate split points, returning
// the boundary ranks (exclusive ends) of each chosen partition.
func choosePartitions(values []uint64) []uint64 {
	n := uint64(len(values))
	if n == 0 {
		return nil
	}

	dp := make([]uint64, n+1)
	parent := make([]uint64, n+1)
	const inf = ^uint64(0)
	for i := range dp {
		dp[i] = inf
	}
	dp[0] = 0

	for j := uint64(1); j <= n; j++ {
		lo := uint64(0)
		if j > maxPartitionSize {
			lo = j - maxPartitionSize
		}
		hi := j - 1
		if j > minPartitionSize {
			hi = j - minPartitionSize
		}
		if hi < lo {
			hi = j - 1
		}
		for i := lo; i <= hi; i++ {
			size := j - i
			base := values[i]
			localUniverse := values[j-1] - base + 1
			cost := dp[i]
			if cost == inf {
				continue
			}
			cost += partitionCost(size, localUniverse) + partitionHeaderBits
			if cost < dp[j] {
				dp[j] = cost
				parent[j] = i
			}
		}
	}

	var bounds []uint64
	for j := n; j > 0; {
		i := parent[j]
		bounds = append(bounds, j)
		j = i
	}
	// bounds collected back-to-front; reverse.
	for l, r := 0, len(bounds)-1; l < r; l, r = l+1, r-1 {
		bounds[l], bounds[r] = bounds[r], bounds[l]
	}
	return bounds
}

// BuildPartitioned encodes values into a PartitionedEF using the DP split
// chooser. universe bounds the whole sequence, as in BuildCompact.
func BuildPartitioned(values []uint64, universe uint64) *PartitionedEF {
	n := uint64(len(values))
	pef := &PartitionedEF{n: n, universe: universe}
	if n == 0 {
		return pef
	}

	bounds := choosePartitions(values)
	start := uint64(0)
	for _, end := range bounds {
		seg := values[start:end]
		base := seg[0]
		localUniverse := seg[len(seg)-1] - base + 1
		rebased := make([]uint64, len(seg))
		for i, v := range seg {
			rebased[i] = v - base
		}
		pef.partitions = append(pef.partitions, partition{
			base:      base,
			lastValue: seg[len(seg)-1],
			startRank: start,
			ef:        BuildCompact(rebased, localUniverse),
		})
		start = end
	}
	return pef
}

// Len returns the total number of encoded values.
func (p *PartitionedEF) Len() uint64 { return p.n }

// partitionIndexForValue returns the index of the first partition whose
// last value is >= v, or len(partitions) if none.
func (p *PartitionedEF) partitionIndexForValue(v uint64) int {
	return sort.Search(len(p.partitions), func(i int) bool {
		return p.partitions[i].lastValue >= v
	})
}

// partitionIndexForRank returns the partition containing global rank k.
func (p *PartitionedEF) partitionIndexForRank(k uint64) int {
	return sort.Search(len(p.partitions), func(i int) bool {
		nextStart := p.n
		if i+1 < len(p.partitions) {
			nextStart = p.partitions[i+1].startRank
		}
		return nextStart > k
	})
}

// PartitionedCursor walks a PartitionedEF, crossing partition boundaries
// transparently. Strictly monotonic like Cursor.
type PartitionedCursor struct {
	p       *PartitionedEF
	partIdx int
	inner   *Cursor
	ended   bool
}

// NewCursor returns a cursor positioned before the first element.
func (p *PartitionedEF) NewCursor() *PartitionedCursor {
	return &PartitionedCursor{p: p, partIdx: -1}
}

// Value returns the value at the current rank, or EndOfSequence.
func (c *PartitionedCursor) Value() uint64 {
	if c.ended || c.inner == nil {
		return EndOfSequence
	}
	base := c.p.partitions[c.partIdx].base
	v := c.inner.Value()
	if v == EndOfSequence {
		return EndOfSequence
	}
	return base + v
}

// Move sets the cursor to global rank k and returns (rank, value).
func (c *PartitionedCursor) Move(k uint64) (uint64, uint64) {
	if k >= c.p.n {
		c.ended = true
		return c.p.n, EndOfSequence
	}
	idx := c.p.partitionIndexForRank(k)
	part := &c.p.partitions[idx]
	if idx != c.partIdx {
		c.partIdx = idx
		c.inner = part.ef.NewCursor()
	}
	localK := k - part.startRank
	_, v := c.inner.Move(localK)
	if v == EndOfSequence {
		c.ended = true
		return c.p.n, EndOfSequence
	}
	return k, part.base + v
}

// NextGeq advances to the smallest element >= v across partitions.
func (c *PartitionedCursor) NextGeq(v uint64) uint64 {
	if c.ended {
		return EndOfSequence
	}
	if c.inner != nil {
		if cur := c.Value(); cur != EndOfSequence && cur >= v {
			return cur
		}
	}
	startIdx := 0
	if c.partIdx >= 0 {
		startIdx = c.partIdx
	}
	for idx := startIdx; idx < len(c.p.partitions); idx++ {
		part := &c.p.partitions[idx]
		if part.lastValue < v {
			continue
		}
		if idx != c.partIdx {
			c.partIdx = idx
			c.inner = part.ef.NewCursor()
		}
		localTarget := uint64(0)
		if v > part.base {
			localTarget = v - part.base
		}
		got := c.inner.NextGeq(localTarget)
		if got == EndOfSequence {
			continue
		}
		return part.base + got
	}
	c.ended = true
	return EndOfSequence
}
