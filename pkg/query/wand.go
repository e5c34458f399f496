package query

import "sort"

// Wand implements the pivoting WAND algorithm (Broder et al.): cursors
// are kept sorted by current docid, a pivot is found where the running
// sum of term upper bounds first exceeds the top-k threshold, and either
// the pivot docid is fully evaluated (if every cursor before it already
// sits there) or the closest cursor behind the pivot is advanced to it.
func Wand(cursors []MaxCursor, k int) []Hit {
	topk := NewTopK(k)
	active := make([]MaxCursor, 0, len(cursors))
	for _, c := range cursors {
		if c.Next() != DocidMax {
			active = append(active, c)
		}
	}

	for len(active) > 0 {
		sort.Slice(active, func(i, j int) bool { return active[i].Docid() < active[j].Docid() })

		threshold := topk.Threshold()
		cum := float32(0)
		pivot := -1
		for i, c := range active {
			cum += c.Weight()
			if cum > threshold {
				pivot = i
				break
			}
		}
		if pivot == -1 {
			break
		}
		pivotDocid := active[pivot].Docid()

		if active[0].Docid() == pivotDocid {
			var sum float32
			for _, c := range active {
				if c.Docid() == pivotDocid {
					sum += c.Score()
				}
			}
			topk.Push(pivotDocid, sum)
			active = advancePast(active, pivotDocid)
			continue
		}

		advanceIdx := pivot - 1
		for active[advanceIdx].Docid() == pivotDocid {
			advanceIdx--
		}
		newActive := active[:0:0]
		for i, c := range active {
			if i == advanceIdx {
				if c.NextGeq(pivotDocid) != DocidMax {
					newActive = append(newActive, c)
				}
			} else {
				newActive = append(newActive, c)
			}
		}
		active = newActive
	}
	return topk.Results()
}

// advancePast steps every cursor currently at docid d forward by one
// posting, dropping the ones that exhaust, and keeps the rest unchanged.
func advancePast(cursors []MaxCursor, d uint32) []MaxCursor {
	out := cursors[:0:0]
	for _, c := range cursors {
		if c.Docid() == d {
			if c.Next() != DocidMax {
				out = append(out, c)
			}
		} else {
			out = append(out, c)
		}
	}
	return out
}

// MaxScore partitions cursors into an essential set (whose union of
// docids drives candidate generation) and a non-essential set (consulted
// only when their combined upper bound could still change the outcome),
// re-partitioning whenever the top-k threshold tightens.
func MaxScore(cursors []MaxCursor, k int) []Hit {
	topk := NewTopK(k)
	sorted := make([]MaxCursor, 0, len(cursors))
	for _, c := range cursors {
		if c.Next() != DocidMax {
			sorted = append(sorted, c)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Weight() < sorted[j].Weight() })

	for {
		live := false
		for _, c := range sorted {
			if c.Docid() != DocidMax {
				live = true
				break
			}
		}
		if !live {
			break
		}

		threshold := topk.Threshold()
		cum := float32(0)
		split := 0
		for split < len(sorted) && cum+sorted[split].Weight() <= threshold {
			cum += sorted[split].Weight()
			split++
		}
		nonEssential := sorted[:split]
		essential := sorted[split:]

		min := DocidMax
		for _, c := range essential {
			if d := c.Docid(); d < min {
				min = d
			}
		}
		if min == DocidMax {
			break
		}

		var sum float32
		for _, c := range essential {
			if c.Docid() == min {
				sum += c.Score()
			}
		}

		var bound float32
		for _, c := range nonEssential {
			bound += c.Weight()
		}

		if sum+bound > threshold {
			for _, c := range nonEssential {
				d := c.Docid()
				if d != min {
					d = c.NextGeq(min)
				}
				if d == min {
					sum += c.Score()
				}
			}
			topk.Push(min, sum)
		}

		for _, c := range essential {
			if c.Docid() == min {
				c.Next()
			}
		}
	}
	return topk.Results()
}
