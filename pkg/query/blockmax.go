package query

import "sort"

// BlockMaxWand refines Wand with a second check at the pivot: before
// doing a full evaluation, it sums the per-block score bounds (tighter
// than the term-level bounds) of every cursor up to and including the
// pivot. If that tighter sum still can't beat the threshold, the pivot
// cursor is skipped straight past the current docid instead of being
// evaluated.
func BlockMaxWand(cursors []BlockMaxCursor, k int) []Hit {
	topk := NewTopK(k)
	active := make([]BlockMaxCursor, 0, len(cursors))
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

		blockCum := float32(0)
		for i := 0; i <= pivot; i++ {
			if bm, ok := active[i].BlockMaxScore(pivotDocid); ok {
				blockCum += bm
			} else {
				blockCum += active[i].Weight()
			}
		}
		if blockCum <= threshold {
			idx := pivot
			newActive := active[:0:0]
			for i, c := range active {
				if i == idx {
					if c.NextGeq(pivotDocid+1) != DocidMax {
						newActive = append(newActive, c)
					}
				} else {
					newActive = append(newActive, c)
				}
			}
			active = newActive
			continue
		}

		if active[0].Docid() == pivotDocid {
			var sum float32
			for _, c := range active {
				if c.Docid() == pivotDocid {
					sum += c.Score()
				}
			}
			topk.Push(pivotDocid, sum)
			active = advanceBlockMaxPast(active, pivotDocid)
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

func advanceBlockMaxPast(cursors []BlockMaxCursor, d uint32) []BlockMaxCursor {
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

// BlockMaxMaxScore is MaxScore with the non-essential bound tightened
// from the term-level weight to the per-block bound at the candidate
// docid, pruning more non-essential lookups in long posting lists.
func BlockMaxMaxScore(cursors []BlockMaxCursor, k int) []Hit {
	topk := NewTopK(k)
	sorted := make([]BlockMaxCursor, 0, len(cursors))
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
			if bm, ok := c.BlockMaxScore(min); ok {
				bound += bm
			} else {
				bound += c.Weight()
			}
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
