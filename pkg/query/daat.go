package query

// RankedOr computes the top-k results of a disjunctive document-at-a-time
// traversal: at each step, every cursor sitting on the smallest current
// docid contributes its score, then all of them advance.
func RankedOr(cursors []Cursor, k int) []Hit {
	topk := NewTopK(k)
	for _, c := range cursors {
		c.Next()
	}
	for {
		min := DocidMax
		for _, c := range cursors {
			if d := c.Docid(); d < min {
				min = d
			}
		}
		if min == DocidMax {
			break
		}
		var sum float32
		for _, c := range cursors {
			if c.Docid() == min {
				sum += c.Score()
			}
		}
		topk.Push(min, sum)
		for _, c := range cursors {
			if c.Docid() == min {
				c.Next()
			}
		}
	}
	return topk.Results()
}

// RankedAnd computes the top-k results of a conjunctive document-at-a-time
// traversal: only docids present in every cursor are scored. Cursors
// behind the current maximum are fast-forwarded with NextGeq rather than
// stepped one posting at a time.
func RankedAnd(cursors []Cursor, k int) []Hit {
	topk := NewTopK(k)
	if len(cursors) == 0 {
		return topk.Results()
	}
	for _, c := range cursors {
		c.Next()
	}
	for {
		max := uint32(0)
		agree := true
		first := cursors[0].Docid()
		for _, c := range cursors {
			d := c.Docid()
			if d == DocidMax {
				return topk.Results()
			}
			if d > max {
				max = d
			}
			if d != first {
				agree = false
			}
		}
		if agree {
			var sum float32
			for _, c := range cursors {
				sum += c.Score()
			}
			topk.Push(first, sum)
			for _, c := range cursors {
				c.Next()
			}
			continue
		}
		for _, c := range cursors {
			if c.Docid() < max {
				if c.NextGeq(max) == DocidMax {
					return topk.Results()
				}
			}
		}
	}
}
