package query

// Range is a half-open docid interval [Start, End).
type Range struct {
	Start, End uint32
}

// DefaultRangeWidth is the Range-k docid window width W.
const DefaultRangeWidth = 128

// Windows splits [0, numDocs) into ranges of the given width, the last
// one possibly shorter.
func Windows(numDocs uint32, width uint32) []Range {
	if width == 0 {
		width = DefaultRangeWidth
	}
	var out []Range
	for start := uint32(0); start < numDocs; start += width {
		end := start + width
		if end > numDocs {
			end = numDocs
		}
		out = append(out, Range{Start: start, End: end})
	}
	return out
}

func clip(d, end uint32) uint32 {
	if d >= end {
		return DocidMax
	}
	return d
}

// rangeCursor and its siblings defer the seek to r.Start until the first
// Next()/NextGeq() call from the consuming algorithm, rather than seeking
// eagerly in the Restrict* constructor. Every DAAT/TAAT algorithm in this
// package calls c.Next() unconditionally as its first action; seeking the
// underlying cursor up front would leave it already started, so that first
// Next() would skip the very posting NextGeq just landed on.
type rangeCursor struct {
	Cursor
	start   uint32
	end     uint32
	started bool
}

func (r *rangeCursor) Docid() uint32 { return clip(r.Cursor.Docid(), r.end) }

func (r *rangeCursor) Next() uint32 {
	if !r.started {
		r.started = true
		return clip(r.Cursor.NextGeq(r.start), r.end)
	}
	return clip(r.Cursor.Next(), r.end)
}

func (r *rangeCursor) NextGeq(d uint32) uint32 {
	r.started = true
	if d < r.start {
		d = r.start
	}
	return clip(r.Cursor.NextGeq(d), r.end)
}

type rangeMaxCursor struct {
	MaxCursor
	start   uint32
	end     uint32
	started bool
}

func (r *rangeMaxCursor) Docid() uint32 { return clip(r.MaxCursor.Docid(), r.end) }

func (r *rangeMaxCursor) Next() uint32 {
	if !r.started {
		r.started = true
		return clip(r.MaxCursor.NextGeq(r.start), r.end)
	}
	return clip(r.MaxCursor.Next(), r.end)
}

func (r *rangeMaxCursor) NextGeq(d uint32) uint32 {
	r.started = true
	if d < r.start {
		d = r.start
	}
	return clip(r.MaxCursor.NextGeq(d), r.end)
}

type rangeBlockMaxCursor struct {
	BlockMaxCursor
	start   uint32
	end     uint32
	started bool
}

func (r *rangeBlockMaxCursor) Docid() uint32 { return clip(r.BlockMaxCursor.Docid(), r.end) }

func (r *rangeBlockMaxCursor) Next() uint32 {
	if !r.started {
		r.started = true
		return clip(r.BlockMaxCursor.NextGeq(r.start), r.end)
	}
	return clip(r.BlockMaxCursor.Next(), r.end)
}

func (r *rangeBlockMaxCursor) NextGeq(d uint32) uint32 {
	r.started = true
	if d < r.start {
		d = r.start
	}
	return clip(r.BlockMaxCursor.NextGeq(d), r.end)
}

// RestrictToRange clips plain cursors to a docid range [r.Start, r.End).
// The underlying cursor is left unstarted; the wrapper seeks to r.Start on
// its own first Next()/NextGeq call, so any DAAT/TAAT algorithm's
// unconditional opening c.Next() lands on the first in-range posting
// instead of skipping past it. Run any such algorithm over the result to
// get a partial top-k for that range alone (Range-k), then merge partial
// results across ranges with MergeTopK for an approximate, shard-friendly
// global top-k.
func RestrictToRange(cursors []Cursor, r Range) []Cursor {
	out := make([]Cursor, len(cursors))
	for i, c := range cursors {
		out[i] = &rangeCursor{Cursor: c, start: r.Start, end: r.End}
	}
	return out
}

// RestrictMaxToRange is RestrictToRange for MaxCursor-based algorithms
// (Wand, MaxScore).
func RestrictMaxToRange(cursors []MaxCursor, r Range) []MaxCursor {
	out := make([]MaxCursor, len(cursors))
	for i, c := range cursors {
		out[i] = &rangeMaxCursor{MaxCursor: c, start: r.Start, end: r.End}
	}
	return out
}

// RestrictBlockMaxToRange is RestrictToRange for BlockMaxCursor-based
// algorithms (BlockMaxWand, BlockMaxMaxScore).
func RestrictBlockMaxToRange(cursors []BlockMaxCursor, r Range) []BlockMaxCursor {
	out := make([]BlockMaxCursor, len(cursors))
	for i, c := range cursors {
		out[i] = &rangeBlockMaxCursor{BlockMaxCursor: c, start: r.Start, end: r.End}
	}
	return out
}

// MergeTopK merges several already-computed top-k result sets (one per
// range, or one per shard) into a single global top-k.
func MergeTopK(results [][]Hit, k int) []Hit {
	topk := NewTopK(k)
	for _, hits := range results {
		for _, h := range hits {
			topk.Push(h.Docid, h.Score)
		}
	}
	return topk.Results()
}
