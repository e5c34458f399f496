package index

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kittclouds/ixcore/pkg/posting"
)

// ForwardTerm is one term's uncompressed posting list as read from the
// forward collection.
type ForwardTerm struct {
	Docs  []uint32
	Freqs []uint32
}

// ProgressFunc is invoked after each term in a shard finishes compressing,
// letting callers drive a visible progress display without this package
// depending on a presentation layer.
type ProgressFunc func(termsDone int)

type shardResult struct {
	docsBlob     []byte
	freqsBlob    []byte
	docsOffsets  []uint64 // length shardLen+1, relative to shard start
	freqsOffsets []uint64
}

// Build compresses a forward collection into a sealed Index using up to
// threads worker goroutines, each responsible for a contiguous shard of
// the term range. A non-monotonic docid or zero frequency anywhere aborts
// the whole build with a precise shard/term/index citation (I1); merge is
// deterministic in shard order regardless of thread count (P7).
func Build(terms []ForwardTerm, numDocs uint32, docLengths []uint32, threads int, progress ProgressFunc) (*Index, error) {
	numTerms := len(terms)
	if numTerms == 0 {
		return buildEmpty(numDocs, docLengths), nil
	}
	if threads <= 0 {
		threads = 1
	}
	if threads > numTerms {
		threads = numTerms
	}

	bounds := shardBounds(numTerms, threads)
	results := make([]shardResult, threads)

	g, _ := errgroup.WithContext(context.Background())
	for s := 0; s < threads; s++ {
		s := s
		start, end := bounds[s], bounds[s+1]
		g.Go(func() error {
			r, err := buildShard(terms[start:end], numDocs, progress)
			if err != nil {
				return fmt.Errorf("index: shard %d (terms %d..%d): %w", s, start, end, err)
			}
			results[s] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mergeShards(results, numDocs, docLengths), nil
}

// shardBounds splits [0,numTerms) into `threads` contiguous, near-equal
// ranges; bounds[i]..bounds[i+1] is shard i's term range.
func shardBounds(numTerms, threads int) []int {
	bounds := make([]int, threads+1)
	base := numTerms / threads
	rem := numTerms % threads
	pos := 0
	for i := 0; i < threads; i++ {
		size := base
		if i < rem {
			size++
		}
		bounds[i] = pos
		pos += size
	}
	bounds[threads] = numTerms
	return bounds
}

func buildShard(terms []ForwardTerm, numDocs uint32, progress ProgressFunc) (shardResult, error) {
	var docsBlob, freqsBlob []byte
	docsOffsets := make([]uint64, 0, len(terms)+1)
	freqsOffsets := make([]uint64, 0, len(terms)+1)
	docsOffsets = append(docsOffsets, 0)
	freqsOffsets = append(freqsOffsets, 0)

	for i, t := range terms {
		ds, err := posting.BuildDocStream(t.Docs, numDocs)
		if err != nil {
			return shardResult{}, fmt.Errorf("term %d: %w", i, err)
		}
		fs, err := posting.BuildFreqStream(t.Freqs)
		if err != nil {
			return shardResult{}, fmt.Errorf("term %d: %w", i, err)
		}
		if ds.Len() != fs.Len() {
			return shardResult{}, fmt.Errorf("term %d: doc count %d != freq count %d", i, ds.Len(), fs.Len())
		}

		docsBlob = append(docsBlob, ds.Bytes()...)
		freqsBlob = append(freqsBlob, fs.Bytes()...)
		docsOffsets = append(docsOffsets, uint64(len(docsBlob)))
		freqsOffsets = append(freqsOffsets, uint64(len(freqsBlob)))

		if progress != nil {
			progress(i + 1)
		}
	}

	return shardResult{docsBlob: docsBlob, freqsBlob: freqsBlob, docsOffsets: docsOffsets, freqsOffsets: freqsOffsets}, nil
}

// mergeShards concatenates shards in shard order, rebasing each shard's
// local offsets by the running global offset (step 2 of the merger).
func mergeShards(results []shardResult, numDocs uint32, docLengths []uint32) *Index {
	var docsBlob, freqsBlob []byte
	docsOffsets := []uint64{0}
	freqsOffsets := []uint64{0}

	for _, r := range results {
		docsBase := uint64(len(docsBlob))
		freqsBase := uint64(len(freqsBlob))
		docsBlob = append(docsBlob, r.docsBlob...)
		freqsBlob = append(freqsBlob, r.freqsBlob...)
		for _, off := range r.docsOffsets[1:] {
			docsOffsets = append(docsOffsets, docsBase+off)
		}
		for _, off := range r.freqsOffsets[1:] {
			freqsOffsets = append(freqsOffsets, freqsBase+off)
		}
	}

	return &Index{
		NumDocs:      numDocs,
		DocsBlob:     docsBlob,
		FreqsBlob:    freqsBlob,
		DocsOffsets:  docsOffsets,
		FreqsOffsets: freqsOffsets,
		DocLengths:   docLengths,
		AvgDocLength: avgDocLength(docLengths),
		Metadata:     defaultMetadata(),
	}
}

func buildEmpty(numDocs uint32, docLengths []uint32) *Index {
	return &Index{
		NumDocs:      numDocs,
		DocsOffsets:  []uint64{0},
		FreqsOffsets: []uint64{0},
		DocLengths:   docLengths,
		AvgDocLength: avgDocLength(docLengths),
		Metadata:     defaultMetadata(),
	}
}
