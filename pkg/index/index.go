// Package index assembles per-term posting streams produced by pkg/posting
// into a single sealed, read-only collection snapshot: one docid stream and
// one frequency stream holding every term's postings back-to-back, an
// offset table locating each term within them, and the document-length
// statistics the scorers need.
package index

import (
	"fmt"

	"github.com/kittclouds/ixcore/pkg/posting"
)

// Index is an immutable collection snapshot. Zero value is an empty,
// zero-document index.
type Index struct {
	NumDocs uint32

	DocsBlob  []byte
	FreqsBlob []byte

	DocsOffsets  []uint64 // length NumTerms()+1, strictly increasing (I2)
	FreqsOffsets []uint64

	DocLengths   []uint32
	AvgDocLength float32

	Metadata map[string]string
}

// NumTerms returns the number of terms in the index.
func (idx *Index) NumTerms() int {
	if len(idx.DocsOffsets) == 0 {
		return 0
	}
	return len(idx.DocsOffsets) - 1
}

// DocStream opens term t's docid stream.
func (idx *Index) DocStream(t int) (*posting.DocStream, error) {
	if t < 0 || t >= idx.NumTerms() {
		return nil, fmt.Errorf("index: term %d out of range [0,%d)", t, idx.NumTerms())
	}
	start, end := idx.DocsOffsets[t], idx.DocsOffsets[t+1]
	return posting.OpenDocStream(idx.DocsBlob[start:end], idx.NumDocs)
}

// FreqStream opens term t's frequency stream.
func (idx *Index) FreqStream(t int) (*posting.FreqStream, error) {
	if t < 0 || t >= idx.NumTerms() {
		return nil, fmt.Errorf("index: term %d out of range [0,%d)", t, idx.NumTerms())
	}
	start, end := idx.FreqsOffsets[t], idx.FreqsOffsets[t+1]
	return posting.OpenFreqStream(idx.FreqsBlob[start:end])
}

// Cursor opens a combined posting cursor over term t's doc and frequency
// streams.
func (idx *Index) Cursor(t int) (*posting.Cursor, error) {
	ds, err := idx.DocStream(t)
	if err != nil {
		return nil, err
	}
	fs, err := idx.FreqStream(t)
	if err != nil {
		return nil, err
	}
	return posting.NewCursor(ds, fs)
}

// DocLength returns document d's length, or 0 if d is out of range.
func (idx *Index) DocLength(d uint32) uint32 {
	if int(d) >= len(idx.DocLengths) {
		return 0
	}
	return idx.DocLengths[d]
}

func avgDocLength(docLengths []uint32) float32 {
	if len(docLengths) == 0 {
		return 0
	}
	var sum uint64
	for _, l := range docLengths {
		sum += uint64(l)
	}
	return float32(sum) / float32(len(docLengths))
}

// defaultMetadata seeds every recognized key with an empty value; callers
// fill in the ones relevant to how the index was built and stored.
func defaultMetadata() map[string]string {
	return map[string]string{
		"documents.file":            "",
		"documents.offsets":         "",
		"frequencies.file":          "",
		"frequencies.offsets":       "",
		"stats.avg_document_length": "",
		"stats.document_lengths":    "",
		"lexicon.stemmer":           "",
		"lexicon.terms":             "",
		"lexicon.documents":         "",
	}
}
