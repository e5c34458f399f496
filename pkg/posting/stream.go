// Package posting implements the block-segmented posting-list layout: a
// header (count, block count), a per-list skip structure over block-last
// docids, and a sequence of fixed-size blocks holding delta-gapped docids
// or raw frequencies.
package posting

import (
	"fmt"

	"github.com/kittclouds/ixcore/pkg/bitio"
	"github.com/kittclouds/ixcore/pkg/blockcodec"
	"github.com/kittclouds/ixcore/pkg/ef"
)

// BlockSize is the fixed number of postings per block (the last block of a
// list may be shorter).
const BlockSize = blockcodec.BlockSize

// DocidMax is the end-of-sequence sentinel a cursor reports once exhausted.
const DocidMax = ^uint32(0)

const widthHeaderBits = 6

// DocStream is the encoded, decode-ready form of one term's docid list.
type DocStream struct {
	buf             []byte
	n               uint64
	blockCount      uint64
	skip            *ef.CompactEF
	blockBitOffsets []uint64 // length blockCount+1
	lastDocids      []uint32 // length blockCount, cached from skip
	numDocs         uint32
}

// FreqStream is the encoded, decode-ready form of one term's frequency list.
type FreqStream struct {
	buf             []byte
	n               uint64
	blockCount      uint64
	blockBitOffsets []uint64
}

// BuildDocStream encodes docs (strictly increasing, each < numDocs) into a
// DocStream, enforcing (I1).
func BuildDocStream(docs []uint32, numDocs uint32) (*DocStream, error) {
	n := len(docs)
	if n == 0 {
		return nil, fmt.Errorf("posting: doc list must be non-empty")
	}
	var prev uint32
	for i, d := range docs {
		if i > 0 && d <= prev {
			return nil, fmt.Errorf("posting: docid %d at index %d is not strictly increasing after %d", d, i, prev)
		}
		if d >= numDocs {
			return nil, fmt.Errorf("posting: docid %d at index %d exceeds numDocs %d", d, i, numDocs)
		}
		prev = d
	}

	blockCount := (n + BlockSize - 1) / BlockSize
	lastDocidsU64 := make([]uint64, blockCount)
	lastDocids := make([]uint32, blockCount)
	for b := 0; b < blockCount; b++ {
		end := (b + 1) * BlockSize
		if end > n {
			end = n
		}
		lastDocidsU64[b] = uint64(docs[end-1])
		lastDocids[b] = docs[end-1]
	}
	skip := ef.BuildCompact(lastDocidsU64, uint64(numDocs))

	w := bitio.NewWriter()
	w.AppendGamma(uint64(n))
	w.AppendGammaNonzero(uint64(blockCount))
	skip.WriteTo(w)

	blockBitOffsets := make([]uint64, 0, blockCount+1)
	prevDocid := int64(-1)
	for b := 0; b < blockCount; b++ {
		start := b * BlockSize
		end := start + BlockSize
		if end > n {
			end = n
		}
		blockBitOffsets = append(blockBitOffsets, w.Len())
		deltas := make([]uint32, end-start)
		for i := start; i < end; i++ {
			deltas[i-start] = uint32(int64(docs[i]) - prevDocid - 1)
			prevDocid = int64(docs[i])
		}
		blockcodec.EncodeBitpacked(w, deltas)
	}
	blockBitOffsets = append(blockBitOffsets, w.Len())

	return &DocStream{
		buf:             w.Bytes(),
		n:               uint64(n),
		blockCount:      uint64(blockCount),
		skip:            skip,
		blockBitOffsets: blockBitOffsets,
		lastDocids:      lastDocids,
		numDocs:         numDocs,
	}, nil
}

// OpenDocStream reconstructs a DocStream from previously persisted bytes,
// scanning block headers once to recover block offsets.
func OpenDocStream(buf []byte, numDocs uint32) (*DocStream, error) {
	r := bitio.NewReader(buf, uint64(len(buf))*8)
	n := r.ReadGamma()
	blockCount := r.ReadGammaNonzero()
	skip := ef.ReadCompact(r)

	ds := &DocStream{buf: buf, n: n, blockCount: blockCount, skip: skip, numDocs: numDocs}
	ds.blockBitOffsets = make([]uint64, 0, blockCount+1)
	remaining := n
	for b := uint64(0); b < blockCount; b++ {
		ds.blockBitOffsets = append(ds.blockBitOffsets, r.Position())
		blockLen := uint64(BlockSize)
		if remaining < blockLen {
			blockLen = remaining
		}
		width := r.ReadBits(widthHeaderBits)
		r.Seek(r.Position() + width*blockLen)
		remaining -= blockLen
	}
	ds.blockBitOffsets = append(ds.blockBitOffsets, r.Position())

	sc := skip.NewCursor()
	ds.lastDocids = make([]uint32, blockCount)
	for b := uint64(0); b < blockCount; b++ {
		_, v := sc.Move(b)
		ds.lastDocids[b] = uint32(v)
	}
	return ds, nil
}

// Bytes returns the encoded stream, ready to be appended to a larger file.
func (d *DocStream) Bytes() []byte { return d.buf }

// Len returns the number of postings in the list.
func (d *DocStream) Len() uint64 { return d.n }

func (d *DocStream) decodeBlock(b uint64) []uint32 {
	start := d.blockBitOffsets[b]
	end := d.blockBitOffsets[b+1]
	r := bitio.NewReader(d.buf, end)
	r.Seek(start)

	blockStart := b * BlockSize
	blockLen := uint64(BlockSize)
	if d.n-blockStart < blockLen {
		blockLen = d.n - blockStart
	}
	deltas := blockcodec.DecodeBitpacked(r, int(blockLen))

	prevDocid := int64(-1)
	if b > 0 {
		prevDocid = int64(d.lastDocids[b-1])
	}
	docs := make([]uint32, blockLen)
	for i, delta := range deltas {
		prevDocid = prevDocid + int64(delta) + 1
		docs[i] = uint32(prevDocid)
	}
	return docs
}

// BuildFreqStream encodes freqs (each >= 1) into a FreqStream. Frequencies
// are not delta-gapped since they are not monotonic.
func BuildFreqStream(freqs []uint32) (*FreqStream, error) {
	n := len(freqs)
	if n == 0 {
		return nil, fmt.Errorf("posting: frequency list must be non-empty")
	}
	for i, f := range freqs {
		if f == 0 {
			return nil, fmt.Errorf("posting: frequency at index %d is zero", i)
		}
	}
	blockCount := (n + BlockSize - 1) / BlockSize

	w := bitio.NewWriter()
	w.AppendGamma(uint64(n))
	w.AppendGammaNonzero(uint64(blockCount))

	blockBitOffsets := make([]uint64, 0, blockCount+1)
	for b := 0; b < blockCount; b++ {
		start := b * BlockSize
		end := start + BlockSize
		if end > n {
			end = n
		}
		blockBitOffsets = append(blockBitOffsets, w.Len())
		blockcodec.EncodeBitpacked(w, freqs[start:end])
	}
	blockBitOffsets = append(blockBitOffsets, w.Len())

	return &FreqStream{buf: w.Bytes(), n: uint64(n), blockCount: uint64(blockCount), blockBitOffsets: blockBitOffsets}, nil
}

// OpenFreqStream reconstructs a FreqStream from previously persisted bytes.
func OpenFreqStream(buf []byte) (*FreqStream, error) {
	r := bitio.NewReader(buf, uint64(len(buf))*8)
	n := r.ReadGamma()
	blockCount := r.ReadGammaNonzero()

	fs := &FreqStream{buf: buf, n: n, blockCount: blockCount}
	fs.blockBitOffsets = make([]uint64, 0, blockCount+1)
	remaining := n
	for b := uint64(0); b < blockCount; b++ {
		fs.blockBitOffsets = append(fs.blockBitOffsets, r.Position())
		blockLen := uint64(BlockSize)
		if remaining < blockLen {
			blockLen = remaining
		}
		width := r.ReadBits(widthHeaderBits)
		r.Seek(r.Position() + width*blockLen)
		remaining -= blockLen
	}
	fs.blockBitOffsets = append(fs.blockBitOffsets, r.Position())
	return fs, nil
}

// Bytes returns the encoded stream, ready to be appended to a larger file.
func (f *FreqStream) Bytes() []byte { return f.buf }

// Len returns the number of postings in the list.
func (f *FreqStream) Len() uint64 { return f.n }

func (f *FreqStream) decodeBlock(b uint64) []uint32 {
	start := f.blockBitOffsets[b]
	end := f.blockBitOffsets[b+1]
	r := bitio.NewReader(f.buf, end)
	r.Seek(start)

	blockStart := b * BlockSize
	blockLen := uint64(BlockSize)
	if f.n-blockStart < blockLen {
		blockLen = f.n - blockStart
	}
	return blockcodec.DecodeBitpacked(r, int(blockLen))
}
