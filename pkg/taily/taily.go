// Package taily reads and writes the statistics file consumed by the
// Taily score-distribution estimator: a collection-wide header followed
// by one Feature_Statistics record per term, giving the moments of that
// term's score distribution across the collection. The estimator itself
// is an external collaborator; this package only owns the wire format.
package taily

import (
	"fmt"

	"github.com/kelindar/binary"
)

// FeatureStatistics is one term's score-distribution moments: the mean
// and variance of its per-document score, and its collection frequency
// expressed as a fraction of documents containing the term.
type FeatureStatistics struct {
	ExpectedValue float64
	Variance      float64
	Frequency     float64
}

// Stats is a whole collection's statistics file: a header naming the
// collection size and the records that follow, one per term in term-id
// order.
type Stats struct {
	CollectionSize int64
	Terms          []FeatureStatistics
}

// header is the on-disk layout of the two leading i64 fields; binary
// encodes struct fields in declaration order with no padding, matching
// the fixed-width record layout described in the external interface.
type header struct {
	CollectionSize int64
	TermCount      int64
}

// Encode serializes s as `[i64 collection_size][i64 term_count]` followed
// by term_count FeatureStatistics records, each a little-endian
// (expected_value, variance, frequency) float64 triplet.
func Encode(s Stats) ([]byte, error) {
	h, err := binary.Marshal(header{CollectionSize: s.CollectionSize, TermCount: int64(len(s.Terms))})
	if err != nil {
		return nil, fmt.Errorf("taily: encode header: %w", err)
	}
	out := h
	for i, t := range s.Terms {
		b, err := binary.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("taily: encode term %d: %w", i, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

// Decode parses a statistics file previously produced by Encode.
func Decode(buf []byte) (Stats, error) {
	var h header
	n, err := decodeInto(buf, &h)
	if err != nil {
		return Stats{}, fmt.Errorf("taily: decode header: %w", err)
	}
	if h.TermCount < 0 {
		return Stats{}, fmt.Errorf("taily: negative term count %d", h.TermCount)
	}

	s := Stats{CollectionSize: h.CollectionSize, Terms: make([]FeatureStatistics, h.TermCount)}
	off := n
	for i := range s.Terms {
		consumed, err := decodeInto(buf[off:], &s.Terms[i])
		if err != nil {
			return Stats{}, fmt.Errorf("taily: decode term %d: %w", i, err)
		}
		off += consumed
	}
	return s, nil
}

// decodeInto unmarshals one fixed-width value from the front of buf and
// reports how many bytes it consumed, taking the width from fixedWidth's
// per-type table; kelindar/binary has no fixed-size struct decoder that
// reports bytes consumed directly.
func decodeInto(buf []byte, v interface{}) (int, error) {
	width, err := fixedWidth(v)
	if err != nil {
		return 0, err
	}
	if len(buf) < width {
		return 0, fmt.Errorf("truncated record: need %d bytes, have %d", width, len(buf))
	}
	if err := binary.Unmarshal(buf[:width], v); err != nil {
		return 0, err
	}
	return width, nil
}

func fixedWidth(v interface{}) (int, error) {
	switch v.(type) {
	case *header:
		return 16, nil
	case *FeatureStatistics:
		return 24, nil
	default:
		return 0, fmt.Errorf("unsupported record type %T", v)
	}
}
