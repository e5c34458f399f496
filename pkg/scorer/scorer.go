// Package scorer maps (term frequency, document length) pairs to a
// relevance score. Scorers are stateless closures: all collection-level
// statistics are captured once at construction time, so the returned
// function is pure and safe to call concurrently across queries.
package scorer

import (
	"fmt"
	"math"
)

// Config holds the tunable parameters for the registered scorers.
type Config struct {
	K1 float32 // BM25 term-frequency saturation
	B  float32 // BM25 document-length normalization
	Mu float32 // query-likelihood Dirichlet smoothing
}

// DefaultConfig returns this module's parameterization: BM25 k1=0.9, b=0.4;
// QL Dirichlet mu=1000.
func DefaultConfig() Config {
	return Config{K1: 0.9, B: 0.4, Mu: 1000}
}

// Scorer is a pure function from (term frequency, document length) to a
// relevance contribution. BM25 and QL both clamp internally; a scorer
// reached through Resolve always returns a finite, non-negative value.
type Scorer func(tf, docLen uint32) float32

// IDF computes the BM25 inverse document frequency term for a collection of
// numDocs documents where docFreq of them contain the term.
func IDF(numDocs, docFreq uint64) float32 {
	if docFreq == 0 {
		docFreq = 1
	}
	x := (float64(numDocs) - float64(docFreq) + 0.5) / (float64(docFreq) + 0.5)
	if x < 1e-6 {
		x = 1e-6
	}
	return float32(math.Log(1 + x))
}

// BM25 returns a scorer for a single term given its precomputed IDF and the
// collection's average document length.
func BM25(cfg Config, idf, avgDocLength float32) Scorer {
	if avgDocLength <= 0 {
		avgDocLength = 1
	}
	return func(tf, docLen uint32) float32 {
		if tf == 0 {
			return 0
		}
		num := float32(tf) * (cfg.K1 + 1)
		den := float32(tf) + cfg.K1*(1-cfg.B+cfg.B*float32(docLen)/avgDocLength)
		if den <= 0 {
			return 0
		}
		s := idf * num / den
		return clamp(s)
	}
}

// QL returns a Dirichlet-smoothed query-likelihood scorer for a term with
// collection frequency collFreq over a collection of collLen total tokens.
func QL(cfg Config, collFreq, collLen uint64) Scorer {
	mu := cfg.Mu
	if mu <= 0 {
		mu = 1000
	}
	pColl := float64(1)
	if collLen > 0 {
		pColl = float64(collFreq) / float64(collLen)
	}
	return func(tf, docLen uint32) float32 {
		s := math.Log(1+float64(tf)/(float64(mu)*pColl)) + math.Log(float64(mu)/(float64(docLen)+float64(mu)))
		return clamp(float32(s))
	}
}

func clamp(s float32) float32 {
	if math.IsNaN(float64(s)) || math.IsInf(float64(s), 0) {
		return 0
	}
	if s < 0 {
		return 0
	}
	return s
}

// Resolve looks up a scorer by name, as the factory described in the
// component design: a name string resolved to a closure over collection
// statistics. An unknown name is fatal at construction.
func Resolve(name string, cfg Config, idf, avgDocLength float32, collFreq, collLen uint64) (Scorer, error) {
	switch name {
	case "bm25":
		return BM25(cfg, idf, avgDocLength), nil
	case "ql", "dirichlet":
		return QL(cfg, collFreq, collLen), nil
	default:
		return nil, fmt.Errorf("scorer: unknown scorer %q", name)
	}
}
