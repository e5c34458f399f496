package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	hpos "github.com/hack-pad/hackpadfs/os"
	"github.com/spf13/cobra"

	ixconfig "github.com/kittclouds/ixcore/internal/config"
	"github.com/kittclouds/ixcore/pkg/cursor"
	"github.com/kittclouds/ixcore/pkg/index"
	"github.com/kittclouds/ixcore/pkg/query"
	"github.com/kittclouds/ixcore/pkg/scorer"
)

func newQueryCmd() *cobra.Command {
	var (
		prefix     string
		numDocs    int
		queryText  string
		algo       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a ranked query against a sealed index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if prefix == "" {
				return argErrorf("ixctl query: --index is required")
			}
			if numDocs <= 0 {
				return argErrorf("ixctl query: --num-docs must be > 0")
			}
			if strings.TrimSpace(queryText) == "" {
				return argErrorf("ixctl query: --terms is required")
			}

			cfg := ixconfig.Default()
			if configPath != "" {
				loaded, err := loadConfigFile(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			termIDs, err := parseQueryTerms(queryText)
			if err != nil {
				return argErrorf("ixctl query: %w", err)
			}

			hits, err := runQuery(prefix, uint32(numDocs), termIDs, algo, cfg)
			if err != nil {
				return err
			}
			for _, h := range hits {
				fmt.Printf("%d\t%f\n", h.Docid, h.Score)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "index", "", "index file prefix, as passed to 'ixctl build --out'")
	cmd.Flags().IntVar(&numDocs, "num-docs", 0, "number of documents in the collection")
	cmd.Flags().StringVar(&queryText, "terms", "", "whitespace-or-colon-delimited query, e.g. 'q1: 4 17 92'")
	cmd.Flags().StringVar(&algo, "algo", "or", "traversal algorithm: or, and, wand, maxscore, taat")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	return cmd
}

// parseQueryTerms splits "qid: t1 t2 t3" (qid optional) into term IDs.
func parseQueryTerms(text string) ([]int, error) {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, ':'); i >= 0 {
		text = text[i+1:]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty term list")
	}
	ids := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("term %q is not a term id: %w", f, err)
		}
		ids[i] = n
	}
	return ids, nil
}

func loadConfigFile(path string) (ixconfig.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ixconfig.Config{}, &ioError{err: err}
	}
	cfg, err := ixconfig.Load(data)
	if err != nil {
		return ixconfig.Config{}, argErrorf("ixctl query: %w", err)
	}
	return cfg, nil
}

func runQuery(prefix string, numDocs uint32, termIDs []int, algo string, cfg ixconfig.Config) ([]query.Hit, error) {
	fs, err := hpos.NewFS()
	if err != nil {
		return nil, &ioError{err: err}
	}
	idx, err := index.ReadFiles(fs, prefix, numDocs)
	if err != nil {
		return nil, &ioError{err: err}
	}

	sc := scorer.DefaultConfig()
	cursors := make([]query.Cursor, 0, len(termIDs))
	maxCursors := make([]query.MaxCursor, 0, len(termIDs))
	for _, tid := range termIDs {
		if tid < 0 || tid >= idx.NumTerms() {
			return nil, argErrorf("ixctl query: term id %d out of range [0,%d)", tid, idx.NumTerms())
		}
		c, err := idx.Cursor(tid)
		if err != nil {
			return nil, &ioError{err: err}
		}
		docFreq := uint64(c.Len())
		idf := scorer.IDF(uint64(idx.NumDocs), docFreq)
		scoreFn := scorer.BM25(sc, idf, idx.AvgDocLength)
		sct := cursor.NewScoredCursor(c, scoreFn, idx.DocLength)
		cursors = append(cursors, sct)
		maxCursors = append(maxCursors, cursor.NewMaxScoredCursor(c, scoreFn, idx.DocLength, estimateMaxWeight(idf)))
	}

	slog.Info("ixctl query", slog.String("algo", algo), slog.Int("num_terms", len(termIDs)), slog.Int("k", cfg.K))

	switch algo {
	case "or":
		return query.RankedOr(cursors, cfg.K), nil
	case "and":
		return query.RankedAnd(cursors, cfg.K), nil
	case "wand":
		return query.Wand(maxCursors, cfg.K), nil
	case "maxscore":
		return query.MaxScore(maxCursors, cfg.K), nil
	case "taat":
		return query.RankedOrTaatSimple(cursors, numDocs, cfg.K), nil
	default:
		return nil, argErrorf("ixctl query: unknown algorithm %q", algo)
	}
}

// estimateMaxWeight bounds a term's per-document BM25 contribution by its
// IDF factor alone: BM25's tf*(k1+1)/(tf+k1*norm) term-frequency component is
// always < k1+1 and approaches it as tf grows, so idf*(k1+1) upper-bounds
// every document's score for the term without inspecting its postings.
func estimateMaxWeight(idf float32) float32 {
	cfg := scorer.DefaultConfig()
	return idf * (cfg.K1 + 1)
}
