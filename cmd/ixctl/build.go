package main

import (
	"log/slog"
	"os"

	hpos "github.com/hack-pad/hackpadfs/os"
	"github.com/spf13/cobra"

	ixconfig "github.com/kittclouds/ixcore/internal/config"
	"github.com/kittclouds/ixcore/internal/ingest"
	"github.com/kittclouds/ixcore/pkg/index"
)

func newBuildCmd() *cobra.Command {
	var (
		dsn        string
		out        string
		numTerms   int
		threads    int
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compress a SQLite forward collection into a sealed index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return argErrorf("ixctl build: --db is required")
			}
			if out == "" {
				return argErrorf("ixctl build: --out is required")
			}
			if numTerms <= 0 {
				return argErrorf("ixctl build: --num-terms must be > 0")
			}

			cfg := ixconfig.Default()
			if configPath != "" {
				data, err := os.ReadFile(configPath)
				if err != nil {
					return &ioError{err: err}
				}
				cfg, err = ixconfig.Load(data)
				if err != nil {
					return argErrorf("ixctl build: %w", err)
				}
			}
			if threads > 0 {
				cfg.Threads = threads
			}

			return runBuild(dsn, out, numTerms, cfg)
		},
	}

	cmd.Flags().StringVar(&dsn, "db", "", "SQLite DSN of the forward collection (':memory:' or a file path)")
	cmd.Flags().StringVar(&out, "out", "", "output file prefix")
	cmd.Flags().IntVar(&numTerms, "num-terms", 0, "number of distinct terms in the collection")
	cmd.Flags().IntVar(&threads, "threads", 0, "shard-building goroutines (0 = config default)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	return cmd
}

func runBuild(dsn, out string, numTerms int, cfg ixconfig.Config) error {
	src, err := ingest.Open(dsn)
	if err != nil {
		return &ioError{err: err}
	}
	defer src.Close()

	numDocs, err := src.NumDocs()
	if err != nil {
		return &ioError{err: err}
	}
	docLengths, err := src.DocLengths()
	if err != nil {
		return &ioError{err: err}
	}
	terms, err := src.ForwardTerms(numTerms)
	if err != nil {
		return &invariantError{err: err}
	}

	slog.Info("ixctl build starting", slog.String("db", dsn), slog.Int("num_terms", numTerms), slog.Int("num_docs", int(numDocs)), slog.Int("threads", cfg.Threads))

	idx, err := index.Build(terms, numDocs, docLengths, cfg.Threads, func(done int) {
		termsCompactedTotal.Add(1)
		if done%100 == 0 {
			slog.Debug("ixctl build progress", slog.Int("terms_done", done))
		}
	})
	if err != nil {
		return &invariantError{err: err}
	}

	fs, err := hpos.NewFS()
	if err != nil {
		return &ioError{err: err}
	}
	if err := index.WriteFiles(fs, out, idx); err != nil {
		return &ioError{err: err}
	}

	slog.Info("ixctl build complete", slog.String("out", out), slog.Int("num_terms", idx.NumTerms()))
	return nil
}
