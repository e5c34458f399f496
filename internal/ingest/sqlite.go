// Package ingest reads a forward collection — documents and the terms
// they contain — out of SQLite and reshapes it into the per-term posting
// lists pkg/index.Build expects. Tokenization, stemming, and term-ID
// assignment happen upstream of this package; it only owns the
// storage-to-forward-list plumbing.
package ingest

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"

	"github.com/kittclouds/ixcore/pkg/index"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    docid  INTEGER PRIMARY KEY,
    length INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS postings (
    term_id INTEGER NOT NULL,
    docid   INTEGER NOT NULL,
    freq    INTEGER NOT NULL,
    PRIMARY KEY (term_id, docid)
);

CREATE INDEX IF NOT EXISTS idx_postings_term ON postings(term_id, docid);
`

// Source is a SQLite-backed forward collection: one row per document
// giving its length, and one row per (term, document) pair giving the
// term's frequency in that document.
type Source struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open opens or creates a forward collection database at dsn. Use
// ":memory:" for a throwaway collection, e.g. in tests.
func Open(dsn string) (*Source, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", dsn, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ingest: create schema: %w", err)
	}
	return &Source{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// PutDocument records or replaces document docid's length.
func (s *Source) PutDocument(docid uint32, length uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO documents (docid, length) VALUES (?, ?)
		ON CONFLICT(docid) DO UPDATE SET length = excluded.length
	`, docid, length)
	if err != nil {
		return fmt.Errorf("ingest: put document %d: %w", docid, err)
	}
	return nil
}

// PutPosting records term termID's frequency in document docid.
func (s *Source) PutPosting(termID, docid, freq uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO postings (term_id, docid, freq) VALUES (?, ?, ?)
		ON CONFLICT(term_id, docid) DO UPDATE SET freq = excluded.freq
	`, termID, docid, freq)
	if err != nil {
		return fmt.Errorf("ingest: put posting term=%d doc=%d: %w", termID, docid, err)
	}
	return nil
}

// NumDocs returns the number of documents recorded.
func (s *Source) NumDocs() (uint32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("ingest: count documents: %w", err)
	}
	return uint32(n), nil
}

// DocLengths returns every document's length, indexed by docid. Gaps in
// the docid sequence are reported as length 0.
func (s *Source) DocLengths() ([]uint32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var maxDocid sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(docid) FROM documents`).Scan(&maxDocid); err != nil {
		return nil, fmt.Errorf("ingest: max docid: %w", err)
	}
	if !maxDocid.Valid {
		return nil, nil
	}

	lengths := make([]uint32, maxDocid.Int64+1)
	rows, err := s.db.Query(`SELECT docid, length FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("ingest: list documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var docid, length int64
		if err := rows.Scan(&docid, &length); err != nil {
			return nil, fmt.Errorf("ingest: scan document: %w", err)
		}
		lengths[docid] = uint32(length)
	}
	return lengths, rows.Err()
}

// ForwardTerms returns every term's posting list, ordered by term ID and,
// within a term, by ascending docid, ready for pkg/index.Build.
func (s *Source) ForwardTerms(numTerms int) ([]index.ForwardTerm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	terms := make([]index.ForwardTerm, numTerms)
	rows, err := s.db.Query(`SELECT term_id, docid, freq FROM postings ORDER BY term_id, docid`)
	if err != nil {
		return nil, fmt.Errorf("ingest: list postings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var termID, docid, freq int64
		if err := rows.Scan(&termID, &docid, &freq); err != nil {
			return nil, fmt.Errorf("ingest: scan posting: %w", err)
		}
		if int(termID) >= numTerms {
			return nil, fmt.Errorf("ingest: term id %d out of range [0,%d)", termID, numTerms)
		}
		terms[termID].Docs = append(terms[termID].Docs, uint32(docid))
		terms[termID].Freqs = append(terms[termID].Freqs, uint32(freq))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// ORDER BY above already yields sorted output per term; this guards
	// against drivers that don't honor multi-column ORDER BY exactly.
	for i := range terms {
		if !sort.SliceIsSorted(terms[i].Docs, func(a, b int) bool { return terms[i].Docs[a] < terms[i].Docs[b] }) {
			return nil, fmt.Errorf("ingest: term %d postings not sorted by docid", i)
		}
	}
	return terms, nil
}
