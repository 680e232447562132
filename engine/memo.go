package engine

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/spektr-org/tabula/dataset"
	"github.com/spektr-org/tabula/query"
)

// ============================================================================
// MEMO — Cache filter results per (dataset, query)
// ============================================================================
// Interactive editing re-runs the same query many times while the dataset
// stays put. Results are keyed on a hash of the dataset identity, the
// options that change evaluation and the wire form of the query, so a
// re-bound or re-loaded dataset must carry a new ID. Each entry keeps its
// encoded key and a hit must match it byte for byte. Oldest entries are
// evicted first once the cache is full.
// ============================================================================

// DefaultMemoSize is the entry limit used when NewMemo gets a non-positive size.
const DefaultMemoSize = 64

// Memo is a bounded, concurrency-safe cache in front of Filter.
type Memo struct {
	mu      sync.Mutex
	max     int
	entries map[uint64]memoEntry
	order   []uint64
	hits    int
	misses  int
}

// MemoStats reports cache effectiveness.
type MemoStats struct {
	Hits    int `json:"hits"`
	Misses  int `json:"misses"`
	Entries int `json:"entries"`
}

type memoKey struct {
	Dataset    string               `msgpack:"dataset"`
	Strict     bool                 `msgpack:"strict"`
	Conditions []query.RawCondition `msgpack:"conditions"`
}

type memoEntry struct {
	key  []byte
	rows []dataset.Row
}

// NewMemo creates a cache holding up to max results.
func NewMemo(max int) *Memo {
	if max <= 0 {
		max = DefaultMemoSize
	}
	return &Memo{max: max, entries: make(map[uint64]memoEntry)}
}

// MemoKey hashes a dataset ID, the evaluation options and a query into a
// cache key.
func MemoKey(datasetID string, q query.Query, opts ...Option) (uint64, error) {
	b, err := encodeMemoKey(datasetID, q, opts)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(b), nil
}

func encodeMemoKey(datasetID string, q query.Query, opts []Option) ([]byte, error) {
	cfg := applyOptions(opts)
	b, err := msgpack.Marshal(memoKey{Dataset: datasetID, Strict: cfg.StrictOperators, Conditions: q.Encode()})
	if err != nil {
		return nil, fmt.Errorf("encode memo key: %w", err)
	}
	return b, nil
}

// Filter behaves like the package-level Filter but reuses earlier results
// for the same datasetID, query and strict-operator setting. Errors are
// never cached.
func (m *Memo) Filter(datasetID string, rows []dataset.Row, q query.Query, opts ...Option) ([]dataset.Row, error) {
	encoded, err := encodeMemoKey(datasetID, q, opts)
	if err != nil {
		return nil, err
	}
	key := xxhash.Sum64(encoded)

	m.mu.Lock()
	if cached, ok := m.entries[key]; ok && bytes.Equal(cached.key, encoded) {
		m.hits++
		m.mu.Unlock()
		return append([]dataset.Row(nil), cached.rows...), nil
	}
	m.misses++
	m.mu.Unlock()

	out, err := Filter(rows, q, opts...)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// A colliding key replaces the resident entry in place.
	_, resident := m.entries[key]
	m.entries[key] = memoEntry{key: encoded, rows: out}
	if !resident {
		m.order = append(m.order, key)
		for len(m.order) > m.max {
			delete(m.entries, m.order[0])
			m.order = m.order[1:]
		}
	}
	return append([]dataset.Row(nil), out...), nil
}

// Invalidate drops every cached result.
func (m *Memo) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[uint64]memoEntry)
	m.order = nil
}

// Stats returns a snapshot of hit and miss counters.
func (m *Memo) Stats() MemoStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MemoStats{Hits: m.hits, Misses: m.misses, Entries: len(m.entries)}
}
