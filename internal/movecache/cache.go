// Package movecache memoises legal-turn generation and perft counts keyed
// by Zobrist hash.
package movecache

import (
	"errors"
	"sync/atomic"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/hailam/checkers/internal/board"
)

// DefaultEntries is the cache capacity used when none is configured.
const DefaultEntries = 1 << 16

// turnsEntry stores the full state next to its turns so hash collisions
// are detected on lookup.
type turnsEntry struct {
	state board.State
	turns board.TurnList
}

type countEntry struct {
	state board.State
	depth int
	nodes int64
}

// Cache wraps generation under a fixed rule variant with a bounded
// admission-controlled cache. It is safe for concurrent use.
type Cache struct {
	rules  board.Rules
	turns  *ristretto.Cache[uint64, turnsEntry]
	counts *ristretto.Cache[uint64, countEntry]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a cache holding roughly entries positions.
func New(entries int64, rules board.Rules) (*Cache, error) {
	if entries <= 0 {
		return nil, errors.New("movecache: entries must be positive")
	}
	turns, err := ristretto.NewCache(&ristretto.Config[uint64, turnsEntry]{
		NumCounters: entries * 10,
		MaxCost:     entries * 8,
		BufferItems: 64,
		// Cost counts turns, not bytes.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	counts, err := ristretto.NewCache(&ristretto.Config[uint64, countEntry]{
		NumCounters:        entries * 10,
		MaxCost:            entries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		turns.Close()
		return nil, err
	}
	return &Cache{rules: rules, turns: turns, counts: counts}, nil
}

// Rules returns the rule variant the cache generates for.
func (c *Cache) Rules() board.Rules {
	return c.rules
}

// Legal returns the legal turns of s. The returned list is shared with
// the cache and must not be modified.
func (c *Cache) Legal(s board.State) board.TurnList {
	key := s.Hash()
	if e, ok := c.turns.Get(key); ok && e.state == s {
		c.hits.Add(1)
		return e.turns
	}
	c.misses.Add(1)

	turns := board.GenerateTurns(s, c.rules)
	c.turns.Set(key, turnsEntry{state: s, turns: turns}, int64(len(turns)+1))
	return turns
}

// Perft counts leaf states at depth using cached generation and cached
// subtree counts.
func (c *Cache) Perft(s board.State, depth int) int64 {
	if depth == 0 {
		return 1
	}
	turns := c.Legal(s)
	if depth == 1 {
		return int64(len(turns))
	}

	key := countKey(s.Hash(), depth)
	if e, ok := c.counts.Get(key); ok && e.state == s && e.depth == depth {
		return e.nodes
	}

	var nodes int64
	for _, t := range turns {
		nodes += c.Perft(board.Apply(s, t), depth-1)
	}
	c.counts.Set(key, countEntry{state: s, depth: depth, nodes: nodes}, 1)
	return nodes
}

// countKey mixes the depth into the state hash.
func countKey(hash uint64, depth int) uint64 {
	return hash ^ (uint64(depth) * 0x9E3779B97F4A7C15)
}

// Metrics returns the number of Legal lookups served from the cache and
// the number that had to generate.
func (c *Cache) Metrics() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// HitRate returns the hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	hits, misses := c.Metrics()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Wait blocks until buffered writes have been applied.
func (c *Cache) Wait() {
	c.turns.Wait()
	c.counts.Wait()
}

// Clear drops every cached entry and resets the counters.
func (c *Cache) Clear() {
	c.turns.Clear()
	c.counts.Clear()
	c.hits.Store(0)
	c.misses.Store(0)
}

// Close releases the cache's background goroutines.
func (c *Cache) Close() {
	c.turns.Close()
	c.counts.Close()
}
