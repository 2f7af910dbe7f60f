package calibrator

import (
	"sort"
	"sync"
)

// TokenIndex is an inverted index from overlap tokens to entry positions.
type TokenIndex struct {
	mu       sync.RWMutex
	postings map[string][]int
	size     int
}

// NewTokenIndex constructs an empty index.
func NewTokenIndex() *TokenIndex {
	return &TokenIndex{postings: make(map[string][]int)}
}

// Replace rebuilds the index from per-entry token sets; position i in tokens
// is entry i.
func (idx *TokenIndex) Replace(tokens []TokenSet) {
	postings := make(map[string][]int)
	for pos, set := range tokens {
		for t := range set {
			if t == "" {
				continue
			}
			postings[t] = append(postings[t], pos)
		}
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.postings = postings
	idx.size = len(tokens)
}

// Size returns the number of indexed entries.
func (idx *TokenIndex) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.size
}

// Candidates returns the ascending positions of entries sharing a token with
// tokens. When tokens is empty or nothing matches, every position is returned.
func (idx *TokenIndex) Candidates(tokens TokenSet) []int {
	idx.mu.RLock()
	postings, size := idx.postings, idx.size
	idx.mu.RUnlock()

	seen := make(map[int]struct{})
	for t := range tokens {
		for _, pos := range postings[t] {
			seen[pos] = struct{}{}
		}
	}
	if len(seen) == 0 {
		all := make([]int, size)
		for i := range all {
			all[i] = i
		}
		return all
	}
	out := make([]int, 0, len(seen))
	for pos := range seen {
		out = append(out, pos)
	}
	sort.Ints(out)
	return out
}
